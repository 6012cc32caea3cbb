package main

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajitpratap0/middagsvalet/internal/catalog"
	"github.com/ajitpratap0/middagsvalet/internal/ingredient"
	"github.com/ajitpratap0/middagsvalet/internal/models"
	"github.com/ajitpratap0/middagsvalet/internal/scoring"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

const householdJSON = `{
  "id": "h1",
  "name": "Familjen",
  "profiles": [
    {"id": "a1", "name": "Anna", "type": "adult"},
    {"id": "c1", "name": "Leo", "type": "child", "pickiness": 1}
  ],
  "preferences": {
    "cuisines": ["italienskt"],
    "proteins": ["vegetariskt"],
    "avoid_allergens": ["nötter"],
    "max_prep_minutes": 30,
    "dinners_per_week": 3
  }
}`

const dishesJSON = `[
  {"id": "d1", "title": "Pasta med gräddsås", "protein_tag": "vegetariskt", "prep_minutes": 20,
   "ingredient_lines": ["400 g pasta", "2 dl grädde", "2 l vatten"]},
  {"id": "d2", "title": "Lax i ugn", "protein_tag": "fisk", "prep_minutes": 30,
   "allergens": ["fisk"]}
]`

func newTestService(t *testing.T) (*ingredient.Service, *catalog.Catalog) {
	t.Helper()
	cat, err := catalog.Builtin()
	require.NoError(t, err)
	m := catalog.NewMatcher(cat, catalog.DefaultOptions(), newTestLogger())
	return ingredient.NewService(m, ingredient.DefaultOptions(), newTestLogger()), cat
}

func TestLoadHousehold(t *testing.T) {
	h, err := loadHousehold(writeFile(t, "h.json", householdJSON))
	require.NoError(t, err)
	assert.Equal(t, "h1", h.ID)
	assert.Len(t, h.Profiles, 2)
	assert.Equal(t, models.ProfileChild, h.Profiles[1].Type)

	_, err = loadHousehold(writeFile(t, "bad.json", `{"id": "h1", "profiles": [{"id": "a1", "type": "adult"}],
		"preferences": {"max_prep_minutes": 20, "dinners_per_week": 3}}`))
	require.ErrorIs(t, err, models.ErrInvalidHousehold)

	_, err = loadHousehold("")
	assert.Error(t, err)
}

func TestLoadDishes(t *testing.T) {
	svc, cat := newTestService(t)

	dishes, err := loadDishes(writeFile(t, "d.json", dishesJSON), svc, cat)
	require.NoError(t, err)
	require.Len(t, dishes, 2)

	assert.Len(t, dishes[0].Ingredients, 3)
	assert.Equal(t, "Pasta", dishes[0].Ingredients[0].DisplayName)
	assert.Equal(t, []string{"gluten", "laktos"}, dishes[0].Allergens)
	assert.Equal(t, []string{"fisk"}, dishes[1].Allergens)
}

func TestLoadDishesRejectsDuplicates(t *testing.T) {
	svc, cat := newTestService(t)

	_, err := loadDishes(writeFile(t, "d.json", `[{"id": "d1"}, {"id": "d1"}]`), svc, cat)
	assert.ErrorContains(t, err, "duplicate dish id")

	_, err = loadDishes(writeFile(t, "d.json", `[{"title": "Utan id"}]`), svc, cat)
	assert.ErrorContains(t, err, "no id")
}

func TestLoadContext(t *testing.T) {
	ctx, err := loadContext("")
	require.NoError(t, err)
	assert.False(t, ctx.RecentlyServed("d1"))

	ctx, err = loadContext(writeFile(t, "c.json", `{
  "recent_dish_ids": ["d2"],
  "recent_proteins": ["fisk"],
  "ratings": [
    {"profile_id": "a1", "dish_id": "d1", "reaction": "like", "created_at": "2026-03-01T18:00:00Z"},
    {"profile_id": "c1", "dish_id": "d1", "reaction": "dislike", "created_at": "2026-03-01T18:00:00Z"}
  ]
}`))
	require.NoError(t, err)
	assert.True(t, ctx.RecentlyServed("d2"))
	assert.True(t, ctx.RecentProtein("fisk"))
	assert.True(t, ctx.Liked("a1", "d1"))
	assert.True(t, ctx.Disliked("c1", "d1"))
}

func TestParseLocks(t *testing.T) {
	svc, cat := newTestService(t)
	h, err := loadHousehold(writeFile(t, "h.json", householdJSON))
	require.NoError(t, err)
	dishes, err := loadDishes(writeFile(t, "d.json", dishesJSON), svc, cat)
	require.NoError(t, err)
	scorer := scoring.NewScorer(scoring.DefaultWeights(), newTestLogger())

	locks, err := parseLocks([]string{"2=d2"}, dishes, h, &models.ScoreContext{}, scorer)
	require.NoError(t, err)
	require.Len(t, locks, 1)
	assert.Equal(t, 2, locks[0].DayIndex)
	assert.Equal(t, "d2", locks[0].Dish.ID)
	assert.True(t, locks[0].Locked)
	assert.Len(t, locks[0].ProfileScores, 2)

	for _, bad := range []string{"d2", "x=d2", "3=d2", "-1=d2", "0=nope"} {
		t.Run(bad, func(t *testing.T) {
			_, err := parseLocks([]string{bad}, dishes, h, &models.ScoreContext{}, scorer)
			assert.Error(t, err)
		})
	}
}
