package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(f float64) *float64 { return &f }

func validHousehold() *Household {
	return &Household{
		ID:   "hh-1",
		Name: "Familjen Berg",
		Profiles: []Profile{
			{ID: "anna", Name: "Anna", Type: ProfileAdult},
			{ID: "elsa", Name: "Elsa", Type: ProfileChild, Pickiness: 2},
		},
		Preferences: HouseholdPreferences{
			MaxPrepMinutes: 30,
			DinnersPerWeek: 5,
		},
	}
}

func TestCategoryIsValid(t *testing.T) {
	for _, c := range ValidCategories {
		t.Run(string(c), func(t *testing.T) {
			assert.True(t, c.IsValid())
			assert.NotEqual(t, string(c), c.Label())
		})
	}
	assert.False(t, Category("bakery").IsValid())
	assert.Equal(t, "bakery", Category("bakery").Label())
}

func TestHouseholdValidate(t *testing.T) {
	require.NoError(t, validHousehold().Validate())

	tests := []struct {
		name   string
		mutate func(h *Household)
	}{
		{"empty id", func(h *Household) { h.ID = "" }},
		{"no profiles", func(h *Household) { h.Profiles = nil }},
		{"duplicate profile", func(h *Household) { h.Profiles[1].ID = "anna" }},
		{"bad profile type", func(h *Household) { h.Profiles[0].Type = "pet" }},
		{"pickiness too high", func(h *Household) { h.Profiles[1].Pickiness = 3 }},
		{"zero weight", func(h *Household) { h.Profiles[0].Weight = ptr(0) }},
		{"odd prep time", func(h *Household) { h.Preferences.MaxPrepMinutes = 20 }},
		{"too few dinners", func(h *Household) { h.Preferences.DinnersPerWeek = 2 }},
		{"too many dinners", func(h *Household) { h.Preferences.DinnersPerWeek = 8 }},
		{"negative child weight", func(h *Household) { h.ChildWeight = ptr(-1) }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			h := validHousehold()
			tc.mutate(h)
			assert.ErrorIs(t, h.Validate(), ErrInvalidHousehold)
		})
	}
}

func TestHouseholdEffectiveWeight(t *testing.T) {
	h := validHousehold()
	assert.Equal(t, 1.0, h.EffectiveWeight(&h.Profiles[0]))
	assert.InDelta(t, 1.2, h.EffectiveWeight(&h.Profiles[1]), 1e-9)

	h.ChildWeight = ptr(2)
	h.Profiles[1].Weight = ptr(0.5)
	assert.InDelta(t, 1.0, h.EffectiveWeight(&h.Profiles[1]), 1e-9)
}

func TestDishHasAllergen(t *testing.T) {
	d := Dish{ID: "d1", Allergens: []string{"gluten", "laktos"}}
	assert.True(t, d.HasAllergen([]string{"laktos"}))
	assert.False(t, d.HasAllergen([]string{"nötter"}))
	assert.False(t, d.HasAllergen(nil))
}

func TestScoreContextFromRatings(t *testing.T) {
	t0 := time.Date(2026, 3, 1, 18, 0, 0, 0, time.UTC)
	ratings := []Rating{
		{ProfileID: "anna", DishID: "lasagne", Reaction: ReactionLike, CreatedAt: t0},
		{ProfileID: "elsa", DishID: "curry", Reaction: ReactionDislike, CreatedAt: t0},
		{ProfileID: "anna", DishID: "tacos", Reaction: ReactionDislike, CreatedAt: t0},
		{ProfileID: "anna", DishID: "tacos", Reaction: ReactionLike, CreatedAt: t0.Add(time.Hour)},
		{ProfileID: "elsa", DishID: "soppa", Reaction: ReactionLike, CreatedAt: t0},
		{ProfileID: "elsa", DishID: "soppa", Reaction: ReactionSkip, CreatedAt: t0.Add(time.Hour)},
	}

	ctx := ScoreContextFromRatings(ratings, []string{"lasagne"}, []string{ProteinBeef})

	assert.Equal(t, []string{"lasagne", "tacos"}, ctx.Likes["anna"])
	assert.Equal(t, []string{"curry"}, ctx.Dislikes["elsa"])
	assert.Empty(t, ctx.Likes["elsa"])
	assert.True(t, ctx.RecentlyServed("lasagne"))
	assert.True(t, ctx.RecentProtein(ProteinBeef))
	assert.True(t, ctx.Liked("anna", "tacos"))
	assert.False(t, ctx.Disliked("anna", "tacos"))
}

func TestNilScoreContextIsEmpty(t *testing.T) {
	var ctx *ScoreContext
	assert.False(t, ctx.RecentlyServed("tacos"))
	assert.False(t, ctx.RecentProtein(ProteinBeef))
	assert.False(t, ctx.Liked("anna", "tacos"))
	assert.False(t, ctx.Disliked("anna", "tacos"))
}

func TestWeeklyMenuHelpers(t *testing.T) {
	m := WeeklyMenu{Dinners: []MenuDay{
		{DayIndex: 0, Dish: Dish{ID: "a"}},
		{DayIndex: 1, Dish: Dish{ID: "b"}},
		{DayIndex: 2, Dish: Dish{ID: "c"}},
	}}

	day, ok := m.Day(1)
	require.True(t, ok)
	assert.Equal(t, "b", day.Dish.ID)

	_, ok = m.Day(5)
	assert.False(t, ok)

	assert.Equal(t, map[string]bool{"a": true, "c": true}, m.DishIDs(1))
	assert.Len(t, m.DishIDs(-1), 3)
	assert.True(t, m.Complete())
}
