package ingredient

import (
	"log/slog"
	"os"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajitpratap0/middagsvalet/internal/catalog"
	"github.com/ajitpratap0/middagsvalet/internal/models"
	"github.com/ajitpratap0/middagsvalet/internal/units"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func newTestService(t *testing.T) (*Service, *catalog.Catalog) {
	t.Helper()
	cat, err := catalog.Builtin()
	require.NoError(t, err)
	m := catalog.NewMatcher(cat, catalog.DefaultOptions(), newTestLogger())
	return NewService(m, DefaultOptions(), newTestLogger()), cat
}

func TestNormalizeExactMatches(t *testing.T) {
	svc, _ := newTestService(t)

	tests := []struct {
		raw      string
		display  string
		amount   float64
		unit     units.Unit
		category models.Category
	}{
		{"2 klyftor vitlök, finhackad", "Vitlök", 2, units.Piece, models.CategoryProduce},
		{"0.5 dl vatten", "Vatten", 50, units.Milliliter, models.CategoryPantry},
		{"2 l vatten", "Vatten", 2000, units.Milliliter, models.CategoryPantry},
		{"forp gnocchi", "Gnocchi", 1, units.Piece, models.CategoryPantry},
		{"port ris", "Ris", 1, units.Piece, models.CategoryPantry},
		{"Dill plockad - 50 ml", "Dill", 50, units.Milliliter, models.CategoryProduce},
		{"Citroner pressad saft och rivet skal", "Citron", 1, units.Piece, models.CategoryProduce},
		{"Gronsaksbuljong tarning", "Grönsaksbuljong", 1, units.Piece, models.CategoryPantry},
		{"1 Gronsaksbuljongtarning", "Grönsaksbuljong", 1, units.Piece, models.CategoryPantry},
		{"Gul lok stor", "Gul lök", 1, units.Piece, models.CategoryProduce},
		{"ca 3 dl grädde", "Grädde", 300, units.Milliliter, models.CategoryDairy},
		{"1½ msk olivolja", "Olivolja", 22.5, units.Milliliter, models.CategoryPantry},
		{"½ tsk salt", "Salt", 2.5, units.Milliliter, models.CategorySpices},
		{"400 g nötfärs", "Nötfärs", 400, units.Gram, models.CategoryMeatFish},
		{"1 kg potatis", "Potatis", 1000, units.Gram, models.CategoryProduce},
		{"3 - ägg", "Ägg", 3, units.Piece, models.CategoryDairy},
		{"2 dl mjÃ¶lk", "Mjölk", 200, units.Milliliter, models.CategoryDairy},
		{"1 burk krossade tomater", "Krossade tomater", 1, units.Piece, models.CategoryPantry},
	}
	for _, tc := range tests {
		t.Run(tc.raw, func(t *testing.T) {
			got := svc.Normalize(tc.raw)
			assert.Equal(t, tc.display, got.DisplayName)
			assert.Equal(t, tc.amount, got.Amount)
			assert.Equal(t, tc.unit, got.Unit)
			assert.Equal(t, tc.category, got.Category)
			assert.Equal(t, models.MatchExact, got.MatchMode)
			assert.Equal(t, 1.0, got.Confidence)
			assert.False(t, svc.NeedsReview(got))
		})
	}
}

func TestNormalizeProvenance(t *testing.T) {
	svc, _ := newTestService(t)

	got := svc.Normalize("  2 klyftor vitlök,  finhackad ")
	assert.Equal(t, "vitlok", got.CanonicalName)
	assert.Equal(t, "2 klyftor vitlök, finhackad", got.CleanedLine)
	assert.Equal(t, "vitlök, finhackad", got.RawName)
}

func TestNormalizeFuzzyNeedsReview(t *testing.T) {
	svc, _ := newTestService(t)

	got := svc.Normalize("400 g krossade tomater a")
	assert.Equal(t, models.MatchFuzzy, got.MatchMode)
	assert.Equal(t, "krossade tomater", got.CanonicalName)
	assert.Equal(t, 400.0, got.Amount)
	assert.Equal(t, units.Gram, got.Unit)
	assert.True(t, svc.NeedsReview(got))
}

func TestNormalizeFallback(t *testing.T) {
	svc, _ := newTestService(t)

	got := svc.Normalize("2 drakfrukter")
	assert.Equal(t, models.MatchFallback, got.MatchMode)
	assert.Equal(t, "drakfrukter", got.CanonicalName)
	assert.Equal(t, "Drakfrukter", got.DisplayName)
	assert.Equal(t, models.CategoryProduce, got.Category)
	assert.Equal(t, 2.0, got.Amount)
	assert.Equal(t, units.Piece, got.Unit)
	assert.Equal(t, catalog.DefaultFallbackConfidence, got.Confidence)
	assert.True(t, svc.NeedsReview(got))
}

func TestNormalizeUnparseable(t *testing.T) {
	svc, _ := newTestService(t)

	for _, raw := range []string{"", "   ", "2 st", "finhackad"} {
		t.Run(raw, func(t *testing.T) {
			got := svc.Normalize(raw)
			assert.Equal(t, catalog.UnknownCanonical, got.CanonicalName)
			assert.Equal(t, catalog.UnknownDisplay, got.DisplayName)
			assert.Zero(t, got.Confidence)
			assert.True(t, IsUnknown(got))
			assert.True(t, svc.NeedsReview(got))
		})
	}
}

func TestNormalizeAllNeverAborts(t *testing.T) {
	svc, _ := newTestService(t)

	got := svc.NormalizeAll([]string{"2 dl mjölk", "", "1 st drakfrukt"})
	require.Len(t, got, 3)
	assert.Equal(t, "Mjölk", got[0].DisplayName)
	assert.True(t, IsUnknown(got[1]))
	assert.Equal(t, "drakfrukt", got[2].CanonicalName)
}

func TestRenormalize(t *testing.T) {
	svc, _ := newTestService(t)

	seeded := models.NormalizedIngredient{DisplayName: "Tomater", Amount: 2, Unit: units.Deciliter}
	got := svc.Renormalize(seeded)
	assert.Equal(t, "tomat", got.CanonicalName)
	assert.Equal(t, "Tomat", got.DisplayName)
	assert.Equal(t, 200.0, got.Amount)
	assert.Equal(t, units.Milliliter, got.Unit)
	assert.Equal(t, models.MatchExact, got.MatchMode)

	imported := svc.Normalize("2 klyftor vitlök")
	assert.Equal(t, imported, svc.Renormalize(imported))

	unknown := svc.Renormalize(svc.Normalize(""))
	assert.True(t, IsUnknown(unknown))
}

func TestInferAllergens(t *testing.T) {
	svc, cat := newTestService(t)

	ings := svc.NormalizeAll([]string{
		"2 dl mjölk",
		"400 g pasta",
		"1 st drakfrukt",
		"2 msk jordnötssmör",
		"100 g getost",
		"1 dl sojabönor",
		"1 dl mjölk",
	})
	assert.Equal(t, []string{"gluten", "laktos", "nötter", "soja"}, InferAllergens(cat, ings))
	assert.Empty(t, InferAllergens(cat, nil))
}

func TestBuildAliasReport(t *testing.T) {
	svc, _ := newTestService(t)

	records := svc.NormalizeAll([]string{
		"2 klyftor vitlök",
		"1 vitlöksklyfta",
		"2 drakfrukter",
		"",
		"0.5 dl vatten",
	})
	report := BuildAliasReport(records, DefaultReviewThreshold)

	require.Len(t, report.Aliases, 4)
	top := report.Aliases[0]
	assert.Equal(t, "vitlok", top.CanonicalName)
	assert.Equal(t, 2, top.Count)
	assert.Equal(t, []units.Unit{units.Piece}, top.Units)
	assert.Equal(t, []string{"2 klyftor vitlök", "1 vitlöksklyfta"}, top.Examples)

	require.Len(t, report.Merged, 1)
	assert.Equal(t, "vitlok", report.Merged[0].CanonicalName)

	assert.Equal(t, []string{"2 drakfrukter"}, report.Unresolved)
	assert.Equal(t, 2, report.Review)

	assert.Equal(t, report, BuildAliasReport(records, DefaultReviewThreshold))
}

func TestNormalizeConcurrent(t *testing.T) {
	svc, _ := newTestService(t)
	lines := []string{"2 klyftor vitlök, finhackad", "3 dl crème fraîche", "Dill plockad - 50 ml"}

	want := svc.NormalizeAll(lines)

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				for j, l := range lines {
					if got := svc.Normalize(l); got != want[j] {
						t.Errorf("Normalize(%q) = %+v, want %+v", l, got, want[j])
						return
					}
				}
			}
		}()
	}
	wg.Wait()
}
