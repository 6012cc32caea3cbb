package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/ajitpratap0/middagsvalet/internal/catalog"
	"github.com/ajitpratap0/middagsvalet/internal/ingredient"
	"github.com/ajitpratap0/middagsvalet/internal/models"
	"github.com/ajitpratap0/middagsvalet/internal/scoring"
)

// dishInput is a dish as read from a dishes file. IngredientLines are raw
// recipe lines that get normalized and appended to Ingredients.
type dishInput struct {
	models.Dish
	IngredientLines []string `json:"ingredient_lines,omitempty"`
}

// contextInput is the scoring history as read from a context file.
type contextInput struct {
	RecentDishIDs  []string        `json:"recent_dish_ids"`
	RecentProteins []string        `json:"recent_proteins"`
	Ratings        []models.Rating `json:"ratings"`
}

// readJSON decodes the file at path into v. A path of "-" reads stdin.
func readJSON(path string, v any) error {
	var r io.Reader = os.Stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("opening %s: %w", path, err)
		}
		defer func() { _ = f.Close() }()
		r = f
	}
	if err := json.NewDecoder(r).Decode(v); err != nil {
		return fmt.Errorf("decoding %s: %w", path, err)
	}
	return nil
}

func writeJSON(w io.Writer, v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling JSON output: %w", err)
	}
	_, err = fmt.Fprintln(w, string(out))
	return err
}

// loadHousehold reads a household and rejects it if it is malformed.
func loadHousehold(path string) (*models.Household, error) {
	if path == "" {
		return nil, fmt.Errorf("a household file is required")
	}
	var h models.Household
	if err := readJSON(path, &h); err != nil {
		return nil, err
	}
	if err := h.Validate(); err != nil {
		return nil, err
	}
	return &h, nil
}

// loadDishes reads dishes, normalizes raw ingredient lines and fills in
// allergens for dishes that do not list any.
func loadDishes(path string, svc *ingredient.Service, cat *catalog.Catalog) ([]models.Dish, error) {
	if path == "" {
		return nil, fmt.Errorf("a dishes file is required")
	}
	var in []dishInput
	if err := readJSON(path, &in); err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(in))
	dishes := make([]models.Dish, 0, len(in))
	for i := range in {
		d := in[i].Dish
		if d.ID == "" {
			return nil, fmt.Errorf("dish %d has no id", i)
		}
		if seen[d.ID] {
			return nil, fmt.Errorf("duplicate dish id %q", d.ID)
		}
		seen[d.ID] = true

		if len(in[i].IngredientLines) > 0 {
			d.Ingredients = append(d.Ingredients, svc.NormalizeAll(in[i].IngredientLines)...)
		}
		if len(d.Allergens) == 0 {
			d.Allergens = ingredient.InferAllergens(cat, d.Ingredients)
		}
		dishes = append(dishes, d)
	}
	return dishes, nil
}

// loadContext reads scoring history. An empty path gives an empty history.
func loadContext(path string) (*models.ScoreContext, error) {
	if path == "" {
		return &models.ScoreContext{}, nil
	}
	var in contextInput
	if err := readJSON(path, &in); err != nil {
		return nil, err
	}
	ctx := models.ScoreContextFromRatings(in.Ratings, in.RecentDishIDs, in.RecentProteins)
	return &ctx, nil
}

func loadMenu(path string) (models.WeeklyMenu, error) {
	var m models.WeeklyMenu
	if path == "" {
		return m, fmt.Errorf("a menu file is required")
	}
	if err := readJSON(path, &m); err != nil {
		return m, err
	}
	return m, nil
}

// parseLocks turns "day=dishID" specs into locked menu days scored for the
// household.
func parseLocks(specs []string, dishes []models.Dish, household *models.Household, ctx *models.ScoreContext, scorer *scoring.Scorer) ([]models.MenuDay, error) {
	byID := make(map[string]*models.Dish, len(dishes))
	for i := range dishes {
		byID[dishes[i].ID] = &dishes[i]
	}

	locks := make([]models.MenuDay, 0, len(specs))
	for _, spec := range specs {
		dayStr, dishID, ok := strings.Cut(spec, "=")
		if !ok {
			return nil, fmt.Errorf("lock %q: expected day=dish-id", spec)
		}
		day, err := strconv.Atoi(strings.TrimSpace(dayStr))
		if err != nil || day < 0 || day >= household.Preferences.DinnersPerWeek {
			return nil, fmt.Errorf("lock %q: day must be between 0 and %d", spec, household.Preferences.DinnersPerWeek-1)
		}
		d, ok := byID[strings.TrimSpace(dishID)]
		if !ok {
			return nil, fmt.Errorf("lock %q: unknown dish", spec)
		}
		scored := scorer.ScoreHousehold(d, household, ctx)
		locks = append(locks, models.MenuDay{
			DayIndex:      day,
			Dish:          *d,
			Score:         scored.Score,
			ProfileScores: scored.ProfileScores,
			Locked:        true,
		})
	}
	return locks, nil
}
