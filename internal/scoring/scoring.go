// Package scoring rates dishes for household members.
package scoring

import (
	"fmt"
	"log/slog"
	"math"
	"sort"
	"strings"

	"github.com/ajitpratap0/middagsvalet/internal/models"
)

const (
	minScore = 0
	maxScore = 100
)

// Reason codes attached to profile scores.
const (
	ReasonCuisine         = "matchande kök"
	ReasonProtein         = "önskat protein"
	ReasonQuick           = "snabb tillagning"
	ReasonSlow            = "för lång tid"
	ReasonMood            = "passar stämningen"
	ReasonAllergen        = "innehåller allergen"
	ReasonAvoidIngredient = "innehåller undvik-ingrediens"
	ReasonKidFriendly     = "barnanpassning"
	ReasonRecentDish      = "nyligen ätit"
	ReasonRecentProtein   = "protein nyligen använt"
	ReasonLiked           = "tidigare gillad"
	ReasonDisliked        = "tidigare ogillad"
)

// Weights controls the size of each scoring adjustment.
type Weights struct {
	Base            float64 `json:"base" mapstructure:"base"`
	Cuisine         float64 `json:"cuisine" mapstructure:"cuisine"`
	Protein         float64 `json:"protein" mapstructure:"protein"`
	TimeBonus       float64 `json:"time_bonus" mapstructure:"time_bonus"`
	TimePenalty     float64 `json:"time_penalty" mapstructure:"time_penalty"`
	Mood            float64 `json:"mood" mapstructure:"mood"`
	Allergen        float64 `json:"allergen" mapstructure:"allergen"`
	AvoidIngredient float64 `json:"avoid_ingredient" mapstructure:"avoid_ingredient"`
	// KidBase scales kid-friendliness for children; PickyStep lowers it per
	// pickiness level.
	KidBase       float64 `json:"kid_base" mapstructure:"kid_base"`
	PickyStep     float64 `json:"picky_step" mapstructure:"picky_step"`
	RecentDish    float64 `json:"recent_dish" mapstructure:"recent_dish"`
	RecentProtein float64 `json:"recent_protein" mapstructure:"recent_protein"`
	Like          float64 `json:"like" mapstructure:"like"`
	Dislike       float64 `json:"dislike" mapstructure:"dislike"`
}

// DefaultWeights returns the standard scoring weights.
func DefaultWeights() Weights {
	return Weights{
		Base:            50,
		Cuisine:         16,
		Protein:         12,
		TimeBonus:       10,
		TimePenalty:     8,
		Mood:            6,
		Allergen:        45,
		AvoidIngredient: 30,
		KidBase:         0.14,
		PickyStep:       0.016,
		RecentDish:      14,
		RecentProtein:   6,
		Like:            20,
		Dislike:         28,
	}
}

// Validate rejects negative weights and a kid term that could turn negative.
func (w Weights) Validate() error {
	fields := map[string]float64{
		"base": w.Base, "cuisine": w.Cuisine, "protein": w.Protein,
		"time_bonus": w.TimeBonus, "time_penalty": w.TimePenalty, "mood": w.Mood,
		"allergen": w.Allergen, "avoid_ingredient": w.AvoidIngredient,
		"kid_base": w.KidBase, "picky_step": w.PickyStep,
		"recent_dish": w.RecentDish, "recent_protein": w.RecentProtein,
		"like": w.Like, "dislike": w.Dislike,
	}
	for name, v := range fields {
		if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("scoring.%s must be a finite number >= 0", name)
		}
	}
	if w.Base > maxScore {
		return fmt.Errorf("scoring.base must be <= %d", maxScore)
	}
	if w.KidBase < 2*w.PickyStep {
		return fmt.Errorf("scoring.kid_base must be at least twice scoring.picky_step")
	}
	return nil
}

// Scorer computes dish scores for profiles and households.
type Scorer struct {
	weights Weights
	logger  *slog.Logger
}

// NewScorer creates a scorer with the given weights.
func NewScorer(weights Weights, logger *slog.Logger) *Scorer {
	return &Scorer{
		weights: weights,
		logger:  logger,
	}
}

// ScoreProfile scores a dish for one profile. The result is clamped to [0,100].
// A nil ctx means no history.
func (s *Scorer) ScoreProfile(dish *models.Dish, profile *models.Profile, household *models.Household, ctx *models.ScoreContext) models.ProfileScore {
	w := s.weights
	prefs := &household.Preferences
	score := w.Base
	var reasons []string

	if anyIn(dish.CuisineTags, prefs.Cuisines) {
		score += w.Cuisine
		reasons = append(reasons, ReasonCuisine)
	}
	if contains(prefs.Proteins, dish.ProteinTag) {
		score += w.Protein
		reasons = append(reasons, ReasonProtein)
	}
	if dish.PrepMinutes <= prefs.MaxPrepMinutes {
		score += w.TimeBonus
		reasons = append(reasons, ReasonQuick)
	} else {
		score -= w.TimePenalty
		reasons = append(reasons, ReasonSlow)
	}
	if anyIn(dish.MoodTags, prefs.MoodTags) {
		score += w.Mood
		reasons = append(reasons, ReasonMood)
	}
	if dish.HasAllergen(prefs.AvoidAllergens) {
		score -= w.Allergen
		reasons = append(reasons, ReasonAllergen)
	}
	if hasAvoidedIngredient(dish, prefs.AvoidIngredients) {
		score -= w.AvoidIngredient
		reasons = append(reasons, ReasonAvoidIngredient)
	}
	if profile.Type == models.ProfileChild {
		score += dish.KidFriendly * (w.KidBase - float64(profile.Pickiness)*w.PickyStep)
		reasons = append(reasons, ReasonKidFriendly)
	}
	if ctx.RecentlyServed(dish.ID) {
		score -= w.RecentDish
		reasons = append(reasons, ReasonRecentDish)
	}
	if ctx.RecentProtein(dish.ProteinTag) {
		score -= w.RecentProtein
		reasons = append(reasons, ReasonRecentProtein)
	}
	if ctx.Liked(profile.ID, dish.ID) {
		score += w.Like
		reasons = append(reasons, ReasonLiked)
	}
	if ctx.Disliked(profile.ID, dish.ID) {
		score -= w.Dislike
		reasons = append(reasons, ReasonDisliked)
	}

	return models.ProfileScore{
		ProfileID: profile.ID,
		Score:     clamp(score),
		Reasons:   reasons,
	}
}

// ScoreHousehold scores a dish for every profile and combines the scores
// into a weighted mean. Children weigh more by the household's child boost.
// The divisor is floored at 1, and the result is rounded to two decimals.
func (s *Scorer) ScoreHousehold(dish *models.Dish, household *models.Household, ctx *models.ScoreContext) models.ScoredDish {
	profileScores := make([]models.ProfileScore, 0, len(household.Profiles))
	var weighted, totalWeight float64

	for i := range household.Profiles {
		p := &household.Profiles[i]
		ps := s.ScoreProfile(dish, p, household, ctx)
		w := household.EffectiveWeight(p)
		weighted += ps.Score * w
		totalWeight += w
		profileScores = append(profileScores, ps)
	}

	return models.ScoredDish{
		Dish:          *dish,
		ProfileScores: profileScores,
		Score:         round2(weighted / math.Max(totalWeight, 1)),
	}
}

// Rank scores every dish and sorts them best first. Dishes with equal scores
// keep their input order.
func (s *Scorer) Rank(dishes []models.Dish, household *models.Household, ctx *models.ScoreContext) []models.ScoredDish {
	ranked := make([]models.ScoredDish, 0, len(dishes))
	for i := range dishes {
		ranked = append(ranked, s.ScoreHousehold(&dishes[i], household, ctx))
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})

	s.logger.Debug("ranked dishes", "household", household.ID, "count", len(ranked))
	return ranked
}

func hasAvoidedIngredient(dish *models.Dish, avoid []string) bool {
	for i := range dish.Ingredients {
		for _, a := range avoid {
			if strings.EqualFold(dish.Ingredients[i].DisplayName, strings.TrimSpace(a)) {
				return true
			}
		}
	}
	return false
}

func anyIn(values, allowed []string) bool {
	for _, v := range values {
		if contains(allowed, v) {
			return true
		}
	}
	return false
}

func contains(list []string, s string) bool {
	for i := range list {
		if list[i] == s {
			return true
		}
	}
	return false
}

func clamp(v float64) float64 {
	return math.Max(minScore, math.Min(maxScore, v))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
