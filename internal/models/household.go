package models

import (
	"errors"
	"fmt"
)

// ErrInvalidHousehold is returned by Household.Validate.
var ErrInvalidHousehold = errors.New("invalid household")

// DefaultChildWeight multiplies child profile weights when a household does
// not configure its own.
const DefaultChildWeight = 1.2

// ProfileType distinguishes adults from children.
type ProfileType string

const (
	ProfileAdult ProfileType = "adult"
	ProfileChild ProfileType = "child"
)

// IsValid returns true if the profile type is recognized.
func (pt ProfileType) IsValid() bool {
	return pt == ProfileAdult || pt == ProfileChild
}

// Profile is one eater in a household.
type Profile struct {
	ID        string      `json:"id"`
	Name      string      `json:"name"`
	Type      ProfileType `json:"type"`
	Pickiness int         `json:"pickiness"` // 0..2
	Weight    *float64    `json:"weight,omitempty"`
}

// BaseWeight returns the configured weight, or 1.
func (p *Profile) BaseWeight() float64 {
	if p.Weight == nil {
		return 1
	}
	return *p.Weight
}

// HouseholdPreferences are the household-wide filters and wishes.
type HouseholdPreferences struct {
	Cuisines         []string `json:"cuisines"`
	Proteins         []string `json:"proteins"`
	AvoidAllergens   []string `json:"avoid_allergens"`
	AvoidIngredients []string `json:"avoid_ingredients"`
	MaxPrepMinutes   int      `json:"max_prep_minutes"`
	DinnersPerWeek   int      `json:"dinners_per_week"`
	MoodTags         []string `json:"mood_tags"`
}

// Household groups profiles that eat together.
type Household struct {
	ID          string               `json:"id"`
	Name        string               `json:"name"`
	Profiles    []Profile            `json:"profiles"`
	Preferences HouseholdPreferences `json:"preferences"`
	ChildWeight *float64             `json:"child_weight,omitempty"`
}

// ChildBoost returns the multiplier applied to child profile weights.
func (h *Household) ChildBoost() float64 {
	if h.ChildWeight == nil {
		return DefaultChildWeight
	}
	return *h.ChildWeight
}

// EffectiveWeight is the profile weight used in household averages.
func (h *Household) EffectiveWeight(p *Profile) float64 {
	w := p.BaseWeight()
	if p.Type == ProfileChild {
		w *= h.ChildBoost()
	}
	return w
}

// Validate checks a household received from outside the engine. The engine
// itself assumes valid input.
func (h *Household) Validate() error {
	if h.ID == "" {
		return fmt.Errorf("%w: id must not be empty", ErrInvalidHousehold)
	}
	if len(h.Profiles) == 0 {
		return fmt.Errorf("%w: at least one profile is required", ErrInvalidHousehold)
	}
	seen := make(map[string]bool, len(h.Profiles))
	for i := range h.Profiles {
		p := &h.Profiles[i]
		if p.ID == "" {
			return fmt.Errorf("%w: profile %d has no id", ErrInvalidHousehold, i)
		}
		if seen[p.ID] {
			return fmt.Errorf("%w: duplicate profile id %q", ErrInvalidHousehold, p.ID)
		}
		seen[p.ID] = true
		if !p.Type.IsValid() {
			return fmt.Errorf("%w: profile %q has unknown type %q", ErrInvalidHousehold, p.ID, p.Type)
		}
		if p.Pickiness < 0 || p.Pickiness > 2 {
			return fmt.Errorf("%w: profile %q pickiness must be between 0 and 2", ErrInvalidHousehold, p.ID)
		}
		if p.Weight != nil && *p.Weight <= 0 {
			return fmt.Errorf("%w: profile %q weight must be greater than 0", ErrInvalidHousehold, p.ID)
		}
	}
	switch h.Preferences.MaxPrepMinutes {
	case 15, 30, 45:
	default:
		return fmt.Errorf("%w: max_prep_minutes must be 15, 30 or 45, got %d", ErrInvalidHousehold, h.Preferences.MaxPrepMinutes)
	}
	if d := h.Preferences.DinnersPerWeek; d < 3 || d > 7 {
		return fmt.Errorf("%w: dinners_per_week must be between 3 and 7, got %d", ErrInvalidHousehold, d)
	}
	if h.ChildWeight != nil && *h.ChildWeight <= 0 {
		return fmt.Errorf("%w: child_weight must be greater than 0", ErrInvalidHousehold)
	}
	return nil
}
