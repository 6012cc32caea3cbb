package models

import "time"

// ProfileScore is one profile's 0-100 score for a dish.
type ProfileScore struct {
	ProfileID string   `json:"profile_id"`
	Score     float64  `json:"score"`
	Reasons   []string `json:"reasons,omitempty"`
}

// ScoredDish is a dish with its household aggregate and per-profile breakdown.
type ScoredDish struct {
	Dish          Dish           `json:"dish"`
	ProfileScores []ProfileScore `json:"profile_scores"`
	Score         float64        `json:"score"`
}

// MenuDay is one dinner slot in a weekly menu.
type MenuDay struct {
	DayIndex      int            `json:"day_index"`
	Dish          Dish           `json:"dish"`
	Score         float64        `json:"score"`
	ProfileScores []ProfileScore `json:"profile_scores"`
	Locked        bool           `json:"locked,omitempty"`
}

// WeeklyMenu is a generated week of dinners. Dinners are ordered by day
// index. Unfilled lists day indices for which no dish satisfied the rules.
type WeeklyMenu struct {
	ID          string    `json:"id"`
	HouseholdID string    `json:"household_id"`
	CreatedAt   time.Time `json:"created_at"`
	Dinners     []MenuDay `json:"dinners"`
	Unfilled    []int     `json:"unfilled,omitempty"`
}

// Complete reports whether every requested day got a dinner.
func (m *WeeklyMenu) Complete() bool {
	return len(m.Unfilled) == 0
}

// Day returns the dinner for dayIndex.
func (m *WeeklyMenu) Day(dayIndex int) (MenuDay, bool) {
	for i := range m.Dinners {
		if m.Dinners[i].DayIndex == dayIndex {
			return m.Dinners[i], true
		}
	}
	return MenuDay{}, false
}

// DishIDs returns the ids of dishes placed on days other than exceptDay.
// Pass -1 to include every day.
func (m *WeeklyMenu) DishIDs(exceptDay int) map[string]bool {
	ids := make(map[string]bool, len(m.Dinners))
	for i := range m.Dinners {
		if m.Dinners[i].DayIndex == exceptDay {
			continue
		}
		ids[m.Dinners[i].Dish.ID] = true
	}
	return ids
}

// Dishes returns the dishes of the menu in day order.
func (m *WeeklyMenu) Dishes() []Dish {
	out := make([]Dish, 0, len(m.Dinners))
	for i := range m.Dinners {
		out = append(out, m.Dinners[i].Dish)
	}
	return out
}
