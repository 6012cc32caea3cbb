package menu

import (
	"sort"

	"github.com/ajitpratap0/middagsvalet/internal/models"
)

// violatesProteinRule reports whether appending candidate after the placed
// dishes would put the same protein on three days in a row. Only the last
// two placed dishes are inspected.
func violatesProteinRule(placed []models.Dish, candidate *models.Dish) bool {
	n := len(placed)
	if n < 2 {
		return false
	}
	a, b := placed[n-1].ProteinTag, placed[n-2].ProteinTag
	return a == b && b == candidate.ProteinTag
}

// breaksProteinWindow reports whether putting candidate on dayIndex creates a
// same-protein run of three anywhere around that day. Every window of three
// consecutive menu positions containing the day is checked, so the days
// after the target count as well as the days before it.
func breaksProteinWindow(menu *models.WeeklyMenu, dayIndex int, candidate *models.Dish) bool {
	days := make([]models.MenuDay, 0, len(menu.Dinners)+1)
	for i := range menu.Dinners {
		if menu.Dinners[i].DayIndex != dayIndex {
			days = append(days, menu.Dinners[i])
		}
	}
	days = append(days, models.MenuDay{DayIndex: dayIndex, Dish: *candidate})
	sort.SliceStable(days, func(i, j int) bool {
		return days[i].DayIndex < days[j].DayIndex
	})

	pos := 0
	for i := range days {
		if days[i].DayIndex == dayIndex {
			pos = i
			break
		}
	}

	for start := pos - 2; start <= pos; start++ {
		if start < 0 || start+2 >= len(days) {
			continue
		}
		p := days[start].Dish.ProteinTag
		if days[start+1].Dish.ProteinTag == p && days[start+2].Dish.ProteinTag == p {
			return true
		}
	}
	return false
}
