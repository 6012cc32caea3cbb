package models

import "time"

// ScoreContext carries per-request history used when scoring dishes. A nil
// *ScoreContext is an empty history.
type ScoreContext struct {
	RecentDishIDs  []string            `json:"recent_dish_ids"`
	RecentProteins []string            `json:"recent_proteins"`
	Likes          map[string][]string `json:"likes"`    // profile id -> dish ids
	Dislikes       map[string][]string `json:"dislikes"` // profile id -> dish ids
}

// RecentlyServed reports whether dishID is in the recent history.
func (c *ScoreContext) RecentlyServed(dishID string) bool {
	if c == nil {
		return false
	}
	return contains(c.RecentDishIDs, dishID)
}

// RecentProtein reports whether protein was used recently.
func (c *ScoreContext) RecentProtein(protein string) bool {
	if c == nil {
		return false
	}
	return contains(c.RecentProteins, protein)
}

// Liked reports whether the profile liked the dish.
func (c *ScoreContext) Liked(profileID, dishID string) bool {
	if c == nil {
		return false
	}
	return contains(c.Likes[profileID], dishID)
}

// Disliked reports whether the profile disliked the dish.
func (c *ScoreContext) Disliked(profileID, dishID string) bool {
	if c == nil {
		return false
	}
	return contains(c.Dislikes[profileID], dishID)
}

// Reaction is a profile's response to a served dish.
type Reaction string

const (
	ReactionLike    Reaction = "like"
	ReactionDislike Reaction = "dislike"
	ReactionSkip    Reaction = "skip"
)

// Rating is a single rating event.
type Rating struct {
	ProfileID string    `json:"profile_id"`
	DishID    string    `json:"dish_id"`
	Reaction  Reaction  `json:"reaction"`
	CreatedAt time.Time `json:"created_at"`
}

// ScoreContextFromRatings builds like/dislike lists from rating events. A
// later rating for the same profile and dish replaces an earlier one; skips
// clear the previous reaction.
func ScoreContextFromRatings(ratings []Rating, recentDishIDs, recentProteins []string) ScoreContext {
	type key struct{ profile, dish string }
	latest := make(map[key]Rating, len(ratings))
	order := make([]key, 0, len(ratings))
	for _, r := range ratings {
		k := key{r.ProfileID, r.DishID}
		prev, seen := latest[k]
		if !seen {
			order = append(order, k)
		}
		if !seen || !r.CreatedAt.Before(prev.CreatedAt) {
			latest[k] = r
		}
	}

	ctx := ScoreContext{
		RecentDishIDs:  recentDishIDs,
		RecentProteins: recentProteins,
		Likes:          map[string][]string{},
		Dislikes:       map[string][]string{},
	}
	for _, k := range order {
		switch latest[k].Reaction {
		case ReactionLike:
			ctx.Likes[k.profile] = append(ctx.Likes[k.profile], k.dish)
		case ReactionDislike:
			ctx.Dislikes[k.profile] = append(ctx.Dislikes[k.profile], k.dish)
		}
	}
	return ctx
}
