package service

import "github.com/aliskhannn/logic-master/internal/domain/entities"

const (
	weaknessPicks = 2
	goalPicks     = 2
)

// RecommendCategories plans which categories a session should cycle through.
// Weaknesses and goals dominate; the top strength and preference keep the
// player motivated. An empty plan falls back to every category.
func RecommendCategories(lp entities.LearningProfile) []entities.Category {
	var picks []entities.Category

	for i, w := range lp.Weaknesses {
		if i == weaknessPicks {
			break
		}
		picks = append(picks, w.Category)
	}

	picks = append(picks, takeFirst(lp.LearningGoals, goalPicks)...)

	if len(lp.Strengths) > 0 {
		picks = append(picks, lp.Strengths[0].Category)
	}
	if len(lp.Preferences) > 0 {
		picks = append(picks, lp.Preferences[0])
	}

	plan := make([]entities.Category, 0, len(picks))
	for _, c := range uniqueKeepOrder(picks) {
		if c.Valid() {
			plan = append(plan, c)
		}
	}
	if len(plan) == 0 {
		return entities.AllCategories()
	}

	return plan
}

func takeFirst[T any](in []T, n int) []T {
	if len(in) <= n {
		return in
	}
	return in[:n]
}

func uniqueKeepOrder[T comparable](in []T) []T {
	seen := make(map[T]struct{}, len(in))
	out := make([]T, 0, len(in))
	for _, v := range in {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
