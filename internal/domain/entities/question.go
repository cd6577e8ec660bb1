package entities

// Category is a reasoning skill a question exercises.
type Category string

const (
	CategoryDeduction   Category = "deduction"
	CategoryInduction   Category = "induction"
	CategoryPattern     Category = "pattern"
	CategoryAnalogy     Category = "analogy"
	CategoryConditional Category = "conditional"
	CategoryFallacy     Category = "fallacy"
	CategoryCategorical Category = "categorical"
	CategorySequence    Category = "sequence"
)

// CategoryInfo holds display metadata and the difficulty range of a category.
type CategoryInfo struct {
	Name          string
	Description   string
	MinDifficulty float64
	MaxDifficulty float64
}

var categories = map[Category]CategoryInfo{
	CategoryDeduction:   {Name: "Deduction", Description: "Deriving specific conclusions from general premises", MinDifficulty: 0.3, MaxDifficulty: 0.9},
	CategoryInduction:   {Name: "Induction", Description: "Inferring general rules from specific cases", MinDifficulty: 0.4, MaxDifficulty: 0.9},
	CategoryPattern:     {Name: "Pattern recognition", Description: "Spotting and predicting repeated structures", MinDifficulty: 0.2, MaxDifficulty: 0.9},
	CategoryAnalogy:     {Name: "Analogy", Description: "Reasoning from similar relationships", MinDifficulty: 0.3, MaxDifficulty: 0.8},
	CategoryConditional: {Name: "Conditional reasoning", Description: "Judging from premises and conditions", MinDifficulty: 0.5, MaxDifficulty: 1.0},
	CategoryFallacy:     {Name: "Fallacy detection", Description: "Finding errors in arguments", MinDifficulty: 0.6, MaxDifficulty: 1.0},
	CategoryCategorical: {Name: "Categorical reasoning", Description: "Working with classes and set relations", MinDifficulty: 0.4, MaxDifficulty: 0.9},
	CategorySequence:    {Name: "Sequence reasoning", Description: "Predicting the next element of a sequence", MinDifficulty: 0.3, MaxDifficulty: 1.0},
}

var categoryOrder = []Category{
	CategoryDeduction,
	CategoryInduction,
	CategoryPattern,
	CategoryAnalogy,
	CategoryConditional,
	CategoryFallacy,
	CategoryCategorical,
	CategorySequence,
}

// AllCategories returns every known category in a stable order.
func AllCategories() []Category {
	out := make([]Category, len(categoryOrder))
	copy(out, categoryOrder)
	return out
}

// Info returns the category metadata and whether the category is known.
func (c Category) Info() (CategoryInfo, bool) {
	info, ok := categories[c]
	return info, ok
}

// Valid reports whether c is a known category.
func (c Category) Valid() bool {
	_, ok := categories[c]
	return ok
}

// DisplayName returns a human readable name, falling back to the raw tag.
func (c Category) DisplayName() string {
	if info, ok := categories[c]; ok {
		return info.Name
	}
	return string(c)
}

// ClampDifficulty restricts d to the category difficulty range.
// Unknown categories clamp to [0, 1].
func (c Category) ClampDifficulty(d float64) float64 {
	lo, hi := 0.0, 1.0
	if info, ok := categories[c]; ok {
		lo, hi = info.MinDifficulty, info.MaxDifficulty
	}
	return min(max(d, lo), hi)
}

// Question is a single multiple-choice puzzle.
type Question struct {
	Category     Category `json:"type"`
	Difficulty   float64  `json:"difficulty"`
	Text         string   `json:"question"`
	Options      []string `json:"options"`
	CorrectIndex int      `json:"correctAnswer"`
	Explanation  string   `json:"explanation"`
	Hint         string   `json:"hint,omitempty"`
}

// HasOption reports whether idx addresses one of the question options.
func (q Question) HasOption(idx int) bool {
	return idx >= 0 && idx < len(q.Options)
}
