package entities

// MaxInsights caps the strengths and weaknesses lists.
const MaxInsights = 5

// CategoryInsight records how a category went in the session that classified it.
type CategoryInsight struct {
	Category Category `json:"type"`
	Accuracy float64  `json:"accuracy"`
	AvgTime  float64  `json:"avgTime"` // 0 when the category had no timed answers
}

// LearningProfile tracks what a user is good and bad at.
type LearningProfile struct {
	Strengths     []CategoryInsight `json:"strengths"`
	Weaknesses    []CategoryInsight `json:"weaknesses"`
	Preferences   []Category        `json:"preferences"`
	LearningGoals []Category        `json:"learningGoals"`
	Trends        *Trends           `json:"trends,omitempty"`
}

func (lp *LearningProfile) normalize() {
	if lp.Strengths == nil {
		lp.Strengths = []CategoryInsight{}
	}
	if lp.Weaknesses == nil {
		lp.Weaknesses = []CategoryInsight{}
	}
	if lp.Preferences == nil {
		lp.Preferences = []Category{}
	}
	if lp.LearningGoals == nil {
		lp.LearningGoals = []Category{}
	}
}
