package repository

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"slices"

	"github.com/aliskhannn/logic-master/internal/domain/entities"
)

const fallbackCategory = entities.CategoryDeduction

var (
	ErrUnknownCategory = errors.New("unknown question category")
	ErrInvalidQuestion = errors.New("invalid question")
	ErrNoQuestions     = errors.New("no questions for category")
)

// QuestionBank serves questions from a JSON dataset grouped by category.
// Each category list is kept sorted by difficulty.
type QuestionBank struct {
	questions map[entities.Category][]entities.Question
}

// NewQuestionBank loads the question bank from a JSON file.
func NewQuestionBank(path string) (*QuestionBank, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseQuestionBank(data)
}

// ParseQuestionBank builds a bank from JSON of the form {"category": [question, ...]}.
func ParseQuestionBank(data []byte) (*QuestionBank, error) {
	var raw map[entities.Category][]entities.Question
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to unmarshal questions JSON: %w", err)
	}

	bank := &QuestionBank{questions: make(map[entities.Category][]entities.Question, len(raw))}
	for category, list := range raw {
		if !category.Valid() {
			return nil, fmt.Errorf("%w: %q", ErrUnknownCategory, category)
		}

		for i := range list {
			q := &list[i]
			q.Category = category
			if len(q.Options) < 2 || !q.HasOption(q.CorrectIndex) {
				return nil, fmt.Errorf("%w: %s #%d", ErrInvalidQuestion, category, i)
			}
		}

		slices.SortStableFunc(list, func(a, b entities.Question) int {
			switch {
			case a.Difficulty < b.Difficulty:
				return -1
			case a.Difficulty > b.Difficulty:
				return 1
			default:
				return 0
			}
		})
		bank.questions[category] = list
	}

	if len(bank.questions[fallbackCategory]) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoQuestions, fallbackCategory)
	}

	return bank, nil
}

// Generate picks the question at position floor(difficulty*n) of the category
// list. Categories without questions fall back to deduction.
func (b *QuestionBank) Generate(category entities.Category, difficulty float64) (entities.Question, error) {
	list := b.questions[category]
	if len(list) == 0 {
		list = b.questions[fallbackCategory]
	}
	if len(list) == 0 {
		return entities.Question{}, fmt.Errorf("%w: %s", ErrNoQuestions, category)
	}

	n := len(list)
	idx := min(max(int(difficulty*float64(n)), 0), n-1)

	q := list[idx]
	q.Options = slices.Clone(q.Options)
	return q, nil
}

// Count returns how many questions the category holds.
func (b *QuestionBank) Count(category entities.Category) int {
	return len(b.questions[category])
}
