// Package console renders the game in a terminal and reads player commands.
package console

import (
	"context"
	"fmt"
	"io"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/aliskhannn/logic-master/internal/domain/entities"
	"github.com/aliskhannn/logic-master/internal/service"
)

// Console writes game output to a terminal. It implements
// service.Renderer and service.Notifier.
type Console struct {
	mu       sync.Mutex
	out      io.Writer
	finished chan struct{}
}

// New creates a console writing to out.
func New(out io.Writer) *Console {
	return &Console{
		out:      out,
		finished: make(chan struct{}, 1),
	}
}

// Finished fires after each rendered session result.
func (c *Console) Finished() <-chan struct{} {
	return c.finished
}

func (c *Console) printf(format string, args ...any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, _ = fmt.Fprintf(c.out, format, args...)
}

// RenderQuestion prints the question and its numbered options.
func (c *Console) RenderQuestion(q entities.Question, index, total int, timeLimit time.Duration) {
	var b strings.Builder

	fmt.Fprintf(&b, "\nQuestion %d/%d · %s · difficulty %.0f%%\n", index+1, total, q.Category.DisplayName(), q.Difficulty*100)
	if timeLimit > 0 {
		fmt.Fprintf(&b, "You have %s.\n", timeLimit)
	}
	fmt.Fprintf(&b, "%s\n", q.Text)
	for i, opt := range q.Options {
		fmt.Fprintf(&b, "  %d) %s\n", i+1, opt)
	}
	b.WriteString("Answer with a number, s to skip, h for a hint, q to quit.\n")

	c.printf("%s", b.String())
}

// RenderOutcome prints feedback for a resolved question.
func (c *Console) RenderOutcome(o service.AnswerOutcome) {
	var b strings.Builder

	switch o.Label() {
	case service.OutcomeCorrect:
		fmt.Fprintf(&b, "Correct! +%d points", o.Points)
		if o.StreakBonus > 0 {
			fmt.Fprintf(&b, " (streak %d)", o.Streak)
		}
		b.WriteString("\n")
	case service.OutcomeIncorrect:
		fmt.Fprintf(&b, "Wrong. The answer was %d.\n", o.Record.CorrectIndex+1)
	case service.OutcomeTimeout:
		fmt.Fprintf(&b, "Time is up! The answer was %d.\n", o.Record.CorrectIndex+1)
	case service.OutcomeSkipped:
		fmt.Fprintf(&b, "Skipped. The answer was %d.\n", o.Record.CorrectIndex+1)
	}
	if o.Explanation != "" {
		fmt.Fprintf(&b, "%s\n", o.Explanation)
	}

	c.printf("%s", b.String())
}

// RenderResult prints the session summary and signals Finished.
func (c *Console) RenderResult(r entities.SessionResult, p entities.UserProfile) {
	var b strings.Builder

	fmt.Fprintf(&b, "\n=== Game over ===\n")
	fmt.Fprintf(&b, "Score: %d   Accuracy: %.0f%%   Avg time: %.1fs\n", r.Score, r.Accuracy*100, r.AvgResponseTime)
	fmt.Fprintf(&b, "Rewards: +%d coins, +%d XP\n", r.Coins, r.XP)
	fmt.Fprintf(&b, "Level %d (%d XP) · %d coins\n", p.Level, p.Experience, p.Coins)

	categories := make([]entities.Category, 0, len(r.Mastery))
	for cat := range r.Mastery {
		categories = append(categories, cat)
	}
	slices.Sort(categories)
	for _, cat := range categories {
		m := r.Mastery[cat]
		fmt.Fprintf(&b, "  %-24s %d/%d (%d%%)\n", cat.DisplayName(), m.Correct, m.Total, m.Mastery)
	}

	c.printf("%s", b.String())

	select {
	case c.finished <- struct{}{}:
	default:
	}
}

// RenderStats prints the cross-session statistics of a profile.
func (c *Console) RenderStats(p entities.UserProfile) {
	var b strings.Builder
	st := p.Stats

	fmt.Fprintf(&b, "%s · level %d (%d XP) · %d coins\n", p.Username, p.Level, p.Experience, p.Coins)
	fmt.Fprintf(&b, "Games: %d   Best score: %d   Total score: %d\n", st.TotalGames, st.BestScore, st.TotalScore)
	fmt.Fprintf(&b, "Accuracy: %.0f%% (%d/%d)   Avg time: %.1fs\n",
		st.AverageAccuracy()*100, st.TotalCorrect, st.TotalQuestions, st.AverageResponseTime)

	if t := p.LearningProfile.Trends; t != nil {
		fmt.Fprintf(&b, "Trends: score %+.1f · accuracy %+.2f · speed %+.2f\n", t.Score, t.Accuracy, t.ResponseTime)
	}

	b.WriteString("Achievements:\n")
	for _, a := range p.Achievements {
		mark := " "
		if a.Completed {
			mark = "x"
		}
		fmt.Fprintf(&b, "  [%s] %-16s %d/%d\n", mark, a.Name, a.Progress, a.Target)
	}

	writeInsights(&b, "Strengths", p.LearningProfile.Strengths)
	writeInsights(&b, "Weaknesses", p.LearningProfile.Weaknesses)

	c.printf("%s", b.String())
}

func writeInsights(b *strings.Builder, title string, insights []entities.CategoryInsight) {
	if len(insights) == 0 {
		return
	}
	fmt.Fprintf(b, "%s:\n", title)
	for _, in := range insights {
		fmt.Fprintf(b, "  %-24s %.0f%%\n", in.Category.DisplayName(), in.Accuracy*100)
	}
}

// Notify prints a notification line.
func (c *Console) Notify(_ context.Context, message string, severity entities.Severity) {
	c.printf("[%s] %s\n", strings.ToUpper(string(severity)), message)
}
