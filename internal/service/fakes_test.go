package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/aliskhannn/logic-master/internal/domain/entities"
)

type fakeTimer struct {
	d       time.Duration
	f       func()
	stopped bool
	fired   bool
}

func (t *fakeTimer) Stop() bool {
	active := !t.stopped && !t.fired
	t.stopped = true
	return active
}

// fire runs the callback even when the timer was stopped, the way a real
// timer can race with Stop.
func (t *fakeTimer) fire() {
	t.fired = true
	t.f()
}

type fakeScheduler struct {
	mu     sync.Mutex
	timers []*fakeTimer
}

func (s *fakeScheduler) AfterFunc(d time.Duration, f func()) Timer {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := &fakeTimer{d: d, f: f}
	s.timers = append(s.timers, t)
	return t
}

func (s *fakeScheduler) last() *fakeTimer {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.timers) == 0 {
		return nil
	}
	return s.timers[len(s.timers)-1]
}

func (s *fakeScheduler) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.timers)
}

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type fakeGenerator struct{}

func (fakeGenerator) Generate(category entities.Category, difficulty float64) (entities.Question, error) {
	return entities.Question{
		Category:     category,
		Difficulty:   difficulty,
		Text:         fmt.Sprintf("%s at %.2f", category, difficulty),
		Options:      []string{"a", "b", "c", "d"},
		CorrectIndex: 0,
		Explanation:  "a is right",
		Hint:         "think of a",
	}, nil
}

type fakePlanner struct {
	input DifficultyInput
	plan  []entities.Category
}

func (p fakePlanner) DifficultyInput() DifficultyInput  { return p.input }
func (p fakePlanner) CategoryPlan() []entities.Category { return p.plan }

type presented struct {
	q         entities.Question
	index     int
	total     int
	timeLimit time.Duration
}

type recordingObserver struct {
	mu        sync.Mutex
	presented []presented
	outcomes  []AnswerOutcome
	results   []entities.SessionResult
}

func (o *recordingObserver) QuestionPresented(q entities.Question, index, total int, timeLimit time.Duration) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.presented = append(o.presented, presented{q: q, index: index, total: total, timeLimit: timeLimit})
}

func (o *recordingObserver) AnswerRecorded(outcome AnswerOutcome) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.outcomes = append(o.outcomes, outcome)
}

func (o *recordingObserver) SessionFinished(result entities.SessionResult) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.results = append(o.results, result)
}

type fakeWallet struct {
	coins int
}

func (w *fakeWallet) DeductCoins(amount int) error {
	if w.coins < amount {
		return entities.ErrInsufficientCoins
	}
	w.coins -= amount
	return nil
}

type notification struct {
	message  string
	severity entities.Severity
}

type recordingNotifier struct {
	mu   sync.Mutex
	sent []notification
}

func (n *recordingNotifier) Notify(_ context.Context, message string, severity entities.Severity) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, notification{message: message, severity: severity})
}

type recordingRenderer struct {
	questions int
	outcomes  []AnswerOutcome
	results   []entities.SessionResult
	profiles  []entities.UserProfile
}

func (r *recordingRenderer) RenderQuestion(entities.Question, int, int, time.Duration) { r.questions++ }
func (r *recordingRenderer) RenderOutcome(o AnswerOutcome)                             { r.outcomes = append(r.outcomes, o) }
func (r *recordingRenderer) RenderResult(res entities.SessionResult, p entities.UserProfile) {
	r.results = append(r.results, res)
	r.profiles = append(r.profiles, p)
}

type recordingMetrics struct {
	answers      []string
	sessions     int
	achievements []string
}

func (m *recordingMetrics) AnswerRecorded(outcome string)      { m.answers = append(m.answers, outcome) }
func (m *recordingMetrics) SessionFinished(entities.Mode, int) { m.sessions++ }
func (m *recordingMetrics) AchievementCompleted(id string) {
	m.achievements = append(m.achievements, id)
}
