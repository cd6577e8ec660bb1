package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/aliskhannn/logic-master/internal/domain/entities"
)

const namespace = "logicmaster"

// Metrics holds the gameplay counters.
type Metrics struct {
	Answers      *prometheus.CounterVec
	Sessions     *prometheus.CounterVec
	SessionScore *prometheus.HistogramVec
	Achievements *prometheus.CounterVec
}

// New creates the metrics and registers them on reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		Answers: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "answers_total",
				Help:      "Answered questions by outcome",
			},
			[]string{"outcome"}, // correct, incorrect, skipped, timeout
		),
		Sessions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "sessions_finished_total",
				Help:      "Finished game sessions by mode",
			},
			[]string{"mode"},
		),
		SessionScore: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "session_score",
				Help:      "Final score of finished sessions",
				Buckets:   prometheus.LinearBuckets(0, 250, 10),
			},
			[]string{"mode"},
		),
		Achievements: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "achievements_completed_total",
				Help:      "Achievements completed by id",
			},
			[]string{"achievement"},
		),
	}
}

func (m *Metrics) AnswerRecorded(outcome string) {
	m.Answers.WithLabelValues(outcome).Inc()
}

func (m *Metrics) SessionFinished(mode entities.Mode, score int) {
	m.Sessions.WithLabelValues(string(mode)).Inc()
	m.SessionScore.WithLabelValues(string(mode)).Observe(float64(score))
}

func (m *Metrics) AchievementCompleted(id string) {
	m.Achievements.WithLabelValues(id).Inc()
}

// WriteTextfile dumps the registry in the text exposition format,
// for pickup by a node exporter textfile collector.
func WriteTextfile(path string, g prometheus.Gatherer) error {
	return prometheus.WriteToTextfile(path, g)
}
