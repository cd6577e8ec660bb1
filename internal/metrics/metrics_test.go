package metrics

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aliskhannn/logic-master/internal/domain/entities"
)

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.AnswerRecorded("correct")
	m.AnswerRecorded("correct")
	m.AnswerRecorded("timeout")
	m.SessionFinished(entities.ModeDaily, 420)
	m.AchievementCompleted("speed-5")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Answers.WithLabelValues("correct")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Answers.WithLabelValues("timeout")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Sessions.WithLabelValues("daily")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Achievements.WithLabelValues("speed-5")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.SessionScore))
}

func TestWriteTextfile(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)
	m.SessionFinished(entities.ModeSingle, 100)

	path := filepath.Join(t.TempDir(), "logicmaster.prom")
	require.NoError(t, WriteTextfile(path, reg))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `logicmaster_sessions_finished_total{mode="single"} 1`)
}
