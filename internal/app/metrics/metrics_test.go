package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRegisters(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.MessagesTotal.WithLabelValues("voice").Inc()
	m.StageErrors.WithLabelValues("upload", "transport").Inc()

	families, err := reg.Gather()
	require.NoError(t, err)

	names := make([]string, 0, len(families))
	for _, family := range families {
		names = append(names, family.GetName())
	}
	assert.Contains(t, names, "voice_digest_messages_total")
	assert.Contains(t, names, "voice_digest_stage_errors_total")
	assert.Equal(t, 1.0, testutil.ToFloat64(m.MessagesTotal.WithLabelValues("voice")))
}

func TestNewWithoutRegistry(t *testing.T) {
	// Two unregistered instances must not collide
	a := New(nil)
	b := New(nil)

	a.RepliesTotal.WithLabelValues("summary", "ok").Inc()

	assert.Equal(t, 1.0, testutil.ToFloat64(a.RepliesTotal.WithLabelValues("summary", "ok")))
	assert.Equal(t, 0.0, testutil.ToFloat64(b.RepliesTotal.WithLabelValues("summary", "ok")))
}

func TestObservePoll(t *testing.T) {
	m := New(nil)

	m.ObservePoll(0, "queued")
	m.ObservePoll(1, "processing")
	m.ObservePoll(2, "completed")

	assert.Equal(t, 1.0, testutil.ToFloat64(m.PollStatuses.WithLabelValues("queued")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.PollStatuses.WithLabelValues("completed")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.PollAttempts))
}
