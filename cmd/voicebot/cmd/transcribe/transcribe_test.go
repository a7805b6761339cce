package transcribe

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	apperrors "voice-digest/internal/app/errors"
	"voice-digest/internal/app/pipeline"
	"voice-digest/internal/config"
)

// newAssemblyAI completes every job immediately with the uploaded bytes as
// the transcript text.
func newAssemblyAI(t *testing.T) *httptest.Server {
	t.Helper()
	var uploaded []byte
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/upload":
			uploaded, _ = io.ReadAll(r.Body)
			w.Write([]byte(`{"upload_url":"https://cdn.example/a"}`))
		case "/transcript":
			w.Write([]byte(`{"id":"t1","status":"queued"}`))
		case "/transcript/t1":
			w.Write([]byte(`{"id":"t1","status":"completed","text":"` + string(uploaded) + `"}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(server.Close)
	return server
}

func testConfig(t *testing.T) *config.Config {
	cfg := config.Default()
	cfg.Credentials.AssemblyAI = "key"
	cfg.AssemblyAI.BaseURL = newAssemblyAI(t).URL
	cfg.Poll.Interval = time.Millisecond
	return &cfg
}

func TestRunLocalFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "memo.ogg")
	require.NoError(t, os.WriteFile(path, []byte("local words"), 0o644))

	var out bytes.Buffer
	outcome := run(context.Background(), testConfig(t), path, printChat{out: &out}, zap.NewNop())

	assert.Equal(t, pipeline.OutcomeRepliedTranscript, outcome.Kind)
	assert.Equal(t, "local words\n", out.String())
	assert.NoError(t, outcomeError(outcome))
}

func TestRunURL(t *testing.T) {
	files := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("remote words"))
	}))
	defer files.Close()

	var out bytes.Buffer
	outcome := run(context.Background(), testConfig(t), files.URL+"/memo.ogg", printChat{out: &out}, zap.NewNop())

	assert.Equal(t, pipeline.OutcomeRepliedTranscript, outcome.Kind)
	assert.Equal(t, "remote words\n", out.String())
}

func TestRunMissingFile(t *testing.T) {
	var out bytes.Buffer
	outcome := run(context.Background(), testConfig(t), filepath.Join(t.TempDir(), "nope.ogg"), printChat{out: &out}, zap.NewNop())

	assert.Equal(t, pipeline.OutcomeDropped, outcome.Kind)
	assert.Equal(t, pipeline.StageFetch, outcome.Stage)
	assert.Empty(t, out.String())

	err := outcomeError(outcome)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fetch stage")
}

func TestOutcomeError(t *testing.T) {
	tests := []struct {
		name    string
		outcome pipeline.Outcome
		wantErr bool
		is      error
	}{
		{"summary", pipeline.Outcome{Kind: pipeline.OutcomeRepliedSummary}, false, nil},
		{"transcript", pipeline.Outcome{Kind: pipeline.OutcomeRepliedTranscript}, false, nil},
		{"no text", pipeline.Outcome{Kind: pipeline.OutcomeNoText}, true, nil},
		{"timeout", pipeline.Outcome{Kind: pipeline.OutcomeDropped, Stage: pipeline.StagePoll, Err: apperrors.ErrTimeout}, true, apperrors.ErrTimeout},
		{"dropped without error", pipeline.Outcome{Kind: pipeline.OutcomeDropped}, true, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := outcomeError(tt.outcome)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			if tt.is != nil {
				assert.ErrorIs(t, err, tt.is)
			}
		})
	}
}

func TestIsURL(t *testing.T) {
	assert.True(t, isURL("https://example.com/a.ogg"))
	assert.True(t, isURL("http://example.com/a.ogg"))
	assert.False(t, isURL("./a.ogg"))
	assert.False(t, isURL("/tmp/https.ogg"))
}
