package summary

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	apperrors "voice-digest/internal/app/errors"
	openaiclient "voice-digest/internal/app/api/openai"
)

type mockCompleter struct {
	mock.Mock
}

func (m *mockCompleter) CreateCompletion(ctx context.Context, request openai.CompletionRequest) (openai.CompletionResponse, error) {
	args := m.Called(ctx, request)
	return args.Get(0).(openai.CompletionResponse), args.Error(1)
}

func TestBuildPrompt(t *testing.T) {
	assert.Equal(t,
		"----\nMessage from user:\n----hello world\n----\nSummary:\n----",
		BuildPrompt("hello world"),
	)
}

func TestSummarizePinsParameters(t *testing.T) {
	completer := &mockCompleter{}
	completer.On("CreateCompletion", mock.Anything, mock.MatchedBy(func(req openai.CompletionRequest) bool {
		return req.Model == DefaultModel &&
			req.Prompt == BuildPrompt("hello world") &&
			req.MaxTokens == 1024 &&
			req.Temperature == 1.0 &&
			req.PresencePenalty == float32(0.8) &&
			req.FrequencyPenalty == float32(0.8) &&
			req.TopP == 1.0 &&
			len(req.Stop) == 1 && req.Stop[0] == "----"
	})).Return(openai.CompletionResponse{
		Choices: []openai.CompletionChoice{{Text: " A greeting. "}, {Text: "second"}},
	}, nil)

	result, err := NewSummarizer(completer, "", nil).Summarize(context.Background(), "hello world")

	require.NoError(t, err)
	assert.Equal(t, []Choice{{Text: " A greeting. "}, {Text: "second"}}, result.Choices)
	completer.AssertExpectations(t)
}

func TestSummarizeCustomModel(t *testing.T) {
	completer := &mockCompleter{}
	completer.On("CreateCompletion", mock.Anything, mock.MatchedBy(func(req openai.CompletionRequest) bool {
		return req.Model == "gpt-3.5-turbo-instruct"
	})).Return(openai.CompletionResponse{}, nil)

	result, err := NewSummarizer(completer, "gpt-3.5-turbo-instruct", nil).Summarize(context.Background(), "x")

	require.NoError(t, err)
	assert.Empty(t, result.Choices)
	completer.AssertExpectations(t)
}

func TestSummarizeError(t *testing.T) {
	completer := &mockCompleter{}
	completer.On("CreateCompletion", mock.Anything, mock.Anything).
		Return(openai.CompletionResponse{}, errors.New("rate limited"))

	_, err := NewSummarizer(completer, "", nil).Summarize(context.Background(), "x")

	assert.True(t, errors.Is(err, apperrors.ErrSummarization))
	assert.Contains(t, err.Error(), "rate limited")
}

func TestSummarizeAgainstHTTPServer(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/completions", r.URL.Path)

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "text-davinci-002", body["model"])
		assert.Equal(t, float64(1024), body["max_tokens"])
		assert.Equal(t, []any{"----"}, body["stop"])

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"cmpl-1","object":"text_completion","model":"text-davinci-002","choices":[{"text":"\nShort summary.","index":0,"finish_reason":"stop"}],"usage":{"prompt_tokens":10,"completion_tokens":3,"total_tokens":13}}`))
	}))
	defer server.Close()

	summarizer := NewSummarizer(openaiclient.NewClient("sk-test", server.URL), "", nil)
	result, err := summarizer.Summarize(context.Background(), "hello world")

	require.NoError(t, err)
	require.Len(t, result.Choices, 1)
	assert.Equal(t, "\nShort summary.", result.Choices[0].Text)
}

func TestSummarizeHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":{"message":"The model text-davinci-002 has been deprecated","type":"invalid_request_error","code":"model_not_found"}}`))
	}))
	defer server.Close()

	summarizer := NewSummarizer(openaiclient.NewClient("sk-test", server.URL), "", nil)
	_, err := summarizer.Summarize(context.Background(), "hello world")

	assert.True(t, errors.Is(err, apperrors.ErrSummarization))
}
