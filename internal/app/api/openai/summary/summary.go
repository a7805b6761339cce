// Package summary asks an OpenAI completion model to summarize a transcript.
package summary

import (
	"context"
	"fmt"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
	apperrors "voice-digest/internal/app/errors"
	"voice-digest/internal/app/logging"
)

// Pinned completion parameters. Only the model is configurable.
const (
	DefaultModel     = "text-davinci-002"
	MaxTokens        = 1024
	Temperature      = 1.0
	PresencePenalty  = 0.8
	FrequencyPenalty = 0.8
	TopP             = 1.0
	Delimiter        = "----"
)

// Completer is the part of the go-openai client the summarizer uses
type Completer interface {
	CreateCompletion(ctx context.Context, request openai.CompletionRequest) (openai.CompletionResponse, error)
}

// Choice is one ranked candidate completion
type Choice struct {
	Text string
}

// Result holds the candidates in the order the provider ranked them
type Result struct {
	Choices []Choice
}

// Summarizer produces summaries through a completion endpoint
type Summarizer struct {
	client Completer
	model  string
	logger *zap.Logger
}

// NewSummarizer creates a summarizer. An empty model selects DefaultModel.
func NewSummarizer(client Completer, model string, logger *zap.Logger) *Summarizer {
	if model == "" {
		model = DefaultModel
	}
	return &Summarizer{
		client: client,
		model:  model,
		logger: logging.OrNop(logger).Named("summary"),
	}
}

// BuildPrompt embeds text between delimiter lines
func BuildPrompt(text string) string {
	return fmt.Sprintf("%[1]s\nMessage from user:\n%[1]s%[2]s\n%[1]s\nSummary:\n%[1]s", Delimiter, text)
}

// Summarize issues one completion request for text. A response with no
// candidates is returned as an empty Result, not an error.
func (s *Summarizer) Summarize(ctx context.Context, text string) (*Result, error) {
	request := openai.CompletionRequest{
		Model:            s.model,
		Prompt:           BuildPrompt(text),
		MaxTokens:        MaxTokens,
		Temperature:      Temperature,
		PresencePenalty:  PresencePenalty,
		FrequencyPenalty: FrequencyPenalty,
		TopP:             TopP,
		Stop:             []string{Delimiter},
	}

	resp, err := s.client.CreateCompletion(ctx, request)
	if err != nil {
		return nil, apperrors.Mark(err, apperrors.ErrSummarization)
	}

	result := &Result{Choices: make([]Choice, 0, len(resp.Choices))}
	for _, choice := range resp.Choices {
		result.Choices = append(result.Choices, Choice{Text: choice.Text})
	}

	s.logger.Debug("completion received",
		zap.String("model", resp.Model),
		zap.Int("choices", len(result.Choices)),
		zap.Int("total_tokens", resp.Usage.TotalTokens),
	)

	return result, nil
}
