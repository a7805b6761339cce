// Package openai builds go-openai clients from the bot configuration.
package openai

import (
	"github.com/sashabaranov/go-openai"
)

// NewClient creates an OpenAI client for apiKey. A non-empty baseURL
// replaces the default API root.
func NewClient(apiKey, baseURL string) *openai.Client {
	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}
	return openai.NewClientWithConfig(config)
}
