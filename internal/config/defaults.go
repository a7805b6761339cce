package config

import "time"

// Default configuration constants
const (
	// Provider endpoints
	DefaultAssemblyAIBaseURL = "https://api.assemblyai.com/v2"
	DefaultOpenAIModel       = "text-davinci-002"

	// Poll defaults. Interval x MaxAttempts is the effective transcript timeout.
	DefaultPollInterval    = 1 * time.Second
	DefaultPollMaxAttempts = 120

	// Timeout defaults
	DefaultHTTPTimeout     = 120 * time.Second
	DefaultDownloadTimeout = 300 * time.Second

	// Telegram long-poll timeout in seconds
	DefaultUpdateTimeout = 60

	DefaultEnvironment = "production"
)

// Compiled-in credential fallbacks, used when the environment does not set a
// value. Override at build time with
// -ldflags "-X voice-digest/internal/config.fallbackAssemblyAIToken=...".
var (
	fallbackAssemblyAIToken = ""
	fallbackOpenAIToken     = ""
	fallbackTelegramToken   = ""
)
