package config

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
	apperrors "voice-digest/internal/app/errors"
)

// Config is the process-wide configuration. It is assembled once by Load
// and must not be mutated afterwards.
type Config struct {
	Credentials Credentials `yaml:"-"`

	Environment string           `yaml:"environment" validate:"oneof=production development"`
	AssemblyAI  AssemblyAIConfig `yaml:"assemblyai"`
	OpenAI      OpenAIConfig     `yaml:"openai"`
	Telegram    TelegramConfig   `yaml:"telegram"`
	Poll        PollConfig       `yaml:"poll"`
	Ops         OpsConfig        `yaml:"ops"`
}

// AssemblyAIConfig configures the speech-to-text adapter
type AssemblyAIConfig struct {
	BaseURL string        `yaml:"base_url" validate:"required,url"`
	Timeout time.Duration `yaml:"timeout" validate:"gt=0"`
}

// OpenAIConfig configures the summarizer
type OpenAIConfig struct {
	// BaseURL overrides the API root, e.g. for a compatible gateway
	BaseURL string `yaml:"base_url" validate:"omitempty,url"`
	Model   string `yaml:"model" validate:"required"`
	// Disabled turns summarization off even when a token is present
	Disabled bool `yaml:"disabled"`
}

// TelegramConfig configures the chat client
type TelegramConfig struct {
	// APIEndpoint and FileEndpoint point at a self-hosted Bot API server.
	// Both are format strings taking the token and the method or path.
	APIEndpoint     string        `yaml:"api_endpoint"`
	FileEndpoint    string        `yaml:"file_endpoint"`
	UpdateTimeout   int           `yaml:"update_timeout" validate:"gte=0"`
	DownloadTimeout time.Duration `yaml:"download_timeout" validate:"gt=0"`
	Debug           bool          `yaml:"debug"`
}

// PollConfig bounds transcript polling
type PollConfig struct {
	Interval    time.Duration `yaml:"interval" validate:"gt=0"`
	MaxAttempts int           `yaml:"max_attempts" validate:"gte=0"`
}

// OpsConfig configures the health/metrics HTTP listener. An empty Listen
// disables it.
type OpsConfig struct {
	Listen string `yaml:"listen" validate:"omitempty,hostname_port"`
}

// Default returns the configuration used when no file is given
func Default() Config {
	return Config{
		Environment: DefaultEnvironment,
		AssemblyAI: AssemblyAIConfig{
			BaseURL: DefaultAssemblyAIBaseURL,
			Timeout: DefaultHTTPTimeout,
		},
		OpenAI: OpenAIConfig{
			Model: DefaultOpenAIModel,
		},
		Telegram: TelegramConfig{
			UpdateTimeout:   DefaultUpdateTimeout,
			DownloadTimeout: DefaultDownloadTimeout,
		},
		Poll: PollConfig{
			Interval:    DefaultPollInterval,
			MaxAttempts: DefaultPollMaxAttempts,
		},
	}
}

// Load assembles the configuration: defaults, then the optional YAML file at
// path, then credentials from the environment (after .env discovery).
func Load(path string) (*Config, error) {
	if _, err := LoadEnv(); err != nil {
		return nil, fmt.Errorf("failed to load environment: %w", err)
	}

	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config YAML: %w", err)
		}
	}

	cfg.Credentials = GetCredentials()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks the tunables. Credentials are checked separately by
// RequireCredentials because not every command needs all of them.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return apperrors.Mark(err, apperrors.ErrInvalidConfig)
	}
	return nil
}

// RequireCredentials fails fast when a credential needed by the caller is
// missing. The OpenAI token is never required: without it the bot replies
// with raw transcripts.
func (c *Config) RequireCredentials(telegram bool) error {
	if c.Credentials.AssemblyAI == "" {
		return apperrors.Wrapf(apperrors.ErrMissingAPIKey, "%s must be set", EnvAssemblyAIToken)
	}
	if telegram && c.Credentials.Telegram == "" {
		return apperrors.Wrapf(apperrors.ErrMissingAPIKey, "%s must be set", EnvTelegramToken)
	}
	return nil
}

// SummarizationEnabled reports whether transcripts should be summarized
func (c *Config) SummarizationEnabled() bool {
	return !c.OpenAI.Disabled && c.Credentials.OpenAI != ""
}

// Development reports whether verbose development defaults apply
func (c *Config) Development() bool {
	return c.Environment == "development"
}
