package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Environment variable names for credentials
const (
	EnvAssemblyAIToken = "ASSEMBLY_AI_TOKEN"
	EnvOpenAIToken     = "OPENAI_TOKEN"
	EnvOpenAIAPIKey    = "OPENAI_API_KEY"
	EnvTelegramToken   = "TELEGRAM_API_TOKEN"
)

// Credentials holds the three secrets the bot talks to its providers with
type Credentials struct {
	AssemblyAI string
	OpenAI     string
	Telegram   string
}

// LoadEnv loads environment variables from .env file if it exists.
// It returns the path that was loaded, or "" when none was found.
func LoadEnv() (string, error) {
	envPaths := []string{
		".env",
		".env.local",
		"../.env",
		"../../.env",
	}

	// Look for .env file, but don't fail if not found (environment variables might be set system-wide)
	for _, envPath := range envPaths {
		if _, err := os.Stat(envPath); err == nil {
			if err := godotenv.Load(envPath); err != nil {
				return "", fmt.Errorf("error loading %s file: %w", envPath, err)
			}
			return envPath, nil
		}
	}

	return "", nil
}

// GetCredentials reads credentials from the environment, falling back to
// the compiled-in defaults for unset variables.
func GetCredentials() Credentials {
	openAI := getEnvOrDefault(EnvOpenAIToken, "")
	if openAI == "" {
		openAI = getEnvOrDefault(EnvOpenAIAPIKey, fallbackOpenAIToken)
	}

	return Credentials{
		AssemblyAI: getEnvOrDefault(EnvAssemblyAIToken, fallbackAssemblyAIToken),
		OpenAI:     openAI,
		Telegram:   getEnvOrDefault(EnvTelegramToken, fallbackTelegramToken),
	}
}

// Redacted returns a copy safe to log
func (c Credentials) Redacted() map[string]string {
	return map[string]string{
		"assemblyai": redact(c.AssemblyAI),
		"openai":     redact(c.OpenAI),
		"telegram":   redact(c.Telegram),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func redact(secret string) string {
	switch {
	case secret == "":
		return "<unset>"
	case len(secret) <= 8:
		return "****"
	default:
		return secret[:4] + "****"
	}
}
