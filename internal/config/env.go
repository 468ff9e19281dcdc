package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/jonathan/seo-article-writer/internal/llm"
)

// ResolveAPIKey picks the API key by precedence: flag, then config file, then the
// provider's environment variable (GEMINI_API_KEY or OPENAI_API_KEY).
func ResolveAPIKey(flagValue, configValue, provider string) (string, error) {
	if key := strings.TrimSpace(flagValue); key != "" {
		return key, nil
	}
	if key := strings.TrimSpace(configValue); key != "" {
		return key, nil
	}

	envName := llm.APIKeyEnv(llm.Provider(strings.ToLower(strings.TrimSpace(provider))))
	if key := strings.TrimSpace(os.Getenv(envName)); key != "" {
		return key, nil
	}
	return "", fmt.Errorf("API key is required (use --api-key, 'api_key' in the config file, or set %s)", envName)
}
