package config

import (
	"fmt"
	"os"
	"sync"
)

// AIConfig holds the credential for the generative-AI boundary. The key is
// injected at construction rather than looked up globally inside call
// chains, and can be swapped at runtime via Reconfigure.
type AIConfig struct {
	mu     sync.RWMutex
	apiKey string
}

// NewAIConfig reads GEMINI_API_KEY from the environment.
func NewAIConfig() (*AIConfig, error) {
	key := os.Getenv("GEMINI_API_KEY")
	if key == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is required but not set")
	}
	return &AIConfig{apiKey: key}, nil
}

// NewAIConfigWithKey builds a config around an explicit key. Used by tests
// and by the reconfigure endpoint.
func NewAIConfigWithKey(key string) *AIConfig {
	return &AIConfig{apiKey: key}
}

// APIKey returns the current credential.
func (c *AIConfig) APIKey() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.apiKey
}

// Reconfigure replaces the credential.
func (c *AIConfig) Reconfigure(key string) error {
	if key == "" {
		return fmt.Errorf("API key cannot be empty")
	}
	c.mu.Lock()
	c.apiKey = key
	c.mu.Unlock()
	return nil
}
