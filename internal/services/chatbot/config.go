// File: internal/services/chatbot/config.go
package chatbot

import "fmt"

type Config struct {
	// SupportedLanguages lists conversation languages; the first entry is
	// the default.
	SupportedLanguages []string

	// HistoryWindow caps stored exchanges fed back into the engine.
	HistoryWindow int
}

func (c *Config) Validate() error {
	if len(c.SupportedLanguages) == 0 {
		return fmt.Errorf("at least one supported language is required")
	}
	if c.HistoryWindow <= 0 {
		return fmt.Errorf("history_window must be positive")
	}
	return nil
}

func DefaultConfig() *Config {
	return &Config{
		SupportedLanguages: []string{"english", "luganda", "swahili"},
		HistoryWindow:      20,
	}
}

// DefaultLanguage returns the first supported language.
func (c *Config) DefaultLanguage() string {
	return c.SupportedLanguages[0]
}

// Supports reports whether a language is supported.
func (c *Config) Supports(language string) bool {
	for _, l := range c.SupportedLanguages {
		if l == language {
			return true
		}
	}
	return false
}
