package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/inculture/skopelos-chatbot/internal/locale"
)

// ChatConfig holds settings of the conversation panel.
type ChatConfig struct {
	DefaultLocale    locale.Locale // Locale of a freshly opened panel (default: el)
	NavigationDelay  time.Duration // Delay before chapter and event deep links fire (default: 1200ms)
	MaxMessageLength int           // Maximum characters per message (default: 500)
	NavigationBuffer int           // Deep links kept for polling clients (default: 100)
}

// Validate checks chat settings.
func (c ChatConfig) Validate() error {
	var errs []error

	if !c.DefaultLocale.IsValid() {
		errs = append(errs, fmt.Errorf("%s: unsupported locale %q", EnvDefaultLocale, string(c.DefaultLocale)))
	}
	if c.NavigationDelay <= 0 {
		errs = append(errs, fmt.Errorf("%s must be positive, got %v", EnvNavigationDelay, c.NavigationDelay))
	}
	if c.MaxMessageLength <= 0 {
		errs = append(errs, fmt.Errorf("%s must be positive, got %d", EnvMaxMessageLength, c.MaxMessageLength))
	}
	if c.NavigationBuffer <= 0 {
		errs = append(errs, fmt.Errorf("%s must be positive, got %d", EnvNavigationBuffer, c.NavigationBuffer))
	}

	return errors.Join(errs...)
}
