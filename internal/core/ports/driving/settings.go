package driving

import "github.com/custodia-labs/gazettes-cli/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current application settings, defaults filled in.
	Get() (*domain.AppSettings, error)

	// Save validates and persists application settings.
	Save(settings *domain.AppSettings) error

	// Validate checks settings against their constraints.
	Validate(settings *domain.AppSettings) error

	// GetDefaults returns default settings.
	GetDefaults() domain.AppSettings

	// Value returns the current value of a settings key as text.
	Value(key string) (string, error)

	// SetValue parses raw for key, validates the result and persists it.
	SetValue(key, raw string) error

	// Reset removes a stored key so its default applies again.
	Reset(key string) error

	// Keys returns every settings key in display order.
	Keys() []string
}
