package services

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/custodia-labs/gazettes-cli/internal/core/domain"
	"github.com/custodia-labs/gazettes-cli/internal/core/ports/driven"
	"github.com/custodia-labs/gazettes-cli/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

type valueKind int

const (
	kindString valueKind = iota
	kindInt
	kindBool
	kindList
)

// setting binds a config key to one AppSettings field.
type setting struct {
	key  string
	kind valueKind
	get  func(*domain.AppSettings) any
	set  func(*domain.AppSettings, any)
}

// settingsTable lists every key in display order.
var settingsTable = []setting{
	{"pipeline.passes", kindList,
		func(s *domain.AppSettings) any { return s.Pipeline.Passes },
		func(s *domain.AppSettings, v any) { s.Pipeline.Passes = v.([]string) }},
	{"pipeline.abbreviations", kindList,
		func(s *domain.AppSettings) any { return s.Pipeline.Abbreviations },
		func(s *domain.AppSettings, v any) { s.Pipeline.Abbreviations = v.([]string) }},
	{"pipeline.glue_roman_numerals", kindBool,
		func(s *domain.AppSettings) any { return s.Pipeline.GlueRomanNumerals },
		func(s *domain.AppSettings, v any) { s.Pipeline.GlueRomanNumerals = v.(bool) }},
	{"pipeline.quote_marks", kindList,
		func(s *domain.AppSettings) any { return s.Pipeline.QuoteMarks },
		func(s *domain.AppSettings, v any) { s.Pipeline.QuoteMarks = v.([]string) }},
	{"pipeline.prefix_keywords", kindList,
		func(s *domain.AppSettings) any { return s.Pipeline.PrefixKeywords },
		func(s *domain.AppSettings, v any) { s.Pipeline.PrefixKeywords = v.([]string) }},
	{"pipeline.min_filler_run", kindInt,
		func(s *domain.AppSettings) any { return s.Pipeline.MinFillerRun },
		func(s *domain.AppSettings, v any) { s.Pipeline.MinFillerRun = v.(int) }},
	{"output.dir", kindString,
		func(s *domain.AppSettings) any { return s.Output.Dir },
		func(s *domain.AppSettings, v any) { s.Output.Dir = v.(string) }},
	{"output.clean_prefix", kindString,
		func(s *domain.AppSettings) any { return s.Output.CleanPrefix },
		func(s *domain.AppSettings, v any) { s.Output.CleanPrefix = v.(string) }},
	{"output.sentence_prefix", kindString,
		func(s *domain.AppSettings) any { return s.Output.SentencePrefix },
		func(s *domain.AppSettings, v any) { s.Output.SentencePrefix = v.(string) }},
	{"output.sentence_format", kindString,
		func(s *domain.AppSettings) any { return s.Output.SentenceFormat },
		func(s *domain.AppSettings, v any) { s.Output.SentenceFormat = v.(string) }},
	{"discovery.since", kindString,
		func(s *domain.AppSettings) any { return s.Discovery.Since },
		func(s *domain.AppSettings, v any) { s.Discovery.Since = v.(string) }},
	{"batch.workers", kindInt,
		func(s *domain.AppSettings) any { return s.Batch.Workers },
		func(s *domain.AppSettings, v any) { s.Batch.Workers = v.(int) }},
	{"batch.ledger_dir", kindString,
		func(s *domain.AppSettings) any { return s.Batch.LedgerDir },
		func(s *domain.AppSettings, v any) { s.Batch.LedgerDir = v.(string) }},
	{"tabular.catalog_path", kindString,
		func(s *domain.AppSettings) any { return s.Tabular.CatalogPath },
		func(s *domain.AppSettings, v any) { s.Tabular.CatalogPath = v.(string) }},
	{"tabular.data_dir", kindString,
		func(s *domain.AppSettings) any { return s.Tabular.DataDir },
		func(s *domain.AppSettings, v any) { s.Tabular.DataDir = v.(string) }},
	{"tabular.min_fragment_length", kindInt,
		func(s *domain.AppSettings) any { return s.Tabular.MinFragmentLength },
		func(s *domain.AppSettings, v any) { s.Tabular.MinFragmentLength = v.(int) }},
}

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
	validate    *validator.Validate
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{
		configStore: configStore,
		validate:    validator.New(),
	}
}

// Get retrieves current application settings. Keys that are absent keep
// their defaults.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	settings := domain.DefaultAppSettings()

	for _, f := range settingsTable {
		if _, ok := s.configStore.Get(f.key); !ok {
			continue
		}
		switch f.kind {
		case kindString:
			f.set(&settings, s.configStore.GetString(f.key))
		case kindInt:
			f.set(&settings, s.configStore.GetInt(f.key))
		case kindBool:
			f.set(&settings, s.configStore.GetBool(f.key))
		case kindList:
			f.set(&settings, s.configStore.GetStringSlice(f.key))
		}
	}

	return &settings, nil
}

// Save validates and persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	if err := s.Validate(settings); err != nil {
		return err
	}

	for _, f := range settingsTable {
		if err := s.configStore.Set(f.key, f.get(settings)); err != nil {
			return fmt.Errorf("save %s: %w", f.key, err)
		}
	}
	return nil
}

// Validate checks settings against their struct constraints.
func (s *SettingsService) Validate(settings *domain.AppSettings) error {
	if settings == nil {
		return fmt.Errorf("%w: nil settings", domain.ErrInvalidInput)
	}
	if err := s.validate.Struct(settings); err != nil {
		return fmt.Errorf("%w: %s", domain.ErrInvalidInput, describeValidation(err))
	}
	return nil
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// Value returns the current value of key as text. Lists are comma separated.
func (s *SettingsService) Value(key string) (string, error) {
	f, err := lookupSetting(key)
	if err != nil {
		return "", err
	}

	settings, err := s.Get()
	if err != nil {
		return "", err
	}

	switch v := f.get(settings).(type) {
	case string:
		return v, nil
	case int:
		return strconv.Itoa(v), nil
	case bool:
		return strconv.FormatBool(v), nil
	case []string:
		return strings.Join(v, ","), nil
	default:
		return fmt.Sprint(v), nil
	}
}

// SetValue parses raw for key, validates the resulting settings and persists
// only that key.
func (s *SettingsService) SetValue(key, raw string) error {
	f, err := lookupSetting(key)
	if err != nil {
		return err
	}

	value, err := parseValue(f.kind, raw)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", domain.ErrInvalidInput, key, err)
	}

	settings, err := s.Get()
	if err != nil {
		return err
	}
	f.set(settings, value)
	if err := s.Validate(settings); err != nil {
		return err
	}

	if err := s.configStore.Set(key, value); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// Reset removes a stored key so its default applies again.
func (s *SettingsService) Reset(key string) error {
	if _, err := lookupSetting(key); err != nil {
		return err
	}
	if err := s.configStore.Unset(key); err != nil {
		return fmt.Errorf("reset %s: %w", key, err)
	}
	return nil
}

// Keys returns every settings key in display order.
func (s *SettingsService) Keys() []string {
	keys := make([]string, len(settingsTable))
	for i, f := range settingsTable {
		keys[i] = f.key
	}
	return keys
}

func lookupSetting(key string) (setting, error) {
	for _, f := range settingsTable {
		if f.key == key {
			return f, nil
		}
	}
	return setting{}, fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
}

func parseValue(kind valueKind, raw string) (any, error) {
	raw = strings.TrimSpace(raw)
	switch kind {
	case kindInt:
		return strconv.Atoi(raw)
	case kindBool:
		return strconv.ParseBool(raw)
	case kindList:
		return splitList(raw), nil
	default:
		return raw, nil
	}
}

func splitList(raw string) []string {
	out := []string{}
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// describeValidation reports the first failing field.
func describeValidation(err error) string {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) && len(validationErrors) > 0 {
		ve := validationErrors[0]
		return fmt.Sprintf("%s failed %q", ve.Namespace(), ve.Tag())
	}
	return err.Error()
}
