package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/gazettes-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/gazettes-cli/internal/core/domain"
)

func TestNewSettingsService(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())

	require.NotNil(t, service)
}

func TestSettingsService_Get_ReturnsDefaults(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())

	settings, err := service.Get()

	require.NoError(t, err)
	assert.Equal(t, domain.DefaultAppSettings(), *settings)
}

func TestSettingsService_Get_ReturnsStoredValues(t *testing.T) {
	store := memory.NewConfigStore()
	_ = store.Set("output.dir", "/srv/out")
	_ = store.Set("batch.workers", int64(8))
	_ = store.Set("pipeline.glue_roman_numerals", false)
	_ = store.Set("pipeline.quote_marks", []any{"???"})
	_ = store.Set("tabular.min_fragment_length", 0)

	service := NewSettingsService(store)

	settings, err := service.Get()

	require.NoError(t, err)
	assert.Equal(t, "/srv/out", settings.Output.Dir)
	assert.Equal(t, 8, settings.Batch.Workers)
	assert.False(t, settings.Pipeline.GlueRomanNumerals)
	assert.Equal(t, []string{"???"}, settings.Pipeline.QuoteMarks)
	assert.Equal(t, 0, settings.Tabular.MinFragmentLength)
	// Untouched keys keep defaults
	assert.Equal(t, "clean_", settings.Output.CleanPrefix)
}

func TestSettingsService_Save(t *testing.T) {
	store := memory.NewConfigStore()
	service := NewSettingsService(store)

	settings := service.GetDefaults()
	settings.Output.SentenceFormat = domain.SentenceFormatJSON
	settings.Batch.Workers = 2

	require.NoError(t, service.Save(&settings))

	assert.Equal(t, "json", store.GetString("output.sentence_format"))
	assert.Equal(t, 2, store.GetInt("batch.workers"))

	reloaded, err := service.Get()
	require.NoError(t, err)
	assert.Equal(t, settings, *reloaded)
}

func TestSettingsService_Save_Invalid(t *testing.T) {
	store := memory.NewConfigStore()
	service := NewSettingsService(store)

	settings := service.GetDefaults()
	settings.Batch.Workers = 0

	err := service.Save(&settings)

	require.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), "Workers")
	assert.Empty(t, store.Keys())
}

func TestSettingsService_Validate(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())

	tests := []struct {
		name    string
		mutate  func(*domain.AppSettings)
		wantErr bool
	}{
		{"defaults", func(*domain.AppSettings) {}, false},
		{"since date", func(s *domain.AppSettings) { s.Discovery.Since = "2021-03-01" }, false},
		{"bad since", func(s *domain.AppSettings) { s.Discovery.Since = "01/03/2021" }, true},
		{"bad format", func(s *domain.AppSettings) { s.Output.SentenceFormat = "xml" }, true},
		{"no passes", func(s *domain.AppSettings) { s.Pipeline.Passes = nil }, true},
		{"blank pass", func(s *domain.AppSettings) { s.Pipeline.Passes = []string{""} }, true},
		{"empty prefix", func(s *domain.AppSettings) { s.Output.CleanPrefix = "" }, true},
		{"filler run", func(s *domain.AppSettings) { s.Pipeline.MinFillerRun = 0 }, true},
		{"too many workers", func(s *domain.AppSettings) { s.Batch.Workers = 65 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			settings := domain.DefaultAppSettings()
			tt.mutate(&settings)

			err := service.Validate(&settings)
			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrInvalidInput)
			} else {
				assert.NoError(t, err)
			}
		})
	}

	t.Run("nil", func(t *testing.T) {
		assert.ErrorIs(t, service.Validate(nil), domain.ErrInvalidInput)
	})
}

func TestSettingsService_Value(t *testing.T) {
	store := memory.NewConfigStore()
	_ = store.Set("pipeline.prefix_keywords", []string{"Art.", "§", "Inciso"})
	service := NewSettingsService(store)

	tests := []struct {
		key  string
		want string
	}{
		{"pipeline.prefix_keywords", "Art.,§,Inciso"},
		{"batch.workers", "4"},
		{"pipeline.glue_roman_numerals", "true"},
		{"output.clean_prefix", "clean_"},
		{"discovery.since", ""},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			got, err := service.Value(tt.key)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := service.Value("output.colour")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSettingsService_SetValue(t *testing.T) {
	store := memory.NewConfigStore()
	service := NewSettingsService(store)

	t.Run("int", func(t *testing.T) {
		require.NoError(t, service.SetValue("batch.workers", " 6 "))
		assert.Equal(t, 6, store.GetInt("batch.workers"))
	})

	t.Run("bool", func(t *testing.T) {
		require.NoError(t, service.SetValue("pipeline.glue_roman_numerals", "false"))
		settings, err := service.Get()
		require.NoError(t, err)
		assert.False(t, settings.Pipeline.GlueRomanNumerals)
	})

	t.Run("list", func(t *testing.T) {
		require.NoError(t, service.SetValue("pipeline.abbreviations", "art, inc ,,sr"))
		assert.Equal(t, []string{"art", "inc", "sr"}, store.GetStringSlice("pipeline.abbreviations"))
	})

	t.Run("only the key is stored", func(t *testing.T) {
		assert.Equal(t, []string{
			"batch.workers",
			"pipeline.abbreviations",
			"pipeline.glue_roman_numerals",
		}, store.Keys())
	})

	t.Run("unparsable", func(t *testing.T) {
		err := service.SetValue("batch.workers", "many")
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
		assert.Equal(t, 6, store.GetInt("batch.workers"))
	})

	t.Run("fails validation", func(t *testing.T) {
		err := service.SetValue("discovery.since", "yesterday")
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
		_, ok := store.Get("discovery.since")
		assert.False(t, ok)
	})

	t.Run("unknown key", func(t *testing.T) {
		assert.ErrorIs(t, service.SetValue("llm.model", "x"), domain.ErrInvalidInput)
	})
}

func TestSettingsService_Reset(t *testing.T) {
	store := memory.NewConfigStore()
	service := NewSettingsService(store)

	require.NoError(t, service.SetValue("output.sentence_prefix", "s_"))
	require.NoError(t, service.Reset("output.sentence_prefix"))

	value, err := service.Value("output.sentence_prefix")
	require.NoError(t, err)
	assert.Equal(t, "sentence_", value)

	assert.ErrorIs(t, service.Reset("nope"), domain.ErrInvalidInput)
}

func TestSettingsService_Keys(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())

	keys := service.Keys()

	assert.Len(t, keys, len(settingsTable))
	assert.Equal(t, "pipeline.passes", keys[0])
	assert.Contains(t, keys, "tabular.data_dir")
}
