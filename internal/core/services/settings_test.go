package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/kpptag/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/kpptag/internal/core/domain"
)

func TestSettingsService_Get_ReturnsDefaults(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())

	settings, err := service.Get()
	require.NoError(t, err)

	want := domain.DefaultSettings()
	assert.Equal(t, &want, settings)
}

func TestSettingsService_Get_ReturnsStoredValues(t *testing.T) {
	store := memory.NewConfigStore()
	_ = store.Set("mechanism.dir", "/data/kpp")
	_ = store.Set("monitor.layout", "symbolic")
	_ = store.Set("tagging.family", "POx")
	_ = store.Set("tagging.mode", "strict")
	_ = store.Set("writer.line_width", int64(60))
	_ = store.Set("equation.rate_markers", []any{"GCARR", "PHOTOL"})

	settings, err := NewSettingsService(store).Get()
	require.NoError(t, err)

	assert.Equal(t, "/data/kpp", settings.MechanismDir)
	assert.Equal(t, domain.LayoutSymbolic, settings.Layout)
	assert.Equal(t, "POx", settings.Family)
	assert.Equal(t, domain.TagModeStrict, settings.Mode)
	assert.Equal(t, 60, settings.LineWidth)
	assert.Equal(t, []string{"GCARR", "PHOTOL"}, settings.RateMarkers)
}

func TestSettingsService_Get_InvalidValuesReturnDefaults(t *testing.T) {
	store := memory.NewConfigStore()
	_ = store.Set("monitor.layout", "columnar")
	_ = store.Set("tagging.mode", "relaxed")
	_ = store.Set("writer.line_width", -1)

	settings, err := NewSettingsService(store).Get()
	require.NoError(t, err)

	defaults := domain.DefaultSettings()
	assert.Equal(t, defaults.Layout, settings.Layout)
	assert.Equal(t, defaults.Mode, settings.Mode)
	assert.Equal(t, defaults.LineWidth, settings.LineWidth)
}

func TestSettingsService_Save(t *testing.T) {
	store := memory.NewConfigStore()
	service := NewSettingsService(store)

	settings := domain.DefaultSettings()
	settings.Family = "POx"
	settings.RateMarkers = []string{"GCARR"}
	require.NoError(t, service.Save(&settings))

	assert.Equal(t, "POx", store.GetString("tagging.family"))
	assert.Equal(t, domain.DefaultLineWidth, store.GetInt("writer.line_width"))
	assert.Equal(t, []string{"GCARR"}, store.GetStringSlice("equation.rate_markers"))

	got, err := service.Get()
	require.NoError(t, err)
	assert.Equal(t, &settings, got)
}

func TestSettingsService_Save_Invalid(t *testing.T) {
	store := memory.NewConfigStore()
	settings := domain.DefaultSettings()
	settings.Layout = "columnar"

	err := NewSettingsService(store).Save(&settings)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, store.Keys())
}

func TestSettingsService_Set(t *testing.T) {
	tests := []struct {
		key   string
		value string
		check func(t *testing.T, s *domain.Settings)
	}{
		{"tagging.mode", "strict", func(t *testing.T, s *domain.Settings) {
			assert.Equal(t, domain.TagModeStrict, s.Mode)
		}},
		{"writer.line_width", "72", func(t *testing.T, s *domain.Settings) {
			assert.Equal(t, 72, s.LineWidth)
		}},
		{"equation.rate_markers", "GCARR, HET ,", func(t *testing.T, s *domain.Settings) {
			assert.Equal(t, []string{"GCARR", "HET"}, s.RateMarkers)
		}},
		{"stoichiometry.reference", "Br", func(t *testing.T, s *domain.Settings) {
			assert.Equal(t, "Br", s.Reference)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			service := NewSettingsService(memory.NewConfigStore())
			require.NoError(t, service.Set(tt.key, tt.value))

			settings, err := service.Get()
			require.NoError(t, err)
			tt.check(t, settings)
		})
	}
}

func TestSettingsService_Set_Errors(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())

	assert.ErrorIs(t, service.Set("solver.tolerance", "1e-3"), domain.ErrInvalidInput)
	assert.ErrorIs(t, service.Set("writer.line_width", "wide"), domain.ErrInvalidInput)
	assert.ErrorIs(t, service.Set("writer.line_width", "5"), domain.ErrInvalidInput)
	assert.ErrorIs(t, service.Set("tagging.mode", "relaxed"), domain.ErrInvalidInput)
}

func TestSettingsService_Keys(t *testing.T) {
	keys := NewSettingsService(memory.NewConfigStore()).Keys()

	assert.Len(t, keys, 11)
	assert.Equal(t, "mechanism.dir", keys[0])
	assert.Contains(t, keys, "tagging.prefix")
}
