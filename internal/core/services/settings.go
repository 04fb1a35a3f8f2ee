package services

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/custodia-labs/kpptag/internal/core/domain"
	"github.com/custodia-labs/kpptag/internal/core/ports/driven"
	"github.com/custodia-labs/kpptag/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	keyMechanismDir  = "mechanism.dir"
	keyEquationFile  = "mechanism.equation_file"
	keyMonitorFile   = "mechanism.monitor_file"
	keyMonitorLayout = "monitor.layout"
	keyTagFamily     = "tagging.family"
	keyTagPrefix     = "tagging.prefix"
	keyTagMode       = "tagging.mode"
	keyReference     = "stoichiometry.reference"
	keyLineWidth     = "writer.line_width"
	keyStorageDir    = "storage.dir"
	keyRateMarkers   = "equation.rate_markers"
)

// settingKeys lists the recognised keys in display order.
var settingKeys = []string{
	keyMechanismDir,
	keyEquationFile,
	keyMonitorFile,
	keyMonitorLayout,
	keyTagFamily,
	keyTagPrefix,
	keyTagMode,
	keyReference,
	keyLineWidth,
	keyStorageDir,
	keyRateMarkers,
}

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current settings. Unset or invalid values fall back to defaults.
func (s *SettingsService) Get() (*domain.Settings, error) {
	defaults := domain.DefaultSettings()

	settings := &domain.Settings{
		MechanismDir: s.getString(keyMechanismDir, defaults.MechanismDir),
		EquationFile: s.getString(keyEquationFile, defaults.EquationFile),
		MonitorFile:  s.getString(keyMonitorFile, defaults.MonitorFile),
		Layout:       s.getLayout(defaults.Layout),
		Family:       s.getString(keyTagFamily, defaults.Family),
		TagPrefix:    s.getString(keyTagPrefix, defaults.TagPrefix),
		Mode:         s.getMode(defaults.Mode),
		Reference:    s.getString(keyReference, defaults.Reference),
		LineWidth:    s.getInt(keyLineWidth, defaults.LineWidth),
		StorageDir:   s.configStore.GetString(keyStorageDir), // empty disables snapshots
		RateMarkers:  s.configStore.GetStringSlice(keyRateMarkers),
	}

	return settings, nil
}

// Save validates and persists settings.
func (s *SettingsService) Save(settings *domain.Settings) error {
	if err := settings.Validate(); err != nil {
		return err
	}

	values := []struct {
		key   string
		value any
	}{
		{keyMechanismDir, settings.MechanismDir},
		{keyEquationFile, settings.EquationFile},
		{keyMonitorFile, settings.MonitorFile},
		{keyMonitorLayout, settings.Layout.String()},
		{keyTagFamily, settings.Family},
		{keyTagPrefix, settings.TagPrefix},
		{keyTagMode, settings.Mode.String()},
		{keyReference, settings.Reference},
		{keyLineWidth, settings.LineWidth},
		{keyStorageDir, settings.StorageDir},
	}
	for _, v := range values {
		if err := s.configStore.Set(v.key, v.value); err != nil {
			return fmt.Errorf("save %s: %w", v.key, err)
		}
	}
	if len(settings.RateMarkers) > 0 {
		if err := s.configStore.Set(keyRateMarkers, settings.RateMarkers); err != nil {
			return fmt.Errorf("save %s: %w", keyRateMarkers, err)
		}
	}

	return nil
}

// Set updates one setting by key. The value is parsed and validated
// against the key's type before anything is persisted.
func (s *SettingsService) Set(key, value string) error {
	settings, err := s.Get()
	if err != nil {
		return err
	}

	switch key {
	case keyMechanismDir:
		settings.MechanismDir = value
	case keyEquationFile:
		settings.EquationFile = value
	case keyMonitorFile:
		settings.MonitorFile = value
	case keyMonitorLayout:
		settings.Layout = domain.MonitorLayout(value)
	case keyTagFamily:
		settings.Family = value
	case keyTagPrefix:
		settings.TagPrefix = value
	case keyTagMode:
		settings.Mode = domain.TagMode(value)
	case keyReference:
		settings.Reference = value
	case keyLineWidth:
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%w: %s must be an integer", domain.ErrInvalidInput, key)
		}
		settings.LineWidth = n
	case keyStorageDir:
		settings.StorageDir = value
	case keyRateMarkers:
		settings.RateMarkers = splitList(value)
	default:
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}

	return s.Save(settings)
}

// Keys returns the recognised config keys in display order.
func (s *SettingsService) Keys() []string {
	return append([]string(nil), settingKeys...)
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.Settings {
	return domain.DefaultSettings()
}

// Helper methods for reading config values with defaults

func (s *SettingsService) getString(key, defaultVal string) string {
	if val := s.configStore.GetString(key); val != "" {
		return val
	}
	return defaultVal
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	if val := s.configStore.GetInt(key); val > 0 {
		return val
	}
	return defaultVal
}

func (s *SettingsService) getLayout(defaultVal domain.MonitorLayout) domain.MonitorLayout {
	layout := domain.MonitorLayout(s.configStore.GetString(keyMonitorLayout))
	if !layout.IsValid() {
		return defaultVal
	}
	return layout
}

func (s *SettingsService) getMode(defaultVal domain.TagMode) domain.TagMode {
	mode := domain.TagMode(s.configStore.GetString(keyTagMode))
	if !mode.IsValid() {
		return defaultVal
	}
	return mode
}

// splitList parses a comma-separated value, dropping empty items.
func splitList(value string) []string {
	var out []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
