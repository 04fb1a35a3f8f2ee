package domain

import (
	"fmt"
	"path/filepath"
)

const unknownDescription = "Unknown"

// MonitorLayout selects the column grammar of a compiled monitor listing.
type MonitorLayout string

// Available monitor layouts.
const (
	// LayoutIndexed carries a sequential integer identifier per line.
	LayoutIndexed MonitorLayout = "indexed"

	// LayoutSymbolic carries a symbolic dummy identifier per line.
	// Only one defunct solver release emitted this form.
	LayoutSymbolic MonitorLayout = "symbolic"
)

// IsValid returns true if the layout is recognised.
func (l MonitorLayout) IsValid() bool {
	return l == LayoutIndexed || l == LayoutSymbolic
}

// String returns the string representation.
func (l MonitorLayout) String() string {
	return string(l)
}

// Description returns a human-readable description of the layout.
func (l MonitorLayout) Description() string {
	switch l {
	case LayoutIndexed:
		return "Indexed (integer reaction numbers)"
	case LayoutSymbolic:
		return "Symbolic (RR dummy names)"
	default:
		return unknownDescription
	}
}

// Default setting values.
const (
	DefaultEquationFile = "gckpp.eqn"
	DefaultMonitorFile  = "gckpp_Monitor.F90"
	DefaultFamily       = "LOx"
	DefaultReference    = "O3"
	DefaultLineWidth    = 43
)

// Settings holds the explicit configuration passed to every reader and writer.
type Settings struct {
	// MechanismDir is the directory holding mechanism files.
	MechanismDir string `json:"mechanism_dir" yaml:"mechanism_dir"`

	// EquationFile is the equation file name inside MechanismDir.
	EquationFile string `json:"equation_file" yaml:"equation_file"`

	// MonitorFile is the compiled monitor listing inside MechanismDir.
	MonitorFile string `json:"monitor_file" yaml:"monitor_file"`

	// Layout is the monitor column grammar.
	Layout MonitorLayout `json:"layout" yaml:"layout"`

	// Family is the tracked production/loss term.
	Family string `json:"family" yaml:"family"`

	// TagPrefix is the prefix of tag pseudo-products.
	TagPrefix string `json:"tag_prefix" yaml:"tag_prefix"`

	// Mode is the tag violation policy.
	Mode TagMode `json:"mode" yaml:"mode"`

	// Reference is the stoichiometry reference atom or species.
	Reference string `json:"reference" yaml:"reference"`

	// LineWidth is the writer's maximum reaction string width.
	LineWidth int `json:"line_width" yaml:"line_width"`

	// RateMarkers complete an equation statement; empty selects the defaults.
	RateMarkers []string `json:"rate_markers,omitempty" yaml:"rate_markers,omitempty"`

	// StorageDir holds the snapshot database; empty disables persistence.
	StorageDir string `json:"storage_dir,omitempty" yaml:"storage_dir,omitempty"`
}

// DefaultSettings returns settings with sensible defaults.
func DefaultSettings() Settings {
	return Settings{
		MechanismDir: ".",
		EquationFile: DefaultEquationFile,
		MonitorFile:  DefaultMonitorFile,
		Layout:       LayoutIndexed,
		Family:       DefaultFamily,
		TagPrefix:    DefaultTagPrefix,
		Mode:         TagModeLenient,
		Reference:    DefaultReference,
		LineWidth:    DefaultLineWidth,
	}
}

// EquationPath returns the equation file path.
func (s Settings) EquationPath() string {
	return resolve(s.MechanismDir, s.EquationFile)
}

// MonitorPath returns the monitor listing path.
func (s Settings) MonitorPath() string {
	return resolve(s.MechanismDir, s.MonitorFile)
}

// Validate checks the settings for consistency.
func (s Settings) Validate() error {
	if !s.Layout.IsValid() {
		return fmt.Errorf("%w: monitor layout %q", ErrInvalidInput, s.Layout)
	}
	if !s.Mode.IsValid() {
		return fmt.Errorf("%w: tagging mode %q", ErrInvalidInput, s.Mode)
	}
	if s.Family == "" {
		return fmt.Errorf("%w: empty family", ErrInvalidInput)
	}
	if s.TagPrefix == "" {
		return fmt.Errorf("%w: empty tag prefix", ErrInvalidInput)
	}
	if s.LineWidth < 10 {
		return fmt.Errorf("%w: line width %d too small", ErrInvalidInput, s.LineWidth)
	}
	return nil
}

func resolve(dir, file string) string {
	if file == "" || filepath.IsAbs(file) || dir == "" {
		return file
	}
	return filepath.Join(dir, file)
}
