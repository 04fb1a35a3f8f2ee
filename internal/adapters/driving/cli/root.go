// Package cli provides the cobra command tree of the kpptag binary.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/kpptag/internal/core/domain"
	"github.com/custodia-labs/kpptag/internal/core/ports/driving"
	"github.com/custodia-labs/kpptag/internal/logger"
)

var version = "dev"

// Services holds the driving ports used by the commands.
type Services struct {
	Mechanism driving.MechanismService
	Settings  driving.SettingsService

	// Close releases adapters opened by the bootstrap. May be nil.
	Close func() error
}

// Bootstrap builds the services once flags are parsed.
// configPath is the --config flag value; empty selects the default file.
type Bootstrap func(configPath string) (*Services, error)

var (
	mechanismService driving.MechanismService
	settingsService  driving.SettingsService
	closeServices    func() error
	bootstrap        Bootstrap
)

// Persistent flags.
var (
	verbose      bool
	outputFormat string
	configPath   string

	flagDir       string
	flagEquation  string
	flagMonitor   string
	flagLayout    string
	flagFamily    string
	flagPrefix    string
	flagStrict    bool
	flagReference string
	flagWidth     int
)

var rootCmd = &cobra.Command{
	Use:   "kpptag",
	Short: "Read, tag and rewrite KPP chemical mechanisms",
	Long: `kpptag reads KPP equation files and compiled monitor listings,
assigns tagged reactions to chemical families, resolves stoichiometric
multipliers and writes mechanisms back in equation-file syntax.`,
	SilenceUsage:       true,
	PersistentPreRunE:  setup,
	PersistentPostRunE: teardown,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	pf.StringVarP(&outputFormat, "format", "f", formatTable, "output format: table, json or yaml")
	pf.StringVar(&configPath, "config", "", "config file (default ~/.kpptag/config.toml)")

	pf.StringVarP(&flagDir, "dir", "d", "", "mechanism directory")
	pf.StringVar(&flagEquation, "eqn", "", "equation file name")
	pf.StringVar(&flagMonitor, "monitor", "", "monitor listing file name")
	pf.StringVar(&flagLayout, "layout", "", "monitor layout: indexed or symbolic")
	pf.StringVar(&flagFamily, "family", "", "tracked family term (e.g. LOx)")
	pf.StringVar(&flagPrefix, "prefix", "", "tag prefix")
	pf.BoolVar(&flagStrict, "strict", false, "abort on tag multiplicity violations")
	pf.StringVar(&flagReference, "reference", "", "stoichiometry reference atom or species")
	pf.IntVar(&flagWidth, "width", 0, "writer line width")
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	version = v
}

// SetBootstrap registers the function that wires services before a command runs.
func SetBootstrap(b Bootstrap) {
	bootstrap = b
}

// SetServices injects services directly, bypassing the bootstrap.
func SetServices(s *Services) {
	mechanismService = s.Mechanism
	settingsService = s.Settings
	closeServices = s.Close
}

// Execute runs the root command with ctx. Command output goes to stdout;
// logs go to stderr.
func Execute(ctx context.Context) error {
	rootCmd.SetOut(os.Stdout)
	return rootCmd.ExecuteContext(ctx)
}

func setup(cmd *cobra.Command, _ []string) error {
	logger.SetVerbose(verbose)
	logger.SetOutput(cmd.ErrOrStderr())

	if err := validateFormat(outputFormat); err != nil {
		return err
	}
	if mechanismService != nil || bootstrap == nil {
		return nil
	}
	s, err := bootstrap(configPath)
	if err != nil {
		return fmt.Errorf("initialise: %w", err)
	}
	SetServices(s)
	return nil
}

func teardown(_ *cobra.Command, _ []string) error {
	if closeServices == nil {
		return nil
	}
	err := closeServices()
	closeServices = nil
	return err
}

func requireMechanism() error {
	if mechanismService == nil {
		return errors.New("mechanism service not configured")
	}
	return nil
}

// resolveSettings loads stored settings and applies flags set on this
// invocation.
func resolveSettings(cmd *cobra.Command) (domain.Settings, error) {
	cfg := domain.DefaultSettings()
	if settingsService != nil {
		stored, err := settingsService.Get()
		if err != nil {
			return cfg, fmt.Errorf("failed to get settings: %w", err)
		}
		cfg = *stored
	}

	flags := cmd.Flags()
	if flags.Changed("dir") {
		cfg.MechanismDir = flagDir
	}
	if flags.Changed("eqn") {
		cfg.EquationFile = flagEquation
	}
	if flags.Changed("monitor") {
		cfg.MonitorFile = flagMonitor
	}
	if flags.Changed("layout") {
		cfg.Layout = domain.MonitorLayout(flagLayout)
	}
	if flags.Changed("family") {
		cfg.Family = flagFamily
	}
	if flags.Changed("prefix") {
		cfg.TagPrefix = flagPrefix
	}
	if flags.Changed("strict") {
		cfg.Mode = domain.TagModeLenient
		if flagStrict {
			cfg.Mode = domain.TagModeStrict
		}
	}
	if flags.Changed("reference") {
		cfg.Reference = flagReference
	}
	if flags.Changed("width") {
		cfg.LineWidth = flagWidth
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// equationPath returns the first argument, or the configured equation file.
func equationPath(cfg domain.Settings, args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return cfg.EquationPath()
}
