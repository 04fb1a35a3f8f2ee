package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/kpptag/internal/core/domain"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and change the stored defaults for mechanism paths, monitor
layout, tagging and output. Command-line flags override stored values.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	Args:  cobra.NoArgs,
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change a setting",
	Long: `Change one stored setting by its key, for example:

  kpptag settings set tagging.mode strict
  kpptag settings set equation.rate_markers "%,:"`,
	Args: cobra.ExactArgs(2),
	RunE: runSettingsSet,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	rootCmd.AddCommand(settingsCmd)
}

func requireSettings() error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}
	return nil
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if err := requireSettings(); err != nil {
		return err
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	return render(cmd, settings, func() {
		st := styles(cmd)
		cmd.Println(st.Title.Render("Current Settings"))
		cmd.Println()
		for _, key := range settingsService.Keys() {
			value := settingValue(settings, key)
			if value == "" {
				value = st.Muted.Render("(not set)")
			}
			cmd.Printf("  %-24s %s\n", key, value)
		}
		cmd.Println()

		if err := settings.Validate(); err != nil {
			cmd.Println(st.Warning.Render(fmt.Sprintf("Warning: %v", err)))
		} else {
			cmd.Println(st.Success.Render("Configuration is valid."))
		}
	})
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if err := requireSettings(); err != nil {
		return err
	}

	key, value := args[0], args[1]
	if err := settingsService.Set(key, value); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}
	cmd.Printf("%s = %s\n", key, value)
	return nil
}

// settingValue renders the field stored under a config key.
func settingValue(s *domain.Settings, key string) string {
	switch key {
	case "mechanism.dir":
		return s.MechanismDir
	case "mechanism.equation_file":
		return s.EquationFile
	case "mechanism.monitor_file":
		return s.MonitorFile
	case "monitor.layout":
		return string(s.Layout)
	case "tagging.family":
		return s.Family
	case "tagging.prefix":
		return s.TagPrefix
	case "tagging.mode":
		return string(s.Mode)
	case "stoichiometry.reference":
		return s.Reference
	case "writer.line_width":
		return strconv.Itoa(s.LineWidth)
	case "storage.dir":
		return s.StorageDir
	case "equation.rate_markers":
		return strings.Join(s.RateMarkers, ",")
	default:
		return ""
	}
}
