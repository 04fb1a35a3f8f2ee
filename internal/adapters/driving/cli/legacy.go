package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/kpptag/internal/kpp/smvlog"
)

var legacyCmd = &cobra.Command{
	Use:   "legacy",
	Short: "Query a legacy SMVGEAR solver log",
}

var legacyFamilyCmd = &cobra.Command{
	Use:   "family <family> [log-file]",
	Short: "List the reactions of a prod/loss family",
	Long: `Lists the member reactions and coefficients of a family from the
solver log (default smv2.log). A family without members is an error.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runLegacyFamily,
}

var legacyTagsCmd = &cobra.Command{
	Use:   "tags [log-file]",
	Short: "List the active prod/loss tags",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runLegacyTags,
}

func init() {
	legacyCmd.AddCommand(legacyFamilyCmd)
	legacyCmd.AddCommand(legacyTagsCmd)
	rootCmd.AddCommand(legacyCmd)
}

func logPath(args []string, i int) string {
	if len(args) > i {
		return args[i]
	}
	return smvlog.DefaultFileName
}

func runLegacyFamily(cmd *cobra.Command, args []string) error {
	if err := requireMechanism(); err != nil {
		return err
	}

	members, err := mechanismService.LegacyFamily(cmd.Context(), logPath(args, 1), args[0])
	if err != nil {
		return err
	}

	return render(cmd, members, func() {
		st := styles(cmd)
		cmd.Println(st.Header.Render(fmt.Sprintf("%6s  %s", "RXN", "COEFFICIENT")))
		for _, m := range members {
			cmd.Printf("%6d  %g\n", m.Reaction, m.Coefficient)
		}
	})
}

func runLegacyTags(cmd *cobra.Command, args []string) error {
	if err := requireMechanism(); err != nil {
		return err
	}

	tags, err := mechanismService.LegacyTags(cmd.Context(), logPath(args, 0))
	if err != nil {
		return err
	}

	return render(cmd, tags, func() {
		if len(tags) == 0 {
			cmd.Println("No active tags.")
			return
		}
		cmd.Println(strings.Join(tags, " "))
	})
}
