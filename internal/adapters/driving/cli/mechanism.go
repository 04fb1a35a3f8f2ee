package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/kpptag/internal/core/domain"
)

var writeOutput string

var speciesCmd = &cobra.Command{
	Use:   "species [equation-file]",
	Short: "List declared species",
	Long: `Reads the #DEFVAR and #DEFFIX blocks of an equation file.
Without an argument the configured equation file is read.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSpecies,
}

var monitorCmd = &cobra.Command{
	Use:   "monitor",
	Short: "List reactions from the compiled monitor listing",
	Args:  cobra.NoArgs,
	RunE:  runMonitor,
}

var equationsCmd = &cobra.Command{
	Use:   "equations [equation-file]",
	Short: "List reactions of an equation file by category",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runEquations,
}

var writeCmd = &cobra.Command{
	Use:   "write [equation-file]",
	Short: "Rewrite an equation file in canonical layout",
	Long: `Loads an equation file and writes it back with species blocks and
reactions laid out in fixed columns. Long reactions are split at '+'
boundaries to respect the configured line width.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runWrite,
}

var diffCmd = &cobra.Command{
	Use:   "diff <left> <right>",
	Short: "Compare the reactions of two equation files",
	Args:  cobra.ExactArgs(2),
	RunE:  runDiff,
}

var releaseCmd = &cobra.Command{
	Use:   "release [species...]",
	Short: "List monitor reactions involving halocarbon source species",
	Long: `Lists the monitor reactions that consume or produce any of the given
species. Without arguments the fixed-concentration halocarbons CHBr3,
CH3Cl, CH2Cl2 and CHCl3 are used.`,
	RunE: runRelease,
}

func init() {
	writeCmd.Flags().StringVarP(&writeOutput, "output", "o", "", "output file (default stdout)")

	rootCmd.AddCommand(speciesCmd)
	rootCmd.AddCommand(monitorCmd)
	rootCmd.AddCommand(equationsCmd)
	rootCmd.AddCommand(writeCmd)
	rootCmd.AddCommand(diffCmd)
	rootCmd.AddCommand(releaseCmd)
}

func loadMechanism(cmd *cobra.Command, args []string) (*domain.Mechanism, domain.Settings, error) {
	if err := requireMechanism(); err != nil {
		return nil, domain.Settings{}, err
	}
	cfg, err := resolveSettings(cmd)
	if err != nil {
		return nil, cfg, err
	}
	m, err := mechanismService.LoadEquationFile(cmd.Context(), equationPath(cfg, args), cfg)
	if err != nil {
		return nil, cfg, err
	}
	return m, cfg, nil
}

func runSpecies(cmd *cobra.Command, args []string) error {
	m, _, err := loadMechanism(cmd, args)
	if err != nil {
		return err
	}

	return render(cmd, m.Species, func() {
		st := styles(cmd)
		cmd.Println(st.Header.Render(fmt.Sprintf("%-12s %-7s %s", "NAME", "KIND", "DESCRIPTION")))
		for _, sp := range m.Species {
			cmd.Printf("%-12s %-7s %s\n", sp.Name, sp.Activity, sp.Description)
		}
		cmd.Println()
		cmd.Printf("%d active, %d fixed\n",
			len(m.SpeciesByActivity(domain.ActivityActive)), len(m.SpeciesByActivity(domain.ActivityFixed)))
		printIssues(cmd, m.Issues)
	})
}

func runMonitor(cmd *cobra.Command, _ []string) error {
	if err := requireMechanism(); err != nil {
		return err
	}
	cfg, err := resolveSettings(cmd)
	if err != nil {
		return err
	}

	reactions, issues, err := mechanismService.MonitorReactions(cmd.Context(), cfg)
	if err != nil {
		return err
	}

	result := struct {
		Reactions []domain.Reaction  `json:"reactions" yaml:"reactions"`
		Issues    []domain.LineIssue `json:"issues,omitempty" yaml:"issues,omitempty"`
	}{reactions, issues}

	return render(cmd, result, func() {
		printReactions(cmd, reactions)
		printIssues(cmd, issues)
	})
}

func runEquations(cmd *cobra.Command, args []string) error {
	m, _, err := loadMechanism(cmd, args)
	if err != nil {
		return err
	}

	return render(cmd, m, func() {
		st := styles(cmd)
		for _, cat := range domain.Categories() {
			rxns := m.ByCategory(cat)
			cmd.Println(st.Title.Render(fmt.Sprintf("%s (%d)", cat, len(rxns))))
			for _, r := range rxns {
				cmd.Printf("%6s  %s : %s\n", r.ID, r.Equation(), r.RateLaw)
			}
			cmd.Println()
		}
		if m.SplitCount > 0 {
			cmd.Println(st.Warning.Render(fmt.Sprintf("%d compound statements were split", m.SplitCount)))
		}
		printIssues(cmd, m.Issues)
	})
}

func runWrite(cmd *cobra.Command, args []string) (err error) {
	m, cfg, err := loadMechanism(cmd, args)
	if err != nil {
		return err
	}

	var out io.Writer = cmd.OutOrStdout()
	if writeOutput != "" {
		f, createErr := os.Create(writeOutput)
		if createErr != nil {
			return fmt.Errorf("create output: %w", createErr)
		}
		defer func() {
			if cerr := f.Close(); err == nil {
				err = cerr
			}
		}()
		out = f
	}
	return mechanismService.WriteEquationFile(cmd.Context(), m, out, cfg)
}

func runDiff(cmd *cobra.Command, args []string) error {
	if err := requireMechanism(); err != nil {
		return err
	}
	cfg, err := resolveSettings(cmd)
	if err != nil {
		return err
	}

	diff, err := mechanismService.Diff(cmd.Context(), args[0], args[1], cfg)
	if err != nil {
		return err
	}

	return render(cmd, diff, func() {
		st := styles(cmd)
		for _, eq := range diff.Removed {
			cmd.Println(st.Warning.Render("- " + eq))
		}
		for _, eq := range diff.Added {
			cmd.Println(st.Success.Render("+ " + eq))
		}
		cmd.Printf("%d common, %d removed, %d added\n", diff.Common, len(diff.Removed), len(diff.Added))
	})
}

func runRelease(cmd *cobra.Command, args []string) error {
	if err := requireMechanism(); err != nil {
		return err
	}
	cfg, err := resolveSettings(cmd)
	if err != nil {
		return err
	}

	reactions, err := mechanismService.OxidativeRelease(cmd.Context(), cfg, args)
	if err != nil {
		return err
	}
	return render(cmd, reactions, func() {
		if len(reactions) == 0 {
			cmd.Println("No reactions found.")
			return
		}
		printReactions(cmd, reactions)
	})
}

func printReactions(cmd *cobra.Command, reactions []domain.Reaction) {
	st := styles(cmd)
	cmd.Println(st.Header.Render(fmt.Sprintf("%6s  %s", "ID", "REACTION")))
	for _, r := range reactions {
		cmd.Printf("%6s  %s\n", r.ID, r.Equation())
	}
}

func printIssues(cmd *cobra.Command, issues []domain.LineIssue) {
	if len(issues) == 0 {
		return
	}
	st := styles(cmd)
	cmd.Println()
	cmd.Println(st.Warning.Render(fmt.Sprintf("%d lines skipped:", len(issues))))
	for _, is := range issues {
		cmd.Println(st.Muted.Render(fmt.Sprintf("  line %d: %s (%s)", is.Line, is.Text, is.Reason)))
	}
}
