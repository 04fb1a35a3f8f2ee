package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/kpptag/internal/core/domain"
	"github.com/custodia-labs/kpptag/internal/tagging"
)

var (
	familiesDeclare bool
	nextTagCount    int
)

var tagCmd = &cobra.Command{
	Use:   "tag",
	Short: "Assign tagged monitor reactions to chemical families",
	Long: `Reads the compiled monitor listing, finds the reactions producing the
configured family term, extracts their tags and classifies each tag into
a family (Photolysis, HOx, NOx, halogens and their crossovers).

In lenient mode a reaction with several tags keeps the first one; --strict
aborts instead.`,
	Args: cobra.NoArgs,
	RunE: runTag,
}

var stoichCmd = &cobra.Command{
	Use:   "stoich",
	Short: "Resolve stoichiometric multipliers of family reactions",
	Args:  cobra.NoArgs,
	RunE:  runStoich,
}

var familiesCmd = &cobra.Command{
	Use:   "families [tag...]",
	Short: "Print #FAMILIES directives for tags",
	Long: `Prints a "P<tag> : <tag>;" line for each tag. Without arguments the
tags found in the monitor listing are used.`,
	RunE: runFamilies,
}

var nextTagCmd = &cobra.Command{
	Use:   "nexttag <last-tag>",
	Short: "Generate the tags following an existing tag",
	Args:  cobra.ExactArgs(1),
	RunE:  runNextTag,
}

func init() {
	familiesCmd.Flags().BoolVar(&familiesDeclare, "declare", false, "also print #DEFVAR declarations")
	nextTagCmd.Flags().IntVarP(&nextTagCount, "count", "n", 1, "number of tags to generate")

	rootCmd.AddCommand(tagCmd)
	rootCmd.AddCommand(stoichCmd)
	rootCmd.AddCommand(familiesCmd)
	rootCmd.AddCommand(nextTagCmd)
}

func runTag(cmd *cobra.Command, _ []string) error {
	if err := requireMechanism(); err != nil {
		return err
	}
	cfg, err := resolveSettings(cmd)
	if err != nil {
		return err
	}

	report, err := mechanismService.Tag(cmd.Context(), cfg)
	if err != nil {
		return err
	}

	return render(cmd, report, func() {
		printTagReport(cmd, report)
	})
}

func printTagReport(cmd *cobra.Command, report *domain.TagReport) {
	st := styles(cmd)
	cmd.Println(st.Title.Render(fmt.Sprintf("Tags for %s", report.Family)))
	cmd.Println(st.Header.Render(fmt.Sprintf("%-6s %6s  %-11s %s", "TAG", "RXN", "FAMILY", "REACTION")))
	for _, a := range report.Assignments {
		cmd.Printf("%-6s %6s  %-11s %s\n", a.Tag, a.Reaction, a.Family, a.Equation)
	}

	cmd.Println()
	byFamily := report.ByFamily()
	for _, fam := range domain.Families() {
		if n := len(byFamily[fam]); n > 0 {
			cmd.Printf("  %-11s %d\n", fam, n)
		}
	}

	if len(report.Untagged) > 0 {
		ids := make([]string, len(report.Untagged))
		for i, id := range report.Untagged {
			ids[i] = id.String()
		}
		cmd.Println(st.Warning.Render("Not tagged: " + strings.Join(ids, ", ")))
	}
	for _, v := range report.Violations {
		cmd.Println(st.Warning.Render(fmt.Sprintf("%s on reaction %s: %v, kept %s", v.Kind, v.Reaction, v.Tags, v.Kept)))
	}
}

func runStoich(cmd *cobra.Command, _ []string) error {
	if err := requireMechanism(); err != nil {
		return err
	}
	cfg, err := resolveSettings(cmd)
	if err != nil {
		return err
	}

	report, err := mechanismService.Stoichiometry(cmd.Context(), cfg)
	if err != nil {
		return err
	}

	return render(cmd, report, func() {
		st := styles(cmd)
		cmd.Println(st.Title.Render(fmt.Sprintf("%s relative to %s", report.Family, report.Reference)))
		cmd.Println(st.Header.Render(fmt.Sprintf("%6s  %-6s %-11s %s", "RXN", "TAG", "FAMILY", "MULTIPLIER")))
		for _, e := range report.Entries {
			cmd.Printf("%6s  %-6s %-11s %g\n", e.Reaction, e.Tag, e.Family, e.Multiplier)
		}
	})
}

func runFamilies(cmd *cobra.Command, args []string) error {
	if err := requireMechanism(); err != nil {
		return err
	}

	tags := make([]domain.Tag, len(args))
	for i, a := range args {
		tags[i] = domain.Tag(a)
	}
	if len(tags) == 0 {
		cfg, err := resolveSettings(cmd)
		if err != nil {
			return err
		}
		report, err := mechanismService.Tag(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		tags = report.Tags()
	}

	return mechanismService.WriteFamilies(cmd.Context(), tags, cmd.OutOrStdout(), familiesDeclare)
}

func runNextTag(cmd *cobra.Command, args []string) error {
	prefix := domain.DefaultTagPrefix
	if cmd.Flags().Changed("prefix") {
		prefix = flagPrefix
	} else if settingsService != nil {
		if s, err := settingsService.Get(); err == nil {
			prefix = s.TagPrefix
		}
	}

	tags, err := tagging.NextTags(domain.Tag(args[0]), prefix, nextTagCount)
	if err != nil {
		return err
	}
	return render(cmd, tags, func() {
		for _, t := range tags {
			cmd.Println(t)
		}
	})
}
