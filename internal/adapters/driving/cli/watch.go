package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/kpptag/internal/core/services"
)

var watchDebounce time.Duration

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Re-tag the mechanism whenever its files change",
	Long: `Watches the equation file and monitor listing. After each change the
mechanism is reloaded from scratch and the tag report printed again.
Stop with Ctrl-C.`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", services.DefaultDebounce, "quiet period before reloading")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, _ []string) error {
	if err := requireMechanism(); err != nil {
		return err
	}
	cfg, err := resolveSettings(cmd)
	if err != nil {
		return err
	}

	reload := func(ctx context.Context, path string) error {
		st := styles(cmd)
		cmd.Println(st.Muted.Render(fmt.Sprintf("%s changed at %s", path, time.Now().Format(time.TimeOnly))))

		m, err := mechanismService.LoadEquationFile(ctx, cfg.EquationPath(), cfg)
		if err != nil {
			return err
		}
		cmd.Printf("%s: %d species, %d reactions\n", m.Name, len(m.Species), len(m.Reactions))
		printIssues(cmd, m.Issues)

		report, err := mechanismService.Tag(ctx, cfg)
		if err != nil {
			return err
		}
		printTagReport(cmd, report)
		return nil
	}

	w, err := services.NewMechanismWatcher([]string{cfg.EquationPath(), cfg.MonitorPath()}, watchDebounce, reload)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if err := reload(ctx, cfg.EquationPath()); err != nil {
		cmd.PrintErrln(err)
	}
	return w.Run(ctx)
}
