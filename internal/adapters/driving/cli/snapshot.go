package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Manage stored mechanism snapshots",
	Long: `Snapshots are loaded mechanisms stored in the database under
storage.dir. Each load is stored as a new snapshot.`,
}

var snapshotSaveCmd = &cobra.Command{
	Use:   "save [equation-file]",
	Short: "Load an equation file and store it",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runSnapshotSave,
}

var snapshotListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored snapshots",
	Args:  cobra.NoArgs,
	RunE:  runSnapshotList,
}

var snapshotShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a stored snapshot",
	Args:  cobra.ExactArgs(1),
	RunE:  runSnapshotShow,
}

var snapshotDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a stored snapshot",
	Args:  cobra.ExactArgs(1),
	RunE:  runSnapshotDelete,
}

func init() {
	snapshotCmd.AddCommand(snapshotSaveCmd)
	snapshotCmd.AddCommand(snapshotListCmd)
	snapshotCmd.AddCommand(snapshotShowCmd)
	snapshotCmd.AddCommand(snapshotDeleteCmd)
	rootCmd.AddCommand(snapshotCmd)
}

func runSnapshotSave(cmd *cobra.Command, args []string) error {
	m, _, err := loadMechanism(cmd, args)
	if err != nil {
		return err
	}
	id, err := mechanismService.Snapshot(cmd.Context(), m)
	if err != nil {
		return err
	}
	cmd.Printf("Saved %s (%d species, %d reactions)\n", id, len(m.Species), len(m.Reactions))
	return nil
}

func runSnapshotList(cmd *cobra.Command, _ []string) error {
	if err := requireMechanism(); err != nil {
		return err
	}
	list, err := mechanismService.ListSnapshots(cmd.Context())
	if err != nil {
		return err
	}

	return render(cmd, list, func() {
		if len(list) == 0 {
			cmd.Println("No snapshots.")
			return
		}
		st := styles(cmd)
		cmd.Println(st.Header.Render(fmt.Sprintf("%-36s  %-20s %7s %9s  %s", "ID", "LOADED", "SPECIES", "REACTIONS", "NAME")))
		for _, s := range list {
			cmd.Printf("%-36s  %-20s %7d %9d  %s\n",
				s.ID, s.LoadedAt.Local().Format("2006-01-02 15:04:05"), s.SpeciesCount, s.ReactionCount, s.Name)
		}
	})
}

func runSnapshotShow(cmd *cobra.Command, args []string) error {
	if err := requireMechanism(); err != nil {
		return err
	}
	m, err := mechanismService.GetSnapshot(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	return render(cmd, m, func() {
		cmd.Printf("ID:        %s\n", m.ID)
		cmd.Printf("Name:      %s\n", m.Name)
		cmd.Printf("Source:    %s\n", m.SourcePath)
		cmd.Printf("Loaded:    %s\n", m.LoadedAt.Local().Format("2006-01-02 15:04:05"))
		cmd.Printf("Species:   %d\n", len(m.Species))
		cmd.Printf("Reactions: %d\n", len(m.Reactions))
		cmd.Println()
		printReactions(cmd, m.Reactions)
	})
}

func runSnapshotDelete(cmd *cobra.Command, args []string) error {
	if err := requireMechanism(); err != nil {
		return err
	}
	if err := mechanismService.DeleteSnapshot(cmd.Context(), args[0]); err != nil {
		return err
	}
	cmd.Printf("Deleted %s\n", args[0])
	return nil
}
