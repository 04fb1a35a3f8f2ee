package cli

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/kpptag/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/kpptag/internal/core/domain"
	"github.com/custodia-labs/kpptag/internal/core/services"
	"github.com/custodia-labs/kpptag/internal/kpp/grammar"
)

const testEquations = `{ CLI test mechanism }

#DEFVAR

NO         = IGNORE; {NO}
NO2        = IGNORE; {NO2}
O3         = IGNORE; {O3}

#DEFFIX

O2         = IGNORE; {O2}

#EQUATIONS
//
// Gas-phase reactions
//
O3 + NO = NO2 + O2 :                GCARR(3.00E-12, 0.0E+00, -1500.0);
HO2 + NO = OH + NO2 :               GCARR(3.30E-12, 0.0E+00, 270.0);
//
// Photolysis reactions
//
NO2 + hv = NO + O :                 PHOTOL(11);
`

func monitorLine(text, id string) string {
	line := fmt.Sprintf("     '%-100s', &", text)
	line += strings.Repeat(" ", grammar.IdentifierStart-len(line))
	return line + id
}

func testMonitor() string {
	lines := []string{
		"MODULE gckpp_Monitor",
		"  INTEGER, DIMENSION(1) :: MONITOR = (/ 0 /)",
		"  CHARACTER(LEN=15), DIMENSION(1) :: SMASS",
		"  CHARACTER(LEN=100), PARAMETER, DIMENSION(3) :: EQN_NAMES_0 = (/ &",
		monitorLine("O3 + NO --> NO2 + O2", "1"),
		monitorLine("NO2 + O3 --> NO3 + O2 + LOx + T002", "2"),
		fmt.Sprintf("     '%-100s' /)", "O3 + hv --> O1D + O2 + LOx + T001"),
		"",
		"END MODULE gckpp_Monitor",
	}
	return strings.Join(lines, "\n") + "\n"
}

// setupCLI points the commands at a mechanism directory holding the test
// equation file and monitor listing. It returns that directory.
func setupCLI(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, domain.DefaultEquationFile), []byte(testEquations), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, domain.DefaultMonitorFile), []byte(testMonitor()), 0o600))

	settings := services.NewSettingsService(memory.NewConfigStore())
	cfg := settings.GetDefaults()
	cfg.MechanismDir = dir
	require.NoError(t, settings.Save(&cfg))

	SetServices(&Services{
		Mechanism: services.NewMechanismService(memory.NewMechanismStore()),
		Settings:  settings,
	})
	t.Cleanup(func() {
		SetServices(&Services{})
		resetFlags(rootCmd)
	})
	return dir
}

// resetFlags restores every flag in the tree to its default so that runs
// do not leak state into each other.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue) //nolint:errcheck // defaults always parse
		f.Changed = false
	}
	cmd.PersistentFlags().VisitAll(reset)
	cmd.Flags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

// run executes the root command with args and returns its standard output.
// Logs and cobra's error banner go to a discarded buffer.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	resetFlags(rootCmd)
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(new(bytes.Buffer))
	rootCmd.SetArgs(args)
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()
	return buf.String(), err
}
