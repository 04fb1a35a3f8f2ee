package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/custodia-labs/kpptag/internal/core/domain"
)

func TestSpeciesCmd(t *testing.T) {
	setupCLI(t)

	out, err := run(t, "species")
	require.NoError(t, err)

	assert.Contains(t, out, "NO2")
	assert.Contains(t, out, "3 active, 1 fixed")
}

func TestSpeciesCmd_JSON(t *testing.T) {
	setupCLI(t)

	out, err := run(t, "species", "--format", "json")
	require.NoError(t, err)

	var species []domain.Species
	require.NoError(t, json.Unmarshal([]byte(out), &species))
	require.Len(t, species, 4)
	assert.Equal(t, "O2", species[3].Name)
	assert.Equal(t, domain.ActivityFixed, species[3].Activity)
}

func TestRootCmd_RejectsUnknownFormat(t *testing.T) {
	setupCLI(t)

	_, err := run(t, "species", "--format", "xml")
	assert.ErrorContains(t, err, `unknown output format "xml"`)
}

func TestEquationsCmd(t *testing.T) {
	setupCLI(t)

	out, err := run(t, "equations")
	require.NoError(t, err)

	assert.Contains(t, out, "O3 + NO = NO2 + O2 : GCARR(3.00E-12, 0.0E+00, -1500.0)")
	assert.Contains(t, out, "NO2 + hv = NO + O : PHOTOL(11)")
}

func TestMonitorCmd(t *testing.T) {
	setupCLI(t)

	out, err := run(t, "monitor")
	require.NoError(t, err)

	assert.Contains(t, out, "NO2 + O3 = NO3 + O2 + LOx + T002")
	assert.Contains(t, out, "O3 + hv = O1D + O2 + LOx + T001")
}

func TestMonitorCmd_MissingFile(t *testing.T) {
	setupCLI(t)

	_, err := run(t, "monitor", "--monitor", "absent.F90")
	assert.Error(t, err)
}

func TestTagCmd(t *testing.T) {
	setupCLI(t)

	out, err := run(t, "tag")
	require.NoError(t, err)

	assert.Contains(t, out, "Tags for LOx")
	assert.Contains(t, out, "T001")
	assert.Contains(t, out, "T002")
	assert.NotContains(t, out, "Not tagged")
}

func TestTagCmd_YAML(t *testing.T) {
	setupCLI(t)

	out, err := run(t, "tag", "-f", "yaml")
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(out), &decoded))
	assert.NotEmpty(t, decoded)
}

func TestStoichCmd(t *testing.T) {
	setupCLI(t)

	out, err := run(t, "stoich")
	require.NoError(t, err)
	assert.Contains(t, out, "LOx relative to Ox")
}

func TestStoichCmd_UnknownReference(t *testing.T) {
	setupCLI(t)

	_, err := run(t, "stoich", "--reference", "Xe")
	assert.ErrorIs(t, err, domain.ErrUnknownReference)
}

func TestFamiliesCmd(t *testing.T) {
	setupCLI(t)

	out, err := run(t, "families")
	require.NoError(t, err)

	assert.Equal(t, "#FAMILIES\nPT001 : T001;\nPT002 : T002;\n", out)
}

func TestFamiliesCmd_ExplicitTagsWithDeclarations(t *testing.T) {
	setupCLI(t)

	out, err := run(t, "families", "T007", "--declare")
	require.NoError(t, err)

	assert.Contains(t, out, "T007")
	assert.Contains(t, out, "Production tag")
	assert.True(t, strings.HasSuffix(out, "#FAMILIES\nPT007 : T007;\n"))
}

func TestNextTagCmd(t *testing.T) {
	setupCLI(t)

	out, err := run(t, "nexttag", "T009", "-n", "2")
	require.NoError(t, err)
	assert.Equal(t, "T010\nT011\n", out)
}

func TestNextTagCmd_InvalidTag(t *testing.T) {
	setupCLI(t)

	_, err := run(t, "nexttag", "X12")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestWriteCmd_ToFile(t *testing.T) {
	dir := setupCLI(t)
	target := filepath.Join(dir, "out.eqn")

	_, err := run(t, "write", "-o", target)
	require.NoError(t, err)

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Contains(t, string(data), "#EQUATIONS")

	out, err := run(t, "diff", filepath.Join(dir, domain.DefaultEquationFile), target)
	require.NoError(t, err)
	assert.Contains(t, out, "3 common, 0 removed, 0 added")
}

func TestDiffCmd(t *testing.T) {
	dir := setupCLI(t)
	changed := strings.Replace(testEquations, "OH + NO2", "OH + NO3", 1)
	right := filepath.Join(dir, "changed.eqn")
	require.NoError(t, os.WriteFile(right, []byte(changed), 0o600))

	out, err := run(t, "diff", filepath.Join(dir, domain.DefaultEquationFile), right)
	require.NoError(t, err)

	assert.Contains(t, out, "- HO2 + NO = OH + NO2")
	assert.Contains(t, out, "+ HO2 + NO = OH + NO3")
	assert.Contains(t, out, "2 common, 1 removed, 1 added")
}

func TestReleaseCmd(t *testing.T) {
	setupCLI(t)

	out, err := run(t, "release")
	require.NoError(t, err)
	assert.Contains(t, out, "No reactions found.")

	out, err = run(t, "release", "NO")
	require.NoError(t, err)
	assert.Contains(t, out, "O3 + NO = NO2 + O2")
}

func TestCommands_RequireService(t *testing.T) {
	SetServices(&Services{})

	for _, args := range [][]string{
		{"species"},
		{"tag"},
		{"snapshot", "list"},
		{"legacy", "tags"},
	} {
		_, err := run(t, args...)
		assert.EqualError(t, err, "mechanism service not configured", args)
	}
}

func TestBootstrap_RunsOnceAndCloses(t *testing.T) {
	SetServices(&Services{})
	t.Cleanup(func() {
		SetBootstrap(nil)
		SetServices(&Services{})
	})

	var (
		calls  int
		closed int
		gotCfg string
	)
	SetBootstrap(func(path string) (*Services, error) {
		calls++
		gotCfg = path
		return &Services{Close: func() error { closed++; return nil }}, nil
	})

	_, err := run(t, "version", "--config", "/tmp/custom.toml")
	require.NoError(t, err)

	assert.Equal(t, 1, calls)
	assert.Equal(t, 1, closed)
	assert.Equal(t, "/tmp/custom.toml", gotCfg)
}
