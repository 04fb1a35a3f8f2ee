package stoich

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/kpptag/internal/core/domain"
	"github.com/custodia-labs/kpptag/internal/kpp/reaction"
	"github.com/custodia-labs/kpptag/internal/tagging"
)

func reactions(t *testing.T) []domain.Reaction {
	t.Helper()
	texts := []string{
		"NO2 + O3 --> NO3 + O2 + LOx + T001",
		"O3 + hv --> O1D + O2 + 2.000 LOx + T002",
		"BrO + HO2 --> HOBr + O2 + LOx",
		"IO + BrO --> 0.8 OIO + 0.2 I + Br + 0.5LOx + T003",
		"O3 + NO --> NO2 + O2",
	}
	out := make([]domain.Reaction, len(texts))
	for i, text := range texts {
		r, err := reaction.ParseMonitorText(domain.IndexID(i+1), text)
		require.NoError(t, err)
		out[i] = r
	}
	return out
}

func TestDefaultRegistry(t *testing.T) {
	reg, err := DefaultRegistry()
	require.NoError(t, err)

	assert.Equal(t, []string{"Br", "C", "Cl", "I", "N", "NO", "OH", "Ox", "S"}, reg.Names())

	ref, err := reg.Lookup("Iy")
	require.NoError(t, err)
	assert.Equal(t, "I", ref.Name)
	v, ok := ref.Equivalent("I2O2")
	assert.True(t, ok)
	assert.Equal(t, 2.0, v)

	_, err = reg.Lookup("Xe")
	assert.ErrorIs(t, err, domain.ErrUnknownReference)
}

func TestReference_Weight(t *testing.T) {
	reg, err := DefaultRegistry()
	require.NoError(t, err)

	br, err := reg.Lookup("Bromine")
	require.NoError(t, err)
	assert.Equal(t, 3.0, br.Weight("CHBr3"))
	assert.Equal(t, 1.0, br.Weight("UNKNOWN"))

	ox, err := reg.Lookup("O3")
	require.NoError(t, err)
	assert.Equal(t, 1.0, ox.Weight("anything"))
}

func TestParseRegistry_Invalid(t *testing.T) {
	_, err := ParseRegistry([]byte("references: [{aliases: [X]}]"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = ParseRegistry([]byte("references: {"))
	assert.Error(t, err)
}

func TestResolver_Resolve(t *testing.T) {
	r := NewResolver("LOx", "T", Reference{Name: "Ox", Unity: true})
	table := r.Resolve(reactions(t))

	assert.Equal(t, domain.StoichiometryTable{
		domain.IndexID(1): 1,
		domain.IndexID(2): 2,
		domain.IndexID(3): 1,
		domain.IndexID(4): 0.5,
	}, table)
	assert.Equal(t, 1.0, table.Multiplier(domain.IndexID(99)))
}

func TestResolver_Weights(t *testing.T) {
	reg, err := DefaultRegistry()
	require.NoError(t, err)
	iodine, err := reg.Lookup("I")
	require.NoError(t, err)

	r := NewResolver("LOx", "T", iodine)
	weights := r.Weights(reactions(t)[3])

	assert.Equal(t, []domain.SpeciesWeight{
		{Species: "OIO", Weight: 0.8},
		{Species: "I", Weight: 0.2},
		{Species: "Br", Weight: 1},
	}, weights)
}

func TestResolver_Report_CanonicalReference(t *testing.T) {
	reg, err := DefaultRegistry()
	require.NoError(t, err)
	ref, err := reg.Lookup("O3")
	require.NoError(t, err)

	report := NewResolver("LOx", "T", ref).Report(reactions(t), nil)
	assert.Equal(t, "Ox", report.Reference)
}

func TestResolver_Report_Conservation(t *testing.T) {
	rxns := reactions(t)
	tags, err := tagging.New("LOx").Tag(rxns)
	require.NoError(t, err)

	report := NewResolver("LOx", "T", Reference{Name: "Ox", Unity: true}).Report(rxns, tags)
	require.Len(t, report.Entries, 4)
	assert.Equal(t, domain.Tag("T002"), report.Entries[1].Tag)
	assert.Equal(t, domain.FamilyPhotolysis, report.Entries[1].Family)
	assert.Equal(t, domain.FamilyUnassigned, report.Entries[2].Family)

	rates := map[domain.ReactionID]float64{
		domain.IndexID(1): 1.5,
		domain.IndexID(2): 0.25,
		domain.IndexID(3): 4,
		domain.IndexID(4): 10,
		domain.IndexID(5): 100,
	}
	total := report.Table().Weighted(rates)
	assert.InDelta(t, 1.5+0.5+4+5, total, 1e-12)

	var sum float64
	for _, v := range report.Breakdown(rates) {
		sum += v
	}
	assert.True(t, math.Abs(sum-total) < 1e-12, "breakdown %v != total %v", sum, total)
}

func TestTagMultipliers(t *testing.T) {
	rxns := reactions(t)
	tags, err := tagging.New("LOx").Tag(rxns)
	require.NoError(t, err)

	table := NewResolver("LOx", "T", Reference{Unity: true}).Resolve(rxns)
	assert.Equal(t, map[domain.Tag]float64{"T001": 1, "T002": 2, "T003": 0.5}, TagMultipliers(table, tags))
}
