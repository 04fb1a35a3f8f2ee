package equation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/kpptag/internal/core/domain"
)

const sample = `#EQUATIONS
//
// Gas-phase reactions
//
O3 + NO = NO2 + O2 :                GCARR(3.00E-12, 0.0E+00, -1500.0); {2014/02/03}
O3 + OH = HO2 + O2 :                GCARR(1.70E-12, 0.0E+00, -940.0);
// a note inside the section
O3 + HO2 = OH + O2 + O2 :           GCARR(1.00E-14, 0.0E+00, -490.0);
MCO3 + NO = MO2 + NO2 +
 CO2 :                              GCARR(8.10E-12, 0.0E+00, 270.0);
A + B = C :                         GCARR(1.0E-12, 0.0, 0.0); {x} C = D : GCARR(2.0E-12, 0.0, 0.0); {y}
//
// Heterogeneous reactions
//
HO2 = O2 :                          HET(ind_HO2, 1);
N2O5 = 2 HNO3 :                     HET(ind_N2O5, 1);
//
// Photolysis reactions
//
NO2 + hv = NO + O :                 PHOTOL(11);
O3 + hv = O + O2 :                  PHOTOL(2);
O3 + hv = O1D + O2 :                PHOTOL(3);
NO3 + hv = NO2 + O :                PHOTOL(12);
NO3 + hv = NO +
`

func TestReader_Read(t *testing.T) {
	result, err := NewReader().Read(strings.NewReader(sample))
	require.NoError(t, err)

	gas := result.Statements(domain.CategoryGasPhase)
	require.Len(t, gas, 6)
	assert.Equal(t, "O3 + NO = NO2 + O2 :                GCARR(3.00E-12, 0.0E+00, -1500.0); {2014/02/03}", gas[0])
	assert.Equal(t, "MCO3 + NO = MO2 + NO2 + CO2 :                              GCARR(8.10E-12, 0.0E+00, 270.0);", gas[3])
	assert.Equal(t, "A + B = C :                         GCARR(1.0E-12, 0.0, 0.0); {x}", gas[4])
	assert.Equal(t, "C = D : GCARR(2.0E-12, 0.0, 0.0); {y}", gas[5])
	assert.Equal(t, 1, result.SplitCount)

	assert.Len(t, result.Statements(domain.CategoryHeterogeneous), 2)
	assert.Len(t, result.Statements(domain.CategoryPhotolysis), 4)
	assert.Equal(t, 12, result.Len())

	require.Len(t, result.Issues, 1)
	assert.Equal(t, "incomplete statement", result.Issues[0].Reason)
	assert.Equal(t, "NO3 + hv = NO +", result.Issues[0].Text)
}

func TestReader_Read_MarkerOnlyAfterColon(t *testing.T) {
	src := `//
// Gas-phase reactions
//
HET_A + B =
 C : GCARR(1.0, 0.0, 0.0);
`
	result, err := NewReader().Read(strings.NewReader(src))
	require.NoError(t, err)
	assert.Equal(t, []string{"HET_A + B = C : GCARR(1.0, 0.0, 0.0);"}, result.Statements(domain.CategoryGasPhase))
}

func TestReader_Read_CustomMarkers(t *testing.T) {
	src := `//
// Gas-phase reactions
//
A + B = C : 1.0E-12;
`
	result, err := NewReader("E-").Read(strings.NewReader(src))
	require.NoError(t, err)
	assert.Len(t, result.Statements(domain.CategoryGasPhase), 1)

	result, err = NewReader().Read(strings.NewReader(src))
	require.NoError(t, err)
	assert.Empty(t, result.Statements(domain.CategoryGasPhase))
	assert.Len(t, result.Issues, 1)
}

func TestNormalizeSpacing(t *testing.T) {
	assert.Equal(t, "A + B + 2 C", NormalizeSpacing("A +B +2 C"))
	assert.Equal(t, "A + B", NormalizeSpacing("A + B"))
}

func TestSplitCompound(t *testing.T) {
	t.Run("single statements unchanged", func(t *testing.T) {
		in := []string{"A = B : K; {1}", "C = D : K;"}
		out, count, issues := SplitCompound(in)
		assert.Equal(t, in, out)
		assert.Zero(t, count)
		assert.Empty(t, issues)
	})

	t.Run("three reactions", func(t *testing.T) {
		out, count, issues := SplitCompound([]string{"A = B : K1; {1} C = D : K2; {2} E = F : K3; {3}"})
		assert.Equal(t, []string{"A = B : K1; {1}", "C = D : K2; {2}", "E = F : K3; {3}"}, out)
		assert.Equal(t, 1, count)
		assert.Empty(t, issues)
	})

	t.Run("idempotent", func(t *testing.T) {
		once, _, _ := SplitCompound([]string{"A = B : K1; {1} C = D : K2; {2}"})
		twice, count, _ := SplitCompound(once)
		assert.Equal(t, once, twice)
		assert.Zero(t, count)
	})

	t.Run("equals inside metadata", func(t *testing.T) {
		in := []string{"A = B : GCARR(1.0E-12, 0.0, 0.0); {x=1}"}
		out, count, issues := SplitCompound(in)
		assert.Equal(t, in, out)
		assert.Zero(t, count)
		assert.Empty(t, issues)
	})

	t.Run("equals inside metadata between reactions", func(t *testing.T) {
		out, count, issues := SplitCompound([]string{"A = B : K1; {x=1} C = D : K2; {y=2}"})
		assert.Equal(t, []string{"A = B : K1; {x=1}", "C = D : K2; {y=2}"}, out)
		assert.Equal(t, 1, count)
		assert.Empty(t, issues)
	})

	t.Run("no brace", func(t *testing.T) {
		in := []string{"A = B : K1; C = D : K2;"}
		out, count, issues := SplitCompound(in)
		assert.Equal(t, in, out)
		assert.Zero(t, count)
		require.Len(t, issues, 1)
		assert.Contains(t, issues[0].Reason, domain.ErrUnsplittable.Error())
	})
}
