package tagging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/kpptag/internal/core/domain"
)

func mechanism(t *testing.T) []domain.Reaction {
	t.Helper()
	return []domain.Reaction{
		monitorReaction(t, 4, "O3 + NO --> NO2 + O2"),
		monitorReaction(t, 1, "NO2 + O3 --> NO3 + O2 + LOx + T002"),
		monitorReaction(t, 2, "O3 + hv --> O1D + O2 + LOx + T001"),
		monitorReaction(t, 3, "BrO + HO2 --> HOBr + O2 + LOx"),
		monitorReaction(t, 5, "IO + HO2 --> HOI + O2 + 2 LOx + T003"),
	}
}

func TestTagger_Tag(t *testing.T) {
	report, err := New("LOx").Tag(mechanism(t))
	require.NoError(t, err)

	assert.Equal(t, "LOx", report.Family)
	assert.Equal(t, []domain.Assignment{
		{Tag: "T001", Reaction: domain.IndexID(2), Family: domain.FamilyPhotolysis, Equation: "O3 + hv = O1D + O2 + LOx + T001"},
		{Tag: "T002", Reaction: domain.IndexID(1), Family: domain.FamilyNOx, Equation: "NO2 + O3 = NO3 + O2 + LOx + T002"},
		{Tag: "T003", Reaction: domain.IndexID(5), Family: domain.FamilyIodine, Equation: "IO + HO2 = HOI + O2 + 2 LOx + T003"},
	}, report.Assignments)
	assert.Equal(t, []domain.ReactionID{domain.IndexID(3)}, report.Untagged)
	assert.Empty(t, report.Violations)
}

func TestTagger_Tag_EveryTagHasOneFamily(t *testing.T) {
	report, err := New("LOx").Tag(mechanism(t))
	require.NoError(t, err)

	families := report.TagFamilies()
	assert.Len(t, families, len(report.Assignments))
	for tag, fam := range families {
		assert.True(t, fam.IsValid(), "tag %s has family %q", tag, fam)
	}
}

func TestTagger_Tag_TagNumberIsNotReactionIndex(t *testing.T) {
	rxns := []domain.Reaction{
		monitorReaction(t, 1, "NO2 + O3 --> NO3 + O2 + LOx + T007"),
		monitorReaction(t, 7, "O3 + hv --> O1D + O2"),
	}

	report, err := New("LOx").Tag(rxns)
	require.NoError(t, err)
	require.Len(t, report.Assignments, 1)
	assert.Equal(t, domain.Tag("T007"), report.Assignments[0].Tag)
	assert.Equal(t, domain.FamilyNOx, report.Assignments[0].Family)
}

func TestTagger_Tag_TagSharedWithPhotolysis(t *testing.T) {
	rxns := []domain.Reaction{
		monitorReaction(t, 1, "MCO3 + MO2 --> CH2O + LOx + T020"),
		monitorReaction(t, 2, "CH3OOH + hv --> CH2O + OH + HO2 + T020"),
	}

	report, err := New("LOx").Tag(rxns)
	require.NoError(t, err)
	require.Len(t, report.Assignments, 1)
	assert.Equal(t, domain.IndexID(1), report.Assignments[0].Reaction)
	assert.Equal(t, domain.FamilyPhotolysis, report.Assignments[0].Family)
	assert.Empty(t, report.Violations)
}

func TestPhotolysisTags(t *testing.T) {
	rxns := []domain.Reaction{
		monitorReaction(t, 3, "O3 + hv --> O1D + O2 + LOx + T001"),
		monitorReaction(t, 4, "NO2 + O3 --> NO3 + LOx + T002"),
	}
	assert.Equal(t, map[domain.Tag]bool{"T001": true}, PhotolysisTags(rxns, domain.DefaultTagPrefix))
}

func TestTagger_Tag_MultipleTags(t *testing.T) {
	rxns := []domain.Reaction{
		monitorReaction(t, 1, "NO2 + O3 --> NO3 + LOx + T002 + T009"),
	}

	report, err := New("LOx").Tag(rxns)
	require.NoError(t, err)
	require.Len(t, report.Assignments, 1)
	assert.Equal(t, domain.Tag("T002"), report.Assignments[0].Tag)
	require.Len(t, report.Violations, 1)
	assert.Equal(t, domain.ViolationMultipleTags, report.Violations[0].Kind)
	assert.Equal(t, []domain.Tag{"T002", "T009"}, report.Violations[0].Tags)

	_, err = New("LOx", WithMode(domain.TagModeStrict)).Tag(rxns)
	assert.ErrorIs(t, err, domain.ErrMultipleTags)
}

func TestTagger_Tag_DuplicateTag(t *testing.T) {
	rxns := []domain.Reaction{
		monitorReaction(t, 2, "NO2 + O3 --> NO3 + LOx + T001"),
		monitorReaction(t, 1, "OH + O3 --> HO2 + LOx + T001"),
	}

	report, err := New("LOx").Tag(rxns)
	require.NoError(t, err)
	require.Len(t, report.Assignments, 1)
	assert.Equal(t, domain.IndexID(1), report.Assignments[0].Reaction)
	require.Len(t, report.Violations, 1)
	assert.Equal(t, domain.ViolationDuplicateTag, report.Violations[0].Kind)
	assert.Equal(t, domain.IndexID(2), report.Violations[0].Reaction)

	_, err = New("LOx", WithMode(domain.TagModeStrict)).Tag(rxns)
	assert.ErrorIs(t, err, domain.ErrDuplicateTag)
}

func TestTagger_Tag_CustomPrefix(t *testing.T) {
	rxns := []domain.Reaction{
		monitorReaction(t, 1, "NO2 + O3 --> NO3 + POx + PT001"),
	}
	report, err := New("POx", WithPrefix("PT")).Tag(rxns)
	require.NoError(t, err)
	require.Len(t, report.Assignments, 1)
	assert.Equal(t, domain.Tag("PT001"), report.Assignments[0].Tag)
}

func TestTaggedReactions(t *testing.T) {
	ids := TaggedReactions(mechanism(t), "LOx")
	assert.Equal(t, []domain.ReactionID{
		domain.IndexID(1), domain.IndexID(2), domain.IndexID(3), domain.IndexID(5),
	}, ids)
}

func TestTagsForReactions(t *testing.T) {
	rxns := append(mechanism(t), monitorReaction(t, 6, "OH + O3 --> LOx + T010 + T011"))

	tags, err := TagsForReactions(rxns, []domain.ReactionID{domain.IndexID(1), domain.IndexID(3), domain.IndexID(6)}, "T", domain.TagModeLenient)
	require.NoError(t, err)
	assert.Equal(t, map[domain.ReactionID]domain.Tag{
		domain.IndexID(1): "T002",
		domain.IndexID(6): "T010",
	}, tags)

	_, err = TagsForReactions(rxns, []domain.ReactionID{domain.IndexID(6)}, "T", domain.TagModeStrict)
	assert.ErrorIs(t, err, domain.ErrMultipleTags)
}

func TestOxidativeRelease(t *testing.T) {
	rxns := []domain.Reaction{
		monitorReaction(t, 3, "CHBr3 + OH --> 3Br + LOx"),
		monitorReaction(t, 1, "CH3Cl + OH --> Cl + MO2"),
		monitorReaction(t, 2, "O3 + NO --> NO2 + O2"),
	}
	assert.Equal(t, []domain.ReactionID{domain.IndexID(1), domain.IndexID(3)}, OxidativeRelease(rxns, ReleaseSpecies))
}

func TestNextTags(t *testing.T) {
	tags, err := NextTags("T009", "T", 3)
	require.NoError(t, err)
	assert.Equal(t, []domain.Tag{"T010", "T011", "T012"}, tags)

	_, err = NextTags("X12", "T", 1)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
