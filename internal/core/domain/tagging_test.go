package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func testReport() *TagReport {
	return &TagReport{
		Family: "LOx",
		Assignments: []Assignment{
			{Tag: "T001", Reaction: IndexID(3), Family: FamilyPhotolysis},
			{Tag: "T002", Reaction: IndexID(2), Family: FamilyNOx},
			{Tag: "T004", Reaction: IndexID(7), Family: FamilyBromine},
			{Tag: "T003", Reaction: IndexID(5), Family: FamilyBromine},
			{Tag: "T005", Reaction: IndexID(9), Family: FamilyUnassigned},
		},
	}
}

func TestTagReport_Maps(t *testing.T) {
	r := testReport()

	assert.Equal(t, FamilyNOx, r.TagFamilies()["T002"])
	assert.Equal(t, IndexID(7), r.TagReactions()["T004"])
	assert.Equal(t, Tag("T003"), r.ReactionTags()[IndexID(5)])
	assert.Equal(t, []Tag{"T001", "T002", "T004", "T003", "T005"}, r.Tags())
}

func TestTagReport_ByFamilySorted(t *testing.T) {
	groups := testReport().ByFamily()

	assert.Equal(t, []Tag{"T003", "T004"}, groups[FamilyBromine])
	assert.Equal(t, []Tag{"T005"}, testReport().Unassigned())
}

func TestFamily_Classes(t *testing.T) {
	assert.True(t, FamilyBromine.IsHalogen())
	assert.True(t, FamilyChlorineIodine.IsHalogen())
	assert.True(t, FamilyChlorineIodine.IsCrossover())
	assert.False(t, FamilyIodine.IsCrossover())
	assert.False(t, FamilyHOx.IsHalogen())
	assert.True(t, FamilyUnassigned.IsValid())
	assert.False(t, Family("Sulfur").IsValid())
	assert.Len(t, Families(), 10)
}

func TestTagMode_IsValid(t *testing.T) {
	assert.True(t, TagModeLenient.IsValid())
	assert.True(t, TagModeStrict.IsValid())
	assert.False(t, TagMode("").IsValid())
}

func TestStoichiometryTable(t *testing.T) {
	table := StoichiometryTable{IndexID(2): 2, IndexID(1): 0.5}

	assert.Equal(t, 2.0, table.Multiplier(IndexID(2)))
	assert.Equal(t, DefaultMultiplier, table.Multiplier(IndexID(9)))
	assert.Equal(t, []ReactionID{IndexID(1), IndexID(2)}, table.IDs())

	rates := map[ReactionID]float64{IndexID(1): 4, IndexID(2): 1, IndexID(3): 100}
	assert.InDelta(t, 4.0, table.Weighted(rates), 1e-12)
}

func TestStoichiometryReport_BreakdownMatchesWeighted(t *testing.T) {
	r := &StoichiometryReport{Entries: []StoichiometryEntry{
		{Reaction: IndexID(1), Family: FamilyNOx, Multiplier: 1},
		{Reaction: IndexID(2), Family: FamilyBromine, Multiplier: 2},
		{Reaction: IndexID(3), Multiplier: 1},
	}}
	rates := map[ReactionID]float64{IndexID(1): 1, IndexID(2): 3, IndexID(3): 0.5}

	b := r.Breakdown(rates)
	assert.Equal(t, 6.0, b[FamilyBromine])
	assert.Equal(t, 0.5, b[FamilyUnassigned])

	var sum float64
	for _, v := range b {
		sum += v
	}
	assert.InDelta(t, r.Table().Weighted(rates), sum, 1e-12)
}

func TestMechanismDiff_Empty(t *testing.T) {
	assert.True(t, (&MechanismDiff{Common: 3}).Empty())
	assert.False(t, (&MechanismDiff{Added: []string{"A = B"}}).Empty())
}
