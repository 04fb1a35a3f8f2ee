package domain

// DefaultMultiplier is used when a family term carries no coefficient.
const DefaultMultiplier = 1.0

// StoichiometryTable maps reactions to reference-atom multipliers.
type StoichiometryTable map[ReactionID]float64

// Multiplier returns the multiplier for a reaction, defaulting to 1.
func (t StoichiometryTable) Multiplier(id ReactionID) float64 {
	if m, ok := t[id]; ok {
		return m
	}
	return DefaultMultiplier
}

// Weighted sums rate*multiplier over the given reaction rates.
// Rates for reactions outside the table are ignored.
func (t StoichiometryTable) Weighted(rates map[ReactionID]float64) float64 {
	var total float64
	for id, rate := range rates {
		if m, ok := t[id]; ok {
			total += rate * m
		}
	}
	return total
}

// IDs returns the table's reaction identifiers in sorted order.
func (t StoichiometryTable) IDs() []ReactionID {
	ids := make([]ReactionID, 0, len(t))
	for id := range t {
		ids = append(ids, id)
	}
	SortIDs(ids)
	return ids
}

// SpeciesWeight is the reference-atom weight of one product species.
type SpeciesWeight struct {
	Species string  `json:"species" yaml:"species"`
	Weight  float64 `json:"weight" yaml:"weight"`
}

// StoichiometryEntry is the resolved multiplier of one family reaction.
type StoichiometryEntry struct {
	Reaction   ReactionID      `json:"reaction" yaml:"reaction"`
	Tag        Tag             `json:"tag,omitempty" yaml:"tag,omitempty"`
	Family     Family          `json:"family" yaml:"family"`
	Multiplier float64         `json:"multiplier" yaml:"multiplier"`
	Weights    []SpeciesWeight `json:"weights,omitempty" yaml:"weights,omitempty"`
}

// StoichiometryReport lists the multipliers of a family's reactions.
type StoichiometryReport struct {
	Family    string               `json:"family" yaml:"family"`
	// Reference is the canonical registry name, not the alias requested.
	Reference string               `json:"reference" yaml:"reference"`
	Entries   []StoichiometryEntry `json:"entries" yaml:"entries"`
}

// Table returns the multipliers keyed by reaction.
func (r *StoichiometryReport) Table() StoichiometryTable {
	t := make(StoichiometryTable, len(r.Entries))
	for _, e := range r.Entries {
		t[e.Reaction] = e.Multiplier
	}
	return t
}

// Breakdown sums rate*multiplier per family. Reactions without a family
// count as Unassigned, so the breakdown always adds up to Table().Weighted.
func (r *StoichiometryReport) Breakdown(rates map[ReactionID]float64) map[Family]float64 {
	out := make(map[Family]float64)
	for _, e := range r.Entries {
		rate, ok := rates[e.Reaction]
		if !ok {
			continue
		}
		fam := e.Family
		if fam == "" {
			fam = FamilyUnassigned
		}
		out[fam] += rate * e.Multiplier
	}
	return out
}
