package stoich

import (
	"sort"

	"github.com/custodia-labs/kpptag/internal/core/domain"
)

// Resolver computes multipliers for one family and reference.
type Resolver struct {
	family string
	prefix string
	ref    Reference
}

// NewResolver creates a resolver. Product terms matching prefix are tags
// and carry no reference weight.
func NewResolver(family, prefix string, ref Reference) *Resolver {
	return &Resolver{family: family, prefix: prefix, ref: ref}
}

// Multiplier returns the coefficient of the family term among the
// products, or 1 when the term has none. ok is false when the reaction
// does not produce the family.
func (r *Resolver) Multiplier(rx domain.Reaction) (float64, bool) {
	t, ok := rx.ProductTerm(r.family)
	if !ok {
		return 0, false
	}
	return t.Coefficient, true
}

// Resolve returns the multiplier of every reaction producing the family.
func (r *Resolver) Resolve(reactions []domain.Reaction) domain.StoichiometryTable {
	table := make(domain.StoichiometryTable)
	for _, rx := range reactions {
		if m, ok := r.Multiplier(rx); ok {
			table[rx.ID] = m
		}
	}
	return table
}

// Weights returns coefficient*equivalent for each product species other
// than the family and tag terms.
func (r *Resolver) Weights(rx domain.Reaction) []domain.SpeciesWeight {
	var out []domain.SpeciesWeight
	for _, t := range rx.Products {
		if t.Species == r.family || domain.IsTag(t.Species, r.prefix) {
			continue
		}
		out = append(out, domain.SpeciesWeight{Species: t.Species, Weight: t.Coefficient * r.ref.Weight(t.Species)})
	}
	return out
}

// Report resolves every family reaction and attaches the tag and family
// from a tag report when one is given.
func (r *Resolver) Report(reactions []domain.Reaction, tags *domain.TagReport) *domain.StoichiometryReport {
	var (
		tagOf    map[domain.ReactionID]domain.Tag
		familyOf map[domain.Tag]domain.Family
	)
	if tags != nil {
		tagOf = tags.ReactionTags()
		familyOf = tags.TagFamilies()
	}

	report := &domain.StoichiometryReport{Family: r.family, Reference: r.ref.Name}
	for _, rx := range reactions {
		m, ok := r.Multiplier(rx)
		if !ok {
			continue
		}
		e := domain.StoichiometryEntry{
			Reaction:   rx.ID,
			Family:     domain.FamilyUnassigned,
			Multiplier: m,
			Weights:    r.Weights(rx),
		}
		if tag, ok := tagOf[rx.ID]; ok {
			e.Tag = tag
			e.Family = familyOf[tag]
		}
		report.Entries = append(report.Entries, e)
	}
	sort.SliceStable(report.Entries, func(i, j int) bool {
		return report.Entries[i].Reaction.Less(report.Entries[j].Reaction)
	})
	return report
}

// TagMultipliers returns the multiplier of each tag's owning reaction.
func TagMultipliers(table domain.StoichiometryTable, tags *domain.TagReport) map[domain.Tag]float64 {
	out := make(map[domain.Tag]float64, len(tags.Assignments))
	for tag, id := range tags.TagReactions() {
		out[tag] = table.Multiplier(id)
	}
	return out
}
