package tagging

import (
	"slices"
	"strings"

	"github.com/custodia-labs/kpptag/internal/core/domain"
)

// Candidate is a tagged reaction awaiting classification.
type Candidate struct {
	Reaction domain.Reaction
	Tag      domain.Tag

	// Photolysis holds the tags carried by photon-driven reactions.
	Photolysis map[domain.Tag]bool
}

// Predicate decides whether a rule applies.
type Predicate func(Candidate) bool

// Rule maps a predicate to a family. Rules are evaluated in order and the
// first match wins.
type Rule struct {
	Name   string
	Family domain.Family
	Match  Predicate
}

// SpeciesSets parameterises the default rules.
type SpeciesSets struct {
	HOx []string
	NOx []string

	// OrganicNitrates mark NOx-family reactions by product.
	OrganicNitrates []string

	// NonIodine lists name fragments of species that contain an "I" but
	// carry no iodine (isoprene, monoterpene and similar organics).
	NonIodine []string
}

// DefaultSpeciesSets returns the sets used for standard mechanisms.
func DefaultSpeciesSets() SpeciesSets {
	return SpeciesSets{
		HOx:             []string{"OH", "HO2", "H2O2", "O1D", "O", "O3", "NO3"},
		NOx:             []string{"NO", "NO2", "NO3", "N2O5", "HNO2", "HNO3", "HNO4"},
		OrganicNitrates: []string{"IONITA"},
		NonIodine: []string{
			"INO2", "ISN", "ISOP", "IONITA", "IMAO3", "IMAE", "IPMN", "IPRNO3",
			"MONIT", "LIMO", "LIMAL", "PIO2", "PIP", "PIN", "RIO", "RIP",
			"IEPOX", "IHOO", "IHN", "IHP", "ICH", "ICN", "ICP", "IDC", "IDH",
			"IDN", "IDP", "ITCN", "ITHN", "INPB", "INPD", "INDIOL", "IAP",
		},
	}
}

// halogen is one of the three halogen groups.
type halogen int

const (
	chlorine halogen = 1 << iota
	bromine
	iodine
)

// halogens returns the halogen groups present among the reactants.
func (s SpeciesSets) halogens(r domain.Reaction) halogen {
	var h halogen
	for _, sp := range r.ReactantSpecies() {
		if strings.Contains(sp, "Cl") || strings.Contains(sp, "CFC") {
			h |= chlorine
		}
		if strings.Contains(sp, "Br") {
			h |= bromine
		}
		if s.isIodine(sp) {
			h |= iodine
		}
	}
	return h
}

func (s SpeciesSets) isIodine(species string) bool {
	if !strings.Contains(species, "I") {
		return false
	}
	for _, frag := range s.NonIodine {
		if strings.Contains(species, frag) {
			return false
		}
	}
	return true
}

func anyReactant(r domain.Reaction, set []string) bool {
	for _, sp := range r.ReactantSpecies() {
		if slices.Contains(set, sp) {
			return true
		}
	}
	return false
}

func anyProduct(r domain.Reaction, set []string) bool {
	for _, sp := range r.ProductSpecies() {
		if slices.Contains(set, sp) {
			return true
		}
	}
	return false
}

func exactly(s SpeciesSets, want halogen) Predicate {
	return func(c Candidate) bool { return s.halogens(c.Reaction) == want }
}

func includes(s SpeciesSets, want halogen) Predicate {
	return func(c Candidate) bool { return s.halogens(c.Reaction)&want == want }
}

// IsPhotolysis reports whether the candidate is photon driven, either by
// an hv reactant or by carrying a tag that a photolysis reaction carries.
func IsPhotolysis(c Candidate) bool {
	if c.Reaction.HasPhoton() {
		return true
	}
	return c.Tag != domain.NotTagged && c.Photolysis[c.Tag]
}

// DefaultRules returns the ordered rule table: halogen crossovers, single
// halogens, photolysis, NOx, HOx, then organic nitrate products.
func DefaultRules(s SpeciesSets) []Rule {
	return []Rule{
		{Name: "chlorine-bromine", Family: domain.FamilyChlorineBromine, Match: includes(s, chlorine|bromine)},
		{Name: "chlorine-iodine", Family: domain.FamilyChlorineIodine, Match: includes(s, chlorine|iodine)},
		{Name: "bromine-iodine", Family: domain.FamilyBromineIodine, Match: includes(s, bromine|iodine)},
		{Name: "chlorine", Family: domain.FamilyChlorine, Match: exactly(s, chlorine)},
		{Name: "bromine", Family: domain.FamilyBromine, Match: exactly(s, bromine)},
		{Name: "iodine", Family: domain.FamilyIodine, Match: exactly(s, iodine)},
		{Name: "photolysis", Family: domain.FamilyPhotolysis, Match: IsPhotolysis},
		{Name: "nox", Family: domain.FamilyNOx, Match: func(c Candidate) bool { return anyReactant(c.Reaction, s.NOx) }},
		{Name: "hox", Family: domain.FamilyHOx, Match: func(c Candidate) bool { return anyReactant(c.Reaction, s.HOx) }},
		{Name: "organic-nitrate", Family: domain.FamilyNOx, Match: func(c Candidate) bool { return anyProduct(c.Reaction, s.OrganicNitrates) }},
	}
}

// DefaultOverrides are applied after the rule table regardless of its result.
func DefaultOverrides() []Rule {
	return []Rule{
		{
			Name:   "o1d-water",
			Family: domain.FamilyPhotolysis,
			Match: func(c Candidate) bool {
				return c.Reaction.HasReactant("O1D") && c.Reaction.HasReactant("H2O")
			},
		},
	}
}

// Classifier assigns families from an ordered rule table.
type Classifier struct {
	rules     []Rule
	overrides []Rule
}

// NewClassifier creates a classifier. Unmatched candidates are Unassigned.
func NewClassifier(rules, overrides []Rule) *Classifier {
	return &Classifier{rules: rules, overrides: overrides}
}

// DefaultClassifier uses DefaultRules and DefaultOverrides.
func DefaultClassifier() *Classifier {
	return NewClassifier(DefaultRules(DefaultSpeciesSets()), DefaultOverrides())
}

// Classify returns the family of a candidate.
func (c *Classifier) Classify(cand Candidate) domain.Family {
	family := domain.FamilyUnassigned
	for _, r := range c.rules {
		if r.Match(cand) {
			family = r.Family
			break
		}
	}
	for _, o := range c.overrides {
		if o.Match(cand) {
			family = o.Family
		}
	}
	return family
}
