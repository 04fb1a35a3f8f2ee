package domain

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// PhotonMarker is the pseudo-reactant naming an absorbed photon.
const PhotonMarker = "hv"

// Category is the equation-file section a reaction belongs to.
type Category string

// Reaction categories, in equation-file order.
const (
	CategoryGasPhase      Category = "Gas-phase"
	CategoryHeterogeneous Category = "Heterogeneous"
	CategoryPhotolysis    Category = "Photolysis"
)

// Categories returns all categories in the order they are written.
func Categories() []Category {
	return []Category{CategoryGasPhase, CategoryHeterogeneous, CategoryPhotolysis}
}

// IsValid returns true if the category is recognised.
func (c Category) IsValid() bool {
	switch c {
	case CategoryGasPhase, CategoryHeterogeneous, CategoryPhotolysis:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (c Category) String() string {
	return string(c)
}

// ParseCategory resolves a category name case-insensitively.
func ParseCategory(s string) (Category, error) {
	for _, c := range Categories() {
		if strings.EqualFold(strings.TrimSpace(s), string(c)) {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: category %q", ErrInvalidInput, s)
}

// ReactionID identifies a reaction within one mechanism snapshot.
// Compiled mechanisms use a sequential index; one defunct solver
// version used symbolic dummy names instead.
type ReactionID struct {
	// Index is the sequential reaction number (1-based).
	Index int `json:"index,omitempty" yaml:"index,omitempty"`

	// Symbol is the symbolic name, set only for symbolic layouts.
	Symbol string `json:"symbol,omitempty" yaml:"symbol,omitempty"`
}

// IndexID returns a sequential reaction identifier.
func IndexID(n int) ReactionID {
	return ReactionID{Index: n}
}

// SymbolID returns a symbolic reaction identifier.
func SymbolID(s string) ReactionID {
	return ReactionID{Symbol: s}
}

// IsSymbolic returns true for symbolic identifiers.
func (id ReactionID) IsSymbolic() bool {
	return id.Symbol != ""
}

// String returns the identifier as written in reports.
func (id ReactionID) String() string {
	if id.IsSymbolic() {
		return id.Symbol
	}
	return strconv.Itoa(id.Index)
}

// Less orders indexed identifiers numerically before symbolic ones.
func (id ReactionID) Less(other ReactionID) bool {
	if id.IsSymbolic() != other.IsSymbolic() {
		return !id.IsSymbolic()
	}
	if id.IsSymbolic() {
		return id.Symbol < other.Symbol
	}
	return id.Index < other.Index
}

// ParseReactionID parses a report-form identifier.
func ParseReactionID(s string) ReactionID {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		return IndexID(n)
	}
	return SymbolID(s)
}

// SortIDs sorts identifiers in place.
func SortIDs(ids []ReactionID) {
	sort.Slice(ids, func(i, j int) bool { return ids[i].Less(ids[j]) })
}

// Term is one additive term of a reactant or product list.
type Term struct {
	// Species is the species (or pseudo-species) name.
	Species string `json:"species" yaml:"species"`

	// Coefficient is the leading multiplier; 1 when none was written.
	Coefficient float64 `json:"coefficient" yaml:"coefficient"`
}

// NewTerm returns a term with unit coefficient.
func NewTerm(species string) Term {
	return Term{Species: species, Coefficient: 1}
}

// HasCoefficient reports whether the term carries an explicit multiplier.
func (t Term) HasCoefficient() bool {
	return t.Coefficient != 1
}

// String formats the term as written in an equation file.
func (t Term) String() string {
	if !t.HasCoefficient() {
		return t.Species
	}
	return strconv.FormatFloat(t.Coefficient, 'f', -1, 64) + " " + t.Species
}

// Reaction is one structured reaction of a mechanism.
type Reaction struct {
	// ID is unique within a mechanism snapshot.
	ID ReactionID `json:"id" yaml:"id"`

	// Category is the equation-file section.
	Category Category `json:"category" yaml:"category"`

	// Reactants in source order.
	Reactants []Term `json:"reactants" yaml:"reactants"`

	// Products in source order, including tag and family pseudo-terms.
	Products []Term `json:"products" yaml:"products"`

	// RateLaw is the free-text rate expression.
	RateLaw string `json:"rate_law,omitempty" yaml:"rate_law,omitempty"`

	// Metadata is the free text after the rate law's terminating ';'.
	Metadata string `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// Equation formats the reaction string ("A + B = C + D").
func (r Reaction) Equation() string {
	return JoinTerms(r.Reactants) + " = " + JoinTerms(r.Products)
}

// HasPhoton reports whether a photon is among the reactants.
func (r Reaction) HasPhoton() bool {
	return r.HasReactant(PhotonMarker)
}

// HasReactant reports whether a species appears among the reactants.
func (r Reaction) HasReactant(species string) bool {
	return containsSpecies(r.Reactants, species)
}

// HasProduct reports whether a species appears among the products.
func (r Reaction) HasProduct(species string) bool {
	return containsSpecies(r.Products, species)
}

// ProductTerm returns the first product term for a species.
func (r Reaction) ProductTerm(species string) (Term, bool) {
	for _, t := range r.Products {
		if t.Species == species {
			return t, true
		}
	}
	return Term{}, false
}

// ReactantSpecies returns reactant species names in order.
func (r Reaction) ReactantSpecies() []string {
	return speciesNames(r.Reactants)
}

// ProductSpecies returns product species names in order.
func (r Reaction) ProductSpecies() []string {
	return speciesNames(r.Products)
}

// JoinTerms formats terms separated by " + ".
func JoinTerms(terms []Term) string {
	parts := make([]string, len(terms))
	for i, t := range terms {
		parts[i] = t.String()
	}
	return strings.Join(parts, " + ")
}

func containsSpecies(terms []Term, species string) bool {
	for _, t := range terms {
		if t.Species == species {
			return true
		}
	}
	return false
}

func speciesNames(terms []Term) []string {
	names := make([]string, len(terms))
	for i, t := range terms {
		names[i] = t.Species
	}
	return names
}
