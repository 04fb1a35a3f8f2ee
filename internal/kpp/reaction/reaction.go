// Package reaction builds structured reactions from equation statements and
// monitor reaction text.
package reaction

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/custodia-labs/kpptag/internal/core/domain"
)

// Arrows separating reactants from products.
const (
	EquationArrow = "="
	MonitorArrow  = "-->"
)

// Statement delimiters.
const (
	rateSeparator     = ":"
	metadataSeparator = ";"
	termSeparator     = "+"
)

var (
	// coefficientPattern matches a leading numeric multiplier.
	coefficientPattern = regexp.MustCompile(`^([0-9]*\.?[0-9]+(?:[eE][-+]?[0-9]+)?)\s*([A-Za-z].*)$`)

	// bracePattern matches inline brace comments such as {+M}.
	bracePattern = regexp.MustCompile(`\{[^}]*\}`)
)

// ParseStatement builds a reaction from one complete equation statement
// ("A + B = C : RATE; {meta}"). An empty category is inferred from the
// presence of a photon reactant.
func ParseStatement(stmt string, category domain.Category, id domain.ReactionID) (domain.Reaction, error) {
	colon := strings.Index(stmt, rateSeparator)
	if colon < 0 {
		return domain.Reaction{}, fmt.Errorf("%w: no rate law in %q", domain.ErrMalformedLine, stmt)
	}
	equation, rest := stmt[:colon], stmt[colon+1:]

	var rate, meta string
	if semi := strings.Index(rest, metadataSeparator); semi >= 0 {
		rate = strings.TrimSpace(rest[:semi])
		meta = strings.TrimSpace(rest[semi+1:])
	} else {
		rate = strings.TrimSpace(rest)
	}

	r, err := parseEquation(equation, EquationArrow)
	if err != nil {
		return domain.Reaction{}, err
	}
	r.ID = id
	r.RateLaw = rate
	r.Metadata = meta
	r.Category = categoryOf(r, category)
	return r, nil
}

// ParseMonitorText builds a reaction from monitor text ("A + B --> C").
func ParseMonitorText(id domain.ReactionID, text string) (domain.Reaction, error) {
	r, err := parseEquation(text, MonitorArrow)
	if err != nil {
		return domain.Reaction{}, err
	}
	r.ID = id
	r.Category = categoryOf(r, "")
	return r, nil
}

func categoryOf(r domain.Reaction, given domain.Category) domain.Category {
	if given != "" {
		return given
	}
	if r.HasPhoton() {
		return domain.CategoryPhotolysis
	}
	return domain.CategoryGasPhase
}

func parseEquation(s, arrow string) (domain.Reaction, error) {
	s = StripComments(s)
	if strings.Count(s, arrow) != 1 {
		return domain.Reaction{}, fmt.Errorf("%w: expected one %q in %q", domain.ErrMalformedLine, arrow, strings.TrimSpace(s))
	}
	lhs, rhs, _ := strings.Cut(s, arrow)

	reactants, err := ParseTerms(lhs)
	if err != nil {
		return domain.Reaction{}, err
	}
	if len(reactants) == 0 {
		return domain.Reaction{}, fmt.Errorf("%w: no reactants in %q", domain.ErrMalformedLine, strings.TrimSpace(s))
	}
	products, err := ParseTerms(rhs)
	if err != nil {
		return domain.Reaction{}, err
	}
	return domain.Reaction{Reactants: reactants, Products: products}, nil
}

// StripComments removes inline brace comments.
func StripComments(s string) string {
	return bracePattern.ReplaceAllString(s, "")
}

// ParseTerms splits a reactant or product span on '+'. Empty terms are
// dropped.
func ParseTerms(span string) ([]domain.Term, error) {
	var terms []domain.Term
	for _, part := range strings.Split(span, termSeparator) {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		t, err := ParseTerm(part)
		if err != nil {
			return nil, err
		}
		terms = append(terms, t)
	}
	return terms, nil
}

// ParseTerm parses "[coefficient] species".
func ParseTerm(s string) (domain.Term, error) {
	s = strings.TrimSpace(s)
	m := coefficientPattern.FindStringSubmatch(s)
	if m == nil {
		if strings.ContainsAny(s, " \t") {
			return domain.Term{}, fmt.Errorf("%w: bad term %q", domain.ErrMalformedLine, s)
		}
		return domain.NewTerm(s), nil
	}
	coef, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return domain.Term{}, fmt.Errorf("%w: bad coefficient in %q", domain.ErrMalformedLine, s)
	}
	species := strings.TrimSpace(m[2])
	if strings.ContainsAny(species, " \t") {
		return domain.Term{}, fmt.Errorf("%w: bad term %q", domain.ErrMalformedLine, s)
	}
	return domain.Term{Species: species, Coefficient: coef}, nil
}

// Canonical returns the comparison form of a reactant span: photons and
// {+M} are dropped, and a self-reaction "X + X" becomes "2 X".
func Canonical(span string) string {
	terms, err := ParseTerms(StripComments(span))
	if err != nil {
		return strings.TrimSpace(span)
	}
	var kept []domain.Term
	for _, t := range terms {
		if t.Species != domain.PhotonMarker {
			kept = append(kept, t)
		}
	}
	if len(kept) == 2 && kept[0] == kept[1] {
		kept = []domain.Term{{Species: kept[0].Species, Coefficient: 2 * kept[0].Coefficient}}
	}
	return domain.JoinTerms(kept)
}

// Key returns an order-insensitive identity for comparing reactions across
// mechanisms.
func Key(r domain.Reaction) string {
	return sortedTerms(r.Reactants) + " = " + sortedTerms(r.Products) + " : " + r.RateLaw
}

func sortedTerms(terms []domain.Term) string {
	parts := make([]string, 0, len(terms))
	for _, t := range terms {
		parts = append(parts, t.String())
	}
	sort.Strings(parts)
	return strings.Join(parts, " + ")
}
