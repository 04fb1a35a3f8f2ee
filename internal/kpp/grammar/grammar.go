// Package grammar describes the fixed-column layout of compiled KPP monitor
// listings. Column positions are named spans rather than bare offsets so a
// different compiler output can be supported by declaring another Layout.
package grammar

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/custodia-labs/kpptag/internal/core/domain"
)

// ToEOL marks a span that runs to the end of the line.
const ToEOL = -1

// Column constants of the indexed monitor listing.
const (
	// TextStart is the first column of the quoted reaction text.
	TextStart = 6

	// TextEnd is the column after the last reaction text character.
	TextEnd = 106

	// IdentifierStart is the first column of the trailing identifier.
	IdentifierStart = 118

	// MinLineLength is the shortest line, newline included, that still
	// belongs to the listing. Shorter lines end the table.
	MinLineLength = 3

	// HeaderSkip is the distance from the start marker to the first entry.
	HeaderSkip = 3
)

// StartMarker opens the reaction listing in a monitor file.
const StartMarker = "INTEGER, DIMENSION(1) :: MONITOR"

// SymbolicPrefix is prepended to identifiers in the symbolic layout.
const SymbolicPrefix = "RR"

// NonReactionKeywords flag declaration lines that are skipped in the table.
var NonReactionKeywords = []string{"N_NAMES_", "CHARACTER", "DIMENSION", "PARAMETER"}

// Span is a named half-open column range [Start, End).
type Span struct {
	Name  string
	Start int
	End   int
}

// Extract returns the span's text, clipped to the line.
// The result is empty when the line ends before Start.
func (s Span) Extract(line string) string {
	if s.Start >= len(line) {
		return ""
	}
	end := s.End
	if end == ToEOL || end > len(line) {
		end = len(line)
	}
	return line[s.Start:end]
}

// LineKind classifies a monitor line.
type LineKind int

// Line kinds.
const (
	// LineEnd terminates the listing.
	LineEnd LineKind = iota

	// LineDeclaration is a Fortran declaration inside the listing.
	LineDeclaration

	// LineEntry carries reaction text and an identifier field.
	LineEntry
)

// Line is one tokenized monitor line.
type Line struct {
	Kind  LineKind
	Text  string
	RawID string
}

// Layout is a complete column grammar for one monitor format.
type Layout struct {
	Name          domain.MonitorLayout
	StartMarker   string
	HeaderSkip    int
	MinLineLength int
	Text          Span
	ID            Span
	NonReaction   []string

	// IDPrefix is prepended to symbolic identifiers.
	IDPrefix string
}

// Indexed is the layout whose identifiers are integers.
var Indexed = Layout{
	Name:          domain.LayoutIndexed,
	StartMarker:   StartMarker,
	HeaderSkip:    HeaderSkip,
	MinLineLength: MinLineLength,
	Text:          Span{Name: "reaction", Start: TextStart, End: TextEnd},
	ID:            Span{Name: "identifier", Start: IdentifierStart, End: ToEOL},
	NonReaction:   NonReactionKeywords,
}

// Symbolic is the layout whose identifiers are rate-constant names.
var Symbolic = Layout{
	Name:          domain.LayoutSymbolic,
	StartMarker:   StartMarker,
	HeaderSkip:    HeaderSkip,
	MinLineLength: MinLineLength,
	Text:          Span{Name: "reaction", Start: TextStart, End: TextEnd},
	ID:            Span{Name: "identifier", Start: IdentifierStart, End: ToEOL},
	NonReaction:   NonReactionKeywords,
	IDPrefix:      SymbolicPrefix,
}

// Lookup returns the layout registered under name.
func Lookup(name domain.MonitorLayout) (Layout, error) {
	switch name {
	case domain.LayoutIndexed, "":
		return Indexed, nil
	case domain.LayoutSymbolic:
		return Symbolic, nil
	default:
		return Layout{}, fmt.Errorf("%w: unknown monitor layout %q", domain.ErrInvalidInput, name)
	}
}

// Tokenize splits a line (without its newline) into its named fields.
func (l Layout) Tokenize(line string) Line {
	line = strings.TrimRight(line, "\r")
	if len(line)+1 < l.MinLineLength {
		return Line{Kind: LineEnd}
	}
	for _, kw := range l.NonReaction {
		if strings.Contains(line, kw) {
			return Line{Kind: LineDeclaration}
		}
	}
	return Line{
		Kind:  LineEntry,
		Text:  strings.TrimSpace(l.Text.Extract(line)),
		RawID: strings.TrimSpace(l.ID.Extract(line)),
	}
}

// ParseID converts a raw identifier field into a reaction identifier.
// ok is false when the field is empty or unparsable.
func (l Layout) ParseID(raw string) (domain.ReactionID, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return domain.ReactionID{}, false
	}
	if l.Name == domain.LayoutSymbolic {
		return domain.SymbolID(l.IDPrefix + raw), true
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return domain.ReactionID{}, false
	}
	return domain.IndexID(n), true
}

// IsStart reports whether line carries the listing start marker.
func (l Layout) IsStart(line string) bool {
	return strings.Contains(line, l.StartMarker)
}
