// Package writer emits a mechanism as a KPP equation file.
package writer

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/custodia-labs/kpptag/internal/core/domain"
)

// Column widths of a reaction line.
const (
	ReactionColumn       = 44
	RateColumn           = 36
	PhotolysisRateColumn = 15
)

// DefaultLineWidth is the longest reaction string written on one line.
const DefaultLineWidth = domain.DefaultLineWidth

// speciesColumn is the padded width of a species name.
const speciesColumn = 11

// Writer formats mechanisms.
type Writer struct {
	lineWidth int
}

// New creates a writer. A non-positive width selects DefaultLineWidth.
func New(lineWidth int) *Writer {
	if lineWidth <= 0 {
		lineWidth = DefaultLineWidth
	}
	return &Writer{lineWidth: lineWidth}
}

// lineWriter records the first write error.
type lineWriter struct {
	w   *bufio.Writer
	err error
}

func (lw *lineWriter) line(s string) {
	if lw.err != nil {
		return
	}
	_, lw.err = lw.w.WriteString(strings.TrimRight(s, " ") + "\n")
}

func (lw *lineWriter) linef(format string, args ...any) {
	lw.line(fmt.Sprintf(format, args...))
}

func (lw *lineWriter) flush() error {
	if lw.err != nil {
		return lw.err
	}
	return lw.w.Flush()
}

// Write emits headers, species blocks and the reactions of every category.
func (w *Writer) Write(out io.Writer, m *domain.Mechanism) error {
	lw := &lineWriter{w: bufio.NewWriter(out)}

	for _, h := range m.Headers {
		lw.line(h)
	}
	lw.line("")
	lw.line("#include atoms")
	lw.line("")

	lw.line("#DEFVAR")
	lw.line("")
	for _, sp := range m.SpeciesByActivity(domain.ActivityActive) {
		lw.line(SpeciesLine(sp))
	}
	lw.line("")
	lw.line("#DEFFIX")
	lw.line("")
	for _, sp := range m.SpeciesByActivity(domain.ActivityFixed) {
		lw.line(SpeciesLine(sp))
	}
	lw.line("")

	lw.line("#EQUATIONS")
	for _, cat := range domain.Categories() {
		lw.line("//")
		lw.linef("// %s reactions", cat)
		lw.line("//")
		for _, r := range m.ByCategory(cat) {
			for _, l := range w.FormatReaction(r) {
				lw.line(l)
			}
		}
	}

	if err := lw.flush(); err != nil {
		return fmt.Errorf("write mechanism: %w", err)
	}
	return nil
}

// SpeciesLine formats a species declaration.
func SpeciesLine(sp domain.Species) string {
	desc := sp.Description
	if !strings.Contains(desc, "{") {
		desc = "{" + desc + "}"
	}
	return fmt.Sprintf("%-*s= IGNORE; %s", speciesColumn, sp.Name, desc)
}

// FormatReaction returns the line(s) for one reaction. Reaction strings at
// least as long as the line width are broken after a '+'; the rate law and
// metadata follow the last piece.
func (w *Writer) FormatReaction(r domain.Reaction) []string {
	rateColumn := RateColumn
	if r.Category == domain.CategoryPhotolysis {
		rateColumn = PhotolysisRateColumn
	}

	chunks := SplitEquation(r.Equation(), w.lineWidth)
	lines := make([]string, 0, len(chunks))
	lines = append(lines, chunks[:len(chunks)-1]...)
	last := chunks[len(chunks)-1]
	lines = append(lines, strings.TrimRight(fmt.Sprintf("%-*s %-*s %s",
		ReactionColumn, last+" :", rateColumn, r.RateLaw+";", r.Metadata), " "))
	return lines
}

// SplitEquation breaks eq into pieces shorter than width. Each piece except
// the last ends at the last " +" inside the window and keeps the '+'. A
// window without " +" is emitted whole.
func SplitEquation(eq string, width int) []string {
	var chunks []string
	rest := eq
	for len(rest) >= width {
		window := rest[:width]
		cut := strings.LastIndex(window, " +")
		if cut < 0 {
			break
		}
		chunks = append(chunks, rest[:cut+2])
		rest = strings.TrimLeft(rest[cut+2:], " ")
	}
	return append(chunks, rest)
}

// WriteFamilies emits the #FAMILIES listing for tags.
func WriteFamilies(out io.Writer, tags []domain.Tag) error {
	lw := &lineWriter{w: bufio.NewWriter(out)}
	lw.line("#FAMILIES")
	for _, t := range tags {
		lw.line(t.FamilyDirective())
	}
	if err := lw.flush(); err != nil {
		return fmt.Errorf("write families: %w", err)
	}
	return nil
}

// WriteDeclarations emits #DEFVAR lines declaring tags as species.
func WriteDeclarations(out io.Writer, tags []domain.Tag) error {
	lw := &lineWriter{w: bufio.NewWriter(out)}
	for _, t := range tags {
		lw.line(SpeciesLine(domain.Species{Name: t.String(), Description: "Production tag"}))
	}
	if err := lw.flush(); err != nil {
		return fmt.Errorf("write declarations: %w", err)
	}
	return nil
}
