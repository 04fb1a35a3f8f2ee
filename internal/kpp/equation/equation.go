// Package equation reads the reaction sections of a KPP equation file.
//
// Reading is an explicit state machine: the reader scans for a section
// marker, accumulates statement fragments until one carries a rate-law
// marker, emits the complete statement and returns to accumulating. A
// section divider ends the section once enough statements were collected.
package equation

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/custodia-labs/kpptag/internal/core/domain"
	"github.com/custodia-labs/kpptag/internal/logger"
)

// DefaultRateMarkers are the rate-law function names that complete a statement.
var DefaultRateMarkers = []string{"GCARR", "GCJPL", "GC_", "HET", "PHOTOL"}

// CommentPrefix starts a comment line.
const CommentPrefix = "//"

const (
	// bodyOffset is the distance from a section marker to its first statement.
	bodyOffset = 2

	// minStatements is the statement count after which a divider ends a section.
	minStatements = 4
)

// spacingPattern matches a '+' glued to the following term.
var spacingPattern = regexp.MustCompile(` \+([0-9A-Za-z])`)

type state int

const (
	scanningForSection state = iota
	accumulating
	statementComplete
)

func (s state) String() string {
	switch s {
	case scanningForSection:
		return "scanning-for-section"
	case accumulating:
		return "accumulating"
	case statementComplete:
		return "statement-complete"
	default:
		return "unknown"
	}
}

// Result holds the statements of each section in file order.
type Result struct {
	Sections   map[domain.Category][]string
	SplitCount int
	Issues     []domain.LineIssue
}

// Statements returns the statements of one category.
func (r *Result) Statements(c domain.Category) []string {
	return r.Sections[c]
}

// Len returns the total number of statements.
func (r *Result) Len() int {
	n := 0
	for _, s := range r.Sections {
		n += len(s)
	}
	return n
}

// Reader extracts complete statements per category.
type Reader struct {
	markers []string
}

// NewReader creates a reader. With no markers, DefaultRateMarkers are used.
func NewReader(markers ...string) *Reader {
	if len(markers) == 0 {
		markers = DefaultRateMarkers
	}
	return &Reader{markers: markers}
}

// machine is the per-read state.
type machine struct {
	markers  []string
	state    state
	current  domain.Category
	bodyFrom int
	buf      []string
	bufLine  int
	result   *Result
}

// Read parses in and returns the statements of every section found.
// Compound statements are split before returning.
func (r *Reader) Read(in io.Reader) (*Result, error) {
	m := &machine{
		markers: r.markers,
		state:   scanningForSection,
		result:  &Result{Sections: make(map[domain.Category][]string)},
	}

	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		m.step(lineNo, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read equations: %w", err)
	}
	m.closeSection()

	for cat, stmts := range m.result.Sections {
		split, count, issues := SplitCompound(stmts)
		m.result.Sections[cat] = split
		m.result.SplitCount += count
		m.result.Issues = append(m.result.Issues, issues...)
	}
	if m.result.SplitCount > 0 {
		logger.Warn("split %d compound statements", m.result.SplitCount)
	}
	logger.Debug("equations: %d statements, %d issues", m.result.Len(), len(m.result.Issues))
	return m.result, nil
}

func (m *machine) step(lineNo int, raw string) {
	line := strings.TrimSpace(raw)

	if cat, ok := sectionMarker(line); ok {
		m.closeSection()
		m.current = cat
		m.bodyFrom = lineNo + bodyOffset
		m.state = accumulating
		return
	}
	if m.state == scanningForSection || lineNo < m.bodyFrom {
		return
	}

	switch {
	case line == "":
		return
	case line == CommentPrefix:
		if len(m.result.Sections[m.current]) >= minStatements {
			m.closeSection()
		}
		return
	case strings.HasPrefix(line, CommentPrefix):
		return
	case strings.HasPrefix(line, "#"):
		m.closeSection()
		return
	}

	if len(m.buf) == 0 {
		m.bufLine = lineNo
	}
	m.buf = append(m.buf, line)
	if m.completes(line) {
		m.state = statementComplete
		m.emit()
	}
}

// completes reports whether a fragment carries a rate-law marker after
// its ':' separator.
func (m *machine) completes(fragment string) bool {
	_, tail, ok := strings.Cut(fragment, ":")
	if !ok {
		return false
	}
	for _, marker := range m.markers {
		if strings.Contains(tail, marker) {
			return true
		}
	}
	return false
}

func (m *machine) emit() {
	stmt := NormalizeSpacing(strings.Join(m.buf, " "))
	m.result.Sections[m.current] = append(m.result.Sections[m.current], stmt)
	m.buf = nil
	m.state = accumulating
}

// closeSection leaves the current section, reporting any unfinished statement.
func (m *machine) closeSection() {
	if len(m.buf) > 0 {
		text := strings.Join(m.buf, " ")
		m.result.Issues = append(m.result.Issues, domain.LineIssue{
			Line:   m.bufLine,
			Text:   text,
			Reason: "incomplete statement",
		})
		logger.Warnw("dropped incomplete statement", "line", m.bufLine, "section", m.current, "text", text)
		m.buf = nil
	}
	m.current = ""
	m.state = scanningForSection
}

func sectionMarker(line string) (domain.Category, bool) {
	if !strings.HasPrefix(line, CommentPrefix) {
		return "", false
	}
	for _, c := range domain.Categories() {
		if strings.Contains(line, string(c)) {
			return c, true
		}
	}
	return "", false
}

// NormalizeSpacing rewrites " +X" as " + X".
func NormalizeSpacing(s string) string {
	return spacingPattern.ReplaceAllString(s, " + $1")
}

// SplitCompound splits statements that hold more than one reaction. The
// split point is just after the last '}' between the first and last '=';
// both halves are split again until each holds one reaction. Statements
// with no such '}' are kept whole and reported.
func SplitCompound(stmts []string) ([]string, int, []domain.LineIssue) {
	var (
		out    []string
		count  int
		issues []domain.LineIssue
	)
	for _, s := range stmts {
		parts, err := splitOne(s)
		if err != nil {
			issues = append(issues, domain.LineIssue{Text: s, Reason: err.Error()})
			logger.Warnw("cannot split compound statement", "text", s)
			out = append(out, s)
			continue
		}
		if len(parts) > 1 {
			count++
			logger.Warn("split compound statement into %d: %q", len(parts), s)
		}
		out = append(out, parts...)
	}
	return out, count, issues
}

func splitOne(s string) ([]string, error) {
	s = strings.TrimSpace(s)
	bare := maskBraced(s)
	if strings.Count(bare, "=") <= 1 {
		return []string{s}, nil
	}
	first := strings.Index(bare, "=")
	last := strings.LastIndex(bare, "=")
	brace := strings.LastIndex(bare[first:last], "}")
	if brace < 0 {
		return nil, fmt.Errorf("%w: no '}' between reactions", domain.ErrUnsplittable)
	}
	cut := first + brace + 1

	head, err := splitOne(s[:cut])
	if err != nil {
		return nil, err
	}
	tail, err := splitOne(s[cut:])
	if err != nil {
		return nil, err
	}
	return append(head, tail...), nil
}

// maskBraced blanks every '=' inside brace metadata, keeping byte offsets.
func maskBraced(s string) string {
	b := []byte(s)
	depth := 0
	for i, c := range b {
		switch {
		case c == '{':
			depth++
		case c == '}' && depth > 0:
			depth--
		case c == '=' && depth > 0:
			b[i] = ' '
		}
	}
	return string(b)
}
