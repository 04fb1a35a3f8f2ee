// Package species reads the species declaration blocks and the comment
// header of a KPP equation file.
package species

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/custodia-labs/kpptag/internal/core/domain"
	"github.com/custodia-labs/kpptag/internal/logger"
)

// Equation file directives.
const (
	ActiveMarker    = "#DEFVAR"
	FixedMarker     = "#DEFFIX"
	EquationsMarker = "#EQUATIONS"
)

// AssignmentToken separates a species name from its description.
const AssignmentToken = "= IGNORE;"

// headerEnd closes the comment header block.
const headerEnd = "}"

// Table is the result of reading the species blocks.
type Table struct {
	Species []domain.Species
	Issues  []domain.LineIssue
}

// Read collects the species declared under #DEFVAR (active) and #DEFFIX
// (fixed) up to #EQUATIONS. Blank and comment lines are skipped; any other
// line without the assignment token is reported and skipped.
func Read(in io.Reader) (*Table, error) {
	table := &Table{}
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(in)
	var (
		lineNo   int
		activity domain.Activity
	)
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())

		switch {
		case strings.HasPrefix(line, EquationsMarker):
			return table, nil
		case strings.HasPrefix(line, ActiveMarker):
			activity = domain.ActivityActive
			continue
		case strings.HasPrefix(line, FixedMarker):
			activity = domain.ActivityFixed
			continue
		}
		if activity == "" || line == "" || strings.HasPrefix(line, "//") {
			continue
		}

		sp, err := ParseLine(line)
		if err != nil {
			table.Issues = append(table.Issues, domain.LineIssue{Line: lineNo, Text: line, Reason: err.Error()})
			logger.Warnw("skipped species line", "line", lineNo, "text", line)
			continue
		}
		if seen[sp.Name] {
			table.Issues = append(table.Issues, domain.LineIssue{Line: lineNo, Text: line, Reason: "duplicate species " + sp.Name})
			logger.Warnw("skipped duplicate species", "line", lineNo, "species", sp.Name)
			continue
		}
		seen[sp.Name] = true
		sp.Activity = activity
		table.Species = append(table.Species, sp)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read species: %w", err)
	}
	return table, nil
}

// ParseLine splits "NAME = IGNORE; {description}" into a species.
// Surrounding braces are removed from the description.
func ParseLine(line string) (domain.Species, error) {
	name, desc, ok := strings.Cut(line, AssignmentToken)
	if !ok {
		return domain.Species{}, fmt.Errorf("%w: missing %q", domain.ErrMalformedLine, AssignmentToken)
	}
	name = strings.TrimSpace(name)
	if name == "" || strings.ContainsAny(name, " \t") {
		return domain.Species{}, fmt.Errorf("%w: bad species name %q", domain.ErrMalformedLine, name)
	}
	desc = strings.TrimSpace(desc)
	if strings.HasPrefix(desc, "{") && strings.HasSuffix(desc, "}") {
		desc = strings.TrimSpace(desc[1 : len(desc)-1])
	}
	return domain.Species{Name: name, Description: desc}, nil
}

// ReadHeaders returns the leading comment block, up to and including the
// line that closes it. Without a closing line, everything before the first
// directive is returned.
func ReadHeaders(in io.Reader) ([]string, error) {
	var headers []string
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.HasPrefix(strings.TrimSpace(line), "#") {
			break
		}
		headers = append(headers, line)
		if strings.TrimSpace(line) == headerEnd {
			break
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read headers: %w", err)
	}
	return headers, nil
}
