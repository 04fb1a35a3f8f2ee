// Package monitor reads the reaction listing of a compiled KPP monitor file
// into a reaction index.
package monitor

import (
	"bufio"
	"fmt"
	"io"

	"github.com/custodia-labs/kpptag/internal/core/domain"
	"github.com/custodia-labs/kpptag/internal/kpp/grammar"
	"github.com/custodia-labs/kpptag/internal/logger"
)

// maxLineSize bounds a single monitor line.
const maxLineSize = 1 << 20

// Reader extracts reaction text keyed by identifier.
type Reader struct {
	layout grammar.Layout
}

// NewReader creates a reader for the given column grammar.
func NewReader(layout grammar.Layout) *Reader {
	return &Reader{layout: layout}
}

// Read scans in for the listing start marker and collects every entry
// until the first short line. An entry with no identifier is assigned
// previous+1 and recorded as assumed; without a previous identifier it is
// reported and skipped.
func (r *Reader) Read(in io.Reader) (*domain.ReactionIndex, error) {
	index := &domain.ReactionIndex{
		Layout:  r.layout.Name,
		Entries: make(map[domain.ReactionID]string),
	}

	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	var (
		lineNo  int
		start   = -1
		prev    domain.ReactionID
		hasPrev bool
	)
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()

		if start < 0 {
			if r.layout.IsStart(line) {
				start = lineNo + r.layout.HeaderSkip
			}
			continue
		}
		if lineNo < start {
			continue
		}

		tok := r.layout.Tokenize(line)
		if tok.Kind == grammar.LineEnd {
			break
		}
		if tok.Kind == grammar.LineDeclaration {
			continue
		}

		id, ok := r.layout.ParseID(tok.RawID)
		if !ok {
			if !hasPrev || prev.IsSymbolic() {
				index.Issues = append(index.Issues, domain.LineIssue{
					Line:   lineNo,
					Text:   tok.Text,
					Reason: "no reaction identifier and none to infer from",
				})
				logger.Warnw("skipped monitor entry without identifier", "line", lineNo, "text", tok.Text)
				continue
			}
			id = domain.IndexID(prev.Index + 1)
			index.Assumed = append(index.Assumed, id)
			logger.Warn("reaction id assumed as %s for %q", id, tok.Text)
		}

		if _, dup := index.Entries[id]; dup {
			logger.Warn("duplicate reaction id %s at line %d, keeping the later entry", id, lineNo)
		}
		index.Entries[id] = tok.Text
		prev, hasPrev = id, true
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read monitor listing: %w", err)
	}
	if start < 0 {
		return nil, fmt.Errorf("%w: %q", domain.ErrMissingMarker, r.layout.StartMarker)
	}

	logger.Debug("monitor listing: %d entries, %d assumed ids, %d issues",
		len(index.Entries), len(index.Assumed), len(index.Issues))
	return index, nil
}
