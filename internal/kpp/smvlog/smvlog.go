// Package smvlog reads the legacy SMVGEAR solver log (smv2.log) that
// predates compiled KPP mechanisms: its reaction table, production/loss
// family membership and the list of active tags.
package smvlog

import (
	"bufio"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/custodia-labs/kpptag/internal/core/domain"
	"github.com/custodia-labs/kpptag/internal/logger"
)

// DefaultFileName is the conventional log name.
const DefaultFileName = "smv2.log"

// Block header tokens.
const (
	reactionHeader = "NMBR"
	familyEnd      = "REACTANTS:"
)

var (
	familyHeader  = []string{"Family", "coefficient", "rxns"}
	speciesHeader = []string{"NBR", "NAME", "MW", "BKGAS(VMRAT)"}
)

// TagMarkers identify production/loss tag species in the species table.
var TagMarkers = []string{"PD", "RD", "PO3", "LO3", "LR"}

// Log is a tokenized solver log.
type Log struct {
	rows [][]string
}

// Parse reads and tokenizes the whole log.
func Parse(in io.Reader) (*Log, error) {
	l := &Log{}
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for scanner.Scan() {
		l.rows = append(l.rows, strings.Fields(scanner.Text()))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read solver log: %w", err)
	}
	return l, nil
}

// block returns the rows after the first row matching start, up to the
// first row for which stop is true.
func (l *Log) block(start func([]string) bool, stop func([]string) bool) [][]string {
	var out [][]string
	reading := false
	for _, row := range l.rows {
		if !reading {
			reading = start(row)
			continue
		}
		if stop(row) {
			break
		}
		out = append(out, row)
	}
	return out
}

func empty(row []string) bool { return len(row) == 0 }

func hasAll(row []string, tokens ...string) bool {
	for _, t := range tokens {
		if !slices.Contains(row, t) {
			return false
		}
	}
	return true
}

// Reactions returns the reaction table that follows the NMBR header.
// Rows whose first token is not a number are skipped.
func (l *Log) Reactions() []domain.LegacyReaction {
	rows := l.block(func(r []string) bool { return slices.Contains(r, reactionHeader) }, empty)
	out := make([]domain.LegacyReaction, 0, len(rows))
	for _, row := range rows {
		n, err := strconv.Atoi(row[0])
		if err != nil {
			logger.Debug("smvlog: skipped reaction row %v", row)
			continue
		}
		out = append(out, domain.LegacyReaction{Number: n, Tokens: row[1:]})
	}
	return out
}

// Family returns the reactions contributing to a production/loss family.
// A family with no members is an error.
func (l *Log) Family(name string) ([]domain.LegacyMember, error) {
	rows := l.block(
		func(r []string) bool { return hasAll(r, append(slices.Clone(familyHeader), name)...) },
		func(r []string) bool { return empty(r) || slices.Contains(r, familyEnd) },
	)
	var out []domain.LegacyMember
	for _, row := range rows {
		if len(row) < 2 {
			continue
		}
		n, err := strconv.Atoi(row[1])
		if err != nil {
			logger.Debug("smvlog: skipped family row %v", row)
			continue
		}
		coef := domain.DefaultMultiplier
		if len(row) > 2 {
			if v, err := strconv.ParseFloat(row[len(row)-1], 64); err == nil {
				coef = v
			}
		}
		out = append(out, domain.LegacyMember{Reaction: n, Coefficient: coef, Tokens: row[2:]})
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: %s", domain.ErrNoFamilyReactions, name)
	}
	return out, nil
}

// ActiveTags returns the tag species listed in the species table.
func (l *Log) ActiveTags() []string {
	rows := l.block(func(r []string) bool { return hasAll(r, speciesHeader...) }, empty)
	var out []string
	for _, row := range rows {
		if len(row) < 2 {
			continue
		}
		name := row[1]
		for _, m := range TagMarkers {
			if strings.Contains(name, m) {
				out = append(out, name)
				break
			}
		}
	}
	return out
}

// ReactionsForTag returns reactions with a '+'-separated token ending in
// tag. Suffix matching keeps LR10 from matching LR100.
func (l *Log) ReactionsForTag(tag string) []domain.LegacyReaction {
	var out []domain.LegacyReaction
	for _, r := range l.Reactions() {
		if hasTagToken(r.Tokens, tag) {
			out = append(out, r)
		}
	}
	return out
}

func hasTagToken(tokens []string, tag string) bool {
	for _, tok := range tokens {
		for _, part := range strings.Split(tok, "+") {
			if part != "" && strings.HasSuffix(part, tag) {
				return true
			}
		}
	}
	return false
}
