package domain

import "errors"

// Domain errors represent mechanism processing failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrMalformedLine indicates a single source line could not be parsed.
	// Readers record these as line issues rather than aborting.
	ErrMalformedLine = errors.New("malformed line")

	// ErrMissingMarker indicates a required section marker was never found.
	ErrMissingMarker = errors.New("section marker not found")

	// Tagging Errors.

	// ErrMultipleTags indicates a reaction carries more than one tag term.
	// Fatal only in strict tagging mode.
	ErrMultipleTags = errors.New("reaction has more than one tag")

	// ErrDuplicateTag indicates the same tag is owned by more than one reaction.
	// Fatal only in strict tagging mode.
	ErrDuplicateTag = errors.New("tag owned by more than one reaction")

	// ErrNoFamilyReactions indicates a legacy solver log lists no reactions
	// for the requested family. Callers cannot proceed without membership.
	ErrNoFamilyReactions = errors.New("no reactions found for family")

	// ErrUnknownReference indicates an unsupported stoichiometry reference.
	ErrUnknownReference = errors.New("unknown stoichiometry reference")

	// ErrUnsplittable indicates a compound statement lacks the closing brace
	// needed to locate the boundary between its two reactions.
	ErrUnsplittable = errors.New("compound statement cannot be split")
)

// LineIssue records a localised parse problem in a source file.
type LineIssue struct {
	// Line is the 1-based line number in the source.
	Line int `json:"line" yaml:"line"`

	// Text is the offending line.
	Text string `json:"text" yaml:"text"`

	// Reason describes why the line was skipped or adjusted.
	Reason string `json:"reason" yaml:"reason"`
}
