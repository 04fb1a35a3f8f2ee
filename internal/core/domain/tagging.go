package domain

import "sort"

// TagMode selects how tag multiplicity violations are handled.
type TagMode string

// Tagging modes.
const (
	// TagModeLenient keeps the first tag found and records a warning.
	TagModeLenient TagMode = "lenient"

	// TagModeStrict aborts on the first violation.
	TagModeStrict TagMode = "strict"
)

// IsValid returns true if the mode is recognised.
func (m TagMode) IsValid() bool {
	return m == TagModeLenient || m == TagModeStrict
}

// String returns the string representation.
func (m TagMode) String() string {
	return string(m)
}

// ViolationKind names a tag format violation.
type ViolationKind string

// Violation kinds.
const (
	ViolationMultipleTags ViolationKind = "multiple-tags"
	ViolationDuplicateTag ViolationKind = "duplicate-tag"
)

// Violation records a tag multiplicity problem resolved leniently.
type Violation struct {
	Kind     ViolationKind `json:"kind" yaml:"kind"`
	Reaction ReactionID    `json:"reaction" yaml:"reaction"`
	Tags     []Tag         `json:"tags" yaml:"tags"`
	Kept     Tag           `json:"kept" yaml:"kept"`
}

// Assignment attributes one tag to its owning reaction and family.
type Assignment struct {
	Tag      Tag        `json:"tag" yaml:"tag"`
	Reaction ReactionID `json:"reaction" yaml:"reaction"`
	Family   Family     `json:"family" yaml:"family"`
	Equation string     `json:"equation" yaml:"equation"`
}

// TagReport is the output of tagging one monitored family.
type TagReport struct {
	// Family is the tracked production/loss term (e.g. "LOx").
	Family string `json:"family" yaml:"family"`

	// Assignments ordered by tag.
	Assignments []Assignment `json:"assignments" yaml:"assignments"`

	// Untagged lists family reactions that carry no tag term.
	Untagged []ReactionID `json:"untagged,omitempty" yaml:"untagged,omitempty"`

	// Violations resolved in lenient mode.
	Violations []Violation `json:"violations,omitempty" yaml:"violations,omitempty"`
}

// TagFamilies maps each tag to its family.
func (r *TagReport) TagFamilies() map[Tag]Family {
	out := make(map[Tag]Family, len(r.Assignments))
	for _, a := range r.Assignments {
		out[a.Tag] = a.Family
	}
	return out
}

// TagReactions maps each tag to its owning reaction.
func (r *TagReport) TagReactions() map[Tag]ReactionID {
	out := make(map[Tag]ReactionID, len(r.Assignments))
	for _, a := range r.Assignments {
		out[a.Tag] = a.Reaction
	}
	return out
}

// ReactionTags maps each tagged reaction to its tag.
func (r *TagReport) ReactionTags() map[ReactionID]Tag {
	out := make(map[ReactionID]Tag, len(r.Assignments))
	for _, a := range r.Assignments {
		out[a.Reaction] = a.Tag
	}
	return out
}

// ByFamily groups tags by family, each group sorted.
func (r *TagReport) ByFamily() map[Family][]Tag {
	out := make(map[Family][]Tag)
	for _, a := range r.Assignments {
		out[a.Family] = append(out[a.Family], a.Tag)
	}
	for f := range out {
		tags := out[f]
		sort.Slice(tags, func(i, j int) bool { return tags[i] < tags[j] })
	}
	return out
}

// Unassigned returns tags that no rule classified.
func (r *TagReport) Unassigned() []Tag {
	return r.ByFamily()[FamilyUnassigned]
}

// Tags returns all assigned tags in order.
func (r *TagReport) Tags() []Tag {
	tags := make([]Tag, len(r.Assignments))
	for i, a := range r.Assignments {
		tags[i] = a.Tag
	}
	return tags
}
