package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// DefaultTagPrefix is the prefix of compiled production/loss tags.
const DefaultTagPrefix = "T"

// TagDigits is the zero-padded width of a tag's number.
const TagDigits = 3

// Tag is a short pseudo-product code marking a reaction for output.
type Tag string

// NotTagged is the sentinel for a family reaction without a tag term.
const NotTagged Tag = ""

// String returns the string representation.
func (t Tag) String() string {
	return string(t)
}

// Bare returns the tag's number with prefix removed. A tag that does not
// start with prefix is returned unchanged.
func (t Tag) Bare(prefix string) string {
	return strings.TrimPrefix(string(t), prefix)
}

// FamilyDirective returns the #FAMILIES line producing this tag.
func (t Tag) FamilyDirective() string {
	return fmt.Sprintf("P%s : %s;", t, t)
}

// IsTag reports whether s is prefix followed by one or more digits.
func IsTag(s, prefix string) bool {
	if prefix == "" || !strings.HasPrefix(s, prefix) {
		return false
	}
	digits := s[len(prefix):]
	if digits == "" {
		return false
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// NextTag returns the tag following last, keeping the zero padding.
func NextTag(last Tag, prefix string) (Tag, error) {
	if !IsTag(string(last), prefix) {
		return NotTagged, fmt.Errorf("%w: %q is not a %s tag", ErrInvalidInput, last, prefix)
	}
	digits := last.Bare(prefix)
	n, err := strconv.Atoi(digits)
	if err != nil {
		return NotTagged, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	width := max(TagDigits, len(digits))
	return Tag(fmt.Sprintf("%s%0*d", prefix, width, n+1)), nil
}
