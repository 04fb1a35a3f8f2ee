package tagging

import (
	"fmt"
	"slices"

	"github.com/custodia-labs/kpptag/internal/core/domain"
	"github.com/custodia-labs/kpptag/internal/logger"
)

// ReleaseSpecies are fixed-concentration halocarbons whose source is the
// sum of their oxidative release.
var ReleaseSpecies = []string{"CHBr3", "CH3Cl", "CH2Cl2", "CHCl3"}

// TaggedReactions returns the identifiers of reactions producing family.
func TaggedReactions(reactions []domain.Reaction, family string) []domain.ReactionID {
	var ids []domain.ReactionID
	for _, r := range reactions {
		if r.HasProduct(family) {
			ids = append(ids, r.ID)
		}
	}
	domain.SortIDs(ids)
	return ids
}

// TagsForReactions returns the tag of each listed reaction that has one.
// More than one tag is an error in strict mode; otherwise the first is kept.
func TagsForReactions(reactions []domain.Reaction, ids []domain.ReactionID, prefix string, mode domain.TagMode) (map[domain.ReactionID]domain.Tag, error) {
	out := make(map[domain.ReactionID]domain.Tag)
	for _, r := range reactions {
		if !slices.Contains(ids, r.ID) {
			continue
		}
		tags := ExtractTags(r, prefix)
		switch {
		case len(tags) == 0:
			continue
		case len(tags) > 1 && mode == domain.TagModeStrict:
			return nil, fmt.Errorf("%w: reaction %s has %v", domain.ErrMultipleTags, r.ID, tags)
		case len(tags) > 1:
			logger.Warn("reaction %s has %d tags %v, keeping %s", r.ID, len(tags), tags, tags[0])
		}
		out[r.ID] = tags[0]
	}
	return out, nil
}

// OxidativeRelease returns reactions involving any of species, in
// identifier order.
func OxidativeRelease(reactions []domain.Reaction, species []string) []domain.ReactionID {
	var ids []domain.ReactionID
	for _, r := range reactions {
		for _, sp := range species {
			if r.HasReactant(sp) || r.HasProduct(sp) {
				ids = append(ids, r.ID)
				break
			}
		}
	}
	domain.SortIDs(ids)
	return ids
}

// NextTags returns n consecutive tags following last.
func NextTags(last domain.Tag, prefix string, n int) ([]domain.Tag, error) {
	tags := make([]domain.Tag, 0, n)
	for range n {
		next, err := domain.NextTag(last, prefix)
		if err != nil {
			return nil, err
		}
		tags = append(tags, next)
		last = next
	}
	return tags, nil
}
