// Package tagging selects the reactions of a monitored production/loss
// family, extracts their tag pseudo-products and attributes each tag to a
// chemical family.
package tagging

import (
	"fmt"
	"sort"

	"github.com/custodia-labs/kpptag/internal/core/domain"
	"github.com/custodia-labs/kpptag/internal/logger"
)

// Tagger builds tag reports for one family.
type Tagger struct {
	family     string
	prefix     string
	mode       domain.TagMode
	classifier *Classifier
}

// Option configures a Tagger.
type Option func(*Tagger)

// WithPrefix sets the tag prefix.
func WithPrefix(prefix string) Option {
	return func(t *Tagger) { t.prefix = prefix }
}

// WithMode sets the violation policy.
func WithMode(mode domain.TagMode) Option {
	return func(t *Tagger) { t.mode = mode }
}

// WithClassifier replaces the default rule table.
func WithClassifier(c *Classifier) Option {
	return func(t *Tagger) { t.classifier = c }
}

// New creates a tagger for family (e.g. "LOx").
func New(family string, opts ...Option) *Tagger {
	t := &Tagger{
		family:     family,
		prefix:     domain.DefaultTagPrefix,
		mode:       domain.TagModeLenient,
		classifier: DefaultClassifier(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// ExtractTags returns the tag terms among a reaction's products.
func ExtractTags(r domain.Reaction, prefix string) []domain.Tag {
	var tags []domain.Tag
	for _, sp := range r.ProductSpecies() {
		if domain.IsTag(sp, prefix) {
			tags = append(tags, domain.Tag(sp))
		}
	}
	return tags
}

// PhotolysisTags returns the tags carried by photon-driven reactions.
func PhotolysisTags(reactions []domain.Reaction, prefix string) map[domain.Tag]bool {
	tags := make(map[domain.Tag]bool)
	for _, r := range reactions {
		if !r.HasPhoton() {
			continue
		}
		for _, tag := range ExtractTags(r, prefix) {
			tags[tag] = true
		}
	}
	return tags
}

// Tag selects every reaction producing the family term, extracts its tag
// and classifies it. Reactions are processed in identifier order. In strict
// mode the first multiplicity violation aborts; in lenient mode the first
// tag (or first owner) is kept and the violation recorded.
func (t *Tagger) Tag(reactions []domain.Reaction) (*domain.TagReport, error) {
	sorted := make([]domain.Reaction, len(reactions))
	copy(sorted, reactions)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].ID.Less(sorted[j].ID) })

	report := &domain.TagReport{Family: t.family}
	photolysis := PhotolysisTags(sorted, t.prefix)
	owners := make(map[domain.Tag]domain.ReactionID)

	for _, r := range sorted {
		if !r.HasProduct(t.family) {
			continue
		}
		tags := ExtractTags(r, t.prefix)
		if len(tags) == 0 {
			report.Untagged = append(report.Untagged, r.ID)
			logger.Debug("reaction %s produces %s without a tag", r.ID, t.family)
			continue
		}

		tag := tags[0]
		if len(tags) > 1 {
			if t.mode == domain.TagModeStrict {
				return nil, fmt.Errorf("%w: reaction %s has %v", domain.ErrMultipleTags, r.ID, tags)
			}
			report.Violations = append(report.Violations, domain.Violation{
				Kind: domain.ViolationMultipleTags, Reaction: r.ID, Tags: tags, Kept: tag,
			})
			logger.Warn("reaction %s has %d tags %v, keeping %s", r.ID, len(tags), tags, tag)
		}

		if owner, taken := owners[tag]; taken {
			if t.mode == domain.TagModeStrict {
				return nil, fmt.Errorf("%w: %s on reactions %s and %s", domain.ErrDuplicateTag, tag, owner, r.ID)
			}
			report.Violations = append(report.Violations, domain.Violation{
				Kind: domain.ViolationDuplicateTag, Reaction: r.ID, Tags: []domain.Tag{tag}, Kept: tag,
			})
			logger.Warn("tag %s already owned by reaction %s, ignoring reaction %s", tag, owner, r.ID)
			continue
		}
		owners[tag] = r.ID

		family := t.classifier.Classify(Candidate{Reaction: r, Tag: tag, Photolysis: photolysis})
		if family == domain.FamilyUnassigned {
			logger.Warnw("tag not assigned to a family", "tag", tag, "reaction", r.ID.String(), "equation", r.Equation())
		}
		report.Assignments = append(report.Assignments, domain.Assignment{
			Tag: tag, Reaction: r.ID, Family: family, Equation: r.Equation(),
		})
	}

	sort.SliceStable(report.Assignments, func(i, j int) bool {
		return report.Assignments[i].Tag < report.Assignments[j].Tag
	})
	logger.Debug("tagged %d reactions for %s (%d untagged, %d violations)",
		len(report.Assignments), t.family, len(report.Untagged), len(report.Violations))
	return report, nil
}
