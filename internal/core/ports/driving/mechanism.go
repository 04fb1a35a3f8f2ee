package driving

import (
	"context"
	"io"

	"github.com/custodia-labs/kpptag/internal/core/domain"
)

// MechanismService reads, tags, resolves and writes chemical mechanisms.
// Every call takes the settings it needs explicitly.
type MechanismService interface {
	// LoadEquationFile reads headers, species and reactions from an
	// equation file.
	LoadEquationFile(ctx context.Context, path string, cfg domain.Settings) (*domain.Mechanism, error)

	// ReadIndex reads the reaction listing of a compiled monitor file.
	ReadIndex(ctx context.Context, path string, layout domain.MonitorLayout) (*domain.ReactionIndex, error)

	// MonitorReactions reads a monitor file and builds its reactions.
	// Entries whose text cannot be parsed are returned as issues.
	MonitorReactions(ctx context.Context, cfg domain.Settings) ([]domain.Reaction, []domain.LineIssue, error)

	// Tag builds the tag report for cfg.Family from the monitor file.
	Tag(ctx context.Context, cfg domain.Settings) (*domain.TagReport, error)

	// Stoichiometry resolves family multipliers against cfg.Reference.
	Stoichiometry(ctx context.Context, cfg domain.Settings) (*domain.StoichiometryReport, error)

	// OxidativeRelease lists monitor reactions involving the given species.
	OxidativeRelease(ctx context.Context, cfg domain.Settings, species []string) ([]domain.Reaction, error)

	// WriteEquationFile serializes a mechanism to out.
	WriteEquationFile(ctx context.Context, m *domain.Mechanism, out io.Writer, cfg domain.Settings) error

	// WriteFamilies writes the #FAMILIES listing for tags to out, preceded
	// by their #DEFVAR declarations when declare is set.
	WriteFamilies(ctx context.Context, tags []domain.Tag, out io.Writer, declare bool) error

	// LegacyFamily reads a legacy family's member reactions from a solver log.
	LegacyFamily(ctx context.Context, logPath, family string) ([]domain.LegacyMember, error)

	// LegacyTags lists active tags from a solver log.
	LegacyTags(ctx context.Context, logPath string) ([]string, error)

	// Diff compares the reactions of two equation files.
	Diff(ctx context.Context, left, right string, cfg domain.Settings) (*domain.MechanismDiff, error)

	// Snapshot stores a mechanism and returns its ID.
	Snapshot(ctx context.Context, m *domain.Mechanism) (string, error)

	// ListSnapshots returns stored mechanism summaries.
	ListSnapshots(ctx context.Context) ([]domain.MechanismSummary, error)

	// GetSnapshot retrieves a stored mechanism.
	GetSnapshot(ctx context.Context, id string) (*domain.Mechanism, error)

	// DeleteSnapshot removes a stored mechanism.
	DeleteSnapshot(ctx context.Context, id string) error
}
