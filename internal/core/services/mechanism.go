package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/custodia-labs/kpptag/internal/core/domain"
	"github.com/custodia-labs/kpptag/internal/core/ports/driven"
	"github.com/custodia-labs/kpptag/internal/core/ports/driving"
	"github.com/custodia-labs/kpptag/internal/kpp/equation"
	"github.com/custodia-labs/kpptag/internal/kpp/grammar"
	"github.com/custodia-labs/kpptag/internal/kpp/monitor"
	"github.com/custodia-labs/kpptag/internal/kpp/reaction"
	"github.com/custodia-labs/kpptag/internal/kpp/smvlog"
	"github.com/custodia-labs/kpptag/internal/kpp/species"
	"github.com/custodia-labs/kpptag/internal/kpp/writer"
	"github.com/custodia-labs/kpptag/internal/logger"
	"github.com/custodia-labs/kpptag/internal/stoich"
	"github.com/custodia-labs/kpptag/internal/tagging"
)

// Ensure MechanismService implements the interface.
var _ driving.MechanismService = (*MechanismService)(nil)

// errNoStore is returned by snapshot operations without a configured store.
var errNoStore = fmt.Errorf("%w: snapshot storage not configured", domain.ErrInvalidInput)

// MechanismService reads, tags and writes mechanisms.
type MechanismService struct {
	store driven.MechanismStore
	now   func() time.Time
}

// NewMechanismService creates a new mechanism service.
// store may be nil, which disables snapshot operations.
func NewMechanismService(store driven.MechanismStore) *MechanismService {
	return &MechanismService{
		store: store,
		now:   time.Now,
	}
}

// LoadEquationFile reads headers, species and reactions from an equation file.
// The three passes run concurrently over the same file contents.
func (s *MechanismService) LoadEquationFile(ctx context.Context, path string, cfg domain.Settings) (*domain.Mechanism, error) {
	logger.Section("Equation file")

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read equation file: %w", err)
	}

	var (
		headers []string
		table   *species.Table
		eqns    *equation.Result
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		headers, err = species.ReadHeaders(bytes.NewReader(data))
		return err
	})
	g.Go(func() error {
		var err error
		table, err = species.Read(bytes.NewReader(data))
		return err
	})
	g.Go(func() error {
		if err := gctx.Err(); err != nil {
			return err
		}
		var err error
		eqns, err = equation.NewReader(cfg.RateMarkers...).Read(bytes.NewReader(data))
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}

	m := &domain.Mechanism{
		ID:         uuid.NewString(),
		Name:       filepath.Base(path),
		SourcePath: path,
		Headers:    headers,
		Species:    table.Species,
		SplitCount: eqns.SplitCount,
		LoadedAt:   s.now(),
	}
	m.Issues = append(m.Issues, table.Issues...)
	m.Issues = append(m.Issues, eqns.Issues...)

	next := 1
	for _, cat := range domain.Categories() {
		for _, stmt := range eqns.Statements(cat) {
			r, err := reaction.ParseStatement(stmt, cat, domain.IndexID(next))
			if err != nil {
				m.Issues = append(m.Issues, domain.LineIssue{Text: stmt, Reason: err.Error()})
				logger.Warnw("skipped statement", "category", cat, "error", err)
				continue
			}
			m.Reactions = append(m.Reactions, r)
			next++
		}
	}

	logger.Info("%s: %d species, %d reactions, %d issues",
		m.Name, len(m.Species), len(m.Reactions), len(m.Issues))
	return m, nil
}

// ReadIndex reads the reaction listing of a compiled monitor file.
func (s *MechanismService) ReadIndex(ctx context.Context, path string, layout domain.MonitorLayout) (*domain.ReactionIndex, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	l, err := grammar.Lookup(layout)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open monitor file: %w", err)
	}
	defer f.Close()

	index, err := monitor.NewReader(l).Read(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return index, nil
}

// MonitorReactions reads the monitor file and builds its reactions.
func (s *MechanismService) MonitorReactions(ctx context.Context, cfg domain.Settings) ([]domain.Reaction, []domain.LineIssue, error) {
	logger.Section("Monitor listing")

	index, err := s.ReadIndex(ctx, cfg.MonitorPath(), cfg.Layout)
	if err != nil {
		return nil, nil, err
	}
	issues := append([]domain.LineIssue(nil), index.Issues...)
	reactions := make([]domain.Reaction, 0, index.Len())
	for _, id := range index.IDs() {
		r, err := reaction.ParseMonitorText(id, index.Entries[id])
		if err != nil {
			issues = append(issues, domain.LineIssue{Text: index.Entries[id], Reason: err.Error()})
			logger.Warnw("skipped monitor reaction", "id", id.String(), "error", err)
			continue
		}
		reactions = append(reactions, r)
	}
	logger.Info("monitor: %d reactions, %d issues", len(reactions), len(issues))
	return reactions, issues, nil
}

// Tag builds the tag report for cfg.Family.
func (s *MechanismService) Tag(ctx context.Context, cfg domain.Settings) (*domain.TagReport, error) {
	reactions, _, err := s.MonitorReactions(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return s.tag(reactions, cfg)
}

func (s *MechanismService) tag(reactions []domain.Reaction, cfg domain.Settings) (*domain.TagReport, error) {
	logger.Section("Tagging")
	t := tagging.New(cfg.Family, tagging.WithPrefix(cfg.TagPrefix), tagging.WithMode(cfg.Mode))
	return t.Tag(reactions)
}

// Stoichiometry resolves family multipliers against cfg.Reference.
func (s *MechanismService) Stoichiometry(ctx context.Context, cfg domain.Settings) (*domain.StoichiometryReport, error) {
	registry, err := stoich.DefaultRegistry()
	if err != nil {
		return nil, err
	}
	ref, err := registry.Lookup(cfg.Reference)
	if err != nil {
		return nil, err
	}

	reactions, _, err := s.MonitorReactions(ctx, cfg)
	if err != nil {
		return nil, err
	}
	tags, err := s.tag(reactions, cfg)
	if err != nil {
		return nil, err
	}

	logger.Section("Stoichiometry")
	return stoich.NewResolver(cfg.Family, cfg.TagPrefix, ref).Report(reactions, tags), nil
}

// OxidativeRelease lists monitor reactions involving any of names.
func (s *MechanismService) OxidativeRelease(ctx context.Context, cfg domain.Settings, names []string) ([]domain.Reaction, error) {
	reactions, _, err := s.MonitorReactions(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if len(names) == 0 {
		names = tagging.ReleaseSpecies
	}
	byID := make(map[domain.ReactionID]domain.Reaction, len(reactions))
	for _, r := range reactions {
		byID[r.ID] = r
	}
	var out []domain.Reaction
	for _, id := range tagging.OxidativeRelease(reactions, names) {
		out = append(out, byID[id])
	}
	return out, nil
}

// WriteEquationFile serializes a mechanism.
func (s *MechanismService) WriteEquationFile(ctx context.Context, m *domain.Mechanism, out io.Writer, cfg domain.Settings) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return writer.New(cfg.LineWidth).Write(out, m)
}

// WriteFamilies writes the #FAMILIES listing for tags.
func (s *MechanismService) WriteFamilies(ctx context.Context, tags []domain.Tag, out io.Writer, declare bool) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if declare {
		if err := writer.WriteDeclarations(out, tags); err != nil {
			return err
		}
	}
	return writer.WriteFamilies(out, tags)
}

func openLog(path string) (*smvlog.Log, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open solver log: %w", err)
	}
	defer f.Close()
	return smvlog.Parse(f)
}

// LegacyFamily reads a legacy family's member reactions.
func (s *MechanismService) LegacyFamily(ctx context.Context, logPath, family string) ([]domain.LegacyMember, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	l, err := openLog(logPath)
	if err != nil {
		return nil, err
	}
	return l.Family(family)
}

// LegacyTags lists active tags from a solver log.
func (s *MechanismService) LegacyTags(ctx context.Context, logPath string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	l, err := openLog(logPath)
	if err != nil {
		return nil, err
	}
	return l.ActiveTags(), nil
}

// Diff loads two equation files concurrently and compares their reactions.
func (s *MechanismService) Diff(ctx context.Context, left, right string, cfg domain.Settings) (*domain.MechanismDiff, error) {
	var a, b *domain.Mechanism
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		a, err = s.LoadEquationFile(gctx, left, cfg)
		return err
	})
	g.Go(func() error {
		var err error
		b, err = s.LoadEquationFile(gctx, right, cfg)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	ka, kb := reactionKeys(a), reactionKeys(b)
	diff := &domain.MechanismDiff{Left: left, Right: right}
	for k, eq := range ka {
		if _, ok := kb[k]; ok {
			diff.Common++
			continue
		}
		diff.Removed = append(diff.Removed, eq)
	}
	for k, eq := range kb {
		if _, ok := ka[k]; !ok {
			diff.Added = append(diff.Added, eq)
		}
	}
	sort.Strings(diff.Removed)
	sort.Strings(diff.Added)
	return diff, nil
}

func reactionKeys(m *domain.Mechanism) map[string]string {
	keys := make(map[string]string, len(m.Reactions))
	for _, r := range m.Reactions {
		keys[reaction.Key(r)] = r.Equation() + " : " + r.RateLaw
	}
	return keys
}

// Snapshot stores a mechanism and returns its ID.
func (s *MechanismService) Snapshot(ctx context.Context, m *domain.Mechanism) (string, error) {
	if s.store == nil {
		return "", errNoStore
	}
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	if err := s.store.Save(ctx, m); err != nil {
		return "", fmt.Errorf("save snapshot: %w", err)
	}
	return m.ID, nil
}

// ListSnapshots returns stored mechanism summaries.
func (s *MechanismService) ListSnapshots(ctx context.Context) ([]domain.MechanismSummary, error) {
	if s.store == nil {
		return nil, errNoStore
	}
	return s.store.List(ctx)
}

// GetSnapshot retrieves a stored mechanism.
func (s *MechanismService) GetSnapshot(ctx context.Context, id string) (*domain.Mechanism, error) {
	if s.store == nil {
		return nil, errNoStore
	}
	return s.store.Get(ctx, id)
}

// DeleteSnapshot removes a stored mechanism.
func (s *MechanismService) DeleteSnapshot(ctx context.Context, id string) error {
	if s.store == nil {
		return errNoStore
	}
	return s.store.Delete(ctx, id)
}
