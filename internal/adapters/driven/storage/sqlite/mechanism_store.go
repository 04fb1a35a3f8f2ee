package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/custodia-labs/kpptag/internal/core/domain"
	"github.com/custodia-labs/kpptag/internal/core/ports/driven"
)

// mechanismStore implements driven.MechanismStore.
type mechanismStore struct {
	store *Store
}

var _ driven.MechanismStore = (*mechanismStore)(nil)

// Save stores or replaces a mechanism with its species and reactions.
func (s *mechanismStore) Save(ctx context.Context, m *domain.Mechanism) error {
	headers, err := json.Marshal(nonNil(m.Headers))
	if err != nil {
		return fmt.Errorf("marshalling headers: %w", err)
	}
	issues, err := json.Marshal(nonNil(m.Issues))
	if err != nil {
		return fmt.Errorf("marshalling issues: %w", err)
	}

	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	_, err = tx.ExecContext(ctx, `
		INSERT INTO mechanisms (id, name, source_path, headers, issues, split_count, loaded_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			source_path = excluded.source_path,
			headers = excluded.headers,
			issues = excluded.issues,
			split_count = excluded.split_count,
			loaded_at = excluded.loaded_at
	`, m.ID, m.Name, m.SourcePath, string(headers), string(issues), m.SplitCount, formatTime(m.LoadedAt))
	if err != nil {
		return fmt.Errorf("saving mechanism: %w", err)
	}

	for _, table := range []string{"species", "reactions"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table+" WHERE mechanism_id = ?", m.ID); err != nil {
			return fmt.Errorf("clearing %s: %w", table, err)
		}
	}

	if err := insertSpecies(ctx, tx, m); err != nil {
		return err
	}
	if err := insertReactions(ctx, tx, m); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing mechanism: %w", err)
	}
	return nil
}

func insertSpecies(ctx context.Context, tx *sql.Tx, m *domain.Mechanism) error {
	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO species (mechanism_id, position, name, description, activity)
		VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing species insert: %w", err)
	}
	defer stmt.Close()

	for i, sp := range m.Species {
		if _, err := stmt.ExecContext(ctx, m.ID, i, sp.Name, sp.Description, sp.Activity.String()); err != nil {
			return fmt.Errorf("saving species %s: %w", sp.Name, err)
		}
	}
	return nil
}

func insertReactions(ctx context.Context, tx *sql.Tx, m *domain.Mechanism) error {
	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO reactions (mechanism_id, position, reaction_id, category, reactants, products, rate_law, metadata)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing reaction insert: %w", err)
	}
	defer stmt.Close()

	for i, r := range m.Reactions {
		reactants, err := json.Marshal(nonNil(r.Reactants))
		if err != nil {
			return fmt.Errorf("marshalling reactants: %w", err)
		}
		products, err := json.Marshal(nonNil(r.Products))
		if err != nil {
			return fmt.Errorf("marshalling products: %w", err)
		}
		if _, err := stmt.ExecContext(ctx, m.ID, i, r.ID.String(), r.Category.String(),
			string(reactants), string(products), r.RateLaw, r.Metadata); err != nil {
			return fmt.Errorf("saving reaction %s: %w", r.ID, err)
		}
	}
	return nil
}

// Get retrieves a mechanism by ID.
func (s *mechanismStore) Get(ctx context.Context, id string) (*domain.Mechanism, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT id, name, source_path, headers, issues, split_count, loaded_at
		FROM mechanisms WHERE id = ?
	`, id)

	var (
		m               domain.Mechanism
		headers, issues string
		loadedAt        string
	)
	err := row.Scan(&m.ID, &m.Name, &m.SourcePath, &headers, &issues, &m.SplitCount, &loadedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scanning mechanism: %w", err)
	}
	if err := json.Unmarshal([]byte(headers), &m.Headers); err != nil {
		return nil, fmt.Errorf("unmarshalling headers: %w", err)
	}
	if err := json.Unmarshal([]byte(issues), &m.Issues); err != nil {
		return nil, fmt.Errorf("unmarshalling issues: %w", err)
	}
	if m.LoadedAt, err = parseTime(loadedAt); err != nil {
		return nil, err
	}
	if len(m.Headers) == 0 {
		m.Headers = nil
	}
	if len(m.Issues) == 0 {
		m.Issues = nil
	}

	if m.Species, err = s.species(ctx, id); err != nil {
		return nil, err
	}
	if m.Reactions, err = s.reactions(ctx, id); err != nil {
		return nil, err
	}
	return &m, nil
}

func (s *mechanismStore) species(ctx context.Context, id string) ([]domain.Species, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT name, description, activity FROM species
		WHERE mechanism_id = ? ORDER BY position
	`, id)
	if err != nil {
		return nil, fmt.Errorf("querying species: %w", err)
	}
	defer rows.Close()

	var out []domain.Species
	for rows.Next() {
		var sp domain.Species
		var activity string
		if err := rows.Scan(&sp.Name, &sp.Description, &activity); err != nil {
			return nil, fmt.Errorf("scanning species: %w", err)
		}
		sp.Activity = domain.Activity(activity)
		out = append(out, sp)
	}
	return out, rows.Err()
}

func (s *mechanismStore) reactions(ctx context.Context, id string) ([]domain.Reaction, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT reaction_id, category, reactants, products, rate_law, metadata FROM reactions
		WHERE mechanism_id = ? ORDER BY position
	`, id)
	if err != nil {
		return nil, fmt.Errorf("querying reactions: %w", err)
	}
	defer rows.Close()

	var out []domain.Reaction
	for rows.Next() {
		var (
			r                   domain.Reaction
			rid, category       string
			reactants, products string
		)
		if err := rows.Scan(&rid, &category, &reactants, &products, &r.RateLaw, &r.Metadata); err != nil {
			return nil, fmt.Errorf("scanning reaction: %w", err)
		}
		r.ID = domain.ParseReactionID(rid)
		r.Category = domain.Category(category)
		if err := json.Unmarshal([]byte(reactants), &r.Reactants); err != nil {
			return nil, fmt.Errorf("unmarshalling reactants of %s: %w", rid, err)
		}
		if err := json.Unmarshal([]byte(products), &r.Products); err != nil {
			return nil, fmt.Errorf("unmarshalling products of %s: %w", rid, err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// List returns summaries of all stored mechanisms, newest first.
func (s *mechanismStore) List(ctx context.Context) ([]domain.MechanismSummary, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT m.id, m.name, m.source_path, m.loaded_at,
			(SELECT COUNT(*) FROM species WHERE mechanism_id = m.id),
			(SELECT COUNT(*) FROM reactions WHERE mechanism_id = m.id)
		FROM mechanisms m
		ORDER BY m.loaded_at DESC, m.id
	`)
	if err != nil {
		return nil, fmt.Errorf("listing mechanisms: %w", err)
	}
	defer rows.Close()

	var out []domain.MechanismSummary
	for rows.Next() {
		var sum domain.MechanismSummary
		var loadedAt string
		if err := rows.Scan(&sum.ID, &sum.Name, &sum.SourcePath, &loadedAt,
			&sum.SpeciesCount, &sum.ReactionCount); err != nil {
			return nil, fmt.Errorf("scanning mechanism summary: %w", err)
		}
		if sum.LoadedAt, err = parseTime(loadedAt); err != nil {
			return nil, err
		}
		out = append(out, sum)
	}
	return out, rows.Err()
}

// Delete removes a mechanism. Species and reactions cascade.
func (s *mechanismStore) Delete(ctx context.Context, id string) error {
	result, err := s.store.db.ExecContext(ctx, "DELETE FROM mechanisms WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting mechanism: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking delete: %w", err)
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// timeLayout is fixed-width so stored times sort lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing time %q: %w", s, err)
	}
	return t, nil
}

// nonNil keeps JSON columns as arrays rather than null.
func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
