package driven

import (
	"context"

	"github.com/custodia-labs/kpptag/internal/core/domain"
)

// MechanismStore persists loaded mechanism snapshots.
type MechanismStore interface {
	// Save stores or replaces a mechanism with its species and reactions.
	Save(ctx context.Context, m *domain.Mechanism) error

	// Get retrieves a mechanism by ID.
	// Returns domain.ErrNotFound if it does not exist.
	Get(ctx context.Context, id string) (*domain.Mechanism, error)

	// List returns summaries of all stored mechanisms, newest first.
	List(ctx context.Context) ([]domain.MechanismSummary, error)

	// Delete removes a mechanism.
	// Returns domain.ErrNotFound if it does not exist.
	Delete(ctx context.Context, id string) error
}
