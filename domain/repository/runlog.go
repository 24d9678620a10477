package repository

import (
	"context"

	"github.com/acidderek/acid-concepts-automation-sub002/domain/model"
)

// IRunLog records per-run scan reports for the dashboard's recent-activity
// view. Implementations are best-effort; a missing backend degrades to no-op.
type IRunLog interface {
	Insert(ctx context.Context, run *model.DiscoveryRun) error
	Recent(ctx context.Context, ownerID string, limit int) ([]model.DiscoveryRun, error)
}
