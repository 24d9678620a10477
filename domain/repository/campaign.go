package repository

import (
	"context"
	"time"

	"github.com/acidderek/acid-concepts-automation-sub002/domain/model"
)

type ICampaign interface {
	Create(ctx context.Context, campaign *model.Campaign) error
	GetByID(ctx context.Context, id int64) (*model.Campaign, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*model.Campaign, error)
	// RecordRun adds newSaved to total_items_pulled and always moves
	// last_executed_at, even when newSaved is zero. The addition happens in
	// SQL against the current stored value, so a retried call never applies a
	// stale counter.
	RecordRun(ctx context.Context, id int64, newSaved int64, executedAt time.Time) error
}

type IDiscoveredItem interface {
	// Insert returns apperrors.ErrDuplicateItem when the
	// (campaign_id, platform_item_id) constraint fires and
	// apperrors.ErrPersistence for any other database failure.
	Insert(ctx context.Context, item *model.DiscoveredItem) error
	ListByCampaign(ctx context.Context, campaignID int64, limit int) ([]*model.DiscoveredItem, error)
	CountByCampaign(ctx context.Context, campaignID int64) (int64, error)
}
