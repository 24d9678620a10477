package persistence

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/acidderek/acid-concepts-automation-sub002/domain/apperrors"
	"github.com/acidderek/acid-concepts-automation-sub002/domain/model"

	"github.com/lib/pq"
)

const uniqueViolation = "23505"

type DiscoveredItemRepository struct{ db *sql.DB }

func NewDiscoveredItemRepository(db *sql.DB) *DiscoveredItemRepository {
	return &DiscoveredItemRepository{db: db}
}

// Insert stores one candidate. A (campaign_id, platform_item_id) constraint
// violation is the expected "already seen" outcome and comes back as
// apperrors.ErrDuplicateItem; anything else is a real persistence failure.
func (r *DiscoveredItemRepository) Insert(ctx context.Context, item *model.DiscoveredItem) error {
	if item.CreatedAt.IsZero() {
		item.CreatedAt = time.Now().UTC()
	}
	q := `INSERT INTO discovered_items (campaign_id, platform_item_id, channel, title, body, author, score, url, item_created_at, keyword_matched, created_at)
		  VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11) RETURNING id`
	err := r.db.QueryRowContext(ctx, q,
		item.CampaignID, item.PlatformItemID, item.Channel, item.Title, item.Body,
		item.Author, item.Score, item.URL, item.ItemCreatedAt, item.KeywordMatched, item.CreatedAt).
		Scan(&item.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation {
			return apperrors.ErrDuplicateItem
		}
		return fmt.Errorf("%w: %v", apperrors.ErrPersistence, err)
	}
	return nil
}

func (r *DiscoveredItemRepository) ListByCampaign(ctx context.Context, campaignID int64, limit int) ([]*model.DiscoveredItem, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, campaign_id, platform_item_id, channel, title, body, author, score, url, item_created_at, keyword_matched, created_at
		 FROM discovered_items WHERE campaign_id=$1 ORDER BY created_at DESC LIMIT $2`, campaignID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []*model.DiscoveredItem
	for rows.Next() {
		it := &model.DiscoveredItem{}
		var body, author, url, keyword sql.NullString
		var itemCreated sql.NullTime
		if err := rows.Scan(&it.ID, &it.CampaignID, &it.PlatformItemID, &it.Channel, &it.Title, &body, &author, &it.Score, &url, &itemCreated, &keyword, &it.CreatedAt); err != nil {
			return nil, err
		}
		it.Body = body.String
		it.Author = author.String
		it.URL = url.String
		it.KeywordMatched = keyword.String
		if itemCreated.Valid {
			it.ItemCreatedAt = &itemCreated.Time
		}
		list = append(list, it)
	}
	return list, rows.Err()
}

func (r *DiscoveredItemRepository) CountByCampaign(ctx context.Context, campaignID int64) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM discovered_items WHERE campaign_id=$1`, campaignID).Scan(&n)
	return n, err
}
