package persistence

import (
	"context"
	"database/sql"
	"time"

	"github.com/acidderek/acid-concepts-automation-sub002/domain/apperrors"
	"github.com/acidderek/acid-concepts-automation-sub002/domain/model"

	"github.com/lib/pq"
)

type CampaignRepository struct{ db *sql.DB }

func NewCampaignRepository(db *sql.DB) *CampaignRepository { return &CampaignRepository{db: db} }

func (r *CampaignRepository) Create(ctx context.Context, c *model.Campaign) error {
	now := time.Now().UTC()
	c.CreatedAt = now
	c.UpdatedAt = now
	if c.Status == "" {
		c.Status = model.CampaignStatusActive
	}
	if c.Platform == "" {
		c.Platform = model.ProviderReddit
	}
	row := r.db.QueryRowContext(ctx,
		`INSERT INTO campaigns (owner_id, name, platform, status, channels, keywords, item_budget, total_items_pulled, created_at, updated_at)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,0,$8,$8) RETURNING id`,
		c.OwnerID, c.Name, c.Platform, c.Status, pq.Array(c.Channels), pq.Array(c.Keywords), c.ItemBudget, now)
	return row.Scan(&c.ID)
}

func (r *CampaignRepository) GetByID(ctx context.Context, id int64) (*model.Campaign, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, owner_id, name, platform, status, channels, keywords, item_budget, total_items_pulled, last_executed_at, created_at, updated_at
		 FROM campaigns WHERE id=$1`, id)
	return scanCampaign(row)
}

func (r *CampaignRepository) ListByOwner(ctx context.Context, ownerID string) ([]*model.Campaign, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, owner_id, name, platform, status, channels, keywords, item_budget, total_items_pulled, last_executed_at, created_at, updated_at
		 FROM campaigns WHERE owner_id=$1 ORDER BY created_at DESC`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []*model.Campaign
	for rows.Next() {
		c, err := scanCampaign(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

// RecordRun applies the counter delta against the value currently stored, so
// a retry after a failed update can never re-add a stale number. Runs with a
// zero delta still move last_executed_at.
func (r *CampaignRepository) RecordRun(ctx context.Context, id int64, newSaved int64, executedAt time.Time) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE campaigns SET total_items_pulled = total_items_pulled + $2, last_executed_at=$3, updated_at=$3 WHERE id=$1`,
		id, newSaved, executedAt.UTC())
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanCampaign(row rowScanner) (*model.Campaign, error) {
	c := &model.Campaign{}
	var lastExec sql.NullTime
	var channels, keywords pq.StringArray
	if err := row.Scan(&c.ID, &c.OwnerID, &c.Name, &c.Platform, &c.Status, &channels, &keywords, &c.ItemBudget, &c.TotalItemsPulled, &lastExec, &c.CreatedAt, &c.UpdatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	c.Channels = channels
	c.Keywords = keywords
	if lastExec.Valid {
		c.LastExecutedAt = &lastExec.Time
	}
	return c, nil
}
