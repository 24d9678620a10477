package model

import "time"

const (
	CampaignStatusActive = "active"
	CampaignStatusPaused = "paused"
)

// Campaign is a user-defined monitoring configuration with accumulated
// results. TotalItemsPulled only grows when new (non-duplicate) items are
// persisted; LastExecutedAt moves on every run regardless of yield.
type Campaign struct {
	ID               int64      `json:"id"`
	OwnerID          string     `json:"owner_id"`
	Name             string     `json:"name"`
	Platform         string     `json:"platform"`
	Status           string     `json:"status"`
	Channels         []string   `json:"channels"`
	Keywords         []string   `json:"keywords"`
	ItemBudget       int        `json:"item_budget"`
	TotalItemsPulled int64      `json:"total_items_pulled"`
	LastExecutedAt   *time.Time `json:"last_executed_at,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}
