package dto

import "github.com/acidderek/acid-concepts-automation-sub002/domain/model"

// Action discriminators accepted by POST /api/discovery.
const (
	ActionRunDiscovery  = "run_discovery"
	ActionListItems     = "list_items"
	ActionCampaignStats = "campaign_stats"
	ActionRecentRuns    = "recent_runs"
)

// DiscoveryRunRequest triggers one discovery pass. Channels, keywords and
// budget default to the campaign's stored configuration when omitted.
type DiscoveryRunRequest struct {
	Action     string   `json:"action"`
	OwnerID    string   `json:"owner_id" binding:"required"`
	CampaignID int64    `json:"campaign_id" binding:"required"`
	Channels   []string `json:"channels"`
	Keywords   []string `json:"keywords"`
	Budget     int      `json:"budget"`
}

type DiscoveryRunResponse struct {
	CampaignID        int64                 `json:"campaign_id"`
	NewRecordsSaved   int                   `json:"new_records_saved"`
	DuplicatesSkipped int                   `json:"duplicates_skipped"`
	Candidates        int                   `json:"candidates"`
	Reports           []model.ChannelReport `json:"reports"`
}

type ListItemsRequest struct {
	Action     string `json:"action"`
	OwnerID    string `json:"owner_id" binding:"required"`
	CampaignID int64  `json:"campaign_id" binding:"required"`
	Limit      int    `json:"limit"`
}

type CampaignStatsRequest struct {
	Action     string `json:"action"`
	OwnerID    string `json:"owner_id" binding:"required"`
	CampaignID int64  `json:"campaign_id" binding:"required"`
}

type CampaignStatsResponse struct {
	CampaignID       int64   `json:"campaign_id"`
	TotalItemsPulled int64   `json:"total_items_pulled"`
	StoredItems      int64   `json:"stored_items"`
	LastExecutedAt   *string `json:"last_executed_at,omitempty"`
}

type RecentRunsRequest struct {
	Action  string `json:"action"`
	OwnerID string `json:"owner_id" binding:"required"`
	Limit   int    `json:"limit"`
}
