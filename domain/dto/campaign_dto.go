package dto

// Action discriminators accepted by POST /api/campaigns.
const (
	ActionCampaignCreate = "create"
	ActionCampaignList   = "list"
	ActionCampaignGet    = "get"
)

type CampaignCreateRequest struct {
	Action   string   `json:"action"`
	OwnerID  string   `json:"owner_id" binding:"required"`
	Name     string   `json:"name" binding:"required"`
	Channels []string `json:"channels" binding:"required"`
	Keywords []string `json:"keywords"`
	Budget   int      `json:"budget"`
}

type CampaignListRequest struct {
	Action  string `json:"action"`
	OwnerID string `json:"owner_id" binding:"required"`
}

type CampaignGetRequest struct {
	Action     string `json:"action"`
	OwnerID    string `json:"owner_id" binding:"required"`
	CampaignID int64  `json:"campaign_id" binding:"required"`
}
