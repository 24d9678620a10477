package model

import "time"

// DiscoveredItem is one persisted discovery candidate. Never mutated after
// insert; (campaign_id, platform_item_id) is the de-duplication key.
type DiscoveredItem struct {
	ID             int64      `json:"id"`
	CampaignID     int64      `json:"campaign_id"`
	PlatformItemID string     `json:"platform_item_id"`
	Channel        string     `json:"channel"`
	Title          string     `json:"title"`
	Body           string     `json:"body,omitempty"`
	Author         string     `json:"author"`
	Score          int        `json:"score"`
	URL            string     `json:"url"`
	ItemCreatedAt  *time.Time `json:"item_created_at,omitempty"`
	KeywordMatched string     `json:"keyword_matched,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}

// ChannelReport is the per-channel scan outcome included in every discovery
// response. A failed channel carries its errors here instead of aborting the
// run.
type ChannelReport struct {
	Channel      string   `json:"channel"`
	ItemsChecked int      `json:"items_checked"`
	MatchesFound int      `json:"matches_found"`
	Errors       []string `json:"errors,omitempty"`
}

// DiscoveryRun is the audit document written after each run (Mongo when
// available). The dashboard reads these as its "recent activity" rows.
type DiscoveryRun struct {
	OwnerID           string          `json:"owner_id" bson:"owner_id"`
	CampaignID        int64           `json:"campaign_id" bson:"campaign_id"`
	Platform          string          `json:"platform" bson:"platform"`
	NewRecordsSaved   int             `json:"new_records_saved" bson:"new_records_saved"`
	DuplicatesSkipped int             `json:"duplicates_skipped" bson:"duplicates_skipped"`
	Reports           []ChannelReport `json:"reports" bson:"reports"`
	ExecutedAt        time.Time       `json:"executed_at" bson:"executed_at"`
}

// RedditPost is one listing entry from the provider content endpoint.
type RedditPost struct {
	ID         string
	FullName   string
	Subreddit  string
	Title      string
	SelfText   string
	Author     string
	Score      int
	Permalink  string
	CreatedUTC float64
}
