package model

import "time"

const (
	ProviderReddit = "reddit"

	CredentialClientID     = "client_id"
	CredentialClientSecret = "client_secret"
	CredentialAccessToken  = "access_token"
	CredentialRefreshToken = "refresh_token"
	CredentialUsername     = "username"

	CredentialStatusActive   = "active"
	CredentialStatusInactive = "inactive"
)

// Credential is one stored key/value credential row, unique per
// (owner_id, provider, credential_type). Token refresh upserts in place so a
// reader never observes a window with no valid token.
type Credential struct {
	ID             int64      `json:"id"`
	OwnerID        string     `json:"owner_id"`
	Provider       string     `json:"provider"`
	CredentialType string     `json:"credential_type"`
	Value          string     `json:"value"`
	Status         string     `json:"status"`
	ExpiresAt      *time.Time `json:"expires_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// OAuthState is the single-use anti-forgery nonce binding an authorization
// request to its callback. Deleted on consume; stale rows expire.
type OAuthState struct {
	ID        int64     `json:"id"`
	OwnerID   string    `json:"owner_id"`
	Provider  string    `json:"provider"`
	Nonce     string    `json:"nonce"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

// ProviderToken is a token set as returned by the provider token endpoint.
type ProviderToken struct {
	AccessToken  string
	RefreshToken string
	ExpiresAt    time.Time
}

// ProviderIdentity is the provider's "who am I" answer.
type ProviderIdentity struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}
