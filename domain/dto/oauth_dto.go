package dto

import "time"

// Action discriminators accepted by POST /api/oauth.
const (
	ActionStartAuth       = "start_auth"
	ActionHandleCallback  = "handle_callback"
	ActionRefreshToken    = "refresh_token"
	ActionGetStatus       = "get_status"
	ActionSaveCredentials = "save_credentials"
	ActionValidateKey     = "validate_key"
	ActionDisconnect      = "disconnect"
)

// ActionProbe is bound first to pick the request variant; the body is then
// re-bound into that variant before any business logic runs.
type ActionProbe struct {
	Action string `json:"action" binding:"required"`
}

type OAuthStartRequest struct {
	Action      string `json:"action"`
	OwnerID     string `json:"owner_id" binding:"required"`
	RedirectURI string `json:"redirect_uri"`
}

type OAuthCallbackRequest struct {
	Action      string `json:"action"`
	OwnerID     string `json:"owner_id" binding:"required"`
	Code        string `json:"code" binding:"required"`
	State       string `json:"state" binding:"required"`
	RedirectURI string `json:"redirect_uri"`
}

type OAuthRefreshRequest struct {
	Action  string `json:"action"`
	OwnerID string `json:"owner_id" binding:"required"`
}

type OAuthStatusRequest struct {
	Action  string `json:"action"`
	OwnerID string `json:"owner_id" binding:"required"`
	// Probe forces a live identity check instead of trusting the stored
	// expiry timestamp.
	Probe bool `json:"probe"`
}

type SaveCredentialsRequest struct {
	Action       string `json:"action"`
	OwnerID      string `json:"owner_id" binding:"required"`
	ClientID     string `json:"client_id" binding:"required"`
	ClientSecret string `json:"client_secret" binding:"required"`
}

type ValidateKeyRequest struct {
	Action   string `json:"action"`
	Provider string `json:"provider" binding:"required"`
	Key      string `json:"key" binding:"required"`
	// Live opts into the provider whoami probe in addition to format checks.
	Live bool `json:"live"`
}

type DisconnectRequest struct {
	Action  string `json:"action"`
	OwnerID string `json:"owner_id" binding:"required"`
}

type AuthURLResponse struct {
	AuthURL string `json:"auth_url"`
	State   string `json:"state"`
}

type AuthStatusResponse struct {
	Authenticated bool       `json:"authenticated"`
	Identity      string     `json:"identity,omitempty"`
	TokenExpired  bool       `json:"token_expired"`
	ExpiresAt     *time.Time `json:"expires_at,omitempty"`
}

// KeyValidationResult is advisory: logged and returned, never a storage gate.
type KeyValidationResult struct {
	Valid     bool   `json:"valid"`
	Message   string `json:"message"`
	LatencyMS int64  `json:"latency_ms"`
}
