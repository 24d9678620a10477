package repository

import (
	"context"

	"github.com/acidderek/acid-concepts-automation-sub002/domain/model"
)

// IReddit is the outbound provider surface: OAuth token lifecycle plus the
// read-only content endpoints used by discovery.
type IReddit interface {
	// BuildAuthURL returns the browser authorization URL embedding the
	// client_id, response_type, state nonce, redirect_uri and scopes.
	BuildAuthURL(clientID, redirectURI, state string) string
	// Exchange trades an authorization code for a token set using HTTP Basic
	// auth of client_id/client_secret. Non-2xx responses come back wrapped in
	// apperrors.ErrTokenExchangeFailed with the provider status and body.
	Exchange(ctx context.Context, clientID, clientSecret, redirectURI, code string) (*model.ProviderToken, error)
	// Refresh exchanges a refresh_token for a new token set. A provider
	// invalid_grant is terminal and surfaces as apperrors.ErrAuthExpired;
	// anything else is transient and retryable by the caller.
	Refresh(ctx context.Context, clientID, clientSecret, refreshToken string) (*model.ProviderToken, error)
	// Identity resolves the provider "who am I" for an access token.
	Identity(ctx context.Context, accessToken string) (*model.ProviderIdentity, error)
	// HotPosts fetches up to limit recent items for one channel.
	HotPosts(ctx context.Context, accessToken, channel string, limit int) ([]model.RedditPost, error)
}
