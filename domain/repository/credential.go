package repository

import (
	"context"

	"github.com/acidderek/acid-concepts-automation-sub002/domain/model"
)

// ICredential is the credential store: one row per
// (owner_id, provider, credential_type).
type ICredential interface {
	// Upsert inserts or replaces the credential value in place. Token refresh
	// must go through this so readers never see a window with no token.
	Upsert(ctx context.Context, cred *model.Credential) error
	// Get returns apperrors.ErrNotFound when no active row exists.
	Get(ctx context.Context, ownerID, provider, credentialType string) (*model.Credential, error)
	// DeleteAll removes every credential for the owner/provider pair
	// (disconnect only).
	DeleteAll(ctx context.Context, ownerID, provider string) error
}

// IOAuthState stores single-use anti-forgery nonces.
type IOAuthState interface {
	Create(ctx context.Context, state *model.OAuthState) error
	// Consume atomically deletes and returns the matching row. Returns
	// apperrors.ErrNotFound when absent; the caller must also reject expired
	// rows.
	Consume(ctx context.Context, ownerID, provider, nonce string) (*model.OAuthState, error)
	// DeletePending invalidates prior unconsumed states before a new
	// authorization is initiated.
	DeletePending(ctx context.Context, ownerID, provider string) error
}
