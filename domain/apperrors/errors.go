package apperrors

import "errors"

// Sentinel errors used across usecases. Handlers map these onto the JSON
// envelope with errors.Is; persistence and provider clients wrap them with
// additional context via fmt.Errorf("%w: ...").
var (
	// ErrCredentialMissing means a required stored credential (client_id,
	// client_secret) was not found for the owner/provider pair.
	ErrCredentialMissing = errors.New("credential_missing")

	// ErrInvalidState means the OAuth callback state did not match a stored,
	// unexpired nonce. This is the CSRF defense; the flow fails closed.
	ErrInvalidState = errors.New("invalid_state")

	// ErrTokenExchangeFailed means the provider token endpoint returned a
	// non-2xx response during the authorization_code exchange.
	ErrTokenExchangeFailed = errors.New("token_exchange_failed")

	// ErrIdentityFetchFailed means the provider identity endpoint could not be
	// read with the freshly issued access token.
	ErrIdentityFetchFailed = errors.New("identity_fetch_failed")

	// ErrNoRefreshToken means a refresh was requested but no refresh_token is
	// stored for the owner.
	ErrNoRefreshToken = errors.New("no_refresh_token")

	// ErrAuthExpired is the terminal refresh outcome (provider invalid_grant);
	// the user has to re-authenticate.
	ErrAuthExpired = errors.New("auth_expired")

	// ErrNoToken means discovery was attempted without a stored access token.
	ErrNoToken = errors.New("no_token")

	// ErrDuplicateItem is returned by the discovered-item repository when the
	// (campaign_id, platform_item_id) uniqueness constraint fires. It is an
	// expected outcome, counted as duplicates_skipped, never surfaced as a
	// failure.
	ErrDuplicateItem = errors.New("duplicate_item")

	// ErrPersistence wraps non-constraint database failures.
	ErrPersistence = errors.New("persistence_error")

	// ErrMalformedRequest is rejected with HTTP 400 before dispatch.
	ErrMalformedRequest = errors.New("malformed_request")

	ErrNotFound = errors.New("not_found")
)
