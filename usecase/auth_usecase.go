package usecase

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/acidderek/acid-concepts-automation-sub002/domain/apperrors"
	"github.com/acidderek/acid-concepts-automation-sub002/domain/dto"
	"github.com/acidderek/acid-concepts-automation-sub002/domain/model"
	"github.com/acidderek/acid-concepts-automation-sub002/domain/repository"
	"github.com/acidderek/acid-concepts-automation-sub002/infrastructure/cache"
	"github.com/acidderek/acid-concepts-automation-sub002/infrastructure/logger"
)

type IAuthUsecase interface {
	StartAuth(ctx context.Context, ownerID, redirectURI string) (*dto.AuthURLResponse, error)
	HandleCallback(ctx context.Context, ownerID, code, state, redirectURI string) (*model.ProviderIdentity, error)
	RefreshToken(ctx context.Context, ownerID string) error
	GetStatus(ctx context.Context, ownerID string, probe bool) (*dto.AuthStatusResponse, error)
	SaveCredentials(ctx context.Context, ownerID, clientID, clientSecret string) (*dto.KeyValidationResult, error)
	Disconnect(ctx context.Context, ownerID string) error
}

type authUsecase struct {
	credRepo    repository.ICredential
	stateRepo   repository.IOAuthState
	reddit      repository.IReddit
	validator   IKeyValidator
	statusCache cache.IStatusCache
	redirectURI string
	stateTTL    time.Duration
}

func NewAuthUsecase(
	credRepo repository.ICredential,
	stateRepo repository.IOAuthState,
	reddit repository.IReddit,
	validator IKeyValidator,
	statusCache cache.IStatusCache,
	redirectURI string,
	stateTTL time.Duration,
) IAuthUsecase {
	if stateTTL <= 0 || stateTTL > time.Hour {
		stateTTL = time.Hour
	}
	return &authUsecase{
		credRepo:    credRepo,
		stateRepo:   stateRepo,
		reddit:      reddit,
		validator:   validator,
		statusCache: statusCache,
		redirectURI: redirectURI,
		stateTTL:    stateTTL,
	}
}

func randomNonce() string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

func (u *authUsecase) StartAuth(ctx context.Context, ownerID, redirectURI string) (*dto.AuthURLResponse, error) {
	clientID, err := u.credRepo.Get(ctx, ownerID, model.ProviderReddit, model.CredentialClientID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: client_id not stored for owner", apperrors.ErrCredentialMissing)
		}
		return nil, err
	}
	if redirectURI == "" {
		redirectURI = u.redirectURI
	}

	// Invalidate any prior unconsumed state so a stale nonce cannot be
	// replayed against a fresh authorization.
	if err := u.stateRepo.DeletePending(ctx, ownerID, model.ProviderReddit); err != nil {
		return nil, err
	}

	nonce := randomNonce()
	state := &model.OAuthState{
		OwnerID:   ownerID,
		Provider:  model.ProviderReddit,
		Nonce:     nonce,
		ExpiresAt: time.Now().UTC().Add(u.stateTTL),
	}
	if err := u.stateRepo.Create(ctx, state); err != nil {
		return nil, err
	}

	authURL := u.reddit.BuildAuthURL(clientID.Value, redirectURI, nonce)
	return &dto.AuthURLResponse{AuthURL: authURL, State: nonce}, nil
}

func (u *authUsecase) HandleCallback(ctx context.Context, ownerID, code, state, redirectURI string) (*model.ProviderIdentity, error) {
	// State verification comes first; no token exchange happens until the
	// stored nonce matches and is unexpired.
	stored, err := u.stateRepo.Consume(ctx, ownerID, model.ProviderReddit, state)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrInvalidState
		}
		return nil, err
	}
	if time.Now().UTC().After(stored.ExpiresAt) {
		return nil, fmt.Errorf("%w: state expired", apperrors.ErrInvalidState)
	}

	clientID, err := u.credRepo.Get(ctx, ownerID, model.ProviderReddit, model.CredentialClientID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: client_id", apperrors.ErrCredentialMissing)
		}
		return nil, err
	}
	clientSecret, err := u.credRepo.Get(ctx, ownerID, model.ProviderReddit, model.CredentialClientSecret)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: client_secret", apperrors.ErrCredentialMissing)
		}
		return nil, err
	}
	if redirectURI == "" {
		redirectURI = u.redirectURI
	}

	token, err := u.reddit.Exchange(ctx, clientID.Value, clientSecret.Value, redirectURI, code)
	if err != nil {
		return nil, err
	}

	identity, err := u.reddit.Identity(ctx, token.AccessToken)
	if err != nil {
		if errors.Is(err, apperrors.ErrIdentityFetchFailed) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", apperrors.ErrIdentityFetchFailed, err)
	}

	if err := u.storeTokenSet(ctx, ownerID, token, identity.Username); err != nil {
		return nil, err
	}

	logger.GetLogger().WithFields(map[string]interface{}{
		"owner":    ownerID,
		"identity": identity.Username,
	}).Info("Reddit account connected")
	return identity, nil
}

// storeTokenSet upserts the token rows in place so the previous token set is
// replaced, never removed first.
func (u *authUsecase) storeTokenSet(ctx context.Context, ownerID string, token *model.ProviderToken, username string) error {
	expiresAt := token.ExpiresAt
	creds := []*model.Credential{
		{OwnerID: ownerID, Provider: model.ProviderReddit, CredentialType: model.CredentialAccessToken, Value: token.AccessToken, ExpiresAt: &expiresAt},
	}
	if token.RefreshToken != "" {
		creds = append(creds, &model.Credential{OwnerID: ownerID, Provider: model.ProviderReddit, CredentialType: model.CredentialRefreshToken, Value: token.RefreshToken})
	}
	if username != "" {
		creds = append(creds, &model.Credential{OwnerID: ownerID, Provider: model.ProviderReddit, CredentialType: model.CredentialUsername, Value: username})
	}
	for _, c := range creds {
		if err := u.credRepo.Upsert(ctx, c); err != nil {
			return err
		}
	}
	return nil
}

func (u *authUsecase) RefreshToken(ctx context.Context, ownerID string) error {
	refresh, err := u.credRepo.Get(ctx, ownerID, model.ProviderReddit, model.CredentialRefreshToken)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.ErrNoRefreshToken
		}
		return err
	}
	clientID, err := u.credRepo.Get(ctx, ownerID, model.ProviderReddit, model.CredentialClientID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("%w: client_id", apperrors.ErrCredentialMissing)
		}
		return err
	}
	clientSecret, err := u.credRepo.Get(ctx, ownerID, model.ProviderReddit, model.CredentialClientSecret)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("%w: client_secret", apperrors.ErrCredentialMissing)
		}
		return err
	}

	token, err := u.reddit.Refresh(ctx, clientID.Value, clientSecret.Value, refresh.Value)
	if err != nil {
		// ErrAuthExpired passes through untouched; everything else is
		// transient and the caller decides whether to re-invoke.
		return err
	}
	return u.storeTokenSet(ctx, ownerID, token, "")
}

func (u *authUsecase) GetStatus(ctx context.Context, ownerID string, probe bool) (*dto.AuthStatusResponse, error) {
	access, err := u.credRepo.Get(ctx, ownerID, model.ProviderReddit, model.CredentialAccessToken)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return &dto.AuthStatusResponse{Authenticated: false, TokenExpired: false}, nil
		}
		return nil, err
	}

	status := &dto.AuthStatusResponse{Authenticated: true}
	if username, err := u.credRepo.Get(ctx, ownerID, model.ProviderReddit, model.CredentialUsername); err == nil {
		status.Identity = username.Value
	}
	if access.ExpiresAt != nil {
		status.ExpiresAt = access.ExpiresAt
		status.TokenExpired = time.Now().UTC().After(*access.ExpiresAt)
	}

	if !probe {
		return status, nil
	}

	if cached, ok := u.statusCache.Get(ctx, ownerID, model.ProviderReddit); ok {
		return cached, nil
	}

	// A locally unexpired timestamp is not proof the token still works; the
	// probe asks the provider and overrides the local view on any non-2xx.
	identity, err := u.reddit.Identity(ctx, access.Value)
	switch {
	case err == nil:
		status.Authenticated = true
		status.TokenExpired = false
		status.Identity = identity.Username
	case errors.Is(err, apperrors.ErrIdentityFetchFailed):
		status.Authenticated = false
		status.TokenExpired = true
	default:
		// Transport failure: keep the locally computed answer, note the miss.
		logger.GetLogger().WithField("error", err).Warn("Identity probe unreachable; using stored expiry")
	}
	u.statusCache.Set(ctx, ownerID, model.ProviderReddit, status)
	return status, nil
}

func (u *authUsecase) SaveCredentials(ctx context.Context, ownerID, clientID, clientSecret string) (*dto.KeyValidationResult, error) {
	// Validation is advisory and never blocks storage.
	result := u.validator.Validate(ctx, model.ProviderReddit, clientID, false)
	logger.GetLogger().WithFields(map[string]interface{}{
		"owner":   ownerID,
		"valid":   result.Valid,
		"message": result.Message,
		"ms":      result.LatencyMS,
	}).Info("Credential format check")

	for _, c := range []*model.Credential{
		{OwnerID: ownerID, Provider: model.ProviderReddit, CredentialType: model.CredentialClientID, Value: clientID},
		{OwnerID: ownerID, Provider: model.ProviderReddit, CredentialType: model.CredentialClientSecret, Value: clientSecret},
	} {
		if err := u.credRepo.Upsert(ctx, c); err != nil {
			return nil, err
		}
	}
	return &result, nil
}

func (u *authUsecase) Disconnect(ctx context.Context, ownerID string) error {
	return u.credRepo.DeleteAll(ctx, ownerID, model.ProviderReddit)
}
