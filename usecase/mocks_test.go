package usecase_test

import (
	"context"
	"time"

	"github.com/acidderek/acid-concepts-automation-sub002/domain/dto"
	"github.com/acidderek/acid-concepts-automation-sub002/domain/model"

	"github.com/stretchr/testify/mock"
)

// Mock implementations shared by the usecase tests.

type MockCredentialRepo struct {
	mock.Mock
}

func (m *MockCredentialRepo) Upsert(ctx context.Context, cred *model.Credential) error {
	args := m.Called(ctx, cred)
	return args.Error(0)
}

func (m *MockCredentialRepo) Get(ctx context.Context, ownerID, provider, credentialType string) (*model.Credential, error) {
	args := m.Called(ctx, ownerID, provider, credentialType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Credential), args.Error(1)
}

func (m *MockCredentialRepo) DeleteAll(ctx context.Context, ownerID, provider string) error {
	args := m.Called(ctx, ownerID, provider)
	return args.Error(0)
}

type MockOAuthStateRepo struct {
	mock.Mock
}

func (m *MockOAuthStateRepo) Create(ctx context.Context, state *model.OAuthState) error {
	args := m.Called(ctx, state)
	return args.Error(0)
}

func (m *MockOAuthStateRepo) Consume(ctx context.Context, ownerID, provider, nonce string) (*model.OAuthState, error) {
	args := m.Called(ctx, ownerID, provider, nonce)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.OAuthState), args.Error(1)
}

func (m *MockOAuthStateRepo) DeletePending(ctx context.Context, ownerID, provider string) error {
	args := m.Called(ctx, ownerID, provider)
	return args.Error(0)
}

type MockCampaignRepo struct {
	mock.Mock
}

func (m *MockCampaignRepo) Create(ctx context.Context, campaign *model.Campaign) error {
	args := m.Called(ctx, campaign)
	return args.Error(0)
}

func (m *MockCampaignRepo) GetByID(ctx context.Context, id int64) (*model.Campaign, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Campaign), args.Error(1)
}

func (m *MockCampaignRepo) ListByOwner(ctx context.Context, ownerID string) ([]*model.Campaign, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Campaign), args.Error(1)
}

func (m *MockCampaignRepo) RecordRun(ctx context.Context, id int64, newSaved int64, executedAt time.Time) error {
	args := m.Called(ctx, id, newSaved, executedAt)
	return args.Error(0)
}

type MockDiscoveredItemRepo struct {
	mock.Mock
}

func (m *MockDiscoveredItemRepo) Insert(ctx context.Context, item *model.DiscoveredItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockDiscoveredItemRepo) ListByCampaign(ctx context.Context, campaignID int64, limit int) ([]*model.DiscoveredItem, error) {
	args := m.Called(ctx, campaignID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.DiscoveredItem), args.Error(1)
}

func (m *MockDiscoveredItemRepo) CountByCampaign(ctx context.Context, campaignID int64) (int64, error) {
	args := m.Called(ctx, campaignID)
	return args.Get(0).(int64), args.Error(1)
}

type MockRunLog struct {
	mock.Mock
}

func (m *MockRunLog) Insert(ctx context.Context, run *model.DiscoveryRun) error {
	args := m.Called(ctx, run)
	return args.Error(0)
}

func (m *MockRunLog) Recent(ctx context.Context, ownerID string, limit int) ([]model.DiscoveryRun, error) {
	args := m.Called(ctx, ownerID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.DiscoveryRun), args.Error(1)
}

type MockReddit struct {
	mock.Mock
}

func (m *MockReddit) BuildAuthURL(clientID, redirectURI, state string) string {
	args := m.Called(clientID, redirectURI, state)
	return args.String(0)
}

func (m *MockReddit) Exchange(ctx context.Context, clientID, clientSecret, redirectURI, code string) (*model.ProviderToken, error) {
	args := m.Called(ctx, clientID, clientSecret, redirectURI, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ProviderToken), args.Error(1)
}

func (m *MockReddit) Refresh(ctx context.Context, clientID, clientSecret, refreshToken string) (*model.ProviderToken, error) {
	args := m.Called(ctx, clientID, clientSecret, refreshToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ProviderToken), args.Error(1)
}

func (m *MockReddit) Identity(ctx context.Context, accessToken string) (*model.ProviderIdentity, error) {
	args := m.Called(ctx, accessToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ProviderIdentity), args.Error(1)
}

func (m *MockReddit) HotPosts(ctx context.Context, accessToken, channel string, limit int) ([]model.RedditPost, error) {
	args := m.Called(ctx, accessToken, channel, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.RedditPost), args.Error(1)
}

type MockStatusCache struct {
	mock.Mock
}

func (m *MockStatusCache) Get(ctx context.Context, ownerID, provider string) (*dto.AuthStatusResponse, bool) {
	args := m.Called(ctx, ownerID, provider)
	if args.Get(0) == nil {
		return nil, args.Bool(1)
	}
	return args.Get(0).(*dto.AuthStatusResponse), args.Bool(1)
}

func (m *MockStatusCache) Set(ctx context.Context, ownerID, provider string, status *dto.AuthStatusResponse) {
	m.Called(ctx, ownerID, provider, status)
}
