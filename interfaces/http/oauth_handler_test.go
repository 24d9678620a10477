package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/acidderek/acid-concepts-automation-sub002/domain/apperrors"
	"github.com/acidderek/acid-concepts-automation-sub002/domain/dto"
	"github.com/acidderek/acid-concepts-automation-sub002/domain/model"
	httpHandler "github.com/acidderek/acid-concepts-automation-sub002/interfaces/http"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockAuthUsecase struct {
	mock.Mock
}

func (m *MockAuthUsecase) StartAuth(ctx context.Context, ownerID, redirectURI string) (*dto.AuthURLResponse, error) {
	args := m.Called(ctx, ownerID, redirectURI)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.AuthURLResponse), args.Error(1)
}

func (m *MockAuthUsecase) HandleCallback(ctx context.Context, ownerID, code, state, redirectURI string) (*model.ProviderIdentity, error) {
	args := m.Called(ctx, ownerID, code, state, redirectURI)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ProviderIdentity), args.Error(1)
}

func (m *MockAuthUsecase) RefreshToken(ctx context.Context, ownerID string) error {
	args := m.Called(ctx, ownerID)
	return args.Error(0)
}

func (m *MockAuthUsecase) GetStatus(ctx context.Context, ownerID string, probe bool) (*dto.AuthStatusResponse, error) {
	args := m.Called(ctx, ownerID, probe)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.AuthStatusResponse), args.Error(1)
}

func (m *MockAuthUsecase) SaveCredentials(ctx context.Context, ownerID, clientID, clientSecret string) (*dto.KeyValidationResult, error) {
	args := m.Called(ctx, ownerID, clientID, clientSecret)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.KeyValidationResult), args.Error(1)
}

func (m *MockAuthUsecase) Disconnect(ctx context.Context, ownerID string) error {
	args := m.Called(ctx, ownerID)
	return args.Error(0)
}

type MockKeyValidator struct {
	mock.Mock
}

func (m *MockKeyValidator) Validate(ctx context.Context, provider, key string, live bool) dto.KeyValidationResult {
	args := m.Called(ctx, provider, key, live)
	return args.Get(0).(dto.KeyValidationResult)
}

func setupOAuthRouter(authUsecase *MockAuthUsecase, validator *MockKeyValidator) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	handler := httpHandler.NewOAuthHandler(authUsecase, validator)
	router.POST("/api/oauth", handler.Dispatch)
	router.GET("/auth/reddit/callback", handler.Callback)
	return router
}

func postJSON(t *testing.T, router *gin.Engine, path, body string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return w, out
}

func TestOAuthDispatch_StartAuth(t *testing.T) {
	mockAuth := new(MockAuthUsecase)
	mockValidator := new(MockKeyValidator)
	mockAuth.On("StartAuth", mock.Anything, "owner-1", "").
		Return(&dto.AuthURLResponse{AuthURL: "https://www.reddit.com/api/v1/authorize?x=1", State: "nonce-1"}, nil)

	router := setupOAuthRouter(mockAuth, mockValidator)
	w, out := postJSON(t, router, "/api/oauth", `{"action":"start_auth","owner_id":"owner-1"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, out["success"])
	assert.Equal(t, "nonce-1", out["state"])
	mockAuth.AssertExpectations(t)
}

func TestOAuthDispatch_MissingAction(t *testing.T) {
	router := setupOAuthRouter(new(MockAuthUsecase), new(MockKeyValidator))
	w, out := postJSON(t, router, "/api/oauth", `{"owner_id":"owner-1"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, false, out["success"])
}

func TestOAuthDispatch_UnknownAction(t *testing.T) {
	router := setupOAuthRouter(new(MockAuthUsecase), new(MockKeyValidator))
	w, out := postJSON(t, router, "/api/oauth", `{"action":"reboot_server","owner_id":"owner-1"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, out["error"], "unknown action")
}

func TestOAuthDispatch_MalformedBody(t *testing.T) {
	router := setupOAuthRouter(new(MockAuthUsecase), new(MockKeyValidator))
	w, out := postJSON(t, router, "/api/oauth", `{"action":`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, false, out["success"])
}

func TestOAuthDispatch_VariantValidation(t *testing.T) {
	// handle_callback without code/state must fail binding, not reach the usecase
	mockAuth := new(MockAuthUsecase)
	router := setupOAuthRouter(mockAuth, new(MockKeyValidator))
	w, _ := postJSON(t, router, "/api/oauth", `{"action":"handle_callback","owner_id":"owner-1"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockAuth.AssertNotCalled(t, "HandleCallback", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestOAuthDispatch_BusinessErrorKeepsHTTP200(t *testing.T) {
	mockAuth := new(MockAuthUsecase)
	mockAuth.On("HandleCallback", mock.Anything, "owner-1", "code-789", "forged", "").
		Return(nil, apperrors.ErrInvalidState)

	router := setupOAuthRouter(mockAuth, new(MockKeyValidator))
	w, out := postJSON(t, router, "/api/oauth", `{"action":"handle_callback","owner_id":"owner-1","code":"code-789","state":"forged"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, false, out["success"])
	assert.Equal(t, apperrors.ErrInvalidState.Error(), out["error"])
}

func TestOAuthDispatch_UnexpectedErrorIs500(t *testing.T) {
	mockAuth := new(MockAuthUsecase)
	mockAuth.On("RefreshToken", mock.Anything, "owner-1").Return(assert.AnError)

	router := setupOAuthRouter(mockAuth, new(MockKeyValidator))
	w, out := postJSON(t, router, "/api/oauth", `{"action":"refresh_token","owner_id":"owner-1"}`)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	// internal detail stays in the logs
	assert.Equal(t, "internal error", out["error"])
}

func TestOAuthDispatch_ValidateKey(t *testing.T) {
	mockValidator := new(MockKeyValidator)
	mockValidator.On("Validate", mock.Anything, "reddit", "client-abcdef123", false).
		Return(dto.KeyValidationResult{Valid: true, Message: "format ok"})

	router := setupOAuthRouter(new(MockAuthUsecase), mockValidator)
	w, out := postJSON(t, router, "/api/oauth", `{"action":"validate_key","provider":"reddit","key":"client-abcdef123"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, out["success"])
	validation := out["validation"].(map[string]interface{})
	assert.Equal(t, true, validation["valid"])
	mockValidator.AssertExpectations(t)
}

func TestOAuthCallback_ProviderError(t *testing.T) {
	mockAuth := new(MockAuthUsecase)
	router := setupOAuthRouter(mockAuth, new(MockKeyValidator))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/auth/reddit/callback?error=access_denied&owner_id=owner-1", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockAuth.AssertNotCalled(t, "HandleCallback", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestOAuthCallback_Connects(t *testing.T) {
	mockAuth := new(MockAuthUsecase)
	mockAuth.On("HandleCallback", mock.Anything, "owner-1", "code-789", "nonce-1", "").
		Return(&model.ProviderIdentity{ID: "u1", Username: "snoo"}, nil)

	router := setupOAuthRouter(mockAuth, new(MockKeyValidator))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/auth/reddit/callback?owner_id=owner-1&code=code-789&state=nonce-1", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	assert.Equal(t, "snoo", out["identity"])
	mockAuth.AssertExpectations(t)
}
