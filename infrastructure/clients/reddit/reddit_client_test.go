package reddit

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/acidderek/acid-concepts-automation-sub002/domain/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(serverURL string) *Client {
	return NewRedditClient(Config{
		AuthURL:    serverURL + "/api/v1/authorize",
		TokenURL:   serverURL + "/api/v1/access_token",
		APIBaseURL: serverURL,
		UserAgent:  "test-agent/1.0",
		Scopes:     []string{"identity", "read"},
		Timeout:    2 * time.Second,
	}).(*Client)
}

func TestBuildAuthURL(t *testing.T) {
	client := newTestClient("https://www.reddit.com")

	raw := client.BuildAuthURL("client-123", "https://app.example.com/cb", "nonce-1")
	parsed, err := url.Parse(raw)
	require.NoError(t, err)

	q := parsed.Query()
	assert.Equal(t, "client-123", q.Get("client_id"))
	assert.Equal(t, "code", q.Get("response_type"))
	assert.Equal(t, "nonce-1", q.Get("state"))
	assert.Equal(t, "https://app.example.com/cb", q.Get("redirect_uri"))
	assert.Equal(t, "permanent", q.Get("duration"))
	assert.Contains(t, q.Get("scope"), "identity")
}

func TestExchange(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v1/access_token", r.URL.Path)
		// Reddit wants the client credentials as HTTP Basic auth
		user, pass, ok := r.BasicAuth()
		require.True(t, ok)
		require.Equal(t, "client-123", user)
		require.Equal(t, "secret-456", pass)
		require.NoError(t, r.ParseForm())
		require.Equal(t, "authorization_code", r.PostForm.Get("grant_type"))
		require.Equal(t, "code-789", r.PostForm.Get("code"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"access-tok","refresh_token":"refresh-tok","token_type":"bearer","expires_in":3600}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	token, err := client.Exchange(context.Background(), "client-123", "secret-456", "https://app.example.com/cb", "code-789")

	require.NoError(t, err)
	assert.Equal(t, "access-tok", token.AccessToken)
	assert.Equal(t, "refresh-tok", token.RefreshToken)
	assert.WithinDuration(t, time.Now().UTC().Add(time.Hour), token.ExpiresAt, time.Minute)
}

func TestExchange_ProviderRejects(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":"invalid_client"}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	_, err := client.Exchange(context.Background(), "client-123", "wrong", "https://app.example.com/cb", "code-789")

	require.ErrorIs(t, err, apperrors.ErrTokenExchangeFailed)
	assert.Contains(t, err.Error(), "status=401")
}

func TestRefresh_InvalidGrant(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"invalid_grant"}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	_, err := client.Refresh(context.Background(), "client-123", "secret-456", "revoked-tok")

	require.ErrorIs(t, err, apperrors.ErrAuthExpired)
}

func TestRefresh_KeepsRefreshTokenWhenNotRotated(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		require.Equal(t, "refresh_token", r.PostForm.Get("grant_type"))
		require.Equal(t, "refresh-tok", r.PostForm.Get("refresh_token"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"new-access","token_type":"bearer","expires_in":3600}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	token, err := client.Refresh(context.Background(), "client-123", "secret-456", "refresh-tok")

	require.NoError(t, err)
	assert.Equal(t, "new-access", token.AccessToken)
	assert.Equal(t, "refresh-tok", token.RefreshToken)
}

func TestIdentity(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v1/me", r.URL.Path)
		require.Equal(t, "Bearer access-tok", r.Header.Get("Authorization"))
		require.Equal(t, "test-agent/1.0", r.Header.Get("User-Agent"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"u1","name":"snoo"}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	identity, err := client.Identity(context.Background(), "access-tok")

	require.NoError(t, err)
	assert.Equal(t, "snoo", identity.Username)
}

func TestIdentity_Unauthorized(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	_, err := client.Identity(context.Background(), "stale-tok")

	require.ErrorIs(t, err, apperrors.ErrIdentityFetchFailed)
	assert.Contains(t, err.Error(), "status=401")
}

func TestHotPosts(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/r/golang/hot", r.URL.Path)
		require.Equal(t, "4", r.URL.Query().Get("limit"))
		require.Equal(t, "1", r.URL.Query().Get("raw_json"))
		require.Equal(t, "Bearer access-tok", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":{"children":[
			{"data":{"id":"abc","name":"t3_abc","subreddit":"golang","title":"Scaling Automation Tools","selftext":"","author":"snoo","score":10,"permalink":"/r/golang/comments/abc/","created_utc":1724800000}},
			{"data":{"id":"def","name":"t3_def","subreddit":"golang","title":"Weekly thread","selftext":"discuss","author":"mod","score":3,"permalink":"/r/golang/comments/def/","created_utc":1724800100}}
		]}}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	posts, err := client.HotPosts(context.Background(), "access-tok", "golang", 4)

	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, "t3_abc", posts[0].FullName)
	assert.Equal(t, "Scaling Automation Tools", posts[0].Title)
	assert.Equal(t, "https://www.reddit.com/r/golang/comments/abc/", posts[0].Permalink)
	assert.Equal(t, 10, posts[0].Score)
}

func TestHotPosts_ChannelError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message":"Not Found"}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	_, err := client.HotPosts(context.Background(), "access-tok", "no_such_sub", 4)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "status=404")
}
