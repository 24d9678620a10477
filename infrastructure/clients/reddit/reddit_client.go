package reddit

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/acidderek/acid-concepts-automation-sub002/domain/apperrors"
	"github.com/acidderek/acid-concepts-automation-sub002/domain/model"
	"github.com/acidderek/acid-concepts-automation-sub002/domain/repository"

	"github.com/google/go-querystring/query"
	"golang.org/x/oauth2"
)

// Config represents Reddit API configuration. Client credentials are passed
// per call because they live per owner in the credential store.
type Config struct {
	AuthURL    string
	TokenURL   string
	APIBaseURL string
	UserAgent  string
	Scopes     []string
	Timeout    time.Duration
}

// Client talks to the Reddit OAuth and content endpoints.
type Client struct {
	cfg        Config
	httpClient *http.Client
}

// NewRedditClient creates a new Reddit API client. All outbound calls carry
// the configured timeout.
func NewRedditClient(cfg Config) repository.IReddit {
	if cfg.Timeout == 0 {
		cfg.Timeout = 10 * time.Second
	}
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}
}

func (c *Client) oauthConfig(clientID, clientSecret, redirectURI string) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RedirectURL:  redirectURI,
		Scopes:       c.cfg.Scopes,
		Endpoint: oauth2.Endpoint{
			AuthURL:  c.cfg.AuthURL,
			TokenURL: c.cfg.TokenURL,
			// Reddit requires client_id/client_secret as HTTP Basic auth on
			// the token endpoint.
			AuthStyle: oauth2.AuthStyleInHeader,
		},
	}
}

// withHTTPClient makes the oauth2 transport use our timeout-bound client.
func (c *Client) withHTTPClient(ctx context.Context) context.Context {
	return context.WithValue(ctx, oauth2.HTTPClient, c.httpClient)
}

func (c *Client) BuildAuthURL(clientID, redirectURI, state string) string {
	conf := c.oauthConfig(clientID, "", redirectURI)
	// duration=permanent is what makes Reddit hand back a refresh_token.
	return conf.AuthCodeURL(state, oauth2.SetAuthURLParam("duration", "permanent"))
}

func (c *Client) Exchange(ctx context.Context, clientID, clientSecret, redirectURI, code string) (*model.ProviderToken, error) {
	conf := c.oauthConfig(clientID, clientSecret, redirectURI)
	tok, err := conf.Exchange(c.withHTTPClient(ctx), code)
	if err != nil {
		var re *oauth2.RetrieveError
		if errors.As(err, &re) {
			return nil, fmt.Errorf("%w: status=%d body=%s", apperrors.ErrTokenExchangeFailed, re.Response.StatusCode, string(re.Body))
		}
		return nil, fmt.Errorf("%w: %v", apperrors.ErrTokenExchangeFailed, err)
	}
	return &model.ProviderToken{
		AccessToken:  tok.AccessToken,
		RefreshToken: tok.RefreshToken,
		ExpiresAt:    tok.Expiry.UTC(),
	}, nil
}

func (c *Client) Refresh(ctx context.Context, clientID, clientSecret, refreshToken string) (*model.ProviderToken, error) {
	conf := c.oauthConfig(clientID, clientSecret, "")
	ts := conf.TokenSource(c.withHTTPClient(ctx), &oauth2.Token{RefreshToken: refreshToken})
	tok, err := ts.Token()
	if err != nil {
		var re *oauth2.RetrieveError
		if errors.As(err, &re) && re.ErrorCode == "invalid_grant" {
			// Terminal: the grant is gone, the user must re-authenticate.
			return nil, fmt.Errorf("%w: %v", apperrors.ErrAuthExpired, err)
		}
		return nil, fmt.Errorf("refresh token: %w", err)
	}
	out := &model.ProviderToken{
		AccessToken:  tok.AccessToken,
		RefreshToken: tok.RefreshToken,
		ExpiresAt:    tok.Expiry.UTC(),
	}
	if out.RefreshToken == "" {
		// Reddit does not always rotate the refresh token.
		out.RefreshToken = refreshToken
	}
	return out, nil
}

func (c *Client) Identity(ctx context.Context, accessToken string) (*model.ProviderIdentity, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.APIBaseURL+"/api/v1/me", nil)
	if err != nil {
		return nil, err
	}
	c.decorate(req, accessToken)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("identity request: %w", err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: status=%d body=%s", apperrors.ErrIdentityFetchFailed, resp.StatusCode, string(body))
	}
	var me struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}
	if err := json.Unmarshal(body, &me); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrIdentityFetchFailed, err)
	}
	return &model.ProviderIdentity{ID: me.ID, Username: me.Name}, nil
}

type listingOptions struct {
	Limit   int `url:"limit,omitempty"`
	RawJSON int `url:"raw_json"`
}

func (c *Client) HotPosts(ctx context.Context, accessToken, channel string, limit int) ([]model.RedditPost, error) {
	opts := listingOptions{Limit: limit, RawJSON: 1}
	v, err := query.Values(opts)
	if err != nil {
		return nil, err
	}
	u := fmt.Sprintf("%s/r/%s/hot?%s", c.cfg.APIBaseURL, url.PathEscape(channel), v.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	c.decorate(req, accessToken)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("listing request r/%s: %w", channel, err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("listing r/%s: status=%d body=%s", channel, resp.StatusCode, truncate(string(body), 200))
	}

	var listing struct {
		Data struct {
			Children []struct {
				Data struct {
					ID         string  `json:"id"`
					Name       string  `json:"name"`
					Subreddit  string  `json:"subreddit"`
					Title      string  `json:"title"`
					SelfText   string  `json:"selftext"`
					Author     string  `json:"author"`
					Score      int     `json:"score"`
					Permalink  string  `json:"permalink"`
					CreatedUTC float64 `json:"created_utc"`
				} `json:"data"`
			} `json:"children"`
		} `json:"data"`
	}
	if err := json.Unmarshal(body, &listing); err != nil {
		return nil, fmt.Errorf("parse listing r/%s: %w", channel, err)
	}

	posts := make([]model.RedditPost, 0, len(listing.Data.Children))
	for _, child := range listing.Data.Children {
		d := child.Data
		posts = append(posts, model.RedditPost{
			ID:         d.ID,
			FullName:   d.Name,
			Subreddit:  d.Subreddit,
			Title:      d.Title,
			SelfText:   d.SelfText,
			Author:     d.Author,
			Score:      d.Score,
			Permalink:  "https://www.reddit.com" + d.Permalink,
			CreatedUTC: d.CreatedUTC,
		})
	}
	return posts, nil
}

func (c *Client) decorate(req *http.Request, accessToken string) {
	req.Header.Set("Authorization", "Bearer "+accessToken)
	// Reddit throttles requests without a descriptive User-Agent.
	req.Header.Set("User-Agent", c.cfg.UserAgent)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
