package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/acidderek/acid-concepts-automation-sub002/domain/dto"
	"github.com/acidderek/acid-concepts-automation-sub002/infrastructure/logger"

	"github.com/redis/go-redis/v9"
)

const statusTTL = 2 * time.Minute

type IStatusCache interface {
	Get(ctx context.Context, ownerID, provider string) (*dto.AuthStatusResponse, bool)
	Set(ctx context.Context, ownerID, provider string, status *dto.AuthStatusResponse)
}

// StatusCache keeps recent live identity-probe results so get_status does not
// hit the provider on every dashboard poll. A nil Redis client disables it.
type StatusCache struct {
	client *redis.Client
}

func NewStatusCache(client *redis.Client) IStatusCache {
	return &StatusCache{client: client}
}

func key(ownerID, provider string) string {
	return "oauth_status:" + provider + ":" + ownerID
}

func (c *StatusCache) Get(ctx context.Context, ownerID, provider string) (*dto.AuthStatusResponse, bool) {
	if c.client == nil {
		return nil, false
	}
	raw, err := c.client.Get(ctx, key(ownerID, provider)).Result()
	if err != nil {
		return nil, false
	}
	var status dto.AuthStatusResponse
	if err := json.Unmarshal([]byte(raw), &status); err != nil {
		return nil, false
	}
	return &status, true
}

func (c *StatusCache) Set(ctx context.Context, ownerID, provider string, status *dto.AuthStatusResponse) {
	if c.client == nil {
		return
	}
	raw, err := json.Marshal(status)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, key(ownerID, provider), raw, statusTTL).Err(); err != nil {
		logger.GetLogger().WithField("error", err).Warn("Failed to cache auth status")
	}
}
