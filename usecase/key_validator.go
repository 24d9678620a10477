package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/acidderek/acid-concepts-automation-sub002/domain/dto"
	"github.com/acidderek/acid-concepts-automation-sub002/domain/model"
	"github.com/acidderek/acid-concepts-automation-sub002/domain/repository"
	"github.com/acidderek/acid-concepts-automation-sub002/infrastructure/logger"
)

// IKeyValidator sanity-checks raw credential strings before they are trusted.
// Results are advisory: they are logged and returned but never gate storage.
type IKeyValidator interface {
	Validate(ctx context.Context, provider, key string, live bool) dto.KeyValidationResult
}

type keyValidator struct {
	reddit repository.IReddit
}

func NewKeyValidator(reddit repository.IReddit) IKeyValidator {
	return &keyValidator{reddit: reddit}
}

// formatRule is a cheap synchronous check applied before any live probe.
type formatRule struct {
	minLen   int
	maxLen   int
	prefixes []string
}

var formatRules = map[string]formatRule{
	model.ProviderReddit: {minLen: 10, maxLen: 50},
	"openai":             {minLen: 20, maxLen: 200, prefixes: []string{"sk-"}},
	"stripe":             {minLen: 20, maxLen: 200, prefixes: []string{"sk_live_", "sk_test_", "rk_live_", "rk_test_"}},
}

func (v *keyValidator) Validate(ctx context.Context, provider, key string, live bool) dto.KeyValidationResult {
	start := time.Now()
	done := func(valid bool, message string) dto.KeyValidationResult {
		res := dto.KeyValidationResult{Valid: valid, Message: message, LatencyMS: time.Since(start).Milliseconds()}
		logger.GetLogger().WithFields(map[string]interface{}{
			"provider": provider,
			"valid":    res.Valid,
			"message":  res.Message,
			"ms":       res.LatencyMS,
		}).Info("Key validation")
		return res
	}

	key = strings.TrimSpace(key)
	if key == "" {
		return done(false, "empty key")
	}

	rule, known := formatRules[strings.ToLower(provider)]
	if !known {
		return done(true, "no format rules for provider; accepted")
	}
	if len(key) < rule.minLen {
		return done(false, fmt.Sprintf("key shorter than %d characters", rule.minLen))
	}
	if rule.maxLen > 0 && len(key) > rule.maxLen {
		return done(false, fmt.Sprintf("key longer than %d characters", rule.maxLen))
	}
	if len(rule.prefixes) > 0 {
		matched := false
		for _, p := range rule.prefixes {
			if strings.HasPrefix(key, p) {
				matched = true
				break
			}
		}
		if !matched {
			return done(false, "key prefix not recognized for provider")
		}
	}

	if !live || strings.ToLower(provider) != model.ProviderReddit {
		return done(true, "format ok")
	}

	// Live probe against the whoami endpoint. Only a definitive auth
	// rejection marks the key invalid; a transient outage must not fail
	// credential storage.
	_, err := v.reddit.Identity(ctx, key)
	if err == nil {
		return done(true, "live check ok")
	}
	msg := err.Error()
	if strings.Contains(msg, "status=401") || strings.Contains(msg, "status=403") {
		return done(false, "provider rejected the token")
	}
	return done(true, "live check inconclusive; treating as valid")
}
