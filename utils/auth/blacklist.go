package auth

import (
	"context"
	"time"

	"github.com/mrzkhrmn/EventCampusWebAPI/utils/cache"
)

const blacklistKeyPrefix = "token:revoked:"

// BlacklistService handles JWT token revocation. Revoked JTIs are kept in
// Redis with a TTL matching the token's remaining lifetime, so entries
// expire on their own once the token would be rejected anyway.
//
// The cache is optional: with a nil cache revocation is a no-op and no
// token is ever reported revoked.
type BlacklistService struct {
	cache *cache.RedisCache
}

// NewBlacklistService creates a new blacklist service
func NewBlacklistService(c *cache.RedisCache) *BlacklistService {
	return &BlacklistService{cache: c}
}

// RevokeToken adds a token's JTI to the blacklist until it expires.
func (s *BlacklistService) RevokeToken(ctx context.Context, jti string, expiresAt time.Time) error {
	if s.cache == nil {
		return nil
	}

	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return nil
	}

	return s.cache.Set(ctx, blacklistKeyPrefix+jti, "1", ttl)
}

// IsTokenRevoked checks if a token's JTI is in the blacklist.
func (s *BlacklistService) IsTokenRevoked(ctx context.Context, jti string) (bool, error) {
	if s.cache == nil || jti == "" {
		return false, nil
	}

	return s.cache.Exists(ctx, blacklistKeyPrefix+jti)
}
