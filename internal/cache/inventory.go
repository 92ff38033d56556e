package cache

import (
	"context"
	"fmt"
	"strings"
	"time"
)

const (
	scryfallSearchPrefix = "scryfall:search:%s"
	scryfallNamedPrefix  = "scryfall:named:%s"
	scryfallAutoPrefix   = "scryfall:auto:%s"
	blacklistPrefix      = "blacklist:%s"
)

const (
	// ScryfallTTL bounds upstream card-metadata staleness; printings change rarely.
	ScryfallTTL = 24 * time.Hour
)

func normalizeQuery(q string) string {
	return strings.ToLower(strings.TrimSpace(q))
}

func ScryfallSearchKey(query string) string {
	return fmt.Sprintf(scryfallSearchPrefix, normalizeQuery(query))
}

func ScryfallNamedKey(name string) string {
	return fmt.Sprintf(scryfallNamedPrefix, normalizeQuery(name))
}

func ScryfallAutocompleteKey(query string) string {
	return fmt.Sprintf(scryfallAutoPrefix, normalizeQuery(query))
}

func BlacklistKey(jti string) string {
	return fmt.Sprintf(blacklistPrefix, jti)
}

// BlacklistToken marks a token ID as revoked until its natural expiry.
func BlacklistToken(ctx context.Context, jti string, ttl time.Duration) error {
	if client == nil || ttl <= 0 {
		return nil
	}
	return client.Set(ctx, BlacklistKey(jti), "revoked", ttl).Err()
}

// IsTokenBlacklisted reports whether a token ID has been revoked. Without a
// Redis client revocation is unavailable and tokens are accepted until expiry.
func IsTokenBlacklisted(ctx context.Context, jti string) bool {
	if client == nil {
		return false
	}
	n, err := client.Exists(ctx, BlacklistKey(jti)).Result()
	return err == nil && n > 0
}
