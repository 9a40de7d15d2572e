package core

import (
	"crypto/sha256"
	"fmt"

	"github.com/nutriscope/nutriscope/schema"
)

// payloadVersion is folded into every cache key so a payload shape change
// invalidates old entries instead of tripping the decoders.
const payloadVersion = 1

// generateCacheKey creates a unique key for one domain's cached payload.
// Keys are scoped per user so switching accounts never serves another
// account's data.
func generateCacheKey(domain schema.Domain, userID string) string {
	key := fmt.Sprintf("%s:%s:%d", domain, userID, payloadVersion)
	return fmt.Sprintf("%x", sha256.Sum256([]byte(key)))
}
