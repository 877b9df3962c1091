package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"

	"github.com/guttosm/vendas-realtime/internal/domain/models"
)

// Namespace prefixes every key owned by this service. Invalidation removes
// exactly the keys under it.
const Namespace = "vendas_realtime"

// Key returns the deterministic cache key for endpoint over r.
//
// Format: vendas_realtime:<first 16 bytes of SHA-256 in hex>
//
// The digest covers the endpoint and the exact range boundaries, so the same
// logical range always maps to the same key.
func Key(endpoint string, r models.DateRange) string {
	canonical := strings.Join([]string{
		strings.Trim(endpoint, "/"),
		r.Start.Format(time.RFC3339),
		r.End.Format(time.RFC3339),
	}, "|")

	sum := sha256.Sum256([]byte(canonical))
	return Namespace + ":" + hex.EncodeToString(sum[:16])
}

func namespacePattern() string {
	return Namespace + ":*"
}
