package cache

import (
	"fmt"
	"strings"
	"time"
)

// DefaultTTL matches how long a driving route or geocode stays trustworthy.
const DefaultTTL = 7 * 24 * time.Hour

// uniqueKeys trims, drops empties and de-duplicates while keeping order.
func uniqueKeys(keys []string) []string {
	seen := make(map[string]struct{}, len(keys))
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		k = strings.TrimSpace(k)
		if k == "" {
			continue
		}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	return out
}

// placeholders returns "$from, $from+1, ..." for n values. Numbered
// placeholders are understood by both pgx and sqlite.
func placeholders(from, n int) string {
	ph := make([]string, n)
	for i := range ph {
		ph[i] = fmt.Sprintf("$%d", from+i)
	}
	return strings.Join(ph, ", ")
}
