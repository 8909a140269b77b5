package cache

import "strings"

// GenerateKey joins a namespace and parts into a cache key.
func GenerateKey(prefix string, parts ...string) string {
	if len(parts) == 0 {
		return prefix
	}
	return prefix + ":" + strings.Join(parts, ":")
}
