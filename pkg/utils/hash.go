package utils

import (
	"crypto/md5"
	"fmt"
	"strings"
)

// HashQuery normalizes a user query and returns a hex digest suitable as a
// cache key. Not a security boundary.
func HashQuery(input string) string {
	normalized := strings.ToLower(strings.TrimSpace(input))
	hash := md5.Sum([]byte(normalized))
	return fmt.Sprintf("%x", hash)
}
