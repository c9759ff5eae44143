package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
)

// Hash returns the hex SHA-256 of data. The runner hashes the canonical
// JSON of a requirement record with it.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// HashJSON hashes the JSON encoding of v. Struct fields encode in declaration
// order, so equal values always hash the same.
func HashJSON(v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("hash: %w", err)
	}
	return Hash(data), nil
}

// hashKey returns "<kind>:<sha256 of parts>". Parts are NUL-separated so
// ("ab", "c") and ("a", "bc") never collide.
func hashKey(kind string, parts ...string) string {
	return kind + ":" + Hash([]byte(strings.Join(parts, "\x00")))
}
