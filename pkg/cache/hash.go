package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// Hash returns the hex SHA-256 of data. Documents and edit scripts are
// identified by it in cache keys and API responses.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// hashKey builds "<kind>:<hash>" where the hash covers the JSON encoding of
// parts, so struct fields such as writer settings take part in the key.
func hashKey(kind string, parts ...any) string {
	data, err := json.Marshal(parts)
	if err != nil {
		// parts are strings and plain structs; this cannot fail.
		panic("cache: encode key parts: " + err.Error())
	}
	return kind + ":" + Hash(data)
}
