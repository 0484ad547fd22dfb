package lingopack

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// HashText computes the SHA-256 hash of the trimmed text.
func HashText(text string) string {
	trimmed := strings.TrimSpace(text)
	hash := sha256.Sum256([]byte(trimmed))
	return hex.EncodeToString(hash[:])
}

// CacheKey generates a result-cache key from a text hash and the resolved
// language pair. The source code is part of the key: the same text translated
// through different source languages yields different results.
func CacheKey(hash string, source, target LanguageCode) string {
	return hash + ":" + string(source) + ":" + string(target)
}
