package utils

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
)

// EnvOrDefault returns ENV value or fallback default.
func EnvOrDefault(key, def string) string {
	v := os.Getenv(key)
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}

// GenerateSecureToken returns a hex token of the given byte length.
func GenerateSecureToken(length int) (string, error) {
	if length <= 0 {
		return "", errors.New("invalid token length")
	}
	b := make([]byte, length)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// UploadFilename builds a collision-resistant name for a stored upload,
// keeping the original extension.
func UploadFilename(ext string) string {
	suffix, err := GenerateSecureToken(4)
	if err != nil {
		suffix = "0"
	}
	return fmt.Sprintf("%d-%s%s", time.Now().UnixNano(), suffix, ext)
}
