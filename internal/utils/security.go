package contextutils

import (
	"net/url"
	"strings"
)

// MaskSecret masks a secret for logging, showing only the first and last 4 characters
func MaskSecret(secret string) string {
	if secret == "" {
		return "[EMPTY]"
	}

	if len(secret) <= 8 {
		return strings.Repeat("*", len(secret))
	}

	return secret[:4] + strings.Repeat("*", len(secret)-8) + secret[len(secret)-4:]
}

// MaskURL hides the userinfo part of a connection URL (postgres://, redis://)
func MaskURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.User == nil {
		return raw
	}
	u.User = url.UserPassword("***", "***")
	// url.String escapes the asterisks
	return strings.ReplaceAll(u.String(), "%2A", "*")
}
