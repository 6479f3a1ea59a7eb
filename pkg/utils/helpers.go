package utils

import (
	"strings"

	"github.com/google/uuid"
)

// GenerateRequestID generates a unique request ID for tracking
func GenerateRequestID() string {
	return uuid.New().String()
}

// NormalizeTerm lowercases and trims a skill or location string for
// case-insensitive comparison.
func NormalizeTerm(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// HasSubstringFold reports whether s contains substr, case-insensitively.
func HasSubstringFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

// GetStringOrDefault returns the value if not empty, otherwise returns the default
func GetStringOrDefault(value, defaultValue string) string {
	if value == "" {
		return defaultValue
	}
	return value
}

// ClampScore bounds a match score to the 0-100 range.
func ClampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
