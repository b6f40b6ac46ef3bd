package sqlite

import (
	"errors"
	"fmt"
	"strings"
)

const (
	maxKeyLength   = 255
	maxValueLength = 1024 * 1024 // 1MB
)

// Logger is the subset of interfaces.Logger the cache needs
type Logger interface {
	Warn(msg string, fields map[string]interface{})
}

// suspiciousPatterns are harmless under parameterized queries but worth a log line
var suspiciousPatterns = []string{"--", "/*", "*/", ";", "'", "\"", "\\", "\n", "\r", "\t"}

// ValidateKey rejects empty, oversized and NUL containing keys
func ValidateKey(key string, logger Logger) error {
	if key == "" {
		return errors.New("key cannot be empty")
	}
	if len(key) > maxKeyLength {
		return fmt.Errorf("key too long: max %d characters", maxKeyLength)
	}
	if strings.Contains(key, "\x00") {
		return errors.New("key cannot contain null bytes")
	}

	if logger != nil {
		for _, pattern := range suspiciousPatterns {
			if strings.Contains(key, pattern) {
				logger.Warn("Suspicious pattern detected in cache key", map[string]interface{}{
					"pattern":     pattern,
					"key_length":  len(key),
					"key_preview": truncateKey(key),
				})
				break
			}
		}
	}
	return nil
}

// ValidateValue rejects values above the size ceiling
func ValidateValue(value []byte) error {
	if len(value) > maxValueLength {
		return fmt.Errorf("value too large: max %d bytes", maxValueLength)
	}
	return nil
}

func truncateKey(key string) string {
	const maxPreview = 50
	if len(key) <= maxPreview {
		return key
	}
	return key[:maxPreview] + "..."
}
