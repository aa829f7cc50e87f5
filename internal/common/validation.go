package common

import (
	"fmt"
	"strings"
)

const maxContentLength = 8192

// ValidateContent rejects empty/whitespace-only or oversized message bodies.
func ValidateContent(content string) error {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return fmt.Errorf("%w: content is empty", ErrSendRejected)
	}
	if len(content) > maxContentLength {
		return fmt.Errorf("%w: content too long (max %d bytes)", ErrSendRejected, maxContentLength)
	}
	return nil
}
