package helpers

import (
	"context"
	"strings"

	"github.com/google/uuid"
)

func IsContextDone(ctx context.Context) bool {
	if ctx == nil {
		return true
	}
	select {
	case <-ctx.Done():
		return true
	default:
	}
	return false
}

// NewRequestCode builds a human-readable request code like "BT-1A2B3C4D".
func NewRequestCode() string {
	id := strings.ToUpper(uuid.NewString())
	return "BT-" + id[:8]
}
