package constants

import "fmt"

// Redis key builders. Keeping them in one place avoids drift between the
// writers and the invalidation paths.

const (
	quoteCachePrefix   = "quote"
	webhookEventPrefix = "webhook_event"
)

// QuoteCacheKey keys a cached price quote by target and stay window.
func QuoteCacheKey(targetType, targetID, checkIn, checkOut string) string {
	if targetID == "" {
		targetID = "-"
	}
	return fmt.Sprintf("%s:%s:%s:%s:%s", quoteCachePrefix, targetType, targetID, checkIn, checkOut)
}

// QuoteCachePattern matches every cached quote, used when pricing rules change.
func QuoteCachePattern() string {
	return quoteCachePrefix + ":*"
}

// WebhookEventKey keys a processed gateway webhook event for idempotent delivery.
func WebhookEventKey(eventID string) string {
	return fmt.Sprintf("%s:%s", webhookEventPrefix, eventID)
}
