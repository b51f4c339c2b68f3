package ratelimit

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

// Request groups with distinct limits
const (
	GroupPublic  = "public"
	GroupBooking = "booking"
	GroupAdmin   = "admin"
)

// Middleware applies rate limiting to all routes, classifying them by path.
func Middleware(rl *RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		result, err := rl.Allow(c.Request.Context(), c.ClientIP(), classify(c.Request.URL.Path))
		if err != nil {
			// Fail open on limiter errors; result carries permissive defaults.
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(result.Limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(result.Remaining))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(result.ResetAt.Unix(), 10))

		if !result.Allowed {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "Too many requests, please try again later",
			})
			return
		}

		c.Next()
	}
}

func classify(path string) string {
	switch {
	case strings.Contains(path, "/admin"):
		return GroupAdmin
	case strings.Contains(path, "/bookings"):
		return GroupBooking
	default:
		return GroupPublic
	}
}
