package middleware

import (
	"go-jobtracker-backend/pkg/dateutil"

	"github.com/gin-gonic/gin"
)

const TimezoneHeader = "X-Timezone"

// Timezone resolves the caller's IANA zone from X-Timezone. Missing or unknown
// names leave the server default in effect instead of failing the request.
func Timezone() gin.HandlerFunc {
	return func(c *gin.Context) {
		loc, err := dateutil.ParseLocation(c.GetHeader(TimezoneHeader), nil)
		if err == nil && loc != nil {
			c.Request = c.Request.WithContext(dateutil.WithLocation(c.Request.Context(), loc))
		}
		c.Next()
	}
}
