package middleware

import (
	"context"
	"net/http"
	"strings"

	"go-jobtracker-backend/internal/delivery/http/response"
	"go-jobtracker-backend/internal/domain"
	"go-jobtracker-backend/pkg/audit"
	"go-jobtracker-backend/pkg/auth"

	"github.com/gin-gonic/gin"
)

// AuthCookieName is read when no Authorization header is sent.
const AuthCookieName = "auth_token"

// AuthMiddleware verifies the access token and stores the caller identity in
// both the gin context and the request context.
func AuthMiddleware(verifier *auth.Verifier, authUC domain.AuthUsecase, auditor *audit.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := bearerToken(c.GetHeader("Authorization"))
		if tokenString == "" {
			if cookie, err := c.Cookie(AuthCookieName); err == nil && cookie != "" {
				tokenString = cookie
			}
		}

		if tokenString == "" {
			auditor.Unauthenticated(c.Request.Context(), c.ClientIP(), c.FullPath(), "missing_token")
			response.Error(c, http.StatusUnauthorized, "Authorization header or auth_token cookie required", nil)
			c.Abort()
			return
		}

		claims, err := verifier.Verify(tokenString)
		if err != nil {
			auditor.Unauthenticated(c.Request.Context(), c.ClientIP(), c.FullPath(), "invalid_token")
			response.Error(c, http.StatusUnauthorized, "Invalid token", nil)
			c.Abort()
			return
		}

		ctx := context.WithValue(c.Request.Context(), domain.KeyUserID, claims.Subject)
		ctx = context.WithValue(ctx, domain.KeyUserEmail, claims.Email)

		// first request from a subject creates its user row
		if _, err := authUC.EnsureUser(ctx, claims.Subject, claims.Email); err != nil {
			_ = c.Error(err)
			c.Abort()
			return
		}

		c.Request = c.Request.WithContext(ctx)
		c.Set(string(domain.KeyUserID), claims.Subject)
		c.Set(string(domain.KeyUserEmail), claims.Email)

		c.Next()
	}
}

func bearerToken(header string) string {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

// CallerID returns the authenticated subject, or "" on public routes.
func CallerID(c *gin.Context) string {
	return c.GetString(string(domain.KeyUserID))
}
