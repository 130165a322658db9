package v1

import (
	"net/http"
	"time"

	"go-jobtracker-backend/internal/delivery/http/middleware"
	"go-jobtracker-backend/internal/delivery/http/response"
	"go-jobtracker-backend/internal/domain"
	"go-jobtracker-backend/pkg/apperror"
	"go-jobtracker-backend/pkg/auth"

	"github.com/gin-gonic/gin"
)

// sessionCookieTTL bounds the cookie; the token's own expiry still applies.
const sessionCookieTTL = 7 * 24 * time.Hour

type AuthHandler struct {
	authUC       domain.AuthUsecase
	verifier     *auth.Verifier
	secureCookie bool
}

func NewAuthHandler(public, protected *gin.RouterGroup, authUC domain.AuthUsecase, verifier *auth.Verifier, secureCookie bool) {
	handler := &AuthHandler{authUC: authUC, verifier: verifier, secureCookie: secureCookie}

	public.POST("/auth/session", handler.CreateSession)
	public.DELETE("/auth/session", handler.DeleteSession)
	protected.GET("/me", handler.Me)
}

type SessionRequest struct {
	Token string `json:"token" binding:"required"`
}

// CreateSession godoc
// @Summary      Exchange an access token for a session cookie
// @Description  Browsers that cannot hold the token in memory may use the http-only auth_token cookie instead; mutating requests then need X-CSRF-Token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        session  body      SessionRequest  true  "Access token"
// @Success      200  {object}  response.Response{data=domain.User}
// @Failure      401  {object}  response.Response
// @Router       /auth/session [post]
func (h *AuthHandler) CreateSession(c *gin.Context) {
	var req SessionRequest
	if !bindJSON(c, &req) {
		return
	}
	claims, err := h.verifier.Verify(req.Token)
	if err != nil {
		_ = c.Error(apperror.Unauthorized("Invalid token"))
		return
	}
	user, err := h.authUC.EnsureUser(c.Request.Context(), claims.Subject, claims.Email)
	if err != nil {
		_ = c.Error(err)
		return
	}

	maxAge := int(sessionCookieTTL.Seconds())
	if claims.ExpiresAt != nil {
		if left := int(time.Until(claims.ExpiresAt.Time).Seconds()); left < maxAge {
			maxAge = left
		}
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.AuthCookieName, req.Token, maxAge, "/", "", h.secureCookie, true)
	response.Success(c, http.StatusOK, "Session created", user)
}

// DeleteSession godoc
// @Summary      Clear the session cookie
// @Tags         auth
// @Success      200  {object}  response.Response
// @Router       /auth/session [delete]
func (h *AuthHandler) DeleteSession(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.AuthCookieName, "", -1, "/", "", h.secureCookie, true)
	response.Success(c, http.StatusOK, "Session cleared", nil)
}

// Me godoc
// @Summary      Current user
// @Tags         auth
// @Produce      json
// @Success      200  {object}  response.Response{data=domain.User}
// @Failure      401  {object}  response.Response
// @Router       /me [get]
// @Security     BearerAuth
func (h *AuthHandler) Me(c *gin.Context) {
	user, err := h.authUC.GetCurrentUser(c.Request.Context(), callerID(c))
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "User details", user)
}
