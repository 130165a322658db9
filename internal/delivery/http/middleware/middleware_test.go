package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go-jobtracker-backend/internal/domain"
	"go-jobtracker-backend/pkg/apperror"
	"go-jobtracker-backend/pkg/audit"
	"go-jobtracker-backend/pkg/dateutil"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func nopAuditor() *audit.Logger {
	return audit.NewWithZap(zap.NewNop(), "test", "test")
}

func TestRateLimiter_InMemoryFallback(t *testing.T) {
	cfg := DefaultRateLimitConfig(2, time.Minute)
	rl := NewRateLimiter(cfg, nil, nopAuditor())

	r := gin.New()
	r.Use(rl.Middleware())
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		r.ServeHTTP(w, req)
		codes = append(codes, w.Code)
		if i == 2 {
			assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))
			assert.NotEmpty(t, w.Header().Get("Retry-After"))
		}
	}
	assert.Equal(t, []int{200, 200, 429}, codes)

	// another client has its own budget
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.RemoteAddr = "10.0.0.2:1234"
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCSRFMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(CSRFMiddleware(false))
	r.GET("/jobs", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.POST("/jobs", func(c *gin.Context) { c.Status(http.StatusCreated) })

	t.Run("Safe methods issue a token cookie", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/jobs", nil))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Header().Get("Set-Cookie"), CSRFTokenCookieName+"=")
	})

	t.Run("Bearer requests skip the check", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/jobs", nil)
		req.Header.Set("Authorization", "Bearer abc")
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("Cookie session without header is rejected", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/jobs", nil)
		req.AddCookie(&http.Cookie{Name: AuthCookieName, Value: "session"})
		req.AddCookie(&http.Cookie{Name: CSRFTokenCookieName, Value: "token-1"})
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("Mismatched header is rejected", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/jobs", nil)
		req.AddCookie(&http.Cookie{Name: AuthCookieName, Value: "session"})
		req.AddCookie(&http.Cookie{Name: CSRFTokenCookieName, Value: "token-1"})
		req.Header.Set(CSRFTokenHeaderName, "token-2")
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("Matching header passes", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/jobs", nil)
		req.AddCookie(&http.Cookie{Name: AuthCookieName, Value: "session"})
		req.AddCookie(&http.Cookie{Name: CSRFTokenCookieName, Value: "token-1"})
		req.Header.Set(CSRFTokenHeaderName, "token-1")
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusCreated, w.Code)
	})
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	var fromCtx any
	r.GET("/", func(c *gin.Context) {
		fromCtx = c.Request.Context().Value(domain.KeyRequestID)
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	generated := w.Header().Get(RequestIDHeader)
	require.NotEmpty(t, generated)
	assert.Equal(t, generated, fromCtx)

	const incoming = "6f1c2d3e-4b5a-4c7d-8e9f-0a1b2c3d4e5f"
	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, incoming)
	r.ServeHTTP(w, req)
	assert.Equal(t, incoming, w.Header().Get(RequestIDHeader))

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "<script>")
	r.ServeHTTP(w, req)
	assert.NotEqual(t, "<script>", w.Header().Get(RequestIDHeader))
}

func TestTimezone(t *testing.T) {
	r := gin.New()
	r.Use(Timezone())
	var zone string
	r.GET("/", func(c *gin.Context) {
		zone = dateutil.LocationFrom(c.Request.Context()).String()
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(TimezoneHeader, "America/New_York")
	r.ServeHTTP(httptest.NewRecorder(), req)
	assert.Equal(t, "America/New_York", zone)

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(TimezoneHeader, "Mars/Olympus")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, dateutil.LocationFrom(req.Context()).String(), zone)
}

func TestErrorHandler(t *testing.T) {
	r := gin.New()
	r.Use(ErrorHandler())
	r.GET("/ref", func(c *gin.Context) { _ = c.Error(apperror.Reference("job_id", "Job not found or access denied")) })
	r.GET("/boom", func(c *gin.Context) { _ = c.Error(apperror.Internal(assert.AnError)) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ref", nil))
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), `"kind":"reference"`)
	assert.Contains(t, w.Body.String(), `"field":"job_id"`)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), `"kind":"storage"`)
	assert.NotContains(t, w.Body.String(), assert.AnError.Error())
}
