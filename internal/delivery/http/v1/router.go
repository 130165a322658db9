package v1

import (
	"net/http"

	"go-jobtracker-backend/internal/delivery/http/middleware"
	"go-jobtracker-backend/internal/delivery/http/response"
	"go-jobtracker-backend/internal/domain"
	"go-jobtracker-backend/internal/usecase"
	"go-jobtracker-backend/pkg/audit"
	"go-jobtracker-backend/pkg/auth"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type RouterDeps struct {
	AuthUC        domain.AuthUsecase
	JobUC         domain.JobUsecase
	ApplicationUC domain.ApplicationUsecase
	ContactUC     domain.ContactUsecase
	InterviewUC   domain.InterviewUsecase
	DashboardUC   domain.DashboardUsecase
	HealthUC      usecase.HealthUsecase
	Verifier      *auth.Verifier
	RateLimiter   *middleware.RateLimiter
	Auditor       *audit.Logger
	FrontendURL   string
	IsProduction  bool
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()

	// CORS first so preflights short-circuit
	r.Use(middleware.CORSMiddleware(deps.FrontendURL, deps.IsProduction))
	r.Use(gin.Recovery())
	r.Use(gin.Logger())
	r.Use(middleware.RequestID())
	r.Use(middleware.SecurityHeadersMiddleware(deps.IsProduction))
	r.Use(middleware.Timezone())
	r.Use(middleware.ErrorHandler())

	v1 := r.Group("/v1")

	v1.GET("/health", func(c *gin.Context) {
		status := deps.HealthUC.Check(c.Request.Context())
		if status["status"] != "ok" {
			response.Error(c, http.StatusServiceUnavailable, "Dependency unavailable", status)
			return
		}
		response.Success(c, http.StatusOK, "System operational", status)
	})

	v1.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	public := v1.Group("")
	public.Use(middleware.CSRFMiddleware(deps.IsProduction))

	protected := v1.Group("")
	protected.Use(
		middleware.CSRFMiddleware(deps.IsProduction),
		middleware.AuthMiddleware(deps.Verifier, deps.AuthUC, deps.Auditor),
	)
	if deps.RateLimiter != nil {
		protected.Use(deps.RateLimiter.Middleware())
	}
	{
		NewAuthHandler(public, protected, deps.AuthUC, deps.Verifier, deps.IsProduction)
		NewJobHandler(protected, deps.JobUC)
		NewApplicationHandler(protected, deps.ApplicationUC)
		NewContactHandler(protected, deps.ContactUC)
		NewInterviewHandler(protected, deps.InterviewUC)
		NewDashboardHandler(protected, deps.DashboardUC)
	}

	return r
}
