package v1

import (
	"net/http"

	"go-jobtracker-backend/internal/delivery/http/response"
	"go-jobtracker-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

type DashboardHandler struct {
	dashboardUC domain.DashboardUsecase
}

func NewDashboardHandler(protected *gin.RouterGroup, dashboardUC domain.DashboardUsecase) {
	handler := &DashboardHandler{dashboardUC: dashboardUC}
	protected.GET("/dashboard", handler.Summary)
}

// Summary godoc
// @Summary      Pipeline summary
// @Description  Counts per status and the next scheduled interviews, with "today" taken in X-Timezone
// @Tags         dashboard
// @Produce      json
// @Param        X-Timezone  header  string  false  "IANA zone of the caller"
// @Success      200  {object}  response.Response{data=domain.Dashboard}
// @Failure      401  {object}  response.Response
// @Router       /dashboard [get]
// @Security     BearerAuth
func (h *DashboardHandler) Summary(c *gin.Context) {
	d, err := h.dashboardUC.Summary(c.Request.Context(), callerID(c))
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Dashboard retrieved", d)
}
