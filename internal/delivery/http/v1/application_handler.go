package v1

import (
	"net/http"

	"go-jobtracker-backend/internal/delivery/http/response"
	"go-jobtracker-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

type ApplicationHandler struct {
	applicationUC domain.ApplicationUsecase
}

func NewApplicationHandler(protected *gin.RouterGroup, applicationUC domain.ApplicationUsecase) {
	handler := &ApplicationHandler{applicationUC: applicationUC}

	apps := protected.Group("/applications")
	{
		apps.GET("", handler.List)
		apps.GET("/:id", handler.GetDetails)
		apps.POST("", handler.Create)
		apps.PUT("/:id", handler.Update)
		apps.DELETE("/:id", handler.Delete)
	}
}

// List godoc
// @Summary      List applications
// @Tags         applications
// @Produce      json
// @Success      200  {object}  response.Response{data=[]domain.Application}
// @Router       /applications [get]
// @Security     BearerAuth
func (h *ApplicationHandler) List(c *gin.Context) {
	apps, err := h.applicationUC.ListApplications(c.Request.Context(), callerID(c))
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Applications retrieved", apps)
}

// GetDetails godoc
// @Summary      Get an application
// @Tags         applications
// @Produce      json
// @Param        id   path      string  true  "Application ID"
// @Success      200  {object}  response.Response{data=domain.Application}
// @Failure      404  {object}  response.Response
// @Router       /applications/{id} [get]
// @Security     BearerAuth
func (h *ApplicationHandler) GetDetails(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	app, err := h.applicationUC.GetApplication(c.Request.Context(), id, callerID(c))
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Application retrieved", app)
}

// Create godoc
// @Summary      Create an application
// @Tags         applications
// @Accept       json
// @Produce      json
// @Param        application  body      domain.ApplicationInput  true  "Application JSON"
// @Success      201  {object}  response.Response{data=domain.Application}
// @Failure      400  {object}  response.Response
// @Failure      422  {object}  response.Response
// @Router       /applications [post]
// @Security     BearerAuth
func (h *ApplicationHandler) Create(c *gin.Context) {
	var input domain.ApplicationInput
	if !bindJSON(c, &input) {
		return
	}
	app, err := h.applicationUC.CreateApplication(c.Request.Context(), callerID(c), input)
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Application created", app)
}

// Update godoc
// @Summary      Update an application
// @Tags         applications
// @Accept       json
// @Produce      json
// @Param        id           path      string                   true  "Application ID"
// @Param        application  body      domain.ApplicationInput  true  "Application JSON"
// @Success      200  {object}  response.Response{data=domain.Application}
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Failure      422  {object}  response.Response
// @Router       /applications/{id} [put]
// @Security     BearerAuth
func (h *ApplicationHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var input domain.ApplicationInput
	if !bindJSON(c, &input) {
		return
	}
	app, err := h.applicationUC.UpdateApplication(c.Request.Context(), id, callerID(c), input)
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Application updated", app)
}

// Delete godoc
// @Summary      Delete an application
// @Tags         applications
// @Param        id   path      string  true  "Application ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /applications/{id} [delete]
// @Security     BearerAuth
func (h *ApplicationHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.applicationUC.DeleteApplication(c.Request.Context(), id, callerID(c)); err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Application deleted", nil)
}
