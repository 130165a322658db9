package v1

import (
	"net/http"

	"go-jobtracker-backend/internal/delivery/http/response"
	"go-jobtracker-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

type InterviewHandler struct {
	interviewUC domain.InterviewUsecase
}

func NewInterviewHandler(protected *gin.RouterGroup, interviewUC domain.InterviewUsecase) {
	handler := &InterviewHandler{interviewUC: interviewUC}

	interviews := protected.Group("/interviews")
	{
		interviews.GET("", handler.List)
		interviews.GET("/:id", handler.GetDetails)
		interviews.POST("", handler.Create)
		interviews.PUT("/:id", handler.Update)
		interviews.DELETE("/:id", handler.Delete)
	}
}

// List godoc
// @Summary      List interviews
// @Description  Interviews across all of the caller's jobs, earliest first
// @Tags         interviews
// @Produce      json
// @Param        X-Timezone  header  string  false  "IANA zone used for date_local"
// @Success      200  {object}  response.Response{data=[]domain.Interview}
// @Router       /interviews [get]
// @Security     BearerAuth
func (h *InterviewHandler) List(c *gin.Context) {
	interviews, err := h.interviewUC.ListInterviews(c.Request.Context(), callerID(c))
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Interviews retrieved", interviews)
}

// GetDetails godoc
// @Summary      Get an interview
// @Tags         interviews
// @Produce      json
// @Param        id   path      string  true  "Interview ID"
// @Success      200  {object}  response.Response{data=domain.Interview}
// @Failure      404  {object}  response.Response
// @Router       /interviews/{id} [get]
// @Security     BearerAuth
func (h *InterviewHandler) GetDetails(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	iv, err := h.interviewUC.GetInterview(c.Request.Context(), id, callerID(c))
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Interview retrieved", iv)
}

// Create godoc
// @Summary      Schedule an interview
// @Description  job_id must name one of the caller's jobs; a bare date is local midnight in X-Timezone
// @Tags         interviews
// @Accept       json
// @Produce      json
// @Param        interview   body    domain.InterviewInput  true   "Interview JSON"
// @Param        X-Timezone  header  string                 false  "IANA zone of the caller"
// @Success      201  {object}  response.Response{data=domain.Interview}
// @Failure      400  {object}  response.Response
// @Failure      422  {object}  response.Response
// @Router       /interviews [post]
// @Security     BearerAuth
func (h *InterviewHandler) Create(c *gin.Context) {
	var input domain.InterviewInput
	if !bindJSON(c, &input) {
		return
	}
	iv, err := h.interviewUC.CreateInterview(c.Request.Context(), callerID(c), input)
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Interview created", iv)
}

// Update godoc
// @Summary      Update an interview
// @Tags         interviews
// @Accept       json
// @Produce      json
// @Param        id         path      string                 true  "Interview ID"
// @Param        interview  body      domain.InterviewInput  true  "Interview JSON"
// @Success      200  {object}  response.Response{data=domain.Interview}
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Failure      422  {object}  response.Response
// @Router       /interviews/{id} [put]
// @Security     BearerAuth
func (h *InterviewHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var input domain.InterviewInput
	if !bindJSON(c, &input) {
		return
	}
	iv, err := h.interviewUC.UpdateInterview(c.Request.Context(), id, callerID(c), input)
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Interview updated", iv)
}

// Delete godoc
// @Summary      Delete an interview
// @Tags         interviews
// @Param        id   path      string  true  "Interview ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /interviews/{id} [delete]
// @Security     BearerAuth
func (h *InterviewHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.interviewUC.DeleteInterview(c.Request.Context(), id, callerID(c)); err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Interview deleted", nil)
}
