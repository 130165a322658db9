package v1

import (
	"net/http"

	"go-jobtracker-backend/internal/delivery/http/response"
	"go-jobtracker-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

type JobHandler struct {
	jobUC domain.JobUsecase
}

func NewJobHandler(protected *gin.RouterGroup, jobUC domain.JobUsecase) {
	handler := &JobHandler{jobUC: jobUC}

	jobs := protected.Group("/jobs")
	{
		jobs.GET("", handler.List)
		jobs.GET("/:id", handler.GetDetails)
		jobs.GET("/:id/interviews", handler.ListInterviews)
		jobs.POST("", handler.Create)
		jobs.PUT("/:id", handler.Update)
		jobs.DELETE("/:id", handler.Delete)
	}
}

// List godoc
// @Summary      List jobs
// @Description  Jobs owned by the caller, most recently applied first
// @Tags         jobs
// @Produce      json
// @Success      200  {object}  response.Response{data=[]domain.Job}
// @Failure      401  {object}  response.Response
// @Router       /jobs [get]
// @Security     BearerAuth
func (h *JobHandler) List(c *gin.Context) {
	jobs, err := h.jobUC.ListJobs(c.Request.Context(), callerID(c))
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Jobs retrieved", jobs)
}

// GetDetails godoc
// @Summary      Get a job
// @Tags         jobs
// @Produce      json
// @Param        id   path      string  true  "Job ID"
// @Success      200  {object}  response.Response{data=domain.Job}
// @Failure      404  {object}  response.Response
// @Router       /jobs/{id} [get]
// @Security     BearerAuth
func (h *JobHandler) GetDetails(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	job, err := h.jobUC.GetJob(c.Request.Context(), id, callerID(c))
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Job retrieved", job)
}

// ListInterviews godoc
// @Summary      List a job's interviews
// @Tags         jobs
// @Produce      json
// @Param        id   path      string  true  "Job ID"
// @Param        X-Timezone  header  string  false  "IANA zone used for date_local"
// @Success      200  {object}  response.Response{data=[]domain.Interview}
// @Failure      404  {object}  response.Response
// @Router       /jobs/{id}/interviews [get]
// @Security     BearerAuth
func (h *JobHandler) ListInterviews(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	interviews, err := h.jobUC.ListJobInterviews(c.Request.Context(), id, callerID(c))
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Interviews retrieved", interviews)
}

// Create godoc
// @Summary      Create a job
// @Description  Status defaults to WISHLIST; a bare applied_at date is read in the caller's zone
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Param        job  body      domain.JobInput  true  "Job JSON"
// @Success      201  {object}  response.Response{data=domain.Job}
// @Failure      400  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Router       /jobs [post]
// @Security     BearerAuth
func (h *JobHandler) Create(c *gin.Context) {
	var input domain.JobInput
	if !bindJSON(c, &input) {
		return
	}
	job, err := h.jobUC.CreateJob(c.Request.Context(), callerID(c), input)
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Job created", job)
}

// Update godoc
// @Summary      Update a job
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Param        id   path      string           true  "Job ID"
// @Param        job  body      domain.JobInput  true  "Job JSON"
// @Success      200  {object}  response.Response{data=domain.Job}
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /jobs/{id} [put]
// @Security     BearerAuth
func (h *JobHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var input domain.JobInput
	if !bindJSON(c, &input) {
		return
	}
	job, err := h.jobUC.UpdateJob(c.Request.Context(), id, callerID(c), input)
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Job updated", job)
}

// Delete godoc
// @Summary      Delete a job and its interviews
// @Tags         jobs
// @Param        id   path      string  true  "Job ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /jobs/{id} [delete]
// @Security     BearerAuth
func (h *JobHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.jobUC.DeleteJob(c.Request.Context(), id, callerID(c)); err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Job deleted", nil)
}
