package v1

import (
	"go-jobtracker-backend/internal/delivery/http/middleware"
	"go-jobtracker-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// pathID returns the :id parameter, rejecting values that are not uuids.
func pathID(c *gin.Context) (string, bool) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		_ = c.Error(apperror.BadRequest("Invalid ID format"))
		return "", false
	}
	return id, true
}

func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		_ = c.Error(apperror.BadRequest("Invalid request body"))
		return false
	}
	return true
}

func callerID(c *gin.Context) string {
	return middleware.CallerID(c)
}
