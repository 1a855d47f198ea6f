package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	appErrors "github.com/zein-dev/kelasku-api/pkg/errors"
)

// The portal's React client predates this service and binds directly to bare
// entity bodies and `{"message": ...}` error bodies, so there is no data/error
// envelope here.

// JSON sends a success response with the payload as the body.
func JSON(c *gin.Context, status int, data interface{}) {
	c.JSON(status, data)
}

// Created responds with HTTP 201 Created.
func Created(c *gin.Context, data interface{}) {
	JSON(c, http.StatusCreated, data)
}

// Message sends a `{message}` acknowledgment, used by delete endpoints.
func Message(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"message": message})
}

// Error maps the error onto its HTTP status with a `{message}` body.
func Error(c *gin.Context, err error) {
	appErr := appErrors.FromError(err)
	c.JSON(appErr.Status, gin.H{"message": appErr.Message})
}
