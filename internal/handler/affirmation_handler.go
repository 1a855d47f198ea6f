package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/zein-dev/kelasku-api/internal/service"
	"github.com/zein-dev/kelasku-api/pkg/response"
)

// AffirmationHandler serves the home page affirmation.
type AffirmationHandler struct {
	service *service.AffirmationService
}

// NewAffirmationHandler constructs handler.
func NewAffirmationHandler(svc *service.AffirmationService) *AffirmationHandler {
	return &AffirmationHandler{service: svc}
}

// Daily godoc
// @Summary Daily affirmation
// @Tags Affirmations
// @Produce json
// @Success 200 {object} map[string]string
// @Router /affirmations/daily [get]
func (h *AffirmationHandler) Daily(c *gin.Context) {
	response.JSON(c, http.StatusOK, gin.H{"affirmation": h.service.Daily()})
}
