package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/zein-dev/kelasku-api/internal/dto"
	"github.com/zein-dev/kelasku-api/internal/models"
	"github.com/zein-dev/kelasku-api/internal/service"
	appErrors "github.com/zein-dev/kelasku-api/pkg/errors"
	"github.com/zein-dev/kelasku-api/pkg/response"
)

// ExternalInfoHandler manages the external opportunities endpoints.
type ExternalInfoHandler struct {
	service *service.ExternalInfoService
}

// NewExternalInfoHandler constructs handler.
func NewExternalInfoHandler(svc *service.ExternalInfoService) *ExternalInfoHandler {
	return &ExternalInfoHandler{service: svc}
}

// List godoc
// @Summary List external info postings
// @Tags ExternalInfo
// @Produce json
// @Param category query string false "oprec, lomba, seminar, beasiswa or lainnya"
// @Param date query string false "upcoming or past"
// @Success 200 {array} models.ExternalInfo
// @Router /external-info [get]
func (h *ExternalInfoHandler) List(c *gin.Context) {
	filter := models.ExternalInfoFilter{
		Category: c.Query("category"),
		Date:     models.DateRange(c.Query("date")),
	}

	items, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, items)
}

// Get godoc
// @Summary Get one posting
// @Tags ExternalInfo
// @Produce json
// @Param id path string true "Posting ID"
// @Success 200 {object} models.ExternalInfo
// @Failure 404 {object} map[string]string
// @Router /external-info/{id} [get]
func (h *ExternalInfoHandler) Get(c *gin.Context) {
	item, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, item)
}

// Create godoc
// @Summary Create a posting
// @Tags ExternalInfo
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.ExternalInfoRequest true "Posting payload"
// @Success 201 {object} models.ExternalInfo
// @Failure 400 {object} map[string]string
// @Router /external-info [post]
func (h *ExternalInfoHandler) Create(c *gin.Context) {
	var req dto.ExternalInfoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid external info payload"))
		return
	}

	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	item, err := h.service.Create(c.Request.Context(), req, claims.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, item)
}

// Update godoc
// @Summary Update a posting
// @Tags ExternalInfo
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Posting ID"
// @Param payload body dto.ExternalInfoRequest true "Posting payload"
// @Success 200 {object} models.ExternalInfo
// @Failure 404 {object} map[string]string
// @Router /external-info/{id} [put]
func (h *ExternalInfoHandler) Update(c *gin.Context) {
	var req dto.ExternalInfoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid external info payload"))
		return
	}

	item, err := h.service.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, item)
}

// Delete godoc
// @Summary Delete a posting
// @Tags ExternalInfo
// @Produce json
// @Security BearerAuth
// @Param id path string true "Posting ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /external-info/{id} [delete]
func (h *ExternalInfoHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, http.StatusOK, "Info deleted")
}
