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

// ScheduleHandler manages schedule endpoints.
type ScheduleHandler struct {
	service *service.ScheduleService
}

// NewScheduleHandler constructs handler.
func NewScheduleHandler(svc *service.ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{service: svc}
}

// List godoc
// @Summary List schedule items
// @Tags Schedule
// @Produce json
// @Param class query string false "Filter by class section"
// @Success 200 {array} dto.ScheduleItem
// @Router /schedule [get]
func (h *ScheduleHandler) List(c *gin.Context) {
	filter := models.ScheduleFilter{ClassName: c.Query("class")}

	items, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, items)
}

// Get godoc
// @Summary Get one schedule item
// @Tags Schedule
// @Produce json
// @Param id path string true "Schedule ID"
// @Success 200 {object} dto.ScheduleItem
// @Failure 404 {object} map[string]string
// @Router /schedule/{id} [get]
func (h *ScheduleHandler) Get(c *gin.Context) {
	item, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, item)
}

// Create godoc
// @Summary Create a schedule item
// @Tags Schedule
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.ScheduleRequest true "Schedule payload"
// @Success 201 {object} dto.ScheduleItem
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /schedule [post]
func (h *ScheduleHandler) Create(c *gin.Context) {
	var req dto.ScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid schedule payload"))
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
// @Summary Update a schedule item
// @Tags Schedule
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Schedule ID"
// @Param payload body dto.ScheduleRequest true "Schedule payload"
// @Success 200 {object} dto.ScheduleItem
// @Failure 404 {object} map[string]string
// @Router /schedule/{id} [put]
func (h *ScheduleHandler) Update(c *gin.Context) {
	var req dto.ScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid schedule payload"))
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
// @Summary Delete a schedule item
// @Tags Schedule
// @Produce json
// @Security BearerAuth
// @Param id path string true "Schedule ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /schedule/{id} [delete]
func (h *ScheduleHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, http.StatusOK, "Schedule deleted")
}

// Export godoc
// @Summary Export the schedule as PDF
// @Tags Schedule
// @Produce application/pdf
// @Security BearerAuth
// @Param class query string false "Filter by class section"
// @Success 200 {file} binary
// @Router /schedule/export [get]
func (h *ScheduleHandler) Export(c *gin.Context) {
	filter := models.ScheduleFilter{ClassName: c.Query("class")}

	payload, err := h.service.ExportPDF(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="schedule.pdf"`)
	c.Data(http.StatusOK, "application/pdf", payload)
}
