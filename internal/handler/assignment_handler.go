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

// AssignmentHandler manages assignment endpoints.
type AssignmentHandler struct {
	service *service.AssignmentService
}

// NewAssignmentHandler constructs handler.
func NewAssignmentHandler(svc *service.AssignmentService) *AssignmentHandler {
	return &AssignmentHandler{service: svc}
}

func assignmentFilterFromQuery(c *gin.Context) models.AssignmentFilter {
	filter := models.AssignmentFilter{ClassName: c.Query("class")}
	switch c.Query("status") {
	case "pending":
		completed := false
		filter.Completed = &completed
	case "completed":
		completed := true
		filter.Completed = &completed
	}
	return filter
}

// List godoc
// @Summary List assignments
// @Tags Assignments
// @Produce json
// @Param class query string false "Filter by class section"
// @Param status query string false "pending or completed"
// @Success 200 {array} models.Assignment
// @Router /assignments [get]
func (h *AssignmentHandler) List(c *gin.Context) {
	items, err := h.service.List(c.Request.Context(), assignmentFilterFromQuery(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, items)
}

// Get godoc
// @Summary Get one assignment
// @Tags Assignments
// @Produce json
// @Param id path string true "Assignment ID"
// @Success 200 {object} models.Assignment
// @Failure 404 {object} map[string]string
// @Router /assignments/{id} [get]
func (h *AssignmentHandler) Get(c *gin.Context) {
	item, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, item)
}

// Create godoc
// @Summary Create an assignment
// @Tags Assignments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.AssignmentRequest true "Assignment payload"
// @Success 201 {object} models.Assignment
// @Failure 400 {object} map[string]string
// @Router /assignments [post]
func (h *AssignmentHandler) Create(c *gin.Context) {
	var req dto.AssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid assignment payload"))
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
// @Summary Update an assignment
// @Tags Assignments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Assignment ID"
// @Param payload body dto.AssignmentRequest true "Assignment payload"
// @Success 200 {object} models.Assignment
// @Failure 404 {object} map[string]string
// @Router /assignments/{id} [put]
func (h *AssignmentHandler) Update(c *gin.Context) {
	var req dto.AssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid assignment payload"))
		return
	}

	item, err := h.service.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, item)
}

// Complete godoc
// @Summary Toggle completion
// @Tags Assignments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Assignment ID"
// @Param payload body dto.CompleteRequest true "Completion flag"
// @Success 200 {object} models.Assignment
// @Failure 404 {object} map[string]string
// @Router /assignments/{id}/complete [patch]
func (h *AssignmentHandler) Complete(c *gin.Context) {
	var req dto.CompleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid completion payload"))
		return
	}

	item, err := h.service.SetCompleted(c.Request.Context(), c.Param("id"), req.Completed)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, item)
}

// Delete godoc
// @Summary Delete an assignment
// @Tags Assignments
// @Produce json
// @Security BearerAuth
// @Param id path string true "Assignment ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /assignments/{id} [delete]
func (h *AssignmentHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, http.StatusOK, "Assignment deleted")
}

// Export godoc
// @Summary Export assignments as CSV
// @Tags Assignments
// @Produce text/csv
// @Security BearerAuth
// @Param class query string false "Filter by class section"
// @Success 200 {file} binary
// @Router /assignments/export [get]
func (h *AssignmentHandler) Export(c *gin.Context) {
	payload, err := h.service.ExportCSV(c.Request.Context(), assignmentFilterFromQuery(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="assignments.csv"`)
	c.Data(http.StatusOK, "text/csv", payload)
}
