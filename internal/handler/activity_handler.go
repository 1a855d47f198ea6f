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

// ActivityHandler manages activity endpoints.
type ActivityHandler struct {
	service *service.ActivityService
}

// NewActivityHandler constructs handler.
func NewActivityHandler(svc *service.ActivityService) *ActivityHandler {
	return &ActivityHandler{service: svc}
}

// List godoc
// @Summary List activities
// @Tags Activities
// @Produce json
// @Param type query string false "kumpul, suporteran or lainnya"
// @Param date query string false "upcoming or past"
// @Success 200 {array} models.Activity
// @Router /activities [get]
func (h *ActivityHandler) List(c *gin.Context) {
	filter := models.ActivityFilter{
		Type: c.Query("type"),
		Date: models.DateRange(c.Query("date")),
	}

	items, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, items)
}

// Get godoc
// @Summary Get one activity
// @Tags Activities
// @Produce json
// @Param id path string true "Activity ID"
// @Success 200 {object} models.Activity
// @Failure 404 {object} map[string]string
// @Router /activities/{id} [get]
func (h *ActivityHandler) Get(c *gin.Context) {
	item, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, item)
}

// Create godoc
// @Summary Create an activity
// @Tags Activities
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.ActivityRequest true "Activity payload"
// @Success 201 {object} models.Activity
// @Failure 400 {object} map[string]string
// @Router /activities [post]
func (h *ActivityHandler) Create(c *gin.Context) {
	var req dto.ActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid activity payload"))
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
// @Summary Update an activity
// @Tags Activities
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Activity ID"
// @Param payload body dto.ActivityRequest true "Activity payload"
// @Success 200 {object} models.Activity
// @Failure 404 {object} map[string]string
// @Router /activities/{id} [put]
func (h *ActivityHandler) Update(c *gin.Context) {
	var req dto.ActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid activity payload"))
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
// @Summary Delete an activity
// @Tags Activities
// @Produce json
// @Security BearerAuth
// @Param id path string true "Activity ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /activities/{id} [delete]
func (h *ActivityHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, http.StatusOK, "Activity deleted")
}

// Register godoc
// @Summary Join an activity
// @Tags Activities
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Activity ID"
// @Param payload body dto.RegisterActivityRequest true "Participant"
// @Success 200 {object} models.Activity
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /activities/{id}/register [post]
func (h *ActivityHandler) Register(c *gin.Context) {
	var req dto.RegisterActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid registration payload"))
		return
	}

	// The client sends its own id; fall back to the token subject when absent.
	if req.UserID == "" {
		if claims := claimsFromContext(c); claims != nil {
			req.UserID = claims.UserID
		}
	}

	item, err := h.service.Register(c.Request.Context(), c.Param("id"), req.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, item)
}
