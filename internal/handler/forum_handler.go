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

// ForumHandler manages discussion endpoints.
type ForumHandler struct {
	service *service.ForumService
}

// NewForumHandler constructs handler.
func NewForumHandler(svc *service.ForumService) *ForumHandler {
	return &ForumHandler{service: svc}
}

// List godoc
// @Summary List forum posts
// @Tags Forum
// @Produce json
// @Param class query string false "Filter by class section"
// @Success 200 {array} models.ForumPost
// @Router /forum/posts [get]
func (h *ForumHandler) List(c *gin.Context) {
	filter := models.ForumFilter{ClassName: c.Query("class")}

	posts, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, posts)
}

// Get godoc
// @Summary Get one post with its thread
// @Tags Forum
// @Produce json
// @Param id path string true "Post ID"
// @Success 200 {object} models.ForumPost
// @Failure 404 {object} map[string]string
// @Router /forum/posts/{id} [get]
func (h *ForumHandler) Get(c *gin.Context) {
	post, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, post)
}

// Create godoc
// @Summary Create a post
// @Tags Forum
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.ForumPostRequest true "Post payload"
// @Success 201 {object} models.ForumPost
// @Failure 400 {object} map[string]string
// @Router /forum/posts [post]
func (h *ForumHandler) Create(c *gin.Context) {
	var req dto.ForumPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid forum post payload"))
		return
	}

	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	post, err := h.service.Create(c.Request.Context(), req, claims)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, post)
}

// Update godoc
// @Summary Update a post (author or moderator)
// @Tags Forum
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Post ID"
// @Param payload body dto.ForumPostRequest true "Post payload"
// @Success 200 {object} models.ForumPost
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /forum/posts/{id} [put]
func (h *ForumHandler) Update(c *gin.Context) {
	var req dto.ForumPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid forum post payload"))
		return
	}

	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	post, err := h.service.Update(c.Request.Context(), c.Param("id"), req, claims)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, post)
}

// Delete godoc
// @Summary Delete a post (author or moderator)
// @Tags Forum
// @Produce json
// @Security BearerAuth
// @Param id path string true "Post ID"
// @Success 200 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /forum/posts/{id} [delete]
func (h *ForumHandler) Delete(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	if err := h.service.Delete(c.Request.Context(), c.Param("id"), claims); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, http.StatusOK, "Post deleted")
}

// AddComment godoc
// @Summary Append a comment to a post
// @Tags Forum
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Post ID"
// @Param payload body dto.CommentRequest true "Comment payload"
// @Success 201 {object} models.ForumPost
// @Failure 404 {object} map[string]string
// @Router /forum/posts/{id}/comments [post]
func (h *ForumHandler) AddComment(c *gin.Context) {
	var req dto.CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid comment payload"))
		return
	}

	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	post, err := h.service.AddComment(c.Request.Context(), c.Param("id"), req, claims)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, post)
}

// Upvote godoc
// @Summary Upvote a post
// @Tags Forum
// @Produce json
// @Param id path string true "Post ID"
// @Success 200 {object} models.ForumPost
// @Failure 404 {object} map[string]string
// @Router /forum/posts/{id}/upvote [put]
func (h *ForumHandler) Upvote(c *gin.Context) {
	post, err := h.service.Upvote(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, post)
}
