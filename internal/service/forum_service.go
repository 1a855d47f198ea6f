package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/zein-dev/kelasku-api/internal/dto"
	"github.com/zein-dev/kelasku-api/internal/models"
	appErrors "github.com/zein-dev/kelasku-api/pkg/errors"
)

type forumRepository interface {
	List(ctx context.Context, filter models.ForumFilter) ([]models.ForumPost, error)
	GetByID(ctx context.Context, id string) (*models.ForumPost, error)
	Create(ctx context.Context, post *models.ForumPost) error
	Update(ctx context.Context, post *models.ForumPost) error
	Delete(ctx context.Context, id string) (bool, error)
	AddComment(ctx context.Context, comment *models.Comment) error
	Upvote(ctx context.Context, id string) (bool, error)
}

// ForumService orchestrates discussion threads. Route middleware has already
// checked authentication; ownership is re-checked here because "owner or
// moderator" depends on the row, not just the role.
type ForumService struct {
	repo      forumRepository
	cache     *CacheService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewForumService constructs a ForumService.
func NewForumService(repo forumRepository, cache *CacheService, validate *validator.Validate, logger *zap.Logger) *ForumService {
	if validate == nil {
		validate = NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ForumService{repo: repo, cache: cache, validator: validate, logger: logger}
}

func forumCacheKey(filter models.ForumFilter) string {
	return fmt.Sprintf("forum:class=%s", filter.ClassName)
}

// List returns posts newest first with threads and authors resolved.
func (s *ForumService) List(ctx context.Context, filter models.ForumFilter) ([]models.ForumPost, error) {
	key := forumCacheKey(filter)
	var cached []models.ForumPost
	if hit, _ := s.cache.Get(ctx, key, &cached); hit {
		return cached, nil
	}

	posts, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list forum posts")
	}
	if posts == nil {
		posts = []models.ForumPost{}
	}

	if err := s.cache.Set(ctx, key, posts, 0); err != nil {
		s.logger.Warn("failed to cache forum posts", zap.Error(err))
	}
	return posts, nil
}

// Get returns one post with its comment thread.
func (s *ForumService) Get(ctx context.Context, id string) (*models.ForumPost, error) {
	post, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "Post not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load forum post")
	}
	return post, nil
}

// Create validates and stores a new post authored by the caller.
func (s *ForumService) Create(ctx context.Context, req dto.ForumPostRequest, claims *models.JWTClaims) (*models.ForumPost, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid forum post payload")
	}

	post := req.ToForumPost(claims.UserID)
	if err := s.repo.Create(ctx, post); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create forum post")
	}
	s.invalidate(ctx)

	// The author identity is known from the token, so skip the re-read.
	post.Author = &models.UserRef{ID: claims.UserID, Name: claims.Name, ClassName: claims.ClassName}
	post.Comments = []models.Comment{}
	return post, nil
}

// Update overwrites a post's content. Only the author or a moderator may do it.
func (s *ForumService) Update(ctx context.Context, id string, req dto.ForumPostRequest, claims *models.JWTClaims) (*models.ForumPost, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid forum post payload")
	}

	post, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !canModerate(claims, post) {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "Not authorized to update this post")
	}

	req.Apply(post)
	if err := s.repo.Update(ctx, post); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update forum post")
	}
	s.invalidate(ctx)
	return post, nil
}

// Delete removes a post and its thread. Only the author or a moderator may do it.
func (s *ForumService) Delete(ctx context.Context, id string, claims *models.JWTClaims) error {
	post, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if !canModerate(claims, post) {
		return appErrors.Clone(appErrors.ErrForbidden, "Not authorized to delete this post")
	}

	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete forum post")
	}
	if !deleted {
		return appErrors.Clone(appErrors.ErrNotFound, "Post not found")
	}
	s.invalidate(ctx)
	return nil
}

// AddComment appends a comment and returns the full post with every author
// resolved.
func (s *ForumService) AddComment(ctx context.Context, postID string, req dto.CommentRequest, claims *models.JWTClaims) (*models.ForumPost, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid comment payload")
	}

	if _, err := s.Get(ctx, postID); err != nil {
		return nil, err
	}

	comment := &models.Comment{PostID: postID, Content: req.Content, AuthorID: claims.UserID}
	if err := s.repo.AddComment(ctx, comment); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to add comment")
	}
	s.invalidate(ctx)
	return s.Get(ctx, postID)
}

// Upvote increments the post's counter and returns the updated post. Repeat
// votes are allowed; no per-user state is recorded.
func (s *ForumService) Upvote(ctx context.Context, id string) (*models.ForumPost, error) {
	ok, err := s.repo.Upvote(ctx, id)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to upvote post")
	}
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "Post not found")
	}
	s.invalidate(ctx)
	return s.Get(ctx, id)
}

// canModerate allows the post's author plus the moderation roles.
func canModerate(claims *models.JWTClaims, post *models.ForumPost) bool {
	if claims == nil {
		return false
	}
	if claims.UserID == post.AuthorID {
		return true
	}
	return claims.Role == models.RoleAdmin || claims.Role == models.RoleClassRep
}

func (s *ForumService) invalidate(ctx context.Context) {
	if err := s.cache.Invalidate(ctx, "forum:*"); err != nil {
		s.logger.Warn("failed to invalidate forum cache", zap.Error(err))
	}
}
