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

type externalInfoRepository interface {
	List(ctx context.Context, filter models.ExternalInfoFilter) ([]models.ExternalInfo, error)
	GetByID(ctx context.Context, id string) (*models.ExternalInfo, error)
	Create(ctx context.Context, item *models.ExternalInfo) error
	Update(ctx context.Context, item *models.ExternalInfo) error
	Delete(ctx context.Context, id string) (bool, error)
}

// ExternalInfoService orchestrates the external opportunities board.
type ExternalInfoService struct {
	repo      externalInfoRepository
	cache     *CacheService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewExternalInfoService constructs an ExternalInfoService.
func NewExternalInfoService(repo externalInfoRepository, cache *CacheService, validate *validator.Validate, logger *zap.Logger) *ExternalInfoService {
	if validate == nil {
		validate = NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExternalInfoService{repo: repo, cache: cache, validator: validate, logger: logger}
}

func externalInfoCacheKey(filter models.ExternalInfoFilter) string {
	return fmt.Sprintf("external-info:category=%s:date=%s", filter.Category, filter.Date)
}

// List returns postings newest first, cached per filter combination.
func (s *ExternalInfoService) List(ctx context.Context, filter models.ExternalInfoFilter) ([]models.ExternalInfo, error) {
	key := externalInfoCacheKey(filter)
	var cached []models.ExternalInfo
	if hit, _ := s.cache.Get(ctx, key, &cached); hit {
		return cached, nil
	}

	items, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list external info")
	}
	if items == nil {
		items = []models.ExternalInfo{}
	}

	if err := s.cache.Set(ctx, key, items, 0); err != nil {
		s.logger.Warn("failed to cache external info", zap.Error(err))
	}
	return items, nil
}

// Get returns one posting.
func (s *ExternalInfoService) Get(ctx context.Context, id string) (*models.ExternalInfo, error) {
	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "Info not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load external info")
	}
	return item, nil
}

// Create validates and stores a new posting.
func (s *ExternalInfoService) Create(ctx context.Context, req dto.ExternalInfoRequest, postedBy string) (*models.ExternalInfo, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid external info payload")
	}

	item := req.ToExternalInfo(postedBy)
	if err := s.repo.Create(ctx, item); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create external info")
	}
	s.invalidate(ctx)

	// Re-read so the response carries the resolved poster identity.
	created, err := s.repo.GetByID(ctx, item.ID)
	if err != nil {
		return item, nil
	}
	return created, nil
}

// Update validates and overwrites an existing posting.
func (s *ExternalInfoService) Update(ctx context.Context, id string, req dto.ExternalInfoRequest) (*models.ExternalInfo, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid external info payload")
	}

	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "Info not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load external info")
	}

	req.Apply(item)
	if err := s.repo.Update(ctx, item); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update external info")
	}
	s.invalidate(ctx)
	return item, nil
}

// Delete removes a posting.
func (s *ExternalInfoService) Delete(ctx context.Context, id string) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete external info")
	}
	if !deleted {
		return appErrors.Clone(appErrors.ErrNotFound, "Info not found")
	}
	s.invalidate(ctx)
	return nil
}

func (s *ExternalInfoService) invalidate(ctx context.Context) {
	if err := s.cache.Invalidate(ctx, "external-info:*"); err != nil {
		s.logger.Warn("failed to invalidate external info cache", zap.Error(err))
	}
}
