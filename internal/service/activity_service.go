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

type activityRepository interface {
	List(ctx context.Context, filter models.ActivityFilter) ([]models.Activity, error)
	GetByID(ctx context.Context, id string) (*models.Activity, error)
	Create(ctx context.Context, item *models.Activity) error
	Update(ctx context.Context, item *models.Activity) error
	Delete(ctx context.Context, id string) (bool, error)
	Register(ctx context.Context, id, userID string) (*models.Activity, error)
}

// ActivityService orchestrates activity CRUD and registration.
type ActivityService struct {
	repo      activityRepository
	cache     *CacheService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewActivityService constructs an ActivityService.
func NewActivityService(repo activityRepository, cache *CacheService, validate *validator.Validate, logger *zap.Logger) *ActivityService {
	if validate == nil {
		validate = NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ActivityService{repo: repo, cache: cache, validator: validate, logger: logger}
}

func activityCacheKey(filter models.ActivityFilter) string {
	return fmt.Sprintf("activities:type=%s:date=%s", filter.Type, filter.Date)
}

// List returns activities date ascending, cached per filter combination.
func (s *ActivityService) List(ctx context.Context, filter models.ActivityFilter) ([]models.Activity, error) {
	key := activityCacheKey(filter)
	var cached []models.Activity
	if hit, _ := s.cache.Get(ctx, key, &cached); hit {
		return cached, nil
	}

	items, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list activities")
	}
	if items == nil {
		items = []models.Activity{}
	}

	if err := s.cache.Set(ctx, key, items, 0); err != nil {
		s.logger.Warn("failed to cache activities", zap.Error(err))
	}
	return items, nil
}

// Get returns one activity.
func (s *ActivityService) Get(ctx context.Context, id string) (*models.Activity, error) {
	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "Activity not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load activity")
	}
	return item, nil
}

// Create validates and stores a new activity.
func (s *ActivityService) Create(ctx context.Context, req dto.ActivityRequest, createdBy string) (*models.Activity, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid activity payload")
	}

	item := req.ToActivity(createdBy)
	if err := s.repo.Create(ctx, item); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create activity")
	}
	s.invalidate(ctx)
	return item, nil
}

// Update validates and overwrites an existing activity.
func (s *ActivityService) Update(ctx context.Context, id string, req dto.ActivityRequest) (*models.Activity, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid activity payload")
	}

	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "Activity not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load activity")
	}

	req.Apply(item)
	if err := s.repo.Update(ctx, item); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update activity")
	}
	s.invalidate(ctx)
	return item, nil
}

// Delete removes an activity.
func (s *ActivityService) Delete(ctx context.Context, id string) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete activity")
	}
	if !deleted {
		return appErrors.Clone(appErrors.ErrNotFound, "Activity not found")
	}
	s.invalidate(ctx)
	return nil
}

// Register adds the user to the activity's participants. The repository runs
// the membership and capacity guards inside one conditional update, so two
// concurrent calls cannot both take the last slot; a rejected update is
// re-read here only to pick the right error.
func (s *ActivityService) Register(ctx context.Context, id, userID string) (*models.Activity, error) {
	if userID == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "userId is required")
	}

	item, err := s.repo.Register(ctx, id, userID)
	if err == nil {
		s.invalidate(ctx)
		return item, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to register for activity")
	}

	current, getErr := s.repo.GetByID(ctx, id)
	if getErr != nil {
		if errors.Is(getErr, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "Activity not found")
		}
		return nil, appErrors.Wrap(getErr, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load activity")
	}
	for _, participant := range current.Participants {
		if participant == userID {
			return nil, appErrors.ErrAlreadyRegistered
		}
	}
	return nil, appErrors.ErrActivityFull
}

func (s *ActivityService) invalidate(ctx context.Context) {
	if err := s.cache.Invalidate(ctx, "activities:*"); err != nil {
		s.logger.Warn("failed to invalidate activity cache", zap.Error(err))
	}
}
