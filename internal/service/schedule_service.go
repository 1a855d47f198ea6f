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
	"github.com/zein-dev/kelasku-api/pkg/export"
)

type scheduleRepository interface {
	List(ctx context.Context, filter models.ScheduleFilter) ([]models.Schedule, error)
	GetByID(ctx context.Context, id string) (*models.Schedule, error)
	Create(ctx context.Context, item *models.Schedule) error
	Update(ctx context.Context, item *models.Schedule) error
	Delete(ctx context.Context, id string) (bool, error)
}

// ScheduleService orchestrates the weekly schedule CRUD and export flows.
type ScheduleService struct {
	repo      scheduleRepository
	cache     *CacheService
	validator *validator.Validate
	logger    *zap.Logger
	pdf       *export.PDFExporter
}

// NewScheduleService constructs a ScheduleService.
func NewScheduleService(repo scheduleRepository, cache *CacheService, validate *validator.Validate, logger *zap.Logger) *ScheduleService {
	if validate == nil {
		validate = NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ScheduleService{repo: repo, cache: cache, validator: validate, logger: logger, pdf: export.NewPDFExporter()}
}

func scheduleCacheKey(filter models.ScheduleFilter) string {
	return fmt.Sprintf("schedules:class=%s", filter.ClassName)
}

// List returns schedule items for the week view, cached per class filter.
func (s *ScheduleService) List(ctx context.Context, filter models.ScheduleFilter) ([]dto.ScheduleItem, error) {
	key := scheduleCacheKey(filter)
	var cached []dto.ScheduleItem
	if hit, _ := s.cache.Get(ctx, key, &cached); hit {
		return cached, nil
	}

	items, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list schedules")
	}

	out := dto.FromSchedules(items)
	if err := s.cache.Set(ctx, key, out, 0); err != nil {
		s.logger.Warn("failed to cache schedules", zap.Error(err))
	}
	return out, nil
}

// Get returns one schedule item.
func (s *ScheduleService) Get(ctx context.Context, id string) (*dto.ScheduleItem, error) {
	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "Schedule not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load schedule")
	}
	out := dto.FromSchedule(item)
	return &out, nil
}

// Create validates and stores a new schedule item.
func (s *ScheduleService) Create(ctx context.Context, req dto.ScheduleRequest, createdBy string) (*dto.ScheduleItem, error) {
	if req.CourseValue() == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "course is required")
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid schedule payload")
	}

	item := &models.Schedule{
		ClassName: req.ClassName,
		Course:    req.CourseValue(),
		Day:       req.Day,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Room:      req.Room,
		Lecturer:  req.Lecturer,
		Notes:     req.Notes,
		CreatedBy: createdBy,
	}
	if err := s.repo.Create(ctx, item); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create schedule")
	}
	s.invalidate(ctx)

	out := dto.FromSchedule(item)
	return &out, nil
}

// Update validates and overwrites an existing schedule item.
func (s *ScheduleService) Update(ctx context.Context, id string, req dto.ScheduleRequest) (*dto.ScheduleItem, error) {
	if req.CourseValue() == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "course is required")
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid schedule payload")
	}

	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "Schedule not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load schedule")
	}

	item.ClassName = req.ClassName
	item.Course = req.CourseValue()
	item.Day = req.Day
	item.StartTime = req.StartTime
	item.EndTime = req.EndTime
	item.Room = req.Room
	item.Lecturer = req.Lecturer
	item.Notes = req.Notes

	if err := s.repo.Update(ctx, item); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update schedule")
	}
	s.invalidate(ctx)

	out := dto.FromSchedule(item)
	return &out, nil
}

// Delete removes a schedule item.
func (s *ScheduleService) Delete(ctx context.Context, id string) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete schedule")
	}
	if !deleted {
		return appErrors.Clone(appErrors.ErrNotFound, "Schedule not found")
	}
	s.invalidate(ctx)
	return nil
}

// ExportPDF renders the filtered schedule as a weekly table PDF.
func (s *ScheduleService) ExportPDF(ctx context.Context, filter models.ScheduleFilter) ([]byte, error) {
	items, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list schedules")
	}

	dataset := export.Dataset{
		Headers: []string{"Day", "Course", "Start", "End", "Room", "Lecturer", "Class"},
	}
	for _, item := range items {
		dataset.Rows = append(dataset.Rows, map[string]string{
			"Day":      item.Day,
			"Course":   item.Course,
			"Start":    item.StartTime,
			"End":      item.EndTime,
			"Room":     item.Room,
			"Lecturer": item.Lecturer,
			"Class":    item.ClassName,
		})
	}

	title := "Class Schedule"
	if filter.ClassName != "" {
		title = fmt.Sprintf("Class %s Schedule", filter.ClassName)
	}
	return s.pdf.Render(dataset, title)
}

func (s *ScheduleService) invalidate(ctx context.Context) {
	if err := s.cache.Invalidate(ctx, "schedules:*"); err != nil {
		s.logger.Warn("failed to invalidate schedule cache", zap.Error(err))
	}
}
