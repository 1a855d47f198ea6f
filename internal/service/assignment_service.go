package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/zein-dev/kelasku-api/internal/dto"
	"github.com/zein-dev/kelasku-api/internal/models"
	appErrors "github.com/zein-dev/kelasku-api/pkg/errors"
	"github.com/zein-dev/kelasku-api/pkg/export"
)

type assignmentRepository interface {
	List(ctx context.Context, filter models.AssignmentFilter) ([]models.Assignment, error)
	GetByID(ctx context.Context, id string) (*models.Assignment, error)
	Create(ctx context.Context, item *models.Assignment) error
	Update(ctx context.Context, item *models.Assignment) error
	SetCompleted(ctx context.Context, id string, completed bool) (*models.Assignment, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// AssignmentService orchestrates assignment CRUD, the shared completion
// toggle and the CSV export.
type AssignmentService struct {
	repo      assignmentRepository
	cache     *CacheService
	validator *validator.Validate
	logger    *zap.Logger
	csv       *export.CSVExporter
}

// NewAssignmentService constructs an AssignmentService.
func NewAssignmentService(repo assignmentRepository, cache *CacheService, validate *validator.Validate, logger *zap.Logger) *AssignmentService {
	if validate == nil {
		validate = NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AssignmentService{repo: repo, cache: cache, validator: validate, logger: logger, csv: export.NewCSVExporter()}
}

func assignmentCacheKey(filter models.AssignmentFilter) string {
	status := "all"
	if filter.Completed != nil {
		status = strconv.FormatBool(*filter.Completed)
	}
	return fmt.Sprintf("assignments:class=%s:completed=%s", filter.ClassName, status)
}

// List returns assignments due date ascending, cached per filter combination.
func (s *AssignmentService) List(ctx context.Context, filter models.AssignmentFilter) ([]models.Assignment, error) {
	key := assignmentCacheKey(filter)
	var cached []models.Assignment
	if hit, _ := s.cache.Get(ctx, key, &cached); hit {
		return cached, nil
	}

	items, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list assignments")
	}
	if items == nil {
		items = []models.Assignment{}
	}

	if err := s.cache.Set(ctx, key, items, 0); err != nil {
		s.logger.Warn("failed to cache assignments", zap.Error(err))
	}
	return items, nil
}

// Get returns one assignment.
func (s *AssignmentService) Get(ctx context.Context, id string) (*models.Assignment, error) {
	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "Assignment not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load assignment")
	}
	return item, nil
}

// Create validates and stores a new assignment.
func (s *AssignmentService) Create(ctx context.Context, req dto.AssignmentRequest, createdBy string) (*models.Assignment, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid assignment payload")
	}

	item := req.ToAssignment(createdBy)
	if err := s.repo.Create(ctx, item); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create assignment")
	}
	s.invalidate(ctx)
	return item, nil
}

// Update validates and overwrites an existing assignment.
func (s *AssignmentService) Update(ctx context.Context, id string, req dto.AssignmentRequest) (*models.Assignment, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid assignment payload")
	}

	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "Assignment not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load assignment")
	}

	req.Apply(item)
	if err := s.repo.Update(ctx, item); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update assignment")
	}
	s.invalidate(ctx)
	return item, nil
}

// SetCompleted flips the shared completion flag. Any authenticated caller may
// toggle it; nothing records who did.
func (s *AssignmentService) SetCompleted(ctx context.Context, id string, completed bool) (*models.Assignment, error) {
	item, err := s.repo.SetCompleted(ctx, id, completed)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "Assignment not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update assignment")
	}
	s.invalidate(ctx)
	return item, nil
}

// Delete removes an assignment.
func (s *AssignmentService) Delete(ctx context.Context, id string) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete assignment")
	}
	if !deleted {
		return appErrors.Clone(appErrors.ErrNotFound, "Assignment not found")
	}
	s.invalidate(ctx)
	return nil
}

// ExportCSV renders the filtered assignments as CSV.
func (s *AssignmentService) ExportCSV(ctx context.Context, filter models.AssignmentFilter) ([]byte, error) {
	items, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list assignments")
	}

	dataset := export.Dataset{
		Headers: []string{"Title", "Class", "Due Date", "Priority", "Completed", "Attachments"},
	}
	for _, item := range items {
		dataset.Rows = append(dataset.Rows, map[string]string{
			"Title":       item.Title,
			"Class":       item.ClassName,
			"Due Date":    item.DueDate.UTC().Format("2006-01-02"),
			"Priority":    string(item.Priority),
			"Completed":   strconv.FormatBool(item.Completed),
			"Attachments": strings.Join(item.Attachments, " "),
		})
	}
	return s.csv.Render(dataset)
}

func (s *AssignmentService) invalidate(ctx context.Context) {
	if err := s.cache.Invalidate(ctx, "assignments:*"); err != nil {
		s.logger.Warn("failed to invalidate assignment cache", zap.Error(err))
	}
}
