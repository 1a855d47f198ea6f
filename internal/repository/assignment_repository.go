package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/zein-dev/kelasku-api/internal/models"
)

// AssignmentRepository provides persistence for assignments.
type AssignmentRepository struct {
	db *sqlx.DB
}

// NewAssignmentRepository creates the repository.
func NewAssignmentRepository(db *sqlx.DB) *AssignmentRepository {
	return &AssignmentRepository{db: db}
}

const assignmentColumns = `id, title, description, class_name, due_date, priority, completed, attachments, created_by, created_at, updated_at`

// List returns assignments filtered by class and completion, due date ascending.
func (r *AssignmentRepository) List(ctx context.Context, filter models.AssignmentFilter) ([]models.Assignment, error) {
	var conditions []string
	var args []interface{}

	if filter.ClassName != "" {
		conditions = append(conditions, fmt.Sprintf("class_name = $%d", len(args)+1))
		args = append(args, filter.ClassName)
	}
	if filter.Completed != nil {
		conditions = append(conditions, fmt.Sprintf("completed = $%d", len(args)+1))
		args = append(args, *filter.Completed)
	}

	query := fmt.Sprintf(`SELECT %s FROM assignments`, assignmentColumns)
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY due_date"

	var items []models.Assignment
	if err := r.db.SelectContext(ctx, &items, query, args...); err != nil {
		return nil, fmt.Errorf("list assignments: %w", err)
	}
	return items, nil
}

// GetByID returns an assignment by identifier.
func (r *AssignmentRepository) GetByID(ctx context.Context, id string) (*models.Assignment, error) {
	query := fmt.Sprintf(`SELECT %s FROM assignments WHERE id = $1`, assignmentColumns)
	var item models.Assignment
	if err := r.db.GetContext(ctx, &item, query, id); err != nil {
		return nil, err
	}
	return &item, nil
}

// Create inserts a new assignment.
func (r *AssignmentRepository) Create(ctx context.Context, item *models.Assignment) error {
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if item.CreatedAt.IsZero() {
		item.CreatedAt = now
	}
	item.UpdatedAt = now
	if item.Attachments == nil {
		item.Attachments = pq.StringArray{}
	}
	const query = `INSERT INTO assignments (id, title, description, class_name, due_date, priority, completed, attachments, created_by, created_at, updated_at)
VALUES (:id, :title, :description, :class_name, :due_date, :priority, :completed, :attachments, :created_by, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, item); err != nil {
		return fmt.Errorf("create assignment: %w", err)
	}
	return nil
}

// Update modifies an existing assignment.
func (r *AssignmentRepository) Update(ctx context.Context, item *models.Assignment) error {
	item.UpdatedAt = time.Now().UTC()
	const query = `UPDATE assignments SET title = :title, description = :description, class_name = :class_name,
due_date = :due_date, priority = :priority, attachments = :attachments, updated_at = :updated_at
WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, item); err != nil {
		return fmt.Errorf("update assignment: %w", err)
	}
	return nil
}

// SetCompleted flips the completion flag and returns the updated row, or
// sql.ErrNoRows when the id is unknown.
func (r *AssignmentRepository) SetCompleted(ctx context.Context, id string, completed bool) (*models.Assignment, error) {
	query := fmt.Sprintf(`UPDATE assignments SET completed = $2, updated_at = $3 WHERE id = $1 RETURNING %s`, assignmentColumns)
	var item models.Assignment
	if err := r.db.GetContext(ctx, &item, query, id, completed, time.Now().UTC()); err != nil {
		return nil, err
	}
	return &item, nil
}

// Delete removes an assignment.
func (r *AssignmentRepository) Delete(ctx context.Context, id string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM assignments WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete assignment: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete assignment rows affected: %w", err)
	}
	return affected > 0, nil
}
