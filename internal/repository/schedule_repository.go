package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/zein-dev/kelasku-api/internal/models"
)

// ScheduleRepository provides persistence for schedule items.
type ScheduleRepository struct {
	db *sqlx.DB
}

// NewScheduleRepository creates the repository.
func NewScheduleRepository(db *sqlx.DB) *ScheduleRepository {
	return &ScheduleRepository{db: db}
}

const scheduleColumns = `id, class_name, course, day, start_time, end_time, room, lecturer, notes, created_by, created_at, updated_at`

// List returns schedule items, optionally scoped to a class, ordered by day
// of week then start time so the week view renders in order.
func (r *ScheduleRepository) List(ctx context.Context, filter models.ScheduleFilter) ([]models.Schedule, error) {
	query := fmt.Sprintf(`SELECT %s FROM schedules`, scheduleColumns)
	args := []interface{}{}
	if filter.ClassName != "" {
		query += ` WHERE class_name = $1`
		args = append(args, filter.ClassName)
	}
	query += ` ORDER BY array_position(ARRAY['Monday','Tuesday','Wednesday','Thursday','Friday','Saturday','Sunday'], day), start_time`

	var items []models.Schedule
	if err := r.db.SelectContext(ctx, &items, query, args...); err != nil {
		return nil, fmt.Errorf("list schedules: %w", err)
	}
	return items, nil
}

// GetByID returns a schedule item by identifier.
func (r *ScheduleRepository) GetByID(ctx context.Context, id string) (*models.Schedule, error) {
	query := fmt.Sprintf(`SELECT %s FROM schedules WHERE id = $1`, scheduleColumns)
	var item models.Schedule
	if err := r.db.GetContext(ctx, &item, query, id); err != nil {
		return nil, err
	}
	return &item, nil
}

// Create inserts a new schedule item.
func (r *ScheduleRepository) Create(ctx context.Context, item *models.Schedule) error {
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if item.CreatedAt.IsZero() {
		item.CreatedAt = now
	}
	item.UpdatedAt = now
	const query = `INSERT INTO schedules (id, class_name, course, day, start_time, end_time, room, lecturer, notes, created_by, created_at, updated_at)
VALUES (:id, :class_name, :course, :day, :start_time, :end_time, :room, :lecturer, :notes, :created_by, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, item); err != nil {
		return fmt.Errorf("create schedule: %w", err)
	}
	return nil
}

// Update modifies an existing schedule item.
func (r *ScheduleRepository) Update(ctx context.Context, item *models.Schedule) error {
	item.UpdatedAt = time.Now().UTC()
	const query = `UPDATE schedules SET class_name = :class_name, course = :course, day = :day, start_time = :start_time,
end_time = :end_time, room = :room, lecturer = :lecturer, notes = :notes, updated_at = :updated_at
WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, item); err != nil {
		return fmt.Errorf("update schedule: %w", err)
	}
	return nil
}

// Delete removes a schedule item. Returns sql.ErrNoRows semantics via count.
func (r *ScheduleRepository) Delete(ctx context.Context, id string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM schedules WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete schedule: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete schedule rows affected: %w", err)
	}
	return affected > 0, nil
}
