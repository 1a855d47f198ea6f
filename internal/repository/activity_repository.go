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

// ActivityRepository provides persistence for cohort activities.
type ActivityRepository struct {
	db *sqlx.DB
}

// NewActivityRepository creates the repository.
func NewActivityRepository(db *sqlx.DB) *ActivityRepository {
	return &ActivityRepository{db: db}
}

const activityColumns = `id, title, description, date, location, organizer, participants, max_participants, type, created_by, created_at, updated_at`

// List returns activities filtered by type and date range, date ascending.
func (r *ActivityRepository) List(ctx context.Context, filter models.ActivityFilter) ([]models.Activity, error) {
	var conditions []string
	var args []interface{}

	if filter.Type != "" {
		conditions = append(conditions, fmt.Sprintf("type = $%d", len(args)+1))
		args = append(args, filter.Type)
	}
	switch filter.Date {
	case models.DateRangeUpcoming:
		conditions = append(conditions, "date >= NOW()")
	case models.DateRangePast:
		conditions = append(conditions, "date < NOW()")
	}

	query := fmt.Sprintf(`SELECT %s FROM activities`, activityColumns)
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY date"

	var items []models.Activity
	if err := r.db.SelectContext(ctx, &items, query, args...); err != nil {
		return nil, fmt.Errorf("list activities: %w", err)
	}
	return items, nil
}

// GetByID returns an activity by identifier.
func (r *ActivityRepository) GetByID(ctx context.Context, id string) (*models.Activity, error) {
	query := fmt.Sprintf(`SELECT %s FROM activities WHERE id = $1`, activityColumns)
	var item models.Activity
	if err := r.db.GetContext(ctx, &item, query, id); err != nil {
		return nil, err
	}
	return &item, nil
}

// Create inserts a new activity.
func (r *ActivityRepository) Create(ctx context.Context, item *models.Activity) error {
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if item.CreatedAt.IsZero() {
		item.CreatedAt = now
	}
	item.UpdatedAt = now
	if item.Participants == nil {
		item.Participants = pq.StringArray{}
	}
	const query = `INSERT INTO activities (id, title, description, date, location, organizer, participants, max_participants, type, created_by, created_at, updated_at)
VALUES (:id, :title, :description, :date, :location, :organizer, :participants, :max_participants, :type, :created_by, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, item); err != nil {
		return fmt.Errorf("create activity: %w", err)
	}
	return nil
}

// Update modifies an existing activity. The participants list is only ever
// changed through Register.
func (r *ActivityRepository) Update(ctx context.Context, item *models.Activity) error {
	item.UpdatedAt = time.Now().UTC()
	const query = `UPDATE activities SET title = :title, description = :description, date = :date, location = :location,
organizer = :organizer, max_participants = :max_participants, type = :type, updated_at = :updated_at
WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, item); err != nil {
		return fmt.Errorf("update activity: %w", err)
	}
	return nil
}

// Delete removes an activity.
func (r *ActivityRepository) Delete(ctx context.Context, id string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM activities WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete activity: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete activity rows affected: %w", err)
	}
	return affected > 0, nil
}

// Register appends the user to the participants list in a single conditional
// update: the duplicate and capacity predicates are evaluated inside the same
// statement, so concurrent registrations cannot both slip past a capacity of
// one remaining slot. sql.ErrNoRows means one of the guards rejected the row
// (or the id is unknown); the service re-reads to tell the cases apart.
func (r *ActivityRepository) Register(ctx context.Context, id, userID string) (*models.Activity, error) {
	query := fmt.Sprintf(`UPDATE activities
SET participants = array_append(participants, $2), updated_at = $3
WHERE id = $1
  AND NOT ($2 = ANY(participants))
  AND (max_participants IS NULL OR COALESCE(array_length(participants, 1), 0) < max_participants)
RETURNING %s`, activityColumns)

	var item models.Activity
	if err := r.db.GetContext(ctx, &item, query, id, userID, time.Now().UTC()); err != nil {
		return nil, err
	}
	return &item, nil
}
