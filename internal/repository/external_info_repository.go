package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/zein-dev/kelasku-api/internal/models"
)

// ExternalInfoRepository provides persistence for external info postings.
type ExternalInfoRepository struct {
	db *sqlx.DB
}

// NewExternalInfoRepository creates the repository.
func NewExternalInfoRepository(db *sqlx.DB) *ExternalInfoRepository {
	return &ExternalInfoRepository{db: db}
}

// externalInfoRow carries the posting joined with its poster's identity.
type externalInfoRow struct {
	models.ExternalInfo
	PosterName  *string `db:"poster_name"`
	PosterEmail *string `db:"poster_email"`
}

const externalInfoSelect = `SELECT e.id, e.title, e.description, e.category, e.deadline, e.organizer, e.link, e.posted_by,
e.created_at, e.updated_at, u.name AS poster_name, u.email AS poster_email
FROM external_info e
LEFT JOIN users u ON u.id = e.posted_by`

// List returns postings filtered by category and deadline range, newest first,
// with postedBy populated from the users table.
func (r *ExternalInfoRepository) List(ctx context.Context, filter models.ExternalInfoFilter) ([]models.ExternalInfo, error) {
	var conditions []string
	var args []interface{}

	if filter.Category != "" {
		conditions = append(conditions, fmt.Sprintf("e.category = $%d", len(args)+1))
		args = append(args, filter.Category)
	}
	switch filter.Date {
	case models.DateRangeUpcoming:
		conditions = append(conditions, "e.deadline >= NOW()")
	case models.DateRangePast:
		conditions = append(conditions, "e.deadline < NOW()")
	}

	query := externalInfoSelect
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY e.created_at DESC"

	var rows []externalInfoRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list external info: %w", err)
	}

	items := make([]models.ExternalInfo, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toModel())
	}
	return items, nil
}

// GetByID returns a posting by identifier with the poster populated.
func (r *ExternalInfoRepository) GetByID(ctx context.Context, id string) (*models.ExternalInfo, error) {
	query := externalInfoSelect + " WHERE e.id = $1"
	var row externalInfoRow
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		return nil, err
	}
	item := row.toModel()
	return &item, nil
}

// Create inserts a new posting.
func (r *ExternalInfoRepository) Create(ctx context.Context, item *models.ExternalInfo) error {
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if item.CreatedAt.IsZero() {
		item.CreatedAt = now
	}
	item.UpdatedAt = now
	const query = `INSERT INTO external_info (id, title, description, category, deadline, organizer, link, posted_by, created_at, updated_at)
VALUES (:id, :title, :description, :category, :deadline, :organizer, :link, :posted_by, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, item); err != nil {
		return fmt.Errorf("create external info: %w", err)
	}
	return nil
}

// Update modifies an existing posting.
func (r *ExternalInfoRepository) Update(ctx context.Context, item *models.ExternalInfo) error {
	item.UpdatedAt = time.Now().UTC()
	const query = `UPDATE external_info SET title = :title, description = :description, category = :category,
deadline = :deadline, organizer = :organizer, link = :link, updated_at = :updated_at
WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, item); err != nil {
		return fmt.Errorf("update external info: %w", err)
	}
	return nil
}

// Delete removes a posting.
func (r *ExternalInfoRepository) Delete(ctx context.Context, id string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM external_info WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete external info: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete external info rows affected: %w", err)
	}
	return affected > 0, nil
}

func (row externalInfoRow) toModel() models.ExternalInfo {
	item := row.ExternalInfo
	if row.PosterName != nil {
		email := ""
		if row.PosterEmail != nil {
			email = *row.PosterEmail
		}
		item.Poster = &models.PosterRef{ID: item.PostedBy, Name: *row.PosterName, Email: email}
	}
	return item
}
