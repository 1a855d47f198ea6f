package models

import "time"

// ExternalInfoCategory classifies external opportunities.
type ExternalInfoCategory string

const (
	CategoryOprec    ExternalInfoCategory = "oprec"
	CategoryLomba    ExternalInfoCategory = "lomba"
	CategorySeminar  ExternalInfoCategory = "seminar"
	CategoryBeasiswa ExternalInfoCategory = "beasiswa"
	CategoryLainnya  ExternalInfoCategory = "lainnya"
)

// ExternalInfo represents an external opportunity posting. PostedBy holds the
// stored user id; Poster carries the identity resolved at read time.
type ExternalInfo struct {
	ID          string               `db:"id" json:"id"`
	Title       string               `db:"title" json:"title"`
	Description string               `db:"description" json:"description"`
	Category    ExternalInfoCategory `db:"category" json:"category"`
	Deadline    *time.Time           `db:"deadline" json:"deadline,omitempty"`
	Organizer   string               `db:"organizer" json:"organizer"`
	Link        string               `db:"link" json:"link"`
	PostedBy    string               `db:"posted_by" json:"-"`
	Poster      *PosterRef           `db:"-" json:"postedBy,omitempty"`
	CreatedAt   time.Time            `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time            `db:"updated_at" json:"updatedAt"`
}

// ExternalInfoFilter captures the list query parameters.
type ExternalInfoFilter struct {
	Category string
	Date     DateRange
}
