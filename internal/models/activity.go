package models

import (
	"time"

	"github.com/lib/pq"
)

// ActivityType categorises cohort activities.
type ActivityType string

const (
	ActivityKumpul     ActivityType = "kumpul"
	ActivitySuporteran ActivityType = "suporteran"
	ActivityLainnya    ActivityType = "lainnya"
)

// DateRange selects upcoming or past items relative to now.
type DateRange string

const (
	DateRangeUpcoming DateRange = "upcoming"
	DateRangePast     DateRange = "past"
)

// Activity represents a cohort activity with open registration.
type Activity struct {
	ID              string         `db:"id" json:"id"`
	Title           string         `db:"title" json:"title"`
	Description     string         `db:"description" json:"description"`
	Date            time.Time      `db:"date" json:"date"`
	Location        string         `db:"location" json:"location"`
	Organizer       string         `db:"organizer" json:"organizer"`
	Participants    pq.StringArray `db:"participants" json:"participants"`
	MaxParticipants *int           `db:"max_participants" json:"maxParticipants,omitempty"`
	Type            ActivityType   `db:"type" json:"type"`
	CreatedBy       string         `db:"created_by" json:"createdBy"`
	CreatedAt       time.Time      `db:"created_at" json:"createdAt"`
	UpdatedAt       time.Time      `db:"updated_at" json:"updatedAt"`
}

// ActivityFilter captures the list query parameters.
type ActivityFilter struct {
	Type string
	Date DateRange
}
