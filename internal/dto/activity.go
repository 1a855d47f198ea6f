package dto

import (
	"time"

	"github.com/zein-dev/kelasku-api/internal/models"
)

// ActivityRequest defines the create/update payload.
type ActivityRequest struct {
	Title           string    `json:"title" validate:"required"`
	Description     string    `json:"description" validate:"required"`
	Date            time.Time `json:"date" validate:"required"`
	Location        string    `json:"location" validate:"required"`
	Organizer       string    `json:"organizer" validate:"required"`
	MaxParticipants *int      `json:"maxParticipants" validate:"omitempty,gte=1"`
	Type            string    `json:"type" validate:"required,oneof=kumpul suporteran lainnya"`
}

// RegisterActivityRequest identifies the user joining an activity.
type RegisterActivityRequest struct {
	UserID string `json:"userId" validate:"required"`
}

// ToActivity builds a new model from the payload.
func (r ActivityRequest) ToActivity(createdBy string) *models.Activity {
	return &models.Activity{
		Title:           r.Title,
		Description:     r.Description,
		Date:            r.Date,
		Location:        r.Location,
		Organizer:       r.Organizer,
		MaxParticipants: r.MaxParticipants,
		Type:            models.ActivityType(r.Type),
		CreatedBy:       createdBy,
	}
}

// Apply overwrites the mutable fields of an existing activity. Participants
// are only ever changed through registration.
func (r ActivityRequest) Apply(item *models.Activity) {
	item.Title = r.Title
	item.Description = r.Description
	item.Date = r.Date
	item.Location = r.Location
	item.Organizer = r.Organizer
	item.MaxParticipants = r.MaxParticipants
	item.Type = models.ActivityType(r.Type)
}
