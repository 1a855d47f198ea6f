package dto

import (
	"time"

	"github.com/zein-dev/kelasku-api/internal/models"
)

// ExternalInfoRequest defines the create/update payload. The link must be an
// absolute http(s) URL; anything else is rejected with a validation error.
type ExternalInfoRequest struct {
	Title       string     `json:"title" validate:"required"`
	Description string     `json:"description" validate:"required"`
	Category    string     `json:"category" validate:"required,oneof=oprec lomba seminar beasiswa lainnya"`
	Deadline    *time.Time `json:"deadline"`
	Organizer   string     `json:"organizer" validate:"required"`
	Link        string     `json:"link" validate:"required,web_link"`
}

// ToExternalInfo builds a new model from the payload.
func (r ExternalInfoRequest) ToExternalInfo(postedBy string) *models.ExternalInfo {
	return &models.ExternalInfo{
		Title:       r.Title,
		Description: r.Description,
		Category:    models.ExternalInfoCategory(r.Category),
		Deadline:    r.Deadline,
		Organizer:   r.Organizer,
		Link:        r.Link,
		PostedBy:    postedBy,
	}
}

// Apply overwrites the mutable fields of an existing posting.
func (r ExternalInfoRequest) Apply(item *models.ExternalInfo) {
	item.Title = r.Title
	item.Description = r.Description
	item.Category = models.ExternalInfoCategory(r.Category)
	item.Deadline = r.Deadline
	item.Organizer = r.Organizer
	item.Link = r.Link
}
