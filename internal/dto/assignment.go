package dto

import (
	"time"

	"github.com/lib/pq"

	"github.com/zein-dev/kelasku-api/internal/models"
)

// AssignmentRequest defines the create/update payload.
type AssignmentRequest struct {
	Title       string    `json:"title" validate:"required"`
	Description string    `json:"description" validate:"required"`
	ClassName   string    `json:"className" validate:"required,class_name"`
	DueDate     time.Time `json:"dueDate" validate:"required"`
	Priority    string    `json:"priority" validate:"required,oneof=low medium high"`
	Attachments []string  `json:"attachments"`
}

// CompleteRequest carries the completion flag for the toggle endpoint.
type CompleteRequest struct {
	Completed bool `json:"completed"`
}

// ToAssignment builds a new model from the payload.
func (r AssignmentRequest) ToAssignment(createdBy string) *models.Assignment {
	return &models.Assignment{
		Title:       r.Title,
		Description: r.Description,
		ClassName:   r.ClassName,
		DueDate:     r.DueDate,
		Priority:    models.AssignmentPriority(r.Priority),
		Attachments: pq.StringArray(r.Attachments),
		CreatedBy:   createdBy,
	}
}

// Apply overwrites the mutable fields of an existing assignment. The
// completion flag is only ever changed through the toggle endpoint.
func (r AssignmentRequest) Apply(item *models.Assignment) {
	item.Title = r.Title
	item.Description = r.Description
	item.ClassName = r.ClassName
	item.DueDate = r.DueDate
	item.Priority = models.AssignmentPriority(r.Priority)
	if r.Attachments != nil {
		item.Attachments = pq.StringArray(r.Attachments)
	}
}
