package models

import (
	"time"

	"github.com/lib/pq"
)

// AssignmentPriority orders assignments by urgency.
type AssignmentPriority string

const (
	PriorityLow    AssignmentPriority = "low"
	PriorityMedium AssignmentPriority = "medium"
	PriorityHigh   AssignmentPriority = "high"
)

// Assignment represents a class assignment row.
type Assignment struct {
	ID          string             `db:"id" json:"id"`
	Title       string             `db:"title" json:"title"`
	Description string             `db:"description" json:"description"`
	ClassName   string             `db:"class_name" json:"className"`
	DueDate     time.Time          `db:"due_date" json:"dueDate"`
	Priority    AssignmentPriority `db:"priority" json:"priority"`
	Completed   bool               `db:"completed" json:"completed"`
	Attachments pq.StringArray     `db:"attachments" json:"attachments"`
	CreatedBy   string             `db:"created_by" json:"createdBy"`
	CreatedAt   time.Time          `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time          `db:"updated_at" json:"updatedAt"`
}

// AssignmentFilter captures the list query parameters. Completed is a
// three-state filter: nil means both pending and completed.
type AssignmentFilter struct {
	ClassName string
	Completed *bool
}
