package dto

import "github.com/zein-dev/kelasku-api/internal/models"

// The schedule page binds to `courseName` while the stored column (and the
// historical API field) is `course`. The mapping is bidirectional and lives
// only here: requests accept either name, responses carry both.

// ScheduleItem is the wire form of a schedule row.
type ScheduleItem struct {
	ID         string  `json:"id"`
	ClassName  string  `json:"className"`
	Course     string  `json:"course"`
	CourseName string  `json:"courseName"`
	Day        string  `json:"day"`
	StartTime  string  `json:"startTime"`
	EndTime    string  `json:"endTime"`
	Room       string  `json:"room"`
	Lecturer   string  `json:"lecturer"`
	Notes      *string `json:"notes,omitempty"`
	CreatedBy  string  `json:"createdBy"`
	CreatedAt  string  `json:"createdAt"`
	UpdatedAt  string  `json:"updatedAt"`
}

// ScheduleRequest defines the create/update payload.
type ScheduleRequest struct {
	ClassName  string  `json:"className" validate:"required,class_name"`
	Course     string  `json:"course"`
	CourseName string  `json:"courseName"`
	Day        string  `json:"day" validate:"required,week_day"`
	StartTime  string  `json:"startTime" validate:"required"`
	EndTime    string  `json:"endTime" validate:"required"`
	Room       string  `json:"room" validate:"required"`
	Lecturer   string  `json:"lecturer" validate:"required"`
	Notes      *string `json:"notes"`
}

// CourseValue resolves the course field regardless of which name the client
// used.
func (r ScheduleRequest) CourseValue() string {
	if r.Course != "" {
		return r.Course
	}
	return r.CourseName
}

// FromSchedule maps a stored schedule row onto the wire form.
func FromSchedule(s *models.Schedule) ScheduleItem {
	return ScheduleItem{
		ID:         s.ID,
		ClassName:  s.ClassName,
		Course:     s.Course,
		CourseName: s.Course,
		Day:        s.Day,
		StartTime:  s.StartTime,
		EndTime:    s.EndTime,
		Room:       s.Room,
		Lecturer:   s.Lecturer,
		Notes:      s.Notes,
		CreatedBy:  s.CreatedBy,
		CreatedAt:  s.CreatedAt.UTC().Format("2006-01-02T15:04:05.000Z"),
		UpdatedAt:  s.UpdatedAt.UTC().Format("2006-01-02T15:04:05.000Z"),
	}
}

// FromSchedules maps a list preserving order.
func FromSchedules(items []models.Schedule) []ScheduleItem {
	out := make([]ScheduleItem, 0, len(items))
	for i := range items {
		out = append(out, FromSchedule(&items[i]))
	}
	return out
}
