package models

import "time"

// Week days in the order the schedule view groups them.
var DayOrder = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// ValidDay reports whether the value is a recognised week day.
func ValidDay(day string) bool {
	for _, d := range DayOrder {
		if d == day {
			return true
		}
	}
	return false
}

// Schedule represents a weekly course slot for a class section.
type Schedule struct {
	ID        string    `db:"id" json:"id"`
	ClassName string    `db:"class_name" json:"className"`
	Course    string    `db:"course" json:"course"`
	Day       string    `db:"day" json:"day"`
	StartTime string    `db:"start_time" json:"startTime"`
	EndTime   string    `db:"end_time" json:"endTime"`
	Room      string    `db:"room" json:"room"`
	Lecturer  string    `db:"lecturer" json:"lecturer"`
	Notes     *string   `db:"notes" json:"notes,omitempty"`
	CreatedBy string    `db:"created_by" json:"createdBy"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// ScheduleFilter captures the list query parameters.
type ScheduleFilter struct {
	ClassName string
}
