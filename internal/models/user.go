package models

import "time"

// UserRole represents the portal roles checked by the permission gate.
type UserRole string

const (
	RoleAdmin    UserRole = "admin"
	RoleClassRep UserRole = "class_rep"
	RoleUser     UserRole = "user"
)

// Class section identifiers. Every cohort-scoped resource carries one.
const (
	ClassA = "A"
	ClassB = "B"
	ClassC = "C"
)

// ValidClassName reports whether the value is a known class section.
func ValidClassName(name string) bool {
	switch name {
	case ClassA, ClassB, ClassC:
		return true
	}
	return false
}

// User represents an application user stored in the users table.
type User struct {
	ID           string    `db:"id" json:"id"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	Name         string    `db:"name" json:"name"`
	ClassName    string    `db:"class_name" json:"className"`
	Role         UserRole  `db:"role" json:"role"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt    time.Time `db:"updated_at" json:"updatedAt"`
}

// UserRef is the populated form of a stored user id: the display identity
// resolved at read time.
type UserRef struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	ClassName string `json:"className"`
}

// PosterRef is the populated identity attached to external info items.
type PosterRef struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}
