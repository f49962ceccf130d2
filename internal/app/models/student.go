package models

import (
	"time"
)

// Student defines the student model based on the 'registrations' table
type Student struct {
	ID                int64     `json:"id" db:"id"`
	FirstName         string    `json:"firstName" db:"first_name"`
	LastName          string    `json:"lastName" db:"last_name"`
	Email             string    `json:"email" db:"email"` // globally unique
	Phone             string    `json:"phone" db:"phone"`
	Password          string    `json:"-" db:"password"` // bcrypt hash, excluded from JSON
	Age               *int      `json:"age,omitempty" db:"age"`
	Education         string    `json:"education" db:"education"`
	Experience        string    `json:"experience" db:"experience"`
	Courses           []string  `json:"courses" db:"courses"` // stored as a JSON-encoded TEXT column
	Motivation        string    `json:"motivation" db:"motivation"`
	ProfilePictureURL *string   `json:"profilePictureUrl" db:"profile_picture_url"` // nullable reference into file storage
	CreatedAt         time.Time `json:"created_at" db:"created_at"`
	UpdatedAt         time.Time `json:"updated_at" db:"updated_at"`
}

// FullName returns the student's display name
func (s *Student) FullName() string {
	return s.FirstName + " " + s.LastName
}
