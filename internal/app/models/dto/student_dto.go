package dto

import "github.com/bucodel/registration-backend/internal/app/models"

// RegisterStudentRequest carries the multipart form fields of a registration.
// The courses field is deliberately loose: clients send it as a repeated
// field, a JSON array string, or a comma-separated string.
type RegisterStudentRequest struct {
	FirstName  string   `form:"firstName" binding:"required"`
	LastName   string   `form:"lastName" binding:"required"`
	Email      string   `form:"email" binding:"required,email"`
	Phone      string   `form:"phone" binding:"required,phone"`
	Password   string   `form:"password" binding:"required"`
	Age        string   `form:"age"`
	Education  string   `form:"education"`
	Experience string   `form:"experience"`
	Courses    []string `form:"courses"`
	Motivation string   `form:"motivation"`
}

// UpdateStudentRequest carries a partial update; nil fields are untouched.
type UpdateStudentRequest struct {
	FirstName  *string  `form:"firstName"`
	LastName   *string  `form:"lastName"`
	Email      *string  `form:"email"`
	Phone      *string  `form:"phone" binding:"omitempty,phone"`
	Age        *string  `form:"age"`
	Education  *string  `form:"education"`
	Experience *string  `form:"experience"`
	Courses    []string `form:"courses"`
	Motivation *string  `form:"motivation"`
}

// RegisteredStudentData echoes the created registration back to the client.
type RegisteredStudentData struct {
	FirstName         string   `json:"firstName"`
	LastName          string   `json:"lastName"`
	Email             string   `json:"email"`
	Phone             string   `json:"phone"`
	Courses           []string `json:"courses"`
	ProfilePictureURL *string  `json:"profilePictureUrl"`
}

// RegisterStudentResponse is the success shape of POST /api/register.
type RegisterStudentResponse struct {
	Message   string                `json:"message"`
	StudentID int64                 `json:"studentId"`
	Data      RegisteredStudentData `json:"data"`
}

// StudentListResponse is the success shape of GET /api/students.
type StudentListResponse struct {
	Students    []models.Student `json:"students"`
	Total       int64            `json:"total"`
	TotalPages  int              `json:"totalPages"`
	CurrentPage int              `json:"currentPage"`
	Limit       int              `json:"limit"`
}

// UpdateStudentResponse is the success shape of PUT /api/students/:id.
type UpdateStudentResponse struct {
	Message           string  `json:"message"`
	ProfilePictureURL *string `json:"profilePictureUrl,omitempty"`
}
