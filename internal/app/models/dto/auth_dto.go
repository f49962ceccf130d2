package dto

import "github.com/bucodel/registration-backend/internal/app/models"

// LoginRequest is shared by student and admin login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// StudentLoginResponse is the success shape of POST /api/students/login.
// The student payload never includes the password hash.
type StudentLoginResponse struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Student *models.Student `json:"student"`
	Token   string          `json:"token"`
}

// AdminLoginResponse is the success shape of POST /api/admins/login.
type AdminLoginResponse struct {
	Success bool          `json:"success"`
	Message string        `json:"message"`
	Admin   *models.Admin `json:"admin"`
	Token   string        `json:"token"`
}
