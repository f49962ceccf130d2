package dto

// RegisterAdminRequest carries the JSON body of POST /api/admins/register.
// Role defaults to "admin" when absent.
type RegisterAdminRequest struct {
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required"`
	Role      string `json:"role"`
}

// RegisteredAdminData echoes the created admin back to the client.
type RegisteredAdminData struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Role      string `json:"role"`
}

// RegisterAdminResponse is the success shape of POST /api/admins/register.
type RegisterAdminResponse struct {
	Success bool                `json:"success"`
	Message string              `json:"message"`
	AdminID int64               `json:"adminId"`
	Data    RegisteredAdminData `json:"data"`
}
