// Package controllers handles HTTP request handling
package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/bucodel/registration-backend/internal/app/models/dto"
	"github.com/bucodel/registration-backend/internal/app/repositories"
	"github.com/bucodel/registration-backend/internal/app/services"
	"github.com/bucodel/registration-backend/internal/middleware"
	"github.com/bucodel/registration-backend/internal/pkg/helpers"
)

// profilePictureField is the multipart field name the frontend uploads under.
const profilePictureField = "profilePicture"

// StudentController handles registration and student CRUD operations.
type StudentController struct {
	studentService *services.StudentService
	logger         zerolog.Logger
}

// NewStudentController creates a new StudentController
func NewStudentController(studentService *services.StudentService, logger zerolog.Logger) *StudentController {
	return &StudentController{
		studentService: studentService,
		logger:         logger,
	}
}

// Register handles POST /api/register. The body is multipart form data with
// an optional profile picture under the profilePicture field.
func (c *StudentController) Register(ctx *gin.Context) {
	var req dto.RegisterStudentRequest
	if err := ctx.ShouldBind(&req); err != nil {
		c.logger.Warn().Err(err).Msg("Invalid registration payload")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse("Missing or invalid required fields"))
		return
	}

	fileHeader, err := ctx.FormFile(profilePictureField)
	if err != nil {
		if !errors.Is(err, http.ErrMissingFile) {
			c.logger.Warn().Err(err).Msg("Unreadable profile picture upload")
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse("Invalid file upload"))
			return
		}
		fileHeader = nil
	}

	resp, err := c.studentService.Register(ctx.Request.Context(), &req, fileHeader)
	if err != nil {
		c.logger.Error().Err(err).Str("email", req.Email).Msg("Registration failed")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, resp)
}

// Login handles POST /api/students/login.
func (c *StudentController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse("Email and password are required"))
		return
	}

	resp, err := c.studentService.Login(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, resp)
}

// List handles GET /api/students with pagination, search and sorting.
func (c *StudentController) List(ctx *gin.Context) {
	page, limit := helpers.ParsePaginationParams(ctx)

	params := repositories.ListParams{
		Search:    ctx.Query("search"),
		SortBy:    ctx.DefaultQuery("sort", "id"),
		SortOrder: ctx.DefaultQuery("order", "ASC"),
		Page:      page,
		Limit:     limit,
	}

	resp, err := c.studentService.List(ctx.Request.Context(), params)
	if err != nil {
		c.logger.Error().Err(err).Msg("Failed to list students")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, resp)
}

// GetByID handles GET /api/students/:id.
func (c *StudentController) GetByID(ctx *gin.Context) {
	id, ok := studentID(ctx)
	if !ok {
		return
	}

	student, err := c.studentService.GetByID(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, student)
}

// Update handles PUT /api/students/:id. Like registration the body is
// multipart form data; absent fields stay untouched.
func (c *StudentController) Update(ctx *gin.Context) {
	id, ok := studentID(ctx)
	if !ok {
		return
	}

	var req dto.UpdateStudentRequest
	if err := ctx.ShouldBind(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse("Invalid update payload"))
		return
	}

	fileHeader, err := ctx.FormFile(profilePictureField)
	if err != nil {
		if !errors.Is(err, http.ErrMissingFile) {
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse("Invalid file upload"))
			return
		}
		fileHeader = nil
	}

	resp, err := c.studentService.Update(ctx.Request.Context(), id, &req, fileHeader)
	if err != nil {
		c.logger.Error().Err(err).Int64("studentId", id).Msg("Update failed")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, resp)
}

// Delete handles DELETE /api/students/:id.
func (c *StudentController) Delete(ctx *gin.Context) {
	id, ok := studentID(ctx)
	if !ok {
		return
	}

	if err := c.studentService.Delete(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "Student deleted successfully"})
}

// studentID parses the :id path parameter, answering 400 itself on garbage.
func studentID(ctx *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil || id < 1 {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse("Invalid student ID"))
		return 0, false
	}
	return id, true
}
