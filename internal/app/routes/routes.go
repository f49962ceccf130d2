package routes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	appauth "github.com/bucodel/registration-backend/internal/app/auth"
	"github.com/bucodel/registration-backend/internal/app/controllers"
	"github.com/bucodel/registration-backend/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	studentController *controllers.StudentController,
	adminController *controllers.AdminController,
	exportController *controllers.ExportController,
	fileController *controllers.FileController,
	authMiddleware *middleware.AuthMiddleware,
	uploadsDir string,
) {
	environment := gin.Mode()

	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message":     "BUCODel API is running",
			"environment": environment,
			"endpoints": gin.H{
				"studentRegistration": "/api/register",
				"adminLogin":          "/api/admins/login",
				"studentLogin":        "/api/students/login",
				"fileUploads":         "/uploads/",
			},
		})
	})
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":      "OK",
			"timestamp":   time.Now().UTC().Format(time.RFC3339),
			"environment": environment,
		})
	})

	// Stored profile pictures, served with a day of client-side caching.
	uploads := router.Group("/uploads")
	uploads.Use(func(c *gin.Context) {
		c.Header("Cache-Control", "public, max-age=86400")
		c.Next()
	})
	uploads.StaticFS("/", gin.Dir(uploadsDir, false))

	api := router.Group("/api")
	api.Use(authMiddleware.Authenticate())
	{
		// Public registration and login.
		api.POST("/register", studentController.Register)
		api.POST("/upload-test", fileController.UploadTest)

		students := api.Group("/students")
		{
			students.POST("/login", studentController.Login)

			// Export routes sit above /:id so Gin matches them first.
			students.GET("/export/csv",
				authMiddleware.RequireAction(appauth.ActionStudentsExport), exportController.ExportCSV)
			students.GET("/export/pdf",
				authMiddleware.RequireAction(appauth.ActionStudentsExport), exportController.ExportPDF)

			students.GET("",
				authMiddleware.RequireAction(appauth.ActionStudentsList), studentController.List)
			students.GET("/:id",
				authMiddleware.RequireAction(appauth.ActionStudentsRead), studentController.GetByID)
			students.PUT("/:id",
				authMiddleware.RequireAction(appauth.ActionStudentsUpdate), studentController.Update)
			students.DELETE("/:id",
				authMiddleware.RequireAction(appauth.ActionStudentsDelete), studentController.Delete)
		}

		admins := api.Group("/admins")
		{
			admins.POST("/register", adminController.Register)
			admins.POST("/login", adminController.Login)
		}

		files := api.Group("/files")
		files.Use(authMiddleware.RequireAction(appauth.ActionFilesMaintain))
		{
			files.GET("/cleanup", fileController.Cleanup)
			files.GET("/info", fileController.Info)
		}
	}
}
