package routes

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/nimbushr/hrms/internal/api/handlers"
	"github.com/nimbushr/hrms/internal/api/middleware"
)

type Deps struct {
	Auth       *handlers.AuthHandler
	Candidate  *handlers.CandidateHandler
	Employee   *handlers.EmployeeHandler
	Attendance *handlers.AttendanceHandler
	Leave      *handlers.LeaveHandler

	JWTSecret string

	// LegacyUploads serves the pre-blob-store uploads tree; nil disables
	// the /uploads static mount.
	LegacyUploads http.FileSystem
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	r.Use(cors.Default())

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	if d.LegacyUploads != nil {
		r.StaticFS("/uploads", d.LegacyUploads)
	}

	api := r.Group("/api")

	api.POST("/auth/register", d.Auth.Register)
	api.POST("/auth/login", d.Auth.Login)

	// Protected routes (JWT)
	auth := api.Group("/")
	auth.Use(middleware.JWTAuth(d.JWTSecret))

	auth.GET("/auth/verify", d.Auth.Verify)

	auth.GET("/candidates", d.Candidate.List)
	auth.POST("/candidates", d.Candidate.Create)
	auth.POST("/candidates/upload/:id", d.Candidate.UploadResume)
	auth.PUT("/candidates/:id", d.Candidate.Update)
	auth.DELETE("/candidates/:id", d.Candidate.Delete)
	auth.POST("/candidates/:id/promote", d.Candidate.Promote)
	auth.GET("/candidates/:id/resume", d.Candidate.DownloadResume)

	auth.GET("/employees", d.Employee.List)
	auth.PUT("/employees/:id", d.Employee.Update)
	auth.DELETE("/employees/:id", d.Employee.Delete)

	auth.GET("/attendance", d.Attendance.List)
	auth.GET("/attendance/current-employees", d.Attendance.CurrentEmployees)
	auth.POST("/attendance", d.Attendance.Record)

	auth.GET("/leaves", d.Leave.List)
	auth.POST("/leaves", d.Leave.Apply)
	auth.PUT("/leaves/:id/status", d.Leave.SetStatus)
	auth.GET("/leaves/:id/document", d.Leave.DownloadDocument)
}
