package main

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"github.com/spf13/afero"

	"github.com/nimbushr/hrms/config"
	"github.com/nimbushr/hrms/internal/api/handlers"
	"github.com/nimbushr/hrms/internal/api/middleware"
	"github.com/nimbushr/hrms/internal/api/routes"
	"github.com/nimbushr/hrms/internal/files"
	"github.com/nimbushr/hrms/internal/logger"
	mongorepo "github.com/nimbushr/hrms/internal/repositories/mongo"
	"github.com/nimbushr/hrms/internal/services"
)

func main() {
	_ = godotenv.Load()

	log := logger.New()
	ctx := context.Background()

	client, err := config.ConnectMongo(ctx)
	if err != nil {
		log.WithError(err).Fatal("mongodb init error")
	}
	defer func() { _ = client.Disconnect(ctx) }()
	log.Info("mongodb connected")

	db := client.Database(config.MongoDBName())
	if err := config.EnsureIndexes(ctx, db); err != nil {
		log.WithError(err).Fatal("mongodb index error")
	}

	uploadRoot := os.Getenv("UPLOAD_ROOT")
	if uploadRoot == "" {
		uploadRoot = "."
	}
	osFs := afero.NewOsFs()

	store, err := files.NewGridStore(db, osFs, uploadRoot, log)
	if err != nil {
		log.WithError(err).Fatal("blob store init error")
	}

	userRepo := mongorepo.NewUserRepo(db)
	candidateRepo := mongorepo.NewCandidateRepo(db)
	employeeRepo := mongorepo.NewEmployeeRepo(db)
	attendanceRepo := mongorepo.NewAttendanceRepo(db)
	leaveRepo := mongorepo.NewLeaveRepo(db)

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		log.Fatal("JWT_SECRET environment variable is not set")
	}

	authSvc := services.NewAuthService(userRepo, secret)
	candidateSvc := services.NewCandidateService(candidateRepo, employeeRepo, store, log)
	employeeSvc := services.NewEmployeeService(employeeRepo)
	attendanceSvc := services.NewAttendanceService(attendanceRepo, employeeRepo)
	leaveSvc := services.NewLeaveService(leaveRepo, employeeRepo, attendanceRepo, store)

	// Opt-in reconciliation of blobs orphaned by crashes or failed deletes.
	if schedule := os.Getenv("SWEEP_SCHEDULE"); schedule != "" {
		c := cron.New()
		_, err := c.AddFunc(schedule, func() {
			sweepCtx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
			defer cancel()
			if _, err := store.SweepOrphans(sweepCtx, time.Hour); err != nil {
				log.WithError(err).Warn("orphan sweep failed")
			}
		})
		if err != nil {
			log.WithError(err).Fatal("invalid SWEEP_SCHEDULE")
		}
		c.Start()
		defer c.Stop()
		log.WithField("schedule", schedule).Info("orphan sweep scheduled")
	}

	r := gin.New()
	r.Use(middleware.RequestLogger(log), gin.Recovery())

	routes.RegisterRoutes(r, routes.Deps{
		Auth:          handlers.NewAuthHandler(authSvc),
		Candidate:     handlers.NewCandidateHandler(candidateSvc),
		Employee:      handlers.NewEmployeeHandler(employeeSvc),
		Attendance:    handlers.NewAttendanceHandler(attendanceSvc),
		Leave:         handlers.NewLeaveHandler(leaveSvc),
		JWTSecret:     secret,
		LegacyUploads: afero.NewHttpFs(osFs).Dir(filepath.Join(uploadRoot, "uploads")),
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	if err := r.Run(":" + port); err != nil {
		log.WithError(err).Fatal("server error")
	}
}
