package app

import (
	"log"

	"campusmarket/internal/config"
	"campusmarket/internal/database"
	"campusmarket/internal/mail"
	"campusmarket/internal/repository"
	"campusmarket/internal/service"
	"campusmarket/internal/storage"
)

func App(cfg *config.Config) (*database.DB, *service.Service) {
	// connection DB
	db, err := database.ConnectDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// connection MinIO
	minioClient, err := storage.NewMinIOClient(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize MinIO: %v", err)
	}

	mailer := mail.NewMailer(cfg)

	// enabling dependencies
	repo := repository.NewRepository(db.DB)

	services := service.NewService(repo, cfg, minioClient, mailer)

	return db, services
}
