package main

import (
	"fmt"
	"log"
	"time"

	"github.com/luxonlabs/luxon-tms/internal/auth/jwtverify"
	"github.com/luxonlabs/luxon-tms/internal/config"
	"github.com/luxonlabs/luxon-tms/internal/email/noop"
	"github.com/luxonlabs/luxon-tms/internal/email/ses"
	"github.com/luxonlabs/luxon-tms/internal/extract"
	"github.com/luxonlabs/luxon-tms/internal/handler"
	"github.com/luxonlabs/luxon-tms/internal/port"
	"github.com/luxonlabs/luxon-tms/internal/repository/postgres"
	"github.com/luxonlabs/luxon-tms/internal/router"
	"github.com/luxonlabs/luxon-tms/internal/service"
	s3storage "github.com/luxonlabs/luxon-tms/internal/storage/s3"

	// Extractor provider registrations.
	_ "github.com/luxonlabs/luxon-tms/internal/extract/claude"
	_ "github.com/luxonlabs/luxon-tms/internal/extract/gemini"
	_ "github.com/luxonlabs/luxon-tms/internal/extract/openai"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// Initialize repositories
	loadRepo := postgres.NewLoadRepo(db)
	fileRepo := postgres.NewFileMetaRepo(db)

	// Initialize storage
	s3Client, err := s3storage.NewS3Client(&cfg.S3)
	if err != nil {
		return fmt.Errorf("failed to initialize S3 client: %w", err)
	}

	// Initialize the extraction pipeline
	extractor, err := extract.NewExtractor(&cfg.Extractor.ExtractorProviderConfig)
	if err != nil {
		return fmt.Errorf("failed to initialize extractor: %w", err)
	}
	pipeline, err := extract.NewPipeline(
		extractor,
		extract.ContractVersion(cfg.Extractor.Contract),
		time.Duration(cfg.Extractor.PipelineTimeoutSecs)*time.Second,
	)
	if err != nil {
		return fmt.Errorf("failed to initialize pipeline: %w", err)
	}

	// Initialize email sender
	var emailSender port.EmailSender
	if cfg.Email.Provider == "ses" {
		emailSender, err = ses.NewSESSender(cfg.Email.Region, cfg.Email.FromAddress, cfg.Email.FromName)
		if err != nil {
			return fmt.Errorf("failed to initialize SES sender: %w", err)
		}
	} else {
		emailSender = noop.NewNoopSender()
	}

	// Initialize services
	fileSvc := service.NewFileService(fileRepo, s3Client, &cfg.S3)
	loadSvc := service.NewLoadService(loadRepo, fileSvc, pipeline, emailSender)

	// Initialize handlers
	loadH := handler.NewLoadHandler(loadSvc)
	exportH := handler.NewExportHandler(loadSvc)
	fileH := handler.NewFileHandler(fileSvc)
	healthH := handler.NewHealthHandler(db)

	// Setup router
	verifier := jwtverify.NewVerifier(cfg.Auth)
	r := router.Setup(verifier, cfg.CORS.AllowedOrigins, loadH, exportH, fileH, healthH)

	log.Printf("Server starting on %s", cfg.Server.Port)
	if err := r.Run(cfg.Server.Port); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}
