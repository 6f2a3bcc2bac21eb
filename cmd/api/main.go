package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	"campusevents/config"
	"campusevents/internal/adapters/auth"
	"campusevents/internal/adapters/email"
	httpdelivery "campusevents/internal/delivery/http"
	"campusevents/internal/delivery/http/controllers"
	"campusevents/internal/delivery/http/middleware"
	"campusevents/internal/repository/postgres"
	"campusevents/internal/services"
)

const (
	serviceTimeout  = 5 * time.Second
	shutdownTimeout = 10 * time.Second
)

// @title			Campus Events API
// @version			1.0
// @description		Multi-tenant college event management API.
// @BasePath		/
// @securityDefinitions.apikey	BearerAuth
// @in				header
// @name			Authorization
func main() {
	logger := config.NewLogger()

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load config", "err", err)
		os.Exit(1)
	}

	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		logger.Error("failed to open database", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		logger.Error("failed to ping database", "err", err)
		os.Exit(1)
	}

	// Repositories
	userRepo := postgres.NewUserRepository(db)
	collegeRepo := postgres.NewCollegeRepository(db)
	departmentRepo := postgres.NewDepartmentRepository(db)
	eventRepo := postgres.NewEventRepository(db)
	registrationStore := postgres.NewRegistrationStore(db)
	inviteRepo := postgres.NewInviteRepository(db)
	templateRepo := postgres.NewEmailTemplateRepository(db)
	campaignRepo := postgres.NewCampaignRepository(db)
	notificationRepo := postgres.NewNotificationRepository(db)

	// Adapters
	hasher := auth.NewBcryptHasher(0)
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTExpiry)
	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:    cfg.EmailProvider,
		FromAddress: cfg.EmailFromAddress,
		FromName:    cfg.EmailFromName,
		SES: email.SESConfig{
			Region:          cfg.SESRegion,
			AccessKeyID:     cfg.SESAccessKeyID,
			SecretAccessKey: cfg.SESSecretAccessKey,
		},
	})
	if err != nil {
		logger.Error("failed to create mailer", "err", err)
		os.Exit(1)
	}
	renderer := email.NewTemplateRenderer()

	// Services
	emailService := services.NewEmailService(mailer, renderer, cfg.FrontendURL, logger)
	notificationService := services.NewNotificationService(notificationRepo, serviceTimeout)
	inviteService := services.NewInviteService(inviteRepo, emailService, logger, serviceTimeout)
	authService := services.NewAuthService(userRepo, inviteService, hasher, jwtManager, emailService, logger, serviceTimeout)
	userService := services.NewUserService(userRepo, serviceTimeout)
	collegeService := services.NewCollegeService(collegeRepo, serviceTimeout)
	departmentService := services.NewDepartmentService(departmentRepo, collegeRepo, serviceTimeout)
	eventService := services.NewEventService(eventRepo, collegeRepo, serviceTimeout)
	registrationService := services.NewRegistrationService(registrationStore, eventRepo, userRepo,
		notificationService, emailService, logger, serviceTimeout)
	templateService := services.NewEmailTemplateService(templateRepo, serviceTimeout)
	campaignService := services.NewCampaignService(campaignRepo, templateRepo, eventRepo,
		registrationStore, userRepo, mailer, logger, serviceTimeout)

	// Controllers
	ctrls := httpdelivery.Controllers{
		Auth:         &controllers.AuthController{Logger: logger, Service: authService},
		User:         &controllers.UserController{Logger: logger, Service: userService},
		College:      &controllers.CollegeController{Logger: logger, Service: collegeService},
		Department:   &controllers.DepartmentController{Logger: logger, Service: departmentService},
		Event:        &controllers.EventController{Logger: logger, Service: eventService},
		Registration: &controllers.RegistrationController{Logger: logger, Service: registrationService},
		Invite:       &controllers.InviteController{Logger: logger, Service: inviteService},
		Template:     &controllers.TemplateController{Logger: logger, Service: templateService},
		Campaign:     &controllers.CampaignController{Logger: logger, Service: campaignService},
		Notification: &controllers.NotificationController{Logger: logger, Service: notificationService},
	}

	mux := httpdelivery.NewRouter(ctrls, jwtManager)
	handler := middleware.CORS(cfg.CORSAllowedOrigins, middleware.LoggingMiddleware(logger, mux))

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("server listening", "port", cfg.Port, "environment", cfg.Environment)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", "err", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	logger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("graceful shutdown failed", "err", err)
	}
}
