package app

import (
	"context"
	"errors"
	"fmt"

	"zipbang_backend/internal/auth"
	"zipbang_backend/internal/config"
	"zipbang_backend/internal/handlers"
	"zipbang_backend/internal/logger"
	"zipbang_backend/internal/middleware"
	"zipbang_backend/internal/models"
	"zipbang_backend/internal/repositories"
	"zipbang_backend/internal/routes"
	"zipbang_backend/internal/services"
	"zipbang_backend/internal/validator"
	"zipbang_backend/internal/workers"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func Run() {
	config.LoadConfig()
	cfg := config.AppConfig
	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	gormDB, err := openDatabase(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		logger.Fatal("Failed to get *sql.DB from GORM", "error", err)
	}
	if err = sqlDB.Ping(); err != nil {
		logger.Fatal("Database unavailable", "error", err)
	}
	logger.Info("Database connected", "driver", cfg.Database.Driver)

	if err := migrate(gormDB); err != nil {
		logger.Fatal("Failed to run migrations", "error", err)
	}

	if err := seedFirstAdmin(gormDB, cfg); err != nil {
		logger.Fatal("Failed to seed first admin user", "error", err)
	}

	viewWorker := workers.NewViewWorker(gormDB, repositories.NewListingRepository())
	workerCtx, stopWorker := context.WithCancel(context.Background())
	defer stopWorker()
	viewWorker.Start(workerCtx)

	ginRouter := SetupRouter(gormDB, viewWorker)

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("Server starting", "address", address)
	if err := ginRouter.Run(address); err != nil {
		logger.Fatal("Server startup error", "error", err)
	}
}

func openDatabase(cfg *config.Config) (*gorm.DB, error) {
	switch cfg.Database.Driver {
	case "mysql":
		return gorm.Open(mysql.Open(cfg.Database.DSN), &gorm.Config{})
	case "postgres", "":
		return gorm.Open(postgres.Open(cfg.Database.DSN), &gorm.Config{})
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
	}
}

func migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.PropertyType{},
		&models.TransactionType{},
		&models.RoomOption{},
		&models.BathroomOption{},
		&models.Theme{},
		&models.Listing{},
		&models.AdminUser{},
	)
}

// SetupRouter wires repositories, services, handlers and middleware into
// a ready gin engine. Kept separate from Run for handler tests.
func SetupRouter(gormDB *gorm.DB, viewWorker *workers.ViewWorker) *gin.Engine {
	serviceContainer := initializeServices(viewWorker)
	appHandlers := initializeHandlers(serviceContainer)

	ginRouter := initializeGinRouter(gormDB)
	routes.RegisterRoutes(ginRouter, appHandlers)

	return ginRouter
}

func initializeServices(viewWorker *workers.ViewWorker) *services.ServiceContainer {
	listingRepo := repositories.NewListingRepository()
	lookupRepo := repositories.NewLookupRepository()
	adminRepo := repositories.NewAdminUserRepository()

	return &services.ServiceContainer{
		ListingService: services.NewListingService(listingRepo, lookupRepo, viewWorker),
		AuthService:    services.NewAuthService(adminRepo),
	}
}

func initializeHandlers(container *services.ServiceContainer) *handlers.AppHandlers {
	customValidator := validator.New()
	baseHandler := handlers.NewBaseHandler(customValidator)

	return &handlers.AppHandlers{
		ListingHandler:      handlers.NewListingHandler(baseHandler, container.ListingService),
		AdminListingHandler: handlers.NewAdminListingHandler(baseHandler, container.ListingService),
		AuthHandler:         handlers.NewAuthHandler(baseHandler, container.AuthService),
	}
}

func initializeGinRouter(db *gorm.DB) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.DBMiddleware(db))
	return router
}

func seedFirstAdmin(db *gorm.DB, cfg *config.Config) error {
	adminEmail := cfg.Admin.Email
	adminPassword := cfg.Admin.Password

	if adminEmail == "" || adminPassword == "" {
		logger.Warn("ADMIN_EMAIL or ADMIN_PASSWORD is not set. Skipping admin seeding.")
		return nil
	}

	var adminUser models.AdminUser
	result := db.Where("email = ?", adminEmail).First(&adminUser)
	if result.Error == nil {
		logger.Info("Admin user already exists. Skipping creation.", "email", adminEmail)
		return nil
	}
	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to check for admin user: %w", result.Error)
	}

	logger.Warn("No admin user found. Creating first admin...", "email", adminEmail)

	if err := auth.ValidatePassword(adminPassword); err != nil {
		return fmt.Errorf("refusing to seed admin: %w", err)
	}

	hash, err := auth.HashPassword(adminPassword)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	newAdmin := &models.AdminUser{
		Email:        adminEmail,
		PasswordHash: hash,
		Role:         auth.RoleAdmin,
	}
	if err := db.Create(newAdmin).Error; err != nil {
		return fmt.Errorf("failed to create admin user: %w", err)
	}

	logger.Info("First admin user created", "email", adminEmail)
	return nil
}
