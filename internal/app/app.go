package app

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/mementoapp/memento/internal/config"
	"github.com/mementoapp/memento/internal/db"
	"github.com/mementoapp/memento/internal/repository"
	"github.com/mementoapp/memento/internal/service"
	"github.com/mementoapp/memento/internal/storage"
)

type App struct {
	Cfg           *config.Config
	DB            *sqlx.DB
	AuthService   *service.AuthService
	AlbumService  *service.AlbumService
	ImageService  *service.ImageService
	AudioService  *service.AudioService
	UploadService *service.UploadService
	HealthService *service.HealthService
}

func New(ctx context.Context, cfg *config.Config) (*App, error) {
	// Initialize database
	database, err := db.Init(cfg.DBDriver, cfg.DBConnection)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	// Run database migrations
	err = db.RunMigrations(database.DB, cfg.DBDriver)
	if err != nil {
		_ = db.Close(database)
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	// Repositories
	userRepository := repository.NewUserRepository(database)
	albumRepository := repository.NewAlbumRepository(database)
	albumMemberRepository := repository.NewAlbumMemberRepository(database)
	imageRepository := repository.NewImageRepository(database)
	audioRepository := repository.NewAudioRepository(database)
	healthRepository := repository.NewHealthRepository(database)

	// Upload signing
	signer, err := storage.New(ctx, cfg)
	if err != nil {
		_ = db.Close(database)
		return nil, fmt.Errorf("failed to initialize upload signer: %w", err)
	}

	// Services
	authService := service.NewAuthService(userRepository, cfg.JWTSecret, cfg.JWTExpiry)
	userService := service.NewUserService(userRepository)
	albumService := service.NewAlbumService(albumRepository, albumMemberRepository, userService)
	imageService := service.NewImageService(imageRepository, albumRepository, albumMemberRepository)
	audioService := service.NewAudioService(audioRepository, imageRepository, albumRepository, albumMemberRepository)
	uploadService := service.NewUploadService(signer, cfg.UploadRootFolder)
	healthService := service.NewHealthService(healthRepository)

	return &App{
		Cfg:           cfg,
		DB:            database,
		AuthService:   authService,
		AlbumService:  albumService,
		ImageService:  imageService,
		AudioService:  audioService,
		UploadService: uploadService,
		HealthService: healthService,
	}, nil
}

func (a *App) Close() error {
	return db.Close(a.DB)
}
