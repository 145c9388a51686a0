package main

import (
	"time"

	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"filmorate/internal/config"
	"filmorate/internal/database"
	"filmorate/internal/middleware"
	"filmorate/internal/modules/film"
	"filmorate/internal/modules/reference"
	"filmorate/internal/modules/user"
	"filmorate/internal/pkg/logger"
	"filmorate/internal/repository"
)

func main() {
	cfg := config.Load()
	log, closeLogger := logger.New(cfg.LogLevel, cfg.LogJSON)
	defer closeLogger()

	var (
		filmRepo  repository.FilmRepository
		userRepo  repository.UserRepository
		mpaRepo   repository.MpaRepository
		genreRepo repository.GenreRepository
	)

	switch cfg.Storage {
	case config.StorageMemory:
		films := repository.NewFilmMemoryRepository()
		filmRepo = films
		userRepo = repository.NewUserMemoryRepository(films)
		mpaRepo = repository.NewMpaMemoryRepository(repository.DefaultMpaRatings())
		genreRepo = repository.NewGenreMemoryRepository(repository.DefaultGenres())
		log.Info("using in-memory storage")
	default:
		db, err := database.Connect(cfg.DatabaseURL)
		if err != nil {
			log.Fatal("database connection failed", zap.Error(err))
		}
		if err := database.Migrate(db); err != nil {
			log.Fatal("migration failed", zap.Error(err))
		}
		filmRepo = repository.NewFilmDBRepository(db)
		userRepo = repository.NewUserDBRepository(db)
		mpaRepo = repository.NewMpaDBRepository(db)
		genreRepo = repository.NewGenreDBRepository(db)
		log.Info("using relational storage")
	}

	userService := user.NewService(userRepo, log)
	userHandler := user.NewHandler(userService)

	filmService := film.NewService(filmRepo, mpaRepo, genreRepo, userRepo, log)
	filmHandler := film.NewHandler(filmService)

	referenceHandler := reference.NewHandler(mpaRepo, genreRepo)

	if cfg.AppEnv == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(ginzap.Ginzap(log, time.RFC3339, true))
	r.Use(ginzap.RecoveryWithZap(log, true))
	r.Use(middleware.CORS())

	v1 := r.Group("/api/v1")
	{
		filmHandler.RegisterRoutes(v1)
		userHandler.RegisterRoutes(v1)
		referenceHandler.RegisterRoutes(v1)
	}

	log.Info("listening", zap.String("addr", cfg.Addr))
	if err := r.Run(cfg.Addr); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}
