package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"taskboard/internal/auth"
	"taskboard/internal/config"
	"taskboard/internal/database"
	"taskboard/internal/guard"
	"taskboard/internal/handler"
	"taskboard/internal/metrics"
	"taskboard/internal/middleware"
	"taskboard/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const metricsInterval = 30 * time.Second

type Server struct {
	Engine    *gin.Engine
	DB        *gorm.DB
	Config    *config.Config
	logger    *zap.Logger
	collector *metrics.Collector
}

// Init connects to the configured database, creates the schema and builds the server.
func Init(cfg *config.Config, logger *zap.Logger) (*Server, error) {
	db, err := database.New(database.Config{
		Driver:          cfg.DBDriver,
		DSN:             cfg.DSN(),
		MaxOpenConns:    cfg.DBMaxOpenConns,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		ConnMaxLifetime: cfg.DBConnMaxLifetime,
	})
	if err != nil {
		return nil, err
	}
	logger.Info("Connected to database", zap.String("driver", cfg.DBDriver))

	if err := database.AutoMigrate(db); err != nil {
		_ = database.Close(db)
		return nil, err
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return New(db, cfg, logger, registry), nil
}

// New wires repositories, services and handlers onto a gin engine. Metrics are
// registered with registry and exposed on /metrics.
func New(db *gorm.DB, cfg *config.Config, logger *zap.Logger, registry *prometheus.Registry) *Server {
	m := metrics.NewWithRegistry(registry, logger)

	r := gin.New()
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.LoggerMiddleware(logger))
	r.Use(middleware.CORS())
	r.Use(middleware.Metrics(m))

	// Repositories
	userRepo := repository.NewUserRepository(db)
	boardRepo := repository.NewBoardRepository(db)
	listRepo := repository.NewListRepository(db)
	cardRepo := repository.NewCardRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	labelRepo := repository.NewLabelRepository(db)

	// Services
	tokens := auth.NewTokenService(cfg.JWTSecret, cfg.TokenTTL())
	authService := auth.NewService(userRepo, tokens)
	g := guard.New(userRepo, boardRepo, listRepo, cardRepo)

	// Handlers
	userHandler := handler.NewUserHandler(userRepo, cfg.BcryptCost, m)
	authHandler := handler.NewAuthHandler(authService, m)
	boardHandler := handler.NewBoardHandler(boardRepo, g, m)
	listHandler := handler.NewListHandler(listRepo, g)
	cardHandler := handler.NewCardHandler(cardRepo, g, m)
	commentHandler := handler.NewCommentHandler(commentRepo, g)
	labelHandler := handler.NewLabelHandler(labelRepo, g)
	healthHandler := handler.NewHealthHandler(func(ctx context.Context) error {
		return database.Ping(ctx, db)
	}, logger)

	// Operational routes
	r.GET("/health", healthHandler.Health)
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Public routes
	r.POST("/login/", authHandler.Login)

	r.GET("/users", userHandler.List)
	r.GET("/users/:id", userHandler.Get)
	r.POST("/users", userHandler.Create)
	r.PUT("/users/:id", userHandler.Update)
	r.DELETE("/users/:id", userHandler.Delete)

	r.GET("/boards", boardHandler.List)
	r.GET("/boards/:id", boardHandler.Get)
	r.GET("/boards/:id/lists", listHandler.ListByBoard)
	r.GET("/boards/:id/labels", labelHandler.ListByBoard)
	r.GET("/lists/:id", listHandler.Get)
	r.GET("/lists/:id/cards", cardHandler.ListByList)
	r.GET("/cards/:id", cardHandler.Get)
	r.GET("/cards/:id/comments", commentHandler.ListByCard)
	r.GET("/comments/:id", commentHandler.Get)
	r.GET("/labels/:id", labelHandler.Get)

	// Protected routes - require authentication
	authorized := r.Group("/")
	authorized.Use(middleware.JWTAuthMiddleware(authService, logger))
	{
		authorized.GET("/protected", authHandler.Protected)

		authorized.POST("/boards", boardHandler.Create)
		authorized.PUT("/boards/:id", boardHandler.Update)
		authorized.DELETE("/boards/:id", boardHandler.Delete)

		authorized.POST("/boards/:id/lists", listHandler.Create)
		authorized.PUT("/lists/:id", listHandler.Update)
		authorized.DELETE("/lists/:id", listHandler.Delete)

		authorized.POST("/lists/:id/cards", cardHandler.Create)
		authorized.PUT("/cards/:id", cardHandler.Update)
		authorized.DELETE("/cards/:id", cardHandler.Delete)

		authorized.POST("/cards/:id/comments", commentHandler.Create)
		authorized.PUT("/comments/:id", commentHandler.Update)
		authorized.DELETE("/comments/:id", commentHandler.Delete)

		authorized.POST("/boards/:id/labels", labelHandler.Create)
		authorized.PUT("/labels/:id", labelHandler.Update)
		authorized.DELETE("/labels/:id", labelHandler.Delete)
	}

	return &Server{
		Engine:    r,
		DB:        db,
		Config:    cfg,
		logger:    logger,
		collector: metrics.NewCollector(db, m, logger, metricsInterval),
	}
}

// Run serves HTTP until SIGINT or SIGTERM, then drains in-flight requests.
func (s *Server) Run() error {
	srv := &http.Server{
		Addr:              ":" + s.Config.ServerPort,
		Handler:           s.Engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	s.collector.Start()
	defer s.collector.Stop()
	defer func() {
		if err := database.Close(s.DB); err != nil {
			s.logger.Warn("Failed to close database", zap.Error(err))
		}
	}()

	serveErr := make(chan error, 1)
	go func() {
		s.logger.Info("Server running", zap.String("port", s.Config.ServerPort))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err, ok := <-serveErr:
		if ok {
			return fmt.Errorf("failed to listen: %w", err)
		}
		return nil
	case sig := <-quit:
		s.logger.Info("Shutting down server", zap.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	s.logger.Info("Server exited properly")
	return nil
}
