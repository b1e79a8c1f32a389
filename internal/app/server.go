// File: internal/app/server.go
package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"roadsuite_backend/internal/auth"
	"roadsuite_backend/internal/car"
	"roadsuite_backend/internal/category"
	"roadsuite_backend/internal/common"
	"roadsuite_backend/internal/config"
	"roadsuite_backend/internal/dealer"
	"roadsuite_backend/internal/jobs"
	"roadsuite_backend/internal/middleware"
	"roadsuite_backend/internal/moderation"
	"roadsuite_backend/internal/notification"

	"roadsuite_backend/internal/platform/database"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Server struct holds the dependencies for the HTTP server.
type Server struct {
	httpServer *http.Server
	router     *gin.Engine
	cfg        *config.Config
	logger     *zap.Logger
	db         *gorm.DB

	// Jobs
	purgeJob *jobs.PurgeJob
}

// NewServer creates a new instance of our application server.
func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	tokenService auth.TokenService,
	authHandler *auth.Handler,
	dealerHandler *dealer.Handler,
	categoryHandler *category.Handler,
	carHandler *car.Handler,
	moderationHandler *moderation.Handler,
	notificationHandler *notification.Handler,
	purgeJob *jobs.PurgeJob,
	db *gorm.DB,
) (*Server, error) {
	gin.SetMode(cfg.GinMode)
	router := gin.New()

	// --- Global Middleware ---
	router.Use(middleware.ZapLogger(logger, cfg))
	router.Use(middleware.ErrorHandler(logger))
	router.Use(gin.Recovery())

	// CORS Middleware
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{"*"}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.RequestIDHeader}
	corsConfig.ExposeHeaders = []string{"Content-Length", middleware.RequestIDHeader}
	router.Use(cors.New(corsConfig))

	// Create middleware instances
	authMW := middleware.AuthMiddleware(tokenService, logger.Named("AuthMiddleware"))
	optionalAuthMW := middleware.OptionalAuthMiddleware(tokenService, logger.Named("AuthMiddleware"))
	moderatorRoleMW := middleware.RequireRolesMiddleware(common.RoleModerator, common.RoleAdmin)
	adminRoleMW := middleware.RequireRolesMiddleware(common.RoleAdmin)

	// --- Setup Routes ---
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "UP", "message": "RoadSuite API is healthy!"})
	})

	v1 := router.Group("/api/v1")

	authHandler.RegisterRoutes(v1, authMW)
	dealerHandler.RegisterRoutes(v1, authMW, adminRoleMW)
	categoryHandler.RegisterRoutes(v1, authMW, moderatorRoleMW)
	carHandler.RegisterRoutes(v1, authMW, optionalAuthMW)
	moderationHandler.RegisterRoutes(v1, authMW, moderatorRoleMW)
	notificationHandler.RegisterRoutes(v1, authMW)

	addr := fmt.Sprintf("%s:%s", cfg.ServerHost, cfg.ServerPort)
	httpServer := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	return &Server{
		httpServer: httpServer,
		router:     router,
		cfg:        cfg,
		logger:     logger,
		db:         db,
		purgeJob:   purgeJob,
	}, nil
}

func (s *Server) Start() error {
	if err := database.AutoMigrate(s.db); err != nil {
		s.logger.Error("Database migration failed", zap.Error(err))
		return err
	}

	if s.purgeJob != nil {
		if err := s.purgeJob.SetupAndStart(); err != nil {
			s.logger.Error("Failed to setup and start purge job", zap.Error(err))
		}
	}

	s.logger.Info("HTTP Server starting",
		zap.String("address", s.httpServer.Addr),
		zap.String("gin_mode", s.cfg.GinMode),
	)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		s.logger.Error("Failed to start HTTP server", zap.Error(err))
		return err
	}
	s.logger.Info("HTTP Server stopped gracefully or an error occurred")
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Attempting graceful server shutdown...")
	if s.purgeJob != nil {
		s.purgeJob.Stop()
	}
	return s.httpServer.Shutdown(ctx)
}
