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

	"clinic-chat/config"
	"clinic-chat/internal/handler"
	"clinic-chat/internal/middleware"
	"clinic-chat/internal/repository"
	"clinic-chat/internal/services"
	"clinic-chat/internal/transport/httpdto"
	"clinic-chat/pkg/logger"

	"github.com/gin-gonic/gin"
)

type Server struct {
	httpServer *http.Server
	engine     *gin.Engine
	config     *config.Config
	logger     *logger.Logger
}

var (
	ReleaseMode = "release"
	DebugMode   = "debug"
	TestMode    = "test"
)

type Handlers struct {
	Users         *handler.UserHandler
	Conversations *handler.ConversationHandler
	Messages      *handler.MessageHandler
	Ratings       *handler.RatingHandler
}

// Options carries the optional collaborators. A nil Auth disables bearer
// auth; a nil Limiter disables message rate limiting.
type Options struct {
	Auth    *services.AuthService
	Limiter middleware.MessageLimiter
	Health  repository.HealthChecker
}

func New(cfg *config.Config, l *logger.Logger) *Server {
	if cfg.AppMode == ReleaseMode {
		gin.SetMode(gin.ReleaseMode)
	} else if cfg.AppMode == TestMode {
		gin.SetMode(gin.TestMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())

	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%s", cfg.AppPort),
			Handler:           engine,
			ReadHeaderTimeout: 10 * time.Second,
		},
		engine: engine,
		config: cfg,
		logger: l,
	}
}

// Handler exposes the router, mainly for httptest.
func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) SetupRoutes(handlers *Handlers, opts Options) error {
	if err := handler.RegisterValidators(); err != nil {
		return fmt.Errorf("register validators: %w", err)
	}

	s.engine.Use(middleware.RequestIDMiddleware())
	s.engine.Use(middleware.LoggingMiddleware(s.logger))
	s.engine.Use(middleware.ErrorHandler(s.logger))

	s.engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, httpdto.NewSuccessResponse(gin.H{"message": "pong"}))
	})

	s.engine.GET("/health", func(c *gin.Context) {
		if opts.Health != nil {
			if err := opts.Health.Ping(c.Request.Context()); err != nil {
				c.JSON(http.StatusServiceUnavailable, httpdto.NewErrorResponse("store unavailable", "UNHEALTHY"))
				return
			}
		}
		c.JSON(http.StatusOK, httpdto.NewSuccessResponse(gin.H{"status": "healthy"}))
	})

	authed := func(h gin.HandlerFunc) []gin.HandlerFunc {
		if opts.Auth == nil {
			return []gin.HandlerFunc{h}
		}
		return []gin.HandlerFunc{middleware.AuthMiddleware(opts.Auth), h}
	}
	limited := func(h gin.HandlerFunc) []gin.HandlerFunc {
		chain := authed(h)
		if opts.Limiter == nil {
			return chain
		}
		last := len(chain) - 1
		return append(chain[:last:last], middleware.MessageRateLimitMiddleware(opts.Limiter, s.logger), h)
	}

	api := s.engine.Group("/api")

	users := api.Group("/users")
	{
		users.POST("", handlers.Users.Create)
		users.GET("", authed(handlers.Users.List)...)
		users.GET("/doctors", authed(handlers.Users.ListDoctors)...)
		users.GET("/:id", authed(handlers.Users.Get)...)
	}

	conversations := api.Group("/conversations")
	{
		conversations.GET("/user/:userId", authed(handlers.Conversations.ListByUser)...)
		conversations.POST("/:conversationId/close", authed(handlers.Conversations.Close)...)
	}

	messages := api.Group("/messages")
	{
		messages.POST("/first", limited(handlers.Messages.SendFirst)...)
		messages.POST("/conversation/:conversationId", limited(handlers.Messages.Send)...)
		messages.GET("/conversation/:conversationId", authed(handlers.Messages.List)...)
	}

	ratings := api.Group("/ratings")
	{
		ratings.POST("", authed(handlers.Ratings.Create)...)
		ratings.GET("/doctor/:doctorId", authed(handlers.Ratings.DoctorSummary)...)
	}

	return nil
}

func (s *Server) Start() error {
	errCh := make(chan error, 1)
	go func() {
		if s.logger != nil {
			s.logger.Infof("Starting the server on port %s...", s.config.AppPort)
		}
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)
	defer signal.Stop(quit)

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-quit:
	}

	if s.logger != nil {
		s.logger.Infof("Quitting signal received.. Shutting down after 5 seconds")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		if s.logger != nil {
			s.logger.Errorf("Error in the graceful shutdown of the server: %s", err)
		}
		return err
	}

	if s.logger != nil {
		s.logger.Infof("Server stopped gracefully")
	}
	return nil
}
