package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ironsheep/usv-vision/internal/detection"
)

// Server exposes the analysis tasks over HTTP.
type Server struct {
	engine     *gin.Engine
	counter    detection.Counter
	identifier detection.Identifier
	log        *zap.Logger
	now        func() time.Time
	version    string
}

// Option customises a Server.
type Option func(*Server)

// WithLogger sets the logger. The default discards everything.
func WithLogger(log *zap.Logger) Option {
	return func(s *Server) {
		s.log = log
	}
}

// WithClock replaces the source of response timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Server) {
		s.now = now
	}
}

// WithVersion sets the version reported by /healthz.
func WithVersion(v string) Option {
	return func(s *Server) {
		s.version = v
	}
}

// ListenConfig controls the HTTP listener started by Run.
type ListenConfig struct {
	Addr            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// New creates a server backed by the given task implementations.
func New(counter detection.Counter, identifier detection.Identifier, opts ...Option) *Server {
	s := &Server{
		counter:    counter,
		identifier: identifier,
		log:        zap.NewNop(),
		now:        time.Now,
		version:    "dev",
	}
	for _, opt := range opts {
		opt(s)
	}

	registerJSONFieldNames()

	s.engine = gin.New()
	s.engine.Use(s.requestLogger(), gin.CustomRecovery(s.recoverPanic))
	s.routes()
	return s
}

// Handler returns the HTTP handler serving all routes.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves HTTP on cfg.Addr until ctx is cancelled, then shuts down
// gracefully, waiting at most cfg.ShutdownTimeout for in-flight requests.
func (s *Server) Run(ctx context.Context, cfg ListenConfig) error {
	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      s.engine,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("listening", zap.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("listen on %s: %w", cfg.Addr, err)
		}
		return nil
	case <-ctx.Done():
	}

	s.log.Info("shutting down", zap.Duration("timeout", cfg.ShutdownTimeout))
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// routes registers one POST route per task plus the informational endpoints.
func (s *Server) routes() {
	s.engine.GET("/healthz", s.handleHealth)
	s.engine.GET("/v1/tasks", s.handleTasks)

	for _, def := range GetTaskDefinitions() {
		s.engine.Handle(def.Method, def.Route, s.commandHandler(def))
	}

	s.engine.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "route not found: " + c.Request.URL.Path})
	})
}

// requestLogger logs one line per request once it completes.
func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.log.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()))
	}
}

// recoverPanic is the last-resort handler for panics outside task dispatch.
func (s *Server) recoverPanic(c *gin.Context, recovered any) {
	s.log.Error("panic serving request",
		zap.String("path", c.Request.URL.Path),
		zap.Any("panic", recovered))
	c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "version": s.version})
}

func (s *Server) handleTasks(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"tasks": GetTaskDefinitions()})
}
