package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ironsheep/usv-vision/internal/config"
	"github.com/ironsheep/usv-vision/internal/detection"
	"github.com/ironsheep/usv-vision/internal/logging"
	"github.com/ironsheep/usv-vision/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Handle --version and -v flags
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("usv-vision %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			fmt.Println("usv-vision - HTTP command API for unmanned surface vessel image analysis")
			fmt.Println()
			fmt.Println("Usage: usv-vision [options]")
			fmt.Println()
			fmt.Println("Options:")
			fmt.Println("  --version, -v    Print version information")
			fmt.Println("  --help, -h       Print this help message")
			fmt.Println()
			fmt.Println("Environment variables (also read from .env):")
			fmt.Println("  HOST=127.0.0.1            Listen host")
			fmt.Println("  PORT=8000                 Listen port")
			fmt.Println("  GIN_MODE=release          gin mode (debug, release, test)")
			fmt.Println("  USV_LOG_LEVEL=info        debug, info, warn, error")
			fmt.Println("  LOG_FORMAT=json           json or console")
			fmt.Println("  THERMAL_MODEL_SEED=1      Weight seed for the thermal network")
			fmt.Println("  THERMAL_INPUT_SIZE=28     Thermal network input side")
			fmt.Println("  READ_TIMEOUT=10s, WRITE_TIMEOUT=30s, SHUTDOWN_TIMEOUT=5s")
			return
		}
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "usv-vision: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = log.Sync() }()
	zap.ReplaceGlobals(log)

	gin.SetMode(cfg.GinMode)

	log.Info("starting usv-vision",
		zap.String("version", Version),
		zap.String("build_time", BuildTime),
		zap.String("git_commit", GitCommit),
		zap.String("addr", cfg.Addr()),
		zap.Int64("thermal_model_seed", cfg.ThermalModelSeed),
		zap.Int("thermal_input_size", cfg.ThermalInputSize))

	counter := detection.NewThermalCounter(detection.ThermalConfig{
		InputSize: cfg.ThermalInputSize,
		Seed:      cfg.ThermalModelSeed,
	}, log.Named("thermal"))
	identifier := detection.NewVisibleIdentifier(log.Named("visible"))

	srv := server.New(counter, identifier,
		server.WithLogger(log.Named("http")),
		server.WithVersion(Version))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := srv.Run(ctx, server.ListenConfig{
		Addr:            cfg.Addr(),
		ReadTimeout:     cfg.ReadTimeout,
		WriteTimeout:    cfg.WriteTimeout,
		ShutdownTimeout: cfg.ShutdownTimeout,
	}); err != nil {
		log.Error("server error", zap.Error(err))
		return err
	}
	log.Info("stopped")
	return nil
}
