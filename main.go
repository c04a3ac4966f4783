// Command paperchat serves the paper catalogue and conversation backend.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/hanjelito/hackatonNasa2025/api"
	"github.com/hanjelito/hackatonNasa2025/chat"
	"github.com/hanjelito/hackatonNasa2025/completion"
	"github.com/hanjelito/hackatonNasa2025/config"
	"github.com/hanjelito/hackatonNasa2025/papers"
	"github.com/hanjelito/hackatonNasa2025/prompt"
	"github.com/hanjelito/hackatonNasa2025/session"
	"github.com/hanjelito/hackatonNasa2025/store"
	"github.com/hanjelito/hackatonNasa2025/telemetry"
)

// version is set at build time via ldflags.
var version = "dev"

var rootCmd = &cobra.Command{
	Use:   "paperchat",
	Short: "Backend for searching and chatting about scientific papers",
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve()
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(version)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)
}

func serve() error {
	cfg := config.Load()

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer logger.Sync()

	logger.Info("starting paperchat",
		zap.Int("http_port", cfg.HTTPPort),
		zap.String("database", cfg.DatabaseURL),
		zap.Duration("session_timeout", cfg.SessionTimeout))

	ctx := context.Background()

	tracer, meter, telemetryCleanup, err := telemetry.Init(ctx, cfg.LogDir)
	if err != nil {
		return fmt.Errorf("failed to initialize telemetry: %w", err)
	}
	defer telemetryCleanup()

	metrics, err := telemetry.NewChatMetrics(meter)
	if err != nil {
		return fmt.Errorf("failed to register metrics: %w", err)
	}

	db, err := store.NewSQLiteStore(cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to initialize store: %w", err)
	}
	defer db.Close()

	var completer completion.Completer
	if cfg.GeminiAPIKey != "" {
		client, err := completion.NewGenAIClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel, cfg.CompletionTimeout)
		if err != nil {
			return fmt.Errorf("failed to initialize model backend: %w", err)
		}
		completer = client
		logger.Info("model backend ready", zap.String("backend", client.Name()))
	} else {
		logger.Warn("no Gemini API key configured, chat exchanges will fail")
	}

	sessions := session.NewManager(db, cfg.SessionTimeout, logger)
	prompts := prompt.NewLoader(cfg.PromptsDir)
	paperSvc := papers.NewService(db, logger)
	orchestrator := chat.NewOrchestrator(sessions, completer, db, prompts, metrics, tracer, logger)

	h := api.NewHandler(sessions, orchestrator, paperSvc, logger)

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	h.RegisterRoutes(e)

	go func() {
		addr := fmt.Sprintf(":%d", cfg.HTTPPort)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()
	logger.Info("server started", zap.Int("port", cfg.HTTPPort))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("failed to shut down gracefully", zap.Error(err))
	}
	return nil
}

func newLogger(level string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	if err := cfg.Level.UnmarshalText([]byte(level)); err != nil {
		cfg.Level = zap.NewAtomicLevel()
	}
	return cfg.Build()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
