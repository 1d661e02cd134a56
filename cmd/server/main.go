package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	chatclient "github.com/hellodash/dashboard-backend/internal/chat/client"
	chatservice "github.com/hellodash/dashboard-backend/internal/chat/service"
	"github.com/hellodash/dashboard-backend/internal/conf"
	"github.com/hellodash/dashboard-backend/internal/dashboard"
	"github.com/hellodash/dashboard-backend/internal/explorer"
	"github.com/hellodash/dashboard-backend/internal/finance"
	movieclient "github.com/hellodash/dashboard-backend/internal/movies/client"
	movieservice "github.com/hellodash/dashboard-backend/internal/movies/service"
	"github.com/hellodash/dashboard-backend/internal/pkg/logger"
	"github.com/hellodash/dashboard-backend/internal/server"
)

var (
	configFile = flag.String("config", "config.yaml", "config file path")
)

func main() {
	flag.Parse()

	// Load configuration
	config, err := conf.LoadConfig(*configFile)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	// Initialize logger with config
	log, err := logger.New(&logger.Config{
		Level:            config.Log.Level,
		Format:           config.Log.Format,
		Output:           config.Log.Output,
		EnableCaller:     config.Log.EnableCaller,
		EnableStacktrace: config.Log.EnableStacktrace,
		File: logger.FileConfig{
			Filename:   config.Log.File.Filename,
			MaxSize:    config.Log.File.MaxSize,
			MaxAge:     config.Log.File.MaxAge,
			MaxBackups: config.Log.File.MaxBackups,
			Compress:   config.Log.File.Compress,
		},
	})
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer log.Sync()

	log.Info("config loaded successfully")

	// Initialize provider clients
	movieClient, err := movieclient.New(&config.TMDB, log.Logger)
	if err != nil {
		log.Fatal("failed to initialize TMDB client", zap.Error(err))
	}

	chatClient, err := chatclient.New(&config.OpenAI, log.Logger)
	if err != nil {
		log.Fatal("failed to initialize chat client", zap.Error(err))
	}

	// Initialize services
	movieService := movieservice.NewMovieService(movieClient, log.Logger)
	chatService := chatservice.NewChatService(chatClient, log.Logger)
	explorerService := explorer.NewService(config.Explorer.MaxUploadBytes, log.Logger)
	financeService := finance.NewService(log.Logger)
	dashboardService := dashboard.NewService(log.Logger)

	// Initialize server
	httpServer := server.NewHTTPServer(
		config,
		log.Logger,
		movieService,
		chatService,
		explorerService,
		financeService,
		dashboardService,
	)

	go func() {
		if err := httpServer.Start(); err != nil {
			log.Fatal("failed to start HTTP server", zap.Error(err))
		}
	}()

	log.Info("server started successfully")

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := httpServer.Stop(ctx); err != nil {
		log.Error("HTTP server forced to shutdown", zap.Error(err))
	}

	log.Info("server exited")
}
