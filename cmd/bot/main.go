package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"finbot/internal/cache"
	"finbot/internal/config"
	"finbot/internal/handler"
	"finbot/internal/ledger/sheets"
	"finbot/internal/middleware"
	"finbot/internal/service"
	"finbot/internal/session"

	"go.uber.org/zap"
	"google.golang.org/api/option"
	gsheets "google.golang.org/api/sheets/v4"
	tele "gopkg.in/telebot.v3"
)

func main() {
	// Initialize logger
	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting finance bot")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}

	logger.Info("Configuration loaded successfully",
		zap.Int("allowed_users", len(cfg.AllowedUserIDs)),
	)

	// Connect to Google Sheets
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sheetsService, err := gsheets.NewService(ctx, option.WithCredentialsFile(cfg.CredentialsFile))
	if err != nil {
		logger.Fatal("Failed to create Sheets service", zap.Error(err))
	}

	gateway := sheets.NewClient(sheetsService, cfg.SpreadsheetID, logger)

	logger.Info("Google Sheets client initialized",
		zap.String("spreadsheet_id", cfg.SpreadsheetID),
	)

	// Initialize services
	accessService := service.NewAccessService(cfg.AllowedUserIDs)
	cacheManager := cache.NewManager(cfg.CacheFile, logger)
	categoryService := service.NewCategoryService(gateway, cacheManager, logger)
	transactionService := service.NewTransactionService(gateway, logger)
	sessions := session.NewStore()

	// Verify spreadsheet connectivity before going online
	if err := categoryService.Ping(); err != nil {
		logger.Fatal("Failed to reach spreadsheet", zap.Error(err))
	}

	logger.Info("Spreadsheet connection verified")

	// Initialize Telegram bot
	bot, err := tele.NewBot(tele.Settings{
		Token:  cfg.BotToken,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
	})
	if err != nil {
		logger.Fatal("Failed to create bot", zap.Error(err))
	}

	bot.Use(middleware.Access(accessService, logger))

	logger.Info("Telegram bot initialized")

	// Initialize handler
	h := handler.NewHandler(bot, categoryService, transactionService, sessions, logger)
	h.RegisterHandlers()

	logger.Info("Handlers registered")

	// Warm the category cache in background
	go warmCategoryCache(categoryService, logger)

	// Start bot in background
	go func() {
		logger.Info("Bot started successfully")
		bot.Start()
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	<-sigChan

	logger.Info("Shutdown signal received, stopping bot...")

	// Graceful shutdown
	bot.Stop()
	cancel()

	logger.Info("Bot stopped gracefully")
}

// warmCategoryCache pre-loads categories so the first add dialog does
// not pay the spreadsheet round trip
func warmCategoryCache(categories *service.CategoryService, logger *zap.Logger) {
	result, err := categories.Refresh()
	if err != nil {
		logger.Warn("Failed to warm category cache", zap.Error(err))
		return
	}
	logger.Info("Category cache warmed",
		zap.Int("expense", result.ExpenseCount),
		zap.Int("income", result.IncomeCount),
	)
}
