package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/uoyyy/salon-krasotok/internal/app"
	"github.com/uoyyy/salon-krasotok/internal/config"
	"github.com/uoyyy/salon-krasotok/internal/controller"
	"github.com/uoyyy/salon-krasotok/internal/repository"
	"github.com/uoyyy/salon-krasotok/internal/service"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := app.NewLogger(cfg.Environment)
	defer logger.Sync()

	logger.Info("Starting salon bot", zap.String("environment", cfg.Environment))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.DBDSN)
	if err != nil {
		logger.Fatal("Failed to create connection pool", zap.Error(err))
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}

	migrator, err := app.NewMigrator(pool, cfg.MigrationsPath)
	if err != nil {
		logger.Fatal("Failed to create migrator", zap.Error(err))
	}
	if err := migrator.Run(ctx); err != nil {
		logger.Fatal("Failed to apply migrations", zap.Error(err))
	}
	migrator.Close()

	// Репозитории
	userRepo := repository.NewUserRepository(pool)
	catalogRepo := repository.NewCatalogRepository(pool)
	recordRepo := repository.NewRecordRepository(pool)

	// Сервисы
	userService := service.NewUserService(userRepo, logger)
	catalogService := service.NewCatalogService(catalogRepo, logger)
	availabilityService := service.NewAvailabilityService(catalogRepo, recordRepo, logger)
	recordService := service.NewRecordService(catalogRepo, recordRepo, userRepo, logger)

	// Контакт с номером телефона приходит сообщением без текста,
	// поэтому ловим его default handler'ом
	var botController *controller.BotController
	defaultHandler := func(ctx context.Context, b *bot.Bot, update *models.Update) {
		if botController == nil || update.Message == nil || update.Message.Contact == nil {
			return
		}
		botController.Handlers().HandleContact(ctx, b, update)
	}

	b, err := bot.New(cfg.TelegramToken, bot.WithDefaultHandler(defaultHandler))
	if err != nil {
		logger.Fatal("Failed to create bot", zap.Error(err))
	}

	botController = controller.NewBotController(
		b,
		userService,
		catalogService,
		availabilityService,
		recordService,
		logger,
	)

	// Уведомления владельцам идут через бота, поэтому подключаем их
	// после его создания
	recordService.SetNotifier(controller.NewOwnerNotifier(b, logger))

	reminder := app.NewReminder(recordService, 10*time.Minute, logger)
	reminder.Start(ctx)
	defer reminder.Stop()

	if err := botController.RegisterHandlers(ctx); err != nil {
		logger.Fatal("Failed to register handlers", zap.Error(err))
	}

	if err := botController.Start(ctx); err != nil {
		logger.Fatal("Bot stopped with error", zap.Error(err))
	}

	logger.Info("Bot stopped")
}
