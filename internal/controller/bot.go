package controller

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/uoyyy/salon-krasotok/internal/controller/callbacks"
	"github.com/uoyyy/salon-krasotok/internal/controller/handlers"
	"github.com/uoyyy/salon-krasotok/internal/controller/state"
	"github.com/uoyyy/salon-krasotok/internal/service"
	"go.uber.org/zap"
)

type BotController struct {
	bot             *bot.Bot
	handlers        *handlers.Handlers
	callbackHandler *callbacks.Handler
	logger          *zap.Logger
}

func NewBotController(
	botInstance *bot.Bot,
	userService *service.UserService,
	catalogService *service.CatalogService,
	availabilityService *service.AvailabilityService,
	recordService *service.RecordService,
	logger *zap.Logger,
) *BotController {
	// Состояния диалогов живут в памяти процесса
	stateManager := state.NewManager()

	callbackHandler := callbacks.NewHandler(
		userService,
		catalogService,
		availabilityService,
		recordService,
		stateManager,
		logger,
	)

	cmdHandlers := handlers.NewHandlers(
		userService,
		catalogService,
		stateManager,
		callbackHandler,
		logger,
	)

	return &BotController{
		bot:             botInstance,
		handlers:        cmdHandlers,
		callbackHandler: callbackHandler,
		logger:          logger,
	}
}

// Handlers возвращает обработчики команд (нужны для default handler бота)
func (c *BotController) Handlers() *handlers.Handlers {
	return c.handlers
}

// RegisterHandlers регистрирует все обработчики команд
func (c *BotController) RegisterHandlers(ctx context.Context) error {
	// /start с префиксом: команда может нести код салона из ссылки
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/start", bot.MatchTypePrefix, c.handlers.HandleStart)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/help", bot.MatchTypeExact, c.handlers.HandleHelp)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/myrecords", bot.MatchTypeExact, c.handlers.HandleMyRecords)

	// Обработчик текстовых сообщений (диалог регистрации)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "", bot.MatchTypePrefix, c.handlers.HandleTextMessage)

	// Обработчик нажатий на inline кнопки
	c.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "", bot.MatchTypePrefix, c.callbackHandler.HandleCallbackQuery)

	// Устанавливаем меню команд
	return c.setCommands(ctx)
}

// setCommands устанавливает список команд в меню бота
func (c *BotController) setCommands(ctx context.Context) error {
	commands := []models.BotCommand{
		{Command: "start", Description: "🚀 Главное меню"},
		{Command: "myrecords", Description: "📅 Мои записи"},
		{Command: "help", Description: "❓ Справка"},
	}

	_, err := c.bot.SetMyCommands(ctx, &bot.SetMyCommandsParams{
		Commands: commands,
	})

	if err != nil {
		c.logger.Error("Failed to set bot commands", zap.Error(err))
		return err
	}

	c.logger.Info("✅ Bot commands menu set")
	return nil
}

// Start запускает бота
func (c *BotController) Start(ctx context.Context) error {
	c.logger.Info("Starting bot...")
	c.bot.Start(ctx)
	return nil
}
