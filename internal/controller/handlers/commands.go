package handlers

import (
	"context"
	"errors"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/uoyyy/salon-krasotok/internal/controller/callbacks"
	"github.com/uoyyy/salon-krasotok/internal/controller/state"
	"github.com/uoyyy/salon-krasotok/internal/service"
	"go.uber.org/zap"
)

// HandleStart обрабатывает команду /start, в том числе вход по ссылке
// салона /start <код>
func (h *Handlers) HandleStart(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	telegramID := update.Message.From.ID
	chatID := update.Message.Chat.ID

	user, err := h.userService.EnsureUser(ctx, telegramID)
	if err != nil {
		h.logger.Error("Failed to ensure user", zap.Error(err), zap.Int64("telegram_id", telegramID))
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   "❌ Произошла ошибка. Попробуйте позже.",
		})
		return
	}

	// Код салона из deep link: /start <код>
	if payload := strings.TrimSpace(strings.TrimPrefix(update.Message.Text, "/start")); payload != "" {
		place, err := h.catalogService.PlaceByLinkCode(ctx, payload)
		switch {
		case err == nil:
			h.stateManager.SetData(telegramID, state.DataPendingPlaceID, place.ID)
		case errors.Is(err, service.ErrNotFound):
			h.logger.Warn("Unknown place link", zap.String("payload", payload), zap.Int64("telegram_id", telegramID))
		default:
			h.logger.Error("Failed to resolve place link", zap.Error(err), zap.String("payload", payload))
		}
	}

	if h.continueRegistration(ctx, b, chatID, user) {
		return
	}

	h.resumeOrMenu(ctx, b, chatID, telegramID, user.DisplayName())
}

// HandleHelp обрабатывает команду /help
func (h *Handlers) HandleHelp(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	helpText := "💇 Бот для записи в салоны красоты.\n\n" +
		"Команды:\n" +
		"/start - Главное меню\n" +
		"/myrecords - Мои записи\n" +
		"/help - Показать эту справку\n\n" +
		"Статусы записей:\n" +
		"❓ - ещё не подтверждена салоном\n" +
		"⚪️ - подтверждена салоном\n" +
		"🔴 - до записи меньше суток\n" +
		"🟢 - до записи меньше часа"

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: update.Message.Chat.ID,
		Text:   helpText,
	})
}

// HandleMyRecords обрабатывает команду /myrecords
func (h *Handlers) HandleMyRecords(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	callbacks.SendMyRecords(ctx, b, h.callbackHandler, update.Message.Chat.ID, update.Message.From.ID)
}
