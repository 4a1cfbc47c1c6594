package handlers

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/uoyyy/salon-krasotok/internal/controller/callbacks"
	"github.com/uoyyy/salon-krasotok/internal/controller/state"
	"github.com/uoyyy/salon-krasotok/internal/model"
	"go.uber.org/zap"
)

// continueRegistration задаёт пользователю следующий вопрос регистрации.
// Возвращает false, если регистрация уже завершена.
func (h *Handlers) continueRegistration(ctx context.Context, b *bot.Bot, chatID int64, user *model.User) bool {
	switch user.RegistrationState() {
	case model.RegistrationStateNew:
		h.stateManager.SetState(user.ID, state.StateAwaitingName)
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   "👋 Привет! Давайте познакомимся.\n\nКак вас зовут?",
		})
		return true

	case model.RegistrationStateAwaitingPhone:
		h.askPhone(ctx, b, chatID, user.DisplayName())
		return true

	default:
		return false
	}
}

// askPhone просит номер телефона кнопкой отправки контакта
func (h *Handlers) askPhone(ctx context.Context, b *bot.Bot, chatID int64, name string) {
	keyboard := &models.ReplyKeyboardMarkup{
		Keyboard: [][]models.KeyboardButton{
			{{Text: "📱 Отправить мой номер", RequestContact: true}},
		},
		ResizeKeyboard:  true,
		OneTimeKeyboard: true,
	}

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text: fmt.Sprintf(
			"Приятно познакомиться, %s! 😊\n\nОставьте номер телефона, чтобы салон мог с вами связаться. Нажмите кнопку ниже.",
			name,
		),
		ReplyMarkup: keyboard,
	})
}

// resumeOrMenu продолжает сценарий после регистрации: салон из ссылки,
// выбор города или главное меню
func (h *Handlers) resumeOrMenu(ctx context.Context, b *bot.Bot, chatID, telegramID int64, name string) {
	if value, ok := h.stateManager.GetData(telegramID, state.DataPendingPlaceID); ok {
		h.stateManager.ClearData(telegramID, state.DataPendingPlaceID)
		if placeID, ok := value.(int64); ok {
			place, err := h.catalogService.Place(ctx, placeID)
			if err == nil {
				callbacks.SendPlaceServices(ctx, b, h.callbackHandler, chatID, place)
				return
			}
			h.logger.Warn("Pending place is gone", zap.Error(err), zap.Int64("place_id", placeID))
		}
	}

	user, err := h.userService.GetByID(ctx, telegramID)
	if err != nil {
		h.logger.Error("Failed to get user", zap.Error(err), zap.Int64("telegram_id", telegramID))
		return
	}

	if user == nil || user.CityID == nil {
		callbacks.SendCityPrompt(ctx, b, h.callbackHandler, chatID)
		return
	}

	callbacks.SendMainMenu(ctx, b, h.callbackHandler, chatID, name)
}

// HandleTextMessage обрабатывает текстовые сообщения вне команд.
// Сейчас единственный текстовый диалог — ввод имени при регистрации.
func (h *Handlers) HandleTextMessage(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.Text == "" {
		return
	}
	if strings.HasPrefix(update.Message.Text, "/") {
		// Команды обрабатываются своими handlers
		return
	}

	telegramID := update.Message.From.ID
	chatID := update.Message.Chat.ID

	if h.stateManager.GetState(telegramID) != state.StateAwaitingName {
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   "Используйте кнопки меню или /help для списка команд.",
		})
		return
	}

	name := strings.TrimSpace(update.Message.Text)
	if name == "" {
		return
	}

	if err := h.userService.SetName(ctx, telegramID, name); err != nil {
		h.logger.Error("Failed to set name", zap.Error(err), zap.Int64("telegram_id", telegramID))
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   "❌ Произошла ошибка. Попробуйте позже.",
		})
		return
	}

	h.stateManager.SetState(telegramID, state.StateNone)
	h.askPhone(ctx, b, chatID, name)
}

// HandleContact обрабатывает присланный контакт с номером телефона
func (h *Handlers) HandleContact(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.Contact == nil {
		return
	}

	telegramID := update.Message.From.ID
	chatID := update.Message.Chat.ID
	contact := update.Message.Contact

	// Принимаем только собственный контакт пользователя
	if contact.UserID != telegramID {
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   "Пожалуйста, отправьте свой номер кнопкой ниже.",
		})
		return
	}

	user, err := h.userService.GetByID(ctx, telegramID)
	if err != nil || user == nil {
		h.logger.Error("Failed to get user", zap.Error(err), zap.Int64("telegram_id", telegramID))
		return
	}

	if user.RegistrationState() != model.RegistrationStateAwaitingPhone {
		return
	}

	if err := h.userService.SetPhone(ctx, telegramID, contact.PhoneNumber); err != nil {
		h.logger.Error("Failed to set phone", zap.Error(err), zap.Int64("telegram_id", telegramID))
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   "❌ Произошла ошибка. Попробуйте позже.",
		})
		return
	}

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      chatID,
		Text:        "✅ Готово, регистрация завершена!",
		ReplyMarkup: &models.ReplyKeyboardRemove{RemoveKeyboard: true},
	})

	h.resumeOrMenu(ctx, b, chatID, telegramID, user.DisplayName())
}
