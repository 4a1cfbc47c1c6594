package callbacks

import (
	"context"
	"strconv"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

const cityPromptText = "🏙 В каком городе вы хотите записываться?"

// cityKeyboard клавиатура выбора города
func cityKeyboard(ctx context.Context, h *Handler) (*models.InlineKeyboardMarkup, error) {
	cities, err := h.CatalogService.Cities(ctx)
	if err != nil {
		return nil, err
	}

	keyboard := make([][]models.InlineKeyboardButton, 0, len(cities))
	for _, city := range cities {
		keyboard = append(keyboard, []models.InlineKeyboardButton{
			{Text: city.Name, CallbackData: City + strconv.FormatInt(city.ID, 10)},
		})
	}

	return &models.InlineKeyboardMarkup{InlineKeyboard: keyboard}, nil
}

// SendCityPrompt отправляет выбор города новым сообщением
func SendCityPrompt(ctx context.Context, b *bot.Bot, h *Handler, chatID int64) {
	keyboard, err := cityKeyboard(ctx, h)
	if err != nil {
		h.Logger.Error("Failed to get cities", zap.Error(err))
		SendMessage(ctx, b, h, chatID, "❌ Произошла ошибка. Попробуйте позже.", nil)
		return
	}

	SendMessage(ctx, b, h, chatID, cityPromptText, keyboard)
}

// HandleChooseCity показывает выбор города
func HandleChooseCity(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *Handler) {
	keyboard, err := cityKeyboard(ctx, h)
	if err != nil {
		h.Logger.Error("Failed to get cities", zap.Error(err))
		AnswerCallbackAlert(ctx, b, callback.ID, "❌ Произошла ошибка. Попробуйте позже.")
		return
	}

	EditMessage(ctx, b, callback, h, cityPromptText, keyboard)
	AnswerCallback(ctx, b, callback.ID, "")
}

// HandleCity сохраняет выбранный город и возвращает в меню
// (или к услугам салона, если пользователь пришёл по ссылке)
func HandleCity(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *Handler) {
	cityID, err := ParseIDFromCallback(callback.Data)
	if err != nil {
		h.Logger.Error("Failed to parse city ID", zap.Error(err), zap.String("data", callback.Data))
		AnswerCallbackAlert(ctx, b, callback.ID, "❌ Неверный формат")
		return
	}

	telegramID := callback.From.ID
	if err := h.UserService.SetCity(ctx, telegramID, cityID); err != nil {
		h.Logger.Error("Failed to set city", zap.Error(err), zap.Int64("telegram_id", telegramID))
		AnswerCallbackAlert(ctx, b, callback.ID, "❌ Произошла ошибка. Попробуйте позже.")
		return
	}

	city, err := h.CatalogService.City(ctx, cityID)
	if err != nil {
		h.Logger.Error("Failed to get city", zap.Error(err), zap.Int64("city_id", cityID))
		AnswerCallback(ctx, b, callback.ID, "")
		return
	}

	AnswerCallback(ctx, b, callback.ID, "✅ Город: "+city.Name)

	// Пользователь мог прийти по ссылке салона до выбора города
	if resumePendingPlace(ctx, b, callback, h) {
		return
	}

	HandleMainMenu(ctx, b, callback, h)
}
