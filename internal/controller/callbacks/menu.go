package callbacks

import (
	"context"
	"fmt"
	"strconv"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// MainMenuKeyboard клавиатура главного меню
func MainMenuKeyboard() *models.InlineKeyboardMarkup {
	return &models.InlineKeyboardMarkup{
		InlineKeyboard: [][]models.InlineKeyboardButton{
			{{Text: "📝 Записаться", CallbackData: RecordStart}},
			{{Text: "📅 Мои записи", CallbackData: MyRecords}},
			{{Text: "🏙 Сменить город", CallbackData: ChooseCity}},
		},
	}
}

// MainMenuText текст главного меню
func MainMenuText(name string) string {
	if name == "" {
		return "💇 Главное меню\n\nВыберите действие:"
	}
	return fmt.Sprintf("💇 %s, вы в главном меню.\n\nВыберите действие:", name)
}

// SendMainMenu отправляет главное меню новым сообщением
func SendMainMenu(ctx context.Context, b *bot.Bot, h *Handler, chatID int64, name string) {
	SendMessage(ctx, b, h, chatID, MainMenuText(name), MainMenuKeyboard())
}

// HandleMainMenu показывает главное меню
func HandleMainMenu(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *Handler) {
	user, err := h.UserService.GetByID(ctx, callback.From.ID)
	if err != nil {
		h.Logger.Error("Failed to get user", zap.Error(err))
		AnswerCallbackAlert(ctx, b, callback.ID, "❌ Произошла ошибка. Попробуйте позже.")
		return
	}

	name := ""
	if user != nil {
		name = user.DisplayName()
	}

	EditMessage(ctx, b, callback, h, MainMenuText(name), MainMenuKeyboard())
	AnswerCallback(ctx, b, callback.ID, "")
}

// HandleRecordStart начало воронки записи: выбор вида услуг
func HandleRecordStart(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *Handler) {
	if !requireCity(ctx, b, callback, h) {
		return
	}

	types, err := h.CatalogService.Types(ctx)
	if err != nil {
		h.Logger.Error("Failed to get service types", zap.Error(err))
		AnswerCallbackAlert(ctx, b, callback.ID, "❌ Произошла ошибка. Попробуйте позже.")
		return
	}

	if len(types) == 0 {
		EditMessage(ctx, b, callback, h,
			"😔 Пока нет доступных услуг.",
			&models.InlineKeyboardMarkup{InlineKeyboard: [][]models.InlineKeyboardButton{
				BackRow("↩️ В меню", MainMenu),
			}})
		AnswerCallback(ctx, b, callback.ID, "")
		return
	}

	keyboard := make([][]models.InlineKeyboardButton, 0, len(types)+1)
	for _, t := range types {
		keyboard = append(keyboard, []models.InlineKeyboardButton{
			{Text: t.Name, CallbackData: RecordType + strconv.FormatInt(t.ID, 10)},
		})
	}
	keyboard = append(keyboard, BackRow("↩️ В меню", MainMenu))

	EditMessage(ctx, b, callback, h,
		"💅 На какую услугу хотите записаться?",
		&models.InlineKeyboardMarkup{InlineKeyboard: keyboard})
	AnswerCallback(ctx, b, callback.ID, "")
}

// HandleRecordType выбор способа поиска: по услуге или по салону
func HandleRecordType(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *Handler) {
	typeID, err := ParseIDFromCallback(callback.Data)
	if err != nil {
		h.Logger.Error("Failed to parse type ID", zap.Error(err), zap.String("data", callback.Data))
		AnswerCallbackAlert(ctx, b, callback.ID, "❌ Неверный формат")
		return
	}

	id := strconv.FormatInt(typeID, 10)
	keyboard := &models.InlineKeyboardMarkup{
		InlineKeyboard: [][]models.InlineKeyboardButton{
			{{Text: "💅 Выбрать услугу", CallbackData: Services + id}},
			{{Text: "🏢 Выбрать салон", CallbackData: Centers + id}},
			BackRow("↩️ Назад", RecordStart),
		},
	}

	EditMessage(ctx, b, callback, h, "🔍 Как будем искать?", keyboard)
	AnswerCallback(ctx, b, callback.ID, "")
}

// requireCity проверяет, что у пользователя выбран город.
// Если нет — показывает выбор города и возвращает false.
func requireCity(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *Handler) bool {
	user, err := h.UserService.GetByID(ctx, callback.From.ID)
	if err != nil {
		h.Logger.Error("Failed to get user", zap.Error(err))
		AnswerCallbackAlert(ctx, b, callback.ID, "❌ Произошла ошибка. Попробуйте позже.")
		return false
	}

	if user == nil || user.CityID == nil {
		HandleChooseCity(ctx, b, callback, h)
		return false
	}

	return true
}

// userCityID город пользователя; ok=false, если город не выбран
func userCityID(ctx context.Context, h *Handler, telegramID int64) (int64, bool, error) {
	user, err := h.UserService.GetByID(ctx, telegramID)
	if err != nil {
		return 0, false, err
	}
	if user == nil || user.CityID == nil {
		return 0, false, nil
	}
	return *user.CityID, true, nil
}
