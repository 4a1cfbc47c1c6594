package callbacks

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// Helper functions для всех callback handlers

// AnswerCallback отвечает на callback query (без alert)
func AnswerCallback(ctx context.Context, b *bot.Bot, callbackID string, text string) {
	b.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
		CallbackQueryID: callbackID,
		Text:            text,
		ShowAlert:       false,
	})
}

// AnswerCallbackAlert отвечает на callback query с alert (всплывающее окно)
func AnswerCallbackAlert(ctx context.Context, b *bot.Bot, callbackID string, text string) {
	b.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
		CallbackQueryID: callbackID,
		Text:            text,
		ShowAlert:       true,
	})
}

// GetMessageFromCallback извлекает сообщение из callback query
func GetMessageFromCallback(callback *models.CallbackQuery) *models.Message {
	if callback.Message.Message != nil {
		return callback.Message.Message
	}
	return nil
}

// ParseIDFromCallback извлекает ID из callback data
// Например: "record:123" -> 123
func ParseIDFromCallback(data string) (int64, error) {
	parts := strings.Split(data, ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid callback data format")
	}
	return strconv.ParseInt(parts[1], 10, 64)
}

// ParseArgs отрезает префикс и делит остаток callback data по ":"
// Например: ParseArgs("rec_days:1:2", "rec_days:", 2) -> ["1", "2"]
func ParseArgs(data, prefix string, count int) ([]string, error) {
	parts := strings.Split(strings.TrimPrefix(data, prefix), ":")
	if len(parts) != count {
		return nil, fmt.Errorf("invalid callback data format: %q", data)
	}
	return parts, nil
}

// ParsePairID парсит callback data вида <prefix><place_id>:<service_id>
func ParsePairID(data, prefix string) (placeID, serviceID int64, err error) {
	parts, err := ParseArgs(data, prefix, 2)
	if err != nil {
		return 0, 0, err
	}
	placeID, err = strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return 0, 0, err
	}
	serviceID, err = strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return 0, 0, err
	}
	return placeID, serviceID, nil
}

// EditMessage заменяет текст и клавиатуру сообщения, на котором нажали кнопку
func EditMessage(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *Handler, text string, keyboard *models.InlineKeyboardMarkup) {
	message := GetMessageFromCallback(callback)
	if message == nil {
		return
	}

	_, err := b.EditMessageText(ctx, &bot.EditMessageTextParams{
		ChatID:      message.Chat.ID,
		MessageID:   message.ID,
		Text:        text,
		ReplyMarkup: keyboard,
	})
	if err != nil {
		h.Logger.Error("Failed to edit message", zap.Error(err))
	}
}

// SendMessage отправляет новое сообщение с inline клавиатурой
func SendMessage(ctx context.Context, b *bot.Bot, h *Handler, chatID int64, text string, keyboard *models.InlineKeyboardMarkup) {
	params := &bot.SendMessageParams{
		ChatID: chatID,
		Text:   text,
	}
	if keyboard != nil {
		params.ReplyMarkup = keyboard
	}

	if _, err := b.SendMessage(ctx, params); err != nil {
		h.Logger.Error("Failed to send message",
			zap.Int64("chat_id", chatID),
			zap.Error(err))
	}
}

// BackRow строка с одной кнопкой возврата
func BackRow(text, data string) []models.InlineKeyboardButton {
	return []models.InlineKeyboardButton{
		{Text: text, CallbackData: data},
	}
}
