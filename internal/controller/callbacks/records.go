package callbacks

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/uoyyy/salon-krasotok/internal/formatting"
	"github.com/uoyyy/salon-krasotok/internal/model"
	"github.com/uoyyy/salon-krasotok/internal/service"
	"go.uber.org/zap"
)

// recordSummary описание записи: салон, услуга, дата и время
func recordSummary(record *model.Record, now time.Time) string {
	display := formatting.GetRecordStatusDisplay(record, now)

	header := ""
	if record.Place != nil {
		header = "📍 " + record.Place.Address + "\n"
		if record.Place.Center != nil {
			header = fmt.Sprintf("🏢 %s\n📍 %s\n", record.Place.Center.Name, record.Place.Address)
		}
	}

	serviceName := ""
	if record.Service != nil {
		serviceName = "💅 " + serviceLabel(record.Service) + "\n"
	}

	return fmt.Sprintf(
		"%s%s📅 %s (%s)\n🕐 %s\n%s %s",
		header,
		serviceName,
		formatting.FormatDate(record.StartTime),
		formatting.GetWeekdayName(record.StartTime.Weekday()),
		formatting.FormatTimeRange(record.StartTime, record.EndTime),
		display.Emoji,
		display.Text,
	)
}

// OwnerRecordSummary описание записи для владельца салона:
// клиент с телефоном, услуга, дата и время
func OwnerRecordSummary(record *model.Record) string {
	client := "клиент"
	if record.User != nil {
		client = record.User.DisplayName()
		if record.User.Phone != nil {
			client += " (" + *record.User.Phone + ")"
		}
	}

	serviceName := ""
	if record.Service != nil {
		serviceName = "💅 " + serviceLabel(record.Service) + "\n"
	}

	address := ""
	if record.Place != nil {
		address = "📍 " + record.Place.Address + "\n"
	}

	return fmt.Sprintf(
		"👤 %s\n%s%s📅 %s (%s)\n🕐 %s",
		client,
		serviceName,
		address,
		formatting.FormatDate(record.StartTime),
		formatting.GetWeekdayName(record.StartTime.Weekday()),
		formatting.FormatTimeRange(record.StartTime, record.EndTime),
	)
}

// recordsView текст и клавиатура списка записей пользователя
func recordsView(ctx context.Context, h *Handler, telegramID int64) (string, *models.InlineKeyboardMarkup, error) {
	records, err := h.RecordService.UserRecords(ctx, telegramID)
	if err != nil {
		return "", nil, err
	}

	if len(records) == 0 {
		return "📅 У вас пока нет записей.", &models.InlineKeyboardMarkup{
			InlineKeyboard: [][]models.InlineKeyboardButton{
				{{Text: "📝 Записаться", CallbackData: RecordStart}},
				BackRow("↩️ В меню", MainMenu),
			},
		}, nil
	}

	now := time.Now()
	keyboard := make([][]models.InlineKeyboardButton, 0, len(records)+1)
	for _, record := range records {
		display := formatting.GetRecordStatusDisplay(record, now)
		label := fmt.Sprintf("%s %s", display.Emoji, formatting.FormatDateTime(record.StartTime))
		if record.Service != nil {
			label += " — " + record.Service.Name
		}
		keyboard = append(keyboard, []models.InlineKeyboardButton{
			{Text: label, CallbackData: Record + strconv.FormatInt(record.ID, 10)},
		})
	}
	keyboard = append(keyboard, BackRow("↩️ В меню", MainMenu))

	text := "📅 Ваши записи:\n\n" + statusLegend
	return text, &models.InlineKeyboardMarkup{InlineKeyboard: keyboard}, nil
}

// HandleMyRecords список актуальных записей пользователя
func HandleMyRecords(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *Handler) {
	text, keyboard, err := recordsView(ctx, h, callback.From.ID)
	if err != nil {
		h.Logger.Error("Failed to get user records", zap.Error(err), zap.Int64("user_id", callback.From.ID))
		AnswerCallbackAlert(ctx, b, callback.ID, "❌ Произошла ошибка. Попробуйте позже.")
		return
	}

	EditMessage(ctx, b, callback, h, text, keyboard)
	AnswerCallback(ctx, b, callback.ID, "")
}

// SendMyRecords отправляет список записей новым сообщением (команда /myrecords)
func SendMyRecords(ctx context.Context, b *bot.Bot, h *Handler, chatID, telegramID int64) {
	text, keyboard, err := recordsView(ctx, h, telegramID)
	if err != nil {
		h.Logger.Error("Failed to get user records", zap.Error(err), zap.Int64("user_id", telegramID))
		SendMessage(ctx, b, h, chatID, "❌ Произошла ошибка. Попробуйте позже.", nil)
		return
	}

	SendMessage(ctx, b, h, chatID, text, keyboard)
}

// HandleRecord подробности одной записи
func HandleRecord(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *Handler) {
	recordID, err := ParseIDFromCallback(callback.Data)
	if err != nil {
		h.Logger.Error("Failed to parse record ID", zap.Error(err), zap.String("data", callback.Data))
		AnswerCallbackAlert(ctx, b, callback.ID, "❌ Неверный формат")
		return
	}

	record, err := h.RecordService.GetRecord(ctx, recordID)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			AnswerCallbackAlert(ctx, b, callback.ID, "❌ Запись не найдена")
			HandleMyRecords(ctx, b, callback, h)
			return
		}
		h.Logger.Error("Failed to get record", zap.Error(err), zap.Int64("record_id", recordID))
		AnswerCallbackAlert(ctx, b, callback.ID, "❌ Произошла ошибка. Попробуйте позже.")
		return
	}

	if record.UserID != callback.From.ID {
		AnswerCallbackAlert(ctx, b, callback.ID, "❌ Запись не найдена")
		return
	}

	now := time.Now()
	text := recordSummary(record, now)
	if record.Urgency(now) != model.UrgencyElapsed {
		text += fmt.Sprintf("\n\n⏳ До записи: %s", formatting.FormatRemaining(record.RemainingTime(now)))
	}

	keyboard := &models.InlineKeyboardMarkup{
		InlineKeyboard: [][]models.InlineKeyboardButton{
			{{Text: "❌ Отменить запись", CallbackData: CancelRecord + strconv.FormatInt(record.ID, 10)}},
			BackRow("↩️ Назад", MyRecords),
		},
	}

	EditMessage(ctx, b, callback, h, text, keyboard)
	AnswerCallback(ctx, b, callback.ID, "")
}

// HandleCancelRecord отмена записи пользователем с уведомлением салона
func HandleCancelRecord(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *Handler) {
	recordID, err := ParseIDFromCallback(callback.Data)
	if err != nil {
		h.Logger.Error("Failed to parse record ID", zap.Error(err), zap.String("data", callback.Data))
		AnswerCallbackAlert(ctx, b, callback.ID, "❌ Неверный формат")
		return
	}

	// Запись нужна до удаления, чтобы уведомить владельца салона
	record, err := h.RecordService.GetRecord(ctx, recordID)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			AnswerCallback(ctx, b, callback.ID, "Запись уже отменена")
			HandleMyRecords(ctx, b, callback, h)
			return
		}
		h.Logger.Error("Failed to get record", zap.Error(err), zap.Int64("record_id", recordID))
		AnswerCallbackAlert(ctx, b, callback.ID, "❌ Произошла ошибка. Попробуйте позже.")
		return
	}

	if record.UserID != callback.From.ID {
		AnswerCallbackAlert(ctx, b, callback.ID, "❌ Запись не найдена")
		return
	}

	if err := h.RecordService.Cancel(ctx, recordID); err != nil {
		h.Logger.Error("Failed to cancel record", zap.Error(err), zap.Int64("record_id", recordID))
		AnswerCallbackAlert(ctx, b, callback.ID, "❌ Произошла ошибка. Попробуйте позже.")
		return
	}

	if record.Place != nil {
		name := ""
		if record.User != nil {
			name = record.User.DisplayName()
		}
		ownerText := fmt.Sprintf(
			"❌ Клиент %s отменил запись:\n\n%s",
			name,
			recordSummary(record, time.Now()),
		)
		SendMessage(ctx, b, h, record.Place.OwnerID, ownerText, nil)
	}

	EditMessage(ctx, b, callback, h,
		"✅ Запись отменена.",
		&models.InlineKeyboardMarkup{InlineKeyboard: [][]models.InlineKeyboardButton{
			{{Text: "📅 Мои записи", CallbackData: MyRecords}},
			BackRow("↩️ В меню", MainMenu),
		}})
	AnswerCallback(ctx, b, callback.ID, "")
}
