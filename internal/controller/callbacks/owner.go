package callbacks

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/uoyyy/salon-krasotok/internal/service"
	"go.uber.org/zap"
)

// HandleOwnerConfirm владелец подтверждает запись
func HandleOwnerConfirm(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *Handler) {
	recordID, err := ParseIDFromCallback(callback.Data)
	if err != nil {
		h.Logger.Error("Failed to parse record ID", zap.Error(err), zap.String("data", callback.Data))
		AnswerCallbackAlert(ctx, b, callback.ID, "❌ Неверный формат")
		return
	}

	if err := h.RecordService.Confirm(ctx, recordID); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			// Клиент успел отменить запись
			AnswerCallbackAlert(ctx, b, callback.ID, "Запись уже отменена клиентом")
			EditMessage(ctx, b, callback, h, "❌ Запись отменена клиентом.", nil)
			return
		}
		h.Logger.Error("Failed to confirm record", zap.Error(err), zap.Int64("record_id", recordID))
		AnswerCallbackAlert(ctx, b, callback.ID, "❌ Произошла ошибка. Попробуйте позже.")
		return
	}

	record, err := h.RecordService.GetRecord(ctx, recordID)
	if err != nil {
		h.Logger.Error("Failed to get record after confirm", zap.Error(err), zap.Int64("record_id", recordID))
		AnswerCallback(ctx, b, callback.ID, "✅ Подтверждено")
		return
	}

	// Сообщаем клиенту
	SendMessage(ctx, b, h, record.UserID,
		fmt.Sprintf("⚪️ Салон подтвердил вашу запись!\n\n%s", recordSummary(record, time.Now())),
		nil)

	EditMessage(ctx, b, callback, h,
		fmt.Sprintf("✅ Запись подтверждена:\n\n%s", OwnerRecordSummary(record)),
		nil)
	AnswerCallback(ctx, b, callback.ID, "✅ Подтверждено")
}

// HandleOwnerReject владелец отклоняет запись, запись удаляется
func HandleOwnerReject(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *Handler) {
	recordID, err := ParseIDFromCallback(callback.Data)
	if err != nil {
		h.Logger.Error("Failed to parse record ID", zap.Error(err), zap.String("data", callback.Data))
		AnswerCallbackAlert(ctx, b, callback.ID, "❌ Неверный формат")
		return
	}

	record, err := h.RecordService.GetRecord(ctx, recordID)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			AnswerCallbackAlert(ctx, b, callback.ID, "Запись уже отменена клиентом")
			EditMessage(ctx, b, callback, h, "❌ Запись отменена клиентом.", nil)
			return
		}
		h.Logger.Error("Failed to get record", zap.Error(err), zap.Int64("record_id", recordID))
		AnswerCallbackAlert(ctx, b, callback.ID, "❌ Произошла ошибка. Попробуйте позже.")
		return
	}

	if err := h.RecordService.Cancel(ctx, recordID); err != nil {
		h.Logger.Error("Failed to reject record", zap.Error(err), zap.Int64("record_id", recordID))
		AnswerCallbackAlert(ctx, b, callback.ID, "❌ Произошла ошибка. Попробуйте позже.")
		return
	}

	SendMessage(ctx, b, h, record.UserID,
		fmt.Sprintf("😔 Салон не смог принять вашу запись:\n\n%s\n\nПопробуйте выбрать другое время.",
			recordSummary(record, time.Now())),
		&models.InlineKeyboardMarkup{InlineKeyboard: [][]models.InlineKeyboardButton{
			{{Text: "📝 Записаться снова", CallbackData: RecordStart}},
		}})

	EditMessage(ctx, b, callback, h,
		fmt.Sprintf("❌ Запись отклонена:\n\n%s", OwnerRecordSummary(record)),
		nil)
	AnswerCallback(ctx, b, callback.ID, "Отклонено")
}
