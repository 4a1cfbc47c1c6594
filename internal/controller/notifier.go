package controller

import (
	"context"
	"fmt"
	"strconv"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/uoyyy/salon-krasotok/internal/controller/callbacks"
	"github.com/uoyyy/salon-krasotok/internal/model"
	"github.com/uoyyy/salon-krasotok/internal/service"
	"go.uber.org/zap"
)

var _ service.Notifier = (*OwnerNotifier)(nil)

// OwnerNotifier шлёт владельцу салона уведомления о записях через telegram
type OwnerNotifier struct {
	bot    *bot.Bot
	logger *zap.Logger
}

// NewOwnerNotifier создаёт notifier поверх запущенного бота
func NewOwnerNotifier(botInstance *bot.Bot, logger *zap.Logger) *OwnerNotifier {
	return &OwnerNotifier{
		bot:    botInstance,
		logger: logger,
	}
}

// RecordCreated уведомляет владельца о новой записи с кнопками
// подтверждения и отклонения
func (n *OwnerNotifier) RecordCreated(ctx context.Context, record *model.Record) {
	if record.Place == nil {
		n.logger.Warn("Record without place, owner notification skipped",
			zap.Int64("record_id", record.ID))
		return
	}

	id := strconv.FormatInt(record.ID, 10)
	keyboard := &models.InlineKeyboardMarkup{
		InlineKeyboard: [][]models.InlineKeyboardButton{
			{
				{Text: "✅ Подтвердить", CallbackData: callbacks.OwnerConfirm + id},
				{Text: "❌ Отклонить", CallbackData: callbacks.OwnerReject + id},
			},
		},
	}

	_, err := n.bot.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      record.Place.OwnerID,
		Text:        fmt.Sprintf("🆕 Новая запись!\n\n%s", callbacks.OwnerRecordSummary(record)),
		ReplyMarkup: keyboard,
	})
	if err != nil {
		n.logger.Error("Failed to notify owner about record",
			zap.Int64("record_id", record.ID),
			zap.Int64("owner_id", record.Place.OwnerID),
			zap.Error(err))
	}
}

// RecordReminder напоминает владельцу о записи, которая скоро начнётся
func (n *OwnerNotifier) RecordReminder(ctx context.Context, record *model.Record) {
	if record.Place == nil {
		return
	}

	_, err := n.bot.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: record.Place.OwnerID,
		Text:   fmt.Sprintf("⏰ Скоро запись!\n\n%s", callbacks.OwnerRecordSummary(record)),
	})
	if err != nil {
		n.logger.Error("Failed to send owner reminder",
			zap.Int64("record_id", record.ID),
			zap.Int64("owner_id", record.Place.OwnerID),
			zap.Error(err))
	}
}
