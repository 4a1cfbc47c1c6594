package formatting

import (
	"time"

	"github.com/uoyyy/salon-krasotok/internal/model"
)

// RecordStatusDisplay представляет отображение статуса записи
type RecordStatusDisplay struct {
	Emoji string
	Text  string
}

// GetRecordStatusDisplay возвращает emoji и текст для записи.
// Легенда: ❓ не подтверждена салоном, ⚪️ подтверждена,
// 🟢 осталось меньше часа, 🔴 меньше суток.
func GetRecordStatusDisplay(record *model.Record, now time.Time) RecordStatusDisplay {
	if !record.Active {
		return RecordStatusDisplay{"❓", "Ещё не подтверждена салоном"}
	}

	switch record.Urgency(now) {
	case model.UrgencyImminent:
		return RecordStatusDisplay{"🟢", "До записи осталось меньше часа"}
	case model.UrgencySoon:
		return RecordStatusDisplay{"🔴", "До записи осталось меньше суток"}
	case model.UrgencyElapsed:
		return RecordStatusDisplay{"⚫️", "Запись уже не актуальна"}
	default:
		return RecordStatusDisplay{"⚪️", "Подтверждена салоном"}
	}
}
