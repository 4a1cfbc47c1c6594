package callbacks

import (
	"context"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// ========================
// Callback Data Patterns
// ========================

// Навигация и город
const (
	MainMenu   = "main_menu"
	ChooseCity = "choose_city"
	City       = "city:" // city:<city_id>
)

// Воронка записи
const (
	RecordStart   = "rec_start"           // выбор вида услуг
	RecordType    = "rec_type:"           // rec_type:<type_id> — выбор способа поиска
	Services      = "rec_services:"       // rec_services:<type_id> — услуги вида в городе
	ServicePlaces = "rec_service_places:" // rec_service_places:<service_id> — салоны с услугой
	Centers       = "rec_centers:"        // rec_centers:<type_id> — сети салонов
	CenterPlaces  = "rec_center_places:"  // rec_center_places:<center_id> — салоны сети
	PlaceServices = "rec_place_services:" // rec_place_services:<place_id> — услуги салона
	Days          = "rec_days:"           // rec_days:<place_id>:<service_id>
	Times         = "rec_times:"          // rec_times:<place_id>:<service_id>:<day>
	Confirm       = "rec_confirm:"        // rec_confirm:<place_id>:<service_id>:<time>
	Book          = "rec_book:"           // rec_book:<place_id>:<service_id>:<time>
)

// Записи пользователя
const (
	MyRecords    = "my_records"
	Record       = "record:"        // record:<record_id>
	CancelRecord = "cancel_record:" // cancel_record:<record_id>
)

// Ответы владельца салона
const (
	OwnerConfirm = "owner_confirm:" // owner_confirm:<record_id>
	OwnerReject  = "owner_reject:"  // owner_reject:<record_id>
)

// Route распределяет callback query по соответствующим обработчикам
func Route(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *Handler) {
	data := callback.Data

	switch {
	// ===== Навигация =====
	case data == MainMenu:
		HandleMainMenu(ctx, b, callback, h)
	case data == "noop":
		// Просто подтверждаем callback
		AnswerCallback(ctx, b, callback.ID, "")

	// ===== Город =====
	case data == ChooseCity:
		HandleChooseCity(ctx, b, callback, h)
	case strings.HasPrefix(data, City):
		HandleCity(ctx, b, callback, h)

	// ===== Воронка записи =====
	case data == RecordStart:
		HandleRecordStart(ctx, b, callback, h)
	case strings.HasPrefix(data, RecordType):
		HandleRecordType(ctx, b, callback, h)
	case strings.HasPrefix(data, Services):
		HandleServices(ctx, b, callback, h)
	case strings.HasPrefix(data, ServicePlaces):
		HandleServicePlaces(ctx, b, callback, h)
	case strings.HasPrefix(data, Centers):
		HandleCenters(ctx, b, callback, h)
	case strings.HasPrefix(data, CenterPlaces):
		HandleCenterPlaces(ctx, b, callback, h)
	case strings.HasPrefix(data, PlaceServices):
		HandlePlaceServices(ctx, b, callback, h)
	case strings.HasPrefix(data, Days):
		HandleDays(ctx, b, callback, h)
	case strings.HasPrefix(data, Times):
		HandleTimes(ctx, b, callback, h)
	case strings.HasPrefix(data, Confirm):
		HandleConfirm(ctx, b, callback, h)
	case strings.HasPrefix(data, Book):
		HandleBook(ctx, b, callback, h)

	// ===== Записи пользователя =====
	case data == MyRecords:
		HandleMyRecords(ctx, b, callback, h)
	case strings.HasPrefix(data, Record):
		HandleRecord(ctx, b, callback, h)
	case strings.HasPrefix(data, CancelRecord):
		HandleCancelRecord(ctx, b, callback, h)

	// ===== Владелец салона =====
	case strings.HasPrefix(data, OwnerConfirm):
		HandleOwnerConfirm(ctx, b, callback, h)
	case strings.HasPrefix(data, OwnerReject):
		HandleOwnerReject(ctx, b, callback, h)

	// ===== Unknown Callback =====
	default:
		h.Logger.Warn("Unknown callback",
			zap.String("data", data),
			zap.Int64("user_id", callback.From.ID))
		AnswerCallback(ctx, b, callback.ID, "❌ Неизвестная команда")
	}
}
