package callbacks

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/uoyyy/salon-krasotok/internal/controller/state"
	"github.com/uoyyy/salon-krasotok/internal/formatting"
	"github.com/uoyyy/salon-krasotok/internal/model"
	"github.com/uoyyy/salon-krasotok/internal/service"
	"go.uber.org/zap"
)

const statusLegend = "❓ — ещё не подтверждена салоном\n" +
	"⚪️ — подтверждена салоном\n" +
	"🔴 — до записи меньше суток\n" +
	"🟢 — до записи меньше часа"

// ParseSlotArgs парсит callback data вида <prefix><place_id>:<service_id>:<key>.
// Ключ может содержать двоеточие (время слота), поэтому делим только первые
// два разделителя.
func ParseSlotArgs(data, prefix string) (placeID, serviceID int64, key string, err error) {
	rest := data[len(prefix):]

	first := -1
	second := -1
	for i, c := range rest {
		if c != ':' {
			continue
		}
		if first == -1 {
			first = i
		} else {
			second = i
			break
		}
	}
	if first == -1 || second == -1 {
		return 0, 0, "", fmt.Errorf("invalid callback data format: %q", data)
	}

	placeID, err = strconv.ParseInt(rest[:first], 10, 64)
	if err != nil {
		return 0, 0, "", err
	}
	serviceID, err = strconv.ParseInt(rest[first+1:second], 10, 64)
	if err != nil {
		return 0, 0, "", err
	}
	return placeID, serviceID, rest[second+1:], nil
}

// serviceLabel подпись кнопки услуги
func serviceLabel(svc *model.Service) string {
	return fmt.Sprintf("%s (%s)", svc.Name, formatting.FormatDuration(svc.Duration))
}

// HandleServices список услуг выбранного вида в городе пользователя
func HandleServices(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *Handler) {
	typeID, err := ParseIDFromCallback(callback.Data)
	if err != nil {
		h.Logger.Error("Failed to parse type ID", zap.Error(err), zap.String("data", callback.Data))
		AnswerCallbackAlert(ctx, b, callback.ID, "❌ Неверный формат")
		return
	}

	cityID, ok, err := userCityID(ctx, h, callback.From.ID)
	if err != nil {
		h.Logger.Error("Failed to get user", zap.Error(err))
		AnswerCallbackAlert(ctx, b, callback.ID, "❌ Произошла ошибка. Попробуйте позже.")
		return
	}
	if !ok {
		HandleChooseCity(ctx, b, callback, h)
		return
	}

	services, err := h.CatalogService.ServicesByTypeAndCity(ctx, typeID, cityID)
	if err != nil {
		h.Logger.Error("Failed to get services", zap.Error(err), zap.Int64("type_id", typeID))
		AnswerCallbackAlert(ctx, b, callback.ID, "❌ Произошла ошибка. Попробуйте позже.")
		return
	}

	keyboard := make([][]models.InlineKeyboardButton, 0, len(services)+1)
	for _, svc := range services {
		keyboard = append(keyboard, []models.InlineKeyboardButton{
			{Text: serviceLabel(svc), CallbackData: ServicePlaces + strconv.FormatInt(svc.ID, 10)},
		})
	}
	keyboard = append(keyboard, BackRow("↩️ Назад", RecordType+strconv.FormatInt(typeID, 10)))

	text := "💅 Выберите услугу:"
	if len(services) == 0 {
		text = "😔 В вашем городе пока нет таких услуг."
	}

	EditMessage(ctx, b, callback, h, text, &models.InlineKeyboardMarkup{InlineKeyboard: keyboard})
	AnswerCallback(ctx, b, callback.ID, "")
}

// HandleServicePlaces салоны города, где делают выбранную услугу
func HandleServicePlaces(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *Handler) {
	serviceID, err := ParseIDFromCallback(callback.Data)
	if err != nil {
		h.Logger.Error("Failed to parse service ID", zap.Error(err), zap.String("data", callback.Data))
		AnswerCallbackAlert(ctx, b, callback.ID, "❌ Неверный формат")
		return
	}

	cityID, ok, err := userCityID(ctx, h, callback.From.ID)
	if err != nil {
		h.Logger.Error("Failed to get user", zap.Error(err))
		AnswerCallbackAlert(ctx, b, callback.ID, "❌ Произошла ошибка. Попробуйте позже.")
		return
	}
	if !ok {
		HandleChooseCity(ctx, b, callback, h)
		return
	}

	places, err := h.CatalogService.PlacesByServiceAndCity(ctx, serviceID, cityID)
	if err != nil {
		h.Logger.Error("Failed to get places", zap.Error(err), zap.Int64("service_id", serviceID))
		AnswerCallbackAlert(ctx, b, callback.ID, "❌ Произошла ошибка. Попробуйте позже.")
		return
	}

	sid := strconv.FormatInt(serviceID, 10)
	keyboard := make([][]models.InlineKeyboardButton, 0, len(places)+1)
	for _, place := range places {
		keyboard = append(keyboard, []models.InlineKeyboardButton{
			{Text: "📍 " + place.Address, CallbackData: Days + strconv.FormatInt(place.ID, 10) + ":" + sid},
		})
	}
	keyboard = append(keyboard, BackRow("↩️ Назад", RecordStart))

	text := "🏢 Где вам удобно?"
	if len(places) == 0 {
		text = "😔 Эту услугу пока не делают в вашем городе."
	}

	EditMessage(ctx, b, callback, h, text, &models.InlineKeyboardMarkup{InlineKeyboard: keyboard})
	AnswerCallback(ctx, b, callback.ID, "")
}

// HandleCenters сети салонов выбранного вида с точками в городе
func HandleCenters(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *Handler) {
	typeID, err := ParseIDFromCallback(callback.Data)
	if err != nil {
		h.Logger.Error("Failed to parse type ID", zap.Error(err), zap.String("data", callback.Data))
		AnswerCallbackAlert(ctx, b, callback.ID, "❌ Неверный формат")
		return
	}

	cityID, ok, err := userCityID(ctx, h, callback.From.ID)
	if err != nil {
		h.Logger.Error("Failed to get user", zap.Error(err))
		AnswerCallbackAlert(ctx, b, callback.ID, "❌ Произошла ошибка. Попробуйте позже.")
		return
	}
	if !ok {
		HandleChooseCity(ctx, b, callback, h)
		return
	}

	centers, err := h.CatalogService.CentersByTypeAndCity(ctx, typeID, cityID)
	if err != nil {
		h.Logger.Error("Failed to get centers", zap.Error(err), zap.Int64("type_id", typeID))
		AnswerCallbackAlert(ctx, b, callback.ID, "❌ Произошла ошибка. Попробуйте позже.")
		return
	}

	keyboard := make([][]models.InlineKeyboardButton, 0, len(centers)+1)
	for _, center := range centers {
		keyboard = append(keyboard, []models.InlineKeyboardButton{
			{Text: center.Name, CallbackData: CenterPlaces + strconv.FormatInt(center.ID, 10)},
		})
	}
	keyboard = append(keyboard, BackRow("↩️ Назад", RecordType+strconv.FormatInt(typeID, 10)))

	text := "🏢 Выберите салон:"
	if len(centers) == 0 {
		text = "😔 В вашем городе пока нет таких салонов."
	}

	EditMessage(ctx, b, callback, h, text, &models.InlineKeyboardMarkup{InlineKeyboard: keyboard})
	AnswerCallback(ctx, b, callback.ID, "")
}

// HandleCenterPlaces адреса сети в городе пользователя
func HandleCenterPlaces(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *Handler) {
	centerID, err := ParseIDFromCallback(callback.Data)
	if err != nil {
		h.Logger.Error("Failed to parse center ID", zap.Error(err), zap.String("data", callback.Data))
		AnswerCallbackAlert(ctx, b, callback.ID, "❌ Неверный формат")
		return
	}

	cityID, ok, err := userCityID(ctx, h, callback.From.ID)
	if err != nil {
		h.Logger.Error("Failed to get user", zap.Error(err))
		AnswerCallbackAlert(ctx, b, callback.ID, "❌ Произошла ошибка. Попробуйте позже.")
		return
	}
	if !ok {
		HandleChooseCity(ctx, b, callback, h)
		return
	}

	center, err := h.CatalogService.Center(ctx, centerID)
	if err != nil {
		h.Logger.Error("Failed to get center", zap.Error(err), zap.Int64("center_id", centerID))
		AnswerCallbackAlert(ctx, b, callback.ID, "❌ Салон не найден")
		return
	}

	places, err := h.CatalogService.PlacesByCenterAndCity(ctx, centerID, cityID)
	if err != nil {
		h.Logger.Error("Failed to get places", zap.Error(err), zap.Int64("center_id", centerID))
		AnswerCallbackAlert(ctx, b, callback.ID, "❌ Произошла ошибка. Попробуйте позже.")
		return
	}

	keyboard := make([][]models.InlineKeyboardButton, 0, len(places)+1)
	for _, place := range places {
		keyboard = append(keyboard, []models.InlineKeyboardButton{
			{Text: "📍 " + place.Address, CallbackData: PlaceServices + strconv.FormatInt(place.ID, 10)},
		})
	}
	keyboard = append(keyboard, BackRow("↩️ Назад", Centers+strconv.FormatInt(center.TypeID, 10)))

	text := fmt.Sprintf("🏢 %s\n\nВыберите адрес:", center.Name)
	if len(places) == 0 {
		text = fmt.Sprintf("😔 У сети «%s» пока нет салонов в вашем городе.", center.Name)
	}

	EditMessage(ctx, b, callback, h, text, &models.InlineKeyboardMarkup{InlineKeyboard: keyboard})
	AnswerCallback(ctx, b, callback.ID, "")
}

// placeServicesView текст и клавиатура списка услуг салона
func placeServicesView(ctx context.Context, h *Handler, place *model.Place) (string, *models.InlineKeyboardMarkup, error) {
	services, err := h.CatalogService.ServicesByPlace(ctx, place.ID)
	if err != nil {
		return "", nil, err
	}

	pid := strconv.FormatInt(place.ID, 10)
	keyboard := make([][]models.InlineKeyboardButton, 0, len(services)+1)
	for _, svc := range services {
		keyboard = append(keyboard, []models.InlineKeyboardButton{
			{Text: serviceLabel(svc), CallbackData: Days + pid + ":" + strconv.FormatInt(svc.ID, 10)},
		})
	}
	keyboard = append(keyboard, BackRow("↩️ В меню", MainMenu))

	header := "📍 " + place.Address
	if place.Center != nil {
		header = fmt.Sprintf("🏢 %s\n📍 %s", place.Center.Name, place.Address)
	}

	text := header + "\n\nВыберите услугу:"
	if len(services) == 0 {
		text = header + "\n\n😔 В этом салоне пока нет услуг."
	}

	return text, &models.InlineKeyboardMarkup{InlineKeyboard: keyboard}, nil
}

// HandlePlaceServices услуги выбранного салона
func HandlePlaceServices(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *Handler) {
	placeID, err := ParseIDFromCallback(callback.Data)
	if err != nil {
		h.Logger.Error("Failed to parse place ID", zap.Error(err), zap.String("data", callback.Data))
		AnswerCallbackAlert(ctx, b, callback.ID, "❌ Неверный формат")
		return
	}

	place, err := h.CatalogService.Place(ctx, placeID)
	if err != nil {
		h.Logger.Error("Failed to get place", zap.Error(err), zap.Int64("place_id", placeID))
		AnswerCallbackAlert(ctx, b, callback.ID, "❌ Салон не найден")
		return
	}

	text, keyboard, err := placeServicesView(ctx, h, place)
	if err != nil {
		h.Logger.Error("Failed to get place services", zap.Error(err), zap.Int64("place_id", placeID))
		AnswerCallbackAlert(ctx, b, callback.ID, "❌ Произошла ошибка. Попробуйте позже.")
		return
	}

	EditMessage(ctx, b, callback, h, text, keyboard)
	AnswerCallback(ctx, b, callback.ID, "")
}

// SendPlaceServices отправляет услуги салона новым сообщением.
// Используется для входа по ссылке салона /start <код>.
func SendPlaceServices(ctx context.Context, b *bot.Bot, h *Handler, chatID int64, place *model.Place) {
	text, keyboard, err := placeServicesView(ctx, h, place)
	if err != nil {
		h.Logger.Error("Failed to get place services", zap.Error(err), zap.Int64("place_id", place.ID))
		SendMessage(ctx, b, h, chatID, "❌ Произошла ошибка. Попробуйте позже.", nil)
		return
	}

	SendMessage(ctx, b, h, chatID, text, keyboard)
}

// resumePendingPlace возвращает пользователя к услугам салона из deep link,
// если такой салон был отложен до завершения регистрации
func resumePendingPlace(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *Handler) bool {
	telegramID := callback.From.ID
	value, ok := h.StateManager.GetData(telegramID, state.DataPendingPlaceID)
	if !ok {
		return false
	}
	h.StateManager.ClearData(telegramID, state.DataPendingPlaceID)

	placeID, ok := value.(int64)
	if !ok {
		return false
	}

	place, err := h.CatalogService.Place(ctx, placeID)
	if err != nil {
		h.Logger.Warn("Pending place is gone", zap.Error(err), zap.Int64("place_id", placeID))
		return false
	}

	text, keyboard, err := placeServicesView(ctx, h, place)
	if err != nil {
		h.Logger.Error("Failed to get place services", zap.Error(err), zap.Int64("place_id", placeID))
		return false
	}

	EditMessage(ctx, b, callback, h, text, keyboard)
	return true
}

// HandleDays дни, на которые можно записаться
func HandleDays(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *Handler) {
	placeID, serviceID, err := ParsePairID(callback.Data, Days)
	if err != nil {
		h.Logger.Error("Failed to parse pair", zap.Error(err), zap.String("data", callback.Data))
		AnswerCallbackAlert(ctx, b, callback.ID, "❌ Неверный формат")
		return
	}

	days, err := h.AvailabilityService.ListDays(ctx, placeID, serviceID)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			AnswerCallbackAlert(ctx, b, callback.ID, "❌ Услуга или салон не найдены")
			return
		}
		h.Logger.Error("Failed to list days", zap.Error(err),
			zap.Int64("place_id", placeID), zap.Int64("service_id", serviceID))
		AnswerCallbackAlert(ctx, b, callback.ID, "❌ Произошла ошибка. Попробуйте позже.")
		return
	}

	prefix := Times + strconv.FormatInt(placeID, 10) + ":" + strconv.FormatInt(serviceID, 10) + ":"
	keyboard := make([][]models.InlineKeyboardButton, 0, len(days)/3+2)
	row := make([]models.InlineKeyboardButton, 0, 3)
	for _, day := range days {
		row = append(row, models.InlineKeyboardButton{Text: day.Label, CallbackData: prefix + day.Key})
		if len(row) == 3 {
			keyboard = append(keyboard, row)
			row = make([]models.InlineKeyboardButton, 0, 3)
		}
	}
	if len(row) > 0 {
		keyboard = append(keyboard, row)
	}
	keyboard = append(keyboard, BackRow("↩️ Назад", PlaceServices+strconv.FormatInt(placeID, 10)))

	EditMessage(ctx, b, callback, h,
		"📅 Выберите день:",
		&models.InlineKeyboardMarkup{InlineKeyboard: keyboard})
	AnswerCallback(ctx, b, callback.ID, "")
}

// HandleTimes свободные слоты выбранного дня
func HandleTimes(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *Handler) {
	placeID, serviceID, dayKey, err := ParseSlotArgs(callback.Data, Times)
	if err != nil {
		h.Logger.Error("Failed to parse slot args", zap.Error(err), zap.String("data", callback.Data))
		AnswerCallbackAlert(ctx, b, callback.ID, "❌ Неверный формат")
		return
	}

	showTimes(ctx, b, callback, h, placeID, serviceID, dayKey)
}

// showTimes показывает свободные слоты дня dayKey
func showTimes(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *Handler, placeID, serviceID int64, dayKey string) {
	slots, err := h.AvailabilityService.ListTimes(ctx, placeID, serviceID, dayKey)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			AnswerCallbackAlert(ctx, b, callback.ID, "❌ Услуга или салон не найдены")
			return
		}
		h.Logger.Error("Failed to list times", zap.Error(err),
			zap.Int64("place_id", placeID), zap.Int64("service_id", serviceID), zap.String("day", dayKey))
		AnswerCallbackAlert(ctx, b, callback.ID, "❌ Произошла ошибка. Попробуйте позже.")
		return
	}

	pair := strconv.FormatInt(placeID, 10) + ":" + strconv.FormatInt(serviceID, 10)
	keyboard := make([][]models.InlineKeyboardButton, 0, len(slots)/3+2)
	row := make([]models.InlineKeyboardButton, 0, 3)
	for _, slot := range slots {
		row = append(row, models.InlineKeyboardButton{
			Text:         formatting.FormatTime(slot.Start),
			CallbackData: Confirm + pair + ":" + slot.Start.Format(service.TimeKeyLayout),
		})
		if len(row) == 3 {
			keyboard = append(keyboard, row)
			row = make([]models.InlineKeyboardButton, 0, 3)
		}
	}
	if len(row) > 0 {
		keyboard = append(keyboard, row)
	}
	keyboard = append(keyboard, BackRow("↩️ Назад", Days+pair))

	text := "🕐 Выберите время:"
	if len(slots) == 0 {
		text = "😔 На этот день всё занято. Попробуйте другой день."
	}

	EditMessage(ctx, b, callback, h, text, &models.InlineKeyboardMarkup{InlineKeyboard: keyboard})
	AnswerCallback(ctx, b, callback.ID, "")
}

// HandleConfirm экран подтверждения перед записью
func HandleConfirm(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *Handler) {
	placeID, serviceID, timeKey, err := ParseSlotArgs(callback.Data, Confirm)
	if err != nil {
		h.Logger.Error("Failed to parse slot args", zap.Error(err), zap.String("data", callback.Data))
		AnswerCallbackAlert(ctx, b, callback.ID, "❌ Неверный формат")
		return
	}

	start, err := time.ParseInLocation(service.TimeKeyLayout, timeKey, time.Local)
	if err != nil {
		h.Logger.Error("Failed to parse time key", zap.Error(err), zap.String("data", callback.Data))
		AnswerCallbackAlert(ctx, b, callback.ID, "❌ Неверный формат")
		return
	}

	place, err := h.CatalogService.Place(ctx, placeID)
	if err != nil {
		h.Logger.Error("Failed to get place", zap.Error(err), zap.Int64("place_id", placeID))
		AnswerCallbackAlert(ctx, b, callback.ID, "❌ Салон не найден")
		return
	}

	svc, err := h.CatalogService.Service(ctx, serviceID)
	if err != nil {
		h.Logger.Error("Failed to get service", zap.Error(err), zap.Int64("service_id", serviceID))
		AnswerCallbackAlert(ctx, b, callback.ID, "❌ Услуга не найдена")
		return
	}

	header := "📍 " + place.Address
	if place.Center != nil {
		header = fmt.Sprintf("🏢 %s\n📍 %s", place.Center.Name, place.Address)
	}

	end := start.Add(time.Duration(svc.Duration) * time.Minute)
	text := fmt.Sprintf(
		"📋 Проверьте запись:\n\n%s\n💅 %s\n📅 %s (%s)\n🕐 %s\n\nЗаписываем?",
		header,
		svc.Name,
		formatting.FormatDate(start),
		formatting.GetWeekdayName(start.Weekday()),
		formatting.FormatTimeRange(start, end),
	)

	pair := strconv.FormatInt(placeID, 10) + ":" + strconv.FormatInt(serviceID, 10)
	keyboard := &models.InlineKeyboardMarkup{
		InlineKeyboard: [][]models.InlineKeyboardButton{
			{{Text: "✅ Записаться", CallbackData: Book + pair + ":" + timeKey}},
			BackRow("↩️ Назад", Times+pair+":"+start.Format(service.DayKeyLayout)),
		},
	}

	EditMessage(ctx, b, callback, h, text, keyboard)
	AnswerCallback(ctx, b, callback.ID, "")
}

// HandleBook создаёт запись. Если слот успели занять, показывает
// оставшиеся слоты того же дня.
func HandleBook(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *Handler) {
	placeID, serviceID, timeKey, err := ParseSlotArgs(callback.Data, Book)
	if err != nil {
		h.Logger.Error("Failed to parse slot args", zap.Error(err), zap.String("data", callback.Data))
		AnswerCallbackAlert(ctx, b, callback.ID, "❌ Неверный формат")
		return
	}

	start, err := time.ParseInLocation(service.TimeKeyLayout, timeKey, time.Local)
	if err != nil {
		h.Logger.Error("Failed to parse time key", zap.Error(err), zap.String("data", callback.Data))
		AnswerCallbackAlert(ctx, b, callback.ID, "❌ Неверный формат")
		return
	}

	record, err := h.RecordService.Book(ctx, callback.From.ID, placeID, serviceID, start)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSlotConflict):
			AnswerCallbackAlert(ctx, b, callback.ID, "😔 Это время уже заняли. Выберите другое.")
			showTimes(ctx, b, callback, h, placeID, serviceID, start.Format(service.DayKeyLayout))
		case errors.Is(err, service.ErrNotFound):
			AnswerCallbackAlert(ctx, b, callback.ID, "❌ Услуга или салон не найдены")
		default:
			h.Logger.Error("Failed to book", zap.Error(err),
				zap.Int64("place_id", placeID), zap.Int64("service_id", serviceID))
			AnswerCallbackAlert(ctx, b, callback.ID, "❌ Произошла ошибка. Попробуйте позже.")
		}
		return
	}

	text := fmt.Sprintf(
		"🎉 Вы записаны!\n\n%s\n\nСтатус записи:\n%s\n\nСледить за записью можно в «Мои записи».",
		recordSummary(record, time.Now()),
		statusLegend,
	)

	keyboard := &models.InlineKeyboardMarkup{
		InlineKeyboard: [][]models.InlineKeyboardButton{
			{{Text: "📅 Мои записи", CallbackData: MyRecords}},
			BackRow("↩️ В меню", MainMenu),
		},
	}

	EditMessage(ctx, b, callback, h, text, keyboard)
	AnswerCallback(ctx, b, callback.ID, "✅ Запись создана")
}
