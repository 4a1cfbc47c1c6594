package service

import (
	"context"
	"fmt"
	"time"

	"github.com/uoyyy/salon-krasotok/internal/formatting"
	"github.com/uoyyy/salon-krasotok/internal/model"
	"go.uber.org/zap"
)

const (
	// DayKeyLayout машиночитаемый ключ дня в callback data
	DayKeyLayout = "2006-01-02"
	// TimeKeyLayout машиночитаемый ключ времени начала слота в callback data
	TimeKeyLayout = "2006-01-02T15:04"

	// DefaultDayCount сколько дней предлагать для записи
	DefaultDayCount = 9
)

// validateWindow проверяет конфигурацию пары (салон, услуга)
func validateWindow(place *model.Place, svc *model.Service) error {
	if place.OpenHour < 0 || place.CloseHour > 24 || place.OpenHour >= place.CloseHour {
		return fmt.Errorf("place %d window [%d, %d): %w", place.ID, place.OpenHour, place.CloseHour, ErrInvalidWindow)
	}
	if svc.Duration <= 0 {
		return fmt.Errorf("service %d duration %d: %w", svc.ID, svc.Duration, ErrInvalidWindow)
	}
	return nil
}

// GenerateSlots выкладывает слоты услуги по рабочему окну салона на день day.
// Чистая функция: замощение начинается в open_hour и шагает на длительность
// услуги, слот попадает в результат пока целиком помещается до закрытия
// (t + duration <= close). Хвост короче длительности отбрасывается.
// Сетка стартов зависит от длительности услуги, а не от круглых времён.
func GenerateSlots(place *model.Place, svc *model.Service, day time.Time) ([]model.Slot, error) {
	if err := validateWindow(place, svc); err != nil {
		return nil, err
	}

	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	open := dayStart.Add(time.Duration(place.OpenHour) * time.Hour)
	close := dayStart.Add(time.Duration(place.CloseHour) * time.Hour)
	step := time.Duration(svc.Duration) * time.Minute

	var slots []model.Slot
	for t := open; !t.Add(step).After(close); t = t.Add(step) {
		slots = append(slots, model.Slot{Start: t, End: t.Add(step)})
	}

	return slots, nil
}

// NextBookableDays возвращает ближайшие дни для записи. Отсчёт с сегодня,
// но если салон на текущий час уже закрылся — с завтра. День может оказаться
// полностью занятым: это обнаружит уже выбор времени, показав пустой список.
func NextBookableDays(place *model.Place, now time.Time, count int) []model.Day {
	start := now
	if now.Hour() >= place.CloseHour {
		start = now.AddDate(0, 0, 1)
	}

	days := make([]model.Day, 0, count)
	for i := 0; i < count; i++ {
		d := start.AddDate(0, 0, i)
		days = append(days, model.Day{
			Label: fmt.Sprintf("%s %s", formatting.GetWeekdayShortName(d.Weekday()), d.Format("02.01")),
			Key:   d.Format(DayKeyLayout),
		})
	}

	return days
}

// AvailabilityService отдаёт доступные дни и времена для записи.
// Ничего не кэширует: каждый вызов заново читает хранилище, потому что
// конкурентные записи меняют доступность между вызовами.
type AvailabilityService struct {
	catalog Catalog
	records RecordStore
	logger  *zap.Logger
	now     func() time.Time
}

func NewAvailabilityService(catalog Catalog, records RecordStore, logger *zap.Logger) *AvailabilityService {
	return &AvailabilityService{
		catalog: catalog,
		records: records,
		logger:  logger,
		now:     time.Now,
	}
}

// resolvePair получает салон и услугу и проверяет, что услуга доступна в салоне
func (s *AvailabilityService) resolvePair(ctx context.Context, placeID, serviceID int64) (*model.Place, *model.Service, error) {
	place, err := s.catalog.Place(ctx, placeID)
	if err != nil {
		return nil, nil, fmt.Errorf("get place: %w", err)
	}
	if place == nil {
		return nil, nil, fmt.Errorf("place %d: %w", placeID, ErrNotFound)
	}

	svc, err := s.catalog.Service(ctx, serviceID)
	if err != nil {
		return nil, nil, fmt.Errorf("get service: %w", err)
	}
	if svc == nil {
		return nil, nil, fmt.Errorf("service %d: %w", serviceID, ErrNotFound)
	}

	pair, err := s.catalog.ServicePlace(ctx, placeID, serviceID)
	if err != nil {
		return nil, nil, fmt.Errorf("get service place: %w", err)
	}
	if pair == nil {
		return nil, nil, fmt.Errorf("service %d is not offered at place %d: %w", serviceID, placeID, ErrNotFound)
	}

	return place, svc, nil
}

// ListDays возвращает дни, на которые можно записаться на услугу в салоне
func (s *AvailabilityService) ListDays(ctx context.Context, placeID, serviceID int64) ([]model.Day, error) {
	place, svc, err := s.resolvePair(ctx, placeID, serviceID)
	if err != nil {
		return nil, err
	}

	if err := validateWindow(place, svc); err != nil {
		return nil, err
	}

	return NextBookableDays(place, s.now(), DefaultDayCount), nil
}

// AvailableTimes фильтрует слоты дня: остаются только строго будущие
// и не пересекающиеся ни с одной существующей записью салона.
// Порядок хронологический. Полностью занятый день — пустой список, не ошибка.
func (s *AvailabilityService) AvailableTimes(ctx context.Context, place *model.Place, svc *model.Service, day time.Time) ([]model.Slot, error) {
	slots, err := GenerateSlots(place, svc, day)
	if err != nil {
		return nil, err
	}

	now := s.now()
	available := make([]model.Slot, 0, len(slots))
	for _, slot := range slots {
		if !slot.Start.After(now) {
			continue
		}

		busy, err := s.records.ExistsOverlapping(ctx, place.ID, slot.Start, slot.End)
		if err != nil {
			return nil, fmt.Errorf("check slot availability: %w", err)
		}
		if busy {
			continue
		}

		available = append(available, slot)
	}

	return available, nil
}

// ListTimes возвращает доступные слоты на день с ключом dayKey
func (s *AvailabilityService) ListTimes(ctx context.Context, placeID, serviceID int64, dayKey string) ([]model.Slot, error) {
	place, svc, err := s.resolvePair(ctx, placeID, serviceID)
	if err != nil {
		return nil, err
	}

	day, err := time.ParseInLocation(DayKeyLayout, dayKey, time.Local)
	if err != nil {
		return nil, fmt.Errorf("parse day key %q: %w", dayKey, err)
	}

	times, err := s.AvailableTimes(ctx, place, svc, day)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("Listed available times",
		zap.Int64("place_id", placeID),
		zap.Int64("service_id", serviceID),
		zap.String("day", dayKey),
		zap.Int("count", len(times)),
	)

	return times, nil
}
