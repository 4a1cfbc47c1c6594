package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/uoyyy/salon-krasotok/internal/model"
	"go.uber.org/zap"
)

// RecordService создаёт записи и управляет их подтверждением и отменой
type RecordService struct {
	catalog  Catalog
	records  RecordStore
	users    UserStore
	notifier Notifier
	logger   *zap.Logger
	now      func() time.Time
}

func NewRecordService(catalog Catalog, records RecordStore, users UserStore, logger *zap.Logger) *RecordService {
	return &RecordService{
		catalog: catalog,
		records: records,
		users:   users,
		logger:  logger,
		now:     time.Now,
	}
}

// SetNotifier подключает доставку уведомлений владельцу салона.
// Вызывается при сборке приложения, после создания бота.
func (s *RecordService) SetNotifier(n Notifier) {
	s.notifier = n
}

// Book создаёт запись на start для пары (салон, услуга). Ожидается, что
// start взят из AvailableTimes, но проверка конфликта выполняется заново
// при вставке: между показом слота и нажатием кнопки его мог занять другой
// пользователь. Запись создаётся неподтверждённой (active=false).
func (s *RecordService) Book(ctx context.Context, userID, placeID, serviceID int64, start time.Time) (*model.Record, error) {
	place, err := s.catalog.Place(ctx, placeID)
	if err != nil {
		return nil, fmt.Errorf("get place: %w", err)
	}
	if place == nil {
		return nil, fmt.Errorf("place %d: %w", placeID, ErrNotFound)
	}

	svc, err := s.catalog.Service(ctx, serviceID)
	if err != nil {
		return nil, fmt.Errorf("get service: %w", err)
	}
	if svc == nil {
		return nil, fmt.Errorf("service %d: %w", serviceID, ErrNotFound)
	}

	pair, err := s.catalog.ServicePlace(ctx, placeID, serviceID)
	if err != nil {
		return nil, fmt.Errorf("get service place: %w", err)
	}
	if pair == nil {
		return nil, fmt.Errorf("service %d is not offered at place %d: %w", serviceID, placeID, ErrNotFound)
	}

	if err := validateWindow(place, svc); err != nil {
		return nil, err
	}

	// Прошедший слот уже нельзя предложить, для вызывающего это тот же
	// устаревший выбор, что и занятый слот
	if !start.After(s.now()) {
		return nil, fmt.Errorf("start %s is not in the future: %w", start.Format(TimeKeyLayout), ErrSlotConflict)
	}

	record := &model.Record{
		UserID:    userID,
		PlaceID:   placeID,
		ServiceID: serviceID,
		StartTime: start,
		EndTime:   start.Add(time.Duration(svc.Duration) * time.Minute),
		Active:    false,
	}

	if err := s.records.Create(ctx, record); err != nil {
		if errors.Is(err, ErrSlotConflict) {
			s.logger.Info("Booking conflict",
				zap.Int64("user_id", userID),
				zap.Int64("place_id", placeID),
				zap.Int64("service_id", serviceID),
				zap.Time("start_time", start),
			)
			return nil, err
		}
		return nil, fmt.Errorf("create record: %w", err)
	}

	record.Place = place
	record.Service = svc
	if user, err := s.users.GetByID(ctx, userID); err == nil {
		record.User = user
	}

	s.logger.Info("Record created",
		zap.Int64("record_id", record.ID),
		zap.Int64("user_id", userID),
		zap.Int64("place_id", placeID),
		zap.Int64("service_id", serviceID),
		zap.Time("start_time", start),
	)

	if s.notifier != nil {
		s.notifier.RecordCreated(ctx, record)
	}

	return record, nil
}

// Confirm подтверждает запись от имени салона (active: false -> true)
func (s *RecordService) Confirm(ctx context.Context, recordID int64) error {
	if err := s.records.SetActive(ctx, recordID, true); err != nil {
		return fmt.Errorf("confirm record %d: %w", recordID, err)
	}

	s.logger.Info("Record confirmed", zap.Int64("record_id", recordID))
	return nil
}

// Cancel удаляет запись. Отменить может любая сторона в любой момент,
// до или после подтверждения; отмена несуществующей записи — не ошибка.
func (s *RecordService) Cancel(ctx context.Context, recordID int64) error {
	if err := s.records.Delete(ctx, recordID); err != nil {
		return fmt.Errorf("cancel record %d: %w", recordID, err)
	}

	s.logger.Info("Record canceled", zap.Int64("record_id", recordID))
	return nil
}

// GetRecord получает запись с данными салона и услуги
func (s *RecordService) GetRecord(ctx context.Context, recordID int64) (*model.Record, error) {
	record, err := s.records.GetByID(ctx, recordID)
	if err != nil {
		return nil, fmt.Errorf("get record: %w", err)
	}
	if record == nil {
		return nil, fmt.Errorf("record %d: %w", recordID, ErrNotFound)
	}

	if err := s.hydrate(ctx, record); err != nil {
		return nil, err
	}

	return record, nil
}

// UserRecords возвращает актуальные записи пользователя по возрастанию
// времени начала. Прошедшие записи в списке не показываются.
func (s *RecordService) UserRecords(ctx context.Context, userID int64) ([]*model.Record, error) {
	records, err := s.records.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get user records: %w", err)
	}

	now := s.now()
	actual := make([]*model.Record, 0, len(records))
	for _, record := range records {
		if record.Urgency(now) == model.UrgencyElapsed {
			continue
		}
		if err := s.hydrate(ctx, record); err != nil {
			return nil, err
		}
		actual = append(actual, record)
	}

	return actual, nil
}

// SendDueReminders отправляет владельцам напоминания о записях,
// начинающихся в течение ближайшего часа. Вызывается фоновым циклом.
func (s *RecordService) SendDueReminders(ctx context.Context) error {
	now := s.now()
	records, err := s.records.DueForReminder(ctx, now, now.Add(time.Hour))
	if err != nil {
		return fmt.Errorf("get due reminders: %w", err)
	}

	for _, record := range records {
		if err := s.hydrate(ctx, record); err != nil {
			s.logger.Warn("Failed to hydrate record for reminder",
				zap.Int64("record_id", record.ID),
				zap.Error(err))
			continue
		}

		if s.notifier != nil {
			s.notifier.RecordReminder(ctx, record)
		}

		if err := s.records.MarkReminderSent(ctx, record.ID); err != nil {
			s.logger.Warn("Failed to mark reminder sent",
				zap.Int64("record_id", record.ID),
				zap.Error(err))
		}
	}

	if len(records) > 0 {
		s.logger.Info("Sent record reminders", zap.Int("count", len(records)))
	}

	return nil
}

// hydrate заполняет связанные объекты для отображения и уведомлений
func (s *RecordService) hydrate(ctx context.Context, record *model.Record) error {
	if record.Place == nil {
		place, err := s.catalog.Place(ctx, record.PlaceID)
		if err != nil {
			return fmt.Errorf("get record place: %w", err)
		}
		record.Place = place
	}

	if record.Service == nil {
		svc, err := s.catalog.Service(ctx, record.ServiceID)
		if err != nil {
			return fmt.Errorf("get record service: %w", err)
		}
		record.Service = svc
	}

	if record.User == nil {
		user, err := s.users.GetByID(ctx, record.UserID)
		if err != nil {
			return fmt.Errorf("get record user: %w", err)
		}
		record.User = user
	}

	return nil
}
