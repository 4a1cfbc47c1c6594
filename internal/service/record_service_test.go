package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uoyyy/salon-krasotok/internal/model"
	"go.uber.org/zap"
)

func newTestRecordService(t *testing.T, records RecordStore, users UserStore, now time.Time) *RecordService {
	t.Helper()
	s := NewRecordService(testCatalog(), records, users, zap.NewNop())
	s.now = func() time.Time { return now }
	return s
}

func TestRecordServiceBook(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.Local)

	t.Run("creates unconfirmed record", func(t *testing.T) {
		records := newMemRecordStore()
		s := newTestRecordService(t, records, newMemUserStore(), now)

		start := time.Date(2026, 9, 2, 10, 0, 0, 0, time.Local)
		record, err := s.Book(ctx, 42, 1, 1, start)
		require.NoError(t, err)

		assert.NotZero(t, record.ID)
		assert.False(t, record.Active)
		assert.Equal(t, start, record.StartTime)
		assert.Equal(t, start.Add(time.Hour), record.EndTime)
		require.NotNil(t, record.Place)
		require.NotNil(t, record.Service)
		assert.Equal(t, int64(1), record.Place.ID)
	})

	t.Run("booked slot disappears from availability", func(t *testing.T) {
		records := newMemRecordStore()
		s := newTestRecordService(t, records, newMemUserStore(), now)
		avail := newTestAvailability(t, records, now)

		before, err := avail.ListTimes(ctx, 1, 1, "2026-09-02")
		require.NoError(t, err)
		require.NotEmpty(t, before)

		_, err = s.Book(ctx, 42, 1, 1, before[0].Start)
		require.NoError(t, err)

		after, err := avail.ListTimes(ctx, 1, 1, "2026-09-02")
		require.NoError(t, err)
		require.Len(t, after, len(before)-1)
		for _, slot := range after {
			assert.NotEqual(t, before[0].Start, slot.Start)
		}
	})

	t.Run("double booking returns conflict", func(t *testing.T) {
		records := newMemRecordStore()
		s := newTestRecordService(t, records, newMemUserStore(), now)

		start := time.Date(2026, 9, 2, 10, 0, 0, 0, time.Local)
		_, err := s.Book(ctx, 42, 1, 1, start)
		require.NoError(t, err)

		_, err = s.Book(ctx, 43, 1, 1, start)
		assert.ErrorIs(t, err, ErrSlotConflict)
	})

	t.Run("overlapping booking of another service conflicts", func(t *testing.T) {
		records := newMemRecordStore()
		s := newTestRecordService(t, records, newMemUserStore(), now)

		_, err := s.Book(ctx, 42, 1, 1, time.Date(2026, 9, 2, 10, 0, 0, 0, time.Local))
		require.NoError(t, err)

		// 45-минутная услуга, старт 9:45, пересекает 10:00-11:00
		_, err = s.Book(ctx, 43, 1, 2, time.Date(2026, 9, 2, 9, 45, 0, 0, time.Local))
		assert.ErrorIs(t, err, ErrSlotConflict)
	})

	t.Run("concurrent booking has a single winner", func(t *testing.T) {
		records := newMemRecordStore()
		s := newTestRecordService(t, records, newMemUserStore(), now)

		start := time.Date(2026, 9, 2, 10, 0, 0, 0, time.Local)
		errs := make([]error, 2)
		var wg sync.WaitGroup
		for i := 0; i < 2; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				_, errs[i] = s.Book(ctx, int64(100+i), 1, 1, start)
			}(i)
		}
		wg.Wait()

		winners := 0
		for _, err := range errs {
			if err == nil {
				winners++
			} else {
				assert.ErrorIs(t, err, ErrSlotConflict)
			}
		}
		assert.Equal(t, 1, winners)
	})

	t.Run("last slot of the day is bookable", func(t *testing.T) {
		records := newMemRecordStore()
		s := newTestRecordService(t, records, newMemUserStore(), now)

		// салон закрывается в 18:00, услуга на час: последний старт 17:00
		record, err := s.Book(ctx, 42, 1, 1, time.Date(2026, 9, 2, 17, 0, 0, 0, time.Local))
		require.NoError(t, err)
		assert.Equal(t, time.Date(2026, 9, 2, 18, 0, 0, 0, time.Local), record.EndTime)
	})

	t.Run("past start is a conflict", func(t *testing.T) {
		s := newTestRecordService(t, newMemRecordStore(), newMemUserStore(), now)

		_, err := s.Book(ctx, 42, 1, 1, now.Add(-time.Hour))
		assert.ErrorIs(t, err, ErrSlotConflict)
	})

	t.Run("unknown place", func(t *testing.T) {
		s := newTestRecordService(t, newMemRecordStore(), newMemUserStore(), now)

		_, err := s.Book(ctx, 42, 99, 1, now.Add(time.Hour))
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("unknown service", func(t *testing.T) {
		s := newTestRecordService(t, newMemRecordStore(), newMemUserStore(), now)

		_, err := s.Book(ctx, 42, 1, 99, now.Add(time.Hour))
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("notifier is called on success", func(t *testing.T) {
		s := newTestRecordService(t, newMemRecordStore(), newMemUserStore(), now)
		notifier := &memNotifier{}
		s.SetNotifier(notifier)

		_, err := s.Book(ctx, 42, 1, 1, time.Date(2026, 9, 2, 10, 0, 0, 0, time.Local))
		require.NoError(t, err)
		assert.Equal(t, 1, notifier.createdCount())
	})
}

func TestRecordServiceConfirm(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.Local)
	s := newTestRecordService(t, newMemRecordStore(), newMemUserStore(), now)

	record, err := s.Book(ctx, 42, 1, 1, time.Date(2026, 9, 2, 10, 0, 0, 0, time.Local))
	require.NoError(t, err)

	t.Run("activates record", func(t *testing.T) {
		require.NoError(t, s.Confirm(ctx, record.ID))

		got, err := s.GetRecord(ctx, record.ID)
		require.NoError(t, err)
		assert.True(t, got.Active)
	})

	t.Run("missing record", func(t *testing.T) {
		err := s.Confirm(ctx, 999)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestRecordServiceCancel(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.Local)
	records := newMemRecordStore()
	s := newTestRecordService(t, records, newMemUserStore(), now)
	avail := newTestAvailability(t, records, now)

	start := time.Date(2026, 9, 2, 10, 0, 0, 0, time.Local)
	record, err := s.Book(ctx, 42, 1, 1, start)
	require.NoError(t, err)

	t.Run("frees the slot", func(t *testing.T) {
		require.NoError(t, s.Cancel(ctx, record.ID))

		_, err := s.GetRecord(ctx, record.ID)
		assert.ErrorIs(t, err, ErrNotFound)

		times, err := avail.ListTimes(ctx, 1, 1, "2026-09-02")
		require.NoError(t, err)
		found := false
		for _, slot := range times {
			if slot.Start.Equal(start) {
				found = true
			}
		}
		assert.True(t, found, "canceled slot must be bookable again")
	})

	t.Run("missing record is a no-op", func(t *testing.T) {
		assert.NoError(t, s.Cancel(ctx, 999))
	})
}

func TestRecordServiceUserRecords(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.Local)
	records := newMemRecordStore()
	s := newTestRecordService(t, records, newMemUserStore(), now)

	// прошедшая запись — напрямую в хранилище, Book её не пропустит
	require.NoError(t, records.Create(ctx, &model.Record{
		UserID:    42,
		PlaceID:   1,
		ServiceID: 1,
		StartTime: time.Date(2026, 8, 30, 10, 0, 0, 0, time.Local),
		EndTime:   time.Date(2026, 8, 30, 11, 0, 0, 0, time.Local),
	}))

	_, err := s.Book(ctx, 42, 1, 1, time.Date(2026, 9, 3, 10, 0, 0, 0, time.Local))
	require.NoError(t, err)
	_, err = s.Book(ctx, 42, 1, 1, time.Date(2026, 9, 2, 10, 0, 0, 0, time.Local))
	require.NoError(t, err)
	_, err = s.Book(ctx, 7, 1, 1, time.Date(2026, 9, 2, 14, 0, 0, 0, time.Local))
	require.NoError(t, err)

	got, err := s.UserRecords(ctx, 42)
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.True(t, got[0].StartTime.Before(got[1].StartTime))
	for _, record := range got {
		assert.Equal(t, int64(42), record.UserID)
		assert.NotEqual(t, model.UrgencyElapsed, record.Urgency(now))
		require.NotNil(t, record.Place)
		require.NotNil(t, record.Service)
	}
}

func TestRecordServiceSendDueReminders(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.Local)
	records := newMemRecordStore()
	s := newTestRecordService(t, records, newMemUserStore(), now)
	notifier := &memNotifier{}
	s.SetNotifier(notifier)

	due := &model.Record{
		UserID:    42,
		PlaceID:   1,
		ServiceID: 1,
		StartTime: now.Add(30 * time.Minute),
		EndTime:   now.Add(90 * time.Minute),
	}
	later := &model.Record{
		UserID:    42,
		PlaceID:   1,
		ServiceID: 1,
		StartTime: now.Add(3 * time.Hour),
		EndTime:   now.Add(4 * time.Hour),
	}
	require.NoError(t, records.Create(ctx, due))
	require.NoError(t, records.Create(ctx, later))

	require.NoError(t, s.SendDueReminders(ctx))
	require.Len(t, notifier.reminders, 1)
	assert.Equal(t, due.ID, notifier.reminders[0].ID)

	// повторный вызов не шлёт напоминание второй раз
	require.NoError(t, s.SendDueReminders(ctx))
	assert.Len(t, notifier.reminders, 1)
}
