package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uoyyy/salon-krasotok/internal/model"
	"go.uber.org/zap"
)

func TestGenerateSlots(t *testing.T) {
	place := &model.Place{ID: 1, OpenHour: 8, CloseHour: 18}
	day := time.Date(2026, 9, 1, 0, 0, 0, 0, time.Local)

	t.Run("hour duration tiles window exactly", func(t *testing.T) {
		slots, err := GenerateSlots(place, &model.Service{ID: 1, Duration: 60}, day)
		require.NoError(t, err)
		require.Len(t, slots, 10)

		assert.Equal(t, time.Date(2026, 9, 1, 8, 0, 0, 0, time.Local), slots[0].Start)
		assert.Equal(t, time.Date(2026, 9, 1, 9, 0, 0, 0, time.Local), slots[0].End)
		assert.Equal(t, time.Date(2026, 9, 1, 17, 0, 0, 0, time.Local), slots[9].Start)
		assert.Equal(t, time.Date(2026, 9, 1, 18, 0, 0, 0, time.Local), slots[9].End)
	})

	t.Run("last slot may end exactly at close", func(t *testing.T) {
		slots, err := GenerateSlots(place, &model.Service{ID: 1, Duration: 40}, day)
		require.NoError(t, err)
		require.Len(t, slots, 15)
		assert.Equal(t, time.Date(2026, 9, 1, 18, 0, 0, 0, time.Local), slots[14].End)
	})

	t.Run("tail shorter than duration is dropped", func(t *testing.T) {
		slots, err := GenerateSlots(place, &model.Service{ID: 2, Duration: 45}, day)
		require.NoError(t, err)
		require.Len(t, slots, 13)

		last := slots[12]
		assert.Equal(t, time.Date(2026, 9, 1, 17, 0, 0, 0, time.Local), last.Start)
		assert.Equal(t, time.Date(2026, 9, 1, 17, 45, 0, 0, time.Local), last.End)
	})

	t.Run("slots are contiguous", func(t *testing.T) {
		slots, err := GenerateSlots(place, &model.Service{ID: 1, Duration: 90}, day)
		require.NoError(t, err)
		require.NotEmpty(t, slots)
		for i := 1; i < len(slots); i++ {
			assert.Equal(t, slots[i-1].End, slots[i].Start)
		}
	})

	t.Run("duration longer than window yields no slots", func(t *testing.T) {
		slots, err := GenerateSlots(place, &model.Service{ID: 1, Duration: 11 * 60}, day)
		require.NoError(t, err)
		assert.Empty(t, slots)
	})

	t.Run("invalid window", func(t *testing.T) {
		bad := &model.Place{ID: 2, OpenHour: 18, CloseHour: 8}
		_, err := GenerateSlots(bad, &model.Service{ID: 1, Duration: 60}, day)
		assert.ErrorIs(t, err, ErrInvalidWindow)
	})

	t.Run("invalid duration", func(t *testing.T) {
		_, err := GenerateSlots(place, &model.Service{ID: 1, Duration: 0}, day)
		assert.ErrorIs(t, err, ErrInvalidWindow)
	})
}

func TestNextBookableDays(t *testing.T) {
	place := &model.Place{ID: 1, OpenHour: 8, CloseHour: 18}

	t.Run("starts today while place is open", func(t *testing.T) {
		now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.Local)
		days := NextBookableDays(place, now, DefaultDayCount)
		require.Len(t, days, DefaultDayCount)
		assert.Equal(t, "2026-09-01", days[0].Key)
		assert.Equal(t, "2026-09-09", days[8].Key)
	})

	t.Run("rolls to tomorrow after close", func(t *testing.T) {
		now := time.Date(2026, 9, 1, 18, 30, 0, 0, time.Local)
		days := NextBookableDays(place, now, DefaultDayCount)
		require.Len(t, days, DefaultDayCount)
		assert.Equal(t, "2026-09-02", days[0].Key)
	})

	t.Run("labels carry weekday", func(t *testing.T) {
		// 1 сентября 2026 — вторник
		now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.Local)
		days := NextBookableDays(place, now, 2)
		assert.Equal(t, "Вт 01.09", days[0].Label)
		assert.Equal(t, "Ср 02.09", days[1].Label)
	})
}

func newTestAvailability(t *testing.T, records RecordStore, now time.Time) *AvailabilityService {
	t.Helper()
	s := NewAvailabilityService(testCatalog(), records, zap.NewNop())
	s.now = func() time.Time { return now }
	return s
}

func TestAvailabilityServiceListDays(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.Local)
	s := newTestAvailability(t, newMemRecordStore(), now)

	t.Run("known pair", func(t *testing.T) {
		days, err := s.ListDays(ctx, 1, 1)
		require.NoError(t, err)
		assert.Len(t, days, DefaultDayCount)
	})

	t.Run("unknown place", func(t *testing.T) {
		_, err := s.ListDays(ctx, 99, 1)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("unknown service", func(t *testing.T) {
		_, err := s.ListDays(ctx, 1, 99)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestAvailabilityServiceListTimes(t *testing.T) {
	ctx := context.Background()
	records := newMemRecordStore()
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.Local)
	s := newTestAvailability(t, records, now)

	t.Run("past slots of today are hidden", func(t *testing.T) {
		times, err := s.ListTimes(ctx, 1, 1, "2026-09-01")
		require.NoError(t, err)
		// открыт 8-18, сейчас 12:00: остаются 13:00..17:00
		require.Len(t, times, 5)
		assert.Equal(t, time.Date(2026, 9, 1, 13, 0, 0, 0, time.Local), times[0].Start)
	})

	t.Run("future day offers full window", func(t *testing.T) {
		times, err := s.ListTimes(ctx, 1, 1, "2026-09-02")
		require.NoError(t, err)
		assert.Len(t, times, 10)
	})

	t.Run("booked slot disappears", func(t *testing.T) {
		err := records.Create(ctx, &model.Record{
			UserID:    1,
			PlaceID:   1,
			ServiceID: 1,
			StartTime: time.Date(2026, 9, 2, 10, 0, 0, 0, time.Local),
			EndTime:   time.Date(2026, 9, 2, 11, 0, 0, 0, time.Local),
		})
		require.NoError(t, err)

		times, err := s.ListTimes(ctx, 1, 1, "2026-09-02")
		require.NoError(t, err)
		require.Len(t, times, 9)
		for _, slot := range times {
			assert.NotEqual(t, time.Date(2026, 9, 2, 10, 0, 0, 0, time.Local), slot.Start)
		}
	})

	t.Run("overlap hides slots of a different duration", func(t *testing.T) {
		// запись 10:00-11:00 пересекает 45-минутные слоты 9:45 и 10:30
		times, err := s.ListTimes(ctx, 1, 2, "2026-09-02")
		require.NoError(t, err)
		for _, slot := range times {
			assert.False(t, slot.Start.Before(time.Date(2026, 9, 2, 11, 0, 0, 0, time.Local)) &&
				slot.End.After(time.Date(2026, 9, 2, 10, 0, 0, 0, time.Local)),
				"slot %s overlaps booked interval", slot.Start.Format(TimeKeyLayout))
		}
	})

	t.Run("repeated call returns the same result", func(t *testing.T) {
		first, err := s.ListTimes(ctx, 1, 1, "2026-09-02")
		require.NoError(t, err)
		second, err := s.ListTimes(ctx, 1, 1, "2026-09-02")
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})

	t.Run("fully booked day is empty, not an error", func(t *testing.T) {
		for h := 8; h < 18; h++ {
			err := records.Create(ctx, &model.Record{
				UserID:    2,
				PlaceID:   1,
				ServiceID: 1,
				StartTime: time.Date(2026, 9, 3, h, 0, 0, 0, time.Local),
				EndTime:   time.Date(2026, 9, 3, h+1, 0, 0, 0, time.Local),
			})
			require.NoError(t, err)
		}

		times, err := s.ListTimes(ctx, 1, 1, "2026-09-03")
		require.NoError(t, err)
		assert.Empty(t, times)
	})

	t.Run("no start later than close minus duration", func(t *testing.T) {
		times, err := s.ListTimes(ctx, 1, 1, "2026-09-04")
		require.NoError(t, err)
		require.NotEmpty(t, times)

		latest := time.Date(2026, 9, 4, 17, 0, 0, 0, time.Local)
		for _, slot := range times {
			assert.False(t, slot.Start.After(latest),
				"slot %s does not fit before closing", slot.Start.Format(TimeKeyLayout))
		}
	})

	t.Run("bad day key", func(t *testing.T) {
		_, err := s.ListTimes(ctx, 1, 1, "03.09.2026")
		assert.Error(t, err)
	})

	t.Run("service not offered at place", func(t *testing.T) {
		s2 := NewAvailabilityService(&memCatalog{
			places:   []*model.Place{{ID: 1, OpenHour: 8, CloseHour: 18}},
			services: []*model.Service{{ID: 1, Duration: 60}},
		}, records, zap.NewNop())

		_, err := s2.ListTimes(ctx, 1, 1, "2026-09-02")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}
