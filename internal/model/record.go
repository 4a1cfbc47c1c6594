package model

import "time"

// Urgency насколько скоро начнётся запись
type Urgency string

const (
	UrgencyElapsed  Urgency = "elapsed"  // начало уже прошло
	UrgencyImminent Urgency = "imminent" // меньше часа
	UrgencySoon     Urgency = "soon"     // меньше суток
	UrgencyDistant  Urgency = "distant"
)

// Record запись пользователя в салон на услугу.
// EndTime = StartTime + длительность услуги. Active=false пока салон
// не подтвердил запись; при отклонении запись удаляется.
type Record struct {
	ID           int64     `json:"id"`
	UserID       int64     `json:"user_id"`
	PlaceID      int64     `json:"place_id"`
	ServiceID    int64     `json:"service_id"`
	StartTime    time.Time `json:"start_time"`
	EndTime      time.Time `json:"end_time"`
	Active       bool      `json:"active"`
	ReminderSent bool      `json:"reminder_sent"`
	CreatedAt    time.Time `json:"created_at"`

	// Дополнительные поля для удобства (не из БД)
	Place   *Place   `json:"place,omitempty"`
	Service *Service `json:"service,omitempty"`
	User    *User    `json:"user,omitempty"`
}

// RemainingTime сколько осталось до начала записи, не меньше нуля
func (r *Record) RemainingTime(now time.Time) time.Duration {
	d := r.StartTime.Sub(now)
	if d < 0 {
		return 0
	}
	return d
}

// Urgency определяет срочность записи относительно момента now
func (r *Record) Urgency(now time.Time) Urgency {
	d := r.StartTime.Sub(now)
	switch {
	case d <= 0:
		return UrgencyElapsed
	case d < time.Hour:
		return UrgencyImminent
	case d < 24*time.Hour:
		return UrgencySoon
	default:
		return UrgencyDistant
	}
}
