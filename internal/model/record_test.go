package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRecordUrgency(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.Local)

	tests := []struct {
		name  string
		start time.Time
		want  Urgency
	}{
		{"start in the past", now.Add(-time.Minute), UrgencyElapsed},
		{"start right now", now, UrgencyElapsed},
		{"in half an hour", now.Add(30 * time.Minute), UrgencyImminent},
		{"in 59 minutes", now.Add(59 * time.Minute), UrgencyImminent},
		{"in exactly an hour", now.Add(time.Hour), UrgencySoon},
		{"in 23 hours", now.Add(23 * time.Hour), UrgencySoon},
		{"in exactly a day", now.Add(24 * time.Hour), UrgencyDistant},
		{"in a week", now.Add(7 * 24 * time.Hour), UrgencyDistant},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &Record{StartTime: tt.start}
			assert.Equal(t, tt.want, r.Urgency(now))
		})
	}
}

func TestRecordRemainingTime(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.Local)

	r := &Record{StartTime: now.Add(90 * time.Minute)}
	assert.Equal(t, 90*time.Minute, r.RemainingTime(now))

	past := &Record{StartTime: now.Add(-time.Hour)}
	assert.Equal(t, time.Duration(0), past.RemainingTime(now))
}

func TestUserRegistrationState(t *testing.T) {
	name := "Анна"
	phone := "+79990001122"

	assert.Equal(t, RegistrationStateNew, (&User{}).RegistrationState())
	assert.Equal(t, RegistrationStateAwaitingPhone, (&User{Name: &name}).RegistrationState())
	assert.Equal(t, RegistrationStateComplete, (&User{Name: &name, Phone: &phone}).RegistrationState())
}
