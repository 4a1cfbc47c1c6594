package model

import "github.com/google/uuid"

// Place конкретный салон: адрес, часы работы, владелец.
// Рабочее окно [OpenHour, CloseHour) в целых часах локального времени,
// инвариант 0 <= OpenHour < CloseHour <= 24.
type Place struct {
	ID        int64     `json:"id"`
	CenterID  int64     `json:"center_id"`
	CityID    int64     `json:"city_id"`
	OwnerID   int64     `json:"owner_id"` // telegram id владельца, получает уведомления о записях
	Address   string    `json:"address"`
	OpenHour  int       `json:"open_hour"`
	CloseHour int       `json:"close_hour"`
	LinkCode  uuid.UUID `json:"link_code"` // код для deep link /start <code>

	// Дополнительные поля для удобства (не из таблицы places)
	Center *Center `json:"center,omitempty"`
}
