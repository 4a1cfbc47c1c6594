package model

// ServicePlace связка (салон, услуга) — якорь для всех запросов слотов.
// Генерация слотов всегда выполняется для одной такой пары.
type ServicePlace struct {
	ID        int64 `json:"id"`
	PlaceID   int64 `json:"place_id"`
	ServiceID int64 `json:"service_id"`
}
