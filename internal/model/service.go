package model

// Service услуга с фиксированной длительностью, доступна в подмножестве салонов
type Service struct {
	ID       int64  `json:"id"`
	TypeID   int64  `json:"type_id"`
	Name     string `json:"name"`
	Duration int    `json:"duration"` // в минутах, всегда > 0
}
