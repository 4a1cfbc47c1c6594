package model

// Center сеть салонов одного вида услуг
type Center struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	TypeID int64  `json:"type_id"`
}
