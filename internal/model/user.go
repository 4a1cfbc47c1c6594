package model

import "time"

// RegistrationState этап регистрации пользователя.
// Состояние выводится из заполненности полей, как и в исходной схеме:
// нет имени -> ждём имя, есть имя без телефона -> ждём телефон, иначе готов.
type RegistrationState string

const (
	RegistrationStateNew           RegistrationState = "new"            // ждём имя
	RegistrationStateAwaitingPhone RegistrationState = "awaiting_phone" // ждём номер телефона
	RegistrationStateComplete      RegistrationState = "complete"
)

type User struct {
	ID        int64     `json:"id"` // telegram id, задаётся не базой
	Name      *string   `json:"name"`
	Phone     *string   `json:"phone"`
	CityID    *int64    `json:"city_id"`
	CreatedAt time.Time `json:"created_at"`
}

// RegistrationState возвращает этап регистрации пользователя
func (u *User) RegistrationState() RegistrationState {
	switch {
	case u.Name == nil:
		return RegistrationStateNew
	case u.Phone == nil:
		return RegistrationStateAwaitingPhone
	default:
		return RegistrationStateComplete
	}
}

// DisplayName имя для обращения к пользователю
func (u *User) DisplayName() string {
	if u.Name != nil {
		return *u.Name
	}
	return ""
}
