package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/uoyyy/salon-krasotok/internal/model"
	"github.com/uoyyy/salon-krasotok/internal/repository"
)

var (
	_ Catalog     = (*repository.CatalogRepository)(nil)
	_ RecordStore = (*repository.RecordRepository)(nil)
	_ UserStore   = (*repository.UserRepository)(nil)
)

// Catalog справочные данные, только чтение. Методы Get-семантики
// возвращают (nil, nil), если объект не найден.
type Catalog interface {
	Types(ctx context.Context) ([]*model.ServiceType, error)
	Cities(ctx context.Context) ([]*model.City, error)
	City(ctx context.Context, id int64) (*model.City, error)
	CentersByTypeAndCity(ctx context.Context, typeID, cityID int64) ([]*model.Center, error)
	Center(ctx context.Context, id int64) (*model.Center, error)
	PlacesByCenterAndCity(ctx context.Context, centerID, cityID int64) ([]*model.Place, error)
	PlacesByServiceAndCity(ctx context.Context, serviceID, cityID int64) ([]*model.Place, error)
	Place(ctx context.Context, id int64) (*model.Place, error)
	PlaceByLinkCode(ctx context.Context, code uuid.UUID) (*model.Place, error)
	ServicesByTypeAndCity(ctx context.Context, typeID, cityID int64) ([]*model.Service, error)
	ServicesByPlace(ctx context.Context, placeID int64) ([]*model.Service, error)
	Service(ctx context.Context, id int64) (*model.Service, error)
	ServicePlace(ctx context.Context, placeID, serviceID int64) (*model.ServicePlace, error)
}

// RecordStore хранилище записей. Create обязан выполнять проверку конфликта
// и вставку атомарно относительно конкурентных Create и возвращать
// repository.ErrConflict, если интервал в салоне уже занят.
type RecordStore interface {
	Create(ctx context.Context, record *model.Record) error
	GetByID(ctx context.Context, id int64) (*model.Record, error)
	GetByUserID(ctx context.Context, userID int64) ([]*model.Record, error)
	ExistsOverlapping(ctx context.Context, placeID int64, start, end time.Time) (bool, error)
	SetActive(ctx context.Context, id int64, active bool) error
	Delete(ctx context.Context, id int64) error
	DueForReminder(ctx context.Context, from, to time.Time) ([]*model.Record, error)
	MarkReminderSent(ctx context.Context, id int64) error
}

// UserStore хранилище пользователей
type UserStore interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id int64) (*model.User, error)
	SetName(ctx context.Context, id int64, name string) error
	SetPhone(ctx context.Context, id int64, phone string) error
	SetCity(ctx context.Context, id, cityID int64) error
}

// Notifier доставляет уведомления владельцу салона. Реализуется слоем
// доставки; движок бронирования не знает про telegram.
type Notifier interface {
	RecordCreated(ctx context.Context, record *model.Record)
	RecordReminder(ctx context.Context, record *model.Record)
}
