package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/uoyyy/salon-krasotok/internal/model"
	"github.com/uoyyy/salon-krasotok/internal/repository"
)

// memCatalog справочник в памяти для тестов
type memCatalog struct {
	types    []*model.ServiceType
	cities   []*model.City
	centers  []*model.Center
	places   []*model.Place
	services []*model.Service
	pairs    []*model.ServicePlace
}

func (c *memCatalog) Types(ctx context.Context) ([]*model.ServiceType, error) {
	return c.types, nil
}

func (c *memCatalog) Cities(ctx context.Context) ([]*model.City, error) {
	return c.cities, nil
}

func (c *memCatalog) City(ctx context.Context, id int64) (*model.City, error) {
	for _, city := range c.cities {
		if city.ID == id {
			return city, nil
		}
	}
	return nil, nil
}

func (c *memCatalog) CentersByTypeAndCity(ctx context.Context, typeID, cityID int64) ([]*model.Center, error) {
	var out []*model.Center
	for _, center := range c.centers {
		if center.TypeID == typeID {
			out = append(out, center)
		}
	}
	return out, nil
}

func (c *memCatalog) Center(ctx context.Context, id int64) (*model.Center, error) {
	for _, center := range c.centers {
		if center.ID == id {
			return center, nil
		}
	}
	return nil, nil
}

func (c *memCatalog) PlacesByCenterAndCity(ctx context.Context, centerID, cityID int64) ([]*model.Place, error) {
	var out []*model.Place
	for _, place := range c.places {
		if place.CenterID == centerID && place.CityID == cityID {
			out = append(out, place)
		}
	}
	return out, nil
}

func (c *memCatalog) PlacesByServiceAndCity(ctx context.Context, serviceID, cityID int64) ([]*model.Place, error) {
	var out []*model.Place
	for _, place := range c.places {
		if place.CityID != cityID {
			continue
		}
		for _, pair := range c.pairs {
			if pair.PlaceID == place.ID && pair.ServiceID == serviceID {
				out = append(out, place)
				break
			}
		}
	}
	return out, nil
}

func (c *memCatalog) Place(ctx context.Context, id int64) (*model.Place, error) {
	for _, place := range c.places {
		if place.ID == id {
			return place, nil
		}
	}
	return nil, nil
}

func (c *memCatalog) PlaceByLinkCode(ctx context.Context, code uuid.UUID) (*model.Place, error) {
	for _, place := range c.places {
		if place.LinkCode == code {
			return place, nil
		}
	}
	return nil, nil
}

func (c *memCatalog) ServicesByTypeAndCity(ctx context.Context, typeID, cityID int64) ([]*model.Service, error) {
	var out []*model.Service
	for _, svc := range c.services {
		if svc.TypeID == typeID {
			out = append(out, svc)
		}
	}
	return out, nil
}

func (c *memCatalog) ServicesByPlace(ctx context.Context, placeID int64) ([]*model.Service, error) {
	var out []*model.Service
	for _, pair := range c.pairs {
		if pair.PlaceID != placeID {
			continue
		}
		for _, svc := range c.services {
			if svc.ID == pair.ServiceID {
				out = append(out, svc)
			}
		}
	}
	return out, nil
}

func (c *memCatalog) Service(ctx context.Context, id int64) (*model.Service, error) {
	for _, svc := range c.services {
		if svc.ID == id {
			return svc, nil
		}
	}
	return nil, nil
}

func (c *memCatalog) ServicePlace(ctx context.Context, placeID, serviceID int64) (*model.ServicePlace, error) {
	for _, pair := range c.pairs {
		if pair.PlaceID == placeID && pair.ServiceID == serviceID {
			return pair, nil
		}
	}
	return nil, nil
}

// memRecordStore хранилище записей в памяти. Create проверяет пересечение
// интервалов под мьютексом, как это делает exclusion constraint в БД.
type memRecordStore struct {
	mu      sync.Mutex
	nextID  int64
	records map[int64]*model.Record
}

func newMemRecordStore() *memRecordStore {
	return &memRecordStore{
		nextID:  1,
		records: make(map[int64]*model.Record),
	}
}

func (s *memRecordStore) Create(ctx context.Context, record *model.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.records {
		if existing.PlaceID != record.PlaceID {
			continue
		}
		if existing.StartTime.Before(record.EndTime) && existing.EndTime.After(record.StartTime) {
			return repository.ErrConflict
		}
	}

	record.ID = s.nextID
	record.CreatedAt = time.Now()
	s.nextID++

	stored := *record
	stored.Place = nil
	stored.Service = nil
	stored.User = nil
	s.records[stored.ID] = &stored
	return nil
}

func (s *memRecordStore) GetByID(ctx context.Context, id int64) (*model.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, ok := s.records[id]
	if !ok {
		return nil, nil
	}
	copied := *record
	return &copied, nil
}

func (s *memRecordStore) GetByUserID(ctx context.Context, userID int64) ([]*model.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []*model.Record
	for _, record := range s.records {
		if record.UserID != userID {
			continue
		}
		copied := *record
		out = append(out, &copied)
	}

	for i := 0; i < len(out); i++ {
		for j := i + 1; j < len(out); j++ {
			if out[j].StartTime.Before(out[i].StartTime) {
				out[i], out[j] = out[j], out[i]
			}
		}
	}
	return out, nil
}

func (s *memRecordStore) ExistsOverlapping(ctx context.Context, placeID int64, start, end time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, record := range s.records {
		if record.PlaceID != placeID {
			continue
		}
		if record.StartTime.Before(end) && record.EndTime.After(start) {
			return true, nil
		}
	}
	return false, nil
}

func (s *memRecordStore) SetActive(ctx context.Context, id int64, active bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, ok := s.records[id]
	if !ok {
		return repository.ErrNotFound
	}
	record.Active = active
	return nil
}

func (s *memRecordStore) Delete(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.records, id)
	return nil
}

func (s *memRecordStore) DueForReminder(ctx context.Context, from, to time.Time) ([]*model.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []*model.Record
	for _, record := range s.records {
		if record.ReminderSent {
			continue
		}
		if record.StartTime.Before(from) || !record.StartTime.Before(to) {
			continue
		}
		copied := *record
		out = append(out, &copied)
	}
	return out, nil
}

func (s *memRecordStore) MarkReminderSent(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, ok := s.records[id]
	if !ok {
		return repository.ErrNotFound
	}
	record.ReminderSent = true
	return nil
}

// memUserStore хранилище пользователей в памяти
type memUserStore struct {
	mu    sync.Mutex
	users map[int64]*model.User
}

func newMemUserStore() *memUserStore {
	return &memUserStore{users: make(map[int64]*model.User)}
}

func (s *memUserStore) Create(ctx context.Context, user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[user.ID]; ok {
		return nil
	}
	user.CreatedAt = time.Now()
	copied := *user
	s.users[user.ID] = &copied
	return nil
}

func (s *memUserStore) GetByID(ctx context.Context, id int64) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[id]
	if !ok {
		return nil, nil
	}
	copied := *user
	return &copied, nil
}

func (s *memUserStore) SetName(ctx context.Context, id int64, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	user.Name = &name
	return nil
}

func (s *memUserStore) SetPhone(ctx context.Context, id int64, phone string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	user.Phone = &phone
	return nil
}

func (s *memUserStore) SetCity(ctx context.Context, id, cityID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	user.CityID = &cityID
	return nil
}

// memNotifier запоминает отправленные уведомления
type memNotifier struct {
	mu        sync.Mutex
	created   []*model.Record
	reminders []*model.Record
}

func (n *memNotifier) RecordCreated(ctx context.Context, record *model.Record) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.created = append(n.created, record)
}

func (n *memNotifier) RecordReminder(ctx context.Context, record *model.Record) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.reminders = append(n.reminders, record)
}

func (n *memNotifier) createdCount() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.created)
}

// testCatalog один салон 8-18 с услугами 60 и 45 минут
func testCatalog() *memCatalog {
	return &memCatalog{
		types:  []*model.ServiceType{{ID: 1, Name: "Маникюр"}},
		cities: []*model.City{{ID: 1, Name: "Москва"}},
		centers: []*model.Center{
			{ID: 1, Name: "Красотка", TypeID: 1},
		},
		places: []*model.Place{
			{ID: 1, CenterID: 1, CityID: 1, OwnerID: 100, Address: "Тверская, 1", OpenHour: 8, CloseHour: 18, LinkCode: uuid.New()},
		},
		services: []*model.Service{
			{ID: 1, TypeID: 1, Name: "Классический маникюр", Duration: 60},
			{ID: 2, TypeID: 1, Name: "Маникюр с покрытием", Duration: 45},
		},
		pairs: []*model.ServicePlace{
			{ID: 1, PlaceID: 1, ServiceID: 1},
			{ID: 2, PlaceID: 1, ServiceID: 2},
		},
	}
}
