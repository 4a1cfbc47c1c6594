package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/uoyyy/salon-krasotok/internal/model"
	"github.com/uoyyy/salon-krasotok/internal/repository/base"
)

// CatalogRepository справочные данные: виды услуг, города, сети, салоны, услуги.
// Движок доступности работает с ними только на чтение.
type CatalogRepository struct {
	*base.Repository
}

func NewCatalogRepository(pool *pgxpool.Pool) *CatalogRepository {
	return &CatalogRepository{Repository: base.NewRepository(pool)}
}

const placeColumns = `p.id, p.center_id, p.city_id, p.owner_id, p.address, p.open_hour, p.close_hour, p.link_code`

func scanPlace(row pgx.Row) (*model.Place, error) {
	var place model.Place
	err := row.Scan(
		&place.ID,
		&place.CenterID,
		&place.CityID,
		&place.OwnerID,
		&place.Address,
		&place.OpenHour,
		&place.CloseHour,
		&place.LinkCode,
	)
	if err != nil {
		return nil, err
	}
	return &place, nil
}

func (r *CatalogRepository) queryPlaces(ctx context.Context, query string, args ...interface{}) ([]*model.Place, error) {
	rows, err := r.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var places []*model.Place
	for rows.Next() {
		place, err := scanPlace(rows)
		if err != nil {
			return nil, fmt.Errorf("scan place: %w", err)
		}
		places = append(places, place)
	}

	return places, rows.Err()
}

// Types получает все виды услуг
func (r *CatalogRepository) Types(ctx context.Context) ([]*model.ServiceType, error) {
	rows, err := r.Query(ctx, `SELECT id, name FROM service_types ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("get service types: %w", err)
	}
	defer rows.Close()

	var types []*model.ServiceType
	for rows.Next() {
		var t model.ServiceType
		if err := rows.Scan(&t.ID, &t.Name); err != nil {
			return nil, fmt.Errorf("scan service type: %w", err)
		}
		types = append(types, &t)
	}

	return types, rows.Err()
}

// Cities получает все города
func (r *CatalogRepository) Cities(ctx context.Context) ([]*model.City, error) {
	rows, err := r.Query(ctx, `SELECT id, name FROM cities ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("get cities: %w", err)
	}
	defer rows.Close()

	var cities []*model.City
	for rows.Next() {
		var c model.City
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, fmt.Errorf("scan city: %w", err)
		}
		cities = append(cities, &c)
	}

	return cities, rows.Err()
}

// City получает город по id
func (r *CatalogRepository) City(ctx context.Context, id int64) (*model.City, error) {
	var c model.City
	err := r.QueryRow(ctx, `SELECT id, name FROM cities WHERE id = $1`, id).
		Scan(&c.ID, &c.Name)

	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get city by id: %w", err)
	}

	return &c, nil
}

// CentersByTypeAndCity получает сети салонов заданного вида, имеющие салон в городе
func (r *CatalogRepository) CentersByTypeAndCity(ctx context.Context, typeID, cityID int64) ([]*model.Center, error) {
	query := `
		SELECT DISTINCT c.id, c.name, c.type_id
		FROM centers c
		JOIN places p ON p.center_id = c.id
		WHERE c.type_id = $1 AND p.city_id = $2
		ORDER BY c.name
	`

	rows, err := r.Query(ctx, query, typeID, cityID)
	if err != nil {
		return nil, fmt.Errorf("get centers by type and city: %w", err)
	}
	defer rows.Close()

	var centers []*model.Center
	for rows.Next() {
		var c model.Center
		if err := rows.Scan(&c.ID, &c.Name, &c.TypeID); err != nil {
			return nil, fmt.Errorf("scan center: %w", err)
		}
		centers = append(centers, &c)
	}

	return centers, rows.Err()
}

// Center получает сеть салонов по id
func (r *CatalogRepository) Center(ctx context.Context, id int64) (*model.Center, error) {
	var c model.Center
	err := r.QueryRow(ctx, `SELECT id, name, type_id FROM centers WHERE id = $1`, id).
		Scan(&c.ID, &c.Name, &c.TypeID)

	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get center by id: %w", err)
	}

	return &c, nil
}

// PlacesByCenterAndCity получает салоны сети в указанном городе
func (r *CatalogRepository) PlacesByCenterAndCity(ctx context.Context, centerID, cityID int64) ([]*model.Place, error) {
	query := `
		SELECT ` + placeColumns + `
		FROM places p
		WHERE p.center_id = $1 AND p.city_id = $2
		ORDER BY p.address
	`

	places, err := r.queryPlaces(ctx, query, centerID, cityID)
	if err != nil {
		return nil, fmt.Errorf("get places by center and city: %w", err)
	}
	return places, nil
}

// PlacesByServiceAndCity получает салоны города, где доступна услуга
func (r *CatalogRepository) PlacesByServiceAndCity(ctx context.Context, serviceID, cityID int64) ([]*model.Place, error) {
	query := `
		SELECT ` + placeColumns + `
		FROM places p
		JOIN service_places sp ON sp.place_id = p.id
		WHERE sp.service_id = $1 AND p.city_id = $2
		ORDER BY p.address
	`

	places, err := r.queryPlaces(ctx, query, serviceID, cityID)
	if err != nil {
		return nil, fmt.Errorf("get places by service and city: %w", err)
	}
	return places, nil
}

// Place получает салон по id вместе с данными сети
func (r *CatalogRepository) Place(ctx context.Context, id int64) (*model.Place, error) {
	query := `
		SELECT ` + placeColumns + `, c.id, c.name, c.type_id
		FROM places p
		JOIN centers c ON c.id = p.center_id
		WHERE p.id = $1
	`

	var place model.Place
	var center model.Center
	err := r.QueryRow(ctx, query, id).Scan(
		&place.ID,
		&place.CenterID,
		&place.CityID,
		&place.OwnerID,
		&place.Address,
		&place.OpenHour,
		&place.CloseHour,
		&place.LinkCode,
		&center.ID,
		&center.Name,
		&center.TypeID,
	)

	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get place by id: %w", err)
	}

	place.Center = &center
	return &place, nil
}

// PlaceByLinkCode получает салон по коду deep link
func (r *CatalogRepository) PlaceByLinkCode(ctx context.Context, code uuid.UUID) (*model.Place, error) {
	var id int64
	err := r.QueryRow(ctx, `SELECT id FROM places WHERE link_code = $1`, code).Scan(&id)

	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get place by link code: %w", err)
	}

	return r.Place(ctx, id)
}

// ServicesByTypeAndCity получает услуги вида, доступные хотя бы в одном салоне города
func (r *CatalogRepository) ServicesByTypeAndCity(ctx context.Context, typeID, cityID int64) ([]*model.Service, error) {
	query := `
		SELECT DISTINCT s.id, s.type_id, s.name, s.duration_minutes
		FROM services s
		JOIN service_places sp ON sp.service_id = s.id
		JOIN places p ON p.id = sp.place_id
		WHERE s.type_id = $1 AND p.city_id = $2
		ORDER BY s.name
	`

	rows, err := r.Query(ctx, query, typeID, cityID)
	if err != nil {
		return nil, fmt.Errorf("get services by type and city: %w", err)
	}
	defer rows.Close()

	return scanServices(rows)
}

// ServicesByPlace получает услуги, доступные в салоне
func (r *CatalogRepository) ServicesByPlace(ctx context.Context, placeID int64) ([]*model.Service, error) {
	query := `
		SELECT s.id, s.type_id, s.name, s.duration_minutes
		FROM services s
		JOIN service_places sp ON sp.service_id = s.id
		WHERE sp.place_id = $1
		ORDER BY s.name
	`

	rows, err := r.Query(ctx, query, placeID)
	if err != nil {
		return nil, fmt.Errorf("get services by place: %w", err)
	}
	defer rows.Close()

	return scanServices(rows)
}

func scanServices(rows pgx.Rows) ([]*model.Service, error) {
	var services []*model.Service
	for rows.Next() {
		var s model.Service
		if err := rows.Scan(&s.ID, &s.TypeID, &s.Name, &s.Duration); err != nil {
			return nil, fmt.Errorf("scan service: %w", err)
		}
		services = append(services, &s)
	}
	return services, rows.Err()
}

// Service получает услугу по id
func (r *CatalogRepository) Service(ctx context.Context, id int64) (*model.Service, error) {
	var s model.Service
	err := r.QueryRow(ctx, `SELECT id, type_id, name, duration_minutes FROM services WHERE id = $1`, id).
		Scan(&s.ID, &s.TypeID, &s.Name, &s.Duration)

	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get service by id: %w", err)
	}

	return &s, nil
}

// ServicePlace получает связку (салон, услуга), если услуга доступна в салоне
func (r *CatalogRepository) ServicePlace(ctx context.Context, placeID, serviceID int64) (*model.ServicePlace, error) {
	var sp model.ServicePlace
	err := r.QueryRow(ctx,
		`SELECT id, place_id, service_id FROM service_places WHERE place_id = $1 AND service_id = $2`,
		placeID, serviceID,
	).Scan(&sp.ID, &sp.PlaceID, &sp.ServiceID)

	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get service place: %w", err)
	}

	return &sp, nil
}
