package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/uoyyy/salon-krasotok/internal/model"
	"github.com/uoyyy/salon-krasotok/internal/repository/base"
)

type UserRepository struct {
	*base.Repository
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{Repository: base.NewRepository(pool)}
}

// Create создаёт пустую запись пользователя (регистрация ещё не завершена)
func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	query := `
		INSERT INTO users (id, name, phone, city_id)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO NOTHING
		RETURNING created_at
	`

	err := r.QueryRow(ctx, query, user.ID, user.Name, user.Phone, user.CityID).
		Scan(&user.CreatedAt)

	if err != nil {
		if base.IsNotFound(err) {
			// Уже существует, это не ошибка
			return nil
		}
		return fmt.Errorf("create user: %w", err)
	}

	return nil
}

// GetByID получает пользователя по telegram id
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	query := `
		SELECT id, name, phone, city_id, created_at
		FROM users
		WHERE id = $1
	`

	var user model.User
	err := r.QueryRow(ctx, query, id).Scan(
		&user.ID,
		&user.Name,
		&user.Phone,
		&user.CityID,
		&user.CreatedAt,
	)

	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user by id: %w", err)
	}

	return &user, nil
}

// SetName сохраняет имя пользователя
func (r *UserRepository) SetName(ctx context.Context, id int64, name string) error {
	affected, err := r.ExecAffected(ctx, `UPDATE users SET name = $1 WHERE id = $2`, name, id)
	if err != nil {
		return fmt.Errorf("set user name: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// SetPhone сохраняет номер телефона пользователя
func (r *UserRepository) SetPhone(ctx context.Context, id int64, phone string) error {
	affected, err := r.ExecAffected(ctx, `UPDATE users SET phone = $1 WHERE id = $2`, phone, id)
	if err != nil {
		return fmt.Errorf("set user phone: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// SetCity сохраняет город пользователя
func (r *UserRepository) SetCity(ctx context.Context, id, cityID int64) error {
	affected, err := r.ExecAffected(ctx, `UPDATE users SET city_id = $1 WHERE id = $2`, cityID, id)
	if err != nil {
		return fmt.Errorf("set user city: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
