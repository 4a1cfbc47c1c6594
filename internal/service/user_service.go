package service

import (
	"context"
	"fmt"

	"github.com/uoyyy/salon-krasotok/internal/model"
	"go.uber.org/zap"
)

// UserService регистрация пользователей: имя -> телефон -> город
type UserService struct {
	users  UserStore
	logger *zap.Logger
}

func NewUserService(users UserStore, logger *zap.Logger) *UserService {
	return &UserService{
		users:  users,
		logger: logger,
	}
}

// EnsureUser получает пользователя, создавая пустую запись при первом
// обращении. Этап регистрации выводится из заполненности полей.
func (s *UserService) EnsureUser(ctx context.Context, telegramID int64) (*model.User, error) {
	user, err := s.users.GetByID(ctx, telegramID)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}

	if user != nil {
		return user, nil
	}

	user = &model.User{ID: telegramID}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.logger.Info("New user registered", zap.Int64("telegram_id", telegramID))
	return user, nil
}

// GetByID получает пользователя по telegram id
func (s *UserService) GetByID(ctx context.Context, telegramID int64) (*model.User, error) {
	return s.users.GetByID(ctx, telegramID)
}

// SetName сохраняет имя, введённое пользователем
func (s *UserService) SetName(ctx context.Context, telegramID int64, name string) error {
	if err := s.users.SetName(ctx, telegramID, name); err != nil {
		return fmt.Errorf("set name: %w", err)
	}

	s.logger.Info("User name set", zap.Int64("telegram_id", telegramID))
	return nil
}

// SetPhone сохраняет номер телефона из присланного контакта
func (s *UserService) SetPhone(ctx context.Context, telegramID int64, phone string) error {
	if err := s.users.SetPhone(ctx, telegramID, phone); err != nil {
		return fmt.Errorf("set phone: %w", err)
	}

	s.logger.Info("User phone set", zap.Int64("telegram_id", telegramID))
	return nil
}

// SetCity сохраняет выбранный город
func (s *UserService) SetCity(ctx context.Context, telegramID, cityID int64) error {
	if err := s.users.SetCity(ctx, telegramID, cityID); err != nil {
		return fmt.Errorf("set city: %w", err)
	}

	s.logger.Info("User city set",
		zap.Int64("telegram_id", telegramID),
		zap.Int64("city_id", cityID))
	return nil
}
