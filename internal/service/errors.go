package service

import (
	"errors"

	"github.com/uoyyy/salon-krasotok/internal/repository"
)

var (
	// ErrSlotConflict слот уже занят конкурентной или более ранней записью.
	// Восстановимо: нужно заново запросить доступное время и выбрать другое.
	ErrSlotConflict = repository.ErrConflict

	// ErrNotFound салон, услуга или запись с указанным id не существует
	ErrNotFound = repository.ErrNotFound

	// ErrInvalidWindow некорректная конфигурация: рабочее окно салона
	// или длительность услуги не проходят валидацию
	ErrInvalidWindow = errors.New("invalid operating window")
)
