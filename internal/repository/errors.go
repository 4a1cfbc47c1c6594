package repository

import "errors"

var (
	// ErrNotFound запись с указанным id не существует
	ErrNotFound = errors.New("not found")
	// ErrConflict вставка нарушила бы ограничение уникальности или
	// пересечения интервалов: слот уже занят
	ErrConflict = errors.New("slot conflict")
)
