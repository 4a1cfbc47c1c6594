package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/uoyyy/salon-krasotok/internal/model"
	"github.com/uoyyy/salon-krasotok/internal/repository/base"
)

// RecordRepository хранилище записей. Единолично владеет их жизненным циклом:
// никакой другой компонент не создаёт и не удаляет записи.
type RecordRepository struct {
	*base.Repository
}

func NewRecordRepository(pool *pgxpool.Pool) *RecordRepository {
	return &RecordRepository{Repository: base.NewRepository(pool)}
}

const recordColumns = `id, user_id, place_id, service_id, start_time, end_time, active, reminder_sent, created_at`

// Create вставляет новую запись. Проверка конфликта и вставка — одна
// атомарная операция: пересечение интервалов внутри салона отсекает
// exclusion constraint в базе, и второй из двух конкурентных Create
// получает ErrConflict.
func (r *RecordRepository) Create(ctx context.Context, record *model.Record) error {
	query := `
		INSERT INTO records (user_id, place_id, service_id, start_time, end_time, active)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`

	err := r.QueryRow(
		ctx, query,
		record.UserID,
		record.PlaceID,
		record.ServiceID,
		record.StartTime,
		record.EndTime,
		record.Active,
	).Scan(&record.ID, &record.CreatedAt)

	if err != nil {
		if base.IsConstraintViolation(err) {
			return ErrConflict
		}
		return fmt.Errorf("create record: %w", err)
	}

	return nil
}

// GetByID получает запись по ID
func (r *RecordRepository) GetByID(ctx context.Context, id int64) (*model.Record, error) {
	query := `SELECT ` + recordColumns + ` FROM records WHERE id = $1`

	var record model.Record
	err := r.QueryRow(ctx, query, id).Scan(
		&record.ID,
		&record.UserID,
		&record.PlaceID,
		&record.ServiceID,
		&record.StartTime,
		&record.EndTime,
		&record.Active,
		&record.ReminderSent,
		&record.CreatedAt,
	)

	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get record by id: %w", err)
	}

	return &record, nil
}

// GetByUserID получает все записи пользователя по возрастанию времени начала
func (r *RecordRepository) GetByUserID(ctx context.Context, userID int64) ([]*model.Record, error) {
	query := `
		SELECT ` + recordColumns + `
		FROM records
		WHERE user_id = $1
		ORDER BY start_time
	`

	rows, err := r.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("get records by user: %w", err)
	}
	defer rows.Close()

	return scanRecords(rows)
}

// ExistsOverlapping проверяет, пересекается ли интервал [start, end)
// с какой-либо записью этого салона, независимо от услуги
func (r *RecordRepository) ExistsOverlapping(ctx context.Context, placeID int64, start, end time.Time) (bool, error) {
	query := `
		SELECT EXISTS(
			SELECT 1 FROM records
			WHERE place_id = $1 AND start_time < $3 AND end_time > $2
		)
	`

	var exists bool
	err := r.QueryRow(ctx, query, placeID, start, end).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check overlapping records: %w", err)
	}

	return exists, nil
}

// SetActive обновляет статус подтверждения записи
func (r *RecordRepository) SetActive(ctx context.Context, id int64, active bool) error {
	affected, err := r.ExecAffected(ctx, `UPDATE records SET active = $1 WHERE id = $2`, active, id)
	if err != nil {
		return fmt.Errorf("set record active: %w", err)
	}

	if affected == 0 {
		return ErrNotFound
	}

	return nil
}

// Delete удаляет запись. Удаление несуществующей записи не ошибка:
// отмена и отклонение салоном могут прийти наперегонки.
func (r *RecordRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.ExecAffected(ctx, `DELETE FROM records WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete record: %w", err)
	}

	return nil
}

// DueForReminder получает записи, начинающиеся в [from, to), по которым
// ещё не отправлялось напоминание владельцу
func (r *RecordRepository) DueForReminder(ctx context.Context, from, to time.Time) ([]*model.Record, error) {
	query := `
		SELECT ` + recordColumns + `
		FROM records
		WHERE start_time >= $1 AND start_time < $2 AND reminder_sent = false
		ORDER BY start_time
	`

	rows, err := r.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("get records due for reminder: %w", err)
	}
	defer rows.Close()

	return scanRecords(rows)
}

// MarkReminderSent помечает, что напоминание по записи отправлено
func (r *RecordRepository) MarkReminderSent(ctx context.Context, id int64) error {
	affected, err := r.ExecAffected(ctx, `UPDATE records SET reminder_sent = true WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("mark reminder sent: %w", err)
	}

	if affected == 0 {
		return ErrNotFound
	}

	return nil
}

func scanRecords(rows pgx.Rows) ([]*model.Record, error) {
	var records []*model.Record
	for rows.Next() {
		var record model.Record
		err := rows.Scan(
			&record.ID,
			&record.UserID,
			&record.PlaceID,
			&record.ServiceID,
			&record.StartTime,
			&record.EndTime,
			&record.Active,
			&record.ReminderSent,
			&record.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		records = append(records, &record)
	}

	return records, rows.Err()
}
