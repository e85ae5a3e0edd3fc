// Package repository - доступ к журналу событий в Postgres.
package repository

import (
	"database/sql"
	"errors"
	"time"

	"dancespiele/internal/models"
)

// Ошибки репозитория событий
var (
	ErrEventNotFound = errors.New("event not found")
)

// EventRepository - работа с таблицей stop_loss_events
type EventRepository struct {
	db *sql.DB
}

// NewEventRepository создает новый экземпляр репозитория
func NewEventRepository(db *sql.DB) *EventRepository {
	return &EventRepository{db: db}
}

// Create создает запись о событии
func (r *EventRepository) Create(event *models.StopLossEvent) error {
	query := `
		INSERT INTO stop_loss_events (pair, action, buy_price, stop_price, quantity, benefit, order_id, prev_order, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id`

	event.CreatedAt = time.Now()

	err := r.db.QueryRow(
		query,
		event.Pair,
		event.Action,
		event.BuyPrice,
		event.StopPrice,
		event.Quantity,
		event.Benefit,
		event.OrderID,
		event.PrevOrder,
		event.CreatedAt,
	).Scan(&event.ID)

	if err != nil {
		return err
	}

	return nil
}

// GetByID возвращает событие по ID
func (r *EventRepository) GetByID(id int) (*models.StopLossEvent, error) {
	query := `
		SELECT id, pair, action, buy_price, stop_price, quantity, benefit, order_id, prev_order, created_at
		FROM stop_loss_events
		WHERE id = $1`

	event := &models.StopLossEvent{}
	err := r.db.QueryRow(query, id).Scan(
		&event.ID,
		&event.Pair,
		&event.Action,
		&event.BuyPrice,
		&event.StopPrice,
		&event.Quantity,
		&event.Benefit,
		&event.OrderID,
		&event.PrevOrder,
		&event.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}

	return event, nil
}

// GetRecent возвращает последние N событий
func (r *EventRepository) GetRecent(limit int) ([]*models.StopLossEvent, error) {
	query := `
		SELECT id, pair, action, buy_price, stop_price, quantity, benefit, order_id, prev_order, created_at
		FROM stop_loss_events
		ORDER BY created_at DESC
		LIMIT $1`

	rows, err := r.db.Query(query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanEvents(rows)
}

// GetByPair возвращает события конкретной пары
func (r *EventRepository) GetByPair(pair string, limit int) ([]*models.StopLossEvent, error) {
	query := `
		SELECT id, pair, action, buy_price, stop_price, quantity, benefit, order_id, prev_order, created_at
		FROM stop_loss_events
		WHERE pair = $1
		ORDER BY created_at DESC
		LIMIT $2`

	rows, err := r.db.Query(query, pair, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanEvents(rows)
}

// Count возвращает общее количество событий
func (r *EventRepository) Count() (int, error) {
	query := `SELECT COUNT(*) FROM stop_loss_events`

	var count int
	err := r.db.QueryRow(query).Scan(&count)
	if err != nil {
		return 0, err
	}

	return count, nil
}

// DeleteOlderThan удаляет события старше указанной даты
func (r *EventRepository) DeleteOlderThan(timestamp time.Time) (int64, error) {
	query := `DELETE FROM stop_loss_events WHERE created_at < $1`

	result, err := r.db.Exec(query, timestamp)
	if err != nil {
		return 0, err
	}

	return result.RowsAffected()
}

// scanEvents читает строки выборки в срез событий
func scanEvents(rows *sql.Rows) ([]*models.StopLossEvent, error) {
	var events []*models.StopLossEvent
	for rows.Next() {
		event := &models.StopLossEvent{}
		err := rows.Scan(
			&event.ID,
			&event.Pair,
			&event.Action,
			&event.BuyPrice,
			&event.StopPrice,
			&event.Quantity,
			&event.Benefit,
			&event.OrderID,
			&event.PrevOrder,
			&event.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return events, nil
}
