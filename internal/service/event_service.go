package service

import (
	"errors"
	"time"

	"dancespiele/internal/models"
)

// Ошибки сервиса журнала
var (
	ErrInvalidLimit = errors.New("limit must be between 1 and 500")
)

// defaultEventLimit - размер выборки, если лимит не задан
const defaultEventLimit = 50

// EventService предоставляет доступ к журналу действий движка
type EventService struct {
	events EventRepositoryInterface
}

// NewEventService создает новый экземпляр EventService
func NewEventService(events EventRepositoryInterface) *EventService {
	return &EventService{events: events}
}

// GetEvents возвращает последние события, опционально по одной паре.
// limit 0 трактуется как значение по умолчанию.
func (s *EventService) GetEvents(pair string, limit int) ([]*models.StopLossEvent, error) {
	if limit == 0 {
		limit = defaultEventLimit
	}
	if limit < 1 || limit > 500 {
		return nil, ErrInvalidLimit
	}

	if pair != "" {
		return s.events.GetByPair(pair, limit)
	}
	return s.events.GetRecent(limit)
}

// GetEventCount возвращает общее число записей журнала
func (s *EventService) GetEventCount() (int, error) {
	return s.events.Count()
}

// Cleanup удаляет записи старше заданного возраста
func (s *EventService) Cleanup(olderThan time.Duration) (int64, error) {
	return s.events.DeleteOlderThan(time.Now().Add(-olderThan))
}
