package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"dancespiele/internal/models"
	"dancespiele/internal/service"
)

// defaultCleanupAge - возраст событий, удаляемых по умолчанию (30 дней)
const defaultCleanupAge = 30 * 24 * time.Hour

// EventHandler отвечает за журнал операций со stop-loss ордерами
//
// Endpoints:
// - GET /api/v1/events - журнал событий
// - GET /api/v1/events?pair=KAVAEUR&limit=20 - с фильтрацией и лимитом
// - GET /api/v1/events/count - количество записей
// - DELETE /api/v1/events - очистка старых записей
//
// Назначение:
// Каждая выставленная или подтянутая защита записывается движком в журнал.
// API отдает историю для UI и позволяет чистить устаревшие записи.
type EventHandler struct {
	eventService service.EventServiceInterface
}

// NewEventHandler создает новый EventHandler с внедрением зависимости
func NewEventHandler(eventService service.EventServiceInterface) *EventHandler {
	return &EventHandler{
		eventService: eventService,
	}
}

// GetEventsResponse представляет ответ журнала событий
type GetEventsResponse struct {
	Events []*models.StopLossEvent `json:"events"`
	Total  int                     `json:"total"`
}

// GetEvents возвращает последние события журнала
//
// GET /api/v1/events
//
// Query параметры:
// - pair (string): фильтр по торговой паре
// - limit (int): количество записей (по умолчанию 50, максимум 500)
//
// HTTP коды:
// - 200 OK: успешно, возвращает массив событий
// - 400 Bad Request: некорректный limit
// - 500 Internal Server Error: ошибка БД
func (h *EventHandler) GetEvents(w http.ResponseWriter, r *http.Request) {
	pair := r.URL.Query().Get("pair")

	limit := 0
	if limitParam := r.URL.Query().Get("limit"); limitParam != "" {
		parsed, err := strconv.Atoi(limitParam)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid limit: "+limitParam)
			return
		}
		limit = parsed
	}

	events, err := h.eventService.GetEvents(pair, limit)
	if err != nil {
		if errors.Is(err, service.ErrInvalidLimit) {
			respondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
		respondWithError(w, http.StatusInternalServerError, "Failed to get events: "+err.Error())
		return
	}

	if events == nil {
		events = []*models.StopLossEvent{}
	}

	respondWithJSON(w, http.StatusOK, GetEventsResponse{
		Events: events,
		Total:  len(events),
	})
}

// GetEventCountResponse представляет ответ количества событий
type GetEventCountResponse struct {
	Count int `json:"count"`
}

// GetEventCount возвращает общее количество записей журнала
//
// GET /api/v1/events/count
//
// HTTP коды:
// - 200 OK: успешно
// - 500 Internal Server Error: ошибка БД
func (h *EventHandler) GetEventCount(w http.ResponseWriter, r *http.Request) {
	count, err := h.eventService.GetEventCount()
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to count events: "+err.Error())
		return
	}

	respondWithJSON(w, http.StatusOK, GetEventCountResponse{Count: count})
}

// CleanupEventsResponse представляет ответ очистки журнала
type CleanupEventsResponse struct {
	Deleted int64 `json:"deleted"`
}

// CleanupEvents удаляет события старше заданного возраста
//
// DELETE /api/v1/events
//
// Query параметры:
// - older_than (duration): возраст в формате Go duration, например 720h
//   (по умолчанию 30 дней)
//
// HTTP коды:
// - 200 OK: возвращает количество удаленных записей
// - 400 Bad Request: некорректный older_than
// - 500 Internal Server Error: ошибка БД
func (h *EventHandler) CleanupEvents(w http.ResponseWriter, r *http.Request) {
	olderThan := defaultCleanupAge
	if param := r.URL.Query().Get("older_than"); param != "" {
		parsed, err := time.ParseDuration(param)
		if err != nil || parsed <= 0 {
			respondWithError(w, http.StatusBadRequest, "Invalid older_than: "+param)
			return
		}
		olderThan = parsed
	}

	deleted, err := h.eventService.Cleanup(olderThan)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to cleanup events: "+err.Error())
		return
	}

	respondWithJSON(w, http.StatusOK, CleanupEventsResponse{Deleted: deleted})
}
