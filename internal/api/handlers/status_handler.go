package handlers

import (
	"net/http"
	"time"

	"dancespiele/internal/bot"
)

// PassReporter отдает итог последнего прохода движка
type PassReporter interface {
	LastPass() *bot.PassSummary
}

// StatusHandler отвечает за статус движка защиты позиций
//
// Endpoints:
// - GET /api/v1/status - итог последнего прохода
//
// Назначение:
// Позволяет UI и мониторингу увидеть, когда движок проходил по позициям
// в последний раз и чем проход закончился, не дожидаясь следующего тика.
type StatusHandler struct {
	engine    PassReporter
	startedAt time.Time
}

// NewStatusHandler создает новый StatusHandler с внедрением зависимости
func NewStatusHandler(engine PassReporter) *StatusHandler {
	return &StatusHandler{
		engine:    engine,
		startedAt: time.Now(),
	}
}

// StatusResponse представляет ответ статуса сервиса
type StatusResponse struct {
	Status   string           `json:"status"`
	Uptime   string           `json:"uptime"`
	LastPass *bot.PassSummary `json:"last_pass"`
}

// GetStatus возвращает текущий статус движка
//
// GET /api/v1/status
//
// last_pass равен null, пока движок не завершил ни одного прохода.
//
// HTTP коды:
// - 200 OK: всегда (статус информационный)
func (h *StatusHandler) GetStatus(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, StatusResponse{
		Status:   "ok",
		Uptime:   time.Since(h.startedAt).Round(time.Second).String(),
		LastPass: h.engine.LastPass(),
	})
}
