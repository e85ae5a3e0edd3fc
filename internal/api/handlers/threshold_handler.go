package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"dancespiele/internal/models"
	"dancespiele/internal/service"

	"github.com/gorilla/mux"
)

// ThresholdHandler отвечает за управление порогами прибыли
//
// Endpoints:
// - GET /api/v1/thresholds - список порогов всех пар
// - GET /api/v1/thresholds/{pair} - пороги одной пары
// - POST /api/v1/thresholds - добавление или обновление пары
// - PUT /api/v1/thresholds - замена всего списка
// - DELETE /api/v1/thresholds/{pair} - удаление пары из списка
//
// Назначение:
// Пороги определяют, при какой нереализованной прибыли движок выставляет
// первый stop-loss (new_stop_loss) и при каком росте относительно уже
// установленного стопа подтягивает его выше (next_stop_loss).
// Пара без порога пропускается движком, поэтому этот API - единственный
// способ включить защиту позиции.
type ThresholdHandler struct {
	thresholdService service.ThresholdServiceInterface
}

// NewThresholdHandler создает новый ThresholdHandler с внедрением зависимости
func NewThresholdHandler(thresholdService service.ThresholdServiceInterface) *ThresholdHandler {
	return &ThresholdHandler{
		thresholdService: thresholdService,
	}
}

// GetThresholdsResponse представляет ответ списка порогов
type GetThresholdsResponse struct {
	Thresholds []models.Threshold `json:"thresholds"`
	Total      int                `json:"total"`
}

// GetThresholds возвращает пороги всех пар
//
// GET /api/v1/thresholds
//
// HTTP коды:
// - 200 OK: успешно, возвращает массив порогов (пустой если порогов нет)
// - 500 Internal Server Error: ошибка хранилища
func (h *ThresholdHandler) GetThresholds(w http.ResponseWriter, r *http.Request) {
	thresholds, err := h.thresholdService.GetThresholds(r.Context())
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to get thresholds: "+err.Error())
		return
	}

	if thresholds == nil {
		thresholds = []models.Threshold{}
	}

	respondWithJSON(w, http.StatusOK, GetThresholdsResponse{
		Thresholds: thresholds,
		Total:      len(thresholds),
	})
}

// GetThreshold возвращает пороги одной пары
//
// GET /api/v1/thresholds/{pair}
//
// HTTP коды:
// - 200 OK: пороги найдены
// - 400 Bad Request: некорректный формат пары
// - 404 Not Found: для пары пороги не заданы
// - 500 Internal Server Error: ошибка хранилища
func (h *ThresholdHandler) GetThreshold(w http.ResponseWriter, r *http.Request) {
	pair := mux.Vars(r)["pair"]

	threshold, err := h.thresholdService.GetThreshold(r.Context(), pair)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidThreshold):
			respondWithError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrThresholdNotFound):
			respondWithError(w, http.StatusNotFound, "Threshold not found for pair "+pair)
		default:
			respondWithError(w, http.StatusInternalServerError, "Failed to get threshold: "+err.Error())
		}
		return
	}

	respondWithJSON(w, http.StatusOK, threshold)
}

// SetThreshold добавляет или обновляет пороги пары
//
// POST /api/v1/thresholds
//
// Request body:
//
//	{"pair": "KAVAEUR", "new_stop_loss": "40", "next_stop_loss": "14"}
//
// Проценты передаются строками, как их хранит KV.
//
// HTTP коды:
// - 200 OK: пороги сохранены
// - 400 Bad Request: некорректный JSON или значения
// - 500 Internal Server Error: ошибка хранилища
func (h *ThresholdHandler) SetThreshold(w http.ResponseWriter, r *http.Request) {
	var req service.SetThresholdRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	threshold, err := h.thresholdService.SetThreshold(r.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidThreshold) {
			respondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
		respondWithError(w, http.StatusInternalServerError, "Failed to set threshold: "+err.Error())
		return
	}

	respondWithJSON(w, http.StatusOK, threshold)
}

// ReplaceThresholds заменяет весь список порогов за один запрос
//
// PUT /api/v1/thresholds
//
// Request body: массив объектов в формате SetThreshold.
// Пары, отсутствующие в новом списке, теряют пороги.
//
// HTTP коды:
// - 200 OK: список заменен
// - 400 Bad Request: некорректный JSON, значения или повтор пары
// - 500 Internal Server Error: ошибка хранилища
func (h *ThresholdHandler) ReplaceThresholds(w http.ResponseWriter, r *http.Request) {
	var reqs []service.SetThresholdRequest
	if err := json.NewDecoder(r.Body).Decode(&reqs); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	thresholds, err := h.thresholdService.ReplaceThresholds(r.Context(), reqs)
	if err != nil {
		if errors.Is(err, service.ErrInvalidThreshold) {
			respondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
		respondWithError(w, http.StatusInternalServerError, "Failed to replace thresholds: "+err.Error())
		return
	}

	respondWithJSON(w, http.StatusOK, GetThresholdsResponse{
		Thresholds: thresholds,
		Total:      len(thresholds),
	})
}

// DeleteThreshold удаляет пороги пары
//
// DELETE /api/v1/thresholds/{pair}
//
// После удаления движок перестает защищать позицию по этой паре.
//
// HTTP коды:
// - 200 OK: пороги удалены
// - 400 Bad Request: некорректный формат пары
// - 404 Not Found: для пары пороги не заданы
// - 500 Internal Server Error: ошибка хранилища
func (h *ThresholdHandler) DeleteThreshold(w http.ResponseWriter, r *http.Request) {
	pair := mux.Vars(r)["pair"]

	if err := h.thresholdService.RemoveThreshold(r.Context(), pair); err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidThreshold):
			respondWithError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrThresholdNotFound):
			respondWithError(w, http.StatusNotFound, "Threshold not found for pair "+pair)
		default:
			respondWithError(w, http.StatusInternalServerError, "Failed to delete threshold: "+err.Error())
		}
		return
	}

	respondWithJSON(w, http.StatusOK, SuccessResponse{
		Message: "Threshold for " + pair + " deleted successfully",
	})
}
