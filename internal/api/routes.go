package api

import (
	"net/http"

	"dancespiele/internal/api/handlers"
	"dancespiele/internal/api/middleware"
	"dancespiele/internal/service"
	"dancespiele/internal/websocket"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Dependencies содержит все зависимости для API handlers
type Dependencies struct {
	ThresholdService service.ThresholdServiceInterface
	EventService     service.EventServiceInterface
	Engine           handlers.PassReporter
	Hub              *websocket.Hub

	// bcrypt-хеш административного токена; пусто = auth отключен
	APITokenHash string
}

// SetupRoutes настраивает все HTTP маршруты приложения
//
// Назначение:
// Центральное место для определения всех API endpoints.
// Регистрирует handlers для каждого маршрута.
// Применяет middleware к группам маршрутов.
// Организует версионирование API (v1).
//
// Структура маршрутов:
//
// /api/v1/
//
//	├── /thresholds/
//	│   ├── GET / - пороги всех пар
//	│   ├── POST / - добавить или обновить пару
//	│   ├── PUT / - заменить весь список
//	│   ├── GET /{pair} - пороги одной пары
//	│   └── DELETE /{pair} - удалить пару
//	├── /events/
//	│   ├── GET / - журнал операций со stop-loss ордерами
//	│   ├── GET /count - количество записей
//	│   └── DELETE / - очистка старых записей
//	└── /status/
//	    └── GET / - итог последнего прохода движка
//
// /ws/
//
//	└── /stream - WebSocket для real-time событий
//
// /metrics - Prometheus метрики
// /health - health check
//
// Middleware применяется в следующем порядке:
// 1. Recovery (для всех маршрутов)
// 2. Logging (для всех маршрутов)
// 3. CORS (для всех маршрутов)
// 4. Auth (только для /api/v1)
func SetupRoutes(deps *Dependencies) *mux.Router {
	router := mux.NewRouter()

	// Глобальные middleware (применяются ко всем маршрутам)
	router.Use(middleware.Recovery)
	router.Use(middleware.Logging)
	router.Use(middleware.CORS)

	// Создание handlers с внедрением зависимостей
	var thresholdHandler *handlers.ThresholdHandler
	if deps != nil && deps.ThresholdService != nil {
		thresholdHandler = handlers.NewThresholdHandler(deps.ThresholdService)
	}

	var eventHandler *handlers.EventHandler
	if deps != nil && deps.EventService != nil {
		eventHandler = handlers.NewEventHandler(deps.EventService)
	}

	var statusHandler *handlers.StatusHandler
	if deps != nil && deps.Engine != nil {
		statusHandler = handlers.NewStatusHandler(deps.Engine)
	}

	// API v1 routes
	api := router.PathPrefix("/api/v1").Subrouter()

	// Административный API закрыт токеном
	if deps != nil {
		api.Use(middleware.Auth(deps.APITokenHash))
	}

	// Threshold routes
	if thresholdHandler != nil {
		api.HandleFunc("/thresholds", thresholdHandler.GetThresholds).Methods("GET")
		api.HandleFunc("/thresholds", thresholdHandler.SetThreshold).Methods("POST")
		api.HandleFunc("/thresholds", thresholdHandler.ReplaceThresholds).Methods("PUT")
		api.HandleFunc("/thresholds/{pair}", thresholdHandler.GetThreshold).Methods("GET")
		api.HandleFunc("/thresholds/{pair}", thresholdHandler.DeleteThreshold).Methods("DELETE")
	}

	// Event journal routes
	if eventHandler != nil {
		api.HandleFunc("/events", eventHandler.GetEvents).Methods("GET")
		api.HandleFunc("/events", eventHandler.CleanupEvents).Methods("DELETE")
		api.HandleFunc("/events/count", eventHandler.GetEventCount).Methods("GET")
	}

	// Status route
	if statusHandler != nil {
		api.HandleFunc("/status", statusHandler.GetStatus).Methods("GET")
	}

	// WebSocket route
	if deps != nil && deps.Hub != nil {
		hub := deps.Hub
		router.HandleFunc("/ws/stream", func(w http.ResponseWriter, r *http.Request) {
			websocket.ServeWS(hub, w, r)
		})
	}

	// Prometheus метрики
	router.Handle("/metrics", promhttp.Handler()).Methods("GET")

	// Health check endpoint
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	}).Methods("GET")

	return router
}
