package websocket

import (
	"bytes"
	"encoding/json"
	"sync"
	"sync/atomic"

	"dancespiele/internal/bot"
	"dancespiele/internal/models"
	"dancespiele/pkg/utils"
)

// jsonBufferPool переиспользует буферы сериализации между broadcast
var jsonBufferPool = sync.Pool{
	New: func() interface{} {
		return bytes.NewBuffer(make([]byte, 0, 512))
	},
}

// Hub управляет всеми активными WebSocket соединениями
//
// Назначение:
// Центральный менеджер для broadcast сообщений всем подключенным клиентам.
// Движок отдает сюда события о выставленных стопах и итоги проходов,
// UI получает их в реальном времени без polling.
//
// Функции:
// - Регистрация и отмена регистрации клиентов
// - Broadcast сообщений всем активным клиентам
// - Отбрасывание сообщений при переполнении (broadcast не блокирует движок)
// - Очистка медленных клиентов
//
// Использование:
// 1. Создать hub: hub := NewHub()
// 2. Запустить в горутине: go hub.Run()
// 3. Отдавать события: hub.BroadcastStopLossEvent(event)
type Hub struct {
	// Зарегистрированные клиенты
	clients map[*Client]bool

	// Broadcast канал для отправки сообщений всем клиентам
	broadcast chan []byte

	// Регистрация нового клиента
	register chan *Client

	// Отмена регистрации клиента
	unregister chan *Client

	// Завершение цикла Run
	stop chan struct{}

	// Счетчик отброшенных сообщений (переполненный broadcast канал)
	dropped atomic.Int64

	log *utils.Logger

	// Mutex для потокобезопасного доступа к clients
	mu sync.RWMutex
}

// Hub используется движком как приемник событий
var _ bot.Broadcaster = (*Hub)(nil)

// NewHub создает новый Hub
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan []byte, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		stop:       make(chan struct{}),
		log:        utils.L().WithComponent("websocket"),
	}
}

// Run запускает главный цикл Hub
//
// Должен запускаться в отдельной горутине: go hub.Run()
// Обрабатывает регистрацию, отмену регистрации и broadcast.
// Завершается по Stop().
func (h *Hub) Run() {
	for {
		select {
		case <-h.stop:
			h.mu.Lock()
			for client := range h.clients {
				delete(h.clients, client)
				close(client.send)
			}
			h.mu.Unlock()
			return

		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			total := len(h.clients)
			h.mu.Unlock()
			h.log.Debug("client connected", utils.Int("total", total))

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			total := len(h.clients)
			h.mu.Unlock()
			h.log.Debug("client disconnected", utils.Int("total", total))

		case message := <-h.broadcast:
			// Копируем список клиентов под коротким RLock,
			// отправка идет без блокировки register/unregister
			h.mu.RLock()
			clients := make([]*Client, 0, len(h.clients))
			for client := range h.clients {
				clients = append(clients, client)
			}
			h.mu.RUnlock()

			var toRemove []*Client
			for _, client := range clients {
				select {
				case client.send <- message:
				default:
					// Клиент не успевает читать, отключаем его
					toRemove = append(toRemove, client)
				}
			}

			if len(toRemove) > 0 {
				h.mu.Lock()
				for _, client := range toRemove {
					if _, ok := h.clients[client]; ok {
						delete(h.clients, client)
						close(client.send)
					}
				}
				total := len(h.clients)
				h.mu.Unlock()
				h.log.Warn("removed slow clients",
					utils.Int("removed", len(toRemove)),
					utils.Int("total", total),
				)
			}
		}
	}
}

// Stop завершает цикл Run и закрывает все соединения
func (h *Hub) Stop() {
	close(h.stop)
}

// BroadcastRaw отправляет уже сериализованное сообщение всем клиентам.
// Не блокирует: при переполненном канале сообщение отбрасывается.
func (h *Hub) BroadcastRaw(data []byte) {
	select {
	case h.broadcast <- data:
	default:
		h.dropped.Add(1)
	}
}

// Broadcast сериализует сообщение и отправляет всем клиентам
func (h *Hub) Broadcast(message interface{}) {
	buf := jsonBufferPool.Get().(*bytes.Buffer)
	buf.Reset()

	if err := json.NewEncoder(buf).Encode(message); err != nil {
		h.log.Error("failed to marshal broadcast message", utils.Err(err))
		jsonBufferPool.Put(buf)
		return
	}

	// Encode добавляет trailing newline
	data := buf.Bytes()
	if len(data) > 0 && data[len(data)-1] == '\n' {
		data = data[:len(data)-1]
	}

	// Буфер вернется в пул, данные копируем
	msgCopy := make([]byte, len(data))
	copy(msgCopy, data)
	jsonBufferPool.Put(buf)

	h.BroadcastRaw(msgCopy)
}

// BroadcastStopLossEvent отправляет событие о выставленном или
// подтянутом stop-loss ордере
func (h *Hub) BroadcastStopLossEvent(event *models.StopLossEvent) {
	h.Broadcast(NewStopLossEventMessage(event))
}

// BroadcastPassUpdate отправляет итог завершенного прохода движка
func (h *Hub) BroadcastPassUpdate(summary bot.PassSummary) {
	h.Broadcast(NewPassUpdateMessage(summary))
}

// ClientCount возвращает количество подключенных клиентов
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// DroppedMessages возвращает количество отброшенных сообщений
func (h *Hub) DroppedMessages() int64 {
	return h.dropped.Load()
}
