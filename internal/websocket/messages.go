package websocket

import (
	"time"

	"dancespiele/internal/bot"
	"dancespiele/internal/models"
)

// MessageType определяет тип WebSocket сообщения
type MessageType string

// Типы WebSocket сообщений
const (
	// MessageTypeStopLossEvent - выставлен или подтянут stop-loss ордер
	MessageTypeStopLossEvent MessageType = "stopLossEvent"

	// MessageTypePassUpdate - завершен очередной проход движка
	MessageTypePassUpdate MessageType = "passUpdate"
)

// BaseMessage - базовая структура для всех WebSocket сообщений
type BaseMessage struct {
	Type      MessageType `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
}

// StopLossEventMessage - сообщение о действии движка по одной паре
//
// Отправляется сразу после размещения нового стопа или переноса
// существующего, вместе с записью в журнал.
type StopLossEventMessage struct {
	BaseMessage
	Data *models.StopLossEvent `json:"data"`
}

// PassUpdateMessage - итог завершенного прохода движка
//
// Отправляется после каждого прохода, включая проходы без действий.
// Позволяет UI показывать состояние защиты без polling.
type PassUpdateMessage struct {
	BaseMessage
	Data bot.PassSummary `json:"data"`
}

// NewStopLossEventMessage создает сообщение о действии движка
func NewStopLossEventMessage(event *models.StopLossEvent) *StopLossEventMessage {
	return &StopLossEventMessage{
		BaseMessage: BaseMessage{
			Type:      MessageTypeStopLossEvent,
			Timestamp: time.Now(),
		},
		Data: event,
	}
}

// NewPassUpdateMessage создает сообщение об итоге прохода
func NewPassUpdateMessage(summary bot.PassSummary) *PassUpdateMessage {
	return &PassUpdateMessage{
		BaseMessage: BaseMessage{
			Type:      MessageTypePassUpdate,
			Timestamp: time.Now(),
		},
		Data: summary,
	}
}
