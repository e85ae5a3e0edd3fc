package models

import "time"

// StopLossEvent - запись журнала о действии движка по паре.
// Пишется в Postgres после каждого размещения/переноса стопа;
// сбой записи не прерывает проход.
type StopLossEvent struct {
	ID         int       `json:"id" db:"id"`
	Pair       string    `json:"pair" db:"pair"`
	Action     string    `json:"action" db:"action"`
	BuyPrice   float64   `json:"buy_price" db:"buy_price"`
	StopPrice  float64   `json:"stop_price" db:"stop_price"`
	Quantity   float64   `json:"quantity" db:"quantity"`
	Benefit    float64   `json:"benefit" db:"benefit"`
	OrderID    string    `json:"order_id,omitempty" db:"order_id"`
	PrevOrder  string    `json:"prev_order,omitempty" db:"prev_order"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}

// Действия движка
const (
	ActionPlaced  = "placed"  // выставлен первый stop-loss
	ActionMoved   = "moved"   // старый ордер снят, новый выставлен выше
	ActionSkipped = "skipped" // порог не достигнут, ордер не трогали
)
