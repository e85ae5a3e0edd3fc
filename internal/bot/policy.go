package bot

import "dancespiele/internal/models"

// State - положение пары в проходе
type State int

const (
	// StateNoPosition - позиции нет, делать нечего
	StateNoPosition State = iota
	// StatePositionNoOrder - позиция без стопа, ждём порог NewStopLoss
	StatePositionNoOrder
	// StatePositionWithOrder - позиция под стопом, ждём порог NextStopLoss
	StatePositionWithOrder
)

func (s State) String() string {
	switch s {
	case StateNoPosition:
		return "no_position"
	case StatePositionNoOrder:
		return "position_no_order"
	case StatePositionWithOrder:
		return "position_with_order"
	default:
		return "unknown"
	}
}

// Decision - решение по одной паре
type Decision struct {
	State     State
	Place     bool    // выставить новый stop-loss
	CancelID  string  // какой ордер снять перед выставлением
	StopPrice float64 // цена срабатывания нового ордера
	Quantity  float64 // объём нового ордера
	Benefit   float64 // прибыль относительно базовой цены, %
	Basis     float64 // базовая цена: покупка или триггер
}

// Decide принимает решение по паре.
//
// Базовая цена для расчёта прибыли - цена покупки, если стопа ещё нет,
// иначе цена срабатывания текущего стопа. Сравнение с порогом
// включительное: прибыль ровно на пороге уже двигает ордер.
func Decide(pos models.Position, order *models.ActiveStopLoss, currentPrice float64, th models.Threshold) Decision {
	if order == nil {
		benefit := models.Benefit(pos.Price, currentPrice)
		d := Decision{
			State:   StatePositionNoOrder,
			Benefit: benefit,
			Basis:   pos.Price,
		}
		if benefit >= th.NewStopLoss {
			d.Place = true
			d.StopPrice = models.ComputeStopPrice(currentPrice)
			d.Quantity = pos.Quantity
		}
		return d
	}

	benefit := models.Benefit(order.TriggerPrice, currentPrice)
	d := Decision{
		State:   StatePositionWithOrder,
		Benefit: benefit,
		Basis:   order.TriggerPrice,
	}
	if benefit >= th.NextStopLoss {
		d.Place = true
		d.CancelID = order.OrderID
		d.StopPrice = models.ComputeStopPrice(currentPrice)
		// Объём нового ордера - текущий размер позиции, а не объём
		// снятого ордера: баланс мог измениться с момента выставления.
		d.Quantity = pos.Quantity
	}
	return d
}
