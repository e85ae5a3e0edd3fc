package models

// ActiveStopLoss - открытый stop-loss ордер на продажу по паре
type ActiveStopLoss struct {
	OrderID      string  `json:"order_id"`
	Pair         string  `json:"pair"`
	TriggerPrice float64 `json:"trigger_price"` // цена срабатывания текущего ордера
	Quantity     float64 `json:"quantity"`
}

// CurrentPrice - актуальная рыночная цена пары.
// Берётся как цена закрытия последней минутной свечи OHLC.
type CurrentPrice struct {
	Pair  string  `json:"pair"`
	Price float64 `json:"price"`
}

// StopLossFactor - множитель для цены срабатывания нового ордера:
// стоп ставится на 2% ниже текущей рыночной цены.
const StopLossFactor = 0.98

// ComputeStopPrice возвращает цену срабатывания для нового stop-loss
// ордера при текущей рыночной цене
func ComputeStopPrice(currentPrice float64) float64 {
	return currentPrice * StopLossFactor
}

// Benefit возвращает процент прибыли текущей цены относительно базовой.
// Базовая цена - это либо цена покупки (нет активного ордера), либо цена
// триггера активного ордера. Убыток обрезается до нуля: отрицательная
// "прибыль" не двигает стопы.
func Benefit(basePrice, currentPrice float64) float64 {
	if basePrice == 0 {
		return 0
	}
	b := (currentPrice - basePrice) / basePrice * 100
	if b < 0 {
		return 0
	}
	return b
}
