package models

// Position представляет открытую позицию: покупка, по которой на счету
// до сих пор лежит заметный остаток базового актива.
//
// Price - цена последней покупки по паре; Quantity - текущий баланс
// актива (не объём сделки: часть могла быть уже продана).
type Position struct {
	Pair      string  `json:"pair"`
	Price     float64 `json:"price"`
	Quantity  float64 `json:"quantity"`
	BoughtAt  float64 `json:"bought_at"` // unixtime покупки (kraken отдаёт дробные секунды)
}

// DustThreshold - минимальный остаток, при котором баланс считается позицией.
// Всё что меньше - "пыль" после округлений и комиссий.
const DustThreshold = 0.00001

// HasBalance сообщает, превышает ли остаток порог пыли
func HasBalance(balance float64) bool {
	return balance > DustThreshold
}
