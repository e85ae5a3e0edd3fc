package kraken

// DTO ответов Kraken. Все числа приходят десятичными строками,
// парсинг в float64 делается в типизированных методах api.go.

// Trade - сделка из истории торгов
type Trade struct {
	Pair    string  `json:"pair"`
	Type    string  `json:"type"`      // buy | sell
	Price   string  `json:"price"`
	Volume  string  `json:"vol"`
	Cost    string  `json:"cost"`
	Fee     string  `json:"fee"`
	Time    float64 `json:"time"`      // unixtime с дробными секундами
	OrderTx string  `json:"ordertxid"`
}

// tradesHistoryResult - result конверта TradesHistory
type tradesHistoryResult struct {
	Trades map[string]Trade `json:"trades"`
	Count  int              `json:"count"`
}

// OrderDescription - поле descr открытого ордера
type OrderDescription struct {
	Pair      string `json:"pair"`
	Type      string `json:"type"`      // buy | sell
	OrderType string `json:"ordertype"` // limit, stop-loss, ...
	Price     string `json:"price"`     // для stop-loss это цена срабатывания
	Price2    string `json:"price2"`
	Order     string `json:"order"` // человекочитаемое описание
}

// OpenOrder - открытый ордер
type OpenOrder struct {
	Status      string           `json:"status"`
	OpenTime    float64          `json:"opentm"`
	Volume      string           `json:"vol"`
	VolumeExec  string           `json:"vol_exec"`
	Description OrderDescription `json:"descr"`
}

// openOrdersResult - result конверта OpenOrders
type openOrdersResult struct {
	Open map[string]OpenOrder `json:"open"`
}

// addOrderResult - result конверта AddOrder
type addOrderResult struct {
	Descr struct {
		Order string `json:"order"`
	} `json:"descr"`
	TxIDs []string `json:"txid"`
}

// cancelOrderResult - result конверта CancelOrder
type cancelOrderResult struct {
	Count int `json:"count"`
}

// OrderConfirmation - подтверждение размещения ордера
type OrderConfirmation struct {
	TxID        string
	Description string
}
