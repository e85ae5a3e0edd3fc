package models

// Notify - полезная нагрузка уведомления о выставленном stop-loss.
type Notify struct {
	Pair      string  `json:"pair"`
	BuyPrice  float64 `json:"buy_price"`
	StopPrice float64 `json:"stop_price"`
	Quantity  float64 `json:"quantity"`
	Benefit   float64 `json:"benefit"`
}

// NotificationEmail - уведомление с адресатом. Единственный аргумент
// celery-задачи и тело запроса к почтовому сервису.
type NotificationEmail struct {
	Pair    string  `json:"pair"`
	Price   float64 `json:"price"`
	Benefit float64 `json:"benefit"`
	Email   string  `json:"email"`
}

// FallbackMessage подставляется в отчёт прохода, когда уведомление не
// удалось доставить
const FallbackMessage = "Error to send notification"
