package models

import "errors"

// ErrThresholdNotFound возвращается, когда для пары нет записи порогов.
// Ошибка не фатальна для прохода: пара пропускается, остальные обрабатываются.
var ErrThresholdNotFound = errors.New("threshold not found for pair")

// Threshold - пороги прибыли для одной пары.
//
// NewStopLoss - минимальный процент прибыли, при котором выставляется
// первый stop-loss ордер. NextStopLoss - минимальный процент прибыли
// относительно цены триггера текущего ордера, при котором ордер
// переставляется выше.
type Threshold struct {
	Pair         string  `json:"pair"`
	NewStopLoss  float64 `json:"new_stop_loss"`
	NextStopLoss float64 `json:"next_stop_loss"`
}

// FindThreshold ищет пороги для пары в списке.
// Возвращает ErrThresholdNotFound, если записи нет.
func FindThreshold(list []Threshold, pair string) (Threshold, error) {
	for _, t := range list {
		if t.Pair == pair {
			return t, nil
		}
	}
	return Threshold{}, ErrThresholdNotFound
}
