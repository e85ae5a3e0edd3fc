package bot

import (
	"dancespiele/internal/kraken"
	"dancespiele/internal/models"
	"dancespiele/pkg/utils"
)

// OrdersByPair индексирует активные stop-loss ордера по паре.
// На пару предполагается не больше одного ордера: движок сам снимает
// старый перед выставлением нового. Если биржа всё же вернула
// несколько, остаётся ордер с более высоким триггером.
func OrdersByPair(orders []models.ActiveStopLoss) map[string]models.ActiveStopLoss {
	byPair := make(map[string]models.ActiveStopLoss, len(orders))
	for _, o := range orders {
		if existing, ok := byPair[o.Pair]; ok && existing.TriggerPrice >= o.TriggerPrice {
			continue
		}
		byPair[o.Pair] = o
	}
	return byPair
}

// parseDecimal оборачивает ошибку разбора в типизированную ошибку Kraken
func parseDecimal(field, value string) (float64, error) {
	v, err := utils.ParseDecimal(value)
	if err != nil {
		return 0, &kraken.BadParseError{Field: field, Value: value, Err: err}
	}
	return v, nil
}
