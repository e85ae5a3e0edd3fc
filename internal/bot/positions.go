// Package bot - движок защиты позиций: по расписанию сверяет открытые
// позиции с порогами прибыли и подтягивает stop-loss ордера вверх.
package bot

import (
	"sort"

	"dancespiele/internal/kraken"
	"dancespiele/internal/models"
)

// AggregatePositions собирает открытые позиции из истории покупок и
// текущих балансов.
//
// Для каждой пары берётся покупка с самым поздним временем; при равных
// временах побеждает последняя встреченная. Количество позиции - текущий
// остаток базового актива, а не объём сделки: часть могла быть продана.
// Пары с остатком на уровне пыли и с неизвестным активом пропускаются.
func AggregatePositions(trades []kraken.Trade, balances map[string]float64) ([]models.Position, error) {
	latest := make(map[string]kraken.Trade)
	for _, t := range trades {
		if t.Type != "buy" {
			continue
		}
		prev, seen := latest[t.Pair]
		if !seen || t.Time >= prev.Time {
			latest[t.Pair] = t
		}
	}

	positions := make([]models.Position, 0, len(latest))
	for pair, t := range latest {
		balance, ok := kraken.BalanceFor(balances, pair)
		if !ok || !models.HasBalance(balance) {
			continue
		}

		price, err := parseDecimal("trade.price", t.Price)
		if err != nil {
			return nil, err
		}

		positions = append(positions, models.Position{
			Pair:     pair,
			Price:    price,
			Quantity: balance,
			BoughtAt: t.Time,
		})
	}

	// Стабильный порядок обхода пар в проходе
	sort.Slice(positions, func(i, j int) bool {
		return positions[i].Pair < positions[j].Pair
	})

	return positions, nil
}
