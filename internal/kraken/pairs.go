package kraken

import "strings"

// knownAssets - базовые активы, которыми торгует движок. Порядок важен:
// более длинные коды идут раньше, чтобы префиксный поиск не срезал их
// короткими (ср. "KAVA" и несуществующий "KAV").
var knownAssets = []string{
	"XBT", "ETH", "XRP", "LTC", "BCH", "ADA", "XTZ", "ATOM",
	"LINK", "KAVA", "OXT", "ALGO", "TRX", "DOT", "KSM", "UNI",
	"AAVE", "GRT", "FLOW", "SNX", "COMP", "FIL", "SOL", "GNO", "MLN",
	"DASH", "EOS", "ETC", "ICX", "LSK", "NANO", "OMG", "QTUM",
	"REP", "SC", "WAVES", "XDG", "XLM", "XMR", "ZEC",
}

// BaseAsset извлекает код базового актива из имени пары.
// Kraken иногда добавляет X/Z-префиксы к legacy-активам ("XXBTZEUR"),
// поэтому префикс пробуется и после их снятия. Пустая строка - пара
// с неизвестным активом.
func BaseAsset(pair string) string {
	for _, asset := range knownAssets {
		if strings.HasPrefix(pair, asset) {
			return asset
		}
	}

	// legacy-формат: X<asset>Z<quote> или X<asset><quote>
	if len(pair) > 1 && (pair[0] == 'X' || pair[0] == 'Z') {
		for _, asset := range knownAssets {
			if strings.HasPrefix(pair[1:], asset) {
				return asset
			}
		}
	}

	return ""
}

// BalanceFor возвращает остаток базового актива пары.
// Баланс Kraken ключует legacy-кодами (XXBT, XETH), поэтому
// проверяются оба варианта имени.
func BalanceFor(balances map[string]float64, pair string) (float64, bool) {
	asset := BaseAsset(pair)
	if asset == "" {
		return 0, false
	}

	if v, ok := balances[asset]; ok {
		return v, true
	}
	for _, prefix := range []string{"X", "Z"} {
		if v, ok := balances[prefix+asset]; ok {
			return v, true
		}
	}
	return 0, false
}
