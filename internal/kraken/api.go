package kraken

import (
	"context"
	"net/url"

	jsoniter "github.com/json-iterator/go"

	"dancespiele/internal/models"
	"dancespiele/pkg/utils"
)

// BuyTrades возвращает покупки из истории торгов: пара, цена, время.
// Продажи отбрасываются, движку нужны только входы в позицию.
func (c *Client) BuyTrades(ctx context.Context) ([]Trade, error) {
	var result tradesHistoryResult
	if err := c.private(ctx, "/0/private/TradesHistory", nil, &result); err != nil {
		return nil, err
	}

	trades := make([]Trade, 0, len(result.Trades))
	for _, t := range result.Trades {
		if t.Type == "buy" {
			trades = append(trades, t)
		}
	}
	return trades, nil
}

// Balances возвращает остатки по активам. Ключ - код актива Kraken
// (XXBT, KAVA и т.д.), значение - количество.
func (c *Client) Balances(ctx context.Context) (map[string]float64, error) {
	var raw map[string]string
	if err := c.private(ctx, "/0/private/Balance", nil, &raw); err != nil {
		return nil, err
	}

	balances := make(map[string]float64, len(raw))
	for asset, v := range raw {
		amount, err := utils.ParseDecimal(v)
		if err != nil {
			return nil, &BadParseError{Field: "balance." + asset, Value: v, Err: err}
		}
		balances[asset] = amount
	}
	return balances, nil
}

// StopLossOrders возвращает открытые stop-loss ордера на продажу.
// Остальные типы ордеров движок не трогает.
func (c *Client) StopLossOrders(ctx context.Context) ([]models.ActiveStopLoss, error) {
	var result openOrdersResult
	if err := c.private(ctx, "/0/private/OpenOrders", nil, &result); err != nil {
		return nil, err
	}

	orders := make([]models.ActiveStopLoss, 0, len(result.Open))
	for id, o := range result.Open {
		d := o.Description
		if d.OrderType != "stop-loss" || d.Type != "sell" {
			continue
		}

		trigger, err := utils.ParseDecimal(d.Price)
		if err != nil {
			return nil, &BadParseError{Field: "descr.price", Value: d.Price, Err: err}
		}
		qty, err := utils.ParseDecimal(o.Volume)
		if err != nil {
			return nil, &BadParseError{Field: "vol", Value: o.Volume, Err: err}
		}

		orders = append(orders, models.ActiveStopLoss{
			OrderID:      id,
			Pair:         d.Pair,
			TriggerPrice: trigger,
			Quantity:     qty,
		})
	}
	return orders, nil
}

// LastClose возвращает цену закрытия последней минутной свечи пары
func (c *Client) LastClose(ctx context.Context, pair string) (float64, error) {
	params := url.Values{}
	params.Set("pair", pair)
	params.Set("interval", "1")

	// result: {"<pair>": [[time, open, high, low, close, ...], ...], "last": N}
	// Значения разнородные, поэтому сперва raw, затем свечи отдельно.
	var result map[string]jsoniter.RawMessage
	if err := c.public(ctx, "/0/public/OHLC", params, &result); err != nil {
		return 0, err
	}

	for key, raw := range result {
		if key == "last" {
			continue
		}

		var candles [][]jsoniter.RawMessage
		if err := json.Unmarshal(raw, &candles); err != nil {
			return 0, &BadParseError{Field: "ohlc." + key, Value: string(raw), Err: err}
		}
		if len(candles) == 0 {
			return 0, ErrNoCandles
		}
		last := candles[len(candles)-1]
		if len(last) < 5 {
			return 0, ErrNoCandles
		}

		var closeStr string
		if err := json.Unmarshal(last[4], &closeStr); err != nil {
			return 0, &BadParseError{Field: "ohlc.close", Value: string(last[4]), Err: err}
		}
		price, err := utils.ParseDecimal(closeStr)
		if err != nil {
			return 0, &BadParseError{Field: "ohlc.close", Value: closeStr, Err: err}
		}
		return price, nil
	}

	return 0, ErrNoCandles
}

// AddStopLoss выставляет stop-loss ордер на продажу.
// Цена и объём форматируются без экспоненты и хвостовых нулей.
func (c *Client) AddStopLoss(ctx context.Context, pair string, stopPrice, quantity float64) (*OrderConfirmation, error) {
	params := url.Values{}
	params.Set("pair", pair)
	params.Set("type", "sell")
	params.Set("ordertype", "stop-loss")
	params.Set("price", utils.FormatPrice(stopPrice))
	params.Set("volume", utils.FormatPrice(quantity))

	var result addOrderResult
	if err := c.private(ctx, "/0/private/AddOrder", params, &result); err != nil {
		return nil, err
	}

	conf := &OrderConfirmation{Description: result.Descr.Order}
	if len(result.TxIDs) > 0 {
		conf.TxID = result.TxIDs[0]
	}
	return conf, nil
}

// CancelOrder снимает открытый ордер по id
func (c *Client) CancelOrder(ctx context.Context, orderID string) error {
	params := url.Values{}
	params.Set("txid", orderID)

	var result cancelOrderResult
	return c.private(ctx, "/0/private/CancelOrder", params, &result)
}
