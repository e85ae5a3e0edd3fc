package kraken

import (
	"context"

	"dancespiele/internal/models"
)

// API - операции Kraken, нужные движку. Движок и тесты работают
// через этот интерфейс, реальный Client его реализует.
type API interface {
	BuyTrades(ctx context.Context) ([]Trade, error)
	Balances(ctx context.Context) (map[string]float64, error)
	StopLossOrders(ctx context.Context) ([]models.ActiveStopLoss, error)
	LastClose(ctx context.Context, pair string) (float64, error)
	AddStopLoss(ctx context.Context, pair string, stopPrice, quantity float64) (*OrderConfirmation, error)
	CancelOrder(ctx context.Context, orderID string) error
}

var _ API = (*Client)(nil)
