package bot

import (
	"testing"

	"dancespiele/internal/kraken"
	"dancespiele/internal/models"
)

func TestAggregatePositions_LatestBuyWins(t *testing.T) {
	trades := []kraken.Trade{
		{Pair: "KAVAEUR", Type: "buy", Price: "2.0", Time: 1600000000},
		{Pair: "KAVAEUR", Type: "buy", Price: "2.5", Time: 1600000500},
		{Pair: "KAVAEUR", Type: "buy", Price: "2.2", Time: 1600000100},
	}
	balances := map[string]float64{"KAVA": 1500}

	positions, err := AggregatePositions(trades, balances)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(positions) != 1 {
		t.Fatalf("expected 1 position, got %d", len(positions))
	}
	p := positions[0]
	if p.Price != 2.5 {
		t.Errorf("expected latest buy price 2.5, got %v", p.Price)
	}
	if p.Quantity != 1500 {
		t.Errorf("expected quantity from balance 1500, got %v", p.Quantity)
	}
}

func TestAggregatePositions_EqualTimestampLastWins(t *testing.T) {
	trades := []kraken.Trade{
		{Pair: "OXTEUR", Type: "buy", Price: "0.25", Time: 1600000000},
		{Pair: "OXTEUR", Type: "buy", Price: "0.29", Time: 1600000000},
	}
	balances := map[string]float64{"OXT": 4000}

	positions, err := AggregatePositions(trades, balances)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(positions) != 1 {
		t.Fatalf("expected 1 position, got %d", len(positions))
	}
	if positions[0].Price != 0.29 {
		t.Errorf("expected last trade at equal timestamp to win, got price %v", positions[0].Price)
	}
}

func TestAggregatePositions_SkipsDustAndMissingBalance(t *testing.T) {
	trades := []kraken.Trade{
		{Pair: "OXTEUR", Type: "buy", Price: "0.29", Time: 1},
		{Pair: "KAVAEUR", Type: "buy", Price: "2.5", Time: 2},
		{Pair: "ADAEUR", Type: "buy", Price: "0.9", Time: 3},
	}
	balances := map[string]float64{
		"OXT":  0.000005, // пыль
		"KAVA": 1500,
		// ADA отсутствует в балансах
	}

	positions, err := AggregatePositions(trades, balances)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(positions) != 1 {
		t.Fatalf("expected 1 position, got %d", len(positions))
	}
	if positions[0].Pair != "KAVAEUR" {
		t.Errorf("expected KAVAEUR, got %s", positions[0].Pair)
	}
}

func TestAggregatePositions_IgnoresSells(t *testing.T) {
	trades := []kraken.Trade{
		{Pair: "OXTEUR", Type: "buy", Price: "0.29", Time: 1},
		{Pair: "OXTEUR", Type: "sell", Price: "0.35", Time: 2},
	}
	balances := map[string]float64{"OXT": 4000}

	positions, err := AggregatePositions(trades, balances)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(positions) != 1 || positions[0].Price != 0.29 {
		t.Errorf("sell trade must not shadow the buy: %+v", positions)
	}
}

func TestAggregatePositions_SortedByPair(t *testing.T) {
	trades := []kraken.Trade{
		{Pair: "OXTEUR", Type: "buy", Price: "0.29", Time: 1},
		{Pair: "KAVAEUR", Type: "buy", Price: "2.5", Time: 2},
	}
	balances := map[string]float64{"OXT": 4000, "KAVA": 1500}

	positions, err := AggregatePositions(trades, balances)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(positions) != 2 {
		t.Fatalf("expected 2 positions, got %d", len(positions))
	}
	if positions[0].Pair != "KAVAEUR" || positions[1].Pair != "OXTEUR" {
		t.Errorf("positions not sorted: %s, %s", positions[0].Pair, positions[1].Pair)
	}
}

func TestAggregatePositions_BadPrice(t *testing.T) {
	trades := []kraken.Trade{
		{Pair: "OXTEUR", Type: "buy", Price: "oops", Time: 1},
	}
	balances := map[string]float64{"OXT": 4000}

	if _, err := AggregatePositions(trades, balances); err == nil {
		t.Error("expected parse error, got nil")
	}
}

func TestOrdersByPair(t *testing.T) {
	orders := []models.ActiveStopLoss{
		{OrderID: "A", Pair: "KAVAEUR", TriggerPrice: 3.0, Quantity: 1500},
		{OrderID: "B", Pair: "OXTEUR", TriggerPrice: 0.3, Quantity: 4000},
	}

	byPair := OrdersByPair(orders)
	if len(byPair) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(byPair))
	}
	if byPair["KAVAEUR"].OrderID != "A" {
		t.Errorf("KAVAEUR order = %s", byPair["KAVAEUR"].OrderID)
	}
}

func TestOrdersByPair_DuplicateKeepsHigherTrigger(t *testing.T) {
	orders := []models.ActiveStopLoss{
		{OrderID: "LOW", Pair: "KAVAEUR", TriggerPrice: 2.8},
		{OrderID: "HIGH", Pair: "KAVAEUR", TriggerPrice: 3.0},
		{OrderID: "MID", Pair: "KAVAEUR", TriggerPrice: 2.9},
	}

	byPair := OrdersByPair(orders)
	if byPair["KAVAEUR"].OrderID != "HIGH" {
		t.Errorf("expected HIGH to win, got %s", byPair["KAVAEUR"].OrderID)
	}
}
