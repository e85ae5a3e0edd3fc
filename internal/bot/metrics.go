package bot

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ============================================================
// Prometheus метрики движка
// ============================================================

// ============ Проходы ============

// PassesTotal - завершённые проходы по результату
var PassesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "dancespiele",
		Subsystem: "engine",
		Name:      "passes_total",
		Help:      "Total number of completed passes",
	},
	[]string{"result"}, // ok, error
)

// PassesSkipped - тики, пропущенные из-за ещё идущего прохода
var PassesSkipped = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: "dancespiele",
		Subsystem: "engine",
		Name:      "passes_skipped_total",
		Help:      "Ticks skipped because a pass was still running",
	},
)

// PassDuration - длительность прохода
var PassDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: "dancespiele",
		Subsystem: "engine",
		Name:      "pass_duration_seconds",
		Help:      "Pass duration in seconds",
		Buckets:   []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 30, 60},
	},
)

// ============ Действия по парам ============

// OrdersPlaced - выставленные и перенесённые стопы
var OrdersPlaced = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "dancespiele",
		Subsystem: "engine",
		Name:      "orders_placed_total",
		Help:      "Stop loss orders placed by action",
	},
	[]string{"pair", "action"}, // action: placed, moved
)

// PairsSkipped - пары, пропущенные в проходе, по причине
var PairsSkipped = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "dancespiele",
		Subsystem: "engine",
		Name:      "pairs_skipped_total",
		Help:      "Pairs skipped during a pass by reason",
	},
	[]string{"reason"}, // no_threshold, no_price, below_threshold, order_failed
)

// NotificationFailures - неподтверждённые уведомления
var NotificationFailures = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: "dancespiele",
		Subsystem: "notify",
		Name:      "failures_total",
		Help:      "Notifications that failed or were not confirmed",
	},
)

// ============ Состояние ============

// ActivePositions - позиции, найденные последним проходом
var ActivePositions = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: "dancespiele",
		Subsystem: "engine",
		Name:      "active_positions",
		Help:      "Positions seen by the last pass",
	},
)

// ActiveStopOrders - stop-loss ордера, найденные последним проходом
var ActiveStopOrders = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: "dancespiele",
		Subsystem: "engine",
		Name:      "active_stop_orders",
		Help:      "Active stop loss orders seen by the last pass",
	},
)
