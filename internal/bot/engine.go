package bot

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"dancespiele/internal/kraken"
	"dancespiele/internal/models"
	"dancespiele/internal/notify"
	"dancespiele/pkg/utils"
)

// Thresholds - источник порогов прибыли по парам
type Thresholds interface {
	All(ctx context.Context) ([]models.Threshold, error)
}

// EventJournal - журнал действий движка. Сбой записи не прерывает проход.
type EventJournal interface {
	Create(event *models.StopLossEvent) error
}

// Broadcaster - рассылка событий подключенным клиентам
type Broadcaster interface {
	BroadcastStopLossEvent(event *models.StopLossEvent)
	BroadcastPassUpdate(summary PassSummary)
}

// PassSummary - итог одного прохода
type PassSummary struct {
	StartedAt time.Time     `json:"started_at"`
	Duration  time.Duration `json:"duration"`
	Positions int           `json:"positions"`
	Placed    int           `json:"placed"`
	Moved     int           `json:"moved"`
	Skipped   int           `json:"skipped"`
	Result    string        `json:"result"`
	// Notification заполняется сообщением-заглушкой, когда доставка
	// уведомления не подтвердилась; сам проход при этом завершается
	Notification string `json:"notification,omitempty"`
	Error        string `json:"error,omitempty"`
}

// Engine - движок защиты позиций.
//
// Каждый тик движок строит снимок состояния: покупки, балансы, открытые
// stop-loss ордера, пороги. Затем по каждой позиции решает, выставить ли
// новый стоп или подтянуть существующий. Проходы не перекрываются:
// тик, пришедший во время работы, пропускается.
type Engine struct {
	api        kraken.API
	thresholds Thresholds
	notifier   notify.Notifier
	journal    EventJournal
	hub        Broadcaster
	interval   time.Duration
	log        *utils.Logger

	// single-flight: 1 пока идёт проход
	running atomic.Int32

	mu       sync.RWMutex
	lastPass *PassSummary
}

// New создаёт движок. journal и hub могут быть nil.
func New(api kraken.API, thresholds Thresholds, notifier notify.Notifier, journal EventJournal, hub Broadcaster, interval time.Duration, log *utils.Logger) *Engine {
	if interval <= 0 {
		interval = 2 * time.Minute
	}
	return &Engine{
		api:        api,
		thresholds: thresholds,
		notifier:   notifier,
		journal:    journal,
		hub:        hub,
		interval:   interval,
		log:        log.WithComponent("engine"),
	}
}

// Run крутит проходы по расписанию до отмены контекста.
// Первый проход выполняется сразу, не дожидаясь тика.
func (e *Engine) Run(ctx context.Context) {
	e.log.Info("engine started", utils.Duration("interval", e.interval))

	e.tick(ctx)

	ticker := time.NewTicker(e.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			e.log.Info("engine stopped")
			return
		case <-ticker.C:
			e.tick(ctx)
		}
	}
}

// tick запускает проход, если предыдущий уже закончился
func (e *Engine) tick(ctx context.Context) {
	if !e.running.CompareAndSwap(0, 1) {
		PassesSkipped.Inc()
		e.log.Warn("pass still running, tick skipped")
		return
	}
	defer e.running.Store(0)

	start := time.Now()
	summary, err := e.runPass(ctx)
	summary.StartedAt = start
	summary.Duration = time.Since(start)

	PassDuration.Observe(summary.Duration.Seconds())
	if err != nil {
		summary.Error = err.Error()
		PassesTotal.WithLabelValues("error").Inc()
		e.log.Error("pass failed", utils.Err(err), utils.Duration("took", summary.Duration))
	} else {
		PassesTotal.WithLabelValues("ok").Inc()
		e.log.Info("pass complete",
			utils.String("result", summary.Result),
			utils.Duration("took", summary.Duration),
		)
	}

	e.mu.Lock()
	e.lastPass = &summary
	e.mu.Unlock()

	if e.hub != nil {
		e.hub.BroadcastPassUpdate(summary)
	}
}

// LastPass возвращает итог последнего прохода, nil если проходов не было
func (e *Engine) LastPass() *PassSummary {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.lastPass == nil {
		return nil
	}
	c := *e.lastPass
	return &c
}

// runPass выполняет один проход. Ошибки загрузки снимка состояния
// прерывают проход; проблемы отдельной пары пропускают только её.
func (e *Engine) runPass(ctx context.Context) (PassSummary, error) {
	var summary PassSummary

	trades, err := e.api.BuyTrades(ctx)
	if err != nil {
		return summary, fmt.Errorf("load trades: %w", err)
	}

	balances, err := e.api.Balances(ctx)
	if err != nil {
		return summary, fmt.Errorf("load balances: %w", err)
	}

	orders, err := e.api.StopLossOrders(ctx)
	if err != nil {
		return summary, fmt.Errorf("load open orders: %w", err)
	}

	thresholds, err := e.thresholds.All(ctx)
	if err != nil {
		return summary, fmt.Errorf("load thresholds: %w", err)
	}

	positions, err := AggregatePositions(trades, balances)
	if err != nil {
		return summary, err
	}
	byPair := OrdersByPair(orders)

	summary.Positions = len(positions)
	ActivePositions.Set(float64(len(positions)))
	ActiveStopOrders.Set(float64(len(byPair)))

	if len(positions) == 0 {
		summary.Result = "nothing to do: no open positions"
		return summary, nil
	}

	for _, pos := range positions {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		log := e.log.WithPair(pos.Pair)

		th, err := models.FindThreshold(thresholds, pos.Pair)
		if err != nil {
			summary.Skipped++
			PairsSkipped.WithLabelValues("no_threshold").Inc()
			log.Warn("no threshold configured, pair skipped")
			continue
		}

		currentPrice, err := e.api.LastClose(ctx, pos.Pair)
		if err != nil {
			summary.Skipped++
			PairsSkipped.WithLabelValues("no_price").Inc()
			if errors.Is(err, kraken.ErrNoCandles) {
				log.Warn("no current price, pair skipped")
			} else {
				log.Warn("price fetch failed, pair skipped", utils.Err(err))
			}
			continue
		}

		var order *models.ActiveStopLoss
		if o, ok := byPair[pos.Pair]; ok {
			order = &o
		}

		decision := Decide(pos, order, currentPrice, th)
		if !decision.Place {
			summary.Skipped++
			PairsSkipped.WithLabelValues("below_threshold").Inc()
			log.Debug("benefit below threshold",
				utils.BenefitField(decision.Benefit),
				utils.String("state", decision.State.String()),
			)
			continue
		}

		if err := e.execute(ctx, pos, decision, &summary, log); err != nil {
			// Сбой снятия или выставления ордера не трогает остальные пары
			summary.Skipped++
			PairsSkipped.WithLabelValues("order_failed").Inc()
			log.Error("order mutation failed, pair skipped", utils.Err(err))
			continue
		}
	}

	summary.Result = fmt.Sprintf("pass complete: %d placed, %d moved, %d skipped of %d positions",
		summary.Placed, summary.Moved, summary.Skipped, summary.Positions)
	if summary.Notification != "" {
		summary.Result += "; " + summary.Notification
	}
	return summary, nil
}

// execute снимает старый ордер, выставляет новый и разносит событие
// по журналу, уведомлениям и подписчикам
func (e *Engine) execute(ctx context.Context, pos models.Position, d Decision, summary *PassSummary, log *utils.Logger) error {
	action := models.ActionPlaced
	if d.CancelID != "" {
		action = models.ActionMoved
		if err := e.api.CancelOrder(ctx, d.CancelID); err != nil {
			return fmt.Errorf("cancel order %s: %w", d.CancelID, err)
		}
		log.Info("stop loss order cancelled", utils.OrderIDField(d.CancelID))
	}

	conf, err := e.api.AddStopLoss(ctx, pos.Pair, d.StopPrice, d.Quantity)
	if err != nil {
		return fmt.Errorf("place stop loss for %s: %w", pos.Pair, err)
	}

	log.Info("stop loss order placed",
		utils.OrderIDField(conf.TxID),
		utils.StopPriceField(d.StopPrice),
		utils.BenefitField(d.Benefit),
	)

	switch action {
	case models.ActionPlaced:
		summary.Placed++
	case models.ActionMoved:
		summary.Moved++
	}
	OrdersPlaced.WithLabelValues(pos.Pair, action).Inc()

	event := &models.StopLossEvent{
		Pair:      pos.Pair,
		Action:    action,
		BuyPrice:  pos.Price,
		StopPrice: d.StopPrice,
		Quantity:  d.Quantity,
		Benefit:   d.Benefit,
		OrderID:   conf.TxID,
		PrevOrder: d.CancelID,
	}

	if e.journal != nil {
		if err := e.journal.Create(event); err != nil {
			log.Error("event journal write failed", utils.Err(err))
		}
	}
	if e.hub != nil {
		e.hub.BroadcastStopLossEvent(event)
	}

	if e.notifier != nil {
		payload := models.Notify{
			Pair:      pos.Pair,
			BuyPrice:  pos.Price,
			StopPrice: d.StopPrice,
			Quantity:  d.Quantity,
			Benefit:   d.Benefit,
		}
		if err := e.notifier.Send(ctx, payload); err != nil {
			NotificationFailures.Inc()
			summary.Notification = models.FallbackMessage
			var timeout *notify.NotificationTimeout
			if errors.As(err, &timeout) {
				log.Warn("notification not confirmed", utils.TaskIDField(timeout.TaskID))
			} else {
				log.Error("notification failed", utils.Err(err))
			}
		}
	}

	return nil
}
