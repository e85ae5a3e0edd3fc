package notify

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
	amqp "github.com/rabbitmq/amqp091-go"

	"dancespiele/internal/models"
	"dancespiele/pkg/retry"
	"dancespiele/pkg/utils"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// celeryTask - имя задачи, которую выполняет воркер уведомлений
const celeryTask = "add_stop_loss"

// Publisher публикует сообщения в очередь. Реальная реализация - AMQP
// канал, тесты подставляют свою.
type Publisher interface {
	Publish(ctx context.Context, queue string, msg amqp.Publishing) error
}

// TaskResults читает подтверждения выполнения задач воркером
type TaskResults interface {
	Get(ctx context.Context, taskID string) (string, bool, error)
}

// AMQPPublisher - издатель поверх канала RabbitMQ
type AMQPPublisher struct {
	ch *amqp.Channel
}

// NewAMQPPublisher декларирует очередь и возвращает издателя
func NewAMQPPublisher(conn *amqp.Connection, queue string) (*AMQPPublisher, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("open channel: %w", err)
	}

	// durable, воркер может подключиться позже
	if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		return nil, fmt.Errorf("declare queue %s: %w", queue, err)
	}

	return &AMQPPublisher{ch: ch}, nil
}

func (p *AMQPPublisher) Publish(ctx context.Context, queue string, msg amqp.Publishing) error {
	return p.ch.PublishWithContext(ctx, "", queue, false, false, msg)
}

// Close закрывает канал
func (p *AMQPPublisher) Close() error {
	return p.ch.Close()
}

// QueueNotifier отправляет уведомление celery-задачей и ждёт
// подтверждения воркера через хранилище результатов.
type QueueNotifier struct {
	publisher Publisher
	results   TaskResults
	queue     string
	recipient string
	poll      retry.Config
	log       *utils.Logger
}

// NewQueueNotifier создаёт notifier queue-режима
func NewQueueNotifier(publisher Publisher, results TaskResults, queue, recipient string, log *utils.Logger) *QueueNotifier {
	return &QueueNotifier{
		publisher: publisher,
		results:   results,
		queue:     queue,
		recipient: recipient,
		poll:      retry.PollConfig(),
		log:       log.WithComponent("notify"),
	}
}

// Send публикует задачу и опрашивает результат до подтверждения.
// Возвращает *NotificationTimeout, если воркер не ответил.
func (n *QueueNotifier) Send(ctx context.Context, payload models.Notify) error {
	taskID := uuid.NewString()

	msg, err := celeryMessage(taskID, n.recipient, payload)
	if err != nil {
		return fmt.Errorf("build celery message: %w", err)
	}

	if err := n.publisher.Publish(ctx, n.queue, msg); err != nil {
		return fmt.Errorf("publish notification: %w", err)
	}

	n.log.Info("notification task published",
		utils.TaskIDField(taskID),
		utils.PairField(payload.Pair),
	)

	cfg := n.poll
	cfg.OnRetry = func(attempt int, err error) {
		n.log.Debug("waiting for task result", utils.TaskIDField(taskID), utils.AttemptField(attempt))
	}

	result, err := retry.UntilPresent(ctx, func(ctx context.Context) (string, bool, error) {
		return n.results.Get(ctx, taskID)
	}, cfg)
	if err != nil {
		return &NotificationTimeout{TaskID: taskID, Err: err}
	}

	n.log.Info("notification confirmed", utils.TaskIDField(taskID), utils.String("result", result))
	return nil
}

// celeryMessage собирает сообщение в формате протокола celery v2:
// тело - [args, kwargs, embed], метаданные задачи в заголовках.
// Единственный позиционный аргумент задачи - уведомление с адресатом.
func celeryMessage(taskID, recipient string, payload models.Notify) (amqp.Publishing, error) {
	args := []interface{}{WithRecipient(payload, recipient)}

	body, err := json.Marshal([]interface{}{
		args,
		map[string]interface{}{},
		map[string]interface{}{
			"callbacks": nil,
			"errbacks":  nil,
			"chain":     nil,
			"chord":     nil,
		},
	})
	if err != nil {
		return amqp.Publishing{}, err
	}

	argsRepr, _ := json.MarshalToString(args)

	return amqp.Publishing{
		ContentType:     "application/json",
		ContentEncoding: "utf-8",
		CorrelationId:   taskID,
		DeliveryMode:    amqp.Persistent,
		Headers: amqp.Table{
			"lang":       "py",
			"task":       celeryTask,
			"id":         taskID,
			"root_id":    taskID,
			"parent_id":  nil,
			"group":      nil,
			"argsrepr":   argsRepr,
			"kwargsrepr": "{}",
		},
		Body: body,
	}, nil
}
