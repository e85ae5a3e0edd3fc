// Package notify доставляет уведомления о выставленных stop-loss ордерах.
//
// Два режима: celery-задача через AMQP с ожиданием подтверждения от
// воркера и прямой HTTP вызов почтового сервиса. Таймаут доставки не
// фатален, движок продолжает проход.
package notify

import (
	"context"
	"fmt"

	"dancespiele/internal/models"
)

// Notifier - отправка уведомления о действии движка
type Notifier interface {
	Send(ctx context.Context, payload models.Notify) error
}

// NotificationTimeout - воркер не подтвердил доставку за отведённые
// попытки опроса. Задача может быть всё ещё выполнена позже.
type NotificationTimeout struct {
	TaskID string
	Err    error
}

func (e *NotificationTimeout) Error() string {
	return fmt.Sprintf("notification task %s not confirmed: %v", e.TaskID, e.Err)
}

func (e *NotificationTimeout) Unwrap() error { return e.Err }

// WithRecipient строит аргумент задачи из события и адреса получателя
func WithRecipient(p models.Notify, email string) models.NotificationEmail {
	return models.NotificationEmail{
		Pair:    p.Pair,
		Price:   p.StopPrice,
		Benefit: p.Benefit,
		Email:   email,
	}
}
