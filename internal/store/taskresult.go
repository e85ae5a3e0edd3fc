package store

import (
	"context"
	"fmt"
)

// taskResultPrefix - префикс ключей, под которыми воркер celery
// складывает результаты задач
const taskResultPrefix = "celery-task-meta-"

// TaskResultStore читает подтверждения доставки уведомлений.
// Воркер пишет результат под ключ celery-task-meta-<id>, движок
// опрашивает его до появления.
type TaskResultStore struct {
	kv KV
}

// NewTaskResultStore создаёт стор поверх KV
func NewTaskResultStore(kv KV) *TaskResultStore {
	return &TaskResultStore{kv: kv}
}

// Get возвращает сырой результат задачи и признак его наличия.
// Отсутствие результата - штатная ситуация во время опроса.
func (s *TaskResultStore) Get(ctx context.Context, taskID string) (string, bool, error) {
	raw, err := s.kv.Get(ctx, taskResultPrefix+taskID)
	if err == ErrNotFound {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("task result %s: %w", taskID, err)
	}
	return raw, true, nil
}
