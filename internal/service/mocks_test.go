package service

import (
	"context"
	"time"

	"dancespiele/internal/models"
)

// ============================================================
// Моки для тестов сервисов
// ============================================================

// mockThresholdStore - управляемая реализация ThresholdStoreInterface
type mockThresholdStore struct {
	list       []models.Threshold
	allErr     error
	replaceErr error

	replaced [][]models.Threshold
	upserted []models.Threshold
}

func (m *mockThresholdStore) All(ctx context.Context) ([]models.Threshold, error) {
	return m.list, m.allErr
}

func (m *mockThresholdStore) ForPair(ctx context.Context, pair string) (models.Threshold, error) {
	if m.allErr != nil {
		return models.Threshold{}, m.allErr
	}
	return models.FindThreshold(m.list, pair)
}

func (m *mockThresholdStore) Replace(ctx context.Context, list []models.Threshold) error {
	if m.replaceErr != nil {
		return m.replaceErr
	}
	m.replaced = append(m.replaced, list)
	m.list = list
	return nil
}

func (m *mockThresholdStore) Upsert(ctx context.Context, th models.Threshold) error {
	m.upserted = append(m.upserted, th)
	for i := range m.list {
		if m.list[i].Pair == th.Pair {
			m.list[i] = th
			return nil
		}
	}
	m.list = append(m.list, th)
	return nil
}

// mockEventRepo - управляемая реализация EventRepositoryInterface
type mockEventRepo struct {
	events  []*models.StopLossEvent
	err     error
	deleted int64

	lastPair  string
	lastLimit int
}

func (m *mockEventRepo) GetRecent(limit int) ([]*models.StopLossEvent, error) {
	m.lastPair = ""
	m.lastLimit = limit
	return m.events, m.err
}

func (m *mockEventRepo) GetByPair(pair string, limit int) ([]*models.StopLossEvent, error) {
	m.lastPair = pair
	m.lastLimit = limit
	return m.events, m.err
}

func (m *mockEventRepo) Count() (int, error) {
	return len(m.events), m.err
}

func (m *mockEventRepo) DeleteOlderThan(timestamp time.Time) (int64, error) {
	return m.deleted, m.err
}
