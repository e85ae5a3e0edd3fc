package handlers

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"dancespiele/internal/bot"
	"dancespiele/internal/models"
	"dancespiele/internal/service"
)

// ErrMockDatabase имитирует ошибку хранилища
var ErrMockDatabase = errors.New("mock database error")

// ============ Mock Threshold Service ============

// MockThresholdService мок для ThresholdServiceInterface
type MockThresholdService struct {
	thresholds map[string]models.Threshold
	getErr     error
	setErr     error
	mu         sync.RWMutex
}

// NewMockThresholdService создает новый мок сервиса порогов
func NewMockThresholdService() *MockThresholdService {
	return &MockThresholdService{
		thresholds: make(map[string]models.Threshold),
	}
}

func (m *MockThresholdService) AddThreshold(pair string, newSL, nextSL float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.thresholds[pair] = models.Threshold{Pair: pair, NewStopLoss: newSL, NextStopLoss: nextSL}
}

func (m *MockThresholdService) GetThresholds(ctx context.Context) ([]models.Threshold, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.getErr != nil {
		return nil, m.getErr
	}

	result := make([]models.Threshold, 0, len(m.thresholds))
	for _, th := range m.thresholds {
		result = append(result, th)
	}
	return result, nil
}

func (m *MockThresholdService) GetThreshold(ctx context.Context, pair string) (models.Threshold, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.getErr != nil {
		return models.Threshold{}, m.getErr
	}

	if th, ok := m.thresholds[pair]; ok {
		return th, nil
	}
	return models.Threshold{}, service.ErrThresholdNotFound
}

func (m *MockThresholdService) SetThreshold(ctx context.Context, req *service.SetThresholdRequest) (models.Threshold, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.setErr != nil {
		return models.Threshold{}, m.setErr
	}

	th, err := parseThresholdRequest(req)
	if err != nil {
		return models.Threshold{}, err
	}
	m.thresholds[th.Pair] = th
	return th, nil
}

func (m *MockThresholdService) ReplaceThresholds(ctx context.Context, reqs []service.SetThresholdRequest) ([]models.Threshold, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.setErr != nil {
		return nil, m.setErr
	}

	list := make([]models.Threshold, 0, len(reqs))
	replaced := make(map[string]models.Threshold, len(reqs))
	for i := range reqs {
		th, err := parseThresholdRequest(&reqs[i])
		if err != nil {
			return nil, err
		}
		replaced[th.Pair] = th
		list = append(list, th)
	}
	m.thresholds = replaced
	return list, nil
}

func (m *MockThresholdService) RemoveThreshold(ctx context.Context, pair string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.setErr != nil {
		return m.setErr
	}

	if _, ok := m.thresholds[pair]; !ok {
		return service.ErrThresholdNotFound
	}
	delete(m.thresholds, pair)
	return nil
}

// parseThresholdRequest повторяет валидацию сервиса в упрощенном виде
func parseThresholdRequest(req *service.SetThresholdRequest) (models.Threshold, error) {
	if req.Pair == "" || req.NewStopLoss == "" || req.NextStopLoss == "" {
		return models.Threshold{}, fmt.Errorf("%w: missing field", service.ErrInvalidThreshold)
	}

	var newSL, nextSL float64
	if _, err := fmt.Sscanf(req.NewStopLoss, "%g", &newSL); err != nil {
		return models.Threshold{}, fmt.Errorf("%w: new_stop_loss", service.ErrInvalidThreshold)
	}
	if _, err := fmt.Sscanf(req.NextStopLoss, "%g", &nextSL); err != nil {
		return models.Threshold{}, fmt.Errorf("%w: next_stop_loss", service.ErrInvalidThreshold)
	}

	return models.Threshold{Pair: req.Pair, NewStopLoss: newSL, NextStopLoss: nextSL}, nil
}

// ============ Mock Event Service ============

// MockEventService мок для EventServiceInterface
type MockEventService struct {
	events   []*models.StopLossEvent
	err      error
	deleted  int64
	lastPair string
	mu       sync.RWMutex
}

// NewMockEventService создает новый мок сервиса журнала
func NewMockEventService() *MockEventService {
	return &MockEventService{}
}

func (m *MockEventService) AddEvent(pair, action string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, &models.StopLossEvent{
		ID:        len(m.events) + 1,
		Pair:      pair,
		Action:    action,
		CreatedAt: time.Now(),
	})
}

func (m *MockEventService) GetEvents(pair string, limit int) ([]*models.StopLossEvent, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.err != nil {
		return nil, m.err
	}
	if limit < 0 || limit > 500 {
		return nil, service.ErrInvalidLimit
	}
	if limit == 0 {
		limit = 50
	}
	m.lastPair = pair

	result := make([]*models.StopLossEvent, 0, len(m.events))
	for _, ev := range m.events {
		if pair != "" && ev.Pair != pair {
			continue
		}
		result = append(result, ev)
		if len(result) == limit {
			break
		}
	}
	return result, nil
}

func (m *MockEventService) GetEventCount() (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.err != nil {
		return 0, m.err
	}
	return len(m.events), nil
}

func (m *MockEventService) Cleanup(olderThan time.Duration) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.err != nil {
		return 0, m.err
	}
	return m.deleted, nil
}

// ============ Mock Pass Reporter ============

// MockPassReporter мок для PassReporter
type MockPassReporter struct {
	summary *bot.PassSummary
}

func (m *MockPassReporter) LastPass() *bot.PassSummary {
	return m.summary
}
