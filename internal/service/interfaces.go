package service

import (
	"context"
	"time"

	"dancespiele/internal/models"
	"dancespiele/internal/repository"
	"dancespiele/internal/store"
)

// ThresholdStoreInterface определяет интерфейс хранилища порогов
type ThresholdStoreInterface interface {
	All(ctx context.Context) ([]models.Threshold, error)
	ForPair(ctx context.Context, pair string) (models.Threshold, error)
	Replace(ctx context.Context, list []models.Threshold) error
	Upsert(ctx context.Context, th models.Threshold) error
}

// EventRepositoryInterface определяет интерфейс репозитория событий
type EventRepositoryInterface interface {
	GetRecent(limit int) ([]*models.StopLossEvent, error)
	GetByPair(pair string, limit int) ([]*models.StopLossEvent, error)
	Count() (int, error)
	DeleteOlderThan(timestamp time.Time) (int64, error)
}

// Проверяем, что реальные реализации подходят под интерфейсы
var _ ThresholdStoreInterface = (*store.ThresholdStore)(nil)
var _ EventRepositoryInterface = (*repository.EventRepository)(nil)

// ============ Интерфейсы сервисов для Dependency Injection ============

// ThresholdServiceInterface определяет интерфейс сервиса порогов
type ThresholdServiceInterface interface {
	GetThresholds(ctx context.Context) ([]models.Threshold, error)
	GetThreshold(ctx context.Context, pair string) (models.Threshold, error)
	SetThreshold(ctx context.Context, req *SetThresholdRequest) (models.Threshold, error)
	ReplaceThresholds(ctx context.Context, reqs []SetThresholdRequest) ([]models.Threshold, error)
	RemoveThreshold(ctx context.Context, pair string) error
}

// EventServiceInterface определяет интерфейс сервиса журнала событий
type EventServiceInterface interface {
	GetEvents(pair string, limit int) ([]*models.StopLossEvent, error)
	GetEventCount() (int, error)
	Cleanup(olderThan time.Duration) (int64, error)
}

var _ ThresholdServiceInterface = (*ThresholdService)(nil)
var _ EventServiceInterface = (*EventService)(nil)
