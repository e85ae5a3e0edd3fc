package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"dancespiele/internal/models"
	"dancespiele/pkg/utils"
)

// Ошибки сервиса порогов
var (
	ErrThresholdNotFound = errors.New("threshold not found")
	ErrInvalidThreshold  = errors.New("invalid threshold")
)

// ThresholdService предоставляет бизнес-логику управления порогами.
//
// Отвечает за:
// - Чтение и изменение порогов прибыли по парам
// - Валидацию пары и процентов перед записью в хранилище
type ThresholdService struct {
	thresholds ThresholdStoreInterface
}

// NewThresholdService создает новый экземпляр ThresholdService
func NewThresholdService(thresholds ThresholdStoreInterface) *ThresholdService {
	return &ThresholdService{thresholds: thresholds}
}

// SetThresholdRequest представляет запрос на установку порогов пары.
// Проценты приходят строками, как их хранит KV.
type SetThresholdRequest struct {
	Pair         string `json:"pair"`
	NewStopLoss  string `json:"new_stop_loss"`
	NextStopLoss string `json:"next_stop_loss"`
}

// validate проверяет запрос и возвращает готовую модель
func (r *SetThresholdRequest) validate() (models.Threshold, error) {
	if err := utils.ValidatePair(r.Pair); err != nil {
		return models.Threshold{}, fmt.Errorf("%w: %v", ErrInvalidThreshold, err)
	}
	if err := utils.ValidatePercentage(r.NewStopLoss); err != nil {
		return models.Threshold{}, fmt.Errorf("%w: new_stop_loss: %v", ErrInvalidThreshold, err)
	}
	if err := utils.ValidatePercentage(r.NextStopLoss); err != nil {
		return models.Threshold{}, fmt.Errorf("%w: next_stop_loss: %v", ErrInvalidThreshold, err)
	}

	newSL, _ := strconv.ParseFloat(r.NewStopLoss, 64)
	nextSL, _ := strconv.ParseFloat(r.NextStopLoss, 64)

	return models.Threshold{
		Pair:         r.Pair,
		NewStopLoss:  newSL,
		NextStopLoss: nextSL,
	}, nil
}

// GetThresholds возвращает пороги всех пар
func (s *ThresholdService) GetThresholds(ctx context.Context) ([]models.Threshold, error) {
	return s.thresholds.All(ctx)
}

// GetThreshold возвращает пороги одной пары
func (s *ThresholdService) GetThreshold(ctx context.Context, pair string) (models.Threshold, error) {
	if err := utils.ValidatePair(pair); err != nil {
		return models.Threshold{}, fmt.Errorf("%w: %v", ErrInvalidThreshold, err)
	}

	th, err := s.thresholds.ForPair(ctx, pair)
	if errors.Is(err, models.ErrThresholdNotFound) {
		return models.Threshold{}, ErrThresholdNotFound
	}
	return th, err
}

// SetThreshold добавляет или обновляет пороги пары
func (s *ThresholdService) SetThreshold(ctx context.Context, req *SetThresholdRequest) (models.Threshold, error) {
	th, err := req.validate()
	if err != nil {
		return models.Threshold{}, err
	}

	if err := s.thresholds.Upsert(ctx, th); err != nil {
		return models.Threshold{}, err
	}
	return th, nil
}

// ReplaceThresholds заменяет весь список порогов за один вызов
func (s *ThresholdService) ReplaceThresholds(ctx context.Context, reqs []SetThresholdRequest) ([]models.Threshold, error) {
	list := make([]models.Threshold, 0, len(reqs))
	seen := make(map[string]bool, len(reqs))

	for i := range reqs {
		th, err := reqs[i].validate()
		if err != nil {
			return nil, err
		}
		if seen[th.Pair] {
			return nil, fmt.Errorf("%w: duplicate pair %s", ErrInvalidThreshold, th.Pair)
		}
		seen[th.Pair] = true
		list = append(list, th)
	}

	if err := s.thresholds.Replace(ctx, list); err != nil {
		return nil, err
	}
	return list, nil
}

// RemoveThreshold убирает пару из списка порогов
func (s *ThresholdService) RemoveThreshold(ctx context.Context, pair string) error {
	if err := utils.ValidatePair(pair); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidThreshold, err)
	}

	list, err := s.thresholds.All(ctx)
	if err != nil {
		return err
	}

	filtered := make([]models.Threshold, 0, len(list))
	found := false
	for _, th := range list {
		if th.Pair == pair {
			found = true
			continue
		}
		filtered = append(filtered, th)
	}
	if !found {
		return ErrThresholdNotFound
	}

	return s.thresholds.Replace(ctx, filtered)
}
