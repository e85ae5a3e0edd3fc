package store

import (
	"context"
	"fmt"

	jsoniter "github.com/json-iterator/go"

	"dancespiele/internal/models"
	"dancespiele/pkg/utils"
)

// thresholdsKey - ключ со списком порогов всех пар
const thresholdsKey = "percentages"

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// thresholdRecord - формат записи под ключом "percentages".
// Проценты хранятся десятичными строками, как их пишет компаньон.
type thresholdRecord struct {
	Pair         string `json:"pair"`
	NewStopLoss  string `json:"new_stop_loss"`
	NextStopLoss string `json:"next_stop_loss"`
}

func (r thresholdRecord) toThreshold() (models.Threshold, error) {
	newSL, err := utils.ParseDecimal(r.NewStopLoss)
	if err != nil {
		return models.Threshold{}, fmt.Errorf("pair %s new_stop_loss %q: %w", r.Pair, r.NewStopLoss, err)
	}
	nextSL, err := utils.ParseDecimal(r.NextStopLoss)
	if err != nil {
		return models.Threshold{}, fmt.Errorf("pair %s next_stop_loss %q: %w", r.Pair, r.NextStopLoss, err)
	}
	return models.Threshold{Pair: r.Pair, NewStopLoss: newSL, NextStopLoss: nextSL}, nil
}

func toRecord(th models.Threshold) thresholdRecord {
	return thresholdRecord{
		Pair:         th.Pair,
		NewStopLoss:  utils.FormatPrice(th.NewStopLoss),
		NextStopLoss: utils.FormatPrice(th.NextStopLoss),
	}
}

// ThresholdStore читает и пишет пороги прибыли по парам.
// Хранит весь список одним JSON-массивом под ключом "percentages".
type ThresholdStore struct {
	kv KV
}

// NewThresholdStore создаёт стор поверх KV
func NewThresholdStore(kv KV) *ThresholdStore {
	return &ThresholdStore{kv: kv}
}

// All возвращает пороги всех пар. Отсутствие ключа - не ошибка,
// просто ни одна пара ещё не настроена.
func (s *ThresholdStore) All(ctx context.Context) ([]models.Threshold, error) {
	raw, err := s.kv.Get(ctx, thresholdsKey)
	if err == ErrNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load thresholds: %w", err)
	}

	var records []thresholdRecord
	if err := json.UnmarshalFromString(raw, &records); err != nil {
		return nil, fmt.Errorf("parse thresholds: %w", err)
	}

	list := make([]models.Threshold, 0, len(records))
	for _, r := range records {
		th, err := r.toThreshold()
		if err != nil {
			return nil, fmt.Errorf("parse thresholds: %w", err)
		}
		list = append(list, th)
	}
	return list, nil
}

// ForPair возвращает пороги одной пары.
// Возвращает models.ErrThresholdNotFound, если пара не настроена.
func (s *ThresholdStore) ForPair(ctx context.Context, pair string) (models.Threshold, error) {
	list, err := s.All(ctx)
	if err != nil {
		return models.Threshold{}, err
	}
	return models.FindThreshold(list, pair)
}

// Replace перезаписывает весь список порогов
func (s *ThresholdStore) Replace(ctx context.Context, list []models.Threshold) error {
	records := make([]thresholdRecord, 0, len(list))
	for _, th := range list {
		records = append(records, toRecord(th))
	}

	raw, err := json.MarshalToString(records)
	if err != nil {
		return fmt.Errorf("encode thresholds: %w", err)
	}
	return s.kv.Set(ctx, thresholdsKey, raw, 0)
}

// Upsert добавляет или обновляет пороги одной пары
func (s *ThresholdStore) Upsert(ctx context.Context, th models.Threshold) error {
	list, err := s.All(ctx)
	if err != nil {
		return err
	}

	replaced := false
	for i := range list {
		if list[i].Pair == th.Pair {
			list[i] = th
			replaced = true
			break
		}
	}
	if !replaced {
		list = append(list, th)
	}

	return s.Replace(ctx, list)
}
