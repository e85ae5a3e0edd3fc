package store

import (
	"context"
	"sync"
	"testing"
	"time"

	"dancespiele/internal/models"
)

// memKV - KV в памяти для тестов
type memKV struct {
	mu   sync.Mutex
	data map[string]string
}

func newMemKV() *memKV {
	return &memKV{data: make(map[string]string)}
}

func (m *memKV) Get(ctx context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

func (m *memKV) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *memKV) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

func TestThresholdStore_All_Empty(t *testing.T) {
	s := NewThresholdStore(newMemKV())

	list, err := s.All(context.Background())
	if err != nil {
		t.Fatalf("All: %v", err)
	}
	if len(list) != 0 {
		t.Errorf("len = %d, want empty list", len(list))
	}
}

func TestThresholdStore_ReplaceAndForPair(t *testing.T) {
	ctx := context.Background()
	s := NewThresholdStore(newMemKV())

	err := s.Replace(ctx, []models.Threshold{
		{Pair: "OXTEUR", NewStopLoss: 30, NextStopLoss: 5},
		{Pair: "KAVAEUR", NewStopLoss: 40, NextStopLoss: 14},
	})
	if err != nil {
		t.Fatalf("Replace: %v", err)
	}

	th, err := s.ForPair(ctx, "OXTEUR")
	if err != nil {
		t.Fatalf("ForPair: %v", err)
	}
	if th.NewStopLoss != 30 || th.NextStopLoss != 5 {
		t.Errorf("ForPair(OXTEUR) = %+v", th)
	}

	if _, err := s.ForPair(ctx, "ADAEUR"); err != models.ErrThresholdNotFound {
		t.Errorf("ForPair(ADAEUR) err = %v, want ErrThresholdNotFound", err)
	}
}

func TestThresholdStore_Upsert(t *testing.T) {
	ctx := context.Background()
	s := NewThresholdStore(newMemKV())

	if err := s.Upsert(ctx, models.Threshold{Pair: "OXTEUR", NewStopLoss: 30, NextStopLoss: 5}); err != nil {
		t.Fatalf("Upsert новый: %v", err)
	}
	if err := s.Upsert(ctx, models.Threshold{Pair: "OXTEUR", NewStopLoss: 25, NextStopLoss: 4}); err != nil {
		t.Fatalf("Upsert обновление: %v", err)
	}

	list, err := s.All(ctx)
	if err != nil {
		t.Fatalf("All: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("len = %d, duplicate pair entry", len(list))
	}
	if list[0].NewStopLoss != 25 {
		t.Errorf("NewStopLoss = %v, entry not updated", list[0].NewStopLoss)
	}
}

func TestThresholdStore_ReadsDecimalStrings(t *testing.T) {
	// Компаньон пишет проценты десятичными строками
	kv := newMemKV()
	kv.data["percentages"] = `[{"pair":"KAVAEUR","new_stop_loss":"40.0","next_stop_loss":"14.0"}]`
	s := NewThresholdStore(kv)

	list, err := s.All(context.Background())
	if err != nil {
		t.Fatalf("All: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("len = %d, want 1", len(list))
	}
	if list[0].Pair != "KAVAEUR" || list[0].NewStopLoss != 40 || list[0].NextStopLoss != 14 {
		t.Errorf("threshold = %+v, want KAVAEUR 40/14", list[0])
	}
}

func TestThresholdStore_WritesDecimalStrings(t *testing.T) {
	ctx := context.Background()
	kv := newMemKV()
	s := NewThresholdStore(kv)

	if err := s.Replace(ctx, []models.Threshold{{Pair: "OXTEUR", NewStopLoss: 30, NextStopLoss: 5}}); err != nil {
		t.Fatalf("Replace: %v", err)
	}

	raw := kv.data["percentages"]
	want := `[{"pair":"OXTEUR","new_stop_loss":"30","next_stop_loss":"5"}]`
	if raw != want {
		t.Errorf("stored payload = %s, want %s", raw, want)
	}
}

func TestThresholdStore_BadJSON(t *testing.T) {
	kv := newMemKV()
	kv.data["percentages"] = "{broken"
	s := NewThresholdStore(kv)

	if _, err := s.All(context.Background()); err == nil {
		t.Error("All() = nil, want parse error")
	}
}

func TestThresholdStore_BadDecimal(t *testing.T) {
	kv := newMemKV()
	kv.data["percentages"] = `[{"pair":"KAVAEUR","new_stop_loss":"forty","next_stop_loss":"14.0"}]`
	s := NewThresholdStore(kv)

	if _, err := s.All(context.Background()); err == nil {
		t.Error("All() = nil, want parse error for non-numeric percentage")
	}
}

func TestTaskResultStore(t *testing.T) {
	ctx := context.Background()
	kv := newMemKV()
	s := NewTaskResultStore(kv)

	_, found, err := s.Get(ctx, "task-1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if found {
		t.Error("found = true for absent result")
	}

	kv.data["celery-task-meta-task-1"] = `{"status":"SUCCESS"}`

	raw, found, err := s.Get(ctx, "task-1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !found || raw == "" {
		t.Errorf("Get = (%q, %v), want stored result", raw, found)
	}
}
