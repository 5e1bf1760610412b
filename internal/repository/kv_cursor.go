package repository

import (
	"context"
	"fmt"
	"strconv"
)

// KVCursorRepo stores the active-day index as a decimal string.
type KVCursorRepo struct {
	kv KVStore
}

func NewKVCursorRepo(kv KVStore) *KVCursorRepo {
	return &KVCursorRepo{kv: kv}
}

func (r *KVCursorRepo) Get(ctx context.Context) (int, error) {
	raw, err := r.kv.Get(ctx, ActiveDayKey)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("loading active day: %w: %v", ErrCorrupt, err)
	}
	return n, nil
}

func (r *KVCursorRepo) Set(ctx context.Context, dayIndex int) error {
	return r.kv.Put(ctx, ActiveDayKey, strconv.Itoa(dayIndex))
}

func (r *KVCursorRepo) Delete(ctx context.Context) error {
	return r.kv.Delete(ctx, ActiveDayKey)
}
