package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/alexanderramin/grindfit/internal/domain"
)

// KVIconRepo stores the icon cache as a JSON object keyed by task type.
type KVIconRepo struct {
	kv KVStore
}

func NewKVIconRepo(kv KVStore) *KVIconRepo {
	return &KVIconRepo{kv: kv}
}

// Get returns an empty map when nothing is cached yet.
func (r *KVIconRepo) Get(ctx context.Context) (map[domain.TaskType]string, error) {
	raw, err := r.kv.Get(ctx, IconsKey)
	if errors.Is(err, ErrNotFound) {
		return map[domain.TaskType]string{}, nil
	}
	if err != nil {
		return nil, err
	}
	icons := map[domain.TaskType]string{}
	if err := json.Unmarshal([]byte(raw), &icons); err != nil {
		return nil, fmt.Errorf("loading icons: %w: %v", ErrCorrupt, err)
	}
	return icons, nil
}

func (r *KVIconRepo) Save(ctx context.Context, icons map[domain.TaskType]string) error {
	data, err := json.Marshal(icons)
	if err != nil {
		return fmt.Errorf("encoding icons: %w", err)
	}
	return r.kv.Put(ctx, IconsKey, string(data))
}
