package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/grindfit/internal/domain"
)

// KVProgramRepo stores the program as one JSON blob in the program slot.
type KVProgramRepo struct {
	kv  KVStore
	now func() time.Time
}

func NewKVProgramRepo(kv KVStore) *KVProgramRepo {
	return &KVProgramRepo{kv: kv, now: time.Now}
}

func (r *KVProgramRepo) Get(ctx context.Context) (*domain.Program, error) {
	raw, err := r.kv.Get(ctx, ProgramKey)
	if err != nil {
		return nil, err
	}
	p, err := DecodeProgram([]byte(raw), r.now())
	if err != nil {
		return nil, fmt.Errorf("loading program: %w", err)
	}
	return &p, nil
}

func (r *KVProgramRepo) Save(ctx context.Context, p domain.Program) error {
	data, err := EncodeProgram(p)
	if err != nil {
		return err
	}
	return r.kv.Put(ctx, ProgramKey, string(data))
}

func (r *KVProgramRepo) Delete(ctx context.Context) error {
	return r.kv.Delete(ctx, ProgramKey)
}
