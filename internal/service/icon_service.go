package service

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"sync"
	"time"

	"golang.org/x/sync/semaphore"

	"github.com/alexanderramin/grindfit/internal/domain"
	"github.com/alexanderramin/grindfit/internal/intelligence"
	"github.com/alexanderramin/grindfit/internal/repository"
)

type iconService struct {
	repo repository.IconRepo
	gen  intelligence.IconGenerator
	opts options

	// pass admits one generation pass at a time.
	pass *semaphore.Weighted

	mu     sync.Mutex
	loaded bool
	icons  map[domain.TaskType]string
}

func NewIconService(repo repository.IconRepo, gen intelligence.IconGenerator, opts ...Option) IconService {
	return &iconService{
		repo: repo,
		gen:  gen,
		opts: buildOptions(opts),
		pass: semaphore.NewWeighted(1),
	}
}

// load reads the cache once. An unreadable cache starts empty. Caller holds mu.
func (s *iconService) load(ctx context.Context) error {
	if s.loaded {
		return nil
	}
	icons, err := s.repo.Get(ctx)
	switch {
	case err == nil:
	case errors.Is(err, repository.ErrCorrupt):
		s.opts.logger.WarnContext(ctx, "discarding unreadable icon cache", "error", err)
		icons = map[domain.TaskType]string{}
	default:
		return fmt.Errorf("loading icons: %w", err)
	}
	s.icons = icons
	s.loaded = true
	return nil
}

func (s *iconService) Icons(ctx context.Context) (map[domain.TaskType]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.load(ctx); err != nil {
		return nil, err
	}
	return maps.Clone(s.icons), nil
}

func (s *iconService) GeneratePass(ctx context.Context, force bool) (res IconPassResult, err error) {
	if !s.pass.TryAcquire(1) {
		return IconPassResult{Skipped: true}, nil
	}
	defer s.pass.Release(1)

	start := time.Now()
	defer func() {
		observe(ctx, s.opts.observer, "icons.generate_pass", start, err, map[string]any{
			"generated": len(res.Generated),
			"failed":    len(res.Failed),
			"force":     force,
		})
	}()

	current, err := s.Icons(ctx)
	if err != nil {
		return IconPassResult{}, err
	}

	for _, t := range domain.AllTaskTypes {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		if !force && current[t] != "" {
			continue
		}

		uri, genErr := s.gen.GenerateIcon(ctx, t)
		if genErr != nil {
			s.opts.logger.WarnContext(ctx, "icon generation failed", "category", t, "error", genErr)
			res.Failed = append(res.Failed, t)
			continue
		}
		if uri == "" {
			s.opts.logger.DebugContext(ctx, "model returned no icon", "category", t)
			res.Empty = append(res.Empty, t)
			continue
		}

		if err := s.store(ctx, t, uri); err != nil {
			s.opts.logger.WarnContext(ctx, "saving icon failed", "category", t, "error", err)
			res.Failed = append(res.Failed, t)
			continue
		}
		res.Generated = append(res.Generated, t)
	}
	return res, nil
}

// store merges one icon into a fresh copy of the cache and persists it.
func (s *iconService) store(ctx context.Context, t domain.TaskType, uri string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := maps.Clone(s.icons)
	if next == nil {
		next = map[domain.TaskType]string{}
	}
	next[t] = uri
	if err := s.repo.Save(ctx, next); err != nil {
		return err
	}
	s.icons = next
	return nil
}
