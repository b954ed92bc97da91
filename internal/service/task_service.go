package service

import (
	"context"
	"errors"
	"log/slog"
	"strconv"

	"tasktracker/internal/cache"
	dom "tasktracker/internal/domain"
	"tasktracker/internal/repo"
	"tasktracker/internal/validation"

	"golang.org/x/sync/singleflight"
)

var ErrNotFound = errors.New("not found")

type TaskService struct {
	repo  repo.TaskRepo
	cache *cache.TaskCache
	sf    singleflight.Group
	log   *slog.Logger
}

// NewTaskService creates a TaskService. If c is nil, caching is disabled.
func NewTaskService(r repo.TaskRepo, c *cache.TaskCache, log *slog.Logger) *TaskService {
	if log == nil {
		log = slog.Default()
	}
	return &TaskService{repo: r, cache: c, log: log}
}

// List returns every task, newest first. With a cache configured, callers
// within one write generation share a single database read.
func (s *TaskService) List(ctx context.Context) ([]dom.Task, error) {
	if s.cache == nil {
		return s.repo.List(ctx)
	}
	gen, err := s.cache.Generation(ctx)
	if err != nil {
		s.log.Warn("task cache read failed", "err", err)
		return s.repo.List(ctx)
	}
	v, err, _ := s.sf.Do("list:"+strconv.FormatInt(gen, 10), func() (interface{}, error) {
		// shared by every waiter, so one caller going away must not cancel it
		ctx := context.WithoutCancel(ctx)
		if list, err := s.cache.GetList(ctx, gen); err == nil && list != nil {
			return list, nil
		} else if err != nil {
			s.log.Warn("task cache read failed", "err", err)
		}
		list, err := s.repo.List(ctx)
		if err != nil {
			return nil, err
		}
		if err := s.cache.SetList(ctx, gen, list); err != nil {
			s.log.Warn("task cache write failed", "err", err)
		}
		return list, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]dom.Task), nil
}

func (s *TaskService) Get(ctx context.Context, id int64) (dom.Task, error) {
	t, found, err := s.repo.Get(ctx, id)
	if err != nil {
		return dom.Task{}, err
	}
	if !found {
		return dom.Task{}, ErrNotFound
	}
	return t, nil
}

// Create validates raw as a full payload, inserts it and returns the stored row.
func (s *TaskService) Create(ctx context.Context, raw validation.Raw) (dom.Task, error) {
	in, verrs := validation.Full(raw)
	if verrs != nil {
		return dom.Task{}, verrs
	}
	id, err := s.repo.Insert(ctx, in)
	if err != nil {
		return dom.Task{}, err
	}
	s.invalidateCache(ctx)
	return s.Get(ctx, id)
}

// Replace applies a full payload: omitted description and due date are
// cleared and an omitted status resets to pending.
func (s *TaskService) Replace(ctx context.Context, id int64, raw validation.Raw) (dom.Task, error) {
	in, verrs := validation.Full(raw)
	if verrs != nil {
		return dom.Task{}, verrs
	}
	return s.update(ctx, id, in.Fields())
}

// Patch applies only the fields present in raw. An empty payload changes
// nothing and returns the current task.
func (s *TaskService) Patch(ctx context.Context, id int64, raw validation.Raw) (dom.Task, error) {
	fields, verrs := validation.Partial(raw)
	if verrs != nil {
		return dom.Task{}, verrs
	}
	return s.update(ctx, id, fields)
}

func (s *TaskService) update(ctx context.Context, id int64, fields dom.TaskFields) (dom.Task, error) {
	updated, err := s.repo.Update(ctx, id, fields)
	if errors.Is(err, repo.ErrNoFields) {
		return s.Get(ctx, id)
	}
	if err != nil {
		return dom.Task{}, err
	}
	if !updated {
		return dom.Task{}, ErrNotFound
	}
	s.invalidateCache(ctx)
	return s.Get(ctx, id)
}

func (s *TaskService) Delete(ctx context.Context, id int64) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrNotFound
	}
	s.invalidateCache(ctx)
	return nil
}

func (s *TaskService) invalidateCache(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		s.log.Warn("task cache invalidation failed", "err", err)
	}
}
