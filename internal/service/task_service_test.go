package service

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dom "tasktracker/internal/domain"
	"tasktracker/internal/repo"
	"tasktracker/internal/validation"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestRepo(t *testing.T) *repo.SQLiteTaskRepo {
	t.Helper()
	ctx := context.Background()

	db, err := repo.Open(ctx, repo.Config{Path: filepath.Join(t.TempDir(), "svc.sqlite3")}, discardLogger())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, db.EnsureSchema(ctx))
	return repo.NewSQLiteTaskRepo(db)
}

func newTestService(t *testing.T) *TaskService {
	t.Helper()
	return NewTaskService(newTestRepo(t), nil, discardLogger())
}

func raw(t *testing.T, body string) validation.Raw {
	t.Helper()
	var r validation.Raw
	require.NoError(t, json.Unmarshal([]byte(body), &r))
	return r
}

func TestCreate_ReturnsStoredTask(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	created, err := s.Create(ctx, raw(t, `{"title":"Test task","description":"Testing","due_date":"2025-12-31","status":"pending"}`))
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.Equal(t, "Test task", created.Title)

	got, err := s.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)
}

func TestCreate_ValidationError(t *testing.T) {
	s := newTestService(t)

	_, err := s.Create(context.Background(), raw(t, `{"status":"done"}`))
	var verrs validation.Errors
	require.True(t, errors.As(err, &verrs), "got %v", err)
	assert.Contains(t, verrs, "title")

	list, err := s.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestReplace_ClearsOmittedOptionalFields(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	created, err := s.Create(ctx, raw(t, `{"title":"old","description":"desc","due_date":"2025-03-03","status":"done"}`))
	require.NoError(t, err)

	got, err := s.Replace(ctx, created.ID, raw(t, `{"title":"new"}`))
	require.NoError(t, err)
	assert.Equal(t, dom.Task{ID: created.ID, Title: "new", Status: dom.StatusPending}, got)
}

func TestReplace_NotFound(t *testing.T) {
	s := newTestService(t)

	_, err := s.Replace(context.Background(), 404, raw(t, `{"title":"x"}`))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPatch_ChangesOnlyStatus(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	created, err := s.Create(ctx, raw(t, `{"title":"updated","description":"desc2","due_date":"2025-04-04","status":"in_progress"}`))
	require.NoError(t, err)

	got, err := s.Patch(ctx, created.ID, raw(t, `{"status":"done"}`))
	require.NoError(t, err)

	want := created
	want.Status = dom.StatusDone
	assert.Equal(t, want, got)
}

func TestPatch_EmptyIsNoop(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	created, err := s.Create(ctx, raw(t, `{"title":"keep"}`))
	require.NoError(t, err)

	got, err := s.Patch(ctx, created.ID, raw(t, `{}`))
	require.NoError(t, err)
	assert.Equal(t, created, got)

	_, err = s.Patch(ctx, created.ID+100, raw(t, `{}`))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDelete_ThenGetIsNotFound(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	created, err := s.Create(ctx, raw(t, `{"title":"bye"}`))
	require.NoError(t, err)

	require.NoError(t, s.Delete(ctx, created.ID))
	_, err = s.Get(ctx, created.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, s.Delete(ctx, created.ID), ErrNotFound)
}

type failingRepo struct {
	repo.TaskRepo
}

func (failingRepo) List(context.Context) ([]dom.Task, error) {
	return nil, &repo.StorageError{Op: "list tasks", Err: errors.New("disk I/O error")}
}

func TestList_PropagatesStorageError(t *testing.T) {
	s := NewTaskService(failingRepo{}, nil, nil)

	_, err := s.List(context.Background())
	var se *repo.StorageError
	assert.True(t, errors.As(err, &se))
}
