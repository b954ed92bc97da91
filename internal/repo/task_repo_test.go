package repo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dom "tasktracker/internal/domain"
)

func TestList_EmptyStore(t *testing.T) {
	r := NewSQLiteTaskRepo(createTestDB(t))

	list, err := r.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}

func TestInsert_AssignsIncreasingIDs(t *testing.T) {
	r := NewSQLiteTaskRepo(createTestDB(t))
	ctx := context.Background()

	var last int64
	for i := 0; i < 5; i++ {
		id, err := r.Insert(ctx, dom.TaskInput{Title: "task", Status: dom.StatusPending})
		require.NoError(t, err)
		assert.Greater(t, id, last)
		last = id
	}
}

func TestInsert_IDsNotReusedAfterDelete(t *testing.T) {
	r := NewSQLiteTaskRepo(createTestDB(t))
	ctx := context.Background()

	id1, err := r.Insert(ctx, dom.TaskInput{Title: "first"})
	require.NoError(t, err)
	deleted, err := r.Delete(ctx, id1)
	require.NoError(t, err)
	require.True(t, deleted)

	id2, err := r.Insert(ctx, dom.TaskInput{Title: "second"})
	require.NoError(t, err)
	assert.Greater(t, id2, id1)
}

func TestInsert_DefaultsStatusAndNulls(t *testing.T) {
	r := NewSQLiteTaskRepo(createTestDB(t))
	ctx := context.Background()

	id, err := r.Insert(ctx, dom.TaskInput{Title: "bare"})
	require.NoError(t, err)

	got, found, err := r.Get(ctx, id)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, dom.Task{ID: id, Title: "bare", Status: dom.StatusPending}, got)
}

func TestGet_RoundTrip(t *testing.T) {
	r := NewSQLiteTaskRepo(createTestDB(t))
	ctx := context.Background()

	in := dom.TaskInput{
		Title:       "Test task",
		Description: strPtr("Testing"),
		DueDate:     strPtr("2025-12-31"),
		Status:      dom.StatusInProgress,
	}
	id, err := r.Insert(ctx, in)
	require.NoError(t, err)

	got, found, err := r.Get(ctx, id)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, dom.Task{
		ID:          id,
		Title:       in.Title,
		Description: in.Description,
		DueDate:     in.DueDate,
		Status:      in.Status,
	}, got)
}

func TestGet_NotFound(t *testing.T) {
	r := NewSQLiteTaskRepo(createTestDB(t))

	_, found, err := r.Get(context.Background(), 42)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestList_OrderedNewestFirst(t *testing.T) {
	r := NewSQLiteTaskRepo(createTestDB(t))
	ctx := context.Background()

	var ids []int64
	for _, title := range []string{"a", "b", "c"} {
		id, err := r.Insert(ctx, dom.TaskInput{Title: title})
		require.NoError(t, err)
		ids = append(ids, id)
	}

	list, err := r.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, ids[2], list[0].ID)
	assert.Equal(t, ids[1], list[1].ID)
	assert.Equal(t, ids[0], list[2].ID)
}

func TestUpdate_OnlySuppliedFields(t *testing.T) {
	r := NewSQLiteTaskRepo(createTestDB(t))
	ctx := context.Background()

	id, err := r.Insert(ctx, dom.TaskInput{
		Title:       "old",
		Description: strPtr("desc"),
		DueDate:     strPtr("2025-03-03"),
		Status:      dom.StatusPending,
	})
	require.NoError(t, err)

	var f dom.TaskFields
	f.SetStatus(dom.StatusDone)
	updated, err := r.Update(ctx, id, f)
	require.NoError(t, err)
	assert.True(t, updated)

	got, _, err := r.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "old", got.Title)
	assert.Equal(t, strPtr("desc"), got.Description)
	assert.Equal(t, strPtr("2025-03-03"), got.DueDate)
	assert.Equal(t, dom.StatusDone, got.Status)
}

func TestUpdate_ClearsNullableField(t *testing.T) {
	r := NewSQLiteTaskRepo(createTestDB(t))
	ctx := context.Background()

	id, err := r.Insert(ctx, dom.TaskInput{Title: "t", Description: strPtr("gone soon")})
	require.NoError(t, err)

	var f dom.TaskFields
	f.SetDescription(nil)
	updated, err := r.Update(ctx, id, f)
	require.NoError(t, err)
	require.True(t, updated)

	got, _, err := r.Get(ctx, id)
	require.NoError(t, err)
	assert.Nil(t, got.Description)
}

func TestUpdate_NotFound(t *testing.T) {
	r := NewSQLiteTaskRepo(createTestDB(t))

	var f dom.TaskFields
	f.SetTitle("nobody")
	updated, err := r.Update(context.Background(), 999, f)
	require.NoError(t, err)
	assert.False(t, updated)
}

func TestUpdate_EmptyFieldSet(t *testing.T) {
	r := NewSQLiteTaskRepo(createTestDB(t))
	ctx := context.Background()

	id, err := r.Insert(ctx, dom.TaskInput{Title: "t"})
	require.NoError(t, err)

	updated, err := r.Update(ctx, id, dom.TaskFields{})
	assert.ErrorIs(t, err, ErrNoFields)
	assert.False(t, updated)
}

func TestUpdate_SameValuesStillMatch(t *testing.T) {
	r := NewSQLiteTaskRepo(createTestDB(t))
	ctx := context.Background()

	id, err := r.Insert(ctx, dom.TaskInput{Title: "same"})
	require.NoError(t, err)

	var f dom.TaskFields
	f.SetTitle("same")
	updated, err := r.Update(ctx, id, f)
	require.NoError(t, err)
	assert.True(t, updated)
}

func TestDelete(t *testing.T) {
	r := NewSQLiteTaskRepo(createTestDB(t))
	ctx := context.Background()

	id, err := r.Insert(ctx, dom.TaskInput{Title: "doomed"})
	require.NoError(t, err)

	deleted, err := r.Delete(ctx, id)
	require.NoError(t, err)
	assert.True(t, deleted)

	_, found, err := r.Get(ctx, id)
	require.NoError(t, err)
	assert.False(t, found)

	deleted, err = r.Delete(ctx, id)
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestSchema_RejectsNullTitle(t *testing.T) {
	db := createTestDB(t)

	_, err := db.db.Exec(`INSERT INTO tasks (title) VALUES (NULL)`)
	assert.Error(t, err)
}
