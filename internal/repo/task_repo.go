package repo

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	dom "tasktracker/internal/domain"
)

type TaskRepo interface {
	List(ctx context.Context) ([]dom.Task, error)
	Get(ctx context.Context, id int64) (dom.Task, bool, error)
	Insert(ctx context.Context, in dom.TaskInput) (int64, error)
	Update(ctx context.Context, id int64, fields dom.TaskFields) (bool, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

type SQLiteTaskRepo struct {
	db *DB
}

func NewSQLiteTaskRepo(db *DB) *SQLiteTaskRepo {
	return &SQLiteTaskRepo{db: db}
}

const taskColumns = `id, title, description, due_date, status`

func (r *SQLiteTaskRepo) List(ctx context.Context) ([]dom.Task, error) {
	conn, err := r.db.conn(ctx, "list tasks")
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	rows, err := conn.QueryContext(ctx, `SELECT `+taskColumns+` FROM tasks ORDER BY id DESC`)
	if err != nil {
		return nil, &StorageError{Op: "list tasks", Err: err}
	}
	defer rows.Close()

	list := make([]dom.Task, 0)
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, &StorageError{Op: "list tasks", Err: err}
		}
		list = append(list, t)
	}
	if err := rows.Err(); err != nil {
		return nil, &StorageError{Op: "list tasks", Err: err}
	}
	return list, nil
}

// Get returns the task with the given id. found is false when no row matches.
func (r *SQLiteTaskRepo) Get(ctx context.Context, id int64) (dom.Task, bool, error) {
	conn, err := r.db.conn(ctx, "get task")
	if err != nil {
		return dom.Task{}, false, err
	}
	defer conn.Close()

	row := conn.QueryRowContext(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = ?`, id)
	t, err := scanTask(row)
	if errors.Is(err, sql.ErrNoRows) {
		return dom.Task{}, false, nil
	}
	if err != nil {
		return dom.Task{}, false, &StorageError{Op: "get task", Err: err}
	}
	return t, true, nil
}

func (r *SQLiteTaskRepo) Insert(ctx context.Context, in dom.TaskInput) (int64, error) {
	conn, err := r.db.conn(ctx, "insert task")
	if err != nil {
		return 0, err
	}
	defer conn.Close()

	status := in.Status
	if status == "" {
		status = dom.StatusPending
	}
	res, err := conn.ExecContext(ctx,
		`INSERT INTO tasks (title, description, due_date, status) VALUES (?, ?, ?, ?)`,
		in.Title, nullString(in.Description), nullString(in.DueDate), string(status),
	)
	if err != nil {
		return 0, &StorageError{Op: "insert task", Err: err}
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, &StorageError{Op: "insert task", Err: err}
	}
	return id, nil
}

// Update writes only the supplied fields. It reports whether a row matched.
// An empty field set returns ErrNoFields without touching the database.
func (r *SQLiteTaskRepo) Update(ctx context.Context, id int64, fields dom.TaskFields) (bool, error) {
	if fields.Empty() {
		return false, ErrNoFields
	}

	present := fields.Present()
	sets := make([]string, 0, len(present))
	args := make([]any, 0, len(present)+1)
	for _, f := range present {
		switch f {
		case dom.FieldTitle:
			v, _ := fields.Title()
			sets = append(sets, "title = ?")
			args = append(args, v)
		case dom.FieldDescription:
			v, _ := fields.Description()
			sets = append(sets, "description = ?")
			args = append(args, nullString(v))
		case dom.FieldDueDate:
			v, _ := fields.DueDate()
			sets = append(sets, "due_date = ?")
			args = append(args, nullString(v))
		case dom.FieldStatus:
			v, _ := fields.Status()
			sets = append(sets, "status = ?")
			args = append(args, string(v))
		}
	}
	args = append(args, id)

	conn, err := r.db.conn(ctx, "update task")
	if err != nil {
		return false, err
	}
	defer conn.Close()

	res, err := conn.ExecContext(ctx, `UPDATE tasks SET `+strings.Join(sets, ", ")+` WHERE id = ?`, args...)
	if err != nil {
		return false, &StorageError{Op: "update task", Err: err}
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, &StorageError{Op: "update task", Err: err}
	}
	return n > 0, nil
}

func (r *SQLiteTaskRepo) Delete(ctx context.Context, id int64) (bool, error) {
	conn, err := r.db.conn(ctx, "delete task")
	if err != nil {
		return false, err
	}
	defer conn.Close()

	res, err := conn.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return false, &StorageError{Op: "delete task", Err: err}
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, &StorageError{Op: "delete task", Err: err}
	}
	return n > 0, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(s rowScanner) (dom.Task, error) {
	var (
		t           dom.Task
		description sql.NullString
		dueDate     sql.NullString
		status      string
	)
	if err := s.Scan(&t.ID, &t.Title, &description, &dueDate, &status); err != nil {
		return dom.Task{}, err
	}
	if description.Valid {
		t.Description = &description.String
	}
	if dueDate.Valid {
		t.DueDate = &dueDate.String
	}
	t.Status = dom.Status(status)
	return t, nil
}

func nullString(p *string) sql.NullString {
	if p == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *p, Valid: true}
}
