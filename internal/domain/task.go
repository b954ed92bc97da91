package domain

// Domain entity: the persisted task.
// Independent of Gin, SQLite and Redis.
type Task struct {
	ID          int64
	Title       string
	Description *string
	DueDate     *string
	Status      Status
}

// Status is the task workflow state.
type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusDone       Status = "done"
)

// Statuses lists every valid status in display order.
var Statuses = []Status{StatusPending, StatusInProgress, StatusDone}

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusDone:
		return true
	}
	return false
}

// TaskInput is a fully validated task payload used for create and full replace.
type TaskInput struct {
	Title       string
	Description *string
	DueDate     *string
	Status      Status
}

// Fields returns the input as a field set covering every column.
func (in TaskInput) Fields() TaskFields {
	var f TaskFields
	f.SetTitle(in.Title)
	f.SetDescription(in.Description)
	f.SetDueDate(in.DueDate)
	f.SetStatus(in.Status)
	return f
}
