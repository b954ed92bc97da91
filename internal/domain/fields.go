package domain

// Field names a mutable task column. The set is closed: only the constants
// below exist, and the storage layer maps each one to a column with a switch.
type Field string

const (
	FieldTitle       Field = "title"
	FieldDescription Field = "description"
	FieldDueDate     Field = "due_date"
	FieldStatus      Field = "status"
)

// AllFields lists the mutable fields in column order.
var AllFields = []Field{FieldTitle, FieldDescription, FieldDueDate, FieldStatus}

// TaskFields is a partial set of task fields. Unset fields are left untouched
// by an update; a set nullable field holding nil clears the column.
type TaskFields struct {
	title       *string
	description *string
	dueDate     *string
	status      *Status

	set map[Field]bool
}

func (f *TaskFields) mark(name Field) {
	if f.set == nil {
		f.set = make(map[Field]bool, len(AllFields))
	}
	f.set[name] = true
}

func (f *TaskFields) SetTitle(v string) {
	f.title = &v
	f.mark(FieldTitle)
}

func (f *TaskFields) SetDescription(v *string) {
	f.description = v
	f.mark(FieldDescription)
}

func (f *TaskFields) SetDueDate(v *string) {
	f.dueDate = v
	f.mark(FieldDueDate)
}

func (f *TaskFields) SetStatus(v Status) {
	f.status = &v
	f.mark(FieldStatus)
}

// Has reports whether the field was supplied.
func (f TaskFields) Has(name Field) bool { return f.set[name] }

// Empty reports whether no field was supplied.
func (f TaskFields) Empty() bool { return len(f.set) == 0 }

// Present returns the supplied fields in column order.
func (f TaskFields) Present() []Field {
	out := make([]Field, 0, len(f.set))
	for _, name := range AllFields {
		if f.set[name] {
			out = append(out, name)
		}
	}
	return out
}

// Title returns the supplied title and whether it was set.
func (f TaskFields) Title() (string, bool) {
	if f.title == nil {
		return "", false
	}
	return *f.title, true
}

// Description returns the supplied description (nil = clear) and whether it was set.
func (f TaskFields) Description() (*string, bool) {
	return f.description, f.Has(FieldDescription)
}

// DueDate returns the supplied due date (nil = clear) and whether it was set.
func (f TaskFields) DueDate() (*string, bool) {
	return f.dueDate, f.Has(FieldDueDate)
}

// Status returns the supplied status and whether it was set.
func (f TaskFields) Status() (Status, bool) {
	if f.status == nil {
		return "", false
	}
	return *f.status, true
}
