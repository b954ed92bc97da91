// Package web renders the HTML pages. Rendering is a pure function of the
// page data; it never touches storage.
package web

import (
	"embed"
	"html/template"
	"io"
	"strconv"

	dom "tasktracker/internal/domain"
	"tasktracker/internal/validation"
)

//go:embed templates/*.html
var templatesFS embed.FS

var templates = template.Must(template.New("").Funcs(template.FuncMap{
	"deref": deref,
}).ParseFS(templatesFS, "templates/*.html"))

// ListPage is the data for the task list.
type ListPage struct {
	Tasks []dom.Task
	Error string
}

// FormValues holds the text shown in the add/edit form inputs.
type FormValues struct {
	Title       string
	Description string
	DueDate     string
	Status      string
}

// FormPage is the data for the add and edit forms.
type FormPage struct {
	Heading  string
	Action   string
	Values   FormValues
	Errors   validation.Errors
	Error    string
	NotFound bool
	Statuses []dom.Status
}

// NewAddPage returns an empty add form.
func NewAddPage() FormPage {
	return FormPage{
		Heading:  "Add task",
		Action:   "/add/",
		Values:   FormValues{Status: string(dom.StatusPending)},
		Statuses: dom.Statuses,
	}
}

// NewEditPage returns the edit form prefilled from t.
func NewEditPage(t dom.Task) FormPage {
	return FormPage{
		Heading: "Edit task",
		Action:  "/edit/" + strconv.FormatInt(t.ID, 10) + "/",
		Values: FormValues{
			Title:       t.Title,
			Description: deref(t.Description),
			DueDate:     deref(t.DueDate),
			Status:      string(t.Status),
		},
		Statuses: dom.Statuses,
	}
}

func RenderList(w io.Writer, p ListPage) error {
	return templates.ExecuteTemplate(w, "list", p)
}

func RenderForm(w io.Writer, p FormPage) error {
	if p.Statuses == nil {
		p.Statuses = dom.Statuses
	}
	return templates.ExecuteTemplate(w, "form", p)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
