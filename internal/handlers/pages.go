package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"tasktracker/internal/service"
	"tasktracker/internal/validation"
	"tasktracker/internal/web"

	"github.com/gin-gonic/gin"
)

// PageHandler serves the HTML screens on top of the same service as the API.
type PageHandler struct {
	svc *service.TaskService
	log *slog.Logger
}

func NewPageHandler(svc *service.TaskService, log *slog.Logger) *PageHandler {
	return &PageHandler{svc: svc, log: log}
}

func (h *PageHandler) List(c *gin.Context) {
	page := web.ListPage{}
	list, err := h.svc.List(c.Request.Context())
	if err != nil {
		h.log.Error("list page failed", "err", err)
		page.Error = "Failed to load tasks"
	} else {
		page.Tasks = list
	}
	h.render(c, http.StatusOK, func(w http.ResponseWriter) error { return web.RenderList(w, page) })
}

func (h *PageHandler) Add(c *gin.Context) {
	page := web.NewAddPage()
	if c.Request.Method != http.MethodPost {
		h.renderForm(c, http.StatusOK, page)
		return
	}

	if err := c.Request.ParseForm(); err != nil {
		page.Error = "Invalid form submission"
		h.renderForm(c, http.StatusBadRequest, page)
		return
	}
	page.Values = formValues(c)
	_, err := h.svc.Create(c.Request.Context(), validation.FromForm(c.Request.PostForm))
	if err != nil {
		h.formError(c, page, err, "Failed to add")
		return
	}
	c.Redirect(http.StatusFound, "/")
}

func (h *PageHandler) Edit(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		h.renderForm(c, http.StatusNotFound, notFoundPage())
		return
	}
	t, err := h.svc.Get(c.Request.Context(), id)
	if errors.Is(err, service.ErrNotFound) {
		h.renderForm(c, http.StatusNotFound, notFoundPage())
		return
	}
	if err != nil {
		h.log.Error("edit page load failed", "id", id, "err", err)
		page := notFoundPage()
		page.Error = "Failed to load task"
		h.renderForm(c, http.StatusInternalServerError, page)
		return
	}

	page := web.NewEditPage(t)
	if c.Request.Method != http.MethodPost {
		h.renderForm(c, http.StatusOK, page)
		return
	}

	if err := c.Request.ParseForm(); err != nil {
		page.Error = "Invalid form submission"
		h.renderForm(c, http.StatusBadRequest, page)
		return
	}
	page.Values = formValues(c)
	_, err = h.svc.Replace(c.Request.Context(), id, validation.FromForm(c.Request.PostForm))
	if err != nil {
		h.formError(c, page, err, "Update failed")
		return
	}
	c.Redirect(http.StatusFound, "/")
}

func (h *PageHandler) formError(c *gin.Context, page web.FormPage, err error, msg string) {
	var verrs validation.Errors
	switch {
	case errors.As(err, &verrs):
		page.Errors = verrs
		h.renderForm(c, http.StatusBadRequest, page)
	case errors.Is(err, service.ErrNotFound):
		h.renderForm(c, http.StatusNotFound, notFoundPage())
	default:
		h.log.Error("form submission failed", "path", c.Request.URL.Path, "err", err)
		page.Error = msg
		h.renderForm(c, http.StatusInternalServerError, page)
	}
}

func (h *PageHandler) renderForm(c *gin.Context, status int, page web.FormPage) {
	h.render(c, status, func(w http.ResponseWriter) error { return web.RenderForm(w, page) })
}

func (h *PageHandler) render(c *gin.Context, status int, fn func(http.ResponseWriter) error) {
	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(status)
	if err := fn(c.Writer); err != nil {
		h.log.Error("render failed", "path", c.Request.URL.Path, "err", err)
	}
}

func notFoundPage() web.FormPage {
	return web.FormPage{Heading: "Edit task", Error: "Not found", NotFound: true}
}

func formValues(c *gin.Context) web.FormValues {
	return web.FormValues{
		Title:       c.PostForm("title"),
		Description: c.PostForm("description"),
		DueDate:     c.PostForm("due_date"),
		Status:      c.PostForm("status"),
	}
}
