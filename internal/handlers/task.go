package handlers

import (
	"log/slog"
	"net/http"

	dom "tasktracker/internal/domain"
	"tasktracker/internal/dto"
	"tasktracker/internal/service"

	"github.com/gin-gonic/gin"
)

type TaskHandler struct {
	svc *service.TaskService
	log *slog.Logger
}

func NewTaskHandler(svc *service.TaskService, log *slog.Logger) *TaskHandler {
	return &TaskHandler{svc: svc, log: log}
}

// List godoc
// @Summary      List all tasks, newest first
// @Tags         tasks
// @Produce      json
// @Success      200  {array}   dto.TaskResponse
// @Failure      500  {object}  dto.DetailResponse
// @Router       /tasks/ [get]
func (h *TaskHandler) List(c *gin.Context) {
	list, err := h.svc.List(c.Request.Context())
	if err != nil {
		writeError(c, h.log, "list tasks", err)
		return
	}
	c.JSON(http.StatusOK, tasksToResponses(list))
}

// Create godoc
// @Summary      Create a task
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Param        body  body      dto.TaskRequest  true  "Task body"
// @Success      201   {object}  dto.TaskResponse
// @Failure      400   {object}  map[string][]string
// @Failure      500   {object}  dto.DetailResponse
// @Router       /tasks/ [post]
func (h *TaskHandler) Create(c *gin.Context) {
	raw, ok := readRaw(c)
	if !ok {
		return
	}
	t, err := h.svc.Create(c.Request.Context(), raw)
	if err != nil {
		writeError(c, h.log, "create task", err)
		return
	}
	c.JSON(http.StatusCreated, taskToResponse(t))
}

// Get godoc
// @Summary      Get a task by ID
// @Tags         tasks
// @Produce      json
// @Param        id   path      int  true  "Task ID"
// @Success      200  {object}  dto.TaskResponse
// @Failure      404  {object}  dto.DetailResponse
// @Failure      500  {object}  dto.DetailResponse
// @Router       /tasks/{id}/ [get]
func (h *TaskHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		c.JSON(http.StatusNotFound, notFoundBody)
		return
	}
	t, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		writeError(c, h.log, "get task", err)
		return
	}
	c.JSON(http.StatusOK, taskToResponse(t))
}

// Replace godoc
// @Summary      Replace a task
// @Description  Omitted description and due_date are cleared; omitted status resets to pending.
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Param        id    path      int              true  "Task ID"
// @Param        body  body      dto.TaskRequest  true  "Full task body"
// @Success      200   {object}  dto.TaskResponse
// @Failure      400   {object}  map[string][]string
// @Failure      404   {object}  dto.DetailResponse
// @Failure      500   {object}  dto.DetailResponse
// @Router       /tasks/{id}/ [put]
func (h *TaskHandler) Replace(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		c.JSON(http.StatusNotFound, notFoundBody)
		return
	}
	raw, ok := readRaw(c)
	if !ok {
		return
	}
	t, err := h.svc.Replace(c.Request.Context(), id, raw)
	if err != nil {
		writeError(c, h.log, "replace task", err)
		return
	}
	c.JSON(http.StatusOK, taskToResponse(t))
}

// Patch godoc
// @Summary      Partially update a task
// @Description  Only supplied fields change. null clears description or due_date.
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Param        id    path      int              true  "Task ID"
// @Param        body  body      dto.TaskRequest  true  "Partial task body"
// @Success      200   {object}  dto.TaskResponse
// @Failure      400   {object}  map[string][]string
// @Failure      404   {object}  dto.DetailResponse
// @Failure      500   {object}  dto.DetailResponse
// @Router       /tasks/{id}/ [patch]
func (h *TaskHandler) Patch(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		c.JSON(http.StatusNotFound, notFoundBody)
		return
	}
	raw, ok := readRaw(c)
	if !ok {
		return
	}
	t, err := h.svc.Patch(c.Request.Context(), id, raw)
	if err != nil {
		writeError(c, h.log, "patch task", err)
		return
	}
	c.JSON(http.StatusOK, taskToResponse(t))
}

// Delete godoc
// @Summary      Delete a task
// @Tags         tasks
// @Param        id   path  int  true  "Task ID"
// @Success      204
// @Failure      404  {object}  dto.DetailResponse
// @Failure      500  {object}  dto.DetailResponse
// @Router       /tasks/{id}/ [delete]
func (h *TaskHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		c.JSON(http.StatusNotFound, notFoundBody)
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		writeError(c, h.log, "delete task", err)
		return
	}
	c.Status(http.StatusNoContent)
}

func taskToResponse(t dom.Task) dto.TaskResponse {
	return dto.TaskResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		DueDate:     t.DueDate,
		Status:      string(t.Status),
	}
}

func tasksToResponses(list []dom.Task) []dto.TaskResponse {
	out := make([]dto.TaskResponse, len(list))
	for i := range list {
		out[i] = taskToResponse(list[i])
	}
	return out
}
