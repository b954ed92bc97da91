package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"tasktracker/internal/dto"
	"tasktracker/internal/repo"
	"tasktracker/internal/service"
	"tasktracker/internal/validation"

	"github.com/gin-gonic/gin"
)

var (
	notFoundBody    = dto.DetailResponse{Detail: "Not found"}
	serverErrorBody = dto.DetailResponse{Detail: "Server error"}
)

// parseID reads a positive integer path parameter. A value that is not one
// does not name a task, so the caller answers 404.
func parseID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// readRaw decodes the request body as a JSON object. On failure it writes the
// 400 response itself and returns false.
func readRaw(c *gin.Context) (validation.Raw, bool) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "could not read request body"})
		return nil, false
	}
	if len(strings.TrimSpace(string(body))) == 0 {
		return validation.Raw{}, true
	}
	var v any
	if err := json.Unmarshal(body, &v); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "JSON parse error - " + err.Error()})
		return nil, false
	}
	if _, ok := v.(map[string]any); !ok {
		c.JSON(http.StatusBadRequest, gin.H{
			"non_field_errors": []string{"Invalid data. Expected a dictionary, but got " + jsonKind(v) + "."},
		})
		return nil, false
	}
	var raw validation.Raw
	if err := json.Unmarshal(body, &raw); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "JSON parse error - " + err.Error()})
		return nil, false
	}
	return raw, true
}

func jsonKind(v any) string {
	switch v.(type) {
	case []any:
		return "list"
	case string:
		return "str"
	case float64:
		return "number"
	case bool:
		return "bool"
	case nil:
		return "null"
	}
	return "unknown"
}

// writeError maps a service outcome to the HTTP response. Storage failures
// are logged with their cause; the client only sees a generic body.
func writeError(c *gin.Context, log *slog.Logger, op string, err error) {
	var verrs validation.Errors
	var serr *repo.StorageError
	switch {
	case errors.As(err, &verrs):
		c.JSON(http.StatusBadRequest, verrs)
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, notFoundBody)
	case errors.As(err, &serr):
		log.Error(op+" failed", "op", serr.Op, "err", serr.Err, "path", c.Request.URL.Path)
		c.JSON(http.StatusInternalServerError, serverErrorBody)
	default:
		log.Error(op+" failed", "err", err, "path", c.Request.URL.Path)
		c.JSON(http.StatusInternalServerError, serverErrorBody)
	}
}
