package dto

// TaskRequest documents the accepted body. Handlers decode bodies into
// validation.Raw so omitted and null fields stay distinguishable.
type TaskRequest struct {
	Title       string  `json:"title" example:"Test task"`
	Description *string `json:"description" example:"Testing"`
	DueDate     *string `json:"due_date" example:"2025-12-31"`
	Status      string  `json:"status" enums:"pending,in_progress,done" example:"pending"`
}

type TaskResponse struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Description *string `json:"description"`
	DueDate     *string `json:"due_date"`
	Status      string  `json:"status"`
}

// DetailResponse is the body of 404 and 500 responses.
type DetailResponse struct {
	Detail string `json:"detail"`
}
