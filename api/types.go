// Package api provides the task board REST API client.
package api

import "time"

// Column is a board column.
type Column struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// User is a directory entry.
type User struct {
	ID          int64  `json:"id"`
	DisplayName string `json:"displayName"`
	Email       string `json:"email,omitempty"`
}

// Task is a board task.
type Task struct {
	ID        int64    `json:"id"`
	Title     string   `json:"title"`
	ColumnID  int64    `json:"columnId"`
	OwnerID   *int64   `json:"ownerId,omitempty"`
	DueDate   string   `json:"dueDate,omitempty"`
	Tags      []string `json:"tags,omitempty"`
	CreatedBy int64    `json:"createdBy"`
}

// CreateTaskRequest is the body of POST /api/tasks.
type CreateTaskRequest struct {
	Title     string  `json:"title"`
	ColumnID  int64   `json:"columnId"`
	OwnerID   *int64  `json:"ownerId,omitempty"`
	DueDate   *string `json:"dueDate,omitempty"`
	CreatedBy int64   `json:"createdBy"`
}

// SetDueDateRequest is the body of PUT /api/tasks/{id}/due.
type SetDueDateRequest struct {
	DueDate string `json:"dueDate"`
	ActorID int64  `json:"actorId"`
}

// SetOwnerRequest is the body of PUT /api/tasks/{id}/owner.
type SetOwnerRequest struct {
	OwnerID int64 `json:"ownerId"`
	ActorID int64 `json:"actorId"`
}

// AddTagRequest is the body of POST /api/tasks/{id}/tags.
type AddTagRequest struct {
	Tag string `json:"tag"`
}

// LinkTaskRequest is the body of POST /api/pages/{id}/tasks.
type LinkTaskRequest struct {
	TaskID  int64 `json:"taskId"`
	ActorID int64 `json:"actorId"`
}

// ReplaceMentionsRequest is the body of PUT /api/mentions/{entity}/{id}.
type ReplaceMentionsRequest struct {
	UserIDs []int64 `json:"userIds"`
	ActorID int64   `json:"actorId"`
}

// dateLayout is the wire format of due dates.
const dateLayout = time.DateOnly

// ErrorResponse represents an API error.
type ErrorResponse struct {
	StatusCode int      `json:"statusCode"`
	Message    string   `json:"message"`
	Errors     []string `json:"errors,omitempty"`
}

func (e *ErrorResponse) Error() string {
	if len(e.Errors) > 0 {
		return e.Errors[0]
	}
	return e.Message
}
