package smarttext

import (
	"context"
	"time"
)

// Column is a board column tasks are filed into.
type Column struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// User is a directory entry.
type User struct {
	ID          int64  `json:"id"`
	DisplayName string `json:"display_name"`
	Email       string `json:"email,omitempty"`
}

// NewTask holds the fields of a task created by /task.
type NewTask struct {
	Title     string
	ColumnID  int64
	OwnerID   *int64
	DueDate   *time.Time
	CreatedBy int64
}

// TaskStore creates and mutates tasks.
type TaskStore interface {
	DefaultColumn(ctx context.Context) (Column, error)
	CreateTask(ctx context.Context, task NewTask) (int64, error)
	SetTaskDueDate(ctx context.Context, taskID int64, due time.Time, actorID int64) error
	SetTaskOwner(ctx context.Context, taskID, ownerID, actorID int64) error
	// AddTaskTag is a no-op when the task already carries the tag.
	AddTaskTag(ctx context.Context, taskID int64, tag string) error
}

// PageTaskLinker links tasks to the page they were created from.
type PageTaskLinker interface {
	// LinkPageTask reports false when the link already existed.
	LinkPageTask(ctx context.Context, pageID, taskID, actorID int64) (bool, error)
}

// UserDirectory resolves user ids.
type UserDirectory interface {
	LookupUser(ctx context.Context, id int64) (User, bool, error)
}

// MentionStore persists the mention set of an entity.
type MentionStore interface {
	// ReplaceMentions makes userIDs the complete mention set of the entity.
	ReplaceMentions(ctx context.Context, entity Context, entityID int64, userIDs []int64, actorID int64) error
}

// Collaborator is everything the executor and syncer need from storage.
type Collaborator interface {
	TaskStore
	PageTaskLinker
	UserDirectory
	MentionStore
}
