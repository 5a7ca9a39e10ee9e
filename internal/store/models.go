package store

import (
	"time"

	"github.com/uptrace/bun"
)

// User is a directory entry that can own tasks and be mentioned.
type User struct {
	bun.BaseModel `bun:"table:users,alias:u"`

	ID          int64     `bun:"id,pk,autoincrement" json:"id"`
	DisplayName string    `bun:"display_name,notnull" json:"display_name"`
	Email       string    `bun:"email" json:"email,omitempty"`
	CreatedAt   time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp" json:"created_at"`
}

// Column is a board column.
type Column struct {
	bun.BaseModel `bun:"table:columns,alias:c"`

	ID        int64  `bun:"id,pk,autoincrement" json:"id"`
	Name      string `bun:"name,notnull" json:"name"`
	Position  int    `bun:"position,notnull,default:0" json:"position"`
	IsDefault bool   `bun:"is_default,notnull,default:false" json:"is_default"`
}

// Task is a work item on the board.
type Task struct {
	bun.BaseModel `bun:"table:tasks,alias:t"`

	ID        int64      `bun:"id,pk,autoincrement" json:"id"`
	Title     string     `bun:"title,notnull" json:"title"`
	ColumnID  int64      `bun:"column_id,notnull" json:"column_id"`
	OwnerID   *int64     `bun:"owner_id" json:"owner_id,omitempty"`
	DueDate   *time.Time `bun:"due_date" json:"due_date,omitempty"`
	CreatedBy int64      `bun:"created_by,notnull" json:"created_by"`
	UpdatedBy int64      `bun:"updated_by,notnull" json:"updated_by"`
	CreatedAt time.Time  `bun:"created_at,nullzero,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt time.Time  `bun:"updated_at,nullzero,notnull,default:current_timestamp" json:"updated_at"`
	Tags      []string   `bun:"-" json:"tags,omitempty"`
}

// TaskTag attaches one tag name to a task.
type TaskTag struct {
	bun.BaseModel `bun:"table:task_tags,alias:tt"`

	TaskID int64  `bun:"task_id,pk"`
	Tag    string `bun:"tag,pk"`
}

// PageTask links a task to the page it was created from.
type PageTask struct {
	bun.BaseModel `bun:"table:page_tasks,alias:pt"`

	PageID    int64     `bun:"page_id,pk"`
	TaskID    int64     `bun:"task_id,pk"`
	CreatedBy int64     `bun:"created_by,notnull"`
	CreatedAt time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp"`
}

// Mention records that a user is mentioned by a page, task or comment.
type Mention struct {
	bun.BaseModel `bun:"table:mentions,alias:mn"`

	EntityType string    `bun:"entity_type,pk" json:"entity_type"`
	EntityID   int64     `bun:"entity_id,pk" json:"entity_id"`
	UserID     int64     `bun:"user_id,pk" json:"user_id"`
	Position   int       `bun:"position,notnull" json:"position"`
	CreatedBy  int64     `bun:"created_by,notnull" json:"created_by"`
	CreatedAt  time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp" json:"created_at"`
}

var models = []any{
	(*User)(nil),
	(*Column)(nil),
	(*Task)(nil),
	(*TaskTag)(nil),
	(*PageTask)(nil),
	(*Mention)(nil),
}
