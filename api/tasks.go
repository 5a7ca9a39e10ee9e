package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/open-cli-collective/taskwiki-cli/pkg/smarttext"
)

// DefaultColumn returns the column new tasks are filed into.
func (c *Client) DefaultColumn(ctx context.Context) (smarttext.Column, error) {
	var col Column
	if err := c.getJSON(ctx, "/api/columns/default", &col); err != nil {
		return smarttext.Column{}, err
	}
	return smarttext.Column{ID: col.ID, Name: col.Name}, nil
}

// CreateTask creates a task and returns its id.
func (c *Client) CreateTask(ctx context.Context, task smarttext.NewTask) (int64, error) {
	req := CreateTaskRequest{
		Title:     task.Title,
		ColumnID:  task.ColumnID,
		OwnerID:   task.OwnerID,
		CreatedBy: task.CreatedBy,
	}
	if task.DueDate != nil {
		due := task.DueDate.Format(dateLayout)
		req.DueDate = &due
	}

	body, err := c.Post(ctx, "/api/tasks", req)
	if err != nil {
		return 0, err
	}

	var created Task
	if err := json.Unmarshal(body, &created); err != nil {
		return 0, fmt.Errorf("failed to parse response: %w", err)
	}
	return created.ID, nil
}

// GetTask returns a task by id.
func (c *Client) GetTask(ctx context.Context, taskID int64) (*Task, error) {
	var task Task
	if err := c.getJSON(ctx, fmt.Sprintf("/api/tasks/%d", taskID), &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// SetTaskDueDate sets the due date of a task.
func (c *Client) SetTaskDueDate(ctx context.Context, taskID int64, due time.Time, actorID int64) error {
	_, err := c.Put(ctx, fmt.Sprintf("/api/tasks/%d/due", taskID), SetDueDateRequest{
		DueDate: due.Format(dateLayout),
		ActorID: actorID,
	})
	return err
}

// SetTaskOwner sets the owner of a task.
func (c *Client) SetTaskOwner(ctx context.Context, taskID, ownerID, actorID int64) error {
	_, err := c.Put(ctx, fmt.Sprintf("/api/tasks/%d/owner", taskID), SetOwnerRequest{
		OwnerID: ownerID,
		ActorID: actorID,
	})
	return err
}

// AddTaskTag adds a tag to a task. The server treats duplicates as a no-op.
func (c *Client) AddTaskTag(ctx context.Context, taskID int64, tag string) error {
	_, err := c.Post(ctx, fmt.Sprintf("/api/tasks/%d/tags", taskID), AddTagRequest{Tag: tag})
	return err
}

// LinkPageTask links a task to a page. A 409 means the link already existed.
func (c *Client) LinkPageTask(ctx context.Context, pageID, taskID, actorID int64) (bool, error) {
	_, err := c.Post(ctx, fmt.Sprintf("/api/pages/%d/tasks", pageID), LinkTaskRequest{
		TaskID:  taskID,
		ActorID: actorID,
	})
	if IsStatus(err, http.StatusConflict) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
