package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/uptrace/bun"

	"github.com/open-cli-collective/taskwiki-cli/pkg/smarttext"
)

// DefaultColumn returns the column new tasks go into.
func (s *Store) DefaultColumn(ctx context.Context) (smarttext.Column, error) {
	var col Column
	err := s.db.NewSelect().
		Model(&col).
		Where("c.is_default = ?", true).
		Order("c.position ASC", "c.id ASC").
		Limit(1).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return smarttext.Column{}, ErrNoDefaultColumn
	}
	if err != nil {
		return smarttext.Column{}, fmt.Errorf("failed to load default column: %w", err)
	}
	return smarttext.Column{ID: col.ID, Name: col.Name}, nil
}

// CreateTask inserts a task and returns its id.
func (s *Store) CreateTask(ctx context.Context, task smarttext.NewTask) (int64, error) {
	t := &Task{
		Title:     task.Title,
		ColumnID:  task.ColumnID,
		OwnerID:   task.OwnerID,
		DueDate:   task.DueDate,
		CreatedBy: task.CreatedBy,
		UpdatedBy: task.CreatedBy,
	}
	if _, err := s.db.NewInsert().Model(t).Exec(ctx); err != nil {
		return 0, fmt.Errorf("failed to create task: %w", err)
	}
	return t.ID, nil
}

// SetTaskDueDate stores due (a calendar date) on the task.
func (s *Store) SetTaskDueDate(ctx context.Context, taskID int64, due time.Time, actorID int64) error {
	day := time.Date(due.Year(), due.Month(), due.Day(), 0, 0, 0, 0, time.UTC)
	return s.updateTask(ctx, taskID, actorID, "due_date", day)
}

// SetTaskOwner makes ownerID the owner of the task.
func (s *Store) SetTaskOwner(ctx context.Context, taskID, ownerID, actorID int64) error {
	return s.updateTask(ctx, taskID, actorID, "owner_id", ownerID)
}

func (s *Store) updateTask(ctx context.Context, taskID, actorID int64, column string, value any) error {
	res, err := s.db.NewUpdate().
		Model((*Task)(nil)).
		Set("? = ?", bun.Ident(column), value).
		Set("updated_by = ?", actorID).
		Set("updated_at = ?", time.Now().UTC()).
		Where("id = ?", taskID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to update task %d: %w", taskID, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: %d", ErrTaskNotFound, taskID)
	}
	return nil
}

// AddTaskTag attaches tag to the task. Adding an existing tag is a no-op.
func (s *Store) AddTaskTag(ctx context.Context, taskID int64, tag string) error {
	if err := s.ensureTask(ctx, taskID); err != nil {
		return err
	}
	_, err := s.db.NewInsert().
		Model(&TaskTag{TaskID: taskID, Tag: tag}).
		On("CONFLICT DO NOTHING").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to tag task %d: %w", taskID, err)
	}
	return nil
}

// LinkPageTask links the task to the page; it reports false when the link
// already existed.
func (s *Store) LinkPageTask(ctx context.Context, pageID, taskID, actorID int64) (bool, error) {
	res, err := s.db.NewInsert().
		Model(&PageTask{PageID: pageID, TaskID: taskID, CreatedBy: actorID}).
		On("CONFLICT DO NOTHING").
		Exec(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to link task %d to page %d: %w", taskID, pageID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to link task %d to page %d: %w", taskID, pageID, err)
	}
	return n > 0, nil
}

// GetTask loads a task with its tags.
func (s *Store) GetTask(ctx context.Context, taskID int64) (*Task, error) {
	t := new(Task)
	err := s.db.NewSelect().Model(t).Where("t.id = ?", taskID).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %d", ErrTaskNotFound, taskID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load task %d: %w", taskID, err)
	}

	tags, err := s.TaskTags(ctx, taskID)
	if err != nil {
		return nil, err
	}
	t.Tags = tags
	return t, nil
}

// TaskTags returns the tags of a task in alphabetical order.
func (s *Store) TaskTags(ctx context.Context, taskID int64) ([]string, error) {
	var tags []string
	err := s.db.NewSelect().
		Model((*TaskTag)(nil)).
		Column("tag").
		Where("task_id = ?", taskID).
		Order("tag ASC").
		Scan(ctx, &tags)
	if err != nil {
		return nil, fmt.Errorf("failed to load tags for task %d: %w", taskID, err)
	}
	return tags, nil
}

// PageTasks returns the ids of tasks linked to a page.
func (s *Store) PageTasks(ctx context.Context, pageID int64) ([]int64, error) {
	var ids []int64
	err := s.db.NewSelect().
		Model((*PageTask)(nil)).
		Column("task_id").
		Where("page_id = ?", pageID).
		Order("task_id ASC").
		Scan(ctx, &ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load tasks for page %d: %w", pageID, err)
	}
	return ids, nil
}

func (s *Store) ensureTask(ctx context.Context, taskID int64) error {
	exists, err := s.db.NewSelect().Model((*Task)(nil)).Where("id = ?", taskID).Exists(ctx)
	if err != nil {
		return fmt.Errorf("failed to load task %d: %w", taskID, err)
	}
	if !exists {
		return fmt.Errorf("%w: %d", ErrTaskNotFound, taskID)
	}
	return nil
}
