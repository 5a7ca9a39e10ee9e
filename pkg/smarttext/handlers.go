package smarttext

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

const (
	maxTaskTitleLength = 190
	dueDateLayout      = "2006-01-02"
)

var dueDateShape = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

func requireTask(cmd CommandToken, req request) (int64, *CommandResult) {
	if req.params.TaskID == nil {
		res := failure(cmd, fmt.Sprintf("/%s can only be used on a saved task", cmd.Verb),
			contextError(ErrTaskRequired, "task id missing"))
		return 0, &res
	}
	return *req.params.TaskID, nil
}

// handleTask creates a task in the default column and links it to the page.
func handleTask(ctx context.Context, e *Executor, cmd CommandToken, req request) CommandResult {
	title := cmd.Args
	if err := validation.Validate(title,
		validation.Required,
		validation.RuneLength(1, maxTaskTitleLength),
	); err != nil {
		return failure(cmd, fmt.Sprintf("Task title must be between 1 and %d characters", maxTaskTitleLength),
			validationError(err, "invalid task title"))
	}

	column, err := e.collab.DefaultColumn(ctx)
	if err != nil {
		return e.collaboratorFailure(cmd, err)
	}

	taskID, err := e.collab.CreateTask(ctx, NewTask{Title: title, ColumnID: column.ID, CreatedBy: req.actorID})
	if err != nil {
		return e.collaboratorFailure(cmd, err)
	}

	if req.params.PageID != nil {
		if _, err := e.collab.LinkPageTask(ctx, *req.params.PageID, taskID, req.actorID); err != nil {
			res := e.collaboratorFailure(cmd, err)
			res.Message = fmt.Sprintf("Created task #%d but could not link it to the page", taskID)
			res.CreatedEntityID = &taskID
			return res
		}
	}

	res := success(cmd, fmt.Sprintf("Created task #%d: %s", taskID, title))
	res.CreatedEntityID = &taskID
	return res
}

// handleDue sets the due date of the current task.
func handleDue(ctx context.Context, e *Executor, cmd CommandToken, req request) CommandResult {
	if err := validation.Validate(cmd.Args,
		validation.Required,
		validation.Match(dueDateShape),
		validation.Date(dueDateLayout),
	); err != nil {
		return failure(cmd, fmt.Sprintf("Invalid date %q, expected YYYY-MM-DD", cmd.Args),
			validationError(err, "invalid due date"))
	}

	taskID, fail := requireTask(cmd, req)
	if fail != nil {
		return *fail
	}

	due, err := time.Parse(dueDateLayout, cmd.Args)
	if err != nil {
		return failure(cmd, fmt.Sprintf("Invalid date %q, expected YYYY-MM-DD", cmd.Args),
			validationError(err, "invalid due date"))
	}

	if err := e.collab.SetTaskDueDate(ctx, taskID, due, req.actorID); err != nil {
		return e.collaboratorFailure(cmd, err)
	}
	return success(cmd, "Due date set to "+due.Format(dueDateLayout))
}

// handleAssign makes a mentioned or numbered user the owner of the task.
func handleAssign(ctx context.Context, e *Executor, cmd CommandToken, req request) CommandResult {
	userID, ok := resolveUserRef(cmd.Args)
	if !ok {
		return failure(cmd, fmt.Sprintf("Could not resolve user %q", cmd.Args),
			validationError(ErrUserNotFound, "unresolvable user reference"))
	}

	taskID, fail := requireTask(cmd, req)
	if fail != nil {
		return *fail
	}

	user, found, err := e.collab.LookupUser(ctx, userID)
	if err != nil {
		return e.collaboratorFailure(cmd, err)
	}
	if !found {
		return failure(cmd, fmt.Sprintf("User #%d does not exist", userID),
			validationError(ErrUserNotFound, "unknown user"))
	}

	if err := e.collab.SetTaskOwner(ctx, taskID, user.ID, req.actorID); err != nil {
		return e.collaboratorFailure(cmd, err)
	}

	name := user.DisplayName
	if name == "" {
		name = fmt.Sprintf("user #%d", user.ID)
	}
	return success(cmd, "Assigned task to "+name)
}

// resolveUserRef accepts a mention token or a bare numeric id.
func resolveUserRef(args string) (int64, bool) {
	if tokens := ExtractMentionTokens(args); len(tokens) > 0 {
		return tokens[0].UserID, true
	}
	if err := validation.Validate(args, validation.Required, is.Digit); err != nil {
		return 0, false
	}
	id, err := strconv.ParseInt(args, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// handleTag adds a tag to the current task.
func handleTag(ctx context.Context, e *Executor, cmd CommandToken, req request) CommandResult {
	name := strings.ToLower(strings.TrimPrefix(cmd.Args, "#"))
	if err := validation.Validate(name,
		validation.Required,
		validation.Match(tagNamePattern),
	); err != nil {
		return failure(cmd, fmt.Sprintf("Invalid tag name %q", cmd.Args),
			validationError(err, "invalid tag name"))
	}

	taskID, fail := requireTask(cmd, req)
	if fail != nil {
		return *fail
	}

	if err := e.collab.AddTaskTag(ctx, taskID, name); err != nil {
		return e.collaboratorFailure(cmd, err)
	}
	return success(cmd, "Tagged task with #"+name)
}
