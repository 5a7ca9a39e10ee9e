package smarttext

import (
	"errors"

	goerrors "github.com/goliatone/go-errors"
)

// Text codes attached to command failures.
const (
	CodeValidationFailed   = "COMMAND_VALIDATION_FAILED"
	CodeContextMissing     = "COMMAND_CONTEXT_MISSING"
	CodeCollaboratorFailed = "COMMAND_COLLABORATOR_FAILED"
)

var (
	// ErrTaskRequired is returned by task-scoped commands run without a task id.
	ErrTaskRequired = errors.New("command requires a task id")
	// ErrUserNotFound is returned when a referenced user does not exist.
	ErrUserNotFound = errors.New("user not found")
	// ErrUnknownCommand is returned for a verb without a handler.
	ErrUnknownCommand = errors.New("unknown command")
)

func validationError(err error, msg string) error {
	return goerrors.Wrap(err, goerrors.CategoryValidation, msg).WithTextCode(CodeValidationFailed)
}

func contextError(err error, msg string) error {
	return goerrors.Wrap(err, goerrors.CategoryCommand, msg).WithTextCode(CodeContextMissing)
}

func collaboratorError(err error) error {
	return goerrors.Wrap(err, goerrors.CategoryCommand, "collaborator call failed").WithTextCode(CodeCollaboratorFailed)
}
