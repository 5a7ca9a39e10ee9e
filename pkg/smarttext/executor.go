package smarttext

import (
	"context"
	"fmt"
)

type settings struct {
	logger   Logger
	registry *Registry
}

// Option configures an Executor or MentionSyncer.
type Option func(*settings)

// WithLogger sets the logger. A nil logger discards output.
func WithLogger(l Logger) Option {
	return func(s *settings) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithRegistry replaces the default verb registry.
func WithRegistry(r *Registry) Option {
	return func(s *settings) {
		if r != nil {
			s.registry = r
		}
	}
}

func newSettings(opts []Option) settings {
	s := settings{logger: NoOpLogger(), registry: DefaultRegistry()}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// Executor runs the commands found in a text.
type Executor struct {
	collab   Collaborator
	registry *Registry
	logger   Logger
}

// request is the per-call state handed to verb handlers.
type request struct {
	actorID int64
	params  Params
}

// NewExecutor creates an executor backed by collab.
func NewExecutor(collab Collaborator, opts ...Option) *Executor {
	s := newSettings(opts)
	return &Executor{collab: collab, registry: s.registry, logger: s.logger}
}

// Process runs every command allowed in c, in document order, and returns
// the text with the command lines removed. A failing command yields an error
// result and never stops the remaining commands. The returned error is only
// non-nil when c is not a valid context.
func (e *Executor) Process(ctx context.Context, text string, c Context, actorID int64, params Params) (Outcome, error) {
	if !c.Valid() {
		return Outcome{}, fmt.Errorf("invalid context %q", c)
	}

	commands := e.registry.Extract(text, c)
	if len(commands) == 0 {
		return Outcome{CleanedText: text, Results: []CommandResult{}}, nil
	}

	req := request{actorID: actorID, params: params}
	results := make([]CommandResult, 0, len(commands))
	for _, cmd := range commands {
		res := e.execute(ctx, cmd, req)
		if res.OK() {
			e.logger.Debug("command executed", "verb", cmd.Verb, "line", cmd.Line, "context", c.String())
		} else {
			e.logger.Warn("command failed", "verb", cmd.Verb, "line", cmd.Line, "context", c.String(), "error", res.Err)
		}
		results = append(results, res)
	}

	return Outcome{CleanedText: stripCommandLines(text, commands), Results: results}, nil
}

func (e *Executor) execute(ctx context.Context, cmd CommandToken, req request) CommandResult {
	h, ok := e.registry.handler(cmd.Verb)
	if !ok {
		return failure(cmd, "Unknown command /"+cmd.Verb, validationError(ErrUnknownCommand, "unknown command"))
	}
	return h(ctx, e, cmd, req)
}

func success(cmd CommandToken, msg string) CommandResult {
	return CommandResult{Verb: cmd.Verb, Kind: ResultSuccess, Message: msg}
}

func failure(cmd CommandToken, msg string, err error) CommandResult {
	return CommandResult{Verb: cmd.Verb, Kind: ResultError, Message: msg, Err: err}
}

// collaboratorFailure hides the underlying error from the user-facing message.
func (e *Executor) collaboratorFailure(cmd CommandToken, err error) CommandResult {
	e.logger.Error("collaborator call failed", "verb", cmd.Verb, "error", err)
	return failure(cmd, fmt.Sprintf("/%s failed, please try again", cmd.Verb), collaboratorError(err))
}
