package smarttext

import (
	"context"
	"slices"
)

type handlerFunc func(ctx context.Context, e *Executor, cmd CommandToken, req request) CommandResult

// Registry holds the per-context verb allow-lists and the verb handlers. The
// zero value is not usable; use DefaultRegistry.
type Registry struct {
	allowed  map[Context][]string
	handlers map[string]handlerFunc
}

var defaultRegistry = DefaultRegistry()

// DefaultRegistry returns a fresh registry with the built-in verbs:
// /task on pages and /due, /assign, /tag on tasks. Comments accept none.
func DefaultRegistry() *Registry {
	return &Registry{
		allowed: map[Context][]string{
			ContextPage:    {"task"},
			ContextTask:    {"due", "assign", "tag"},
			ContextComment: {},
		},
		handlers: map[string]handlerFunc{
			"task":   handleTask,
			"due":    handleDue,
			"assign": handleAssign,
			"tag":    handleTag,
		},
	}
}

// Allowed reports whether verb may be used in ctx.
func (r *Registry) Allowed(ctx Context, verb string) bool {
	return slices.Contains(r.allowed[ctx], verb)
}

// Verbs returns the verbs allowed in ctx.
func (r *Registry) Verbs(ctx Context) []string {
	return slices.Clone(r.allowed[ctx])
}

// Allow adds verbs to the allow-list of ctx. Verbs without a built-in handler
// are ignored.
func (r *Registry) Allow(ctx Context, verbs ...string) {
	for _, verb := range verbs {
		if _, ok := r.handlers[verb]; !ok || r.Allowed(ctx, verb) {
			continue
		}
		r.allowed[ctx] = append(r.allowed[ctx], verb)
	}
}

// Disallow removes verbs from the allow-list of ctx.
func (r *Registry) Disallow(ctx Context, verbs ...string) {
	r.allowed[ctx] = slices.DeleteFunc(slices.Clone(r.allowed[ctx]), func(v string) bool {
		return slices.Contains(verbs, v)
	})
}

// Extract returns the command lines of text allowed in ctx.
func (r *Registry) Extract(text string, ctx Context) []CommandToken {
	return scanCommands(text, func(verb string) bool { return r.Allowed(ctx, verb) })
}

func (r *Registry) handler(verb string) (handlerFunc, bool) {
	h, ok := r.handlers[verb]
	return h, ok
}
