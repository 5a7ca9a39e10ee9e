// Package smarttext extracts @mentions, #tags and /commands from free-form
// wiki text (page bodies, task descriptions, comments) and executes the
// commands against a collaborator.
//
// Wire syntax:
//
//	@[Display Name](user:123)   mention
//	#tag-name                   tag reference, [a-z0-9][a-z0-9._-]{0,49}
//	/verb arguments text        command, at the start of a line
//
// Extraction is pure. Only Executor.Process and MentionSyncer.Sync call
// collaborators.
package smarttext

import (
	"fmt"
	"strings"
)

// Context is the kind of entity a text belongs to. It selects which command
// verbs are legal and doubles as the entity type for stored mentions.
type Context string

const (
	ContextPage    Context = "page"
	ContextTask    Context = "task"
	ContextComment Context = "comment"
)

// ParseContext validates a context name.
func ParseContext(s string) (Context, error) {
	c := Context(strings.ToLower(strings.TrimSpace(s)))
	if !c.Valid() {
		return "", fmt.Errorf("invalid context %q (valid: page, task, comment)", s)
	}
	return c, nil
}

// Valid reports whether c is one of the known contexts.
func (c Context) Valid() bool {
	switch c {
	case ContextPage, ContextTask, ContextComment:
		return true
	}
	return false
}

func (c Context) String() string { return string(c) }

// MentionToken is a parsed @[Name](user:ID) reference.
type MentionToken struct {
	DisplayName string `json:"display_name"`
	UserID      int64  `json:"user_id"`
}

// TagToken is a parsed #name reference. Name is lower-cased.
type TagToken struct {
	Name     string `json:"name"`
	Position int    `json:"position"` // byte offset of '#' in the input
}

// CommandToken is a /verb args line.
type CommandToken struct {
	Verb       string `json:"verb"`
	Args       string `json:"args"`        // trimmed, never empty
	SourceLine string `json:"source_line"` // the whole line, trimmed
	Line       int    `json:"line"`        // 1-based line number
}

// ResultKind tells whether a command succeeded.
type ResultKind string

const (
	ResultSuccess ResultKind = "success"
	ResultError   ResultKind = "error"
)

// CommandResult reports the outcome of one command.
type CommandResult struct {
	Verb            string     `json:"verb"`
	Kind            ResultKind `json:"kind"`
	Message         string     `json:"message"`
	CreatedEntityID *int64     `json:"created_entity_id,omitempty"`
	Err             error      `json:"-"`
}

// OK reports whether the command succeeded.
func (r CommandResult) OK() bool { return r.Kind == ResultSuccess }

// Params carries the ids of the entities a save is about.
type Params struct {
	PageID *int64
	TaskID *int64
}

// Outcome is the result of processing commands in a text.
type Outcome struct {
	CleanedText string          `json:"cleaned_text"`
	Results     []CommandResult `json:"results"`
}
