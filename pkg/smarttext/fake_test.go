package smarttext

import (
	"context"
	"errors"
	"slices"
	"time"
)

var errStoreDown = errors.New("store unavailable")

type dueCall struct {
	taskID  int64
	due     time.Time
	actorID int64
}

type ownerCall struct {
	taskID, ownerID, actorID int64
}

type linkCall struct {
	pageID, taskID, actorID int64
}

type mentionCall struct {
	entity   Context
	entityID int64
	userIDs  []int64
	actorID  int64
}

// fakeCollaborator records every call and serves a fixed user directory.
type fakeCollaborator struct {
	users  map[int64]User
	nextID int64

	created  []NewTask
	dues     []dueCall
	owners   []ownerCall
	tags     map[int64][]string
	links    []linkCall
	mentions []mentionCall

	failCreate bool
	failLink   bool
	failLookup bool
	failSet    bool
}

func newFakeCollaborator() *fakeCollaborator {
	return &fakeCollaborator{
		users: map[int64]User{
			1: {ID: 1, DisplayName: "Alice"},
			2: {ID: 2, DisplayName: "Bob"},
		},
		nextID: 100,
		tags:   make(map[int64][]string),
	}
}

func (f *fakeCollaborator) DefaultColumn(context.Context) (Column, error) {
	return Column{ID: 5, Name: "Backlog"}, nil
}

func (f *fakeCollaborator) CreateTask(_ context.Context, task NewTask) (int64, error) {
	if f.failCreate {
		return 0, errStoreDown
	}
	f.created = append(f.created, task)
	f.nextID++
	return f.nextID, nil
}

func (f *fakeCollaborator) SetTaskDueDate(_ context.Context, taskID int64, due time.Time, actorID int64) error {
	if f.failSet {
		return errStoreDown
	}
	f.dues = append(f.dues, dueCall{taskID: taskID, due: due, actorID: actorID})
	return nil
}

func (f *fakeCollaborator) SetTaskOwner(_ context.Context, taskID, ownerID, actorID int64) error {
	if f.failSet {
		return errStoreDown
	}
	f.owners = append(f.owners, ownerCall{taskID: taskID, ownerID: ownerID, actorID: actorID})
	return nil
}

func (f *fakeCollaborator) AddTaskTag(_ context.Context, taskID int64, tag string) error {
	if f.failSet {
		return errStoreDown
	}
	if !slices.Contains(f.tags[taskID], tag) {
		f.tags[taskID] = append(f.tags[taskID], tag)
	}
	return nil
}

func (f *fakeCollaborator) LinkPageTask(_ context.Context, pageID, taskID, actorID int64) (bool, error) {
	if f.failLink {
		return false, errStoreDown
	}
	f.links = append(f.links, linkCall{pageID: pageID, taskID: taskID, actorID: actorID})
	return true, nil
}

func (f *fakeCollaborator) LookupUser(_ context.Context, id int64) (User, bool, error) {
	if f.failLookup {
		return User{}, false, errStoreDown
	}
	u, ok := f.users[id]
	return u, ok, nil
}

func (f *fakeCollaborator) ReplaceMentions(_ context.Context, entity Context, entityID int64, userIDs []int64, actorID int64) error {
	f.mentions = append(f.mentions, mentionCall{entity: entity, entityID: entityID, userIDs: slices.Clone(userIDs), actorID: actorID})
	return nil
}

// recordingLogger captures log messages.
type recordingLogger struct {
	messages []string
}

func (l *recordingLogger) Debug(msg string, _ ...any) { l.messages = append(l.messages, "debug: "+msg) }
func (l *recordingLogger) Info(msg string, _ ...any)  { l.messages = append(l.messages, "info: "+msg) }
func (l *recordingLogger) Warn(msg string, _ ...any)  { l.messages = append(l.messages, "warn: "+msg) }
func (l *recordingLogger) Error(msg string, _ ...any) { l.messages = append(l.messages, "error: "+msg) }

func int64Ptr(v int64) *int64 { return &v }
