package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/open-cli-collective/taskwiki-cli/pkg/smarttext"
)

type capturedRequest struct {
	method string
	path   string
	body   map[string]any
}

func newRecordingServer(t *testing.T, handler func(w http.ResponseWriter, r *http.Request)) (*Client, *[]capturedRequest) {
	t.Helper()

	var captured []capturedRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		req := capturedRequest{method: r.Method, path: r.URL.Path}
		raw, _ := io.ReadAll(r.Body)
		if len(raw) > 0 {
			_ = json.Unmarshal(raw, &req.body)
		}
		captured = append(captured, req)
		handler(w, r)
	}))
	t.Cleanup(server.Close)

	return NewClient(server.URL, "user@example.com", "token"), &captured
}

func TestClient_DefaultColumn(t *testing.T) {
	client, captured := newRecordingServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id": 3, "name": "Backlog"}`))
	})

	col, err := client.DefaultColumn(context.Background())
	require.NoError(t, err)
	assert.Equal(t, smarttext.Column{ID: 3, Name: "Backlog"}, col)
	assert.Equal(t, "/api/columns/default", (*captured)[0].path)
}

func TestClient_CreateTask(t *testing.T) {
	client, captured := newRecordingServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id": 55, "title": "Buy milk", "columnId": 3}`))
	})

	due := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)
	id, err := client.CreateTask(context.Background(), smarttext.NewTask{
		Title: "Buy milk", ColumnID: 3, DueDate: &due, CreatedBy: 7,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(55), id)

	req := (*captured)[0]
	assert.Equal(t, http.MethodPost, req.method)
	assert.Equal(t, "/api/tasks", req.path)
	assert.Equal(t, "Buy milk", req.body["title"])
	assert.Equal(t, "2025-01-15", req.body["dueDate"])
	assert.Equal(t, float64(7), req.body["createdBy"])
	assert.NotContains(t, req.body, "ownerId")
}

func TestClient_TaskMutations(t *testing.T) {
	client, captured := newRecordingServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	})
	ctx := context.Background()

	require.NoError(t, client.SetTaskDueDate(ctx, 42, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), 7))
	require.NoError(t, client.SetTaskOwner(ctx, 42, 2, 7))
	require.NoError(t, client.AddTaskTag(ctx, 42, "urgent"))

	require.Len(t, *captured, 3)
	assert.Equal(t, capturedRequest{method: http.MethodPut, path: "/api/tasks/42/due",
		body: map[string]any{"dueDate": "2025-03-01", "actorId": float64(7)}}, (*captured)[0])
	assert.Equal(t, capturedRequest{method: http.MethodPut, path: "/api/tasks/42/owner",
		body: map[string]any{"ownerId": float64(2), "actorId": float64(7)}}, (*captured)[1])
	assert.Equal(t, capturedRequest{method: http.MethodPost, path: "/api/tasks/42/tags",
		body: map[string]any{"tag": "urgent"}}, (*captured)[2])
}

func TestClient_LinkPageTask(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		wantLinked bool
		wantErr    bool
	}{
		{"linked", http.StatusOK, true, false},
		{"already linked", http.StatusConflict, false, false},
		{"server error", http.StatusInternalServerError, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, captured := newRecordingServer(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(`{"message": "status"}`))
			})

			linked, err := client.LinkPageTask(context.Background(), 9, 42, 7)
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.wantLinked, linked)
			assert.Equal(t, "/api/pages/9/tasks", (*captured)[0].path)
		})
	}
}

func TestClient_LookupUser(t *testing.T) {
	client, _ := newRecordingServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/users/1" {
			w.Write([]byte(`{"id": 1, "displayName": "Alice"}`))
			return
		}
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`not found`))
	})
	ctx := context.Background()

	u, found, err := client.LookupUser(ctx, 1)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "Alice", u.DisplayName)

	_, found, err = client.LookupUser(ctx, 2)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestClient_ReplaceMentions(t *testing.T) {
	client, captured := newRecordingServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	require.NoError(t, client.ReplaceMentions(context.Background(), smarttext.ContextComment, 12, nil, 7))

	req := (*captured)[0]
	assert.Equal(t, http.MethodPut, req.method)
	assert.Equal(t, "/api/mentions/comment/12", req.path)
	assert.Equal(t, []any{}, req.body["userIds"])
}

func TestClient_ExecutorOverHTTP(t *testing.T) {
	client, captured := newRecordingServer(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/columns/default":
			w.Write([]byte(`{"id": 1, "name": "Backlog"}`))
		case "/api/tasks":
			w.Write([]byte(`{"id": 77}`))
		default:
			w.Write([]byte(`{}`))
		}
	})

	exec := smarttext.NewExecutor(client)
	pageID := int64(5)
	out, err := exec.Process(context.Background(), "/task Review PR", smarttext.ContextPage, 3, smarttext.Params{PageID: &pageID})
	require.NoError(t, err)
	require.Len(t, out.Results, 1)
	assert.True(t, out.Results[0].OK())
	assert.Equal(t, int64(77), *out.Results[0].CreatedEntityID)

	paths := make([]string, 0, len(*captured))
	for _, req := range *captured {
		paths = append(paths, req.path)
	}
	assert.Equal(t, []string{"/api/columns/default", "/api/tasks", "/api/pages/5/tasks"}, paths)
}
