package process

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/open-cli-collective/taskwiki-cli/internal/store"
	"github.com/open-cli-collective/taskwiki-cli/pkg/smarttext"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()

	s, err := store.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	require.NoError(t, s.Migrate(context.Background()))
	return s
}

func decode(t *testing.T, out *bytes.Buffer) processOutput {
	t.Helper()

	var got processOutput
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	return got
}

func TestRunProcess_PageCreatesTasks(t *testing.T) {
	s := newTestStore(t)
	var out bytes.Buffer

	opts := &processOptions{
		context: "page",
		pageID:  12,
		actor:   1,
		output:  "json",
		stdin:   strings.NewReader("Sprint plan\n\n/task Write notes\n/task Book room\n\nThanks"),
		stdout:  &out,
	}
	require.NoError(t, runProcess(context.Background(), opts, s, nil))

	got := decode(t, &out)
	assert.Equal(t, "Sprint plan\n\nThanks", got.CleanedText)
	require.Len(t, got.Results, 2)
	for _, res := range got.Results {
		assert.Equal(t, smarttext.ResultSuccess, res.Kind, res.Message)
		require.NotNil(t, res.CreatedEntityID)
	}

	linked, err := s.PageTasks(context.Background(), 12)
	require.NoError(t, err)
	assert.Len(t, linked, 2)
}

func TestRunProcess_TaskCommands(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	ana, err := s.CreateUser(ctx, "Ana", "")
	require.NoError(t, err)
	col, err := s.DefaultColumn(ctx)
	require.NoError(t, err)
	taskID, err := s.CreateTask(ctx, smarttext.NewTask{Title: "Ship", ColumnID: col.ID, CreatedBy: 1})
	require.NoError(t, err)

	var out bytes.Buffer
	opts := &processOptions{
		context: "task",
		taskID:  taskID,
		actor:   1,
		output:  "json",
		stdin:   strings.NewReader(fmt.Sprintf("/due 2026-11-02\n/assign %d\n/tag Release\n/due tomorrow", ana.ID)),
		stdout:  &out,
	}
	require.NoError(t, runProcess(ctx, opts, s, nil))

	got := decode(t, &out)
	assert.Equal(t, "", got.CleanedText)
	require.Len(t, got.Results, 4)
	assert.Equal(t, smarttext.ResultSuccess, got.Results[0].Kind)
	assert.Equal(t, smarttext.ResultSuccess, got.Results[1].Kind)
	assert.Equal(t, smarttext.ResultSuccess, got.Results[2].Kind)
	assert.Equal(t, smarttext.ResultError, got.Results[3].Kind)
	assert.Contains(t, got.Results[3].Message, "YYYY-MM-DD")

	task, err := s.GetTask(ctx, taskID)
	require.NoError(t, err)
	assert.Equal(t, ana.ID, *task.OwnerID)
	assert.Equal(t, []string{"release"}, task.Tags)
}

func TestRunProcess_NoCommandsKeepsText(t *testing.T) {
	s := newTestStore(t)
	var out bytes.Buffer

	opts := &processOptions{
		context: "comment",
		stdin:   strings.NewReader("/task not here\nLooks good"),
		stdout:  &out,
		noColor: true,
	}
	require.NoError(t, runProcess(context.Background(), opts, s, nil))
	assert.Contains(t, out.String(), "/task not here\nLooks good")
	assert.Contains(t, out.String(), "No commands executed")
}

func TestRunProcess_PlainOutput(t *testing.T) {
	s := newTestStore(t)
	var out bytes.Buffer

	opts := &processOptions{
		context: "task",
		output:  "plain",
		stdin:   strings.NewReader("Body\n/tag x"),
		stdout:  &out,
	}
	require.NoError(t, runProcess(context.Background(), opts, s, nil))

	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Body", lines[0])
	assert.Equal(t, "", lines[1])
	assert.True(t, strings.HasPrefix(lines[2], "tag\terror\t-\t"), lines[2])
}

func TestRunProcess_SyncMentions(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	bo, err := s.CreateUser(ctx, "Bo", "")
	require.NoError(t, err)

	var out bytes.Buffer
	opts := &processOptions{
		context:      "page",
		pageID:       5,
		actor:        1,
		syncMentions: true,
		output:       "json",
		stdin:        strings.NewReader(fmt.Sprintf("Hi @[Bo](user:%d) and @[Ghost](user:404)", bo.ID)),
		stdout:       &out,
	}
	require.NoError(t, runProcess(ctx, opts, s, nil))

	got := decode(t, &out)
	assert.Equal(t, []int64{bo.ID}, got.Mentions)

	stored, err := s.Mentions(ctx, smarttext.ContextPage, 5)
	require.NoError(t, err)
	assert.Equal(t, []int64{bo.ID}, stored)
}

func TestRunProcess_InvalidInput(t *testing.T) {
	tests := []struct {
		name    string
		opts    processOptions
		wantErr string
	}{
		{
			name:    "bad context",
			opts:    processOptions{context: "board"},
			wantErr: "invalid context",
		},
		{
			name:    "bad output",
			opts:    processOptions{context: "task", output: "xml"},
			wantErr: "invalid output format",
		},
		{
			name:    "sync without entity",
			opts:    processOptions{context: "comment", syncMentions: true},
			wantErr: "--entity-id",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := tt.opts
			opts.stdin = strings.NewReader("")
			opts.stdout = &bytes.Buffer{}

			err := runProcess(context.Background(), &opts, newTestStore(t), nil)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestMentionEntityID(t *testing.T) {
	id, err := mentionEntityID(&processOptions{syncMentions: true, taskID: 3}, smarttext.ContextTask)
	require.NoError(t, err)
	assert.Equal(t, int64(3), id)

	id, err = mentionEntityID(&processOptions{syncMentions: true, taskID: 3, entityID: 8}, smarttext.ContextComment)
	require.NoError(t, err)
	assert.Equal(t, int64(8), id)

	_, err = mentionEntityID(&processOptions{syncMentions: true, taskID: 3}, smarttext.ContextPage)
	assert.Error(t, err)
}
