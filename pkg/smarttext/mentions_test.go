package smarttext

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMentionSyncer_Sync(t *testing.T) {
	collab := newFakeCollaborator()
	syncer := NewMentionSyncer(collab, collab)

	ids, err := syncer.Sync(context.Background(), "@[A](user:1) @[Ghost](user:50) @[B](user:2) @[A](user:1)",
		ContextComment, 12, 7)
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2}, ids)

	require.Len(t, collab.mentions, 1)
	assert.Equal(t, mentionCall{entity: ContextComment, entityID: 12, userIDs: []int64{1, 2}, actorID: 7}, collab.mentions[0])
}

func TestMentionSyncer_NoMentionsClearsSet(t *testing.T) {
	collab := newFakeCollaborator()
	syncer := NewMentionSyncer(collab, collab)

	ids, err := syncer.Sync(context.Background(), "nothing here", ContextPage, 3, 7)
	require.NoError(t, err)
	assert.Empty(t, ids)
	require.Len(t, collab.mentions, 1)
	assert.Empty(t, collab.mentions[0].userIDs)
}

func TestMentionSyncer_LookupFailure(t *testing.T) {
	collab := newFakeCollaborator()
	collab.failLookup = true
	syncer := NewMentionSyncer(collab, collab)

	_, err := syncer.Sync(context.Background(), "@[A](user:1)", ContextTask, 3, 7)
	require.Error(t, err)
	assert.ErrorIs(t, err, errStoreDown)
	assert.Empty(t, collab.mentions)
}

func TestMentionSyncer_InvalidEntity(t *testing.T) {
	collab := newFakeCollaborator()
	syncer := NewMentionSyncer(collab, collab)

	_, err := syncer.Sync(context.Background(), "@[A](user:1)", Context("space"), 3, 7)
	assert.Error(t, err)
}
