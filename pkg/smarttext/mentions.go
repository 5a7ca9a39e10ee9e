package smarttext

import (
	"context"
	"fmt"
)

// MentionSyncer keeps the stored mention set of an entity in step with its
// text.
type MentionSyncer struct {
	users  UserDirectory
	store  MentionStore
	logger Logger
}

// NewMentionSyncer creates a syncer. Only WithLogger applies.
func NewMentionSyncer(users UserDirectory, store MentionStore, opts ...Option) *MentionSyncer {
	s := newSettings(opts)
	return &MentionSyncer{users: users, store: store, logger: s.logger}
}

// Sync replaces the mentions of the entity with the existing users mentioned
// in text and returns their ids in order of first mention. Mentions of
// unknown users are dropped.
func (s *MentionSyncer) Sync(ctx context.Context, text string, entity Context, entityID, actorID int64) ([]int64, error) {
	if !entity.Valid() {
		return nil, fmt.Errorf("invalid entity type %q", entity)
	}

	ids := ExtractMentions(text)
	existing := make([]int64, 0, len(ids))
	for _, id := range ids {
		_, found, err := s.users.LookupUser(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("failed to look up user %d: %w", id, err)
		}
		if !found {
			s.logger.Debug("dropping mention of unknown user", "user_id", id)
			continue
		}
		existing = append(existing, id)
	}

	if err := s.store.ReplaceMentions(ctx, entity, entityID, existing, actorID); err != nil {
		return nil, fmt.Errorf("failed to replace mentions: %w", err)
	}

	s.logger.Info("mentions synced", "entity", entity.String(), "entity_id", entityID, "count", len(existing))
	return existing, nil
}
