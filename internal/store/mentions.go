package store

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"

	"github.com/open-cli-collective/taskwiki-cli/pkg/smarttext"
)

// ReplaceMentions atomically replaces the mention set of an entity.
func (s *Store) ReplaceMentions(ctx context.Context, entity smarttext.Context, entityID int64, userIDs []int64, actorID int64) error {
	return s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		_, err := tx.NewDelete().
			Model((*Mention)(nil)).
			Where("entity_type = ?", entity.String()).
			Where("entity_id = ?", entityID).
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to clear mentions: %w", err)
		}
		if len(userIDs) == 0 {
			return nil
		}

		rows := make([]Mention, 0, len(userIDs))
		for i, id := range userIDs {
			rows = append(rows, Mention{
				EntityType: entity.String(),
				EntityID:   entityID,
				UserID:     id,
				Position:   i,
				CreatedBy:  actorID,
			})
		}
		if _, err := tx.NewInsert().Model(&rows).Exec(ctx); err != nil {
			return fmt.Errorf("failed to insert mentions: %w", err)
		}
		return nil
	})
}

// Mentions returns the mentioned user ids of an entity in mention order.
func (s *Store) Mentions(ctx context.Context, entity smarttext.Context, entityID int64) ([]int64, error) {
	var ids []int64
	err := s.db.NewSelect().
		Model((*Mention)(nil)).
		Column("user_id").
		Where("entity_type = ?", entity.String()).
		Where("entity_id = ?", entityID).
		Order("position ASC").
		Scan(ctx, &ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load mentions: %w", err)
	}
	return ids, nil
}
