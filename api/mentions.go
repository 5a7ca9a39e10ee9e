package api

import (
	"context"
	"fmt"
	"net/url"

	"github.com/open-cli-collective/taskwiki-cli/pkg/smarttext"
)

// ReplaceMentions replaces the mention set of an entity.
func (c *Client) ReplaceMentions(ctx context.Context, entity smarttext.Context, entityID int64, userIDs []int64, actorID int64) error {
	if userIDs == nil {
		userIDs = []int64{}
	}
	path := fmt.Sprintf("/api/mentions/%s/%d", url.PathEscape(entity.String()), entityID)
	_, err := c.Put(ctx, path, ReplaceMentionsRequest{UserIDs: userIDs, ActorID: actorID})
	return err
}
