package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/open-cli-collective/taskwiki-cli/pkg/smarttext"
)

// LookupUser fetches a user. A 404 reports the user as missing.
func (c *Client) LookupUser(ctx context.Context, id int64) (smarttext.User, bool, error) {
	var u User
	err := c.getJSON(ctx, fmt.Sprintf("/api/users/%d", id), &u)
	if IsStatus(err, http.StatusNotFound) {
		return smarttext.User{}, false, nil
	}
	if err != nil {
		return smarttext.User{}, false, err
	}
	return smarttext.User{ID: u.ID, DisplayName: u.DisplayName, Email: u.Email}, true, nil
}

// ListUsers returns the user directory.
func (c *Client) ListUsers(ctx context.Context) ([]User, error) {
	var users []User
	if err := c.getJSON(ctx, "/api/users", &users); err != nil {
		return nil, err
	}
	return users, nil
}
