package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/open-cli-collective/taskwiki-cli/pkg/smarttext"
)

// CreateUser inserts a user and returns it with its id.
func (s *Store) CreateUser(ctx context.Context, displayName, email string) (*User, error) {
	u := &User{DisplayName: displayName, Email: email}
	if _, err := s.db.NewInsert().Model(u).Exec(ctx); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return u, nil
}

// ListUsers returns all users ordered by id.
func (s *Store) ListUsers(ctx context.Context) ([]User, error) {
	var users []User
	if err := s.db.NewSelect().Model(&users).Order("id ASC").Scan(ctx); err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// LookupUser reports whether the user exists.
func (s *Store) LookupUser(ctx context.Context, id int64) (smarttext.User, bool, error) {
	var u User
	err := s.db.NewSelect().Model(&u).Where("u.id = ?", id).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return smarttext.User{}, false, nil
	}
	if err != nil {
		return smarttext.User{}, false, fmt.Errorf("failed to look up user %d: %w", id, err)
	}
	return smarttext.User{ID: u.ID, DisplayName: u.DisplayName, Email: u.Email}, true, nil
}
