package modio

import (
	"context"
	"fmt"
)

// ListGames fetches one page of game profiles.
func (c *Client) ListGames(ctx context.Context, opts *ListOptions) (*List[Game], error) {
	var list List[Game]
	if err := c.get(ctx, pathWithOptions("/games", opts), &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// IterGames iterates all game profiles across pages.
func (c *Client) IterGames(opts *ListOptions) *Iterator[Game] {
	return newIterator[Game](c, "/games", opts)
}

// GetGame fetches a single game profile.
func (c *Client) GetGame(ctx context.Context, gameID int64) (*Game, error) {
	var game Game
	if err := c.get(ctx, fmt.Sprintf("/games/%d", gameID), &game); err != nil {
		return nil, err
	}
	return &game, nil
}
