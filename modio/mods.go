package modio

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// ListMods fetches one page of a game's mods.
func (c *Client) ListMods(ctx context.Context, gameID int64, opts *ListOptions) (*List[Mod], error) {
	var list List[Mod]
	path := fmt.Sprintf("/games/%d/mods", gameID)
	if err := c.get(ctx, pathWithOptions(path, opts), &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// IterMods iterates all of a game's mods across pages.
func (c *Client) IterMods(gameID int64, opts *ListOptions) *Iterator[Mod] {
	return newIterator[Mod](c, fmt.Sprintf("/games/%d/mods", gameID), opts)
}

// GetMod fetches a single mod profile, including its primary file.
func (c *Client) GetMod(ctx context.Context, gameID, modID int64) (*Mod, error) {
	var mod Mod
	if err := c.get(ctx, fmt.Sprintf("/games/%d/mods/%d", gameID, modID), &mod); err != nil {
		return nil, err
	}
	return &mod, nil
}

// RateMod submits a positive (+1) or negative (-1) rating for a mod.
// Requires token credentials.
func (c *Client) RateMod(ctx context.Context, gameID, modID int64, rating int) (*Message, error) {
	params := url.Values{"rating": {strconv.Itoa(rating)}}
	var msg Message
	path := fmt.Sprintf("/games/%d/mods/%d/ratings", gameID, modID)
	if err := c.post(ctx, path, params, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

// SubscribeToMod subscribes the authenticated user to a mod. Requires
// token credentials.
func (c *Client) SubscribeToMod(ctx context.Context, gameID, modID int64) (*Mod, error) {
	var mod Mod
	path := fmt.Sprintf("/games/%d/mods/%d/subscribe", gameID, modID)
	if err := c.post(ctx, path, nil, &mod); err != nil {
		return nil, err
	}
	return &mod, nil
}

// UnsubscribeFromMod removes the authenticated user's subscription.
// Requires token credentials.
func (c *Client) UnsubscribeFromMod(ctx context.Context, gameID, modID int64) error {
	path := fmt.Sprintf("/games/%d/mods/%d/subscribe", gameID, modID)
	return c.del(ctx, path, nil)
}
