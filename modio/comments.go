package modio

import (
	"context"
	"fmt"
)

// ListModComments fetches one page of a mod's comments.
func (c *Client) ListModComments(ctx context.Context, gameID, modID int64, opts *ListOptions) (*List[Comment], error) {
	var list List[Comment]
	path := fmt.Sprintf("/games/%d/mods/%d/comments", gameID, modID)
	if err := c.get(ctx, pathWithOptions(path, opts), &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// IterModComments iterates all of a mod's comments across pages.
func (c *Client) IterModComments(gameID, modID int64, opts *ListOptions) *Iterator[Comment] {
	return newIterator[Comment](c, fmt.Sprintf("/games/%d/mods/%d/comments", gameID, modID), opts)
}

// DeleteModComment removes a comment. Requires token credentials of the
// comment's author or a team member.
func (c *Client) DeleteModComment(ctx context.Context, gameID, modID, commentID int64) error {
	path := fmt.Sprintf("/games/%d/mods/%d/comments/%d", gameID, modID, commentID)
	return c.del(ctx, path, nil)
}
