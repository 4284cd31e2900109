package modio

import "context"

// AuthenticatedUser fetches the user tied to the current credentials.
// Requires token credentials.
func (c *Client) AuthenticatedUser(ctx context.Context) (*User, error) {
	var user User
	if err := c.get(ctx, "/me", &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// IterSubscriptions iterates the mods the authenticated user is
// subscribed to. Requires token credentials.
func (c *Client) IterSubscriptions(opts *ListOptions) *Iterator[Mod] {
	return newIterator[Mod](c, "/me/subscribed", opts)
}
