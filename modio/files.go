package modio

import (
	"context"
	"fmt"
)

// ListModFiles fetches one page of a mod's files.
func (c *Client) ListModFiles(ctx context.Context, gameID, modID int64, opts *ListOptions) (*List[File], error) {
	var list List[File]
	path := fmt.Sprintf("/games/%d/mods/%d/files", gameID, modID)
	if err := c.get(ctx, pathWithOptions(path, opts), &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// IterModFiles iterates all of a mod's files across pages.
func (c *Client) IterModFiles(gameID, modID int64, opts *ListOptions) *Iterator[File] {
	return newIterator[File](c, fmt.Sprintf("/games/%d/mods/%d/files", gameID, modID), opts)
}

// GetModFile fetches a single modfile record.
func (c *Client) GetModFile(ctx context.Context, gameID, modID, fileID int64) (*File, error) {
	var file File
	path := fmt.Sprintf("/games/%d/mods/%d/files/%d", gameID, modID, fileID)
	if err := c.get(ctx, path, &file); err != nil {
		return nil, err
	}
	return &file, nil
}

// AddModFile uploads a new modfile. The form must carry a "filedata"
// zip part; version, changelog and active flags are optional fields.
// Requires token credentials.
func (c *Client) AddModFile(ctx context.Context, gameID, modID int64, form *Form) (*File, error) {
	var file File
	path := fmt.Sprintf("/games/%d/mods/%d/files", gameID, modID)
	if err := c.postForm(ctx, path, form, &file); err != nil {
		return nil, err
	}
	return &file, nil
}
