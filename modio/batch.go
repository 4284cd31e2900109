package modio

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"
)

// DefaultDownloadConcurrency bounds how many downloads run at once when
// the caller does not say otherwise.
const DefaultDownloadConcurrency = 4

// DownloadRequest pairs a download action with its destination path.
type DownloadRequest struct {
	Action DownloadAction
	Path   string
}

// DownloadResult reports the outcome of one request in a batch.
type DownloadResult struct {
	Path    string
	Written int64
	Err     error
}

// Failed reports whether the download did not complete.
func (r DownloadResult) Failed() bool { return r.Err != nil }

// DownloadEach runs several downloads with bounded concurrency. Each
// download itself is a sequential chain of resolution and redirect
// steps; only distinct requests run in parallel. Individual failures do
// not stop the batch, but a cancelled context does. Results are returned
// in request order.
func (c *Client) DownloadEach(ctx context.Context, reqs []DownloadRequest, concurrency int) []DownloadResult {
	results := make([]DownloadResult, len(reqs))
	if len(reqs) == 0 {
		return results
	}
	if concurrency <= 0 {
		concurrency = DefaultDownloadConcurrency
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i, req := range reqs {
		i, req := i, req
		g.Go(func() error {
			written, err := c.downloadToFile(ctx, req.Action, req.Path)
			results[i] = DownloadResult{Path: req.Path, Written: written, Err: err}
			if err != nil {
				c.logger.Warn().Err(err).Str("path", req.Path).Msg("download failed")
			}
			// Individual errors are collected, not propagated, so the
			// group only stops on context cancellation.
			return ctx.Err()
		})
	}

	g.Wait()
	return results
}

// downloadToFile streams a download into a temp file next to the
// destination and renames it into place on success.
func (c *Client) downloadToFile(ctx context.Context, action DownloadAction, dest string) (int64, error) {
	if dest == "" {
		return 0, &BuilderError{Err: fmt.Errorf("destination path must not be empty")}
	}
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return 0, err
	}

	tmp, err := os.CreateTemp(filepath.Dir(dest), filepath.Base(dest)+".*.partial")
	if err != nil {
		return 0, err
	}

	written, err := c.Download(ctx, action, tmp)
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(tmp.Name())
		return written, err
	}

	if err := os.Rename(tmp.Name(), dest); err != nil {
		os.Remove(tmp.Name())
		return written, err
	}
	return written, nil
}
