package modio

import (
	"context"
	"io"
	"net/http"
)

// maxRedirects bounds how many Location hops a download will chase.
const maxRedirects = 10

// ResolvePolicy decides what happens when a version download matches
// more than one file.
type ResolvePolicy int

const (
	// Latest picks the most recently added matching file.
	Latest ResolvePolicy = iota
	// Fail aborts with a MultipleFilesFound download error.
	Fail
)

// DownloadAction is a logical request for mod binary content, prior to
// URL resolution. The concrete actions are DownloadPrimary,
// DownloadFile, DownloadVersion and DownloadURL.
type DownloadAction interface {
	downloadAction()
}

// DownloadPrimary downloads the primary file of a mod.
type DownloadPrimary struct {
	GameID int64
	ModID  int64
}

// DownloadFile downloads a specific modfile.
type DownloadFile struct {
	GameID int64
	ModID  int64
	FileID int64
}

// DownloadVersion downloads the file matching a version, applying the
// policy when the version is ambiguous.
type DownloadVersion struct {
	GameID  int64
	ModID   int64
	Version string
	Policy  ResolvePolicy
}

// DownloadURL streams directly from a known binary URL, bypassing all
// metadata lookups.
type DownloadURL struct {
	URL string
}

func (DownloadPrimary) downloadAction() {}
func (DownloadFile) downloadAction()    {}
func (DownloadVersion) downloadAction() {}
func (DownloadURL) downloadAction()     {}

// Download resolves the action to a binary URL and streams its content
// into w, following redirects. It returns the number of bytes written.
// The writer is only ever appended to; on failure nothing beyond the
// last fully written chunk has been touched.
func (c *Client) Download(ctx context.Context, action DownloadAction, w io.Writer) (int64, error) {
	switch a := action.(type) {
	case DownloadPrimary:
		mod, err := c.GetMod(ctx, a.GameID, a.ModID)
		if err != nil {
			return 0, err
		}
		if mod.Modfile == nil {
			return 0, &DownloadError{Reason: NoPrimaryFile, GameID: a.GameID, ModID: a.ModID}
		}
		return c.streamFile(ctx, mod.Modfile.Download.BinaryURL, w)

	case DownloadFile:
		file, err := c.GetModFile(ctx, a.GameID, a.ModID, a.FileID)
		if err != nil {
			if code, ok := Status(err); ok && code == http.StatusNotFound {
				return 0, &DownloadError{
					Reason: FileNotFound,
					GameID: a.GameID,
					ModID:  a.ModID,
					FileID: a.FileID,
				}
			}
			return 0, err
		}
		return c.streamFile(ctx, file.Download.BinaryURL, w)

	case DownloadVersion:
		return c.downloadVersion(ctx, a, w)

	case DownloadURL:
		return c.streamFile(ctx, a.URL, w)
	}

	// The action interface is sealed; no other types exist.
	panic("modio: unknown download action")
}

// downloadVersion lists files matching the version, newest first, capped
// to two results: enough to detect ambiguity without over-fetching.
func (c *Client) downloadVersion(ctx context.Context, a DownloadVersion, w io.Writer) (int64, error) {
	opts := NewListOptions().
		Equals("version", a.Version).
		SortDesc("date_added").
		Limit(2)

	list, err := c.ListModFiles(ctx, a.GameID, a.ModID, opts)
	if err != nil {
		return 0, err
	}

	fail := func(reason DownloadReason) (int64, error) {
		return 0, &DownloadError{
			Reason:  reason,
			GameID:  a.GameID,
			ModID:   a.ModID,
			Version: a.Version,
		}
	}

	switch {
	case len(list.Data) == 0:
		return fail(VersionNotFound)
	case len(list.Data) == 1 || a.Policy == Latest:
		return c.streamFile(ctx, list.Data[0].Download.BinaryURL, w)
	default:
		return fail(MultipleFilesFound)
	}
}

// streamFile issues a plain GET against a binary URL and copies the body
// into w. Binary URLs are pre-signed, so no credentials are injected and
// redirect targets are followed verbatim.
func (c *Client) streamFile(ctx context.Context, rawurl string, w io.Writer) (int64, error) {
	var written int64

	for hops := 0; ; hops++ {
		if hops > maxRedirects {
			return written, &RequestError{Err: ErrTooManyRedirects}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawurl, nil)
		if err != nil {
			return written, &BuilderError{Err: err}
		}
		req.Header.Set("User-Agent", c.agent)

		resp, err := c.download.Do(req)
		if err != nil {
			return written, &RequestError{Err: err}
		}

		switch resp.StatusCode {
		case http.StatusMovedPermanently, http.StatusFound, http.StatusTemporaryRedirect:
			location := resp.Header.Get("Location")
			if location != "" {
				next, perr := resp.Request.URL.Parse(location)
				resp.Body.Close()
				if perr != nil {
					return written, &BuilderError{Err: perr}
				}
				c.logger.Debug().Str("location", next.String()).Msg("following download redirect")
				rawurl = next.String()
				continue
			}
		}

		n, err := io.Copy(w, resp.Body)
		written += n
		resp.Body.Close()
		if err != nil {
			return written, &RequestError{Err: err}
		}

		c.logger.Debug().Int64("bytes", written).Msg("download complete")
		return written, nil
	}
}
