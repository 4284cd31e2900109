package modio

import (
	"context"
	"net/url"
	"strconv"
)

// Report describes a resource being reported for infringing or
// inappropriate content.
type Report struct {
	Resource string // "games", "mods" or "users"
	ID       int64
	DMCA     bool
	Name     string
	Summary  string
}

// SubmitReport files a report against a resource.
func (c *Client) SubmitReport(ctx context.Context, report Report) (*Message, error) {
	params := url.Values{
		"resource": {report.Resource},
		"id":       {strconv.FormatInt(report.ID, 10)},
		"name":     {report.Name},
		"summary":  {report.Summary},
	}
	if report.DMCA {
		params.Set("type", "1")
	} else {
		params.Set("type", "0")
	}

	var msg Message
	if err := c.post(ctx, "/report", params, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
