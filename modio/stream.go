package modio

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

// Iterator walks a multi-page listing as one lazy sequence. It is
// forward-only and cannot be restarted; construct a new one to iterate
// again. The number of items yielded equals the total reported by the
// first page, regardless of what later pages claim.
//
//	it := client.IterMods(gameID, nil)
//	for it.Next(ctx) {
//		mod := it.Item()
//		...
//	}
//	if err := it.Err(); err != nil {
//		...
//	}
type Iterator[T any] struct {
	c   *Client
	url string

	started   bool
	pageURL   *url.URL
	buf       []T // reverse-ordered, popped from the end
	offset    uint
	limit     uint
	remaining uint

	item T
	err  error
}

// newIterator prepares an iterator over a listing endpoint. The first
// page is fetched on the first call to Next.
func newIterator[T any](c *Client, path string, opts *ListOptions) *Iterator[T] {
	return &Iterator[T]{c: c, url: c.host + pathWithOptions(path, opts)}
}

// Next advances the iterator, fetching further pages as needed. It
// returns false when the sequence is exhausted or a fetch failed; the
// two cases are told apart through Err.
func (it *Iterator[T]) Next(ctx context.Context) bool {
	if it.err != nil {
		return false
	}

	if !it.started {
		it.started = true
		finalURL, list, err := fetchPage[T](ctx, it.c, it.url)
		if err != nil {
			it.err = err
			return false
		}
		it.pageURL = finalURL
		it.buf = reverse(list.Data)
		it.offset = list.Offset
		it.limit = list.Limit
		it.remaining = list.Total
	}

	if len(it.buf) > 0 {
		it.item = it.buf[len(it.buf)-1]
		it.buf = it.buf[:len(it.buf)-1]
		it.remaining--
		return true
	}

	if it.remaining == 0 {
		return false
	}

	next := it.nextPageURL()
	finalURL, list, err := fetchPage[T](ctx, it.c, next)
	if err != nil {
		it.err = err
		return false
	}
	if len(list.Data) == 0 {
		// The server returned fewer items than the first page's total
		// promised; nothing left to yield.
		it.remaining = 0
		return false
	}

	it.pageURL = finalURL
	it.offset += it.limit
	it.item = list.Data[0]
	it.buf = reverse(list.Data[1:])
	it.remaining--
	return true
}

// Item returns the item produced by the last successful call to Next.
func (it *Iterator[T]) Item() T { return it.item }

// Err returns the error that terminated the iteration, if any.
func (it *Iterator[T]) Err() error { return it.err }

// Collect drains the remaining sequence into a slice.
func (it *Iterator[T]) Collect(ctx context.Context) ([]T, error) {
	var items []T
	for it.Next(ctx) {
		items = append(items, it.Item())
	}
	return items, it.Err()
}

// nextPageURL rebuilds the previous page's URL with the offset parameter
// advanced by one page. Existing query parameters are carried over as an
// ordered mapping, so credential parameters injected by the dispatcher
// survive the rewrite.
func (it *Iterator[T]) nextPageURL() string {
	u := *it.pageURL
	q := u.Query()
	q.Set(paramOffset, strconv.FormatUint(uint64(it.offset+it.limit), 10))
	u.RawQuery = q.Encode()
	return u.String()
}

func fetchPage[T any](ctx context.Context, c *Client, rawurl string) (*url.URL, *List[T], error) {
	var list List[T]
	finalURL, err := c.request(ctx, http.MethodGet, rawurl, emptyBody, &list)
	if err != nil {
		return nil, nil, err
	}
	c.logger.Debug().
		Uint("offset", list.Offset).
		Uint("limit", list.Limit).
		Uint("total", list.Total).
		Int("count", len(list.Data)).
		Msg("fetched page")
	return finalURL, &list, nil
}

// reverse returns the items back to front so the iterator can pop from
// the end in O(1).
func reverse[T any](items []T) []T {
	out := make([]T, len(items))
	for i, item := range items {
		out[len(items)-1-i] = item
	}
	return out
}
