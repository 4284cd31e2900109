package modio

import (
	"net/url"
	"strconv"
	"strings"
)

// Reserved query parameter names understood by every listing endpoint.
const (
	paramSort   = "_sort"
	paramLimit  = "_limit"
	paramOffset = "_offset"
)

// ListOptions builds the filter, sort and paging query parameters of a
// listing request. The zero value selects the server defaults.
type ListOptions struct {
	params url.Values
}

// NewListOptions returns an empty set of listing options.
func NewListOptions() *ListOptions {
	return &ListOptions{params: url.Values{}}
}

func (o *ListOptions) set(key, value string) *ListOptions {
	if o.params == nil {
		o.params = url.Values{}
	}
	o.params.Set(key, value)
	return o
}

// Equals filters on field = value.
func (o *ListOptions) Equals(field, value string) *ListOptions {
	return o.set(field, value)
}

// NotEquals filters on field != value.
func (o *ListOptions) NotEquals(field, value string) *ListOptions {
	return o.set(field+"-not", value)
}

// Like filters on a wildcard match, with "*" matching any sequence.
func (o *ListOptions) Like(field, pattern string) *ListOptions {
	return o.set(field+"-lk", pattern)
}

// In filters on membership in a value set.
func (o *ListOptions) In(field string, values ...string) *ListOptions {
	return o.set(field+"-in", strings.Join(values, ","))
}

// Min filters on field >= value.
func (o *ListOptions) Min(field string, value int64) *ListOptions {
	return o.set(field+"-min", strconv.FormatInt(value, 10))
}

// Max filters on field <= value.
func (o *ListOptions) Max(field string, value int64) *ListOptions {
	return o.set(field+"-max", strconv.FormatInt(value, 10))
}

// FullTextSearch matches the query against all searchable columns.
func (o *ListOptions) FullTextSearch(query string) *ListOptions {
	return o.set("_q", query)
}

// SortAsc sorts results by field in ascending order.
func (o *ListOptions) SortAsc(field string) *ListOptions {
	return o.set(paramSort, field)
}

// SortDesc sorts results by field in descending order.
func (o *ListOptions) SortDesc(field string) *ListOptions {
	return o.set(paramSort, "-"+field)
}

// Limit caps the number of results per page.
func (o *ListOptions) Limit(n uint) *ListOptions {
	return o.set(paramLimit, strconv.FormatUint(uint64(n), 10))
}

// Offset skips the first n results.
func (o *ListOptions) Offset(n uint) *ListOptions {
	return o.set(paramOffset, strconv.FormatUint(uint64(n), 10))
}

// encode serializes the options as a query string, empty when no options
// are set.
func (o *ListOptions) encode() string {
	if o == nil || len(o.params) == 0 {
		return ""
	}
	return o.params.Encode()
}

// pathWithOptions appends encoded options to an endpoint path.
func pathWithOptions(path string, opts *ListOptions) string {
	if q := opts.encode(); q != "" {
		return path + "?" + q
	}
	return path
}
