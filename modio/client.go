package modio

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// API hosts. DefaultHost is the production endpoint, TestHost the
// sandboxed test environment.
const (
	DefaultHost = "https://api.mod.io/v1"
	TestHost    = "https://api.test.mod.io/v1"
)

type credentialKind int

const (
	credNone credentialKind = iota
	credAPIKey
	credToken
)

// Credentials selects how requests are authenticated: an API key sent as
// a query parameter, an OAuth access token sent as a bearer header, or
// nothing. The two kinds are mutually exclusive per client.
type Credentials struct {
	kind  credentialKind
	value string
}

// APIKey authenticates with a read-only API key.
func APIKey(key string) Credentials {
	return Credentials{kind: credAPIKey, value: key}
}

// Token authenticates with an OAuth 2 access token.
func Token(token string) Credentials {
	return Credentials{kind: credToken, value: token}
}

// Client talks to the mod.io REST API. Its configuration is immutable
// after construction and a single client is safe for concurrent use.
type Client struct {
	host     string
	agent    string
	creds    Credentials
	http     *http.Client
	download *http.Client
	logger   zerolog.Logger
}

// Option configures a Client.
type Option func(*clientOptions)

type clientOptions struct {
	host       string
	httpClient *http.Client
	timeout    time.Duration
	logger     *zerolog.Logger
}

// WithHost points the client at a different API host, such as TestHost.
func WithHost(host string) Option {
	return func(o *clientOptions) {
		o.host = strings.TrimRight(host, "/")
	}
}

// WithHTTPClient supplies a custom *http.Client as the transport.
func WithHTTPClient(c *http.Client) Option {
	return func(o *clientOptions) {
		o.httpClient = c
	}
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(o *clientOptions) {
		o.timeout = timeout
	}
}

// WithLogger attaches a logger. Without it the client is silent.
func WithLogger(logger zerolog.Logger) Option {
	return func(o *clientOptions) {
		o.logger = &logger
	}
}

// NewClient creates a client for the production API host. The agent
// string is sent as the User-Agent header on every request.
func NewClient(agent string, creds Credentials, opts ...Option) (*Client, error) {
	if agent == "" {
		return nil, fmt.Errorf("user agent is required")
	}

	options := clientOptions{host: DefaultHost}
	for _, opt := range opts {
		opt(&options)
	}

	httpClient := options.httpClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	if options.timeout > 0 {
		httpClient.Timeout = options.timeout
	}

	// Downloads follow Location headers themselves so that redirect
	// targets are requested verbatim, without credential injection.
	downloadClient := &http.Client{
		Transport: httpClient.Transport,
		Timeout:   httpClient.Timeout,
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}

	logger := zerolog.Nop()
	if options.logger != nil {
		logger = *options.logger
	}

	return &Client{
		host:     options.host,
		agent:    agent,
		creds:    creds,
		http:     httpClient,
		download: downloadClient,
		logger:   logger,
	}, nil
}

// WithCredentials returns a copy of the client using different
// credentials. The receiver is left untouched.
func (c *Client) WithCredentials(creds Credentials) *Client {
	derived := *c
	derived.creds = creds
	return &derived
}

// Host returns the API host the client is bound to.
func (c *Client) Host() string { return c.host }

// requestBody is the payload variant attached to an outgoing request:
// nothing, pre-encoded bytes with a content type, or a multipart form.
type requestBody struct {
	build func() (io.Reader, string, error)
}

var emptyBody = requestBody{}

func encodedBody(data string, contentType string) requestBody {
	return requestBody{build: func() (io.Reader, string, error) {
		return strings.NewReader(data), contentType, nil
	}}
}

func paramsBody(params url.Values) requestBody {
	if params == nil {
		return emptyBody
	}
	return encodedBody(params.Encode(), "application/x-www-form-urlencoded")
}

func multipartBody(form *Form) requestBody {
	return requestBody{build: form.encode}
}

// request executes one HTTP exchange: credential injection, dispatch,
// rate-limit header inspection and outcome classification. The URL the
// request was actually sent to is returned so that pagination can rebuild
// follow-up URLs from it. out may be nil to discard the body.
func (c *Client) request(ctx context.Context, method, rawurl string, body requestBody, out any) (*url.URL, error) {
	u, err := url.Parse(rawurl)
	if err != nil {
		return nil, &BuilderError{Err: err}
	}
	if c.creds.kind == credAPIKey {
		q := u.Query()
		q.Set("api_key", c.creds.value)
		u.RawQuery = q.Encode()
	}

	var reader io.Reader
	var contentType string
	if body.build != nil {
		reader, contentType, err = body.build()
		if err != nil {
			return nil, &BuilderError{Err: err}
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), reader)
	if err != nil {
		return nil, &BuilderError{Err: err}
	}
	req.Header.Set("User-Agent", c.agent)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if c.creds.kind == credToken {
		req.Header.Set("Authorization", "Bearer "+c.creds.value)
	}

	c.logger.Debug().Str("method", method).Str("url", u.Redacted()).Msg("API request")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &RequestError{Err: err}
	}
	defer resp.Body.Close()

	rate := parseRateLimit(resp.Header)

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &RequestError{Err: err}
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if out == nil {
			return u, nil
		}
		if err := json.Unmarshal(data, out); err != nil {
			return u, &DecodeError{Err: err}
		}
		return u, nil
	}

	// An exhausted rate limit classifies without looking at the body,
	// which need not be a valid error envelope in that case.
	if rate.exhausted() {
		return u, classify(resp.StatusCode, rate, ErrorEnvelope{})
	}

	var er errorResponse
	if err := json.Unmarshal(data, &er); err != nil {
		return u, &DecodeError{Err: err}
	}
	return u, classify(resp.StatusCode, rate, er.Error)
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	_, err := c.request(ctx, http.MethodGet, c.host+path, emptyBody, out)
	return err
}

func (c *Client) post(ctx context.Context, path string, params url.Values, out any) error {
	_, err := c.request(ctx, http.MethodPost, c.host+path, paramsBody(params), out)
	return err
}

func (c *Client) put(ctx context.Context, path string, params url.Values, out any) error {
	_, err := c.request(ctx, http.MethodPut, c.host+path, paramsBody(params), out)
	return err
}

func (c *Client) postForm(ctx context.Context, path string, form *Form, out any) error {
	_, err := c.request(ctx, http.MethodPost, c.host+path, multipartBody(form), out)
	return err
}

// del issues a DELETE. Some DELETE endpoints answer success with an empty
// or non-JSON body, so a decode failure counts as success here; a
// decodable error envelope still classifies normally.
func (c *Client) del(ctx context.Context, path string, params url.Values) error {
	var out Message
	_, err := c.request(ctx, http.MethodDelete, c.host+path, paramsBody(params), &out)
	if IsDecode(err) {
		return nil
	}
	return err
}
