package modio

import (
	"context"
	"net/url"
)

// RequestEmailCode asks the API to mail a 5-character security code to
// the address. Requires api-key credentials.
func (c *Client) RequestEmailCode(ctx context.Context, email string) (*Message, error) {
	params := url.Values{"email": {email}}
	var msg Message
	if err := c.post(ctx, "/oauth/emailrequest", params, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

// ExchangeEmailCode trades a mailed security code for an OAuth access
// token. Requires api-key credentials; the returned token is used with
// Token credentials afterwards.
func (c *Client) ExchangeEmailCode(ctx context.Context, code string) (*AccessToken, error) {
	params := url.Values{"security_code": {code}}
	var token AccessToken
	if err := c.post(ctx, "/oauth/emailexchange", params, &token); err != nil {
		return nil, err
	}
	return &token, nil
}

// Terms holds the Terms of Use text the user must accept before an
// external authentication flow may continue.
type Terms struct {
	Plaintext string `json:"plaintext"`
	HTML      string `json:"html"`
}

// GetTerms fetches the Terms of Use. A 403 with the terms error
// reference from an external auth endpoint (see
// IsTermsAcceptanceRequired) means these must be shown and accepted.
func (c *Client) GetTerms(ctx context.Context) (*Terms, error) {
	var terms Terms
	if err := c.get(ctx, "/authenticate/terms", &terms); err != nil {
		return nil, err
	}
	return &terms, nil
}
