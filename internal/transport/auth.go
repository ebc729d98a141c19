package transport

import (
	"fmt"
	"net/http"
)

// Credentials holds the key/secret pair identifying the application and the
// optional per-user token pair. A zero Credentials value produces unsigned,
// public requests.
type Credentials struct {
	Key         string
	Secret      string
	Token       string
	TokenSecret string
}

// Empty reports whether no credential at all was supplied.
func (c Credentials) Empty() bool {
	return c.Key == "" && c.Token == ""
}

// sign attaches authentication to the request. The default scheme is the
// key/token query parameters Trello documents; when both secrets are present
// the OAuth-style Authorization header is sent instead.
func (c Credentials) sign(req *http.Request) {
	if c.Empty() {
		return
	}

	if c.Secret != "" && c.TokenSecret != "" {
		auth := fmt.Sprintf("OAuth oauth_consumer_key=%q, oauth_token=%q", c.Key, c.Token)
		req.Header.Set("Authorization", auth)

		return
	}

	query := req.URL.Query()
	if c.Key != "" {
		query.Set("key", c.Key)
	}

	if c.Token != "" {
		query.Set("token", c.Token)
	}

	req.URL.RawQuery = query.Encode()
}
