// Package httpclient provides the restricted HTTP client used to talk
// to the local wallet daemon.
package httpclient

import (
	"net/http"
	"net/url"
	"time"

	"github.com/polarismusic/navigator/errors"
)

// Client wraps http.Client with a scheme allowlist and a redirect cap.
// The wallet daemon normally runs on loopback; redirects away from it
// are almost certainly misconfiguration, so they are tightly bounded.
type Client struct {
	*http.Client
	allowedSchemes []string
	maxRedirects   int
}

// New creates a restricted HTTP client with the given timeout.
func New(timeout time.Duration) *Client {
	client := &Client{
		Client: &http.Client{
			Timeout: timeout,
		},
		allowedSchemes: []string{"http", "https"},
		maxRedirects:   3,
	}

	client.CheckRedirect = func(req *http.Request, via []*http.Request) error {
		if len(via) >= client.maxRedirects {
			return errors.Newf("stopped after %d redirects", client.maxRedirects)
		}
		if err := client.ValidateURL(req.URL); err != nil {
			return errors.Wrap(err, "redirect blocked")
		}
		return nil
	}

	return client
}

// ValidateURL checks that a URL uses an allowed scheme and names a host.
func (c *Client) ValidateURL(u *url.URL) error {
	if u == nil {
		return errors.New("nil URL")
	}

	allowed := false
	for _, scheme := range c.allowedSchemes {
		if u.Scheme == scheme {
			allowed = true
			break
		}
	}
	if !allowed {
		return errors.Newf("scheme %q not allowed", u.Scheme)
	}

	if u.Host == "" {
		return errors.New("URL has no host")
	}
	return nil
}
