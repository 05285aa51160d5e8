// Package pastebin creates pastes through the Pastebin API.
package pastebin

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// DefaultEndpoint is the Pastebin API endpoint for creating pastes.
const DefaultEndpoint = "https://pastebin.com/api/api_post.php"

// DefaultUserAgent is the User-Agent sent when the client doesn't set one.
const DefaultUserAgent = "TwitchPaster/0.1"

// Client holds the context for requests to the Pastebin API.
type Client struct {
	// HTTP is the HTTP client for performing requests.
	// If nil, http.DefaultClient is used.
	HTTP *http.Client
	// Key is the developer API key.
	Key string
	// Endpoint is the paste creation URL. If empty, DefaultEndpoint is used.
	Endpoint string
	// UserAgent is the User-Agent header. If empty, DefaultUserAgent is used.
	UserAgent string
}

// Submit creates a paste and returns its URL. Errors are always of type
// *Error. Submit does not retry failed requests.
func (c *Client) Submit(ctx context.Context, r Request) (string, error) {
	ep := c.Endpoint
	if ep == "" {
		ep = DefaultEndpoint
	}
	body := strings.NewReader(r.form(c.Key).Encode())
	req, err := http.NewRequestWithContext(ctx, "POST", ep, body)
	if err != nil {
		return "", &Error{Kind: Network, Err: fmt.Errorf("couldn't make request: %w", err)}
	}
	ua := c.UserAgent
	if ua == "" {
		ua = DefaultUserAgent
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", ua)
	req.Header.Set("Cache-Control", "no-cache")
	hc := c.HTTP
	if hc == nil {
		hc = http.DefaultClient
	}
	resp, err := hc.Do(req)
	if err != nil {
		return "", &Error{Kind: Network, Err: err}
	}
	defer resp.Body.Close()
	b, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err != nil {
		return "", &Error{Kind: Network, Err: fmt.Errorf("couldn't read response: %w", err)}
	}
	return classify(resp.StatusCode, string(b))
}

// classify interprets a Pastebin API response.
func classify(status int, body string) (string, error) {
	switch {
	case status != http.StatusOK:
		return "", &Error{Kind: UnexpectedStatus, Detail: fmt.Sprintf("%d %s", status, http.StatusText(status))}
	case body == "":
		return "", &Error{Kind: EmptyResponse}
	case strings.Contains(body, "Bad API request"):
		return "", &Error{Kind: BadRequest, Detail: body}
	case strings.Contains(body, "Post limit"):
		return "", &Error{Kind: PostLimit, Detail: body}
	case strings.HasPrefix(body, "http"):
		return strings.TrimSpace(body), nil
	default:
		return "", &Error{Kind: Unknown, Detail: body}
	}
}
