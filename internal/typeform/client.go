package typeform

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// DefaultBaseURL is the public Typeform API endpoint.
const DefaultBaseURL = "https://api.typeform.com"

const (
	// formsPageSize is the listing page size requested from /forms.
	formsPageSize = 200

	// ResponsePageSize is the single-page maximum the responses endpoint
	// accepts. Response sets at or above this size need pagination this
	// tool does not implement; the caller's volume guard refuses them.
	ResponsePageSize = 1000
)

// Client talks to the Typeform API with a personal access token.
// All calls are synchronous; failures are returned to the caller and
// never retried.
type Client struct {
	baseURL string
	token   string

	http *http.Client
}

// NewClient creates a Client. baseURL may be empty, in which case the
// public API endpoint is used.
func NewClient(baseURL, token string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

// ListForms fetches one page of the forms listing. Pages are 1-based.
func (c *Client) ListForms(ctx context.Context, page int) (*FormPage, error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("page_size", strconv.Itoa(formsPageSize))

	body, err := c.get(ctx, "/forms", q)
	if err != nil {
		return nil, fmt.Errorf("list forms: %w", err)
	}

	var p FormPage
	if err := json.Unmarshal(body, &p); err != nil {
		return nil, fmt.Errorf("list forms: decode: %w", err)
	}
	return &p, nil
}

// GetForm fetches the full definition of a single form. The payload is
// opaque to this tool and stored verbatim, so it stays raw JSON.
func (c *Client) GetForm(ctx context.Context, id string) (json.RawMessage, error) {
	body, err := c.get(ctx, "/forms/"+url.PathEscape(id), nil)
	if err != nil {
		return nil, fmt.Errorf("get form %s: %w", id, err)
	}
	if !json.Valid(body) {
		return nil, fmt.Errorf("get form %s: response is not valid JSON", id)
	}
	return json.RawMessage(body), nil
}

// ListResponses fetches the responses for a form in a single page of up to
// ResponsePageSize entries.
func (c *Client) ListResponses(ctx context.Context, id string) (*ResponseSet, error) {
	q := url.Values{}
	q.Set("page_size", strconv.Itoa(ResponsePageSize))

	body, err := c.get(ctx, "/forms/"+url.PathEscape(id)+"/responses", q)
	if err != nil {
		return nil, fmt.Errorf("list responses %s: %w", id, err)
	}

	var rs ResponseSet
	if err := json.Unmarshal(body, &rs); err != nil {
		return nil, fmt.Errorf("list responses %s: decode: %w", id, err)
	}
	return &rs, nil
}

// get performs an authenticated GET and returns the response body.
func (c *Client) get(ctx context.Context, path string, query url.Values) ([]byte, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return body, nil
}
