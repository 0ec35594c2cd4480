// Package corpus retrieves segment-keyed Vinaya texts and navigation data
// from the SuttaCentral API, with an on-disk response cache so a full
// generation run does not hammer the server twice.
package corpus

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// DefaultBaseURL is the production SuttaCentral API host.
const DefaultBaseURL = "https://suttacentral.net"

// DefaultTextTTL bounds how long a cached rule text is served. The
// translation is still receiving corrections upstream, so rule texts
// expire; menu structure does not.
const DefaultTextTTL = 14 * 24 * time.Hour

// ErrStatus reports a non-200 API response.
var ErrStatus = errors.New("unexpected API response status")

// Client fetches corpus data for one translator's edition.
type Client struct {
	baseURL    string
	translator string
	httpClient *http.Client
	cache      *Cache
	textTTL    time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL points the client at a different API host, primarily for
// tests.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = strings.TrimRight(u, "/") }
}

// WithTranslator selects the translation edition to fetch.
func WithTranslator(t string) Option {
	return func(c *Client) { c.translator = t }
}

// WithCache attaches a response cache. Without one every request goes to
// the network.
func WithCache(cache *Cache) Option {
	return func(c *Client) { c.cache = cache }
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.httpClient = h }
}

// WithTextTTL overrides how long cached rule texts stay fresh.
func WithTextTTL(ttl time.Duration) Option {
	return func(c *Client) { c.textTTL = ttl }
}

// NewClient builds a corpus client. The zero configuration talks to
// production SuttaCentral for Ajahn Brahmali's translation, uncached.
func NewClient(opts ...Option) *Client {
	c := &Client{
		baseURL:    DefaultBaseURL,
		translator: "brahmali",
		httpClient: &http.Client{Timeout: 60 * time.Second},
		textTTL:    DefaultTextTTL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Translator returns the translation edition this client fetches.
func (c *Client) Translator() string { return c.translator }

// getJSON fetches url, serving from cache when fresh, and decodes into v.
func (c *Client) getJSON(ctx context.Context, url string, ttl time.Duration, v any) error {
	if body, ok := c.cache.Get(url, ttl); ok {
		if err := json.Unmarshal(body, v); err == nil {
			return nil
		}
		// A corrupt cache entry falls through to a refetch.
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("building request for %s: %w", url, err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("fetching %s: %w", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: %s from %s", ErrStatus, resp.Status, url)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading %s: %w", url, err)
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("decoding %s: %w", url, err)
	}
	if err := c.cache.Put(url, body); err != nil {
		return err
	}
	return nil
}

// Text fetches the segment-keyed text bundle for one uid (a rule vibhaṅga
// or a whole pātimokkha).
func (c *Client) Text(ctx context.Context, uid string) (*Text, error) {
	url := fmt.Sprintf("%s/api/bilarasuttas/%s/%s?lang=en", c.baseURL, uid, c.translator)
	var t Text
	if err := c.getJSON(ctx, url, c.textTTL, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

// MenuItem is one node of the collection hierarchy: a rule category or an
// individual rule.
type MenuItem struct {
	UID      string     `json:"uid"`
	Name     string     `json:"name"`
	RootName string     `json:"root_name"`
	Children []MenuItem `json:"children"`
}

// Menu returns the children of the named collection node: the rule
// categories of a vibhaṅga, or the rules of a category.
func (c *Client) Menu(ctx context.Context, uid string) ([]MenuItem, error) {
	url := fmt.Sprintf("%s/api/menu/%s?language=en", c.baseURL, uid)
	var items []MenuItem
	if err := c.getJSON(ctx, url, 0, &items); err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: empty menu for %s", ErrStatus, uid)
	}
	return items[0].Children, nil
}

// Parallel is one entry of the parallels_lite response.
type Parallel struct {
	UID  string `json:"uid"`
	Name string `json:"name"`
	To   struct {
		UID string `json:"uid"`
	} `json:"to"`
	Parallels []Parallel `json:"parallels"`
}

// ParallelsLite returns the lightweight parallels listing for uid. For a
// pātimokkha uid this enumerates its rules with their cross-collection
// parallels.
func (c *Client) ParallelsLite(ctx context.Context, uid string) ([]Parallel, error) {
	url := fmt.Sprintf("%s/api/parallels_lite/%s", c.baseURL, uid)
	var items []Parallel
	if err := c.getJSON(ctx, url, 0, &items); err != nil {
		return nil, err
	}
	return items, nil
}
