package feed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"gitlab.com/nevasik7/alerting/logger"
)

// The two failure kinds a poll cycle distinguishes. Both are non-fatal:
// the next scheduled cycle is the retry.
var (
	ErrUnavailable = errors.New("feed unavailable")
	ErrDecode      = errors.New("feed decode failed")
)

const defaultBaseURL = "https://api.dexscreener.com"

type Config struct {
	BaseURL   string        `yaml:"base_url"`
	Timeout   time.Duration `yaml:"timeout"`
	UserAgent string        `yaml:"user_agent"`
}

// Client issues keyword searches against the market-data feed.
// Safe for concurrent use; the underlying http.Client is reused.
type Client struct {
	log       logger.Logger
	http      *http.Client
	baseURL   string
	userAgent string
}

func NewClient(log logger.Logger, cfg *Config) *Client {
	base := defaultBaseURL
	timeout := 15 * time.Second
	ua := "sniperscope/1.0"

	if cfg != nil {
		if cfg.BaseURL != "" {
			base = cfg.BaseURL
		}
		if cfg.Timeout > 0 {
			timeout = cfg.Timeout
		}
		if cfg.UserAgent != "" {
			ua = cfg.UserAgent
		}
	}

	return &Client{
		log:       log,
		http:      &http.Client{Timeout: timeout},
		baseURL:   base,
		userAgent: ua,
	}
}

// Search runs one keyword query and returns the decoded candidate pairs.
// A "no results" response is an empty slice, not an error. Any missing
// optional sub-object decodes to nil and never aborts sibling pairs.
func (c *Client) Search(ctx context.Context, keyword string) ([]Pair, error) {
	u := fmt.Sprintf("%s/latest/dex/search?q=%s", c.baseURL, url.QueryEscape(keyword))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %v", ErrUnavailable, err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", ErrDecode, err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", ErrDecode, resp.StatusCode)
	}

	var out SearchResponse
	if err = json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	c.log.Debugf("Feed search q=%s returned %d pairs", keyword, len(out.Pairs))
	return out.Pairs, nil
}
