package newsapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	MsgConnectFailed = "Could not connect to the news server. Is the backend running?"
	MsgSearchFailed  = "Search failed. Is the backend running?"
)

// Article is a backend record. The client never modifies or dedupes them.
type Article struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	URL         string `json:"url"`
	Source      string `json:"source"`
	Image       string `json:"image,omitempty"`
	Published   string `json:"published"`
}

type response struct {
	Articles []Article `json:"articles"`
	Error    string    `json:"error,omitempty"`
}

type Outcome int

const (
	OutcomeError Outcome = iota
	OutcomeEmpty
	OutcomeSuccess
)

func (o Outcome) String() string {
	switch o {
	case OutcomeError:
		return "error"
	case OutcomeEmpty:
		return "empty"
	case OutcomeSuccess:
		return "success"
	}
	return "unknown"
}

// Result is the classified outcome of one request. Message is only set for
// OutcomeError; Articles only for OutcomeSuccess.
type Result struct {
	Outcome  Outcome
	Articles []Article
	Message  string
}

type Client struct {
	base    string
	http    *http.Client
	logger  *zap.Logger
	timeout time.Duration
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

func WithLogger(l *zap.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// WithTimeout bounds each request. Zero leaves only the caller's context.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// New creates a client for an API base such as "http://localhost:5000/api".
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		base:   strings.TrimRight(baseURL, "/"),
		http:   http.DefaultClient,
		logger: zap.NewNop(),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// News fetches articles for one filter key. param is "sector" or "category".
func (c *Client) News(ctx context.Context, param, key string, count int) Result {
	q := url.Values{}
	q.Set(param, key)
	q.Set("count", strconv.Itoa(count))
	return c.get(ctx, c.base+"/news?"+q.Encode(), MsgConnectFailed)
}

// Search runs a free-text query.
func (c *Client) Search(ctx context.Context, query string, count int) Result {
	q := url.Values{}
	q.Set("q", query)
	q.Set("count", strconv.Itoa(count))
	return c.get(ctx, c.base+"/news/search?"+q.Encode(), MsgSearchFailed)
}

func (c *Client) get(ctx context.Context, rawURL, failMsg string) Result {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	start := time.Now()
	body, err := c.do(ctx, rawURL)
	if err != nil {
		c.logger.Warn("news request failed", zap.String("url", rawURL), zap.Error(err))
		return Result{Outcome: OutcomeError, Message: failMsg}
	}

	res := classify(body)
	c.logger.Debug("news request",
		zap.String("url", rawURL),
		zap.Stringer("outcome", res.Outcome),
		zap.Int("articles", len(res.Articles)),
		zap.Duration("latency", time.Since(start)))
	return res
}

func (c *Client) do(ctx context.Context, rawURL string) (*response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	// Error statuses still carry a JSON body with an "error" field.
	var body response
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decoding response (status %d): %w", resp.StatusCode, err)
	}
	return &body, nil
}

// classify maps a decoded body to exactly one outcome.
func classify(body *response) Result {
	switch {
	case body == nil:
		return Result{Outcome: OutcomeError, Message: MsgConnectFailed}
	case body.Error != "":
		return Result{Outcome: OutcomeError, Message: body.Error}
	case len(body.Articles) == 0:
		return Result{Outcome: OutcomeEmpty}
	default:
		return Result{Outcome: OutcomeSuccess, Articles: body.Articles}
	}
}
