// Package urlcheck probes whether link and image URLs are reachable and
// caches the answers.
package urlcheck

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/dshills/richedit/internal/logging"
)

// ErrUnreachable is returned when a URL did not answer with a success or
// redirect status.
var ErrUnreachable = errors.New("url unreachable")

// Default probe settings.
const (
	DefaultTimeout = 5 * time.Second
	DefaultTTL     = 10 * time.Minute
)

// Option configures a Checker.
type Option func(*Checker)

// WithTimeout sets the per-probe timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Checker) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithTTL sets how long results are cached.
func WithTTL(d time.Duration) Option {
	return func(c *Checker) {
		if d > 0 {
			c.ttl = d
		}
	}
}

// WithHTTPClient sets the client used for probes.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Checker) {
		if hc != nil {
			c.client = hc
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *logging.Logger) Option {
	return func(c *Checker) {
		if l != nil {
			c.log = l
		}
	}
}

// Checker probes URLs with HEAD, falling back to GET for servers that
// refuse HEAD.
type Checker struct {
	client  *http.Client
	timeout time.Duration
	ttl     time.Duration
	cache   *cache.Cache
	log     *logging.Logger
}

// New creates a Checker.
func New(opts ...Option) *Checker {
	c := &Checker{
		client:  http.DefaultClient,
		timeout: DefaultTimeout,
		ttl:     DefaultTTL,
		log:     logging.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.cache = cache.New(c.ttl, 2*c.ttl)
	return c
}

// Check returns nil when rawURL answered with a status below 400. Data and
// mailto/tel URLs are not probed.
func (c *Checker) Check(ctx context.Context, rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil
	}
	if x, found := c.cache.Get(rawURL); found {
		if ok := x.(bool); ok {
			return nil
		}
		return fmt.Errorf("%w: %s", ErrUnreachable, rawURL)
	}

	status, err := c.probe(ctx, http.MethodHead, rawURL)
	if err == nil && (status == http.StatusMethodNotAllowed || status == http.StatusNotImplemented) {
		status, err = c.probe(ctx, http.MethodGet, rawURL)
	}
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		c.log.Debug("probe %s failed: %v", rawURL, err)
		c.cache.Set(rawURL, false, cache.DefaultExpiration)
		return fmt.Errorf("%w: %v", ErrUnreachable, err)
	}

	ok := status < http.StatusBadRequest
	c.cache.Set(rawURL, ok, cache.DefaultExpiration)
	if !ok {
		return fmt.Errorf("%w: %s returned %d", ErrUnreachable, rawURL, status)
	}
	return nil
}

func (c *Checker) probe(ctx context.Context, method, rawURL string) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, method, rawURL, nil)
	if err != nil {
		return 0, err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return 0, err
	}
	resp.Body.Close()
	return resp.StatusCode, nil
}

// Forget drops the cached result for rawURL.
func (c *Checker) Forget(rawURL string) {
	c.cache.Delete(rawURL)
}

// Cached returns the number of cached results.
func (c *Checker) Cached() int {
	return c.cache.ItemCount()
}
