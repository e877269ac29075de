// Package iohttp implements the transport collaborator: paginated tabular
// JSON retrieval from the checklist web service over HTTP.
//
// Pagination is transparent to callers: Fetch keeps requesting pages until
// a short page arrives and returns the concatenated rows. Transient
// failures (network errors, 5xx responses) are retried with exponential
// backoff; the core above never retries.
package iohttp

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/cheggaaa/pb/v3"
	"github.com/gnames/gnflora/pkg/config"
	"github.com/gnames/gnflora/pkg/flora"
	"github.com/gnames/gnfmt"
	"github.com/google/uuid"
)

// Cache stores fetched responses between runs. Implemented by iocache;
// a nil Cache disables caching.
type Cache interface {
	// Get loads a cached value into v; the boolean is false on a miss
	// or an expired entry.
	Get(key string, v any) (bool, error)

	// Set stores a value under the key.
	Set(key string, v any) error
}

// Client fetches tabular JSON from the data service. It implements
// flora.Fetcher.
type Client struct {
	cfg      *config.Config
	http     *http.Client
	cache    Cache
	progress bool
}

var _ flora.Fetcher = (*Client)(nil)

// New creates a transport client. cache may be nil.
func New(cfg *config.Config, cache Cache) *Client {
	return &Client{
		cfg:   cfg,
		http:  &http.Client{Timeout: cfg.API.Timeout},
		cache: cache,
	}
}

// WithProgress enables a progress bar for multi-page fetches. Meant for
// interactive CLI use only.
func (c *Client) WithProgress() *Client {
	c.progress = true
	return c
}

// Fetch returns all rows of the named query. The configured API version is
// sent with every request; pagination uses startat/limit parameters with
// the configured page size.
func (c *Client) Fetch(
	ctx context.Context,
	query string,
	params url.Values,
) ([]flora.Row, error) {
	key := cacheKey(c.cfg.API.Version, query, params)
	if c.cache != nil {
		var rows []flora.Row
		ok, err := c.cache.Get(key, &rows)
		if err != nil {
			slog.Warn("Response cache read failed", "error", err)
		} else if ok {
			slog.Debug("Response cache hit", "query", query)
			return rows, nil
		}
	}

	reqID := uuid.NewString()
	start := time.Now()
	pageSize := c.cfg.API.PageSize

	var rows []flora.Row
	var bar *pb.ProgressBar

	for page := 0; ; page++ {
		pageParams := url.Values{}
		for k, vs := range params {
			pageParams[k] = vs
		}
		pageParams.Set("v", c.cfg.API.Version)
		pageParams.Set("startat", strconv.Itoa(page*pageSize))
		pageParams.Set("limit", strconv.Itoa(pageSize))

		pageRows, err := c.fetchPage(ctx, query, pageParams, reqID)
		if err != nil {
			if bar != nil {
				bar.Finish()
			}
			return nil, err
		}

		rows = append(rows, pageRows...)

		if len(pageRows) < pageSize {
			break
		}

		if c.progress && bar == nil {
			bar = newProgressBar(query)
		}
		if bar != nil {
			bar.Add(len(pageRows))
		}
	}

	if bar != nil {
		bar.Finish()
	}

	slog.Debug("Fetched query",
		"query", query,
		"rows", len(rows),
		"request_id", reqID,
		"duration", gnfmt.TimeString(time.Since(start).Seconds()),
	)

	if c.cache != nil {
		if err := c.cache.Set(key, rows); err != nil {
			slog.Warn("Response cache write failed", "error", err)
		}
	}

	return rows, nil
}

// fetchPage requests one page, retrying transient failures.
func (c *Client) fetchPage(
	ctx context.Context,
	query string,
	params url.Values,
	reqID string,
) ([]flora.Row, error) {
	reqURL := fmt.Sprintf(
		"%s/%s?%s", c.cfg.API.BaseURL, query, params.Encode(),
	)

	var rows []flora.Row
	err := retry(ctx, c.cfg.API.RetryAttempts, time.Second, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
		if err != nil {
			return RequestError(query, err)
		}
		req.Header.Set("Accept", "application/json")
		req.Header.Set("X-Request-ID", reqID)

		resp, err := c.http.Do(req)
		if err != nil {
			return &retryableError{RequestError(query, err)}
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			err = StatusError(query, resp.StatusCode)
			if resp.StatusCode >= 500 {
				return &retryableError{err}
			}
			return err
		}

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return &retryableError{RequestError(query, err)}
		}

		rows = rows[:0]
		enc := gnfmt.GNjson{}
		if err = enc.Decode(body, &rows); err != nil {
			return DecodeError(query, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return rows, nil
}

func newProgressBar(prefix string) *pb.ProgressBar {
	bar := pb.Full.Start(0)
	bar.Set("prefix", prefix)
	bar.Set(pb.CleanOnFinish, true)
	return bar
}

func cacheKey(version, query string, params url.Values) string {
	return fmt.Sprintf("%s|%s|%s", version, query, params.Encode())
}
