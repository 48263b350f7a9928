// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package compare asks a remote computational knowledge service for a
// human-scale comparison of an extracted quantity ("5 km" becomes "about
// 50 football fields"). Results are cached by normalized phrase.
package compare

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/pdiddy/numdict/internal/cache"
	"github.com/pdiddy/numdict/internal/httputil"
	"github.com/pdiddy/numdict/internal/logging"
	"github.com/pdiddy/numdict/internal/metrics"
	"github.com/pdiddy/numdict/pkg/types"
)

// DefaultBaseURL is the Wolfram|Alpha v2 query endpoint.
const DefaultBaseURL = "https://api.wolframalpha.com/v2/query"

const (
	defaultPodID       = "Comparison"
	defaultScanner     = "Unit"
	defaultTimeout     = 30 * time.Second
	defaultConcurrency = 4
)

// Comparison sources.
const (
	SourceCache  = "cache"
	SourceRemote = "remote"
)

var (
	// ErrNoComparison means the service answered but had no comparison
	// for the phrase.
	ErrNoComparison = errors.New("no comparison available")

	// ErrLookupFailed means the service could not be reached or returned
	// a non-200 status.
	ErrLookupFailed = errors.New("comparison lookup failed")

	// ErrEmptyPhrase is returned by Compare for a blank phrase.
	ErrEmptyPhrase = errors.New("empty comparison phrase")

	// ErrMissingAppID means a remote lookup was needed but no app id is
	// configured.
	ErrMissingAppID = errors.New("comparison service app id not configured")
)

// Client looks up comparisons, consulting the cache first.
type Client struct {
	cfg     types.LookupConfig
	http    *http.Client
	cache   cache.Cache
	metrics *metrics.Metrics
	log     logging.Logger
	group   singleflight.Group
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithCache sets the result cache. The default is cache.Nop.
func WithCache(cc cache.Cache) Option {
	return func(c *Client) { c.cache = cc }
}

// WithMetrics records lookups on m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Client) { c.metrics = m }
}

// WithLogger sets the logger. The default is logging.Default().
func WithLogger(l logging.Logger) Option {
	return func(c *Client) { c.log = l }
}

// New returns a Client for cfg with defaults applied.
func New(cfg types.LookupConfig, opts ...Option) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.PodID == "" {
		cfg.PodID = defaultPodID
	}
	if cfg.Scanner == "" {
		cfg.Scanner = defaultScanner
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = defaultConcurrency
	}

	c := &Client{cfg: cfg}
	for _, opt := range opts {
		opt(c)
	}
	if c.http == nil {
		c.http = &http.Client{Timeout: cfg.Timeout}
	}
	if c.cache == nil {
		c.cache = cache.Nop{}
	}
	if c.log == nil {
		c.log = logging.Default()
	}
	c.log = c.log.Named("compare")
	return c
}

// Compare returns the comparison for phrase. Concurrent calls for the
// same normalized phrase share one lookup. The shared lookup is not tied
// to any one caller's cancellation and is bounded by the client timeout;
// each caller stops waiting when its own ctx is done.
func (c *Client) Compare(ctx context.Context, phrase string) (types.Comparison, error) {
	phrase = strings.Join(strings.Fields(phrase), " ")
	if phrase == "" {
		return types.Comparison{}, ErrEmptyPhrase
	}

	ch := c.group.DoChan(cache.Key(phrase), func() (any, error) {
		lctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.cfg.Timeout)
		defer cancel()
		return c.lookup(lctx, phrase)
	})

	select {
	case <-ctx.Done():
		return types.Comparison{Phrase: phrase}, ctx.Err()
	case res := <-ch:
		cmp, _ := res.Val.(types.Comparison)
		cmp.Phrase = phrase
		return cmp, res.Err
	}
}

func (c *Client) lookup(ctx context.Context, phrase string) (types.Comparison, error) {
	start := time.Now()
	cmp := types.Comparison{Phrase: phrase}

	result, err := c.cache.Get(ctx, phrase)
	switch {
	case err == nil:
		c.metrics.ObserveLookup(metrics.OutcomeCacheHit, time.Since(start))
		c.log.Debug("cache hit", logging.String("phrase", phrase))
		cmp.Result, cmp.Source = result, SourceCache
		return cmp, nil
	case !errors.Is(err, cache.ErrMiss):
		c.log.Warn("cache read failed", logging.String("phrase", phrase), logging.Err(err))
	}

	result, err = c.fetch(ctx, phrase)
	if err != nil {
		outcome := metrics.OutcomeError
		if errors.Is(err, ErrNoComparison) {
			outcome = metrics.OutcomeNoResult
		}
		c.metrics.ObserveLookup(outcome, time.Since(start))
		return cmp, err
	}
	c.metrics.ObserveLookup(metrics.OutcomeRemote, time.Since(start))
	c.log.Debug("remote lookup",
		logging.String("phrase", phrase),
		logging.Duration("elapsed", time.Since(start)),
	)

	if err := c.cache.Set(ctx, phrase, result); err != nil {
		c.log.Warn("cache write failed", logging.String("phrase", phrase), logging.Err(err))
	}
	cmp.Result, cmp.Source = result, SourceRemote
	return cmp, nil
}

// QueryURL builds the service request URL for phrase.
func (c *Client) QueryURL(phrase string) string {
	params := url.Values{
		"appid":        {c.cfg.AppID},
		"includepodid": {c.cfg.PodID},
		"scanner":      {c.cfg.Scanner},
		"format":       {"plaintext"},
		"input":        {phrase},
	}
	return c.cfg.BaseURL + "?" + params.Encode()
}

func (c *Client) fetch(ctx context.Context, phrase string) (string, error) {
	if c.cfg.AppID == "" {
		return "", ErrMissingAppID
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.QueryURL(phrase), nil)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	if c.cfg.UserAgent != "" {
		req.Header.Set("User-Agent", c.cfg.UserAgent)
	}

	resp, err := httputil.DoWithRetry(ctx, c.http, req, c.cfg.MaxRetries)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrLookupFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: HTTP %d", ErrLookupFailed, resp.StatusCode)
	}
	return ParseResult(resp.Body, c.cfg.PodID)
}

// CompareAll looks up every annotation that carries a unit or currency,
// with at most concurrency lookups in flight (the configured concurrency
// when zero). Each distinct phrase is looked up once. Failures are
// recorded per annotation in Comparison.Error and never abort the batch;
// only context cancellation does.
func (c *Client) CompareAll(ctx context.Context, anns []types.Annotation, concurrency int) ([]types.ComparedAnnotation, error) {
	if concurrency <= 0 {
		concurrency = c.cfg.Concurrency
	}

	out := make([]types.ComparedAnnotation, len(anns))
	var keys []string
	phrases := make(map[string]string)
	for i, a := range anns {
		phrase := a.Phrase()
		out[i] = types.ComparedAnnotation{Annotation: a, Comparison: types.Comparison{Phrase: phrase}}
		if !a.HasUnits() {
			continue
		}
		key := cache.Key(phrase)
		if _, ok := phrases[key]; !ok {
			phrases[key] = phrase
			keys = append(keys, key)
		}
	}

	results := make([]types.Comparison, len(keys))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for i, key := range keys {
		i, key := i, key
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			cmp, err := c.Compare(gctx, phrases[key])
			if err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				cmp.Error = err.Error()
				c.log.Info("lookup failed", logging.String("phrase", phrases[key]), logging.Err(err))
			}
			results[i] = cmp
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return out, err
	}

	byKey := make(map[string]types.Comparison, len(keys))
	for i, key := range keys {
		byKey[key] = results[i]
	}
	for i := range out {
		if !out[i].HasUnits() {
			continue
		}
		phrase := out[i].Comparison.Phrase
		out[i].Comparison = byKey[cache.Key(phrase)]
		out[i].Comparison.Phrase = phrase
	}
	return out, nil
}
