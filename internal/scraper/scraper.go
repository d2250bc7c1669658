package scraper

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/cockroachdb/errors"

	"github.com/pfrederiksen/club-fixtures/internal/fixture"
	"github.com/pfrederiksen/club-fixtures/internal/logger"
	"github.com/pfrederiksen/club-fixtures/internal/metrics"
)

const (
	BaseURL        = "https://www.transfermarkt.com"
	Referer        = "https://www.google.com"
	Timeout        = 10 * time.Second
	DefaultBackoff = 2 * time.Second
)

// Config configures a Scraper. Zero values take the defaults above.
type Config struct {
	BaseURL     string
	Timeout     time.Duration
	Policy      FetchPolicy
	MaxAttempts int
	Backoff     time.Duration
	Location    *time.Location
	Metrics     *metrics.Recorder
}

// Scraper fetches and parses transfermarkt pages. Requests are sequential.
type Scraper struct {
	client      *http.Client
	baseURL     string
	policy      FetchPolicy
	maxAttempts int
	backoff     time.Duration
	loc         *time.Location
	metrics     *metrics.Recorder
}

// New creates a new Scraper instance
func New(cfg Config) *Scraper {
	s := &Scraper{
		client:      &http.Client{Timeout: cfg.Timeout},
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		policy:      cfg.Policy,
		maxAttempts: cfg.MaxAttempts,
		backoff:     cfg.Backoff,
		loc:         cfg.Location,
		metrics:     cfg.Metrics,
	}
	if s.client.Timeout <= 0 {
		s.client.Timeout = Timeout
	}
	if s.baseURL == "" {
		s.baseURL = BaseURL
	}
	if s.policy.UserAgent == nil && s.policy.Delay == nil {
		s.policy = DefaultPolicy(DefaultDelay)
	}
	if s.maxAttempts <= 0 {
		s.maxAttempts = 1
	}
	if s.backoff <= 0 {
		s.backoff = DefaultBackoff
	}
	if s.loc == nil {
		loc, err := time.LoadLocation(fixture.DefaultTimezone)
		if err != nil {
			loc = time.UTC
		}
		s.loc = loc
	}
	return s
}

// BaseURL returns the source root the scraper resolves paths against.
func (s *Scraper) BaseURL() string {
	return s.baseURL
}

// fetchDocument GETs rawURL and parses it. It returns the document and the
// final URL after redirects.
func (s *Scraper) fetchDocument(ctx context.Context, page, rawURL string) (*goquery.Document, string, error) {
	var lastErr error

	for attempt := 1; attempt <= s.maxAttempts; attempt++ {
		doc, finalURL, retryable, err := s.fetchOnce(ctx, page, rawURL)
		if err == nil {
			return doc, finalURL, nil
		}
		lastErr = err

		if !retryable || attempt == s.maxAttempts {
			break
		}

		wait := time.Duration(attempt) * s.backoff
		logger.Warn("retrying source request", logger.Fields{
			"url":     rawURL,
			"attempt": attempt,
			"backoff": wait.String(),
			"error":   err.Error(),
		})
		if err := sleep(ctx, wait); err != nil {
			return nil, "", networkError(errors.Wrap(err, "retry wait"))
		}
	}

	return nil, "", lastErr
}

func (s *Scraper) fetchOnce(ctx context.Context, page, rawURL string) (doc *goquery.Document, finalURL string, retryable bool, err error) {
	if err := sleep(ctx, s.policy.delay()); err != nil {
		return nil, "", false, networkError(errors.Wrap(err, "courtesy delay"))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, "", false, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", s.policy.userAgent())
	req.Header.Set("Referer", Referer)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	start := time.Now()
	defer func() {
		s.metrics.RecordFetch(page, time.Since(start), err)
	}()

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, "", true, networkError(errors.Wrapf(err, "fetching %s", rawURL))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		retry := resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests
		return nil, "", retry, networkError(errors.Newf("fetching %s: unexpected status code: %d", rawURL, resp.StatusCode))
	}

	doc, err = goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, "", true, networkError(errors.Wrapf(err, "reading %s", rawURL))
	}

	finalURL = rawURL
	if resp.Request != nil && resp.Request.URL != nil {
		finalURL = resp.Request.URL.String()
	}

	logger.Debug("fetched page", logger.Fields{
		"page":   page,
		"url":    finalURL,
		"status": resp.StatusCode,
	})
	return doc, finalURL, false, nil
}

// networkError wraps both ErrNetwork and err, so errors.Is finds either.
func networkError(err error) error {
	return fmt.Errorf("%w: %w", ErrNetwork, err)
}

// sleep waits for d or until ctx is done.
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// absolute resolves href against base. Unparseable hrefs are returned as is.
func absolute(base, href string) string {
	b, err := url.Parse(base)
	if err != nil {
		return href
	}
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return href
	}
	return b.ResolveReference(ref).String()
}
