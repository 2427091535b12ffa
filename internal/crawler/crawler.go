package crawler

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/net/html/charset"

	"enrichprj/internal/logger"
	"enrichprj/internal/model"
)

const maxPageBytes = 8 << 20

// Cache stores fetched page bodies keyed by URL.
type Cache interface {
	Get(ctx context.Context, url string) (string, bool, error)
	Set(ctx context.Context, url, body string) error
}

type Fetcher struct {
	Client    *http.Client
	UserAgent string
	Throttle  *Throttle
	Cache     Cache
	Log       *logger.Logger
}

// NewFetcher builds a fetcher with the given transport timeout and
// minimum delay between requests. cache may be nil.
func NewFetcher(timeout, delay time.Duration, userAgent string, cache Cache, log *logger.Logger) *Fetcher {
	return &Fetcher{
		Client:    &http.Client{Timeout: timeout},
		UserAgent: userAgent,
		Throttle:  NewThrottle(delay),
		Cache:     cache,
		Log:       logger.OrNop(log),
	}
}

// Fetch returns the decoded page body. Transport errors, non-200 statuses
// and bot-detection pages are reported as model.ErrFetchFailure.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	if f.Cache != nil {
		body, ok, err := f.Cache.Get(ctx, url)
		if err != nil {
			f.Log.Warn("page cache read failed", "url", url, "error", err)
		} else if ok {
			f.Log.Debug("page cache hit", "url", url)
			return body, nil
		}
	}

	if err := f.Throttle.Wait(ctx); err != nil {
		return "", fmt.Errorf("%w: throttle: %v", model.ErrFetchFailure, err)
	}
	body, err := f.get(ctx, url)
	f.Throttle.Done()
	if err != nil {
		return "", err
	}

	if IsBotPage(body) {
		return "", fmt.Errorf("%w: bot detection page for %s", model.ErrFetchFailure, url)
	}

	if f.Cache != nil {
		if err := f.Cache.Set(ctx, url, body); err != nil {
			f.Log.Warn("page cache write failed", "url", url, "error", err)
		}
	}
	return body, nil
}

func (f *Fetcher) get(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("%w: build request: %v", model.ErrFetchFailure, err)
	}
	req.Header.Set("User-Agent", f.UserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := f.Client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", model.ErrFetchFailure, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: status %d for %s", model.ErrFetchFailure, resp.StatusCode, url)
	}

	r, err := charset.NewReader(io.LimitReader(resp.Body, maxPageBytes), resp.Header.Get("Content-Type"))
	if err != nil {
		return "", fmt.Errorf("%w: decode: %v", model.ErrFetchFailure, err)
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("%w: read body: %v", model.ErrFetchFailure, err)
	}
	return string(b), nil
}

// IsBotPage reports whether body is a captcha / robot check interstitial.
func IsBotPage(body string) bool {
	return strings.Contains(body, "Robot Check") || strings.Contains(strings.ToLower(body), "captcha")
}
