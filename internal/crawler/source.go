package crawler

import (
	"context"
	"fmt"
	"sync"

	"enrichprj/internal/model"
)

// PageSource fetches a product page and parses it with the strategy for the
// requested pass. The last page is kept so pass 2 re-parses it instead of
// fetching again.
type PageSource struct {
	Fetcher *Fetcher

	mu       sync.Mutex
	lastURL  string
	lastBody string
}

func NewPageSource(f *Fetcher) *PageSource {
	return &PageSource{Fetcher: f}
}

func (s *PageSource) Extract(ctx context.Context, url string, pass int) (model.RawRecord, error) {
	body, err := s.page(ctx, url)
	if err != nil {
		return model.RawRecord{}, err
	}
	rec, err := ParseProduct(body, pass)
	if err != nil {
		return model.RawRecord{}, fmt.Errorf("%w: parse: %v", model.ErrFetchFailure, err)
	}
	return rec, nil
}

func (s *PageSource) page(ctx context.Context, url string) (string, error) {
	s.mu.Lock()
	if s.lastURL == url {
		body := s.lastBody
		s.mu.Unlock()
		return body, nil
	}
	s.mu.Unlock()

	body, err := s.Fetcher.Fetch(ctx, url)
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	s.lastURL, s.lastBody = url, body
	s.mu.Unlock()
	return body, nil
}
