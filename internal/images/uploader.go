// Package images copies product images from the marketplace CDN into blob
// storage so the catalog does not hotlink.
package images

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"path"
	"strings"
	"time"

	"enrichprj/internal/logger"
)

// MaxImageBytes caps a single download.
const MaxImageBytes = 10 << 20

// BlobStore is the write side of a bucket.
type BlobStore interface {
	Put(ctx context.Context, key, contentType string, r io.Reader) error
	PublicURL(key string) string
}

// Uploader downloads an image and writes it under products/<id>/.
type Uploader struct {
	Store  BlobStore
	Client *http.Client
	Log    *logger.Logger
}

func NewUploader(store BlobStore, timeout time.Duration, log *logger.Logger) *Uploader {
	return &Uploader{
		Store:  store,
		Client: &http.Client{Timeout: timeout},
		Log:    logger.OrNop(log),
	}
}

// Upload returns the public URL of the stored copy.
func (u *Uploader) Upload(ctx context.Context, productID, imageURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return "", err
	}
	resp, err := u.Client.Do(req)
	if err != nil {
		return "", fmt.Errorf("download %s: %w", imageURL, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("download %s: status %d", imageURL, resp.StatusCode)
	}

	ct := resp.Header.Get("Content-Type")
	if i := strings.Index(ct, ";"); i >= 0 {
		ct = ct[:i]
	}
	if ct == "" || !strings.HasPrefix(ct, "image/") {
		ct = contentTypeForKey(imageURL)
	}
	if ct == "" {
		return "", fmt.Errorf("download %s: not an image", imageURL)
	}

	key := ObjectKey(productID, ct)
	if err := u.Store.Put(ctx, key, ct, io.LimitReader(resp.Body, MaxImageBytes)); err != nil {
		return "", fmt.Errorf("store %s: %w", key, err)
	}
	logger.OrNop(u.Log).Debug("image stored", "marketplace_id", productID, "key", key)
	return u.Store.PublicURL(key), nil
}

// ObjectKey is stable per product so re-runs overwrite the same object.
func ObjectKey(productID, contentType string) string {
	return path.Join("products", productID, "primary"+extFor(contentType))
}

func extFor(ct string) string {
	switch ct {
	case "image/png":
		return ".png"
	case "image/webp":
		return ".webp"
	case "image/gif":
		return ".gif"
	}
	return ".jpg"
}

func contentTypeForKey(key string) string {
	s := strings.ToLower(strings.TrimSpace(key))
	if i := strings.Index(s, "?"); i >= 0 {
		s = s[:i]
	}
	switch {
	case strings.HasSuffix(s, ".png"):
		return "image/png"
	case strings.HasSuffix(s, ".jpg"), strings.HasSuffix(s, ".jpeg"):
		return "image/jpeg"
	case strings.HasSuffix(s, ".webp"):
		return "image/webp"
	case strings.HasSuffix(s, ".gif"):
		return "image/gif"
	}
	return ""
}
