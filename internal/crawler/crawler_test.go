package crawler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"enrichprj/internal/model"
)

const productPage = `<html><head><title>x</title></head><body>
<div id="wayfinding-breadcrumbs_feature_div"><a>Home &amp; Kitchen</a><a>Bedding</a><a>Sheets &amp; Pillowcases</a></div>
<span id="productTitle">  Breescape King 100% Cotton Sateen Sheet Set 600 Thread Count </span>
<a id="bylineInfo">Visit the Breescape Store</a>
<span class="a-price"><span class="a-offscreen">$79.99</span></span>
<span id="acrPopover"><span class="a-icon-alt">4.6 out of 5 stars</span></span>
<span id="acrCustomerReviewText">1,200 ratings</span>
<img id="landingImage" src="https://img.example.com/1.jpg">
<img class="a-dynamic-image" src="https://img.example.com/2.jpg">
<div id="feature-bullets"><ul>
<li>100% long-staple cotton with a silky sateen finish</li>
<li>Deep pocket fitted sheet fits mattresses up to 16 inches</li>
<li>short</li>
</ul></div>
</body></html>`

func TestParseProduct_Pass1(t *testing.T) {
	rec, err := ParseProduct(productPage, 1)
	require.NoError(t, err)

	assert.Equal(t, "Breescape King 100% Cotton Sateen Sheet Set 600 Thread Count", rec.Title)
	assert.Equal(t, "Visit the Breescape Store", rec.Brand)
	require.NotNil(t, rec.Price)
	assert.InDelta(t, 79.99, *rec.Price, 1e-9)
	require.NotNil(t, rec.Rating)
	assert.InDelta(t, 4.6, *rec.Rating, 1e-9)
	require.NotNil(t, rec.ReviewCount)
	assert.Equal(t, 1200, *rec.ReviewCount)
	// pass 1 only looks at the landing image
	assert.Equal(t, []string{"https://img.example.com/1.jpg"}, rec.Images)
	assert.Len(t, rec.Bullets, 2)
	assert.Equal(t, []string{"Home & Kitchen", "Bedding", "Sheets & Pillowcases"}, rec.Breadcrumbs)
	assert.Empty(t, rec.Description)
}

func TestParseProduct_Pass2WidensSelectors(t *testing.T) {
	rec, err := ParseProduct(productPage, 2)
	require.NoError(t, err)

	assert.Equal(t, []string{"https://img.example.com/1.jpg", "https://img.example.com/2.jpg"}, rec.Images)
	// "#feature-bullets ul" is a pass 2 description selector
	assert.Contains(t, rec.Description, "long-staple cotton")
}

func TestParseProduct_Pass2FallbackTitle(t *testing.T) {
	html := `<html><body><h1>Queen Bamboo Sheets Set</h1><p>Soft.</p></body></html>`

	rec1, err := ParseProduct(html, 1)
	require.NoError(t, err)
	assert.Empty(t, rec1.Title)

	rec2, err := ParseProduct(html, 2)
	require.NoError(t, err)
	assert.Equal(t, "Queen Bamboo Sheets Set", rec2.Title)
	assert.Contains(t, rec2.Description, "Soft.")
}

func TestThrottle_DelayFromEndOfRequest(t *testing.T) {
	th := NewThrottle(60 * time.Millisecond)
	ctx := context.Background()

	start := time.Now()
	require.NoError(t, th.Wait(ctx))
	assert.Less(t, time.Since(start), 30*time.Millisecond)

	time.Sleep(40 * time.Millisecond) // request in flight
	th.Done()
	end := time.Now()

	require.NoError(t, th.Wait(ctx))
	assert.GreaterOrEqual(t, time.Since(end), 50*time.Millisecond)
}

func TestThrottle_ZeroDelay(t *testing.T) {
	th := NewThrottle(0)
	for i := 0; i < 3; i++ {
		require.NoError(t, th.Wait(context.Background()))
		th.Done()
	}
}

func TestFetcher(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/ok", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(productPage))
	})
	mux.HandleFunc("/robot", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<title>Robot Check</title>"))
	})
	mux.HandleFunc("/gone", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	f := NewFetcher(5*time.Second, 0, "test-agent", nil, nil)
	ctx := context.Background()

	t.Run("ok", func(t *testing.T) {
		body, err := f.Fetch(ctx, srv.URL+"/ok")
		require.NoError(t, err)
		assert.Contains(t, body, "productTitle")
	})
	t.Run("bot detection", func(t *testing.T) {
		_, err := f.Fetch(ctx, srv.URL+"/robot")
		assert.ErrorIs(t, err, model.ErrFetchFailure)
	})
	t.Run("bad status", func(t *testing.T) {
		_, err := f.Fetch(ctx, srv.URL+"/gone")
		assert.ErrorIs(t, err, model.ErrFetchFailure)
	})
}

func TestFetcher_UsesRedisCache(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		_, _ = w.Write([]byte(productPage))
	}))
	defer srv.Close()

	mr := miniredis.RunT(t)
	cache := &PageCache{Client: redis.NewClient(&redis.Options{Addr: mr.Addr()}), TTL: time.Hour}
	f := NewFetcher(5*time.Second, 0, "test-agent", cache, nil)

	for i := 0; i < 3; i++ {
		_, err := f.Fetch(context.Background(), srv.URL)
		require.NoError(t, err)
	}
	assert.Equal(t, int32(1), atomic.LoadInt32(&hits))
	assert.True(t, mr.Exists(pageKey(srv.URL)))
}

func TestPageSource_ReusesPageForSecondPass(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		_, _ = w.Write([]byte(productPage))
	}))
	defer srv.Close()

	src := NewPageSource(NewFetcher(5*time.Second, 0, "test-agent", nil, nil))
	r1, err := src.Extract(context.Background(), srv.URL, 1)
	require.NoError(t, err)
	r2, err := src.Extract(context.Background(), srv.URL, 2)
	require.NoError(t, err)

	assert.Len(t, r1.Images, 1)
	assert.Len(t, r2.Images, 2)
	assert.Equal(t, int32(1), atomic.LoadInt32(&hits))
}
