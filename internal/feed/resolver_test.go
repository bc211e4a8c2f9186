package feed

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"tech-digest/internal/config"
	"tech-digest/internal/fetcher"
	"tech-digest/internal/observability"
)

const testFeedXML = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
  <channel>
    <title>Site Feed</title>
    <link>https://site.example</link>
    <item>
      <title>Hi</title>
      <link>https://x/1</link>
      <description>&lt;p&gt;Hello world&lt;/p&gt;</description>
      <pubDate>Mon, 02 Jan 2006 15:04:05 GMT</pubDate>
    </item>
  </channel>
</rss>`

func testLogger(t *testing.T) *observability.Logger {
	t.Helper()
	return observability.NewLogger(filepath.Join(t.TempDir(), "test.log"), "error")
}

func testConfig() *config.Config {
	return &config.Config{
		HTTP: config.HttpConfig{
			UserAgent:      "tech-digest-test/1.0",
			TotalTimeoutMS: 5000,
		},
	}
}

func newTestResolver(t *testing.T) *Resolver {
	t.Helper()
	cfg := testConfig()
	logger := testLogger(t)
	return NewResolver(cfg, fetcher.NewFetcher(cfg, logger), logger)
}

func TestResolveDirectFeed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		_, _ = w.Write([]byte(testFeedXML))
	}))
	defer server.Close()

	meta, entries, err := newTestResolver(t).Resolve(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	if meta == nil || meta.Title != "Site Feed" {
		t.Errorf("Metadata = %+v, want title %q", meta, "Site Feed")
	}
	if len(entries) != 1 {
		t.Fatalf("Entries = %d, want 1", len(entries))
	}
	if entries[0].Link != "https://x/1" || entries[0].Title != "Hi" {
		t.Errorf("Unexpected entry: %+v", entries[0])
	}
	if entries[0].Date() == nil {
		t.Errorf("Entry should have a publication date")
	}
}

func TestResolveDiscoversFeedFromPage(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/page", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<html><head>
			<link rel="stylesheet" href="/style.css">
			<link rel="alternate" type="application/rss+xml" href="/feed">
		</head><body>not a feed</body></html>`))
	})
	mux.HandleFunc("/feed", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		_, _ = w.Write([]byte(testFeedXML))
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	meta, entries, err := newTestResolver(t).Resolve(context.Background(), server.URL+"/page")
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	if meta == nil || meta.Title != "Site Feed" {
		t.Errorf("Feed not discovered from page, meta = %+v", meta)
	}
	if len(entries) != 1 {
		t.Errorf("Entries = %d, want 1", len(entries))
	}
}

func TestResolvePageWithoutFeed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<html><head><title>plain page</title></head><body>nothing</body></html>`))
	}))
	defer server.Close()

	meta, entries, err := newTestResolver(t).Resolve(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Page without feed must not be an error, got: %v", err)
	}
	if meta != nil || entries != nil {
		t.Errorf("Expected empty result, got meta=%+v entries=%d", meta, len(entries))
	}
}

func TestResolveUnreachableSource(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // соединение гарантированно упадёт

	_, _, err := newTestResolver(t).Resolve(context.Background(), server.URL)
	if err == nil {
		t.Errorf("Transport failure should surface as error for retry")
	}
}

func TestDiscoverFeedLinksOrderAndDedup(t *testing.T) {
	html := []byte(`<html><head>
		<link rel="alternate" type="application/atom+xml" href="/atom">
		<link rel="alternate" type="application/rss+xml" href="https://site.example/feed">
		<link rel="alternate" type="application/rss+xml" href="/atom">
		<link rel="alternate" type="text/css" href="/ignored">
	</head></html>`)

	links := discoverFeedLinks(html, "https://site.example/page")

	want := []string{"https://site.example/atom", "https://site.example/feed"}
	if len(links) != len(want) {
		t.Fatalf("Links = %v, want %v", links, want)
	}
	for i := range want {
		if links[i] != want[i] {
			t.Errorf("Links[%d] = %q, want %q", i, links[i], want[i])
		}
	}
}
