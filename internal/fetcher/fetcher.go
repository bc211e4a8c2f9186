package fetcher

import (
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"tech-digest/internal/config"
	"tech-digest/internal/observability"
)

// Ограничение на размер ответа, чтобы битый сервер не съел память
const maxBodyBytes = 10 << 20

type Fetcher struct {
	client *http.Client
	cfg    *config.Config
	logger *observability.Logger
}

type FetchResponse struct {
	StatusCode int
	Body       []byte
	URL        string
	Headers    http.Header
}

func NewFetcher(cfg *config.Config, logger *observability.Logger) *Fetcher {
	client := &http.Client{
		Timeout: cfg.GetTotalTimeout(),
		Transport: &http.Transport{
			MaxIdleConns:        cfg.HTTP.MaxIdleConnections,
			MaxIdleConnsPerHost: cfg.HTTP.MaxIdleConnectionsPerHost,
			IdleConnTimeout:     cfg.GetIdleConnectionTimeout(),
		},
	}

	return &Fetcher{
		client: client,
		cfg:    cfg,
		logger: logger,
	}
}

// Client возвращает общий http.Client (его же используем в gofeed парсере)
func (f *Fetcher) Client() *http.Client {
	return f.client
}

// Fetch делает один GET страницы. Retry политика живёт уровнем выше.
func (f *Fetcher) Fetch(ctx context.Context, urlStr string) (*FetchResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlStr, nil)
	if err != nil {
		return nil, fmt.Errorf("invalid URL: %w", err)
	}

	req.Header.Set("User-Agent", f.cfg.HTTP.UserAgent)
	req.Header.Set("Accept-Encoding", "gzip, deflate")
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Connection", "keep-alive")

	start := time.Now()
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			f.logger.Warn("Failed to close response body", "url", urlStr, "error", err.Error())
		}
	}()

	var reader io.Reader = io.LimitReader(resp.Body, maxBodyBytes)
	if resp.Header.Get("Content-Encoding") == "gzip" {
		gzipReader, err := gzip.NewReader(reader)
		if err != nil {
			return nil, fmt.Errorf("gzip decode: %w", err)
		}
		defer func() { _ = gzipReader.Close() }()
		reader = gzipReader
	}

	body, err := io.ReadAll(reader)
	if err != nil {
		return nil, err
	}

	f.logger.Debug("Page fetched",
		"url", urlStr,
		"status", resp.StatusCode,
		"bytes", len(body),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)

	return &FetchResponse{
		StatusCode: resp.StatusCode,
		Body:       body,
		URL:        resp.Request.URL.String(),
		Headers:    resp.Header,
	}, nil
}
