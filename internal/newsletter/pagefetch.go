package newsletter

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	readability "github.com/go-shiori/go-readability"

	"tech-digest/internal/config"
	"tech-digest/internal/fetcher"
	"tech-digest/internal/observability"
)

// PageFetcher выкачивает полные тексты статей для корпуса рассылки.
// Любой сбой по конкретному URL — это просто отсутствующий текст,
// прогон из-за него не падает.
type PageFetcher struct {
	cfg     *config.Config
	client  *http.Client
	limiter *fetcher.RateLimiter
	logger  *observability.Logger
}

func NewPageFetcher(cfg *config.Config, logger *observability.Logger) *PageFetcher {
	return &PageFetcher{
		cfg: cfg,
		client: &http.Client{
			Timeout: cfg.GetNewsletterFetchTimeout(),
		},
		limiter: fetcher.NewRateLimiter(cfg.Newsletter.MaxConcurrent, cfg.Newsletter.RPM),
		logger:  logger,
	}
}

// FetchAll забирает тексты по уникальным URL ограниченным пулом воркеров
func (p *PageFetcher) FetchAll(ctx context.Context, items []Item) map[string]string {
	urls := uniqueURLs(items)
	p.logger.Info("Fetching page content", "urls", len(urls))

	jobs := make(chan string)
	type fetched struct {
		url  string
		text string
	}
	out := make(chan fetched)

	workers := p.cfg.Newsletter.FetchWorkers
	if workers > len(urls) {
		workers = len(urls)
	}

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for u := range jobs {
				out <- fetched{url: u, text: p.fetchOne(ctx, u)}
			}
		}()
	}

	go func() {
		defer close(jobs)
		for _, u := range urls {
			select {
			case jobs <- u:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(out)
	}()

	texts := make(map[string]string)
	for f := range out {
		if f.text != "" {
			texts[f.url] = f.text
		}
	}

	p.logger.Info("Page content fetched", "ok", len(texts), "total", len(urls))
	return texts
}

func (p *PageFetcher) fetchOne(ctx context.Context, pageURL string) string {
	parsed, err := url.Parse(pageURL)
	if err != nil {
		return ""
	}

	if err := p.limiter.Wait(ctx, parsed.Host); err != nil {
		return ""
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return ""
	}
	req.Header.Set("User-Agent", p.cfg.HTTP.UserAgent)

	resp, err := p.client.Do(req)
	if err != nil {
		p.logger.Debug("Page fetch failed", "url", pageURL, "error", err.Error())
		return ""
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		p.logger.Debug("Page fetch non-OK", "url", pageURL, "status", resp.StatusCode)
		return ""
	}

	article, err := readability.FromReader(resp.Body, parsed)
	if err != nil {
		p.logger.Debug("Readability extraction failed", "url", pageURL, "error", err.Error())
		return ""
	}

	// Пауза между запросами, чтобы не упереться в чужой rate limit
	if delay := p.cfg.GetNewsletterFetchDelay(); delay > 0 {
		select {
		case <-time.After(delay):
		case <-ctx.Done():
		}
	}

	return strings.Join(strings.Fields(article.TextContent), " ")
}

func uniqueURLs(items []Item) []string {
	seen := make(map[string]struct{})
	var urls []string
	for _, item := range items {
		if item.URL == "" {
			continue
		}
		if _, ok := seen[item.URL]; ok {
			continue
		}
		seen[item.URL] = struct{}{}
		urls = append(urls, item.URL)
	}
	return urls
}
