package feed

import (
	"bytes"
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/mmcdole/gofeed"

	"tech-digest/internal/config"
	"tech-digest/internal/fetcher"
	"tech-digest/internal/observability"
)

// Resolver превращает настроенный источник в список записей.
// Источник — либо готовый feed endpoint, либо HTML страница,
// в которой надо найти <link rel="alternate"> на ленту.
type Resolver struct {
	cfg    *config.Config
	pages  *fetcher.Fetcher
	logger *observability.Logger
}

func NewResolver(cfg *config.Config, pages *fetcher.Fetcher, logger *observability.Logger) *Resolver {
	return &Resolver{
		cfg:    cfg,
		pages:  pages,
		logger: logger,
	}
}

// Resolve пробует источник сначала как ленту, потом как страницу с лентой.
// Ошибка возвращается только на транспортном сбое (его имеет смысл ретраить).
// Страница без ленты — штатный исход: (nil, nil, nil).
func (r *Resolver) Resolve(ctx context.Context, sourceURL string) (*Metadata, []Entry, error) {
	// Быстрый путь: источник уже является лентой
	meta, entries := r.tryFeed(ctx, sourceURL)
	if len(entries) > 0 {
		return meta, entries, nil
	}

	resp, err := r.pages.Fetch(ctx, sourceURL)
	if err != nil {
		return nil, nil, err
	}
	if resp.StatusCode != http.StatusOK {
		r.logger.Debug("Source page returned non-OK status",
			"source", sourceURL,
			"status", resp.StatusCode,
		)
		return nil, nil, nil
	}

	candidates := discoverFeedLinks(resp.Body, resp.URL)
	if len(candidates) == 0 {
		r.logger.Debug("No feed links discovered on page", "source", sourceURL)
		return nil, nil, nil
	}

	for _, candidate := range candidates {
		meta, entries := r.tryFeed(ctx, candidate)
		if len(entries) > 0 {
			r.logger.Info("Feed discovered from page",
				"source", sourceURL,
				"feed_url", candidate,
			)
			return meta, entries, nil
		}
	}

	return nil, nil, nil
}

// tryFeed парсит URL как ленту. Malformed лента без записей
// равнозначна сетевому сбою — возвращаем пусто.
func (r *Resolver) tryFeed(ctx context.Context, feedURL string) (*Metadata, []Entry) {
	fp := gofeed.NewParser()
	fp.UserAgent = r.cfg.HTTP.UserAgent
	fp.Client = r.pages.Client()

	parsed, err := fp.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		r.logger.Debug("Feed parse failed", "url", feedURL, "error", err.Error())
		return nil, nil
	}
	if len(parsed.Items) == 0 {
		return nil, nil
	}

	entries := make([]Entry, 0, len(parsed.Items))
	for _, item := range parsed.Items {
		summary := item.Description
		if summary == "" {
			summary = item.Content
		}
		entries = append(entries, Entry{
			Link:        strings.TrimSpace(item.Link),
			Title:       strings.TrimSpace(item.Title),
			Summary:     strings.TrimSpace(summary),
			PublishedAt: item.PublishedParsed,
			UpdatedAt:   item.UpdatedParsed,
		})
	}

	return &Metadata{Title: strings.TrimSpace(parsed.Title)}, entries
}

// discoverFeedLinks ищет в HTML ссылки на RSS/Atom ленты и
// резолвит их в абсолютные URL относительно самой страницы.
// Порядок обнаружения сохраняется, дубликаты выкидываются.
func discoverFeedLinks(html []byte, pageURL string) []string {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(html))
	if err != nil {
		return nil
	}

	base, err := url.Parse(pageURL)
	if err != nil {
		return nil
	}

	var links []string
	seen := make(map[string]struct{})

	doc.Find("link").Each(func(_ int, sel *goquery.Selection) {
		rel, _ := sel.Attr("rel")
		typ, _ := sel.Attr("type")
		href, _ := sel.Attr("href")

		if href == "" || !strings.Contains(strings.ToLower(rel), "alternate") {
			return
		}
		typ = strings.ToLower(typ)
		if !strings.Contains(typ, "rss") && !strings.Contains(typ, "atom") && !strings.Contains(typ, "xml") {
			return
		}

		ref, err := url.Parse(strings.TrimSpace(href))
		if err != nil {
			return
		}
		abs := base.ResolveReference(ref).String()

		if _, ok := seen[abs]; ok {
			return
		}
		seen[abs] = struct{}{}
		links = append(links, abs)
	})

	return links
}
