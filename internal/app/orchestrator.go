package app

import (
	"context"
	"fmt"
	"os"
	"time"

	"tech-digest/internal/config"
	"tech-digest/internal/feed"
	"tech-digest/internal/fetcher"
	"tech-digest/internal/ingest"
	"tech-digest/internal/newsletter"
	"tech-digest/internal/observability"
	"tech-digest/internal/storage"
)

type Orchestrator struct {
	cfg      *config.Config
	logger   *observability.Logger
	resolver *feed.Resolver
	engine   *ingest.Engine
	store    *storage.Store
}

func NewOrchestrator(cfg *config.Config, logger *observability.Logger) *Orchestrator {
	pages := fetcher.NewFetcher(cfg, logger)
	return &Orchestrator{
		cfg:      cfg,
		logger:   logger,
		resolver: feed.NewResolver(cfg, pages, logger),
		engine:   ingest.NewEngine(cfg, logger),
		store:    storage.NewStore(cfg.Storage.ContentDir, cfg.Location(), logger),
	}
}

type RunStats struct {
	Sources     int
	FeedsOK     int
	FeedsFailed int
	NewEntries  int
}

// RunDigest выполняет один прогон сбора для вида дайджеста.
// Ошибки здесь только фатальные (персистентность); пустая конфигурация
// и "ничего нового" — штатные исходы.
func (o *Orchestrator) RunDigest(ctx context.Context, kind ingest.Kind) (*RunStats, error) {
	today := time.Now().In(o.cfg.Location())
	dateStr := today.Format("02-01-2006")
	path := o.store.ContentFilePath(string(kind), today)

	topics, err := o.loadTopics(kind)
	if err != nil {
		return nil, err
	}
	columns := kind.Columns(len(topics) > 0)

	// Потеря файла дайджеста означает дубли на следующем прогоне,
	// поэтому любые ошибки персистентности фатальны
	if err := o.store.CreatePlaceholder(path, kind.Title(), dateStr, columns, kind.Noun()); err != nil {
		return nil, err
	}

	sources, err := config.LoadSourceList(o.sourceFile(kind))
	if err != nil {
		return nil, fmt.Errorf("load source list: %w", err)
	}

	stats := &RunStats{Sources: len(sources)}

	if len(sources) == 0 {
		o.logger.Info("No sources configured, placeholder retained, skipping scrape", "kind", string(kind))
		return stats, nil
	}

	existing := o.existingURLs(kind, path)
	firstRun := storage.CountRows(path) == 0
	if firstRun {
		o.logger.Info("First run detected, fetching entries from this month", "kind", string(kind))
	}

	retryFetcher := feed.NewRetryFetcher(o.resolver, o.cfg.Fetch.MaxRetries, o.cfg.GetBackoffBase(), o.logger)
	pool := feed.NewPool(retryFetcher, o.workersFor(kind), o.logger)
	results, feedsOK, feedsFailed := pool.FetchAll(ctx, sources)
	stats.FeedsOK = feedsOK
	stats.FeedsFailed = feedsFailed

	rows := o.engine.Select(kind, results, existing, firstRun, today, topics)
	stats.NewEntries = len(rows)

	if len(rows) == 0 {
		o.logger.Info("Nothing new to persist", "kind", string(kind), "first_run", firstRun)
		return stats, nil
	}

	if err := o.store.AppendSection(path, kind.SectionTitle(), columns, rows, kind.SectionNoun()); err != nil {
		return nil, err
	}

	return stats, nil
}

// RunWeekly запускает генерацию недельной рассылки
func (o *Orchestrator) RunWeekly(ctx context.Context) error {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		return fmt.Errorf("OPENAI_API_KEY environment variable not set")
	}

	generator := newsletter.NewGenerator(o.cfg, apiKey, o.logger)
	service := newsletter.NewService(o.cfg, o.store, generator, o.logger)

	return service.Run(ctx, time.Now().In(o.cfg.Location()))
}

func (o *Orchestrator) sourceFile(kind ingest.Kind) string {
	switch kind {
	case ingest.KindNewsletters:
		return o.cfg.Sources.NewslettersFile
	case ingest.KindSocial:
		return o.cfg.Sources.SocialFile
	default:
		return o.cfg.Sources.FeedsFile
	}
}

func (o *Orchestrator) workersFor(kind ingest.Kind) int {
	switch kind {
	case ingest.KindNewsletters:
		return o.cfg.Fetch.MaxWorkersNewsletters
	case ingest.KindSocial:
		return o.cfg.Fetch.MaxWorkersSocial
	default:
		return o.cfg.Fetch.MaxWorkersArticles
	}
}

// loadTopics читает список тем; применяется только к статьям
func (o *Orchestrator) loadTopics(kind ingest.Kind) ([]string, error) {
	if kind != ingest.KindArticles || o.cfg.Sources.TopicsFile == "" {
		return nil, nil
	}
	topics, err := config.LoadSourceList(o.cfg.Sources.TopicsFile)
	if err != nil {
		return nil, fmt.Errorf("load topics list: %w", err)
	}
	return topics, nil
}

// existingURLs строит индекс дедупликации. Статьи проверяются по всей
// истории вида, остальные дайджесты — только по сегодняшнему файлу.
func (o *Orchestrator) existingURLs(kind ingest.Kind, path string) map[string]struct{} {
	if kind == ingest.KindArticles {
		return storage.AllURLs(o.store.KindDir(string(kind)))
	}
	return storage.URLs(path)
}
