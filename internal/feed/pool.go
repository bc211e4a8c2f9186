package feed

import (
	"context"
	"sync"

	"tech-digest/internal/observability"
)

// SourceFetcher — обход одного источника, уже обёрнутый в retry
type SourceFetcher interface {
	FetchWithRetry(ctx context.Context, sourceURL string) FetchResult
}

// Pool обходит весь список источников ограниченным числом воркеров.
// Результаты отдаются в порядке завершения, не в порядке списка.
type Pool struct {
	fetcher SourceFetcher
	workers int
	logger  *observability.Logger
}

func NewPool(fetcher SourceFetcher, workers int, logger *observability.Logger) *Pool {
	return &Pool{
		fetcher: fetcher,
		workers: workers,
		logger:  logger,
	}
}

// FetchAll возвращает все результаты плюс счётчики ok/failed.
// "failed" значит "ничего не принёс": настоящий сбой и честно пустая
// лента здесь не различаются, счётчик идёт только в лог.
func (p *Pool) FetchAll(ctx context.Context, sources []string) ([]FetchResult, int, int) {
	if len(sources) == 0 {
		return nil, 0, 0
	}

	workers := p.workers
	if workers > len(sources) {
		workers = len(sources)
	}

	jobs := make(chan string)
	out := make(chan FetchResult)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for src := range jobs {
				out <- p.fetcher.FetchWithRetry(ctx, src)
			}
		}()
	}

	go func() {
		defer close(jobs)
		for _, src := range sources {
			select {
			case jobs <- src:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(out)
	}()

	var (
		results     []FetchResult
		feedsOK     int
		feedsFailed int
	)
	for result := range out {
		if len(result.Entries) == 0 {
			feedsFailed++
		} else {
			feedsOK++
		}
		results = append(results, result)
	}

	p.logger.Info("Fetched feeds",
		"ok", feedsOK,
		"total", len(sources),
		"failed", feedsFailed,
	)

	return results, feedsOK, feedsFailed
}
