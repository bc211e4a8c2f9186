package feed

import (
	"context"
	"math"
	"time"

	"tech-digest/internal/observability"
)

// SourceResolver — то, что умеет превратить источник в записи
type SourceResolver interface {
	Resolve(ctx context.Context, sourceURL string) (*Metadata, []Entry, error)
}

// RetryFetcher оборачивает Resolver ограниченным ретраем с экспоненциальной
// паузой. Наружу ошибки не выходят никогда: исчерпали попытки — источник
// просто ничего не дал (OK=false).
type RetryFetcher struct {
	resolver    SourceResolver
	maxRetries  int
	backoffBase time.Duration
	logger      *observability.Logger

	// Подменяется в тестах
	sleep func(ctx context.Context, d time.Duration)
}

func NewRetryFetcher(resolver SourceResolver, maxRetries int, backoffBase time.Duration, logger *observability.Logger) *RetryFetcher {
	return &RetryFetcher{
		resolver:    resolver,
		maxRetries:  maxRetries,
		backoffBase: backoffBase,
		logger:      logger,
		sleep: func(ctx context.Context, d time.Duration) {
			select {
			case <-time.After(d):
			case <-ctx.Done():
			}
		},
	}
}

// FetchWithRetry делает до maxRetries попыток. Пауза перед повтором —
// backoffBase^attempt (attempt с нуля), так что худшее время на источник
// ограничено суммой геометрической прогрессии плюс таймауты запросов.
func (f *RetryFetcher) FetchWithRetry(ctx context.Context, sourceURL string) FetchResult {
	var lastErr error

	for attempt := 0; attempt < f.maxRetries; attempt++ {
		if attempt > 0 {
			f.sleep(ctx, f.backoffFor(attempt-1))
		}
		if ctx.Err() != nil {
			break
		}

		meta, entries, err := f.resolver.Resolve(ctx, sourceURL)
		if err == nil {
			return FetchResult{
				Source:  sourceURL,
				Meta:    meta,
				Entries: entries,
				OK:      len(entries) > 0,
			}
		}

		lastErr = err
		f.logger.Debug("Retrying source",
			"source", sourceURL,
			"attempt", attempt+1,
			"max_retries", f.maxRetries,
			"error", err.Error(),
		)
	}

	if lastErr != nil {
		f.logger.Warn("Source failed after retries",
			"source", sourceURL,
			"max_retries", f.maxRetries,
			"error", lastErr.Error(),
		)
	}

	return FetchResult{Source: sourceURL, OK: false}
}

func (f *RetryFetcher) backoffFor(attempt int) time.Duration {
	base := f.backoffBase.Seconds()
	return time.Duration(math.Pow(base, float64(attempt)) * float64(time.Second))
}
