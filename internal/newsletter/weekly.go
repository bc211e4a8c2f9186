package newsletter

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"tech-digest/internal/config"
	"tech-digest/internal/observability"
	"tech-digest/internal/storage"
)

// Service — недельный прогон целиком: собрать дайджесты, выкачать
// тексты, сгенерировать и отредактировать рассылку, сохранить.
type Service struct {
	cfg       *config.Config
	store     *storage.Store
	collector *Collector
	pages     *PageFetcher
	generator *Generator
	logger    *observability.Logger
}

func NewService(cfg *config.Config, store *storage.Store, generator *Generator, logger *observability.Logger) *Service {
	return &Service{
		cfg:       cfg,
		store:     store,
		collector: NewCollector(store, logger),
		pages:     NewPageFetcher(cfg, logger),
		generator: generator,
		logger:    logger,
	}
}

// Run генерирует рассылку за неделю, в которую попадает today
func (s *Service) Run(ctx context.Context, today time.Time) error {
	year, week := today.ISOWeek()
	weekStr := fmt.Sprintf("%d-W%02d", year, week)

	s.logger.Info("Generating weekly newsletter", "week", weekStr)

	items := s.collector.Collect(today)
	if len(items) == 0 {
		s.logger.Info("No content found for the past week, skipping newsletter")
		return nil
	}

	pageText := s.pages.FetchAll(ctx, items)

	rawPath, err := SaveRaw(s.cfg.Storage.RawDir, weekStr, items, pageText, today)
	if err != nil {
		return err
	}
	s.logger.Info("Saved raw content", "path", rawPath)

	draft, err := s.generator.Draft(ctx, items, pageText, loadPrompt(s.cfg.Newsletter.PromptFile, s.logger))
	if err != nil {
		return err
	}

	final := s.generator.Edit(ctx, draft, loadPrompt(s.cfg.Newsletter.EditorPromptFile, s.logger))

	path := s.store.WeeklyFilePath(year, week)
	if err := writeNewsletter(path, final, weekStr, today); err != nil {
		return err
	}

	s.logger.Info("Weekly newsletter saved", "path", path)
	return nil
}

// loadPrompt читает промпт из файла; нет файла — вернём пустую строку
// и генератор подставит свой дефолт
func loadPrompt(path string, logger *observability.Logger) string {
	if path == "" {
		return ""
	}
	data, err := os.ReadFile(path)
	if err != nil {
		logger.Warn("Prompt file not found, using default", "path", path)
		return ""
	}
	return string(data)
}

func writeNewsletter(path, content, weekStr string, today time.Time) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create weekly dir: %w", err)
	}

	full := fmt.Sprintf(`# Weekly Tech Digest - %s

*Generated on %s | Covering %s to %s*

%s

---
*This newsletter was automatically generated from %s scraped articles.*
`,
		weekStr,
		today.Format("2006-01-02"),
		today.AddDate(0, 0, -7).Format("2006-01-02"),
		today.Format("2006-01-02"),
		content,
		weekStr,
	)

	if err := os.WriteFile(path, []byte(full), 0o644); err != nil {
		return fmt.Errorf("write newsletter: %w", err)
	}
	return nil
}
