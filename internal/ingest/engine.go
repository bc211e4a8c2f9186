package ingest

import (
	"strings"
	"time"

	"tech-digest/internal/config"
	"tech-digest/internal/feed"
	"tech-digest/internal/normalize"
	"tech-digest/internal/observability"
)

// Хвосты, которые ленты дописывают к своему названию
var (
	newsletterNameSuffixes = []string{" - All Issues", " RSS", " Feed", " Newsletter"}
	socialNameSuffixes     = []string{" RSS", " Feed", "'s posts"}
)

// Engine — ядро прогона: решает, какие записи из результатов обхода
// попадут в дайджест. Дедуп по URL, окно по дате, опционально темы.
type Engine struct {
	cfg    *config.Config
	loc    *time.Location
	logger *observability.Logger
}

func NewEngine(cfg *config.Config, logger *observability.Logger) *Engine {
	return &Engine{
		cfg:    cfg,
		loc:    cfg.Location(),
		logger: logger,
	}
}

// Select прогоняет записи через фильтры приёмки и собирает строки таблицы.
// Порядок: источники в порядке завершения, записи внутри источника — как
// отдала лента. Множество existing дополняется принятыми записями, чтобы
// дубликат между двумя источниками одного прогона тоже отсеялся.
//
// Первый прогон (пустой файл) берёт весь текущий месяц, иначе окно
// сужается до сегодняшнего дня: свежий дайджест не остаётся пустым до
// конца месяца, а устоявшийся собирает только новое.
func (e *Engine) Select(
	kind Kind,
	results []feed.FetchResult,
	existing map[string]struct{},
	firstRun bool,
	today time.Time,
	topics []string,
) [][]string {
	var rows [][]string

	for _, result := range results {
		if len(result.Entries) == 0 {
			continue
		}

		name := feedDisplayName(kind, result.Meta)

		for _, entry := range result.Entries {
			url := strings.TrimSpace(entry.Link)
			if url == "" {
				continue
			}
			if _, dup := existing[url]; dup {
				continue
			}

			entryDate := entry.Date()
			if entryDate == nil {
				// Запись без даты не проходит ни одно окно
				continue
			}
			local := entryDate.In(e.loc)
			if firstRun {
				if local.Year() != today.Year() || local.Month() != today.Month() {
					continue
				}
			} else {
				if !sameDay(local, today) {
					continue
				}
			}

			topic := ""
			if kind == KindArticles && len(topics) > 0 {
				topic = firstMatchingTopic(entry, url, topics)
				if topic == "" {
					continue
				}
			}

			rows = append(rows, e.buildRow(kind, entry, url, name, topic, local))
			existing[url] = struct{}{}
		}
	}

	return rows
}

func (e *Engine) buildRow(kind Kind, entry feed.Entry, url, name, topic string, local time.Time) []string {
	date := local.Format("02-01-2006")

	switch kind {
	case KindNewsletters:
		return []string{
			date,
			normalize.EscapePipes(name),
			normalize.EscapePipes(entry.Title),
			url,
		}
	case KindSocial:
		// У постов текст лежит в summary, title — запасной вариант
		content := entry.Summary
		if content == "" {
			content = entry.Title
		}
		return []string{
			date,
			normalize.EscapePipes(name),
			normalize.EscapePipes(normalize.CleanSummary(content, e.cfg.Normalize.SocialLimit)),
			url,
		}
	default:
		row := []string{date}
		if topic != "" {
			row = append(row, normalize.EscapePipes(topic))
		}
		return append(row,
			normalize.EscapePipes(entry.Title),
			url,
			normalize.EscapePipes(normalize.CleanSummary(entry.Summary, e.cfg.Normalize.SummaryLimit)),
		)
	}
}

// firstMatchingTopic возвращает первую подошедшую тему в настроенном
// порядке. Поиск — подстрока без учёта регистра по title+summary+url.
func firstMatchingTopic(entry feed.Entry, url string, topics []string) string {
	haystack := strings.ToLower(entry.Title + " " + entry.Summary + " " + url)
	for _, topic := range topics {
		if strings.Contains(haystack, strings.ToLower(topic)) {
			return topic
		}
	}
	return ""
}

func feedDisplayName(kind Kind, meta *feed.Metadata) string {
	if meta == nil || meta.Title == "" {
		return "Unknown"
	}

	title := meta.Title
	var suffixes []string
	switch kind {
	case KindNewsletters:
		suffixes = newsletterNameSuffixes
	case KindSocial:
		suffixes = socialNameSuffixes
	}
	for _, suffix := range suffixes {
		title = strings.ReplaceAll(title, suffix, "")
	}

	title = strings.TrimSpace(title)
	if title == "" {
		return "Unknown"
	}
	return title
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}
