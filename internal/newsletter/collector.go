package newsletter

import (
	"time"

	"tech-digest/internal/observability"
	"tech-digest/internal/storage"
)

// Item — запись дайджеста с пометкой, из какого вида она пришла
type Item struct {
	storage.TableEntry
	ContentType string
}

var digestKinds = []string{"articles", "newsletters", "social"}

// Collector собирает содержимое дайджестов за прошедшую неделю
type Collector struct {
	store  *storage.Store
	logger *observability.Logger
}

func NewCollector(store *storage.Store, logger *observability.Logger) *Collector {
	return &Collector{store: store, logger: logger}
}

// Collect вычитывает таблицы всех трёх видов за последние 7 дней,
// от старых к новым. Отсутствующий файл дня — это просто пустой день.
func (c *Collector) Collect(today time.Time) []Item {
	var items []Item
	counts := make(map[string]int)

	for _, day := range pastSevenDays(today) {
		for _, kind := range digestKinds {
			path := c.store.ContentFilePath(kind, day)
			for _, entry := range storage.ParseTable(path) {
				items = append(items, Item{
					TableEntry:  entry,
					ContentType: kind,
				})
				counts[kind]++
			}
		}
	}

	c.logger.Info("Collected weekly content",
		"total", len(items),
		"articles", counts["articles"],
		"newsletters", counts["newsletters"],
		"social", counts["social"],
	)

	return items
}

func pastSevenDays(today time.Time) []time.Time {
	days := make([]time.Time, 0, 7)
	for i := 6; i >= 0; i-- {
		days = append(days, today.AddDate(0, 0, -i))
	}
	return days
}
