package newsletter

import (
	"testing"
	"time"

	"tech-digest/internal/storage"
)

func writeDigestDay(t *testing.T, store *storage.Store, kind string, day time.Time, rows [][]string) {
	t.Helper()
	path := store.ContentFilePath(kind, day)
	columns := []string{"date", "title", "url", "summary"}
	if err := store.CreatePlaceholder(path, "Daily Digest", day.Format("02-01-2006"), columns, "entries"); err != nil {
		t.Fatal(err)
	}
	if err := store.AppendSection(path, "New entries", columns, rows, "new entries"); err != nil {
		t.Fatal(err)
	}
}

func TestCollectGathersWeekOldestFirst(t *testing.T) {
	store := storage.NewStore(t.TempDir(), time.UTC, testLogger(t))
	today := time.Date(2026, 3, 7, 12, 0, 0, 0, time.UTC)

	writeDigestDay(t, store, "articles", today, [][]string{
		{"07-03-2026", "Today Article", "https://x/today", "s"},
	})
	writeDigestDay(t, store, "articles", today.AddDate(0, 0, -3), [][]string{
		{"04-03-2026", "Older Article", "https://x/older", "s"},
	})
	writeDigestDay(t, store, "newsletters", today, [][]string{
		{"07-03-2026", "Weekly", "https://x/nl", ""},
	})

	items := NewCollector(store, testLogger(t)).Collect(today)
	if len(items) != 3 {
		t.Fatalf("got %d items, want 3", len(items))
	}

	// Дни обходятся от старых к новым
	if items[0].URL != "https://x/older" {
		t.Errorf("first item = %q, want oldest", items[0].URL)
	}
	if items[0].ContentType != "articles" {
		t.Errorf("first item type = %q", items[0].ContentType)
	}

	var nl *Item
	for i := range items {
		if items[i].ContentType == "newsletters" {
			nl = &items[i]
		}
	}
	if nl == nil || nl.URL != "https://x/nl" {
		t.Errorf("newsletter item missing: %+v", items)
	}
}

func TestCollectOutsideWindowIgnored(t *testing.T) {
	store := storage.NewStore(t.TempDir(), time.UTC, testLogger(t))
	today := time.Date(2026, 3, 7, 12, 0, 0, 0, time.UTC)

	writeDigestDay(t, store, "articles", today.AddDate(0, 0, -8), [][]string{
		{"27-02-2026", "Too Old", "https://x/stale", "s"},
	})

	if items := NewCollector(store, testLogger(t)).Collect(today); len(items) != 0 {
		t.Fatalf("got %d items, want 0", len(items))
	}
}

func TestCollectEmptyWeek(t *testing.T) {
	store := storage.NewStore(t.TempDir(), time.UTC, testLogger(t))
	today := time.Date(2026, 3, 7, 12, 0, 0, 0, time.UTC)

	if items := NewCollector(store, testLogger(t)).Collect(today); items != nil {
		t.Fatalf("got %v, want nil", items)
	}
}
