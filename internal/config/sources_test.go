package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadSourceListSkipsCommentsAndBlanks(t *testing.T) {
	path := filepath.Join(t.TempDir(), "feeds.txt")
	content := "# comment line\n\nhttps://a.example/feed\n   \nhttps://b.example/rss\n# trailing comment\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	lines, err := LoadSourceList(path)
	if err != nil {
		t.Fatalf("LoadSourceList: %v", err)
	}
	want := []string{"https://a.example/feed", "https://b.example/rss"}
	if len(lines) != len(want) {
		t.Fatalf("got %d lines, want %d: %v", len(lines), len(want), lines)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, lines[i], want[i])
		}
	}
}

func TestLoadSourceListTrimsWhitespace(t *testing.T) {
	path := filepath.Join(t.TempDir(), "feeds.txt")
	if err := os.WriteFile(path, []byte("  https://a.example/feed  \n"), 0o644); err != nil {
		t.Fatal(err)
	}

	lines, err := LoadSourceList(path)
	if err != nil {
		t.Fatalf("LoadSourceList: %v", err)
	}
	if len(lines) != 1 || lines[0] != "https://a.example/feed" {
		t.Fatalf("got %v", lines)
	}
}

func TestLoadSourceListMissingFile(t *testing.T) {
	lines, err := LoadSourceList(filepath.Join(t.TempDir(), "absent.txt"))
	if err != nil {
		t.Fatalf("missing file must not be an error, got %v", err)
	}
	if len(lines) != 0 {
		t.Fatalf("got %v, want empty", lines)
	}
}
