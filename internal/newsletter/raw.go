package newsletter

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// SaveRaw сохраняет собранный корпус в текстовый файл для отладки
func SaveRaw(rawDir, weekStr string, items []Item, pageText map[string]string, now time.Time) (string, error) {
	if err := os.MkdirAll(rawDir, 0o755); err != nil {
		return "", fmt.Errorf("create raw dir: %w", err)
	}

	divider := strings.Repeat("=", 80)
	lines := []string{
		fmt.Sprintf("Weekly Raw Content - %s", weekStr),
		fmt.Sprintf("Generated: %s", now.Format(time.RFC3339)),
		fmt.Sprintf("Total articles: %d", len(items)),
		fmt.Sprintf("URLs fetched: %d", len(pageText)),
		divider,
		"",
	}

	for _, item := range items {
		lines = append(lines,
			fmt.Sprintf("Title: %s", orNA(item.Title)),
			fmt.Sprintf("Date: %s", orNA(item.Date)),
			fmt.Sprintf("URL: %s", item.URL),
			"",
			"--- FULL CONTENT ---",
		)
		if text, ok := pageText[item.URL]; ok {
			lines = append(lines, text)
		} else {
			lines = append(lines, "[Content could not be fetched]")
		}
		lines = append(lines, "", divider, "")
	}

	path := filepath.Join(rawDir, weekStr+".txt")
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")), 0o644); err != nil {
		return "", fmt.Errorf("write raw content: %w", err)
	}

	return path, nil
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
