package storage

import (
	"os"
	"strings"
)

// TableEntry — строка дайджеста, восстановленная из таблицы
type TableEntry struct {
	Date    string
	Title   string
	URL     string
	Summary string
}

// ParseTable извлекает записи из строк таблицы файла. Форматы колонок у
// разных видов дайджеста немного отличаются, поэтому поля ищутся
// относительно позиции URL: title перед ним, summary после, date — вторая
// ячейка после номера.
func ParseTable(path string) []TableEntry {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil
	}

	var entries []TableEntry

	for _, line := range strings.Split(string(content), "\n") {
		if !strings.HasPrefix(line, "|") || !strings.Contains(line, "http") {
			continue
		}
		if strings.Contains(line, "---") {
			continue
		}

		parts := splitRow(line)
		if len(parts) < 4 {
			continue
		}

		urlIdx := -1
		for i, p := range parts {
			if strings.HasPrefix(p, "http") {
				urlIdx = i
				break
			}
		}
		if urlIdx < 1 {
			continue
		}

		entry := TableEntry{
			URL:   parts[urlIdx],
			Title: unescapeCell(parts[urlIdx-1]),
		}
		if len(parts) > 1 && !strings.HasPrefix(parts[1], "http") {
			entry.Date = parts[1]
		}
		if urlIdx+1 < len(parts) {
			entry.Summary = unescapeCell(parts[urlIdx+1])
		}

		entries = append(entries, entry)
	}

	return entries
}

// splitRow режет строку таблицы на непустые ячейки, не ломаясь на
// экранированных \| внутри текста
func splitRow(line string) []string {
	var (
		cells []string
		cur   strings.Builder
	)

	runes := []rune(line)
	for i := 0; i < len(runes); i++ {
		if runes[i] == '\\' && i+1 < len(runes) && runes[i+1] == '|' {
			cur.WriteString("\\|")
			i++
			continue
		}
		if runes[i] == '|' {
			if cell := strings.TrimSpace(cur.String()); cell != "" {
				cells = append(cells, cell)
			}
			cur.Reset()
			continue
		}
		cur.WriteRune(runes[i])
	}
	if cell := strings.TrimSpace(cur.String()); cell != "" {
		cells = append(cells, cell)
	}

	return cells
}

func unescapeCell(cell string) string {
	return strings.ReplaceAll(cell, "\\|", "|")
}
