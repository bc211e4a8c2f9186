package storage

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"tech-digest/internal/observability"
)

// Markdown файл дайджеста одновременно и выходной артефакт, и индекс
// дедупликации: множество URL и число строк всегда пересчитываются
// из сырого текста файла, отдельного индекса нет.

var urlRe = regexp.MustCompile(`https?://[^\s|)>\]"']+`)

// Store пишет дайджесты в content/{kind}/YYYY/MM/DD.md
type Store struct {
	contentDir string
	loc        *time.Location
	logger     *observability.Logger
}

func NewStore(contentDir string, loc *time.Location, logger *observability.Logger) *Store {
	return &Store{
		contentDir: contentDir,
		loc:        loc,
		logger:     logger,
	}
}

func (s *Store) ContentFilePath(kind string, day time.Time) string {
	return filepath.Join(
		s.contentDir,
		kind,
		fmt.Sprintf("%04d", day.Year()),
		fmt.Sprintf("%02d", int(day.Month())),
		fmt.Sprintf("%02d.md", day.Day()),
	)
}

func (s *Store) KindDir(kind string) string {
	return filepath.Join(s.contentDir, kind)
}

func (s *Store) WeeklyFilePath(year, week int) string {
	return filepath.Join(s.contentDir, "weekly", fmt.Sprintf("%04d", year), fmt.Sprintf("W%02d.md", week))
}

// CreatePlaceholder создаёт файл с пустой таблицей. Существующий файл
// никогда не перезаписывается.
func (s *Store) CreatePlaceholder(path, title, dateStr string, columns []string, noun string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create digest dir: %w", err)
	}

	all := append([]string{"#"}, columns...)
	content := strings.Join([]string{
		fmt.Sprintf("# %s (%s)", title, dateStr),
		"",
		fmt.Sprintf("Summary: 0 %s yet (placeholder created by scraper)", noun),
		"",
		headerRow(all),
		separatorRow(len(all)),
		"",
	}, "\n")

	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("write placeholder: %w", err)
	}

	s.logger.Info("Created placeholder file", "path", path)
	return nil
}

// CountRows считает существующие строки данных. Эвристика: строка
// таблицы с "http" внутри. Header и separator под неё не попадают.
func CountRows(path string) int {
	content, err := os.ReadFile(path)
	if err != nil {
		return 0
	}

	count := 0
	for _, line := range strings.Split(string(content), "\n") {
		if strings.HasPrefix(line, "|") && strings.Contains(line, "http") {
			count++
		}
	}
	return count
}

// URLs возвращает все URL из файла. Хвостовая пунктуация отрезается,
// чтобы ссылка в конце предложения совпадала с голой ссылкой.
func URLs(path string) map[string]struct{} {
	urls := make(map[string]struct{})

	content, err := os.ReadFile(path)
	if err != nil {
		return urls
	}

	for _, match := range urlRe.FindAllString(string(content), -1) {
		urls[strings.TrimRight(match, ".,;:!?")] = struct{}{}
	}
	return urls
}

// AllURLs собирает URL по всем историческим файлам каталога
func AllURLs(dir string) map[string]struct{} {
	urls := make(map[string]struct{})

	_ = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() || !strings.HasSuffix(path, ".md") {
			return nil
		}
		for u := range URLs(path) {
			urls[u] = struct{}{}
		}
		return nil
	})

	return urls
}

// AppendSection дописывает секцию с новыми строками. Только append,
// прежние байты файла не читаются и не переписываются.
func (s *Store) AppendSection(path, sectionTitle string, columns []string, rows [][]string, noun string) error {
	offset := CountRows(path)

	all := append([]string{"#"}, columns...)
	now := time.Now().In(s.loc)

	lines := []string{
		"",
		fmt.Sprintf("## %s (%s)", sectionTitle, now.Format("15:04 MST")),
		"",
		fmt.Sprintf("Summary: %d %s", len(rows), noun),
		"",
		headerRow(all),
		separatorRow(len(all)),
	}

	for i, row := range rows {
		cells := append([]string{fmt.Sprintf("%d", offset+i+1)}, row...)
		lines = append(lines, "| "+strings.Join(cells, " | ")+" |")
	}

	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open digest for append: %w", err)
	}
	defer func() { _ = file.Close() }()

	if _, err := file.WriteString(strings.Join(lines, "\n") + "\n"); err != nil {
		return fmt.Errorf("append digest section: %w", err)
	}

	s.logger.Info("Added entries to digest", "count", len(rows), "path", path)
	return nil
}

func headerRow(columns []string) string {
	return "| " + strings.Join(columns, " | ") + " |"
}

func separatorRow(n int) string {
	cells := make([]string, n)
	for i := range cells {
		cells[i] = "---"
	}
	return "| " + strings.Join(cells, " | ") + " |"
}
