package normalize

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var whitespaceRe = regexp.MustCompile(`\s+`)

// Хвосты, которые Medium дописывает к summary
var boilerplateSuffixes = []string{
	"Continue reading on Medium »",
	"Continue reading on Medium»",
}

// CleanSummary убирает HTML из summary и обрезает до limit символов.
// Идемпотентна для уже чистого текста короче лимита.
func CleanSummary(raw string, limit int) string {
	plain := stripMarkup(raw)

	for _, suffix := range boilerplateSuffixes {
		plain = strings.ReplaceAll(plain, suffix, "")
	}

	// Схлопываем переводы строк, табы и множественные пробелы
	plain = strings.TrimSpace(whitespaceRe.ReplaceAllString(plain, " "))

	runes := []rune(plain)
	if len(runes) > limit {
		return string(runes[:limit-1]) + "…"
	}
	return plain
}

// EscapePipes экранирует | для ячеек Markdown таблицы
func EscapePipes(text string) string {
	return strings.ReplaceAll(text, "|", "\\|")
}

// stripMarkup парсит фрагмент как HTML и возвращает текст.
// goquery декодирует entity сам, отдельный unescape не нужен.
func stripMarkup(raw string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(raw))
	if err != nil {
		return raw
	}
	doc.Find("script, style").Remove()
	return doc.Text()
}
