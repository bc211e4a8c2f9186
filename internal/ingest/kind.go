package ingest

// Kind — вид дайджеста, у каждого свой подкаталог и набор колонок
type Kind string

const (
	KindArticles    Kind = "articles"
	KindNewsletters Kind = "newsletters"
	KindSocial      Kind = "social"
)

func (k Kind) Title() string {
	switch k {
	case KindNewsletters:
		return "Daily Newsletters"
	case KindSocial:
		return "Daily Social Media"
	default:
		return "Daily Tech Articles"
	}
}

// Noun для строки "Summary: 0 {noun} yet" в placeholder файле
func (k Kind) Noun() string {
	switch k {
	case KindNewsletters:
		return "newsletters"
	case KindSocial:
		return "posts"
	default:
		return "articles"
	}
}

// SectionNoun для строки "Summary: N {noun}" в append секции
func (k Kind) SectionNoun() string {
	switch k {
	case KindNewsletters:
		return "new newsletter issues"
	case KindSocial:
		return "new posts"
	default:
		return "new articles"
	}
}

func (k Kind) SectionTitle() string {
	switch k {
	case KindNewsletters:
		return "New newsletters"
	case KindSocial:
		return "New social posts"
	default:
		return "Additional articles"
	}
}

// Columns возвращает колонки таблицы. Колонка topic появляется только
// у статей и только когда настроен список тем.
func (k Kind) Columns(topicsEnabled bool) []string {
	switch k {
	case KindNewsletters:
		return []string{"date", "newsletter", "title", "url"}
	case KindSocial:
		return []string{"date", "source", "content", "url"}
	default:
		if topicsEnabled {
			return []string{"date", "topic", "title", "url", "summary"}
		}
		return []string{"date", "title", "url", "summary"}
	}
}
