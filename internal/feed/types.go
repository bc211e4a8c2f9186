package feed

import "time"

// Entry — один элемент ленты (статья, выпуск рассылки, пост)
type Entry struct {
	Link        string
	Title       string
	Summary     string
	PublishedAt *time.Time
	UpdatedAt   *time.Time
}

// Date возвращает эффективную дату записи: published, иначе updated, иначе nil
func (e Entry) Date() *time.Time {
	if e.PublishedAt != nil {
		return e.PublishedAt
	}
	return e.UpdatedAt
}

// Metadata — метаданные уровня ленты, нужен в основном title
type Metadata struct {
	Title string
}

// FetchResult — единый результат обхода одного источника.
// OK=false и пустой Entries для потребителей неразличимы:
// и то и другое значит "источник ничего не дал в этом прогоне".
type FetchResult struct {
	Source  string
	Meta    *Metadata
	Entries []Entry
	OK      bool
}
