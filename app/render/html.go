package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"time"

	"github.com/lysyi3m/rss-digest/app/news"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

type pageSection struct {
	Name    string
	Count   int
	Entries []Entry
}

type page struct {
	ItemCount   int
	GroupCount  int
	SourceCount int
	GeneratedAt string
	Sections    []pageSection
}

// HTMLRenderer builds the static digest page.
type HTMLRenderer struct {
	tmpl *template.Template
}

func NewHTMLRenderer() (*HTMLRenderer, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/index.html.tmpl")
	if err != nil {
		return nil, fmt.Errorf("failed to parse page template: %w", err)
	}
	return &HTMLRenderer{tmpl: tmpl}, nil
}

func (r *HTMLRenderer) Run(items []news.NewsItem, keywords []string, generatedAt time.Time) ([]byte, error) {
	groups := GroupByKeyword(items, keywords)

	data := page{
		ItemCount:   len(items),
		GroupCount:  len(groups),
		SourceCount: news.DistinctSources(items),
		GeneratedAt: generatedAt.Format("2006-01-02 15:04:05 MST"),
		Sections:    make([]pageSection, 0, len(groups)),
	}
	for _, group := range groups {
		section := pageSection{Name: group.Name, Count: len(group.Items)}
		for _, item := range group.Items {
			section.Entries = append(section.Entries, newEntry(item))
		}
		data.Sections = append(data.Sections, section)
	}

	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, "index.html.tmpl", data); err != nil {
		return nil, fmt.Errorf("failed to render page: %w", err)
	}

	return buf.Bytes(), nil
}
