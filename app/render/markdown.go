package render

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	md "github.com/JohannesKaufmann/html-to-markdown"

	"github.com/lysyi3m/rss-digest/app/news"
)

type MarkdownRenderer struct {
	converter *md.Converter
}

func NewMarkdownRenderer() *MarkdownRenderer {
	return &MarkdownRenderer{
		converter: md.NewConverter("", true, nil),
	}
}

// Run writes a Markdown report of groups. Descriptions are converted from HTML
// before truncation so links and emphasis survive.
func (r *MarkdownRenderer) Run(title string, total int, groups []Group, generatedAt time.Time) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "# %s\n\n", title)
	fmt.Fprintf(&buf, "Generated: %s  \n", generatedAt.Format("2006-01-02 15:04:05 MST"))
	fmt.Fprintf(&buf, "Articles: %d\n", total)

	for _, group := range groups {
		fmt.Fprintf(&buf, "\n## %s (%d)\n", group.Name, len(group.Items))

		for _, item := range group.Items {
			if err := r.writeItem(&buf, item); err != nil {
				return nil, err
			}
		}
	}

	return buf.Bytes(), nil
}

func (r *MarkdownRenderer) writeItem(buf *bytes.Buffer, item news.NewsItem) error {
	entry := newEntry(item)

	fmt.Fprintf(buf, "\n### [%s](%s)\n\n", escapeMarkdown(entry.Title), entry.Link)
	fmt.Fprintf(buf, "- Published: %s\n", entry.Published)
	fmt.Fprintf(buf, "- Source: %s | Category: %s\n", entry.Source, entry.Category)
	if entry.Score != "" {
		fmt.Fprintf(buf, "- Score: %s\n", entry.Score)
	}

	description, err := r.converter.ConvertString(item.Description)
	if err != nil {
		return fmt.Errorf("failed to convert description: %w", err)
	}
	description = news.Truncate(strings.TrimSpace(description), descriptionLimit)
	if description != "" {
		fmt.Fprintf(buf, "\n%s\n", description)
	}

	return nil
}

var markdownEscaper = strings.NewReplacer("[", `\[`, "]", `\]`)

func escapeMarkdown(s string) string {
	return markdownEscaper.Replace(s)
}
