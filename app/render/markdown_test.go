package render

import (
	"strings"
	"testing"
	"time"

	"github.com/lysyi3m/rss-digest/app/news"
)

func TestMarkdownRenderer(t *testing.T) {
	renderer := NewMarkdownRenderer()
	items := []news.NewsItem{
		{
			Title:       "Go [1.23] released",
			Link:        "https://go.dev/blog",
			Description: `<p>The <strong>new</strong> release. <a href="https://go.dev/doc">Notes</a></p>`,
			Published:   "Fri, 10 May 2024 08:00:00 GMT",
			Source:      "Go Blog",
			Category:    "dev",
		},
	}

	out, err := renderer.Run("Raw News", len(items), GroupBySource(items), time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	doc := string(out)

	for _, want := range []string{
		"# Raw News",
		"Articles: 1",
		"## Go Blog (1)",
		`### [Go \[1.23\] released](https://go.dev/blog)`,
		"- Published: 2024-05-10",
		"- Source: Go Blog | Category: dev",
		"**new**",
		"[Notes](https://go.dev/doc)",
	} {
		if !strings.Contains(doc, want) {
			t.Errorf("Expected markdown to contain %q\n%s", want, doc)
		}
	}
	if strings.Contains(doc, "Score:") {
		t.Error("Expected no score line for unscored items")
	}
}

func TestMarkdownRendererEmpty(t *testing.T) {
	out, err := NewMarkdownRenderer().Run("Filtered News", 0, nil, time.Now())
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(out), "Articles: 0") {
		t.Errorf("Expected header for empty report, got %q", out)
	}
}
