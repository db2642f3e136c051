package render

import (
	"encoding/xml"
	"strings"
	"testing"
	"time"

	"github.com/lysyi3m/rss-digest/app/news"
)

func TestRSSRenderer(t *testing.T) {
	generatedAt := time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)

	out, err := NewRSSRenderer("1.0.0", "http://localhost:8080/feed.xml").Run(sampleItems(), generatedAt)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	rss := string(out)

	for _, want := range []string{
		`<?xml version="1.0" encoding="UTF-8"?>`,
		`<atom:link href="http://localhost:8080/feed.xml" rel="self" type="application/rss+xml" />`,
		"<lastBuildDate>Fri, 10 May 2024 12:00:00 +0000</lastBuildDate>",
		"<generator>RSS-Digest/1.0.0</generator>",
		`<guid isPermaLink="true">https://example.com/1</guid>`,
		"<title>AI robotics breakthrough</title>",
		"<pubDate>Fri, 10 May 2024 08:00:00 +0000</pubDate>",
		"<category>tech</category>",
		"<description>No description available</description>",
	} {
		if !strings.Contains(rss, want) {
			t.Errorf("Expected RSS to contain %q", want)
		}
	}

	if strings.Count(rss, "<item>") != 2 {
		t.Errorf("Expected 2 items, got %d", strings.Count(rss, "<item>"))
	}
}

func TestRSSRendererWithoutSelfLink(t *testing.T) {
	out, err := NewRSSRenderer("dev", "").Run(nil, time.Now())
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(out), "atom:link") {
		t.Error("Expected no self link when none is configured")
	}
	if !strings.HasSuffix(string(out), "</channel>\n</rss>") {
		t.Error("Expected a closed channel")
	}
}

func TestRSSRendererEscapesCDATATerminator(t *testing.T) {
	items := []news.NewsItem{{
		Title:       "Markup",
		Link:        "https://example.com/markup",
		Description: "Short",
		Content:     "<p>a]]>b</p>",
	}}

	out, err := NewRSSRenderer("1.0.0", "").Run(items, time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	var doc struct {
		Items []struct {
			Content string `xml:"http://purl.org/rss/1.0/modules/content/ encoded"`
		} `xml:"channel>item"`
	}
	if err := xml.Unmarshal(out, &doc); err != nil {
		t.Fatalf("Expected well-formed XML, got: %v", err)
	}
	if len(doc.Items) != 1 || doc.Items[0].Content != "<p>a]]>b</p>" {
		t.Errorf("Expected content to survive intact, got %+v", doc.Items)
	}
}
