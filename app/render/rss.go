package render

import (
	"bytes"
	"cmp"
	"encoding/xml"
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/lysyi3m/rss-digest/app/news"
)

// RSSRenderer re-publishes the filtered items as an RSS 2.0 feed.
type RSSRenderer struct {
	version  string
	selfLink string
}

func NewRSSRenderer(version, selfLink string) *RSSRenderer {
	return &RSSRenderer{version: version, selfLink: selfLink}
}

func (g *RSSRenderer) Run(items []news.NewsItem, generatedAt time.Time) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(`<?xml version="1.0" encoding="UTF-8"?>`)
	buf.WriteString("\n")
	buf.WriteString(`<rss version="2.0" xmlns:content="http://purl.org/rss/1.0/modules/content/" xmlns:atom="http://www.w3.org/2005/Atom">`)
	buf.WriteString("\n  <channel>\n")

	g.writeElement(&buf, "title", "News Digest", 4)
	g.writeElement(&buf, "description", fmt.Sprintf("Keyword-filtered news for %s", generatedAt.Format(news.DateLayout)), 4)

	if g.selfLink != "" {
		g.writeElement(&buf, "link", g.selfLink, 4)
		buf.WriteString(fmt.Sprintf("    <atom:link href=\"%s\" rel=\"self\" type=\"application/rss+xml\" />\n",
			html.EscapeString(g.selfLink)))
	}

	g.writeElement(&buf, "lastBuildDate", generatedAt.Format(time.RFC1123Z), 4)
	g.writeElement(&buf, "generator", fmt.Sprintf("RSS-Digest/%s", g.version), 4)

	for _, item := range items {
		g.writeItem(&buf, item)
	}

	buf.WriteString("  </channel>\n</rss>")

	return buf.Bytes(), nil
}

func (g *RSSRenderer) writeItem(buf *bytes.Buffer, item news.NewsItem) {
	buf.WriteString("    <item>\n")

	if item.Link != "" {
		buf.WriteString(fmt.Sprintf("      <guid isPermaLink=\"%t\">", g.isURL(item.Link)))
		xml.EscapeText(buf, []byte(item.Link))
		buf.WriteString("</guid>\n")
	}

	g.writeElement(buf, "title", news.StripHTML(item.Title), 6)
	g.writeElement(buf, "link", item.Link, 6)
	g.writeElement(buf, "description", cmp.Or(item.Description, "No description available"), 6)

	if item.Content != "" && item.Content != item.Description {
		buf.WriteString("      <content:encoded><![CDATA[")
		// A literal "]]>" would end the section early; split it across two.
		buf.WriteString(strings.ReplaceAll(item.Content, "]]>", "]]]]><![CDATA[>"))
		buf.WriteString("]]></content:encoded>\n")
	}

	if published, ok := news.ParseDate(item.Published); ok {
		g.writeElement(buf, "pubDate", published.Format(time.RFC1123Z), 6)
	}

	g.writeElement(buf, "category", item.Category, 6)

	buf.WriteString("    </item>\n")
}

func (g *RSSRenderer) writeElement(buf *bytes.Buffer, tag, content string, indent int) {
	if content == "" {
		return
	}

	for i := 0; i < indent; i++ {
		buf.WriteByte(' ')
	}

	buf.WriteString("<")
	buf.WriteString(tag)
	buf.WriteString(">")
	xml.EscapeText(buf, []byte(content))
	buf.WriteString("</")
	buf.WriteString(tag)
	buf.WriteString(">\n")
}

func (g *RSSRenderer) isURL(s string) bool {
	return (len(s) > 7 && s[:7] == "http://") || (len(s) > 8 && s[:8] == "https://")
}
