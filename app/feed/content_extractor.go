package feed

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-shiori/go-readability"
)

type ContentExtractor struct {
	fetcher *Fetcher
	logger  *slog.Logger
}

func NewContentExtractor(fetcher *Fetcher, logger *slog.Logger) *ContentExtractor {
	return &ContentExtractor{
		fetcher: fetcher,
		logger:  logger,
	}
}

// Extract downloads the article page at link and returns its main content.
func (e *ContentExtractor) Extract(ctx context.Context, link string) (string, error) {
	data, err := e.fetcher.Run(ctx, link)
	if err != nil {
		return "", err
	}
	return e.Run(data)
}

func (e *ContentExtractor) Run(data []byte) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("HTML data is empty")
	}

	article, err := readability.FromReader(strings.NewReader(string(data)), nil)
	if err != nil {
		return "", fmt.Errorf("failed to extract content: %w", err)
	}

	if article.Content == "" {
		return "", fmt.Errorf("no content extracted from HTML data")
	}

	e.logger.Debug("Content extracted successfully",
		"title", article.Title,
		"content_length", len(article.Content))

	return article.Content, nil
}
