package publish

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"
)

var contentTypes = map[string]string{
	".html": "text/html; charset=utf-8",
	".json": "application/json",
	".md":   "text/markdown; charset=utf-8",
	".xml":  "application/rss+xml; charset=utf-8",
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
}

// ContentType maps a file name to the content type it is served with.
func ContentType(name string) string {
	if contentType, ok := contentTypes[strings.ToLower(filepath.Ext(name))]; ok {
		return contentType
	}
	return "application/octet-stream"
}

type Publisher struct {
	uploader Uploader
	prefix   string
	logger   *slog.Logger
}

func NewPublisher(uploader Uploader, prefix string, logger *slog.Logger) *Publisher {
	return &Publisher{
		uploader: uploader,
		prefix:   strings.Trim(prefix, "/"),
		logger:   logger,
	}
}

// ObjectName is the bucket key for a local file name.
func (p *Publisher) ObjectName(name string) string {
	if p.prefix == "" {
		return name
	}
	return path.Join(p.prefix, name)
}

// Run uploads each local file under its base name. Missing files are skipped.
func (p *Publisher) Run(ctx context.Context, files []string) (int, error) {
	uploaded := 0
	for _, file := range files {
		data, err := os.ReadFile(file)
		if errors.Is(err, os.ErrNotExist) {
			p.logger.Debug("Skipping missing artifact", "file", file)
			continue
		}
		if err != nil {
			return uploaded, fmt.Errorf("failed to read %s: %w", file, err)
		}

		name := p.ObjectName(filepath.Base(file))
		if err := p.uploader.Upload(ctx, name, ContentType(file), data); err != nil {
			return uploaded, fmt.Errorf("failed to upload %s: %w", name, err)
		}

		p.logger.Debug("Artifact uploaded", "object", name, "bytes", len(data))
		uploaded++
	}

	return uploaded, nil
}
