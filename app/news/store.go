package news

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

const (
	RawNewsFile          = "raw_news.json"
	FilteredNewsFile     = "filtered_news.json"
	SummaryFile          = "summary.json"
	InvalidSourcesFile   = "invalid_rss_sources.json"
	RawMarkdownFile      = "raw_news.md"
	FilteredMarkdownFile = "filtered_news.md"
	FilteredDocxFile     = "filtered_news.docx"
	FilteredRSSFile      = "filtered_news.xml"
)

// Store reads and writes pipeline artifacts in a single output directory.
// Every write replaces the whole file.
type Store struct {
	dir string
}

func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

func (s *Store) Dir() string {
	return s.dir
}

func (s *Store) Path(name string) string {
	return filepath.Join(s.dir, name)
}

func (s *Store) LoadItems(name string) ([]NewsItem, error) {
	var items []NewsItem
	if err := ReadJSON(s.Path(name), &items); err != nil {
		return nil, err
	}
	if items == nil {
		items = []NewsItem{}
	}
	return items, nil
}

func (s *Store) SaveItems(name string, items []NewsItem) error {
	if items == nil {
		items = []NewsItem{}
	}
	return WriteJSON(s.Path(name), items)
}

func (s *Store) LoadInvalidSources() ([]InvalidSourceRecord, error) {
	var records []InvalidSourceRecord
	if err := ReadJSON(s.Path(InvalidSourcesFile), &records); err != nil {
		return nil, err
	}
	return records, nil
}

func (s *Store) SaveInvalidSources(records []InvalidSourceRecord) error {
	if records == nil {
		records = []InvalidSourceRecord{}
	}
	return WriteJSON(s.Path(InvalidSourcesFile), records)
}

func (s *Store) LoadSummary() (*Summary, error) {
	var summary Summary
	if err := ReadJSON(s.Path(SummaryFile), &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}

func (s *Store) SaveSummary(summary Summary) error {
	return WriteJSON(s.Path(SummaryFile), summary)
}

func (s *Store) WriteFile(name string, data []byte) error {
	return WriteFileAtomic(s.Path(name), data)
}

// ReadJSON decodes the file at path into v. A missing file yields an error
// matching os.ErrNotExist.
func ReadJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return nil
}

// WriteJSON encodes v with two-space indentation, leaving non-ASCII and HTML
// characters unescaped.
func WriteJSON(path string, v any) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	return WriteFileAtomic(path, buf.Bytes())
}

func WriteFileAtomic(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", path, err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}
