package render

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gingfrederik/docx"
)

type DocxRenderer struct{}

func NewDocxRenderer() *DocxRenderer {
	return &DocxRenderer{}
}

// Run saves a report of groups to path, replacing any previous file.
func (r *DocxRenderer) Run(path, title string, total int, groups []Group, generatedAt time.Time) error {
	f := docx.NewFile()

	run := f.AddParagraph().AddText(title)
	run.Size(20)

	run = f.AddParagraph().AddText(fmt.Sprintf("Generated: %s | Articles: %d",
		generatedAt.Format("2006-01-02 15:04:05 MST"), total))
	run.Size(10)
	run.Color("808080")
	f.AddParagraph()

	for _, group := range groups {
		run = f.AddParagraph().AddText(fmt.Sprintf("%s (%d)", group.Name, len(group.Items)))
		run.Size(18)

		for _, item := range group.Items {
			entry := newEntry(item)

			run = f.AddParagraph().AddText(entry.Title)
			run.Size(14)

			run = f.AddParagraph().AddText(fmt.Sprintf("Source: %s | Category: %s | Date: %s",
				entry.Source, entry.Category, entry.Published))
			run.Size(10)
			run.Color("808080")

			run = f.AddParagraph().AddText(entry.Link)
			run.Size(10)
			run.Color("0000FF")

			if entry.Description != "" {
				f.AddParagraph().AddText(entry.Description)
			}
			f.AddParagraph()
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create report directory: %w", err)
	}

	tmp := path + ".tmp"
	if err := f.Save(tmp); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to save report: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("failed to replace report: %w", err)
	}

	return nil
}
