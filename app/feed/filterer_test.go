package feed

import (
	"math"
	"testing"

	"github.com/lysyi3m/rss-digest/app/config"
	"github.com/lysyi3m/rss-digest/app/news"
)

func TestFilterer_KeepsRelevantItems(t *testing.T) {
	filterer := NewFilterer(config.Keywords{Include: []string{"AI"}})

	items := []news.NewsItem{
		{Title: "AI breakthrough"},
		{Title: "Sports update"},
	}

	result := filterer.Run(items)

	if len(result) != 1 {
		t.Fatalf("Expected 1 item, got %d", len(result))
	}
	if result[0].Title != "AI breakthrough" {
		t.Errorf("Expected 'AI breakthrough', got %q", result[0].Title)
	}
	if result[0].MatchScore == nil || *result[0].MatchScore <= 0 {
		t.Errorf("Expected positive match score, got %v", result[0].MatchScore)
	}
}

func TestFilterer_ExcludeBeatsIncludes(t *testing.T) {
	filterer := NewFilterer(config.Keywords{
		Include: []string{"AI", "robotics", "chips"},
		Exclude: []string{"advertisement"},
	})

	items := []news.NewsItem{
		{Title: "AI robotics chips", Description: "Advertisement for AI gear"},
		{Title: "AI robotics chips", Description: "Industry report"},
	}

	result := filterer.Run(items)

	if len(result) != 1 {
		t.Fatalf("Expected 1 item, got %d", len(result))
	}
	if result[0].Description != "Industry report" {
		t.Errorf("Expected the non-excluded item, got %q", result[0].Description)
	}
}

func TestFilterer_EmptyInputs(t *testing.T) {
	filterer := NewFilterer(config.Keywords{Include: []string{"AI"}})
	if result := filterer.Run(nil); result == nil || len(result) != 0 {
		t.Errorf("Expected empty non-nil slice, got %v", result)
	}

	items := []news.NewsItem{
		{Title: "Sports update", Description: "advertisement"},
		{Title: "Weather"},
	}
	noKeywords := NewFilterer(config.Keywords{Exclude: []string{"advertisement"}})
	result := noKeywords.Run(items)

	if len(result) != 2 {
		t.Fatalf("Expected items unchanged, got %d", len(result))
	}
	for i, item := range result {
		if item.MatchScore != nil {
			t.Errorf("Item %d should not be scored without include keywords", i)
		}
		if item.Title != items[i].Title {
			t.Errorf("Item %d order changed", i)
		}
	}
}

func TestFilterer_FrequencyScoring(t *testing.T) {
	filterer := NewFilterer(config.Keywords{Include: []string{"go"}})

	items := []news.NewsItem{
		// title: 1 hit / 4 words, description: 1 hit / 2 words, content: none
		{Title: "Learning Go this week", Description: "<b>Go</b> rocks", Content: "nothing here"},
	}

	result := filterer.Run(items)
	if len(result) != 1 {
		t.Fatalf("Expected 1 item, got %d", len(result))
	}

	want := 0.7*0.25 + 0.2*0.5
	if got := result[0].Score(); math.Abs(got-want) > 1e-9 {
		t.Errorf("Expected score %f, got %f", want, got)
	}
}

func TestFilterer_FrequencyCapsFieldMatch(t *testing.T) {
	filterer := NewFilterer(config.Keywords{Include: []string{"a"}})

	result := filterer.Run([]news.NewsItem{{Title: "banana"}})
	if len(result) != 1 {
		t.Fatalf("Expected 1 item, got %d", len(result))
	}
	if got := result[0].Score(); math.Abs(got-0.7) > 1e-9 {
		t.Errorf("Expected capped title score 0.7, got %f", got)
	}
}

func TestFilterer_MinScore(t *testing.T) {
	minScore := 0.1
	filterer := NewFilterer(config.Keywords{Include: []string{"AI"}, MinScore: &minScore})

	items := []news.NewsItem{
		{Title: "AI"},
		{Title: "One two three four five six seven eight", Content: "mentions AI once among many other words here"},
	}

	result := filterer.Run(items)
	if len(result) != 1 {
		t.Fatalf("Expected 1 item above min score, got %d", len(result))
	}
	if result[0].Title != "AI" {
		t.Errorf("Expected 'AI', got %q", result[0].Title)
	}
}

func TestFilterer_PresenceScoring(t *testing.T) {
	filterer := NewFilterer(config.Keywords{
		Include: []string{"AI"},
		Scoring: config.ScoringPresence,
	})

	items := []news.NewsItem{
		{Title: "Weather", Content: "AI forecasts"},
		{Title: "AI news", Description: "About AI"},
		{Title: "Nothing"},
	}

	result := filterer.Run(items)
	if len(result) != 2 {
		t.Fatalf("Expected 2 items, got %d", len(result))
	}
	if result[0].Title != "AI news" || math.Abs(result[0].Score()-0.9) > 1e-9 {
		t.Errorf("Expected 'AI news' with 0.9 first, got %q with %f", result[0].Title, result[0].Score())
	}
	if math.Abs(result[1].Score()-0.1) > 1e-9 {
		t.Errorf("Expected content-only match 0.1, got %f", result[1].Score())
	}
}

func TestFilterer_SortIsStable(t *testing.T) {
	filterer := NewFilterer(config.Keywords{Include: []string{"ai"}, Scoring: config.ScoringPresence})

	items := []news.NewsItem{
		{Title: "first ai", Link: "1"},
		{Title: "second ai", Link: "2"},
		{Title: "third ai", Link: "3"},
	}

	result := filterer.Run(items)
	for i, want := range []string{"1", "2", "3"} {
		if result[i].Link != want {
			t.Errorf("Expected link %s at %d, got %s", want, i, result[i].Link)
		}
	}
}

func TestFilterer_CaseInsensitive(t *testing.T) {
	filterer := NewFilterer(config.Keywords{Include: []string{"STRASSE"}, Scoring: config.ScoringPresence})

	result := filterer.Run([]news.NewsItem{{Title: "Neue Straße eröffnet"}})
	if len(result) != 1 {
		t.Errorf("Expected case-folded match, got %d items", len(result))
	}
}

func TestFilterer_ZeroMinScoreDropsUnmatched(t *testing.T) {
	minScore := 0.0
	filterer := NewFilterer(config.Keywords{Include: []string{"AI"}, MinScore: &minScore})

	result := filterer.Run([]news.NewsItem{
		{Title: "AI breakthrough"},
		{Title: "Sports update"},
	})

	if len(result) != 1 {
		t.Fatalf("Expected 1 item, got %d", len(result))
	}
	if result[0].Title != "AI breakthrough" {
		t.Errorf("Expected 'AI breakthrough', got %q", result[0].Title)
	}
}

func TestFilterer_ExcludePhraseDoesNotSpanFields(t *testing.T) {
	filterer := NewFilterer(config.Keywords{
		Include: []string{"market"},
		Exclude: []string{"breaking market"},
	})

	result := filterer.Run([]news.NewsItem{
		{Title: "News breaking", Description: "market rallies"},
		{Title: "Breaking market news", Description: "market rallies"},
	})

	if len(result) != 1 {
		t.Fatalf("Expected 1 item, got %d", len(result))
	}
	if result[0].Title != "News breaking" {
		t.Errorf("Expected item without the phrase to survive, got %q", result[0].Title)
	}
}
