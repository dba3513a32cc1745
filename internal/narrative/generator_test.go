package narrative

import (
	"context"
	"strings"
	"testing"
)

func TestFallbackDailySummary(t *testing.T) {
	var g Fallback
	got, err := g.DailySummary(context.Background(), DayFacts{Day: 3, Weather: "Rainy", Money: 500})
	if err != nil {
		t.Fatalf("DailySummary: %v", err)
	}
	if !strings.HasPrefix(got, "Day 3: Rainy.") {
		t.Fatalf("summary = %q", got)
	}
}

func TestFallbackHeadlines(t *testing.T) {
	var g Fallback
	lines, err := g.Headlines(context.Background(), 7)
	if err != nil {
		t.Fatalf("Headlines: %v", err)
	}
	if len(lines) != 3 {
		t.Fatalf("got %d headlines, want 3", len(lines))
	}
	for i, l := range lines {
		if l == "" {
			t.Fatalf("headline %d empty", i)
		}
	}
	// Same day must produce the same paper.
	again, _ := g.Headlines(context.Background(), 7)
	for i := range lines {
		if lines[i] != again[i] {
			t.Fatal("headlines not deterministic for a given day")
		}
	}
}

func TestFallbackFarmName(t *testing.T) {
	var g Fallback
	if g.FarmName(context.Background()) == "" {
		t.Fatal("empty farm name")
	}
}
