// Package narrative produces the flavor text layer: daily summaries, news
// headlines, farm names and horse bios. Generators are strictly best-effort;
// game logic never depends on their output and the service swallows their
// errors.
package narrative

import (
	"context"
	"fmt"
)

// DayFacts is the context handed to the summary generator after a day ends.
type DayFacts struct {
	Day      int
	Weather  string
	Money    int
	Horses   int
	Messages []string
}

// Generator produces flavor text. Implementations must respect the context
// deadline; callers bound every call with a timeout.
type Generator interface {
	DailySummary(ctx context.Context, facts DayFacts) (string, error)
	Headlines(ctx context.Context, day int) ([]string, error)
	HorseBio(ctx context.Context, breed string) (string, error)
	FarmName(ctx context.Context) string
}

// Fallback is the canned-text generator used when no API key is configured
// or the remote call fails. It never errors.
type Fallback struct{}

var fallbackSummaries = []string{
	"Another day on the ranch winds down as the animals settle in for the night.",
	"Dust settles over the yard. Tomorrow brings more work, as always.",
	"The day's chores are done. The farmhouse lights flicker on at dusk.",
	"Evening falls quiet over the fields after a long working day.",
}

var fallbackHeadlines = []string{
	"County fair scheduled for next month",
	"Feed prices holding steady across the region",
	"Extension office offers free soil testing",
	"4-H enrollment opens for the season",
	"Rainfall totals near seasonal average",
}

var fallbackFarmNames = []string{
	"Willow Creek Ranch", "Dusty Trail Farm", "Cedar Hollow Homestead",
	"Big Sky Acres", "Clover Hill Ranch",
}

func (Fallback) DailySummary(_ context.Context, facts DayFacts) (string, error) {
	return fmt.Sprintf("Day %d: %s. %s", facts.Day, facts.Weather,
		fallbackSummaries[facts.Day%len(fallbackSummaries)]), nil
}

func (Fallback) Headlines(_ context.Context, day int) ([]string, error) {
	n := len(fallbackHeadlines)
	return []string{
		fallbackHeadlines[day%n],
		fallbackHeadlines[(day+2)%n],
		fallbackHeadlines[(day+4)%n],
	}, nil
}

func (Fallback) HorseBio(_ context.Context, breed string) (string, error) {
	return fmt.Sprintf("A sturdy %s with a calm temperament and a good work ethic.", breed), nil
}

func (Fallback) FarmName(_ context.Context) string {
	return fallbackFarmNames[0]
}
