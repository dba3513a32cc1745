package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"

	"homestead/internal/game"
)

var (
	stdinReader = bufio.NewReader(os.Stdin)
	accent      = color.New(color.FgCyan, color.Bold)
	success     = color.New(color.FgGreen, color.Bold)
	warn        = color.New(color.FgYellow, color.Bold)
	danger      = color.New(color.FgRed, color.Bold)
	neutral     = color.New(color.FgHiWhite)
)

func printSuccess(msg string) {
	success.Println(msg)
}

func printWarn(msg string) {
	warn.Println(msg)
}

func printError(msg string) {
	danger.Println(msg)
}

func printInfo(msg string) {
	neutral.Println(msg)
}

func promptRequired(label string) (string, error) {
	for {
		fmt.Printf("%s: ", label)
		text, err := stdinReader.ReadString('\n')
		if err != nil {
			return "", err
		}
		text = strings.TrimSpace(text)
		if text != "" {
			return text, nil
		}
		printWarn(label + " is required.")
	}
}

func promptOptional(label string) (string, error) {
	fmt.Printf("%s: ", label)
	text, err := stdinReader.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}

func promptInt(label string, min int) (int, error) {
	for {
		text, err := promptRequired(label)
		if err != nil {
			return 0, err
		}
		v, err := parsePositiveInt(text, min)
		if err != nil {
			printWarn(fmt.Sprintf("Enter a whole number >= %d.", min))
			continue
		}
		return v, nil
	}
}

func parsePositiveInt(text string, min int) (int, error) {
	v, err := strconv.Atoi(text)
	if err != nil {
		return 0, err
	}
	if v < min {
		return 0, fmt.Errorf("value must be >= %d", min)
	}
	return v, nil
}

// promptChoiceIndex reads a 1-based option number and returns it 0-based.
func promptChoiceIndex(label string, count int) (int, error) {
	for {
		v, err := promptInt(fmt.Sprintf("%s (1-%d)", label, count), 1)
		if err != nil {
			return 0, err
		}
		if v <= count {
			return v - 1, nil
		}
		printWarn(fmt.Sprintf("Pick a number between 1 and %d.", count))
	}
}

func renderState(s game.GameState) error {
	accent.Printf("\n== %s (Day %d) ==\n", strings.ToUpper(s.FarmName), s.Day)
	fmt.Printf("Weather:  %s\n", s.Weather)
	fmt.Printf("Money:    %s\n", colorizeMoney(s.Money))
	fmt.Printf("Feed:     %.1f bales\n", s.Feed)
	fmt.Printf("Energy:   %d/%d\n", s.Energy, s.MaxEnergy)
	fmt.Printf("Stables:  %s   Fences: %s\n", gauge(s.Cleanliness), gauge(s.Infrastructure))
	fmt.Printf("Plots:    %dx%d\n", s.FarmRows, s.FarmCols)

	fmt.Println()
	accent.Println("Field")
	if s.CropGrowth == 0 {
		printInfo("Nothing planted.")
	} else {
		pests := ""
		if s.FieldPests {
			pests = danger.Sprint("  PESTS!")
		}
		fmt.Printf("%s: growth %d%%, water %s%s\n", string(s.ActiveCrop), s.CropGrowth, gauge(s.FieldWater), pests)
	}

	fmt.Println()
	accent.Println("Livestock")
	coop := "caged"
	if s.IsFreeRange {
		coop = "free range"
	}
	fmt.Printf("Chickens: %d (%s)   Dairy: %d   Beef: %d ($%d)   Goats: %d   Pigs: %d ($%d)\n",
		s.Chickens, coop, s.DairyCows, s.BeefCows, s.BeefPrice, s.Goats, s.Pigs, s.PigPrice)
	fmt.Printf("Produce:  eggs=%d milk=%d manure=%d wool=%d\n", s.Eggs, s.Milk, s.Manure, s.Wool)

	if len(s.Flocks) > 0 {
		fmt.Println()
		accent.Println("Flocks")
		fmt.Printf("%-10s %6s %8s %8s %8s %6s %6s  %-36s\n", "TYPE", "COUNT", "HUNGER", "HAPPY", "HEALTH", "FED", "READY", "ID")
		for _, f := range s.Flocks {
			fed := "no"
			if f.FedToday {
				fed = "yes"
			}
			fmt.Printf("%-10s %6d %8s %8s %8s %6s %6d  %-36s\n",
				string(f.Type), f.Count, gauge(f.Hunger), gauge(f.Happiness), gauge(f.Health), fed, f.ProductionReady, f.ID)
		}
	}

	if len(s.Horses) > 0 {
		fmt.Println()
		accent.Println("Horses")
		fmt.Printf("%-14s %-14s %4s %8s %8s %8s %5s %8s  %-36s\n", "NAME", "BREED", "LVL", "HEALTH", "HUNGER", "HAPPY", "XP", "VALUE", "ID")
		for _, h := range s.Horses {
			fmt.Printf("%-14s %-14s %4d %8s %8s %8s %5d %8s  %-36s\n",
				truncate(h.Name, 14), truncate(string(h.Breed), 14), h.Level,
				gauge(h.Health), gauge(100-h.Hunger), gauge(h.Happiness),
				h.Experience, colorizeMoney(h.Value), h.ID)
		}
	}

	if len(s.Equipment) > 0 {
		fmt.Println()
		accent.Println("Equipment")
		names := make([]string, 0, len(s.Equipment))
		for _, e := range s.Equipment {
			names = append(names, string(e))
		}
		fmt.Println(strings.Join(names, ", "))
	}

	if len(s.News) > 0 {
		fmt.Println()
		accent.Println("Market Watch")
		for _, n := range s.News {
			printInfo("  " + n)
		}
	}

	if s.ActiveEvent != nil {
		fmt.Println()
		warn.Println("An event awaits your decision. Run `hst event`.")
	}
	fmt.Println()
	return nil
}

// renderStateSummary prints the one-line resource footer after an action.
func renderStateSummary(s game.GameState) error {
	fmt.Printf("Money %s | Feed %.1f | Energy %d/%d\n", colorizeMoney(s.Money), s.Feed, s.Energy, s.MaxEnergy)
	if s.ActiveEvent != nil {
		warn.Println("An event awaits your decision. Run `hst event`.")
	}
	return nil
}

func renderDayResult(result game.DayResult) error {
	accent.Printf("\n== DAY %d ==\n", result.State.Day)
	for _, l := range result.Logs {
		switch l.Type {
		case game.LogSuccess:
			success.Println("  " + l.Message)
		case game.LogWarning:
			warn.Println("  " + l.Message)
		case game.LogDanger:
			danger.Println("  " + l.Message)
		default:
			printInfo("  " + l.Message)
		}
	}
	if result.Narrative != "" {
		fmt.Println()
		neutral.Println(result.Narrative)
	}
	if result.NewEvent != nil {
		fmt.Println()
		renderEvent(result.NewEvent)
		warn.Println("Resolve it with `hst event`.")
	}
	fmt.Println()
	return renderStateSummary(result.State)
}

func renderEvent(ev *game.FarmEvent) {
	accent.Printf("\n== EVENT: %s ==\n", ev.Title)
	fmt.Println(ev.Description)
	for i, opt := range ev.Options {
		fmt.Printf("  %d) %s\n", i+1, opt.Label)
	}
}

func renderLeaderboard(rows []game.LeaderboardRow) error {
	accent.Println("\n== RICHEST FARMS ==")
	if len(rows) == 0 {
		printInfo("No farms yet.")
		return nil
	}
	fmt.Printf("%-6s %-24s %6s %12s\n", "RANK", "FARM", "DAY", "MONEY")
	for i, row := range rows {
		fmt.Printf("%-6d %-24s %6d %12s\n", i+1, truncate(row.FarmName, 24), row.Day, colorizeMoney(row.Money))
	}
	fmt.Println()
	return nil
}

func colorizeMoney(v int) string {
	text := "$" + comma(v)
	if v < 0 {
		return danger.Sprint(text)
	}
	return success.Sprint(text)
}

// gauge colors a 0..100 reading by how worrying it is.
func gauge(v int) string {
	text := fmt.Sprintf("%d%%", v)
	switch {
	case v < 25:
		return danger.Sprint(text)
	case v < 60:
		return warn.Sprint(text)
	default:
		return success.Sprint(text)
	}
}

func comma(v int) string {
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}
	s := strconv.Itoa(v)
	if len(s) <= 3 {
		return sign + s
	}
	var b strings.Builder
	pre := len(s) % 3
	if pre > 0 {
		b.WriteString(s[:pre])
		if len(s) > pre {
			b.WriteByte(',')
		}
	}
	for i := pre; i < len(s); i += 3 {
		b.WriteString(s[i : i+3])
		if i+3 < len(s) {
			b.WriteByte(',')
		}
	}
	return sign + b.String()
}

func truncate(s string, n int) string {
	s = strings.TrimSpace(s)
	if n <= 0 || len(s) <= n {
		return s
	}
	if n <= 3 {
		return s[:n]
	}
	return s[:n-3] + "..."
}
