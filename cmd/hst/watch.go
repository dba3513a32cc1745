package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	cl "homestead/internal/cli"
	"homestead/internal/game"
)

const watchPollEvery = 5 * time.Second

var (
	watchTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57")).
			Padding(0, 1)
	watchLabelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	watchValueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	watchDangerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	watchWarnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	watchGoodStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("78"))
	watchBoxStyle    = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
	watchHelpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

func newWatchCmd(apiBase *string) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Live farm dashboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := cl.LoadSession()
			if err != nil {
				return fmt.Errorf("run `hst init` first: %w", err)
			}
			m := newWatchModel(newClient(apiBase), sess.PlayerID)
			_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
			return err
		},
	}
}

type watchStateMsg game.GameState

type watchErrMsg struct{ err error }

type watchTickMsg time.Time

type watchModel struct {
	client   *cl.Client
	playerID string
	spinner  spinner.Model
	state    *game.GameState
	err      error
	fetched  time.Time
}

func newWatchModel(client *cl.Client, playerID string) watchModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	return watchModel{
		client:   client,
		playerID: playerID,
		spinner:  sp,
	}
}

func (m watchModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.fetchState)
}

func (m watchModel) fetchState() tea.Msg {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	state, err := m.client.State(ctx, m.playerID)
	if err != nil {
		return watchErrMsg{err: err}
	}
	return watchStateMsg(state)
}

func watchTick() tea.Cmd {
	return tea.Tick(watchPollEvery, func(t time.Time) tea.Msg {
		return watchTickMsg(t)
	})
}

func (m watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "r":
			return m, m.fetchState
		}
	case watchStateMsg:
		state := game.GameState(msg)
		m.state = &state
		m.err = nil
		m.fetched = time.Now()
		return m, watchTick()
	case watchErrMsg:
		m.err = msg.err
		return m, watchTick()
	case watchTickMsg:
		return m, m.fetchState
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m watchModel) View() string {
	var b strings.Builder

	if m.state == nil {
		b.WriteString(m.spinner.View())
		if m.err != nil {
			b.WriteString(watchDangerStyle.Render(" " + m.err.Error()))
		} else {
			b.WriteString(" loading farm state...")
		}
		b.WriteString("\n")
		return b.String()
	}
	s := m.state

	b.WriteString(watchTitleStyle.Render(fmt.Sprintf(" %s | Day %d | %s ", s.FarmName, s.Day, s.Weather)))
	b.WriteString("\n\n")

	b.WriteString(watchBoxStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		watchRow("Money", watchMoney(s.Money)),
		watchRow("Feed", fmt.Sprintf("%.1f bales", s.Feed)),
		watchRow("Energy", fmt.Sprintf("%d/%d", s.Energy, s.MaxEnergy)),
		watchRow("Stables", watchGauge(s.Cleanliness)),
		watchRow("Fences", watchGauge(s.Infrastructure)),
	)))
	b.WriteString("\n\n")

	stock := fmt.Sprintf("chickens %d | dairy %d | beef %d ($%d) | goats %d | pigs %d ($%d) | horses %d",
		s.Chickens, s.DairyCows, s.BeefCows, s.BeefPrice, s.Goats, s.Pigs, s.PigPrice, len(s.Horses))
	b.WriteString(watchValueStyle.Render(stock))
	b.WriteString("\n")

	if s.CropGrowth > 0 {
		crop := fmt.Sprintf("crop %s: growth %d%%, water %d%%", s.ActiveCrop, s.CropGrowth, s.FieldWater)
		if s.FieldPests {
			crop += " " + watchDangerStyle.Render("PESTS")
		}
		b.WriteString(watchValueStyle.Render(crop))
		b.WriteString("\n")
	}

	if s.ActiveEvent != nil {
		b.WriteString("\n")
		b.WriteString(watchWarnStyle.Render("EVENT: " + s.ActiveEvent.Title + " (resolve with `hst event`)"))
		b.WriteString("\n")
	}

	if n := len(s.Logs); n > 0 {
		b.WriteString("\n")
		start := n - 6
		if start < 0 {
			start = 0
		}
		for _, l := range s.Logs[start:] {
			line := fmt.Sprintf("[d%d] %s", l.Day, l.Message)
			switch l.Type {
			case game.LogDanger:
				b.WriteString(watchDangerStyle.Render(line))
			case game.LogWarning:
				b.WriteString(watchWarnStyle.Render(line))
			case game.LogSuccess:
				b.WriteString(watchGoodStyle.Render(line))
			default:
				b.WriteString(watchLabelStyle.Render(line))
			}
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(watchHelpStyle.Render(fmt.Sprintf("updated %s | r: refresh | q: quit",
		m.fetched.Format("15:04:05"))))
	b.WriteString("\n")
	return b.String()
}

func watchRow(label, value string) string {
	return watchLabelStyle.Render(fmt.Sprintf("%-8s", label)) + " " + value
}

func watchMoney(v int) string {
	text := "$" + comma(v)
	if v < 0 {
		return watchDangerStyle.Render(text)
	}
	return watchGoodStyle.Render(text)
}

func watchGauge(v int) string {
	text := fmt.Sprintf("%d%%", v)
	switch {
	case v < 25:
		return watchDangerStyle.Render(text)
	case v < 60:
		return watchWarnStyle.Render(text)
	default:
		return watchGoodStyle.Render(text)
	}
}
