package cmd

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/Ana-sthesia/shroom-game/internal/game"
	"github.com/Ana-sthesia/shroom-game/internal/ledger"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#5F8700")).
			Padding(0, 1).
			MarginBottom(1)

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#999999"))

	boardBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#5F8700")).
			Padding(0, 1)

	finaleBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#AF5F00")).
			Padding(1, 2)
)

const (
	phaseName = iota
	phasePlaying
	phaseDone
)

type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// playModel drives a local round: ask for a name, run the board with a
// live countdown, show the finale, offer a rematch.
type playModel struct {
	ledger    ledger.Ledger
	settings  game.Settings
	round     *game.Round
	nameInput textinput.Model
	phase     int
	player    string
	board     string
	finale    string
}

func newPlayModel(led ledger.Ledger, settings game.Settings) playModel {
	ti := textinput.New()
	ti.Placeholder = "Name for the leaderboard..."
	ti.Focus()
	ti.CharLimit = 32
	ti.Width = 40
	if user := os.Getenv("USER"); user != "" {
		ti.SetValue(user)
	}

	return playModel{
		ledger:    led,
		settings:  settings,
		nameInput: ti,
		phase:     phaseName,
	}
}

func (m *playModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *playModel) startRound() tea.Cmd {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	now := time.Now()
	m.round = game.NewRound("local:"+m.player, m.player, m.settings, rng, now)
	m.board = m.round.Render(now)
	m.phase = phasePlaying
	return tick()
}

// applyMove advances the round one turn and files the outcome.
func (m *playModel) applyMove(dir game.Direction) {
	res := m.round.Advance(dir, time.Now())
	switch {
	case res.Terminal():
		m.finale = res.Text
		m.phase = phaseDone
		if err := m.ledger.Record(context.Background(), m.round.OwnerID, m.round.OwnerLabel, res.Score); err != nil {
			log.Warn().Err(err).Msg("failed to record final score")
		}
	case res.Outcome == game.OutcomeLevelUp:
		m.board = res.Text + "\n\n" + m.round.Render(time.Now())
	default:
		m.board = res.Text
	}
}

func (m *playModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		if m.phase != phasePlaying {
			return m, nil
		}
		now := time.Now()
		if !now.Before(m.round.Deadline()) {
			// Advance resolves expiry before any movement, so the
			// empty direction never moves the player
			m.applyMove("")
		} else {
			m.board = m.round.Render(now)
		}
		if m.phase == phasePlaying {
			return m, tick()
		}
		return m, nil

	case tea.KeyMsg:
		switch m.phase {
		case phaseName:
			switch msg.Type {
			case tea.KeyCtrlC, tea.KeyEsc:
				return m, tea.Quit
			case tea.KeyEnter:
				name := strings.TrimSpace(m.nameInput.Value())
				if name == "" {
					name = "Player"
				}
				m.player = name
				return m, m.startRound()
			}
			var cmd tea.Cmd
			m.nameInput, cmd = m.nameInput.Update(msg)
			return m, cmd

		case phasePlaying:
			switch msg.String() {
			case "ctrl+c", "esc", "q":
				return m, tea.Quit
			case "up", "w", "k":
				m.applyMove(game.DirUp)
			case "down", "s", "j":
				m.applyMove(game.DirDown)
			case "left", "a", "h":
				m.applyMove(game.DirLeft)
			case "right", "d", "l":
				m.applyMove(game.DirRight)
			}
			return m, nil

		case phaseDone:
			switch msg.String() {
			case "ctrl+c", "esc", "q":
				return m, tea.Quit
			case "enter", "r":
				return m, m.startRound()
			}
			return m, nil
		}
	}
	return m, nil
}

func (m *playModel) View() string {
	title := titleStyle.Render(" Mushroom Maniac ")

	switch m.phase {
	case phaseName:
		return lipgloss.JoinVertical(lipgloss.Left,
			title,
			"Who is playing?",
			m.nameInput.View(),
			"",
			infoStyle.Render("(enter to start, esc to quit)"),
		)
	case phasePlaying:
		return lipgloss.JoinVertical(lipgloss.Left,
			title,
			boardBoxStyle.Render(m.board),
			infoStyle.Render("(arrows or wasd to move, q to quit)"),
		)
	default:
		return lipgloss.JoinVertical(lipgloss.Left,
			title,
			finaleBoxStyle.Render(m.finale),
			infoStyle.Render("(enter to play again, q to quit)"),
		)
	}
}

// playCmd represents the play command
var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a round in the terminal",
	Long: `Runs a local round of Mushroom Maniac in the terminal, no Telegram
required. Finished rounds land on the same leaderboard the bot uses.`,
	Run: func(cmd *cobra.Command, args []string) {
		settings, err := loadSettings()
		if err != nil {
			fmt.Printf("Error loading settings: %v\n", err)
			os.Exit(1)
		}

		led, closeLedger, err := buildLedger()
		if err != nil {
			fmt.Printf("Error opening score ledger: %v\n", err)
			os.Exit(1)
		}
		defer closeLedger()

		m := newPlayModel(led, settings)
		p := tea.NewProgram(&m, tea.WithAltScreen())
		if _, err := p.Run(); err != nil {
			fmt.Printf("Fatal TUI Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(playCmd)
}
