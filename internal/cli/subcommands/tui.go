package subcommands

import (
	"context"
	"fmt"
	"strings"

	"MovieMatch/internal/config"
	"MovieMatch/internal/logging"
	"MovieMatch/internal/metrics"
	"MovieMatch/internal/recommend"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"
)

// Styles define the UI theme
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00D9FF")).
			Background(lipgloss.Color("#1a1a2e")).
			Padding(0, 2)

	labelStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#4ECDC4"))

	inputBorderStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("#00D9FF"))

	blurredBorderStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("#3d3d5c"))

	buttonStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#a0a0b0")).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#3d3d5c")).
			Padding(0, 2)

	activeButtonStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#1a1a2e")).
				Background(lipgloss.Color("#00D9FF")).
				Bold(true).
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("#00D9FF")).
				Padding(0, 2)

	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color("#FF6B6B")).
			Padding(1, 2)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4a4a6a")).
			PaddingLeft(1)
)

// Minimum usable terminal size: header, input row, button and ten result lines.
const (
	minWidth     = 40
	minHeight    = 20
	resultHeight = 10
)

type focusArea int

const (
	focusInput focusArea = iota
	focusButton
)

type tuiModel struct {
	rec         *recommend.Recommender
	suggestions int

	input    textinput.Model
	output   viewport.Model
	renderer *glamour.TermRenderer
	focus    focusArea
	history  *queryHistory

	// results is the last non-empty answer; it stays until the next one.
	results []string

	// modal holds the not-found notification while it is open.
	modal        bool
	modalTitle   string
	modalSuggest []string

	width  int
	height int
}

func initialModel(rec *recommend.Recommender, suggestions int) tuiModel {
	ti := textinput.New()
	ti.Placeholder = "e.g. The Matrix"
	ti.Prompt = "┃ "
	ti.CharLimit = 256
	ti.Width = 40
	ti.Focus()

	vp := viewport.New(minWidth, resultHeight)

	return tuiModel{
		rec:         rec,
		suggestions: suggestions,
		input:       ti,
		output:      vp,
		focus:       focusInput,
		history:     newQueryHistory(20),
	}
}

func (m tuiModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.modal {
			switch msg.Type {
			case tea.KeyEnter, tea.KeyEsc, tea.KeySpace:
				m.modal = false
			case tea.KeyCtrlC:
				return m, tea.Quit
			}
			return m, nil
		}

		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit

		case tea.KeyTab, tea.KeyShiftTab:
			return m, m.toggleFocus()

		case tea.KeyEnter:
			m.activate()
			return m, nil

		case tea.KeyUp, tea.KeyDown:
			if m.focus == focusInput {
				m.recall(msg.Type == tea.KeyUp)
			}
			return m, nil
		}

		if m.focus == focusButton {
			if msg.Type == tea.KeySpace {
				m.activate()
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = max(minWidth-6, msg.Width-10)
		m.output.Width = max(minWidth-4, msg.Width-4)
		m.output.Height = max(resultHeight, msg.Height-12)
		m.output.SetContent(strings.Join(m.results, "\n"))
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *tuiModel) toggleFocus() tea.Cmd {
	if m.focus == focusInput {
		m.focus = focusButton
		m.input.Blur()
		return nil
	}
	m.focus = focusInput
	return m.input.Focus()
}

// recall replaces the input with an earlier (older) or later query.
func (m *tuiModel) recall(older bool) {
	step := m.history.Next
	if older {
		step = m.history.Prev
	}
	if q, ok := step(); ok {
		m.input.SetValue(q)
		m.input.CursorEnd()
	}
}

// activate runs one query with the raw input value, untrimmed.
func (m *tuiModel) activate() {
	title := m.input.Value()
	m.history.Add(title)
	titles := m.rec.Recommend(title)
	metrics.ObserveQuery("tui", len(titles) > 0)

	if len(titles) == 0 {
		logging.L().Debug("title not found", zap.String("title", title))
		m.modal = true
		m.modalTitle = title
		m.modalSuggest = m.rec.Suggest(title, m.suggestions)
		return
	}

	logging.L().Debug("recommendations shown", zap.String("title", title), zap.Int("count", len(titles)))
	m.results = titles
	m.output.SetContent(strings.Join(titles, "\n"))
	m.output.GotoTop()
}

// modalText renders the not-found notification body.
func (m tuiModel) modalText() string {
	var md strings.Builder
	md.WriteString("**" + notFoundText + "**\n")
	if len(m.modalSuggest) > 0 {
		md.WriteString("\nDid you mean:\n\n")
		for _, s := range m.modalSuggest {
			md.WriteString("- " + s + "\n")
		}
	}

	if m.renderer != nil {
		if out, err := m.renderer.Render(md.String()); err == nil {
			return strings.TrimSpace(out)
		}
	}

	plain := notFoundText
	if len(m.modalSuggest) > 0 {
		plain += "\n\nDid you mean:\n  " + strings.Join(m.modalSuggest, "\n  ")
	}
	return plain
}

func (m tuiModel) View() string {
	if m.width > 0 && (m.width < minWidth || m.height < minHeight) {
		return fmt.Sprintf("\n  Window too small: need at least %dx%d.", minWidth, minHeight)
	}

	header := titleStyle.Render(" Movie Recommendation System ")

	border := inputBorderStyle
	if m.focus != focusInput {
		border = blurredBorderStyle
	}
	input := border.Render(m.input.View())

	button := buttonStyle.Render("Recommend")
	if m.focus == focusButton {
		button = activeButtonStyle.Render("Recommend")
	}

	output := blurredBorderStyle.Render(m.output.View())

	help := helpStyle.Render("Enter Recommend | Tab Switch focus | ↑/↓ History | Esc Quit")

	mainView := lipgloss.JoinVertical(lipgloss.Left,
		header,
		"",
		labelStyle.Render("Enter Movie Title:"),
		input,
		button,
		output,
		help,
	)

	if m.modal {
		popup := modalStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
			m.modalText(),
			"",
			helpStyle.Render("Enter to dismiss"),
		))
		if m.width == 0 || m.height == 0 {
			return mainView + "\n" + popup
		}
		return lipgloss.Place(m.width, m.height,
			lipgloss.Center, lipgloss.Center,
			popup,
			lipgloss.WithWhitespaceChars(" "),
			lipgloss.WithWhitespaceForeground(lipgloss.Color("#0a0a14")),
		)
	}

	return mainView
}

// RunTui loads the dataset and runs the recommendation form. A dataset that
// cannot be loaded is reported with a blocking alert and the form never opens.
func RunTui(ctx context.Context, cfg config.Config) int {
	if err := logging.Init(cfg.LogToFile(), cfg.Logging.Level); err != nil {
		fmt.Printf("failed to initialize logging: %v\n", err)
		return 1
	}
	defer logging.Close()

	rec, err := loadRecommender(ctx, cfg)
	if err != nil {
		showAlert("Error", startupMessage(err, cfg.Dataset.Path))
		return 1
	}

	m := initialModel(rec, cfg.Recommend.Suggestions)
	m.renderer, _ = glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(minWidth),
	)

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("Alas, there's been an error: %v", err)
		return 1
	}
	return 0
}
