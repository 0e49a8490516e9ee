package subcommands

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

var (
	alertTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF6B6B"))

	alertBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color("#FF6B6B")).
			Padding(1, 3)

	okButtonStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#1a1a2e")).
			Background(lipgloss.Color("#FF6B6B")).
			Bold(true).
			Padding(0, 2)
)

// alertModel is a single blocking error notification.
type alertModel struct {
	title  string
	body   string
	width  int
	height int
}

func (m alertModel) Init() tea.Cmd { return nil }

func (m alertModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyEnter, tea.KeyEsc, tea.KeyCtrlC, tea.KeySpace:
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m alertModel) View() string {
	box := alertBoxStyle.Render(lipgloss.JoinVertical(lipgloss.Center,
		alertTitleStyle.Render(m.title),
		"",
		m.body,
		"",
		okButtonStyle.Render("OK"),
	))
	if m.width == 0 || m.height == 0 {
		return box
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

// showAlert blocks until the user dismisses the message. Without a terminal
// the message goes to stderr instead.
func showAlert(title, body string) {
	if isInteractive(os.Stdout) {
		p := tea.NewProgram(alertModel{title: title, body: body}, tea.WithAltScreen())
		if _, err := p.Run(); err == nil {
			return
		}
	}
	fmt.Fprintf(os.Stderr, "%s: %s\n", title, body)
}

func isInteractive(f *os.File) bool {
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
