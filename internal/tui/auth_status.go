package tui

import (
	"errors"
	"fmt"
	"strings"

	"nathanbeddoewebdev/infrachat/internal/config"
	"nathanbeddoewebdev/infrachat/internal/services/auth"
	"nathanbeddoewebdev/infrachat/internal/tui/components"
	"nathanbeddoewebdev/infrachat/internal/tui/styles"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// --- Auth status model ---

type authStatusModel struct {
	statuses []auth.ProviderStatus

	width  int
	height int
}

// RunAuthStatus starts the full-window auth status TUI.
func RunAuthStatus(store auth.Store) error {
	m := authStatusModel{statuses: auth.Statuses(store, config.ModelProviders)}

	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func (m authStatusModel) Init() tea.Cmd {
	return nil
}

func (m authStatusModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			return m, tea.Quit
		}
	}

	return m, nil
}

func (m authStatusModel) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	header := components.Header(m.width, "auth status", "")
	footer := components.Footer(m.width, []components.KeyBinding{
		{Key: "q", Desc: "quit"},
	})

	contentH := max(m.height-lipgloss.Height(header)-lipgloss.Height(footer), 1)

	return lipgloss.JoinVertical(lipgloss.Left, header, m.renderContent(contentH), footer)
}

func (m authStatusModel) renderContent(height int) string {
	if len(m.statuses) == 0 {
		return lipgloss.Place(
			m.width, height,
			lipgloss.Center, lipgloss.Center,
			styles.MutedText.Render("No model providers registered."),
		)
	}

	title := styles.Title.Render("Model Provider Keys")
	labelWidth := 16

	rows := make([]string, 0, len(m.statuses))
	for _, ps := range m.statuses {
		name := styles.Label.Width(labelWidth).Render(ps.Provider)

		var statusText string
		switch {
		case ps.OK():
			statusText = styles.SuccessText.Render(fmt.Sprintf("authenticated (%s)", ps.Source))
		case errors.Is(ps.Err, auth.ErrTokenNotFound):
			statusText = styles.MutedText.Render("not authenticated")
		default:
			statusText = styles.ErrorText.Render(fmt.Sprintf("error: %v", ps.Err))
		}
		rows = append(rows, name+statusText)
	}

	card := styles.Card.Width(52).Render(strings.Join(rows, "\n"))
	combined := lipgloss.JoinVertical(lipgloss.Center, title, "", card)

	return lipgloss.Place(
		m.width, height,
		lipgloss.Center, lipgloss.Center,
		combined,
	)
}
