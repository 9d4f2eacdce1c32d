package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/swagforge/swagforge-cli/internal/infra/storage"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Theme.PrimaryDark).
			MarginTop(1).
			MarginBottom(1)

	itemStyle = lipgloss.NewStyle().
			PaddingLeft(2).
			Foreground(Theme.Text)

	selectedItemStyle = lipgloss.NewStyle().
				PaddingLeft(2).
				Foreground(Theme.PrimaryStrong).
				Bold(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(Theme.TextSubtle).
			MarginTop(1)

	searchStyle = lipgloss.NewStyle().
			Foreground(Theme.PrimaryDark)
)

// CollectionListModel is the interactive picker over stored collections.
type CollectionListModel struct {
	collections []storage.CollectionInfo
	filtered    []storage.CollectionInfo
	cursor      int
	searchInput textinput.Model
	searching   bool
	selected    *storage.CollectionInfo
	width       int
}

func NewCollectionListModel(collections []storage.CollectionInfo) CollectionListModel {
	ti := textinput.New()
	ti.Placeholder = "Search collections..."
	ti.CharLimit = 50

	return CollectionListModel{
		collections: collections,
		filtered:    collections,
		searchInput: ti,
		width:       80,
	}
}

func (m CollectionListModel) Init() tea.Cmd {
	return nil
}

func (m CollectionListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyMsg:
		if m.searching {
			switch msg.String() {
			case "esc":
				m.searching = false
				m.searchInput.Blur()
				m.searchInput.SetValue("")
				m.filtered = m.collections
				m.cursor = 0
				return m, nil

			case "enter":
				m.searching = false
				m.searchInput.Blur()
				return m, nil

			default:
				var cmd tea.Cmd
				m.searchInput, cmd = m.searchInput.Update(msg)
				m.filterCollections()
				m.cursor = 0
				return m, cmd
			}
		}

		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit

		case "/":
			m.searching = true
			m.searchInput.Focus()
			return m, textinput.Blink

		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}

		case "down", "j":
			if m.cursor < len(m.filtered)-1 {
				m.cursor++
			}

		case "enter":
			if m.cursor < len(m.filtered) {
				selected := m.filtered[m.cursor]
				m.selected = &selected
				return m, tea.Quit
			}
		}
	}

	return m, nil
}

func (m *CollectionListModel) filterCollections() {
	query := strings.ToLower(m.searchInput.Value())
	if query == "" {
		m.filtered = m.collections
		return
	}

	filtered := make([]storage.CollectionInfo, 0)
	for _, info := range m.collections {
		if strings.Contains(strings.ToLower(info.Name), query) ||
			strings.Contains(strings.ToLower(info.ID), query) {
			filtered = append(filtered, info)
		}
	}
	m.filtered = filtered
}

func (m CollectionListModel) View() string {
	var s strings.Builder

	logo := strings.Split(Logo, "\n")
	for i, line := range logo {
		// Gradient logo; empty blocks (░) stay dark
		var styledLine strings.Builder
		for _, char := range line {
			if char == '░' {
				styledLine.WriteString(lipgloss.NewStyle().Foreground(Theme.TextSubtle).Render(string(char)))
			} else {
				color := Theme.LogoGradient[i%len(Theme.LogoGradient)]
				styledLine.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Bold(true).Render(string(char)))
			}
		}
		s.WriteString(styledLine.String() + "\n")
	}
	s.WriteString("\n")

	s.WriteString(titleStyle.Render("Select a Collection"))
	s.WriteString("\n\n")

	if m.searching {
		s.WriteString(searchStyle.Render("Search: "))
		s.WriteString(m.searchInput.View())
		s.WriteString("\n\n")
	} else {
		s.WriteString(helpStyle.Render("Press '/' to search"))
		s.WriteString("\n\n")
	}

	if len(m.filtered) == 0 {
		s.WriteString(helpStyle.Render("No collections found. Run 'swagforge convert <spec>' to create one."))
		s.WriteString("\n\n")
	} else {
		for i, info := range m.filtered {
			cursor := " "
			if m.cursor == i {
				cursor = "▶"
			}

			line := fmt.Sprintf("%s %s\n  %s • %s",
				cursor,
				info.Name,
				info.ID,
				formatSize(info.Size),
			)
			line = wordwrap.String(line, m.width-4)

			if m.cursor == i {
				s.WriteString(selectedItemStyle.Render(line))
			} else {
				s.WriteString(itemStyle.Render(line))
			}
			s.WriteString("\n\n")
		}
	}

	help := "↑/k up • ↓/j down • enter select • / search • q quit"
	if m.searching {
		help = "esc cancel search • enter apply"
	}
	s.WriteString(helpStyle.Render(help))

	return s.String()
}

func formatSize(size int64) string {
	switch {
	case size >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(size)/(1<<20))
	case size >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(size)/(1<<10))
	default:
		return fmt.Sprintf("%d B", size)
	}
}

// SelectedCollection returns the picked collection (call after the program
// exits), nil when the user quit without choosing.
func (m CollectionListModel) SelectedCollection() *storage.CollectionInfo {
	return m.selected
}
