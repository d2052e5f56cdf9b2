package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Picker phases. The format list is shown first, then the word count list.
const (
	phaseFormat = iota
	phaseWordCount
)

// PickResult carries the selections made in the interactive picker.
type PickResult struct {
	Format    string // Selected article format
	WordCount int    // Selected target word count
	Aborted   bool   // True when the user quit without selecting
}

// model holds the picker state across both selection phases.
type model struct {
	formats     []string // Format choices shown in phase one
	wordCounts  []int    // Word count choices shown in phase two
	phase       int
	selectedIdx int
	format      string // Choice recorded after phase one
	wordCount   int    // Choice recorded after phase two
	width       int
	height      int
	quitting    bool
	aborted     bool
}

func initialModel(formats []string, wordCounts []int) model {
	return model{
		formats:    formats,
		wordCounts: wordCounts,
	}
}

// Init is the first command that will be run. We don't need any.
func (m model) Init() tea.Cmd {
	return nil
}

// choiceCount returns the length of the list for the current phase.
func (m model) choiceCount() int {
	if m.phase == phaseFormat {
		return len(m.formats)
	}
	return len(m.wordCounts)
}

// Update handles messages and updates the model accordingly.
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			m.quitting = true
			m.aborted = true
			return m, tea.Quit
		case "up", "k":
			if m.selectedIdx > 0 {
				m.selectedIdx--
			}
		case "down", "j":
			if m.selectedIdx < m.choiceCount()-1 {
				m.selectedIdx++
			}
		case "enter":
			if m.phase == phaseFormat {
				m.format = m.formats[m.selectedIdx]
				m.phase = phaseWordCount
				m.selectedIdx = 0
			} else {
				m.wordCount = m.wordCounts[m.selectedIdx]
				m.quitting = true
				return m, tea.Quit
			}
		}
	}

	return m, cmd
}

// View renders the current selection list.
func (m model) View() string {
	if m.quitting {
		return ""
	}

	docStyle := lipgloss.NewStyle().Margin(1, 2)
	listStyle := lipgloss.NewStyle().Border(lipgloss.NormalBorder(), true).Padding(1)
	titleStyle := lipgloss.NewStyle().Bold(true)

	var content string
	if m.phase == phaseFormat {
		content = titleStyle.Render("Select article format") + "\n\n"
		for i, format := range m.formats {
			cursor := " "
			if i == m.selectedIdx {
				cursor = ">"
			}
			content += fmt.Sprintf("%s %s\n", cursor, format)
		}
	} else {
		content = titleStyle.Render(fmt.Sprintf("Select target word count (%s)", m.format)) + "\n\n"
		for i, wordCount := range m.wordCounts {
			cursor := " "
			if i == m.selectedIdx {
				cursor = ">"
			}
			content += fmt.Sprintf("%s %d words\n", cursor, wordCount)
		}
	}

	help := "\n[↑/k] Up | [↓/j] Down | [enter] Select | [q] Cancel"

	return docStyle.Render(listStyle.Render(content) + help)
}

// RunPicker shows the two-phase selection UI and returns the choices. An
// aborted result is not an error; callers decide how to handle it.
func RunPicker(formats []string, wordCounts []int) (PickResult, error) {
	if len(formats) == 0 || len(wordCounts) == 0 {
		return PickResult{}, fmt.Errorf("no choices to pick from")
	}

	p := tea.NewProgram(initialModel(formats, wordCounts), tea.WithAltScreen())

	final, err := p.Run()
	if err != nil {
		return PickResult{}, fmt.Errorf("failed to run picker: %w", err)
	}

	m, ok := final.(model)
	if !ok {
		return PickResult{}, fmt.Errorf("unexpected picker model type")
	}

	return PickResult{
		Format:    m.format,
		WordCount: m.wordCount,
		Aborted:   m.aborted,
	}, nil
}

// RenderSummary draws a titled summary box for terminal output.
func RenderSummary(title string, lines []string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(0, 2)
	titleStyle := lipgloss.NewStyle().Bold(true)

	content := titleStyle.Render(title) + "\n\n" + strings.Join(lines, "\n")
	return boxStyle.Render(content)
}
