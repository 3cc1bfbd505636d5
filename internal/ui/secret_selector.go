package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"

	"github.com/vietdv277/sm2env/pkg/types"
)

const (
	secretListHeight = 10
	minWidth         = 60
	maxWidth         = 120
	colWidthStore    = 16
	colWidthUpdated  = 16
)

// SecretModel is the bubbletea model for interactive secret selection
type SecretModel struct {
	secrets      []types.Secret
	filtered     []types.Secret
	cursor       int
	offset       int // for scrolling
	search       string
	selected     *types.Secret
	quitting     bool
	cancelled    bool
	termWidth    int
	contentWidth int
}

// NewSecretModel creates a new secret selector model
func NewSecretModel(secrets []types.Secret) SecretModel {
	m := SecretModel{
		secrets:   secrets,
		filtered:  secrets,
		termWidth: 80, // default until the first WindowSizeMsg
	}
	m.calculateWidths()
	return m
}

func (m *SecretModel) calculateWidths() {
	m.contentWidth = m.termWidth - 2
	if m.contentWidth < minWidth {
		m.contentWidth = minWidth
	}
	if m.contentWidth > maxWidth {
		m.contentWidth = maxWidth
	}
}

// nameWidth returns the flexible width left for the name column
func (m SecretModel) nameWidth() int {
	w := m.contentWidth - 3 - colWidthStore - 2 - colWidthUpdated - 2
	if w < 10 {
		w = 10
	}
	return w
}

// Init implements tea.Model
func (m SecretModel) Init() tea.Cmd {
	return tea.WindowSize()
}

// Update implements tea.Model
func (m SecretModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.termWidth = msg.Width
		m.calculateWidths()
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.quitting = true
			m.cancelled = true
			return m, tea.Quit

		case tea.KeyEnter:
			if len(m.filtered) > 0 {
				m.selected = &m.filtered[m.cursor]
				m.quitting = true
				return m, tea.Quit
			}

		case tea.KeyUp:
			if m.cursor > 0 {
				m.cursor--
				if m.cursor < m.offset {
					m.offset = m.cursor
				}
			}

		case tea.KeyDown:
			if m.cursor < len(m.filtered)-1 {
				m.cursor++
				if m.cursor >= m.offset+secretListHeight {
					m.offset = m.cursor - secretListHeight + 1
				}
			}

		case tea.KeyBackspace:
			if len(m.search) > 0 {
				m.search = m.search[:len(m.search)-1]
				m.filterSecrets()
			}

		case tea.KeyRunes:
			m.search += string(msg.Runes)
			m.filterSecrets()
		}
	}

	return m, nil
}

func (m *SecretModel) filterSecrets() {
	if m.search == "" {
		m.filtered = m.secrets
	} else {
		query := strings.ToLower(m.search)
		m.filtered = nil
		for _, s := range m.secrets {
			if strings.Contains(strings.ToLower(s.Name), query) ||
				strings.Contains(strings.ToLower(s.StoreLabel()), query) {
				m.filtered = append(m.filtered, s)
			}
		}
	}
	if m.cursor >= len(m.filtered) {
		if len(m.filtered) > 0 {
			m.cursor = len(m.filtered) - 1
		} else {
			m.cursor = 0
		}
	}
	m.offset = 0
}

// View implements tea.Model
func (m SecretModel) View() string {
	if m.quitting {
		return ""
	}

	var sb strings.Builder
	w := m.contentWidth

	// Top border
	sb.WriteString(BorderStyle.Render(TopLeft))
	sb.WriteString(BorderStyle.Render(strings.Repeat(Horizontal, w)))
	sb.WriteString(BorderStyle.Render(TopRight))
	sb.WriteString("\n")

	// Search input
	sb.WriteString(BorderStyle.Render(Vertical))
	sb.WriteString(NameStyle.Render(padRight(" > "+m.search, w)))
	sb.WriteString(BorderStyle.Render(Vertical))
	sb.WriteString("\n")

	// Column headers
	sb.WriteString(BorderStyle.Render(Vertical))
	header := "   " + padRight("Name", m.nameWidth()) + "  " +
		padRight("Store", colWidthStore) + "  " +
		padRight("Updated", colWidthUpdated)
	sb.WriteString(HeaderStyle.Render(padRight(header, w)))
	sb.WriteString(BorderStyle.Render(Vertical))
	sb.WriteString("\n")

	// Separator
	sb.WriteString(BorderStyle.Render(LeftT))
	sb.WriteString(BorderStyle.Render(strings.Repeat(Horizontal, w)))
	sb.WriteString(BorderStyle.Render(RightT))
	sb.WriteString("\n")

	// Secret rows
	visibleEnd := m.offset + secretListHeight
	if visibleEnd > len(m.filtered) {
		visibleEnd = len(m.filtered)
	}

	for i := m.offset; i < visibleEnd; i++ {
		sb.WriteString(m.renderSecretRow(i))
	}

	// Fill remaining lines if list is short
	for i := len(m.filtered); i < m.offset+secretListHeight; i++ {
		sb.WriteString(BorderStyle.Render(Vertical))
		sb.WriteString(strings.Repeat(" ", w))
		sb.WriteString(BorderStyle.Render(Vertical))
		sb.WriteString("\n")
	}

	// Bottom border
	sb.WriteString(BorderStyle.Render(BottomLeft))
	sb.WriteString(BorderStyle.Render(strings.Repeat(Horizontal, w)))
	sb.WriteString(BorderStyle.Render(BottomRight))
	sb.WriteString("\n")

	// Status bar
	sb.WriteString(m.renderStatusBar())

	return sb.String()
}

func (m SecretModel) renderSecretRow(idx int) string {
	var sb strings.Builder
	secret := m.filtered[idx]
	w := m.contentWidth

	sb.WriteString(BorderStyle.Render(Vertical))

	var line strings.Builder
	plainWidth := 0

	if idx == m.cursor {
		line.WriteString(" > ")
	} else {
		line.WriteString("   ")
	}
	plainWidth += 3

	nameText := padRight(secret.Name, m.nameWidth())
	line.WriteString(NameStyle.Render(nameText))
	line.WriteString("  ")
	plainWidth += m.nameWidth() + 2

	storeText := padRight(secret.StoreLabel(), colWidthStore)
	line.WriteString(StoreStyle.Render(storeText))
	line.WriteString("  ")
	plainWidth += colWidthStore + 2

	updated := ""
	if !secret.UpdatedAt.IsZero() {
		updated = secret.UpdatedAt.Format("2006-01-02 15:04")
	}
	updatedText := padRight(updated, colWidthUpdated)
	line.WriteString(MutedStyle.Render(updatedText))
	plainWidth += colWidthUpdated

	if plainWidth < w {
		line.WriteString(strings.Repeat(" ", w-plainWidth))
	}

	sb.WriteString(line.String())
	sb.WriteString(BorderStyle.Render(Vertical))
	sb.WriteString("\n")

	return sb.String()
}

func (m SecretModel) renderStatusBar() string {
	var sb strings.Builder
	w := m.contentWidth + 2

	countInfo := fmt.Sprintf("  %d/%d secrets", len(m.filtered), len(m.secrets))
	hintsPlain := "[Enter:select] [Esc:cancel]"

	padding := w - runewidth.StringWidth(countInfo) - runewidth.StringWidth(hintsPlain)

	sb.WriteString(countInfo)
	if padding > 0 {
		sb.WriteString(strings.Repeat(" ", padding))
	}
	sb.WriteString(HintStyle.Render(hintsPlain))
	sb.WriteString("\n")

	return sb.String()
}

// SelectSecret displays an interactive selector for secrets and returns
// the selected one
func SelectSecret(secrets []types.Secret) (*types.Secret, error) {
	if len(secrets) == 0 {
		return nil, fmt.Errorf("no secrets available")
	}

	m := NewSecretModel(secrets)
	p := tea.NewProgram(m)

	finalModel, err := p.Run()
	if err != nil {
		return nil, fmt.Errorf("error running selector: %w", err)
	}

	result := finalModel.(SecretModel)
	if result.cancelled {
		return nil, fmt.Errorf("selection cancelled")
	}

	return result.selected, nil
}
