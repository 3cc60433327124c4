package tui

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/patternforge/skillsmith/internal/library"
)

// Action is what the user asked for after browsing the library.
type Action int

const (
	ActionNone Action = iota
	ActionOpen
	ActionNew
	ActionQuit
)

// PickerResult holds the outcome of the library browser.
type PickerResult struct {
	Action Action
	Skill  *library.SkillInfo
}

// skillItem implements list.Item for one library skill.
type skillItem struct {
	info library.SkillInfo
}

func (i skillItem) Title() string { return i.info.Name }

func (i skillItem) Description() string {
	desc := i.info.Description
	if desc == "" {
		desc = "(no description)"
	}
	return truncateText(desc, 70)
}

func (i skillItem) FilterValue() string { return i.info.Name }

// headerItem is a non-selectable category separator in the list.
type headerItem struct {
	label string
}

func (h headerItem) FilterValue() string { return "" }
func (h headerItem) Title() string       { return h.label }
func (h headerItem) Description() string { return "" }

func truncateText(text string, maxLen int) string {
	if len(text) <= maxLen {
		return text
	}
	return text[:maxLen-3] + "..."
}

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")).
			MarginBottom(1)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			MarginTop(1)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("241")).
			PaddingLeft(2)
)

// buildGroupedItems groups library skills by category, alphabetically,
// with headerItem separators.
func buildGroupedItems(skills []library.SkillInfo) []list.Item {
	if len(skills) == 0 {
		return nil
	}

	groups := make(map[string][]library.SkillInfo)
	for _, skill := range skills {
		category := skill.Category
		if category == "" {
			category = "uncategorized"
		}
		groups[category] = append(groups[category], skill)
	}

	categories := make([]string, 0, len(groups))
	for category := range groups {
		categories = append(categories, category)
	}
	sort.Strings(categories)

	var items []list.Item
	for _, category := range categories {
		items = append(items, headerItem{label: category})
		members := groups[category]
		sort.Slice(members, func(i, j int) bool { return members[i].Name < members[j].Name })
		for _, skill := range members {
			items = append(items, skillItem{info: skill})
		}
	}
	return items
}

// groupedDelegate renders headerItem and skillItem entries side by side.
type groupedDelegate struct {
	inner list.DefaultDelegate
}

func newGroupedDelegate() groupedDelegate {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = selectedStyle
	delegate.Styles.SelectedDesc = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	return groupedDelegate{inner: delegate}
}

func (d groupedDelegate) Height() int                             { return d.inner.Height() }
func (d groupedDelegate) Spacing() int                            { return d.inner.Spacing() }
func (d groupedDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d groupedDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	if h, ok := item.(headerItem); ok {
		fmt.Fprint(w, headerStyle.Render(h.label))
		return
	}
	d.inner.Render(w, m, index, item)
}

// skipHeaders moves the cursor off a headerItem in the given direction
// (1 down, -1 up), falling back to the opposite direction and finally
// to a full scan.
func skipHeaders(l *list.Model, direction int) {
	items := l.Items()
	if len(items) == 0 {
		return
	}

	idx := l.Index()
	if _, ok := items[idx].(headerItem); !ok {
		return
	}

	next := idx + direction
	if next >= 0 && next < len(items) {
		if _, ok := items[next].(headerItem); !ok {
			l.Select(next)
			return
		}
	}

	opposite := idx - direction
	if opposite >= 0 && opposite < len(items) {
		if _, ok := items[opposite].(headerItem); !ok {
			l.Select(opposite)
			return
		}
	}

	for i := 0; i < len(items); i++ {
		candidate := (idx + i*direction + len(items)) % len(items)
		if _, ok := items[candidate].(headerItem); !ok {
			l.Select(candidate)
			return
		}
	}
}

// navigationDirection returns 1 for down movement keys, -1 for up.
func navigationDirection(msg tea.KeyMsg) int {
	switch msg.String() {
	case "up", "k":
		return -1
	default:
		return 1
	}
}

// Model is the bubbletea model for the library browser.
type Model struct {
	list     list.Model
	result   PickerResult
	quitting bool
	width    int
	height   int
}

// NewPicker creates a library browser over the scanned skills.
func NewPicker(skills []library.SkillInfo) Model {
	items := buildGroupedItems(skills)

	l := list.New(items, newGroupedDelegate(), 80, 20)
	l.Title = "Skillsmith - Library"
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.Styles.Title = titleStyle

	m := Model{list: l}
	skipHeaders(&m.list, 1)
	return m
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetSize(msg.Width, msg.Height-4)
		return m, nil

	case tea.KeyMsg:
		if m.list.FilterState() == list.Filtering {
			break
		}

		switch msg.String() {
		case "enter":
			if item, ok := m.list.SelectedItem().(skillItem); ok {
				m.result = PickerResult{Action: ActionOpen, Skill: &item.info}
				m.quitting = true
				return m, tea.Quit
			}

		case "n":
			m.result = PickerResult{Action: ActionNew}
			m.quitting = true
			return m, tea.Quit

		case "q", "esc":
			m.result = PickerResult{Action: ActionQuit}
			m.quitting = true
			return m, tea.Quit
		}

		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		skipHeaders(&m.list, navigationDirection(msg))
		return m, cmd
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	help := helpStyle.Render("[enter] Open  [n] New  [/] Filter  [q] Quit")
	return m.list.View() + "\n" + help
}

// Result returns what the user chose.
func (m Model) Result() PickerResult {
	return m.result
}

// RunPicker runs the interactive library browser. With an empty
// library it short-circuits to creating a new skill.
func RunPicker(skills []library.SkillInfo) (PickerResult, error) {
	if len(skills) == 0 {
		return PickerResult{Action: ActionNew}, nil
	}

	m := NewPicker(skills)
	p := tea.NewProgram(m, tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return PickerResult{}, err
	}
	return finalModel.(Model).Result(), nil
}

// ListSkills renders a non-interactive library listing.
func ListSkills(skills []library.SkillInfo) string {
	var sb strings.Builder

	sb.WriteString("Skillsmith - Library\n")
	sb.WriteString(strings.Repeat("─", 60) + "\n\n")

	if len(skills) == 0 {
		sb.WriteString("No skills found.\n")
		sb.WriteString("Create one with: skillsmith new\n")
		return sb.String()
	}

	ordered := make([]library.SkillInfo, len(skills))
	copy(ordered, skills)
	sort.Slice(ordered, func(i, j int) bool {
		if ordered[i].Category != ordered[j].Category {
			return ordered[i].Category < ordered[j].Category
		}
		return ordered[i].Name < ordered[j].Name
	})

	current := ""
	for _, skill := range ordered {
		category := skill.Category
		if category == "" {
			category = "uncategorized"
		}
		if category != current {
			sb.WriteString(category + "\n")
			current = category
		}
		sb.WriteString(fmt.Sprintf("  %s\n", skill.Name))
		if skill.Description != "" {
			sb.WriteString(fmt.Sprintf("    %s\n", truncateText(skill.Description, 70)))
		}
	}

	return sb.String()
}
