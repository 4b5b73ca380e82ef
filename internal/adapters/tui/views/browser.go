package views

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"docmigrate/internal/adapters/tui/styles"
	"docmigrate/internal/application/commands"
	"docmigrate/internal/domain"
)

// BrowserKeyMap defines key bindings for the browser view
type BrowserKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	PrevPage key.Binding
	NextPage key.Binding
	Preview  key.Binding
	Filter   key.Binding
	Clear    key.Binding
	Copy     key.Binding
	Edit     key.Binding
	Reload   key.Binding
	Help     key.Binding
	Quit     key.Binding
}

var BrowserKeys = BrowserKeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	PrevPage: key.NewBinding(
		key.WithKeys("h", "left", "pgup"),
		key.WithHelp("h/←", "prev page"),
	),
	NextPage: key.NewBinding(
		key.WithKeys("l", "right", "pgdown"),
		key.WithHelp("l/→", "next page"),
	),
	Preview: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "preview"),
	),
	Filter: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "filter"),
	),
	Clear: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "clear filter"),
	),
	Copy: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "copy new path"),
	),
	Edit: key.NewBinding(
		key.WithKeys("e"),
		key.WithHelp("e", "edit source"),
	),
	Reload: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "replan"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// PlanLoader computes the migration plan shown by the browser
type PlanLoader func(ctx context.Context) (*domain.Plan, error)

// chromeLines is the number of rows the browser uses around the list
const chromeLines = 12

// BrowserModel lists every planned mapping with an incremental fuzzy filter
type BrowserModel struct {
	ViewState

	load      PlanLoader
	copy      func(string) error
	repoIndex map[string]int

	plan    *domain.Plan
	matches []commands.MappingMatch
	pager   *Paginator

	filter    textinput.Model
	filtering bool
}

// NewBrowserModel creates a browser. Repositories are colored in the given order.
func NewBrowserModel(load PlanLoader, repositories []string) *BrowserModel {
	filter := textinput.New()
	filter.Placeholder = "Filter by repository, path or new name..."
	filter.Prompt = "/ "

	index := make(map[string]int, len(repositories))
	for i, name := range repositories {
		index[name] = i
	}

	return &BrowserModel{
		load:      load,
		copy:      clipboard.WriteAll,
		repoIndex: index,
		pager:     NewPaginator(10),
		filter:    filter,
	}
}

// Init loads the plan
func (m *BrowserModel) Init() tea.Cmd {
	return m.loadPlan
}

func (m *BrowserModel) loadPlan() tea.Msg {
	plan, err := m.load(context.Background())
	if err != nil {
		return errMsg{err}
	}
	return planLoadedMsg{plan}
}

type planLoadedMsg struct {
	plan *domain.Plan
}

type copiedMsg struct {
	path string
}

// SwitchToPreviewMsg asks the app to show the rewritten document
type SwitchToPreviewMsg struct {
	Mapping domain.FileMapping
}

// Update handles messages for the browser
func (m *BrowserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case planLoadedMsg:
		m.plan = msg.plan
		m.applyFilter()
		return m, nil

	case errMsg:
		m.SetMessage(msg.err.Error(), true)
		return m, nil

	case copiedMsg:
		m.SetMessage("Copied "+msg.path, false)
		return m, nil

	case tea.KeyMsg:
		if m.filtering {
			return m, m.updateFilter(msg)
		}
		m.ClearMessage()

		switch {
		case key.Matches(msg, BrowserKeys.Quit):
			return m, tea.Quit

		case key.Matches(msg, BrowserKeys.Up):
			m.pager.CursorUp()

		case key.Matches(msg, BrowserKeys.Down):
			m.pager.CursorDown()

		case key.Matches(msg, BrowserKeys.PrevPage):
			m.pager.PrevPage()

		case key.Matches(msg, BrowserKeys.NextPage):
			m.pager.NextPage()

		case key.Matches(msg, BrowserKeys.Filter):
			m.filtering = true
			return m, m.filter.Focus()

		case key.Matches(msg, BrowserKeys.Clear):
			m.filter.SetValue("")
			m.applyFilter()

		case key.Matches(msg, BrowserKeys.Reload):
			m.plan = nil
			return m, m.loadPlan

		case key.Matches(msg, BrowserKeys.Help):
			return m, func() tea.Msg { return SwitchToHelpMsg{} }

		case key.Matches(msg, BrowserKeys.Preview):
			if sel, ok := m.Selected(); ok {
				return m, func() tea.Msg { return SwitchToPreviewMsg{Mapping: sel} }
			}

		case key.Matches(msg, BrowserKeys.Copy):
			if sel, ok := m.Selected(); ok {
				return m, m.copyPath(sel.NewPath)
			}

		case key.Matches(msg, BrowserKeys.Edit):
			if sel, ok := m.Selected(); ok {
				return m, func() tea.Msg { return OpenEditorMsg{Path: sel.OldPath} }
			}
		}
	}

	return m, nil
}

// updateFilter feeds a key to the filter input. Enter keeps the filter,
// esc discards it.
func (m *BrowserModel) updateFilter(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEnter:
		m.filtering = false
		m.filter.Blur()
		return nil
	case tea.KeyEsc:
		m.filtering = false
		m.filter.Blur()
		m.filter.SetValue("")
		m.applyFilter()
		return nil
	}

	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	m.applyFilter()
	return cmd
}

func (m *BrowserModel) applyFilter() {
	if m.plan == nil {
		m.matches = nil
		m.pager.Reset()
		return
	}

	// Filtering in memory cannot fail
	m.matches, _ = commands.NewSearchMappingsCommand(m.plan.Mappings, m.filter.Value()).Execute(context.Background())
	m.pager.SetTotal(len(m.matches))
	m.pager.SetCursor(0)
}

func (m *BrowserModel) copyPath(path string) tea.Cmd {
	return func() tea.Msg {
		if err := m.copy(path); err != nil {
			return errMsg{fmt.Errorf("copy to clipboard: %w", err)}
		}
		return copiedMsg{path}
	}
}

// Selected returns the mapping under the cursor
func (m *BrowserModel) Selected() (domain.FileMapping, bool) {
	i := m.pager.Cursor()
	if i < 0 || i >= len(m.matches) {
		return domain.FileMapping{}, false
	}
	return m.matches[i].FileMapping, true
}

// SetSize updates the view dimensions and the page size
func (m *BrowserModel) SetSize(width, height int) {
	m.ViewState.SetSize(width, height)
	m.pager.SetPageSize(height - chromeLines)
	m.filter.Width = max(0, width-10)
}

// View renders the browser
func (m *BrowserModel) View() string {
	if m.plan == nil {
		if m.Message != "" {
			return NewViewBuilder().Message(m.Message, true).Help(BrowserKeys.Reload, BrowserKeys.Quit).String()
		}
		return "Planning migration..."
	}

	v := NewViewBuilder().Title("docmigrate")
	v.Subtitle(fmt.Sprintf("%d documents planned, %d skipped", len(m.plan.Mappings), len(m.plan.Skipped)))

	if m.filtering || m.filter.Value() != "" {
		v.Line(styles.InputFocused.Render(m.filter.View())).BlankLine()
	}

	if len(m.matches) == 0 {
		v.Muted("No matching documents")
	} else {
		start, end := m.pager.VisibleRange()
		for i := start; i < end; i++ {
			v.Line(m.renderMapping(m.matches[i].FileMapping, i == m.pager.Cursor()))
		}
		v.BlankLine()
		v.Muted(fmt.Sprintf("page %d/%d", m.pager.CurrentPage(), m.pager.TotalPages()))
	}

	v.BlankLine().Message(m.Message, m.MessageErr)
	v.Help(BrowserKeys.Filter, BrowserKeys.Preview, BrowserKeys.Copy, BrowserKeys.Edit, BrowserKeys.Help, BrowserKeys.Quit)

	return v.String()
}

func (m *BrowserModel) renderMapping(mapping domain.FileMapping, selected bool) string {
	repo := mapping.Source.Repository
	target := filepath.Join(filepath.Base(filepath.Dir(mapping.NewPath)), mapping.NewFilename)
	text := fmt.Sprintf("%s %s %s", mapping.Source.RelPath, styles.Arrow.String(), target)

	if selected {
		return styles.Selected.Render(fmt.Sprintf("[%s] %s -> %s", repo, mapping.Source.RelPath, target))
	}

	color := styles.Primary
	if i, ok := m.repoIndex[repo]; ok {
		color = styles.RepositoryColor(i)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top,
		styles.Repository.Foreground(color).Render("["+repo+"]"),
		" ",
		text,
	)
}
