package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"docmigrate/internal/adapters/tui/styles"
)

// HelpKeyMap defines key bindings for the help view
type HelpKeyMap struct {
	Close key.Binding
}

var HelpKeys = HelpKeyMap{
	Close: key.NewBinding(
		key.WithKeys("esc", "q", "?"),
		key.WithHelp("esc/q/?", "close"),
	),
}

// HelpModel is the model for the help view
type HelpModel struct {
	ViewState
}

// NewHelpModel creates a new help view model
func NewHelpModel() *HelpModel {
	return &HelpModel{}
}

// Init initializes the help view
func (m *HelpModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the help view
func (m *HelpModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, HelpKeys.Close) {
			return m, func() tea.Msg {
				return SwitchToBrowserMsg{}
			}
		}
	}

	return m, nil
}

// View renders the help view
func (m *HelpModel) View() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render("docmigrate Help"))
	b.WriteString("\n\n")

	b.WriteString(styles.Subtitle.Render("Browse the migration plan before running it"))
	b.WriteString("\n\n")

	b.WriteString(styles.InputLabel.Render("Navigation"))
	b.WriteString("\n")
	b.WriteString(helpLine(BrowserKeys.Up, BrowserKeys.Down))
	b.WriteString(helpLine(BrowserKeys.PrevPage, BrowserKeys.NextPage))
	b.WriteString(helpLine(BrowserKeys.Filter, BrowserKeys.Clear))
	b.WriteString("\n")

	b.WriteString(styles.InputLabel.Render("Actions"))
	b.WriteString("\n")
	b.WriteString(helpLine(BrowserKeys.Preview))
	b.WriteString(helpLine(BrowserKeys.Copy))
	b.WriteString(helpLine(BrowserKeys.Edit))
	b.WriteString(helpLine(BrowserKeys.Reload))
	b.WriteString("\n")

	b.WriteString(styles.InputLabel.Render("General"))
	b.WriteString("\n")
	b.WriteString(helpLine(BrowserKeys.Help))
	b.WriteString(helpLine(BrowserKeys.Quit))
	b.WriteString("\n\n")

	b.WriteString(styles.InputLabel.Render("Naming"))
	b.WriteString("\n")
	b.WriteString(styles.MutedText.Render("  001-bug-report.md  ->  YYYYMMDD_bug_report.md"))
	b.WriteString("\n")
	b.WriteString(styles.MutedText.Render("  Collisions get a _<repository> suffix"))
	b.WriteString("\n\n")

	b.WriteString(styles.HelpDesc.Render("Press "))
	b.WriteString(styles.HelpKey.Render("esc"))
	b.WriteString(styles.HelpDesc.Render(" or "))
	b.WriteString(styles.HelpKey.Render("?"))
	b.WriteString(styles.HelpDesc.Render(" to close"))

	return styles.App.Render(b.String())
}

// helpLine lists one or more bindings with the description of the first
func helpLine(bindings ...key.Binding) string {
	keys := make([]string, 0, len(bindings))
	descs := make([]string, 0, len(bindings))
	for _, b := range bindings {
		keys = append(keys, b.Help().Key)
		descs = append(descs, b.Help().Desc)
	}
	return "  " + styles.HelpKey.Render(padRight(strings.Join(keys, " / "), 20)) +
		styles.HelpDesc.Render(strings.Join(descs, " / ")) + "\n"
}

func padRight(s string, length int) string {
	if len(s) >= length {
		return s
	}
	return s + strings.Repeat(" ", length-len(s))
}
