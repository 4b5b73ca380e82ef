package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"docmigrate/internal/adapters/tui/styles"
	"docmigrate/internal/domain"
)

// PreviewKeyMap defines key bindings for the preview view
type PreviewKeyMap struct {
	Close key.Binding
	Edit  key.Binding
}

var PreviewKeys = PreviewKeyMap{
	Close: key.NewBinding(
		key.WithKeys("esc", "q"),
		key.WithHelp("esc/q", "back"),
	),
	Edit: key.NewBinding(
		key.WithKeys("e"),
		key.WithHelp("e", "edit source"),
	),
}

// RenderFunc produces the migrated form of a document
type RenderFunc func(m domain.FileMapping) (content string, warnings []string, err error)

// PreviewModel shows a document as it will be written, scrollable
type PreviewModel struct {
	ViewState

	render   RenderFunc
	mapping  domain.FileMapping
	viewport viewport.Model
	ready    bool
}

// NewPreviewModel creates a preview view
func NewPreviewModel(render RenderFunc) *PreviewModel {
	return &PreviewModel{
		render:   render,
		viewport: viewport.New(80, 20),
	}
}

type previewLoadedMsg struct {
	mapping  domain.FileMapping
	content  string
	warnings []string
}

// Init initializes the preview view
func (p *PreviewModel) Init() tea.Cmd {
	return nil
}

// Show loads the rewritten content of m
func (p *PreviewModel) Show(m domain.FileMapping) tea.Cmd {
	p.mapping = m
	p.ready = false
	p.ClearMessage()

	return func() tea.Msg {
		content, warnings, err := p.render(m)
		if err != nil {
			return errMsg{err}
		}
		return previewLoadedMsg{mapping: m, content: content, warnings: warnings}
	}
}

// Update handles messages for the preview
func (p *PreviewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		p.SetSize(msg.Width, msg.Height)
		return p, nil

	case previewLoadedMsg:
		if msg.mapping.OldPath != p.mapping.OldPath {
			return p, nil
		}
		p.viewport.SetContent(msg.content)
		p.viewport.GotoTop()
		p.ready = true
		if len(msg.warnings) > 0 {
			p.SetMessage(strings.Join(msg.warnings, "; "), true)
		}
		return p, nil

	case errMsg:
		p.SetMessage(msg.err.Error(), true)
		return p, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, PreviewKeys.Close):
			return p, func() tea.Msg { return SwitchToBrowserMsg{} }
		case key.Matches(msg, PreviewKeys.Edit):
			path := p.mapping.OldPath
			return p, func() tea.Msg { return OpenEditorMsg{Path: path} }
		}
	}

	var cmd tea.Cmd
	p.viewport, cmd = p.viewport.Update(msg)
	return p, cmd
}

// SetSize updates the view dimensions and the viewport
func (p *PreviewModel) SetSize(width, height int) {
	p.ViewState.SetSize(width, height)
	p.viewport.Width = max(20, width-8)
	p.viewport.Height = max(5, height-12)
}

// View renders the preview
func (p *PreviewModel) View() string {
	v := NewViewBuilder().Title(p.mapping.NewFilename)
	v.Muted(p.mapping.OldPath)
	v.Line(styles.Arrow.String() + " " + p.mapping.NewPath).BlankLine()

	if p.ready {
		v.Line(styles.Preview.Render(p.viewport.View()))
		v.Muted(fmt.Sprintf("%3.f%%", p.viewport.ScrollPercent()*100))
	} else if p.Message == "" {
		v.Muted("Rewriting...")
	}

	v.BlankLine().Message(p.Message, p.MessageErr)
	v.Help(PreviewKeys.Close, PreviewKeys.Edit)
	return v.String()
}
