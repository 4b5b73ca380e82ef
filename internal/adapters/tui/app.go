// Package tui is the interactive plan browser.
package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"docmigrate/internal/adapters/tui/views"
	"docmigrate/internal/application/commands"
	"docmigrate/internal/domain"
	"docmigrate/internal/ports"
)

// ViewState represents the current view
type ViewState int

const (
	ViewBrowser ViewState = iota
	ViewPreview
	ViewHelp
)

// App is the main TUI application model
type App struct {
	store  ports.DocumentStore
	dates  ports.DateResolver
	layout domain.Layout
	log    logrus.FieldLogger
	editor ports.EditorOpener

	plan *domain.Plan

	state   ViewState
	browser *views.BrowserModel
	preview *views.PreviewModel
	help    *views.HelpModel

	width  int
	height int
}

// NewApp creates the browser over the plan of layout. A nil editor disables editing.
func NewApp(store ports.DocumentStore, dates ports.DateResolver, layout domain.Layout, log logrus.FieldLogger, ed ports.EditorOpener) *App {
	a := &App{
		store:  store,
		dates:  dates,
		layout: layout,
		log:    log,
		editor: ed,
		state:  ViewBrowser,
		help:   views.NewHelpModel(),
	}

	repos := make([]string, 0, len(layout.Repositories))
	for _, r := range layout.Repositories {
		repos = append(repos, r.Name)
	}

	a.browser = views.NewBrowserModel(a.loadPlan, repos)
	a.preview = views.NewPreviewModel(a.renderDocument)
	return a
}

// loadPlan runs the planner and keeps the result for previews
func (a *App) loadPlan(ctx context.Context) (*domain.Plan, error) {
	result, err := commands.NewPlanCommand(a.store, a.dates, a.layout, a.log).Execute(ctx)
	if err != nil {
		return nil, err
	}
	a.plan = result.Plan
	return result.Plan, nil
}

// renderDocument rewrites a source document exactly as a migration would
func (a *App) renderDocument(m domain.FileMapping) (string, []string, error) {
	content, err := a.store.ReadFile(m.OldPath)
	if err != nil {
		return "", nil, err
	}

	result, err := commands.NewRewriteCommand(a.plan, a.layout, m.Source.Repository, content).Execute(context.Background())
	if err != nil {
		return "", nil, err
	}
	return result.Content, result.Warnings, nil
}

// Init initializes the application
func (a *App) Init() tea.Cmd {
	return a.browser.Init()
}

// Update handles messages for the application
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.browser.SetSize(msg.Width, msg.Height)
		a.preview.SetSize(msg.Width, msg.Height)
		a.help.SetSize(msg.Width, msg.Height)
		return a, nil

	// View switching messages
	case views.SwitchToPreviewMsg:
		a.state = ViewPreview
		return a, a.preview.Show(msg.Mapping)

	case views.SwitchToHelpMsg:
		a.state = ViewHelp
		return a, nil

	case views.SwitchToBrowserMsg:
		a.state = ViewBrowser
		return a, nil

	case views.OpenEditorMsg:
		return a, a.openEditor(msg.Path)

	case editorFinishedMsg:
		if msg.err != nil {
			a.log.WithError(msg.err).Warn("editor exited with an error")
		}
		return a, nil
	}

	// Delegate to current view
	var cmd tea.Cmd
	switch a.state {
	case ViewBrowser:
		_, cmd = a.browser.Update(msg)
	case ViewPreview:
		_, cmd = a.preview.Update(msg)
	case ViewHelp:
		_, cmd = a.help.Update(msg)
	}

	return a, cmd
}

type editorFinishedMsg struct{ err error }

func (a *App) openEditor(path string) tea.Cmd {
	if a.editor == nil {
		return nil
	}

	cmd, err := a.editor.Command(path)
	if err != nil {
		return func() tea.Msg {
			return editorFinishedMsg{err: err}
		}
	}

	return tea.ExecProcess(cmd, func(err error) tea.Msg {
		return editorFinishedMsg{err: err}
	})
}

// View renders the current view
func (a *App) View() string {
	switch a.state {
	case ViewPreview:
		return a.preview.View()
	case ViewHelp:
		return a.help.View()
	default:
		return a.browser.View()
	}
}
