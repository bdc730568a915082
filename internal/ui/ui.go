package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/songsite/internal/catalog"
	"github.com/desertthunder/songsite/internal/models"
	"github.com/desertthunder/songsite/internal/shared"
	"github.com/desertthunder/songsite/internal/tasks"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	CatalogView ViewState = iota
	DetailView
	ResultsView
	ConfirmView
)

// Model represents the TUI application state.
type Model struct {
	ctx         context.Context
	view        ViewState
	store       *catalog.Store
	resolver    *tasks.Resolver
	width       int
	height      int
	catalogList list.Model
	resultList  list.Model
	selected    *models.Song
	query       string
	status      string
	help        help.Model
	keys        keyMap
}

// NewModel creates a new TUI model over store, searching with resolver.
func NewModel(ctx context.Context, store *catalog.Store, resolver *tasks.Resolver) *Model {
	if resolver == nil {
		resolver = tasks.NewResolver(tasks.ResolverOpts{Store: store})
	}
	return &Model{
		ctx:         ctx,
		view:        CatalogView,
		store:       store,
		resolver:    resolver,
		catalogList: newList(nil, "Songs"),
		resultList:  newList(nil, "Results"),
		help:        help.New(),
		keys:        newKeyMap(),
	}
}

func newList(items []list.Item, title string) list.Model {
	l := list.New(items, list.NewDefaultDelegate(), 0, 0)
	l.Title = title
	return l
}

// View returns the active view.
func (m *Model) View() string {
	switch m.view {
	case CatalogView:
		return m.renderCatalog()
	case DetailView:
		return m.renderDetail()
	case ResultsView:
		return m.renderResults()
	case ConfirmView:
		return m.renderConfirm()
	default:
		return ""
	}
}

// State returns the active view.
func (m *Model) State() ViewState {
	return m.view
}

// Init loads the catalog from the store.
func (m *Model) Init() tea.Cmd {
	return m.loadCatalog(false)
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.catalogList.SetSize(msg.Width-4, msg.Height-8)
		m.resultList.SetSize(msg.Width-4, msg.Height-8)
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case CatalogView:
			return m.handleCatalogKeys(msg)
		case DetailView:
			return m.handleDetailKeys(msg)
		case ResultsView:
			return m.handleResultsKeys(msg)
		case ConfirmView:
			return m.handleConfirmKeys(msg)
		}

	case Msg:
		return m.handleMsg(msg)
	}

	return m.updateLists(msg)
}

func (m *Model) handleMsg(msg Msg) (tea.Model, tea.Cmd) {
	switch msg.kind {
	case MsgCatalogLoaded:
		data := msg.data.(catalogLoaded)
		if data.err != nil {
			m.status = styles.err.Render(fmt.Sprintf("Rescan failed: %v", data.err))
			m.view = CatalogView
			return m, nil
		}
		items := make([]list.Item, len(data.songs))
		for i, song := range data.songs {
			items[i] = songItem{song: song, plays: m.store.Plays(song.Key)}
		}
		cmd := m.catalogList.SetItems(items)
		m.catalogList.Title = fmt.Sprintf("Songs (%d)", len(items))
		if m.view == ConfirmView {
			m.status = styles.ok.Render(fmt.Sprintf("Rescanned %s", m.store.Dir()))
		} else {
			m.status = ""
		}
		m.view = CatalogView
		return m, cmd

	case MsgSearchDone:
		data := msg.data.(searchDone)
		m.query = data.query
		items := make([]list.Item, len(data.results))
		for i, r := range data.results {
			items[i] = resultItem{result: r}
		}
		cmd := m.resultList.SetItems(items)
		m.resultList.Title = fmt.Sprintf("%s results for %q", m.resolver.Mode(), data.query)
		m.view = ResultsView
		return m, cmd
	}
	return m, nil
}

func (m *Model) handleCatalogKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.catalogList.FilterState() == list.Filtering {
		var cmd tea.Cmd
		m.catalogList, cmd = m.catalogList.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.enter):
		if item, ok := m.catalogList.SelectedItem().(songItem); ok {
			song := item.song
			m.selected = &song
			m.view = DetailView
		}
		return m, nil
	case key.Matches(msg, m.keys.search):
		if item, ok := m.catalogList.SelectedItem().(songItem); ok {
			song := item.song
			m.selected = &song
			return m, m.search(song.Key)
		}
		return m, nil
	case key.Matches(msg, m.keys.rebuild):
		m.view = ConfirmView
		return m, nil
	}

	var cmd tea.Cmd
	m.catalogList, cmd = m.catalogList.Update(msg)
	return m, cmd
}

func (m *Model) handleDetailKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.back):
		m.view = CatalogView
		return m, nil
	case key.Matches(msg, m.keys.search) && m.selected != nil:
		return m, m.search(m.selected.Key)
	}
	return m, nil
}

func (m *Model) handleResultsKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.resultList.FilterState() == list.Filtering {
		var cmd tea.Cmd
		m.resultList, cmd = m.resultList.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.back):
		if m.selected != nil {
			m.view = DetailView
		} else {
			m.view = CatalogView
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.resultList, cmd = m.resultList.Update(msg)
	return m, cmd
}

func (m *Model) handleConfirmKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.yes):
		return m, m.loadCatalog(true)
	case key.Matches(msg, m.keys.no), key.Matches(msg, m.keys.back), key.Matches(msg, m.keys.quit):
		m.view = CatalogView
		return m, nil
	}
	return m, nil
}

func (m *Model) updateLists(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.view {
	case CatalogView:
		m.catalogList, cmd = m.catalogList.Update(msg)
	case ResultsView:
		m.resultList, cmd = m.resultList.Update(msg)
	}
	return m, cmd
}

// loadCatalog reads the store, rescanning the songs directory first when rescan is set.
func (m *Model) loadCatalog(rescan bool) tea.Cmd {
	return func() tea.Msg {
		if rescan {
			if err := m.store.Rebuild(); err != nil {
				return catalogLoadedMsg(nil, err)
			}
		}
		return catalogLoadedMsg(m.store.Snapshot().Sorted(), nil)
	}
}

func (m *Model) search(query string) tea.Cmd {
	return func() tea.Msg {
		return searchDoneMsg(query, m.resolver.Search(m.ctx, query))
	}
}

func (m *Model) renderCatalog() string {
	helpKeys := []key.Binding{m.keys.enter, m.keys.search, m.keys.rebuild, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)

	out := m.catalogList.View()
	if m.status != "" {
		out += "\n" + m.status
	}
	return fmt.Sprintf("%s\n\n%s", out, helpView)
}

func (m *Model) renderDetail() string {
	if m.selected == nil {
		return styles.warn.Render("No song selected\n\nPress esc to go back")
	}

	s := m.selected
	title := styles.title.Render(s.DisplayTitle())

	var b strings.Builder
	row := func(label, value string) {
		if value != "" {
			fmt.Fprintf(&b, "%s %s\n", styles.label.Render(label), value)
		}
	}
	row("Key", s.Key)
	row("Path", s.Path)
	row("Size", shared.FormatSize(s.Size))
	row("Artist", s.Artist)
	row("Album", s.Album)
	row("Searches", fmt.Sprintf("%d", m.store.Plays(s.Key)))

	helpKeys := []key.Binding{m.keys.search, m.keys.back, m.keys.quit}
	return fmt.Sprintf("%s\n%s\n%s", title, b.String(), m.help.ShortHelpView(helpKeys))
}

func (m *Model) renderResults() string {
	helpKeys := []key.Binding{m.keys.back, m.keys.quit}
	out := m.resultList.View()
	if len(m.resultList.Items()) == 0 {
		out = styles.warn.Render(fmt.Sprintf("No results for %q", m.query))
	}
	return fmt.Sprintf("%s\n\n%s", out, m.help.ShortHelpView(helpKeys))
}

func (m *Model) renderConfirm() string {
	title := styles.title.Render("Rescan the songs directory?")
	info := fmt.Sprintf("\nDirectory: %s\nSongs now: %d\n", m.store.Dir(), m.store.Len())

	helpKeys := []key.Binding{m.keys.yes, m.keys.no}
	return fmt.Sprintf("%s\n%s\n%s", title, info, m.help.ShortHelpView(helpKeys))
}
