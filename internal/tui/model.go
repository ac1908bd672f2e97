// Package tui is the terminal front end: a router that swaps between the list
// and detail pages and feeds them the collection's results.
package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/habitual/internal/store"
	"github.com/julianstephens/habitual/internal/tui/components/detailpage"
	"github.com/julianstephens/habitual/internal/tui/components/listpage"
	"github.com/julianstephens/habitual/internal/tui/nav"
)

type Model struct {
	coll       *store.Collection
	detail     *store.Detail
	route      nav.Route
	list       listpage.Model
	detailPage detailpage.Model
	keys       KeyMap
	help       help.Model
	quitting   bool
	width      int
	height     int
}

// NewModel builds the router starting at start.
func NewModel(coll *store.Collection, detail *store.Detail, start nav.Route) Model {
	m := Model{
		coll:   coll,
		detail: detail,
		route:  start,
		list:   listpage.New(coll),
		keys:   DefaultKeyMap(),
		help:   help.New(),
	}
	if start.Name == nav.RouteDetail {
		m.detailPage = detailpage.New(coll, detail, start.ID)
	}
	return m
}

// Route returns the page being shown.
func (m Model) Route() nav.Route { return m.route }

func (m Model) Init() tea.Cmd {
	return m.mountCmd()
}

func (m Model) mountCmd() tea.Cmd {
	if m.route.Name == nav.RouteDetail {
		return m.detailPage.Init()
	}
	return m.list.Init()
}

func (m Model) capturing() bool {
	if m.route.Name == nav.RouteDetail {
		return m.detailPage.Capturing()
	}
	return m.list.Capturing()
}

func (m Model) pageBindings() []key.Binding {
	if m.route.Name == nav.RouteDetail {
		return m.detailPage.Bindings()
	}
	return m.list.Bindings()
}

func (m Model) ShortHelp() []key.Binding {
	keys := m.pageBindings()
	if m.capturing() {
		return keys
	}
	return append(keys, m.keys.Help, m.keys.Quit)
}

func (m Model) FullHelp() [][]key.Binding {
	global := []key.Binding{m.keys.Help, m.keys.Quit}
	return [][]key.Binding{m.pageBindings(), global}
}
