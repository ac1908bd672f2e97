// Package detailpage is the "/detail/:id" page for a single habit.
package detailpage

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/habitual/internal/store"
	"github.com/julianstephens/habitual/internal/tui/components/days"
	"github.com/julianstephens/habitual/internal/tui/nav"
	"github.com/julianstephens/habitual/internal/utils"
)

type KeyMap struct {
	Back    key.Binding
	Delete  key.Binding
	Reload  key.Binding
	Confirm key.Binding
	Cancel  key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Back: key.NewBinding(
			key.WithKeys("esc", "backspace"),
			key.WithHelp("esc", "back to list"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete habit"),
		),
		Reload: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reload"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("y", "Y"),
			key.WithHelp("y", "confirm"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("n", "N", "esc"),
			key.WithHelp("n", "cancel"),
		),
	}
}

type Model struct {
	id         string
	coll       *store.Collection
	detail     *store.Detail
	keys       KeyMap
	dayKeys    days.KeyMap
	spinner    spinner.Model
	day        days.Cursor
	confirming bool
	deleting   bool
}

// New builds the page for the habit with the given id. The selection is
// resolved from whatever the collection already holds.
func New(coll *store.Collection, detail *store.Detail, id string) Model {
	detail.Sync(coll, id)
	return Model{
		id:      id,
		coll:    coll,
		detail:  detail,
		keys:    DefaultKeyMap(),
		dayKeys: days.DefaultKeyMap(),
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot)),
	}
}

// ID is the habit id from the route.
func (m Model) ID() string { return m.id }

// Init refreshes the collection so the selection reflects the server.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.coll.FetchAll(), m.spinner.Tick)
}

// Unmount drops the selection when the router leaves the page.
func (m Model) Unmount() {
	m.detail.Clear()
}

func (m Model) Capturing() bool { return m.confirming }

func (m Model) Bindings() []key.Binding {
	if m.confirming {
		return []key.Binding{m.keys.Confirm, m.keys.Cancel}
	}
	return []key.Binding{
		m.dayKeys.Prev, m.dayKeys.Next, m.dayKeys.Jump, m.dayKeys.Toggle,
		m.keys.Delete, m.keys.Reload, m.keys.Back,
	}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		if !m.coll.Loading() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case store.RemovedMsg:
		m.detail.Sync(m.coll, m.id)
		if msg.ID != m.id || !m.deleting {
			return m, nil
		}
		m.deleting = false
		if msg.Err != nil {
			return m, nil
		}
		return m, nav.Navigate(nav.List())

	case store.FetchedMsg, store.CreatedMsg, store.UpdatedMsg, store.ToggledMsg:
		m.detail.Sync(m.coll, m.id)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if m.confirming {
		switch {
		case key.Matches(msg, m.keys.Confirm):
			m.confirming = false
			if m.coll.Loading() {
				return m, nil
			}
			m.deleting = true
			return m, m.coll.Remove(m.id)
		case key.Matches(msg, m.keys.Cancel):
			m.confirming = false
		}
		return m, nil
	}

	if m.day.Move(msg, m.dayKeys) {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Back):
		return m, nav.Navigate(nav.List())
	case key.Matches(msg, m.keys.Reload):
		return m, tea.Batch(m.coll.FetchAll(), m.spinner.Tick)
	case key.Matches(msg, m.dayKeys.Toggle):
		if m.coll.Loading() {
			return m, nil
		}
		if _, ok := m.detail.Selected(); ok {
			return m, m.coll.Toggle(m.id, m.day.Day(utils.LastFiveDays()))
		}
	case key.Matches(msg, m.keys.Delete):
		if m.coll.Loading() {
			return m, nil
		}
		if _, ok := m.detail.Selected(); ok {
			m.confirming = true
		}
	}
	return m, nil
}
