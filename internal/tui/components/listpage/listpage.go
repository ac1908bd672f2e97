// Package listpage is the "/" page: every habit as a card with its last five days.
package listpage

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/habitual/internal/models"
	"github.com/julianstephens/habitual/internal/store"
	"github.com/julianstephens/habitual/internal/tui/components/days"
	"github.com/julianstephens/habitual/internal/tui/components/habitform"
	"github.com/julianstephens/habitual/internal/tui/nav"
	"github.com/julianstephens/habitual/internal/utils"
)

type Model struct {
	coll     *store.Collection
	keys     KeyMap
	dayKeys  days.KeyMap
	spinner  spinner.Model
	cursor   int
	day      days.Cursor
	form     *habitform.Model
	deleteID string
	width    int
}

func New(coll *store.Collection) Model {
	return Model{
		coll:    coll,
		keys:    DefaultKeyMap(),
		dayKeys: days.DefaultKeyMap(),
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot)),
	}
}

// Init loads the collection.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.coll.FetchAll(), m.spinner.Tick)
}

func (m *Model) SetWidth(w int) { m.width = w }

// Capturing reports whether the page wants every key, so global bindings
// such as quit must not fire.
func (m Model) Capturing() bool {
	return m.form != nil || m.deleteID != ""
}

// Bindings lists the keys shown in the help footer.
func (m Model) Bindings() []key.Binding {
	if m.deleteID != "" {
		return []key.Binding{m.keys.Confirm, m.keys.Cancel}
	}
	if m.form != nil {
		return nil
	}
	return []key.Binding{
		m.keys.Up, m.keys.Down, m.dayKeys.Prev, m.dayKeys.Next, m.dayKeys.Jump,
		m.dayKeys.Toggle, m.keys.Open, m.keys.Add, m.keys.Edit, m.keys.Delete, m.keys.Reload,
	}
}

func (m Model) selected() (models.Habit, bool) {
	habits := m.coll.Habits()
	if m.cursor < 0 || m.cursor >= len(habits) {
		return models.Habit{}, false
	}
	return habits[m.cursor], true
}

func (m *Model) clamp() {
	n := len(m.coll.Habits())
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
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

	case store.CreatedMsg:
		if m.form != nil && m.form.Waiting() {
			if _, editing := m.form.Editing(); !editing {
				return m.settleForm(msg.Err)
			}
		}
		return m, nil

	case store.UpdatedMsg:
		if m.form != nil && m.form.Waiting() {
			if h, editing := m.form.Editing(); editing && (msg.Err != nil || msg.Habit.ID == h.ID) {
				return m.settleForm(msg.Err)
			}
		}
		return m, nil

	case store.FetchedMsg, store.ToggledMsg, store.RemovedMsg:
		m.clamp()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.form != nil {
		_, cmd := m.form.Update(msg)
		return m, cmd
	}
	return m, nil
}

// settleForm closes the form after a successful save, or reopens it with the
// collection's error message.
func (m Model) settleForm(err error) (Model, tea.Cmd) {
	if err != nil {
		return m, m.form.Reopen(m.coll.Error())
	}
	m.form = nil
	m.clamp()
	return m, nil
}

func (m Model) submit() (Model, tea.Cmd) {
	m.form.Submitted()
	if _, editing := m.form.Editing(); editing {
		return m, m.coll.Update(m.form.Habit())
	}
	return m, m.coll.Create(m.form.Draft())
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if m.form != nil {
		res, cmd := m.form.Update(msg)
		switch res {
		case habitform.ResultCancelled:
			m.form = nil
			return m, nil
		case habitform.ResultSubmitted:
			var submit tea.Cmd
			m, submit = m.submit()
			return m, tea.Batch(cmd, submit)
		}
		return m, cmd
	}

	if m.deleteID != "" {
		switch {
		case key.Matches(msg, m.keys.Confirm):
			id := m.deleteID
			m.deleteID = ""
			return m, tea.Batch(m.coll.Remove(id), m.spinner.Tick)
		case key.Matches(msg, m.keys.Cancel):
			m.deleteID = ""
		}
		return m, nil
	}

	if m.day.Move(msg, m.dayKeys) {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.coll.Habits())-1 {
			m.cursor++
		}
	case key.Matches(msg, m.dayKeys.Toggle):
		if h, ok := m.selected(); ok {
			day := m.day.Day(utils.LastFiveDays())
			return m, tea.Batch(m.coll.Toggle(h.ID, day), m.spinner.Tick)
		}
	case key.Matches(msg, m.keys.Open):
		if h, ok := m.selected(); ok {
			return m, nav.Navigate(nav.Detail(h.ID))
		}
	case key.Matches(msg, m.keys.Add):
		m.form = habitform.New()
		return m, m.form.Init()
	case key.Matches(msg, m.keys.Edit):
		if h, ok := m.selected(); ok {
			m.form = habitform.Edit(h)
			return m, m.form.Init()
		}
	case key.Matches(msg, m.keys.Delete):
		if h, ok := m.selected(); ok {
			m.deleteID = h.ID
		}
	case key.Matches(msg, m.keys.Reload):
		return m, tea.Batch(m.coll.FetchAll(), m.spinner.Tick)
	}
	return m, nil
}
