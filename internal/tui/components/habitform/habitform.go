// Package habitform wraps the huh form used to create and edit habits.
package habitform

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/habitual/internal/models"
	"github.com/julianstephens/habitual/internal/validation"
)

// Values is what the form fields are bound to.
type Values struct {
	Name        string
	Description string
	Frequency   models.Frequency
}

// Result tells the page what the last Update did to the form.
type Result int

const (
	ResultNone Result = iota
	ResultSubmitted
	ResultCancelled
)

// Model is one open form. A nil editing habit means the form creates a new one.
type Model struct {
	form    *huh.Form
	values  *Values
	editing *models.Habit
	err     string
	waiting bool
}

// New opens an empty form for a new habit.
func New() *Model {
	return newModel(&Values{Frequency: models.FrequencyDaily}, nil)
}

// Edit opens a form prefilled with h.
func Edit(h models.Habit) *Model {
	h = h.Clone()
	v := &Values{Name: h.Name, Description: h.Description, Frequency: h.Frequency}
	if !v.Frequency.Valid() {
		v.Frequency = models.FrequencyDaily
	}
	return newModel(v, &h)
}

func newModel(v *Values, editing *models.Habit) *Model {
	m := &Model{values: v, editing: editing}
	m.form = buildForm(v, editing != nil)
	return m
}

func buildForm(v *Values, editing bool) *huh.Form {
	title := "New habit"
	if editing {
		title = "Edit habit"
	}

	options := make([]huh.Option[models.Frequency], 0, len(models.Frequencies()))
	for _, f := range models.Frequencies() {
		options = append(options, huh.NewOption(f.Label(), f))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title(title).
				Description("Name").
				Value(&v.Name).
				Validate(validation.ValidateName),
			huh.NewText().
				Title("Description").
				Description("Optional").
				Value(&v.Description),
			huh.NewSelect[models.Frequency]().
				Title("Frequency").
				Options(options...).
				Value(&v.Frequency).
				Validate(validation.ValidateFrequency),
		),
	).WithTheme(huh.ThemeDracula())
}

func (m *Model) Init() tea.Cmd {
	return m.form.Init()
}

// Editing returns the habit being edited, if any.
func (m *Model) Editing() (models.Habit, bool) {
	if m.editing == nil {
		return models.Habit{}, false
	}
	return *m.editing, true
}

// Values returns a copy of the entered values.
func (m *Model) Values() Values { return *m.values }

// Draft converts the entered values into a create request.
func (m *Model) Draft() models.Draft {
	return models.Draft{
		Name:           strings.TrimSpace(m.values.Name),
		Description:    strings.TrimSpace(m.values.Description),
		Frequency:      m.values.Frequency,
		CompletedDates: []string{},
	}
}

// Habit applies the entered values to the habit being edited.
func (m *Model) Habit() models.Habit {
	h := m.editing.Clone()
	d := m.Draft()
	h.Name = d.Name
	h.Description = d.Description
	h.Frequency = d.Frequency
	return h
}

// Submitted marks the form as waiting for its request.
func (m *Model) Submitted() {
	m.waiting = true
	m.err = ""
}

// Waiting reports whether the form was submitted and its request is in flight.
func (m *Model) Waiting() bool { return m.waiting }

func (m *Model) Err() string { return m.err }

// Reopen puts a submitted form back into editing with the entered values and
// an error to show above it.
func (m *Model) Reopen(errMsg string) tea.Cmd {
	m.err = errMsg
	m.waiting = false
	m.form = buildForm(m.values, m.editing != nil)
	return m.form.Init()
}

// Update forwards msg to the form. Esc cancels.
func (m *Model) Update(msg tea.Msg) (Result, tea.Cmd) {
	if m.waiting {
		return ResultNone, nil
	}
	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		return ResultCancelled, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		if result := validation.ValidateDraft(m.Draft()); result.HasConflicts() {
			m.form.State = huh.StateNormal
			return ResultNone, cmd
		}
		return ResultSubmitted, cmd
	case huh.StateAborted:
		return ResultCancelled, cmd
	}
	return ResultNone, cmd
}

func (m *Model) View() string {
	if m.waiting {
		return "Saving..."
	}
	if m.err != "" {
		return errorStyle.Render(m.err) + "\n" + m.form.View()
	}
	return m.form.View()
}
