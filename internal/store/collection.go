// Package store holds the client-side state shared by the pages: the habit
// collection mirrored from the API and the habit selected for the detail view.
package store

import (
	"context"
	"slices"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/habitual/internal/constants"
	"github.com/julianstephens/habitual/internal/logger"
	"github.com/julianstephens/habitual/internal/models"
)

// HabitsAPI is the request surface the collection depends on.
type HabitsAPI interface {
	ListHabits(ctx context.Context) ([]models.Habit, error)
	CreateHabit(ctx context.Context, d models.Draft) (models.Habit, error)
	UpdateHabit(ctx context.Context, h models.Habit) (models.Habit, error)
	ToggleHabit(ctx context.Context, id, date string) (models.Habit, error)
	DeleteHabit(ctx context.Context, id string) error
}

// Result messages produced by the commands returned from Collection actions.
type (
	FetchedMsg struct {
		Habits []models.Habit
		Err    error
	}
	CreatedMsg struct {
		Habit models.Habit
		Err   error
	}
	UpdatedMsg struct {
		Habit models.Habit
		Err   error
	}
	ToggledMsg struct {
		ID    string
		Date  string
		Habit models.Habit
		Err   error
	}
	RemovedMsg struct {
		ID  string
		Err error
	}
)

// Collection is the canonical client-side mirror of the server collection.
//
// Every action applies its pending phase immediately and returns a command
// that performs the request. The command's result message must be passed back
// through Apply, which is the only place the habits change. All methods are
// meant to be called from the bubbletea update loop.
type Collection struct {
	api      HabitsAPI
	habits   []models.Habit
	inFlight int
	err      string
	loaded   bool
}

func NewCollection(api HabitsAPI) *Collection {
	return &Collection{
		api:    api,
		habits: []models.Habit{},
	}
}

// Habits returns the collection in server order. Callers must not modify it.
func (c *Collection) Habits() []models.Habit { return c.habits }

// Loading reports whether any action is still in flight.
func (c *Collection) Loading() bool { return c.inFlight > 0 }

// Error returns the message of the last failed action, or "".
func (c *Collection) Error() string { return c.err }

// Loaded reports whether a fetch has completed successfully at least once.
func (c *Collection) Loaded() bool { return c.loaded }

// Find looks up a habit by id.
func (c *Collection) Find(id string) (models.Habit, bool) {
	i := c.index(id)
	if i < 0 {
		return models.Habit{}, false
	}
	return c.habits[i], true
}

func (c *Collection) index(id string) int {
	return slices.IndexFunc(c.habits, func(h models.Habit) bool { return h.ID == id })
}

func (c *Collection) pending() {
	c.inFlight++
	c.err = ""
}

func (c *Collection) settle() {
	if c.inFlight > 0 {
		c.inFlight--
	}
}

func (c *Collection) reject(msg string, err error) {
	logger.Warn(msg, "error", err)
	c.err = msg
}

// FetchAll reloads the whole collection.
func (c *Collection) FetchAll() tea.Cmd {
	c.pending()
	api := c.api
	return func() tea.Msg {
		habits, err := api.ListHabits(context.Background())
		return FetchedMsg{Habits: habits, Err: err}
	}
}

// Create sends a new habit. The server assigns its id.
func (c *Collection) Create(d models.Draft) tea.Cmd {
	c.pending()
	api := c.api
	return func() tea.Msg {
		h, err := api.CreateHabit(context.Background(), d)
		return CreatedMsg{Habit: h, Err: err}
	}
}

// Update sends the full record of an existing habit.
func (c *Collection) Update(h models.Habit) tea.Cmd {
	c.pending()
	api := c.api
	h = h.Clone()
	return func() tea.Msg {
		out, err := api.UpdateHabit(context.Background(), h)
		return UpdatedMsg{Habit: out, Err: err}
	}
}

// Toggle flips one day. The local entry changes only once the server answers.
func (c *Collection) Toggle(id, date string) tea.Cmd {
	c.pending()
	api := c.api
	return func() tea.Msg {
		h, err := api.ToggleHabit(context.Background(), id, date)
		return ToggledMsg{ID: id, Date: date, Habit: h, Err: err}
	}
}

// Remove deletes a habit by id.
func (c *Collection) Remove(id string) tea.Cmd {
	c.pending()
	api := c.api
	return func() tea.Msg {
		err := api.DeleteHabit(context.Background(), id)
		return RemovedMsg{ID: id, Err: err}
	}
}

// Apply reduces a result message into the collection. It reports whether msg
// was one of the collection's result messages.
func (c *Collection) Apply(msg tea.Msg) bool {
	switch msg := msg.(type) {
	case FetchedMsg:
		c.settle()
		if msg.Err != nil {
			c.reject(constants.MsgFetchFailed, msg.Err)
			return true
		}
		c.habits = slices.Clone(msg.Habits)
		if c.habits == nil {
			c.habits = []models.Habit{}
		}
		c.loaded = true

	case CreatedMsg:
		c.settle()
		if msg.Err != nil {
			c.reject(constants.MsgCreateFailed, msg.Err)
			return true
		}
		c.habits = append(slices.Clone(c.habits), msg.Habit)

	case UpdatedMsg:
		c.settle()
		if msg.Err != nil {
			c.reject(constants.MsgUpdateFailed, msg.Err)
			return true
		}
		c.replace(msg.Habit)

	case ToggledMsg:
		c.settle()
		if msg.Err != nil {
			c.reject(constants.MsgToggleFailed, msg.Err)
			return true
		}
		c.replace(msg.Habit)

	case RemovedMsg:
		c.settle()
		if msg.Err != nil {
			c.reject(constants.MsgDeleteFailed, msg.Err)
			return true
		}
		c.habits = slices.DeleteFunc(slices.Clone(c.habits), func(h models.Habit) bool { return h.ID == msg.ID })

	default:
		return false
	}
	return true
}

// replace swaps the entry with the same id. A vanished id is ignored.
func (c *Collection) replace(h models.Habit) {
	i := c.index(h.ID)
	if i < 0 {
		return
	}
	habits := slices.Clone(c.habits)
	habits[i] = h
	c.habits = habits
}
