package cli

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/julianstephens/habitual/internal/constants"
	"github.com/julianstephens/habitual/internal/errors"
	"github.com/julianstephens/habitual/internal/models"
	"github.com/julianstephens/habitual/internal/store"
	"github.com/julianstephens/habitual/internal/utils"
	"github.com/julianstephens/habitual/internal/validation"
)

type HabitCmd struct {
	List   HabitListCmd   `cmd:"" help:"List habits with the last five days." default:"1"`
	Show   HabitShowCmd   `cmd:"" help:"Show one habit."`
	Add    HabitAddCmd    `cmd:"" help:"Add a new habit."`
	Edit   HabitEditCmd   `cmd:"" help:"Edit an existing habit."`
	Delete HabitDeleteCmd `cmd:"" help:"Delete a habit."`
	Toggle HabitToggleCmd `cmd:"" help:"Toggle completion of a habit for a day."`
}

// loadCollection fetches every habit through the configured API.
func loadCollection(ctx *Context) (*store.Collection, error) {
	coll, err := ctx.Collection()
	if err != nil {
		return nil, err
	}
	if err := dispatch(coll, coll.FetchAll()); err != nil {
		return nil, err
	}
	return coll, nil
}

func findHabit(coll *store.Collection, id string) (models.Habit, error) {
	h, ok := coll.Find(id)
	if !ok {
		return models.Habit{}, fmt.Errorf("habit %q not found", id)
	}
	return h, nil
}

func marks(h models.Habit, days []string) string {
	var b strings.Builder
	for _, d := range days {
		if h.IsCompleted(d) {
			b.WriteString("x")
		} else {
			b.WriteString(".")
		}
	}
	return b.String()
}

type HabitListCmd struct{}

func (c *HabitListCmd) Run(ctx *Context) error {
	coll, err := loadCollection(ctx)
	if err != nil {
		return err
	}

	habits := coll.Habits()
	if len(habits) == 0 {
		ctx.printf("No habits found.\n")
		return nil
	}

	days := utils.LastFiveDays()
	header := fmt.Sprintf("%s..%s", utils.ShortDayLabel(days[len(days)-1]), utils.ShortDayLabel(days[0]))
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("ID", "NAME", "FREQUENCY", header)
	// Oldest day first so the row reads left to right.
	oldestFirst := slices.Clone(days)
	slices.Reverse(oldestFirst)
	for _, h := range habits {
		t.Row(h.ID, h.Name, h.Frequency.Label(), marks(h, oldestFirst))
	}
	ctx.printf("%s\n", t.Render())
	return nil
}

type HabitShowCmd struct {
	ID string `arg:"" help:"Habit ID."`
}

func (c *HabitShowCmd) Run(ctx *Context) error {
	coll, err := loadCollection(ctx)
	if err != nil {
		return err
	}
	h, err := findHabit(coll, c.ID)
	if err != nil {
		return err
	}

	ctx.printf("%s\n", h.Name)
	ctx.printf("ID:        %s\n", h.ID)
	if h.Description != "" {
		ctx.printf("About:     %s\n", h.Description)
	}
	ctx.printf("Frequency: %s\n", h.Frequency.Label())
	ctx.printf("Last %d days:\n", constants.TrailingDays)
	for _, d := range utils.LastFiveDays() {
		box := "[ ]"
		if h.IsCompleted(d) {
			box = "[x]"
		}
		ctx.printf("  %s %s\n", box, utils.LongDayLabel(d))
	}
	return nil
}

type HabitAddCmd struct {
	Name        string `arg:"" help:"Habit name."`
	Description string `help:"Optional description." short:"d"`
	Frequency   string `help:"How often: daily, weekly or monthly." enum:"daily,weekly,monthly" default:"daily" short:"f"`
}

func (c *HabitAddCmd) Run(ctx *Context) error {
	draft := models.Draft{
		Name:           strings.TrimSpace(c.Name),
		Description:    strings.TrimSpace(c.Description),
		Frequency:      models.Frequency(c.Frequency),
		CompletedDates: []string{},
	}
	if result := validation.ValidateDraft(draft); result.HasConflicts() {
		return result.Err()
	}

	coll, err := ctx.Collection()
	if err != nil {
		return err
	}
	if err := dispatch(coll, coll.Create(draft)); err != nil {
		return err
	}

	habits := coll.Habits()
	created := habits[len(habits)-1]
	ctx.printf("Added habit: %s (%s)\n", created.Name, created.ID)
	return nil
}

type HabitEditCmd struct {
	ID          string  `arg:"" help:"Habit ID."`
	Name        *string `help:"New name."`
	Description *string `help:"New description." short:"d"`
	Frequency   *string `help:"New frequency: daily, weekly or monthly." short:"f"`
}

func (c *HabitEditCmd) Run(ctx *Context) error {
	if c.Name == nil && c.Description == nil && c.Frequency == nil {
		return errors.New("nothing to change, pass --name, --description or --frequency")
	}

	coll, err := loadCollection(ctx)
	if err != nil {
		return err
	}
	h, err := findHabit(coll, c.ID)
	if err != nil {
		return err
	}

	if c.Name != nil {
		h.Name = strings.TrimSpace(*c.Name)
	}
	if c.Description != nil {
		h.Description = strings.TrimSpace(*c.Description)
	}
	if c.Frequency != nil {
		f, err := models.ParseFrequency(*c.Frequency)
		if err != nil {
			return err
		}
		h.Frequency = f
	}
	if result := validation.ValidateDraft(h.Draft()); result.HasConflicts() {
		return result.Err()
	}

	if err := dispatch(coll, coll.Update(h)); err != nil {
		return err
	}
	ctx.printf("Updated habit: %s\n", h.Name)
	return nil
}

type HabitDeleteCmd struct {
	ID  string `arg:"" help:"Habit ID."`
	Yes bool   `help:"Skip the confirmation prompt." short:"y"`
}

func (c *HabitDeleteCmd) Run(ctx *Context) error {
	coll, err := loadCollection(ctx)
	if err != nil {
		return err
	}
	h, err := findHabit(coll, c.ID)
	if err != nil {
		return err
	}

	if !c.Yes {
		ok, err := ctx.confirm(fmt.Sprintf("Delete habit %q?", h.Name))
		if err != nil {
			return err
		}
		if !ok {
			ctx.printf("Delete cancelled.\n")
			return nil
		}
	}

	if err := dispatch(coll, coll.Remove(h.ID)); err != nil {
		return err
	}
	ctx.printf("Deleted habit: %s\n", h.Name)
	return nil
}

type HabitToggleCmd struct {
	ID   string `arg:"" help:"Habit ID."`
	Date string `help:"Date in YYYY-MM-DD format (default: today)."`
}

func (c *HabitToggleCmd) Run(ctx *Context) error {
	day := c.Date
	if day == "" {
		day = utils.Today()
	} else if _, err := utils.ParseDay(day); err != nil {
		return err
	}

	coll, err := loadCollection(ctx)
	if err != nil {
		return err
	}
	if err := dispatch(coll, coll.Toggle(c.ID, day)); err != nil {
		return err
	}

	h, err := findHabit(coll, c.ID)
	if err != nil {
		return err
	}
	state := "Unmarked"
	if h.IsCompleted(day) {
		state = "Marked"
	}
	ctx.printf("%s habit %q for %s\n", state, h.Name, day)
	return nil
}
