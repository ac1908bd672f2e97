package detailpage

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/habitual/internal/api"
	"github.com/julianstephens/habitual/internal/constants"
	"github.com/julianstephens/habitual/internal/mockapi"
	"github.com/julianstephens/habitual/internal/models"
	"github.com/julianstephens/habitual/internal/storage"
	"github.com/julianstephens/habitual/internal/store"
	"github.com/julianstephens/habitual/internal/tui/nav"
	"github.com/julianstephens/habitual/internal/utils"
)

var errDown = errors.New("service down")

type flakyAPI struct {
	store.HabitsAPI
	failList   bool
	failToggle bool
	failDelete bool
}

func (f *flakyAPI) ListHabits(ctx context.Context) ([]models.Habit, error) {
	if f.failList {
		return nil, errDown
	}
	return f.HabitsAPI.ListHabits(ctx)
}

func (f *flakyAPI) ToggleHabit(ctx context.Context, id, date string) (models.Habit, error) {
	if f.failToggle {
		return models.Habit{}, errDown
	}
	return f.HabitsAPI.ToggleHabit(ctx, id, date)
}

func (f *flakyAPI) DeleteHabit(ctx context.Context, id string) error {
	if f.failDelete {
		return errDown
	}
	return f.HabitsAPI.DeleteHabit(ctx, id)
}

type fixture struct {
	coll   *store.Collection
	detail *store.Detail
	api    *flakyAPI
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	orig := utils.Now
	utils.Now = func() time.Time { return time.Date(2024, 3, 21, 9, 0, 0, 0, time.Local) }
	t.Cleanup(func() { utils.Now = orig })

	svc := mockapi.NewService(storage.NewMemoryStore())
	fake := &flakyAPI{HabitsAPI: api.NewInProcess(mockapi.NewRouter(svc))}
	return &fixture{coll: store.NewCollection(fake), detail: store.NewDetail(), api: fake}
}

func (f *fixture) drive(t *testing.T, m Model, cmd tea.Cmd) (Model, []nav.NavigateMsg) {
	t.Helper()
	var navs []nav.NavigateMsg
	queue := []tea.Cmd{cmd}
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		if c == nil {
			continue
		}
		switch msg := c().(type) {
		case tea.BatchMsg:
			queue = append(queue, msg...)
		case spinner.TickMsg:
		case nav.NavigateMsg:
			navs = append(navs, msg)
		default:
			f.coll.Apply(msg)
			var next tea.Cmd
			m, next = m.Update(msg)
			queue = append(queue, next)
		}
	}
	return m, navs
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "space":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestSkeletonWhileLoading(t *testing.T) {
	f := newFixture(t)
	m := New(f.coll, f.detail, "1")
	cmd := m.Init()

	view := m.View()
	if !strings.Contains(view, "░") {
		t.Errorf("View() while loading = %q, want placeholder", view)
	}

	m, _ = f.drive(t, m, cmd)
	if strings.Contains(m.View(), "░") {
		t.Error("placeholder still shown after load")
	}
}

func TestFullRecord(t *testing.T) {
	f := newFixture(t)
	m := New(f.coll, f.detail, "1")
	m, _ = f.drive(t, m, m.Init())

	view := m.View()
	for _, want := range []string{
		"Read books",
		"Description",
		"Read for at least 30 minutes a day",
		"Daily",
		"21 March 2024",
		"17 March 2024",
	} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q:\n%s", want, view)
		}
	}
	if got := strings.Count(view, "[x]"); got != 2 {
		t.Errorf("checked boxes = %d, want 2", got)
	}
	if got := strings.Count(view, "[ ]"); got != 3 {
		t.Errorf("unchecked boxes = %d, want 3", got)
	}
}

func TestDescriptionSectionOmittedWhenEmpty(t *testing.T) {
	f := newFixture(t)
	m := New(f.coll, f.detail, "1")
	m, _ = f.drive(t, m, m.Init())
	m, _ = f.drive(t, m, f.coll.Create(models.Draft{Name: "Stretch", Frequency: models.FrequencyMonthly, CompletedDates: []string{}}))

	created := f.coll.Habits()[1]
	m = New(f.coll, f.detail, created.ID)
	view := m.View()
	if strings.Contains(view, "Description") {
		t.Errorf("description section rendered for an empty description:\n%s", view)
	}
	if !strings.Contains(view, "Monthly") {
		t.Errorf("frequency label missing:\n%s", view)
	}
}

func TestNotFoundIsNotAnError(t *testing.T) {
	f := newFixture(t)
	m := New(f.coll, f.detail, "missing")
	m, _ = f.drive(t, m, m.Init())

	view := m.View()
	if !strings.Contains(view, notFoundTitle) {
		t.Errorf("View() = %q, want not found", view)
	}
	if strings.Contains(view, failedTitle) {
		t.Error("not found rendered as an error")
	}
}

func TestFetchErrorView(t *testing.T) {
	f := newFixture(t)
	f.api.failList = true
	m := New(f.coll, f.detail, "1")
	m, _ = f.drive(t, m, m.Init())

	view := m.View()
	if !strings.Contains(view, failedTitle) || !strings.Contains(view, constants.MsgFetchFailed) {
		t.Errorf("View() = %q, want error view", view)
	}
}

func TestToggleFlipsDay(t *testing.T) {
	f := newFixture(t)
	m := New(f.coll, f.detail, "1")
	m, _ = f.drive(t, m, m.Init())

	m, _ = m.Update(keyMsg("3"))
	m, cmd := m.Update(keyMsg("space"))
	m, _ = f.drive(t, m, cmd)

	h, _ := f.detail.Selected()
	if !h.IsCompleted("2024-03-19") {
		t.Errorf("2024-03-19 not completed: %v", h.CompletedDates)
	}
	if got := strings.Count(m.View(), "[x]"); got != 3 {
		t.Errorf("checked boxes = %d, want 3", got)
	}
}

func TestKeysIgnoredWhileLoading(t *testing.T) {
	f := newFixture(t)
	m := New(f.coll, f.detail, "1")
	m, _ = f.drive(t, m, m.Init())

	pending := f.coll.FetchAll()
	if _, cmd := m.Update(keyMsg("space")); cmd != nil {
		t.Error("toggle dispatched while loading")
	}
	m, _ = m.Update(keyMsg("d"))
	if m.Capturing() {
		t.Error("delete confirmation opened while loading")
	}
	f.drive(t, m, pending)
}

func TestDeleteNavigatesAfterSuccess(t *testing.T) {
	f := newFixture(t)
	m := New(f.coll, f.detail, "1")
	m, _ = f.drive(t, m, m.Init())

	m, _ = m.Update(keyMsg("d"))
	if !m.Capturing() {
		t.Fatal("confirmation not shown")
	}
	m, cmd := m.Update(keyMsg("y"))
	if cmd == nil {
		t.Fatal("confirm did not dispatch a delete")
	}
	_, navs := f.drive(t, m, cmd)
	if len(navs) != 1 || navs[0].To != nav.List() {
		t.Errorf("navigation = %+v, want /", navs)
	}
	if _, ok := f.coll.Find("1"); ok {
		t.Error("habit still in collection")
	}
}

func TestDeleteFailureStays(t *testing.T) {
	f := newFixture(t)
	m := New(f.coll, f.detail, "1")
	m, _ = f.drive(t, m, m.Init())

	f.api.failDelete = true
	m, _ = m.Update(keyMsg("d"))
	m, cmd := m.Update(keyMsg("y"))
	m, navs := f.drive(t, m, cmd)

	if len(navs) != 0 {
		t.Errorf("navigated after failed delete: %+v", navs)
	}
	if !strings.Contains(m.View(), constants.MsgDeleteFailed) {
		t.Errorf("View() missing delete failure:\n%s", m.View())
	}
}

func TestRemovalOfOtherHabitDoesNotNavigate(t *testing.T) {
	f := newFixture(t)
	m := New(f.coll, f.detail, "1")
	m, _ = f.drive(t, m, m.Init())
	m, _ = f.drive(t, m, f.coll.Create(models.Draft{Name: "Other", Frequency: models.FrequencyDaily, CompletedDates: []string{}}))

	other := f.coll.Habits()[1].ID
	m.deleting = true
	m, navs := f.drive(t, m, f.coll.Remove(other))
	if len(navs) != 0 {
		t.Errorf("navigated on removal of another habit: %+v", navs)
	}
	if _, ok := f.detail.Selected(); !ok {
		t.Error("selection lost")
	}
}

func TestBackKeys(t *testing.T) {
	for _, k := range []string{"esc", "backspace"} {
		t.Run(k, func(t *testing.T) {
			f := newFixture(t)
			m := New(f.coll, f.detail, "1")
			_, cmd := m.Update(keyMsg(k))
			_, navs := f.drive(t, m, cmd)
			if len(navs) != 1 || navs[0].To != nav.List() {
				t.Errorf("navigation = %+v, want /", navs)
			}
		})
	}
}

func TestUnmountClearsSelection(t *testing.T) {
	f := newFixture(t)
	m := New(f.coll, f.detail, "1")
	m, _ = f.drive(t, m, m.Init())

	if _, ok := f.detail.Selected(); !ok {
		t.Fatal("no selection after load")
	}
	m.Unmount()
	if _, ok := f.detail.Selected(); ok {
		t.Error("selection survived unmount")
	}
}
