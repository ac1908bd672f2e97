package store

import (
	"testing"

	"github.com/julianstephens/habitual/internal/models"
)

func TestDetailSelectAndClear(t *testing.T) {
	d := NewDetail()
	if _, ok := d.Selected(); ok {
		t.Fatal("new detail store should have no selection")
	}

	h := models.Habit{ID: "a", Name: "Read", CompletedDates: []string{"2024-03-20"}}
	d.Select(h)
	h.CompletedDates[0] = "mutated"

	got, ok := d.Selected()
	if !ok || got.CompletedDates[0] != "2024-03-20" {
		t.Errorf("Selected() = %+v, %v; want an independent copy", got, ok)
	}

	d.Clear()
	if _, ok := d.Selected(); ok {
		t.Error("Clear() should drop the selection")
	}
}

func TestDetailSync(t *testing.T) {
	c := NewCollection(&fakeAPI{habits: seeded()})
	d := NewDetail()

	d.Sync(c, "b")
	if _, ok := d.Selected(); ok {
		t.Fatal("nothing to select before the collection loads")
	}

	run(t, c, c.FetchAll())
	d.Sync(c, "b")
	got, ok := d.Selected()
	if !ok || got.ID != "b" {
		t.Fatalf("Selected() = %+v, %v; want b", got, ok)
	}

	run(t, c, c.Toggle("b", "2024-03-22"))
	d.Sync(c, "b")
	got, _ = d.Selected()
	if !got.IsCompleted("2024-03-22") {
		t.Errorf("selection not refreshed from collection: %v", got.CompletedDates)
	}

	run(t, c, c.Remove("b"))
	d.Sync(c, "b")
	if _, ok := d.Selected(); ok {
		t.Error("selection should clear once the habit is gone")
	}
}

func TestDetailSyncUnknownID(t *testing.T) {
	c := NewCollection(&fakeAPI{habits: seeded()})
	run(t, c, c.FetchAll())

	d := NewDetail()
	d.Sync(c, "unknown-id")
	if _, ok := d.Selected(); ok {
		t.Error("unknown id should leave nothing selected")
	}
}
