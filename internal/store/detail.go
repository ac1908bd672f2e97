package store

import "github.com/julianstephens/habitual/internal/models"

// Detail holds the habit shown on the detail page. It has no request state of
// its own: the selection is always derived from the Collection.
type Detail struct {
	selected *models.Habit
}

func NewDetail() *Detail {
	return &Detail{}
}

// Selected returns the current selection.
func (d *Detail) Selected() (models.Habit, bool) {
	if d.selected == nil {
		return models.Habit{}, false
	}
	return *d.selected, true
}

func (d *Detail) Select(h models.Habit) {
	h = h.Clone()
	d.selected = &h
}

func (d *Detail) Clear() {
	d.selected = nil
}

// Sync re-derives the selection for id from the collection. Once the
// collection has loaded, a habit that is no longer there clears the selection.
func (d *Detail) Sync(c *Collection, id string) {
	if h, ok := c.Find(id); ok {
		d.Select(h)
		return
	}
	if c.Loaded() {
		d.Clear()
	}
}
