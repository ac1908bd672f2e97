package models

import (
	"fmt"
	"slices"
)

// Frequency is how often a habit is meant to be practised.
type Frequency string

const (
	FrequencyDaily   Frequency = "daily"
	FrequencyWeekly  Frequency = "weekly"
	FrequencyMonthly Frequency = "monthly"
)

// Frequencies returns the closed set of frequencies in display order.
func Frequencies() []Frequency {
	return []Frequency{FrequencyDaily, FrequencyWeekly, FrequencyMonthly}
}

func (f Frequency) Valid() bool {
	switch f {
	case FrequencyDaily, FrequencyWeekly, FrequencyMonthly:
		return true
	}
	return false
}

// Label returns the human-readable form of the frequency.
func (f Frequency) Label() string {
	switch f {
	case FrequencyDaily:
		return "Daily"
	case FrequencyWeekly:
		return "Weekly"
	case FrequencyMonthly:
		return "Monthly"
	default:
		return "Unknown"
	}
}

func ParseFrequency(s string) (Frequency, error) {
	f := Frequency(s)
	if !f.Valid() {
		return "", fmt.Errorf("invalid frequency %q (expected daily, weekly or monthly)", s)
	}
	return f, nil
}

// Habit represents a named recurring activity and the days it was done.
type Habit struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Description    string    `json:"description,omitempty"`
	Frequency      Frequency `json:"frequency"`
	CompletedDates []string  `json:"completedDates"` // YYYY-MM-DD, treated as a set
}

// Draft is a habit that has not been assigned an id yet.
type Draft struct {
	Name           string    `json:"name"`
	Description    string    `json:"description,omitempty"`
	Frequency      Frequency `json:"frequency"`
	CompletedDates []string  `json:"completedDates"`
}

// ToggleRequest is the body of a completion toggle.
type ToggleRequest struct {
	Date string `json:"date"`
}

// IsCompleted reports whether day is in the completion set.
func (h Habit) IsCompleted(day string) bool {
	return slices.Contains(h.CompletedDates, day)
}

// Toggle flips membership of day in the completion set and reports whether the
// day is completed afterwards.
func (h *Habit) Toggle(day string) bool {
	if i := slices.Index(h.CompletedDates, day); i >= 0 {
		h.CompletedDates = slices.Delete(slices.Clone(h.CompletedDates), i, i+1)
		return false
	}
	h.CompletedDates = append(slices.Clone(h.CompletedDates), day)
	return true
}

// Normalize makes sure CompletedDates encodes as an array and carries no duplicates.
func (h *Habit) Normalize() {
	if h.CompletedDates == nil {
		h.CompletedDates = []string{}
		return
	}
	seen := make(map[string]bool, len(h.CompletedDates))
	out := h.CompletedDates[:0:0]
	for _, d := range h.CompletedDates {
		if seen[d] {
			continue
		}
		seen[d] = true
		out = append(out, d)
	}
	h.CompletedDates = out
}

// Draft returns the editable part of the habit.
func (h Habit) Draft() Draft {
	return Draft{
		Name:           h.Name,
		Description:    h.Description,
		Frequency:      h.Frequency,
		CompletedDates: h.CompletedDates,
	}
}

// Clone returns a deep copy so callers can mutate it without touching shared state.
func (h Habit) Clone() Habit {
	h.CompletedDates = slices.Clone(h.CompletedDates)
	return h
}
