package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/julianstephens/habitual/internal/constants"
	"github.com/julianstephens/habitual/internal/models"
	"github.com/julianstephens/habitual/internal/utils"
)

// ConflictType represents the type of validation conflict
type ConflictType string

const (
	ConflictMissingName      ConflictType = "missing_name"
	ConflictInvalidFrequency ConflictType = "invalid_frequency"
	ConflictInvalidDate      ConflictType = "invalid_date"
	ConflictDuplicateDate    ConflictType = "duplicate_date"
	ConflictMissingID        ConflictType = "missing_id"
	ConflictDuplicateID      ConflictType = "duplicate_id"
)

// Conflict is a single problem found in a draft or a stored collection.
type Conflict struct {
	Type        ConflictType
	Field       string // form field the conflict belongs to, if any
	Description string
	HabitID     string
}

// ValidationResult contains all detected conflicts
type ValidationResult struct {
	Conflicts []Conflict
}

// HasConflicts returns true if there are any conflicts
func (vr *ValidationResult) HasConflicts() bool {
	return len(vr.Conflicts) > 0
}

// FormatReport returns a human-readable report of all conflicts
func (vr *ValidationResult) FormatReport() string {
	if !vr.HasConflicts() {
		return "No conflicts detected."
	}

	var b strings.Builder
	b.WriteString("Conflicts detected:\n")
	for _, c := range vr.Conflicts {
		fmt.Fprintf(&b, "- %s\n", c.Description)
	}
	return b.String()
}

// Err folds the conflicts into one error, or nil when there are none.
func (vr *ValidationResult) Err() error {
	if !vr.HasConflicts() {
		return nil
	}
	errs := make([]error, 0, len(vr.Conflicts))
	for _, c := range vr.Conflicts {
		errs = append(errs, errors.New(c.Description))
	}
	return errors.Join(errs...)
}

func (vr *ValidationResult) add(c Conflict) {
	vr.Conflicts = append(vr.Conflicts, c)
}

// ValidateName is the form validator for the habit name.
func ValidateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return errors.New(constants.MsgNameRequired)
	}
	return nil
}

// ValidateFrequency is the form validator for the frequency selector.
func ValidateFrequency(f models.Frequency) error {
	if !f.Valid() {
		return errors.New(constants.MsgFrequencyRequired)
	}
	return nil
}

// ValidateDraft checks the fields a user can enter before a habit is created or saved.
func ValidateDraft(d models.Draft) ValidationResult {
	var result ValidationResult
	if err := ValidateName(d.Name); err != nil {
		result.add(Conflict{Type: ConflictMissingName, Field: "name", Description: err.Error()})
	}
	if err := ValidateFrequency(d.Frequency); err != nil {
		result.add(Conflict{Type: ConflictInvalidFrequency, Field: "frequency", Description: err.Error()})
	}
	return result
}

// ValidateHabits checks a stored collection for records the pages could not render faithfully.
func ValidateHabits(habits []models.Habit) ValidationResult {
	var result ValidationResult
	seenIDs := make(map[string]bool, len(habits))

	for _, h := range habits {
		if h.ID == "" {
			result.add(Conflict{
				Type:        ConflictMissingID,
				Description: fmt.Sprintf("Habit %q has no id", h.Name),
			})
		} else if seenIDs[h.ID] {
			result.add(Conflict{
				Type:        ConflictDuplicateID,
				HabitID:     h.ID,
				Description: fmt.Sprintf("Duplicate habit id %q", h.ID),
			})
		}
		seenIDs[h.ID] = true

		if !h.Frequency.Valid() {
			result.add(Conflict{
				Type:        ConflictInvalidFrequency,
				HabitID:     h.ID,
				Description: fmt.Sprintf("Habit %q has invalid frequency %q", h.Name, h.Frequency),
			})
		}

		seenDays := make(map[string]bool, len(h.CompletedDates))
		for _, day := range h.CompletedDates {
			if !utils.ValidateDay(day) {
				result.add(Conflict{
					Type:        ConflictInvalidDate,
					HabitID:     h.ID,
					Description: fmt.Sprintf("Habit %q has invalid completion date %q", h.Name, day),
				})
			}
			if seenDays[day] {
				result.add(Conflict{
					Type:        ConflictDuplicateDate,
					HabitID:     h.ID,
					Description: fmt.Sprintf("Habit %q lists %s more than once", h.Name, day),
				})
			}
			seenDays[day] = true
		}
	}
	return result
}
