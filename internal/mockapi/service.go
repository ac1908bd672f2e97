// Package mockapi serves the habits REST contract over a local storage provider.
package mockapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/julianstephens/habitual/internal/constants"
	"github.com/julianstephens/habitual/internal/logger"
	"github.com/julianstephens/habitual/internal/models"
	"github.com/julianstephens/habitual/internal/storage"
	"github.com/julianstephens/habitual/internal/utils"
	"github.com/julianstephens/habitual/internal/validation"
)

var (
	ErrNotFound     = errors.New("habit not found")
	ErrInvalidInput = errors.New("invalid input")
)

// SeedHabit is written to an empty store on first access.
func SeedHabit() models.Habit {
	return models.Habit{
		ID:             "1",
		Name:           "Read books",
		Description:    "Read for at least 30 minutes a day",
		Frequency:      models.FrequencyDaily,
		CompletedDates: []string{"2024-03-20", "2024-03-21"},
	}
}

// Service owns the read-modify-write cycle of the serialized collection.
// Every operation loads the whole array, changes it and writes it back.
type Service struct {
	mu    sync.Mutex
	store storage.Provider
	newID func() string
}

func NewService(store storage.Provider) *Service {
	return &Service{
		store: store,
		newID: uuid.NewString,
	}
}

// load reads the collection, seeding it when the key is absent. Caller holds mu.
func (s *Service) load() ([]models.Habit, error) {
	raw, ok, err := s.store.GetItem(constants.StorageKey)
	if err != nil {
		return nil, fmt.Errorf("failed to read habits: %w", err)
	}
	if !ok {
		habits := []models.Habit{SeedHabit()}
		if err := s.save(habits); err != nil {
			return nil, err
		}
		logger.Info("Seeded habit collection", "id", habits[0].ID)
		return habits, nil
	}

	var habits []models.Habit
	if err := json.Unmarshal(raw, &habits); err != nil {
		return nil, fmt.Errorf("failed to parse habits: %w", err)
	}
	for i := range habits {
		habits[i].Normalize()
	}
	if result := validation.ValidateHabits(habits); result.HasConflicts() {
		logger.Warn("Stored habits have conflicts", "count", len(result.Conflicts))
	}
	if habits == nil {
		habits = []models.Habit{}
	}
	return habits, nil
}

// save writes the collection back. Caller holds mu.
func (s *Service) save(habits []models.Habit) error {
	if habits == nil {
		habits = []models.Habit{}
	}
	data, err := json.Marshal(habits)
	if err != nil {
		return fmt.Errorf("failed to marshal habits: %w", err)
	}
	if err := s.store.SetItem(constants.StorageKey, data); err != nil {
		return fmt.Errorf("failed to write habits: %w", err)
	}
	return nil
}

// List returns the whole collection in stored order.
func (s *Service) List() ([]models.Habit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

// Get returns one habit by id.
func (s *Service) Get(id string) (models.Habit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	habits, err := s.load()
	if err != nil {
		return models.Habit{}, err
	}
	i := indexOf(habits, id)
	if i < 0 {
		return models.Habit{}, ErrNotFound
	}
	return habits[i], nil
}

// Create appends a new habit with a fresh id and no completions.
func (s *Service) Create(d models.Draft) (models.Habit, error) {
	if result := validation.ValidateDraft(d); result.HasConflicts() {
		return models.Habit{}, fmt.Errorf("%w: %v", ErrInvalidInput, result.Err())
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	habits, err := s.load()
	if err != nil {
		return models.Habit{}, err
	}

	h := models.Habit{
		ID:             s.newID(),
		Name:           d.Name,
		Description:    d.Description,
		Frequency:      d.Frequency,
		CompletedDates: []string{},
	}
	habits = append(habits, h)
	if err := s.save(habits); err != nil {
		return models.Habit{}, err
	}
	return h, nil
}

// Update shallow-merges the known fields present in fields onto the habit.
// Unknown fields and id are ignored.
func (s *Service) Update(id string, fields map[string]json.RawMessage) (models.Habit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	habits, err := s.load()
	if err != nil {
		return models.Habit{}, err
	}
	i := indexOf(habits, id)
	if i < 0 {
		return models.Habit{}, ErrNotFound
	}

	merged := habits[i].Clone()
	if err := merge(&merged, fields); err != nil {
		return models.Habit{}, err
	}
	merged.ID = id
	merged.Normalize()
	if result := validation.ValidateDraft(merged.Draft()); result.HasConflicts() {
		return models.Habit{}, fmt.Errorf("%w: %v", ErrInvalidInput, result.Err())
	}

	habits[i] = merged
	if err := s.save(habits); err != nil {
		return models.Habit{}, err
	}
	return merged, nil
}

func merge(h *models.Habit, fields map[string]json.RawMessage) error {
	decode := func(name string, dst any) error {
		raw, ok := fields[name]
		if !ok {
			return nil
		}
		if err := json.Unmarshal(raw, dst); err != nil {
			return fmt.Errorf("%w: field %s: %v", ErrInvalidInput, name, err)
		}
		return nil
	}

	if err := decode("name", &h.Name); err != nil {
		return err
	}
	if err := decode("description", &h.Description); err != nil {
		return err
	}
	if err := decode("frequency", &h.Frequency); err != nil {
		return err
	}
	if err := decode("completedDates", &h.CompletedDates); err != nil {
		return err
	}
	return nil
}

// Toggle flips one date in the habit's completion set.
func (s *Service) Toggle(id, date string) (models.Habit, error) {
	if !utils.ValidateDay(date) {
		return models.Habit{}, fmt.Errorf("%w: date %q is not YYYY-MM-DD", ErrInvalidInput, date)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	habits, err := s.load()
	if err != nil {
		return models.Habit{}, err
	}
	i := indexOf(habits, id)
	if i < 0 {
		return models.Habit{}, ErrNotFound
	}

	habits[i].Toggle(date)
	if err := s.save(habits); err != nil {
		return models.Habit{}, err
	}
	return habits[i], nil
}

// Delete removes the habit if present. A missing id is not an error.
func (s *Service) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	habits, err := s.load()
	if err != nil {
		return err
	}
	kept := slices.DeleteFunc(habits, func(h models.Habit) bool { return h.ID == id })
	return s.save(kept)
}

func indexOf(habits []models.Habit, id string) int {
	return slices.IndexFunc(habits, func(h models.Habit) bool { return h.ID == id })
}
