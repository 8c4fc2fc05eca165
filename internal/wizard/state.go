package wizard

import (
	"errors"

	"github.com/google/uuid"

	"project-config-api/internal/domain"
)

// ErrUnknownCategory is returned when jumping to a category that is not part of the wizard
var ErrUnknownCategory = errors.New("category is not part of the wizard")

// StateMachine walks the flattened category list of a catalog.
// Navigation never fails at the ends: Next on the last step and Previous on the
// first step leave the position unchanged.
type StateMachine struct {
	categories []domain.Category
	index      int
}

// NewStateMachine creates a state machine over categories in wizard order
func NewStateMachine(categories []domain.Category) *StateMachine {
	return &StateMachine{categories: categories}
}

// Resume restores a persisted position. Unknown or empty positions start at the first step.
func (m *StateMachine) Resume(pos domain.WizardPosition) {
	m.index = 0
	if pos.CategoryID == nil {
		return
	}
	if i, ok := m.indexOf(*pos.CategoryID); ok {
		m.index = i
	}
}

// Next advances one step; it reports whether the position changed
func (m *StateMachine) Next() bool {
	if m.index+1 >= len(m.categories) {
		return false
	}
	m.index++
	return true
}

// Previous goes back one step; it reports whether the position changed
func (m *StateMachine) Previous() bool {
	if m.index == 0 {
		return false
	}
	m.index--
	return true
}

// JumpTo moves directly to a category
func (m *StateMachine) JumpTo(categoryID uuid.UUID) error {
	i, ok := m.indexOf(categoryID)
	if !ok {
		return ErrUnknownCategory
	}
	m.index = i
	return nil
}

// Current returns the category at the current position
func (m *StateMachine) Current() (*domain.Category, bool) {
	if len(m.categories) == 0 {
		return nil, false
	}
	return &m.categories[m.index], true
}

// Index returns the zero-based step number
func (m *StateMachine) Index() int {
	return m.index
}

// Len returns the number of steps
func (m *StateMachine) Len() int {
	return len(m.categories)
}

// IsFirst reports whether the wizard is on its first step
func (m *StateMachine) IsFirst() bool {
	return m.index == 0
}

// IsLast reports whether the wizard is on its last step
func (m *StateMachine) IsLast() bool {
	return len(m.categories) == 0 || m.index == len(m.categories)-1
}

// Position returns the typed position to persist
func (m *StateMachine) Position() domain.WizardPosition {
	cur, ok := m.Current()
	if !ok {
		return domain.WizardPosition{}
	}
	id := cur.ID
	return domain.WizardPosition{CategoryID: &id}
}

func (m *StateMachine) indexOf(id uuid.UUID) (int, bool) {
	for i := range m.categories {
		if m.categories[i].ID == id {
			return i, true
		}
	}
	return 0, false
}
