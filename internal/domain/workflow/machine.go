package workflow

import "fmt"

// Machine tracks the current lifecycle state and validates transitions.
// It is not safe for concurrent use; the owning session serializes access.
type Machine struct {
	current     State
	transitions map[State]map[Trigger]State
}

// Builder accumulates the transition table for a Machine.
type Builder struct {
	transitions map[State]map[Trigger]State
}

// NewBuilder creates a new machine builder
func NewBuilder() *Builder {
	return &Builder{transitions: make(map[State]map[Trigger]State)}
}

// Permit allows trigger to move the machine from state to toState.
func (b *Builder) Permit(from State, trigger Trigger, to State) *Builder {
	if !from.IsValid() {
		panic(fmt.Sprintf("invalid state: %s", from))
	}
	if !to.IsValid() {
		panic(fmt.Sprintf("invalid target state: %s", to))
	}
	row, ok := b.transitions[from]
	if !ok {
		row = make(map[Trigger]State)
		b.transitions[from] = row
	}
	row[trigger] = to
	return b
}

// Build creates a machine starting in initialState. The transition table is
// copied so machines built from the same builder stay independent.
func (b *Builder) Build(initialState State) *Machine {
	if !initialState.IsValid() {
		panic(fmt.Sprintf("invalid initial state: %s", initialState))
	}

	copied := make(map[State]map[Trigger]State, len(b.transitions))
	for from, row := range b.transitions {
		rowCopy := make(map[Trigger]State, len(row))
		for trigger, to := range row {
			rowCopy[trigger] = to
		}
		copied[from] = rowCopy
	}

	return &Machine{current: initialState, transitions: copied}
}

// State returns the current state
func (m *Machine) State() State {
	return m.current
}

// CanFire returns true if the trigger is permitted in the current state
func (m *Machine) CanFire(trigger Trigger) bool {
	_, ok := m.transitions[m.current][trigger]
	return ok
}

// Fire executes the trigger, transitioning to the new state if allowed
func (m *Machine) Fire(trigger Trigger) error {
	to, ok := m.transitions[m.current][trigger]
	if !ok {
		return fmt.Errorf("%w: cannot fire trigger %s from state %s", ErrInvalidTransition, trigger, m.current)
	}
	m.current = to
	return nil
}

// PermittedTriggers returns all triggers that can be fired in the current state
func (m *Machine) PermittedTriggers() []Trigger {
	row := m.transitions[m.current]
	triggers := make([]Trigger, 0, len(row))
	for trigger := range row {
		triggers = append(triggers, trigger)
	}
	return triggers
}
