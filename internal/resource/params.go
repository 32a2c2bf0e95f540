package resource

import (
	"errors"
	"fmt"
	"sync"
)

// ErrInvalidOption is returned when a parameter value is outside its legal set.
var ErrInvalidOption = errors.New("resource: value not in option set")

// Option is one legal value of an enumerated parameter.
type Option struct {
	Value int
	Label string
}

// Choice is an enumerated parameter and its current selection.
type Choice struct {
	Name    string
	Options []Option
	Default int
}

// Params is a snapshot of selected parameter values keyed by name.
type Params map[string]int

// Get returns the value for name, or fallback when it is not set.
func (p Params) Get(name string, fallback int) int {
	if v, ok := p[name]; ok {
		return v
	}
	return fallback
}

// ParameterSet holds the current selection of a binding's enumerated
// parameters. Changing a selection never triggers a fetch.
type ParameterSet struct {
	mu       sync.RWMutex
	choices  []Choice
	selected map[string]int
}

// NewParameterSet builds a parameter set with every choice at its default.
// It panics when a default is not one of the choice's options, since that
// is a programming error in the binding table.
func NewParameterSet(choices ...Choice) *ParameterSet {
	ps := &ParameterSet{
		choices:  append([]Choice(nil), choices...),
		selected: make(map[string]int, len(choices)),
	}
	for _, c := range choices {
		if !c.has(c.Default) {
			panic(fmt.Sprintf("resource: default %d not in options of %q", c.Default, c.Name))
		}
		ps.selected[c.Name] = c.Default
	}
	return ps
}

func (c Choice) has(v int) bool {
	for _, o := range c.Options {
		if o.Value == v {
			return true
		}
	}
	return false
}

func (ps *ParameterSet) choice(name string) (Choice, bool) {
	for _, c := range ps.choices {
		if c.Name == name {
			return c, true
		}
	}
	return Choice{}, false
}

// Choices returns the parameter definitions in declaration order.
func (ps *ParameterSet) Choices() []Choice {
	if ps == nil {
		return nil
	}
	return append([]Choice(nil), ps.choices...)
}

// Value returns the current selection for name.
func (ps *ParameterSet) Value(name string) (int, bool) {
	if ps == nil {
		return 0, false
	}
	ps.mu.RLock()
	defer ps.mu.RUnlock()
	v, ok := ps.selected[name]
	return v, ok
}

// Set selects value for name. It fails with ErrInvalidOption when the value
// is not legal and leaves the previous selection in place.
func (ps *ParameterSet) Set(name string, value int) error {
	if ps == nil {
		return fmt.Errorf("%w: %s=%d", ErrInvalidOption, name, value)
	}
	if err := ps.validate(name, value); err != nil {
		return err
	}
	ps.mu.Lock()
	ps.selected[name] = value
	ps.mu.Unlock()
	return nil
}

// Cycle advances name to the next option (wrapping) when step is positive,
// or to the previous one when negative, and returns the new value.
func (ps *ParameterSet) Cycle(name string, step int) (int, error) {
	if ps == nil {
		return 0, fmt.Errorf("%w: unknown parameter %q", ErrInvalidOption, name)
	}
	c, ok := ps.choice(name)
	if !ok || len(c.Options) == 0 {
		return 0, fmt.Errorf("%w: unknown parameter %q", ErrInvalidOption, name)
	}

	ps.mu.Lock()
	defer ps.mu.Unlock()
	idx := 0
	for i, o := range c.Options {
		if o.Value == ps.selected[name] {
			idx = i
			break
		}
	}
	n := len(c.Options)
	idx = ((idx+step)%n + n) % n
	ps.selected[name] = c.Options[idx].Value
	return c.Options[idx].Value, nil
}

// Label returns the display label of the current selection for name.
func (ps *ParameterSet) Label(name string) string {
	if ps == nil {
		return ""
	}
	c, ok := ps.choice(name)
	if !ok {
		return ""
	}
	v, _ := ps.Value(name)
	for _, o := range c.Options {
		if o.Value == v {
			return o.Label
		}
	}
	return ""
}

// Snapshot copies the current selections.
func (ps *ParameterSet) Snapshot() Params {
	out := Params{}
	if ps == nil {
		return out
	}
	ps.mu.RLock()
	defer ps.mu.RUnlock()
	for k, v := range ps.selected {
		out[k] = v
	}
	return out
}

// Resolve overlays overrides on the current selections. Every override must
// name a known parameter and carry a legal value.
func (ps *ParameterSet) Resolve(overrides Params) (Params, error) {
	params := ps.Snapshot()
	for name, v := range overrides {
		if ps == nil {
			return nil, fmt.Errorf("%w: unknown parameter %q", ErrInvalidOption, name)
		}
		if err := ps.validate(name, v); err != nil {
			return nil, err
		}
		params[name] = v
	}
	return params, nil
}

func (ps *ParameterSet) validate(name string, value int) error {
	c, ok := ps.choice(name)
	if !ok {
		return fmt.Errorf("%w: unknown parameter %q", ErrInvalidOption, name)
	}
	if !c.has(value) {
		return fmt.Errorf("%w: %s=%d", ErrInvalidOption, name, value)
	}
	return nil
}
