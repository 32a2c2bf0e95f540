package resource

// State is a snapshot of one resource's fetch state.
type State[T any] struct {
	Data    T
	HasData bool
	Loading bool
	Err     string
}

// Visible reports whether the resource currently holds data to display.
// An in-flight fetch does not change visibility until it resolves.
func (s State[T]) Visible() bool {
	return s.HasData
}

// Identity is the pass-through transform for bindings that display the raw
// payload.
func Identity[T any](v T) T {
	return v
}
