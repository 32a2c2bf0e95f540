package resource

import (
	"errors"
	"testing"
)

func bandsChoice(def int) Choice {
	return Choice{
		Name: "bands",
		Options: []Option{
			{Value: 1, Label: "Octave Band"},
			{Value: 3, Label: "1/3 Octave Band"},
		},
		Default: def,
	}
}

func TestParameterSetDefaults(t *testing.T) {
	ps := NewParameterSet(bandsChoice(1))

	if v, ok := ps.Value("bands"); !ok || v != 1 {
		t.Fatalf("bands = %d (ok=%v), want 1", v, ok)
	}
	if got := ps.Label("bands"); got != "Octave Band" {
		t.Fatalf("label = %q, want Octave Band", got)
	}
}

func TestParameterSetRejectsIllegalValue(t *testing.T) {
	ps := NewParameterSet(bandsChoice(1))

	err := ps.Set("bands", 6)
	if !errors.Is(err, ErrInvalidOption) {
		t.Fatalf("Set(6) err = %v, want ErrInvalidOption", err)
	}
	if v, _ := ps.Value("bands"); v != 1 {
		t.Fatalf("bands after rejected set = %d, want 1", v)
	}

	if err := ps.Set("window", 1); !errors.Is(err, ErrInvalidOption) {
		t.Fatalf("Set(unknown) err = %v, want ErrInvalidOption", err)
	}
}

func TestParameterSetCycleWraps(t *testing.T) {
	ps := NewParameterSet(bandsChoice(3))

	tests := []struct {
		step int
		want int
	}{
		{step: 1, want: 1},
		{step: 1, want: 3},
		{step: -1, want: 1},
		{step: -1, want: 3},
	}
	for _, tt := range tests {
		got, err := ps.Cycle("bands", tt.step)
		if err != nil {
			t.Fatalf("Cycle(%d): %v", tt.step, err)
		}
		if got != tt.want {
			t.Fatalf("Cycle(%d) = %d, want %d", tt.step, got, tt.want)
		}
	}
}

func TestResolveOverlaysOverrides(t *testing.T) {
	ps := NewParameterSet(bandsChoice(1))

	got, err := ps.Resolve(Params{"bands": 3})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got["bands"] != 3 {
		t.Fatalf("resolved bands = %d, want 3", got["bands"])
	}
	if v, _ := ps.Value("bands"); v != 1 {
		t.Fatal("Resolve must not change the selection")
	}
}

func TestNilParameterSet(t *testing.T) {
	var ps *ParameterSet

	got, err := ps.Resolve(nil)
	if err != nil || len(got) != 0 {
		t.Fatalf("Resolve(nil) = %v, %v; want empty", got, err)
	}
	if _, err := ps.Resolve(Params{"bands": 1}); !errors.Is(err, ErrInvalidOption) {
		t.Fatalf("override on nil set err = %v, want ErrInvalidOption", err)
	}
	if ps.Label("bands") != "" {
		t.Fatal("nil set label should be empty")
	}
}

func TestNewParameterSetPanicsOnIllegalDefault(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for default outside options")
		}
	}()
	NewParameterSet(bandsChoice(24))
}
