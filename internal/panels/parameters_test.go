package panels

import (
	"testing"

	"github.com/roomwaves/roomwaves/internal/model"
)

func TestParameterRowsOrder(t *testing.T) {
	r := model.ParametersResult{Parameters: map[string]model.AcousticParameterSet{
		"1000":      {EDT: 1},
		"125":       {EDT: 2},
		"broadband": {EDT: 3},
		"4000":      {EDT: 4},
		"62.5":      {EDT: 5},
	}}

	rows := ParameterRows(r)
	var got []string
	for _, row := range rows {
		got = append(got, row.BandLabel())
	}
	want := []string{"62.5", "125", "1k", "4k", "broadband"}
	if len(got) != len(want) {
		t.Fatalf("rows = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("rows = %v, want %v", got, want)
		}
	}
	if rows[2].EDT != 1 {
		t.Fatalf("1k EDT = %v", rows[2].EDT)
	}
}

func TestParameterRowsEmpty(t *testing.T) {
	if rows := ParameterRows(model.ParametersResult{}); len(rows) != 0 {
		t.Fatalf("expected no rows, got %d", len(rows))
	}
}
