package panels

import (
	"fmt"
	"math"
	"sort"
	"strconv"

	"github.com/roomwaves/roomwaves/internal/model"
)

// ParameterRow is one band of a parameters result.
type ParameterRow struct {
	Band string  // as sent by the backend
	Hz   float64 // NaN when Band is not numeric
	model.AcousticParameterSet
}

// ParameterRows flattens a parameters result ordered by band frequency.
// Bands that are not numbers sort last by name.
func ParameterRows(r model.ParametersResult) []ParameterRow {
	rows := make([]ParameterRow, 0, len(r.Parameters))
	for band, set := range r.Parameters {
		hz, err := strconv.ParseFloat(band, 64)
		if err != nil {
			hz = math.NaN()
		}
		rows = append(rows, ParameterRow{Band: band, Hz: hz, AcousticParameterSet: set})
	}
	sort.Slice(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		switch {
		case math.IsNaN(a.Hz) && math.IsNaN(b.Hz):
			return a.Band < b.Band
		case math.IsNaN(a.Hz):
			return false
		case math.IsNaN(b.Hz):
			return true
		}
		return a.Hz < b.Hz
	})
	return rows
}

// BandLabel formats a band center frequency compactly (125, 1k, 2.5k).
func (r ParameterRow) BandLabel() string {
	if math.IsNaN(r.Hz) {
		return r.Band
	}
	if r.Hz >= 1000 {
		return strconv.FormatFloat(r.Hz/1000, 'f', -1, 64) + "k"
	}
	return strconv.FormatFloat(r.Hz, 'f', -1, 64)
}

// Summary is a one-line description of the row's main parameters.
func (r ParameterRow) Summary() string {
	return fmt.Sprintf("%s Hz  EDT %.2fs  T20 %.2fs  T30 %.2fs  C80 %.1fdB  D50 %.2f",
		r.BandLabel(), r.EDT, r.T60FromT20, r.T60FromT30, r.C80, r.D50)
}
