package panels

import (
	"fmt"

	"github.com/roomwaves/roomwaves/internal/resource"
)

// ParamBands is the name of the band-count parameter.
const ParamBands = "bands"

// BandOptions are the smoothing resolutions accepted by the frequency
// response and surface endpoints (fractions of an octave).
var BandOptions = []resource.Option{
	{Value: 1, Label: "1/1 octave"},
	{Value: 3, Label: "1/3 octave"},
	{Value: 6, Label: "1/6 octave"},
	{Value: 12, Label: "1/12 octave"},
	{Value: 24, Label: "1/24 octave"},
	{Value: 48, Label: "1/48 octave"},
}

// BandModeOptions select the filter bank used for acoustic parameters.
var BandModeOptions = []resource.Option{
	{Value: 1, Label: "Octave Band"},
	{Value: 3, Label: "1/3 Octave Band"},
}

// DataReductionOptions are the surface decimation factors offered by views.
var DataReductionOptions = []int{1, 2, 4, 8}

func bandChoice(options []resource.Option, def int) resource.Choice {
	return resource.Choice{Name: ParamBands, Options: options, Default: def}
}

// ValidateBands reports whether bands is a legal value in options.
func ValidateBands(options []resource.Option, bands int) error {
	for _, o := range options {
		if o.Value == bands {
			return nil
		}
	}
	return fmt.Errorf("%w: bands=%d", resource.ErrInvalidOption, bands)
}
