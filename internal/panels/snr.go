package panels

import (
	"context"

	"github.com/roomwaves/roomwaves/internal/model"
	"github.com/roomwaves/roomwaves/internal/resource"
)

// QualityLevel orders SNR classes from worst to best.
type QualityLevel int

const (
	Poor QualityLevel = iota
	Questionable
	Good
	Excellent
)

// Quality describes how trustworthy results are at a given SNR.
type Quality struct {
	Level       QualityLevel `json:"-"`
	Label       string       `json:"label"`
	Class       string       `json:"class"`
	Icon        string       `json:"icon"`
	Description string       `json:"description"`
}

var qualities = map[QualityLevel]Quality{
	Excellent: {
		Level:       Excellent,
		Label:       "Excellent",
		Class:       "excellent",
		Icon:        "✅",
		Description: "Very clean signal. Parameters are highly reliable.",
	},
	Good: {
		Level:       Good,
		Label:       "Good",
		Class:       "good",
		Icon:        "👍",
		Description: "Good signal quality. Sufficient for most analyses.",
	},
	Questionable: {
		Level:       Questionable,
		Label:       "Questionable",
		Class:       "questionable",
		Icon:        "⚠️",
		Description: "Caution: Results may show variability due to noise.",
	},
	Poor: {
		Level:       Poor,
		Label:       "Poor",
		Class:       "poor",
		Icon:        "❌",
		Description: "Warning: High noise level. Results may not be reliable.",
	},
}

// Classify maps an SNR in dB to its quality. nil yields nil. NaN fails every
// comparison and lands in Poor.
func Classify(snr *float64) *Quality {
	if snr == nil {
		return nil
	}
	v := *snr
	var level QualityLevel
	switch {
	case v > 50:
		level = Excellent
	case v > 35:
		level = Good
	case v > 20:
		level = Questionable
	default:
		level = Poor
	}
	q := qualities[level]
	return &q
}

// SNR fetches the signal-to-noise ratio of a measurement. It has no toggle:
// views fetch it once per key and clear it when the key changes.
type SNR struct {
	ctrl *resource.Controller[model.SNRResult, *float64]
}

// NewSNR binds GET /api/snr/{key}.
func NewSNR(api model.ResourceFetcher, opts Options) *SNR {
	o := opts.controller()
	return &SNR{ctrl: resource.New(resource.Options[model.SNRResult, *float64]{
		Name:         NameSNR,
		ErrorMessage: "Could not calculate SNR.",
		Fetch: func(ctx context.Context, key string, _ resource.Params) (model.SNRResult, error) {
			return api.SNR(ctx, key)
		},
		Transform: func(r model.SNRResult) *float64 { return r.SNRDB },
		Logger:    o.logger,
		OnChange:  notifier[*float64](o.notify, NameSNR),
	})}
}

// FetchSNR loads the SNR for key. An empty key is a no-op.
func (s *SNR) FetchSNR(ctx context.Context, key string) resource.State[*float64] {
	return s.ctrl.Fetch(ctx, key, nil)
}

// Clear drops the value and any error.
func (s *SNR) Clear() { s.ctrl.Clear() }

// State returns a snapshot of the fetch state.
func (s *SNR) State() resource.State[*float64] { return s.ctrl.State() }

// SNR returns the current value in dB, or nil when not loaded or the
// backend could not compute one.
func (s *SNR) SNR() *float64 {
	st := s.ctrl.State()
	if !st.HasData || st.Data == nil {
		return nil
	}
	v := *st.Data
	return &v
}

// Quality classifies the current value.
func (s *SNR) Quality() *Quality {
	return Classify(s.SNR())
}

// Description returns the quality description, or "" when there is no value.
func (s *SNR) Description() string {
	if q := s.Quality(); q != nil {
		return q.Description
	}
	return ""
}

// Close cancels any in-flight request.
func (s *SNR) Close() { s.ctrl.Close() }
