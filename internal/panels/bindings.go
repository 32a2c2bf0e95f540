package panels

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/roomwaves/roomwaves/internal/model"
	"github.com/roomwaves/roomwaves/internal/resource"
)

// Binding names, used in logs and change notifications.
const (
	NameWaveform          = "waveform"
	NameFrequencyResponse = "frequency"
	NameSpectrogram       = "spectrogram"
	NameSurface3D         = "surface"
	NameParameters        = "parameters"
	NameSNR               = "snr"
	NameEnvelopeDb        = "envelope"
)

type (
	Waveform          = resource.Controller[model.Series, ChartData]
	FrequencyResponse = resource.Controller[model.FrequencyResponse, ChartData]
	EnvelopeDb        = resource.Controller[model.Series, ChartData]
	Spectrogram       = resource.Controller[model.TimeFrequencyMap, model.TimeFrequencyMap]
	Parameters        = resource.Controller[model.ParametersResult, model.ParametersResult]
)

// Options are shared by every binding of a session.
type Options struct {
	Logger *zap.Logger
	Theme  Theme

	// Initial band selections; zero picks the stock default.
	FrequencyBands int
	SurfaceBands   int
	ParameterBands int

	// Notify is called with the binding name after every state change.
	Notify func(name string)
}

type controllerOpts struct {
	logger *zap.Logger
	theme  Theme
	notify func(string)
}

func (o Options) controller() controllerOpts {
	return controllerOpts{
		logger: o.Logger,
		theme:  DefaultTheme().Merge(o.Theme),
		notify: o.Notify,
	}
}

func (o Options) withDefaults() Options {
	if o.FrequencyBands == 0 {
		o.FrequencyBands = model.DefaultFrequencyBands
	}
	if o.SurfaceBands == 0 {
		o.SurfaceBands = model.DefaultSurfaceBands
	}
	if o.ParameterBands == 0 {
		o.ParameterBands = model.DefaultParameterBands
	}
	return o
}

// Validate checks the initial band selections against their option sets.
func (o Options) Validate() error {
	o = o.withDefaults()
	if err := ValidateBands(BandOptions, o.FrequencyBands); err != nil {
		return fmt.Errorf("frequency bands: %w", err)
	}
	if err := ValidateBands(BandOptions, o.SurfaceBands); err != nil {
		return fmt.Errorf("surface bands: %w", err)
	}
	if err := ValidateBands(BandModeOptions, o.ParameterBands); err != nil {
		return fmt.Errorf("parameter bands: %w", err)
	}
	return nil
}

func notifier[T any](notify func(string), name string) func(resource.State[T]) {
	if notify == nil {
		return nil
	}
	return func(resource.State[T]) { notify(name) }
}

// NewWaveform binds GET /api/plot/{key}.
func NewWaveform(api model.ResourceFetcher, opts Options) *Waveform {
	o := opts.controller()
	return resource.New(resource.Options[model.Series, ChartData]{
		Name:         NameWaveform,
		ErrorMessage: "Could not load waveform data.",
		Fetch: func(ctx context.Context, key string, _ resource.Params) (model.Series, error) {
			return api.Waveform(ctx, key)
		},
		Transform: seriesChart("Waveform", o.theme.Waveform, 0.1),
		Logger:    o.logger,
		OnChange:  notifier[ChartData](o.notify, NameWaveform),
	})
}

// NewFrequencyResponse binds GET /api/frequency-response/{key}?bands=N.
func NewFrequencyResponse(api model.ResourceFetcher, opts Options) *FrequencyResponse {
	opts = opts.withDefaults()
	o := opts.controller()
	return resource.New(resource.Options[model.FrequencyResponse, ChartData]{
		Name:         NameFrequencyResponse,
		ErrorMessage: "Could not load frequency data.",
		Params:       resource.NewParameterSet(bandChoice(BandOptions, opts.FrequencyBands)),
		Fetch: func(ctx context.Context, key string, p resource.Params) (model.FrequencyResponse, error) {
			return api.FrequencyResponse(ctx, key, p.Get(ParamBands, model.DefaultFrequencyBands))
		},
		Transform: frequencyChart(o.theme.Frequency),
		Logger:    o.logger,
		OnChange:  notifier[ChartData](o.notify, NameFrequencyResponse),
	})
}

// NewEnvelopeDb binds GET /api/envelope-db/{key}.
func NewEnvelopeDb(api model.ResourceFetcher, opts Options) *EnvelopeDb {
	o := opts.controller()
	return resource.New(resource.Options[model.Series, ChartData]{
		Name:         NameEnvelopeDb,
		ErrorMessage: "Could not load envelope data.",
		Fetch: func(ctx context.Context, key string, _ resource.Params) (model.Series, error) {
			return api.EnvelopeDb(ctx, key)
		},
		Transform: seriesChart("Envelope (dB)", o.theme.Envelope, 0.3),
		Logger:    o.logger,
		OnChange:  notifier[ChartData](o.notify, NameEnvelopeDb),
	})
}

// NewSpectrogram binds GET /api/spectrogram/{key}.
func NewSpectrogram(api model.ResourceFetcher, opts Options) *Spectrogram {
	o := opts.controller()
	return resource.New(resource.Options[model.TimeFrequencyMap, model.TimeFrequencyMap]{
		Name:         NameSpectrogram,
		ErrorMessage: "Could not load spectrogram data.",
		Fetch: func(ctx context.Context, key string, _ resource.Params) (model.TimeFrequencyMap, error) {
			return api.Spectrogram(ctx, key)
		},
		Transform: resource.Identity[model.TimeFrequencyMap],
		Logger:    o.logger,
		OnChange:  notifier[model.TimeFrequencyMap](o.notify, NameSpectrogram),
	})
}

// NewParameters binds GET /api/parameters/{key}?bands=N.
func NewParameters(api model.ResourceFetcher, opts Options) *Parameters {
	opts = opts.withDefaults()
	o := opts.controller()
	return resource.New(resource.Options[model.ParametersResult, model.ParametersResult]{
		Name:         NameParameters,
		ErrorMessage: "Could not load acoustical parameters.",
		Params:       resource.NewParameterSet(bandChoice(BandModeOptions, opts.ParameterBands)),
		Fetch: func(ctx context.Context, key string, p resource.Params) (model.ParametersResult, error) {
			return api.Parameters(ctx, key, p.Get(ParamBands, model.DefaultParameterBands))
		},
		Transform: resource.Identity[model.ParametersResult],
		Logger:    o.logger,
		OnChange:  notifier[model.ParametersResult](o.notify, NameParameters),
	})
}

// Surface3D binds GET /api/csd/{key}?bands=N. The data reduction factor is
// a display setting: it is kept here for views but never sent.
type Surface3D struct {
	*resource.Controller[model.TimeFrequencyMap, model.TimeFrequencyMap]

	mu        sync.Mutex
	reduction int
}

// NewSurface3D creates the surface binding.
func NewSurface3D(api model.ResourceFetcher, opts Options) *Surface3D {
	opts = opts.withDefaults()
	o := opts.controller()
	return &Surface3D{
		reduction: model.DefaultDataReduction,
		Controller: resource.New(resource.Options[model.TimeFrequencyMap, model.TimeFrequencyMap]{
			Name:         NameSurface3D,
			ErrorMessage: "Could not load 3D surface data.",
			Params:       resource.NewParameterSet(bandChoice(BandOptions, opts.SurfaceBands)),
			Fetch: func(ctx context.Context, key string, p resource.Params) (model.TimeFrequencyMap, error) {
				return api.Surface(ctx, key, p.Get(ParamBands, model.DefaultSurfaceBands))
			},
			Transform: resource.Identity[model.TimeFrequencyMap],
			Logger:    o.logger,
			OnChange:  notifier[model.TimeFrequencyMap](o.notify, NameSurface3D),
		}),
	}
}

// DataReduction returns the current decimation factor.
func (s *Surface3D) DataReduction() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reduction
}

// SetDataReduction selects a factor from DataReductionOptions.
func (s *Surface3D) SetDataReduction(n int) error {
	for _, v := range DataReductionOptions {
		if v == n {
			s.mu.Lock()
			s.reduction = n
			s.mu.Unlock()
			return nil
		}
	}
	return fmt.Errorf("%w: data reduction %d", resource.ErrInvalidOption, n)
}

// CycleDataReduction advances to the next factor, wrapping around.
func (s *Surface3D) CycleDataReduction() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := DataReductionOptions[0]
	for i, v := range DataReductionOptions {
		if v == s.reduction {
			next = DataReductionOptions[(i+1)%len(DataReductionOptions)]
			break
		}
	}
	s.reduction = next
	return next
}

// Reduced returns the loaded surface decimated by the current factor.
func (s *Surface3D) Reduced() (model.TimeFrequencyMap, bool) {
	st := s.State()
	if !st.HasData {
		return model.TimeFrequencyMap{}, false
	}
	return Reduce(st.Data, s.DataReduction()), true
}
