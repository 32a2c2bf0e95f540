package replay

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/roomwaves/roomwaves/internal/model"
)

// RecordOptions select which band variants to capture. Empty slices record
// the stock default only.
type RecordOptions struct {
	FrequencyBands []int
	SurfaceBands   []int
	ParameterBands []int
	Logger         *zap.Logger
}

// Record fetches every resource for key from api and stores the responses.
// Requests run concurrently; the first failure cancels the rest.
func Record(ctx context.Context, api model.ResourceFetcher, store *Store, key string, opts RecordOptions) (int, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	freq := orDefault(opts.FrequencyBands, model.DefaultFrequencyBands)
	surf := orDefault(opts.SurfaceBands, model.DefaultSurfaceBands)
	params := orDefault(opts.ParameterBands, model.DefaultParameterBands)

	type job struct {
		route string
		bands int
		fetch func(ctx context.Context) (any, error)
	}
	jobs := []job{
		{RoutePlot, 0, func(ctx context.Context) (any, error) { return api.Waveform(ctx, key) }},
		{RouteEnvelopeDb, 0, func(ctx context.Context) (any, error) { return api.EnvelopeDb(ctx, key) }},
		{RouteSpectrogram, 0, func(ctx context.Context) (any, error) { return api.Spectrogram(ctx, key) }},
		{RouteSNR, 0, func(ctx context.Context) (any, error) { return api.SNR(ctx, key) }},
	}
	for _, b := range freq {
		jobs = append(jobs, job{RouteFrequencyResponse, b, func(ctx context.Context) (any, error) { return api.FrequencyResponse(ctx, key, b) }})
	}
	for _, b := range surf {
		jobs = append(jobs, job{RouteCSD, b, func(ctx context.Context) (any, error) { return api.Surface(ctx, key, b) }})
	}
	for _, b := range params {
		jobs = append(jobs, job{RouteParameters, b, func(ctx context.Context) (any, error) { return api.Parameters(ctx, key, b) }})
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for _, j := range jobs {
		g.Go(func() error {
			v, err := j.fetch(gctx)
			if err != nil {
				return fmt.Errorf("replay: record %s bands=%d: %w", j.route, j.bands, err)
			}
			body, err := json.Marshal(v)
			if err != nil {
				return fmt.Errorf("replay: encode %s: %w", j.route, err)
			}
			if err := store.Save(j.route, key, j.bands, body); err != nil {
				return err
			}
			logger.Debug("recorded fixture", zap.String("route", j.route), zap.String("key", key), zap.Int("bands", j.bands))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}
	return len(jobs), nil
}

func orDefault(v []int, def int) []int {
	if len(v) == 0 {
		return []int{def}
	}
	return v
}
