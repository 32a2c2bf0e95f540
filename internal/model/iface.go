package model

import (
	"context"
	"io"
)

// ResourceFetcher provides the read endpoints backing the visualization panels.
type ResourceFetcher interface {
	Waveform(ctx context.Context, key string) (Series, error)
	FrequencyResponse(ctx context.Context, key string, bands int) (FrequencyResponse, error)
	EnvelopeDb(ctx context.Context, key string) (Series, error)
	Spectrogram(ctx context.Context, key string) (TimeFrequencyMap, error)
	Surface(ctx context.Context, key string, bands int) (TimeFrequencyMap, error)
	Parameters(ctx context.Context, key string, bands int) (ParametersResult, error)
	SNR(ctx context.Context, key string) (SNRResult, error)
}

// FileService provides upload and file access operations.
type FileService interface {
	Upload(ctx context.Context, filename string, r io.Reader) (UploadResult, error)
	FileURL(ctx context.Context, key string) (FileURL, error)
}

// SignalService provides sweep synthesis and deconvolution.
type SignalService interface {
	Signal(ctx context.Context, req SignalRequest) (SweepSignals, error)
	CalculateIR(ctx context.Context, req ImpulseResponseRequest) (ImpulseResponseResult, error)
}

// AnalysisAPI is the full backend contract.
type AnalysisAPI interface {
	ResourceFetcher
	FileService
	SignalService
}
