package model

// Series is a plain time-domain trace as returned by the waveform and
// envelope endpoints.
type Series struct {
	Labels []float64 `json:"labels"`
	Data   []float64 `json:"data"`
}

// FrequencyResponse is the smoothed magnitude response of a measurement.
type FrequencyResponse struct {
	Frequencies []float64 `json:"frequencies"`
	Magnitudes  []float64 `json:"magnitudes"`
}

// TimeFrequencyMap is the matrix shared by the spectrogram and cumulative
// spectral decay endpoints. Sxx is indexed [frequency][time].
type TimeFrequencyMap struct {
	Sxx   [][]float64 `json:"Sxx"`
	F     []float64   `json:"f"`
	T     []float64   `json:"t"`
	MinDB float64     `json:"min_db"`
	MaxDB float64     `json:"max_db"`
}

// AcousticParameterSet holds the room acoustic parameters of one band.
type AcousticParameterSet struct {
	EDT        float64 `json:"EDT"`
	T60FromT20 float64 `json:"T60_from_T20"`
	T60FromT30 float64 `json:"T60_from_T30"`
	C80        float64 `json:"C80"`
	D50        float64 `json:"D50"`
}

// ParametersResult maps band center frequency (as sent by the backend, e.g.
// "1000") to its parameter set.
type ParametersResult struct {
	Parameters map[string]AcousticParameterSet `json:"parameters"`
}

// SNRResult carries the signal-to-noise ratio in dB. The backend sends null
// when the value cannot be computed.
type SNRResult struct {
	SNRDB *float64 `json:"snr_db"`
}

// UploadResult identifies an uploaded file for subsequent calls.
type UploadResult struct {
	Status   string `json:"status"`
	Filename string `json:"filename"`
	Path     string `json:"path"`
}

// SignalRequest describes a logarithmic sweep to synthesize.
type SignalRequest struct {
	Duration float64 // seconds
	FInf     int     // Hz
	FSup     int     // Hz
	FS       int     // sample rate
}

// SweepSignals holds base64 encoded WAV files for a sweep and its inverse filter.
type SweepSignals struct {
	AudioSweepB64   string `json:"audio_sweep_b64"`
	AudioInverseB64 string `json:"audio_inverse_b64"`
	FilenameSweep   string `json:"filename_sweep"`
	FilenameInverse string `json:"filename_inverse"`
}

// ImpulseResponseRequest carries the inputs of a sweep deconvolution.
type ImpulseResponseRequest struct {
	SweepName      string
	Sweep          []byte
	InverseName    string
	Inverse        []byte
	DurationFactor float64
}

// ImpulseResponseResult describes the impulse response stored by the backend.
type ImpulseResponseResult struct {
	Status          string `json:"status"`
	Filename        string `json:"filename"`
	Path            string `json:"path"`
	SampleRate      int    `json:"sample_rate"`
	DurationSamples int    `json:"duration_samples"`
}

// FileURL is a presigned reference to a stored file.
type FileURL struct {
	URL string `json:"url"`
}
