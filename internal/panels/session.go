package panels

import "github.com/roomwaves/roomwaves/internal/model"

// Session holds the bindings of one view. Bindings share the API client and
// logger but no state.
type Session struct {
	Waveform          *Waveform
	FrequencyResponse *FrequencyResponse
	Spectrogram       *Spectrogram
	Surface3D         *Surface3D
	Parameters        *Parameters
	SNR               *SNR
	EnvelopeDb        *EnvelopeDb

	theme Theme
}

// NewSession validates opts and constructs all seven bindings.
func NewSession(api model.ResourceFetcher, opts Options) (*Session, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return &Session{
		Waveform:          NewWaveform(api, opts),
		FrequencyResponse: NewFrequencyResponse(api, opts),
		Spectrogram:       NewSpectrogram(api, opts),
		Surface3D:         NewSurface3D(api, opts),
		Parameters:        NewParameters(api, opts),
		SNR:               NewSNR(api, opts),
		EnvelopeDb:        NewEnvelopeDb(api, opts),
		theme:             opts.controller().theme,
	}, nil
}

// Theme returns the resolved palette.
func (s *Session) Theme() Theme { return s.theme }

// Clear hides every panel.
func (s *Session) Clear() {
	s.Waveform.Clear()
	s.FrequencyResponse.Clear()
	s.Spectrogram.Clear()
	s.Surface3D.Clear()
	s.Parameters.Clear()
	s.SNR.Clear()
	s.EnvelopeDb.Clear()
}

// Close cancels in-flight requests. The session is unusable afterwards.
func (s *Session) Close() {
	s.Waveform.Close()
	s.FrequencyResponse.Close()
	s.Spectrogram.Close()
	s.Surface3D.Close()
	s.Parameters.Close()
	s.SNR.Close()
	s.EnvelopeDb.Close()
}
