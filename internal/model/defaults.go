package model

import "time"

// Shared defaults used by both the CLI and TUI binaries.
const (
	DefaultAPIURL           = "http://localhost:8000"
	DefaultAPITimeout       = 60 * time.Second
	DefaultSkin             = "default"
	DefaultFrequencyBands   = 24
	DefaultSurfaceBands     = 48
	DefaultParameterBands   = 1
	DefaultDataReduction    = 2
	DefaultDurationFactor   = 4.0
	DefaultReplayAddr       = "127.0.0.1:8765"
	DefaultSignalDuration   = 10.0
	DefaultSignalFInf       = 20
	DefaultSignalFSup       = 20000
	DefaultSignalSampleRate = 44100
)
