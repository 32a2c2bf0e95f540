package tui

import "time"

// DeckTypeState tracks per-TypeID fetch bookkeeping for the status line.
type DeckTypeState struct {
	TypeID          string
	FetchInFlight   bool
	LastError       string
	LastErrorAt     time.Time
	LastFetchOK     bool
	LastFetchAt     time.Time
	ConsecutiveErrs int
}

func (s *DeckTypeState) begin() {
	s.FetchInFlight = true
}

func (s *DeckTypeState) finish(err error, now time.Time) {
	s.FetchInFlight = false
	s.LastFetchAt = now
	if err != nil {
		s.LastError = err.Error()
		s.LastErrorAt = now
		s.LastFetchOK = false
		s.ConsecutiveErrs++
		return
	}
	s.LastError = ""
	s.LastFetchOK = true
	s.ConsecutiveErrs = 0
}
