package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/roomwaves/roomwaves/internal/model"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c, err := New(Config{BaseURL: srv.URL, UserAgent: "roomwaves-test", Headers: map[string]string{"X-Team": "lab"}})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return c
}

func TestWaveformDecodes(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/plot/room.wav" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if got := r.Header.Get("Accept"); got != "application/json" {
			t.Errorf("Accept = %q", got)
		}
		if got := r.Header.Get("User-Agent"); got != "roomwaves-test" {
			t.Errorf("User-Agent = %q", got)
		}
		if got := r.Header.Get("X-Team"); got != "lab" {
			t.Errorf("X-Team = %q", got)
		}
		if r.Header.Get("X-Request-ID") == "" {
			t.Error("missing X-Request-ID")
		}
		w.Write([]byte(`{"labels":[0,1,2],"data":[0,0.5,1]}`))
	})

	got, err := c.Waveform(context.Background(), "room.wav")
	if err != nil {
		t.Fatalf("Waveform: %v", err)
	}
	if len(got.Labels) != 3 || got.Data[1] != 0.5 {
		t.Fatalf("unexpected series %+v", got)
	}
}

func TestFrequencyResponseSendsBands(t *testing.T) {
	var query string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.RawQuery
		w.Write([]byte(`{"frequencies":[20,40],"magnitudes":[-3,-6]}`))
	})

	if _, err := c.FrequencyResponse(context.Background(), "a.wav", 12); err != nil {
		t.Fatalf("FrequencyResponse: %v", err)
	}
	if query != "bands=12" {
		t.Fatalf("query = %q, want bands=12", query)
	}
}

func TestKeyWithSlashesKeepsSegments(t *testing.T) {
	var raw string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		raw = r.URL.EscapedPath()
		w.Write([]byte(`{"snr_db":42.5}`))
	})

	got, err := c.SNR(context.Background(), "uploads/my room.wav")
	if err != nil {
		t.Fatalf("SNR: %v", err)
	}
	if raw != "/api/snr/uploads/my%20room.wav" {
		t.Fatalf("path = %q", raw)
	}
	if got.SNRDB == nil || *got.SNRDB != 42.5 {
		t.Fatalf("snr = %v", got.SNRDB)
	}
}

func TestNullSNR(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"snr_db":null}`))
	})
	got, err := c.SNR(context.Background(), "a.wav")
	if err != nil {
		t.Fatalf("SNR: %v", err)
	}
	if got.SNRDB != nil {
		t.Fatalf("expected nil snr, got %v", *got.SNRDB)
	}
}

func TestStatusError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"detail":"File not found"}`, http.StatusNotFound)
	})

	_, err := c.Spectrogram(context.Background(), "missing.wav")
	var se *StatusError
	if !errors.As(err, &se) {
		t.Fatalf("expected StatusError, got %v", err)
	}
	if se.StatusCode != http.StatusNotFound || se.Op != "spectrogram" {
		t.Fatalf("unexpected error %+v", se)
	}
	if !strings.Contains(se.Body, "File not found") {
		t.Fatalf("body = %q", se.Body)
	}
}

func TestDecodeError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json`))
	})
	if _, err := c.Parameters(context.Background(), "a.wav", 1); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestTimeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	t.Cleanup(srv.Close)
	t.Cleanup(func() { close(release) })

	c, err := New(Config{BaseURL: srv.URL, Timeout: 20 * time.Millisecond})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	_, err = c.Waveform(context.Background(), "slow.wav")
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
}

func TestUploadMultipart(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/upload" {
			t.Errorf("unexpected %s %s", r.Method, r.URL.Path)
		}
		f, hdr, err := r.FormFile("file")
		if err != nil {
			t.Errorf("FormFile: %v", err)
			return
		}
		defer f.Close()
		body, _ := io.ReadAll(f)
		if hdr.Filename != "sweep.wav" || string(body) != "RIFF" {
			t.Errorf("unexpected part %q %q", hdr.Filename, body)
		}
		json.NewEncoder(w).Encode(model.UploadResult{Status: "success", Filename: "sweep.wav", Path: "uploads/sweep.wav"})
	})

	got, err := c.Upload(context.Background(), "sweep.wav", strings.NewReader("RIFF"))
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if got.Path != "uploads/sweep.wav" {
		t.Fatalf("path = %q", got.Path)
	}
}

func TestCalculateIRDefaultsDurationFactor(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("ParseMultipartForm: %v", err)
			return
		}
		if got := r.FormValue("duration_factor"); got != "4" {
			t.Errorf("duration_factor = %q", got)
		}
		for _, field := range []string{"recorded_sweep", "inverse_filter"} {
			if _, _, err := r.FormFile(field); err != nil {
				t.Errorf("missing %s: %v", field, err)
			}
		}
		w.Write([]byte(`{"status":"success","filename":"ir.wav","path":"uploads/ir.wav","sample_rate":48000,"duration_samples":96000}`))
	})

	got, err := c.CalculateIR(context.Background(), model.ImpulseResponseRequest{
		SweepName:   "rec.wav",
		Sweep:       []byte("a"),
		InverseName: "inv.wav",
		Inverse:     []byte("b"),
	})
	if err != nil {
		t.Fatalf("CalculateIR: %v", err)
	}
	if got.SampleRate != 48000 || got.DurationSamples != 96000 {
		t.Fatalf("unexpected result %+v", got)
	}
}

func TestSignalQuery(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("duration") != "2.5" || q.Get("f_inf") != "20" || q.Get("f_sup") != "20000" || q.Get("fs") != "48000" {
			t.Errorf("query = %q", r.URL.RawQuery)
		}
		w.Write([]byte(`{"audio_sweep_b64":"UklGRg==","audio_inverse_b64":"UklGRg==","filename_sweep":"s.wav","filename_inverse":"i.wav"}`))
	})

	got, err := c.Signal(context.Background(), model.SignalRequest{Duration: 2.5, FInf: 20, FSup: 20000, FS: 48000})
	if err != nil {
		t.Fatalf("Signal: %v", err)
	}
	if got.FilenameSweep != "s.wav" {
		t.Fatalf("unexpected result %+v", got)
	}
}

func TestConfigIsCopied(t *testing.T) {
	headers := map[string]string{"X-Team": "lab"}
	c, err := New(Config{BaseURL: "http://example.test/", Headers: headers})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	headers["X-Team"] = "changed"

	cfg := c.Config()
	if cfg.Headers["X-Team"] != "lab" {
		t.Fatalf("client config followed caller mutation: %q", cfg.Headers["X-Team"])
	}
	cfg.Headers["X-Team"] = "again"
	if c.Config().Headers["X-Team"] != "lab" {
		t.Fatal("returned config aliases client state")
	}
}

func TestNewRejectsBadBaseURL(t *testing.T) {
	for _, raw := range []string{"", "ftp://host", "://bad"} {
		if _, err := New(Config{BaseURL: raw}); err == nil {
			t.Errorf("New(%q) succeeded", raw)
		}
	}
}
