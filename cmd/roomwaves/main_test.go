package main

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/roomwaves/roomwaves/internal/model"
	"github.com/roomwaves/roomwaves/internal/replay"
)

const testKey = "uploads/room.wav"

type stubAPI struct{}

func (stubAPI) Waveform(context.Context, string) (model.Series, error) {
	return model.Series{Labels: []float64{0, 0.5, 1}, Data: []float64{0, 0.8, -0.2}}, nil
}

func (stubAPI) FrequencyResponse(_ context.Context, _ string, bands int) (model.FrequencyResponse, error) {
	return model.FrequencyResponse{Frequencies: []float64{100, 1000}, Magnitudes: []float64{-3, float64(-bands)}}, nil
}

func (stubAPI) EnvelopeDb(context.Context, string) (model.Series, error) {
	return model.Series{Labels: []float64{0, 1}, Data: []float64{0, -60}}, nil
}

func (stubAPI) Spectrogram(context.Context, string) (model.TimeFrequencyMap, error) {
	return model.TimeFrequencyMap{Sxx: [][]float64{{-10, -20}, {-30, -40}}, F: []float64{100, 1000}, T: []float64{0, 1}, MinDB: -40, MaxDB: -10}, nil
}

func (stubAPI) Surface(context.Context, string, int) (model.TimeFrequencyMap, error) {
	return model.TimeFrequencyMap{Sxx: [][]float64{{-10}}, F: []float64{1000}, T: []float64{0}, MinDB: -10, MaxDB: -10}, nil
}

func (stubAPI) Parameters(context.Context, string, int) (model.ParametersResult, error) {
	return model.ParametersResult{Parameters: map[string]model.AcousticParameterSet{
		"1000": {EDT: 0.9, T60FromT20: 1.0, T60FromT30: 1.1, C80: 2.5, D50: 0.45},
		"125":  {EDT: 1.4, T60FromT20: 1.5, T60FromT30: 1.6, C80: -1.0, D50: 0.30},
	}}, nil
}

func (stubAPI) SNR(context.Context, string) (model.SNRResult, error) {
	v := 52.0
	return model.SNRResult{SNRDB: &v}, nil
}

// newReplayBackend serves fixtures recorded from stubAPI for testKey.
func newReplayBackend(t *testing.T) (string, *replay.Store) {
	t.Helper()
	store, err := replay.OpenStore(t.TempDir())
	if err != nil {
		t.Fatalf("OpenStore: %v", err)
	}
	if _, err := replay.Record(context.Background(), stubAPI{}, store, testKey, replay.RecordOptions{}); err != nil {
		t.Fatalf("Record: %v", err)
	}
	srv := replay.NewServer("127.0.0.1:0", store, nil)
	if err := srv.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	t.Cleanup(func() { _ = srv.Stop() })
	return "http://" + srv.Addr(), store
}

func runCLI(t *testing.T, apiURL string, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	flags := []string{"--api-url", apiURL, "--log-level", "error"}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}

func TestAnalyzePrintsSummary(t *testing.T) {
	url, _ := newReplayBackend(t)

	out, _, err := runCLI(t, url, "analyze", testKey)
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	requireContains(t, out, "Measurement: "+testKey)
	requireContains(t, out, "Frequency Response")
	requireContains(t, out, "1/24 octave")
	requireContains(t, out, "3 points")
	requireContains(t, out, "2×2")
	requireContains(t, out, "SNR 52.0 dB: Excellent.")
	requireContains(t, out, "1k")
	if strings.Index(out, "125") > strings.Index(out, "1k") {
		t.Fatalf("parameter rows not ordered by band:\n%s", out)
	}
}

func TestAnalyzeJSON(t *testing.T) {
	url, _ := newReplayBackend(t)

	out, _, err := runCLI(t, url, "analyze", testKey, "--json")
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	var report analysisReport
	if err := json.Unmarshal([]byte(out), &report); err != nil {
		t.Fatalf("decode: %v\n%s", err, out)
	}
	if len(report.Panels) != 7 {
		t.Fatalf("panels = %d, want 7", len(report.Panels))
	}
	for _, p := range report.Panels {
		if !p.Loaded || p.Error != "" {
			t.Fatalf("panel %s not loaded: %+v", p.Name, p)
		}
	}
	if report.SNRDB == nil || *report.SNRDB != 52 {
		t.Fatalf("snr = %v", report.SNRDB)
	}
	if report.Quality == nil || report.Quality.Class != "excellent" {
		t.Fatalf("quality = %+v", report.Quality)
	}
	if len(report.Parameters) != 2 || report.Parameters[0].Band != "125" {
		t.Fatalf("parameters = %+v", report.Parameters)
	}
}

func TestAnalyzeReportsPanelFailures(t *testing.T) {
	url, _ := newReplayBackend(t)

	out, _, err := runCLI(t, url, "analyze", "uploads/unknown.wav")
	if err == nil {
		t.Fatal("expected failure for unrecorded key")
	}
	requireContains(t, err.Error(), "7 of 7 panels failed")
	requireContains(t, out, "Could not load waveform data.")
	requireContains(t, out, "Could not calculate SNR.")
}

func TestAnalyzeRejectsInvalidBands(t *testing.T) {
	url, _ := newReplayBackend(t)

	_, _, err := runCLI(t, url, "analyze", testKey, "--frequency-bands", "5")
	if err == nil {
		t.Fatal("expected invalid option error")
	}
	requireContains(t, err.Error(), "frequency bands")
}

func TestUploadCommand(t *testing.T) {
	url, _ := newReplayBackend(t)
	path := filepath.Join(t.TempDir(), "sweep.wav")
	if err := os.WriteFile(path, []byte("RIFF"), 0o644); err != nil {
		t.Fatal(err)
	}

	out, _, err := runCLI(t, url, "upload", path)
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	requireContains(t, out, "File key: uploads/sweep.wav")
}

func TestFileURLCommand(t *testing.T) {
	url, store := newReplayBackend(t)
	if err := store.Save(replay.RouteFileURL, testKey, 0, []byte(`{"url":"https://files.test/room.wav?sig=1"}`)); err != nil {
		t.Fatal(err)
	}

	out, _, err := runCLI(t, url, "file-url", testKey)
	if err != nil {
		t.Fatalf("file-url: %v", err)
	}
	if strings.TrimSpace(out) != "https://files.test/room.wav?sig=1" {
		t.Fatalf("output = %q", out)
	}
}

func TestSignalWritesDecodedFiles(t *testing.T) {
	var query string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.RawQuery
		_ = json.NewEncoder(w).Encode(model.SweepSignals{
			AudioSweepB64:   base64.StdEncoding.EncodeToString([]byte("sweep-bytes")),
			AudioInverseB64: base64.StdEncoding.EncodeToString([]byte("inverse")),
			FilenameSweep:   "sweep.wav",
			FilenameInverse: "../inverse.wav",
		})
	}))
	defer srv.Close()
	dir := t.TempDir()

	out, _, err := runCLI(t, srv.URL, "signal", "--duration", "5", "--f-inf", "50", "--out", dir)
	if err != nil {
		t.Fatalf("signal: %v", err)
	}
	requireContains(t, query, "f_inf=50")
	requireContains(t, query, "duration=5")
	requireContains(t, out, "sweep.wav (11 bytes)")

	got, err := os.ReadFile(filepath.Join(dir, "inverse.wav"))
	if err != nil {
		t.Fatalf("inverse not written inside out dir: %v", err)
	}
	if string(got) != "inverse" {
		t.Fatalf("inverse = %q", got)
	}
}

func TestSignalRejectsBadRange(t *testing.T) {
	_, _, err := runCLI(t, "http://127.0.0.1:1", "signal", "--f-inf", "500", "--f-sup", "100")
	if err == nil {
		t.Fatal("expected range error")
	}
	requireContains(t, err.Error(), "invalid")
}

func TestIRCommand(t *testing.T) {
	var factor, sweepName string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		factor = r.FormValue("duration_factor")
		f, fh, err := r.FormFile("recorded_sweep")
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		_, _ = io.Copy(io.Discard, f)
		sweepName = fh.Filename
		_ = json.NewEncoder(w).Encode(model.ImpulseResponseResult{
			Status: "success", Filename: "ir.wav", Path: "uploads/ir.wav",
			SampleRate: 48000, DurationSamples: 96000,
		})
	}))
	defer srv.Close()

	dir := t.TempDir()
	sweep := filepath.Join(dir, "rec.wav")
	inverse := filepath.Join(dir, "inv.wav")
	for _, p := range []string{sweep, inverse} {
		if err := os.WriteFile(p, []byte("RIFF"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	out, _, err := runCLI(t, srv.URL, "ir", "--sweep", sweep, "--inverse", inverse)
	if err != nil {
		t.Fatalf("ir: %v", err)
	}
	if factor != "4" || sweepName != "rec.wav" {
		t.Fatalf("factor=%q sweep=%q", factor, sweepName)
	}
	requireContains(t, out, "uploads/ir.wav")
	requireContains(t, out, "2.000 s")
}

func TestRecordCommand(t *testing.T) {
	url, _ := newReplayBackend(t)
	dir := t.TempDir()

	out, _, err := runCLI(t, url, "record", testKey, "--dir", dir)
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	requireContains(t, out, "Recorded 7 responses")

	store, err := replay.OpenStore(dir)
	if err != nil {
		t.Fatal(err)
	}
	if got := len(store.Fixtures()); got != 7 {
		t.Fatalf("fixtures = %d, want 7", got)
	}
}

func TestRecordCommandPropagatesFailure(t *testing.T) {
	url, _ := newReplayBackend(t)

	_, _, err := runCLI(t, url, "record", "uploads/unknown.wav", "--dir", t.TempDir())
	if err == nil {
		t.Fatal("expected record to fail for unrecorded key")
	}
}

func TestServeUntilDoneStopsOnCancel(t *testing.T) {
	store, err := replay.OpenStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	srv := replay.NewServer("127.0.0.1:0", store, nil)
	if err := srv.Start(); err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := serveUntilDone(ctx, srv); err != nil {
		t.Fatalf("serveUntilDone: %v", err)
	}
	if _, err := http.Get("http://" + srv.Addr() + "/api/health"); err == nil {
		t.Fatal("server still accepting requests after stop")
	}
}
