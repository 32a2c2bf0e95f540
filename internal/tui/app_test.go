package tui

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/roomwaves/roomwaves/internal/model"
	"github.com/roomwaves/roomwaves/internal/panels"
)

type fakeFiles struct {
	name string
	body string
	err  error
}

func (f *fakeFiles) Upload(_ context.Context, filename string, r io.Reader) (model.UploadResult, error) {
	if f.err != nil {
		return model.UploadResult{}, f.err
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return model.UploadResult{}, err
	}
	f.name, f.body = filename, string(b)
	return model.UploadResult{Status: "success", Filename: filename, Path: "uploads/" + filename}, nil
}

func (f *fakeFiles) FileURL(_ context.Context, key string) (model.FileURL, error) {
	return model.FileURL{URL: "http://example.test/" + key}, nil
}

func typeText(p Page, s string) {
	p.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
}

func newTestApp(t *testing.T, files model.FileService) (*App, *OpenPage, *DashboardPage) {
	t.Helper()
	session, err := panels.NewSession(newFakeFetcher(), panels.Options{})
	if err != nil {
		t.Fatal(err)
	}
	dash := NewDashboardModel(session, DashboardOptions{})
	t.Cleanup(func() {
		dash.Close()
		session.Close()
	})
	open := NewOpenPage(context.Background(), files, nil)
	dashPage := NewDashboardPage(dash)
	app := NewApp(open, dashPage)
	app.Init()
	return app, open, dashPage
}

func TestApp_OpenKeyRoutesToDashboard(t *testing.T) {
	app, _, dash := newTestApp(t, nil)

	app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("uploads/room.wav")})
	app.Update(tea.KeyMsg{Type: tea.KeyEnter})

	if got := app.ActivePage(); got != DashboardPageID {
		t.Fatalf("active page = %q, want dashboard", got)
	}
	if got := dash.Model.Key(); got != "uploads/room.wav" {
		t.Fatalf("key = %q", got)
	}
}

func TestApp_DashboardReturnsToOpenPage(t *testing.T) {
	app, open, dash := newTestApp(t, nil)
	app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("a.wav")})
	app.Update(tea.KeyMsg{Type: tea.KeyEnter})

	app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("o")})
	if got := app.ActivePage(); got != OpenPageID {
		t.Fatalf("active page = %q, want open", got)
	}
	if open.current != "a.wav" {
		t.Fatalf("open page current = %q", open.current)
	}

	// esc returns without changing the key.
	app.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if got := app.ActivePage(); got != DashboardPageID {
		t.Fatalf("active page = %q, want dashboard", got)
	}
	if got := dash.Model.Key(); got != "a.wav" {
		t.Fatalf("key = %q, want a.wav", got)
	}
}

func TestApp_UploadKeyStartsInUploadMode(t *testing.T) {
	app, open, _ := newTestApp(t, &fakeFiles{})
	app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("a.wav")})
	app.Update(tea.KeyMsg{Type: tea.KeyEnter})

	app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("u")})

	if got := app.ActivePage(); got != OpenPageID {
		t.Fatalf("active page = %q, want open", got)
	}
	if open.mode != openModeUpload {
		t.Fatal("upload key should open the prompt in upload mode")
	}
}

func TestOpenPage_EmptyInput(t *testing.T) {
	t.Parallel()

	p := NewOpenPage(context.Background(), nil, nil)
	p.Init()
	_, nav := p.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if nav != nil {
		t.Fatal("empty input should not navigate")
	}
	if p.err == "" {
		t.Fatal("expected validation message")
	}
}

func TestOpenPage_EscWithoutKeyQuits(t *testing.T) {
	t.Parallel()

	p := NewOpenPage(context.Background(), nil, nil)
	p.Init()
	cmd, nav := p.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if nav != nil || cmd == nil {
		t.Fatal("esc should quit when nothing is open")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatal("expected tea.QuitMsg")
	}
}

func TestOpenPage_TabIgnoredWithoutFileService(t *testing.T) {
	t.Parallel()

	p := NewOpenPage(context.Background(), nil, nil)
	p.Update(tea.KeyMsg{Type: tea.KeyTab})
	if p.mode != openModeKey {
		t.Fatal("upload mode requires a file service")
	}
}

func TestOpenPage_UploadNavigatesWithServerPath(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "sweep.wav")
	if err := os.WriteFile(path, []byte("RIFF"), 0o644); err != nil {
		t.Fatal(err)
	}
	files := &fakeFiles{}
	p := NewOpenPage(context.Background(), files, nil)
	p.Init()
	p.Update(tea.KeyMsg{Type: tea.KeyTab})
	if p.mode != openModeUpload {
		t.Fatal("tab should switch to upload mode")
	}
	typeText(p, path)

	cmd, nav := p.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if nav != nil || cmd == nil {
		t.Fatal("upload should run as a command")
	}
	if !p.uploading {
		t.Fatal("uploading flag not set")
	}

	_, nav = p.Update(cmd())
	if nav == nil || nav.PageID != DashboardPageID || nav.Params != "uploads/sweep.wav" {
		t.Fatalf("nav = %+v", nav)
	}
	if files.name != "sweep.wav" || files.body != "RIFF" {
		t.Fatalf("uploaded %q with %q", files.name, files.body)
	}
}

func TestOpenPage_UploadFailureStays(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "sweep.wav")
	if err := os.WriteFile(path, []byte("RIFF"), 0o644); err != nil {
		t.Fatal(err)
	}
	p := NewOpenPage(context.Background(), &fakeFiles{err: errors.New("413")}, nil)
	p.Init()
	p.Update(tea.KeyMsg{Type: tea.KeyTab})
	typeText(p, path)

	cmd, _ := p.Update(tea.KeyMsg{Type: tea.KeyEnter})
	_, nav := p.Update(cmd())
	if nav != nil {
		t.Fatal("failed upload should not navigate")
	}
	if p.uploading || p.err == "" {
		t.Fatalf("uploading=%v err=%q", p.uploading, p.err)
	}
}

func TestOpenPage_MissingLocalFile(t *testing.T) {
	t.Parallel()

	p := NewOpenPage(context.Background(), &fakeFiles{}, nil)
	p.Init()
	p.Update(tea.KeyMsg{Type: tea.KeyTab})
	typeText(p, filepath.Join(t.TempDir(), "missing.wav"))

	cmd, nav := p.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil || nav != nil {
		t.Fatal("missing file should fail before uploading")
	}
	if p.err == "" {
		t.Fatal("expected open error")
	}
}
