package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all dashboard key bindings with built-in help text.
type KeyMap struct {
	// Global
	Quit      key.Binding
	ForceQuit key.Binding
	Help      key.Binding
	Escape    key.Binding
	Open      key.Binding
	Upload    key.Binding
	ClearAll  key.Binding

	// Navigation
	NextDeck key.Binding
	PrevDeck key.Binding
	Up       key.Binding
	Down     key.Binding
	Enter    key.Binding
	NextView key.Binding
	PrevView key.Binding

	// Panels
	ToggleWaveform    key.Binding
	ToggleFrequency   key.Binding
	ToggleSpectrogram key.Binding
	ToggleSurface     key.Binding
	ToggleParameters  key.Binding
	RefreshSNR        key.Binding
	ToggleEnvelope    key.Binding

	// Focused panel
	NextBands     key.Binding
	PrevBands     key.Binding
	DataReduction key.Binding
	Refetch       key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "force quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?", "h"),
			key.WithHelp("?/h", "help"),
		),
		Escape: key.NewBinding(
			key.WithKeys("escape", "esc"),
			key.WithHelp("esc", "close"),
		),
		Open: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "open a measurement key"),
		),
		Upload: key.NewBinding(
			key.WithKeys("u"),
			key.WithHelp("u", "upload a recording"),
		),
		ClearAll: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "hide all panels"),
		),

		NextDeck: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab/→", "next panel"),
		),
		PrevDeck: key.NewBinding(
			key.WithKeys("shift+tab", "left"),
			key.WithHelp("shift+tab/←", "prev panel"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "panel above"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "panel below"),
		),
		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "details"),
		),
		NextView: key.NewBinding(
			key.WithKeys("]"),
			key.WithHelp("]", "next view"),
		),
		PrevView: key.NewBinding(
			key.WithKeys("["),
			key.WithHelp("[", "prev view"),
		),

		ToggleWaveform: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "waveform"),
		),
		ToggleFrequency: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "frequency response"),
		),
		ToggleSpectrogram: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "spectrogram"),
		),
		ToggleSurface: key.NewBinding(
			key.WithKeys("4"),
			key.WithHelp("4", "3D surface"),
		),
		ToggleParameters: key.NewBinding(
			key.WithKeys("5"),
			key.WithHelp("5", "acoustic parameters"),
		),
		RefreshSNR: key.NewBinding(
			key.WithKeys("6"),
			key.WithHelp("6", "recalculate SNR"),
		),
		ToggleEnvelope: key.NewBinding(
			key.WithKeys("7"),
			key.WithHelp("7", "envelope (dB)"),
		),

		NextBands: key.NewBinding(
			key.WithKeys("b"),
			key.WithHelp("b", "next band resolution"),
		),
		PrevBands: key.NewBinding(
			key.WithKeys("B"),
			key.WithHelp("B", "prev band resolution"),
		),
		DataReduction: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "cycle surface data reduction"),
		),
		Refetch: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reload panel"),
		),
	}
}

// deckHotkeys maps panel keys to deck type IDs.
func (k KeyMap) deckHotkeys() []struct {
	binding key.Binding
	typeID  string
} {
	return []struct {
		binding key.Binding
		typeID  string
	}{
		{k.ToggleWaveform, "waveform"},
		{k.ToggleFrequency, "frequency"},
		{k.ToggleSpectrogram, "spectrogram"},
		{k.ToggleSurface, "surface"},
		{k.ToggleParameters, "parameters"},
		{k.RefreshSNR, "snr"},
		{k.ToggleEnvelope, "envelope"},
	}
}
