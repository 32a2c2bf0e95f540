package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/roomwaves/roomwaves/internal/panels"
)

// ModalStackState holds the modal stack that replaces boolean flag explosion.
type ModalStackState struct {
	modalStack []Modal
}

// NavigationState holds view and deck focus state.
type NavigationState struct {
	activeDeckIdx int
	decks         []ResourceDeck
	views         []ViewState
	activeViewIdx int
}

// ViewState is one dashboard view composed of a subset of the decks.
type ViewState struct {
	ID            string
	Title         string
	Decks         []ResourceDeck
	ActiveDeckIdx int
}

// ViewSpec defines a view by the deck type IDs it shows, in grid order.
type ViewSpec struct {
	ID      string
	Title   string
	DeckIDs []string
}

// DashboardOptions configures a DashboardModel.
type DashboardOptions struct {
	ReverseScrollWheel bool
	Logger             *zap.Logger
	Views              []ViewSpec
}

// DashboardModel renders the measurement panels for one open key.
// Sub-state is organized into embedded structs for readability.
type DashboardModel struct {
	ModalStackState
	NavigationState

	// Window dimensions
	width  int
	height int

	// ctx bounds every deck fetch; cancel runs on quit.
	ctx    context.Context
	cancel context.CancelFunc

	// keyCtx is handed to issued deck commands. It is replaced whenever the
	// panels are reset, so commands that have not started yet do nothing.
	keyCtx    context.Context
	keyCancel context.CancelFunc

	session *panels.Session
	key     string
	keys    KeyMap

	spinner  spinner.Model
	spinning bool

	// Per-deck fetch bookkeeping keyed by TypeID.
	deckStates map[string]*DeckTypeState
	allDecks   map[string]ResourceDeck
	deckOrder  []string

	// Last fetch error for status line display (auto-clears after 30s).
	lastError   string
	lastErrorAt time.Time

	// Transient status message (band changes, data reduction).
	status   string
	statusAt time.Time

	reverseScrollWheel bool
	logger             *zap.Logger

	// Set by the open hotkey; consumed by DashboardPage.Update.
	pendingNav *PageNav

	viewStyle lipgloss.Style
}

// DeckDataMsg carries a completed deck fetch back to the dashboard.
type DeckDataMsg struct {
	DeckTypeID string
	Key        string
	Data       interface{}
	Err        error
}

// PanelChangedMsg reports a binding state change made outside the update
// loop, so the program redraws without waiting for the deck command.
type PanelChangedMsg struct {
	Name string
}

// NewDashboardModel creates a dashboard over the session's bindings.
func NewDashboardModel(session *panels.Session, opts DashboardOptions) *DashboardModel {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	ctx, cancel := context.WithCancel(context.Background())

	m := &DashboardModel{
		ctx:                ctx,
		cancel:             cancel,
		session:            session,
		keys:               DefaultKeyMap(),
		spinner:            newSpinner(),
		deckStates:         make(map[string]*DeckTypeState),
		allDecks:           make(map[string]ResourceDeck),
		reverseScrollWheel: opts.ReverseScrollWheel,
		logger:             logger,
	}
	m.keyCtx, m.keyCancel = context.WithCancel(ctx)

	theme := session.Theme()
	for _, d := range []ResourceDeck{
		NewWaveformDeck(session.Waveform),
		NewFrequencyDeck(session.FrequencyResponse),
		NewSpectrogramDeck(session.Spectrogram),
		NewSurfaceDeck(session.Surface3D),
		NewParametersDeck(session.Parameters),
		NewSNRDeck(session.SNR, theme),
		NewEnvelopeDeck(session.EnvelopeDb),
	} {
		m.allDecks[d.TypeID()] = d
		m.deckOrder = append(m.deckOrder, d.TypeID())
		m.deckStates[d.TypeID()] = &DeckTypeState{TypeID: d.TypeID()}
	}

	views := opts.Views
	if len(views) == 0 {
		views = DefaultViewSpecs()
	}
	m.SetViews(views)
	return m
}

// DefaultViewSpecs declares the built-in views.
func DefaultViewSpecs() []ViewSpec {
	return []ViewSpec{
		{
			ID:    "all",
			Title: "All",
			DeckIDs: []string{
				panels.NameWaveform, panels.NameFrequencyResponse,
				panels.NameSpectrogram, panels.NameSurface3D,
				panels.NameParameters, panels.NameSNR,
				panels.NameEnvelopeDb,
			},
		},
		{
			ID:      "time",
			Title:   "Time",
			DeckIDs: []string{panels.NameWaveform, panels.NameEnvelopeDb, panels.NameSNR},
		},
		{
			ID:      "frequency",
			Title:   "Frequency",
			DeckIDs: []string{panels.NameFrequencyResponse, panels.NameSpectrogram, panels.NameSurface3D},
		},
		{
			ID:      "room",
			Title:   "Room",
			DeckIDs: []string{panels.NameParameters, panels.NameSNR, panels.NameEnvelopeDb},
		},
	}
}

// SetViews configures the dashboard views and activates the first one.
// Unknown deck IDs are skipped.
func (m *DashboardModel) SetViews(specs []ViewSpec) {
	views := make([]ViewState, 0, len(specs))
	for _, vs := range specs {
		var decks []ResourceDeck
		for _, id := range vs.DeckIDs {
			if d, ok := m.allDecks[id]; ok {
				decks = append(decks, d)
			}
		}
		if len(decks) == 0 {
			continue
		}
		views = append(views, ViewState{ID: vs.ID, Title: vs.Title, Decks: decks})
	}

	m.views = views
	m.activeViewIdx = -1
	m.decks = nil
	m.activeDeckIdx = 0
	if len(views) > 0 {
		m.activateView(0)
	}
}

func (m *DashboardModel) persistActiveViewState() {
	if len(m.views) == 0 || m.activeViewIdx < 0 || m.activeViewIdx >= len(m.views) {
		return
	}
	m.views[m.activeViewIdx].ActiveDeckIdx = m.activeDeckIdx
}

func (m *DashboardModel) activateView(idx int) {
	if len(m.views) == 0 || idx < 0 || idx >= len(m.views) {
		return
	}
	m.persistActiveViewState()
	m.activeViewIdx = idx

	vw := &m.views[idx]
	m.decks = vw.Decks
	if vw.ActiveDeckIdx < 0 || vw.ActiveDeckIdx >= len(m.decks) {
		vw.ActiveDeckIdx = 0
	}
	m.activeDeckIdx = vw.ActiveDeckIdx
}

func (m *DashboardModel) nextView() {
	if len(m.views) <= 1 {
		return
	}
	m.activateView((m.activeViewIdx + 1) % len(m.views))
}

func (m *DashboardModel) prevView() {
	if len(m.views) <= 1 {
		return
	}
	m.activateView((m.activeViewIdx - 1 + len(m.views)) % len(m.views))
}

func (m *DashboardModel) currentViewTitle() string {
	if len(m.views) == 0 || m.activeViewIdx < 0 || m.activeViewIdx >= len(m.views) {
		return ""
	}
	return m.views[m.activeViewIdx].Title
}

// activeDeck returns the focused deck, or nil.
func (m *DashboardModel) activeDeck() ResourceDeck {
	if m.activeDeckIdx < 0 || m.activeDeckIdx >= len(m.decks) {
		return nil
	}
	return m.decks[m.activeDeckIdx]
}

// Key returns the open measurement key.
func (m *DashboardModel) Key() string { return m.key }

// SetKey opens a measurement. Every panel is hidden and in-flight fetches
// are superseded; the SNR is fetched for the new key.
func (m *DashboardModel) SetKey(key string) tea.Cmd {
	if key == m.key {
		return nil
	}
	m.resetPanels()
	for _, state := range m.deckStates {
		*state = DeckTypeState{TypeID: state.TypeID}
	}
	m.modalStack = nil
	m.key = key
	m.lastError = ""
	m.logger.Info("measurement opened", zap.String("key", key))
	if key == "" {
		return nil
	}
	return m.runDeck(m.allDecks[panels.NameSNR], false)
}

// resetPanels hides every panel and voids deck commands issued so far.
// The old context is cancelled before the bindings are cleared, so a
// command either sees it done or its fetch is superseded by the clear.
func (m *DashboardModel) resetPanels() {
	m.keyCancel()
	m.keyCtx, m.keyCancel = context.WithCancel(m.ctx)
	m.session.Clear()
}

// runDeck issues a toggle or fetch for d and tracks it as in flight.
func (m *DashboardModel) runDeck(d ResourceDeck, toggle bool) tea.Cmd {
	if d == nil || m.key == "" {
		return nil
	}
	var cmd tea.Cmd
	switch {
	case toggle && d.Status().Visible:
		// Hiding never touches the network.
		d.Clear()
		return nil
	case toggle:
		cmd = d.ToggleCmd(m.keyCtx, m.key)
	default:
		cmd = d.FetchCmd(m.keyCtx, m.key)
	}
	if state, ok := m.deckStates[d.TypeID()]; ok {
		state.begin()
	}
	return tea.Batch(cmd, m.startSpinnerIfNeeded())
}

// viewContext builds a ViewContext snapshot for deck rendering.
func (m *DashboardModel) viewContext() ViewContext {
	return ViewContext{
		ContentWidth:  m.width,
		ContentHeight: m.height,
		Key:           m.key,
		Spinner:       m.spinner.View(),
	}
}

// modalContext builds a ModalContext snapshot for modal rendering.
func (m *DashboardModel) modalContext() ModalContext {
	return ModalContext{
		ReverseScrollWheel: m.reverseScrollWheel,
	}
}

// Close cancels outstanding fetches.
func (m *DashboardModel) Close() {
	m.cancel()
}

// Init initializes the model
func (m *DashboardModel) Init() tea.Cmd {
	return tea.Batch(
		func() tea.Msg { return tea.EnableMouseCellMotion() },
		m.startSpinnerIfNeeded(),
	)
}

// PushModal pushes a modal onto the stack. Deduplicates by ID.
func (m *DashboardModel) PushModal(modal Modal) {
	for _, existing := range m.modalStack {
		if existing.ID() == modal.ID() {
			return
		}
	}
	m.modalStack = append(m.modalStack, modal)
}

// PopModal removes the topmost modal from the stack.
func (m *DashboardModel) PopModal() {
	if len(m.modalStack) > 0 {
		m.modalStack = m.modalStack[:len(m.modalStack)-1]
	}
}

// TopModal returns the topmost modal, or nil if the stack is empty.
func (m *DashboardModel) TopModal() Modal {
	if len(m.modalStack) == 0 {
		return nil
	}
	return m.modalStack[len(m.modalStack)-1]
}

// HasModal returns true if any modal is on the stack.
func (m *DashboardModel) HasModal() bool {
	return len(m.modalStack) > 0
}

// setStatus shows a transient message in the status line.
func (m *DashboardModel) setStatus(s string) {
	m.status = s
	m.statusAt = time.Now()
}
