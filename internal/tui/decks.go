package tui

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/roomwaves/roomwaves/internal/resource"
)

// Deck is a pluggable dashboard deck.
type Deck interface {
	ID() string
	Title() string
	Render(ctx ViewContext, width, height int, active bool) string
	ContentLines(ctx ViewContext) int
}

// ResourceDeck extends Deck with a lazily fetched backing resource.
// Commands run the fetch off the UI goroutine and report with DeckDataMsg.
type ResourceDeck interface {
	Deck
	TypeID() string
	Hotkey() string
	Status() DeckStatus
	ToggleCmd(ctx context.Context, key string) tea.Cmd
	FetchCmd(ctx context.Context, key string) tea.Cmd
	Clear()
}

// BandDeck is implemented by decks with selectable parameters.
type BandDeck interface {
	Bands() *resource.ParameterSet
}

// DetailDeck is implemented by decks that can open a detail modal.
type DetailDeck interface {
	DetailModal() Modal
}

// DeckStatus is the render-relevant part of a resource state.
type DeckStatus struct {
	Visible bool
	Loading bool
	Err     string
}

// source is the controller surface shared by every binding.
type source[T any] interface {
	State() resource.State[T]
	Fetch(ctx context.Context, key string, overrides resource.Params) resource.State[T]
	Toggle(ctx context.Context, key string, overrides resource.Params) resource.State[T]
	Clear()
	Params() *resource.ParameterSet
}

// resourceDeck implements the ResourceDeck plumbing for one binding.
// Concrete decks embed it and add rendering.
type resourceDeck[T any] struct {
	id     string
	title  string
	hotkey string
	src    source[T]
}

func (d *resourceDeck[T]) ID() string     { return d.id }
func (d *resourceDeck[T]) TypeID() string { return d.id }
func (d *resourceDeck[T]) Title() string  { return d.title }
func (d *resourceDeck[T]) Hotkey() string { return d.hotkey }

func (d *resourceDeck[T]) Bands() *resource.ParameterSet { return d.src.Params() }

func (d *resourceDeck[T]) Status() DeckStatus {
	st := d.src.State()
	return DeckStatus{Visible: st.Visible(), Loading: st.Loading, Err: st.Err}
}

// ToggleCmd and FetchCmd run against ctx. A ctx that is done by the time the
// command runs leaves the resource untouched.
func (d *resourceDeck[T]) ToggleCmd(ctx context.Context, key string) tea.Cmd {
	return d.cmd(key, func() resource.State[T] { return d.src.Toggle(ctx, key, nil) })
}

func (d *resourceDeck[T]) FetchCmd(ctx context.Context, key string) tea.Cmd {
	return d.cmd(key, func() resource.State[T] { return d.src.Fetch(ctx, key, nil) })
}

func (d *resourceDeck[T]) Clear() { d.src.Clear() }

func (d *resourceDeck[T]) cmd(key string, run func() resource.State[T]) tea.Cmd {
	return func() tea.Msg {
		st := run()
		var err error
		if st.Err != "" {
			err = errors.New(st.Err)
		}
		return DeckDataMsg{DeckTypeID: d.id, Key: key, Data: st, Err: err}
	}
}

// renderState picks the body for the common states: spinner while the first
// load is running, the error with a retry hint, or the load hint.
func (d *resourceDeck[T]) renderState(ctx ViewContext, width, height int) (string, bool) {
	st := d.Status()
	switch {
	case st.Visible:
		return "", false
	case st.Loading || ctx.DeckLoading:
		return renderLoadingPlaceholder(ctx.Spinner, width, height), true
	case st.Err != "":
		return errorStyle.Render(st.Err) + "\n" + helpStyle.Render("press "+d.hotkey+" to retry"), true
	case ctx.Key == "":
		return helpStyle.Render("press o to open a measurement"), true
	default:
		return helpStyle.Render("press "+d.hotkey+" to load"), true
	}
}
