package resource

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"
)

// FetchFunc performs the remote fetch for key with the resolved parameters.
type FetchFunc[R any] func(ctx context.Context, key string, params Params) (R, error)

// Options configure a Controller.
type Options[R, T any] struct {
	Name         string
	Fetch        FetchFunc[R]
	Transform    func(R) T
	ErrorMessage string
	Params       *ParameterSet
	Logger       *zap.Logger
	OnChange     func(State[T])
}

// Controller owns the {data, loading, error} state of one lazily fetched
// resource. Every fetch captures a generation number; only the latest
// generation may write its result, so a slow superseded response is dropped.
type Controller[R, T any] struct {
	name      string
	fetch     FetchFunc[R]
	transform func(R) T
	message   string
	params    *ParameterSet
	logger    *zap.Logger
	onChange  func(State[T])

	mu     sync.Mutex
	state  State[T]
	gen    uint64
	closed bool

	ctx    context.Context
	cancel context.CancelFunc
}

// New creates a controller with empty state.
func New[R, T any](opts Options[R, T]) *Controller[R, T] {
	if opts.Fetch == nil {
		panic("resource: nil fetch func for " + opts.Name)
	}
	if opts.Transform == nil {
		panic("resource: nil transform for " + opts.Name)
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	message := opts.ErrorMessage
	if message == "" {
		message = fmt.Sprintf("Could not load %s data.", opts.Name)
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Controller[R, T]{
		name:      opts.Name,
		fetch:     opts.Fetch,
		transform: opts.Transform,
		message:   message,
		params:    opts.Params,
		logger:    logger.With(zap.String("resource", opts.Name)),
		onChange:  opts.OnChange,
		ctx:       ctx,
		cancel:    cancel,
	}
}

// Name returns the binding name.
func (c *Controller[R, T]) Name() string { return c.name }

// Params returns the binding's parameter set, or nil when it has none.
func (c *Controller[R, T]) Params() *ParameterSet { return c.params }

// State returns a snapshot of the current state.
func (c *Controller[R, T]) State() State[T] {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Fetch loads key and blocks until the attempt settles. An empty key or a
// ctx that is already done is a no-op. Failures never escape: they are logged and recorded as the
// binding's fixed message while the previous data is kept.
func (c *Controller[R, T]) Fetch(ctx context.Context, key string, overrides Params) State[T] {
	key = strings.TrimSpace(key)

	c.mu.Lock()
	if key == "" || c.closed || done(ctx) {
		s := c.state
		c.mu.Unlock()
		return s
	}
	c.gen++
	gen := c.gen
	c.state.Loading = true
	c.state.Err = ""
	snapshot := c.state
	c.mu.Unlock()
	c.notify(snapshot)

	data, err := c.run(ctx, key, overrides)

	c.mu.Lock()
	if c.closed || gen != c.gen {
		s := c.state
		c.mu.Unlock()
		c.logger.Debug("discarding superseded result", zap.String("key", key), zap.Uint64("generation", gen))
		return s
	}
	if err != nil {
		c.state.Err = c.message
	} else {
		c.state.Data = data
		c.state.HasData = true
	}
	c.state.Loading = false
	snapshot = c.state
	c.mu.Unlock()

	if err != nil {
		c.logger.Warn("fetch failed", zap.String("key", key), zap.Error(err))
	}
	c.notify(snapshot)
	return snapshot
}

// run performs the fetch and transform, converting panics into errors so
// the loading flag is always released.
func (c *Controller[R, T]) run(ctx context.Context, key string, overrides Params) (data T, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("resource: %s: panic: %v", c.name, r)
		}
	}()

	params, err := c.params.Resolve(overrides)
	if err != nil {
		return data, err
	}

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := mergeCancel(ctx, c.ctx)
	defer stop()

	raw, err := c.fetch(ctx, key, params)
	if err != nil {
		return data, err
	}
	return c.transform(raw), nil
}

// Toggle hides the resource when it is visible, otherwise fetches it. Like
// Fetch it does nothing once ctx is done.
func (c *Controller[R, T]) Toggle(ctx context.Context, key string, overrides Params) State[T] {
	if done(ctx) {
		return c.State()
	}
	if c.State().Visible() {
		c.Clear()
		return c.State()
	}
	return c.Fetch(ctx, key, overrides)
}

// Clear drops data and error. It also supersedes any fetch still in flight,
// so a late response cannot bring cleared data back.
func (c *Controller[R, T]) Clear() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	changed := c.state.HasData || c.state.Err != "" || c.state.Loading
	if c.state.Loading {
		c.gen++
	}
	c.state = State[T]{}
	snapshot := c.state
	c.mu.Unlock()

	if changed {
		c.notify(snapshot)
	}
}

// Close tears the controller down. In-flight requests are cancelled and no
// further state changes are applied.
func (c *Controller[R, T]) Close() {
	c.mu.Lock()
	c.closed = true
	c.mu.Unlock()
	c.cancel()
}

func done(ctx context.Context) bool {
	return ctx != nil && ctx.Err() != nil
}

func (c *Controller[R, T]) notify(s State[T]) {
	if c.onChange != nil {
		c.onChange(s)
	}
}

// mergeCancel derives a context from parent that is also cancelled when
// other is done.
func mergeCancel(parent, other context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)
	stop := context.AfterFunc(other, cancel)
	return ctx, func() {
		stop()
		cancel()
	}
}
