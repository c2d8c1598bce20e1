// Package pipeline drives one capture run through its stages.
package pipeline

import (
	"context"
	"time"

	"github.com/example/rscrot/internal/apperr"
	"github.com/example/rscrot/internal/capture"
	"github.com/example/rscrot/internal/logger"
	"github.com/example/rscrot/internal/menu"
)

// State is a pipeline stage. Done, Cancelled and Failed are terminal.
type State uint8

const (
	StateIdle State = iota
	StateCapturing
	StateAwaitingChoice
	StateResolving
	StateDispatching
	StateDone
	StateCancelled
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateCapturing:
		return "capturing"
	case StateAwaitingChoice:
		return "awaiting-choice"
	case StateResolving:
		return "resolving"
	case StateDispatching:
		return "dispatching"
	case StateDone:
		return "done"
	case StateCancelled:
		return "cancelled"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Terminal reports whether no further transition can happen from s.
func (s State) Terminal() bool {
	return s == StateDone || s == StateCancelled || s == StateFailed
}

// Presenter asks the user for a raw menu selection.
type Presenter interface {
	Present(ctx context.Context) (string, error)
}

// Resolver maps a raw selection to a Choice.
type Resolver interface {
	Resolve(ctx context.Context, raw string) (menu.Choice, error)
}

// Dispatcher executes a Choice against the capture file.
type Dispatcher interface {
	Dispatch(ctx context.Context, choice menu.Choice, path string) error
}

// Options wires the stages of a Pipeline.
type Options struct {
	Session      *capture.Session
	Capturer     capture.Invoker
	Presenter    Presenter
	Resolver     Resolver
	Dispatcher   Dispatcher
	SelectRegion bool
	Delay        time.Duration
}

// Pipeline runs capture, menu, resolution and dispatch exactly once.
type Pipeline struct {
	opts  Options
	state State
	trail []State
}

// New returns an idle Pipeline.
func New(opts Options) *Pipeline {
	return &Pipeline{opts: opts, state: StateIdle, trail: []State{StateIdle}}
}

// State is the current stage.
func (p *Pipeline) State() State { return p.state }

// Trail lists every state entered so far, starting with StateIdle.
func (p *Pipeline) Trail() []State { return append([]State(nil), p.trail...) }

// Run executes the pipeline. Any stage error ends the run in StateFailed, or
// StateCancelled when the user dismissed a dialog or the context was
// cancelled. The error is returned either way.
func (p *Pipeline) Run(ctx context.Context) error {
	if p.state != StateIdle {
		return apperr.Newf(apperr.KindConfig, "pipeline", "run called in state %s", p.state)
	}
	session := p.opts.Session
	if err := session.Prepare(); err != nil {
		return p.fail(err)
	}
	defer func() {
		if err := session.Close(); err != nil {
			logger.Named("pipeline").Warn().Err(err).Str("path", session.Path()).Msg("capture file not removed")
		}
	}()

	p.enter(StateCapturing)
	req := capture.Request{
		Path:         session.Path(),
		SelectRegion: p.opts.SelectRegion,
		Delay:        p.opts.Delay,
	}
	if err := p.opts.Capturer.Capture(ctx, req); err != nil {
		return p.fail(err)
	}

	p.enter(StateAwaitingChoice)
	raw, err := p.opts.Presenter.Present(ctx)
	if err != nil {
		return p.fail(err)
	}

	p.enter(StateResolving)
	choice, err := p.opts.Resolver.Resolve(ctx, raw)
	if err != nil {
		return p.fail(err)
	}

	p.enter(StateDispatching)
	if choice.Action == menu.ActionOpenWith {
		session.Keep()
	}
	if err := p.opts.Dispatcher.Dispatch(ctx, choice, session.Path()); err != nil {
		return p.fail(err)
	}
	p.enter(StateDone)
	return nil
}

func (p *Pipeline) enter(s State) {
	logger.Named("pipeline").Debug().Str("from", p.state.String()).Str("to", s.String()).Msg("transition")
	p.state = s
	p.trail = append(p.trail, s)
}

func (p *Pipeline) fail(err error) error {
	if apperr.IsCancelled(err) {
		p.enter(StateCancelled)
	} else {
		p.enter(StateFailed)
	}
	return err
}
