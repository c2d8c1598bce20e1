package capture

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/example/rscrot/internal/apperr"
	"github.com/example/rscrot/internal/logger"
	"github.com/example/rscrot/internal/tool"
)

// Backend names a capture implementation.
type Backend string

const (
	BackendScrot  Backend = "scrot"
	BackendMaim   Backend = "maim"
	BackendPortal Backend = "portal"
)

// ParseBackend validates a backend name.
func ParseBackend(s string) (Backend, error) {
	switch b := Backend(strings.ToLower(strings.TrimSpace(s))); b {
	case BackendScrot, BackendMaim, BackendPortal:
		return b, nil
	case "":
		return BackendScrot, nil
	default:
		return "", apperr.Newf(apperr.KindConfig, "capture", "unknown capture tool %q (want scrot, maim or portal)", s)
	}
}

// Request describes one capture. It is built once per run and never modified.
type Request struct {
	Path         string
	SelectRegion bool
	Delay        time.Duration
}

// Invoker produces the capture file described by a Request.
type Invoker interface {
	Capture(ctx context.Context, req Request) error
}

// New returns the Invoker for backend.
func New(backend Backend, runner tool.Runner) Invoker {
	if backend == BackendPortal {
		return portalInvoker{}
	}
	return toolInvoker{name: string(backend), runner: runner}
}

// toolInvoker drives command line capture tools taking "[-s] <path>".
type toolInvoker struct {
	name   string
	runner tool.Runner
}

func (t toolInvoker) Capture(ctx context.Context, req Request) error {
	if err := waitDelay(ctx, req.Delay); err != nil {
		return err
	}
	var args []string
	if req.SelectRegion {
		args = append(args, "-s")
	}
	args = append(args, req.Path)
	cmd := tool.Command{Name: t.name, Args: args}
	logger.Named("capture").Debug().Str("cmd", cmd.String()).Msg("running capture tool")
	if err := t.runner.Run(ctx, cmd); err != nil {
		return fmt.Errorf("capture: %w", err)
	}
	return nil
}

var after = time.After

// waitDelay blocks for d. Only run cancellation ends the wait early.
func waitDelay(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	logger.Named("capture").Info().Dur("delay", d).Msg("waiting before capture")
	select {
	case <-after(d):
		return nil
	case <-ctx.Done():
		return apperr.Wrap(ctx.Err(), apperr.KindCancelled, "capture", "delay interrupted")
	}
}
