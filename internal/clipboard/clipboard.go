// Package clipboard places uploaded links and captured images on the system
// clipboard, either through a helper tool or in process.
package clipboard

import (
	"context"
	"fmt"
	"strings"

	"github.com/example/rscrot/internal/apperr"
	"github.com/example/rscrot/internal/tool"
)

// MIMEPNG is the target type used for captured images.
const MIMEPNG = "image/png"

// Backend names a clipboard implementation.
type Backend string

const (
	BackendXclip  Backend = "xclip"
	BackendWlCopy Backend = "wl-copy"
	BackendNative Backend = "native"
)

// ParseBackend validates a backend name.
func ParseBackend(s string) (Backend, error) {
	switch b := Backend(strings.ToLower(strings.TrimSpace(s))); b {
	case BackendXclip, BackendWlCopy, BackendNative:
		return b, nil
	case "":
		return BackendXclip, nil
	default:
		return "", apperr.Newf(apperr.KindConfig, "clipboard", "unknown clipboard backend %q (want xclip, wl-copy or native)", s)
	}
}

// Clipboard writes text or typed binary data to the clipboard.
type Clipboard interface {
	WriteText(ctx context.Context, text string) error
	WriteData(ctx context.Context, data []byte, mime string) error
	// Persistent reports whether the content outlives this process.
	Persistent() bool
}

// New returns the Clipboard for backend.
func New(backend Backend, runner tool.Runner) (Clipboard, error) {
	switch backend {
	case BackendXclip, "":
		return &helper{name: "xclip", runner: runner, base: []string{"-selection", "clipboard"}, typeFlag: "-t"}, nil
	case BackendWlCopy:
		return &helper{name: "wl-copy", runner: runner, typeFlag: "--type"}, nil
	case BackendNative:
		return native{}, nil
	default:
		return nil, apperr.Newf(apperr.KindConfig, "clipboard", "unknown clipboard backend %q", backend)
	}
}

// helper pipes data into a clipboard tool. xclip and wl-copy fork a process
// that keeps serving the selection after we exit.
type helper struct {
	name     string
	base     []string
	typeFlag string
	runner   tool.Runner
}

func (h *helper) WriteText(ctx context.Context, text string) error {
	return h.write(ctx, []byte(text), "")
}

func (h *helper) WriteData(ctx context.Context, data []byte, mime string) error {
	return h.write(ctx, data, mime)
}

func (h *helper) Persistent() bool { return true }

func (h *helper) write(ctx context.Context, data []byte, mime string) error {
	args := append([]string(nil), h.base...)
	if mime != "" {
		args = append(args, h.typeFlag, mime)
	}
	if err := h.runner.Run(ctx, tool.Command{Name: h.name, Args: args, Stdin: data}); err != nil {
		return fmt.Errorf("clipboard: %w", err)
	}
	return nil
}
