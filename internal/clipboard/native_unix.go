//go:build (linux || freebsd || openbsd || netbsd || dragonfly) && cgo

package clipboard

import (
	"context"
	"errors"
	"os"
	"sync"

	"golang.design/x/clipboard"

	"github.com/example/rscrot/internal/apperr"
)

var (
	initOnce     sync.Once
	initErr      error
	errNoDisplay = errors.New("clipboard initialization requires DISPLAY or WAYLAND_DISPLAY")
)

func ensureInit() error {
	initOnce.Do(func() {
		if os.Getenv("DISPLAY") == "" && os.Getenv("WAYLAND_DISPLAY") == "" {
			initErr = errNoDisplay
			return
		}
		initErr = clipboard.Init()
	})
	if initErr != nil {
		return apperr.Wrap(initErr, apperr.KindSpawn, "clipboard", "init")
	}
	return nil
}

// native owns the X11 selection from inside this process. The content is
// lost when the process exits.
type native struct{}

func (native) WriteText(_ context.Context, text string) error {
	if err := ensureInit(); err != nil {
		return err
	}
	clipboard.Write(clipboard.FmtText, []byte(text))
	return nil
}

// WriteData supports image/png only, the one image format the library serves.
func (native) WriteData(_ context.Context, data []byte, mime string) error {
	if mime != MIMEPNG {
		return apperr.Newf(apperr.KindConfig, "clipboard", "native clipboard cannot serve %s", mime)
	}
	if err := ensureInit(); err != nil {
		return err
	}
	clipboard.Write(clipboard.FmtImage, data)
	return nil
}

func (native) Persistent() bool { return false }
