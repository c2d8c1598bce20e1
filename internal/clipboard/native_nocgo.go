//go:build (linux || freebsd || openbsd || netbsd || dragonfly) && !cgo

package clipboard

import (
	"context"
	"errors"

	"github.com/example/rscrot/internal/apperr"
)

var errCGODisabled = errors.New("native clipboard requires cgo support; use xclip or wl-copy")

type native struct{}

func (native) WriteText(context.Context, string) error {
	return apperr.Wrap(errCGODisabled, apperr.KindSpawn, "clipboard", "")
}

func (native) WriteData(context.Context, []byte, string) error {
	return apperr.Wrap(errCGODisabled, apperr.KindSpawn, "clipboard", "")
}

func (native) Persistent() bool { return false }
