//go:build !(linux || freebsd || openbsd || netbsd || dragonfly)

package clipboard

import (
	"context"

	"github.com/example/rscrot/internal/apperr"
)

type native struct{}

func (native) WriteText(context.Context, string) error {
	return apperr.New(apperr.KindSpawn, "clipboard", "native clipboard is not supported on this platform")
}

func (native) WriteData(context.Context, []byte, string) error {
	return apperr.New(apperr.KindSpawn, "clipboard", "native clipboard is not supported on this platform")
}

func (native) Persistent() bool { return false }
