//go:build !(linux || freebsd || openbsd || netbsd || dragonfly)

package capture

import (
	"context"

	"github.com/example/rscrot/internal/apperr"
)

type portalInvoker struct{}

func (portalInvoker) Capture(context.Context, Request) error {
	return apperr.New(apperr.KindSpawn, "portal", "portal screenshot is not supported on this platform")
}
