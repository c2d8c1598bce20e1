//go:build linux || freebsd || openbsd || netbsd || dragonfly

package capture

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"

	"github.com/godbus/dbus/v5"
	"github.com/google/uuid"

	"github.com/example/rscrot/internal/apperr"
	"github.com/example/rscrot/internal/logger"
)

const (
	portalDest      = "org.freedesktop.portal.Desktop"
	portalPath      = "/org/freedesktop/portal/desktop"
	portalMethod    = "org.freedesktop.portal.Screenshot.Screenshot"
	portalResponse  = "org.freedesktop.portal.Request.Response"
	portalCancelled = uint32(1)
)

var portalHandleToken = newPortalHandleToken

// portalInvoker asks the XDG desktop portal for a screenshot and copies the
// resulting file to the request path.
type portalInvoker struct{}

func (portalInvoker) Capture(ctx context.Context, req Request) error {
	if err := waitDelay(ctx, req.Delay); err != nil {
		return err
	}
	src, err := portalScreenshot(ctx, req.SelectRegion)
	if err != nil {
		return err
	}
	return moveCapture(src, req.Path)
}

func portalScreenshot(ctx context.Context, interactive bool) (string, error) {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return "", apperr.Wrap(err, apperr.KindSpawn, "portal", "dbus connect")
	}
	defer func() {
		if cerr := conn.Close(); cerr != nil {
			logger.Named("capture").Warn().Err(cerr).Msg("dbus close")
		}
	}()

	obj := conn.Object(portalDest, portalPath)
	var handle dbus.ObjectPath
	call := obj.CallWithContext(ctx, portalMethod, 0, "", portalScreenshotOptions(interactive))
	if call.Err != nil {
		return "", apperr.Wrap(call.Err, apperr.KindSpawn, "portal", "screenshot call")
	}
	if err := call.Store(&handle); err != nil {
		return "", apperr.Wrap(err, apperr.KindParse, "portal", "screenshot response")
	}

	sigc := make(chan *dbus.Signal, 1)
	conn.Signal(sigc)
	rule := fmt.Sprintf("type='signal',interface='org.freedesktop.portal.Request',member='Response',path='%s'", handle)
	if err := conn.BusObject().Call("org.freedesktop.DBus.AddMatch", 0, rule).Err; err != nil {
		return "", apperr.Wrap(err, apperr.KindSpawn, "portal", "subscribe")
	}
	defer conn.BusObject().Call("org.freedesktop.DBus.RemoveMatch", 0, rule)

	for {
		select {
		case <-ctx.Done():
			return "", apperr.Wrap(ctx.Err(), apperr.KindCancelled, "portal", "interrupted")
		case sig, ok := <-sigc:
			if !ok {
				return "", apperr.New(apperr.KindSpawn, "portal", "dbus connection closed")
			}
			if sig.Path != handle || sig.Name != portalResponse {
				continue
			}
			return portalResult(sig.Body)
		}
	}
}

// portalResult decodes the (response code, results) body of Request.Response.
func portalResult(body []any) (string, error) {
	if len(body) < 2 {
		return "", apperr.New(apperr.KindParse, "portal", "response missing results")
	}
	code, _ := body[0].(uint32)
	switch {
	case code == portalCancelled:
		return "", apperr.Cancelled("portal")
	case code != 0:
		return "", apperr.ToolExit("portal", int(code))
	}
	res, ok := body[1].(map[string]dbus.Variant)
	if !ok {
		return "", apperr.New(apperr.KindParse, "portal", "response results have unexpected type")
	}
	uriVar, ok := res["uri"]
	if !ok {
		return "", apperr.New(apperr.KindParse, "portal", "response missing image uri")
	}
	raw, _ := uriVar.Value().(string)
	u, err := url.Parse(raw)
	if err != nil || u.Scheme != "file" || u.Path == "" {
		return "", apperr.Newf(apperr.KindParse, "portal", "unexpected image uri %q", raw)
	}
	return u.Path, nil
}

// newPortalHandleToken returns a token usable as an object path element,
// which allows only letters, digits and underscores.
func newPortalHandleToken() string {
	return "rscrot_" + strings.ReplaceAll(uuid.NewString(), "-", "")
}

func portalScreenshotOptions(interactive bool) map[string]dbus.Variant {
	return map[string]dbus.Variant{
		"interactive":  dbus.MakeVariant(interactive),
		"handle_token": dbus.MakeVariant(portalHandleToken()),
		"modal":        dbus.MakeVariant(interactive),
	}
}

// moveCapture copies the portal's file to dst and removes the original.
func moveCapture(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return apperr.Wrap(err, apperr.KindIO, "portal", "open portal capture")
	}
	defer func() {
		if cerr := in.Close(); cerr != nil {
			logger.Named("capture").Warn().Err(cerr).Str("path", src).Msg("close")
		}
		if err := os.Remove(src); err != nil && !errors.Is(err, os.ErrNotExist) {
			logger.Named("capture").Warn().Err(err).Str("path", src).Msg("remove portal capture")
		}
	}()
	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		return apperr.Wrap(err, apperr.KindIO, "portal", "create capture")
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return apperr.Wrap(err, apperr.KindIO, "portal", "copy capture")
	}
	return apperr.Wrap(out.Close(), apperr.KindIO, "portal", "close capture")
}
