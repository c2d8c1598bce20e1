// Package dispatch executes the action the user picked for a capture.
package dispatch

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/example/rscrot/internal/apperr"
	"github.com/example/rscrot/internal/clipboard"
	"github.com/example/rscrot/internal/logger"
	"github.com/example/rscrot/internal/menu"
	"github.com/example/rscrot/internal/tool"
	"github.com/example/rscrot/internal/upload"
)

// DefaultGrace is how long a process-owned clipboard is held after a write so
// a clipboard manager can take over the content.
const DefaultGrace = 20 * time.Second

// Uploader publishes image bytes.
type Uploader interface {
	Upload(ctx context.Context, data []byte) (upload.Result, error)
}

// Notifier receives outcome notifications. Implementations must not fail.
type Notifier interface {
	Uploaded(link string)
	UploadedNoLink()
	UploadFailed(err error)
	Save(path string)
	Copy(detail string)
}

// Options wires a Dispatcher. Uploader may be nil when upload is disabled.
type Options struct {
	Uploader  Uploader
	Clipboard clipboard.Clipboard
	Notifier  Notifier
	Runner    tool.Runner
	Grace     time.Duration
	Stdout    io.Writer
}

// Dispatcher runs exactly one action per call.
type Dispatcher struct {
	opts Options
}

var sleep = time.Sleep

// New returns a Dispatcher for opts.
func New(opts Options) *Dispatcher {
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Notifier == nil {
		opts.Notifier = nopNotifier{}
	}
	return &Dispatcher{opts: opts}
}

// Dispatch executes choice against the capture at path.
func (d *Dispatcher) Dispatch(ctx context.Context, choice menu.Choice, path string) error {
	log := logger.Named("dispatch")
	log.Info().Str("choice", choice.String()).Str("path", path).Msg("dispatching")
	switch choice.Action {
	case menu.ActionUpload:
		return d.upload(ctx, path)
	case menu.ActionSaveAs:
		return d.saveAs(path, choice.Destination)
	case menu.ActionOpenWith:
		return d.openWith(choice.Viewer, path)
	case menu.ActionCopyToClipboard:
		return d.copyImage(ctx, path)
	default:
		return apperr.Newf(apperr.KindParse, "dispatch", "unsupported choice %s", choice)
	}
}

func (d *Dispatcher) upload(ctx context.Context, path string) error {
	if d.opts.Uploader == nil {
		return apperr.New(apperr.KindConfig, "upload", "upload is not enabled; pass --imgur CLIENT_ID")
	}
	data, err := readCapture(path)
	if err != nil {
		return err
	}
	res, err := d.opts.Uploader.Upload(ctx, data)
	if err != nil {
		d.opts.Notifier.UploadFailed(err)
		return fmt.Errorf("upload: %w", err)
	}
	if res.Link == "" {
		logger.Named("dispatch").Warn().Str("id", res.ID).Msg("upload returned no link")
		d.opts.Notifier.UploadedNoLink()
		return nil
	}
	fmt.Fprintln(d.opts.Stdout, res.Link)
	if err := d.opts.Clipboard.WriteText(ctx, res.Link); err != nil {
		return fmt.Errorf("copy link: %w", err)
	}
	d.opts.Notifier.Uploaded(res.Link)
	d.hold()
	return nil
}

func (d *Dispatcher) saveAs(path, destination string) error {
	dest, err := expandHome(strings.TrimSpace(destination))
	if err != nil {
		return err
	}
	if dest == "" {
		return apperr.New(apperr.KindParse, "save", "empty destination")
	}
	if err := copyFile(path, dest); err != nil {
		return err
	}
	logger.Named("dispatch").Info().Str("dest", dest).Msg("saved capture")
	d.opts.Notifier.Save(dest)
	return nil
}

func (d *Dispatcher) openWith(viewer, path string) error {
	if err := d.opts.Runner.Start(tool.Command{Name: viewer, Args: []string{path}}); err != nil {
		return fmt.Errorf("open with %s: %w", viewer, err)
	}
	return nil
}

func (d *Dispatcher) copyImage(ctx context.Context, path string) error {
	data, err := readCapture(path)
	if err != nil {
		return err
	}
	if err := d.opts.Clipboard.WriteData(ctx, data, clipboard.MIMEPNG); err != nil {
		return fmt.Errorf("copy image: %w", err)
	}
	d.opts.Notifier.Copy("image")
	d.hold()
	return nil
}

// hold keeps the process alive for the grace period when the clipboard
// content disappears with the process. The wait is not interruptible.
func (d *Dispatcher) hold() {
	if d.opts.Clipboard.Persistent() || d.opts.Grace <= 0 {
		return
	}
	logger.Named("dispatch").Info().Dur("grace", d.opts.Grace).Msg("holding clipboard for clipboard manager")
	sleep(d.opts.Grace)
}

func readCapture(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, apperr.Wrap(err, apperr.KindIO, "read capture", "")
	}
	return data, nil
}

func copyFile(src, dst string) (err error) {
	in, err := os.Open(src)
	if err != nil {
		return apperr.Wrap(err, apperr.KindIO, "save", "open capture")
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return apperr.Wrap(err, apperr.KindIO, "save", "create destination")
	}
	defer func() {
		if cerr := out.Close(); cerr != nil && err == nil {
			err = apperr.Wrap(cerr, apperr.KindIO, "save", "close destination")
		}
	}()
	if _, err := io.Copy(out, in); err != nil {
		return apperr.Wrap(err, apperr.KindIO, "save", "copy capture")
	}
	return nil
}

// expandHome resolves a leading "~/" typed into a dmenu prompt.
func expandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", apperr.Wrap(err, apperr.KindIO, "save", "resolve home directory")
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}

type nopNotifier struct{}

func (nopNotifier) Uploaded(string)    {}
func (nopNotifier) UploadedNoLink()    {}
func (nopNotifier) UploadFailed(error) {}
func (nopNotifier) Save(string)        {}
func (nopNotifier) Copy(string)        {}
