package main

import (
	"io"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/example/rscrot/internal/apperr"
	"github.com/example/rscrot/internal/capture"
	"github.com/example/rscrot/internal/clipboard"
	"github.com/example/rscrot/internal/config"
	"github.com/example/rscrot/internal/dispatch"
	"github.com/example/rscrot/internal/logger"
	"github.com/example/rscrot/internal/menu"
	"github.com/example/rscrot/internal/notify"
	"github.com/example/rscrot/internal/pipeline"
	"github.com/example/rscrot/internal/upload"
)

type root struct {
	env     *environment
	config  *config.Config
	loadErr error
}

// newRoot loads the rc file and the environment. Flags are bound straight
// onto the result, so precedence is CLI > Env > Config > Default.
func newRoot(env *environment) *root {
	r := &root{env: env}
	cfg, err := env.loader.Load()
	if err != nil {
		r.loadErr = apperr.Wrap(err, apperr.KindConfig, "config", "load rc file")
		cfg = config.New()
	}
	if err := config.LoadEnvFile(env.envFile); err != nil && r.loadErr == nil {
		r.loadErr = apperr.Wrap(err, apperr.KindConfig, "config", "load env file")
	}
	if err := config.ApplyEnv(cfg, env.getenv); err != nil && r.loadErr == nil {
		r.loadErr = apperr.Wrap(err, apperr.KindConfig, "config", "environment")
	}
	r.config = cfg
	return r
}

func newRootCmd(env *environment) *cobra.Command {
	r := newRoot(env)
	cmd := &cobra.Command{
		Use:   "rscrot",
		Short: "Capture the screen and choose what to do with it",
		Long: `rscrot captures the screen (or a selected region) to a temporary file and
asks which action to take next:

  Upload to imgur.com   upload anonymously, copy the link and print it
  Copy to clipboard     place the PNG on the clipboard
  Save as...            pick a destination and copy the file there
  Open with VIEWER      launch a configured image viewer on the file

Settings are read from ~/.config/rscrot/config.rc, then RSCROT_* environment
variables, then the flags below.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return r.run(cmd)
		},
	}
	cmd.SetOut(env.stdout)
	cmd.SetErr(env.stderr)
	r.bindFlags(cmd.PersistentFlags())
	cmd.AddCommand(newConfigCmd(r), newVersionCmd())
	return cmd
}

func (r *root) bindFlags(fs *pflag.FlagSet) {
	cfg := r.config
	fs.BoolVarP(&cfg.Select, "select", "s", cfg.Select, "select a window or region interactively")
	fs.StringVar(&cfg.ImgurClientID, "imgur", cfg.ImgurClientID, "imgur application client id; enables the upload action")
	fs.StringArrayVar(&cfg.Viewers, "viewer", cfg.Viewers, "image viewer offered as \"Open with VIEWER\" (repeatable)")
	fs.VarP(&timerValue{n: &cfg.Timer}, "timer", "t", "wait this many seconds before capturing")
	fs.StringVar(&cfg.CaptureTool, "capture-tool", cfg.CaptureTool, "capture backend: scrot, maim or portal")
	fs.StringVar(&cfg.Dialog, "dialog", cfg.Dialog, "dialog backend: zenity or dmenu")
	fs.StringVar(&cfg.DmenuCommand, "dmenu-command", cfg.DmenuCommand, "picker command for the dmenu backend (default \""+menu.DefaultDmenuCommand+"\")")
	fs.StringVar(&cfg.Clipboard, "clipboard", cfg.Clipboard, "clipboard backend: xclip, wl-copy or native")
	fs.DurationVar(&cfg.ClipboardGrace, "clipboard-grace", cfg.ClipboardGrace, "how long the native clipboard is held after a copy")
	fs.StringVar(&cfg.Output, "output", cfg.Output, "capture file path (default "+capture.DefaultPath()+")")
	fs.BoolVar(&cfg.Keep, "keep", cfg.Keep, "keep the capture file after the run")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level: trace, debug, info, warn, error or off")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "log format: console or json")
	fs.BoolVar(&cfg.Notify.Upload, "notify-upload", cfg.Notify.Upload, "show a desktop notification for upload results")
	fs.BoolVar(&cfg.Notify.Save, "notify-save", cfg.Notify.Save, "show a desktop notification after saving an image")
	fs.BoolVar(&cfg.Notify.Copy, "notify-copy", cfg.Notify.Copy, "show a desktop notification after copying to the clipboard")
}

func (r *root) initLogger() {
	logger.Init(logger.Options{Level: r.config.LogLevel, Format: r.config.LogFormat, Writer: r.env.stderr})
}

func (r *root) run(cmd *cobra.Command) error {
	if r.loadErr != nil {
		return r.loadErr
	}
	r.initLogger()
	log := logger.Named("cli")

	p, err := r.buildPipeline(cmd.OutOrStdout())
	if err != nil {
		return err
	}
	err = p.Run(cmd.Context())
	if apperr.IsCancelled(err) {
		log.Info().Str("state", p.State().String()).Msg("cancelled, nothing to do")
		return nil
	}
	return err
}

// buildPipeline validates the effective configuration and wires every stage.
// Nothing is executed here.
func (r *root) buildPipeline(stdout io.Writer) (*pipeline.Pipeline, error) {
	cfg := r.config
	log := logger.Named("cli")
	runner := r.env.runner

	viewers, dropped, err := menu.NormalizeViewers(cfg.Viewers)
	if err != nil {
		return nil, err
	}
	for _, v := range dropped {
		log.Warn().Str("viewer", v).Msg("duplicate viewer ignored")
	}

	captureBackend, err := capture.ParseBackend(cfg.CaptureTool)
	if err != nil {
		return nil, err
	}
	dialogBackend, err := menu.ParseDialogBackend(cfg.Dialog)
	if err != nil {
		return nil, err
	}
	clipBackend, err := clipboard.ParseBackend(cfg.Clipboard)
	if err != nil {
		return nil, err
	}

	catalog, err := menu.NewCatalog(menu.Options{EnableUpload: cfg.ImgurClientID != "", Viewers: viewers})
	if err != nil {
		return nil, err
	}
	dialog, err := menu.NewDialog(menu.DialogOptions{
		Backend:      dialogBackend,
		DmenuCommand: cfg.DmenuCommand,
		SaveDir:      cfg.SaveDir,
	}, runner)
	if err != nil {
		return nil, err
	}
	clip, err := clipboard.New(clipBackend, runner)
	if err != nil {
		return nil, err
	}

	notifier := notify.New(notify.LoadPreferences())
	notifier.EnableUpload(cfg.Notify.Upload)
	notifier.Enable(notify.EventSave, cfg.Notify.Save)
	notifier.Enable(notify.EventCopy, cfg.Notify.Copy)

	var uploader dispatch.Uploader
	if cfg.ImgurClientID != "" {
		uploader = upload.New(cfg.ImgurClientID)
	}

	session := capture.NewSession(cfg.Output)
	if cfg.Keep {
		session.Keep()
	}

	log.Debug().
		Str("capture", string(captureBackend)).
		Str("dialog", string(dialogBackend)).
		Str("clipboard", string(clipBackend)).
		Strs("menu", catalog.Labels()).
		Str("path", session.Path()).
		Msg("configured")

	return pipeline.New(pipeline.Options{
		Session:   session,
		Capturer:  capture.New(captureBackend, runner),
		Presenter: menu.NewPresenter(catalog, dialog),
		Resolver:  menu.NewResolver(catalog, dialog),
		Dispatcher: dispatch.New(dispatch.Options{
			Uploader:  uploader,
			Clipboard: clip,
			Notifier:  notifier,
			Runner:    runner,
			Grace:     cfg.ClipboardGrace,
			Stdout:    stdout,
		}),
		SelectRegion: cfg.Select,
		Delay:        time.Duration(cfg.Timer) * time.Second,
	}), nil
}
