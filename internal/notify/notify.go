package notify

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/example/rscrot/internal/logger"
	"github.com/example/rscrot/internal/platform"
)

// Event identifies a notification trigger.
type Event string

const (
	// EventUpload fires when an upload returned a link.
	EventUpload Event = "upload"
	// EventUploadNoLink fires when an upload succeeded without a link.
	EventUploadNoLink Event = "upload-nolink"
	// EventUploadFailed fires when an upload failed.
	EventUploadFailed Event = "upload-failed"
	// EventSave fires when the capture was saved to disk.
	EventSave Event = "save"
	// EventCopy fires when the capture was copied to the clipboard.
	EventCopy Event = "copy"
)

// EventPreference describes formatting for a notification event. The first
// %s in Template is replaced by the event detail; nothing else is expanded.
type EventPreference struct {
	Summary  string
	Template string
}

// Preferences describes notification behaviour loaded from configuration.
type Preferences struct {
	Events map[Event]EventPreference
}

// DefaultPreferences returns the default notification settings.
func DefaultPreferences() Preferences {
	return Preferences{
		Events: map[Event]EventPreference{
			EventUpload:       {Summary: "Success:", Template: "Uploaded to %s"},
			EventUploadNoLink: {Summary: "Success:", Template: "Upload finished but no link was returned"},
			EventUploadFailed: {Summary: "Error:", Template: "Upload failed: %s"},
			EventSave:         {Summary: "Saved", Template: "Saved %s"},
			EventCopy:         {Summary: "Copied", Template: "Copied %s to clipboard"},
		},
	}
}

// LoadPreferences applies RSCROT_NOTIFY_*_TEXT overrides to the defaults.
func LoadPreferences() Preferences {
	prefs := DefaultPreferences()
	apply := func(key string, event Event) {
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			eventPrefs := prefs.Events[event]
			eventPrefs.Template = v
			prefs.Events[event] = eventPrefs
		}
	}
	apply("RSCROT_NOTIFY_UPLOAD_TEXT", EventUpload)
	apply("RSCROT_NOTIFY_NOLINK_TEXT", EventUploadNoLink)
	apply("RSCROT_NOTIFY_FAILED_TEXT", EventUploadFailed)
	apply("RSCROT_NOTIFY_SAVE_TEXT", EventSave)
	apply("RSCROT_NOTIFY_COPY_TEXT", EventCopy)
	return prefs
}

var send = platform.Notify

// Notifier sends desktop notifications. Delivery is best effort: failures
// are logged as warnings and never returned.
type Notifier struct {
	prefs   Preferences
	enabled map[Event]bool
}

// New creates a new Notifier using the provided preferences. Upload events
// start enabled, save and copy events start disabled.
func New(prefs Preferences) *Notifier {
	cloned := Preferences{Events: make(map[Event]EventPreference, len(prefs.Events))}
	for k, v := range prefs.Events {
		cloned.Events[k] = v
	}
	return &Notifier{prefs: cloned, enabled: map[Event]bool{
		EventUpload:       true,
		EventUploadNoLink: true,
		EventUploadFailed: true,
	}}
}

// Enable toggles the notifier for the provided event.
func (n *Notifier) Enable(event Event, enabled bool) {
	if n == nil {
		return
	}
	if n.enabled == nil {
		n.enabled = make(map[Event]bool)
	}
	n.enabled[event] = enabled
}

// EnableUpload toggles all three upload events.
func (n *Notifier) EnableUpload(enabled bool) {
	n.Enable(EventUpload, enabled)
	n.Enable(EventUploadNoLink, enabled)
	n.Enable(EventUploadFailed, enabled)
}

// Uploaded reports a successful upload with its link.
func (n *Notifier) Uploaded(link string) {
	n.dispatch(EventUpload, link, platform.Options{})
}

// UploadedNoLink reports an upload that returned no link.
func (n *Notifier) UploadedNoLink() {
	n.dispatch(EventUploadNoLink, "", platform.Options{})
}

// UploadFailed reports an upload error.
func (n *Notifier) UploadFailed(err error) {
	if err == nil {
		return
	}
	n.dispatch(EventUploadFailed, err.Error(), platform.Options{Urgent: true})
}

// Save reports a saved capture, using the file as the notification icon.
func (n *Notifier) Save(path string) {
	if !n.enabledFor(EventSave) {
		return
	}
	detail := strings.TrimSpace(path)
	opts := platform.Options{}
	if abs, err := filepath.Abs(path); err == nil {
		detail = abs
		if _, statErr := os.Stat(abs); statErr == nil {
			opts.IconPath = abs
		}
	}
	n.dispatch(EventSave, detail, opts)
}

// Copy reports a clipboard copy.
func (n *Notifier) Copy(detail string) {
	if strings.TrimSpace(detail) == "" {
		detail = "image"
	}
	n.dispatch(EventCopy, detail, platform.Options{})
}

func (n *Notifier) enabledFor(event Event) bool {
	if n == nil || n.enabled == nil {
		return false
	}
	return n.enabled[event]
}

func (n *Notifier) dispatch(event Event, detail string, opts platform.Options) {
	if !n.enabledFor(event) {
		return
	}
	pref, ok := n.prefs.Events[event]
	if !ok {
		return
	}
	body := strings.TrimSpace(strings.Replace(pref.Template, "%s", strings.TrimSpace(detail), 1))
	if body == "" && pref.Summary == "" {
		return
	}
	log := logger.Named("notify")
	if err := send(pref.Summary, body, opts); err != nil {
		log.Warn().Err(err).Str("event", string(event)).Msg("notification not delivered")
		return
	}
	log.Debug().Str("event", string(event)).Str("body", body).Msg("notification sent")
}
