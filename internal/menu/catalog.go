// Package menu builds the post-capture action catalog, presents it through a
// dialog tool and resolves the selection back to a Choice.
//
// The catalog is the only place labels are defined. Both the menu rows and the
// resolver lookups come from the same Catalog value, so an action cannot be
// offered without being resolvable.
package menu

import (
	"strings"

	"github.com/example/rscrot/internal/apperr"
)

// Action identifies a post-capture action.
type Action uint8

const (
	ActionUpload Action = iota + 1
	ActionSaveAs
	ActionCopyToClipboard
	ActionOpenWith
)

func (a Action) String() string {
	switch a {
	case ActionUpload:
		return "upload"
	case ActionSaveAs:
		return "save-as"
	case ActionCopyToClipboard:
		return "copy-to-clipboard"
	case ActionOpenWith:
		return "open-with"
	default:
		return "unknown"
	}
}

// Menu labels.
const (
	LabelUpload    = "Upload to imgur.com"
	LabelSaveAs    = "Save as..."
	LabelCopy      = "Copy to clipboard"
	openWithPrefix = "Open with "
)

// OpenWithLabel returns the label offered for viewer.
func OpenWithLabel(viewer string) string {
	return openWithPrefix + viewer
}

// Entry is one selectable row.
type Entry struct {
	Label  string
	Action Action
	Viewer string
}

// Choice builds the Choice this entry stands for. SaveAs entries carry no
// destination; the resolver fills it in.
func (e Entry) Choice() Choice {
	return Choice{Action: e.Action, Viewer: e.Viewer}
}

// Options are the configuration inputs to the catalog.
type Options struct {
	EnableUpload bool
	Viewers      []string
}

// Catalog is the ordered, immutable action table for one run.
type Catalog struct {
	entries []Entry
	byLabel map[string]Entry
}

// NewCatalog builds the catalog: upload (when enabled), copy, save, then one
// open-with entry per viewer in configuration order. Viewer names must be
// unique and non-empty; see NormalizeViewers.
func NewCatalog(opts Options) (*Catalog, error) {
	var entries []Entry
	if opts.EnableUpload {
		entries = append(entries, Entry{Label: LabelUpload, Action: ActionUpload})
	}
	entries = append(entries,
		Entry{Label: LabelCopy, Action: ActionCopyToClipboard},
		Entry{Label: LabelSaveAs, Action: ActionSaveAs},
	)
	for _, v := range opts.Viewers {
		entries = append(entries, Entry{Label: OpenWithLabel(v), Action: ActionOpenWith, Viewer: v})
	}

	c := &Catalog{entries: entries, byLabel: make(map[string]Entry, len(entries))}
	for _, e := range entries {
		if strings.TrimSpace(e.Label) == "" || strings.ContainsAny(e.Label, "\r\n") {
			return nil, apperr.Newf(apperr.KindConfig, "menu", "invalid menu label %q", e.Label)
		}
		if _, dup := c.byLabel[e.Label]; dup {
			return nil, apperr.Newf(apperr.KindConfig, "menu", "duplicate menu label %q", e.Label)
		}
		c.byLabel[e.Label] = e
	}
	return c, nil
}

// Entries returns a copy of the rows in menu order.
func (c *Catalog) Entries() []Entry {
	return append([]Entry(nil), c.entries...)
}

// Labels returns the row labels in menu order.
func (c *Catalog) Labels() []string {
	labels := make([]string, len(c.entries))
	for i, e := range c.entries {
		labels[i] = e.Label
	}
	return labels
}

// Lookup finds the entry for an exact label.
func (c *Catalog) Lookup(label string) (Entry, bool) {
	e, ok := c.byLabel[label]
	return e, ok
}

// NormalizeViewers trims viewer names, drops duplicates keeping the first
// occurrence and rejects empty names. It returns the dropped duplicates.
func NormalizeViewers(viewers []string) ([]string, []string, error) {
	seen := make(map[string]bool, len(viewers))
	var out, dropped []string
	for _, v := range viewers {
		v = strings.TrimSpace(v)
		if v == "" {
			return nil, nil, apperr.New(apperr.KindConfig, "viewer", "viewer name must not be empty")
		}
		if seen[v] {
			dropped = append(dropped, v)
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out, dropped, nil
}
