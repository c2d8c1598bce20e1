package menu

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/example/rscrot/internal/apperr"
	"github.com/example/rscrot/internal/logger"
)

// Title is the action dialog window title.
const Title = "Choose Action"

// ErrUnknownSelection is wrapped by every unresolvable selection.
var ErrUnknownSelection = errors.New("unknown selection")

// Presenter shows the catalog through a Dialog.
type Presenter struct {
	catalog *Catalog
	dialog  Dialog
}

// NewPresenter returns a Presenter for catalog.
func NewPresenter(catalog *Catalog, dialog Dialog) *Presenter {
	return &Presenter{catalog: catalog, dialog: dialog}
}

// Present blocks until the user picks a row and returns the raw selection,
// trailing newline included.
func (p *Presenter) Present(ctx context.Context) (string, error) {
	labels := p.catalog.Labels()
	logger.Named("menu").Debug().Strs("labels", labels).Msg("presenting menu")
	raw, err := p.dialog.Choose(ctx, Title, labels)
	if err != nil {
		return "", fmt.Errorf("menu: %w", err)
	}
	return raw, nil
}

// Match maps a raw selection to its catalog entry. It strips one trailing
// newline and otherwise requires an exact label.
func (c *Catalog) Match(raw string) (Entry, error) {
	if e, ok := c.Lookup(strings.TrimSuffix(raw, "\n")); ok {
		return e, nil
	}
	return Entry{}, &apperr.Error{
		Kind: apperr.KindParse,
		Op:   "menu",
		Msg:  fmt.Sprintf("selection %q", raw),
		Err:  ErrUnknownSelection,
	}
}

// Resolver turns raw selections into Choices, asking for a save path when the
// selection needs one.
type Resolver struct {
	catalog *Catalog
	dialog  Dialog
}

// NewResolver returns a Resolver over catalog.
func NewResolver(catalog *Catalog, dialog Dialog) *Resolver {
	return &Resolver{catalog: catalog, dialog: dialog}
}

// Resolve maps raw to a Choice. SaveAs runs the save picker once; its errors
// are returned unchanged.
func (r *Resolver) Resolve(ctx context.Context, raw string) (Choice, error) {
	entry, err := r.catalog.Match(raw)
	if err != nil {
		return Choice{}, err
	}
	choice := entry.Choice()
	if entry.Action != ActionSaveAs {
		return choice, nil
	}
	out, err := r.dialog.SavePath(ctx)
	if err != nil {
		return Choice{}, fmt.Errorf("save picker: %w", err)
	}
	dest := strings.TrimSpace(out)
	if dest == "" {
		return Choice{}, apperr.New(apperr.KindParse, "save picker", "empty destination")
	}
	choice.Destination = dest
	return choice, nil
}
