package menu

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/rscrot/internal/apperr"
	"github.com/example/rscrot/internal/tool/tooltest"
)

func mustCatalog(t *testing.T, opts Options) *Catalog {
	t.Helper()
	c, err := NewCatalog(opts)
	require.NoError(t, err)
	return c
}

func TestCatalogViewersWithoutUpload(t *testing.T) {
	c := mustCatalog(t, Options{Viewers: []string{"feh", "gimp"}})
	assert.Equal(t, []string{"Copy to clipboard", "Save as...", "Open with feh", "Open with gimp"}, c.Labels())

	fake := &tooltest.Fake{}
	dialog, err := NewDialog(DialogOptions{Backend: DialogZenity}, fake)
	require.NoError(t, err)
	got, err := NewResolver(c, dialog).Resolve(context.Background(), "Open with gimp\n")
	require.NoError(t, err)
	assert.Equal(t, OpenWith("gimp"), got)
	assert.Empty(t, fake.Calls, "open-with needs no secondary dialog")
}

func TestCatalogUploadIffEnabled(t *testing.T) {
	for _, enabled := range []bool{false, true} {
		for _, viewers := range [][]string{nil, {"feh"}, {"feh", "gimp", "eog"}} {
			c := mustCatalog(t, Options{EnableUpload: enabled, Viewers: viewers})
			labels := c.Labels()

			assert.Equal(t, enabled, contains(labels, LabelUpload))
			if enabled {
				assert.Equal(t, LabelUpload, labels[0])
			}

			var opens []string
			for _, l := range labels {
				if strings.HasPrefix(l, "Open with ") {
					opens = append(opens, strings.TrimPrefix(l, "Open with "))
				}
			}
			if len(viewers) == 0 {
				assert.Empty(t, opens)
			} else {
				assert.Equal(t, viewers, opens)
			}
		}
	}
}

func TestEveryLabelResolves(t *testing.T) {
	c := mustCatalog(t, Options{EnableUpload: true, Viewers: []string{"feh", "gimp", "Open with"}})
	for _, e := range c.Entries() {
		fake := (&tooltest.Fake{}).On("zenity", "/tmp/out.png\n", nil)
		dialog, err := NewDialog(DialogOptions{}, fake)
		require.NoError(t, err)

		got, err := NewResolver(c, dialog).Resolve(context.Background(), e.Label+"\n")
		require.NoError(t, err, "label %q", e.Label)
		assert.Equal(t, e.Action, got.Action)
		assert.Equal(t, e.Viewer, got.Viewer)
		if e.Action == ActionSaveAs {
			assert.Equal(t, "/tmp/out.png", got.Destination)
		}
	}
}

func TestUnknownSelection(t *testing.T) {
	c := mustCatalog(t, Options{Viewers: []string{"feh"}})
	for _, raw := range []string{"", "\n", "Open with gimp\n", "Upload to imgur.com\n", "copy to clipboard\n", "Save as...\n\n", " Save as...\n"} {
		_, err := NewResolver(c, nil).Resolve(context.Background(), raw)
		require.Error(t, err, "raw %q", raw)
		assert.True(t, errors.Is(err, ErrUnknownSelection), "raw %q", raw)
		assert.Equal(t, apperr.KindParse, apperr.KindOf(err))
	}
}

func TestMatchIsDeterministic(t *testing.T) {
	c := mustCatalog(t, Options{EnableUpload: true, Viewers: []string{"feh"}})
	for i := 0; i < 3; i++ {
		e, err := c.Match("Open with feh\n")
		require.NoError(t, err)
		assert.Equal(t, Entry{Label: "Open with feh", Action: ActionOpenWith, Viewer: "feh"}, e)

		_, err = c.Match("nope\n")
		assert.ErrorIs(t, err, ErrUnknownSelection)
	}
}

func TestMatchStripsAtMostOneNewline(t *testing.T) {
	c := mustCatalog(t, Options{})
	for _, raw := range []string{"Copy to clipboard\n", "Copy to clipboard"} {
		e, err := c.Match(raw)
		require.NoError(t, err, "raw %q", raw)
		assert.Equal(t, ActionCopyToClipboard, e.Action)
	}
	_, err := c.Match("Copy to clipboard\n\n")
	assert.ErrorIs(t, err, ErrUnknownSelection)
}

func TestSaveAsTrimsDestination(t *testing.T) {
	c := mustCatalog(t, Options{})
	fake := (&tooltest.Fake{}).On("zenity", "/tmp/out.png \n", nil)
	dialog, _ := NewDialog(DialogOptions{Backend: DialogZenity}, fake)

	got, err := NewResolver(c, dialog).Resolve(context.Background(), "Save as...\n")
	require.NoError(t, err)
	assert.Equal(t, SaveAs("/tmp/out.png"), got)
	require.Len(t, fake.Calls, 1)
	assert.Equal(t, []string{"--file-selection", "--save"}, fake.Calls[0].Args)
}

func TestSaveAsPickerFailurePropagates(t *testing.T) {
	c := mustCatalog(t, Options{})

	fake := (&tooltest.Fake{}).On("zenity", "", apperr.ToolExit("zenity", 5))
	dialog, _ := NewDialog(DialogOptions{}, fake)
	_, err := NewResolver(c, dialog).Resolve(context.Background(), "Save as...\n")
	assert.Equal(t, 5, apperr.ExitCode(err))

	fake = (&tooltest.Fake{}).On("zenity", "", apperr.ToolExit("zenity", 1))
	dialog, _ = NewDialog(DialogOptions{}, fake)
	_, err = NewResolver(c, dialog).Resolve(context.Background(), "Save as...\n")
	assert.True(t, apperr.IsCancelled(err))

	fake = (&tooltest.Fake{}).On("zenity", "  \n", nil)
	dialog, _ = NewDialog(DialogOptions{}, fake)
	_, err = NewResolver(c, dialog).Resolve(context.Background(), "Save as...\n")
	assert.Equal(t, apperr.KindParse, apperr.KindOf(err))
}

func TestPresentZenity(t *testing.T) {
	c := mustCatalog(t, Options{EnableUpload: true, Viewers: []string{"feh"}})
	fake := (&tooltest.Fake{}).On("zenity", "Open with feh\n", nil)
	dialog, _ := NewDialog(DialogOptions{Backend: DialogZenity}, fake)

	raw, err := NewPresenter(c, dialog).Present(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Open with feh\n", raw)
	require.Len(t, fake.Calls, 1)
	assert.Equal(t, []string{
		"--list", "--title", "Choose Action", "--column", "Action",
		"Upload to imgur.com", "Copy to clipboard", "Save as...", "Open with feh",
	}, fake.Calls[0].Args)
}

func TestPresentCancelledAndFailed(t *testing.T) {
	c := mustCatalog(t, Options{})

	fake := (&tooltest.Fake{}).On("zenity", "", apperr.ToolExit("zenity", 1))
	dialog, _ := NewDialog(DialogOptions{}, fake)
	_, err := NewPresenter(c, dialog).Present(context.Background())
	assert.ErrorIs(t, err, apperr.ErrCancelled)

	fake = (&tooltest.Fake{}).On("zenity", "", apperr.ToolExit("zenity", 255))
	dialog, _ = NewDialog(DialogOptions{}, fake)
	_, err = NewPresenter(c, dialog).Present(context.Background())
	assert.False(t, apperr.IsCancelled(err))
	assert.Equal(t, 255, apperr.ExitCode(err))

	fake = (&tooltest.Fake{}).On("zenity", "", apperr.New(apperr.KindSpawn, "zenity", "not found"))
	dialog, _ = NewDialog(DialogOptions{}, fake)
	_, err = NewPresenter(c, dialog).Present(context.Background())
	assert.Equal(t, apperr.KindSpawn, apperr.KindOf(err))
}

func TestDmenuFeedsLabelsOnStdin(t *testing.T) {
	c := mustCatalog(t, Options{Viewers: []string{"feh"}})
	fake := (&tooltest.Fake{}).On("wofi", "Copy to clipboard\n", nil).On("wofi", "~/shot.png\n", nil)
	dialog, err := NewDialog(DialogOptions{Backend: DialogDmenu, DmenuCommand: "wofi --dmenu"}, fake)
	require.NoError(t, err)

	raw, err := NewPresenter(c, dialog).Present(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Copy to clipboard\n", raw)
	require.Len(t, fake.Calls, 1)
	assert.Equal(t, []string{"--dmenu"}, fake.Calls[0].Args)
	assert.Equal(t, "Copy to clipboard\nSave as...\nOpen with feh\n", string(fake.Calls[0].Stdin))

	got, err := NewResolver(c, dialog).Resolve(context.Background(), "Save as...\n")
	require.NoError(t, err)
	assert.Equal(t, SaveAs("~/shot.png"), got)
}

func TestDmenuDefaultCommand(t *testing.T) {
	d, err := NewDialog(DialogOptions{Backend: DialogDmenu}, &tooltest.Fake{})
	require.NoError(t, err)
	assert.Equal(t, strings.Fields(DefaultDmenuCommand), d.(*Dmenu).Command)
}

func TestDmenuSavePrompt(t *testing.T) {
	tests := []struct {
		command string
		want    []string
	}{
		{DefaultDmenuCommand, []string{"-dmenu", "-i", "-p", SavePrompt}},
		{"wofi --dmenu --prompt=Action", []string{"--dmenu", "--prompt=" + SavePrompt}},
		{"dmenu -l 10", []string{"-l", "10"}},
	}
	for _, tc := range tests {
		t.Run(tc.command, func(t *testing.T) {
			fake := &tooltest.Fake{}
			fields := strings.Fields(tc.command)
			fake.On(fields[0], "/tmp/a.png\n", nil).On(fields[0], "Save as...\n", nil)
			d, err := NewDialog(DialogOptions{Backend: DialogDmenu, DmenuCommand: tc.command}, fake)
			require.NoError(t, err)

			_, err = d.SavePath(context.Background())
			require.NoError(t, err)
			_, err = d.Choose(context.Background(), Title, []string{"Save as..."})
			require.NoError(t, err)

			require.Len(t, fake.Calls, 2)
			assert.Equal(t, tc.want, fake.Calls[0].Args)
			assert.Equal(t, fields[1:], fake.Calls[1].Args, "menu keeps the configured prompt")
		})
	}
}

func TestZenitySaveDir(t *testing.T) {
	fake := (&tooltest.Fake{}).On("zenity", "/home/u/shots/a.png\n", nil)
	d, _ := NewDialog(DialogOptions{SaveDir: "/home/u/shots/"}, fake)
	_, err := d.SavePath(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"--file-selection", "--save", "--filename=/home/u/shots/"}, fake.Calls[0].Args)
}

func TestParseDialogBackend(t *testing.T) {
	b, err := ParseDialogBackend("")
	require.NoError(t, err)
	assert.Equal(t, DialogZenity, b)
	b, err = ParseDialogBackend("DMENU")
	require.NoError(t, err)
	assert.Equal(t, DialogDmenu, b)
	_, err = ParseDialogBackend("kdialog")
	assert.Equal(t, apperr.KindConfig, apperr.KindOf(err))
}

func TestNormalizeViewers(t *testing.T) {
	out, dropped, err := NormalizeViewers([]string{"feh", " gimp ", "feh", "eog", "gimp"})
	require.NoError(t, err)
	assert.Equal(t, []string{"feh", "gimp", "eog"}, out)
	assert.Equal(t, []string{"feh", "gimp"}, dropped)

	_, _, err = NormalizeViewers([]string{"feh", "  "})
	assert.Equal(t, apperr.KindConfig, apperr.KindOf(err))
}

func TestCatalogRejectsDuplicateAndMultilineViewers(t *testing.T) {
	_, err := NewCatalog(Options{Viewers: []string{"feh", "feh"}})
	assert.Equal(t, apperr.KindConfig, apperr.KindOf(err))

	_, err = NewCatalog(Options{Viewers: []string{"feh\ngimp"}})
	assert.Equal(t, apperr.KindConfig, apperr.KindOf(err))
}

func TestChoiceString(t *testing.T) {
	assert.Equal(t, "upload", Upload().String())
	assert.Equal(t, "save-as(/tmp/x.png)", SaveAs("/tmp/x.png").String())
	assert.Equal(t, "open-with(feh)", OpenWith("feh").String())
	assert.Equal(t, "copy-to-clipboard", CopyToClipboard().String())
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
