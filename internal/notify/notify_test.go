package notify

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/rscrot/internal/platform"
)

type sent struct {
	summary string
	body    string
	opts    platform.Options
}

func captureSends(t *testing.T, err error) *[]sent {
	t.Helper()
	var got []sent
	prev := send
	send = func(summary, body string, opts platform.Options) error {
		got = append(got, sent{summary, body, opts})
		return err
	}
	t.Cleanup(func() { send = prev })
	return &got
}

func TestUploadEventsEnabledByDefault(t *testing.T) {
	got := captureSends(t, nil)
	n := New(DefaultPreferences())

	n.Uploaded("https://i.imgur.com/abc.png")
	n.UploadedNoLink()
	n.UploadFailed(errors.New("HTTP 403: Invalid client_id"))

	require.Len(t, *got, 3)
	assert.Equal(t, sent{"Success:", "Uploaded to https://i.imgur.com/abc.png", platform.Options{}}, (*got)[0])
	assert.Equal(t, "Upload finished but no link was returned", (*got)[1].body)
	assert.Equal(t, "Error:", (*got)[2].summary)
	assert.Equal(t, "Upload failed: HTTP 403: Invalid client_id", (*got)[2].body)
	assert.True(t, (*got)[2].opts.Urgent)
}

func TestSaveAndCopyDisabledByDefault(t *testing.T) {
	got := captureSends(t, nil)
	n := New(DefaultPreferences())
	n.Save("/tmp/x.png")
	n.Copy("")
	assert.Empty(t, *got)

	n.Enable(EventCopy, true)
	n.Copy("")
	require.Len(t, *got, 1)
	assert.Equal(t, "Copied image to clipboard", (*got)[0].body)
}

func TestSaveUsesFileAsIcon(t *testing.T) {
	got := captureSends(t, nil)
	path := filepath.Join(t.TempDir(), "out.png")
	require.NoError(t, os.WriteFile(path, []byte("png"), 0o600))

	n := New(DefaultPreferences())
	n.Enable(EventSave, true)
	n.Save(path)

	require.Len(t, *got, 1)
	assert.Equal(t, "Saved "+path, (*got)[0].body)
	assert.Equal(t, path, (*got)[0].opts.IconPath)
}

func TestDisableUpload(t *testing.T) {
	got := captureSends(t, nil)
	n := New(DefaultPreferences())
	n.EnableUpload(false)
	n.Uploaded("x")
	n.UploadFailed(errors.New("x"))
	assert.Empty(t, *got)
}

func TestSendFailureIsSwallowed(t *testing.T) {
	got := captureSends(t, errors.New("no notification daemon"))
	n := New(DefaultPreferences())
	assert.NotPanics(t, func() { n.Uploaded("https://i.imgur.com/abc.png") })
	assert.Len(t, *got, 1)
}

func TestNilNotifierIsSilent(t *testing.T) {
	got := captureSends(t, nil)
	var n *Notifier
	n.Uploaded("x")
	n.Enable(EventSave, true)
	assert.Empty(t, *got)
}

func TestLoadPreferencesFromEnv(t *testing.T) {
	t.Setenv("RSCROT_NOTIFY_UPLOAD_TEXT", "Link: %s")
	t.Setenv("RSCROT_NOTIFY_NOLINK_TEXT", "")
	got := captureSends(t, nil)

	n := New(LoadPreferences())
	n.Uploaded("https://i.imgur.com/abc.png")
	n.UploadedNoLink()

	require.Len(t, *got, 2)
	assert.Equal(t, "Link: https://i.imgur.com/abc.png", (*got)[0].body)
	assert.Equal(t, "Upload finished but no link was returned", (*got)[1].body)
}

func TestTemplateOnlyExpandsFirstPlaceholder(t *testing.T) {
	tests := []struct {
		template string
		want     string
	}{
		{"Uploaded %d bytes to %s", "Uploaded %d bytes to https://i.imgur.com/abc.png"},
		{"%s and %s", "https://i.imgur.com/abc.png and %s"},
		{"100% done: %s", "100% done: https://i.imgur.com/abc.png"},
		{"Uploaded", "Uploaded"},
	}
	for _, tc := range tests {
		t.Run(tc.template, func(t *testing.T) {
			t.Setenv("RSCROT_NOTIFY_UPLOAD_TEXT", tc.template)
			got := captureSends(t, nil)

			New(LoadPreferences()).Uploaded("https://i.imgur.com/abc.png")

			require.Len(t, *got, 1)
			assert.Equal(t, tc.want, (*got)[0].body)
			assert.NotContains(t, (*got)[0].body, "%!")
		})
	}
}
