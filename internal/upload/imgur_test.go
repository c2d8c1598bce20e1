package upload

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/rscrot/internal/apperr"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	c := New("abc123")
	c.Endpoint = srv.URL
	c.HTTP = srv.Client()
	return c
}

func TestUploadSuccess(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Client-ID abc123", r.Header.Get("Authorization"))

		f, hdr, err := r.FormFile("image")
		if !assert.NoError(t, err) {
			http.Error(w, "no image", http.StatusBadRequest)
			return
		}
		defer f.Close()
		data, _ := io.ReadAll(f)
		assert.Equal(t, "\x89PNG data", string(data))
		assert.Equal(t, "screenshot.png", hdr.Filename)

		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"data":{"id":"Xy12","link":"https://i.imgur.com/Xy12.png","deletehash":"dh"},"success":true,"status":200}`)
	})

	res, err := c.Upload(context.Background(), []byte("\x89PNG data"))
	require.NoError(t, err)
	assert.Equal(t, Result{ID: "Xy12", Link: "https://i.imgur.com/Xy12.png", DeleteHash: "dh"}, res)
}

func TestUploadNoLink(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"data":{"id":"Xy12"},"success":true,"status":200}`)
	})
	res, err := c.Upload(context.Background(), []byte("png"))
	require.NoError(t, err)
	assert.Empty(t, res.Link)
}

func TestUploadAPIErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   string
	}{
		{"string error", http.StatusForbidden, `{"data":{"error":"Invalid client_id"},"success":false,"status":403}`, "HTTP 403: Invalid client_id"},
		{"object error", http.StatusBadRequest, `{"data":{"error":{"message":"File is over the size limit"}},"success":false,"status":400}`, "File is over the size limit"},
		{"not json", http.StatusBadGateway, `<html>bad gateway</html>`, "HTTP 502"},
		{"no error text", http.StatusTooManyRequests, `{"data":{},"success":false,"status":429}`, "Too Many Requests"},
		{"success false on 200", http.StatusOK, `{"data":{"error":"nope"},"success":false,"status":200}`, "nope"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = io.WriteString(w, tc.body)
			})
			_, err := c.Upload(context.Background(), []byte("png"))
			require.Error(t, err)
			assert.Equal(t, apperr.KindUpload, apperr.KindOf(err))
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}

func TestUploadMalformedSuccessBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `not json`)
	})
	_, err := c.Upload(context.Background(), []byte("png"))
	assert.Equal(t, apperr.KindParse, apperr.KindOf(err))
}

func TestUploadRequiresClientID(t *testing.T) {
	_, err := New(" ").Upload(context.Background(), []byte("png"))
	assert.Equal(t, apperr.KindConfig, apperr.KindOf(err))
}

func TestUploadUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := New("abc123")
	c.Endpoint = url
	_, err := c.Upload(context.Background(), []byte("png"))
	assert.Equal(t, apperr.KindUpload, apperr.KindOf(err))
}
