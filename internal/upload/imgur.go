// Package upload sends captures to the imgur.com image API.
package upload

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/example/rscrot/internal/apperr"
)

// DefaultEndpoint is the anonymous image upload endpoint.
const DefaultEndpoint = "https://api.imgur.com/3/image"

const maxResponseBytes = 1 << 20

// Result is the outcome of a successful upload. Link is empty when the API
// accepted the image but returned no link.
type Result struct {
	ID         string
	Link       string
	DeleteHash string
}

// Client uploads images anonymously with an application client id.
type Client struct {
	ClientID string
	Endpoint string
	HTTP     *http.Client
}

// New returns a Client for clientID with the default endpoint.
func New(clientID string) *Client {
	return &Client{
		ClientID: clientID,
		Endpoint: DefaultEndpoint,
		HTTP:     &http.Client{Timeout: 60 * time.Second},
	}
}

type apiResponse struct {
	Data    apiData `json:"data"`
	Success bool    `json:"success"`
	Status  int     `json:"status"`
}

type apiData struct {
	ID         string          `json:"id"`
	Link       string          `json:"link"`
	DeleteHash string          `json:"deletehash"`
	Error      json.RawMessage `json:"error"`
}

// Upload posts data as a multipart "image" field.
func (c *Client) Upload(ctx context.Context, data []byte) (Result, error) {
	if strings.TrimSpace(c.ClientID) == "" {
		return Result{}, apperr.New(apperr.KindConfig, "imgur", "client id is required")
	}
	body, contentType, err := multipartBody(data)
	if err != nil {
		return Result{}, apperr.Wrap(err, apperr.KindUpload, "imgur", "build request body")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(), body)
	if err != nil {
		return Result{}, apperr.Wrap(err, apperr.KindUpload, "imgur", "create request")
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Client-ID "+c.ClientID)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return Result{}, apperr.Wrap(err, apperr.KindUpload, "imgur", "request failed")
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return Result{}, apperr.Wrap(err, apperr.KindUpload, "imgur", "read response")
	}
	var parsed apiResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		if resp.StatusCode/100 != 2 {
			return Result{}, apperr.Newf(apperr.KindUpload, "imgur", "HTTP %d", resp.StatusCode)
		}
		return Result{}, apperr.Wrap(err, apperr.KindParse, "imgur", "decode response")
	}
	if resp.StatusCode/100 != 2 || !parsed.Success {
		msg := apiErrorMessage(parsed.Data.Error)
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return Result{}, apperr.Newf(apperr.KindUpload, "imgur", "HTTP %d: %s", resp.StatusCode, msg)
	}
	return Result{ID: parsed.Data.ID, Link: parsed.Data.Link, DeleteHash: parsed.Data.DeleteHash}, nil
}

func (c *Client) endpoint() string {
	if c.Endpoint == "" {
		return DefaultEndpoint
	}
	return c.Endpoint
}

func (c *Client) httpClient() *http.Client {
	if c.HTTP == nil {
		return http.DefaultClient
	}
	return c.HTTP
}

func multipartBody(data []byte) (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("image", "screenshot.png")
	if err != nil {
		return nil, "", err
	}
	if _, err := part.Write(data); err != nil {
		return nil, "", err
	}
	if err := w.WriteField("type", "file"); err != nil {
		return nil, "", err
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return &buf, w.FormDataContentType(), nil
}

// apiErrorMessage decodes data.error, which the API sends either as a plain
// string or as an object with a message field.
func apiErrorMessage(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var obj struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &obj); err == nil && obj.Message != "" {
		return obj.Message
	}
	return string(raw)
}
