package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
)

// Uploader pushes template cover images to the hosted media service. The
// service is separate from the forms API: requests carry no credential, only
// the unsigned upload preset.
type Uploader struct {
	uploadURL  string
	preset     string
	httpClient *http.Client
	log        zerolog.Logger
}

// UploaderOption configures an Uploader.
type UploaderOption func(*Uploader)

// WithUploadHTTPClient overrides the HTTP client used for uploads.
func WithUploadHTTPClient(hc *http.Client) UploaderOption {
	return func(u *Uploader) {
		if hc != nil {
			u.httpClient = hc
		}
	}
}

// WithUploadLogger attaches a structured logger.
func WithUploadLogger(log zerolog.Logger) UploaderOption {
	return func(u *Uploader) {
		u.log = log
	}
}

// NewUploader builds an Uploader for the given endpoint and unsigned preset.
func NewUploader(uploadURL, preset string, options ...UploaderOption) (*Uploader, error) {
	trimmed := strings.TrimSpace(uploadURL)
	if trimmed == "" {
		return nil, errors.New("api: upload url is required")
	}
	if strings.TrimSpace(preset) == "" {
		return nil, errors.New("api: upload preset is required")
	}

	u := &Uploader{
		uploadURL:  trimmed,
		preset:     preset,
		httpClient: http.DefaultClient,
		log:        zerolog.Nop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(u)
	}
	return u, nil
}

// Upload sends the file content as a multipart form and returns the hosted
// URL of the stored image.
func (u *Uploader) Upload(ctx context.Context, filename string, content io.Reader) (string, error) {
	if ctx == nil {
		return "", errors.New("api: context is required")
	}
	if content == nil {
		return "", errors.New("api: upload content is required")
	}
	name := filepath.Base(strings.TrimSpace(filename))
	if name == "" || name == "." {
		name = "upload"
	}

	var body strings.Builder
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", name)
	if err != nil {
		return "", fmt.Errorf("api: build upload form: %w", err)
	}
	if _, err := io.Copy(part, content); err != nil {
		return "", fmt.Errorf("api: read upload content: %w", err)
	}
	if err := writer.WriteField("upload_preset", u.preset); err != nil {
		return "", fmt.Errorf("api: build upload form: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("api: build upload form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.uploadURL, strings.NewReader(body.String()))
	if err != nil {
		return "", fmt.Errorf("api: build upload request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	u.log.Debug().Str("file", name).Msg("uploading image")

	resp, err := u.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("api: upload: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &APIError{Status: resp.StatusCode, Message: "image upload failed"}
	}

	var wire struct {
		SecureURL string `json:"secure_url"`
		URL       string `json:"url"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&wire); err != nil {
		return "", fmt.Errorf("api: decode upload response: %w", err)
	}
	hosted := wire.SecureURL
	if hosted == "" {
		hosted = wire.URL
	}
	if hosted == "" {
		return "", errors.New("api: upload response carried no url")
	}
	return hosted, nil
}
