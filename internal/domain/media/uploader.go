package media

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"
)

// maxUploadBytes caps a single attachment. Large originals are the client's
// problem to downscale before upload.
const maxUploadBytes = 10 << 20

// Uploader posts files to an unsigned-preset media endpoint and returns the
// hosted URL. One attempt per call; the caller decides whether a failed
// upload is worth reporting or retrying.
type Uploader struct {
	endpoint string
	preset   string
	http     *http.Client
}

func NewUploader(endpoint, preset string) *Uploader {
	return &Uploader{
		endpoint: endpoint,
		preset:   preset,
		http:     &http.Client{Timeout: 30 * time.Second},
	}
}

// Configured reports whether the upload endpoint is set. An unconfigured
// uploader rejects every call with ErrNotConfigured instead of panicking.
func (u *Uploader) Configured() bool {
	return u != nil && u.endpoint != "" && u.preset != ""
}

type uploadResponse struct {
	SecureURL string `json:"secure_url"`
	URL       string `json:"url"`
	Error     struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Upload sends the file as multipart form data and returns the secure_url
// from the endpoint's JSON response.
func (u *Uploader) Upload(ctx context.Context, file io.Reader, filename string) (string, error) {
	if !u.Configured() {
		return "", ErrNotConfigured
	}
	if filename == "" {
		return "", fmt.Errorf("%w: filename is required", ErrBadRequest)
	}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}
	n, err := io.Copy(part, io.LimitReader(file, maxUploadBytes+1))
	if err != nil {
		return "", fmt.Errorf("%w: reading file: %v", ErrUploadFailed, err)
	}
	if n == 0 {
		return "", fmt.Errorf("%w: file is empty", ErrBadRequest)
	}
	if n > maxUploadBytes {
		return "", fmt.Errorf("%w: file exceeds %d bytes", ErrBadRequest, maxUploadBytes)
	}
	if err := mw.WriteField("upload_preset", u.preset); err != nil {
		return "", fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}
	if err := mw.Close(); err != nil {
		return "", fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.endpoint, &buf)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := u.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("%w: reading response: %v", ErrUploadFailed, err)
	}

	var out uploadResponse
	if resp.StatusCode != http.StatusOK {
		// Error bodies are not always JSON; fall back to the status line.
		msg := resp.Status
		if json.Unmarshal(body, &out) == nil && out.Error.Message != "" {
			msg = out.Error.Message
		}
		return "", fmt.Errorf("%w: %s", ErrUploadFailed, msg)
	}
	if err := json.Unmarshal(body, &out); err != nil {
		return "", fmt.Errorf("%w: decoding response: %v", ErrUploadFailed, err)
	}

	url := out.SecureURL
	if url == "" {
		url = out.URL
	}
	if url == "" {
		return "", fmt.Errorf("%w: response has no secure_url", ErrUploadFailed)
	}
	return url, nil
}
