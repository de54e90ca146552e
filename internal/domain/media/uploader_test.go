package media

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestUploadReturnsSecureURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("parse multipart: %v", err)
		}
		if got := r.FormValue("upload_preset"); got != "chat_images" {
			t.Errorf("upload_preset = %q", got)
		}
		if _, _, err := r.FormFile("file"); err != nil {
			t.Fatalf("file part missing: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"secure_url":"https://cdn.example.com/x.png"}`))
	}))
	defer srv.Close()

	u := NewUploader(srv.URL, "chat_images")
	url, err := u.Upload(context.Background(), strings.NewReader("png-bytes"), "x.png")
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if url != "https://cdn.example.com/x.png" {
		t.Errorf("url = %q", url)
	}
}

func TestUploadErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":{"message":"Invalid upload preset"}}`))
	}))
	defer srv.Close()

	u := NewUploader(srv.URL, "nope")
	if _, err := u.Upload(context.Background(), strings.NewReader("data"), "x.png"); !IsErrUploadFailed(err) {
		t.Errorf("want upload failure, got %v", err)
	}

	htmlSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("<html>502 Bad Gateway</html>"))
	}))
	defer htmlSrv.Close()

	h := NewUploader(htmlSrv.URL, "chat_images")
	_, err := h.Upload(context.Background(), strings.NewReader("data"), "x.png")
	if !IsErrUploadFailed(err) {
		t.Fatalf("non-JSON error body: want upload failure, got %v", err)
	}
	if !strings.Contains(err.Error(), "502") {
		t.Errorf("error should carry the status line, got %v", err)
	}

	if _, err := u.Upload(context.Background(), strings.NewReader(""), "x.png"); !IsErrBadRequest(err) {
		t.Errorf("empty file: want bad request, got %v", err)
	}

	var unset *Uploader
	if unset.Configured() {
		t.Error("nil uploader reports configured")
	}
	none := NewUploader("", "")
	if _, err := none.Upload(context.Background(), strings.NewReader("data"), "x.png"); !IsErrNotConfigured(err) {
		t.Errorf("unconfigured: got %v", err)
	}
}
