package handlers

import (
	"context"
	"fmt"
	"net/http"
	"path"
	"strings"
	"time"

	credentials "cloud.google.com/go/iam/credentials/apiv1"
	credentialspb "cloud.google.com/go/iam/credentials/apiv1/credentialspb"
	"cloud.google.com/go/storage"

	"github.com/HanzCode/PERISAIAPP-sub000/internal/config"
	"github.com/HanzCode/PERISAIAPP-sub000/internal/domain/media"
	"github.com/HanzCode/PERISAIAPP-sub000/internal/firebase"
	"github.com/HanzCode/PERISAIAPP-sub000/internal/httpjson"
	"github.com/HanzCode/PERISAIAPP-sub000/internal/middleware"
)

type Uploads struct {
	cfg      config.Config
	clients  *firebase.Clients
	iam      *credentials.IamCredentialsClient
	uploader *media.Uploader
}

func NewUploads(cfg config.Config, clients *firebase.Clients, uploader *media.Uploader) *Uploads {
	// IAM client is optional; only needed for signed URLs.
	iamClient, _ := credentials.NewIamCredentialsClient(context.Background())
	return &Uploads{cfg: cfg, clients: clients, iam: iamClient, uploader: uploader}
}

type signedURLReq struct {
	ObjectPath     string `json:"objectPath"` // e.g. "chats/{roomId}/images/photo.png"
	ContentType    string `json:"contentType,omitempty"`
	ExpiresSeconds int64  `json:"expiresSeconds,omitempty"` // default 900
}

type signedURLResp struct {
	URL       string `json:"url"`
	Method    string `json:"method"`
	ExpiresAt int64  `json:"expiresAt"`
}

// CreateSignedUploadURL hands the client a short-lived V4 PUT URL into the
// project bucket, for chat attachments and profile photos.
func (h *Uploads) CreateSignedUploadURL(w http.ResponseWriter, r *http.Request) {
	var req signedURLReq
	if err := httpjson.Read(r, &req); err != nil || req.ObjectPath == "" {
		httpjson.Error(w, http.StatusBadRequest, "objectPath is required")
		return
	}
	if strings.Contains(req.ObjectPath, "..") {
		httpjson.Error(w, http.StatusBadRequest, "invalid objectPath")
		return
	}
	url, exp, err := h.signedURL(r.Context(), req.ObjectPath, req.ContentType, req.ExpiresSeconds)
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	httpjson.Write(w, http.StatusOK, signedURLResp{URL: url, Method: "PUT", ExpiresAt: exp.Unix()})
}

// UploadImage proxies a multipart image to the unsigned-preset media host
// and returns the hosted URL the client should embed in its message.
func (h *Uploads) UploadImage(w http.ResponseWriter, r *http.Request) {
	if !h.uploader.Configured() {
		httpjson.Error(w, http.StatusServiceUnavailable, "media uploads are not configured")
		return
	}

	if err := r.ParseMultipartForm(12 << 20); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid multipart form")
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "file is required")
		return
	}
	defer file.Close()

	au, _ := middleware.GetAuthUser(r.Context())
	name := path.Base(header.Filename)
	if name == "" || name == "." || name == "/" {
		name = "upload"
	}
	// Prefix with the uploader's uid so hosted names never collide across users.
	name = fmt.Sprintf("%s_%d_%s", au.UID, time.Now().UnixMilli(), name)

	url, err := h.uploader.Upload(r.Context(), file, name)
	if err != nil {
		switch {
		case media.IsErrBadRequest(err):
			httpjson.Error(w, http.StatusBadRequest, err.Error())
		case media.IsErrNotConfigured(err):
			httpjson.Error(w, http.StatusServiceUnavailable, err.Error())
		default:
			httpjson.Error(w, http.StatusBadGateway, err.Error())
		}
		return
	}
	httpjson.Write(w, http.StatusOK, map[string]any{"url": url})
}

func (h *Uploads) signedURL(ctx context.Context, objectPath, contentType string, expiresSeconds int64) (string, time.Time, error) {
	if h.cfg.StorageBucket == "" {
		return "", time.Time{}, fmt.Errorf("FIREBASE_STORAGE_BUCKET is not set")
	}
	if h.cfg.SignedURLServiceAccountEmail == "" {
		return "", time.Time{}, fmt.Errorf("SIGNED_URL_SERVICE_ACCOUNT_EMAIL is not set")
	}
	if h.iam == nil {
		return "", time.Time{}, fmt.Errorf("IAM credentials client not available")
	}
	if expiresSeconds <= 0 || expiresSeconds > 3600 {
		expiresSeconds = 900
	}
	exp := time.Now().Add(time.Duration(expiresSeconds) * time.Second)

	// V4 signed URL for PUT (upload).
	opts := &storage.SignedURLOptions{
		Scheme:         storage.SigningSchemeV4,
		Method:         "PUT",
		Expires:        exp,
		ContentType:    contentType,
		GoogleAccessID: h.cfg.SignedURLServiceAccountEmail,
		SignBytes: func(b []byte) ([]byte, error) {
			name := fmt.Sprintf("projects/-/serviceAccounts/%s", h.cfg.SignedURLServiceAccountEmail)
			resp, err := h.iam.SignBlob(ctx, &credentialspb.SignBlobRequest{
				Name:    name,
				Payload: b,
			})
			if err != nil {
				return nil, err
			}
			return resp.SignedBlob, nil
		},
	}
	if opts.ContentType == "" {
		opts.ContentType = "application/octet-stream"
	}

	url, err := storage.SignedURL(h.cfg.StorageBucket, objectPath, opts)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign url (check service account + permissions): %v", err)
	}

	return url, exp, nil
}
