package controllers

import (
	"errors"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"path"

	"startup-registration/common"
	"startup-registration/storage"

	"github.com/gorilla/mux"
)

// UploadController serves stored upload files back by their blob path
type UploadController struct {
	Blobs storage.BlobStore
	Log   *slog.Logger
}

// NewUploadController creates a new UploadController
func NewUploadController(blobs storage.BlobStore, log *slog.Logger) *UploadController {
	return &UploadController{Blobs: blobs, Log: log}
}

// Serve streams /uploads/{dir}/{name} from the blob store
func (uc *UploadController) Serve(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	key := path.Join("uploads", vars["dir"], vars["name"])

	rc, err := uc.Blobs.Open(r.Context(), key)
	if errors.Is(err, common.ErrNotFound) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		uc.Log.ErrorContext(r.Context(), "error opening upload", "key", key, "error", err)
		http.Error(w, "Error reading file", http.StatusInternalServerError)
		return
	}
	defer rc.Close()

	contentType := mime.TypeByExtension(path.Ext(key))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("X-Content-Type-Options", "nosniff")

	if _, err := io.Copy(w, rc); err != nil {
		uc.Log.WarnContext(r.Context(), "error streaming upload", "key", key, "error", err)
	}
}
