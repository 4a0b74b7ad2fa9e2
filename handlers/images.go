// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/dustin/go-humanize"

	"github.com/danielhkuo/closet-vote/catalog"
	"github.com/danielhkuo/closet-vote/cliparse"
	"github.com/danielhkuo/closet-vote/middleware"
	"github.com/danielhkuo/closet-vote/models"
	"github.com/danielhkuo/closet-vote/voting"
)

// maxUploadBytes caps one publish request (form parsing buffer).
const maxUploadBytes = 64 << 20

type ImagesHandler struct {
	state *voting.State
	cfg   cliparse.Config
}

func NewImagesHandler(state *voting.State, cfg cliparse.Config) *ImagesHandler {
	return &ImagesHandler{state: state, cfg: cfg}
}

// List handles GET /images
// Returns the catalog with per-image vote counts and the gate state in one
// consistent snapshot.
func (h *ImagesHandler) List(w http.ResponseWriter, r *http.Request) {
	view, err := h.state.Snapshot(r.Context())
	if err != nil {
		slog.Error("failed to list images", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to list images")
		return
	}

	images := make([]models.ImageEntry, 0, len(view.Items))
	for _, item := range view.Items {
		images = append(images, models.ImageEntry{
			ID:       item.ID,
			Name:     item.Name,
			Width:    item.Width,
			Height:   item.Height,
			Size:     item.Size,
			Position: item.Position,
			Votes:    view.Tallies[item.ID],
		})
	}

	middleware.JSONResponse(w, http.StatusOK, models.ListImagesResponse{
		Images:     images,
		VotingOpen: view.Open,
	})
}

// GetImage handles GET /images/{id}
// Serves the stored bytes so the renderer can draw the grid.
func (h *ImagesHandler) GetImage(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "image id is required")
		return
	}

	data, err := h.state.ImageData(r.Context(), id)
	if errors.Is(err, catalog.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Image not found")
		return
	}
	if err != nil {
		slog.Error("failed to read image", "error", err, "id", id)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to read image")
		return
	}

	w.Header().Set("Content-Type", http.DetectContentType(data))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// Publish handles POST /images (organizer only)
// Multipart upload under the "images" field. ?mode=append adds to the
// catalog; the default replace mode wipes catalog and ledger first.
// Per-item failures are reported, not fatal.
func (h *ImagesHandler) Publish(w http.ResponseWriter, r *http.Request) {
	mode := r.URL.Query().Get("mode")
	if mode == "" {
		mode = models.ModeReplace
	}
	if mode != models.ModeReplace && mode != models.ModeAppend {
		middleware.ErrorResponse(w, http.StatusBadRequest, "mode must be replace or append")
		return
	}

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	files := r.MultipartForm.File["images"]
	if len(files) == 0 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "no images in request")
		return
	}

	uploads := make([]catalog.Upload, 0, len(files))
	var totalBytes int64
	for _, fh := range files {
		f, err := fh.Open()
		if err != nil {
			middleware.ErrorResponse(w, http.StatusBadRequest, "Failed to read upload "+fh.Filename)
			return
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			middleware.ErrorResponse(w, http.StatusBadRequest, "Failed to read upload "+fh.Filename)
			return
		}
		totalBytes += int64(len(data))
		uploads = append(uploads, catalog.Upload{Name: fh.Filename, Data: data})
	}

	report, err := h.state.Publish(r.Context(), uploads, mode == models.ModeReplace)
	if err != nil {
		slog.Error("publish failed", "error", err, "mode", mode)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to publish images")
		return
	}

	if report.Stored == 0 {
		for _, ingestErr := range report.Errors {
			slog.Warn("upload skipped", "name", ingestErr.Name, "error", ingestErr.Err)
		}
		middleware.ErrorResponseCode(w, http.StatusBadRequest, models.CodeIngestFailed, "No uploads could be ingested")
		return
	}

	slog.Info("images published",
		"mode", mode,
		"stored", report.Stored,
		"failed", report.Failed,
		"upload_size", humanize.Bytes(uint64(totalBytes)),
	)

	resp := models.PublishResponse{
		Mode:   mode,
		Stored: report.Stored,
		Failed: report.Failed,
		IDs:    report.IDs,
	}
	for _, ingestErr := range report.Errors {
		slog.Warn("upload skipped", "name", ingestErr.Name, "error", ingestErr.Err)
		resp.Errors = append(resp.Errors, models.IngestError{
			Name:   ingestErr.Name,
			Reason: ingestErr.Err.Error(),
		})
	}

	middleware.JSONResponse(w, http.StatusCreated, resp)
}
