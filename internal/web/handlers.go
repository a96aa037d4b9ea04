package web

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/JonMunkholm/homestock/internal/inventory"
	"github.com/JonMunkholm/homestock/internal/logging"
	"github.com/JonMunkholm/homestock/internal/web/middleware"
)

// multipartOverhead is allowed on top of the file size limit for form
// boundaries and headers.
const multipartOverhead = 1 << 20

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type itemsResponse struct {
	Items []inventory.Item `json:"items"`
	Count int              `json:"count"`
}

type importResponse struct {
	ImportID   string           `json:"importId"`
	Accepted   []inventory.Item `json:"accepted"`
	TotalRows  int              `json:"totalRows"`
	Skipped    int              `json:"skipped"`
	Truncated  int              `json:"truncated"`
	DurationMS int64            `json:"durationMs"`
}

// updateRequest is the body of PUT /api/items/{id}. Quantity is a pointer
// so an omitted quantity is rejected rather than read as zero.
type updateRequest struct {
	Name     string `json:"name"`
	Quantity *int   `json:"quantity"`
}

func session(r *http.Request) inventory.Session {
	sess, _ := middleware.SessionFrom(r.Context())
	return sess
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, map[string]any{
		"status":         "ok",
		"imports_active": s.service.ImportsActive(),
	})
}

func (s *Server) handleListItems(w http.ResponseWriter, r *http.Request) {
	items := s.service.Snapshot(r.Context(), session(r).Address)
	writeJSON(w, r, http.StatusOK, itemsResponse{Items: items, Count: len(items)})
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	items, err := s.service.Refresh(r.Context(), session(r))
	if err != nil {
		respondError(w, r, err, 0)
		return
	}
	writeJSON(w, r, http.StatusOK, itemsResponse{Items: items, Count: len(items)})
}

// handleImport accepts a multipart form with a "file" field, decodes it and
// submits the first rows to the item API.
func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	maxSize := s.cfg.Import.MaxFileSize
	r.Body = http.MaxBytesReader(w, r.Body, maxSize+multipartOverhead)

	if err := r.ParseMultipartForm(maxSize); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respondError(w, r, errFileTooLarge, 0)
			return
		}
		respondError(w, r, errNoFile, 0)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		respondError(w, r, errNoFile, 0)
		return
	}
	defer file.Close()

	format, err := inventory.DetectFormat(header.Filename, header.Header.Get("Content-Type"))
	if err != nil {
		respondError(w, r, err, 0)
		return
	}

	data, err := io.ReadAll(io.LimitReader(file, maxSize+1))
	if err != nil {
		respondError(w, r, fmt.Errorf("read upload: %w", err), http.StatusBadRequest)
		return
	}
	if int64(len(data)) > maxSize {
		respondError(w, r, errFileTooLarge, 0)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.cfg.Import.Timeout)
	defer cancel()

	logging.FromContext(ctx).Info("import received",
		"filename", header.Filename,
		"bytes", len(data),
		"format", format,
	)

	result, err := s.service.Import(ctx, session(r), data, format)
	if err != nil {
		respondError(w, r, err, 0)
		return
	}

	writeJSON(w, r, http.StatusOK, importResponse{
		ImportID:   result.ImportID,
		Accepted:   result.Accepted,
		TotalRows:  result.TotalRows,
		Skipped:    result.Skipped,
		Truncated:  result.Truncated,
		DurationMS: result.Duration.Milliseconds(),
	})
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		respondError(w, r, errMissingItemID, 0)
		return
	}

	resp, err := s.service.RequestDelete(r.Context(), session(r), id)
	if err != nil {
		respondError(w, r, err, 0)
		return
	}
	writeJSON(w, r, http.StatusOK, resp)
}

func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		respondError(w, r, errMissingItemID, 0)
		return
	}

	var req updateRequest
	r.Body = http.MaxBytesReader(w, r.Body, 64<<10)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Quantity == nil {
		respondError(w, r, errInvalidBody, 0)
		return
	}

	resp, err := s.service.RequestUpdate(r.Context(), session(r), id, inventory.ItemDraft{
		Name:     req.Name,
		Quantity: *req.Quantity,
	})
	if err != nil {
		respondError(w, r, err, 0)
		return
	}
	writeJSON(w, r, http.StatusOK, resp)
}

// handleExport streams the household snapshot as an .xlsx download. The
// workbook is built in memory first so a failure still gets a JSON error.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := s.service.Export(r.Context(), session(r).Address, &buf); err != nil {
		respondError(w, r, err, http.StatusInternalServerError)
		return
	}

	filename := fmt.Sprintf("inventory-%s.xlsx", time.Now().Format("2006-01-02"))
	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Content-Length", fmt.Sprint(buf.Len()))
	if _, err := buf.WriteTo(w); err != nil {
		logging.FromContext(r.Context()).Warn("export write failed", "error", err)
	}
}
