package api

import (
	"encoding/json"
	"errors"
	"mime"
	"net/http"
	"net/url"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"fjacquet/alert-extract/internal/logging"
	"fjacquet/alert-extract/internal/models"
	"fjacquet/alert-extract/internal/parsererror"
	"fjacquet/alert-extract/internal/service"
)

// DefaultDownloadName is the attachment name when the caller gives none.
const DefaultDownloadName = "output.xlsx"

func (s *Server) handleExtract(w http.ResponseWriter, r *http.Request) {
	alertID := chi.URLParam(r, "alertID")
	resp := s.svc.Extract(r.Context(), alertID)
	writeJSON(w, extractStatus(resp), resp)
}

// extractStatus maps an extract outcome to its HTTP status code.
func extractStatus(resp models.ExtractResponse) int {
	switch {
	case resp.Succeeded():
		return http.StatusOK
	case resp.Message == service.MsgAlertNotFound, resp.Message == service.MsgNoXMLContent:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	ref := chi.URLParam(r, "*")
	if unescaped, err := url.PathUnescape(ref); err == nil {
		ref = unescaped
	}
	fileName := filepath.Base(r.URL.Query().Get("fileName"))
	if fileName == "." || fileName == "/" {
		fileName = DefaultDownloadName
	}

	data, err := s.svc.Download(ref)
	if err != nil {
		var unreadable *parsererror.ArtifactUnreadableError
		if errors.As(err, &unreadable) {
			jsonError(w, err.Error(), http.StatusNotFound)
			return
		}
		jsonError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	s.logger.Info("Artifact downloaded",
		logging.F(logging.FieldFile, ref),
		logging.F(logging.FieldFileName, fileName))

	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": fileName}))
	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	writeJSON(w, code, models.ExtractFailure(strings.TrimSpace(msg)))
}
