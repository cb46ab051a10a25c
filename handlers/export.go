package handlers

import (
	"bytes"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/anirbanjana883/question-traker/export"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// GET /api/sheet/export.xlsx
func (h *SheetHandler) ExportXLSX(w http.ResponseWriter, r *http.Request) {
	// Render into memory first so a failure can still produce a JSON error.
	var buf bytes.Buffer
	if err := export.WriteXLSX(&buf, h.Store.Get()); err != nil {
		slog.Error("export failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Export failed")
		return
	}

	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="question-sheet.xlsx"`)
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		slog.Warn("export write interrupted", "error", err)
	}
}

// GET /healthz
func Healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
