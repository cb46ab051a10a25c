package handlers

import (
	"fmt"
	"net/http"

	"github.com/anirbanjana883/question-traker/models"
	"github.com/anirbanjana883/question-traker/store"
)

// SheetHandler serves the checklist API on top of a single store.
type SheetHandler struct {
	Store *store.Store
}

// Register mounts every sheet route on mux.
func (h *SheetHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/sheet", h.GetSheet)
	mux.HandleFunc("GET /api/sheet/export.xlsx", h.ExportXLSX)
	mux.HandleFunc("POST /api/add", h.AddItem)
	mux.HandleFunc("PUT /api/update", h.UpdateItem)
	mux.HandleFunc("POST /api/delete", h.DeleteItem)
	mux.HandleFunc("POST /api/pin", h.TogglePin)
	mux.HandleFunc("PUT /api/reorder", h.ReorderItems)
	mux.HandleFunc("POST /api/reset", h.ResetSheet)

	// Search
	mux.HandleFunc("GET /api/search", h.Search)
	mux.HandleFunc("GET /api/subtopics/{subTopicID}/questions", h.SubTopicQuestions)
}

type itemRequest struct {
	Type       string  `json:"type"`
	ID         string  `json:"id"`
	ParentID   string  `json:"parentId"`
	Title      *string `json:"title"`
	Link       *string `json:"link"`
	Difficulty *string `json:"difficulty"`
}

func (req itemRequest) kind() (models.Kind, error) {
	kind, err := models.ParseKind(req.Type)
	if err != nil {
		return "", fmt.Errorf("%w: %v", store.ErrInvalidRequest, err)
	}
	return kind, nil
}

func (req itemRequest) fields() (models.Fields, error) {
	f := models.Fields{Title: req.Title, Link: req.Link}
	if req.Difficulty != nil {
		d, err := models.ParseDifficulty(*req.Difficulty)
		if err != nil {
			return models.Fields{}, fmt.Errorf("%w: %v", store.ErrInvalidRequest, err)
		}
		f.Difficulty = &d
	}
	return f, nil
}

// GET /api/sheet
func (h *SheetHandler) GetSheet(w http.ResponseWriter, r *http.Request) {
	writeOK(w, map[string]any{"data": h.Store.Get()})
}

// POST /api/add
func (h *SheetHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req itemRequest
	if err := decodeBody(r, &req); err != nil {
		writeStoreError(w, "add", err)
		return
	}

	kind, err := req.kind()
	if err != nil {
		writeStoreError(w, "add", err)
		return
	}
	fields, err := req.fields()
	if err != nil {
		writeStoreError(w, "add", err)
		return
	}

	id, err := h.Store.Add(kind, req.ParentID, fields)
	if err != nil {
		writeStoreError(w, "add", err)
		return
	}
	writeOK(w, map[string]any{"id": id})
}

// PUT /api/update
func (h *SheetHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	var req itemRequest
	if err := decodeBody(r, &req); err != nil {
		writeStoreError(w, "update", err)
		return
	}

	kind, err := req.kind()
	if err != nil {
		writeStoreError(w, "update", err)
		return
	}
	fields, err := req.fields()
	if err != nil {
		writeStoreError(w, "update", err)
		return
	}

	if err := h.Store.Update(kind, req.ID, fields); err != nil {
		writeStoreError(w, "update", err)
		return
	}
	writeOK(w, nil)
}

// POST /api/delete
func (h *SheetHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	var req itemRequest
	if err := decodeBody(r, &req); err != nil {
		writeStoreError(w, "delete", err)
		return
	}

	kind, err := req.kind()
	if err != nil {
		writeStoreError(w, "delete", err)
		return
	}

	if err := h.Store.Delete(kind, req.ID, req.ParentID); err != nil {
		writeStoreError(w, "delete", err)
		return
	}
	writeOK(w, nil)
}

// POST /api/pin
func (h *SheetHandler) TogglePin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID string `json:"id"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeStoreError(w, "pin", err)
		return
	}

	if err := h.Store.TogglePin(req.ID); err != nil {
		writeStoreError(w, "pin", err)
		return
	}
	writeOK(w, nil)
}

// PUT /api/reorder
func (h *SheetHandler) ReorderItems(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Type           string `json:"type"`
		SourceParentID string `json:"sourceParentId"`
		DestParentID   string `json:"destParentId"`
		SourceIndex    *int   `json:"sourceIndex"`
		DestIndex      *int   `json:"destIndex"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid Request")
		return
	}

	kind, err := models.ParseKind(req.Type)
	if err != nil || req.SourceIndex == nil || req.DestIndex == nil {
		writeError(w, http.StatusBadRequest, "Invalid Request")
		return
	}

	// a missing destination parent means "same parent"
	if req.DestParentID == "" {
		req.DestParentID = req.SourceParentID
	}

	err = h.Store.Reorder(models.Move{
		Kind:           kind,
		SourceParentID: req.SourceParentID,
		DestParentID:   req.DestParentID,
		SourceIndex:    *req.SourceIndex,
		DestIndex:      *req.DestIndex,
	})
	if err != nil {
		writeStoreError(w, "reorder", err)
		return
	}
	writeOK(w, nil)
}

// POST /api/reset
func (h *SheetHandler) ResetSheet(w http.ResponseWriter, r *http.Request) {
	doc, err := h.Store.Reset()
	if err != nil {
		writeStoreError(w, "reset", err)
		return
	}
	writeOK(w, map[string]any{"data": doc})
}
