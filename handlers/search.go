package handlers

import (
	"net/http"
)

// GET /api/search?q=
func (h *SheetHandler) Search(w http.ResponseWriter, r *http.Request) {
	results := h.Store.Search(r.URL.Query().Get("q"))
	writeOK(w, map[string]any{"data": results})
}

// GET /api/subtopics/{subTopicID}/questions
func (h *SheetHandler) SubTopicQuestions(w http.ResponseWriter, r *http.Request) {
	pinned, unpinned, err := h.Store.Questions(r.PathValue("subTopicID"))
	if err != nil {
		writeStoreError(w, "questions", err)
		return
	}
	writeOK(w, map[string]any{
		"data": map[string]any{
			"pinned":   pinned,
			"unpinned": unpinned,
		},
	})
}
