package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/echoscribe/engine/internal/pipeline"
)

// ResultsHandler serves the in-memory history.
type ResultsHandler struct {
	history *pipeline.History
}

// NewResultsHandler creates the history handler.
func NewResultsHandler(history *pipeline.History) *ResultsHandler {
	return &ResultsHandler{history: history}
}

// Routes registers the results endpoints.
func (h *ResultsHandler) Routes(r chi.Router) {
	r.Get("/api/v1/results", h.List)
	r.Get("/api/v1/results/{id}", h.Get)
	r.Get("/api/v1/results/{id}/transcript", h.Transcript)
}

// ListResponse is the paginated history response.
type ListResponse struct {
	Results []ResultView `json:"results"`
	Total   int          `json:"total"`
	Limit   int          `json:"limit"`
	Offset  int          `json:"offset"`
}

// List handles GET /api/v1/results. Newest first.
func (h *ResultsHandler) List(w http.ResponseWriter, r *http.Request) {
	p := ParsePagination(r)
	all := h.history.List()

	views := []ResultView{}
	for i := p.Offset; i < len(all) && i < p.Offset+p.Limit; i++ {
		views = append(views, newResultView(all[i]))
	}

	WriteJSON(w, http.StatusOK, ListResponse{
		Results: views,
		Total:   len(all),
		Limit:   p.Limit,
		Offset:  p.Offset,
	})
}

// Get handles GET /api/v1/results/{id}.
func (h *ResultsHandler) Get(w http.ResponseWriter, r *http.Request) {
	result := h.history.Get(chi.URLParam(r, "id"))
	if result == nil {
		WriteError(w, http.StatusNotFound, "result not found")
		return
	}
	WriteJSON(w, http.StatusOK, newResultView(result))
}

// Transcript handles GET /api/v1/results/{id}/transcript, serving the
// raw transcript as text for clipboard copy.
func (h *ResultsHandler) Transcript(w http.ResponseWriter, r *http.Request) {
	result := h.history.Get(chi.URLParam(r, "id"))
	if result == nil {
		WriteError(w, http.StatusNotFound, "result not found")
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte(result.FullText))
}
