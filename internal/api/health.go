package api

import (
	"net/http"
	"time"

	"github.com/echoscribe/engine/internal/ingest"
	"github.com/echoscribe/engine/internal/pipeline"
)

// HealthResponse reports service liveness and component state.
type HealthResponse struct {
	Status        string            `json:"status"`
	Version       string            `json:"version"`
	UptimeSeconds int64             `json:"uptime_seconds"`
	Model         string            `json:"model"`
	HistorySize   int               `json:"history_size"`
	Watcher       *ingest.Status    `json:"watcher,omitempty"`
	Checks        map[string]string `json:"checks"`
}

// WatcherSource exposes the drop-folder watcher state, if one is running.
type WatcherSource interface {
	CurrentStatus() *ingest.Status
}

type HealthHandler struct {
	history   *pipeline.History
	watcher   WatcherSource
	model     string
	version   string
	startTime time.Time
}

func NewHealthHandler(history *pipeline.History, watcher WatcherSource, model, version string, startTime time.Time) *HealthHandler {
	return &HealthHandler{
		history:   history,
		watcher:   watcher,
		model:     model,
		version:   version,
		startTime: startTime,
	}
}

func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	checks := map[string]string{
		"model": "configured",
	}

	resp := HealthResponse{
		Status:        "healthy",
		Version:       h.version,
		UptimeSeconds: int64(time.Since(h.startTime).Seconds()),
		Model:         h.model,
		HistorySize:   h.history.Len(),
		Checks:        checks,
	}

	if h.watcher != nil {
		ws := h.watcher.CurrentStatus()
		resp.Watcher = ws
		checks["file_watcher"] = ws.Status
	} else {
		checks["file_watcher"] = "not_configured"
	}

	WriteJSON(w, http.StatusOK, resp)
}
