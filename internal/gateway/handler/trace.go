package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"screencode/internal/gateway/repository/runlog"
)

type TraceHandler struct {
	runs runlog.Store
}

func NewTraceHandler(runs runlog.Store) *TraceHandler {
	return &TraceHandler{runs: runs}
}

// HandleRunLogs returns the prompt and completion of one generation run.
func (h *TraceHandler) HandleRunLogs(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	id := strings.TrimSpace(r.URL.Query().Get("id"))
	if id == "" {
		http.Error(w, "id is required", http.StatusBadRequest)
		return
	}
	entry, err := h.runs.Get(r.Context(), id)
	if errors.Is(err, runlog.ErrNotFound) {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(entry)
}
