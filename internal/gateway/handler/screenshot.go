package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"screencode/internal/gateway/service/screenshot"
)

type ScreenshotHandler struct {
	svc *screenshot.Service
}

func NewScreenshotHandler(svc *screenshot.Service) *ScreenshotHandler {
	return &ScreenshotHandler{svc: svc}
}

func (h *ScreenshotHandler) HandleScreenshot(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var in struct {
		URL    string `json:"url"`
		APIKey string `json:"apiKey"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, "invalid json body", http.StatusBadRequest)
		return
	}
	dataURL, err := h.svc.Capture(r.Context(), in.URL, in.APIKey)
	switch {
	case errors.Is(err, screenshot.ErrMissingURL), errors.Is(err, screenshot.ErrMissingAPIKey):
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	case err != nil:
		log.Printf("screenshot capture failed url=%q: %v", in.URL, err)
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"url": dataURL,
	})
}
