package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"screencode/internal/gateway/handler"
	"screencode/internal/gateway/handler/rpc"
	"screencode/internal/gateway/repository/runlog"
	"screencode/internal/gateway/service/screenshot"
)

func TestNewMuxRoutes(t *testing.T) {
	mux := NewMux(
		rpc.NewGenerateCodeHandler(nil),
		handler.NewScreenshotHandler(screenshot.New("http://unused.invalid")),
		handler.NewTraceHandler(runlog.NewFileStore(t.TempDir())),
	)

	cases := []struct {
		method, path string
		want         int
	}{
		{http.MethodGet, "/", http.StatusOK},
		{http.MethodGet, "/debug/run-logs?id=none", http.StatusNotFound},
		{http.MethodGet, "/api/screenshot", http.StatusMethodNotAllowed},
		{http.MethodOptions, "/generate-code", http.StatusNoContent},
	}
	for _, tc := range cases {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(tc.method, tc.path, nil)
		req.Header.Set("Origin", "http://localhost:5173")
		mux.ServeHTTP(rec, req)
		assert.Equal(t, tc.want, rec.Code, tc.path)
		assert.Equal(t, "http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"), tc.path)
	}
}
