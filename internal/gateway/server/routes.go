package server

import (
	"net/http"

	"screencode/internal/gateway/handler"
	"screencode/internal/gateway/handler/rpc"
	"screencode/internal/gateway/middleware"
)

func NewMux(
	generateHandler *rpc.GenerateCodeHandler,
	screenshotHandler *handler.ScreenshotHandler,
	traceHandler *handler.TraceHandler,
) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/", handler.HandleStatus)
	mux.HandleFunc("/generate-code", generateHandler.HandleGenerateCodeWS)
	mux.HandleFunc("/api/screenshot", screenshotHandler.HandleScreenshot)

	// Debug Handlers
	mux.HandleFunc("/debug/run-logs", traceHandler.HandleRunLogs)

	// Middleware
	return middleware.CORS(mux)
}
