package rpc

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"screencode/internal/gateway/service/codegen"

	"github.com/gorilla/websocket"
)

// GenerateCodeHandler streams one code generation session per websocket.
type GenerateCodeHandler struct {
	svc *codegen.Service
}

func NewGenerateCodeHandler(svc *codegen.Service) *GenerateCodeHandler {
	return &GenerateCodeHandler{svc: svc}
}

const (
	generateWSWriteWait = 10 * time.Second
	generateWSPongWait  = 60 * time.Second
	generateWSPingEvery = (generateWSPongWait * 9) / 10
	generateWSParamWait = 30 * time.Second

	// CloseAppError tells the client the session ended with an error event.
	CloseAppError = 4332
)

var generateWSUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(_ *http.Request) bool {
		return true
	},
}

func (h *GenerateCodeHandler) HandleGenerateCodeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := generateWSUpgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	// Screenshots arrive as data URLs in the first message.
	conn.SetReadLimit(32 << 20)
	if err := conn.SetReadDeadline(time.Now().Add(generateWSParamWait)); err != nil {
		log.Printf("generate ws set read deadline failed: %v", err)
		return
	}
	var params codegen.Params
	if err := conn.ReadJSON(&params); err != nil {
		log.Printf("generate ws read params failed: %v", err)
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseUnsupportedData, "invalid params"),
			time.Now().Add(generateWSWriteWait))
		return
	}

	_ = conn.SetReadDeadline(time.Now().Add(generateWSPongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(generateWSPongWait))
	})

	writeCh := make(chan codegen.Event, 64)
	closeCode := websocket.CloseNormalClosure
	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		defer cancel()
		ticker := time.NewTicker(generateWSPingEvery)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case out, ok := <-writeCh:
				if !ok {
					_ = conn.WriteControl(websocket.CloseMessage,
						websocket.FormatCloseMessage(closeCode, ""),
						time.Now().Add(generateWSWriteWait))
					return
				}
				if err := conn.SetWriteDeadline(time.Now().Add(generateWSWriteWait)); err != nil {
					return
				}
				if err := conn.WriteJSON(out); err != nil {
					return
				}
			case <-ticker.C:
				if err := conn.SetWriteDeadline(time.Now().Add(generateWSWriteWait)); err != nil {
					return
				}
				if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
					return
				}
			}
		}
	}()

	// The client sends nothing after params; reading keeps pongs flowing
	// and notices when it goes away.
	go func() {
		for {
			if _, _, err := conn.NextReader(); err != nil {
				cancel()
				return
			}
		}
	}()

	emit := func(e codegen.Event) error {
		select {
		case writeCh <- e:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	if err := h.svc.Generate(ctx, params, emit); err != nil {
		if errors.Is(err, context.Canceled) {
			log.Printf("generate ws client went away")
		} else {
			log.Printf("generate ws session failed: %v", err)
			closeCode = CloseAppError
		}
	}
	close(writeCh)
	<-writerDone
}
