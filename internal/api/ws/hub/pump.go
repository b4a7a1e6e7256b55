package hub

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"drawguess-service/domain"

	"github.com/fasthttp/websocket"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 16 * 1024
)

// CommandDispatcher handles one decoded inbound command.
type CommandDispatcher interface {
	Dispatch(ctx context.Context, client *domain.Client, cmd domain.Command)
}

// Serve runs the client's pumps and returns once its connection is gone.
func (h *Hub) Serve(ctx context.Context, client *domain.Client, dispatcher CommandDispatcher) {
	go h.writePump(client)
	h.readPump(ctx, client, dispatcher)
}

func (h *Hub) readPump(ctx context.Context, client *domain.Client, dispatcher CommandDispatcher) {
	defer func() {
		h.release(client)
		client.Conn.Close()
	}()

	limiter := rate.NewLimiter(rate.Limit(h.cfg.CommandRate), h.cfg.CommandBurst)

	client.Conn.SetReadLimit(maxMessageSize)
	client.Conn.SetReadDeadline(time.Now().Add(pongWait))
	client.Conn.SetPongHandler(func(string) error {
		return client.Conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, payload, err := client.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				zap.L().Warn("Client read error", zap.String("participant", client.ID), zap.Error(err))
			}
			return
		}

		if !limiter.Allow() {
			h.SendError(client, domain.ErrRateLimited)
			continue
		}

		var cmd domain.Command
		if err := json.Unmarshal(payload, &cmd); err != nil || cmd.Type == "" {
			h.SendError(client, fmt.Errorf("%w: malformed command", domain.ErrInvalidInput))
			continue
		}
		dispatcher.Dispatch(ctx, client, cmd)
	}
}

func (h *Hub) writePump(client *domain.Client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		client.Conn.Close()
	}()

	for {
		select {
		case msg := <-client.Send:
			client.WriteLock.Lock()
			client.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			err := client.Conn.WriteMessage(websocket.TextMessage, msg)
			client.WriteLock.Unlock()
			if err != nil {
				zap.L().Debug("WebSocket write error", zap.String("participant", client.ID), zap.Error(err))
				return
			}

		case <-ticker.C:
			client.WriteLock.Lock()
			client.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			err := client.Conn.WriteMessage(websocket.PingMessage, nil)
			client.WriteLock.Unlock()
			if err != nil {
				return
			}

		case <-client.Done:
			client.WriteLock.Lock()
			client.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			client.Conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			client.WriteLock.Unlock()
			return
		}
	}
}
