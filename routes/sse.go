package routes

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/thatchakomP/pixel-cat-callior/events"
	"github.com/thatchakomP/pixel-cat-callior/logger"
	auth "github.com/thatchakomP/pixel-cat-callior/middleware"
)

const heartbeatInterval = 25 * time.Second

// UnlocksSSE streams the caller's unlock events as Server-Sent Events.
func UnlocksSSE(broker *events.Broker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := auth.UserID(r.Context())

		flusher, ok := w.(http.Flusher)
		if !ok {
			http.Error(w, "SSE not supported", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Connection", "keep-alive")

		updates, unsubscribe := broker.Subscribe(userID, 8)
		defer unsubscribe()
		logger.Info("SSE client connected", "user_id", userID)

		fmt.Fprintf(w, "event: connected\ndata: {\"status\": \"connected\"}\n\n")
		flusher.Flush()

		heartbeat := time.NewTicker(heartbeatInterval)
		defer heartbeat.Stop()

		ctx := r.Context()
		for {
			select {
			case <-ctx.Done():
				logger.Info("SSE client disconnected", "user_id", userID)
				return
			case <-heartbeat.C:
				fmt.Fprint(w, ": ping\n\n")
				flusher.Flush()
			case ev, ok := <-updates:
				if !ok {
					return
				}
				data, err := json.Marshal(ev)
				if err != nil {
					logger.Error("Failed to marshal unlock event", "error", err)
					continue
				}
				fmt.Fprintf(w, "event: cat_unlocked\ndata: %s\n\n", data)
				flusher.Flush()
			}
		}
	}
}
