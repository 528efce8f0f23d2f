package http

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	"github.com/aretw0/logicsim/pkg/domain"
)

// StreamManager fans simulation events out to SSE subscribers.
// Subscribers either follow one circuit or, with an empty topic, every circuit.
type StreamManager struct {
	mu          sync.RWMutex
	subscribers map[string]map[chan<- string]struct{} // circuit -> set of channels
}

func NewStreamManager() *StreamManager {
	return &StreamManager{
		subscribers: make(map[string]map[chan<- string]struct{}),
	}
}

func (sm *StreamManager) Subscribe(topic string) (chan string, func()) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	ch := make(chan string, 32)
	if _, ok := sm.subscribers[topic]; !ok {
		sm.subscribers[topic] = make(map[chan<- string]struct{})
	}
	sm.subscribers[topic][ch] = struct{}{}

	return ch, func() {
		sm.mu.Lock()
		defer sm.mu.Unlock()
		if subs, ok := sm.subscribers[topic]; ok {
			delete(subs, ch)
			close(ch)
			if len(subs) == 0 {
				delete(sm.subscribers, topic)
			}
		}
	}
}

// Broadcast delivers msg to the circuit's subscribers and to the catch-all ones.
func (sm *StreamManager) Broadcast(circuit string, msg string) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	topics := []string{""}
	if circuit != "" {
		topics = append(topics, circuit)
	}
	for _, topic := range topics {
		for ch := range sm.subscribers[topic] {
			select {
			case ch <- msg:
			default:
				// Drop message if channel is full (slow client)
				slog.Warn("SSE: Client buffer full, dropping message", "circuit", circuit)
			}
		}
	}
}

// Hooks returns domain hooks that broadcast every event as JSON.
func (sm *StreamManager) Hooks() domain.Hooks {
	return domain.Hooks{
		OnStep: func(_ context.Context, e *domain.StepEvent) {
			sm.publish(e.Circuit, e)
		},
		OnTraceDone: func(_ context.Context, e *domain.TraceEvent) {
			sm.publish(e.Circuit, e)
		},
		OnMatch: func(_ context.Context, e *domain.MatchEvent) {
			sm.publish(e.Circuit, e)
		},
		OnLatchStep: func(_ context.Context, e *domain.LatchEvent) {
			sm.publish(e.Circuit, e)
		},
	}
}

func (sm *StreamManager) publish(circuit string, event any) {
	data, err := json.Marshal(event)
	if err != nil {
		slog.Error("SSE: failed to encode event", "error", err)
		return
	}
	sm.Broadcast(circuit, string(data))
}

// SubscribeEvents handles the GET /events request (SSE).
func (s *Server) SubscribeEvents(w http.ResponseWriter, r *http.Request) {
	params, err := bindEventsParams(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		s.Logger.Error("SubscribeEvents: Streaming not supported")
		return
	}

	topic := ""
	if params.Circuit != nil {
		topic = *params.Circuit
	}
	ch, cancel := s.Streams.Subscribe(topic)
	defer cancel()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	fmt.Fprintf(w, "event: ping\ndata: connected\n\n")
	flusher.Flush()
	s.Logger.Info("SSE: client subscribed", "circuit", topic)

	for {
		select {
		case <-r.Context().Done():
			s.Logger.Info("SSE: client disconnected", "circuit", topic)
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			fmt.Fprintf(w, "data: %s\n\n", msg)
			flusher.Flush()
		}
	}
}
