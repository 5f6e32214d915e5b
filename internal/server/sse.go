package server

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/jonathan/cv-builder/internal/export"
)

// SSEWriter helps write Server-Sent Events
type SSEWriter struct {
	w       http.ResponseWriter
	flusher http.Flusher
}

// NewSSEWriter creates a new SSE writer
func NewSSEWriter(w http.ResponseWriter) (*SSEWriter, error) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		return nil, fmt.Errorf("streaming not supported")
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")

	return &SSEWriter{w: w, flusher: flusher}, nil
}

// WriteEvent sends an SSE event
func (s *SSEWriter) WriteEvent(event string, data any) error {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return err
	}

	if _, err := fmt.Fprintf(s.w, "event: %s\n", event); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(s.w, "data: %s\n\n", jsonData); err != nil {
		return err
	}
	s.flusher.Flush()
	return nil
}

// WriteError sends an error event
func (s *SSEWriter) WriteError(message string) {
	s.WriteEvent("error", map[string]string{"error": message}) //nolint:errcheck
}

// WriteStage sends one export progress event
func (s *SSEWriter) WriteStage(ev export.Event) error {
	return s.WriteEvent("stage", ev)
}

// OutcomePayload is the final event of an export stream. PDF is base64 and
// only present on success.
type OutcomePayload struct {
	export.Outcome
	PDF string `json:"pdf,omitempty"`
}

// WriteOutcome sends the terminal event for an export
func (s *SSEWriter) WriteOutcome(out export.Outcome) {
	payload := OutcomePayload{Outcome: out}
	if out.OK() {
		payload.PDF = base64.StdEncoding.EncodeToString(out.PDF)
	}
	s.WriteEvent("outcome", payload) //nolint:errcheck
}
