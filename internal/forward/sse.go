package forward

import (
	"fmt"
	"log/slog"
	"net/http"

	"kate-klips/internal/wire"
)

// eventWriter writes "data: <json>\n\n" frames and flushes each one.
type eventWriter struct {
	w  http.ResponseWriter
	rc *http.ResponseController
}

// startEventStream sends the event-stream headers. After this the status
// code is fixed at 200, so failures can only be reported as frames.
func startEventStream(w http.ResponseWriter, allowOrigin string, logger *slog.Logger) *eventWriter {
	h := w.Header()
	h.Set("Content-Type", "text/event-stream")
	h.Set("Cache-Control", "no-cache")
	h.Set("Connection", "keep-alive")
	if allowOrigin != "" {
		h.Set("Access-Control-Allow-Origin", allowOrigin)
	}
	w.WriteHeader(http.StatusOK)

	ew := &eventWriter{w: w, rc: http.NewResponseController(w)}
	// Push the headers out before the vendor starts answering.
	if err := ew.rc.Flush(); err != nil {
		logger.Debug("could not flush event-stream headers", "error", err)
	}
	return ew
}

func (e *eventWriter) write(event wire.StreamEvent) error {
	frame, err := wire.EncodeFrame(event)
	if err != nil {
		return err
	}
	if _, err := e.w.Write(frame); err != nil {
		return fmt.Errorf("failed to write frame: %w", err)
	}
	if err := e.rc.Flush(); err != nil {
		return fmt.Errorf("failed to flush frame: %w", err)
	}
	return nil
}
