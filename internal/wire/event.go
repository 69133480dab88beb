package wire

import (
	"encoding/json"
	"fmt"
)

// DataPrefix starts every event-stream line that carries a payload.
const DataPrefix = "data: "

// DoneSentinel is the OpenAI-style end marker some relays append.
const DoneSentinel = "[DONE]"

// StreamEvent is one frame of a forwarded stream: either an incremental
// fragment or a terminal error.
type StreamEvent struct {
	Content string `json:"content,omitempty"`
	Error   string `json:"error,omitempty"`
}

// IsError reports whether the event ends the stream with a failure.
func (e StreamEvent) IsError() bool {
	return e.Error != ""
}

// EncodeFrame renders an event as "data: <json>\n\n".
func EncodeFrame(e StreamEvent) ([]byte, error) {
	payload, err := json.Marshal(e)
	if err != nil {
		return nil, fmt.Errorf("could not marshal stream event: %w", err)
	}
	frame := make([]byte, 0, len(DataPrefix)+len(payload)+2)
	frame = append(frame, DataPrefix...)
	frame = append(frame, payload...)
	frame = append(frame, '\n', '\n')
	return frame, nil
}
