package stream

import (
	"encoding/json"
	"strings"

	"kate-klips/internal/wire"
)

// ParseLine decodes one event-stream line. ok is false for lines that carry
// no event: blank separators, comments, other SSE fields and the [DONE]
// sentinel. A data line whose payload is not JSON yields a
// MalformedStreamFrame error.
func ParseLine(line string) (event wire.StreamEvent, ok bool, err error) {
	trimmed := strings.TrimSpace(line)
	if !strings.HasPrefix(trimmed, wire.DataPrefix) {
		return wire.StreamEvent{}, false, nil
	}

	payload := strings.TrimSpace(strings.TrimPrefix(trimmed, wire.DataPrefix))
	if payload == wire.DoneSentinel {
		return wire.StreamEvent{}, false, nil
	}

	if err := json.Unmarshal([]byte(payload), &event); err != nil {
		return wire.StreamEvent{}, false, wire.MalformedStreamFrame(payload, err)
	}
	return event, true, nil
}
