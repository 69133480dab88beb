package chat

import (
	"slices"

	"kate-klips/internal/wire"
)

// Snapshot is an immutable view of a session, published after every change.
type Snapshot struct {
	// Messages is the conversation in turn order. While a reply streams, the
	// last element is the in-progress assistant message.
	Messages []wire.Message
	// Loading is true from the moment a message is sent until its reply ends.
	Loading bool
	// Err is the inline error for the last send, "" when it succeeded.
	Err string
}

// Last returns the newest message, if any.
func (s Snapshot) Last() (wire.Message, bool) {
	if len(s.Messages) == 0 {
		return wire.Message{}, false
	}
	return s.Messages[len(s.Messages)-1], true
}

func cloneMessages(msgs []wire.Message) []wire.Message {
	return slices.Clone(msgs)
}
