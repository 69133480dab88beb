package chat

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"

	"kate-klips/internal/wire"
)

// ErrBusy is returned by Send while a previous reply is still in progress.
var ErrBusy = errors.New("a reply is still in progress")

// Service is the client side of one conversation.
type Service interface {
	// Send appends input as a user turn and relays the whole history.
	// Blank input is ignored.
	Send(ctx context.Context, input string) error

	// Snapshot returns the current state.
	Snapshot() Snapshot
}

// service is the concrete implementation of the Service interface.
type service struct {
	forwarder ForwarderClient
	onUpdate  func(Snapshot)
	logger    *slog.Logger

	mu      sync.Mutex
	history []wire.Message
	loading bool
	lastErr string
}

// NewService is the constructor for a chat session. onUpdate, if set, is
// called with a fresh Snapshot after every change, from the goroutine
// running Send.
func NewService(forwarder ForwarderClient, onUpdate func(Snapshot), logger *slog.Logger) Service {
	if logger == nil {
		logger = slog.Default()
	}
	if onUpdate == nil {
		onUpdate = func(Snapshot) {}
	}
	return &service{
		forwarder: forwarder,
		onUpdate:  onUpdate,
		logger:    logger,
	}
}

// Send implements the Service interface.
func (s *service) Send(ctx context.Context, input string) error {
	if strings.TrimSpace(input) == "" {
		return nil
	}

	// Only one reply at a time, so two assistant messages never interleave.
	s.mu.Lock()
	if s.loading {
		s.mu.Unlock()
		return ErrBusy
	}
	s.history = append(cloneMessages(s.history), wire.UserMessage(input))
	s.loading = true
	s.lastErr = ""
	request := cloneMessages(s.history)
	s.publishLocked()

	// The loading flag always drops, whatever happens below.
	defer s.update(func() { s.loading = false })

	reply, err := s.forwarder.Open(ctx, request)
	if err != nil {
		return s.fail(err)
	}
	defer reply.Close()

	// The in-progress assistant message becomes the last element.
	s.update(func() {
		s.history = append(cloneMessages(s.history), wire.AssistantMessage(""))
	})

	var content strings.Builder
	err = reply.Each(ctx, func(fragment string) {
		content.WriteString(fragment)
		text := content.String()
		s.update(func() {
			next := cloneMessages(s.history)
			next[len(next)-1] = wire.AssistantMessage(text)
			s.history = next
		})
	})
	if err != nil {
		return s.fail(err)
	}
	return nil
}

// Snapshot implements the Service interface.
func (s *service) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// fail records err as the inline error. History is left as it is.
func (s *service) fail(err error) error {
	message := userMessage(err)
	s.logger.Error("send failed", "error", err)
	s.update(func() { s.lastErr = message })
	return err
}

// update applies change under the lock and publishes the result outside it.
func (s *service) update(change func()) {
	s.mu.Lock()
	change()
	s.publishLocked()
}

// publishLocked must be called with s.mu held; it releases the lock.
func (s *service) publishLocked() {
	snap := s.snapshotLocked()
	s.mu.Unlock()
	s.onUpdate(snap)
}

func (s *service) snapshotLocked() Snapshot {
	return Snapshot{
		Messages: cloneMessages(s.history),
		Loading:  s.loading,
		Err:      s.lastErr,
	}
}

// userMessage picks what the user sees for err.
func userMessage(err error) string {
	var we *wire.Error
	if errors.As(err, &we) && we.Message != "" {
		return we.Message
	}
	return err.Error()
}
