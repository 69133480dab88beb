package forward

//go:generate mockgen -destination=./service_mock_test.go -package=forward -source=service.go Service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"kate-klips/internal/observability"
	"kate-klips/internal/wire"
)

// Service relays one conversation to a vendor with a fixed model.
type Service interface {
	// Complete returns the vendor's first-choice text, or "" when there is none.
	Complete(ctx context.Context, history []wire.Message) (string, error)

	// Stream calls emit once per non-empty fragment, in order.
	Stream(ctx context.Context, history []wire.Message, emit func(fragment string) error) error
}

// service is the concrete implementation of the Service interface.
type service struct {
	client CompletionClient // vendor API, shared per process
	vendor string
	model  string
	logger *slog.Logger
}

// NewService binds a vendor client to a model.
func NewService(client CompletionClient, vendor, model string, logger *slog.Logger) Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &service{
		client: client,
		vendor: vendor,
		model:  model,
		logger: logger.With("vendor", vendor, "model", model),
	}
}

// Complete implements the Service interface.
func (s *service) Complete(ctx context.Context, history []wire.Message) (string, error) {
	start := time.Now()
	content, err := s.client.Complete(ctx, s.model, history)
	s.observe(start, err)
	if err != nil {
		return "", vendorFailure(err)
	}
	return content, nil
}

// Stream implements the Service interface.
func (s *service) Stream(ctx context.Context, history []wire.Message, emit func(fragment string) error) error {
	start := time.Now()

	stream, err := s.client.Stream(ctx, s.model, history)
	if err != nil {
		s.observe(start, err)
		return vendorFailure(err)
	}
	defer stream.Close()

	fragments := 0
	for stream.Next() {
		delta := stream.Delta()
		if delta == "" {
			continue
		}
		if err := emit(delta); err != nil {
			// The caller went away; nothing left to relay to.
			s.observe(start, err)
			return fmt.Errorf("could not relay fragment %d: %w", fragments, err)
		}
		fragments++
	}

	err = stream.Err()
	s.observe(start, err)
	if err != nil {
		return vendorFailure(err)
	}

	s.logger.Debug("vendor stream finished", "fragments", fragments)
	return nil
}

func (s *service) observe(start time.Time, err error) {
	observability.VendorLatency.WithLabelValues(s.vendor, s.model).Observe(time.Since(start).Seconds())
	if err != nil {
		observability.VendorFailuresTotal.WithLabelValues(s.vendor, s.model).Inc()
		s.logger.Warn("vendor call failed", "error", err)
	}
}
