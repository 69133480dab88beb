package stream

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"kate-klips/internal/wire"
)

// DefaultReadSize is the buffer handed to each body read.
const DefaultReadSize = 4096

// Reader consumes a forwarder event stream.
type Reader struct {
	logger   *slog.Logger
	readSize int
}

// NewReader builds a Reader that logs skipped frames to logger.
func NewReader(logger *slog.Logger) *Reader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Reader{logger: logger, readSize: DefaultReadSize}
}

// WithReadSize changes how many bytes are requested per read.
func (r *Reader) WithReadSize(n int) *Reader {
	if n > 0 {
		r.readSize = n
	}
	return r
}

// Read pulls body until it ends, calling onContent for every content
// fragment in order. It returns:
//   - nil when the stream ends normally,
//   - a StreamFailed error as soon as an error frame arrives (body is not
//     read any further),
//   - a NetworkFailure error when the transport fails,
//   - ctx.Err() when ctx is cancelled.
//
// Malformed frames are logged and skipped.
func (r *Reader) Read(ctx context.Context, body io.Reader, onContent func(fragment string)) error {
	var lines LineBuffer
	buf := make([]byte, r.readSize)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		n, readErr := body.Read(buf)
		if n > 0 {
			for _, line := range lines.Feed(buf[:n]) {
				if err := r.handleLine(line, onContent); err != nil {
					return err
				}
			}
		}

		if errors.Is(readErr, io.EOF) {
			break
		}
		if readErr != nil {
			if err := ctx.Err(); err != nil {
				return err
			}
			return wire.NetworkFailure(readErr)
		}
	}

	// The last frame may have arrived without its newline.
	if rest := lines.Flush(); rest != "" {
		return r.handleLine(rest, onContent)
	}
	return nil
}

func (r *Reader) handleLine(line string, onContent func(string)) error {
	event, ok, err := ParseLine(line)
	if err != nil {
		r.logger.Warn("skipping malformed stream frame", "error", err)
		return nil
	}
	if !ok {
		return nil
	}

	if event.IsError() {
		return wire.StreamFailed(event.Error)
	}
	if event.Content != "" {
		onContent(event.Content)
	}
	return nil
}
