package chat

//go:generate mockgen -destination=./clients_mock_test.go -package=chat -source=clients.go

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"

	"kate-klips/internal/stream"
	"kate-klips/internal/wire"
)

// ForwarderClient is the contract for talking to a forwarder route.
type ForwarderClient interface {
	// Open posts the conversation and returns once the forwarder accepted it.
	Open(ctx context.Context, history []wire.Message) (Reply, error)
}

// Reply is an accepted forwarder response, batch or streamed.
type Reply interface {
	// Each calls onFragment for every fragment until the reply ends.
	Each(ctx context.Context, onFragment func(fragment string)) error
	Close() error
}

// httpForwarderClient is the implementation for the ForwarderClient.
type httpForwarderClient struct {
	httpClient *http.Client
	url        string
	logger     *slog.Logger
}

// NewHTTPForwarderClient is the constructor. No timeout is set: a streamed
// reply lasts as long as the vendor keeps talking.
func NewHTTPForwarderClient(url string, logger *slog.Logger) ForwarderClient {
	return newHTTPForwarderClient(url, &http.Client{}, logger)
}

func newHTTPForwarderClient(url string, httpClient *http.Client, logger *slog.Logger) *httpForwarderClient {
	if logger == nil {
		logger = slog.Default()
	}
	return &httpForwarderClient{
		httpClient: httpClient,
		url:        url,
		logger:     logger,
	}
}

// Open makes the POST and sorts the response into a streamed or batch reply.
func (c *httpForwarderClient) Open(ctx context.Context, history []wire.Message) (Reply, error) {
	reqBody, err := json.Marshal(wire.ForwardRequest{Messages: history})
	if err != nil {
		return nil, fmt.Errorf("could not marshal forward request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.url, bytes.NewBuffer(reqBody))
	if err != nil {
		return nil, wire.NetworkFailure(fmt.Errorf("could not create forward http request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "text/event-stream, application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, wire.NetworkFailure(fmt.Errorf("forward request failed: %w", err))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()
		c.logger.Warn("forwarder rejected the request",
			"status_code", resp.StatusCode,
			"error", readErrorBody(resp.Body),
		)
		return nil, wire.NetworkFailure(fmt.Errorf("forwarder returned non-2xx status: %d", resp.StatusCode))
	}

	mediaType, _, _ := mime.ParseMediaType(resp.Header.Get("Content-Type"))
	if mediaType == "text/event-stream" {
		return &streamReply{body: resp.Body, reader: stream.NewReader(c.logger)}, nil
	}

	defer resp.Body.Close()
	var body struct {
		Content string `json:"content"`
		Error   string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, wire.NetworkFailure(fmt.Errorf("could not decode forward response: %w", err))
	}
	return &batchReply{content: body.Content, errMessage: body.Error}, nil
}

// readErrorBody pulls {"error": "..."} out of a failed response for the log.
func readErrorBody(r io.Reader) string {
	var body wire.ErrorResponse
	if err := json.NewDecoder(io.LimitReader(r, 64<<10)).Decode(&body); err != nil {
		return ""
	}
	return body.Error
}

// streamReply reassembles an event-stream body.
type streamReply struct {
	body   io.ReadCloser
	reader *stream.Reader
}

func (r *streamReply) Each(ctx context.Context, onFragment func(string)) error {
	return r.reader.Read(ctx, r.body, onFragment)
}

func (r *streamReply) Close() error {
	return r.body.Close()
}

// batchReply is a whole answer delivered as one fragment.
type batchReply struct {
	content    string
	errMessage string
}

func (r *batchReply) Each(ctx context.Context, onFragment func(string)) error {
	if r.errMessage != "" {
		return wire.StreamFailed(r.errMessage)
	}
	if r.content != "" {
		onFragment(r.content)
	}
	return nil
}

func (r *batchReply) Close() error {
	return nil
}
