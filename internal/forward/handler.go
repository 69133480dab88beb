package forward

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"kate-klips/internal/observability"
	"kate-klips/internal/relay"
	"kate-klips/internal/wire"

	"github.com/go-chi/chi/v5"
)

// Route is one forwarder endpoint.
type Route struct {
	// Path is where the route is mounted, e.g. "/api/chat_openai".
	Path string
	// Stream selects event-stream output instead of a single JSON body.
	Stream bool
	// AllowOrigin, when set, is sent as Access-Control-Allow-Origin on streams.
	AllowOrigin string
}

func (rt Route) mode() string {
	if rt.Stream {
		return "stream"
	}
	return "batch"
}

// Handler is the http api layer for one forwarder route.
type Handler struct {
	service Service
	route   Route
	logger  *slog.Logger
}

// NewHandler creates a new handler injecting the service.
func NewHandler(s Service, route Route, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		service: s,
		route:   route,
		logger:  logger.With("route", route.Path, "mode", route.mode()),
	}
}

// RegisterRoutes attaches the route for every verb so that non-POST
// requests get the structured 405 instead of chi's plain one.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.HandleFunc(h.route.Path, h.handleForward)
}

// handleForward relays the posted conversation to the vendor.
func (h *Handler) handleForward(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With("relay_id", relay.IDString(r.Context()))

	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		h.fail(w, http.StatusMethodNotAllowed, wire.MethodNotAllowedMessage)
		return
	}

	var req wire.ForwardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Info("rejecting undecodable payload", "error", err)
		h.fail(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	history := req.Conversation()
	if len(history) == 0 {
		h.fail(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if h.route.Stream {
		h.streamCompletion(w, r, history, logger)
		return
	}
	h.batchCompletion(w, r, history, logger)
}

// batchCompletion waits for the full answer and returns {content}.
func (h *Handler) batchCompletion(w http.ResponseWriter, r *http.Request, history []wire.Message, logger *slog.Logger) {
	content, err := h.service.Complete(r.Context(), history)
	if err != nil {
		status, message := wire.Describe(err)
		logger.Error("batch completion failed", "status", status, "error", err)
		h.fail(w, status, message)
		return
	}

	h.record(http.StatusOK)
	writeJSON(w, http.StatusOK, wire.ContentResponse{Content: content})
}

// streamCompletion relays fragments as event-stream frames. The response
// always ends with either the vendor's normal end or one error frame.
func (h *Handler) streamCompletion(w http.ResponseWriter, r *http.Request, history []wire.Message, logger *slog.Logger) {
	observability.StreamingConnections.Inc()
	defer observability.StreamingConnections.Dec()

	events := startEventStream(w, h.route.AllowOrigin, logger)
	h.record(http.StatusOK)

	fragments := observability.StreamFragmentsTotal.WithLabelValues(h.route.Path)
	err := h.service.Stream(r.Context(), history, func(fragment string) error {
		fragments.Inc()
		return events.write(wire.StreamEvent{Content: fragment})
	})
	if err == nil {
		return
	}

	_, message := wire.Describe(err)
	logger.Error("stream relay failed", "error", err)
	if werr := events.write(wire.StreamEvent{Error: message}); werr != nil {
		logger.Warn("could not deliver error frame", "error", werr)
	}
}

func (h *Handler) fail(w http.ResponseWriter, status int, message string) {
	h.record(status)
	writeError(w, status, message)
}

func (h *Handler) record(status int) {
	observability.ForwardRequestsTotal.WithLabelValues(h.route.Path, h.route.mode(), observability.StatusClass(status)).Inc()
}

// writeJSON is a helper function for sending json responses.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

// writeError is a helper for sending a standardized json error.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, wire.ErrorResponse{Error: message})
}
