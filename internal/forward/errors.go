package forward

import (
	"encoding/json"
	"errors"

	"kate-klips/internal/wire"

	openai "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/packages/ssestream"
)

// vendorFailure converts anything a CompletionClient returns into a
// VendorRequestFailed error. The message is the vendor's nested
// error.message, then the error text, then the fallback string.
func vendorFailure(err error) *wire.Error {
	if err == nil {
		return wire.VendorRequestFailed(0, "", nil)
	}

	var we *wire.Error
	if errors.As(err, &we) {
		return we
	}

	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		return wire.VendorRequestFailed(apiErr.StatusCode, apiErrorMessage(apiErr), err)
	}

	var streamErr *ssestream.StreamError
	if errors.As(err, &streamErr) {
		return wire.VendorRequestFailed(0, streamErrorMessage(streamErr), err)
	}

	return wire.VendorRequestFailed(0, err.Error(), err)
}

// vendorErrorBody is the error envelope OpenAI-compatible APIs send.
type vendorErrorBody struct {
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
	Message string `json:"message"`
}

func apiErrorMessage(apiErr *openai.Error) string {
	if apiErr.Message != "" {
		return apiErr.Message
	}

	var body vendorErrorBody
	if raw := apiErr.RawJSON(); raw != "" && json.Unmarshal([]byte(raw), &body) == nil {
		if body.Error != nil && body.Error.Message != "" {
			return body.Error.Message
		}
		if body.Message != "" {
			return body.Message
		}
	}

	// Error() formats the request line, so it needs the request.
	if apiErr.Request != nil && apiErr.Response != nil {
		return apiErr.Error()
	}
	return ""
}

// streamErrorMessage reads the message of an error event sent mid-stream.
// The event's error field is either an object with a message or a string.
func streamErrorMessage(streamErr *ssestream.StreamError) string {
	var event struct {
		Error json.RawMessage `json:"error"`
	}
	if json.Unmarshal(streamErr.Event.Data, &event) == nil && len(event.Error) > 0 {
		var nested struct {
			Message string `json:"message"`
		}
		if json.Unmarshal(event.Error, &nested) == nil && nested.Message != "" {
			return nested.Message
		}
		var text string
		if json.Unmarshal(event.Error, &text) == nil && text != "" {
			return text
		}
	}
	return streamErr.Error()
}
