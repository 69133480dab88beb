package wire

import (
	"testing"
)

func TestEncodeFrame_Content(t *testing.T) {
	frame, err := EncodeFrame(StreamEvent{Content: "Hel"})
	if err != nil {
		t.Fatalf("EncodeFrame() returned unexpected error: %v", err)
	}
	want := "data: {\"content\":\"Hel\"}\n\n"
	if string(frame) != want {
		t.Errorf("want frame %q, got %q", want, string(frame))
	}
}

func TestEncodeFrame_Error(t *testing.T) {
	frame, err := EncodeFrame(StreamEvent{Error: "rate limited"})
	if err != nil {
		t.Fatalf("EncodeFrame() returned unexpected error: %v", err)
	}
	want := "data: {\"error\":\"rate limited\"}\n\n"
	if string(frame) != want {
		t.Errorf("want frame %q, got %q", want, string(frame))
	}
}

func TestForwardRequest_Conversation(t *testing.T) {
	history := []Message{UserMessage("hi"), AssistantMessage("hello"), UserMessage("again")}

	tests := []struct {
		name string
		req  ForwardRequest
		want []Message
	}{
		{name: "full history", req: ForwardRequest{Messages: history}, want: history},
		{name: "single message", req: ForwardRequest{Message: "solo"}, want: []Message{UserMessage("solo")}},
		{name: "history wins", req: ForwardRequest{Messages: history, Message: "ignored"}, want: history},
		{name: "empty", req: ForwardRequest{}, want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.req.Conversation()
			if len(got) != len(tt.want) {
				t.Fatalf("want %d messages, got %d", len(tt.want), len(got))
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("message %d: want %+v, got %+v", i, tt.want[i], got[i])
				}
			}
		})
	}
}
