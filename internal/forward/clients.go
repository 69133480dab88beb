package forward

//go:generate mockgen -destination=./clients_mock_test.go -package=forward -source=clients.go

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"kate-klips/internal/config"
	"kate-klips/internal/wire"

	openai "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/packages/ssestream"
)

// CompletionClient defines the contract for a vendor chat-completion API.
type CompletionClient interface {
	// Complete waits for the whole answer and returns the first choice's text.
	Complete(ctx context.Context, model string, messages []wire.Message) (string, error)
	// Stream starts a streaming completion.
	Stream(ctx context.Context, model string, messages []wire.Message) (CompletionStream, error)
}

// CompletionStream is an in-flight streaming completion.
type CompletionStream interface {
	// Next advances to the next chunk; false means the stream ended or failed.
	Next() bool
	// Delta is the incremental text of the current chunk, possibly empty.
	Delta() string
	// Err reports why Next returned false, nil on a normal end.
	Err() error
	Close() error
}

// openAIClient talks to OpenAI or any OpenAI-compatible endpoint (Groq included).
type openAIClient struct {
	client openai.Client
}

// NewOpenAIClient builds a vendor client from its config. It is constructed
// once per process and shared by every route that uses the vendor.
func NewOpenAIClient(cfg config.VendorConfig) CompletionClient {
	return newOpenAIClient(cfg, nil)
}

func newOpenAIClient(cfg config.VendorConfig, httpClient *http.Client) *openAIClient {
	if httpClient == nil {
		httpClient = &http.Client{}
		if cfg.TimeoutSeconds > 0 {
			httpClient.Timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
		}
	}

	opts := []option.RequestOption{
		option.WithBaseURL(cfg.BaseURL),
		option.WithHTTPClient(httpClient),
		// Failures go straight back to the caller.
		option.WithMaxRetries(0),
	}
	if cfg.APIKey != "" {
		opts = append(opts, option.WithAPIKey(cfg.APIKey))
	}

	return &openAIClient{client: openai.NewClient(opts...)}
}

func (c *openAIClient) Complete(ctx context.Context, model string, messages []wire.Message) (string, error) {
	params, err := buildChatParams(model, messages)
	if err != nil {
		return "", err
	}

	resp, err := c.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", err
	}

	if len(resp.Choices) == 0 {
		return "", nil
	}
	return resp.Choices[0].Message.Content, nil
}

func (c *openAIClient) Stream(ctx context.Context, model string, messages []wire.Message) (CompletionStream, error) {
	params, err := buildChatParams(model, messages)
	if err != nil {
		return nil, err
	}

	stream := c.client.Chat.Completions.NewStreaming(ctx, params)
	if err := stream.Err(); err != nil {
		return nil, err
	}
	return &openAIStream{stream: stream}, nil
}

// buildChatParams passes the conversation through in order.
func buildChatParams(model string, messages []wire.Message) (openai.ChatCompletionNewParams, error) {
	if strings.TrimSpace(model) == "" {
		return openai.ChatCompletionNewParams{}, fmt.Errorf("model is required")
	}

	params := make([]openai.ChatCompletionMessageParamUnion, 0, len(messages))
	for _, msg := range messages {
		param, err := toChatMessageParam(msg)
		if err != nil {
			return openai.ChatCompletionNewParams{}, err
		}
		params = append(params, param)
	}

	return openai.ChatCompletionNewParams{
		Model:    openai.ChatModel(model),
		Messages: params,
	}, nil
}

func toChatMessageParam(msg wire.Message) (openai.ChatCompletionMessageParamUnion, error) {
	switch strings.ToLower(strings.TrimSpace(msg.Role)) {
	case wire.RoleSystem:
		return openai.SystemMessage(msg.Content), nil
	case wire.RoleUser:
		return openai.UserMessage(msg.Content), nil
	case wire.RoleAssistant:
		return openai.AssistantMessage(msg.Content), nil
	default:
		return openai.ChatCompletionMessageParamUnion{}, fmt.Errorf("unsupported role: %q", msg.Role)
	}
}

type openAIStream struct {
	stream *ssestream.Stream[openai.ChatCompletionChunk]
}

func (s *openAIStream) Next() bool {
	return s.stream.Next()
}

func (s *openAIStream) Delta() string {
	chunk := s.stream.Current()
	if len(chunk.Choices) == 0 {
		return ""
	}
	return chunk.Choices[0].Delta.Content
}

func (s *openAIStream) Err() error {
	return s.stream.Err()
}

func (s *openAIStream) Close() error {
	return s.stream.Close()
}
