package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	openai "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

// ErrNoChoices is returned when the provider answers without any choice.
var ErrNoChoices = errors.New("no choices returned")

// Client is a client for the OpenAI chat completions API.
type Client struct {
	BaseURL string
	Model   string
	client  openai.Client
}

// NewClient creates a new LLM client. The SDK's built-in retries are turned
// off; a failed call is reported to the caller as is.
func NewClient(baseURL, apiKey, model string) *Client {
	opts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(0),
	}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}

	return &Client{
		BaseURL: baseURL,
		Model:   model,
		client:  openai.NewClient(opts...),
	}
}

// Complete sends messages as a single chat completion request and returns the
// text content of the first choice.
func (c *Client) Complete(ctx context.Context, messages []Message, params Params) (string, error) {
	req, err := c.buildParams(messages, params)
	if err != nil {
		return "", err
	}

	resp, err := c.client.Chat.Completions.New(ctx, req)
	if err != nil {
		return "", translateError(err)
	}

	if len(resp.Choices) == 0 {
		return "", ErrNoChoices
	}

	return resp.Choices[0].Message.Content, nil
}

func (c *Client) buildParams(messages []Message, params Params) (openai.ChatCompletionNewParams, error) {
	model := strings.TrimSpace(params.Model)
	if model == "" {
		model = c.Model
	}
	if model == "" {
		return openai.ChatCompletionNewParams{}, fmt.Errorf("model is required")
	}
	if len(messages) == 0 {
		return openai.ChatCompletionNewParams{}, fmt.Errorf("messages are required")
	}

	converted := make([]openai.ChatCompletionMessageParamUnion, 0, len(messages))
	for _, msg := range messages {
		param, err := toChatMessageParam(msg)
		if err != nil {
			return openai.ChatCompletionNewParams{}, err
		}
		converted = append(converted, param)
	}

	req := openai.ChatCompletionNewParams{
		Model:    openai.ChatModel(model),
		Messages: converted,
	}
	if params.Temperature > 0 {
		req.Temperature = openai.Float(params.Temperature)
	}
	if params.MaxTokens > 0 {
		req.MaxTokens = openai.Int(int64(params.MaxTokens))
	}

	return req, nil
}

func toChatMessageParam(msg Message) (openai.ChatCompletionMessageParamUnion, error) {
	switch msg.Role {
	case RoleSystem:
		return openai.SystemMessage(msg.Content), nil
	case RoleUser:
		return openai.UserMessage(msg.Content), nil
	case RoleAssistant:
		return openai.AssistantMessage(msg.Content), nil
	default:
		return openai.ChatCompletionMessageParamUnion{}, fmt.Errorf("unsupported role: %s", msg.Role)
	}
}
