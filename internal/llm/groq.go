package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"portfolio-chat-backend/internal/config"
	"portfolio-chat-backend/internal/prompt"
	"portfolio-chat-backend/internal/types"
)

// Completer turns a conversation history into the next assistant message.
// Implementations own the system prompt and any provider-specific request shape.
type Completer interface {
	Complete(ctx context.Context, history []types.Message) (types.Message, error)
}

var ErrNoChoices = errors.New("upstream returned no choices")

// StatusError is a non-success answer from the upstream provider.
// Body holds the raw response body for diagnostics.
type StatusError struct {
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("Groq API error: %d", e.Status)
}

// GroqClient calls an OpenAI-compatible chat completion endpoint (Groq by default).
type GroqClient struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	persona    *prompt.Persona
}

// NewGroqClient builds a client; a nil httpClient uses a transport with default timeouts only.
func NewGroqClient(baseURL, apiKey string, persona *prompt.Persona, httpClient *http.Client) *GroqClient {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	if strings.TrimSpace(baseURL) == "" {
		baseURL = config.DefaultGroqBaseURL
	}
	return &GroqClient{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		persona:    persona,
	}
}

// completionRequest mirrors openai.ChatCompletionRequest but always serialises
// stream, max_tokens and temperature, which the upstream expects explicitly.
type completionRequest struct {
	Model       string                         `json:"model"`
	Messages    []openai.ChatCompletionMessage `json:"messages"`
	Stream      bool                           `json:"stream"`
	MaxTokens   int                            `json:"max_tokens"`
	Temperature float32                        `json:"temperature"`
}

func (c *GroqClient) Complete(ctx context.Context, history []types.Message) (types.Message, error) {
	if c.apiKey == "" {
		return types.Message{}, config.ErrMissingAPIKey
	}

	body, err := json.Marshal(c.buildRequest(history))
	if err != nil {
		return types.Message{}, fmt.Errorf("encode completion request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return types.Message{}, fmt.Errorf("build completion request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return types.Message{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(resp.Body)
		return types.Message{}, &StatusError{Status: resp.StatusCode, Body: string(raw)}
	}

	var out openai.ChatCompletionResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return types.Message{}, fmt.Errorf("decode completion response: %w", err)
	}
	if len(out.Choices) == 0 {
		return types.Message{}, ErrNoChoices
	}
	choice := out.Choices[0].Message
	role := types.Role(choice.Role)
	if role == "" {
		role = types.RoleAssistant
	}
	return types.Message{Role: role, Content: choice.Content}, nil
}

func (c *GroqClient) buildRequest(history []types.Message) completionRequest {
	sys := c.persona.SystemMessage()
	messages := make([]openai.ChatCompletionMessage, 0, len(history)+1)
	messages = append(messages, openai.ChatCompletionMessage{Role: string(sys.Role), Content: sys.Content})
	for _, m := range history {
		messages = append(messages, openai.ChatCompletionMessage{Role: string(m.Role), Content: m.Content})
	}
	return completionRequest{
		Model:       c.persona.Style.Model,
		Messages:    messages,
		Stream:      false,
		MaxTokens:   c.persona.Style.MaxTokens,
		Temperature: c.persona.Style.Temperature,
	}
}
