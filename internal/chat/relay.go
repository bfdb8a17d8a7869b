package chat

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"portfolio-chat-backend/internal/types"
)

const (
	chatPath = "/api/chat"

	unknownRelayError   = "Unknown error"
	unknownNetworkError = "Unknown error occurred"
)

// Sender delivers a conversation to the relay and returns its reply.
type Sender interface {
	Send(ctx context.Context, history []types.Message) (*types.Message, error)
}

// RelayClient posts conversations to a relay endpoint over HTTP.
type RelayClient struct {
	httpClient *http.Client
	baseURL    string
}

func NewRelayClient(baseURL string, httpClient *http.Client) *RelayClient {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &RelayClient{httpClient: httpClient, baseURL: strings.TrimRight(baseURL, "/")}
}

type relayResponse struct {
	Message *types.Message `json:"message"`
	Error   string         `json:"error"`
}

// Send posts the full history. A non-2xx answer becomes an error carrying the
// relay's error field.
func (c *RelayClient) Send(ctx context.Context, history []types.Message) (*types.Message, error) {
	body, err := json.Marshal(types.ChatRequest{Messages: history})
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+chatPath, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-Id", uuid.NewString())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var data relayResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("decode relay response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if strings.TrimSpace(data.Error) == "" {
			return nil, errors.New(unknownRelayError)
		}
		return nil, errors.New(data.Error)
	}
	return data.Message, nil
}

// ErrorText reduces any send failure to the string shown in the error banner.
func ErrorText(err error) string {
	if err == nil || strings.TrimSpace(err.Error()) == "" {
		return unknownNetworkError
	}
	return err.Error()
}
