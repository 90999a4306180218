package pkg

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// Failure classes of an exchange, matched with errors.Is by callers. A
// transport failure and a malformed body are distinct from a well-formed
// reply that simply carries no output.
var (
	ErrInvalidResponse = errors.New("chat: response body is not valid JSON")
	ErrNoOutput        = errors.New("chat: response has no output field")
)

type ChatRequest struct {
	Message string `json:"message"`
	UserID  string `json:"user_id"`
}

type ChatResponse struct {
	Output string `json:"output"`
}

// ChatClient talks to the external support AI endpoint. There is no
// client-enforced timeout or retry; a submission runs to completion or
// failure.
type ChatClient struct {
	client   *http.Client
	endpoint string
}

func NewChatClient(endpoint string) *ChatClient {
	return &ChatClient{
		client:   &http.Client{},
		endpoint: endpoint,
	}
}

// Send posts one user message and returns the assistant output
func (c *ChatClient) Send(message, userID string) (string, error) {
	jsonBody, err := json.Marshal(ChatRequest{Message: message, UserID: userID})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request body: %v", err)
	}

	req, err := http.NewRequest("POST", c.endpoint, bytes.NewBuffer(jsonBody))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %v", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %v", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("request failed with status %d: %s", resp.StatusCode, string(body))
	}

	// The body is read as text first, then parsed; a non-JSON body is a
	// distinct failure from an HTTP-level one.
	var response ChatResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}

	if response.Output == "" {
		return "", ErrNoOutput
	}

	return response.Output, nil
}
