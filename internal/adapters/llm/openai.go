package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/0xcro3dile/collegebot-go/internal/domain/entities"
	"github.com/0xcro3dile/collegebot-go/internal/domain/ports"
)

const (
	defaultOpenAIBaseURL = "https://api.openai.com/v1"
	defaultOpenAIModel   = "gpt-4o-mini"
	openAIMaxTokens      = 512
)

// OpenAIClient implements ports.Completer against an OpenAI-style
// chat-completions API. It is the secondary provider in the fallback chain.
type OpenAIClient struct {
	baseURL string
	key     string
	model   string
	client  *http.Client
}

// NewOpenAIClient creates an OpenAI adapter. baseURL and model may be empty
// for the official endpoint and default model.
func NewOpenAIClient(baseURL, key, model string) *OpenAIClient {
	if baseURL == "" {
		baseURL = defaultOpenAIBaseURL
	}
	if model == "" {
		model = defaultOpenAIModel
	}
	return &OpenAIClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		key:     key,
		model:   model,
		client:  &http.Client{Timeout: generateTimeout},
	}
}

type openAIRequest struct {
	Model     string                 `json:"model"`
	Messages  []entities.ChatMessage `json:"messages"`
	MaxTokens int                    `json:"max_tokens"`
}

type openAIResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Complete sends an OpenAI-style chat-completion payload and returns the
// first choice's message content, or ports.ErrNoReply when it is empty.
func (c *OpenAIClient) Complete(ctx context.Context, history []entities.ChatMessage) (string, error) {
	messages := make([]entities.ChatMessage, 0, len(history))
	for _, m := range history {
		role := "assistant"
		if m.Role == "user" {
			role = "user"
		}
		messages = append(messages, entities.ChatMessage{Role: role, Content: m.Content})
	}

	body, err := json.Marshal(openAIRequest{Model: c.model, Messages: messages, MaxTokens: openAIMaxTokens})
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.key)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("calling openai: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		text, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("openai returned status %d: %s", resp.StatusCode, text)
	}

	var chatResp openAIResponse
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		return "", fmt.Errorf("decoding response: %w", err)
	}

	if len(chatResp.Choices) == 0 || strings.TrimSpace(chatResp.Choices[0].Message.Content) == "" {
		return "", ports.ErrNoReply
	}
	return chatResp.Choices[0].Message.Content, nil
}
