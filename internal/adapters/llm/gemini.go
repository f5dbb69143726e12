// Package llm provides generative-text provider adapters.
// Clean Architecture: Adapters implementing ports.Completer.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/0xcro3dile/collegebot-go/internal/domain/entities"
	"github.com/0xcro3dile/collegebot-go/internal/domain/ports"
)

const (
	defaultGeminiBaseURL = "https://generativelanguage.googleapis.com/v1"
	defaultGeminiModel   = "models/gemini-2.5-flash"

	generateTimeout  = 20 * time.Second
	discoveryTimeout = 8 * time.Second
)

// GeminiClient implements ports.Completer against the Gemini REST API.
//
// Auth transport: header-based key auth first; on any non-success status the
// same request is retried exactly once, immediately, with query-parameter key
// auth instead. That is an auth-transport fallback, not a backoff retry.
type GeminiClient struct {
	baseURL   string
	key       string
	client    *http.Client // generation calls
	discovery *http.Client // lightweight ListModels call
	log       *zap.Logger
}

// NewGeminiClient creates a Gemini adapter. baseURL may be empty for the
// public endpoint.
func NewGeminiClient(baseURL, key string, log *zap.Logger) *GeminiClient {
	if baseURL == "" {
		baseURL = defaultGeminiBaseURL
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &GeminiClient{
		baseURL:   strings.TrimRight(baseURL, "/"),
		key:       key,
		client:    &http.Client{Timeout: generateTimeout},
		discovery: &http.Client{Timeout: discoveryTimeout},
		log:       log,
	}
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Role  string       `json:"role"`
	Parts []geminiPart `json:"parts"`
}

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []geminiPart `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

type geminiModelList struct {
	Models []struct {
		Name                       string   `json:"name"`
		SupportedGenerationMethods []string `json:"supportedGenerationMethods"`
	} `json:"models"`
}

// Complete sends the conversation to the generation endpoint and returns the
// first candidate's first text part. ports.ErrNoReply signals a successful
// call with no extractable text.
func (c *GeminiClient) Complete(ctx context.Context, history []entities.ChatMessage) (string, error) {
	req := geminiRequest{Contents: make([]geminiContent, 0, len(history))}
	for _, m := range history {
		role := "model"
		if m.Role == "user" {
			role = "user"
		}
		req.Contents = append(req.Contents, geminiContent{Role: role, Parts: []geminiPart{{Text: m.Content}}})
	}

	body, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	model := c.discoverModel(ctx)
	url := c.baseURL + "/" + model + ":generateContent"

	resp, err := c.post(ctx, url, body, true)
	if err != nil {
		return "", fmt.Errorf("calling gemini: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		// Auth-transport fallback: once, immediately, query-parameter key.
		// Only a non-success status triggers it; transport failures surface.
		resp, err = c.post(ctx, url+"?key="+c.key, body, false)
		if err != nil {
			return "", fmt.Errorf("calling gemini: %w", err)
		}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		text, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("gemini returned status %d: %s", resp.StatusCode, text)
	}

	var genResp geminiResponse
	if err := json.NewDecoder(resp.Body).Decode(&genResp); err != nil {
		return "", fmt.Errorf("decoding response: %w", err)
	}

	if len(genResp.Candidates) == 0 || len(genResp.Candidates[0].Content.Parts) == 0 {
		return "", ports.ErrNoReply
	}
	text := genResp.Candidates[0].Content.Parts[0].Text
	if strings.TrimSpace(text) == "" {
		return "", ports.ErrNoReply
	}
	return text, nil
}

func (c *GeminiClient) post(ctx context.Context, url string, body []byte, headerAuth bool) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if headerAuth {
		req.Header.Set("x-goog-api-key", c.key)
	}
	return c.client.Do(req)
}

// discoverModel queries the ListModels endpoint and picks the first model
// advertising generateContent. Discovery failures are non-fatal and logged;
// the fixed default model is the fallback either way.
func (c *GeminiClient) discoverModel(ctx context.Context) string {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/models?key="+c.key, nil)
	if err != nil {
		return defaultGeminiModel
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.discovery.Do(req)
	if err != nil {
		c.log.Warn("gemini model discovery failed", zap.Error(err))
		return defaultGeminiModel
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.log.Warn("gemini model discovery failed", zap.Int("status", resp.StatusCode))
		return defaultGeminiModel
	}

	var list geminiModelList
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		c.log.Warn("gemini model discovery returned malformed body", zap.Error(err))
		return defaultGeminiModel
	}

	for _, m := range list.Models {
		for _, method := range m.SupportedGenerationMethods {
			if method == "generateContent" {
				return m.Name
			}
		}
	}
	return defaultGeminiModel
}
