package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/0xcro3dile/collegebot-go/internal/domain/entities"
	"github.com/0xcro3dile/collegebot-go/internal/domain/ports"
)

func openAIBody(content string) []byte {
	resp := map[string]any{
		"choices": []map[string]any{
			{"message": map[string]any{"content": content}},
		},
	}
	b, _ := json.Marshal(resp)
	return b
}

func TestOpenAIClient_Complete(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer secret" {
			t.Errorf("missing bearer auth, got %q", r.Header.Get("Authorization"))
		}
		var req openAIRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("bad request body: %v", err)
		}
		if req.Model != "gpt-4o-mini" {
			t.Errorf("model = %q", req.Model)
		}
		if req.MaxTokens != 512 {
			t.Errorf("max_tokens = %d", req.MaxTokens)
		}
		w.Write(openAIBody("the answer"))
	}))
	defer server.Close()

	c := NewOpenAIClient(server.URL, "secret", "")
	text, err := c.Complete(context.Background(), []entities.ChatMessage{{Role: "user", Content: "hi"}})
	if err != nil {
		t.Fatalf("complete failed: %v", err)
	}
	if text != "the answer" {
		t.Errorf("got %q", text)
	}
}

func TestOpenAIClient_NonOKStatusErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	c := NewOpenAIClient(server.URL, "secret", "")
	if _, err := c.Complete(context.Background(), []entities.ChatMessage{{Role: "user", Content: "hi"}}); err == nil {
		t.Fatal("expected an error")
	}
}

func TestOpenAIClient_EmptyChoicesIsErrNoReply(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[]}`))
	}))
	defer server.Close()

	c := NewOpenAIClient(server.URL, "secret", "")
	_, err := c.Complete(context.Background(), []entities.ChatMessage{{Role: "user", Content: "hi"}})
	if !errors.Is(err, ports.ErrNoReply) {
		t.Fatalf("got %v, want ErrNoReply", err)
	}
}

func TestOpenAIClient_NormalizesRoles(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req openAIRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("bad request body: %v", err)
		}
		if len(req.Messages) != 2 || req.Messages[0].Role != "user" || req.Messages[1].Role != "assistant" {
			t.Errorf("unexpected roles in %+v", req.Messages)
		}
		w.Write(openAIBody("ok"))
	}))
	defer server.Close()

	c := NewOpenAIClient(server.URL, "secret", "")
	history := []entities.ChatMessage{
		{Role: "user", Content: "hi"},
		{Role: "model", Content: "hello"},
	}
	if _, err := c.Complete(context.Background(), history); err != nil {
		t.Fatalf("complete failed: %v", err)
	}
}
