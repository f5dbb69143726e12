package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/0xcro3dile/collegebot-go/internal/domain/entities"
	"github.com/0xcro3dile/collegebot-go/internal/domain/ports"
)

func geminiModelListBody(names ...string) []byte {
	type model struct {
		Name                       string   `json:"name"`
		SupportedGenerationMethods []string `json:"supportedGenerationMethods"`
	}
	var list struct {
		Models []model `json:"models"`
	}
	for _, n := range names {
		list.Models = append(list.Models, model{Name: n, SupportedGenerationMethods: []string{"generateContent"}})
	}
	b, _ := json.Marshal(list)
	return b
}

func geminiGenerateBody(text string) []byte {
	resp := map[string]any{
		"candidates": []map[string]any{
			{"content": map[string]any{"parts": []map[string]any{{"text": text}}}},
		},
	}
	b, _ := json.Marshal(resp)
	return b
}

func TestGeminiClient_HeaderAuthSuccess(t *testing.T) {
	var generateCalls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet && r.URL.Path == "/models" {
			w.Write(geminiModelListBody("models/test-model"))
			return
		}
		generateCalls++
		if r.Header.Get("x-goog-api-key") != "secret" {
			t.Errorf("missing header auth, got %q", r.Header.Get("x-goog-api-key"))
		}
		w.Write(geminiGenerateBody("hello"))
	}))
	defer server.Close()

	c := NewGeminiClient(server.URL, "secret", nil)
	text, err := c.Complete(context.Background(), []entities.ChatMessage{{Role: "user", Content: "hi"}})
	if err != nil {
		t.Fatalf("complete failed: %v", err)
	}
	if text != "hello" {
		t.Errorf("got %q, want hello", text)
	}
	if generateCalls != 1 {
		t.Errorf("expected a single generate call, got %d", generateCalls)
	}
}

func TestGeminiClient_QueryAuthRetryOnUnauthorized(t *testing.T) {
	var generateCalls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet && r.URL.Path == "/models" {
			w.Write(geminiModelListBody("models/test-model"))
			return
		}
		generateCalls++
		if r.URL.Query().Get("key") == "" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Write(geminiGenerateBody("via query auth"))
	}))
	defer server.Close()

	c := NewGeminiClient(server.URL, "secret", nil)
	text, err := c.Complete(context.Background(), []entities.ChatMessage{{Role: "user", Content: "hi"}})
	if err != nil {
		t.Fatalf("complete failed: %v", err)
	}
	if text != "via query auth" {
		t.Errorf("got %q", text)
	}
	if generateCalls != 2 {
		t.Errorf("expected exactly one retry, got %d calls", generateCalls)
	}
}

// A transport-level failure surfaces directly; only a non-success status
// triggers the query-auth retry.
func TestGeminiClient_TransportErrorIsNotRetried(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	c := NewGeminiClient(server.URL, "secret", nil)
	_, err := c.Complete(context.Background(), []entities.ChatMessage{{Role: "user", Content: "hi"}})
	if err == nil {
		t.Fatal("expected a transport error")
	}
	if !strings.Contains(err.Error(), "calling gemini") {
		t.Errorf("unexpected error %v", err)
	}
}

func TestGeminiClient_DiscoverySelectsModel(t *testing.T) {
	var generatePath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet && r.URL.Path == "/models" {
			w.Write(geminiModelListBody("models/discovered-model"))
			return
		}
		generatePath = r.URL.Path
		w.Write(geminiGenerateBody("ok"))
	}))
	defer server.Close()

	c := NewGeminiClient(server.URL, "secret", nil)
	if _, err := c.Complete(context.Background(), []entities.ChatMessage{{Role: "user", Content: "hi"}}); err != nil {
		t.Fatalf("complete failed: %v", err)
	}
	if generatePath != "/models/discovered-model:generateContent" {
		t.Errorf("generate path = %q", generatePath)
	}
}

func TestGeminiClient_DiscoveryFailureFallsBackToDefault(t *testing.T) {
	var generatePath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet && r.URL.Path == "/models" {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		generatePath = r.URL.Path
		w.Write(geminiGenerateBody("ok"))
	}))
	defer server.Close()

	c := NewGeminiClient(server.URL, "secret", nil)
	if _, err := c.Complete(context.Background(), []entities.ChatMessage{{Role: "user", Content: "hi"}}); err != nil {
		t.Fatalf("complete failed: %v", err)
	}
	if !strings.HasSuffix(generatePath, "/models/gemini-2.5-flash:generateContent") {
		t.Errorf("generate path = %q, want the default model", generatePath)
	}
}

func TestGeminiClient_EmptyCandidatesIsErrNoReply(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet && r.URL.Path == "/models" {
			w.Write(geminiModelListBody("models/test-model"))
			return
		}
		w.Write([]byte(`{"candidates":[]}`))
	}))
	defer server.Close()

	c := NewGeminiClient(server.URL, "secret", nil)
	_, err := c.Complete(context.Background(), []entities.ChatMessage{{Role: "user", Content: "hi"}})
	if !errors.Is(err, ports.ErrNoReply) {
		t.Fatalf("got %v, want ErrNoReply", err)
	}
}

func TestGeminiClient_MapsRoles(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet && r.URL.Path == "/models" {
			w.Write(geminiModelListBody("models/test-model"))
			return
		}
		var req geminiRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("bad request body: %v", err)
		}
		if len(req.Contents) != 2 || req.Contents[0].Role != "user" || req.Contents[1].Role != "model" {
			t.Errorf("unexpected roles in %+v", req.Contents)
		}
		w.Write(geminiGenerateBody("ok"))
	}))
	defer server.Close()

	c := NewGeminiClient(server.URL, "secret", nil)
	history := []entities.ChatMessage{
		{Role: "user", Content: "hi"},
		{Role: "assistant", Content: "hello"},
	}
	if _, err := c.Complete(context.Background(), history); err != nil {
		t.Fatalf("complete failed: %v", err)
	}
}
