package ollama

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/user/quickbite/pkg/llm"
)

func TestOllamaClient(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/generate" {
			t.Errorf("expected path '/api/generate', got %q", r.URL.Path)
		}

		body, _ := io.ReadAll(r.Body)
		var reqBody map[string]any
		json.Unmarshal(body, &reqBody)

		if reqBody["model"] != "deepseek-r1:latest" {
			t.Errorf("expected model 'deepseek-r1:latest', got %v", reqBody["model"])
		}
		if reqBody["system"] != "You classify intents." {
			t.Errorf("system prompt not forwarded, got %v", reqBody["system"])
		}
		if reqBody["prompt"] != "hello" {
			t.Errorf("expected prompt 'hello', got %v", reqBody["prompt"])
		}
		if reqBody["stream"] != false {
			t.Errorf("expected stream false, got %v", reqBody["stream"])
		}

		resp := map[string]any{
			"response":          "order",
			"prompt_eval_count": 12,
			"eval_count":        3,
		}
		json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	config := &llm.Config{
		BaseURL: server.URL,
		Model:   "deepseek-r1:latest",
	}
	client := New(config)

	resp, err := client.Complete(context.Background(), []llm.Message{
		{Role: "system", Content: "You classify intents."},
		{Role: "user", Content: "hello"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if resp.Content != "order" {
		t.Errorf("expected 'order', got %q", resp.Content)
	}
	if resp.Usage.TotalTokens != 15 {
		t.Errorf("expected 15 total tokens, got %d", resp.Usage.TotalTokens)
	}
}

func TestOllamaClientServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":"model not found"}`))
	}))
	defer server.Close()

	client := New(&llm.Config{BaseURL: server.URL, Model: "missing"})
	_, err := client.Complete(context.Background(), []llm.Message{
		{Role: "user", Content: "hello"},
	})
	if err == nil {
		t.Fatal("expected error for 500 response")
	}
}

func TestOllamaClientProviderInterface(t *testing.T) {
	var _ llm.Provider = (*Client)(nil)
}
