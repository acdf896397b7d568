package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestOllamaProvider_ExtractJSON_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/generate" {
			t.Errorf("Expected path /api/generate, got %s", r.URL.Path)
		}

		var req ollamaRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("Failed to decode request: %v", err)
		}
		if req.Format != "json" {
			t.Errorf("Expected JSON format mode, got %q", req.Format)
		}
		if req.Stream {
			t.Error("Expected non-streaming request")
		}

		resp := ollamaResponse{
			Model:    "llama3:8b",
			Response: `{"loan_amount_numeric": 5000000, "applicant_name": "Rahul Sharma"}`,
			Done:     true,
		}
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	provider, err := NewOllamaProvider(Config{
		BaseURL: server.URL,
		Model:   "llama3:8b",
	})
	if err != nil {
		t.Fatalf("Failed to create provider: %v", err)
	}

	raw, err := provider.ExtractJSON(context.Background(), ExtractRequest{
		Prompt: "extract loan amount",
	})
	if err != nil {
		t.Fatalf("ExtractJSON failed: %v", err)
	}

	var out map[string]any
	if err := json.Unmarshal(raw, &out); err != nil {
		t.Fatalf("Response is not valid JSON: %v", err)
	}
	if out["applicant_name"] != "Rahul Sharma" {
		t.Errorf("Unexpected applicant name: %v", out["applicant_name"])
	}
}

func TestOllamaProvider_ExtractJSON_StripsFences(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		resp := ollamaResponse{
			Model:    "llama3:8b",
			Response: "```json\n{\"name\": \"ok\"}\n```",
			Done:     true,
		}
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	provider, _ := NewOllamaProvider(Config{BaseURL: server.URL, Model: "llama3:8b"})

	raw, err := provider.ExtractJSON(context.Background(), ExtractRequest{Prompt: "x"})
	if err != nil {
		t.Fatalf("ExtractJSON failed: %v", err)
	}

	var out map[string]string
	if err := json.Unmarshal(raw, &out); err != nil {
		t.Fatalf("Fenced response not cleaned: %v (raw: %s)", err, raw)
	}
	if out["name"] != "ok" {
		t.Errorf("Unexpected value: %v", out)
	}
}

func TestOllamaProvider_ExtractJSON_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error": "model not found"}`))
	}))
	defer server.Close()

	provider, _ := NewOllamaProvider(Config{BaseURL: server.URL, Model: "llama3:8b"})

	_, err := provider.ExtractJSON(context.Background(), ExtractRequest{Prompt: "x"})
	if err == nil {
		t.Fatal("Expected error, got nil")
	}
	if !strings.Contains(err.Error(), "model not found") {
		t.Errorf("Expected error to carry API message, got %v", err)
	}
}

func TestOllamaProvider_ExtractJSON_MissingModel(t *testing.T) {
	provider, _ := NewOllamaProvider(Config{BaseURL: "http://localhost:11434"})

	_, err := provider.ExtractJSON(context.Background(), ExtractRequest{Prompt: "x"})
	if err == nil {
		t.Fatal("Expected error for missing model name")
	}
}

func TestOllamaProvider_IsAvailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/tags" {
			t.Errorf("Expected path /api/tags, got %s", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"models": []}`))
	}))
	defer server.Close()

	provider, _ := NewOllamaProvider(Config{BaseURL: server.URL})
	if !provider.IsAvailable(context.Background()) {
		t.Error("Expected provider to be available")
	}

	server.Close()
	if provider.IsAvailable(context.Background()) {
		t.Error("Expected provider to be unavailable after server close")
	}
}
