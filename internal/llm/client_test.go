package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"arscenario/internal/config"
)

func TestTransientError(t *testing.T) {
	base := errors.New("rate limit exceeded (429)")
	wrapped := Transient(base)

	if !IsTransient(wrapped) {
		t.Error("wrapped error should be transient")
	}
	if !errors.Is(wrapped, base) {
		t.Error("wrapped error should unwrap to the base error")
	}
	if IsTransient(base) {
		t.Error("bare error should not be transient")
	}
	if IsTransient(fmt.Errorf("context: %w", wrapped)) != true {
		t.Error("transience should survive further wrapping")
	}
	if Transient(nil) != nil {
		t.Error("Transient(nil) should be nil")
	}
}

func TestFactory(t *testing.T) {
	client, err := New(context.Background(), config.LLMConfig{
		Provider: "openai",
		APIKey:   "sk-test",
		Model:    "gpt-5",
		Timeout:  "30s",
	})
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := client.(*OpenAIClient); !ok {
		t.Errorf("client = %T, want *OpenAIClient", client)
	}

	if _, err := New(context.Background(), config.LLMConfig{Provider: "smoke-signals"}); err == nil {
		t.Error("unknown provider should fail")
	}
}

func TestOpenAIClientCompletes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer sk-test" {
			t.Errorf("authorization = %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"choices":[{"message":{"content":"{\"ok\":true}"},"finish_reason":"stop"}]}`)
	}))
	defer srv.Close()

	client := NewOpenAIClientWithConfig(OpenAIConfig{
		APIKey:  "sk-test",
		BaseURL: srv.URL,
		Model:   "gpt-5",
	})

	out, err := client.CompleteWithSystem(context.Background(), "system", "user")
	if err != nil {
		t.Fatal(err)
	}
	if out != `{"ok":true}` {
		t.Errorf("completion = %q", out)
	}
}

func TestOpenAIClientServerErrorIsTransient(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream exploded", http.StatusBadGateway)
	}))
	defer srv.Close()

	client := NewOpenAIClientWithConfig(OpenAIConfig{
		APIKey:  "sk-test",
		BaseURL: srv.URL,
		Model:   "gpt-5",
	})

	_, err := client.CompleteWithSystem(context.Background(), "", "user")
	if err == nil {
		t.Fatal("expected error")
	}
	if !IsTransient(err) {
		t.Errorf("5xx failure should be transient: %v", err)
	}
}

func TestOpenAIClientRequiresKey(t *testing.T) {
	client := NewOpenAIClient("")
	if _, err := client.Complete(context.Background(), "hello"); err == nil {
		t.Error("missing key should fail fast")
	}
}
