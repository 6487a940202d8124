package llm

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap/zaptest"

	"github.com/samvaad-ai/samvaad/domain/entities"
	"github.com/samvaad-ai/samvaad/domain/repositories"
)

func customServer(t *testing.T, status int, body string, lastBody *[]byte) *httptest.Server {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if lastBody != nil {
			b, _ := io.ReadAll(r.Body)
			*lastBody = b
		}
		w.WriteHeader(status)
		io.WriteString(w, body)
	}))
	t.Cleanup(server.Close)
	return server
}

func TestCustomCompleteSendsLastMessage(t *testing.T) {
	var captured []byte
	server := customServer(t, http.StatusOK, `{"response":"reply text"}`, &captured)

	custom, err := NewCustom(server.URL, "", zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("NewCustom failed: %v", err)
	}

	messages := []repositories.ChatMessage{
		{Role: repositories.UserRole, Content: "first"},
		{Role: repositories.AssistantRole, Content: "middle"},
		{Role: repositories.UserRole, Content: "latest question"},
	}
	reply, err := custom.Complete(context.Background(), messages)
	if err != nil {
		t.Fatalf("Complete failed: %v", err)
	}
	if reply.Text != "reply text" {
		t.Errorf("Expected 'reply text', got %q", reply.Text)
	}

	var payload customRequest
	if err := json.Unmarshal(captured, &payload); err != nil {
		t.Fatalf("Failed to parse request body: %v", err)
	}
	if payload.Message != "latest question" {
		t.Errorf("Expected the last message to be sent, got %q", payload.Message)
	}
}

func TestCustomCompleteFieldPrecedence(t *testing.T) {
	cases := []struct {
		name string
		body string
		want string
	}{
		{"response wins", `{"response":"a","message":"b","content":"c"}`, "a"},
		{"message next", `{"message":"b","content":"c"}`, "b"},
		{"content last", `{"content":"c"}`, "c"},
	}

	for _, c := range cases {
		server := customServer(t, http.StatusOK, c.body, nil)
		custom, err := NewCustom(server.URL, "", zaptest.NewLogger(t))
		if err != nil {
			t.Fatalf("NewCustom failed: %v", err)
		}

		reply, err := custom.Complete(context.Background(), []repositories.ChatMessage{{Role: repositories.UserRole, Content: "q"}})
		if err != nil {
			t.Fatalf("%s: Complete failed: %v", c.name, err)
		}
		if reply.Text != c.want {
			t.Errorf("%s: expected %q, got %q", c.name, c.want, reply.Text)
		}
	}
}

func TestCustomCompleteUnknownShapeReturnsRawBody(t *testing.T) {
	body := `{"weird":{"nested":"shape"}}`
	server := customServer(t, http.StatusOK, body, nil)

	custom, err := NewCustom(server.URL, "", zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("NewCustom failed: %v", err)
	}

	reply, err := custom.Complete(context.Background(), []repositories.ChatMessage{{Role: repositories.UserRole, Content: "q"}})
	if err != nil {
		t.Fatalf("Complete failed: %v", err)
	}
	if reply.Text != body {
		t.Errorf("Expected raw body fallback, got %q", reply.Text)
	}
	if string(reply.Raw) != body {
		t.Errorf("Expected raw body preserved, got %q", reply.Raw)
	}
}

func TestCustomCompleteNon200IsChatError(t *testing.T) {
	server := customServer(t, http.StatusInternalServerError, "boom", nil)

	custom, err := NewCustom(server.URL, "", zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("NewCustom failed: %v", err)
	}

	_, err = custom.Complete(context.Background(), []repositories.ChatMessage{{Role: repositories.UserRole, Content: "q"}})
	if !errors.Is(err, entities.ErrChat) {
		t.Errorf("Expected ErrChat, got %v", err)
	}
}

func TestCustomCompleteEmptyConversationFails(t *testing.T) {
	custom, err := NewCustom("http://localhost:1", "", zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("NewCustom failed: %v", err)
	}

	_, err = custom.Complete(context.Background(), nil)
	if !errors.Is(err, entities.ErrChat) {
		t.Errorf("Expected ErrChat for empty conversation, got %v", err)
	}
}

func TestCustomCompleteSendsBearerWhenConfigured(t *testing.T) {
	var auth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		io.WriteString(w, `{"response":"ok"}`)
	}))
	t.Cleanup(server.Close)

	custom, err := NewCustom(server.URL, "secret", zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("NewCustom failed: %v", err)
	}
	if _, err := custom.Complete(context.Background(), []repositories.ChatMessage{{Role: repositories.UserRole, Content: "q"}}); err != nil {
		t.Fatalf("Complete failed: %v", err)
	}
	if auth != "Bearer secret" {
		t.Errorf("Expected Bearer credential, got %q", auth)
	}
}
