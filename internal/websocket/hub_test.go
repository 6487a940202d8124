package websocket

import (
	"encoding/json"
	"errors"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap/zaptest"

	"github.com/samvaad-ai/samvaad/domain/entities"
)

func dialTestHub(t *testing.T, hub *Hub) *websocket.Conn {
	logger := zaptest.NewLogger(t)

	e := echo.New()
	e.GET("/ws", func(c echo.Context) error {
		return HandleWebSocket(hub, c, logger)
	})
	server := httptest.NewServer(e)
	t.Cleanup(server.Close)

	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("Failed to dial websocket: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func waitForClients(t *testing.T, hub *Hub, want int) {
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if hub.ClientCount() == want {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("Expected %d clients, got %d", want, hub.ClientCount())
}

func TestBroadcastReachesConnectedClient(t *testing.T) {
	hub := NewHub(zaptest.NewLogger(t))
	go hub.Run()

	conn := dialTestHub(t, hub)
	waitForClients(t, hub, 1)

	hub.Broadcast(NewStageEvent("run-1", entities.StageResult{
		Stage:    entities.StageTranscribing,
		Text:     "hello",
		Duration: 120 * time.Millisecond,
	}))

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, payload, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("Failed to read broadcast: %v", err)
	}

	var event StageEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		t.Fatalf("Failed to parse event: %v", err)
	}
	if event.Type != "stage" || event.RunID != "run-1" {
		t.Errorf("Unexpected event envelope: %+v", event)
	}
	if event.Stage != "Transcribing" || event.Text != "hello" {
		t.Errorf("Unexpected event body: %+v", event)
	}
	if event.DurationMs != 120 {
		t.Errorf("Expected 120ms duration, got %d", event.DurationMs)
	}
}

func TestClientCountListener(t *testing.T) {
	hub := NewHub(zaptest.NewLogger(t))

	counts := make(chan int, 4)
	hub.SetCountListener(func(n int) { counts <- n })
	go hub.Run()

	conn := dialTestHub(t, hub)
	waitForClients(t, hub, 1)

	select {
	case n := <-counts:
		if n != 1 {
			t.Errorf("Expected count 1 after connect, got %d", n)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Listener not invoked after connect")
	}

	conn.Close()
	waitForClients(t, hub, 0)
}

func TestNewStageEventRendersFailureMarker(t *testing.T) {
	event := NewStageEvent("run-2", entities.StageResult{
		Stage: entities.StageSynthesizing,
		Err:   errors.New("upstream returned 500"),
	})

	if event.Error != "[TTS failed]" {
		t.Errorf("Expected the bracketed marker, got %q", event.Error)
	}
	if strings.Contains(event.Error, "500") {
		t.Error("Raw upstream error must not leak into the event")
	}
}

func TestNewStageEventDegraded(t *testing.T) {
	event := NewStageEvent("run-3", entities.StageResult{
		Stage:    entities.StageTranslatingIn,
		Text:     "text" + entities.TranslationFailedMarker,
		Degraded: true,
	})

	if !event.Degraded {
		t.Error("Expected degraded flag carried through")
	}
	if event.Error != "" {
		t.Errorf("Degraded stage is not an error, got %q", event.Error)
	}
}
