package realtime

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

func newClient(buffer int) *Client {
	return &Client{ID: "test-client", Send: make(chan []byte, buffer)}
}

func TestRegisterUnregister(t *testing.T) {
	hub := NewHub(zerolog.Nop())
	client := newClient(1)

	hub.Register(client)
	if got := hub.ClientCount(); got != 1 {
		t.Fatalf("expected 1 client after register, got %d", got)
	}

	hub.Unregister(client)
	if got := hub.ClientCount(); got != 0 {
		t.Fatalf("expected 0 clients after unregister, got %d", got)
	}

	// The send channel must be closed so the write pump terminates.
	select {
	case _, open := <-client.Send:
		if open {
			t.Fatal("expected Send channel to be closed")
		}
	default:
		t.Fatal("expected Send channel to be closed, but it would block")
	}
}

func TestUnregisterUnknownClient(t *testing.T) {
	hub := NewHub(zerolog.Nop())
	client := newClient(1)

	// Must not panic or close the channel of a client that was never registered.
	hub.Unregister(client)

	select {
	case <-client.Send:
		t.Fatal("Send channel must stay open for an unregistered client")
	default:
	}
}

func TestUnregisterTwice(t *testing.T) {
	hub := NewHub(zerolog.Nop())
	client := newClient(1)

	hub.Register(client)
	hub.Unregister(client)
	hub.Unregister(client) // second call must be a no-op, not a double close
}

func TestBroadcastReachesAllClients(t *testing.T) {
	hub := NewHub(zerolog.Nop())
	a := &Client{ID: "a", Send: make(chan []byte, 1)}
	b := &Client{ID: "b", Send: make(chan []byte, 1)}
	hub.Register(a)
	hub.Register(b)

	hub.Broadcast(Event{Type: "newAppointment", Timestamp: time.Now()})

	for _, client := range []*Client{a, b} {
		select {
		case raw := <-client.Send:
			var evt Event
			if err := json.Unmarshal(raw, &evt); err != nil {
				t.Fatalf("client %s received invalid JSON: %v", client.ID, err)
			}
			if evt.Type != "newAppointment" {
				t.Fatalf("client %s received type %q", client.ID, evt.Type)
			}
		default:
			t.Fatalf("client %s received nothing", client.ID)
		}
	}
}

func TestBroadcastSkipsSlowConsumer(t *testing.T) {
	hub := NewHub(zerolog.Nop())
	slow := &Client{ID: "slow", Send: make(chan []byte)} // unbuffered, nobody reading
	fast := &Client{ID: "fast", Send: make(chan []byte, 1)}
	hub.Register(slow)
	hub.Register(fast)

	done := make(chan struct{})
	go func() {
		hub.Broadcast(Event{Type: "newAppointment", Timestamp: time.Now()})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Broadcast blocked on a slow consumer")
	}

	select {
	case <-fast.Send:
	default:
		t.Fatal("fast client must still receive the event")
	}
}

func TestPublishAppointment(t *testing.T) {
	hub := NewHub(zerolog.Nop())
	client := newClient(1)
	hub.Register(client)

	hub.PublishAppointment(map[string]string{"fullName": "Ali Valiyev", "time": "10:00"})

	raw := <-client.Send
	var evt Event
	if err := json.Unmarshal(raw, &evt); err != nil {
		t.Fatalf("invalid event JSON: %v", err)
	}
	if evt.Type != "newAppointment" {
		t.Fatalf("expected type newAppointment, got %q", evt.Type)
	}
	if evt.Timestamp.IsZero() {
		t.Fatal("expected a non-zero timestamp")
	}

	var data map[string]string
	if err := json.Unmarshal(evt.Data, &data); err != nil {
		t.Fatalf("invalid event data: %v", err)
	}
	if data["fullName"] != "Ali Valiyev" {
		t.Fatalf("unexpected event data %v", data)
	}
}

func TestHandleConnect_StreamsEvents(t *testing.T) {
	gin.SetMode(gin.TestMode)
	hub := NewHub(zerolog.Nop())

	router := gin.New()
	router.GET("/ws", hub.HandleConnect)
	server := httptest.NewServer(router)
	defer server.Close()

	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("failed to dial websocket: %v", err)
	}
	defer conn.Close()

	// The register happens in the handler goroutine; wait for it.
	deadline := time.Now().Add(time.Second)
	for hub.ClientCount() == 0 {
		if time.Now().After(deadline) {
			t.Fatal("client never registered")
		}
		time.Sleep(5 * time.Millisecond)
	}

	hub.PublishAppointment(map[string]string{"fullName": "Gulnora"})

	conn.SetReadDeadline(time.Now().Add(time.Second))
	_, raw, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("failed to read broadcast frame: %v", err)
	}

	var evt Event
	if err := json.Unmarshal(raw, &evt); err != nil {
		t.Fatalf("invalid frame: %v", err)
	}
	if evt.Type != "newAppointment" {
		t.Fatalf("expected newAppointment, got %q", evt.Type)
	}

	conn.Close()
	deadline = time.Now().Add(time.Second)
	for hub.ClientCount() != 0 {
		if time.Now().After(deadline) {
			t.Fatal("client never unregistered after disconnect")
		}
		time.Sleep(5 * time.Millisecond)
	}
}
