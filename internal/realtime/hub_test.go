package realtime

import (
	"encoding/json"
	"sync"
	"testing"

	"github.com/nikitavr/sociable/pkg/logger"
)

func TestMain(m *testing.M) {
	logger.Init()
	m.Run()
}

func TestHub_RegisterUnregister(t *testing.T) {
	hub := NewHub()
	client := NewClient(1, nil)

	if hub.IsOnline(1) {
		t.Error("IsOnline(1) = true before registration")
	}

	hub.Register(client)
	if !hub.IsOnline(1) {
		t.Error("IsOnline(1) = false after registration")
	}

	hub.Unregister(client)
	if hub.IsOnline(1) {
		t.Error("IsOnline(1) = true after unregistration")
	}

	// The send queue is closed so WritePump can exit
	if _, ok := <-client.send; ok {
		t.Error("send queue still open after unregistration")
	}
}

func TestHub_UnregisterTwice(t *testing.T) {
	hub := NewHub()
	client := NewClient(1, nil)

	hub.Register(client)
	hub.Unregister(client)
	// A second unregister must not close the queue again
	hub.Unregister(client)
}

func TestHub_MultipleConnectionsPerUser(t *testing.T) {
	hub := NewHub()
	first := NewClient(1, nil)
	second := NewClient(1, nil)

	hub.Register(first)
	hub.Register(second)

	hub.Unregister(first)
	if !hub.IsOnline(1) {
		t.Error("IsOnline(1) = false while a second connection remains")
	}

	hub.Unregister(second)
	if hub.IsOnline(1) {
		t.Error("IsOnline(1) = true after both connections left")
	}
}

func TestHub_NotifyDeliversToAllConnections(t *testing.T) {
	hub := NewHub()
	first := NewClient(7, nil)
	second := NewClient(7, nil)
	other := NewClient(8, nil)
	hub.Register(first)
	hub.Register(second)
	hub.Register(other)

	payload := MessagePayload{
		ID:        42,
		Sender:    UserRef{Username: "alice"},
		Recipient: UserRef{Username: "bob"},
		Body:      "hello",
	}
	hub.Notify(7, payload)

	for _, client := range []*Client{first, second} {
		select {
		case data := <-client.send:
			var got MessagePayload
			if err := json.Unmarshal(data, &got); err != nil {
				t.Fatalf("failed to decode frame: %v", err)
			}
			if got.ID != 42 || got.Body != "hello" {
				t.Errorf("frame = %+v, want id 42 body %q", got, "hello")
			}
		default:
			t.Error("connection received no frame")
		}
	}

	select {
	case <-other.send:
		t.Error("unrelated user received a frame")
	default:
	}
}

func TestHub_NotifyOfflineUserIsNoop(t *testing.T) {
	hub := NewHub()
	hub.Notify(99, MessagePayload{ID: 1, Body: "into the void"})
}

func TestHub_NotifyRacingUnregisterDoesNotPanic(t *testing.T) {
	hub := NewHub()
	client := NewClient(1, nil)
	hub.Register(client)

	// Notify snapshots the client set before delivering; the client can
	// unregister in between and the delivery must degrade to a drop.
	snapshot := hub.clientsOf(1)
	if len(snapshot) != 1 {
		t.Fatalf("snapshot = %d clients, want 1", len(snapshot))
	}
	hub.Unregister(client)

	if snapshot[0].trySend([]byte("late frame")) {
		t.Error("trySend = true after unregistration")
	}
}

func TestHub_ConcurrentNotifyAndUnregister(t *testing.T) {
	hub := NewHub()
	payload := MessagePayload{ID: 1, Body: "racing"}

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		client := NewClient(1, nil)
		hub.Register(client)

		wg.Add(2)
		go func() {
			defer wg.Done()
			hub.Notify(1, payload)
		}()
		go func() {
			defer wg.Done()
			hub.Unregister(client)
		}()
		wg.Wait()
	}
}

func TestHub_NotifySkipsSlowClient(t *testing.T) {
	hub := NewHub()
	client := NewClient(1, nil)
	hub.Register(client)

	payload := MessagePayload{ID: 1, Body: "flood"}
	for i := 0; i < sendQueueSize; i++ {
		if !client.trySend([]byte("filler")) {
			t.Fatalf("queue filled early at %d", i)
		}
	}

	// The full queue must not block the caller
	hub.Notify(1, payload)

	if len(client.send) != sendQueueSize {
		t.Errorf("queue length = %d, want %d (overflow frame dropped)",
			len(client.send), sendQueueSize)
	}
}
