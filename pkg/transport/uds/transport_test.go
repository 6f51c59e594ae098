package uds

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/modoterra/logforge/pkg/core"
)

func startTestServer(t *testing.T) (*Server, string, context.CancelFunc) {
	t.Helper()

	sock := filepath.Join(t.TempDir(), "test.sock")
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	srv := NewServer(sock, logger)
	srv.Handle(MethodPing, func(_ context.Context, _ Message) (any, error) {
		return PingResponse{Pong: true}, nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	go srv.Start(ctx)

	// Wait for socket to appear
	for i := 0; i < 50; i++ {
		if _, err := os.Stat(sock); err == nil {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}

	return srv, sock, cancel
}

func TestPingRoundTrip(t *testing.T) {
	srv, sock, cancel := startTestServer(t)
	defer cancel()
	defer srv.Shutdown()

	client, err := Dial(sock)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer client.Close()

	ctx, reqCancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer reqCancel()

	resp, err := client.Request(ctx, MethodPing, nil)
	if err != nil {
		t.Fatalf("ping request: %v", err)
	}

	var pong PingResponse
	if err := resp.UnmarshalData(&pong); err != nil {
		t.Fatalf("unmarshal pong: %v", err)
	}
	if !pong.Pong {
		t.Error("expected pong=true")
	}
}

func TestUnknownMethod(t *testing.T) {
	srv, sock, cancel := startTestServer(t)
	defer cancel()
	defer srv.Shutdown()

	client, err := Dial(sock)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer client.Close()

	ctx, reqCancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer reqCancel()

	if _, err := client.Request(ctx, "NoSuchMethod", nil); err == nil {
		t.Error("expected error for unknown method")
	}
}

func TestBroadcastEmission(t *testing.T) {
	srv, sock, cancel := startTestServer(t)
	defer cancel()
	defer srv.Shutdown()

	client, err := Dial(sock)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer client.Close()

	evtCh := make(chan Message, 1)
	client.OnEvent(func(msg Message) {
		evtCh <- msg
	})

	// Ensure the connection is established by doing a ping first
	pingCtx, pingCancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer pingCancel()
	if _, err := client.Request(pingCtx, MethodPing, nil); err != nil {
		t.Fatalf("ping: %v", err)
	}

	emission := core.Emission{Category: core.CategoryAuth, TsUnixMs: 123, Line: "test line"}
	evt, _ := NewEvent(EventEmitLine, emission)
	srv.Broadcast(evt)

	select {
	case msg := <-evtCh:
		if msg.Method != EventEmitLine {
			t.Errorf("expected method %s, got %s", EventEmitLine, msg.Method)
		}
		var got core.Emission
		if err := msg.UnmarshalData(&got); err != nil {
			t.Fatalf("unmarshal emission: %v", err)
		}
		if got.Category != core.CategoryAuth || got.Line != "test line" {
			t.Errorf("unexpected emission payload: %+v", got)
		}
	case <-time.After(2 * time.Second):
		t.Error("timeout waiting for broadcast event")
	}
}
