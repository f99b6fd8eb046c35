package ws

import (
	"context"
	"encoding/json"
	"sync/atomic"
	"testing"
	"time"

	"github.com/coder/websocket"

	"github.com/fd1az/okx-client/internal/wsconn"
)

func TestSession_Subscribe_IsIdempotentOnRepeatedArg(t *testing.T) {
	opCh := make(chan OpRequest, 4)
	server := mockWSServer(t, func(conn *websocket.Conn) {
		for {
			op, err := readOpOrClosed(conn)
			if err != nil {
				return
			}
			opCh <- op
		}
	})

	ctx, cancel := context.WithTimeout(context.Background(), testTimeout)
	defer cancel()

	s := NewSession("test", &mockLogger{}, publicChannelOrder)
	defer s.Close()

	wsCfg := wsconn.DefaultConfig(wsURL(server.URL), "test")
	if err := s.Connect(ctx, wsCfg); err != nil {
		t.Fatalf("Connect: %v", err)
	}

	arg := Arg{Channel: "tickers", InstID: "BTC-USDT"}
	if err := s.Subscribe(ctx, arg); err != nil {
		t.Fatalf("Subscribe: %v", err)
	}

	select {
	case op := <-opCh:
		if op.Op != "subscribe" || len(op.Args) != 1 || op.Args[0] != arg {
			t.Fatalf("unexpected first subscribe frame: %+v", op)
		}
	case <-time.After(testTimeout):
		t.Fatal("timed out waiting for first subscribe frame")
	}

	if err := s.Subscribe(ctx, arg); err != nil {
		t.Fatalf("Subscribe (repeat): %v", err)
	}

	// The repeat must not produce any wire traffic: nothing else should show
	// up on opCh within a short grace window.
	select {
	case op := <-opCh:
		t.Fatalf("repeated Subscribe sent a second wire frame: %+v", op)
	case <-time.After(200 * time.Millisecond):
	}

	if len(s.subs) != 1 {
		t.Fatalf("expected one tracked subscription, got %d", len(s.subs))
	}
}

func TestSession_ReplaySubscriptions_SendsOneFramePerArg(t *testing.T) {
	opCh := make(chan OpRequest, 8)
	server := mockWSServer(t, func(conn *websocket.Conn) {
		for {
			op, err := readOpOrClosed(conn)
			if err != nil {
				return
			}
			opCh <- op
		}
	})

	ctx, cancel := context.WithTimeout(context.Background(), testTimeout)
	defer cancel()

	s := NewSession("test", &mockLogger{}, publicChannelOrder)
	defer s.Close()

	wsCfg := wsconn.DefaultConfig(wsURL(server.URL), "test")
	if err := s.Connect(ctx, wsCfg); err != nil {
		t.Fatalf("Connect: %v", err)
	}

	tickerArg := Arg{Channel: "tickers", InstID: "BTC-USDT"}
	tradesArg := Arg{Channel: "trades", InstID: "BTC-USDT"}
	if err := s.Subscribe(ctx, tickerArg, tradesArg); err != nil {
		t.Fatalf("Subscribe: %v", err)
	}
	drainOps(t, opCh, 1) // the initial combined subscribe frame

	s.replaySubscriptions(ctx)

	got := drainOps(t, opCh, 2)
	for _, op := range got {
		if op.Op != "subscribe" || len(op.Args) != 1 {
			t.Fatalf("expected one arg per replay frame, got %+v", op)
		}
	}
	if got[0].Args[0].Channel != "tickers" || got[1].Args[0].Channel != "trades" {
		t.Fatalf("expected tickers before trades per channelOrder, got %+v then %+v", got[0], got[1])
	}
}

func TestSession_ForcedReconnect_ReplaysSubscriptions(t *testing.T) {
	var connCount atomic.Int32
	replayed := make(chan OpRequest, 8)
	server := mockWSServer(t, func(conn *websocket.Conn) {
		n := connCount.Add(1)
		if n == 1 {
			// Accept the initial subscribe, then drop the connection to force
			// a reconnect.
			if _, err := readOpOrClosed(conn); err != nil {
				return
			}
			conn.Close(websocket.StatusGoingAway, "forced drop")
			return
		}
		for {
			op, err := readOpOrClosed(conn)
			if err != nil {
				return
			}
			replayed <- op
		}
	})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	s := NewSession("test", &mockLogger{}, publicChannelOrder)
	defer s.Close()

	wsCfg := wsconn.DefaultConfig(wsURL(server.URL), "test")
	wsCfg.InitialBackoff = 20 * time.Millisecond
	wsCfg.MaxBackoff = 100 * time.Millisecond
	if err := s.Connect(ctx, wsCfg); err != nil {
		t.Fatalf("Connect: %v", err)
	}

	args := []Arg{
		{Channel: "tickers", InstID: "BTC-USDT"},
		{Channel: "tickers", InstID: "ETH-USDT"},
	}
	if err := s.Subscribe(ctx, args...); err != nil {
		t.Fatalf("Subscribe: %v", err)
	}

	// After the forced drop, the reconnect must re-issue one subscribe frame
	// per tracked arg on the fresh connection.
	got := drainOps(t, replayed, 2)
	seen := map[string]bool{}
	for _, op := range got {
		if op.Op != "subscribe" || len(op.Args) != 1 {
			t.Fatalf("expected single-arg subscribe frames on replay, got %+v", op)
		}
		seen[op.Args[0].InstID] = true
	}
	if !seen["BTC-USDT"] || !seen["ETH-USDT"] {
		t.Fatalf("replay missed an instrument: %+v", got)
	}
}

func readOpOrClosed(conn *websocket.Conn) (OpRequest, error) {
	_, data, err := conn.Read(context.Background())
	if err != nil {
		return OpRequest{}, err
	}
	var op OpRequest
	if err := json.Unmarshal(data, &op); err != nil {
		return OpRequest{}, err
	}
	return op, nil
}

func drainOps(t *testing.T, opCh <-chan OpRequest, n int) []OpRequest {
	t.Helper()
	ops := make([]OpRequest, 0, n)
	for i := 0; i < n; i++ {
		select {
		case op := <-opCh:
			ops = append(ops, op)
		case <-time.After(testTimeout):
			t.Fatalf("timed out waiting for op %d/%d", i+1, n)
		}
	}
	return ops
}

func TestSortByChannelOrder_PlacesUnknownChannelsLastInInputOrder(t *testing.T) {
	order := []string{"tickers", "trades", "books"}
	args := []Arg{
		{Channel: "instruments", InstType: "SPOT"},
		{Channel: "books", InstID: "BTC-USDT"},
		{Channel: "tickers", InstID: "ETH-USDT"},
		{Channel: "trades", InstID: "BTC-USDT"},
	}

	sorted := sortByChannelOrder(args, order)

	want := []string{"tickers", "trades", "books", "instruments"}
	for i, ch := range want {
		if sorted[i].Channel != ch {
			t.Fatalf("position %d: got channel %q, want %q (full order: %+v)", i, sorted[i].Channel, ch, sorted)
		}
	}
}
