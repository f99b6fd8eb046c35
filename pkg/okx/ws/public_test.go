package ws

import (
	"context"
	"testing"

	"github.com/coder/websocket"
)

func TestPublicSession_SubscribeTicker_DispatchesPushesToHandler(t *testing.T) {
	server := mockWSServer(t, func(conn *websocket.Conn) {
		op := readOp(t, conn)
		if op.Op != "subscribe" || len(op.Args) != 1 || op.Args[0].Channel != "tickers" {
			t.Errorf("unexpected subscribe op: %+v", op)
		}
		writeJSON(t, conn, OpResponse{Event: "subscribe", Arg: &op.Args[0]})
		writeJSON(t, conn, Push{
			Arg:  op.Args[0],
			Data: []byte(`[{"instId":"BTC-USDT","last":"50000"}]`),
		})
		<-context.Background().Done()
	})

	ctx, cancel := context.WithTimeout(context.Background(), testTimeout)
	defer cancel()

	p := NewPublicSession(&mockLogger{})
	defer p.Close()
	if err := p.Connect(ctx, testConfig(server.URL)); err != nil {
		t.Fatalf("Connect: %v", err)
	}

	received := make(chan TickerData, 1)
	if err := p.SubscribeTicker(ctx, "BTC-USDT", func(d TickerData) { received <- d }); err != nil {
		t.Fatalf("SubscribeTicker: %v", err)
	}

	select {
	case d := <-received:
		if d.Last != "50000" {
			t.Fatalf("unexpected ticker data: %+v", d)
		}
	case <-ctx.Done():
		t.Fatal("timed out waiting for ticker push")
	}
}

func TestPublicSession_SubscribeOrderBook_MergesAndInvokesSnapshotCallback(t *testing.T) {
	server := mockWSServer(t, func(conn *websocket.Conn) {
		op := readOp(t, conn)
		writeJSON(t, conn, OpResponse{Event: "subscribe", Arg: &op.Args[0]})
		writeJSON(t, conn, Push{
			Arg:    op.Args[0],
			Action: "snapshot",
			Data:   []byte(`[{"asks":[["101","1","0","1"]],"bids":[["100","1","0","1"]],"prevSeqId":-1,"seqId":1}]`),
		})
		<-context.Background().Done()
	})

	ctx, cancel := context.WithTimeout(context.Background(), testTimeout)
	defer cancel()

	p := NewPublicSession(&mockLogger{})
	defer p.Close()
	if err := p.Connect(ctx, testConfig(server.URL)); err != nil {
		t.Fatalf("Connect: %v", err)
	}

	snaps := make(chan Snapshot, 1)
	merge, err := p.SubscribeOrderBook(ctx, "BTC-USDT", BookSizeDepth400, func(s Snapshot) { snaps <- s })
	if err != nil {
		t.Fatalf("SubscribeOrderBook: %v", err)
	}
	if merge == nil {
		t.Fatal("expected a non-nil merge handle")
	}

	select {
	case s := <-snaps:
		if len(s.Bids) != 1 || s.Bids[0].Price.String() != "100" {
			t.Fatalf("unexpected snapshot: %+v", s)
		}
	case <-ctx.Done():
		t.Fatal("timed out waiting for order book snapshot")
	}
}

func TestChannelForSize_CoversAllFiveVariants(t *testing.T) {
	cases := map[BookSize]string{
		BookSizeDepth400:     "books",
		BookSizeDepth5:       "books5",
		BookSizeBBOTBT:       "bbo-tbt",
		BookSizeL2TBT:        "books-l2-tbt",
		BookSizeDepth50L2TBT: "books50-l2-tbt",
	}
	for size, want := range cases {
		if got := channelForSize(size); got != want {
			t.Errorf("channelForSize(%v) = %q, want %q", size, got, want)
		}
		parsed, ok := FromChannel(want)
		if !ok || parsed != size {
			t.Errorf("FromChannel(%q) = (%v, %v), want (%v, true)", want, parsed, ok, size)
		}
	}
}
