package ws

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestMerge_SnapshotThenDeltas(t *testing.T) {
	m := NewMerge("BTC-USDT", BookSizeDepth400)

	ok := m.Handle(Event{
		PrevSeqID: -1,
		SeqID:     100,
		Bids:      [][]string{{"10", "1", "0", "1"}, {"9", "2", "0", "1"}},
		Asks:      [][]string{{"11", "1", "0", "1"}, {"12", "2", "0", "1"}},
	})
	if !ok {
		t.Fatal("initial snapshot should report a change")
	}

	snap := m.Snapshot()
	if len(snap.Bids) != 2 || len(snap.Asks) != 2 {
		t.Fatalf("unexpected snapshot shape: %+v", snap)
	}
	if !snap.Bids[0].Price.Equal(decimal.RequireFromString("10")) {
		t.Fatalf("best bid should be 10, got %s", snap.Bids[0].Price)
	}
	if !snap.Asks[0].Price.Equal(decimal.RequireFromString("11")) {
		t.Fatalf("best ask should be 11, got %s", snap.Asks[0].Price)
	}

	ok = m.Handle(Event{
		PrevSeqID: 100,
		SeqID:     101,
		Bids:      [][]string{{"10", "0", "0", "0"}},
		Asks:      nil,
	})
	if !ok {
		t.Fatal("delta removing a level should report a change")
	}

	snap = m.Snapshot()
	if len(snap.Bids) != 1 || !snap.Bids[0].Price.Equal(decimal.RequireFromString("9")) {
		t.Fatalf("expected only the 9 bid level to remain, got %+v", snap.Bids)
	}
}

func TestMerge_SeqGapInvokesOnDesyncAndDropsEvent(t *testing.T) {
	m := NewMerge("BTC-USDT", BookSizeDepth400)
	m.Handle(Event{PrevSeqID: -1, SeqID: 100, Bids: [][]string{{"10", "1", "0", "1"}}})

	desynced := make(chan struct{}, 1)
	m.OnDesync(func(instID string, gotPrev, wantSeq int64) {
		desynced <- struct{}{}
	})

	ok := m.Handle(Event{PrevSeqID: 999, SeqID: 200, Bids: [][]string{{"20", "1", "0", "1"}}})
	if ok {
		t.Fatal("a sequence gap should not be reported as a successful merge")
	}

	select {
	case <-desynced:
	case <-time.After(time.Second):
		t.Fatal("expected OnDesync to fire")
	}

	if m.SeqID() != 100 {
		t.Fatalf("seqID should remain at the last good value, got %d", m.SeqID())
	}
}

func TestMerge_Books5FullReplaceEachPush(t *testing.T) {
	m := NewMerge("BTC-USDT", BookSizeDepth5)
	m.Handle(Event{PrevSeqID: -1, SeqID: 1, Bids: [][]string{{"10", "1", "0", "1"}, {"9", "1", "0", "1"}}})
	m.Handle(Event{PrevSeqID: -1, SeqID: 2, Bids: [][]string{{"11", "1", "0", "1"}}})

	snap := m.Snapshot()
	if len(snap.Bids) != 1 || !snap.Bids[0].Price.Equal(decimal.RequireFromString("11")) {
		t.Fatalf("books5 push should fully replace the prior book, got %+v", snap.Bids)
	}
}
