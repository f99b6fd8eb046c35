// Package ws implements the OKX WebSocket surface: public/private/business
// sessions over internal/wsconn, channel subscription bookkeeping, and the
// order-book merge engine.
package ws

import (
	"fmt"
	"sort"
	"strconv"
	"sync"

	"github.com/shopspring/decimal"
)

// BookSize distinguishes the five order-book channel variants OKX serves,
// each with different merge semantics and access tiers.
type BookSize string

const (
	// BookSizeDepth400 is the incremental books channel: apply deltas on
	// top of a snapshot identified by prevSeqID == -1.
	BookSizeDepth400 BookSize = "books"
	// BookSizeDepth5 is a full top-5 snapshot on every push.
	BookSizeDepth5 BookSize = "books5"
	// BookSizeBBOTBT is a full top-1 (best bid/offer) snapshot on every
	// tick-by-tick push.
	BookSizeBBOTBT BookSize = "bbo-tbt"
	// BookSizeL2TBT is the incremental 400-depth channel pushed every 10ms
	// instead of every 100ms. Requires VIP5 fee-tier access or above.
	BookSizeL2TBT BookSize = "books-l2-tbt"
	// BookSizeDepth50L2TBT is the incremental 50-depth channel pushed every
	// 10ms. Requires VIP4 fee-tier access or above.
	BookSizeDepth50L2TBT BookSize = "books50-l2-tbt"
)

// Channel renders size as its wire channel name.
func (size BookSize) Channel() string {
	return string(size)
}

// FromChannel parses a wire channel name back into a BookSize, reporting ok
// false for anything that isn't one of the five order-book channels.
func FromChannel(channel string) (size BookSize, ok bool) {
	switch BookSize(channel) {
	case BookSizeDepth400, BookSizeDepth5, BookSizeBBOTBT, BookSizeL2TBT, BookSizeDepth50L2TBT:
		return BookSize(channel), true
	default:
		return "", false
	}
}

// Level is one price level: price, amount, and the resting order count at
// that price.
type Level struct {
	Price      decimal.Decimal
	Amount     decimal.Decimal
	OrderCount uint32
}

// parseLevel decodes the 4-tuple OKX sends per level: [price, size,
// deprecated liquidated-orders count, order count].
func parseLevel(w []string) (decimal.Decimal, Level, error) {
	if len(w) < 4 {
		return decimal.Decimal{}, Level{}, fmt.Errorf("order book level has %d fields, want 4", len(w))
	}
	price, err := decimal.NewFromString(w[0])
	if err != nil {
		return decimal.Decimal{}, Level{}, fmt.Errorf("parse price: %w", err)
	}
	amount, err := decimal.NewFromString(w[1])
	if err != nil {
		return decimal.Decimal{}, Level{}, fmt.Errorf("parse amount: %w", err)
	}
	count, err := strconv.ParseUint(w[3], 10, 32)
	if err != nil {
		return decimal.Decimal{}, Level{}, fmt.Errorf("parse order count: %w", err)
	}
	return price, Level{Price: price, Amount: amount, OrderCount: uint32(count)}, nil
}

// Event is one incremental (or snapshot) order-book push.
type Event struct {
	PrevSeqID int64
	SeqID     int64
	Bids      [][]string
	Asks      [][]string
}

// Snapshot is the flattened, sorted view returned after merging an event.
// Asks are ascending by price (best ask first); bids are descending by
// price (best bid first).
type Snapshot struct {
	InstID string
	SeqID  int64
	Asks   []Level
	Bids   []Level
}

// Merge accumulates order-book deltas for a single instrument into a
// consistent full-depth view.
type Merge struct {
	mu     sync.RWMutex
	instID string
	size   BookSize
	seqID  int64
	asks   map[string]Level // keyed by price.String() for stable ordering via re-parse
	bids   map[string]Level

	// onDesync, if set, is invoked whenever a gap is detected (seqID
	// mismatch) instead of silently dropping the event. Callers typically
	// resubscribe to re-snapshot.
	onDesync func(instID string, gotPrevSeqID, wantSeqID int64)
}

// NewMerge creates an empty merge engine for one instrument/size pair.
func NewMerge(instID string, size BookSize) *Merge {
	return &Merge{
		instID: instID,
		size:   size,
		seqID:  -1,
		asks:   make(map[string]Level),
		bids:   make(map[string]Level),
	}
}

// OnDesync installs a callback fired when a sequence gap is detected.
func (m *Merge) OnDesync(f func(instID string, gotPrevSeqID, wantSeqID int64)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onDesync = f
}

// Handle applies one event to the book. It returns true if the event
// carried levels and was applied, i.e. a snapshot should be published. An
// event with no levels on either side returns false, including a snapshot
// (prevSeqID == -1) that has just cleared the book.
func (m *Merge) Handle(event Event) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if event.PrevSeqID == -1 {
		m.clearLocked()
	} else if m.seqID != event.PrevSeqID {
		if m.onDesync != nil {
			cb := m.onDesync
			gotPrev, wantSeq := event.PrevSeqID, m.seqID
			go cb(m.instID, gotPrev, wantSeq)
		}
		return false
	}

	m.seqID = event.SeqID
	if len(event.Bids) == 0 && len(event.Asks) == 0 {
		return false
	}

	if m.size == BookSizeDepth5 || m.size == BookSizeBBOTBT {
		m.clearLocked()
	}

	for _, raw := range event.Bids {
		price, level, err := parseLevel(raw)
		if err != nil {
			continue
		}
		if level.Amount.IsZero() {
			delete(m.bids, price.String())
		} else {
			m.bids[price.String()] = level
		}
	}

	for _, raw := range event.Asks {
		price, level, err := parseLevel(raw)
		if err != nil {
			continue
		}
		if level.Amount.IsZero() {
			delete(m.asks, price.String())
		} else {
			m.asks[price.String()] = level
		}
	}

	return true
}

func (m *Merge) clearLocked() {
	m.asks = make(map[string]Level)
	m.bids = make(map[string]Level)
}

// Snapshot returns the current full-depth view: asks ascending, bids
// descending, both sorted by price.
func (m *Merge) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	asks := make([]Level, 0, len(m.asks))
	for _, l := range m.asks {
		asks = append(asks, l)
	}
	sort.Slice(asks, func(i, j int) bool { return asks[i].Price.LessThan(asks[j].Price) })

	bids := make([]Level, 0, len(m.bids))
	for _, l := range m.bids {
		bids = append(bids, l)
	}
	sort.Slice(bids, func(i, j int) bool { return bids[i].Price.GreaterThan(bids[j].Price) })

	return Snapshot{InstID: m.instID, SeqID: m.seqID, Asks: asks, Bids: bids}
}

// SeqID returns the last applied sequence ID, or -1 if no snapshot has been
// applied yet.
func (m *Merge) SeqID() int64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.seqID
}
