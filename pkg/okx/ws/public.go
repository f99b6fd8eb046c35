package ws

import (
	"context"
	"sync"
	"time"

	"github.com/fd1az/okx-client/internal/logger"
	"github.com/fd1az/okx-client/internal/wsconn"
	"github.com/fd1az/okx-client/pkg/okx"
)

// publicChannelOrder fixes the replay order after a reconnect: ticker data
// first (so dependent price views never see a stale last print), then
// trades, then order-book deltas (which depend on a fresh snapshot being
// re-requested anyway), then the slow-moving instruments channel last.
var publicChannelOrder = []string{"tickers", "trades", "books", "books5", "bbo-tbt", "books-l2-tbt", "books50-l2-tbt", "instruments"}

// PublicSession is the OKX public WebSocket channel group: tickers, trades,
// order-book, and instrument updates. No login is required.
type PublicSession struct {
	*Session

	mergeMu sync.Mutex
	merges  map[string]*Merge
}

// NewPublicSession creates a public session; Connect dials cfg's
// PublicWSDomain.
func NewPublicSession(log logger.LoggerInterface) *PublicSession {
	return &PublicSession{
		Session: NewSession("public", log, publicChannelOrder),
		merges:  make(map[string]*Merge),
	}
}

// Connect dials the public WebSocket endpoint.
func (p *PublicSession) Connect(ctx context.Context, cfg okx.Config) error {
	wsCfg := wsconn.DefaultConfig(cfg.PublicWSDomain, "okx-public")
	return p.Session.Connect(ctx, wsCfg)
}

// SubscribeTicker streams "tickers" updates for instID.
func (p *PublicSession) SubscribeTicker(ctx context.Context, instID string, h func(TickerData)) error {
	arg := Arg{Channel: "tickers", InstID: instID}
	p.RegisterHandler(arg, func(push Push) {
		rows, err := unmarshalInto[TickerData](push)
		if err != nil {
			return
		}
		for _, row := range rows {
			h(row)
		}
	})
	return p.Subscribe(ctx, arg)
}

// SubscribeTrades streams "trades" updates for instID.
func (p *PublicSession) SubscribeTrades(ctx context.Context, instID string, h func(TradeData)) error {
	arg := Arg{Channel: "trades", InstID: instID}
	p.RegisterHandler(arg, func(push Push) {
		rows, err := unmarshalInto[TradeData](push)
		if err != nil {
			return
		}
		for _, row := range rows {
			h(row)
		}
	})
	return p.Subscribe(ctx, arg)
}

// SubscribeInstruments streams "instruments" state-change updates for a
// product type (SPOT/MARGIN/SWAP/FUTURES/OPTION).
func (p *PublicSession) SubscribeInstruments(ctx context.Context, instType string, h func(InstrumentData)) error {
	arg := Arg{Channel: "instruments", InstType: instType}
	p.RegisterHandler(arg, func(push Push) {
		rows, err := unmarshalInto[InstrumentData](push)
		if err != nil {
			return
		}
		for _, row := range rows {
			h(row)
		}
	})
	return p.Subscribe(ctx, arg)
}

// channelForSize maps a BookSize to its wire channel name. All five
// variants are served on the public channel set; books-l2-tbt and
// books50-l2-tbt additionally require VIP5/VIP4 fee-tier access
// respectively, which OKX enforces server-side via the subscribe ack.
func channelForSize(size BookSize) string {
	return size.Channel()
}

// SubscribeOrderBook streams order-book deltas for instID at the given
// depth, maintaining a live Merge and invoking h with the merged Snapshot
// on every change. Returns the Merge so callers can install OnDesync.
func (p *PublicSession) SubscribeOrderBook(ctx context.Context, instID string, size BookSize, h func(Snapshot)) (*Merge, error) {
	merge := NewMerge(instID, size)
	p.mergeMu.Lock()
	p.merges[instID+"|"+string(size)] = merge
	p.mergeMu.Unlock()

	arg := Arg{Channel: channelForSize(size), InstID: instID}
	p.RegisterHandler(arg, func(push Push) {
		rows, err := unmarshalInto[BookData](push)
		if err != nil {
			return
		}
		changed := false
		for _, row := range rows {
			if merge.Handle(row.toEvent()) {
				changed = true
			}
		}
		if changed {
			h(merge.Snapshot())
		}
	})
	return merge, p.Subscribe(ctx, arg)
}

// UnsubscribeOrderBook tears down a SubscribeOrderBook subscription.
func (p *PublicSession) UnsubscribeOrderBook(ctx context.Context, instID string, size BookSize) error {
	arg := Arg{Channel: channelForSize(size), InstID: instID}
	p.mergeMu.Lock()
	delete(p.merges, instID+"|"+string(size))
	p.mergeMu.Unlock()
	p.UnregisterHandler(arg)
	return p.Unsubscribe(ctx, arg)
}

// WaitConnected blocks until the public session is connected or ctx expires.
func (p *PublicSession) WaitConnected(ctx context.Context) error {
	return p.Session.waitConnected(ctx, 50*time.Millisecond)
}
