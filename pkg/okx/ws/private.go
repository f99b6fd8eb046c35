package ws

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fd1az/okx-client/internal/apperror"
	"github.com/fd1az/okx-client/internal/logger"
	"github.com/fd1az/okx-client/internal/wsconn"
	"github.com/fd1az/okx-client/pkg/okx"
	"github.com/fd1az/okx-client/pkg/okx/sign"
)

// AuthState is the private session's auth sub-state-machine.
type AuthState int32

const (
	AuthStateUnauth AuthState = iota
	AuthStateInFlight
	AuthStateAuthed
)

// privateChannelOrder mirrors publicChannelOrder's rationale: account
// balance before per-instrument-type order streams.
var privateChannelOrder = []string{"account", "orders"}

// PrivateSession is the OKX private WebSocket channel group: account
// balance and order updates. Requires login before any subscription is
// accepted by the server. Subscription replay is gated on the login
// envelope's success code, never fired blind after sending the login frame.
type PrivateSession struct {
	*Session

	signer sign.Signer

	authState atomic.Int32

	authMu       sync.Mutex
	onFinishAuth func(ok bool, code, msg string)
}

// NewPrivateSession creates a private session that signs its login
// challenge with signer.
func NewPrivateSession(log logger.LoggerInterface, signer sign.Signer) *PrivateSession {
	p := &PrivateSession{
		Session: NewSession("private", log, privateChannelOrder),
		signer:  signer,
	}
	p.authState.Store(int32(AuthStateUnauth))
	p.Session.OnConnected(p.login)
	p.Session.OnDisconnected(func() { p.authState.Store(int32(AuthStateUnauth)) })
	p.Session.OnOpResponse(p.handleOpResponse)
	return p
}

// OnFinishAuth installs a callback invoked once per login attempt: ok is
// true only when the server returned a success code. External OnConnected
// equivalents fire irrespective of auth outcome; this callback is the
// dedicated auth-outcome signal.
func (p *PrivateSession) OnFinishAuth(f func(ok bool, code, msg string)) {
	p.authMu.Lock()
	defer p.authMu.Unlock()
	p.onFinishAuth = f
}

// Connect dials the private WebSocket endpoint. Login is sent automatically
// once the transport connects; use WaitAuthed to block until it succeeds.
func (p *PrivateSession) Connect(ctx context.Context, cfg okx.Config) error {
	wsCfg := wsconn.DefaultConfig(cfg.PrivateWSDomain, "okx-private")
	return p.Session.Connect(ctx, wsCfg)
}

func (p *PrivateSession) login(ctx context.Context) {
	p.authState.Store(int32(AuthStateInFlight))

	now := time.Now()
	timestamp := sign.WSTimestamp(now)
	req := LoginRequest{
		Op: "login",
		Args: []LoginArg{{
			APIKey:     p.signer.Credentials.APIKey,
			Passphrase: p.signer.Credentials.Passphrase,
			Timestamp:  timestamp,
			Sign:       p.signer.WSLoginSign(timestamp),
		}},
	}
	if err := p.Session.send(ctx, req); err != nil {
		p.log.Warn(ctx, "failed to send websocket login", "error", err)
		p.authState.Store(int32(AuthStateUnauth))
	}
}

func (p *PrivateSession) handleOpResponse(resp OpResponse) {
	if resp.Event != "login" {
		return
	}

	ok := resp.Code == "0"
	if ok {
		p.authState.Store(int32(AuthStateAuthed))
		go p.Session.replaySubscriptions(context.Background())
	} else {
		p.authState.Store(int32(AuthStateUnauth))
	}

	p.authMu.Lock()
	cb := p.onFinishAuth
	p.authMu.Unlock()
	if cb != nil {
		go cb(ok, resp.Code, resp.Msg)
	}
}

// State returns the current auth sub-state.
func (p *PrivateSession) State() AuthState {
	return AuthState(p.authState.Load())
}

// WaitConnected blocks until the transport connects (irrespective of auth
// outcome) or ctx expires.
func (p *PrivateSession) WaitConnected(ctx context.Context) error {
	return p.Session.waitConnected(ctx, 50*time.Millisecond)
}

// WaitAuthed blocks until login succeeds or ctx expires.
func (p *PrivateSession) WaitAuthed(ctx context.Context) error {
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()
	for {
		if p.State() == AuthStateAuthed {
			return nil
		}
		select {
		case <-ctx.Done():
			return apperror.New(apperror.CodeNotConnected, apperror.WithContext("private session never authenticated"))
		case <-ticker.C:
		}
	}
}

// SubscribeAccount streams balance updates on every change.
func (p *PrivateSession) SubscribeAccount(ctx context.Context, h func(AccountData)) error {
	arg := Arg{Channel: "account"}
	p.RegisterHandler(arg, func(push Push) {
		rows, err := unmarshalInto[AccountData](push)
		if err != nil {
			return
		}
		for _, row := range rows {
			h(row)
		}
	})
	return p.Subscribe(ctx, arg)
}

// SubscribeOrders streams order-state updates for one product type
// (SPOT/MARGIN/SWAP/FUTURES/OPTION).
func (p *PrivateSession) SubscribeOrders(ctx context.Context, instType string, h func(OrderData)) error {
	arg := Arg{Channel: "orders", InstType: instType}
	p.RegisterHandler(arg, func(push Push) {
		rows, err := unmarshalInto[OrderData](push)
		if err != nil {
			return
		}
		for _, row := range rows {
			h(row)
		}
	})
	return p.Subscribe(ctx, arg)
}

// UnsubscribeAccount tears down a SubscribeAccount subscription.
func (p *PrivateSession) UnsubscribeAccount(ctx context.Context) error {
	arg := Arg{Channel: "account"}
	p.UnregisterHandler(arg)
	return p.Unsubscribe(ctx, arg)
}

// UnsubscribeOrders tears down a SubscribeOrders subscription.
func (p *PrivateSession) UnsubscribeOrders(ctx context.Context, instType string) error {
	arg := Arg{Channel: "orders", InstType: instType}
	p.UnregisterHandler(arg)
	return p.Unsubscribe(ctx, arg)
}
