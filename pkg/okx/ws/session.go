package ws

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/fd1az/okx-client/internal/apperror"
	"github.com/fd1az/okx-client/internal/logger"
	"github.com/fd1az/okx-client/internal/wsconn"
)

const tracerName = "okx.ws"

// wireMessage is decoded first to discriminate an op ack/error from a data
// push: pushes always carry "arg"+"data", acks always carry "event".
type wireMessage struct {
	Event  string          `json:"event"`
	Arg    Arg             `json:"arg"`
	Code   string          `json:"code"`
	Msg    string          `json:"msg"`
	Action string          `json:"action"`
	Data   json.RawMessage `json:"data"`
}

// Session wraps an internal/wsconn.Client with OKX's op/subscribe protocol:
// subscription bookkeeping, replay on reconnect, and demultiplexing pushes
// to per-channel handlers. Subscriptions go over the wire as explicit
// {"op":"subscribe","args":[...]} frames.
type Session struct {
	name   string
	conn   *wsconn.Client
	connMu sync.RWMutex
	log    logger.LoggerInterface
	tracer trace.Tracer

	handlers *handlerRegistry

	subsMu sync.Mutex
	subs   map[string]Arg

	// channelOrder fixes the replay sequence on reconnect
	// (ticker, trade, orderbook, instrument).
	// Channels absent from this list replay last; the order among args that
	// share a rank is not defined, since they are read from a map.
	channelOrder []string

	onOpResponse func(OpResponse)

	// onConnected, if set, runs instead of an immediate replaySubscriptions
	// when the transport reaches StateConnected. PrivateSession uses this to
	// log in first and gate replay on the login envelope's success code.
	onConnected func(ctx context.Context)

	// onDisconnected, if set, runs when the transport drops out of
	// StateConnected. PrivateSession resets its auth state here.
	onDisconnected func()
}

// OnConnected overrides what happens when the transport reaches
// StateConnected. If unset, tracked subscriptions replay immediately.
func (s *Session) OnConnected(f func(ctx context.Context)) {
	s.onConnected = f
}

// OnDisconnected installs a callback invoked when the transport drops.
func (s *Session) OnDisconnected(f func()) {
	s.onDisconnected = f
}

// NewSession creates an unconnected session; the wsconn configuration is
// supplied later to Connect.
func NewSession(name string, log logger.LoggerInterface, channelOrder []string) *Session {
	return &Session{
		name:         name,
		log:          log,
		tracer:       otel.Tracer(tracerName),
		handlers:     newHandlerRegistry(),
		subs:         make(map[string]Arg),
		channelOrder: channelOrder,
	}
}

// OnOpResponse installs a callback for subscribe/unsubscribe/login acks.
func (s *Session) OnOpResponse(f func(OpResponse)) {
	s.onOpResponse = f
}

// Connect dials the WebSocket endpoint and wires message dispatch. On
// reconnect, every tracked subscription is replayed in channelOrder.
func (s *Session) Connect(ctx context.Context, wsCfg wsconn.Config) error {
	conn, err := wsconn.New(wsCfg)
	if err != nil {
		return apperror.New(apperror.CodeWebSocketConnectionError, apperror.WithCause(err), apperror.WithContext(s.name))
	}
	conn.OnMessage(s.handleMessage)
	conn.OnStateChange(func(state wsconn.State, stateErr error) {
		switch state {
		case wsconn.StateConnected:
			if s.onConnected != nil {
				go s.onConnected(context.Background())
				return
			}
			go s.replaySubscriptions(context.Background())
		case wsconn.StateReconnecting, wsconn.StateDisconnected, wsconn.StateClosed:
			if s.onDisconnected != nil {
				go s.onDisconnected()
			}
		}
	})

	// Store conn before dialing: the StateConnected handler above runs during
	// ConnectWithRetry, and its login/replay goroutine sends through s.conn.
	s.connMu.Lock()
	s.conn = conn
	s.connMu.Unlock()

	if err := conn.ConnectWithRetry(ctx); err != nil {
		s.connMu.Lock()
		s.conn = nil
		s.connMu.Unlock()
		return apperror.New(apperror.CodeWebSocketConnectionError, apperror.WithCause(err), apperror.WithContext(s.name))
	}
	return nil
}

func (s *Session) handleMessage(ctx context.Context, data []byte) {
	var msg wireMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		s.log.Warn(ctx, "failed to decode websocket message", "session", s.name, "error", err)
		return
	}

	if msg.Event != "" {
		if msg.Code != "" && msg.Code != "0" {
			s.log.Warn(ctx, "server rejected operation",
				"session", s.name, "event", msg.Event, "code", msg.Code,
				"msg", msg.Msg, "channel", msg.Arg.Channel, "instId", msg.Arg.InstID)
		}
		resp := OpResponse{Event: msg.Event, Arg: &msg.Arg, Code: msg.Code, Msg: msg.Msg}
		if s.onOpResponse != nil {
			s.onOpResponse(resp)
		}
		return
	}

	push := Push{Arg: msg.Arg, Action: msg.Action, Data: msg.Data}
	if !s.handlers.dispatch(push) {
		s.log.Debug(ctx, "no handler registered for channel", "session", s.name, "channel", push.Arg.Channel, "instId", push.Arg.InstID)
	}
}

// RegisterHandler installs the handler invoked for pushes matching arg.
func (s *Session) RegisterHandler(arg Arg, h Handler) {
	s.handlers.register(arg, h)
}

// UnregisterHandler removes the handler for arg.
func (s *Session) UnregisterHandler(arg Arg) {
	s.handlers.unregister(arg)
}

// Subscribe sends a subscribe op and records the args for reconnect replay.
// Already-tracked args are dropped before the send: subscribe is idempotent,
// so repeating an arg that is already live produces no wire traffic.
func (s *Session) Subscribe(ctx context.Context, args ...Arg) error {
	s.subsMu.Lock()
	fresh := make([]Arg, 0, len(args))
	for _, a := range args {
		if _, ok := s.subs[a.key()]; !ok {
			fresh = append(fresh, a)
		}
	}
	s.subsMu.Unlock()

	if len(fresh) == 0 {
		return nil
	}

	if err := s.send(ctx, OpRequest{Op: "subscribe", Args: fresh}); err != nil {
		return err
	}
	s.subsMu.Lock()
	for _, a := range fresh {
		s.subs[a.key()] = a
	}
	s.subsMu.Unlock()
	return nil
}

// Unsubscribe sends an unsubscribe op and forgets the args.
func (s *Session) Unsubscribe(ctx context.Context, args ...Arg) error {
	if err := s.send(ctx, OpRequest{Op: "unsubscribe", Args: args}); err != nil {
		return err
	}
	s.subsMu.Lock()
	for _, a := range args {
		delete(s.subs, a.key())
	}
	s.subsMu.Unlock()
	return nil
}

func (s *Session) send(ctx context.Context, v any) error {
	s.connMu.RLock()
	conn := s.conn
	s.connMu.RUnlock()
	if conn == nil {
		return apperror.New(apperror.CodeNotConnected, apperror.WithContext(s.name))
	}
	if err := conn.SendJSON(ctx, v); err != nil {
		return apperror.New(apperror.CodeTransport, apperror.WithCause(err), apperror.WithContext(s.name))
	}
	return nil
}

// replaySubscriptions re-sends every tracked Arg after a reconnect, ordered
// by channelOrder so consumers that assume ticker data arrives before
// order-book deltas see that invariant hold across reconnects too. Each arg
// goes out as its own subscribe frame rather than batching every channel
// into one request, so a single rejected arg can't poison the whole replay.
func (s *Session) replaySubscriptions(ctx context.Context) {
	s.subsMu.Lock()
	args := make([]Arg, 0, len(s.subs))
	for _, a := range s.subs {
		args = append(args, a)
	}
	s.subsMu.Unlock()

	if len(args) == 0 {
		return
	}

	args = sortByChannelOrder(args, s.channelOrder)

	ctx, span := s.tracer.Start(ctx, "ws.replay_subscriptions", trace.WithAttributes(
		attribute.Int("okx.subscription_count", len(args)),
	))
	defer span.End()

	for _, a := range args {
		if err := s.send(ctx, OpRequest{Op: "subscribe", Args: []Arg{a}}); err != nil {
			s.log.Warn(ctx, "failed to replay subscription after reconnect", "session", s.name, "channel", a.Channel, "instId", a.InstID, "error", err)
		}
	}
}

// sortByChannelOrder orders args by their position in channelOrder,
// stably; channels absent from channelOrder sort last, in input order.
func sortByChannelOrder(args []Arg, channelOrder []string) []Arg {
	rank := make(map[string]int, len(channelOrder))
	for i, ch := range channelOrder {
		rank[ch] = i
	}
	sorted := make([]Arg, len(args))
	copy(sorted, args)
	sort.SliceStable(sorted, func(i, j int) bool {
		ri, oki := rank[sorted[i].Channel]
		rj, okj := rank[sorted[j].Channel]
		if oki && okj {
			return ri < rj
		}
		if oki != okj {
			return oki
		}
		return false
	})
	return sorted
}

// IsConnected reports whether the underlying transport is connected.
func (s *Session) IsConnected() bool {
	s.connMu.RLock()
	defer s.connMu.RUnlock()
	return s.conn != nil && s.conn.IsConnected()
}

// Close shuts down the underlying transport.
func (s *Session) Close() error {
	s.connMu.Lock()
	defer s.connMu.Unlock()
	if s.conn == nil {
		return nil
	}
	return s.conn.Close()
}

// waitConnected blocks until the session connects or ctx is done, used by
// PublicSession.WaitConnected and PrivateSession.WaitConnected.
func (s *Session) waitConnected(ctx context.Context, poll time.Duration) error {
	ticker := time.NewTicker(poll)
	defer ticker.Stop()
	for {
		if s.IsConnected() {
			return nil
		}
		select {
		case <-ctx.Done():
			return fmt.Errorf("session %s: %w", s.name, ctx.Err())
		case <-ticker.C:
		}
	}
}
