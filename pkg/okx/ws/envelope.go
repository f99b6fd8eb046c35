package ws

import "encoding/json"

// Arg identifies one channel subscription: a channel name plus the
// parameters (instId, instType, instFamily, ccy, uid) that scope it, per
// the vendor's documented {op, args:[{channel, ...}]} envelope.
type Arg struct {
	Channel    string `json:"channel"`
	InstID     string `json:"instId,omitempty"`
	InstType   string `json:"instType,omitempty"`
	InstFamily string `json:"instFamily,omitempty"`
	Ccy        string `json:"ccy,omitempty"`
	Uid        string `json:"uid,omitempty"`
}

// key renders the full Arg as a stable map key for the subscription set.
func (a Arg) key() string {
	return a.Channel + "|" + a.InstType + "|" + a.InstFamily + "|" + a.InstID + "|" + a.Ccy + "|" + a.Uid
}

// scopeKey identifies which subscription a frame belongs to: the channel
// plus only the fields a subscriber chooses for that channel kind. Inbound
// push args carry server-populated fields the subscribe arg never had (uid
// on account/orders pushes, the per-event instId on orders pushes), so
// matching on the full key would silently drop every private event.
func (a Arg) scopeKey() string {
	switch a.Channel {
	case "account":
		return a.Channel
	case "orders", "instruments":
		return a.Channel + "|" + a.InstType
	default:
		return a.Channel + "|" + a.InstID
	}
}

// OpRequest is an outbound subscribe/unsubscribe/login request.
type OpRequest struct {
	ID   string `json:"id,omitempty"`
	Op   string `json:"op"`
	Args []Arg  `json:"args,omitempty"`
}

// LoginArg carries the HMAC login challenge response.
type LoginArg struct {
	APIKey     string `json:"apiKey"`
	Passphrase string `json:"passphrase"`
	Timestamp  string `json:"timestamp"`
	Sign       string `json:"sign"`
}

// LoginRequest is the private-channel authentication handshake.
type LoginRequest struct {
	Op   string     `json:"op"`
	Args []LoginArg `json:"args"`
}

// OpResponse is the server's ack/error for subscribe, unsubscribe, and
// login requests. Event is "subscribe", "unsubscribe", "login", or "error".
type OpResponse struct {
	Event   string `json:"event"`
	Arg     *Arg   `json:"arg,omitempty"`
	Code    string `json:"code,omitempty"`
	Msg     string `json:"msg,omitempty"`
	ConnID  string `json:"connId,omitempty"`
}

// Push is one data push: an Arg identifying the channel and the raw
// per-channel payload, decoded by the handler registered for that Arg.
type Push struct {
	Arg    Arg             `json:"arg"`
	Action string          `json:"action,omitempty"` // "snapshot" or "update", books channels only
	Data   json.RawMessage `json:"data"`
}

// TickerData is one row of the "tickers" channel push.
type TickerData struct {
	InstType  string `json:"instType"`
	InstID    string `json:"instId"`
	Last      string `json:"last"`
	AskPx     string `json:"askPx"`
	AskSz     string `json:"askSz"`
	BidPx     string `json:"bidPx"`
	BidSz     string `json:"bidSz"`
	Open24h   string `json:"open24h"`
	High24h   string `json:"high24h"`
	Low24h    string `json:"low24h"`
	Vol24h    string `json:"vol24h"`
	VolCcy24h string `json:"volCcy24h"`
	Ts        string `json:"ts"`
}

// TradeData is one row of the "trades" channel push.
type TradeData struct {
	InstID  string `json:"instId"`
	TradeID string `json:"tradeId"`
	Px      string `json:"px"`
	Sz      string `json:"sz"`
	Side    string `json:"side"`
	Ts      string `json:"ts"`
}

// BookData is one row of a books/books5/bbo-tbt channel push: the raw
// [price, size, deprecated, orderCount] tuples plus sequencing metadata,
// consumed by Merge.Handle via toEvent().
type BookData struct {
	Asks      [][]string `json:"asks"`
	Bids      [][]string `json:"bids"`
	Ts        string     `json:"ts"`
	Checksum  int32      `json:"checksum"`
	PrevSeqID int64      `json:"prevSeqId"`
	SeqID     int64      `json:"seqId"`
}

func (b BookData) toEvent() Event {
	return Event{PrevSeqID: b.PrevSeqID, SeqID: b.SeqID, Bids: b.Bids, Asks: b.Asks}
}

// InstrumentData is one row of the "instruments" channel push.
type InstrumentData struct {
	InstType string `json:"instType"`
	InstID   string `json:"instId"`
	State    string `json:"state"`
}

// AccountData is one row of the private "account" channel push.
type AccountData struct {
	UTime   string              `json:"uTime"`
	TotalEq string              `json:"totalEq"`
	Details []AccountDetailData `json:"details"`
}

// AccountDetailData is one currency's balance within an AccountData push.
type AccountDetailData struct {
	Ccy      string `json:"ccy"`
	Eq       string `json:"eq"`
	AvailBal string `json:"availBal"`
}

// OrderData is one row of the private "orders" channel push.
type OrderData struct {
	InstType string `json:"instType"`
	InstID   string `json:"instId"`
	OrdID    string `json:"ordId"`
	ClOrdID  string `json:"clOrdId"`
	State    string `json:"state"`
	Side     string `json:"side"`
	Px       string `json:"px"`
	Sz       string `json:"sz"`
	FillSz   string `json:"fillSz"`
	UTime    string `json:"uTime"`
}
