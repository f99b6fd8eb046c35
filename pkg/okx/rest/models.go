package rest

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// InstType is the product type discriminator used across account, market,
// and trade endpoints.
type InstType string

const (
	InstTypeSpot    InstType = "SPOT"
	InstTypeMargin  InstType = "MARGIN"
	InstTypeSwap    InstType = "SWAP"
	InstTypeFutures InstType = "FUTURES"
	InstTypeOption  InstType = "OPTION"
	InstTypeAny     InstType = "ANY"
)

// TradeSide is buy or sell.
type TradeSide string

const (
	TradeSideBuy  TradeSide = "buy"
	TradeSideSell TradeSide = "sell"
)

// PositionSide distinguishes long/short in open/close-position mode from
// net position mode.
type PositionSide string

const (
	PositionSideNone  PositionSide = ""
	PositionSideLong  PositionSide = "long"
	PositionSideShort PositionSide = "short"
	PositionSideNet   PositionSide = "net"
)

// TradeMode is the margin mode an order is placed under.
type TradeMode string

const (
	TradeModeIsolated TradeMode = "isolated"
	TradeModeCross    TradeMode = "cross"
	TradeModeCash     TradeMode = "cash"
)

// OrderType enumerates the supported order execution styles.
type OrderType string

const (
	OrderTypeMarket          OrderType = "market"
	OrderTypeLimit           OrderType = "limit"
	OrderTypePostOnly        OrderType = "post_only"
	OrderTypeFOK             OrderType = "fok"
	OrderTypeIOC             OrderType = "ioc"
	OrderTypeOptimalLimitIOC OrderType = "optimal_limit_ioc"
	OrderTypeMMP             OrderType = "mmp"
	OrderTypeMMPAndPostOnly  OrderType = "mmp_and_post_only"
)

// OrderState is an order's lifecycle state.
type OrderState string

const (
	OrderStateLive            OrderState = "live"
	OrderStatePartiallyFilled OrderState = "partially_filled"
	OrderStateFilled          OrderState = "filled"
	OrderStateMMPCanceled     OrderState = "mmp_canceled"
	OrderStateCanceled        OrderState = "canceled"
)

// StopMode is the self-trade-prevention mode.
type StopMode string

const (
	StopModeNone        StopMode = ""
	StopModeCancelMaker StopMode = "cancel_maker"
	StopModeCancelTaker StopMode = "cancel_taker"
	StopModeCancelBoth  StopMode = "cancel_both"
)

// TriggerPxType is the reference price used by take-profit/stop-loss triggers.
type TriggerPxType string

const (
	TriggerPxTypeNone  TriggerPxType = ""
	TriggerPxTypeLast  TriggerPxType = "last"
	TriggerPxTypeIndex TriggerPxType = "index"
	TriggerPxTypeMark  TriggerPxType = "mark"
)

// QuickMgnType is the one-click-borrow mode for isolated-margin orders.
type QuickMgnType string

const (
	QuickMgnTypeNone       QuickMgnType = ""
	QuickMgnTypeManual     QuickMgnType = "manual"
	QuickMgnTypeAutoBorrow QuickMgnType = "auto_borrow"
	QuickMgnTypeAutoRepay  QuickMgnType = "auto_repay"
)

// InstrumentState is a tradable product's lifecycle state.
type InstrumentState string

const (
	InstrumentStateLive    InstrumentState = "live"
	InstrumentStateSuspend InstrumentState = "suspend"
	InstrumentStatePreopen InstrumentState = "preopen"
	InstrumentStateTest    InstrumentState = "test"
)

// AccountPositions is one open position
// (GET /api/v5/account/positions).
type AccountPositions struct {
	MgnMode  string `json:"mgnMode"`
	PosSide  string `json:"posSide"`
	Pos      string `json:"pos"`
	AvailPos string `json:"availPos"`
}

func (p AccountPositions) ParsePos() (decimal.Decimal, error)      { return decimal.NewFromString(p.Pos) }
func (p AccountPositions) ParseAvailPos() (decimal.Decimal, error) { return decimal.NewFromString(p.AvailPos) }

// AccountPositionsHistory is a closed/updated position record
// (GET /api/v5/account/positions-history).
type AccountPositionsHistory struct {
	InstType string `json:"instType"`
	InstID   string `json:"instId"`
	MgnMode  string `json:"mgnMode"`
	Type     string `json:"type"`
	Pnl      string `json:"pnl"`
}

func (h AccountPositionsHistory) ParsePnl() (decimal.Decimal, error) { return decimal.NewFromString(h.Pnl) }

// AccountSetLeverage is the response to POST /api/v5/account/set-leverage.
type AccountSetLeverage struct {
	Lever   string `json:"lever"`
	MgnMode string `json:"mgnMode"`
	InstID  string `json:"instId"`
	PosSide string `json:"posSide"`
}

// BalanceDetailItem is one currency's balance breakdown within AccountBalance.
type BalanceDetailItem struct {
	Ccy           string `json:"ccy"`
	Eq            string `json:"eq"`
	CashBal       string `json:"cashBal"`
	UTime         string `json:"uTime"`
	IsoEq         string `json:"isoEq"`
	AvailEq       string `json:"availEq"`
	DisEq         string `json:"disEq"`
	AvailBal      string `json:"availBal"`
	FrozenBal     string `json:"frozenBal"`
	OrdFrozen     string `json:"ordFrozen"`
	Liab          string `json:"liab"`
	Upl           string `json:"upl"`
	UplLiab       string `json:"uplLiab"`
	CrossLiab     string `json:"crossLiab"`
	IsoLiab       string `json:"isoLiab"`
	MgnRatio      string `json:"mgnRatio"`
	EqUsd         string `json:"eqUsd"`
	Interest      string `json:"interest"`
	Twap          string `json:"twap"`
	MaxLoan       string `json:"maxLoan"`
	NotionalLever string `json:"notionalLever"`
	StgyEq        string `json:"stgyEq"`
	IsoUpl        string `json:"isoUpl"`
	SpotInUseAmt  string `json:"spotInUseAmt"`
}

func (b BalanceDetailItem) ParseAvailBal() (decimal.Decimal, error) {
	return decimal.NewFromString(b.AvailBal)
}

func (b BalanceDetailItem) ParseEq() (decimal.Decimal, error) { return decimal.NewFromString(b.Eq) }

// AccountBalance is the response to GET /api/v5/account/balance.
type AccountBalance struct {
	AdjEq       string              `json:"adjEq"`
	Details     []BalanceDetailItem `json:"details"`
	Imr         string              `json:"imr"`
	IsoEq       string              `json:"isoEq"`
	MgnRatio    string              `json:"mgnRatio"`
	Mmr         string              `json:"mmr"`
	NotionalUsd string              `json:"notionalUsd"`
	OrdFroz     string              `json:"ordFroz"`
	TotalEq     string              `json:"totalEq"`
	UTime       string              `json:"uTime"`
}

func (a AccountBalance) ParseTotalEq() (decimal.Decimal, error) { return decimal.NewFromString(a.TotalEq) }

// Instrument describes one tradable product
// (GET /api/v5/public/instruments).
type Instrument struct {
	InstType     InstType        `json:"instType"`
	InstID       string          `json:"instId"`
	Uly          string          `json:"uly"`
	InstFamily   string          `json:"instFamily"`
	BaseCcy      string          `json:"baseCcy"`
	QuoteCcy     string          `json:"quoteCcy"`
	SettleCcy    string          `json:"settleCcy"`
	CtVal        string          `json:"ctVal"`
	CtMult       string          `json:"ctMult"`
	CtValCcy     string          `json:"ctValCcy"`
	OptType      string          `json:"optType"`
	Stk          string          `json:"stk"`
	ListTime     string          `json:"listTime"`
	ExpTime      string          `json:"expTime"`
	Lever        string          `json:"lever"`
	TickSz       string          `json:"tickSz"`
	LotSz        string          `json:"lotSz"`
	MinSz        string          `json:"minSz"`
	CtType       string          `json:"ctType"`
	Alias        string          `json:"alias"`
	State        InstrumentState `json:"state"`
	MaxLmtSz     string          `json:"maxLmtSz"`
	MaxMktSz     string          `json:"maxMktSz"`
	MaxTwapSz    string          `json:"maxTwapSz"`
	MaxIcebergSz string          `json:"maxIcebergSz"`
	MaxTriggerSz string          `json:"maxTriggerSz"`
	MaxStopSz    string          `json:"maxStopSz"`
}

func (i Instrument) ParseTickSz() (decimal.Decimal, error) { return decimal.NewFromString(i.TickSz) }
func (i Instrument) ParseLotSz() (decimal.Decimal, error)  { return decimal.NewFromString(i.LotSz) }
func (i Instrument) ParseMinSz() (decimal.Decimal, error)  { return decimal.NewFromString(i.MinSz) }

// MarketTickers is one row of GET /api/v5/market/tickers.
type MarketTickers struct {
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
	VolCcy24h string `json:"volCcy24h"`
	Vol24h    string `json:"vol24h"`
	SodUtc0   string `json:"sodUtc0"`
	SodUtc8   string `json:"sodUtc8"`
	Ts        string `json:"ts"`
}

func (t MarketTickers) ParseLast() (decimal.Decimal, error) { return decimal.NewFromString(t.Last) }

// MarketTicker is the response to GET /api/v5/market/ticker (single instrument).
type MarketTicker struct {
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
	VolCcy24h string `json:"volCcy24h"`
	Vol24h    string `json:"vol24h"`
	SodUtc0   string `json:"sodUtc0"`
	SodUtc8   string `json:"sodUtc8"`
	Ts        string `json:"ts"`
}

func (t MarketTicker) ParseLast() (decimal.Decimal, error) { return decimal.NewFromString(t.Last) }

// Trade is one public trade print (GET /api/v5/market/trades).
type Trade struct {
	InstID  string `json:"instId"`
	TradeID string `json:"tradeId"`
	Px      string `json:"px"`
	Sz      string `json:"sz"`
	Side    string `json:"side"`
	Ts      string `json:"ts"`
}

func (t Trade) ParsePx() (decimal.Decimal, error) { return decimal.NewFromString(t.Px) }
func (t Trade) ParseSz() (decimal.Decimal, error) { return decimal.NewFromString(t.Sz) }

// MarketBooksItemData is one price level, sent on the wire as the 4-tuple
// [price, size, deprecated liquidated-orders count, order count] rather
// than a keyed object.
type MarketBooksItemData struct {
	Price  string
	Sz     string
	Ignore string
	Count  string
}

func (i *MarketBooksItemData) UnmarshalJSON(data []byte) error {
	var tuple []string
	if err := json.Unmarshal(data, &tuple); err != nil {
		return err
	}
	if len(tuple) < 4 {
		return fmt.Errorf("order book level has %d fields, want 4", len(tuple))
	}
	i.Price, i.Sz, i.Ignore, i.Count = tuple[0], tuple[1], tuple[2], tuple[3]
	return nil
}

func (i MarketBooksItemData) ParsePrice() (decimal.Decimal, error) {
	return decimal.NewFromString(i.Price)
}
func (i MarketBooksItemData) ParseSz() (decimal.Decimal, error) { return decimal.NewFromString(i.Sz) }

// MarketBooks is the response to GET /api/v5/market/books: a snapshot depth
// view, distinct from the WebSocket order-book channel's incremental
// deltas (see pkg/okx/ws/orderbook.go).
type MarketBooks struct {
	Asks []MarketBooksItemData `json:"asks"`
	Bids []MarketBooksItemData `json:"bids"`
	Ts   string                `json:"ts"`
}

// TradeOrdersPending is one open order
// (GET /api/v5/trade/orders-pending).
type TradeOrdersPending struct {
	InstType        InstType      `json:"instType"`
	InstID          string        `json:"instId"`
	TgtCcy          string        `json:"tgtCcy"`
	Ccy             string        `json:"ccy"`
	OrdID           string        `json:"ordId"`
	ClOrdID         string        `json:"clOrdId"`
	Tag             string        `json:"tag"`
	Px              string        `json:"px"`
	Sz              string        `json:"sz"`
	Pnl             string        `json:"pnl"`
	OrdType         OrderType     `json:"ordType"`
	Side            TradeSide     `json:"side"`
	PosSide         PositionSide  `json:"posSide"`
	TdMode          TradeMode     `json:"tdMode"`
	AccFillSz       string        `json:"accFillSz"`
	FillPx          string        `json:"fillPx"`
	TradeID         string        `json:"tradeId"`
	FillSz          string        `json:"fillSz"`
	FillTime        string        `json:"fillTime"`
	AvgPx           string        `json:"avgPx"`
	State           OrderState    `json:"state"`
	Lever           string        `json:"lever"`
	TpTriggerPx     string        `json:"tpTriggerPx"`
	TpTriggerPxType TriggerPxType `json:"tpTriggerPxType"`
	SlTriggerPx     string        `json:"slTriggerPx"`
	SlTriggerPxType TriggerPxType `json:"slTriggerPxType"`
	SlOrdPx         string        `json:"slOrdPx"`
	TpOrdPx         string        `json:"tpOrdPx"`
	FeeCcy          string        `json:"feeCcy"`
	Fee             string        `json:"fee"`
	RebateCcy       string        `json:"rebateCcy"`
	Source          string        `json:"source"`
	Rebate          string        `json:"rebate"`
	Category        string        `json:"category"`
	StpID           string        `json:"stpId"`
	StpMode         StopMode      `json:"stpMode"`
	ReduceOnly      string        `json:"reduceOnly"`
	QuickMgnType    string        `json:"quickMgnType"`
	UTime           string        `json:"uTime"`
	CTime           string        `json:"cTime"`
}

func (o TradeOrdersPending) ParsePx() (decimal.Decimal, error) { return decimal.NewFromString(o.Px) }
func (o TradeOrdersPending) ParseSz() (decimal.Decimal, error) { return decimal.NewFromString(o.Sz) }

// TradeOrdersHistory is one completed/canceled order
// (GET /api/v5/trade/orders-history).
type TradeOrdersHistory struct {
	InstType string     `json:"instType"`
	InstID   string     `json:"instId"`
	OrdType  OrderType  `json:"ordType"`
	State    OrderState `json:"state"`
	Pnl      string     `json:"pnl"`
}

func (o TradeOrdersHistory) ParsePnl() (decimal.Decimal, error) { return decimal.NewFromString(o.Pnl) }

// TradeCancelBatchOrders is one row of the response to
// POST /api/v5/trade/cancel-batch-orders.
type TradeCancelBatchOrders struct {
	OrdID   string `json:"ordId"`
	ClOrdID string `json:"clOrdId"`
	SCode   string `json:"sCode"`
	SMsg    string `json:"sMsg"`
}

// TradeOrder is the response to a place-order/batch-order call.
type TradeOrder struct {
	OrdID   string `json:"ordId"`
	ClOrdID string `json:"clOrdId"`
	SCode   string `json:"sCode"`
	Tag     string `json:"tag"`
	SMsg    string `json:"sMsg"`
}

// TradeOrderGet is the response to GET /api/v5/trade/order.
type TradeOrderGet struct {
	State string `json:"state"`
}

// TradeAmendOrder is the response to POST /api/v5/trade/amend-order.
type TradeAmendOrder struct {
	OrdID   string `json:"ordId"`
	ClOrdID string `json:"clOrdId"`
	ReqID   string `json:"reqId"`
	SCode   string `json:"sCode"`
	SMsg    string `json:"sMsg"`
}

// OrderRequestInfo is the place-order request body. Optional fields are
// omitted from the wire when zero.
type OrderRequestInfo struct {
	InstID            string        `json:"instId"`
	TdMode            TradeMode     `json:"tdMode"`
	Ccy               string        `json:"ccy,omitempty"`
	ClOrdID           string        `json:"clOrdId,omitempty"`
	Tag               string        `json:"tag,omitempty"`
	Side              TradeSide     `json:"side"`
	PosSide           PositionSide  `json:"posSide,omitempty"`
	OrdType           OrderType     `json:"ordType"`
	Sz                string        `json:"sz"`
	Px                string        `json:"px,omitempty"`
	ReduceOnly        *bool         `json:"reduceOnly,omitempty"`
	TgtCcy            string        `json:"tgtCcy,omitempty"`
	BanAmend          *bool         `json:"banAmend,omitempty"`
	AttachAlgoClOrdID string        `json:"attachAlgoClOrdId,omitempty"`
	TpTriggerPx       string        `json:"tpTriggerPx,omitempty"`
	TpOrdPx           string        `json:"tpOrdPx,omitempty"`
	SlTriggerPx       string        `json:"slTriggerPx,omitempty"`
	SlOrdPx           string        `json:"slOrdPx,omitempty"`
	StpID             string        `json:"stpId,omitempty"`
	StpMode           StopMode      `json:"stpMode,omitempty"`
	TpTriggerPxType   TriggerPxType `json:"tpTriggerPxType,omitempty"`
	SlTriggerPxType   TriggerPxType `json:"slTriggerPxType,omitempty"`
	QuickMgnType      QuickMgnType  `json:"quickMgnType,omitempty"`
}

// NewSpotLimitOrder builds a cash-mode spot limit order.
func NewSpotLimitOrder(instID string, side TradeSide, sz, px, clOrdID, tag string) OrderRequestInfo {
	return OrderRequestInfo{
		InstID:  instID,
		TdMode:  TradeModeCash,
		ClOrdID: clOrdID,
		Tag:     tag,
		Side:    side,
		OrdType: OrderTypeLimit,
		Sz:      sz,
		Px:      px,
	}
}
