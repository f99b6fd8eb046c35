package rest

import (
	"context"
	"strings"

	"github.com/fd1az/okx-client/internal/apperror"
	"github.com/fd1az/okx-client/internal/ratelimit"
)

// OrdersPendingFilter are the optional filters for TradeOrdersPending.
type OrdersPendingFilter struct {
	InstType   InstType
	Uly        string
	InstFamily string
	InstID     string
	OrdType    []OrderType
	State      OrderState
	After      string
	Before     string
	Limit      string
}

// TradeOrdersPending fetches GET /api/v5/trade/orders-pending: every
// currently unfilled order for the account.
func (c *Client) TradeOrdersPending(ctx context.Context, f OrdersPendingFilter) ([]TradeOrdersPending, error) {
	params := map[string]string{}
	if f.InstType != "" {
		params["instType"] = string(f.InstType)
	}
	if f.Uly != "" {
		params["uly"] = f.Uly
	}
	if f.InstFamily != "" {
		params["instFamily"] = f.InstFamily
	}
	if f.InstID != "" {
		params["instId"] = f.InstID
	}
	if len(f.OrdType) > 0 {
		parts := make([]string, len(f.OrdType))
		for i, t := range f.OrdType {
			parts[i] = string(t)
		}
		params["ordType"] = strings.Join(parts, ",")
	}
	if f.State != "" {
		params["state"] = string(f.State)
	}
	if f.After != "" {
		params["after"] = f.After
	}
	if f.Before != "" {
		params["before"] = f.Before
	}
	if f.Limit != "" {
		params["limit"] = f.Limit
	}

	var out []TradeOrdersPending
	if err := c.get(ctx, ratelimit.APITradeOrdersPending, "/api/v5/trade/orders-pending", params, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// OrdersHistoryFilter are the filters for TradeOrdersHistory.
type OrdersHistoryFilter struct {
	InstType   InstType
	Uly        string
	InstFamily string
	InstID     string
	OrdType    string
	State      string
	Category   string
	After      string
	Before     string
	Begin      string
	End        string
	Limit      string
}

// TradeOrdersHistory fetches GET /api/v5/trade/orders-history: completed or
// canceled orders from the last 7 days.
func (c *Client) TradeOrdersHistory(ctx context.Context, f OrdersHistoryFilter) ([]TradeOrdersHistory, error) {
	params := map[string]string{"instType": string(f.InstType)}
	if f.Uly != "" {
		params["uly"] = f.Uly
	}
	if f.InstFamily != "" {
		params["instFamily"] = f.InstFamily
	}
	if f.InstID != "" {
		params["instId"] = f.InstID
	}
	if f.OrdType != "" {
		params["ordType"] = f.OrdType
	}
	if f.State != "" {
		params["state"] = f.State
	}
	if f.Category != "" {
		params["category"] = f.Category
	}
	if f.After != "" {
		params["after"] = f.After
	}
	if f.Before != "" {
		params["before"] = f.Before
	}
	if f.Begin != "" {
		params["begin"] = f.Begin
	}
	if f.End != "" {
		params["end"] = f.End
	}
	if f.Limit != "" {
		params["limit"] = f.Limit
	}

	var out []TradeOrdersHistory
	if err := c.get(ctx, ratelimit.APITradeOrdersHistory, "/api/v5/trade/orders-history", params, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// TradeCancelBatchOrders cancels up to 20 pending orders in one call, one
// object per order, keyed by either ordId or clOrdId.
func (c *Client) TradeCancelBatchOrders(ctx context.Context, instID string, orderIDs, clOrdIDs []string) ([]TradeCancelBatchOrders, error) {
	items := make([]map[string]string, 0, len(orderIDs)+len(clOrdIDs))
	for _, id := range orderIDs {
		items = append(items, map[string]string{"instId": instID, "ordId": id})
	}
	for _, id := range clOrdIDs {
		items = append(items, map[string]string{"instId": instID, "clOrdId": id})
	}

	var out []TradeCancelBatchOrders
	n := len(items)
	if err := c.postInstID(ctx, ratelimit.APITradeCancelBatchOrders, instID, n, "/api/v5/trade/cancel-batch-orders", items, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// TradeOrder places a single order via POST /api/v5/trade/order. The
// contract promises exactly one result row on success, so an empty data
// array is an error, not an absent order.
func (c *Client) TradeOrder(ctx context.Context, order OrderRequestInfo) (*TradeOrder, error) {
	env, err := postInstIDEnvelope[TradeOrder](ctx, c, ratelimit.APITradePlaceOrder, order.InstID, 1, "/api/v5/trade/order", order)
	if err != nil {
		return nil, err
	}
	return env.ToResultOne()
}

// TradeBatchOrder places up to 20 orders via POST /api/v5/trade/batch-orders.
// Every order must carry the batch's instID.
func (c *Client) TradeBatchOrder(ctx context.Context, instID string, orders []OrderRequestInfo) ([]TradeOrder, error) {
	if len(orders) > 20 {
		return nil, apperror.New(apperror.CodeOutOfMaxOrderSize, apperror.WithContext(instID))
	}
	for _, o := range orders {
		if o.InstID != instID {
			return nil, apperror.New(apperror.CodeMustHaveSameInstID, apperror.WithContext(instID))
		}
	}

	n := 1
	apiID := ratelimit.APITradePlaceOrder
	if len(orders) != 1 {
		n = len(orders)
		apiID = ratelimit.APITradePlaceBatchOrders
	}

	var out []TradeOrder
	if err := c.postInstID(ctx, apiID, instID, n, "/api/v5/trade/batch-orders", orders, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// TradeGetOrder fetches GET /api/v5/trade/order. It returns (nil, nil) when
// the order is not found rather than an error.
func (c *Client) TradeGetOrder(ctx context.Context, instID, ordID, clOrdID string) (*TradeOrderGet, error) {
	params := map[string]string{"instId": instID}
	if ordID != "" {
		params["ordId"] = ordID
	}
	if clOrdID != "" {
		params["clOrdId"] = clOrdID
	}

	env, err := getInstIDEnvelope[TradeOrderGet](ctx, c, ratelimit.APITradeGetOrder, instID, "/api/v5/trade/order", params)
	if err != nil {
		return nil, err
	}
	return env.ToResultOneOpt()
}

// TradeAmendOrderParams are the fields accepted by TradeAmendOrder.
type TradeAmendOrderParams struct {
	InstID    string
	CxlOnFail string
	OrdID     string
	ClOrdID   string
	ReqID     string
	NewSz     string
	NewPx     string
}

// TradeAmendOrder amends an unfilled order via POST /api/v5/trade/amend-order.
// Like TradeOrder, the contract promises one result row on success.
func (c *Client) TradeAmendOrder(ctx context.Context, p TradeAmendOrderParams) (*TradeAmendOrder, error) {
	params := map[string]string{"instId": p.InstID}
	if p.CxlOnFail != "" {
		params["cxlOnFail"] = p.CxlOnFail
	}
	if p.OrdID != "" {
		params["ordId"] = p.OrdID
	}
	if p.ClOrdID != "" {
		params["clOrdId"] = p.ClOrdID
	}
	if p.ReqID != "" {
		params["reqId"] = p.ReqID
	}
	if p.NewSz != "" {
		params["newSz"] = p.NewSz
	}
	if p.NewPx != "" {
		params["newPx"] = p.NewPx
	}

	env, err := postInstIDEnvelope[TradeAmendOrder](ctx, c, ratelimit.APITradeAmendOrder, p.InstID, 1, "/api/v5/trade/amend-order", params)
	if err != nil {
		return nil, err
	}
	return env.ToResultOne()
}
