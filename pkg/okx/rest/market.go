package rest

import (
	"context"
	"strconv"

	"github.com/fd1az/okx-client/internal/ratelimit"
)

// MarketTickersParams are the optional filters for MarketTickers.
type MarketTickersParams struct {
	InstType   InstType
	Uly        string
	InstFamily string
}

// MarketTickers fetches GET /api/v5/market/tickers for every instrument of
// a product type.
func (c *Client) MarketTickers(ctx context.Context, p MarketTickersParams) ([]MarketTickers, error) {
	params := map[string]string{"instType": string(p.InstType)}
	if p.Uly != "" {
		params["uly"] = p.Uly
	}
	if p.InstFamily != "" {
		params["instFamily"] = p.InstFamily
	}

	var out []MarketTickers
	if err := c.get(ctx, ratelimit.APIMarketTickers, "/api/v5/market/tickers", params, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// MarketTicker fetches GET /api/v5/market/ticker for a single instrument.
func (c *Client) MarketTicker(ctx context.Context, instID string) (*MarketTicker, error) {
	params := map[string]string{"instId": instID}

	var out []MarketTicker
	if err := c.get(ctx, ratelimit.APIMarketTicker, "/api/v5/market/ticker", params, &out); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, nil
	}
	return &out[0], nil
}

// MarketTrades fetches GET /api/v5/market/trades: the most recent public
// trade prints for an instrument.
func (c *Client) MarketTrades(ctx context.Context, instID string, limit int) ([]Trade, error) {
	params := map[string]string{"instId": instID}
	if limit > 0 {
		params["limit"] = strconv.Itoa(limit)
	}

	var out []Trade
	if err := c.get(ctx, ratelimit.APIMarketTrades, "/api/v5/market/trades", params, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// MarketBooks fetches GET /api/v5/market/books: a depth snapshot, distinct
// from the WebSocket order-book channel's incremental deltas. sz caps the
// number of levels per side and defaults to the server's own default when
// empty.
func (c *Client) MarketBooks(ctx context.Context, instID, sz string) ([]MarketBooks, error) {
	params := map[string]string{"instId": instID}
	if sz != "" {
		params["sz"] = sz
	}

	var out []MarketBooks
	if err := c.get(ctx, ratelimit.APIMarketBooks, "/api/v5/market/books", params, &out); err != nil {
		return nil, err
	}
	return out, nil
}
