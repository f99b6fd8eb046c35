package rest

import (
	"context"
	"strings"

	"github.com/fd1az/okx-client/internal/ratelimit"
)

// AccountBalance fetches GET /api/v5/account/balance. An empty ccyList
// fetches every currency the account holds.
func (c *Client) AccountBalance(ctx context.Context, ccyList []string) ([]AccountBalance, error) {
	params := map[string]string{}
	if len(ccyList) > 0 {
		params["ccy"] = strings.Join(ccyList, ",")
	}

	var out []AccountBalance
	if err := c.get(ctx, ratelimit.APIAccountBalance, "/api/v5/account/balance", params, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// AccountPositionsParams are the optional filters for AccountPositions.
type AccountPositionsParams struct {
	InstType InstType
	InstID   string
	PosID    string
}

// AccountPositions fetches GET /api/v5/account/positions.
func (c *Client) AccountPositions(ctx context.Context, p AccountPositionsParams) ([]AccountPositions, error) {
	params := map[string]string{}
	if p.InstType != "" {
		params["instType"] = string(p.InstType)
	}
	if p.InstID != "" {
		params["instId"] = p.InstID
	}
	if p.PosID != "" {
		params["posId"] = p.PosID
	}

	var out []AccountPositions
	if err := c.get(ctx, ratelimit.APIAccountPositions, "/api/v5/account/positions", params, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// AccountSetLeverageParams is the body for AccountSetLeverage.
type AccountSetLeverageParams struct {
	InstID  string
	Ccy     string
	Lever   string
	MgnMode string
	PosSide string
}

// AccountSetLeverage issues POST /api/v5/account/set-leverage. The contract
// promises one result row on success, so an empty data array is an error,
// not a silent no-op.
func (c *Client) AccountSetLeverage(ctx context.Context, p AccountSetLeverageParams) (*AccountSetLeverage, error) {
	params := map[string]string{
		"lever":   p.Lever,
		"mgnMode": p.MgnMode,
	}
	if p.InstID != "" {
		params["instId"] = p.InstID
	}
	if p.Ccy != "" {
		params["ccy"] = p.Ccy
	}
	if p.PosSide != "" {
		params["posSide"] = p.PosSide
	}

	env, err := postEnvelope[AccountSetLeverage](ctx, c, ratelimit.APIAccountSetLeverage, "/api/v5/account/set-leverage", params)
	if err != nil {
		return nil, err
	}
	return env.ToResultOne()
}

// AccountPositionsHistoryParams are the optional filters for
// AccountPositionsHistory.
type AccountPositionsHistoryParams struct {
	InstType InstType
	InstID   string
	MgnMode  string
	Type     string
	PosID    string
	After    string
	Before   string
	Limit    string
}

// AccountPositionsHistory fetches GET /api/v5/account/positions-history.
func (c *Client) AccountPositionsHistory(ctx context.Context, p AccountPositionsHistoryParams) ([]AccountPositionsHistory, error) {
	params := map[string]string{}
	if p.InstType != "" {
		params["instType"] = string(p.InstType)
	}
	if p.InstID != "" {
		params["instId"] = p.InstID
	}
	if p.MgnMode != "" {
		params["mgnMode"] = p.MgnMode
	}
	if p.Type != "" {
		params["type"] = p.Type
	}
	if p.PosID != "" {
		params["posId"] = p.PosID
	}
	if p.After != "" {
		params["after"] = p.After
	}
	if p.Before != "" {
		params["before"] = p.Before
	}
	if p.Limit != "" {
		params["limit"] = p.Limit
	}

	var out []AccountPositionsHistory
	if err := c.get(ctx, ratelimit.APIAccountPositionsHistory, "/api/v5/account/positions-history", params, &out); err != nil {
		return nil, err
	}
	return out, nil
}
