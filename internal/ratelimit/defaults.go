package ratelimit

import "time"

// api_id constants naming each metered endpoint.
const (
	APIAccountBalance          = "account-balance"
	APIAccountPositions        = "account-positions"
	APIAccountSetLeverage      = "account-set-leverage"
	APIAccountPositionsHistory = "account-positions-history"
	APITradeOrdersPending      = "trade-orders-pending"
	APITradeOrdersHistory      = "trade-orders-history"
	APITradeCancelBatchOrders  = "trade-cancel-batch-orders"
	APITradePlaceOrder         = "trade-place-order"
	APITradePlaceBatchOrders   = "trade-place-batch-orders"
	APITradeGetOrder           = "trade-get-order"
	APITradeAmendOrder         = "trade-amend-order"

	APIMarketTickers     = "market-tickers"
	APIMarketTicker      = "market-ticker"
	APIMarketTrades      = "market-trades"
	APIMarketBooks       = "market-books"
	APIPublicInstruments = "public-instruments"
)

// Defaults returns the built-in api_id -> Window table, matching the
// vendor's published per-endpoint limits.
func Defaults() map[string]Window {
	return map[string]Window{
		APIAccountBalance:          {Capacity: 10, Duration: 2 * time.Second},
		APIAccountPositions:        {Capacity: 10, Duration: 2 * time.Second},
		APIAccountSetLeverage:      {Capacity: 20, Duration: 2 * time.Second},
		APIAccountPositionsHistory: {Capacity: 1, Duration: 10 * time.Second},
		APITradeOrdersPending:      {Capacity: 60, Duration: 2 * time.Second},
		APITradeOrdersHistory:      {Capacity: 40, Duration: 2 * time.Second},
		APITradeCancelBatchOrders:  {Capacity: 300, Duration: 2 * time.Second},
		APITradePlaceOrder:         {Capacity: 60, Duration: 2 * time.Second},
		APITradePlaceBatchOrders:   {Capacity: 300, Duration: 2 * time.Second},
		APITradeGetOrder:           {Capacity: 60, Duration: 2 * time.Second},
		APITradeAmendOrder:         {Capacity: 60, Duration: 2 * time.Second},

		APIMarketTickers:     {Capacity: 20, Duration: 2 * time.Second},
		APIMarketTicker:      {Capacity: 20, Duration: 2 * time.Second},
		APIMarketTrades:      {Capacity: 40, Duration: 2 * time.Second},
		APIMarketBooks:       {Capacity: 40, Duration: 2 * time.Second},
		APIPublicInstruments: {Capacity: 20, Duration: 2 * time.Second},
	}
}
