package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fd1az/okx-client/internal/ratelimit"
	"github.com/fd1az/okx-client/pkg/okx"
)

// mockLogger implements logger.LoggerInterface for testing.
type mockLogger struct{}

func (m *mockLogger) Debug(ctx context.Context, msg string, args ...any)              {}
func (m *mockLogger) Info(ctx context.Context, msg string, args ...any)               {}
func (m *mockLogger) Warn(ctx context.Context, msg string, args ...any)               {}
func (m *mockLogger) Error(ctx context.Context, msg string, args ...any)              {}
func (m *mockLogger) Debugc(ctx context.Context, caller int, msg string, args ...any) {}
func (m *mockLogger) Infoc(ctx context.Context, caller int, msg string, args ...any)  {}
func (m *mockLogger) Warnc(ctx context.Context, caller int, msg string, args ...any)  {}
func (m *mockLogger) Errorc(ctx context.Context, caller int, msg string, args ...any) {}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg := okx.Config{RestDomain: server.URL}
	creds := okx.Credentials{APIKey: "key", SecretKey: "secret", Passphrase: "pass"}
	c, err := New(cfg, creds, ratelimit.New(ratelimit.Defaults()), &mockLogger{})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	return c
}

func TestClient_PublicInstruments_SignsAndDecodesEnvelope(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("OK-ACCESS-SIGN"); got == "" {
			t.Error("expected OK-ACCESS-SIGN header to be set")
		}
		if got := r.URL.Query().Get("instType"); got != "SPOT" {
			t.Errorf("instType = %q, want SPOT", got)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"code": "0",
			"msg":  "",
			"data": []Instrument{{InstType: InstTypeSpot, InstID: "BTC-USDT"}},
		})
	})

	out, err := c.PublicInstruments(context.Background(), PublicInstrumentsParams{InstType: InstTypeSpot})
	if err != nil {
		t.Fatalf("PublicInstruments() error: %v", err)
	}
	if len(out) != 1 || out[0].InstID != "BTC-USDT" {
		t.Fatalf("unexpected result: %+v", out)
	}
}

func TestClient_RemoteErrorCode_PropagatesAsError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"code": "50011",
			"msg":  "rate limit reached",
			"data": []any{},
		})
	})

	_, err := c.AccountBalance(context.Background(), nil)
	if err == nil {
		t.Fatal("expected an error for a non-zero envelope code")
	}
}

func TestClient_RateLimitExceeded_FailsFastWithoutHittingServer(t *testing.T) {
	called := false
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{"code": "0", "msg": "", "data": []any{}})
	})
	c.Governor().SetOverride(ratelimit.APIAccountBalance, ratelimit.Window{Capacity: 0})

	_, err := c.AccountBalance(context.Background(), nil)
	if err == nil {
		t.Fatal("expected rate-limit error")
	}
	if called {
		t.Fatal("server should not have been called once the budget is exhausted")
	}
}

func TestTradeBatchOrder_RejectsMismatchedInstID(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("server should not be called when validation fails")
	})

	_, err := c.TradeBatchOrder(context.Background(), "BTC-USDT", []OrderRequestInfo{
		{InstID: "BTC-USDT", Side: TradeSideBuy, OrdType: OrderTypeLimit, Sz: "1", Px: "1"},
		{InstID: "ETH-USDT", Side: TradeSideBuy, OrdType: OrderTypeLimit, Sz: "1", Px: "1"},
	})
	if err == nil {
		t.Fatal("expected MustHaveSameInstID error")
	}
}

func TestTradeBatchOrder_RejectsOversizedBatch(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("server should not be called when validation fails")
	})

	orders := make([]OrderRequestInfo, 21)
	for i := range orders {
		orders[i] = OrderRequestInfo{InstID: "BTC-USDT", Side: TradeSideBuy, OrdType: OrderTypeLimit, Sz: "1", Px: "1"}
	}

	_, err := c.TradeBatchOrder(context.Background(), "BTC-USDT", orders)
	if err == nil {
		t.Fatal("expected OutOfMaxOrderSize error")
	}
}

func TestTradeGetOrder_EmptyDataReturnsNilNotError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{"code": "0", "msg": "", "data": []any{}})
	})

	out, err := c.TradeGetOrder(context.Background(), "BTC-USDT", "1", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != nil {
		t.Fatalf("expected nil order for empty data, got %+v", out)
	}
}

// TestTradeOrder_EmptyDataOnSuccessReturnsError covers the ToResultOne
// contract: unlike TradeGetOrder, a successful envelope with no data rows is
// malformed, not a legitimate "no order" result.
func TestTradeOrder_EmptyDataOnSuccessReturnsError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{"code": "0", "msg": "", "data": []any{}})
	})

	out, err := c.TradeOrder(context.Background(), OrderRequestInfo{InstID: "BTC-USDT", Side: TradeSideBuy, OrdType: OrderTypeLimit, Sz: "1", Px: "1"})
	if err == nil {
		t.Fatalf("expected error for empty data, got order %+v", out)
	}
	if out != nil {
		t.Fatalf("expected nil order alongside error, got %+v", out)
	}
}

// TestTradeAmendOrder_EmptyDataOnSuccessReturnsError mirrors TradeOrder's
// ToResultOne contract for the amend endpoint.
func TestTradeAmendOrder_EmptyDataOnSuccessReturnsError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{"code": "0", "msg": "", "data": []any{}})
	})

	out, err := c.TradeAmendOrder(context.Background(), TradeAmendOrderParams{InstID: "BTC-USDT", OrdID: "1", NewSz: "2"})
	if err == nil {
		t.Fatalf("expected error for empty data, got order %+v", out)
	}
	if out != nil {
		t.Fatalf("expected nil order alongside error, got %+v", out)
	}
}

// TestAccountSetLeverage_EmptyDataOnSuccessReturnsError mirrors the same
// ToResultOne contract for leverage changes.
func TestAccountSetLeverage_EmptyDataOnSuccessReturnsError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{"code": "0", "msg": "", "data": []any{}})
	})

	out, err := c.AccountSetLeverage(context.Background(), AccountSetLeverageParams{InstID: "BTC-USDT", Lever: "5", MgnMode: "cross"})
	if err == nil {
		t.Fatalf("expected error for empty data, got result %+v", out)
	}
	if out != nil {
		t.Fatalf("expected nil result alongside error, got %+v", out)
	}
}
