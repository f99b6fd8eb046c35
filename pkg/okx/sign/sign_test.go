package sign

import (
	"testing"
	"time"

	"github.com/fd1az/okx-client/pkg/okx"
)

func TestTimestamp(t *testing.T) {
	ts := Timestamp(time.Date(2026, 7, 30, 12, 0, 0, 500_000_000, time.UTC))
	want := "2026-07-30T12:00:00.500Z"
	if ts != want {
		t.Fatalf("Timestamp() = %q, want %q", ts, want)
	}
}

func TestQueryString_SortedRegardlessOfInputOrder(t *testing.T) {
	a := QueryString(map[string]string{"instId": "BTC-USDT", "ccy": "BTC"})
	b := QueryString(map[string]string{"ccy": "BTC", "instId": "BTC-USDT"})
	if a != b {
		t.Fatalf("query strings differ by map iteration order: %q vs %q", a, b)
	}
	if a != "ccy=BTC&instId=BTC-USDT" {
		t.Fatalf("unexpected query string: %q", a)
	}
}

func TestRequestPath_NoParams(t *testing.T) {
	if got := RequestPath("/api/v5/account/balance", nil); got != "/api/v5/account/balance" {
		t.Fatalf("RequestPath() = %q", got)
	}
}

func TestSigner_Sign_Deterministic(t *testing.T) {
	s := New(okx.Credentials{SecretKey: "secret"})
	msg := Message("2026-07-30T12:00:00.000Z", "GET", "/api/v5/account/balance", "")
	got1 := s.Sign(msg)
	got2 := s.Sign(msg)
	if got1 != got2 {
		t.Fatal("Sign() is not deterministic for identical input")
	}
	if want := "LtJlatOBZ2Ajy7cyUdnbSXOzdoBfoHjDDDEQDFeT0o4="; got1 != want {
		t.Fatalf("Sign() = %q, want %q", got1, want)
	}
}

func TestSigner_Headers_TestnetAddsSimulatedTradingHeader(t *testing.T) {
	s := New(okx.Credentials{APIKey: "key", SecretKey: "secret", Passphrase: "pass"})
	now := time.Date(2026, 7, 30, 0, 0, 0, 0, time.UTC)

	headers := s.Headers(okx.TestnetConfig(), "GET", "/api/v5/account/balance", "", now)
	if headers["x-simulated-trading"] != "1" {
		t.Fatal("expected x-simulated-trading header on testnet config")
	}

	headers = s.Headers(okx.MainnetConfig(), "GET", "/api/v5/account/balance", "", now)
	if _, ok := headers["x-simulated-trading"]; ok {
		t.Fatal("mainnet config should not carry x-simulated-trading")
	}
}

func TestSigner_WSLoginSign(t *testing.T) {
	s := New(okx.Credentials{SecretKey: "secret"})
	if s.WSLoginSign("1627884867") == "" {
		t.Fatal("WSLoginSign() returned empty signature")
	}
}
