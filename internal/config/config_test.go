package config

import (
	"testing"
	"time"
)

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load with no config file: %v", err)
	}

	if cfg.App.Name != "okx-client" {
		t.Errorf("app.name = %q, want okx-client", cfg.App.Name)
	}
	if cfg.Network.Profile != "mainnet" {
		t.Errorf("network.profile = %q, want mainnet", cfg.Network.Profile)
	}
	if cfg.Network.WSPingInterval != 5*time.Second {
		t.Errorf("ws_ping_interval = %s, want 5s", cfg.Network.WSPingInterval)
	}
	if cfg.Credential.HasCredentials() {
		t.Error("expected no credentials from defaults")
	}
	if cfg.Telemetry.Enabled {
		t.Error("telemetry should default to disabled")
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("OKX_NETWORK_PROFILE", "testnet")
	t.Setenv("OKX_API_KEY", "k")
	t.Setenv("OKX_SECRET_KEY", "s")
	t.Setenv("OKX_PASSPHRASE", "p")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Network.Profile != "testnet" {
		t.Errorf("network.profile = %q, want testnet", cfg.Network.Profile)
	}
	if !cfg.Credential.HasCredentials() {
		t.Error("expected credentials from env")
	}
}

func TestLoad_InvalidProfileFailsValidation(t *testing.T) {
	t.Setenv("OKX_NETWORK_PROFILE", "devnet")

	if _, err := Load(""); err == nil {
		t.Fatal("expected validation error for unknown network profile")
	}
}

func TestValidate_AcceptsKnownProfiles(t *testing.T) {
	for _, p := range []string{"mainnet", "aws-mainnet", "testnet", ""} {
		cfg := &Config{Network: NetworkConfig{Profile: p}}
		if err := cfg.Validate(); err != nil {
			t.Errorf("Validate(%q): %v", p, err)
		}
	}
}
