// Package okx is the root of the OKX exchange client: REST, WebSocket, and
// the shared signing/rate-limit/config plumbing they both sit on.
package okx

// Config describes one OKX network: its REST domain and the three
// WebSocket domains (public, private, business), plus whether requests
// should be marked as simulated trading.
type Config struct {
	Testnet          bool
	RestDomain       string
	PublicWSDomain   string
	PrivateWSDomain  string
	BusinessWSDomain string
}

// MainnetConfig returns the standard OKX production endpoints.
func MainnetConfig() Config {
	return Config{
		Testnet:          false,
		RestDomain:       "https://www.okx.com",
		PublicWSDomain:   "wss://ws.okx.com:8443/ws/v5/public",
		PrivateWSDomain:  "wss://ws.okx.com:8443/ws/v5/private",
		BusinessWSDomain: "wss://ws.okx.com:8443/ws/v5/business",
	}
}

// AWSMainnetConfig returns the AWS-hosted production endpoints.
func AWSMainnetConfig() Config {
	return Config{
		Testnet:          false,
		RestDomain:       "https://aws.okx.com",
		PublicWSDomain:   "wss://wsaws.okx.com:8443/ws/v5/public",
		PrivateWSDomain:  "wss://wsaws.okx.com:8443/ws/v5/private",
		BusinessWSDomain: "wss://wsaws.okx.com:8443/ws/v5/business",
	}
}

// TestnetConfig returns the simulated-trading endpoints. Every REST request
// against this profile must carry the x-simulated-trading header.
func TestnetConfig() Config {
	return Config{
		Testnet:          true,
		RestDomain:       "https://www.okx.com",
		PublicWSDomain:   "wss://wspap.okx.com:8443/ws/v5/public?brokerId=9999",
		PrivateWSDomain:  "wss://wspap.okx.com:8443/ws/v5/private?brokerId=9999",
		BusinessWSDomain: "wss://wspap.okx.com:8443/ws/v5/business?brokerId=9999",
	}
}

// ConfigForProfile resolves a profile name from NetworkConfig.Profile.
// Unknown/empty names fall back to mainnet.
func ConfigForProfile(profile string) Config {
	switch profile {
	case "aws-mainnet":
		return AWSMainnetConfig()
	case "testnet":
		return TestnetConfig()
	default:
		return MainnetConfig()
	}
}

// Credentials holds the API key triple needed for signed requests and
// private WebSocket sessions.
type Credentials struct {
	APIKey     string
	SecretKey  string
	Passphrase string
}
