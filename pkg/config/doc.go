// Package config provides configuration management for the Polygon SDK.
//
// This package defines the Config structure that controls all SDK behavior
// including network settings, RPC endpoints, gas overrides, metadata storage
// gateways, retry policy, and timeouts.
//
// # Basic Configuration
//
// The minimum required configuration needs an RPC endpoint and network:
//
//	cfg := &config.Config{
//		RPCAddr: "https://polygon-rpc.com",
//		Network: config.Polygon,
//	}
//
// # Network Selection
//
// Two predefined networks are available:
//
//	config.Polygon - Polygon PoS mainnet (ChainID: 137)
//	config.Amoy    - Polygon Amoy testnet (ChainID: 80002)
//
// Custom networks can be defined:
//
//	customNet := config.Network{
//		ChainID: "1101",
//		Name:    "zkevm",
//	}
//
// # Signing Key
//
// State-mutating operations (transfers, approvals, contract execution) need a
// hex-encoded private key:
//
//	cfg := &config.Config{
//		RPCAddr:    "https://polygon-rpc.com",
//		PrivateKey: os.Getenv("POLYGON_PRIVATE_KEY"),
//	}
//
// Read-only operations work without one. The key is parsed once at SDK
// construction; it is never logged and never attached to error payloads.
//
// # Gas Overrides
//
// GasPrice (wei, decimal string) and GasLimit pin values that are otherwise
// requested from the node per transaction:
//
//	cfg.GasPrice = "30000000000" // 30 gwei
//	cfg.GasLimit = 300000
//
// # Timeouts and Retry
//
// Timeouts and Retry are zero-value friendly; Validate leaves them untouched
// and the SDK applies WithDefaults at construction time. Explicit values are
// always preserved:
//
//	cfg.Timeouts = config.Timeouts{ReceiptWait: 3 * time.Minute}
//	cfg.Retry = config.Retry{MaxAttempts: 5, BaseDelay: 500 * time.Millisecond}
package config
