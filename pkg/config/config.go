// Package config defines the runtime configuration for the SDK, including
// the target Polygon network, RPC endpoint, optional signing key, gas
// overrides, metadata storage gateways, debug mode, and operation timeouts.
// It also provides validation and defaulting helpers.
package config

import (
	"errors"
	"math/big"
	"time"
)

// Config holds all SDK settings required to initialize the chain client and
// resource managers. Use Validate to fill implicit defaults and to check for
// required fields.
type Config struct {
	// Network selects the target chain (chain ID and human-readable name).
	Network Network `json:"network" yaml:"network"`
	// RPCAddr is the JSON-RPC/WS endpoint URL (required).
	RPCAddr string `json:"rpc_addr" yaml:"rpc_addr"`
	// PrivateKey is the hex-encoded ECDSA private key used for state-mutating
	// operations (optional if you only do read-only operations).
	PrivateKey string `json:"private_key" yaml:"private_key"`
	// GasPrice optionally pins the gas price in wei as a decimal string.
	// Empty means the node's suggested price is used.
	GasPrice string `json:"gas_price" yaml:"gas_price"`
	// GasLimit optionally pins the gas limit for submitted transactions.
	// Zero means the node estimates gas per transaction.
	GasLimit uint64 `json:"gas_limit" yaml:"gas_limit"`
	// IpfsURL is the HTTP API endpoint of the IPFS node used for token and
	// license metadata. Default: https://ipfs.io:443
	IpfsURL string `json:"ipfs_url" yaml:"ipfs_url"`
	// GatewayURL is the HTTP gateway used as a fallback for ipfs:// content.
	// Default: https://ipfs.io/ipfs/
	GatewayURL string `json:"gateway_url" yaml:"gateway_url"`
	// Debug enables verbose logging.
	Debug bool `json:"debug" yaml:"debug"`
	// Timeouts configures per-operation timeouts. See Timeouts.WithDefaults for defaults.
	Timeouts Timeouts `json:"timeouts" yaml:"timeouts"`
	// Retry configures the retry policy applied to state-mutating submissions.
	// See Retry.WithDefaults for defaults.
	Retry Retry `json:"retry" yaml:"retry"`
}

// Network describes a blockchain network (chain ID and name). ChainID is used
// for EIP-155 signing; Name is informational.
type Network struct {
	ChainID string `json:"chain_id"`
	Name    string `json:"network_name"`
}

// Polygon is a predefined Network for Polygon PoS mainnet.
var Polygon = Network{
	ChainID: "137",
	Name:    "polygon",
}

// Amoy is a predefined Network for the Polygon Amoy testnet.
var Amoy = Network{
	ChainID: "80002",
	Name:    "amoy",
}

// ChainIDInt returns the chain ID as *big.Int, or nil if it is not a valid
// base-10 integer.
func (n Network) ChainIDInt() *big.Int {
	id, ok := new(big.Int).SetString(n.ChainID, 10)
	if !ok {
		return nil
	}
	return id
}

// Timeouts controls SDK operation deadlines.
// Zero values will be replaced by sane defaults in WithDefaults.
type Timeouts struct {
	Dial        time.Duration // RPC dial/connect
	ChainRead   time.Duration // eth_call, balance etc
	ChainSubmit time.Duration // send tx
	ReceiptWait time.Duration // wait tx
	Health      time.Duration // facade ping
	Storage     time.Duration // metadata fetch/upload
}

// Retry controls the backoff schedule used when submitting state-mutating
// calls. Zero values will be replaced by defaults in WithDefaults.
type Retry struct {
	// MaxAttempts is the total number of attempts (>= 1).
	MaxAttempts int `json:"max_attempts" yaml:"max_attempts"`
	// BaseDelay is the delay before the first re-attempt; it doubles on each
	// subsequent one.
	BaseDelay time.Duration `json:"base_delay" yaml:"base_delay"`
}

// Validate normalizes the configuration by applying implicit defaults for
// IpfsURL, GatewayURL and Network (defaults to Amoy) and verifies that
// RPCAddr is provided and the chain ID parses. Returns an error otherwise.
func (c *Config) Validate() error {

	if c.IpfsURL == "" {
		c.IpfsURL = "https://ipfs.io:443"
	}

	if c.GatewayURL == "" {
		c.GatewayURL = "https://ipfs.io/ipfs/"
	}

	if c.Network.ChainID == "" {
		c.Network = Amoy
	}

	if c.Network.ChainIDInt() == nil {
		return errors.New("chain ID must be a base-10 integer")
	}

	if c.RPCAddr == "" {
		return errors.New("RPC address is required")
	}

	return nil
}

// WithDefaults returns a copy of t with zero values replaced by defaults:
//
//	Dial:        5s
//	ChainRead:   12s
//	ChainSubmit: 25s
//	ReceiptWait: 90s
//	Health:      5s
//	Storage:     60s
func (t Timeouts) WithDefaults() Timeouts {
	tt := t
	if tt.Dial == 0 {
		tt.Dial = 5 * time.Second
	}
	if tt.ChainRead == 0 {
		tt.ChainRead = 12 * time.Second
	}
	if tt.ChainSubmit == 0 {
		tt.ChainSubmit = 25 * time.Second
	}
	if tt.ReceiptWait == 0 {
		tt.ReceiptWait = 90 * time.Second
	}
	if tt.Health == 0 {
		tt.Health = 5 * time.Second
	}
	if tt.Storage == 0 {
		tt.Storage = 60 * time.Second
	}
	return tt
}

// WithDefaults returns a copy of r with zero values replaced by defaults:
//
//	MaxAttempts: 3
//	BaseDelay:   1s
func (r Retry) WithDefaults() Retry {
	rr := r
	if rr.MaxAttempts == 0 {
		rr.MaxAttempts = 3
	}
	if rr.BaseDelay == 0 {
		rr.BaseDelay = time.Second
	}
	return rr
}
