// Package sdk is the main entry point for interacting with Polygon networks.
//
// # Quick Start
//
//	import (
//		"github.com/polylabs/polygon-sdk-go/pkg/config"
//		"github.com/polylabs/polygon-sdk-go/pkg/sdk"
//	)
//
//	cfg := &config.Config{
//		Network:    config.Polygon,
//		RPCAddr:    "https://polygon-rpc.com",
//		PrivateKey: os.Getenv("PRIVATE_KEY"),
//	}
//	client, err := sdk.New(cfg)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer client.Close()
//
//	balance, err := client.Wallet().GetBalance(ctx, "0x...")
//
// # Managers
//
// The facade exposes one manager per resource:
//
//   - Wallet: native balance, nonce, account overview, native transfers,
//     EIP-191 message signing and verification
//   - Token: ERC-20 metadata, balances, allowances, transfer/approve/transferFrom
//   - Contract: generic call/execute/deploy against a caller-supplied ABI
//   - NFT: ERC-721 collection info, ownership, tokenURI and metadata
//     resolution, approvals and transfers
//   - DeFi: V2-pair pool info and reserve reads
//   - License: license metadata documents on IPFS
//   - Health: connectivity checks and node status
//
// # Error Handling
//
// Every operation fails with a *errs.Error carrying one of the closed set of
// taxonomy codes. Branch on the code, not the message:
//
//	_, err := client.Token().Transfer(ctx, token, to, "1.5")
//	if errs.Is(err, errs.CodeInsufficientBalance) {
//		// top up first
//	}
//
// # Signing Identities
//
// Each manager owns a single mutable signing identity, seeded from
// Config.PrivateKey at construction. SetSigner replaces it atomically and
// ClearSigner removes it; managers with no identity fail mutating calls with
// SIGNER_REQUIRED before any network traffic. Identities are per manager:
// clearing the token manager's signer does not affect the wallet manager.
//
// # Mutating Calls
//
// State-mutating operations share one pipeline: validate inputs, require a
// signer, submit under the configured retry policy, await the receipt, and
// normalize it into a model.TransactionRecord with status pending, success
// or failed.
package sdk
