// Package blockchain provides low-level Polygon/EVM interaction for the SDK.
//
// This package contains the shared RPC client and utilities used by every
// resource manager in pkg/sdk:
//
// # Architecture
//
// EVMClient:
//   - Connected ethclient.Client with resolved chain ID
//   - Account reads: balance, nonce, deployed code
//   - Chain reads: head block, fee data, gas estimation
//   - Receipt lookup and WaitForTransaction polling
//   - Transactor construction (EIP-155 signing via chain ID)
//
// Contract wrappers:
//   - ERC20: standard token interface incl. metadata extension
//   - ERC721: standard NFT interface incl. tokenURI
//   - Pair: UniswapV2-style pair read interface (reserves, tokens, supply)
//
// Retry:
//   - Generic Retry[T] helper with exponential backoff and an optional
//     per-attempt timeout, applied by managers to state-mutating submissions
//
// Utilities:
//   - Address / private key / transaction hash validation
//   - Exact unit conversion between decimal amounts and base-unit integers
//     (ParseUnits / FormatUnits, shopspring/decimal based, never floats)
//   - EIP-191 personal-sign signatures (GetSignature / VerifySignature)
//   - Presentation helpers (TruncateHex, FormatByteSize, FormatDuration)
//
// # Retry Semantics
//
// Retry invokes an operation up to MaxAttempts times, sleeping
// BaseDelay × 2^(n-1) between attempts. Success returns immediately; the
// final failure is propagated unchanged so callers keep the original error.
// The helper never inspects the error: operations that must not be retried
// (validation failures, insufficient balance) are filtered by the managers
// before the retry loop is entered.
//
// # Receipt Polling
//
// WaitForTransaction polls TransactionReceipt while the node reports
// ethereum.NotFound, doubling the poll interval up to maxBackoff. A reverted
// transaction still resolves with its receipt; the caller derives the
// failed status from receipt.Status.
//
// # Contexts and Timeouts
//
// Every network-touching method accepts a context and additionally bounds
// itself with the configured operation timeout (config.Timeouts), so a
// forgotten caller deadline cannot hang an SDK call indefinitely.
package blockchain
