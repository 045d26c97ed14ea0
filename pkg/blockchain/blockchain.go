// Package blockchain provides the low-level EVM access layer of the SDK. It
// wraps an Ethereum JSON-RPC client for Polygon-compatible networks, exposes
// read helpers for accounts and transactions, receipt polling, a generic
// retry helper for flaky submissions, typed wrappers for the standard ERC-20,
// ERC-721 and V2-pair contracts, and pure utilities for address/key/amount
// validation and Ethereum-compatible message signatures.
package blockchain

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
	"go.uber.org/zap"

	"github.com/polylabs/polygon-sdk-go/pkg/config"
)

// EVMClient holds a connected ethclient.Client together with the resolved
// chain ID and the configured operation timeouts. All managers share one
// instance; it is safe for concurrent use.
type EVMClient struct {
	Client   *ethclient.Client
	chainID  *big.Int
	timeouts config.Timeouts
}

// FeeData bundles the node's current fee quotes.
type FeeData struct {
	GasPrice  *big.Int
	GasTipCap *big.Int
}

// InitEvm dials the configured RPC endpoint and verifies that the node serves
// the configured chain ID. The dial and the verification are bounded by the
// Dial timeout.
//
// Returns a ready-to-use EVMClient or an error.
func InitEvm(cfg *config.Config) (*EVMClient, error) {
	timeouts := cfg.Timeouts.WithDefaults()

	ctx, cancel := context.WithTimeout(context.Background(), timeouts.Dial)
	defer cancel()

	client, err := ethclient.DialContext(ctx, cfg.RPCAddr)
	if err != nil {
		zap.L().Error("Failed to dial RPC endpoint", zap.Error(err))
		return nil, err
	}

	chainID, err := client.ChainID(ctx)
	if err != nil {
		client.Close()
		zap.L().Error("Failed to read chain ID", zap.Error(err))
		return nil, err
	}

	if want := cfg.Network.ChainIDInt(); want != nil && chainID.Cmp(want) != 0 {
		client.Close()
		return nil, fmt.Errorf("chain ID mismatch: node serves %s, config expects %s", chainID, want)
	}

	if cfg.Debug {
		zap.L().Debug("connected to network",
			zap.String("network", cfg.Network.Name),
			zap.String("chainID", chainID.String()))
	}

	return &EVMClient{
		Client:   client,
		chainID:  chainID,
		timeouts: timeouts,
	}, nil
}

// ChainID returns the chain ID resolved at dial time.
func (evm *EVMClient) ChainID() *big.Int {
	return evm.chainID
}

// Timeouts returns the operation timeouts the client was configured with.
func (evm *EVMClient) Timeouts() config.Timeouts {
	return evm.timeouts
}

// Balance returns the native token balance of addr in base units (wei).
func (evm *EVMClient) Balance(ctx context.Context, addr common.Address) (*big.Int, error) {
	ctx, cancel := withTimeout(ctx, evm.timeouts.ChainRead)
	defer cancel()
	return evm.Client.BalanceAt(ctx, addr, nil)
}

// Nonce returns the next pending nonce for addr.
func (evm *EVMClient) Nonce(ctx context.Context, addr common.Address) (uint64, error) {
	ctx, cancel := withTimeout(ctx, evm.timeouts.ChainRead)
	defer cancel()
	return evm.Client.PendingNonceAt(ctx, addr)
}

// Code returns the deployed bytecode at addr, empty for plain accounts.
func (evm *EVMClient) Code(ctx context.Context, addr common.Address) ([]byte, error) {
	ctx, cancel := withTimeout(ctx, evm.timeouts.ChainRead)
	defer cancel()
	return evm.Client.CodeAt(ctx, addr, nil)
}

// GetCurrentBlockNumber returns the latest block number.
func (evm *EVMClient) GetCurrentBlockNumber(ctx context.Context) (*big.Int, error) {
	ctx, cancel := withTimeout(ctx, evm.timeouts.ChainRead)
	defer cancel()
	number, err := evm.Client.BlockNumber(ctx)
	if err != nil {
		zap.L().Error("failed to get last block number", zap.Error(err))
		return nil, err
	}
	return new(big.Int).SetUint64(number), nil
}

// GetFeeData returns the node's suggested gas price and tip cap.
func (evm *EVMClient) GetFeeData(ctx context.Context) (*FeeData, error) {
	ctx, cancel := withTimeout(ctx, evm.timeouts.ChainRead)
	defer cancel()

	gasPrice, err := evm.Client.SuggestGasPrice(ctx)
	if err != nil {
		return nil, err
	}
	tipCap, err := evm.Client.SuggestGasTipCap(ctx)
	if err != nil {
		return nil, err
	}
	return &FeeData{GasPrice: gasPrice, GasTipCap: tipCap}, nil
}

// EstimateGas asks the node to estimate gas for msg.
func (evm *EVMClient) EstimateGas(ctx context.Context, msg ethereum.CallMsg) (uint64, error) {
	ctx, cancel := withTimeout(ctx, evm.timeouts.ChainRead)
	defer cancel()
	return evm.Client.EstimateGas(ctx, msg)
}

// FilterLogs returns the logs matching q.
func (evm *EVMClient) FilterLogs(ctx context.Context, q ethereum.FilterQuery) ([]types.Log, error) {
	ctx, cancel := withTimeout(ctx, evm.timeouts.ChainRead)
	defer cancel()
	return evm.Client.FilterLogs(ctx, q)
}

// TransactionReceipt returns the receipt for txHash, or ethereum.NotFound
// while the transaction is still pending.
func (evm *EVMClient) TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error) {
	ctx, cancel := withTimeout(ctx, evm.timeouts.ChainRead)
	defer cancel()
	return evm.Client.TransactionReceipt(ctx, txHash)
}

// WaitForTransaction polls for a transaction receipt with exponential backoff,
// until the receipt is available, ctx is done, or a read error occurs. If
// maxBackoff is non-zero, backoff will not exceed it. Reverted transactions
// still return their receipt; callers inspect receipt.Status to build the
// normalized record and the taxonomy error.
func (evm *EVMClient) WaitForTransaction(ctx context.Context, txHash common.Hash, maxBackoff time.Duration) (*types.Receipt, error) {
	ctx, cancel := withTimeout(ctx, evm.timeouts.ReceiptWait)
	defer cancel()

	backoff := time.Second
	if maxBackoff > 0 && backoff > maxBackoff {
		backoff = maxBackoff
	}
	for {
		receipt, err := evm.Client.TransactionReceipt(ctx, txHash)
		switch {
		case err == nil:
			return receipt, nil
		case errors.Is(err, ethereum.NotFound):
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
			backoff = nextBackoff(backoff, maxBackoff)
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			return nil, err
		default:
			return nil, fmt.Errorf("receipt error: %w", err)
		}
	}
}

// nextBackoff doubles the poll interval, clamped to max when max is non-zero.
func nextBackoff(backoff, max time.Duration) time.Duration {
	backoff *= 2
	if max > 0 && backoff > max {
		backoff = max
	}
	return backoff
}

// Close shuts down the underlying RPC connection.
func (evm *EVMClient) Close() {
	if evm.Client != nil {
		evm.Client.Close()
	}
}
