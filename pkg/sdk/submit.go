package sdk

import (
	"context"
	"crypto/ecdsa"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/polylabs/polygon-sdk-go/pkg/blockchain"
	"github.com/polylabs/polygon-sdk-go/pkg/errs"
	"github.com/polylabs/polygon-sdk-go/pkg/model"
)

// submitPolicy derives the retry policy for mutating submissions from the
// configuration: configured attempt cap and base delay, with the chain
// submit timeout bounding each attempt.
func (c *Core) submitPolicy() blockchain.RetryPolicy {
	return blockchain.RetryPolicy{
		MaxAttempts:    c.cfg.Retry.MaxAttempts,
		BaseDelay:      c.cfg.Retry.BaseDelay,
		AttemptTimeout: c.cfg.Timeouts.ChainSubmit,
	}
}

// transactOpts builds signed transact options for the key, applying any gas
// overrides from the configuration.
func (c *Core) transactOpts(ctx context.Context, key *ecdsa.PrivateKey) (*bind.TransactOpts, error) {
	opts, err := c.evm.GetTransactOpts(key)
	if err != nil {
		return nil, errs.Network("build transact opts", err)
	}
	opts.Context = ctx
	if err := blockchain.ApplyGasOverrides(opts, c.cfg.GasPrice, c.cfg.GasLimit); err != nil {
		return nil, errs.InvalidAmount(c.cfg.GasPrice)
	}
	return opts, nil
}

// checkGasOverrides validates the configured gas price override before the
// retry loop, so a config mistake fails once with INVALID_AMOUNT instead of
// burning retry attempts.
func (c *Core) checkGasOverrides() error {
	if c.cfg.GasPrice == "" {
		return nil
	}
	if _, ok := new(big.Int).SetString(c.cfg.GasPrice, 10); !ok {
		return errs.InvalidAmount(c.cfg.GasPrice)
	}
	return nil
}

// submit runs the uniform mutating-call pipeline: the send closure is retried
// under the configured policy, then the transaction is awaited and its
// receipt normalized into a TransactionRecord.
//
// A reverted transaction returns the failed record together with a
// TRANSACTION_FAILED error. A transaction that is submitted but not yet
// mined when the receipt wait gives up returns the pending record without
// error.
func (c *Core) submit(ctx context.Context, operation string, from common.Address,
	send func(ctx context.Context) (*types.Transaction, error)) (*model.TransactionRecord, error) {

	if err := c.checkGasOverrides(); err != nil {
		return nil, err
	}

	tx, err := blockchain.Retry(ctx, c.submitPolicy(), send)
	if err != nil {
		return nil, errs.Network(operation, err)
	}

	zap.L().Debug("transaction submitted",
		zap.String("op", operation),
		zap.String("hash", blockchain.TruncateHex(tx.Hash().Hex())))

	waitCtx, cancel := context.WithTimeout(ctx, c.cfg.Timeouts.ReceiptWait)
	defer cancel()

	receipt, err := c.evm.WaitForTransaction(waitCtx, tx.Hash(), c.cfg.Timeouts.ReceiptWait)
	if err != nil {
		if waitCtx.Err() != nil {
			// Submitted but unconfirmed: report the pending record.
			return model.NewTransactionRecord(tx, from, nil), nil
		}
		return nil, errs.Network(operation, err)
	}

	record := model.NewTransactionRecord(tx, from, receipt)
	if record.Status == model.StatusFailed {
		return record, errs.TransactionFailed(record.Hash, "execution reverted", nil)
	}
	return record, nil
}

// parseAmount validates a human-readable decimal amount and converts it to
// base units. Empty, zero, negative or malformed amounts fail with
// INVALID_AMOUNT before any network traffic.
func parseAmount(amount string, decimals int32) (*big.Int, error) {
	if amount == "" {
		return nil, errs.InvalidAmount(amount)
	}
	value, err := blockchain.ParseUnits(amount, decimals)
	if err != nil {
		return nil, errs.InvalidAmount(amount)
	}
	if value.Sign() <= 0 {
		return nil, errs.InvalidAmount(amount)
	}
	return value, nil
}

// checkAmountString is the pre-network amount gate for operations that do
// not know the token's decimals yet: it rejects empty, zero, negative and
// malformed amounts without any chain I/O.
func checkAmountString(amount string) error {
	if amount == "" {
		return errs.InvalidAmount(amount)
	}
	d, err := decimal.NewFromString(amount)
	if err != nil || d.Sign() <= 0 {
		return errs.InvalidAmount(amount)
	}
	return nil
}
