package sdk

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	"github.com/polylabs/polygon-sdk-go/pkg/blockchain"
	"github.com/polylabs/polygon-sdk-go/pkg/errs"
	"github.com/polylabs/polygon-sdk-go/pkg/model"
)

// TokenManager handles ERC-20 reads and transfers. Human-readable amounts
// are converted to base units using the token's own decimals, read from the
// contract per call.
type TokenManager struct {
	core   *Core
	signer *signerSlot
}

func newTokenManager(c *Core) *TokenManager {
	return &TokenManager{core: c, signer: newSignerSlot(c.cfg.PrivateKey)}
}

// SetSigner replaces this manager's signing identity.
func (m *TokenManager) SetSigner(hexKey string) error { return m.signer.Set(hexKey) }

// ClearSigner removes this manager's signing identity.
func (m *TokenManager) ClearSigner() { m.signer.Clear() }

// erc20 validates the token address and wraps it in a bound contract.
func (m *TokenManager) erc20(token string) (*blockchain.ERC20, error) {
	if !blockchain.ValidateAddress(token) {
		return nil, errs.InvalidAddress(token)
	}
	contract, err := m.core.evm.NewERC20(common.HexToAddress(token))
	if err != nil {
		return nil, errs.Contract("bind erc20", err)
	}
	return contract, nil
}

// GetMetadata reads the token's name, symbol, decimals and total supply.
func (m *TokenManager) GetMetadata(ctx context.Context, token string) (*model.TokenMetadata, error) {
	contract, err := m.erc20(token)
	if err != nil {
		return nil, err
	}
	opts := &bind.CallOpts{Context: ctx}

	name, err := contract.Name(opts)
	if err != nil {
		return nil, errs.Contract("name", err)
	}
	symbol, err := contract.Symbol(opts)
	if err != nil {
		return nil, errs.Contract("symbol", err)
	}
	decimals, err := contract.Decimals(opts)
	if err != nil {
		return nil, errs.Contract("decimals", err)
	}
	supply, err := contract.TotalSupply(opts)
	if err != nil {
		return nil, errs.Contract("totalSupply", err)
	}

	return &model.TokenMetadata{
		Address:     contract.Address.Hex(),
		Name:        name,
		Symbol:      symbol,
		Decimals:    decimals,
		TotalSupply: supply.String(),
	}, nil
}

// GetBalance returns owner's token balance in base units as a decimal string.
func (m *TokenManager) GetBalance(ctx context.Context, token, owner string) (string, error) {
	if !blockchain.ValidateAddress(owner) {
		return "", errs.InvalidAddress(owner)
	}
	contract, err := m.erc20(token)
	if err != nil {
		return "", err
	}
	balance, err := contract.BalanceOf(&bind.CallOpts{Context: ctx}, common.HexToAddress(owner))
	if err != nil {
		return "", errs.Contract("balanceOf", err)
	}
	return balance.String(), nil
}

// GetBalanceFormatted returns owner's token balance as a human-readable
// decimal using the token's on-chain decimals.
func (m *TokenManager) GetBalanceFormatted(ctx context.Context, token, owner string) (string, error) {
	if !blockchain.ValidateAddress(owner) {
		return "", errs.InvalidAddress(owner)
	}
	contract, err := m.erc20(token)
	if err != nil {
		return "", err
	}
	opts := &bind.CallOpts{Context: ctx}
	balance, err := contract.BalanceOf(opts, common.HexToAddress(owner))
	if err != nil {
		return "", errs.Contract("balanceOf", err)
	}
	decimals, err := contract.Decimals(opts)
	if err != nil {
		return "", errs.Contract("decimals", err)
	}
	return blockchain.FormatUnitsBig(balance, int32(decimals)), nil
}

// GetAllowance returns the amount spender may transfer from owner, in base
// units as a decimal string.
func (m *TokenManager) GetAllowance(ctx context.Context, token, owner, spender string) (string, error) {
	if !blockchain.ValidateAddress(owner) {
		return "", errs.InvalidAddress(owner)
	}
	if !blockchain.ValidateAddress(spender) {
		return "", errs.InvalidAddress(spender)
	}
	contract, err := m.erc20(token)
	if err != nil {
		return "", err
	}
	allowance, err := contract.Allowance(&bind.CallOpts{Context: ctx},
		common.HexToAddress(owner), common.HexToAddress(spender))
	if err != nil {
		return "", errs.Contract("allowance", err)
	}
	return allowance.String(), nil
}

// Transfer sends amount (human-readable decimal, e.g. "1.5") of token to the
// given address and waits for confirmation.
func (m *TokenManager) Transfer(ctx context.Context, token, to, amount string) (*model.TransactionRecord, error) {
	if !blockchain.ValidateAddress(to) {
		return nil, errs.InvalidAddress(to)
	}
	if err := checkAmountString(amount); err != nil {
		return nil, err
	}
	key, from, err := m.signer.Signer("token transfer")
	if err != nil {
		return nil, err
	}
	contract, err := m.erc20(token)
	if err != nil {
		return nil, err
	}

	value, err := m.toBaseUnits(ctx, contract, amount)
	if err != nil {
		return nil, err
	}

	balance, err := contract.BalanceOf(&bind.CallOpts{Context: ctx}, from)
	if err != nil {
		return nil, errs.Contract("balanceOf", err)
	}
	if balance.Cmp(value) < 0 {
		return nil, errs.InsufficientBalance(value.String(), balance.String())
	}

	toAddr := common.HexToAddress(to)
	return m.core.submit(ctx, "token transfer", from, func(ctx context.Context) (*types.Transaction, error) {
		opts, err := m.core.transactOpts(ctx, key)
		if err != nil {
			return nil, err
		}
		return contract.Transfer(opts, toAddr, value)
	})
}

// Approve grants spender the right to transfer amount (human-readable
// decimal) of token on behalf of the signer.
func (m *TokenManager) Approve(ctx context.Context, token, spender, amount string) (*model.TransactionRecord, error) {
	if !blockchain.ValidateAddress(spender) {
		return nil, errs.InvalidAddress(spender)
	}
	if err := checkAmountString(amount); err != nil {
		return nil, err
	}
	key, from, err := m.signer.Signer("token approve")
	if err != nil {
		return nil, err
	}
	contract, err := m.erc20(token)
	if err != nil {
		return nil, err
	}

	value, err := m.toBaseUnits(ctx, contract, amount)
	if err != nil {
		return nil, err
	}

	spenderAddr := common.HexToAddress(spender)
	return m.core.submit(ctx, "token approve", from, func(ctx context.Context) (*types.Transaction, error) {
		opts, err := m.core.transactOpts(ctx, key)
		if err != nil {
			return nil, err
		}
		return contract.Approve(opts, spenderAddr, value)
	})
}

// TransferFrom moves amount (human-readable decimal) of token from one
// address to another using the signer's allowance.
func (m *TokenManager) TransferFrom(ctx context.Context, token, from, to, amount string) (*model.TransactionRecord, error) {
	if !blockchain.ValidateAddress(from) {
		return nil, errs.InvalidAddress(from)
	}
	if !blockchain.ValidateAddress(to) {
		return nil, errs.InvalidAddress(to)
	}
	if err := checkAmountString(amount); err != nil {
		return nil, err
	}
	key, signerAddr, err := m.signer.Signer("token transferFrom")
	if err != nil {
		return nil, err
	}
	contract, err := m.erc20(token)
	if err != nil {
		return nil, err
	}

	value, err := m.toBaseUnits(ctx, contract, amount)
	if err != nil {
		return nil, err
	}

	fromAddr := common.HexToAddress(from)
	toAddr := common.HexToAddress(to)
	return m.core.submit(ctx, "token transferFrom", signerAddr, func(ctx context.Context) (*types.Transaction, error) {
		opts, err := m.core.transactOpts(ctx, key)
		if err != nil {
			return nil, err
		}
		return contract.TransferFrom(opts, fromAddr, toAddr, value)
	})
}

// toBaseUnits converts a validated human-readable amount to the token's base
// units using its on-chain decimals.
func (m *TokenManager) toBaseUnits(ctx context.Context, contract *blockchain.ERC20, amount string) (*big.Int, error) {
	decimals, err := contract.Decimals(&bind.CallOpts{Context: ctx})
	if err != nil {
		return nil, errs.Contract("decimals", err)
	}
	return parseAmount(amount, int32(decimals))
}
