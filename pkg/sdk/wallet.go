package sdk

import (
	"context"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"

	"github.com/polylabs/polygon-sdk-go/pkg/blockchain"
	"github.com/polylabs/polygon-sdk-go/pkg/errs"
	"github.com/polylabs/polygon-sdk-go/pkg/model"
)

// nativeTransferGas is the intrinsic gas of a plain value transfer.
const nativeTransferGas = 21000

// nativeDecimals is the fixed-point scale of the chain's native currency.
const nativeDecimals = 18

// WalletManager handles native-currency balances, account state, native
// transfers and message signing.
type WalletManager struct {
	core   *Core
	signer *signerSlot
}

func newWalletManager(c *Core) *WalletManager {
	return &WalletManager{core: c, signer: newSignerSlot(c.cfg.PrivateKey)}
}

// SetSigner replaces this manager's signing identity.
func (m *WalletManager) SetSigner(hexKey string) error { return m.signer.Set(hexKey) }

// ClearSigner removes this manager's signing identity.
func (m *WalletManager) ClearSigner() { m.signer.Clear() }

// Address returns the active signing address, or SIGNER_REQUIRED when no
// identity is configured.
func (m *WalletManager) Address() (string, error) {
	addr, ok := m.signer.Address()
	if !ok {
		return "", errs.SignerRequired("wallet address")
	}
	return addr.Hex(), nil
}

// GeneratedAccount is a freshly created key pair. The private key is
// returned to the caller once and kept nowhere else.
type GeneratedAccount struct {
	Address    string `json:"address"`
	PrivateKey string `json:"-"`
}

// GenerateAccount creates a new random account and adopts it as this
// manager's signing identity.
func (m *WalletManager) GenerateAccount() (*GeneratedAccount, error) {
	addr, hexKey, err := blockchain.GeneratePrivateKey()
	if err != nil {
		return nil, errs.Network("generate account", err)
	}
	if err := m.signer.Set(hexKey); err != nil {
		return nil, err
	}
	return &GeneratedAccount{Address: addr.Hex(), PrivateKey: hexKey}, nil
}

// GetBalance returns the native balance of address in base units (wei) as a
// decimal string.
func (m *WalletManager) GetBalance(ctx context.Context, address string) (string, error) {
	if !blockchain.ValidateAddress(address) {
		return "", errs.InvalidAddress(address)
	}
	balance, err := m.core.evm.Balance(ctx, common.HexToAddress(address))
	if err != nil {
		return "", errs.Network("get balance", err)
	}
	return balance.String(), nil
}

// GetBalanceFormatted returns the native balance of address as a
// human-readable decimal (18-decimals scale).
func (m *WalletManager) GetBalanceFormatted(ctx context.Context, address string) (string, error) {
	base, err := m.GetBalance(ctx, address)
	if err != nil {
		return "", err
	}
	return blockchain.FormatUnits(base, nativeDecimals)
}

// GetTransactionCount returns the pending nonce of address.
func (m *WalletManager) GetTransactionCount(ctx context.Context, address string) (uint64, error) {
	if !blockchain.ValidateAddress(address) {
		return 0, errs.InvalidAddress(address)
	}
	nonce, err := m.core.evm.Nonce(ctx, common.HexToAddress(address))
	if err != nil {
		return 0, errs.Network("get transaction count", err)
	}
	return nonce, nil
}

// IsContract reports whether address has deployed code.
func (m *WalletManager) IsContract(ctx context.Context, address string) (bool, error) {
	if !blockchain.ValidateAddress(address) {
		return false, errs.InvalidAddress(address)
	}
	code, err := m.core.evm.Code(ctx, common.HexToAddress(address))
	if err != nil {
		return false, errs.Network("get code", err)
	}
	return len(code) > 0, nil
}

// AccountOverview is a combined snapshot of an account's state.
type AccountOverview struct {
	Address          string `json:"address"`
	Balance          string `json:"balance"`
	TransactionCount uint64 `json:"transaction_count"`
	IsContract       bool   `json:"is_contract"`
}

// GetAccountOverview fetches balance, nonce and code concurrently and joins
// the results. The first failure wins.
func (m *WalletManager) GetAccountOverview(ctx context.Context, address string) (*AccountOverview, error) {
	if !blockchain.ValidateAddress(address) {
		return nil, errs.InvalidAddress(address)
	}
	addr := common.HexToAddress(address)

	overview := &AccountOverview{Address: addr.Hex()}
	var wg sync.WaitGroup
	var mu sync.Mutex
	var firstErr error

	fail := func(err error) {
		mu.Lock()
		defer mu.Unlock()
		if firstErr == nil {
			firstErr = err
		}
	}

	wg.Add(3)
	go func() {
		defer wg.Done()
		balance, err := m.core.evm.Balance(ctx, addr)
		if err != nil {
			fail(err)
			return
		}
		overview.Balance = balance.String()
	}()
	go func() {
		defer wg.Done()
		nonce, err := m.core.evm.Nonce(ctx, addr)
		if err != nil {
			fail(err)
			return
		}
		overview.TransactionCount = nonce
	}()
	go func() {
		defer wg.Done()
		code, err := m.core.evm.Code(ctx, addr)
		if err != nil {
			fail(err)
			return
		}
		overview.IsContract = len(code) > 0
	}()
	wg.Wait()

	if firstErr != nil {
		return nil, errs.Network("get account overview", firstErr)
	}
	return overview, nil
}

// Transfer sends amount (a human-readable decimal in native currency units,
// e.g. "0.5") to the given address and waits for confirmation.
func (m *WalletManager) Transfer(ctx context.Context, to, amount string) (*model.TransactionRecord, error) {
	if !blockchain.ValidateAddress(to) {
		return nil, errs.InvalidAddress(to)
	}
	value, err := parseAmount(amount, nativeDecimals)
	if err != nil {
		return nil, err
	}
	key, from, err := m.signer.Signer("native transfer")
	if err != nil {
		return nil, err
	}

	evm := m.core.evm

	balance, err := evm.Balance(ctx, from)
	if err != nil {
		return nil, errs.Network("get balance", err)
	}
	if balance.Cmp(value) < 0 {
		return nil, errs.InsufficientBalance(value.String(), balance.String())
	}

	toAddr := common.HexToAddress(to)
	return m.core.submit(ctx, "native transfer", from, func(ctx context.Context) (*types.Transaction, error) {
		nonce, err := evm.Nonce(ctx, from)
		if err != nil {
			return nil, err
		}

		gasPrice, err := m.gasPrice(ctx)
		if err != nil {
			return nil, err
		}

		tx := types.NewTx(&types.LegacyTx{
			Nonce:    nonce,
			To:       &toAddr,
			Value:    value,
			Gas:      nativeTransferGas,
			GasPrice: gasPrice,
		})
		signed, err := types.SignTx(tx, types.LatestSignerForChainID(evm.ChainID()), key)
		if err != nil {
			return nil, err
		}
		if err := evm.Client.SendTransaction(ctx, signed); err != nil {
			return nil, err
		}
		return signed, nil
	})
}

// gasPrice resolves the effective gas price: the configured override when
// set, otherwise the node's suggestion.
func (m *WalletManager) gasPrice(ctx context.Context) (*big.Int, error) {
	if m.core.cfg.GasPrice != "" {
		price, ok := new(big.Int).SetString(m.core.cfg.GasPrice, 10)
		if !ok {
			return nil, errs.InvalidAmount(m.core.cfg.GasPrice)
		}
		return price, nil
	}
	fee, err := m.core.evm.GetFeeData(ctx)
	if err != nil {
		return nil, err
	}
	return fee.GasPrice, nil
}

// SignMessage signs an arbitrary message with the manager's signing identity
// using EIP-191 personal-sign semantics and returns the hex-encoded
// signature.
func (m *WalletManager) SignMessage(message []byte) (string, error) {
	key, _, err := m.signer.Signer("sign message")
	if err != nil {
		return "", err
	}
	sig, err := blockchain.GetSignature(message, key)
	if err != nil {
		return "", errs.Network("sign message", err)
	}
	return hexutil.Encode(sig), nil
}

// VerifyMessage reports whether signature (hex-encoded) over message was
// produced by the given address.
func (m *WalletManager) VerifyMessage(message []byte, signature, address string) (bool, error) {
	if !blockchain.ValidateAddress(address) {
		return false, errs.InvalidAddress(address)
	}
	sig, err := hexutil.Decode(signature)
	if err != nil {
		// An undecodable signature does not verify, same as a wrong one.
		return false, nil
	}
	return blockchain.VerifySignature(message, sig, common.HexToAddress(address)), nil
}
