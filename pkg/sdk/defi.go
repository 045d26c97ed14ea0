package sdk

import (
	"context"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"

	"github.com/polylabs/polygon-sdk-go/pkg/blockchain"
	"github.com/polylabs/polygon-sdk-go/pkg/errs"
	"github.com/polylabs/polygon-sdk-go/pkg/model"
)

// DeFiManager reads V2-style liquidity pools. Pool mutation (swaps,
// liquidity provision) is not wired to a router contract and reports
// NOT_IMPLEMENTED after input validation.
type DeFiManager struct {
	core   *Core
	signer *signerSlot
}

func newDeFiManager(c *Core) *DeFiManager {
	return &DeFiManager{core: c, signer: newSignerSlot(c.cfg.PrivateKey)}
}

// SetSigner replaces this manager's signing identity.
func (m *DeFiManager) SetSigner(hexKey string) error { return m.signer.Set(hexKey) }

// ClearSigner removes this manager's signing identity.
func (m *DeFiManager) ClearSigner() { m.signer.Clear() }

// pair validates the pool address and wraps it in a bound contract.
func (m *DeFiManager) pair(pool string) (*blockchain.Pair, error) {
	if !blockchain.ValidateAddress(pool) {
		return nil, errs.InvalidAddress(pool)
	}
	bound, err := m.core.evm.NewPair(common.HexToAddress(pool))
	if err != nil {
		return nil, errs.Contract("bind pair", err)
	}
	return bound, nil
}

// GetPoolInfo reads the pair's token addresses and LP total supply.
func (m *DeFiManager) GetPoolInfo(ctx context.Context, pool string) (*model.PoolInfo, error) {
	pair, err := m.pair(pool)
	if err != nil {
		return nil, err
	}
	opts := &bind.CallOpts{Context: ctx}

	token0, err := pair.Token0(opts)
	if err != nil {
		return nil, errs.Contract("token0", err)
	}
	token1, err := pair.Token1(opts)
	if err != nil {
		return nil, errs.Contract("token1", err)
	}
	supply, err := pair.TotalSupply(opts)
	if err != nil {
		return nil, errs.Contract("totalSupply", err)
	}

	return &model.PoolInfo{
		Address:     pair.Address.Hex(),
		Token0:      token0.Hex(),
		Token1:      token1.Hex(),
		TotalSupply: supply.String(),
	}, nil
}

// GetReserves reads the pair's current reserves.
func (m *DeFiManager) GetReserves(ctx context.Context, pool string) (*model.PoolReserves, error) {
	pair, err := m.pair(pool)
	if err != nil {
		return nil, err
	}
	reserves, err := pair.GetReserves(&bind.CallOpts{Context: ctx})
	if err != nil {
		return nil, errs.Contract("getReserves", err)
	}
	return &model.PoolReserves{
		Reserve0:           reserves.Reserve0.String(),
		Reserve1:           reserves.Reserve1.String(),
		BlockTimestampLast: reserves.BlockTimestampLast,
	}, nil
}

// SpotPrice is the instantaneous pair price in both directions, computed
// from raw reserves with exact decimal arithmetic. Prices are expressed in
// base units per base unit; callers holding the tokens' decimals can rescale.
type SpotPrice struct {
	Token0PerToken1 string `json:"token0_per_token1"`
	Token1PerToken0 string `json:"token1_per_token0"`
}

// spotPricePrecision bounds the decimal expansion of reserve ratios.
const spotPricePrecision = 36

// GetSpotPrice quotes the pair's current reserve ratio. An empty pool
// reports a contract error rather than a division by zero.
func (m *DeFiManager) GetSpotPrice(ctx context.Context, pool string) (*SpotPrice, error) {
	pair, err := m.pair(pool)
	if err != nil {
		return nil, err
	}
	reserves, err := pair.GetReserves(&bind.CallOpts{Context: ctx})
	if err != nil {
		return nil, errs.Contract("getReserves", err)
	}
	if reserves.Reserve0.Sign() == 0 || reserves.Reserve1.Sign() == 0 {
		return nil, errs.ContractError("getSpotPrice", "pool has no liquidity", nil)
	}

	r0 := decimal.NewFromBigInt(reserves.Reserve0, 0)
	r1 := decimal.NewFromBigInt(reserves.Reserve1, 0)
	return &SpotPrice{
		Token0PerToken1: r0.DivRound(r1, spotPricePrecision).String(),
		Token1PerToken0: r1.DivRound(r0, spotPricePrecision).String(),
	}, nil
}

// Swap is not wired to a router contract. Inputs are still validated so
// callers get deterministic INVALID_ADDRESS/INVALID_AMOUNT failures before
// the NOT_IMPLEMENTED report.
func (m *DeFiManager) Swap(ctx context.Context, pool, tokenIn, amount string) (*model.TransactionRecord, error) {
	if !blockchain.ValidateAddress(pool) {
		return nil, errs.InvalidAddress(pool)
	}
	if !blockchain.ValidateAddress(tokenIn) {
		return nil, errs.InvalidAddress(tokenIn)
	}
	if err := checkAmountString(amount); err != nil {
		return nil, err
	}
	return nil, errs.NotImplemented("swap")
}

// AddLiquidity is not wired to a router contract.
func (m *DeFiManager) AddLiquidity(ctx context.Context, pool, amount0, amount1 string) (*model.TransactionRecord, error) {
	if !blockchain.ValidateAddress(pool) {
		return nil, errs.InvalidAddress(pool)
	}
	if err := checkAmountString(amount0); err != nil {
		return nil, err
	}
	if err := checkAmountString(amount1); err != nil {
		return nil, err
	}
	return nil, errs.NotImplemented("add liquidity")
}

// RemoveLiquidity is not wired to a router contract.
func (m *DeFiManager) RemoveLiquidity(ctx context.Context, pool, lpAmount string) (*model.TransactionRecord, error) {
	if !blockchain.ValidateAddress(pool) {
		return nil, errs.InvalidAddress(pool)
	}
	if err := checkAmountString(lpAmount); err != nil {
		return nil, err
	}
	return nil, errs.NotImplemented("remove liquidity")
}
