package blockchain

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
)

// pairABI is the read subset of a UniswapV2-style pair contract, which
// QuickSwap and the other Polygon V2 forks share.
const pairABI = `[
	{"constant":true,"inputs":[],"name":"token0","outputs":[{"name":"","type":"address"}],"type":"function"},
	{"constant":true,"inputs":[],"name":"token1","outputs":[{"name":"","type":"address"}],"type":"function"},
	{"constant":true,"inputs":[],"name":"totalSupply","outputs":[{"name":"","type":"uint256"}],"type":"function"},
	{"constant":true,"inputs":[],"name":"getReserves","outputs":[{"name":"_reserve0","type":"uint112"},{"name":"_reserve1","type":"uint112"},{"name":"_blockTimestampLast","type":"uint32"}],"type":"function"}
]`

// Pair is a typed wrapper over a V2-style liquidity pair contract.
type Pair struct {
	Address  common.Address
	contract *bind.BoundContract
}

// Reserves is the getReserves call result.
type Reserves struct {
	Reserve0           *big.Int
	Reserve1           *big.Int
	BlockTimestampLast uint32
}

// NewPair binds the V2 pair interface at addr to the client.
func (evm *EVMClient) NewPair(addr common.Address) (*Pair, error) {
	parsed, err := abi.JSON(strings.NewReader(pairABI))
	if err != nil {
		return nil, fmt.Errorf("failed to parse pair ABI: %w", err)
	}
	return &Pair{
		Address:  addr,
		contract: bind.NewBoundContract(addr, parsed, evm.Client, evm.Client, evm.Client),
	}, nil
}

// Token0 returns the pair's first token address.
func (p *Pair) Token0(opts *bind.CallOpts) (common.Address, error) {
	var out []interface{}
	if err := p.contract.Call(opts, &out, "token0"); err != nil {
		return common.Address{}, err
	}
	return asAddress(out, "token0")
}

// Token1 returns the pair's second token address.
func (p *Pair) Token1(opts *bind.CallOpts) (common.Address, error) {
	var out []interface{}
	if err := p.contract.Call(opts, &out, "token1"); err != nil {
		return common.Address{}, err
	}
	return asAddress(out, "token1")
}

// TotalSupply returns the LP token supply.
func (p *Pair) TotalSupply(opts *bind.CallOpts) (*big.Int, error) {
	var out []interface{}
	if err := p.contract.Call(opts, &out, "totalSupply"); err != nil {
		return nil, err
	}
	return asBigInt(out, "totalSupply")
}

// GetReserves returns the current pool reserves and the timestamp of the last
// reserve-updating block.
func (p *Pair) GetReserves(opts *bind.CallOpts) (*Reserves, error) {
	var out []interface{}
	if err := p.contract.Call(opts, &out, "getReserves"); err != nil {
		return nil, err
	}
	if len(out) != 3 {
		return nil, fmt.Errorf("getReserves returned %d values", len(out))
	}
	r0, ok0 := out[0].(*big.Int)
	r1, ok1 := out[1].(*big.Int)
	ts, ok2 := out[2].(uint32)
	if !ok0 || !ok1 || !ok2 {
		return nil, fmt.Errorf("getReserves returned unexpected types %T %T %T", out[0], out[1], out[2])
	}
	return &Reserves{Reserve0: r0, Reserve1: r1, BlockTimestampLast: ts}, nil
}
