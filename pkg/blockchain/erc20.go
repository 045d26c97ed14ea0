package blockchain

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// erc20ABI is the standard ERC-20 interface, including the optional metadata
// extension (name/symbol/decimals).
const erc20ABI = `[
	{"constant":true,"inputs":[],"name":"name","outputs":[{"name":"","type":"string"}],"type":"function"},
	{"constant":true,"inputs":[],"name":"symbol","outputs":[{"name":"","type":"string"}],"type":"function"},
	{"constant":true,"inputs":[],"name":"decimals","outputs":[{"name":"","type":"uint8"}],"type":"function"},
	{"constant":true,"inputs":[],"name":"totalSupply","outputs":[{"name":"","type":"uint256"}],"type":"function"},
	{"constant":true,"inputs":[{"name":"_owner","type":"address"}],"name":"balanceOf","outputs":[{"name":"balance","type":"uint256"}],"type":"function"},
	{"constant":true,"inputs":[{"name":"_owner","type":"address"},{"name":"_spender","type":"address"}],"name":"allowance","outputs":[{"name":"","type":"uint256"}],"type":"function"},
	{"constant":false,"inputs":[{"name":"_to","type":"address"},{"name":"_value","type":"uint256"}],"name":"transfer","outputs":[{"name":"","type":"bool"}],"type":"function"},
	{"constant":false,"inputs":[{"name":"_spender","type":"address"},{"name":"_value","type":"uint256"}],"name":"approve","outputs":[{"name":"","type":"bool"}],"type":"function"},
	{"constant":false,"inputs":[{"name":"_from","type":"address"},{"name":"_to","type":"address"},{"name":"_value","type":"uint256"}],"name":"transferFrom","outputs":[{"name":"","type":"bool"}],"type":"function"}
]`

// ERC20 is a typed wrapper over a standard token contract.
type ERC20 struct {
	Address  common.Address
	contract *bind.BoundContract
}

// NewERC20 binds the standard ERC-20 interface at addr to the client.
func (evm *EVMClient) NewERC20(addr common.Address) (*ERC20, error) {
	parsed, err := abi.JSON(strings.NewReader(erc20ABI))
	if err != nil {
		return nil, fmt.Errorf("failed to parse ERC-20 ABI: %w", err)
	}
	return &ERC20{
		Address:  addr,
		contract: bind.NewBoundContract(addr, parsed, evm.Client, evm.Client, evm.Client),
	}, nil
}

// Name returns the token name.
func (t *ERC20) Name(opts *bind.CallOpts) (string, error) {
	var out []interface{}
	if err := t.contract.Call(opts, &out, "name"); err != nil {
		return "", err
	}
	return asString(out, "name")
}

// Symbol returns the token symbol.
func (t *ERC20) Symbol(opts *bind.CallOpts) (string, error) {
	var out []interface{}
	if err := t.contract.Call(opts, &out, "symbol"); err != nil {
		return "", err
	}
	return asString(out, "symbol")
}

// Decimals returns the token's fixed-point scale.
func (t *ERC20) Decimals(opts *bind.CallOpts) (uint8, error) {
	var out []interface{}
	if err := t.contract.Call(opts, &out, "decimals"); err != nil {
		return 0, err
	}
	if len(out) == 0 {
		return 0, fmt.Errorf("decimals returned no value")
	}
	d, ok := out[0].(uint8)
	if !ok {
		return 0, fmt.Errorf("decimals returned unexpected type %T", out[0])
	}
	return d, nil
}

// TotalSupply returns the total token supply in base units.
func (t *ERC20) TotalSupply(opts *bind.CallOpts) (*big.Int, error) {
	var out []interface{}
	if err := t.contract.Call(opts, &out, "totalSupply"); err != nil {
		return nil, err
	}
	return asBigInt(out, "totalSupply")
}

// BalanceOf returns owner's balance in base units.
func (t *ERC20) BalanceOf(opts *bind.CallOpts, owner common.Address) (*big.Int, error) {
	var out []interface{}
	if err := t.contract.Call(opts, &out, "balanceOf", owner); err != nil {
		return nil, err
	}
	return asBigInt(out, "balanceOf")
}

// Allowance returns the remaining allowance from owner to spender.
func (t *ERC20) Allowance(opts *bind.CallOpts, owner, spender common.Address) (*big.Int, error) {
	var out []interface{}
	if err := t.contract.Call(opts, &out, "allowance", owner, spender); err != nil {
		return nil, err
	}
	return asBigInt(out, "allowance")
}

// Transfer submits a token transfer to the recipient.
func (t *ERC20) Transfer(opts *bind.TransactOpts, to common.Address, value *big.Int) (*types.Transaction, error) {
	return t.contract.Transact(opts, "transfer", to, value)
}

// Approve submits an allowance update for spender.
func (t *ERC20) Approve(opts *bind.TransactOpts, spender common.Address, value *big.Int) (*types.Transaction, error) {
	return t.contract.Transact(opts, "approve", spender, value)
}

// TransferFrom submits a delegated transfer using a previously granted
// allowance.
func (t *ERC20) TransferFrom(opts *bind.TransactOpts, from, to common.Address, value *big.Int) (*types.Transaction, error) {
	return t.contract.Transact(opts, "transferFrom", from, to, value)
}

// asString extracts a single string return value.
func asString(out []interface{}, method string) (string, error) {
	if len(out) == 0 {
		return "", fmt.Errorf("%s returned no value", method)
	}
	s, ok := out[0].(string)
	if !ok {
		return "", fmt.Errorf("%s returned unexpected type %T", method, out[0])
	}
	return s, nil
}

// asBigInt extracts a single *big.Int return value.
func asBigInt(out []interface{}, method string) (*big.Int, error) {
	if len(out) == 0 {
		return nil, fmt.Errorf("%s returned no value", method)
	}
	v, ok := out[0].(*big.Int)
	if !ok {
		return nil, fmt.Errorf("%s returned unexpected type %T", method, out[0])
	}
	return v, nil
}

// asAddress extracts a single address return value.
func asAddress(out []interface{}, method string) (common.Address, error) {
	if len(out) == 0 {
		return common.Address{}, fmt.Errorf("%s returned no value", method)
	}
	a, ok := out[0].(common.Address)
	if !ok {
		return common.Address{}, fmt.Errorf("%s returned unexpected type %T", method, out[0])
	}
	return a, nil
}
