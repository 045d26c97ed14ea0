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

// erc721ABI is the standard ERC-721 interface plus the metadata extension.
const erc721ABI = `[
	{"constant":true,"inputs":[],"name":"name","outputs":[{"name":"","type":"string"}],"type":"function"},
	{"constant":true,"inputs":[],"name":"symbol","outputs":[{"name":"","type":"string"}],"type":"function"},
	{"constant":true,"inputs":[{"name":"_owner","type":"address"}],"name":"balanceOf","outputs":[{"name":"","type":"uint256"}],"type":"function"},
	{"constant":true,"inputs":[{"name":"_tokenId","type":"uint256"}],"name":"ownerOf","outputs":[{"name":"","type":"address"}],"type":"function"},
	{"constant":true,"inputs":[{"name":"_tokenId","type":"uint256"}],"name":"tokenURI","outputs":[{"name":"","type":"string"}],"type":"function"},
	{"constant":true,"inputs":[{"name":"_tokenId","type":"uint256"}],"name":"getApproved","outputs":[{"name":"","type":"address"}],"type":"function"},
	{"constant":false,"inputs":[{"name":"_approved","type":"address"},{"name":"_tokenId","type":"uint256"}],"name":"approve","outputs":[],"type":"function"},
	{"constant":false,"inputs":[{"name":"_from","type":"address"},{"name":"_to","type":"address"},{"name":"_tokenId","type":"uint256"}],"name":"transferFrom","outputs":[],"type":"function"},
	{"constant":false,"inputs":[{"name":"_from","type":"address"},{"name":"_to","type":"address"},{"name":"_tokenId","type":"uint256"}],"name":"safeTransferFrom","outputs":[],"type":"function"}
]`

// ERC721 is a typed wrapper over a standard NFT contract.
type ERC721 struct {
	Address  common.Address
	contract *bind.BoundContract
}

// NewERC721 binds the standard ERC-721 interface at addr to the client.
func (evm *EVMClient) NewERC721(addr common.Address) (*ERC721, error) {
	parsed, err := abi.JSON(strings.NewReader(erc721ABI))
	if err != nil {
		return nil, fmt.Errorf("failed to parse ERC-721 ABI: %w", err)
	}
	return &ERC721{
		Address:  addr,
		contract: bind.NewBoundContract(addr, parsed, evm.Client, evm.Client, evm.Client),
	}, nil
}

// Name returns the collection name.
func (n *ERC721) Name(opts *bind.CallOpts) (string, error) {
	var out []interface{}
	if err := n.contract.Call(opts, &out, "name"); err != nil {
		return "", err
	}
	return asString(out, "name")
}

// Symbol returns the collection symbol.
func (n *ERC721) Symbol(opts *bind.CallOpts) (string, error) {
	var out []interface{}
	if err := n.contract.Call(opts, &out, "symbol"); err != nil {
		return "", err
	}
	return asString(out, "symbol")
}

// BalanceOf returns the number of tokens held by owner.
func (n *ERC721) BalanceOf(opts *bind.CallOpts, owner common.Address) (*big.Int, error) {
	var out []interface{}
	if err := n.contract.Call(opts, &out, "balanceOf", owner); err != nil {
		return nil, err
	}
	return asBigInt(out, "balanceOf")
}

// OwnerOf returns the current owner of tokenID. Contracts revert for
// nonexistent tokens.
func (n *ERC721) OwnerOf(opts *bind.CallOpts, tokenID *big.Int) (common.Address, error) {
	var out []interface{}
	if err := n.contract.Call(opts, &out, "ownerOf", tokenID); err != nil {
		return common.Address{}, err
	}
	return asAddress(out, "ownerOf")
}

// TokenURI returns the metadata URI of tokenID.
func (n *ERC721) TokenURI(opts *bind.CallOpts, tokenID *big.Int) (string, error) {
	var out []interface{}
	if err := n.contract.Call(opts, &out, "tokenURI", tokenID); err != nil {
		return "", err
	}
	return asString(out, "tokenURI")
}

// GetApproved returns the single approved operator of tokenID.
func (n *ERC721) GetApproved(opts *bind.CallOpts, tokenID *big.Int) (common.Address, error) {
	var out []interface{}
	if err := n.contract.Call(opts, &out, "getApproved", tokenID); err != nil {
		return common.Address{}, err
	}
	return asAddress(out, "getApproved")
}

// Approve submits an approval of operator for tokenID.
func (n *ERC721) Approve(opts *bind.TransactOpts, approved common.Address, tokenID *big.Int) (*types.Transaction, error) {
	return n.contract.Transact(opts, "approve", approved, tokenID)
}

// TransferFrom submits an unchecked ownership transfer of tokenID.
func (n *ERC721) TransferFrom(opts *bind.TransactOpts, from, to common.Address, tokenID *big.Int) (*types.Transaction, error) {
	return n.contract.Transact(opts, "transferFrom", from, to, tokenID)
}

// SafeTransferFrom submits an ownership transfer that checks the recipient
// can receive ERC-721 tokens.
func (n *ERC721) SafeTransferFrom(opts *bind.TransactOpts, from, to common.Address, tokenID *big.Int) (*types.Transaction, error) {
	return n.contract.Transact(opts, "safeTransferFrom", from, to, tokenID)
}
