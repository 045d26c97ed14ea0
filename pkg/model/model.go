// Package model defines the data shapes returned by the SDK managers:
// normalized transaction records, token and NFT metadata, DeFi pool
// snapshots, and an order-preserving metadata mapping used for schema-less
// documents stored off-chain.
package model

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// TxStatus is the normalized execution status of a submitted transaction.
type TxStatus string

const (
	// StatusPending means no receipt is available yet.
	StatusPending TxStatus = "pending"
	// StatusSuccess means the receipt reported successful execution.
	StatusSuccess TxStatus = "success"
	// StatusFailed means the receipt reported a revert.
	StatusFailed TxStatus = "failed"
)

// TransactionRecord is the uniform transaction shape returned by every
// manager after a state-mutating call. Numeric chain values are normalized to
// decimal strings so callers never handle *big.Int directly.
type TransactionRecord struct {
	Hash        string       `json:"hash"`
	From        string       `json:"from"`
	To          string       `json:"to"`
	Value       string       `json:"value"`
	GasUsed     uint64       `json:"gas_used"`
	GasPrice    string       `json:"gas_price"`
	Status      TxStatus     `json:"status"`
	BlockNumber *big.Int     `json:"block_number,omitempty"`
	Logs        []*types.Log `json:"logs,omitempty"`
}

// NewTransactionRecord normalizes a signed transaction and its receipt into a
// TransactionRecord. A nil receipt yields StatusPending; receipt status 1
// yields StatusSuccess, anything else StatusFailed. For contract creations
// (tx.To() == nil) the receipt's contract address is reported as To.
func NewTransactionRecord(tx *types.Transaction, from common.Address, receipt *types.Receipt) *TransactionRecord {
	record := &TransactionRecord{
		Hash:   tx.Hash().Hex(),
		From:   from.Hex(),
		Value:  tx.Value().String(),
		Status: StatusPending,
	}

	if to := tx.To(); to != nil {
		record.To = to.Hex()
	}
	if gp := tx.GasPrice(); gp != nil {
		record.GasPrice = gp.String()
	}

	if receipt == nil {
		return record
	}

	if receipt.Status == types.ReceiptStatusSuccessful {
		record.Status = StatusSuccess
	} else {
		record.Status = StatusFailed
	}
	record.GasUsed = receipt.GasUsed
	record.BlockNumber = receipt.BlockNumber
	record.Logs = receipt.Logs
	if receipt.EffectiveGasPrice != nil {
		record.GasPrice = receipt.EffectiveGasPrice.String()
	}
	if tx.To() == nil {
		record.To = receipt.ContractAddress.Hex()
	}

	return record
}

// TokenMetadata holds ERC-20 token information read from the token contract.
type TokenMetadata struct {
	// Address is the contract address of the token.
	Address string `json:"address"`
	// Name is the full name of the token (e.g. "Wrapped Matic").
	Name string `json:"name"`
	// Symbol is the token's symbol (e.g. "WMATIC").
	Symbol string `json:"symbol"`
	// Decimals is the fixed-point scale of the token: 18 decimals means
	// 1 token = 1e18 base units.
	Decimals uint8 `json:"decimals"`
	// TotalSupply is the total token supply in base units.
	TotalSupply string `json:"total_supply"`
}

// CollectionInfo holds ERC-721 collection information read from the NFT
// contract.
type CollectionInfo struct {
	Address string `json:"address"`
	Name    string `json:"name"`
	Symbol  string `json:"symbol"`
}

// NFTMetadata is the off-chain metadata document referenced by an ERC-721
// tokenURI. Name, Description and Image cover the common schema; Document
// retains the complete payload with its original key order for schema-less
// consumers.
type NFTMetadata struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Image       string   `json:"image"`
	Document    Metadata `json:"-"`
}

// LicenseMetadata is a schema-less license document stored off-chain. The
// mapping keeps the key order of the source document.
type LicenseMetadata struct {
	LicenseID string   `json:"license_id"`
	Document  Metadata `json:"-"`
}

// PoolReserves is a read-only snapshot of a V2-style pair's reserves.
type PoolReserves struct {
	Reserve0           string `json:"reserve0"`
	Reserve1           string `json:"reserve1"`
	BlockTimestampLast uint32 `json:"block_timestamp_last"`
}

// PoolInfo describes a V2-style pair contract.
type PoolInfo struct {
	Address     string `json:"address"`
	Token0      string `json:"token0"`
	Token1      string `json:"token1"`
	TotalSupply string `json:"total_supply"`
}
