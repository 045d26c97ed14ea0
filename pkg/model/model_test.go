package model

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

func TestNewTransactionRecord_Success(t *testing.T) {
	to := common.HexToAddress("0x000000000000000000000000000000000000dEaD")
	tx := types.NewTx(&types.LegacyTx{
		Nonce:    7,
		To:       &to,
		Value:    big.NewInt(1000),
		Gas:      21000,
		GasPrice: big.NewInt(30_000_000_000),
	})
	from := common.HexToAddress("0x00000000000000000000000000000000000000A1")
	receipt := &types.Receipt{
		Status:            types.ReceiptStatusSuccessful,
		GasUsed:           21000,
		BlockNumber:       big.NewInt(123),
		EffectiveGasPrice: big.NewInt(29_000_000_000),
	}

	rec := NewTransactionRecord(tx, from, receipt)

	if rec.Status != StatusSuccess {
		t.Fatalf("unexpected status: %s", rec.Status)
	}
	if rec.Hash != tx.Hash().Hex() {
		t.Fatalf("unexpected hash: %s", rec.Hash)
	}
	if rec.From != from.Hex() || rec.To != to.Hex() {
		t.Fatalf("unexpected endpoints: %s -> %s", rec.From, rec.To)
	}
	if rec.Value != "1000" {
		t.Fatalf("unexpected value: %s", rec.Value)
	}
	if rec.GasUsed != 21000 {
		t.Fatalf("unexpected gas used: %d", rec.GasUsed)
	}
	// Effective price from the receipt wins over the tx price.
	if rec.GasPrice != "29000000000" {
		t.Fatalf("unexpected gas price: %s", rec.GasPrice)
	}
	if rec.BlockNumber.Int64() != 123 {
		t.Fatalf("unexpected block number: %v", rec.BlockNumber)
	}
}

func TestNewTransactionRecord_PendingAndFailed(t *testing.T) {
	to := common.HexToAddress("0x000000000000000000000000000000000000dEaD")
	tx := types.NewTx(&types.LegacyTx{
		To:       &to,
		Value:    big.NewInt(0),
		Gas:      21000,
		GasPrice: big.NewInt(1),
	})
	from := common.HexToAddress("0x00000000000000000000000000000000000000A1")

	pending := NewTransactionRecord(tx, from, nil)
	if pending.Status != StatusPending {
		t.Fatalf("expected pending without receipt, got %s", pending.Status)
	}
	if pending.BlockNumber != nil {
		t.Fatalf("pending record must have no block number, got %v", pending.BlockNumber)
	}

	failed := NewTransactionRecord(tx, from, &types.Receipt{Status: types.ReceiptStatusFailed})
	if failed.Status != StatusFailed {
		t.Fatalf("expected failed for reverted receipt, got %s", failed.Status)
	}
}

func TestNewTransactionRecord_ContractCreation(t *testing.T) {
	tx := types.NewTx(&types.LegacyTx{
		Value:    big.NewInt(0),
		Gas:      500000,
		GasPrice: big.NewInt(1),
		Data:     []byte{0x60, 0x80},
	})
	from := common.HexToAddress("0x00000000000000000000000000000000000000A1")
	deployed := common.HexToAddress("0x00000000000000000000000000000000000000C0")

	rec := NewTransactionRecord(tx, from, &types.Receipt{
		Status:          types.ReceiptStatusSuccessful,
		ContractAddress: deployed,
	})
	if rec.To != deployed.Hex() {
		t.Fatalf("expected deployed address as To, got %s", rec.To)
	}
}
