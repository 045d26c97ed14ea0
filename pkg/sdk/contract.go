package sdk

import (
	"context"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"

	"github.com/polylabs/polygon-sdk-go/pkg/blockchain"
	"github.com/polylabs/polygon-sdk-go/pkg/errs"
	"github.com/polylabs/polygon-sdk-go/pkg/model"
)

// ContractManager exposes generic contract interaction against a
// caller-supplied ABI: read-only calls, state-mutating executions and
// deployments.
type ContractManager struct {
	core   *Core
	signer *signerSlot
}

func newContractManager(c *Core) *ContractManager {
	return &ContractManager{core: c, signer: newSignerSlot(c.cfg.PrivateKey)}
}

// SetSigner replaces this manager's signing identity.
func (m *ContractManager) SetSigner(hexKey string) error { return m.signer.Set(hexKey) }

// ClearSigner removes this manager's signing identity.
func (m *ContractManager) ClearSigner() { m.signer.Clear() }

// bind parses abiJSON and binds it to the contract at address.
func (m *ContractManager) bind(address, abiJSON string) (*bind.BoundContract, abi.ABI, error) {
	parsed, err := abi.JSON(strings.NewReader(abiJSON))
	if err != nil {
		return nil, abi.ABI{}, errs.ContractError("parse abi", "malformed ABI JSON", err)
	}
	if !blockchain.ValidateAddress(address) {
		return nil, abi.ABI{}, errs.InvalidAddress(address)
	}
	client := m.core.evm.Client
	contract := bind.NewBoundContract(common.HexToAddress(address), parsed, client, client, client)
	return contract, parsed, nil
}

// IsDeployed reports whether address holds deployed bytecode.
func (m *ContractManager) IsDeployed(ctx context.Context, address string) (bool, error) {
	if !blockchain.ValidateAddress(address) {
		return false, errs.InvalidAddress(address)
	}
	code, err := m.core.evm.Code(ctx, common.HexToAddress(address))
	if err != nil {
		return false, errs.Network("get code", err)
	}
	return len(code) > 0, nil
}

// FilterLogs returns the logs emitted by address in the given block range,
// optionally narrowed by topic values (hex-encoded 32-byte words, one
// position per slot). fromBlock/toBlock of zero mean genesis/latest.
func (m *ContractManager) FilterLogs(ctx context.Context, address string, topics []string, fromBlock, toBlock uint64) ([]types.Log, error) {
	if !blockchain.ValidateAddress(address) {
		return nil, errs.InvalidAddress(address)
	}

	q := ethereum.FilterQuery{
		Addresses: []common.Address{common.HexToAddress(address)},
	}
	if fromBlock > 0 {
		q.FromBlock = new(big.Int).SetUint64(fromBlock)
	}
	if toBlock > 0 {
		q.ToBlock = new(big.Int).SetUint64(toBlock)
	}
	if len(topics) > 0 {
		row := make([]common.Hash, 0, len(topics))
		for _, t := range topics {
			row = append(row, common.HexToHash(t))
		}
		// One value per topic slot; empty slots are not expressible here.
		for _, h := range row {
			q.Topics = append(q.Topics, []common.Hash{h})
		}
	}

	logs, err := m.core.evm.FilterLogs(ctx, q)
	if err != nil {
		return nil, errs.Network("filter logs", err)
	}
	return logs, nil
}

// Call performs a read-only contract call and returns the decoded outputs.
func (m *ContractManager) Call(ctx context.Context, address, abiJSON, method string, args ...any) ([]any, error) {
	contract, _, err := m.bind(address, abiJSON)
	if err != nil {
		return nil, err
	}
	var out []any
	if err := contract.Call(&bind.CallOpts{Context: ctx}, &out, method, args...); err != nil {
		return nil, errs.Contract(method, err)
	}
	return out, nil
}

// Execute submits a state-mutating contract call and waits for confirmation.
func (m *ContractManager) Execute(ctx context.Context, address, abiJSON, method string, args ...any) (*model.TransactionRecord, error) {
	key, from, err := m.signer.Signer("contract execute")
	if err != nil {
		return nil, err
	}
	contract, _, err := m.bind(address, abiJSON)
	if err != nil {
		return nil, err
	}

	return m.core.submit(ctx, "execute "+method, from, func(ctx context.Context) (*types.Transaction, error) {
		opts, err := m.core.transactOpts(ctx, key)
		if err != nil {
			return nil, err
		}
		return contract.Transact(opts, method, args...)
	})
}

// Deploy submits a contract creation transaction from abiJSON and the
// hex-encoded deployment bytecode, waits for confirmation and returns the
// normalized record. The deployed contract address is reported in the
// record's To field.
func (m *ContractManager) Deploy(ctx context.Context, abiJSON, bytecodeHex string, args ...any) (*model.TransactionRecord, error) {
	key, from, err := m.signer.Signer("contract deploy")
	if err != nil {
		return nil, err
	}
	parsed, err := abi.JSON(strings.NewReader(abiJSON))
	if err != nil {
		return nil, errs.ContractError("parse abi", "malformed ABI JSON", err)
	}
	bytecode, err := hexutil.Decode(bytecodeHex)
	if err != nil {
		return nil, errs.ContractError("deploy", "malformed bytecode hex", err)
	}

	return m.core.submit(ctx, "deploy", from, func(ctx context.Context) (*types.Transaction, error) {
		opts, err := m.core.transactOpts(ctx, key)
		if err != nil {
			return nil, err
		}
		_, tx, _, err := bind.DeployContract(opts, parsed, bytecode, m.core.evm.Client, args...)
		return tx, err
	})
}
