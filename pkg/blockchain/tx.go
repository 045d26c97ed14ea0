package blockchain

import (
	"crypto/ecdsa"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"go.uber.org/zap"
)

// GetTransactOpts creates a transactor bound to the given chainID and ECDSA key.
// The returned TransactOpts can be used to send transactions to the blockchain.
func GetTransactOpts(chainID *big.Int, pk *ecdsa.PrivateKey) (*bind.TransactOpts, error) {
	opts, err := bind.NewKeyedTransactorWithChainID(pk, chainID)
	if err != nil {
		zap.L().Error("failed to create transactor", zap.Error(err))
		return nil, err
	}
	return opts, nil
}

// GetTransactOpts creates a transactor from the EVM client context, using the
// chain ID resolved at dial time.
func (evm *EVMClient) GetTransactOpts(pk *ecdsa.PrivateKey) (*bind.TransactOpts, error) {
	if pk == nil {
		return nil, fmt.Errorf("private key is required for transactions")
	}
	return GetTransactOpts(evm.chainID, pk)
}

// ApplyGasOverrides copies configured gas settings onto opts. An empty
// gasPrice or zero gasLimit leaves node-side estimation in place.
func ApplyGasOverrides(opts *bind.TransactOpts, gasPrice string, gasLimit uint64) error {
	if gasPrice != "" {
		price, ok := new(big.Int).SetString(gasPrice, 10)
		if !ok {
			return fmt.Errorf("malformed gas price %q", gasPrice)
		}
		opts.GasPrice = price
	}
	if gasLimit != 0 {
		opts.GasLimit = gasLimit
	}
	return nil
}
