package sdk

import (
	"context"
	"encoding/json"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	"github.com/polylabs/polygon-sdk-go/pkg/blockchain"
	"github.com/polylabs/polygon-sdk-go/pkg/errs"
	"github.com/polylabs/polygon-sdk-go/pkg/model"
)

// NFTManager handles ERC-721 collections: ownership and metadata reads,
// approvals and transfers. Token metadata documents are resolved through the
// configured storage backends (IPFS node, HTTP gateway).
type NFTManager struct {
	core   *Core
	signer *signerSlot
}

func newNFTManager(c *Core) *NFTManager {
	return &NFTManager{core: c, signer: newSignerSlot(c.cfg.PrivateKey)}
}

// SetSigner replaces this manager's signing identity.
func (m *NFTManager) SetSigner(hexKey string) error { return m.signer.Set(hexKey) }

// ClearSigner removes this manager's signing identity.
func (m *NFTManager) ClearSigner() { m.signer.Clear() }

// erc721 validates the collection address and wraps it in a bound contract.
func (m *NFTManager) erc721(contract string) (*blockchain.ERC721, error) {
	if !blockchain.ValidateAddress(contract) {
		return nil, errs.InvalidAddress(contract)
	}
	bound, err := m.core.evm.NewERC721(common.HexToAddress(contract))
	if err != nil {
		return nil, errs.Contract("bind erc721", err)
	}
	return bound, nil
}

// parseTokenID converts a decimal token ID string to *big.Int.
func parseTokenID(tokenID string) (*big.Int, error) {
	id, ok := new(big.Int).SetString(tokenID, 10)
	if !ok || id.Sign() < 0 {
		return nil, errs.InvalidAmount(tokenID)
	}
	return id, nil
}

// GetCollection reads the collection's name and symbol.
func (m *NFTManager) GetCollection(ctx context.Context, contract string) (*model.CollectionInfo, error) {
	nft, err := m.erc721(contract)
	if err != nil {
		return nil, err
	}
	opts := &bind.CallOpts{Context: ctx}

	name, err := nft.Name(opts)
	if err != nil {
		return nil, errs.Contract("name", err)
	}
	symbol, err := nft.Symbol(opts)
	if err != nil {
		return nil, errs.Contract("symbol", err)
	}

	return &model.CollectionInfo{
		Address: nft.Address.Hex(),
		Name:    name,
		Symbol:  symbol,
	}, nil
}

// GetBalance returns how many tokens of the collection the owner holds.
func (m *NFTManager) GetBalance(ctx context.Context, contract, owner string) (string, error) {
	if !blockchain.ValidateAddress(owner) {
		return "", errs.InvalidAddress(owner)
	}
	nft, err := m.erc721(contract)
	if err != nil {
		return "", err
	}
	balance, err := nft.BalanceOf(&bind.CallOpts{Context: ctx}, common.HexToAddress(owner))
	if err != nil {
		return "", errs.Contract("balanceOf", err)
	}
	return balance.String(), nil
}

// GetOwner returns the owner of tokenID. A nonexistent token reports
// NOT_FOUND: the standard contract reverts ownerOf for unminted or burned
// IDs.
func (m *NFTManager) GetOwner(ctx context.Context, contract, tokenID string) (string, error) {
	nft, err := m.erc721(contract)
	if err != nil {
		return "", err
	}
	id, err := parseTokenID(tokenID)
	if err != nil {
		return "", err
	}
	owner, err := nft.OwnerOf(&bind.CallOpts{Context: ctx}, id)
	if err != nil {
		if isRevert(err) {
			return "", errs.NotFound("token", tokenID)
		}
		return "", errs.Contract("ownerOf", err)
	}
	return owner.Hex(), nil
}

// GetTokenURI returns the metadata URI of tokenID.
func (m *NFTManager) GetTokenURI(ctx context.Context, contract, tokenID string) (string, error) {
	nft, err := m.erc721(contract)
	if err != nil {
		return "", err
	}
	id, err := parseTokenID(tokenID)
	if err != nil {
		return "", err
	}
	uri, err := nft.TokenURI(&bind.CallOpts{Context: ctx}, id)
	if err != nil {
		if isRevert(err) {
			return "", errs.NotFound("token", tokenID)
		}
		return "", errs.Contract("tokenURI", err)
	}
	return uri, nil
}

// GetMetadata resolves tokenID's metadata document from storage and decodes
// it, preserving the document's key order.
func (m *NFTManager) GetMetadata(ctx context.Context, contract, tokenID string) (*model.NFTMetadata, error) {
	uri, err := m.GetTokenURI(ctx, contract, tokenID)
	if err != nil {
		return nil, err
	}

	raw, err := m.core.store.ReadFile(ctx, uri)
	if err != nil {
		return nil, errs.Network("fetch nft metadata", err)
	}

	var doc model.Metadata
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, errs.ContractError("nft metadata", "malformed metadata document", err)
	}

	name, _ := doc.GetString("name")
	description, _ := doc.GetString("description")
	image, _ := doc.GetString("image")

	return &model.NFTMetadata{
		Name:        name,
		Description: description,
		Image:       image,
		Document:    doc,
	}, nil
}

// Transfer moves tokenID to the given address via safeTransferFrom and waits
// for confirmation. The signer must own or be approved for the token.
func (m *NFTManager) Transfer(ctx context.Context, contract, to, tokenID string) (*model.TransactionRecord, error) {
	if !blockchain.ValidateAddress(to) {
		return nil, errs.InvalidAddress(to)
	}
	id, err := parseTokenID(tokenID)
	if err != nil {
		return nil, err
	}
	key, from, err := m.signer.Signer("nft transfer")
	if err != nil {
		return nil, err
	}
	nft, err := m.erc721(contract)
	if err != nil {
		return nil, err
	}

	toAddr := common.HexToAddress(to)
	return m.core.submit(ctx, "nft transfer", from, func(ctx context.Context) (*types.Transaction, error) {
		opts, err := m.core.transactOpts(ctx, key)
		if err != nil {
			return nil, err
		}
		return nft.SafeTransferFrom(opts, from, toAddr, id)
	})
}

// Approve grants the given address transfer rights over tokenID.
func (m *NFTManager) Approve(ctx context.Context, contract, to, tokenID string) (*model.TransactionRecord, error) {
	if !blockchain.ValidateAddress(to) {
		return nil, errs.InvalidAddress(to)
	}
	id, err := parseTokenID(tokenID)
	if err != nil {
		return nil, err
	}
	key, from, err := m.signer.Signer("nft approve")
	if err != nil {
		return nil, err
	}
	nft, err := m.erc721(contract)
	if err != nil {
		return nil, err
	}

	toAddr := common.HexToAddress(to)
	return m.core.submit(ctx, "nft approve", from, func(ctx context.Context) (*types.Transaction, error) {
		opts, err := m.core.transactOpts(ctx, key)
		if err != nil {
			return nil, err
		}
		return nft.Approve(opts, toAddr, id)
	})
}

// Mint is not available: minting has no standard ERC-721 entry point, so
// there is no contract interface to call. Use ContractManager.Execute with
// the collection's own ABI instead.
func (m *NFTManager) Mint(ctx context.Context, contract, to, tokenID string) (*model.TransactionRecord, error) {
	return nil, errs.NotImplemented("nft mint")
}

// isRevert reports whether err looks like an EVM revert rather than a
// transport failure.
func isRevert(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "execution reverted") || strings.Contains(msg, "revert")
}
