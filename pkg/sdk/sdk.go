// Package sdk exposes the high-level Polygon SDK entry points. It wires
// together blockchain access, decentralized metadata storage, and the
// per-resource managers (wallet, token, contract, NFT, DeFi, license)
// behind a single facade.
package sdk

import (
	"go.uber.org/zap"

	"github.com/polylabs/polygon-sdk-go/pkg/blockchain"
	"github.com/polylabs/polygon-sdk-go/pkg/config"
	"github.com/polylabs/polygon-sdk-go/pkg/storage"
)

// PolygonSDK is the public facade. Each accessor returns a resource manager
// sharing the same connected chain client and configuration snapshot.
type PolygonSDK interface {
	// Wallet returns the native-balance and account manager.
	Wallet() *WalletManager
	// Token returns the ERC-20 token manager.
	Token() *TokenManager
	// Contract returns the generic contract call/deploy manager.
	Contract() *ContractManager
	// NFT returns the ERC-721 manager.
	NFT() *NFTManager
	// DeFi returns the pool/pair manager.
	DeFi() *DeFiManager
	// License returns the license metadata manager.
	License() *LicenseManager
	// Health returns the connectivity/health manager.
	Health() *HealthManager
	// Close releases resources associated with the SDK instance.
	Close()
}

// init configures a default global zap logger for the SDK. Applications may
// replace it with zap.ReplaceGlobals(...) if they need custom logging.
func init() {
	c := zap.Config{
		Level:            zap.NewAtomicLevelAt(zap.InfoLevel),
		Development:      false,
		Encoding:         "console",
		EncoderConfig:    zap.NewDevelopmentEncoderConfig(),
		OutputPaths:      []string{"stdout"},
		ErrorOutputPaths: []string{"stderr"},
	}

	logger, err := c.Build()
	if err != nil {
		panic(err)
	}
	zap.ReplaceGlobals(logger)
}

// Core is the concrete SDK implementation. It holds the initialized EVM
// client, runtime configuration, and the storage backend for off-chain
// metadata.
type Core struct {
	evm   *blockchain.EVMClient
	cfg   *config.Config
	store storage.Storage

	wallet   *WalletManager
	token    *TokenManager
	contract *ContractManager
	nft      *NFTManager
	defi     *DeFiManager
	license  *LicenseManager
	health   *HealthManager
}

// New initializes the SDK with validated configuration and a connected EVM
// client. The configured private key, when present, becomes the initial
// signing identity of every manager; each manager's identity can be replaced
// or cleared independently afterwards.
func New(cfg *config.Config) (PolygonSDK, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.Timeouts = cfg.Timeouts.WithDefaults()
	cfg.Retry = cfg.Retry.WithDefaults()

	evmClient, err := blockchain.InitEvm(cfg)
	if err != nil {
		zap.L().Error("init ethereum client failed", zap.Error(err))
		return nil, err
	}

	storageClient := storage.NewStorage(cfg.IpfsURL, cfg.GatewayURL, cfg.Timeouts.Storage)

	c := &Core{
		evm:   evmClient,
		cfg:   cfg,
		store: storageClient,
	}

	c.wallet = newWalletManager(c)
	c.token = newTokenManager(c)
	c.contract = newContractManager(c)
	c.nft = newNFTManager(c)
	c.defi = newDeFiManager(c)
	c.license = newLicenseManager(c)
	c.health = newHealthManager(c)

	if cfg.Debug {
		if addr, err := c.wallet.Address(); err == nil {
			zap.L().Debug("signer address", zap.String("addr", addr))
		}
	}

	return c, nil
}

// GetEvm returns the EVM client for advanced operations beyond the manager
// surface.
func (c *Core) GetEvm() *blockchain.EVMClient {
	return c.evm
}

// Config returns the active configuration snapshot.
func (c *Core) Config() *config.Config {
	return c.cfg
}

func (c *Core) Wallet() *WalletManager     { return c.wallet }
func (c *Core) Token() *TokenManager       { return c.token }
func (c *Core) Contract() *ContractManager { return c.contract }
func (c *Core) NFT() *NFTManager           { return c.nft }
func (c *Core) DeFi() *DeFiManager         { return c.defi }
func (c *Core) License() *LicenseManager   { return c.license }
func (c *Core) Health() *HealthManager     { return c.health }

// Close shuts down underlying network clients.
func (c *Core) Close() {
	if c.evm != nil {
		c.evm.Close()
	}
}
