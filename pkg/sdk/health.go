package sdk

import (
	"context"
	"time"

	"github.com/polylabs/polygon-sdk-go/pkg/errs"
)

// HealthManager reports chain connectivity and basic node state.
type HealthManager struct {
	core *Core
}

func newHealthManager(c *Core) *HealthManager {
	return &HealthManager{core: c}
}

// HealthStatus is a connectivity snapshot.
type HealthStatus struct {
	ChainID     string        `json:"chain_id"`
	Network     string        `json:"network"`
	BlockNumber string        `json:"block_number"`
	GasPrice    string        `json:"gas_price"`
	Latency     time.Duration `json:"latency"`
}

// Ping verifies the RPC endpoint answers within the health timeout.
func (m *HealthManager) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, m.core.cfg.Timeouts.Health)
	defer cancel()

	if _, err := m.core.evm.GetCurrentBlockNumber(ctx); err != nil {
		return errs.Network("ping", err)
	}
	return nil
}

// Status reads the node's head block and suggested gas price together with
// the round-trip latency of the check.
func (m *HealthManager) Status(ctx context.Context) (*HealthStatus, error) {
	ctx, cancel := context.WithTimeout(ctx, m.core.cfg.Timeouts.Health)
	defer cancel()

	start := time.Now()
	block, err := m.core.evm.GetCurrentBlockNumber(ctx)
	if err != nil {
		return nil, errs.Network("get block number", err)
	}
	fee, err := m.core.evm.GetFeeData(ctx)
	if err != nil {
		return nil, errs.Network("get fee data", err)
	}

	return &HealthStatus{
		ChainID:     m.core.evm.ChainID().String(),
		Network:     m.core.cfg.Network.Name,
		BlockNumber: block.String(),
		GasPrice:    fee.GasPrice.String(),
		Latency:     time.Since(start),
	}, nil
}
