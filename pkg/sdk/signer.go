package sdk

import (
	"crypto/ecdsa"
	"sync"

	"github.com/ethereum/go-ethereum/common"

	"github.com/polylabs/polygon-sdk-go/pkg/blockchain"
	"github.com/polylabs/polygon-sdk-go/pkg/errs"
)

// signerSlot holds a manager's optional signing identity. Each manager owns
// exactly one slot: the identity is replaced or cleared atomically and never
// shared between managers. The raw key material is never logged and never
// appears in error payloads.
type signerSlot struct {
	mu      sync.Mutex
	key     *ecdsa.PrivateKey
	address common.Address
}

// newSignerSlot creates a slot seeded from the hex-encoded key, which may be
// empty (read-only manager). An invalid key yields an empty slot rather than
// an error so read-only use keeps working; the failure surfaces as
// SIGNER_REQUIRED on the first mutating call.
func newSignerSlot(hexKey string) *signerSlot {
	s := &signerSlot{}
	if hexKey == "" {
		return s
	}
	addr, key, err := blockchain.ParsePrivateKeyECDSA(hexKey)
	if err != nil {
		return s
	}
	s.key = key
	s.address = addr
	return s
}

// Set replaces the signing identity with the given hex-encoded private key.
func (s *signerSlot) Set(hexKey string) error {
	addr, key, err := blockchain.ParsePrivateKeyECDSA(hexKey)
	if err != nil {
		return errs.New(errs.CodeSignerRequired, "invalid private key")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.key = key
	s.address = addr
	return nil
}

// Clear removes the signing identity; subsequent mutating calls fail with
// SIGNER_REQUIRED.
func (s *signerSlot) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.key = nil
	s.address = common.Address{}
}

// Signer returns the active key and its address, or a SIGNER_REQUIRED error
// naming the operation when no identity is configured.
func (s *signerSlot) Signer(operation string) (*ecdsa.PrivateKey, common.Address, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.key == nil {
		return nil, common.Address{}, errs.SignerRequired(operation)
	}
	return s.key, s.address, nil
}

// Address returns the active signing address without exposing the key.
func (s *signerSlot) Address() (common.Address, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.key == nil {
		return common.Address{}, false
	}
	return s.address, true
}
