package sdk

import (
	"context"
	"encoding/json"

	"github.com/polylabs/polygon-sdk-go/pkg/errs"
	"github.com/polylabs/polygon-sdk-go/pkg/model"
)

// LicenseManager stores and retrieves license metadata documents on
// decentralized storage. On-chain license registration has no specified
// contract interface and reports NOT_IMPLEMENTED.
type LicenseManager struct {
	core   *Core
	signer *signerSlot
}

func newLicenseManager(c *Core) *LicenseManager {
	return &LicenseManager{core: c, signer: newSignerSlot(c.cfg.PrivateKey)}
}

// SetSigner replaces this manager's signing identity.
func (m *LicenseManager) SetSigner(hexKey string) error { return m.signer.Set(hexKey) }

// ClearSigner removes this manager's signing identity.
func (m *LicenseManager) ClearSigner() { m.signer.Clear() }

// CreateMetadata publishes the license document to IPFS and returns its
// ipfs:// URI.
func (m *LicenseManager) CreateMetadata(ctx context.Context, meta *model.LicenseMetadata) (string, error) {
	if meta == nil || meta.LicenseID == "" {
		return "", errs.ContractError("create license metadata", "license id is required", nil)
	}

	doc := meta.Document
	doc.Set("license_id", meta.LicenseID)

	uri, err := m.core.store.UploadJSON(ctx, doc)
	if err != nil {
		return "", errs.Network("upload license metadata", err)
	}
	return uri, nil
}

// GetMetadata fetches and decodes a license document by URI or CID.
func (m *LicenseManager) GetMetadata(ctx context.Context, uri string) (*model.LicenseMetadata, error) {
	raw, err := m.core.store.ReadFile(ctx, uri)
	if err != nil {
		return nil, errs.Network("fetch license metadata", err)
	}

	var doc model.Metadata
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, errs.ContractError("license metadata", "malformed metadata document", err)
	}

	licenseID, ok := doc.GetString("license_id")
	if !ok || licenseID == "" {
		return nil, errs.NotFound("license", uri)
	}
	return &model.LicenseMetadata{
		LicenseID: licenseID,
		Document:  doc,
	}, nil
}

// Issue is not available: license issuance has no specified on-chain
// contract interface.
func (m *LicenseManager) Issue(ctx context.Context, licenseID, to string) (*model.TransactionRecord, error) {
	return nil, errs.NotImplemented("license issue")
}

// Revoke is not available: license revocation has no specified on-chain
// contract interface.
func (m *LicenseManager) Revoke(ctx context.Context, licenseID string) (*model.TransactionRecord, error) {
	return nil, errs.NotImplemented("license revoke")
}

// Verify is not available: license verification has no specified on-chain
// contract interface.
func (m *LicenseManager) Verify(ctx context.Context, licenseID, holder string) (bool, error) {
	return false, errs.NotImplemented("license verify")
}
