package sdk

import (
	"context"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	"github.com/polylabs/polygon-sdk-go/pkg/config"
	"github.com/polylabs/polygon-sdk-go/pkg/errs"
)

// testCore builds a Core with configuration but no connected chain client.
// Every test below must fail before the first network call, so the nil EVM
// client is never touched; a test that reaches it panics and fails loudly.
func testCore(privateKey string) *Core {
	cfg := &config.Config{
		Network:    config.Amoy,
		RPCAddr:    "http://localhost:8545",
		PrivateKey: privateKey,
	}
	cfg.Timeouts = cfg.Timeouts.WithDefaults()
	cfg.Retry = cfg.Retry.WithDefaults()
	return &Core{cfg: cfg}
}

const (
	goodAddr  = "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed"
	otherAddr = "0xfB6916095ca1df60bB79Ce92cE3Ea74c37c5d359"
)

func TestWalletRejectsInvalidAddress(t *testing.T) {
	m := newWalletManager(testCore(testKey))

	if _, err := m.GetBalance(context.Background(), "0xabc"); !errs.Is(err, errs.CodeInvalidAddress) {
		t.Fatalf("expected INVALID_ADDRESS, got %v", err)
	}
	if _, err := m.GetTransactionCount(context.Background(), "bogus"); !errs.Is(err, errs.CodeInvalidAddress) {
		t.Fatalf("expected INVALID_ADDRESS, got %v", err)
	}
	if _, err := m.GetAccountOverview(context.Background(), ""); !errs.Is(err, errs.CodeInvalidAddress) {
		t.Fatalf("expected INVALID_ADDRESS, got %v", err)
	}
}

func TestWalletTransferFailsFastOnAmount(t *testing.T) {
	m := newWalletManager(testCore(testKey))

	for _, amount := range []string{"", "0", "-1", "abc"} {
		if _, err := m.Transfer(context.Background(), goodAddr, amount); !errs.Is(err, errs.CodeInvalidAmount) {
			t.Fatalf("amount %q: expected INVALID_AMOUNT, got %v", amount, err)
		}
	}
}

func TestWalletTransferRequiresSigner(t *testing.T) {
	m := newWalletManager(testCore(""))

	_, err := m.Transfer(context.Background(), goodAddr, "1.5")
	if !errs.Is(err, errs.CodeSignerRequired) {
		t.Fatalf("expected SIGNER_REQUIRED, got %v", err)
	}
}

func TestWalletGenerateAccountAdoptsIdentity(t *testing.T) {
	m := newWalletManager(testCore(""))

	acct, err := m.GenerateAccount()
	if err != nil {
		t.Fatalf("GenerateAccount failed: %v", err)
	}
	if acct.Address == "" || acct.PrivateKey == "" {
		t.Fatal("expected populated account")
	}

	addr, err := m.Address()
	if err != nil {
		t.Fatalf("Address failed: %v", err)
	}
	if addr != acct.Address {
		t.Fatalf("manager identity %s does not match generated account %s", addr, acct.Address)
	}

	// The generated key must sign and verify like any imported one.
	sig, err := m.SignMessage([]byte("fresh key"))
	if err != nil {
		t.Fatalf("SignMessage failed: %v", err)
	}
	ok, err := m.VerifyMessage([]byte("fresh key"), sig, acct.Address)
	if err != nil || !ok {
		t.Fatalf("generated key signature must verify: ok=%v err=%v", ok, err)
	}
}

func TestWalletSignMessageRequiresSigner(t *testing.T) {
	m := newWalletManager(testCore(""))
	if _, err := m.SignMessage([]byte("hello")); !errs.Is(err, errs.CodeSignerRequired) {
		t.Fatalf("expected SIGNER_REQUIRED, got %v", err)
	}
}

func TestWalletSignAndVerifyMessage(t *testing.T) {
	m := newWalletManager(testCore(testKey))

	sig, err := m.SignMessage([]byte("polygon sdk"))
	if err != nil {
		t.Fatalf("SignMessage failed: %v", err)
	}

	ok, err := m.VerifyMessage([]byte("polygon sdk"), sig, testKeyAddr)
	if err != nil {
		t.Fatalf("VerifyMessage failed: %v", err)
	}
	if !ok {
		t.Fatal("signature by the manager's own key must verify")
	}

	ok, err = m.VerifyMessage([]byte("different message"), sig, testKeyAddr)
	if err != nil {
		t.Fatalf("VerifyMessage failed: %v", err)
	}
	if ok {
		t.Fatal("signature must not verify against a different message")
	}
}

func TestWalletVerifyMessageMalformedSignature(t *testing.T) {
	m := newWalletManager(testCore(testKey))

	for _, sig := range []string{"", "0xzz", "not-hex"} {
		ok, err := m.VerifyMessage([]byte("polygon sdk"), sig, testKeyAddr)
		if err != nil {
			t.Fatalf("signature %q: unexpected error %v", sig, err)
		}
		if ok {
			t.Fatalf("signature %q must not verify", sig)
		}
	}
}

func TestSubmitRejectsMalformedGasPriceBeforeRetry(t *testing.T) {
	core := testCore(testKey)
	core.cfg.GasPrice = "fast"

	sent := false
	_, err := core.submit(context.Background(), "test op", common.HexToAddress(goodAddr),
		func(context.Context) (*types.Transaction, error) {
			sent = true
			return nil, nil
		})
	if !errs.Is(err, errs.CodeInvalidAmount) {
		t.Fatalf("expected INVALID_AMOUNT, got %v", err)
	}
	if sent {
		t.Fatal("submission must not start with a malformed gas price")
	}
}

func TestTokenTransferFailsFastOnAmount(t *testing.T) {
	m := newTokenManager(testCore(testKey))

	for _, amount := range []string{"", "0"} {
		if _, err := m.Transfer(context.Background(), goodAddr, otherAddr, amount); !errs.Is(err, errs.CodeInvalidAmount) {
			t.Fatalf("amount %q: expected INVALID_AMOUNT, got %v", amount, err)
		}
	}
}

func TestTokenTransferRequiresSigner(t *testing.T) {
	m := newTokenManager(testCore(""))

	_, err := m.Transfer(context.Background(), goodAddr, otherAddr, "10")
	if !errs.Is(err, errs.CodeSignerRequired) {
		t.Fatalf("expected SIGNER_REQUIRED, got %v", err)
	}
}

func TestTokenApproveValidatesSpender(t *testing.T) {
	m := newTokenManager(testCore(testKey))

	_, err := m.Approve(context.Background(), goodAddr, "nope", "10")
	if !errs.Is(err, errs.CodeInvalidAddress) {
		t.Fatalf("expected INVALID_ADDRESS, got %v", err)
	}
}

// Taxonomy errors raised inside an operation must surface unchanged rather
// than wrapped into NETWORK_ERROR.
func TestValidationErrorPassesThroughUnwrapped(t *testing.T) {
	m := newTokenManager(testCore(testKey))

	_, err := m.GetBalance(context.Background(), "not-an-address", goodAddr)
	e := errs.AsError(err)
	if e == nil {
		t.Fatalf("expected taxonomy error, got %v", err)
	}
	if e.Code != errs.CodeInvalidAddress {
		t.Fatalf("expected INVALID_ADDRESS, got %s", e.Code)
	}
}

func TestNFTRejectsMalformedTokenID(t *testing.T) {
	m := newNFTManager(testCore(testKey))

	for _, id := range []string{"", "abc", "-1", "1.5"} {
		if _, err := m.Transfer(context.Background(), goodAddr, otherAddr, id); !errs.Is(err, errs.CodeInvalidAmount) {
			t.Fatalf("token id %q: expected INVALID_AMOUNT, got %v", id, err)
		}
	}
}

func TestNFTTransferRequiresSigner(t *testing.T) {
	m := newNFTManager(testCore(""))

	_, err := m.Transfer(context.Background(), goodAddr, otherAddr, "1")
	if !errs.Is(err, errs.CodeSignerRequired) {
		t.Fatalf("expected SIGNER_REQUIRED, got %v", err)
	}
}

func TestNFTMintNotImplemented(t *testing.T) {
	m := newNFTManager(testCore(testKey))

	_, err := m.Mint(context.Background(), goodAddr, otherAddr, "1")
	if !errs.Is(err, errs.CodeNotImplemented) {
		t.Fatalf("expected NOT_IMPLEMENTED, got %v", err)
	}
}

func TestDeFiSwapValidatesBeforeNotImplemented(t *testing.T) {
	m := newDeFiManager(testCore(testKey))

	if _, err := m.Swap(context.Background(), "bad", goodAddr, "1"); !errs.Is(err, errs.CodeInvalidAddress) {
		t.Fatalf("expected INVALID_ADDRESS, got %v", err)
	}
	if _, err := m.Swap(context.Background(), goodAddr, otherAddr, "0"); !errs.Is(err, errs.CodeInvalidAmount) {
		t.Fatalf("expected INVALID_AMOUNT, got %v", err)
	}
	if _, err := m.Swap(context.Background(), goodAddr, otherAddr, "1"); !errs.Is(err, errs.CodeNotImplemented) {
		t.Fatalf("expected NOT_IMPLEMENTED, got %v", err)
	}
}

func TestDeFiLiquidityStubs(t *testing.T) {
	m := newDeFiManager(testCore(testKey))

	if _, err := m.AddLiquidity(context.Background(), goodAddr, "0", "1"); !errs.Is(err, errs.CodeInvalidAmount) {
		t.Fatalf("expected INVALID_AMOUNT, got %v", err)
	}
	if _, err := m.AddLiquidity(context.Background(), goodAddr, "1", "2"); !errs.Is(err, errs.CodeNotImplemented) {
		t.Fatalf("expected NOT_IMPLEMENTED, got %v", err)
	}
	if _, err := m.RemoveLiquidity(context.Background(), goodAddr, ""); !errs.Is(err, errs.CodeInvalidAmount) {
		t.Fatalf("expected INVALID_AMOUNT, got %v", err)
	}
	if _, err := m.RemoveLiquidity(context.Background(), goodAddr, "3"); !errs.Is(err, errs.CodeNotImplemented) {
		t.Fatalf("expected NOT_IMPLEMENTED, got %v", err)
	}
}

func TestLicenseOnChainOpsNotImplemented(t *testing.T) {
	m := newLicenseManager(testCore(testKey))

	if _, err := m.Issue(context.Background(), "lic-1", goodAddr); !errs.Is(err, errs.CodeNotImplemented) {
		t.Fatalf("expected NOT_IMPLEMENTED, got %v", err)
	}
	if _, err := m.Revoke(context.Background(), "lic-1"); !errs.Is(err, errs.CodeNotImplemented) {
		t.Fatalf("expected NOT_IMPLEMENTED, got %v", err)
	}
	if _, err := m.Verify(context.Background(), "lic-1", goodAddr); !errs.Is(err, errs.CodeNotImplemented) {
		t.Fatalf("expected NOT_IMPLEMENTED, got %v", err)
	}
}

func TestManagerSignersAreIndependent(t *testing.T) {
	core := testCore(testKey)
	wallet := newWalletManager(core)
	token := newTokenManager(core)

	token.ClearSigner()

	if _, err := wallet.Address(); err != nil {
		t.Fatalf("wallet signer should be unaffected: %v", err)
	}
	if _, err := token.Transfer(context.Background(), goodAddr, otherAddr, "1"); !errs.Is(err, errs.CodeSignerRequired) {
		t.Fatalf("expected SIGNER_REQUIRED after ClearSigner, got %v", err)
	}
}
