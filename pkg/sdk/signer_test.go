package sdk

import (
	"testing"

	"github.com/polylabs/polygon-sdk-go/pkg/errs"
)

// Well-known throwaway development key, never funded on any real network.
const testKey = "ac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"

const testKeyAddr = "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266"

func TestSignerSlotEmpty(t *testing.T) {
	slot := newSignerSlot("")
	if _, _, err := slot.Signer("transfer"); !errs.Is(err, errs.CodeSignerRequired) {
		t.Fatalf("expected SIGNER_REQUIRED, got %v", err)
	}
	if _, ok := slot.Address(); ok {
		t.Fatal("empty slot should report no address")
	}
}

func TestSignerSlotSeededFromConfig(t *testing.T) {
	slot := newSignerSlot(testKey)
	key, addr, err := slot.Signer("transfer")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if key == nil {
		t.Fatal("expected private key")
	}
	if addr.Hex() != testKeyAddr {
		t.Fatalf("wrong address: %s", addr.Hex())
	}
}

func TestSignerSlotInvalidKeyStaysEmpty(t *testing.T) {
	slot := newSignerSlot("not-a-key")
	if _, _, err := slot.Signer("transfer"); !errs.Is(err, errs.CodeSignerRequired) {
		t.Fatalf("expected SIGNER_REQUIRED, got %v", err)
	}
}

func TestSignerSlotSetAndClear(t *testing.T) {
	slot := newSignerSlot("")
	if err := slot.Set(testKey); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if addr, ok := slot.Address(); !ok || addr.Hex() != testKeyAddr {
		t.Fatalf("unexpected address after Set: %v %v", addr, ok)
	}

	slot.Clear()
	if _, _, err := slot.Signer("transfer"); !errs.Is(err, errs.CodeSignerRequired) {
		t.Fatalf("expected SIGNER_REQUIRED after Clear, got %v", err)
	}
}

func TestSignerSlotSetRejectsMalformedKey(t *testing.T) {
	slot := newSignerSlot(testKey)
	if err := slot.Set("zzzz"); err == nil {
		t.Fatal("expected error for malformed key")
	}
	// Identity from before the failed Set must survive.
	if _, ok := slot.Address(); !ok {
		t.Fatal("previous identity should remain after failed Set")
	}
}

func TestSignerErrorNeverCarriesKeyMaterial(t *testing.T) {
	slot := newSignerSlot(testKey)
	slot.Clear()
	_, _, err := slot.Signer("token transfer")
	e := errs.AsError(err)
	if e == nil {
		t.Fatal("expected taxonomy error")
	}
	for k, v := range e.Data {
		if s, ok := v.(string); ok && s == testKey {
			t.Fatalf("error payload %q leaks key material", k)
		}
	}
}
