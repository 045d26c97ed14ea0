package blockchain

import (
	"encoding/hex"
	"math/big"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/crypto"
)

func TestValidateAddress(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"checksummed", "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed", true},
		{"lowercase", "0x5aaeb6053f3e94c9b9a09f33669435e7ef1beaed", true},
		{"bad checksum", "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1Beaed", false},
		{"too short", "0xabc", false},
		{"no prefix", "5aaeb6053f3e94c9b9a09f33669435e7ef1beaed", false},
		{"not hex", "0x5aaeb6053f3e94c9b9a09f33669435e7ef1beaeg", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidateAddress(tt.input); got != tt.want {
				t.Fatalf("ValidateAddress(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestValidateTxHash(t *testing.T) {
	if !ValidateTxHash("0x" + strings.Repeat("a", 64)) {
		t.Fatal("expected valid tx hash")
	}
	if ValidateTxHash("0xabc") {
		t.Fatal("short hash accepted")
	}
	if ValidateTxHash(strings.Repeat("a", 66)) {
		t.Fatal("missing prefix accepted")
	}
	if ValidateTxHash("0x" + strings.Repeat("g", 64)) {
		t.Fatal("non-hex hash accepted")
	}
}

func TestValidatePrivateKey(t *testing.T) {
	priv, err := crypto.GenerateKey()
	if err != nil {
		t.Fatalf("GenerateKey: %v", err)
	}
	hexKey := hex.EncodeToString(crypto.FromECDSA(priv))

	if !ValidatePrivateKey(hexKey) {
		t.Fatal("expected valid key")
	}
	if !ValidatePrivateKey("0x" + hexKey) {
		t.Fatal("expected valid key with 0x prefix")
	}
	if ValidatePrivateKey("zz") {
		t.Fatal("invalid key accepted")
	}
	if ValidatePrivateKey("") {
		t.Fatal("empty key accepted")
	}
}

func TestParsePrivateKeyECDSA(t *testing.T) {
	priv, err := crypto.GenerateKey()
	if err != nil {
		t.Fatalf("GenerateKey: %v", err)
	}
	hexKey := hex.EncodeToString(crypto.FromECDSA(priv))

	addr, parsedKey, err := ParsePrivateKeyECDSA(hexKey)
	if err != nil {
		t.Fatalf("ParsePrivateKeyECDSA: %v", err)
	}
	if addr != crypto.PubkeyToAddress(priv.PublicKey) {
		t.Fatalf("unexpected address: %s", addr.Hex())
	}
	if parsedKey.D.Cmp(priv.D) != 0 {
		t.Fatal("parsed key mismatch")
	}

	if _, _, err := ParsePrivateKeyECDSA("zz"); err == nil {
		t.Fatal("expected error for invalid key")
	}
}

func TestParseUnits(t *testing.T) {
	tests := []struct {
		amount   string
		decimals int32
		expected string
	}{
		{"1", 18, "1000000000000000000"},
		{"1.0", 18, "1000000000000000000"},
		{"1.5", 18, "1500000000000000000"},
		{"0.000000000000000001", 18, "1"},
		{"2500", 6, "2500000000"},
		{"7", 0, "7"},
		{"0", 18, "0"},
	}

	for _, tc := range tests {
		got, err := ParseUnits(tc.amount, tc.decimals)
		if err != nil {
			t.Fatalf("ParseUnits(%q, %d) error: %v", tc.amount, tc.decimals, err)
		}
		if got.String() != tc.expected {
			t.Fatalf("ParseUnits(%q, %d) = %s, want %s", tc.amount, tc.decimals, got, tc.expected)
		}
	}
}

func TestParseUnits_Rejections(t *testing.T) {
	bad := []struct {
		amount   string
		decimals int32
	}{
		{"", 18},
		{"not-a-number", 18},
		{"-1", 18},
		{"1.0000000000000000001", 18}, // more precision than decimals
		{"0.5", 0},
	}
	for _, tc := range bad {
		if _, err := ParseUnits(tc.amount, tc.decimals); err == nil {
			t.Fatalf("ParseUnits(%q, %d) should fail", tc.amount, tc.decimals)
		}
	}
}

func TestFormatUnits(t *testing.T) {
	tests := []struct {
		baseUnits string
		decimals  int32
		expected  string
	}{
		{"1000000000000000000", 18, "1"},
		{"1500000000000000000", 18, "1.5"},
		{"1", 18, "0.000000000000000001"},
		{"2500000000", 6, "2500"},
		{"0", 18, "0"},
		{"7", 0, "7"},
	}

	for _, tc := range tests {
		got, err := FormatUnits(tc.baseUnits, tc.decimals)
		if err != nil {
			t.Fatalf("FormatUnits(%q, %d) error: %v", tc.baseUnits, tc.decimals, err)
		}
		if got != tc.expected {
			t.Fatalf("FormatUnits(%q, %d) = %s, want %s", tc.baseUnits, tc.decimals, got, tc.expected)
		}
	}

	if _, err := FormatUnits("12x", 18); err == nil {
		t.Fatal("malformed base units accepted")
	}
	if _, err := FormatUnits("-5", 18); err == nil {
		t.Fatal("negative base units accepted")
	}
}

// TestUnitsRoundTrip checks ParseUnits(FormatUnits(x, d), d) == x across a
// range of values and scales. These values represent currency and must never
// drift.
func TestUnitsRoundTrip(t *testing.T) {
	values := []string{
		"0", "1", "999", "1000000", "1000000000000000000",
		"123456789123456789123456789", "115792089237316195423570985008687907853269984665640564039457584007913129639935",
	}
	for _, v := range values {
		for _, d := range []int32{0, 1, 6, 18, 30} {
			formatted, err := FormatUnits(v, d)
			if err != nil {
				t.Fatalf("FormatUnits(%q, %d): %v", v, d, err)
			}
			back, err := ParseUnits(formatted, d)
			if err != nil {
				t.Fatalf("ParseUnits(%q, %d): %v", formatted, d, err)
			}
			if back.String() != v {
				t.Fatalf("round trip drift: %s -> %s -> %s (decimals %d)", v, formatted, back, d)
			}
		}
	}
}

func TestSignature(t *testing.T) {
	priv, err := crypto.GenerateKey()
	if err != nil {
		t.Fatalf("GenerateKey: %v", err)
	}
	addr := crypto.PubkeyToAddress(priv.PublicKey)
	message := []byte("polygon sdk signature test")

	sig, err := GetSignature(message, priv)
	if err != nil {
		t.Fatalf("GetSignature: %v", err)
	}
	if len(sig) != 65 {
		t.Fatalf("unexpected signature length: %d", len(sig))
	}
	if !VerifySignature(message, sig, addr) {
		t.Fatal("signature did not verify")
	}
	if VerifySignature([]byte("other message"), sig, addr) {
		t.Fatal("signature verified for wrong message")
	}

	other, _ := crypto.GenerateKey()
	if VerifySignature(message, sig, crypto.PubkeyToAddress(other.PublicKey)) {
		t.Fatal("signature verified for wrong signer")
	}

	// Legacy V encoding (27/28) must verify too.
	legacy := make([]byte, 65)
	copy(legacy, sig)
	legacy[64] += 27
	if !VerifySignature(message, legacy, addr) {
		t.Fatal("legacy V encoding rejected")
	}
}

func TestTruncateHex(t *testing.T) {
	addr := "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed"
	if got := TruncateHex(addr); got != "0x5aAe…eAed" {
		t.Fatalf("unexpected truncation: %s", got)
	}
	if TruncateHex("0xabc") != "0xabc" {
		t.Fatal("short strings must pass through")
	}
}

func TestFormatByteSize(t *testing.T) {
	if got := FormatByteSize(512); got != "512 B" {
		t.Fatalf("unexpected: %s", got)
	}
	if got := FormatByteSize(2048); got != "2.0 KB" {
		t.Fatalf("unexpected: %s", got)
	}
}

func TestMaxUint256(t *testing.T) {
	want, _ := new(big.Int).SetString(strings.Repeat("f", 64), 16)
	if MaxUint256.Cmp(want) != 0 {
		t.Fatalf("MaxUint256 mismatch: %s", MaxUint256)
	}
}
