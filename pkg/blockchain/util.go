package blockchain

import (
	"crypto/ecdsa"
	"errors"
	"fmt"
	"math/big"
	"regexp"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/shopspring/decimal"
)

var (
	// HashPrefix32Bytes is the standard Ethereum personal-sign prefix for
	// 32-byte messages: "\x19Ethereum Signed Message:\n32".
	HashPrefix32Bytes = []byte("\x19Ethereum Signed Message:\n32")

	// addressRegex matches the basic shape of an EVM address: "0x" followed
	// by exactly 40 hex digits.
	addressRegex = regexp.MustCompile("^0x[0-9a-fA-F]{40}$")

	// txHashRegex matches a transaction hash: "0x" followed by exactly 64
	// hex digits.
	txHashRegex = regexp.MustCompile("^0x[0-9a-fA-F]{64}$")

	// MaxUint256 is the maximum uint256 value (2^256 - 1). Useful for setting
	// ERC-20 allowances to "unlimited".
	MaxUint256 = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 256), big.NewInt(1))
)

// ValidateAddress reports whether s is a syntactically valid EVM address.
// Lower-case addresses pass on format alone; mixed-case addresses must carry
// a correct EIP-55 checksum. The check is purely syntactic and never reaches
// the network.
func ValidateAddress(s string) bool {
	if !addressRegex.MatchString(s) {
		return false
	}
	if s == strings.ToLower(s) {
		return true
	}
	return s == common.HexToAddress(s).Hex()
}

// ValidatePrivateKey reports whether s is a hex-encoded ECDSA private key
// (with or without 0x prefix) from which a signing identity can be built.
func ValidatePrivateKey(s string) bool {
	_, _, err := ParsePrivateKeyECDSA(s)
	return err == nil
}

// ValidateTxHash reports whether s has the shape of a transaction hash:
// "0x" plus 64 hex digits.
func ValidateTxHash(s string) bool {
	return txHashRegex.MatchString(s)
}

// ParsePrivateKeyECDSA parses a hex-encoded ECDSA private key (an optional
// 0x prefix is stripped) and returns the corresponding address together with
// the private key object.
func ParsePrivateKeyECDSA(privateKey string) (common.Address, *ecdsa.PrivateKey, error) {
	privateKey = strings.TrimPrefix(privateKey, "0x")

	privateKeyECDSA, err := crypto.HexToECDSA(privateKey)
	if err != nil {
		return common.Address{}, nil, err
	}

	publicKey := privateKeyECDSA.Public()

	publicKeyECDSA, ok := publicKey.(*ecdsa.PublicKey)
	if !ok {
		return common.Address{}, nil, errors.New("failed to get public key")
	}

	address := crypto.PubkeyToAddress(*publicKeyECDSA)
	return address, privateKeyECDSA, nil
}

// GeneratePrivateKey creates a fresh random ECDSA key and returns its
// address together with the hex-encoded private key.
func GeneratePrivateKey() (common.Address, string, error) {
	key, err := crypto.GenerateKey()
	if err != nil {
		return common.Address{}, "", err
	}
	addr := crypto.PubkeyToAddress(key.PublicKey)
	return addr, fmt.Sprintf("%x", crypto.FromECDSA(key)), nil
}

// GetAddressFromPrivateKeyECDSA derives the address from the given ECDSA
// private key. It returns nil if the key is nil or its public part cannot be
// asserted to *ecdsa.PublicKey.
func GetAddressFromPrivateKeyECDSA(privateKeyECDSA *ecdsa.PrivateKey) *common.Address {
	if privateKeyECDSA == nil {
		return nil
	}
	publicKey := privateKeyECDSA.Public()
	publicKeyECDSA, ok := publicKey.(*ecdsa.PublicKey)
	if !ok {
		return nil
	}
	addr := crypto.PubkeyToAddress(*publicKeyECDSA)
	return &addr
}

// ParseUnits converts a human-readable decimal amount into its base-unit
// integer representation by scaling with 10^decimals. The conversion is
// exact: amounts with more fractional digits than decimals, negative values,
// and malformed input all fail.
func ParseUnits(amount string, decimals int32) (*big.Int, error) {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return nil, fmt.Errorf("malformed amount %q: %w", amount, err)
	}
	if d.IsNegative() {
		return nil, fmt.Errorf("negative amount %q", amount)
	}
	shifted := d.Shift(decimals)
	if !shifted.IsInteger() {
		return nil, fmt.Errorf("amount %q has more than %d decimal places", amount, decimals)
	}
	return shifted.BigInt(), nil
}

// FormatUnits converts a base-unit integer string into its minimal decimal
// representation scaled down by 10^decimals. It is the exact inverse of
// ParseUnits: ParseUnits(FormatUnits(x, d), d) == x for every valid x.
func FormatUnits(baseUnits string, decimals int32) (string, error) {
	v, ok := new(big.Int).SetString(baseUnits, 10)
	if !ok {
		return "", fmt.Errorf("malformed base-unit amount %q", baseUnits)
	}
	if v.Sign() < 0 {
		return "", fmt.Errorf("negative base-unit amount %q", baseUnits)
	}
	return FormatUnitsBig(v, decimals), nil
}

// FormatUnitsBig is FormatUnits for an already-parsed non-negative integer.
func FormatUnitsBig(v *big.Int, decimals int32) string {
	s := decimal.NewFromBigInt(v, -decimals).String()
	// decimal preserves the exponent's trailing zeros; the canonical form is
	// the minimal one.
	if strings.Contains(s, ".") {
		s = strings.TrimRight(s, "0")
		s = strings.TrimSuffix(s, ".")
	}
	return s
}

// GetSignature produces an Ethereum-compatible personal-sign (EIP-191 style)
// signature over the given message. It hashes the payload as
// keccak256("\x19Ethereum Signed Message:\n32" || keccak256(message)) and
// signs with the provided ECDSA private key.
//
// Returns the 65-byte signature (R||S||V) or an error.
func GetSignature(message []byte, privateKeyECDSA *ecdsa.PrivateKey) ([]byte, error) {
	hash := crypto.Keccak256(
		HashPrefix32Bytes,
		crypto.Keccak256(message),
	)
	return crypto.Sign(hash, privateKeyECDSA)
}

// VerifySignature reports whether signature is a valid personal-sign
// signature over message produced by the key behind signer. Both V=0/1 and
// the legacy V=27/28 encodings are accepted.
func VerifySignature(message, signature []byte, signer common.Address) bool {
	if len(signature) != 65 {
		return false
	}
	sig := make([]byte, 65)
	copy(sig, signature)
	if sig[64] >= 27 {
		sig[64] -= 27
	}
	hash := crypto.Keccak256(
		HashPrefix32Bytes,
		crypto.Keccak256(message),
	)
	pub, err := crypto.SigToPub(hash, sig)
	if err != nil {
		return false
	}
	return crypto.PubkeyToAddress(*pub) == signer
}

// TruncateHex shortens a hex string (address or hash) for display:
// "0x12ab…cdef". Strings at or below the truncated length pass through.
func TruncateHex(s string) string {
	if len(s) <= 11 {
		return s
	}
	return s[:6] + "…" + s[len(s)-4:]
}

// FormatByteSize renders a byte count in human units (B, KB, MB, GB).
func FormatByteSize(n uint64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := uint64(unit), 0
	for m := n / unit; m >= unit && exp < 2; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(n)/float64(div), "KMG"[exp])
}

// FormatDuration renders d rounded to milliseconds for log/display output.
func FormatDuration(d time.Duration) string {
	return d.Round(time.Millisecond).String()
}
