package errs

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorRendering(t *testing.T) {
	e := InvalidAmount("0")
	if e.Code != CodeInvalidAmount {
		t.Fatalf("unexpected code: %s", e.Code)
	}
	if e.Data["amount"] != "0" {
		t.Fatalf("unexpected data payload: %#v", e.Data)
	}

	cause := errors.New("connection refused")
	ne := NetworkError("rpc call failed", cause)
	if !errors.Is(ne, cause) {
		t.Fatal("expected cause to be reachable via errors.Is")
	}
	if ne.Data["originalError"] != "connection refused" {
		t.Fatalf("unexpected originalError: %#v", ne.Data)
	}
}

func TestIs(t *testing.T) {
	if !Is(SignerRequired("Transfer"), CodeSignerRequired) {
		t.Fatal("expected SIGNER_REQUIRED match")
	}
	if Is(SignerRequired("Transfer"), CodeNetworkError) {
		t.Fatal("unexpected code match")
	}
	if Is(errors.New("plain"), CodeNetworkError) {
		t.Fatal("plain errors must not match any code")
	}
	if Is(nil, CodeNetworkError) {
		t.Fatal("nil must not match")
	}
}

func TestNetworkPassThrough(t *testing.T) {
	// Taxonomy errors cross the wrap point unchanged.
	orig := InvalidAddress("0xzz")
	got := Network("balance read failed", orig)
	if got != error(orig) {
		t.Fatalf("taxonomy error was re-wrapped: %v", got)
	}

	// Plain errors become NETWORK_ERROR.
	plain := fmt.Errorf("dial tcp: timeout")
	got = Network("balance read failed", plain)
	if !Is(got, CodeNetworkError) {
		t.Fatalf("expected NETWORK_ERROR, got %v", got)
	}
	if !errors.Is(got, plain) {
		t.Fatal("original error lost during wrap")
	}

	if Network("x", nil) != nil {
		t.Fatal("nil must stay nil")
	}
}

func TestContractPassThrough(t *testing.T) {
	orig := NotFound("token", "42")
	if got := Contract("ownerOf", orig); got != error(orig) {
		t.Fatalf("taxonomy error was re-wrapped: %v", got)
	}
	if got := Contract("ownerOf", errors.New("execution reverted")); !Is(got, CodeContractError) {
		t.Fatalf("expected CONTRACT_ERROR, got %v", got)
	}
}

func TestInsufficientBalancePayload(t *testing.T) {
	e := InsufficientBalance("100", "10")
	if e.Data["required"] != "100" || e.Data["available"] != "10" {
		t.Fatalf("unexpected payload: %#v", e.Data)
	}
}
