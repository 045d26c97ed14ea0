package storage

import (
	"context"
	"fmt"
	"testing"
)

func TestFormatHash_SanitizesPrefixes(t *testing.T) {
	input := "ipfs://Qm-AbC=123!?#"
	if got := formatHash(input); got != "QmAbC=123" {
		t.Fatalf("formatHash returned %q, want %q", got, "QmAbC=123")
	}
}

func TestRemoveSpecialCharacters(t *testing.T) {
	input := "Qm-._$Hello=World"
	if got := removeSpecialCharacters(input); got != "QmHello=World" {
		t.Fatalf("removeSpecialCharacters returned %q, want %q", got, "QmHello=World")
	}
}

func TestIsHTTPURI(t *testing.T) {
	if !isHTTPURI("https://example.com/meta.json") {
		t.Fatal("https URI not recognized")
	}
	if !isHTTPURI("http://example.com/meta.json") {
		t.Fatal("http URI not recognized")
	}
	if isHTTPURI("ipfs://QmHash") {
		t.Fatal("ipfs URI misclassified as HTTP")
	}
	if isHTTPURI("QmHash") {
		t.Fatal("bare CID misclassified as HTTP")
	}
}

func TestReadFilePrefersIPFSNode(t *testing.T) {
	called := false
	s := &Client{
		ipfsFetcher: ipfsFetcherFunc(func(_ context.Context, hash string) ([]byte, error) {
			called = true
			if hash != "QmHash" {
				t.Fatalf("unexpected hash: %s", hash)
			}
			return []byte("ok"), nil
		}),
		gatewayFetcher: gatewayFetcherFunc(func(context.Context, string, string) ([]byte, error) {
			t.Fatal("gateway should not be used when node read succeeds")
			return nil, nil
		}),
	}
	data, err := s.ReadFile(context.Background(), "ipfs://QmHash")
	if err != nil {
		t.Fatalf("ReadFile error: %v", err)
	}
	if string(data) != "ok" {
		t.Fatalf("unexpected data: %q", data)
	}
	if !called {
		t.Fatal("expected ipfs fetch to be used")
	}
}

func TestReadFileFallsBackToGateway(t *testing.T) {
	s := &Client{
		GatewayURL: "https://gw/",
		ipfsFetcher: ipfsFetcherFunc(func(context.Context, string) ([]byte, error) {
			return nil, fmt.Errorf("node unavailable")
		}),
		gatewayFetcher: gatewayFetcherFunc(func(_ context.Context, endpoint, cid string) ([]byte, error) {
			if endpoint != "https://gw/" {
				t.Fatalf("unexpected endpoint: %s", endpoint)
			}
			if cid != "QmHash" {
				t.Fatalf("unexpected cid: %s", cid)
			}
			return []byte("from gateway"), nil
		}),
	}
	data, err := s.ReadFile(context.Background(), "QmHash")
	if err != nil {
		t.Fatalf("ReadFile error: %v", err)
	}
	if string(data) != "from gateway" {
		t.Fatalf("unexpected data: %q", data)
	}
}

func TestReadFileNodeErrorWithoutGateway(t *testing.T) {
	s := &Client{
		ipfsFetcher: ipfsFetcherFunc(func(context.Context, string) ([]byte, error) {
			return nil, fmt.Errorf("ipfs failure")
		}),
	}
	if _, err := s.ReadFile(context.Background(), "QmHash"); err == nil {
		t.Fatal("expected error from IPFS read")
	}
}

type ipfsFetcherFunc func(context.Context, string) ([]byte, error)

func (f ipfsFetcherFunc) Fetch(ctx context.Context, hash string) ([]byte, error) {
	return f(ctx, hash)
}

type gatewayFetcherFunc func(context.Context, string, string) ([]byte, error)

func (f gatewayFetcherFunc) Fetch(ctx context.Context, endpoint, cid string) ([]byte, error) {
	return f(ctx, endpoint, cid)
}
