// Package storage retrieves and publishes off-chain metadata documents
// (NFT and license metadata JSON) on decentralized storage. Content is
// addressed by CID and reached either through a Kubo HTTP API node or a
// plain HTTP IPFS gateway.
package storage

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/ipfs/kubo/client/rpc"
	"go.uber.org/zap"
)

const (
	// IpfsPrefix is the URI scheme prefix recognized for IPFS content.
	IpfsPrefix = "ipfs://"

	// defaultTimeout bounds storage operations when the caller supplies
	// no deadline of its own.
	defaultTimeout = 60 * time.Second
)

// Storage is the interface consumed by the SDK managers for metadata
// documents.
type Storage interface {
	ReadFile(ctx context.Context, uri string) ([]byte, error)
	UploadJSON(ctx context.Context, data interface{}) (string, error)
}

// IPFSFetcher fetches content addressed by CID from an IPFS node.
type IPFSFetcher interface {
	Fetch(ctx context.Context, hash string) ([]byte, error)
}

// GatewayFetcher fetches content addressed by CID from an HTTP gateway.
type GatewayFetcher interface {
	Fetch(ctx context.Context, endpoint, cid string) ([]byte, error)
}

// Client aggregates the configured storage backends. Reads prefer the
// Kubo API node when one is configured and fall back to the HTTP gateway;
// uploads always go through the API node.
type Client struct {
	// HttpApi is a connected Kubo HTTP API client used for IPFS reads and writes.
	*rpc.HttpApi
	// GatewayURL is the base URL of an IPFS HTTP gateway, e.g.
	// "https://ipfs.io/ipfs/". The CID is appended directly.
	GatewayURL string

	ipfsFetcher    IPFSFetcher
	gatewayFetcher GatewayFetcher
	timeout        time.Duration
}

// NewStorage constructs a storage client using the provided Kubo API
// endpoint and HTTP gateway URL. If the Kubo client fails to initialize,
// the error is logged and reads are served from the gateway alone.
func NewStorage(ipfsURL, gatewayURL string, timeout time.Duration) *Client {
	var err error
	s := new(Client)
	s.HttpApi, err = NewIPFSClient(ipfsURL)
	s.GatewayURL = gatewayURL
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	s.timeout = timeout
	s.ipfsFetcher = newIPFSFetcher(s.HttpApi)
	s.gatewayFetcher = defaultGatewayFetcher{}
	if err != nil {
		zap.L().Error(err.Error())
	}
	return s
}

// ReadFile fetches the content behind uri. IPFS URIs ("ipfs://<cid>") and
// bare CIDs are read from the Kubo node, falling back to the gateway when
// no node is configured or the node read fails. HTTP(S) URIs are fetched
// directly.
func (s *Client) ReadFile(ctx context.Context, uri string) ([]byte, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	if isHTTPURI(uri) {
		return getGatewayFile(ctx, uri)
	}

	hash := formatHash(uri)
	if s.ipfsFetcher != nil {
		content, err := s.ipfsFetcher.Fetch(ctx, hash)
		if err == nil {
			return content, nil
		}
		if s.gatewayFetcher == nil {
			return nil, err
		}
		zap.L().Warn("ipfs node read failed, falling back to gateway",
			zap.String("cid", hash), zap.Error(err))
	}
	if s.gatewayFetcher == nil {
		s.gatewayFetcher = defaultGatewayFetcher{}
	}
	return s.gatewayFetcher.Fetch(ctx, s.GatewayURL, hash)
}

// withTimeout bounds ctx with the client's operation timeout.
func (s *Client) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if ctx == nil {
		ctx = context.Background()
	}
	timeout := s.timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return context.WithTimeout(ctx, timeout)
}

// isHTTPURI reports whether uri is a direct HTTP(S) URL rather than an
// IPFS URI or bare CID.
func isHTTPURI(uri string) bool {
	return strings.HasPrefix(uri, "http://") || strings.HasPrefix(uri, "https://")
}

// formatHash strips the ipfs:// scheme and any non-alphanumeric characters
// (except '=') from uri to produce a clean CID string.
func formatHash(uri string) string {
	uri = strings.Replace(uri, IpfsPrefix, "", -1)
	return removeSpecialCharacters(uri)
}

// removeSpecialCharacters strips all characters except ASCII letters,
// digits, and '=' from pString.
func removeSpecialCharacters(pString string) string {
	reg := regexp.MustCompile("[^a-zA-Z0-9=]")
	return reg.ReplaceAllString(pString, "")
}
