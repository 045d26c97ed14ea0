package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/ipfs/go-cid"
	"github.com/ipfs/kubo/client/rpc"
	"go.uber.org/zap"
)

// ipfsFetcher is the concrete implementation of IPFSFetcher backed by a
// Kubo HTTP API node.
type ipfsFetcher struct {
	api *rpc.HttpApi
}

func newIPFSFetcher(api *rpc.HttpApi) IPFSFetcher {
	return &ipfsFetcher{api: api}
}

// Fetch retrieves content by CID via `ipfs cat`. After reading, it performs
// a best-effort verification by recomputing a CID from (original CID bytes +
// content) and comparing it with the requested CID; mismatches are logged,
// not fatal.
func (f *ipfsFetcher) Fetch(ctx context.Context, hash string) ([]byte, error) {
	if f.api == nil {
		return nil, fmt.Errorf("ipfs client not configured")
	}

	hash = formatHash(hash)
	zap.L().Debug("fetching from ipfs", zap.String("cid", hash))

	cID, err := cid.Parse(hash)
	if err != nil {
		return nil, fmt.Errorf("invalid ipfs cid %q: %w", hash, err)
	}

	resp, err := f.api.Request("cat", cID.String()).Send(ctx)
	if err != nil {
		zap.L().Error("ipfs cat failed", zap.String("cid", hash), zap.Error(err))
		return nil, err
	}
	defer func(resp *rpc.Response) {
		if err := resp.Close(); err != nil {
			zap.L().Error("error closing ipfs response", zap.String("cid", hash), zap.Error(err))
		}
	}(resp)

	if resp.Error != nil {
		zap.L().Error("ipfs cat returned error", zap.String("cid", hash), zap.Error(resp.Error))
		return nil, resp.Error
	}

	content, err := io.ReadAll(resp.Output)
	if err != nil {
		zap.L().Error("error reading ipfs content", zap.String("cid", hash), zap.Error(err))
		return nil, err
	}

	_, c, err := cid.CidFromBytes(append(cID.Bytes(), content...))
	if err != nil {
		zap.L().Error("error recomputing cid", zap.String("cid", hash), zap.Error(err))
		return content, nil
	}
	if !c.Equals(cID) {
		zap.L().Error("ipfs content verification failed",
			zap.String("expectedCid", hash),
			zap.String("contentCid", c.String()))
	}

	return content, nil
}

// Upload adds data to IPFS via the `add` command and returns the
// "ipfs://<cid>" URI of the stored content.
func (f *ipfsFetcher) Upload(ctx context.Context, data []byte) (string, error) {
	if f.api == nil {
		return "", fmt.Errorf("ipfs client not configured")
	}

	resp, err := f.api.Request("add").Body(bytes.NewReader(data)).Send(ctx)
	if err != nil {
		zap.L().Error("ipfs add failed", zap.Error(err))
		return "", err
	}
	defer func(resp *rpc.Response) {
		if err := resp.Close(); err != nil {
			zap.L().Error("error closing ipfs response", zap.Error(err))
		}
	}(resp)

	if resp.Error != nil {
		zap.L().Error("ipfs add returned error", zap.Error(resp.Error))
		return "", resp.Error
	}

	body, err := io.ReadAll(resp.Output)
	if err != nil {
		zap.L().Error("error reading ipfs add response", zap.Error(err))
		return "", err
	}

	var addResp struct {
		Hash string `json:"Hash"`
	}
	if err := json.Unmarshal(body, &addResp); err != nil {
		zap.L().Error("error unmarshaling ipfs add response", zap.Error(err))
		return "", err
	}

	zap.L().Debug("uploaded to ipfs", zap.String("cid", addResp.Hash))
	return IpfsPrefix + addResp.Hash, nil
}

// UploadJSON serializes data to JSON and publishes it to IPFS.
// Returns the "ipfs://<cid>" URI on success.
func (c *Client) UploadJSON(ctx context.Context, data interface{}) (string, error) {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	jsonData, err := json.Marshal(data)
	if err != nil {
		return "", fmt.Errorf("failed to marshal JSON: %w", err)
	}

	uploader, ok := c.ipfsFetcher.(*ipfsFetcher)
	if !ok {
		return "", fmt.Errorf("ipfs fetcher does not support uploads")
	}
	return uploader.Upload(ctx, jsonData)
}

// NewIPFSClient constructs a Kubo HTTP API client pointed at url. The
// client uses a short HTTP timeout suitable for metadata-sized payloads.
func NewIPFSClient(url string) (*rpc.HttpApi, error) {
	httpClient := http.Client{
		Timeout: 5 * time.Second,
	}
	return rpc.NewURLApiWithClient(url, &httpClient)
}
