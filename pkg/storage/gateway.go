package storage

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"go.uber.org/zap"
)

// defaultGatewayFetcher is the production implementation of GatewayFetcher.
// It performs a plain HTTP GET against {endpoint}{cid}.
type defaultGatewayFetcher struct{}

func (defaultGatewayFetcher) Fetch(ctx context.Context, endpoint, cid string) ([]byte, error) {
	return getGatewayFile(ctx, endpoint+cid)
}

// getGatewayFile fetches a blob over HTTP and returns the response body.
// Non-2xx responses are reported as errors so callers can distinguish a
// missing document from an empty one.
func getGatewayFile(ctx context.Context, url string) ([]byte, error) {
	zap.L().Debug("fetching from gateway", zap.String("url", url))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			zap.L().Error("error closing gateway response", zap.Error(err))
		}
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("gateway returned status %d for %s", resp.StatusCode, url)
	}
	return io.ReadAll(resp.Body)
}
