package rpc

import (
	"context"
	"errors"
	"fmt"
	"time"

	"crowdfund-tui/config"

	"github.com/ethereum/go-ethereum/ethclient"
)

// ErrNoEndpointAvailable is returned when every configured endpoint
// failed its liveness probe. Callers must surface this as a terminal
// connectivity error rather than retry indefinitely.
var ErrNoEndpointAvailable = errors.New("no rpc endpoint available")

// DefaultProbeTimeout bounds a single endpoint liveness probe.
const DefaultProbeTimeout = 8 * time.Second

// Client wraps an Ethereum RPC client
type Client struct {
	*ethclient.Client
	Name string
	URL  string
}

// AcquireLiveEndpoint tries the candidates strictly in order and returns
// the first one that answers a block-number probe. A timed-out probe is
// treated the same as a failed one; later candidates are never contacted
// once one succeeds. Safe to call repeatedly mid-session.
func AcquireLiveEndpoint(ctx context.Context, candidates []config.Endpoint) (*Client, error) {
	return AcquireLiveEndpointWithTimeout(ctx, candidates, DefaultProbeTimeout)
}

// AcquireLiveEndpointWithTimeout is AcquireLiveEndpoint with a custom
// per-probe timeout.
func AcquireLiveEndpointWithTimeout(ctx context.Context, candidates []config.Endpoint, timeout time.Duration) (*Client, error) {
	var lastErr error
	for _, ep := range candidates {
		client, err := probe(ctx, ep.URL, timeout)
		if err != nil {
			lastErr = err
			continue
		}
		client.Name = ep.Name
		return client, nil
	}
	if lastErr != nil {
		return nil, fmt.Errorf("%w: last error: %v", ErrNoEndpointAvailable, lastErr)
	}
	return nil, ErrNoEndpointAvailable
}

// probe dials the endpoint and issues a cheap read to confirm liveness.
// Dialing alone is not enough: ethclient defers HTTP connections, so an
// unreachable endpoint only fails on the first actual call.
func probe(ctx context.Context, url string, timeout time.Duration) (*Client, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := ethclient.DialContext(ctx, url)
	if err != nil {
		return nil, err
	}

	if _, err := client.BlockNumber(ctx); err != nil {
		client.Close()
		return nil, err
	}

	return &Client{Client: client, URL: url}, nil
}
