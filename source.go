package main

import (
	"context"
	"math/big"
	"sync"

	"crowdfund-tui/campaign"
	"crowdfund-tui/config"
	"crowdfund-tui/contract"
	"crowdfund-tui/rpc"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// ledgerSource owns the live RPC endpoint and hands out contract
// bindings over it. The endpoint is cached between calls and
// invalidated on failure, so the next caller re-runs the fallback
// probe instead of reusing a dead connection.
type ledgerSource struct {
	mu        sync.Mutex
	endpoints []config.Endpoint
	contract  common.Address
	client    *rpc.Client
}

func newLedgerSource(endpoints []config.Endpoint, contractAddr common.Address) *ledgerSource {
	return &ledgerSource{endpoints: endpoints, contract: contractAddr}
}

// acquire returns the cached endpoint or probes the candidates in
// order for a new one.
func (s *ledgerSource) acquire(ctx context.Context) (*rpc.Client, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.client != nil {
		return s.client, nil
	}
	client, err := rpc.AcquireLiveEndpoint(ctx, s.endpoints)
	if err != nil {
		return nil, err
	}
	s.client = client
	return client, nil
}

// invalidate drops the cached endpoint. The old connection is closed;
// in-flight calls on it simply fail and their results are ignored.
func (s *ledgerSource) invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.client != nil {
		s.client.Close()
		s.client = nil
	}
}

// setEndpoints replaces the candidate list (settings edits) and drops
// the cached connection so the new order takes effect.
func (s *ledgerSource) setEndpoints(endpoints []config.Endpoint) {
	s.mu.Lock()
	s.endpoints = endpoints
	client := s.client
	s.client = nil
	s.mu.Unlock()
	if client != nil {
		client.Close()
	}
}

// current returns the cached endpoint without probing, nil when none.
func (s *ledgerSource) current() *rpc.Client {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.client
}

// resolve is the campaign.Resolver: it runs on every repository call
// so an endpoint that died mid-session is replaced transparently.
func (s *ledgerSource) resolve(ctx context.Context) (campaign.Ledger, error) {
	client, err := s.acquire(ctx)
	if err != nil {
		return nil, err
	}
	return contract.NewCaller(s.contract, client.Client), nil
}

// transactor returns a write binding over the live endpoint.
func (s *ledgerSource) transactor(ctx context.Context, chainID *big.Int) (*contract.Transactor, error) {
	client, err := s.acquire(ctx)
	if err != nil {
		return nil, err
	}
	return contract.NewTransactor(s.contract, chainID, client.Client), nil
}

// TransactionReceipt lets the source double as the confirmation
// backend for transaction trackers.
func (s *ledgerSource) TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error) {
	client, err := s.acquire(ctx)
	if err != nil {
		return nil, err
	}
	return client.TransactionReceipt(ctx, txHash)
}
