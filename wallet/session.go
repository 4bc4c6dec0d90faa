package wallet

import (
	"context"
	"errors"
	"math/big"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// State is the session lifecycle state.
type State int

const (
	StateDisconnected State = iota
	StateConnecting
	StateConnected
	StateWrongChain
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateDisconnected:
		return "disconnected"
	case StateConnecting:
		return "connecting"
	case StateConnected:
		return "connected"
	case StateWrongChain:
		return "wrong chain"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// NoticeKind enumerates session transitions driven by external wallet
// events, delivered asynchronously to the owner of the session.
type NoticeKind int

const (
	NoticeAccountChanged NoticeKind = iota
	NoticeChainChanged
	NoticeDisconnected
)

// Notice is posted whenever the wallet moves the session without the
// client asking. Generation identifies the transition; readers discard
// results started under an older generation.
type Notice struct {
	Kind       NoticeKind
	Generation int64
	Account    common.Address
	ChainID    *big.Int
}

// Session is the single live wallet session. It exclusively owns the
// account/chain/connector triple; every other component reads through
// its accessors.
type Session struct {
	requiredChain *big.Int
	logger        *log.Logger
	notify        func(Notice)

	mu         sync.Mutex
	state      State
	account    common.Address
	chainID    *big.Int
	connector  Connector
	generation int64
	stop       chan struct{}
}

// NewSession creates an empty session for the given required chain.
// notify receives wallet-driven transitions; it must not block.
func NewSession(requiredChain *big.Int, logger *log.Logger, notify func(Notice)) *Session {
	if notify == nil {
		notify = func(Notice) {}
	}
	return &Session{
		requiredChain: new(big.Int).Set(requiredChain),
		logger:        logger,
		notify:        notify,
		state:         StateDisconnected,
	}
}

// Connect runs the connector handshake. A user rejection surfaces as
// ErrRejected and leaves the session Disconnected; any other failure
// is logged and moves the session to Failed.
func (s *Session) Connect(ctx context.Context, c Connector) error {
	s.mu.Lock()
	if s.state == StateConnecting {
		s.mu.Unlock()
		return errors.New("connect already in progress")
	}
	s.state = StateConnecting
	s.generation++
	s.mu.Unlock()

	id, err := c.Connect(ctx)
	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		s.generation++
		if errors.Is(err, ErrRejected) {
			// User cancelled: silent no-op, not an error state.
			s.state = StateDisconnected
			s.logger.Debug("wallet connect rejected by user")
			return ErrRejected
		}
		s.state = StateFailed
		s.logger.Error("wallet connect failed", "err", err)
		return err
	}

	s.connector = c
	s.account = id.Account
	s.chainID = id.ChainID
	s.generation++
	if id.ChainID != nil && id.ChainID.Cmp(s.requiredChain) == 0 {
		s.state = StateConnected
	} else {
		s.state = StateWrongChain
		s.logger.Warn("wallet on unexpected chain", "chain", id.ChainID, "want", s.requiredChain)
	}

	s.stop = make(chan struct{})
	go s.pump(c.Events(), s.stop)

	s.logger.Info("wallet connected", "account", s.account.Hex(), "state", s.state)
	return nil
}

// AutoReconnect behaves like Connect when a previously cached connector
// is supplied, and is a no-op otherwise. Run it once at startup, after
// the read-only path is already serving data.
func (s *Session) AutoReconnect(ctx context.Context, cached Connector) error {
	if cached == nil {
		return nil
	}
	return s.Connect(ctx, cached)
}

// RequestSwitch asks the wallet to move to the required chain. A
// refusal is non-fatal: the session stays WrongChain and the error is
// returned for display only.
func (s *Session) RequestSwitch(ctx context.Context) error {
	s.mu.Lock()
	c := s.connector
	s.mu.Unlock()
	if c == nil {
		return errors.New("no wallet connected")
	}

	if err := c.RequestChainSwitch(ctx, s.requiredChain); err != nil {
		s.logger.Warn("chain switch refused", "err", err)
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.chainID = new(big.Int).Set(s.requiredChain)
	s.state = StateConnected
	s.generation++
	return nil
}

// Disconnect clears the session from any state. The cached connector
// marker must be cleared by the owner so AutoReconnect does not fire
// later.
func (s *Session) Disconnect() {
	s.mu.Lock()
	c := s.connector
	s.clearLocked()
	s.mu.Unlock()

	if c != nil {
		if err := c.Disconnect(); err != nil {
			s.logger.Warn("connector disconnect", "err", err)
		}
	}
}

// clearLocked resets to Disconnected. Caller holds s.mu.
func (s *Session) clearLocked() {
	if s.stop != nil {
		close(s.stop)
		s.stop = nil
	}
	s.connector = nil
	s.account = common.Address{}
	s.chainID = nil
	s.state = StateDisconnected
	s.generation++
}

// pump forwards external wallet events into session transitions until
// the subscription is stopped or the connector closes its channel.
func (s *Session) pump(events <-chan Event, stop <-chan struct{}) {
	if events == nil {
		return
	}
	for {
		select {
		case <-stop:
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			s.handleEvent(ev)
		}
	}
}

func (s *Session) handleEvent(ev Event) {
	switch ev.Kind {
	case EventAccountsChanged:
		s.handleAccountsChanged(ev.Accounts)
	case EventChainChanged:
		s.handleChainChanged(ev.ChainID)
	case EventDisconnect:
		s.handleExternalDisconnect()
	}
}

func (s *Session) handleAccountsChanged(accounts []common.Address) {
	s.mu.Lock()
	if len(accounts) == 0 {
		// Wallet dropped every account: treat as an external disconnect.
		c := s.connector
		s.clearLocked()
		gen := s.generation
		s.mu.Unlock()
		if c != nil {
			_ = c.Disconnect()
		}
		s.logger.Info("wallet removed all accounts")
		s.notify(Notice{Kind: NoticeDisconnected, Generation: gen})
		return
	}

	s.account = accounts[0]
	s.generation++
	n := Notice{Kind: NoticeAccountChanged, Generation: s.generation, Account: s.account}
	s.mu.Unlock()
	s.logger.Info("wallet account changed", "account", n.Account.Hex())
	s.notify(n)
}

// handleChainChanged drops the session entirely: ledger handles bound
// to the old chain cannot be reused, so the owner must re-initialize
// the read path and reload.
func (s *Session) handleChainChanged(chainID *big.Int) {
	s.mu.Lock()
	c := s.connector
	s.clearLocked()
	n := Notice{Kind: NoticeChainChanged, Generation: s.generation, ChainID: chainID}
	s.mu.Unlock()
	if c != nil {
		_ = c.Disconnect()
	}
	s.logger.Warn("wallet chain changed, session reset", "chain", chainID)
	s.notify(n)
}

func (s *Session) handleExternalDisconnect() {
	s.mu.Lock()
	c := s.connector
	s.clearLocked()
	gen := s.generation
	s.mu.Unlock()
	if c != nil {
		_ = c.Disconnect()
	}
	s.logger.Info("wallet disconnected externally")
	s.notify(Notice{Kind: NoticeDisconnected, Generation: gen})
}

// State reports the current lifecycle state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Ready reports whether a wallet-backed handle is usable. WrongChain
// still counts: reads work, and the UI warns instead of blocking.
func (s *Session) Ready() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state == StateConnected || s.state == StateWrongChain
}

// Account returns the active account, zero when disconnected.
func (s *Session) Account() common.Address {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.account
}

// ChainID returns the wallet's reported chain, nil when disconnected.
func (s *Session) ChainID() *big.Int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.chainID == nil {
		return nil
	}
	return new(big.Int).Set(s.chainID)
}

// ConnectorID returns the active connector's id for the persisted
// reconnect marker, empty when disconnected.
func (s *Session) ConnectorID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.connector == nil {
		return ""
	}
	return s.connector.ID()
}

// Generation returns the transition counter. Results computed under an
// older generation must be discarded by their readers.
func (s *Session) Generation() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.generation
}

// SignTx signs through the active connector.
func (s *Session) SignTx(tx *types.Transaction, chainID *big.Int) (*types.Transaction, error) {
	s.mu.Lock()
	c := s.connector
	s.mu.Unlock()
	if c == nil {
		return nil, errors.New("no wallet connected")
	}
	return c.SignTx(tx, chainID)
}
