// Package wallet owns the wallet session: the connector capability
// interface and the state machine tracking the active account and
// chain across external wallet events.
package wallet

import (
	"context"
	"errors"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// ErrRejected marks a connection the user declined. Callers swallow it
// as a no-op instead of surfacing an error.
var ErrRejected = errors.New("wallet connection rejected by user")

// Identity is the result of a successful connector handshake.
type Identity struct {
	Account common.Address
	ChainID *big.Int
}

// EventKind enumerates the asynchronous notifications a connector may
// emit while a session is live.
type EventKind int

const (
	EventAccountsChanged EventKind = iota
	EventChainChanged
	EventDisconnect
)

// Event is an external wallet notification.
type Event struct {
	Kind     EventKind
	Accounts []common.Address // EventAccountsChanged
	ChainID  *big.Int         // EventChainChanged
}

// Connector is the wallet capability supplied from outside the client.
// The session never assumes anything about what is behind it: a local
// key file, a hardware signer, or a remote wallet bridge all fit.
type Connector interface {
	// ID identifies the connector kind for the persisted reconnect marker.
	ID() string
	// Connect performs the handshake and reports the active identity.
	// Returns ErrRejected when the user declines.
	Connect(ctx context.Context) (Identity, error)
	// Disconnect releases the connector. Idempotent.
	Disconnect() error
	// RequestChainSwitch asks the wallet to move to the given chain.
	// The wallet may refuse; that is not fatal.
	RequestChainSwitch(ctx context.Context, chainID *big.Int) error
	// Events delivers external notifications for the lifetime of the
	// connection. The channel is closed on Disconnect.
	Events() <-chan Event
	// SignTx signs a transaction for the active account.
	SignTx(tx *types.Transaction, chainID *big.Int) (*types.Transaction, error)
}
