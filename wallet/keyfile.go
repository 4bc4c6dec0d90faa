package wallet

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
)

// KeyfileConnectorID is the persisted-marker id for KeyfileConnector.
const KeyfileConnectorID = "keyfile"

// KeyfileConnector is a connector backed by a hex-encoded private key
// on disk. It signs locally and never emits external events: a key
// file has no wallet UI that could change accounts or chains behind
// the client's back.
type KeyfileConnector struct {
	path    string
	chainID *big.Int

	mu     sync.Mutex
	key    *ecdsa.PrivateKey
	events chan Event
}

// NewKeyfileConnector creates a connector for the key at path, assumed
// to live on the given chain.
func NewKeyfileConnector(path string, chainID *big.Int) *KeyfileConnector {
	return &KeyfileConnector{path: path, chainID: new(big.Int).Set(chainID)}
}

func (k *KeyfileConnector) ID() string { return KeyfileConnectorID }

// Connect loads the key and reports its address.
func (k *KeyfileConnector) Connect(_ context.Context) (Identity, error) {
	k.mu.Lock()
	defer k.mu.Unlock()

	key, err := crypto.LoadECDSA(k.path)
	if err != nil {
		return Identity{}, fmt.Errorf("load key file: %w", err)
	}
	k.key = key
	k.events = make(chan Event)

	return Identity{
		Account: crypto.PubkeyToAddress(key.PublicKey),
		ChainID: new(big.Int).Set(k.chainID),
	}, nil
}

// Disconnect drops the loaded key.
func (k *KeyfileConnector) Disconnect() error {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.key = nil
	if k.events != nil {
		close(k.events)
		k.events = nil
	}
	return nil
}

// RequestChainSwitch always succeeds: a local key signs on any chain.
func (k *KeyfileConnector) RequestChainSwitch(_ context.Context, chainID *big.Int) error {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.chainID = new(big.Int).Set(chainID)
	return nil
}

func (k *KeyfileConnector) Events() <-chan Event {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.events
}

func (k *KeyfileConnector) SignTx(tx *types.Transaction, chainID *big.Int) (*types.Transaction, error) {
	k.mu.Lock()
	key := k.key
	k.mu.Unlock()
	if key == nil {
		return nil, fmt.Errorf("keyfile connector not connected")
	}
	return types.SignTx(tx, types.LatestSignerForChainID(chainID), key)
}

var _ Connector = (*KeyfileConnector)(nil)
