package contract

import (
	"context"
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// TxBackend is the write capability the transactor needs. Satisfied by
// ethclient.Client.
type TxBackend interface {
	CallBackend
	PendingNonceAt(ctx context.Context, account common.Address) (uint64, error)
	SuggestGasPrice(ctx context.Context) (*big.Int, error)
	EstimateGas(ctx context.Context, msg ethereum.CallMsg) (uint64, error)
	SendTransaction(ctx context.Context, tx *types.Transaction) error
}

// Signer is the piece of the wallet session the transactor needs: the
// active account and the ability to sign a transaction for it.
type Signer interface {
	Account() common.Address
	SignTx(tx *types.Transaction, chainID *big.Int) (*types.Transaction, error)
}

// CreateParams carries the createCampaign arguments.
type CreateParams struct {
	Title        string
	Description  string
	ImageURLs    []string
	Goal         *big.Int
	OwnerName    string
	OwnerContact string
	Category     string
}

// Transactor builds, signs, and submits the contract's write
// operations. It holds no per-operation state; concurrent trackers may
// share one Transactor.
type Transactor struct {
	addr    common.Address
	chainID *big.Int
	backend TxBackend
}

// NewTransactor creates a write binding at the given contract address.
func NewTransactor(addr common.Address, chainID *big.Int, backend TxBackend) *Transactor {
	return &Transactor{addr: addr, chainID: chainID, backend: backend}
}

// Donate submits donate(id) carrying amount as the transaction value.
func (t *Transactor) Donate(ctx context.Context, signer Signer, id, amount *big.Int) (*types.Transaction, error) {
	return t.send(ctx, signer, amount, "donate", id)
}

// CreateCampaign submits createCampaign with the given fields. The
// assigned id is carried by the CampaignCreated event in the receipt.
func (t *Transactor) CreateCampaign(ctx context.Context, signer Signer, p CreateParams) (*types.Transaction, error) {
	return t.send(ctx, signer, nil, "createCampaign",
		p.Title, p.Description, p.ImageURLs, p.Goal, p.OwnerName, p.OwnerContact, p.Category)
}

// WithdrawFunds submits withdrawFunds(id).
func (t *Transactor) WithdrawFunds(ctx context.Context, signer Signer, id *big.Int) (*types.Transaction, error) {
	return t.send(ctx, signer, nil, "withdrawFunds", id)
}

func (t *Transactor) send(ctx context.Context, signer Signer, value *big.Int, method string, args ...any) (*types.Transaction, error) {
	data, err := crowdfundABI.Pack(method, args...)
	if err != nil {
		return nil, fmt.Errorf("pack %s: %w", method, err)
	}

	from := signer.Account()
	nonce, err := t.backend.PendingNonceAt(ctx, from)
	if err != nil {
		return nil, fmt.Errorf("nonce for %s: %w", method, err)
	}
	gasPrice, err := t.backend.SuggestGasPrice(ctx)
	if err != nil {
		return nil, fmt.Errorf("gas price for %s: %w", method, err)
	}

	// A failed estimate is the pre-submission validation path: the node
	// already knows the call would revert.
	gas, err := t.backend.EstimateGas(ctx, ethereum.CallMsg{
		From:  from,
		To:    &t.addr,
		Value: value,
		Data:  data,
	})
	if err != nil {
		return nil, fmt.Errorf("estimate %s: %w", method, err)
	}

	tx := types.NewTx(&types.LegacyTx{
		Nonce:    nonce,
		To:       &t.addr,
		Value:    value,
		Gas:      gas,
		GasPrice: gasPrice,
		Data:     data,
	})

	signed, err := signer.SignTx(tx, t.chainID)
	if err != nil {
		return nil, fmt.Errorf("sign %s: %w", method, err)
	}

	if err := t.backend.SendTransaction(ctx, signed); err != nil {
		return nil, fmt.Errorf("send %s: %w", method, err)
	}
	return signed, nil
}

// CreatedEvent is the decoded CampaignCreated event.
type CreatedEvent struct {
	CampaignID  *big.Int
	Owner       common.Address
	PlatformFee *big.Int
}

// ErrNoCreatedEvent is returned when a createCampaign receipt carries
// no CampaignCreated log.
var ErrNoCreatedEvent = errors.New("no CampaignCreated event in receipt")

// ParseCreatedEvent extracts the CampaignCreated event from a mined
// createCampaign receipt.
func (t *Transactor) ParseCreatedEvent(receipt *types.Receipt) (CreatedEvent, error) {
	ev := crowdfundABI.Events["CampaignCreated"]
	for _, lg := range receipt.Logs {
		if lg.Address != t.addr || len(lg.Topics) < 3 || lg.Topics[0] != ev.ID {
			continue
		}
		var out CreatedEvent
		out.CampaignID = new(big.Int).SetBytes(lg.Topics[1].Bytes())
		out.Owner = common.BytesToAddress(lg.Topics[2].Bytes())
		vals, err := ev.Inputs.NonIndexed().Unpack(lg.Data)
		if err != nil {
			return CreatedEvent{}, fmt.Errorf("unpack CampaignCreated: %w", err)
		}
		out.PlatformFee = *abiConvert[*big.Int](vals[0])
		return out, nil
	}
	return CreatedEvent{}, ErrNoCreatedEvent
}

// RevertReason replays a reverted transaction as an eth_call at its
// mined block to recover the revert string. Falls back to a generic
// reason when the node declines to replay.
func (t *Transactor) RevertReason(ctx context.Context, tx *types.Transaction, from common.Address, blockNumber *big.Int) string {
	msg := ethereum.CallMsg{
		From:  from,
		To:    tx.To(),
		Value: tx.Value(),
		Data:  tx.Data(),
		Gas:   tx.Gas(),
	}
	_, err := t.backend.CallContract(ctx, msg, blockNumber)
	if err == nil {
		return "execution reverted"
	}
	return err.Error()
}
