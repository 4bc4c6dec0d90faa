package contract

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
)

// CallBackend is the read capability the caller needs. Satisfied by
// ethclient.Client and by test doubles.
type CallBackend interface {
	CallContract(ctx context.Context, msg ethereum.CallMsg, blockNumber *big.Int) ([]byte, error)
}

// Caller exposes the contract's read-only surface over any CallBackend.
// It carries no session state; a fresh Caller per resolved endpoint is
// cheap.
type Caller struct {
	addr    common.Address
	backend CallBackend
}

// NewCaller creates a read-only binding at the given contract address.
func NewCaller(addr common.Address, backend CallBackend) *Caller {
	return &Caller{addr: addr, backend: backend}
}

// Address returns the bound contract address.
func (c *Caller) Address() common.Address {
	return c.addr
}

func (c *Caller) call(ctx context.Context, method string, args ...any) ([]any, error) {
	data, err := crowdfundABI.Pack(method, args...)
	if err != nil {
		return nil, fmt.Errorf("pack %s: %w", method, err)
	}

	msg := ethereum.CallMsg{
		To:   &c.addr,
		Data: data,
	}
	out, err := c.backend.CallContract(ctx, msg, nil)
	if err != nil {
		return nil, fmt.Errorf("call %s: %w", method, err)
	}

	vals, err := crowdfundABI.Unpack(method, out)
	if err != nil {
		return nil, fmt.Errorf("unpack %s: %w", method, err)
	}
	return vals, nil
}

// ActiveCampaigns calls getActiveCampaignsPaginated(offset, limit).
func (c *Caller) ActiveCampaigns(ctx context.Context, offset, limit uint64) ([]RawCampaign, *big.Int, error) {
	return c.paginated(ctx, "getActiveCampaignsPaginated", offset, limit)
}

// FinishedCampaigns calls getFinishedCampaignsPaginated(offset, limit).
func (c *Caller) FinishedCampaigns(ctx context.Context, offset, limit uint64) ([]RawCampaign, *big.Int, error) {
	return c.paginated(ctx, "getFinishedCampaignsPaginated", offset, limit)
}

func (c *Caller) paginated(ctx context.Context, method string, offset, limit uint64) ([]RawCampaign, *big.Int, error) {
	vals, err := c.call(ctx, method, new(big.Int).SetUint64(offset), new(big.Int).SetUint64(limit))
	if err != nil {
		return nil, nil, err
	}
	campaigns := *abiConvert[[]RawCampaign](vals[0])
	total := *abiConvert[*big.Int](vals[1])
	return campaigns, total, nil
}

// Campaign calls getCampaign(id).
func (c *Caller) Campaign(ctx context.Context, id *big.Int) (RawCampaign, error) {
	vals, err := c.call(ctx, "getCampaign", id)
	if err != nil {
		return RawCampaign{}, err
	}
	return *abiConvert[RawCampaign](vals[0]), nil
}

// Donations calls getDonations(id). The ledger returns the full list in
// append order.
func (c *Caller) Donations(ctx context.Context, id *big.Int) ([]RawDonation, error) {
	vals, err := c.call(ctx, "getDonations", id)
	if err != nil {
		return nil, err
	}
	return *abiConvert[[]RawDonation](vals[0]), nil
}

// PlatformFeeBps calls getPlatformFeePercent(), returned in basis points.
func (c *Caller) PlatformFeeBps(ctx context.Context) (*big.Int, error) {
	vals, err := c.call(ctx, "getPlatformFeePercent")
	if err != nil {
		return nil, err
	}
	return *abiConvert[*big.Int](vals[0]), nil
}

// PendingWithdrawals calls pendingWithdrawals(id), the amount owed to
// the campaign owner not yet paid out.
func (c *Caller) PendingWithdrawals(ctx context.Context, id *big.Int) (*big.Int, error) {
	vals, err := c.call(ctx, "pendingWithdrawals", id)
	if err != nil {
		return nil, err
	}
	return *abiConvert[*big.Int](vals[0]), nil
}

func abiConvert[T any](v any) *T {
	return abi.ConvertType(v, new(T)).(*T)
}
