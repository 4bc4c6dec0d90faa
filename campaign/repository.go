package campaign

import (
	"context"
	"errors"
	"fmt"
	"math/big"

	"crowdfund-tui/contract"
)

// ErrLoadFailed wraps every read failure the repository reports. The
// repository never retries; callers decide whether to re-resolve an
// endpoint and try again.
var ErrLoadFailed = errors.New("campaign load failed")

// Ledger is the read surface the repository consumes, implemented by
// contract.Caller and by test doubles.
type Ledger interface {
	ActiveCampaigns(ctx context.Context, offset, limit uint64) ([]contract.RawCampaign, *big.Int, error)
	FinishedCampaigns(ctx context.Context, offset, limit uint64) ([]contract.RawCampaign, *big.Int, error)
	Campaign(ctx context.Context, id *big.Int) (contract.RawCampaign, error)
	Donations(ctx context.Context, id *big.Int) ([]contract.RawDonation, error)
	PlatformFeeBps(ctx context.Context) (*big.Int, error)
	PendingWithdrawals(ctx context.Context, id *big.Int) (*big.Int, error)
}

// Resolver produces the ledger handle for one call. It runs on every
// call, never once, so whatever backs it (an endpoint pool, a
// wallet-provided handle) can swap mid-session without the repository
// noticing.
type Resolver func(ctx context.Context) (Ledger, error)

// Page is one page of campaign results.
type Page struct {
	Items []Campaign
	Total uint64
}

// HasMore reports whether records exist past this page.
func (p Page) HasMore(offset, limit uint64) bool {
	return offset+uint64(len(p.Items)) < p.Total
}

// Repository fetches and normalizes campaign records. It holds no
// cached data and no cached handle.
type Repository struct {
	resolve Resolver
}

// NewRepository creates a repository over the given handle resolver.
func NewRepository(resolve Resolver) *Repository {
	return &Repository{resolve: resolve}
}

// ListActive fetches one page of active campaigns.
func (r *Repository) ListActive(ctx context.Context, offset, limit uint64) (Page, error) {
	return r.list(ctx, offset, limit, Ledger.ActiveCampaigns)
}

// ListFinished fetches one page of finished campaigns.
func (r *Repository) ListFinished(ctx context.Context, offset, limit uint64) (Page, error) {
	return r.list(ctx, offset, limit, Ledger.FinishedCampaigns)
}

func (r *Repository) list(ctx context.Context, offset, limit uint64,
	fetch func(Ledger, context.Context, uint64, uint64) ([]contract.RawCampaign, *big.Int, error)) (Page, error) {

	ledger, err := r.resolve(ctx)
	if err != nil {
		return Page{}, fmt.Errorf("%w: %v", ErrLoadFailed, err)
	}

	raws, total, err := fetch(ledger, ctx, offset, limit)
	if err != nil {
		return Page{}, fmt.Errorf("%w: %v", ErrLoadFailed, err)
	}

	page := Page{Items: make([]Campaign, 0, len(raws))}
	for _, raw := range raws {
		page.Items = append(page.Items, normalizeCampaign(raw))
	}
	if total != nil {
		page.Total = total.Uint64()
	}
	return page, nil
}

// Get fetches a single campaign snapshot.
func (r *Repository) Get(ctx context.Context, id *big.Int) (Campaign, error) {
	ledger, err := r.resolve(ctx)
	if err != nil {
		return Campaign{}, fmt.Errorf("%w: %v", ErrLoadFailed, err)
	}
	raw, err := ledger.Campaign(ctx, id)
	if err != nil {
		return Campaign{}, fmt.Errorf("%w: %v", ErrLoadFailed, err)
	}
	return normalizeCampaign(raw), nil
}

// ListDonations fetches the full donation list in ledger (append)
// order. Views render it newest-first via NewestFirst.
func (r *Repository) ListDonations(ctx context.Context, id *big.Int) ([]Donation, error) {
	ledger, err := r.resolve(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadFailed, err)
	}
	raws, err := ledger.Donations(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadFailed, err)
	}
	out := make([]Donation, 0, len(raws))
	for _, raw := range raws {
		out = append(out, normalizeDonation(raw))
	}
	return out, nil
}

// FeeRateBps fetches the platform fee rate in basis points.
func (r *Repository) FeeRateBps(ctx context.Context) (int64, error) {
	ledger, err := r.resolve(ctx)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrLoadFailed, err)
	}
	bps, err := ledger.PlatformFeeBps(ctx)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrLoadFailed, err)
	}
	return bps.Int64(), nil
}

// PendingWithdrawal fetches the amount owed to the campaign owner.
func (r *Repository) PendingWithdrawal(ctx context.Context, id *big.Int) (*big.Int, error) {
	ledger, err := r.resolve(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadFailed, err)
	}
	amount, err := ledger.PendingWithdrawals(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadFailed, err)
	}
	return orZero(amount), nil
}
