package campaign

import (
	"context"
	"errors"
	"math/big"
	"testing"

	"crowdfund-tui/contract"

	"github.com/ethereum/go-ethereum/common"
)

// stubLedger is an in-memory ledger double.
type stubLedger struct {
	campaigns map[int64]contract.RawCampaign
	donations map[int64][]contract.RawDonation
	feeBps    *big.Int
	pending   *big.Int
	err       error
}

func newStubLedger() *stubLedger {
	return &stubLedger{
		campaigns: make(map[int64]contract.RawCampaign),
		donations: make(map[int64][]contract.RawDonation),
		feeBps:    big.NewInt(250),
		pending:   big.NewInt(0),
	}
}

func (s *stubLedger) ActiveCampaigns(_ context.Context, offset, limit uint64) ([]contract.RawCampaign, *big.Int, error) {
	if s.err != nil {
		return nil, nil, s.err
	}
	var all []contract.RawCampaign
	for id := int64(0); id < int64(len(s.campaigns)); id++ {
		if c, ok := s.campaigns[id]; ok && !c.Finished {
			all = append(all, c)
		}
	}
	total := big.NewInt(int64(len(all)))
	if offset >= uint64(len(all)) {
		return nil, total, nil
	}
	end := offset + limit
	if end > uint64(len(all)) {
		end = uint64(len(all))
	}
	return all[offset:end], total, nil
}

func (s *stubLedger) FinishedCampaigns(_ context.Context, offset, limit uint64) ([]contract.RawCampaign, *big.Int, error) {
	if s.err != nil {
		return nil, nil, s.err
	}
	var all []contract.RawCampaign
	for id := int64(0); id < int64(len(s.campaigns)); id++ {
		if c, ok := s.campaigns[id]; ok && c.Finished {
			all = append(all, c)
		}
	}
	return all, big.NewInt(int64(len(all))), nil
}

func (s *stubLedger) Campaign(_ context.Context, id *big.Int) (contract.RawCampaign, error) {
	if s.err != nil {
		return contract.RawCampaign{}, s.err
	}
	c, ok := s.campaigns[id.Int64()]
	if !ok {
		return contract.RawCampaign{}, errors.New("unknown campaign")
	}
	return c, nil
}

func (s *stubLedger) Donations(_ context.Context, id *big.Int) ([]contract.RawDonation, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.donations[id.Int64()], nil
}

func (s *stubLedger) PlatformFeeBps(context.Context) (*big.Int, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.feeBps, nil
}

func (s *stubLedger) PendingWithdrawals(context.Context, *big.Int) (*big.Int, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.pending, nil
}

func fixedResolver(l Ledger) Resolver {
	return func(context.Context) (Ledger, error) { return l, nil }
}

func rawCampaign(id int64, images []string, category string) contract.RawCampaign {
	return contract.RawCampaign{
		Id:          big.NewInt(id),
		Title:       "Test",
		OwnerWallet: common.HexToAddress("0x1111111111111111111111111111111111111111"),
		Category:    category,
		ImageURLs:   images,
		Goal:        big.NewInt(100),
		TotalRaised: big.NewInt(40),
		PlatformFee: big.NewInt(2),
	}
}

func TestRepositoryNormalization(t *testing.T) {
	ledger := newStubLedger()
	ledger.campaigns[0] = rawCampaign(0, nil, "MEDICAL")
	ledger.campaigns[1] = rawCampaign(1, []string{"a.jpg", "b.jpg"}, "charity gala")
	repo := NewRepository(fixedResolver(ledger))

	t.Run("empty image list becomes placeholder", func(t *testing.T) {
		c, err := repo.Get(context.Background(), big.NewInt(0))
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if len(c.ImageURLs) != 1 || c.ImageURLs[0] != PlaceholderImage {
			t.Errorf("expected [%s], got %v", PlaceholderImage, c.ImageURLs)
		}
	})

	t.Run("category case folded", func(t *testing.T) {
		c, err := repo.Get(context.Background(), big.NewInt(0))
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if c.Category != CategoryMedical {
			t.Errorf("expected medical, got %s", c.Category)
		}
	})

	t.Run("unknown category maps to other", func(t *testing.T) {
		c, err := repo.Get(context.Background(), big.NewInt(1))
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if c.Category != CategoryOther {
			t.Errorf("expected other, got %s", c.Category)
		}
	})

	t.Run("nil amounts become zero", func(t *testing.T) {
		raw := rawCampaign(0, nil, "other")
		raw.Goal = nil
		raw.TotalRaised = nil
		c := normalizeCampaign(raw)
		if c.Goal == nil || c.Goal.Sign() != 0 {
			t.Errorf("expected zero goal, got %v", c.Goal)
		}
		if c.TotalRaised == nil || c.TotalRaised.Sign() != 0 {
			t.Errorf("expected zero raised, got %v", c.TotalRaised)
		}
	})
}

func TestRepositoryPagination(t *testing.T) {
	ledger := newStubLedger()
	for i := int64(0); i < 25; i++ {
		ledger.campaigns[i] = rawCampaign(i, []string{"x.jpg"}, "community")
	}
	repo := NewRepository(fixedResolver(ledger))

	page, err := repo.ListActive(context.Background(), 0, 10)
	if err != nil {
		t.Fatalf("ListActive failed: %v", err)
	}
	if len(page.Items) != 10 {
		t.Fatalf("expected 10 items, got %d", len(page.Items))
	}
	if page.Total != 25 {
		t.Errorf("expected total 25, got %d", page.Total)
	}
	if !page.HasMore(0, 10) {
		t.Error("expected more pages after the first")
	}

	last, err := repo.ListActive(context.Background(), 20, 10)
	if err != nil {
		t.Fatalf("ListActive failed: %v", err)
	}
	if len(last.Items) != 5 {
		t.Fatalf("expected 5 items on the last page, got %d", len(last.Items))
	}
	if last.HasMore(20, 10) {
		t.Error("expected no pages after the last")
	}
}

func TestRepositoryLoadFailed(t *testing.T) {
	t.Run("ledger error", func(t *testing.T) {
		ledger := newStubLedger()
		ledger.err = errors.New("rpc timeout")
		repo := NewRepository(fixedResolver(ledger))

		_, err := repo.ListActive(context.Background(), 0, 10)
		if !errors.Is(err, ErrLoadFailed) {
			t.Errorf("expected ErrLoadFailed, got %v", err)
		}
	})

	t.Run("resolver error", func(t *testing.T) {
		repo := NewRepository(func(context.Context) (Ledger, error) {
			return nil, errors.New("no endpoint")
		})
		_, err := repo.Get(context.Background(), big.NewInt(1))
		if !errors.Is(err, ErrLoadFailed) {
			t.Errorf("expected ErrLoadFailed, got %v", err)
		}
	})
}

func TestRepositoryResolverRunsPerCall(t *testing.T) {
	ledger := newStubLedger()
	ledger.campaigns[0] = rawCampaign(0, []string{"x.jpg"}, "other")
	calls := 0
	repo := NewRepository(func(context.Context) (Ledger, error) {
		calls++
		return ledger, nil
	})

	for i := 0; i < 3; i++ {
		if _, err := repo.Get(context.Background(), big.NewInt(0)); err != nil {
			t.Fatalf("Get failed: %v", err)
		}
	}
	if calls != 3 {
		t.Errorf("resolver must run on every call, ran %d times for 3 calls", calls)
	}
}

// A confirmed donation is followed by a plain refetch that must observe
// the increased total.
func TestRepositoryRefetchAfterDonation(t *testing.T) {
	ledger := newStubLedger()
	ledger.campaigns[0] = rawCampaign(0, []string{"x.jpg"}, "community")
	repo := NewRepository(fixedResolver(ledger))

	before, err := repo.Get(context.Background(), big.NewInt(0))
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}

	// the ledger applies a donation of net 9 (10 minus 10% fee-equivalent)
	donated := big.NewInt(9)
	updated := ledger.campaigns[0]
	updated.TotalRaised = new(big.Int).Add(updated.TotalRaised, donated)
	ledger.campaigns[0] = updated

	after, err := repo.Get(context.Background(), big.NewInt(0))
	if err != nil {
		t.Fatalf("refetch failed: %v", err)
	}
	diff := new(big.Int).Sub(after.TotalRaised, before.TotalRaised)
	if diff.Cmp(donated) < 0 {
		t.Errorf("expected raised to grow by at least %s, grew by %s", donated, diff)
	}
}

func TestNewestFirst(t *testing.T) {
	ds := []Donation{
		{Amount: big.NewInt(1), Timestamp: 100},
		{Amount: big.NewInt(2), Timestamp: 200},
		{Amount: big.NewInt(3), Timestamp: 300},
	}
	rev := NewestFirst(ds)
	if rev[0].Timestamp != 300 || rev[2].Timestamp != 100 {
		t.Errorf("expected newest-first order, got %v", rev)
	}
	// input order untouched
	if ds[0].Timestamp != 100 {
		t.Error("NewestFirst must not mutate its input")
	}
}
