package contract

import (
	"bytes"
	"context"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

var testContractAddr = common.HexToAddress("0x00000000000000000000000000000000000C0FFE")

// fakeBackend answers eth_call by method selector with pre-packed
// return data and records submitted transactions.
type fakeBackend struct {
	responses map[[4]byte][]byte
	sent      []*types.Transaction
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{responses: make(map[[4]byte][]byte)}
}

func (f *fakeBackend) stub(t *testing.T, method string, outs ...any) {
	t.Helper()
	m, ok := crowdfundABI.Methods[method]
	if !ok {
		t.Fatalf("unknown method %q", method)
	}
	data, err := m.Outputs.Pack(outs...)
	if err != nil {
		t.Fatalf("pack outputs for %s: %v", method, err)
	}
	var sel [4]byte
	copy(sel[:], m.ID)
	f.responses[sel] = data
}

func (f *fakeBackend) CallContract(_ context.Context, msg ethereum.CallMsg, _ *big.Int) ([]byte, error) {
	var sel [4]byte
	copy(sel[:], msg.Data)
	return f.responses[sel], nil
}

func (f *fakeBackend) PendingNonceAt(context.Context, common.Address) (uint64, error) {
	return 7, nil
}

func (f *fakeBackend) SuggestGasPrice(context.Context) (*big.Int, error) {
	return big.NewInt(1_000_000_000), nil
}

func (f *fakeBackend) EstimateGas(context.Context, ethereum.CallMsg) (uint64, error) {
	return 90_000, nil
}

func (f *fakeBackend) SendTransaction(_ context.Context, tx *types.Transaction) error {
	f.sent = append(f.sent, tx)
	return nil
}

// passSigner returns transactions unsigned; the fake backend does not
// verify signatures.
type passSigner struct{ addr common.Address }

func (s passSigner) Account() common.Address { return s.addr }
func (s passSigner) SignTx(tx *types.Transaction, _ *big.Int) (*types.Transaction, error) {
	return tx, nil
}

func sampleCampaign(id int64) RawCampaign {
	return RawCampaign{
		Id:           big.NewInt(id),
		Title:        "Clean Water",
		Description:  "Wells for the village",
		OwnerName:    "Ayu",
		OwnerContact: "ayu@example.org",
		OwnerWallet:  common.HexToAddress("0x1111111111111111111111111111111111111111"),
		Category:     "community",
		ImageURLs:    []string{"https://img.example/a.jpg", "https://img.example/b.jpg"},
		Goal:         big.NewInt(100),
		TotalRaised:  big.NewInt(40),
		PlatformFee:  big.NewInt(2),
		Finished:     false,
		EndTimestamp: big.NewInt(0),
	}
}

func TestCallerCampaign(t *testing.T) {
	backend := newFakeBackend()
	backend.stub(t, "getCampaign", sampleCampaign(3))
	caller := NewCaller(testContractAddr, backend)

	c, err := caller.Campaign(context.Background(), big.NewInt(3))
	if err != nil {
		t.Fatalf("Campaign failed: %v", err)
	}
	if c.Id.Int64() != 3 {
		t.Errorf("expected id 3, got %s", c.Id)
	}
	if c.Title != "Clean Water" {
		t.Errorf("unexpected title %q", c.Title)
	}
	if len(c.ImageURLs) != 2 {
		t.Errorf("expected 2 images, got %d", len(c.ImageURLs))
	}
	if c.TotalRaised.Int64() != 40 || c.Goal.Int64() != 100 {
		t.Errorf("unexpected amounts raised=%s goal=%s", c.TotalRaised, c.Goal)
	}
}

func TestCallerPaginated(t *testing.T) {
	backend := newFakeBackend()
	backend.stub(t, "getActiveCampaignsPaginated",
		[]RawCampaign{sampleCampaign(1), sampleCampaign(2)}, big.NewInt(12))
	caller := NewCaller(testContractAddr, backend)

	items, total, err := caller.ActiveCampaigns(context.Background(), 0, 10)
	if err != nil {
		t.Fatalf("ActiveCampaigns failed: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 campaigns, got %d", len(items))
	}
	if items[1].Id.Int64() != 2 {
		t.Errorf("expected second id 2, got %s", items[1].Id)
	}
	if total.Int64() != 12 {
		t.Errorf("expected total 12, got %s", total)
	}
}

func TestCallerDonations(t *testing.T) {
	backend := newFakeBackend()
	backend.stub(t, "getDonations", []RawDonation{
		{Donor: common.HexToAddress("0x2222222222222222222222222222222222222222"), Amount: big.NewInt(5), Timestamp: big.NewInt(1700000000)},
	})
	caller := NewCaller(testContractAddr, backend)

	ds, err := caller.Donations(context.Background(), big.NewInt(1))
	if err != nil {
		t.Fatalf("Donations failed: %v", err)
	}
	if len(ds) != 1 {
		t.Fatalf("expected 1 donation, got %d", len(ds))
	}
	if ds[0].Amount.Int64() != 5 {
		t.Errorf("unexpected amount %s", ds[0].Amount)
	}
	if ds[0].Timestamp.Int64() != 1700000000 {
		t.Errorf("unexpected timestamp %s", ds[0].Timestamp)
	}
}

func TestCallerScalars(t *testing.T) {
	backend := newFakeBackend()
	backend.stub(t, "getPlatformFeePercent", big.NewInt(250))
	backend.stub(t, "pendingWithdrawals", big.NewInt(975))
	caller := NewCaller(testContractAddr, backend)

	fee, err := caller.PlatformFeeBps(context.Background())
	if err != nil {
		t.Fatalf("PlatformFeeBps failed: %v", err)
	}
	if fee.Int64() != 250 {
		t.Errorf("expected 250 bps, got %s", fee)
	}

	pending, err := caller.PendingWithdrawals(context.Background(), big.NewInt(1))
	if err != nil {
		t.Fatalf("PendingWithdrawals failed: %v", err)
	}
	if pending.Int64() != 975 {
		t.Errorf("expected 975 pending, got %s", pending)
	}
}

func TestTransactorDonate(t *testing.T) {
	backend := newFakeBackend()
	tr := NewTransactor(testContractAddr, big.NewInt(4818), backend)
	signer := passSigner{addr: common.HexToAddress("0x3333333333333333333333333333333333333333")}

	tx, err := tr.Donate(context.Background(), signer, big.NewInt(9), big.NewInt(1000))
	if err != nil {
		t.Fatalf("Donate failed: %v", err)
	}
	if len(backend.sent) != 1 {
		t.Fatalf("expected 1 submitted tx, got %d", len(backend.sent))
	}
	if tx.Value().Int64() != 1000 {
		t.Errorf("expected value 1000, got %s", tx.Value())
	}
	if tx.Nonce() != 7 {
		t.Errorf("expected nonce 7, got %d", tx.Nonce())
	}
	if *tx.To() != testContractAddr {
		t.Errorf("expected to=%s, got %s", testContractAddr, tx.To())
	}
	if !bytes.Equal(tx.Data()[:4], crowdfundABI.Methods["donate"].ID) {
		t.Error("tx data does not start with the donate selector")
	}
}

func TestTransactorCreateCampaign(t *testing.T) {
	backend := newFakeBackend()
	tr := NewTransactor(testContractAddr, big.NewInt(4818), backend)
	signer := passSigner{addr: common.HexToAddress("0x3333333333333333333333333333333333333333")}

	tx, err := tr.CreateCampaign(context.Background(), signer, CreateParams{
		Title:        "Books",
		Description:  "School library",
		ImageURLs:    []string{"https://img.example/c.jpg"},
		Goal:         big.NewInt(500),
		OwnerName:    "Budi",
		OwnerContact: "budi@example.org",
		Category:     "education",
	})
	if err != nil {
		t.Fatalf("CreateCampaign failed: %v", err)
	}
	if tx.Value() != nil && tx.Value().Sign() != 0 {
		t.Errorf("createCampaign must not carry value, got %s", tx.Value())
	}
	if !bytes.Equal(tx.Data()[:4], crowdfundABI.Methods["createCampaign"].ID) {
		t.Error("tx data does not start with the createCampaign selector")
	}
}

func TestParseCreatedEvent(t *testing.T) {
	tr := NewTransactor(testContractAddr, big.NewInt(4818), newFakeBackend())
	ev := crowdfundABI.Events["CampaignCreated"]

	owner := common.HexToAddress("0x4444444444444444444444444444444444444444")
	feeData, err := ev.Inputs.NonIndexed().Pack(big.NewInt(25))
	if err != nil {
		t.Fatalf("pack event data: %v", err)
	}

	receipt := &types.Receipt{
		Status: types.ReceiptStatusSuccessful,
		Logs: []*types.Log{
			{
				// unrelated log from another contract
				Address: common.HexToAddress("0x5555555555555555555555555555555555555555"),
				Topics:  []common.Hash{ev.ID},
			},
			{
				Address: testContractAddr,
				Topics: []common.Hash{
					ev.ID,
					common.BigToHash(big.NewInt(42)),
					common.BytesToHash(owner.Bytes()),
				},
				Data: feeData,
			},
		},
	}

	got, err := tr.ParseCreatedEvent(receipt)
	if err != nil {
		t.Fatalf("ParseCreatedEvent failed: %v", err)
	}
	if got.CampaignID.Int64() != 42 {
		t.Errorf("expected campaign id 42, got %s", got.CampaignID)
	}
	if got.Owner != owner {
		t.Errorf("expected owner %s, got %s", owner, got.Owner)
	}
	if got.PlatformFee.Int64() != 25 {
		t.Errorf("expected platform fee 25, got %s", got.PlatformFee)
	}

	_, err = tr.ParseCreatedEvent(&types.Receipt{})
	if err != ErrNoCreatedEvent {
		t.Errorf("expected ErrNoCreatedEvent for empty receipt, got %v", err)
	}
}
