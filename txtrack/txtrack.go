// Package txtrack drives one write operation through its lifecycle and
// reports milestones on a channel. Trackers are independent: a donation
// and a withdrawal may be in flight at the same time, serialized only
// by the ledger itself.
package txtrack

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	"crowdfund-tui/wallet"
)

// Op identifies which write operation a tracker drives.
type Op int

const (
	OpDonate Op = iota
	OpCreate
	OpWithdraw
)

func (o Op) String() string {
	switch o {
	case OpDonate:
		return "donate"
	case OpCreate:
		return "create"
	case OpWithdraw:
		return "withdraw"
	}
	return "unknown"
}

// Status is the lifecycle position of a tracked transaction.
type Status int

const (
	// StatusBuilt is the initial state before the network accepts
	// anything.
	StatusBuilt Status = iota
	// StatusSubmitted means the network accepted the transaction for
	// inclusion. This can be long before finality.
	StatusSubmitted
	// StatusConfirmed means the ledger reports the transaction mined
	// and successful.
	StatusConfirmed
	// StatusRejected covers pre-submission validation failures and
	// post-submission reverts.
	StatusRejected
)

func (s Status) String() string {
	switch s {
	case StatusBuilt:
		return "built"
	case StatusSubmitted:
		return "submitted"
	case StatusConfirmed:
		return "confirmed"
	case StatusRejected:
		return "rejected"
	}
	return "unknown"
}

// Update is one observable milestone. Hash is set from Submitted
// onward; Receipt only on Confirmed. Cancelled marks a user-declined
// signing, which callers surface as a neutral notice rather than an
// error.
type Update struct {
	Op        Op
	Status    Status
	Hash      common.Hash
	Receipt   *types.Receipt
	Reason    string
	Cancelled bool
}

// Backend is the confirmation capability the tracker polls. Satisfied
// by ethclient.Client.
type Backend interface {
	TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error)
}

// Submit builds, signs, and sends the transaction. It returns once the
// network has accepted it.
type Submit func(ctx context.Context) (*types.Transaction, error)

// Reasoner recovers a revert reason for a mined-but-failed
// transaction. Optional; when nil the tracker reports a generic
// reason.
type Reasoner func(ctx context.Context, tx *types.Transaction, receipt *types.Receipt) string

// DefaultPollInterval paces receipt polling.
const DefaultPollInterval = 2 * time.Second

// Tracker drives one operation. Create with New, start with Run, and
// read milestones from Updates until the channel closes.
type Tracker struct {
	op       Op
	backend  Backend
	reason   Reasoner
	interval time.Duration
	updates  chan Update
}

// Option adjusts tracker behavior.
type Option func(*Tracker)

// WithPollInterval overrides the receipt polling cadence.
func WithPollInterval(d time.Duration) Option {
	return func(t *Tracker) { t.interval = d }
}

// WithReasoner installs a revert-reason recovery hook.
func WithReasoner(r Reasoner) Option {
	return func(t *Tracker) { t.reason = r }
}

// New creates a tracker for one operation.
func New(op Op, backend Backend, opts ...Option) *Tracker {
	t := &Tracker{
		op:       op,
		backend:  backend,
		interval: DefaultPollInterval,
		updates:  make(chan Update, 4),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Updates is the milestone stream. Closed after the terminal update.
func (t *Tracker) Updates() <-chan Update { return t.updates }

// Run executes the operation to a terminal state. It blocks until
// Confirmed or Rejected, so callers run it on its own goroutine and
// watch Updates.
func (t *Tracker) Run(ctx context.Context, submit Submit) {
	defer close(t.updates)

	tx, err := submit(ctx)
	if err != nil {
		if isUserDecline(err) {
			t.emit(Update{Op: t.op, Status: StatusRejected, Reason: err.Error(), Cancelled: true})
			return
		}
		t.emit(Update{Op: t.op, Status: StatusRejected, Reason: err.Error()})
		return
	}

	hash := tx.Hash()
	t.emit(Update{Op: t.op, Status: StatusSubmitted, Hash: hash})

	receipt, err := t.awaitReceipt(ctx, hash)
	if err != nil {
		t.emit(Update{Op: t.op, Status: StatusRejected, Hash: hash, Reason: err.Error()})
		return
	}

	if receipt.Status == types.ReceiptStatusSuccessful {
		t.emit(Update{Op: t.op, Status: StatusConfirmed, Hash: hash, Receipt: receipt})
		return
	}

	reason := "execution reverted"
	if t.reason != nil {
		reason = t.reason(ctx, tx, receipt)
	}
	t.emit(Update{Op: t.op, Status: StatusRejected, Hash: hash, Receipt: receipt, Reason: reason})
}

func (t *Tracker) awaitReceipt(ctx context.Context, hash common.Hash) (*types.Receipt, error) {
	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	for {
		receipt, err := t.backend.TransactionReceipt(ctx, hash)
		switch {
		case err == nil:
			return receipt, nil
		case errors.Is(err, ethereum.NotFound):
			// not mined yet, keep polling
		default:
			return nil, err
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}
	}
}

// emit never blocks: a lifecycle produces at most two milestones and
// the channel buffer holds them all.
func (t *Tracker) emit(u Update) {
	t.updates <- u
}

func isUserDecline(err error) bool {
	if errors.Is(err, wallet.ErrRejected) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "user denied") || strings.Contains(msg, "rejected by user")
}

// friendlyReasons maps revert-reason substrings to user-facing
// messages.
var friendlyReasons = []struct {
	substr  string
	message string
}{
	{"No funds to withdraw", "There are no funds to withdraw for this campaign."},
	{"Not campaign owner", "Only the campaign owner can withdraw funds."},
	{"Campaign not finished", "The campaign has not finished yet."},
	{"Campaign has ended", "This campaign has already ended."},
	{"insufficient funds", "Insufficient balance to cover this transaction."},
	{"User denied", "Transaction cancelled."},
}

// FriendlyReason translates a raw revert reason into a user-facing
// message. Unrecognized reasons fall back to a generic failure line.
func FriendlyReason(raw string) string {
	for _, fr := range friendlyReasons {
		if strings.Contains(raw, fr.substr) {
			return fr.message
		}
	}
	if strings.TrimSpace(raw) == "" {
		return "Transaction failed."
	}
	return "Transaction failed: " + raw
}
