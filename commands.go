package main

import (
	"context"
	"math/big"
	"time"

	"crowdfund-tui/campaign"
	"crowdfund-tui/config"
	"crowdfund-tui/contract"
	"crowdfund-tui/pricefeed"
	"crowdfund-tui/txtrack"
	"crowdfund-tui/wallet"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/ethereum/go-ethereum/core/types"
)

// -------------------- COMMAND FUNCTIONS --------------------
// Functions that return tea.Cmd for async operations

// pageSize is how many campaigns one list page fetches
const pageSize = 6

// acquireEndpoint runs the endpoint fallback probe
func acquireEndpoint(src *ledgerSource) tea.Cmd {
	return func() tea.Msg {
		client, err := src.acquire(context.Background())
		return endpointAcquiredMsg{client: client, err: err}
	}
}

// initLogViewport initializes the log viewport
func initLogViewport() tea.Cmd {
	return func() tea.Msg {
		return logInitMsg{}
	}
}

// loadCampaigns fetches one page of active campaigns
func loadCampaigns(repo *campaign.Repository, seq int, offset uint64) tea.Cmd {
	return func() tea.Msg {
		page, err := repo.ListActive(context.Background(), offset, pageSize)
		return campaignsLoadedMsg{seq: seq, offset: offset, page: page, err: err}
	}
}

// loadCompleted fetches one page of finished campaigns
func loadCompleted(repo *campaign.Repository, seq int, offset uint64) tea.Cmd {
	return func() tea.Msg {
		page, err := repo.ListFinished(context.Background(), offset, pageSize)
		return completedLoadedMsg{seq: seq, offset: offset, page: page, err: err}
	}
}

// loadDetail fetches a campaign snapshot with its donation list and
// pending withdrawal amount. gen tags the result with the session
// generation at request time.
func loadDetail(repo *campaign.Repository, gen int64, id *big.Int) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		c, err := repo.Get(ctx, id)
		if err != nil {
			return detailLoadedMsg{gen: gen, err: err}
		}
		donations, err := repo.ListDonations(ctx, id)
		if err != nil {
			return detailLoadedMsg{gen: gen, err: err}
		}
		pending, err := repo.PendingWithdrawal(ctx, id)
		if err != nil {
			return detailLoadedMsg{gen: gen, err: err}
		}
		return detailLoadedMsg{gen: gen, c: c, donations: donations, pending: pending}
	}
}

// fetchFeeRate loads the platform fee rate
func fetchFeeRate(repo *campaign.Repository) tea.Cmd {
	return func() tea.Msg {
		bps, err := repo.FeeRateBps(context.Background())
		return feeRateMsg{bps: bps, err: err}
	}
}

// fetchPriceRate loads the token USD rate, degrading to 0 on failure
func fetchPriceRate(feed *pricefeed.Client) tea.Cmd {
	return func() tea.Msg {
		rate, err := feed.USDRate(context.Background())
		if err != nil {
			return priceRateMsg{rate: 0}
		}
		return priceRateMsg{rate: rate}
	}
}

// connectWallet runs the connector handshake on the session
func connectWallet(session *wallet.Session, c wallet.Connector) tea.Cmd {
	return func() tea.Msg {
		err := session.Connect(context.Background(), c)
		return sessionChangedMsg{err: err}
	}
}

// autoReconnect replays the persisted connector at startup. Runs after
// the read-only path is already loading.
func autoReconnect(session *wallet.Session, cached wallet.Connector) tea.Cmd {
	return func() tea.Msg {
		err := session.AutoReconnect(context.Background(), cached)
		return sessionChangedMsg{auto: true, err: err}
	}
}

// requestChainSwitch asks the wallet to move to the required chain
func requestChainSwitch(session *wallet.Session) tea.Cmd {
	return func() tea.Msg {
		return chainSwitchMsg{err: session.RequestSwitch(context.Background())}
	}
}

// waitForNotice delivers the next wallet-driven session transition.
// Re-armed by the update loop after each message.
func waitForNotice(ch <-chan wallet.Notice) tea.Cmd {
	return func() tea.Msg {
		n, ok := <-ch
		if !ok {
			return nil
		}
		return sessionNoticeMsg{notice: n}
	}
}

// waitForTxUpdate delivers the next tracker milestone. Re-armed by the
// update loop until the tracker closes the channel. id is the affected
// campaign; for createCampaign it is decoded from the mined receipt.
func waitForTxUpdate(src *ledgerSource, ch <-chan txtrack.Update, id *big.Int) tea.Cmd {
	return func() tea.Msg {
		u, ok := <-ch
		msg := txUpdateMsg{update: u, ch: ch, ok: ok, campaignID: id}
		if ok && u.Status == txtrack.StatusConfirmed && u.Op == txtrack.OpCreate {
			msg.campaignID = createdCampaignID(src, u.Receipt)
		}
		return msg
	}
}

// createdCampaignID decodes the assigned id from a mined
// createCampaign receipt, nil when the event is missing.
func createdCampaignID(src *ledgerSource, receipt *types.Receipt) *big.Int {
	client := src.current()
	if client == nil || receipt == nil {
		return nil
	}
	t := contract.NewTransactor(src.contract, nil, client.Client)
	ev, err := t.ParseCreatedEvent(receipt)
	if err != nil {
		return nil
	}
	return ev.CampaignID
}

// startTracker spawns a tracker for one write operation and returns
// the command that watches its milestones.
func (m *model) startTracker(op txtrack.Op, id *big.Int, submit txtrack.Submit) tea.Cmd {
	src := m.source
	sess := m.session
	tr := txtrack.New(op, src, txtrack.WithReasoner(
		func(ctx context.Context, tx *types.Transaction, receipt *types.Receipt) string {
			client, err := src.acquire(ctx)
			if err != nil {
				return "execution reverted"
			}
			t := contract.NewTransactor(src.contract, nil, client.Client)
			return t.RevertReason(ctx, tx, sess.Account(), receipt.BlockNumber)
		}))
	go tr.Run(context.Background(), submit)
	return waitForTxUpdate(src, tr.Updates(), id)
}

// startDonate submits donate(id) carrying amount as the tx value
func (m *model) startDonate(id, amount *big.Int) tea.Cmd {
	src := m.source
	sess := m.session
	chain := big.NewInt(m.cfg.ChainID)
	return m.startTracker(txtrack.OpDonate, id, func(ctx context.Context) (*types.Transaction, error) {
		t, err := src.transactor(ctx, chain)
		if err != nil {
			return nil, err
		}
		return t.Donate(ctx, sess, id, amount)
	})
}

// startCreate submits createCampaign with the form fields
func (m *model) startCreate(p contract.CreateParams) tea.Cmd {
	src := m.source
	sess := m.session
	chain := big.NewInt(m.cfg.ChainID)
	return m.startTracker(txtrack.OpCreate, nil, func(ctx context.Context) (*types.Transaction, error) {
		t, err := src.transactor(ctx, chain)
		if err != nil {
			return nil, err
		}
		return t.CreateCampaign(ctx, sess, p)
	})
}

// startWithdraw submits withdrawFunds(id)
func (m *model) startWithdraw(id *big.Int) tea.Cmd {
	src := m.source
	sess := m.session
	chain := big.NewInt(m.cfg.ChainID)
	return m.startTracker(txtrack.OpWithdraw, id, func(ctx context.Context) (*types.Transaction, error) {
		t, err := src.transactor(ctx, chain)
		if err != nil {
			return nil, err
		}
		return t.WithdrawFunds(ctx, sess, id)
	})
}

// copyToClipboard copies text to clipboard
func copyToClipboard(text string) tea.Cmd {
	return func() tea.Msg {
		if err := clipboard.WriteAll(text); err == nil {
			return clipboardCopiedMsg{}
		}
		return nil
	}
}

// clearStatusCmd waits then clears the status line
func clearStatusCmd() tea.Cmd {
	return tea.Tick(4*time.Second, func(time.Time) tea.Msg {
		return clearStatusMsg{}
	})
}

// -------------------- MODEL HELPER METHODS --------------------

// addLog adds a log entry with timestamp and type
func (m *model) addLog(logType, message string) {
	if !m.logEnabled || !m.logReady || m.logger == nil {
		return
	}

	switch logType {
	case "info":
		m.logger.Info(message)
	case "success":
		m.logger.Info("✓", "msg", message)
	case "error":
		m.logger.Error(message)
	case "warning":
		m.logger.Warn(message)
	case "debug":
		m.logger.Debug(message)
	default:
		m.logger.Print(message)
	}

	m.updateLogViewport()
}

// updateLogViewport refreshes the viewport content with log output
func (m *model) updateLogViewport() {
	if !m.logReady || m.logBuffer == nil {
		return
	}
	m.logViewport.SetContent(m.logBuffer.String())
	m.logViewport.GotoBottom()
}

// cachedConnector rebuilds the connector named by the persisted
// reconnect marker, nil when there is none or it cannot be rebuilt.
func (m *model) cachedConnector() wallet.Connector {
	if m.cfg.Connector.ID != wallet.KeyfileConnectorID || m.cfg.KeyFile == "" {
		return nil
	}
	return wallet.NewKeyfileConnector(m.cfg.KeyFile, big.NewInt(m.cfg.ChainID))
}

// saveConnectorMarker persists (or clears) the last-connector marker
func (m *model) saveConnectorMarker() {
	m.cfg.Connector = config.Connector{}
	if m.session.Ready() {
		m.cfg.Connector = config.Connector{
			ID:      m.session.ConnectorID(),
			Account: m.session.Account().Hex(),
		}
	}
	config.Save(m.configPath, m.cfg)
}

// isOwner reports whether the connected account owns the campaign
func (m *model) isOwner(c campaign.Campaign) bool {
	return m.session.Ready() && m.session.Account() == c.OwnerWallet
}
