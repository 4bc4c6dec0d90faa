package main

import (
	"errors"
	"fmt"
	"math/big"

	"crowdfund-tui/campaign"
	"crowdfund-tui/carousel"
	"crowdfund-tui/config"
	"crowdfund-tui/contract"
	"crowdfund-tui/finance"
	"crowdfund-tui/helpers"
	"crowdfund-tui/txtrack"
	"crowdfund-tui/wallet"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/ethereum/go-ethereum/common"
)

// -------------------- UPDATE --------------------

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case logInitMsg:
		if !m.logEnabled {
			return m, nil
		}
		m.logger = log.NewWithOptions(m.logBuffer, log.Options{
			ReportTimestamp: true,
			TimeFormat:      "15:04:05",
		})
		m.logger.SetLevel(log.DebugLevel)
		m.logger.SetStyles(&log.Styles{
			Timestamp: lipgloss.NewStyle().Foreground(cMuted),
			Caller:    lipgloss.NewStyle().Faint(true),
			Prefix:    lipgloss.NewStyle().Bold(true).Foreground(cAccent2),
			Message:   lipgloss.NewStyle().Foreground(cText),
			Key:       lipgloss.NewStyle().Foreground(cAccent),
			Value:     lipgloss.NewStyle().Foreground(cText),
			Separator: lipgloss.NewStyle().Faint(true),
			Levels: map[log.Level]lipgloss.Style{
				log.DebugLevel: lipgloss.NewStyle().Foreground(cMuted).SetString("DEBUG"),
				log.InfoLevel:  lipgloss.NewStyle().Foreground(cAccent2).SetString("INFO"),
				log.WarnLevel:  lipgloss.NewStyle().Foreground(cWarn).SetString("WARN"),
				log.ErrorLevel: lipgloss.NewStyle().Foreground(lipgloss.Color("#FF0000")).SetString("ERROR"),
			},
		})
		m.logReady = true
		m.addLog("info", "Logger enabled")
		return m, nil

	case tea.WindowSizeMsg:
		m.w, m.h = msg.Width, msg.Height
		if m.logEnabled {
			m.logViewport.Width = max(0, msg.Width-6)
			if m.logReady {
				m.updateLogViewport()
			}
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		var cmds []tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		cmds = append(cmds, cmd)
		if m.logEnabled && !m.logReady {
			m.logSpinner, cmd = m.logSpinner.Update(msg)
			cmds = append(cmds, cmd)
		}
		return m, tea.Batch(cmds...)

	case endpointAcquiredMsg:
		m.rpcConnecting = false
		if msg.err != nil {
			m.rpcConnected = false
			m.endpointName = ""
			m.addLog("error", fmt.Sprintf("No live endpoint: `%s`", msg.err.Error()))
			return m, nil
		}
		m.rpcConnected = true
		m.endpointName = msg.client.Name
		m.addLog("success", fmt.Sprintf("Endpoint `%s` is live (%s)", msg.client.Name, msg.client.URL))
		// the read path is up, load the landing list if one is open
		switch m.activePage {
		case config.PageCampaigns:
			return m, m.reloadCampaigns()
		case config.PageCompleted:
			return m, m.reloadCompleted()
		}
		return m, nil

	case campaignsLoadedMsg:
		if msg.seq != m.campaigns.seq {
			// superseded by a newer request
			return m, nil
		}
		m.campaigns.loading = false
		if msg.err != nil {
			m.campaigns.errMsg = "Failed to load campaigns."
			m.campaigns.items = nil
			m.source.invalidate()
			m.addLog("error", fmt.Sprintf("Campaign list: `%s`", msg.err.Error()))
			return m, nil
		}
		m.campaigns.errMsg = ""
		m.campaigns.items = msg.page.Items
		m.campaigns.total = msg.page.Total
		m.campaigns.offset = msg.offset
		m.campaigns.clampSelection()
		return m, nil

	case completedLoadedMsg:
		if msg.seq != m.completed.seq {
			return m, nil
		}
		m.completed.loading = false
		if msg.err != nil {
			m.completed.errMsg = "Failed to load campaigns."
			m.completed.items = nil
			m.source.invalidate()
			m.addLog("error", fmt.Sprintf("Completed list: `%s`", msg.err.Error()))
			return m, nil
		}
		m.completed.errMsg = ""
		m.completed.items = msg.page.Items
		m.completed.total = msg.page.Total
		m.completed.offset = msg.offset
		m.completed.clampSelection()
		return m, nil

	case detailLoadedMsg:
		if msg.gen != m.session.Generation() || m.detail.id == nil {
			// session moved underneath the read, discard
			return m, nil
		}
		m.detail.loading = false
		if msg.err != nil {
			m.detail.errMsg = "Failed to load campaign."
			m.source.invalidate()
			m.addLog("error", fmt.Sprintf("Campaign detail: `%s`", msg.err.Error()))
			return m, nil
		}
		m.detail.errMsg = ""
		prev := m.detail.c
		m.detail.c = msg.c
		m.detail.donations = msg.donations
		m.detail.pending = msg.pending
		if m.detail.gallery.Count != len(msg.c.ImageURLs) {
			m.detail.gallery = carousel.New(len(msg.c.ImageURLs))
		}
		if sameCampaign(prev, msg.c) && !goalReached(prev) && goalReached(msg.c) {
			return m, m.setStatus("Goal reached! This campaign hit its target. 🎉", false)
		}
		return m, nil

	case feeRateMsg:
		if msg.err != nil {
			m.addLog("warning", fmt.Sprintf("Fee rate unavailable: `%s`", msg.err.Error()))
			return m, nil
		}
		m.feeBps = msg.bps
		m.feeKnown = true
		return m, nil

	case priceRateMsg:
		m.rate = msg.rate
		if msg.rate == 0 {
			m.addLog("warning", "Price feed unavailable, USD figures hidden")
		}
		return m, nil

	case sessionChangedMsg:
		return m.handleSessionChanged(msg)

	case chainSwitchMsg:
		if msg.err != nil {
			return m, m.setStatus("Chain switch refused by wallet.", true)
		}
		return m, tea.Batch(m.setStatus("Switched to the required chain.", false), m.reloadDetail())

	case sessionNoticeMsg:
		return m.handleSessionNotice(msg.notice)

	case txUpdateMsg:
		return m.handleTxUpdate(msg)

	case clipboardCopiedMsg:
		m.copiedMsg = "Copied!"
		return m, clearStatusCmd()

	case clearStatusMsg:
		m.statusMsg = ""
		m.copiedMsg = ""
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	// everything else (cursor blinks, form internals) feeds whichever
	// component is active
	return m.updateActiveComponent(msg)
}

func sameCampaign(a, b campaign.Campaign) bool {
	return a.ID != nil && b.ID != nil && a.ID.Cmp(b.ID) == 0
}

func goalReached(c campaign.Campaign) bool {
	return c.Goal != nil && c.Goal.Sign() > 0 &&
		c.TotalRaised != nil && c.TotalRaised.Cmp(c.Goal) >= 0
}

// clampSelection keeps the cursor inside the page and rebuilds the
// preview carousel for the highlighted campaign.
func (l *listState) clampSelection() {
	if l.selected >= len(l.items) {
		l.selected = helpers.Max(0, len(l.items)-1)
	}
	if len(l.items) > 0 {
		l.preview = carousel.New(len(l.items[l.selected].ImageURLs))
	} else {
		l.preview = carousel.New(0)
	}
}

// -------------------- ASYNC RESULT HANDLERS --------------------

func (m *model) handleSessionChanged(msg sessionChangedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		if errors.Is(msg.err, wallet.ErrRejected) {
			// user cancelled: silent
			m.addLog("debug", "Wallet connect rejected by user")
			return m, nil
		}
		if msg.auto {
			// stale marker, drop it quietly
			m.addLog("warning", fmt.Sprintf("Auto-reconnect failed: `%s`", msg.err.Error()))
			m.cfg.Connector = config.Connector{}
			config.Save(m.configPath, m.cfg)
			return m, nil
		}
		return m, m.setStatus("Wallet connection failed.", true)
	}

	m.saveConnectorMarker()
	acct := helpers.ShortenAddr(m.session.Account().Hex())
	m.addLog("success", fmt.Sprintf("Wallet connected: `%s`", acct))

	cmds := []tea.Cmd{m.reloadDetail()}
	if m.session.State() == wallet.StateWrongChain {
		cmds = append(cmds, m.setStatus("Wallet is on the wrong chain — press g to switch.", true))
	} else {
		cmds = append(cmds, m.setStatus("Connected as "+acct, false))
	}
	return m, tea.Batch(cmds...)
}

func (m *model) handleSessionNotice(n wallet.Notice) (tea.Model, tea.Cmd) {
	cmds := []tea.Cmd{waitForNotice(m.notices)}

	switch n.Kind {
	case wallet.NoticeDisconnected:
		m.saveConnectorMarker()
		m.addLog("warning", "Wallet disconnected externally")
		cmds = append(cmds, m.setStatus("Wallet disconnected.", true), m.reloadDetail())

	case wallet.NoticeAccountChanged:
		m.saveConnectorMarker()
		m.addLog("info", fmt.Sprintf("Wallet account changed: `%s`", helpers.ShortenAddr(n.Account.Hex())))
		// ownership checks are stale, re-derive the open page
		cmds = append(cmds, m.setStatus("Account changed to "+helpers.ShortenAddr(n.Account.Hex()), false), m.reloadDetail())

	case wallet.NoticeChainChanged:
		// full re-initialization: new chain, new endpoint, new data
		m.saveConnectorMarker()
		m.source.invalidate()
		m.rpcConnecting = true
		m.rpcConnected = false
		m.addLog("warning", "Wallet chain changed, reinitializing")
		cmds = append(cmds,
			m.setStatus("Wallet chain changed — session reset.", true),
			acquireEndpoint(m.source),
			fetchFeeRate(m.repo),
			m.reloadDetail(),
		)
		switch m.activePage {
		case config.PageCampaigns:
			cmds = append(cmds, m.reloadCampaigns())
		case config.PageCompleted:
			cmds = append(cmds, m.reloadCompleted())
		}
	}
	return m, tea.Batch(cmds...)
}

func (m *model) handleTxUpdate(msg txUpdateMsg) (tea.Model, tea.Cmd) {
	if !msg.ok {
		// tracker finished and closed its channel
		return m, nil
	}
	u := msg.update
	var cmds []tea.Cmd

	switch u.Status {
	case txtrack.StatusSubmitted:
		m.addLog("info", fmt.Sprintf("%s submitted: `%s`", u.Op, u.Hash.Hex()))
		cmds = append(cmds,
			m.setStatus(fmt.Sprintf("Transaction submitted (%s…), waiting for confirmation.", u.Hash.Hex()[:10]), false),
			waitForTxUpdate(m.source, msg.ch, msg.campaignID),
		)

	case txtrack.StatusConfirmed:
		m.clearTxGuards(u.Op, msg.campaignID)
		m.addLog("success", fmt.Sprintf("%s confirmed: `%s`", u.Op, u.Hash.Hex()))
		cmds = append(cmds, m.setStatus(confirmMessage(u.Op), false))

		// derived figures must reflect the new ledger state: plain
		// refetches, each may fail on its own
		switch u.Op {
		case txtrack.OpCreate:
			if msg.campaignID != nil {
				cmds = append(cmds, m.openDetail(msg.campaignID))
			} else {
				m.activePage = config.PageCampaigns
				cmds = append(cmds, m.reloadCampaigns())
			}
		default:
			cmds = append(cmds, m.reloadDetail())
		}
		cmds = append(cmds, m.refreshLists()...)

	case txtrack.StatusRejected:
		m.clearTxGuards(u.Op, msg.campaignID)
		if u.Cancelled {
			// neutral notice, not an error
			m.addLog("info", fmt.Sprintf("%s cancelled by user", u.Op))
			cmds = append(cmds, m.setStatus("Transaction cancelled.", false))
		} else {
			m.addLog("error", fmt.Sprintf("%s rejected: `%s`", u.Op, u.Reason))
			cmds = append(cmds, m.setStatus(txtrack.FriendlyReason(u.Reason), true))
		}
	}

	return m, tea.Batch(cmds...)
}

func confirmMessage(op txtrack.Op) string {
	switch op {
	case txtrack.OpDonate:
		return "Donation confirmed. Thank you!"
	case txtrack.OpCreate:
		return "Campaign created."
	case txtrack.OpWithdraw:
		return "Funds withdrawn."
	}
	return "Transaction confirmed."
}

// clearTxGuards releases the double-submit guard for a finished
// operation.
func (m *model) clearTxGuards(op txtrack.Op, id *big.Int) {
	switch op {
	case txtrack.OpDonate:
		m.donateInFlight = false
	case txtrack.OpCreate:
		m.createInFlight = false
		m.createForm = nil
	case txtrack.OpWithdraw:
		if id != nil {
			delete(m.withdrawInFlight, id.String())
		}
	}
}

// refreshLists refetches whichever campaign lists have been opened
func (m *model) refreshLists() []tea.Cmd {
	var cmds []tea.Cmd
	if m.activePage == config.PageCampaigns || len(m.campaigns.items) > 0 {
		cmds = append(cmds, m.reloadCampaigns())
	}
	if m.activePage == config.PageCompleted || len(m.completed.items) > 0 {
		cmds = append(cmds, m.reloadCompleted())
	}
	return cmds
}

// -------------------- NAVIGATION HELPERS --------------------

func (m *model) setStatus(s string, bad bool) tea.Cmd {
	m.statusMsg = s
	m.statusBad = bad
	return clearStatusCmd()
}

func (m *model) reloadCampaigns() tea.Cmd {
	m.campaigns.seq++
	m.campaigns.loading = true
	m.campaigns.errMsg = ""
	return loadCampaigns(m.repo, m.campaigns.seq, m.campaigns.offset)
}

func (m *model) reloadCompleted() tea.Cmd {
	m.completed.seq++
	m.completed.loading = true
	m.completed.errMsg = ""
	return loadCompleted(m.repo, m.completed.seq, m.completed.offset)
}

// openDetail navigates to a campaign page and starts its load
func (m *model) openDetail(id *big.Int) tea.Cmd {
	if m.activePage != config.PageDetail {
		m.prevPage = m.activePage
	}
	m.activePage = config.PageDetail
	in := m.detail.donateInput
	in.SetValue("")
	in.Blur()
	m.detail = detailState{
		id:          id,
		gen:         m.session.Generation(),
		loading:     true,
		donateInput: in,
	}
	return loadDetail(m.repo, m.detail.gen, id)
}

// reloadDetail silently refetches the open campaign page, if any
func (m *model) reloadDetail() tea.Cmd {
	if m.detail.id == nil || m.activePage != config.PageDetail {
		return nil
	}
	m.detail.gen = m.session.Generation()
	return loadDetail(m.repo, m.detail.gen, m.detail.id)
}

func (m *model) goHome() {
	m.activePage = config.PageHome
	m.homeForm = newHomeForm(&m.homeSelection)
}

// textInputActive returns true if any text input is currently active
func (m *model) textInputActive() bool {
	if m.activePage == config.PageDetail && m.detail.donating {
		return true
	}
	if m.activePage == config.PageCreate && m.createForm != nil && !m.createInFlight {
		return true
	}
	if m.activePage == config.PageSettings && m.settingsMode == "add" && m.endpointForm != nil {
		return true
	}
	return false
}

// -------------------- KEY HANDLING --------------------

func (m *model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// forms and inputs capture keys first
	if m.activePage == config.PageHome && m.homeForm != nil {
		switch msg.String() {
		case "ctrl+c", "esc", "q":
			return m, tea.Quit
		case "w":
			return m, m.toggleWallet()
		case "l", "L":
			return m, m.toggleLogger()
		}
		return m.updateHomeForm(msg)
	}

	if m.activePage == config.PageCreate && m.createForm != nil && !m.createInFlight {
		if msg.String() == "esc" {
			m.createForm = nil
			m.activePage = config.PageCampaigns
			return m, m.reloadCampaigns()
		}
		return m.updateCreateForm(msg)
	}

	if m.activePage == config.PageSettings && m.settingsMode == "add" && m.endpointForm != nil {
		if msg.String() == "esc" {
			m.settingsMode = "list"
			m.endpointForm = nil
			return m, nil
		}
		return m.updateEndpointForm(msg)
	}

	if m.activePage == config.PageDetail && m.detail.donating {
		return m.handleDonateKey(msg)
	}

	// global keys
	if !m.textInputActive() {
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "l", "L":
			return m, m.toggleLogger()
		case "w":
			return m, m.toggleWallet()
		case "g":
			if m.session.State() == wallet.StateWrongChain {
				return m, requestChainSwitch(m.session)
			}
		case "pageup", "pagedown":
			if m.logEnabled && m.logReady {
				var cmd tea.Cmd
				m.logViewport, cmd = m.logViewport.Update(msg)
				return m, cmd
			}
		}
	}

	// page-specific behavior
	switch m.activePage {
	case config.PageCampaigns:
		return m.handleListKey(msg, &m.campaigns, true)
	case config.PageCompleted:
		return m.handleListKey(msg, &m.completed, false)
	case config.PageDetail:
		return m.handleDetailKey(msg)
	case config.PageSettings:
		return m.handleSettingsKey(msg)
	}
	return m, nil
}

func (m *model) handleListKey(msg tea.KeyMsg, l *listState, active bool) (tea.Model, tea.Cmd) {
	reload := m.reloadCampaigns
	if !active {
		reload = m.reloadCompleted
	}

	switch msg.String() {
	case "up", "k":
		if l.selected > 0 {
			l.selected--
			l.clampSelection()
		}
	case "down", "j":
		if l.selected < len(l.items)-1 {
			l.selected++
			l.clampSelection()
		}
	case "left":
		l.preview = l.preview.Advance(-1)
	case "right":
		l.preview = l.preview.Advance(1)
	case "enter":
		if l.selected < len(l.items) {
			return m, m.openDetail(l.items[l.selected].ID)
		}
	case "n":
		if l.hasMore() {
			l.offset += pageSize
			l.selected = 0
			return m, reload()
		}
	case "p":
		if l.offset > 0 {
			if l.offset < pageSize {
				l.offset = 0
			} else {
				l.offset -= pageSize
			}
			l.selected = 0
			return m, reload()
		}
	case "r":
		return m, reload()
	case "c":
		return m, m.gotoCreate()
	case "h", "esc":
		m.goHome()
	}
	return m, nil
}

// hasMore reports whether records exist past the loaded page
func (l *listState) hasMore() bool {
	return l.offset+uint64(len(l.items)) < l.total
}

func (m *model) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	d := &m.detail
	switch msg.String() {
	case "left":
		d.gallery = d.gallery.Advance(-1)
	case "right":
		d.gallery = d.gallery.Advance(1)
	case "d":
		if m.donateInFlight {
			return m, m.setStatus("A donation is already in flight.", true)
		}
		if d.c.Finished {
			return m, m.setStatus("This campaign has ended.", true)
		}
		if !m.session.Ready() {
			return m, m.setStatus("Connect a wallet first (press w).", true)
		}
		d.donating = true
		d.donateErr = ""
		d.donateHintRefresh(m.feeBps, m.feeKnown, m.cfg.TokenSymbol)
		d.donateInput.SetValue("")
		return m, d.donateInput.Focus()
	case "f":
		return m.tryWithdraw()
	case "q":
		d.showQR = !d.showQR
	case "y":
		if d.c.OwnerWallet != (common.Address{}) {
			m.addLog("info", "Copied owner wallet to clipboard")
			return m, copyToClipboard(d.c.OwnerWallet.Hex())
		}
	case "r":
		d.loading = d.c.ID == nil
		return m, m.reloadDetail()
	case "esc", "h":
		m.activePage = m.prevPage
		switch m.prevPage {
		case config.PageCampaigns:
			return m, m.reloadCampaigns()
		case config.PageCompleted:
			return m, m.reloadCompleted()
		default:
			m.goHome()
		}
	}
	return m, nil
}

func (m *model) tryWithdraw() (tea.Model, tea.Cmd) {
	d := &m.detail
	if d.c.ID == nil || !m.isOwner(d.c) {
		return m, nil
	}
	if !d.c.Finished {
		return m, m.setStatus("The campaign has not finished yet.", true)
	}
	if d.pending == nil || d.pending.Sign() <= 0 {
		return m, m.setStatus("There are no funds to withdraw.", true)
	}
	key := d.c.ID.String()
	if m.withdrawInFlight[key] {
		// guard against a double submit while the first is pending
		return m, m.setStatus("A withdrawal is already in flight.", true)
	}
	m.withdrawInFlight[key] = true
	m.addLog("info", fmt.Sprintf("Withdrawing from campaign %s", key))
	return m, m.startWithdraw(d.c.ID)
}

func (m *model) handleDonateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	d := &m.detail
	switch msg.String() {
	case "esc":
		d.donating = false
		d.donateErr = ""
		d.donateInput.Blur()
		return m, nil
	case "enter":
		amount, err := parseAmount(d.donateInput.Value())
		if err != nil {
			d.donateErr = err.Error()
			return m, nil
		}
		d.donating = false
		d.donateErr = ""
		d.donateInput.Blur()
		m.donateInFlight = true
		m.addLog("info", fmt.Sprintf("Donating %s to campaign %s", d.donateInput.Value(), d.c.ID))
		return m, m.startDonate(d.c.ID, amount)
	}

	var cmd tea.Cmd
	d.donateInput, cmd = d.donateInput.Update(msg)
	d.donateHintRefresh(m.feeBps, m.feeKnown, m.cfg.TokenSymbol)
	return m, cmd
}

// donateHintRefresh recomputes the fee/net preview under the input
func (d *detailState) donateHintRefresh(feeBps int64, feeKnown bool, symbol string) {
	d.donateHint = ""
	if !feeKnown {
		return
	}
	amount, err := parseAmount(d.donateInput.Value())
	if err != nil {
		return
	}
	fee := finance.PlatformFee(amount, feeBps)
	net := finance.NetAmount(amount, feeBps)
	d.donateHint = fmt.Sprintf("fee %s %s · campaign receives %s %s",
		finance.FormatAmount(fee), symbol, finance.FormatAmount(net), symbol)
}

func (m *model) handleSettingsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.selectedEndpoint > 0 {
			m.selectedEndpoint--
		}
	case "down", "j":
		if m.selectedEndpoint < len(m.cfg.Endpoints)-1 {
			m.selectedEndpoint++
		}
	case "K":
		// move the selected endpoint up in priority
		i := m.selectedEndpoint
		if i > 0 {
			m.cfg.Endpoints[i-1], m.cfg.Endpoints[i] = m.cfg.Endpoints[i], m.cfg.Endpoints[i-1]
			m.selectedEndpoint--
			m.saveEndpoints()
		}
	case "J":
		i := m.selectedEndpoint
		if i >= 0 && i < len(m.cfg.Endpoints)-1 {
			m.cfg.Endpoints[i+1], m.cfg.Endpoints[i] = m.cfg.Endpoints[i], m.cfg.Endpoints[i+1]
			m.selectedEndpoint++
			m.saveEndpoints()
		}
	case "a":
		m.settingsMode = "add"
		m.endpointVals = &endpointValues{}
		m.endpointForm = newEndpointForm(m.endpointVals)
	case "d":
		i := m.selectedEndpoint
		if i >= 0 && i < len(m.cfg.Endpoints) {
			name := m.cfg.Endpoints[i].Name
			m.cfg.Endpoints = append(m.cfg.Endpoints[:i], m.cfg.Endpoints[i+1:]...)
			if m.selectedEndpoint >= len(m.cfg.Endpoints) {
				m.selectedEndpoint = helpers.Max(0, len(m.cfg.Endpoints)-1)
			}
			m.saveEndpoints()
			m.addLog("info", fmt.Sprintf("Removed endpoint `%s`", name))
		}
	case "R":
		m.source.invalidate()
		m.rpcConnecting = true
		m.rpcConnected = false
		return m, acquireEndpoint(m.source)
	case "h", "esc":
		m.goHome()
	}
	return m, nil
}

// saveEndpoints persists the candidate list and restarts the fallback
// probe under the new order.
func (m *model) saveEndpoints() {
	config.Save(m.configPath, m.cfg)
	m.source.setEndpoints(m.cfg.Endpoints)
	m.rpcConnected = false
}

func (m *model) gotoCreate() tea.Cmd {
	if !m.session.Ready() {
		return m.setStatus("Connect a wallet first (press w).", true)
	}
	m.activePage = config.PageCreate
	m.createVals = &createValues{}
	m.createForm = newCreateForm(m.createVals, m.cfg.TokenSymbol)
	return nil
}

// toggleWallet connects or disconnects the configured wallet
func (m *model) toggleWallet() tea.Cmd {
	if m.session.Ready() {
		m.session.Disconnect()
		m.saveConnectorMarker()
		m.addLog("info", "Wallet disconnected")
		return tea.Batch(m.setStatus("Wallet disconnected.", false), m.reloadDetail())
	}
	if m.cfg.KeyFile == "" {
		return m.setStatus("No key file configured — set key_file in the config.", true)
	}
	return connectWallet(m.session, wallet.NewKeyfileConnector(m.cfg.KeyFile, big.NewInt(m.cfg.ChainID)))
}

// toggleLogger flips the debug log panel and persists the flag
func (m *model) toggleLogger() tea.Cmd {
	m.logEnabled = !m.logEnabled
	m.cfg.Logger = m.logEnabled
	config.Save(m.configPath, m.cfg)
	if m.logEnabled {
		if m.w > 0 {
			m.logViewport.Width = m.w - 6
		}
		m.logReady = false
		return tea.Batch(initLogViewport(), m.logSpinner.Tick)
	}
	if m.logBuffer != nil {
		m.logBuffer.Reset()
	}
	m.logReady = false
	return nil
}

// -------------------- FORM PLUMBING --------------------

func (m *model) updateHomeForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := m.homeForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.homeForm = f
		if f.State == huh.StateCompleted {
			sel := m.homeSelection
			m.homeForm = newHomeForm(&m.homeSelection)
			switch sel {
			case "campaigns":
				m.activePage = config.PageCampaigns
				return m, m.reloadCampaigns()
			case "completed":
				m.activePage = config.PageCompleted
				return m, m.reloadCompleted()
			case "create":
				return m, m.gotoCreate()
			case "settings":
				m.activePage = config.PageSettings
				m.settingsMode = "list"
			}
			return m, nil
		}
		if f.State == huh.StateAborted {
			return m, tea.Quit
		}
	}
	return m, cmd
}

func (m *model) updateCreateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := m.createForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.createForm = f
		if f.State == huh.StateCompleted {
			return m.submitCreate()
		}
		if f.State == huh.StateAborted {
			m.createForm = nil
			m.activePage = config.PageCampaigns
			return m, m.reloadCampaigns()
		}
	}
	return m, cmd
}

func (m *model) submitCreate() (tea.Model, tea.Cmd) {
	v := m.createVals
	goal, err := parseAmount(v.Goal)
	if err != nil {
		// the form validator already rejects this, belt and braces
		m.createForm = newCreateForm(m.createVals, m.cfg.TokenSymbol)
		return m, m.setStatus("Invalid goal amount.", true)
	}
	p := contract.CreateParams{
		Title:        v.Title,
		Description:  v.Description,
		ImageURLs:    splitImageURLs(v.Images),
		Goal:         goal,
		OwnerName:    v.OwnerName,
		OwnerContact: v.OwnerContact,
		Category:     v.Category,
	}
	m.createInFlight = true
	m.addLog("info", fmt.Sprintf("Creating campaign `%s`", p.Title))
	return m, tea.Batch(m.setStatus("Submitting campaign…", false), m.startCreate(p))
}

func (m *model) updateEndpointForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := m.endpointForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.endpointForm = f
		if f.State == huh.StateCompleted {
			v := m.endpointVals
			m.cfg.Endpoints = append(m.cfg.Endpoints, config.Endpoint{Name: v.Name, URL: v.URL})
			m.saveEndpoints()
			m.addLog("success", fmt.Sprintf("Added endpoint `%s` (%s)", v.Name, v.URL))
			m.settingsMode = "list"
			m.endpointForm = nil
			m.rpcConnecting = true
			return m, acquireEndpoint(m.source)
		}
		if f.State == huh.StateAborted {
			m.settingsMode = "list"
			m.endpointForm = nil
			return m, nil
		}
	}
	return m, cmd
}

// updateActiveComponent routes non-key messages (blinks, form
// internals) to whichever interactive component owns the focus.
func (m *model) updateActiveComponent(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch {
	case m.activePage == config.PageHome && m.homeForm != nil:
		form, cmd := m.homeForm.Update(msg)
		if f, ok := form.(*huh.Form); ok {
			m.homeForm = f
		}
		return m, cmd
	case m.activePage == config.PageCreate && m.createForm != nil && !m.createInFlight:
		form, cmd := m.createForm.Update(msg)
		if f, ok := form.(*huh.Form); ok {
			m.createForm = f
		}
		return m, cmd
	case m.activePage == config.PageSettings && m.endpointForm != nil:
		form, cmd := m.endpointForm.Update(msg)
		if f, ok := form.(*huh.Form); ok {
			m.endpointForm = f
		}
		return m, cmd
	case m.activePage == config.PageDetail && m.detail.donating:
		var cmd tea.Cmd
		m.detail.donateInput, cmd = m.detail.donateInput.Update(msg)
		return m, cmd
	}
	return m, nil
}
