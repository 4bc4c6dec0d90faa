package main

import (
	"fmt"
	"strings"

	"crowdfund-tui/config"
	"crowdfund-tui/helpers"
	"crowdfund-tui/rpc"
	"crowdfund-tui/views/campaigns"
	"crowdfund-tui/views/create"
	"crowdfund-tui/views/detail"
	"crowdfund-tui/views/home"
	logview "crowdfund-tui/views/log"
	"crowdfund-tui/views/settings"
	"crowdfund-tui/wallet"

	"github.com/charmbracelet/lipgloss"
)

// -------------------- VIEW --------------------

func (m *model) globalHeader() string {
	availableWidth := max(0, m.w-8) // Account for panel padding

	// Wallet session, left
	var walletDisplay string
	switch m.session.State() {
	case wallet.StateConnecting:
		walletDisplay = lipgloss.NewStyle().
			Foreground(cMuted).
			Render("Wallet: connecting…")
	case wallet.StateConnected:
		walletDisplay = lipgloss.NewStyle().
			Foreground(cAccent2).
			Bold(true).
			Render("Wallet: " + helpers.FadeString(helpers.ShortenAddr(m.session.Account().Hex()), "#F25D94", "#EDFF82"))
	case wallet.StateWrongChain:
		walletDisplay = lipgloss.NewStyle().
			Foreground(cWarn).
			Bold(true).
			Render("Wallet: " + helpers.ShortenAddr(m.session.Account().Hex()) + " (wrong chain)")
	case wallet.StateFailed:
		walletDisplay = lipgloss.NewStyle().
			Foreground(cWarn).
			Render("Wallet: connection failed")
	default:
		walletDisplay = lipgloss.NewStyle().
			Foreground(cMuted).
			Render("Wallet: not connected")
	}

	// RPC status with live dot, right
	var statusIcon string
	var statusColor lipgloss.Color
	var statusText string

	if len(m.cfg.Endpoints) == 0 {
		statusIcon = "○"
		statusColor = lipgloss.Color("#c01c28")
		statusText = "No RPC"
	} else if m.rpcConnecting {
		statusIcon = "○"
		statusColor = lipgloss.Color("#c01c28")
		statusText = "Connecting..."
	} else if !m.rpcConnected {
		statusIcon = "○"
		statusColor = lipgloss.Color("#c01c28")
		statusText = "All endpoints down"
	} else {
		statusIcon = "●"
		statusColor = cAccent
		statusText = m.endpointName
		if statusText == "" {
			statusText = "Connected"
		}
	}

	rpcDisplay := lipgloss.NewStyle().
		Foreground(statusColor).
		Bold(true).
		Render(statusIcon + " " + statusText)

	// Center title
	titleText := lipgloss.NewStyle().
		Foreground(cAccent).
		Bold(true).
		Render(helpers.FadeString("crowdfund", "#7EE787", "#82CFFD"))

	walletWidth := lipgloss.Width(walletDisplay)
	rpcWidth := lipgloss.Width(rpcDisplay)
	titleWidth := lipgloss.Width(titleText)

	totalOtherWidth := walletWidth + rpcWidth + titleWidth

	var headerLine string
	if totalOtherWidth+4 > availableWidth {
		// Not enough space, stack vertically
		headerLine = walletDisplay + "\n" + titleText + "\n" + rpcDisplay
	} else {
		// Three-column layout: Wallet | Title (centered) | RPC
		remainingSpace := availableWidth - totalOtherWidth
		leftPadding := remainingSpace / 2
		rightPadding := remainingSpace - leftPadding

		leftSpacer := strings.Repeat(" ", max(1, leftPadding))
		rightSpacer := strings.Repeat(" ", max(1, rightPadding))

		headerLine = walletDisplay + leftSpacer + titleText + rightSpacer + rpcDisplay
	}

	separator := lipgloss.NewStyle().
		Foreground(cBorder).
		Render(strings.Repeat("─", availableWidth))

	return headerLine + "\n" + separator
}

// statusLine renders the transient status/copied message, empty when
// nothing is pending.
func (m *model) statusLine() string {
	if m.copiedMsg != "" {
		return lipgloss.NewStyle().Foreground(cAccent).Bold(true).Render(m.copiedMsg)
	}
	if m.statusMsg == "" {
		return ""
	}
	style := lipgloss.NewStyle().Foreground(cAccent2)
	if m.statusBad {
		style = lipgloss.NewStyle().Foreground(cWarn).Bold(true)
	}
	return style.Render(m.statusMsg)
}

func (m *model) listProps(l listState, title string) campaigns.Props {
	return campaigns.Props{
		Title:    title,
		Items:    l.items,
		Selected: l.selected,
		Total:    l.total,
		Offset:   l.offset,
		Preview:  l.preview,
		Rate:     m.rate,
		Symbol:   m.cfg.TokenSymbol,
		Loading:  l.loading,
		ErrMsg:   l.errMsg,
		SpinView: m.spin.View(),
	}
}

func (m *model) detailProps() detail.Props {
	d := m.detail
	p := detail.Props{
		C:            d.c,
		Donations:    d.donations,
		Pending:      d.pending,
		Gallery:      d.gallery,
		FeeBps:       m.feeBps,
		FeeKnown:     m.feeKnown,
		Rate:         m.rate,
		Symbol:       m.cfg.TokenSymbol,
		IsOwner:      m.isOwner(d.c),
		Connected:    m.session.Ready(),
		Loading:      d.loading,
		ErrMsg:       d.errMsg,
		SpinView:     m.spin.View(),
		Donating:     d.donating,
		DonateView:   d.donateInput.View(),
		DonateHint:   d.donateHint,
		DonateErr:    d.donateErr,
		DonateBusy:   m.donateInFlight,
	}
	if d.c.ID != nil {
		p.WithdrawBusy = m.withdrawInFlight[d.c.ID.String()]
	}
	if d.showQR {
		p.QR = rpc.GenerateQRCode(d.c.OwnerWallet.Hex())
	}
	return p
}

func (m *model) View() string {
	globalHdr := m.globalHeader()
	headerPanel := panelStyle.Width(max(0, m.w-2)).Render(globalHdr)

	var pageContent string
	var nav string

	switch m.activePage {
	case config.PageHome:
		pageContent = panelStyle.Width(max(0, m.w-2)).Render(home.Render(m.homeForm))
		nav = home.Nav(m.w - 2)

	case config.PageCampaigns:
		p := m.listProps(m.campaigns, "Campaigns")
		pageContent = panelStyle.Width(max(0, m.w-2)).Render(campaigns.Render(p, m.w-6))
		nav = campaigns.Nav(m.w-2, m.campaigns.hasMore(), m.campaigns.offset > 0)

	case config.PageCompleted:
		p := m.listProps(m.completed, "Completed Campaigns")
		pageContent = panelStyle.Width(max(0, m.w-2)).Render(campaigns.Render(p, m.w-6))
		nav = campaigns.Nav(m.w-2, m.completed.hasMore(), m.completed.offset > 0)

	case config.PageDetail:
		p := m.detailProps()
		pageContent = panelStyle.Width(max(0, m.w-2)).Render(detail.Render(p, m.w-6))
		nav = detail.Nav(m.w-2, p)

	case config.PageCreate:
		var feeLine string
		if m.feeKnown {
			feeLine = fmt.Sprintf("A %.2f%% platform fee is deducted from each donation.", float64(m.feeBps)/100)
		}
		pageContent = panelStyle.Width(max(0, m.w-2)).Render(create.Render(m.createForm, m.createInFlight, m.spin.View(), feeLine))
		nav = create.Nav(m.w-2, m.createInFlight)

	case config.PageSettings:
		var settingsContent string
		if m.settingsMode == "add" && m.endpointForm != nil {
			settingsContent = titleStyle.Render("Add RPC Endpoint") + "\n\n" + m.endpointForm.View()
		} else {
			settingsContent = settings.Render(m.cfg.Endpoints, m.selectedEndpoint, m.liveEndpointURL(), m.walletLine(), m.cfg.ChainID)
		}
		pageContent = panelStyle.Width(max(0, m.w-2)).Render(settingsContent)
		nav = settings.Nav(m.w-2, m.settingsMode)
	}

	sections := []string{headerPanel, pageContent}
	if status := m.statusLine(); status != "" {
		sections = append(sections, lipgloss.NewStyle().PaddingLeft(2).Render(status))
	}
	sections = append(sections, nav)

	if m.logEnabled {
		// Keep the viewport height in sync with the rendered panel
		reservedHeight := 10
		availableHeight := max(5, m.h-reservedHeight)
		maxLogHeight := min(m.h/3, 15)
		m.logViewport.Height = min(availableHeight, maxLogHeight)

		sections = append(sections, logview.Render(m.w, m.h, m.logReady, m.logSpinner.View(), m.logViewport))
	}

	return appStyle.Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

// liveEndpointURL is the URL of the endpoint currently in use, empty
// when none is live.
func (m *model) liveEndpointURL() string {
	if c := m.source.current(); c != nil {
		return c.URL
	}
	return ""
}

func (m *model) walletLine() string {
	switch m.session.State() {
	case wallet.StateConnected:
		return m.session.Account().Hex()
	case wallet.StateWrongChain:
		return m.session.Account().Hex() + " (wrong chain)"
	case wallet.StateConnecting:
		return "connecting…"
	case wallet.StateFailed:
		return "connection failed"
	}
	return "not connected"
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
