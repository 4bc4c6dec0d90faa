package main

import (
	"math/big"

	"crowdfund-tui/campaign"
	"crowdfund-tui/rpc"
	"crowdfund-tui/txtrack"
	"crowdfund-tui/wallet"
)

// -------------------- TEA MESSAGES --------------------
// All custom message types for The Elm Architecture

// logInitMsg signals that log viewport should be initialized
type logInitMsg struct{}

// clipboardCopiedMsg indicates clipboard copy completed
type clipboardCopiedMsg struct{}

// clearStatusMsg clears the transient status line
type clearStatusMsg struct{}

// endpointAcquiredMsg contains the result of the endpoint fallback probe
type endpointAcquiredMsg struct {
	client *rpc.Client
	err    error
}

// campaignsLoadedMsg contains one page of active campaigns. seq is the
// request sequence number; results of superseded requests are dropped.
type campaignsLoadedMsg struct {
	seq    int
	offset uint64
	page   campaign.Page
	err    error
}

// completedLoadedMsg contains one page of finished campaigns
type completedLoadedMsg struct {
	seq    int
	offset uint64
	page   campaign.Page
	err    error
}

// detailLoadedMsg contains a full campaign snapshot. gen is the session
// generation at request time; stale generations are dropped.
type detailLoadedMsg struct {
	gen       int64
	c         campaign.Campaign
	donations []campaign.Donation
	pending   *big.Int
	err       error
}

// feeRateMsg contains the platform fee rate in basis points
type feeRateMsg struct {
	bps int64
	err error
}

// priceRateMsg contains the token's USD rate, 0 when unavailable
type priceRateMsg struct {
	rate float64
}

// sessionChangedMsg contains the result of a connect/reconnect attempt
type sessionChangedMsg struct {
	auto bool // true when triggered by startup auto-reconnect
	err  error
}

// chainSwitchMsg contains the result of a chain switch request
type chainSwitchMsg struct {
	err error
}

// sessionNoticeMsg wraps a wallet-driven session transition
type sessionNoticeMsg struct {
	notice wallet.Notice
}

// txUpdateMsg carries one tracker milestone plus the channel to re-arm
// on. campaignID is nil for createCampaign until the event is decoded.
type txUpdateMsg struct {
	update     txtrack.Update
	campaignID *big.Int
	ch         <-chan txtrack.Update
	ok         bool
}
