package detail

import (
	"fmt"
	"math/big"
	"strings"

	"crowdfund-tui/campaign"
	"crowdfund-tui/carousel"
	"crowdfund-tui/finance"
	"crowdfund-tui/helpers"
	"crowdfund-tui/styles"
	"crowdfund-tui/views/campaigns"

	"github.com/charmbracelet/lipgloss"
)

// maxDonationsShown caps the donation list rendered on the page
const maxDonationsShown = 8

// Props carries everything the campaign detail page needs to render
type Props struct {
	C         campaign.Campaign
	Donations []campaign.Donation // ledger order; rendered newest-first
	Pending   *big.Int
	Gallery   carousel.Carousel
	FeeBps    int64
	FeeKnown  bool
	Rate      float64
	Symbol    string

	IsOwner      bool
	WithdrawBusy bool
	Connected    bool

	Loading  bool
	ErrMsg   string
	SpinView string

	Donating   bool
	DonateView string
	DonateHint string
	DonateErr  string
	DonateBusy bool

	QR string // rendered owner-wallet QR, empty = hidden
}

// Nav returns the navigation bar for the detail view
func Nav(width int, p Props) string {
	if p.Donating {
		left := strings.Join([]string{
			styles.Key("Enter") + " donate",
			styles.Key("Esc") + " cancel",
		}, "   ")
		return styles.NavStyle.Width(width).Render(left)
	}

	keys := []string{
		styles.Key("←/→") + " images",
	}
	if p.Connected && !p.C.Finished {
		keys = append(keys, styles.Key("d")+" donate")
	}
	if p.IsOwner && p.C.Finished && p.Pending != nil && p.Pending.Sign() > 0 && !p.WithdrawBusy {
		keys = append(keys, styles.Key("f")+" withdraw")
	}
	keys = append(keys,
		styles.Key("q")+" qr",
		styles.Key("y")+" copy owner",
		styles.Key("r")+" reload",
		styles.Key("Esc")+" back",
	)
	return styles.NavStyle.Width(width).Render(strings.Join(keys, "   "))
}

func muted(s string) string {
	return lipgloss.NewStyle().Foreground(styles.CMuted).Render(s)
}

// Render renders the campaign detail page
func Render(p Props, width int) string {
	if p.Loading {
		return styles.TitleStyle.Render("Campaign") + "\n\n" + p.SpinView + " loading…"
	}
	if p.ErrMsg != "" {
		return styles.TitleStyle.Render("Campaign") + "\n\n" +
			styles.BadStyle.Render(p.ErrMsg) + "\n\n" +
			muted("Press ") + styles.Key("r") + muted(" to retry.")
	}

	c := p.C
	var lines []string

	head := styles.TitleStyle.Render(c.Title) + "  " + c.Category.Display()
	if c.Finished {
		head += "  " + lipgloss.NewStyle().Foreground(styles.CWarn).Render("[finished]")
	}
	lines = append(lines, head)

	owner := c.OwnerName
	if owner == "" {
		owner = "Anonymous"
	}
	ownerLine := fmt.Sprintf("by %s · %s", owner, helpers.ShortenAddr(c.OwnerWallet.Hex()))
	if c.OwnerContact != "" {
		ownerLine += " · " + c.OwnerContact
	}
	lines = append(lines, muted(ownerLine))
	if c.EndTimestamp != 0 {
		lines = append(lines, muted("ends "+helpers.FormatTimestamp(c.EndTimestamp)))
	}
	lines = append(lines, "")

	// hero gallery
	if p.Gallery.Count > 0 && p.Gallery.Current < len(c.ImageURLs) {
		img := c.ImageURLs[p.Gallery.Current]
		if p.Gallery.HasControls() {
			img = fmt.Sprintf("◂ %s ▸  (%d/%d)", img, p.Gallery.Current+1, p.Gallery.Count)
		}
		lines = append(lines, "🖼  "+img, "")
	}

	if c.Description != "" {
		lines = append(lines, lipgloss.NewStyle().Foreground(styles.CText).Width(helpers.Max(20, width-4)).Render(c.Description), "")
	}

	// funding
	pct := finance.ProgressPercent(c.TotalRaised, c.Goal)
	usd := finance.FormatUSD(finance.ToDisplayUnit(c.TotalRaised), p.Rate)
	lines = append(lines, fmt.Sprintf("%s / %s %s%s  ·  %s",
		finance.FormatAmount(c.TotalRaised), finance.FormatAmount(c.Goal), p.Symbol, usd, finance.FormatPercent(pct)))
	lines = append(lines, campaigns.ProgressBar(pct, helpers.Min(50, helpers.Max(10, width-10))))
	if p.FeeKnown {
		lines = append(lines, muted(fmt.Sprintf("platform fee %.2f%%", float64(p.FeeBps)/100)))
	}
	lines = append(lines, "")

	// owner withdrawal
	if p.IsOwner {
		switch {
		case p.WithdrawBusy:
			lines = append(lines, p.SpinView+" withdrawal in flight…", "")
		case c.Finished && p.Pending != nil && p.Pending.Sign() > 0:
			lines = append(lines, styles.GoodStyle.Render(
				"You can withdraw "+helpers.FormatToken(p.Pending, 18, p.Symbol))+
				muted("  press ")+styles.Key("f"), "")
		case c.Finished:
			lines = append(lines, muted("Nothing left to withdraw."), "")
		}
	}

	// donate box
	if p.Donating {
		box := p.DonateView
		if p.DonateHint != "" {
			box += "\n" + muted(p.DonateHint)
		}
		if p.DonateErr != "" {
			box += "\n" + styles.BadStyle.Render(p.DonateErr)
		}
		lines = append(lines, styles.PanelStyle.BorderForeground(styles.CAccent2).Render(box), "")
	} else if p.DonateBusy {
		lines = append(lines, p.SpinView+" donation in flight…", "")
	}

	// donations, newest first
	lines = append(lines, styles.TitleStyle.Render(fmt.Sprintf("Donations (%d)", len(p.Donations))))
	if len(p.Donations) == 0 {
		lines = append(lines, muted("Be the first to donate."))
	} else {
		for i, d := range campaign.NewestFirst(p.Donations) {
			if i == maxDonationsShown {
				lines = append(lines, muted(fmt.Sprintf("… and %d more", len(p.Donations)-maxDonationsShown)))
				break
			}
			lines = append(lines, fmt.Sprintf("  %s  %s  %s",
				helpers.FadeString(helpers.ShortenAddr(d.Donor.Hex()), "#F25D94", "#EDFF82"),
				helpers.FormatToken(d.Amount, 18, p.Symbol),
				muted(helpers.FormatTimestamp(d.Timestamp))))
		}
	}

	if p.QR != "" {
		lines = append(lines, "", muted("Owner wallet:"), p.QR)
	}

	return strings.Join(lines, "\n")
}
