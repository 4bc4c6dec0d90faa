package campaigns

import (
	"fmt"
	"strings"

	"crowdfund-tui/campaign"
	"crowdfund-tui/carousel"
	"crowdfund-tui/finance"
	"crowdfund-tui/helpers"
	"crowdfund-tui/styles"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
)

// Props carries everything the campaign list needs to render
type Props struct {
	Title    string
	Items    []campaign.Campaign
	Selected int
	Total    uint64
	Offset   uint64
	Preview  carousel.Carousel // gallery of the highlighted campaign
	Rate     float64           // token USD rate, 0 = unknown
	Symbol   string
	Loading  bool
	ErrMsg   string
	SpinView string
}

// Nav returns the navigation bar for campaign lists
func Nav(width int, hasMore bool, hasPrev bool) string {
	keys := []string{
		styles.Key("↑/↓") + " move",
		styles.Key("←/→") + " images",
		styles.Key("Enter") + " open",
	}
	if hasPrev {
		keys = append(keys, styles.Key("p")+" prev page")
	}
	if hasMore {
		keys = append(keys, styles.Key("n")+" next page")
	}
	keys = append(keys,
		styles.Key("r")+" reload",
		styles.Key("c")+" create",
		styles.Key("w")+" wallet",
		styles.Key("h")+" home",
		styles.Key("Esc")+" back",
	)
	return styles.NavStyle.Width(width).Render(strings.Join(keys, "   "))
}

// ProgressBar renders a funding progress bar at the given width
func ProgressBar(pct float64, width int) string {
	bar := progress.New(progress.WithScaledGradient("#7EE787", "#79C0FF"), progress.WithoutPercentage())
	bar.Width = helpers.Max(10, width)
	return bar.ViewAs(pct / 100)
}

// galleryLine shows the preview carousel position for the selected card
func galleryLine(c campaign.Campaign, pre carousel.Carousel) string {
	if pre.Count == 0 || pre.Current >= len(c.ImageURLs) {
		return ""
	}
	line := c.ImageURLs[pre.Current]
	if pre.HasControls() {
		line = fmt.Sprintf("◂ %s ▸  (%d/%d)", line, pre.Current+1, pre.Count)
	}
	return lipgloss.NewStyle().Foreground(styles.CMuted).Render("  🖼  " + line)
}

// Render renders a paginated campaign list
func Render(p Props, width int) string {
	h := styles.TitleStyle.Render(p.Title)
	lines := []string{h, ""}

	if p.Loading {
		lines = append(lines, p.SpinView+" loading campaigns…")
		return strings.Join(lines, "\n")
	}
	if p.ErrMsg != "" {
		lines = append(lines, styles.BadStyle.Render(p.ErrMsg))
		lines = append(lines, "")
		lines = append(lines, lipgloss.NewStyle().Foreground(styles.CMuted).Render("Press ")+styles.Key("r")+lipgloss.NewStyle().Foreground(styles.CMuted).Render(" to retry."))
		return strings.Join(lines, "\n")
	}
	if len(p.Items) == 0 {
		lines = append(lines, lipgloss.NewStyle().Foreground(styles.CMuted).Render("No campaigns here yet."))
		return strings.Join(lines, "\n")
	}

	barWidth := helpers.Min(40, helpers.Max(10, width-10))

	for i, c := range p.Items {
		var marker string
		titleStyle := lipgloss.NewStyle().Foreground(styles.CText)
		if i == p.Selected {
			marker = lipgloss.NewStyle().Foreground(styles.CAccent2).Bold(true).Render("▶ ")
			titleStyle = titleStyle.Foreground(styles.CAccent2).Bold(true)
		} else {
			marker = "  "
		}

		pct := finance.ProgressPercent(c.TotalRaised, c.Goal)
		raised := finance.FormatAmount(c.TotalRaised)
		goal := finance.FormatAmount(c.Goal)
		usd := finance.FormatUSD(finance.ToDisplayUnit(c.TotalRaised), p.Rate)

		head := marker + c.Category.Display() + "  " + titleStyle.Render(c.Title)
		if c.Finished {
			head += "  " + lipgloss.NewStyle().Foreground(styles.CMuted).Render("· ended "+helpers.FormatTimestamp(c.EndTimestamp))
		}
		lines = append(lines, head)
		lines = append(lines, fmt.Sprintf("  %s / %s %s%s  ·  %s",
			raised, goal, p.Symbol, usd, finance.FormatPercent(pct)))
		lines = append(lines, "  "+ProgressBar(pct, barWidth))
		if i == p.Selected {
			if gl := galleryLine(c, p.Preview); gl != "" {
				lines = append(lines, gl)
			}
		}
		lines = append(lines, "")
	}

	shown := uint64(len(p.Items))
	lines = append(lines, lipgloss.NewStyle().Foreground(styles.CMuted).Render(
		fmt.Sprintf("showing %d–%d of %d", p.Offset+1, p.Offset+shown, p.Total)))

	return strings.Join(lines, "\n")
}
