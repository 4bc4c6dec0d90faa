package settings

import (
	"strconv"
	"strings"

	"crowdfund-tui/config"
	"crowdfund-tui/styles"

	"github.com/charmbracelet/lipgloss"
)

// Nav returns the navigation bar for the settings view
func Nav(width int, settingsMode string) string {
	var left string
	if settingsMode == "add" {
		left = strings.Join([]string{
			styles.Key("l") + " debug log",
			styles.Key("Esc") + " cancel",
		}, "   ")
	} else {
		left = strings.Join([]string{
			styles.Key("↑/↓") + " select",
			styles.Key("K/J") + " reorder",
			styles.Key("a") + " add",
			styles.Key("d") + " delete",
			styles.Key("R") + " reprobe",
			styles.Key("h") + " home",
			styles.Key("l") + " debug log",
			styles.Key("Esc") + " back",
		}, "   ")
	}

	return styles.NavStyle.Width(width).Render(left)
}

// Render renders the endpoint settings view. Endpoints are probed in
// list order, so position is priority.
func Render(endpoints []config.Endpoint, selectedIdx int, liveURL string, walletLine string, chainID int64) string {
	h := styles.TitleStyle.Render("Settings")

	lines := []string{h, ""}
	lines = append(lines, lipgloss.NewStyle().Foreground(styles.CMuted).Render("RPC endpoints, tried top to bottom:"))
	lines = append(lines, "")

	if len(endpoints) == 0 {
		lines = append(lines, lipgloss.NewStyle().Foreground(styles.CMuted).Render("No endpoints configured."))
		lines = append(lines, "")
		lines = append(lines, lipgloss.NewStyle().Foreground(styles.CMuted).Render("Press ")+styles.Key("a")+lipgloss.NewStyle().Foreground(styles.CMuted).Render(" to add one."))
	} else {
		for i, ep := range endpoints {
			var marker string
			if ep.URL == liveURL && liveURL != "" {
				marker = lipgloss.NewStyle().Foreground(styles.CAccent).Render("● ")
			} else {
				marker = lipgloss.NewStyle().Foreground(styles.CMuted).Render("○ ")
			}

			nameStyle := lipgloss.NewStyle().Foreground(styles.CText)
			urlStyle := lipgloss.NewStyle().Foreground(styles.CMuted)

			if i == selectedIdx {
				nameStyle = nameStyle.Background(styles.CPanel).Foreground(styles.CAccent2).Bold(true)
				urlStyle = urlStyle.Background(styles.CPanel)
				marker = lipgloss.NewStyle().Foreground(styles.CAccent2).Render("▶ ")
			}

			lines = append(lines, marker+nameStyle.Render(ep.Name))
			lines = append(lines, "  "+urlStyle.Render(ep.URL))
			lines = append(lines, "")
		}
	}

	lines = append(lines, lipgloss.NewStyle().Foreground(styles.CMuted).Render("Chain:"))
	lines = append(lines, lipgloss.NewStyle().Foreground(styles.CText).Render(strings.TrimSpace(chainLabel(chainID))))
	lines = append(lines, "")
	lines = append(lines, lipgloss.NewStyle().Foreground(styles.CMuted).Render("Wallet:"))
	lines = append(lines, lipgloss.NewStyle().Foreground(styles.CText).Render(walletLine))

	return strings.Join(lines, "\n")
}

func chainLabel(chainID int64) string {
	if chainID == 4818 {
		return "4818 (Mandala)"
	}
	return strconv.FormatInt(chainID, 10)
}
