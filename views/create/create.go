package create

import (
	"strings"

	"crowdfund-tui/styles"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// Render renders the create-campaign page. feeLine, when non-empty,
// warns about the platform fee before the user commits.
func Render(form *huh.Form, busy bool, spinView, feeLine string) string {
	h := styles.TitleStyle.Render("Start a Campaign")
	if feeLine != "" {
		h += "\n" + lipgloss.NewStyle().Foreground(styles.CMuted).Render(feeLine)
	}
	if busy {
		return h + "\n\n" + spinView + " submitting campaign…"
	}
	if form == nil {
		return h
	}
	return h + "\n\n" + form.View()
}

// Nav returns the navigation bar for the create view
func Nav(width int, busy bool) string {
	var left string
	if busy {
		left = styles.Key("Esc") + " back"
	} else {
		left = strings.Join([]string{
			styles.Key("Tab") + " next field",
			styles.Key("Enter") + " next/submit",
			styles.Key("Esc") + " cancel",
		}, "   ")
	}
	return styles.NavStyle.Width(width).Render(left)
}
