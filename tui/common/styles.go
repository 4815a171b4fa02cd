package common

import "github.com/charmbracelet/lipgloss"

// Styles holds every style the views render with, themed light or dark.
type Styles struct {
	AppTitle    lipgloss.Style
	Tagline     lipgloss.Style
	TabActive   lipgloss.Style
	TabInactive lipgloss.Style
	MemeName    lipgloss.Style
	MemeMeta    lipgloss.Style
	Author      lipgloss.Style
	Timestamp   lipgloss.Style
	Content     lipgloss.Style
	Selected    lipgloss.Style
	Unselected  lipgloss.Style
	LikedBadge  lipgloss.Style
	StatusBar   lipgloss.Style
	Error       lipgloss.Style
	Rank        lipgloss.Style
	Label       lipgloss.Style
}

// NewStyles builds the style set for the given theme.
func NewStyles(dark bool) Styles {
	accent := lipgloss.Color("#FF6600")
	if !dark {
		accent = lipgloss.Color("#D14900")
	}

	text := lipgloss.Color("#CAD3F5")
	muted := lipgloss.Color("#6E738D")
	name := lipgloss.Color("#7DC4E4")
	like := lipgloss.Color("#ED8796")
	rank := lipgloss.Color("#EED49F")
	border := lipgloss.Color("#45475A")
	if !dark {
		text = lipgloss.Color("#24273A")
		muted = lipgloss.Color("#8087A2")
		name = lipgloss.Color("#1E66F5")
		like = lipgloss.Color("#D20F39")
		rank = lipgloss.Color("#DF8E1D")
		border = lipgloss.Color("#BCC0CC")
	}

	return Styles{
		AppTitle: lipgloss.NewStyle().
			Bold(true).
			Foreground(accent).
			Padding(1, 0, 0, 1),
		Tagline: lipgloss.NewStyle().
			Foreground(muted).
			Italic(true).
			MarginLeft(1),
		TabActive: lipgloss.NewStyle().
			Foreground(accent).
			Bold(true).
			Padding(0, 1),
		TabInactive: lipgloss.NewStyle().
			Foreground(muted).
			Padding(0, 1),
		MemeName: lipgloss.NewStyle().
			Bold(true).
			Foreground(name),
		MemeMeta: lipgloss.NewStyle().
			Foreground(muted),
		Author: lipgloss.NewStyle().
			Bold(true).
			Foreground(name),
		Timestamp: lipgloss.NewStyle().
			Foreground(muted),
		Content: lipgloss.NewStyle().
			Foreground(text),
		Selected: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(0, 1),
		Unselected: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(border).
			Padding(0, 1),
		LikedBadge: lipgloss.NewStyle().
			Foreground(like).
			Bold(true),
		StatusBar: lipgloss.NewStyle().
			Foreground(muted).
			Padding(1, 0, 0, 0),
		Error: lipgloss.NewStyle().
			Foreground(like).
			Bold(true),
		Rank: lipgloss.NewStyle().
			Foreground(rank).
			Bold(true),
		Label: lipgloss.NewStyle().
			Foreground(muted).
			Bold(true),
	}
}
