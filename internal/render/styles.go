package render

import (
	"github.com/Spoonthedogl/vinted-deal-finger/internal/advisor"
	"github.com/Spoonthedogl/vinted-deal-finger/internal/storage"
	"github.com/charmbracelet/lipgloss"
)

type palette struct {
	accent, text, muted, good, warn, bad lipgloss.Color
}

var palettes = map[storage.Theme]palette{
	storage.ThemeLight: {accent: "57", text: "235", muted: "244", good: "28", warn: "130", bad: "124"},
	storage.ThemeDark:  {accent: "99", text: "252", muted: "245", good: "42", warn: "214", bad: "203"},
}

type styles struct {
	title   lipgloss.Style
	heading lipgloss.Style
	label   lipgloss.Style
	value   lipgloss.Style
	muted   lipgloss.Style
	good    lipgloss.Style
	warn    lipgloss.Style
	bad     lipgloss.Style
	banner  lipgloss.Style
	notice  lipgloss.Style
}

func newStyles(r *lipgloss.Renderer, theme storage.Theme) styles {
	p, ok := palettes[theme]
	if !ok {
		p = palettes[storage.ThemeLight]
	}

	return styles{
		title:   r.NewStyle().Bold(true).Foreground(p.accent).MarginBottom(1),
		heading: r.NewStyle().Bold(true).Foreground(p.accent),
		label:   r.NewStyle().Foreground(p.muted),
		value:   r.NewStyle().Foreground(p.text),
		muted:   r.NewStyle().Foreground(p.muted),
		good:    r.NewStyle().Foreground(p.good).Bold(true),
		warn:    r.NewStyle().Foreground(p.warn).Bold(true),
		bad:     r.NewStyle().Foreground(p.bad).Bold(true),
		banner:  r.NewStyle().Foreground(p.bad).Bold(true),
		notice:  r.NewStyle().Foreground(p.warn),
	}
}

// level picks the style for a high/medium/low classification.
func (s styles) level(l advisor.Level) lipgloss.Style {
	switch l {
	case advisor.High:
		return s.good
	case advisor.Medium:
		return s.warn
	default:
		return s.bad
	}
}

func (s styles) band(b advisor.PriceBand) lipgloss.Style {
	switch b {
	case advisor.BandGreatDeal, advisor.BandBelowMarket:
		return s.good
	case advisor.BandOverpriced:
		return s.bad
	case advisor.BandAboveMarket:
		return s.warn
	default:
		return s.value
	}
}
