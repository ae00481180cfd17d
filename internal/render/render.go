// Package render draws view models on a terminal.
package render

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/Spoonthedogl/vinted-deal-finger/internal/backend"
	"github.com/Spoonthedogl/vinted-deal-finger/internal/recent"
	"github.com/Spoonthedogl/vinted-deal-finger/internal/session"
	"github.com/Spoonthedogl/vinted-deal-finger/internal/storage"
	"github.com/Spoonthedogl/vinted-deal-finger/internal/suggest"
	"github.com/Spoonthedogl/vinted-deal-finger/internal/watcher"
	"github.com/charmbracelet/lipgloss"
	"github.com/lithammer/dedent"
)

const (
	// ValidationMessage is shown for any rejected form.
	ValidationMessage    = "Please fill in all required fields correctly."
	AnalysisFailedPrefix = "Analysis failed: "
)

// Renderer writes styled output to w. Colours follow w's capabilities, so
// writing to a pipe or buffer produces plain text.
type Renderer struct {
	w  io.Writer
	st styles
}

func New(w io.Writer, theme storage.Theme) *Renderer {
	return &Renderer{
		w:  w,
		st: newStyles(lipgloss.NewRenderer(w), theme),
	}
}

func formatText(text string, a ...any) string {
	return fmt.Sprintf(strings.TrimSpace(dedent.Dedent(text)), a...)
}

func (r *Renderer) println(s string) {
	fmt.Fprintln(r.w, s)
}

func (r *Renderer) field(label, value string) string {
	return r.st.label.Render(label+":") + " " + value
}

// Analysis renders a session view.
func (r *Renderer) Analysis(v session.View) {
	st := r.st

	r.println(st.title.Render("🔍 " + v.ItemName))

	r.println(st.heading.Render("Market"))
	r.println(r.field("  Market price", st.value.Render(money(v.MarketPrice))))
	r.println(r.field("  Asking price", st.band(v.PriceBand).Render(money(v.AskingPrice)+" ("+v.PriceBand.String()+")")))
	r.println(r.field("  Price range", st.muted.Render(v.PriceTier.String())))
	savings := st.muted.Render(v.Savings)
	if v.SavingsPositive {
		savings = st.good.Render(v.Savings)
	}
	r.println(r.field("  Savings", savings))
	if v.MarketComparison != "" {
		r.println("  " + st.muted.Render(v.MarketComparison))
	}
	r.println("")

	r.println(st.heading.Render("Strategy"))
	r.println(r.field("  Method", v.MethodIcon+" "+string(v.Method)))
	r.println(r.field("  Offer", st.good.Render(money(v.OfferPrice))))
	r.println(r.field("  Confidence", v.ConfidenceStars))
	r.println(r.field("  Success probability", st.level(v.ProbabilityLvl).Render(strconv.Itoa(v.Probability)+"%")))
	if v.Rationale != "" {
		r.println("  " + st.muted.Render(v.Rationale))
	}
	r.println("")

	r.println(st.heading.Render("Seller"))
	r.println(r.field("  Type", v.SellerType+" "+st.muted.Render("["+v.SellerBadge+"]")))
	r.println(r.field("  Negotiation strength", st.level(v.StrengthLvl).Render(strconv.Itoa(v.Strength)+"/100")))
	if v.SellerInsights != "" {
		r.println("  " + st.muted.Render(v.SellerInsights))
	}
	r.println("")

	if v.Brand != nil {
		r.println(st.heading.Render("Brand"))
		r.println(r.field("  Brand", v.Brand.Name))
		r.println(r.field("  Tier", v.Brand.Tier))
		r.println(r.field("  Base value", money(v.Brand.BaseValue)))
		r.println("")
	}

	r.println(st.heading.Render("Message"))
	r.println("  " + st.value.Render(v.Message))
	r.println(r.field("  Tone", v.Tone.String()) + "  " + r.field("Effectiveness", v.Effectiveness.String()))
	r.println("")

	if len(v.MarketAdvice) > 0 {
		r.println(st.heading.Render("Market trends"))
		if v.TrendInsights != "" {
			r.println("  " + st.muted.Render(v.TrendInsights))
		}
		r.list(v.MarketAdvice)
		r.println("")
	}

	if v.Timing != nil {
		r.println(st.heading.Render("Timing"))
		r.println(r.field("  Wait before offering", fmt.Sprintf("%.0fh", v.Timing.RecommendedWaitHours)))
		if len(v.Timing.FollowUpScheduleDays) > 0 {
			days := make([]string, len(v.Timing.FollowUpScheduleDays))
			for i, d := range v.Timing.FollowUpScheduleDays {
				days[i] = strconv.Itoa(d)
			}
			r.println(r.field("  Follow up on days", strings.Join(days, ", ")))
		}
		r.println("")
	}

	r.println(st.heading.Render("Pro tips"))
	r.list(v.ProTips)
}

func (r *Renderer) list(lines []string) {
	for _, l := range lines {
		r.println("  • " + l)
	}
}

// RecentItems renders the recent-items list with the indexes used by
// `recent delete`.
func (r *Renderer) RecentItems(items []recent.Item, now time.Time) {
	if len(items) == 0 {
		r.println(r.st.muted.Render("No recent items."))
		return
	}

	r.println(r.st.heading.Render("Recent items"))
	for i, item := range items {
		r.println(fmt.Sprintf("  %d. %s %s %s",
			i,
			r.st.value.Render(item.ItemName),
			money(item.Price),
			r.st.muted.Render(fmt.Sprintf("(listed %s, %s, %s)",
				pluralize("day", "days", item.DaysListed),
				pluralize("interested buyer", "interested buyers", item.InterestedCount),
				timeAgo(item.Time(), now))),
		))
	}
}

// Suggestions renders the brand suggestion list. Nothing is written when the
// list is hidden.
func (r *Renderer) Suggestions(s suggest.Suggestions) {
	if !s.Visible {
		return
	}
	for _, item := range s.Items {
		r.println("  " + r.st.value.Render(item))
	}
}

// WatchedMarkets renders the watched item names.
func (r *Renderer) WatchedMarkets(names []string) {
	if len(names) == 0 {
		r.println(r.st.muted.Render("Not watching any markets. Add one with `dealfinder watch add <item>`."))
		return
	}
	r.println(r.st.heading.Render("Watched markets"))
	for _, name := range names {
		r.println("  • " + name)
	}
}

// MarketReports renders one poll cycle of the watcher.
func (r *Renderer) MarketReports(reports []watcher.Report) {
	for _, report := range reports {
		if report.Err != nil {
			r.println(r.st.heading.Render(report.ItemName) + " " + r.st.bad.Render("unavailable"))
			continue
		}

		header := r.st.heading.Render(report.ItemName) + " " + r.st.muted.Render(report.Trends.PriceTrend.String())
		if report.Changed {
			header += " " + r.st.warn.Render("(was "+report.Previous.String()+")")
		}
		r.println(header)
		if p := report.Trends.EstimatedMarketPrice; p != nil {
			r.println(r.field("  Estimated market price", money(*p)))
		}
		r.list(report.Advice)
	}
}

// Error renders err as a banner or a notice depending on its kind.
func (r *Renderer) Error(err error) {
	text := ErrorText(err)
	var valErr *session.ValidationError
	if errors.Is(err, session.ErrNoActiveSession) || errors.Is(err, session.ErrConcurrentSubmission) || errors.As(err, &valErr) {
		r.println(r.st.notice.Render(text))
		return
	}
	r.println(r.st.banner.Render(text))
}

// ErrorText is the user-facing text for an analysis error.
func ErrorText(err error) string {
	var valErr *session.ValidationError
	switch {
	case errors.As(err, &valErr):
		return ValidationMessage + " (" + valErr.Error() + ")"
	case errors.Is(err, session.ErrNoActiveSession), errors.Is(err, session.ErrConcurrentSubmission):
		return capitalize(err.Error()) + "."
	default:
		return AnalysisFailedPrefix + err.Error()
	}
}

// OutcomeRecorded confirms a reported outcome.
func (r *Renderer) OutcomeRecorded(outcome backend.Outcome) {
	r.println(r.st.good.Render("✓ Outcome recorded: " + OutcomeLabel(outcome)))
}

// OutcomeLabel is the display label for an outcome.
func OutcomeLabel(o backend.Outcome) string {
	switch o {
	case backend.OutcomeAccepted:
		return "Accepted"
	case backend.OutcomeCountered:
		return "Countered"
	case backend.OutcomeRejected:
		return "Rejected"
	case backend.OutcomeNoResponse:
		return "No response"
	default:
		return string(o)
	}
}

// InstallHint renders the first-run hint.
func (r *Renderer) InstallHint(configDir string) {
	hint := formatText(`
		Tip: settings live in %s/config.env.
		Run 'dealfinder analyze' to price up your first listing.
	`, configDir)
	for _, line := range strings.Split(hint, "\n") {
		r.println(r.st.muted.Render(line))
	}
	r.println("")
}

// Theme renders the active theme.
func (r *Renderer) Theme(t storage.Theme) {
	r.println(r.field("Theme", r.st.value.Render(string(t))))
}

func money(v float64) string {
	return fmt.Sprintf("£%.2f", v)
}

func pluralize(singular string, plural string, count int) string {
	s := plural
	if count == 1 {
		s = singular
	}
	return fmt.Sprintf("%d %s", count, s)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func timeAgo(t, now time.Time) string {
	d := now.Sub(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	}
}
