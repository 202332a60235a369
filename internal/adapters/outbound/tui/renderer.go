package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/seatbelt/seatbelt/internal/domain"
)

// ── Claude-inspired warm palette ──
var (
	accent  = lipgloss.Color("#D97706") // amber
	fg      = lipgloss.Color("#E8E6E3") // warm light gray
	dim     = lipgloss.Color("#6B7280") // muted gray
	faint   = lipgloss.Color("#3F3F46") // very dim
	success = lipgloss.Color("#22C55E") // green
	danger  = lipgloss.Color("#EF4444") // red
	warning = lipgloss.Color("#F59E0B") // amber-yellow
	info    = lipgloss.Color("#8B949E") // soft blue-gray
	lime    = lipgloss.Color("#A3E635")
	orange  = lipgloss.Color("#FB923C")
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accent).
			Align(lipgloss.Center)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(1, 4).
			Align(lipgloss.Center).
			Width(68)

	gradeColors = map[string]lipgloss.Color{
		"A": success,
		"B": lime,
		"C": warning,
		"D": orange,
		"F": danger,
	}

	verdictColors = map[domain.Verdict]lipgloss.Color{
		domain.VerdictReady:   success,
		domain.VerdictWarning: warning,
		domain.VerdictBlocked: danger,
	}

	dimStyle           = lipgloss.NewStyle().Foreground(dim)
	faintStyle         = lipgloss.NewStyle().Foreground(faint)
	passStyle          = lipgloss.NewStyle().Foreground(success)
	failStyle          = lipgloss.NewStyle().Foreground(danger)
	warnStyle          = lipgloss.NewStyle().Foreground(warning)
	errorTagStyle      = lipgloss.NewStyle().Foreground(danger).Bold(true)
	warnTagStyle       = lipgloss.NewStyle().Foreground(warning).Bold(true)
	infoTagStyle       = lipgloss.NewStyle().Foreground(info)
	titleStyle         = lipgloss.NewStyle().Bold(true).Foreground(fg)
	catNameStyle       = lipgloss.NewStyle().Bold(true).Foreground(fg)
	sectionHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(accent)
	hintStyle          = lipgloss.NewStyle().Foreground(dim).Italic(true)
	separatorLine      = faintStyle.Render(strings.Repeat("─", 64))
)

// RenderReport formats the full sectioned health report, listing at most
// r.DisplayLimit optimizations.
func RenderReport(r domain.Report) string {
	var b strings.Builder
	res := r.Result

	// ── Header ──
	title := headerStyle.Render("seatbelt")
	subtitle := dimStyle.Render("Environment Health Check")
	styled := lipgloss.NewStyle().Bold(true).Foreground(gradeColor(res.Grade))
	scoreLine := styled.Render(fmt.Sprintf("%d / 100", res.Overall)) + "  " +
		styled.Render(res.Grade) + "  " + dimStyle.Render(res.Descriptor)
	b.WriteString(boxStyle.Render(title + "\n" + subtitle + "\n\n" + scoreLine))
	b.WriteString("\n")

	renderSystem(&b, r.Facts)

	// ── Score breakdown ──
	section(&b, "Score Breakdown")
	for i, cat := range res.Categories {
		renderCategoryFull(&b, cat)
		if i < len(res.Categories)-1 {
			b.WriteString("\n")
		}
	}

	renderAuth(&b, r.Facts.Auth)
	renderMCP(&b, r.Facts.MCP, res.Advisory)
	renderSecurity(&b, r.Facts.Security)
	renderStructure(&b, r.Facts.Structure)
	renderOptimizations(&b, r.Optimizations, r.DisplayLimit)

	b.WriteString("\n")
	b.WriteString("  " + separatorLine)
	b.WriteString("\n\n")
	b.WriteString(renderVerdictBanner(res))
	b.WriteString("\n")
	return b.String()
}

// RenderQuick formats the one-line summary used by pre-commit gating.
func RenderQuick(res domain.HealthResult) string {
	color := verdictColor(res.Verdict)
	icon := map[domain.Verdict]string{
		domain.VerdictReady:   "✓",
		domain.VerdictWarning: "!",
		domain.VerdictBlocked: "✗",
	}[res.Verdict]

	line := fmt.Sprintf("%s seatbelt %d/100 %s %s", icon, res.Overall, res.Grade, strings.ToUpper(string(res.Verdict)))
	return lipgloss.NewStyle().Bold(true).Foreground(color).Render(line) + "\n"
}

func renderVerdictBanner(res domain.HealthResult) string {
	color := verdictColor(res.Verdict)
	banner := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(color).
		Padding(0, 2).
		Width(68)

	head := lipgloss.NewStyle().Bold(true).Foreground(color).Render(strings.ToUpper(string(res.Verdict)))
	body := head + "  " + res.Message
	for _, bl := range res.Blockers {
		body += "\n" + failStyle.Render("✗ ") + bl
	}
	return banner.Render(body) + "\n"
}

func renderCategoryFull(b *strings.Builder, cat domain.CategoryScore) {
	color := scoreColor(cat.Score)
	scoreText := lipgloss.NewStyle().Bold(true).Foreground(color).Render(fmt.Sprintf("%d", cat.Score))
	bar := coloredBar(cat.Score, 20)
	weight := dimStyle.Render(fmt.Sprintf("%d%%", int(cat.Weight*100+0.5)))

	name := catNameStyle.Render(padRight(domain.DisplayName(cat.Name), 20))
	line := fmt.Sprintf("  %s %s  %s %s", name, bar, scoreText, weight)
	if cat.Neutral {
		line += "  " + faintStyle.Render("neutral")
	}
	b.WriteString(line + "\n")

	for _, sm := range cat.SubMetrics {
		renderSubMetric(b, sm)
	}
}

func renderSubMetric(b *strings.Builder, sm domain.SubMetric) {
	name := padRight(sm.Name, 34)

	pct := subMetricPercent(sm)

	var icon string
	switch {
	case pct >= 80:
		icon = passStyle.Render("●")
	case pct >= 40:
		icon = warnStyle.Render("●")
	default:
		icon = failStyle.Render("●")
	}

	score := dimStyle.Render(fmt.Sprintf("%d/%d", sm.Score, sm.Points))

	if sm.Detail != "" {
		fmt.Fprintf(b, "    %s %s %s  %s\n", icon, name, score, faintStyle.Render(sm.Detail))
	} else {
		fmt.Fprintf(b, "    %s %s %s\n", icon, name, score)
	}
}

// subMetricPercent is the share of points earned. A check worth no points
// that is not marked failed counts as passed.
func subMetricPercent(sm domain.SubMetric) int {
	if sm.Points <= 0 {
		if sm.Score >= sm.Points {
			return 100
		}
		return 0
	}
	return sm.Score * 100 / sm.Points
}

func section(b *strings.Builder, title string) {
	b.WriteString("\n")
	b.WriteString("  " + sectionHeaderStyle.Render(title) + "\n")
}

func coloredBar(score, width int) string {
	filled := max(0, min(score*width/100, width))
	empty := width - filled

	color := scoreColor(score)
	filledStr := lipgloss.NewStyle().Foreground(color).Render(strings.Repeat("█", filled))
	emptyStr := lipgloss.NewStyle().Foreground(faint).Render(strings.Repeat("░", empty))
	return filledStr + emptyStr
}

func scoreColor(score int) lipgloss.Color {
	switch {
	case score >= 80:
		return success
	case score >= 60:
		return lime
	case score >= 40:
		return warning
	default:
		return danger
	}
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

func gradeColor(grade string) lipgloss.Color {
	if c, ok := gradeColors[grade]; ok {
		return c
	}
	return fg
}

func verdictColor(v domain.Verdict) lipgloss.Color {
	if c, ok := verdictColors[v]; ok {
		return c
	}
	return fg
}
