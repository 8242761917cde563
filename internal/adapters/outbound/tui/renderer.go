package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/camelcase"

	"github.com/releasegate/releasegate/internal/domain"
)

// ── warm terminal palette ──
var (
	accent  = lipgloss.Color("#D97706") // amber
	fg      = lipgloss.Color("#E8E6E3") // warm light gray
	dim     = lipgloss.Color("#6B7280") // muted gray
	faint   = lipgloss.Color("#3F3F46") // very dim
	success = lipgloss.Color("#22C55E") // green
	danger  = lipgloss.Color("#EF4444") // red
	warning = lipgloss.Color("#F59E0B") // amber-yellow
	info    = lipgloss.Color("#8B949E") // soft blue-gray
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

	statusColors = map[domain.Status]lipgloss.Color{
		domain.StatusApproved:             success,
		domain.StatusFailed:               danger,
		domain.StatusRequiresManualAction: warning,
		domain.StatusPending:              info,
	}

	bandColors = map[domain.Band]lipgloss.Color{
		domain.BandExcellent: success,
		domain.BandVeryGood:  success,
		domain.BandGood:      lipgloss.Color("#A3E635"), // lime
		domain.BandFair:      warning,
		domain.BandPoor:      lipgloss.Color("#FB923C"), // orange
		domain.BandCritical:  danger,
	}

	dimStyle      = lipgloss.NewStyle().Foreground(dim)
	faintStyle    = lipgloss.NewStyle().Foreground(faint)
	passStyle     = lipgloss.NewStyle().Foreground(success)
	failStyle     = lipgloss.NewStyle().Foreground(danger)
	warnStyle     = lipgloss.NewStyle().Foreground(warning)
	errorTagStyle = lipgloss.NewStyle().Foreground(danger).Bold(true)
	warnTagStyle  = lipgloss.NewStyle().Foreground(warning).Bold(true)
	infoTagStyle  = lipgloss.NewStyle().Foreground(info)
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(fg)
	separatorLine = faintStyle.Render(strings.Repeat("─", 64))
)

// RenderRun formats a completed validation run for terminal output.
func RenderRun(run *domain.ValidationRun) string {
	var b strings.Builder

	// ── Header box ──
	title := headerStyle.Render("releasegate")
	subtitle := dimStyle.Render(fmt.Sprintf("Compliance validation · %s", run.TicketID))
	statusStyled := lipgloss.NewStyle().
		Bold(true).
		Foreground(statusColor(run.Status)).
		Render(string(run.Status))
	stages := dimStyle.Render(fmt.Sprintf("stages %d/%d", len(run.StagesCompleted), run.StagesTotal))

	b.WriteString(boxStyle.Render(title + "\n" + subtitle + "\n\n" + statusStyled + "  " + stages))
	b.WriteString("\n\n")

	// ── Components ──
	if len(run.Components) > 0 {
		b.WriteString("  " + titleStyle.Render("Components") + "\n")
		for _, comp := range run.Components {
			line := fmt.Sprintf("    %s %s", comp.Name, dimStyle.Render(comp.Version))
			if comp.Stereotype != "" && comp.Stereotype != domain.StereotypeUndefined {
				line += "  " + faintStyle.Render(string(comp.Stereotype))
			}
			b.WriteString(line + "\n")
		}
		b.WriteString("\n")
	}

	renderVersionChanges(&b, run.VersionChanges)
	renderChecklist(&b, run.Checklist)
	renderScores(&b, run.Scores)

	b.WriteString("  " + separatorLine + "\n\n")
	renderFindings(&b, run)

	if run.RecordID != "" {
		b.WriteString("\n  " + dimStyle.Render("record "+run.RecordID) + "\n")
	}

	return b.String()
}

func renderVersionChanges(b *strings.Builder, changes []domain.VersionChange) {
	if len(changes) == 0 {
		return
	}
	b.WriteString("  " + titleStyle.Render("Version changes") + "\n")
	for _, vc := range changes {
		icon := dimStyle.Render("·")
		if vc.IsMajor {
			icon = warnStyle.Render("▲")
		}
		fmt.Fprintf(b, "    %s %s  %s  %s\n",
			icon,
			padRight(vc.Component, 28),
			dimStyle.Render(vc.Describe()),
			changeTypeStyled(vc.Type),
		)
	}
	b.WriteString("\n")
}

func renderChecklist(b *strings.Builder, entries []domain.ChecklistEntry) {
	if len(entries) == 0 {
		return
	}
	b.WriteString("  " + titleStyle.Render("Checklist") + "\n")
	for _, entry := range entries {
		var icon string
		switch entry.Result {
		case domain.CheckPass:
			icon = passStyle.Render("●")
		case domain.CheckFail:
			icon = failStyle.Render("●")
		default:
			icon = warnStyle.Render("○")
		}
		fmt.Fprintf(b, "    %s %s %s\n",
			icon,
			padRight(entry.Item, 34),
			dimStyle.Render(entry.Component),
		)
		if entry.Notes != "" {
			fmt.Fprintf(b, "         %s\n", faintStyle.Render(entry.Notes))
		}
	}
	b.WriteString("\n")
}

func renderScores(b *strings.Builder, scores []domain.ComplianceScore) {
	if len(scores) == 0 {
		return
	}
	b.WriteString("  " + titleStyle.Render("Compliance") + "\n")
	for _, score := range scores {
		color := bandColor(score.Band)
		pct := lipgloss.NewStyle().Bold(true).Foreground(color).
			Render(fmt.Sprintf("%.1f%%", score.Percentage))
		band := lipgloss.NewStyle().Foreground(color).Render(string(score.Band))
		fmt.Fprintf(b, "    %s %s  %s  %s\n",
			coloredBar(score.Percentage, 20),
			padRight(score.Component, 24),
			pct,
			band,
		)
		for _, id := range score.MandatoryFailures {
			fmt.Fprintf(b, "         %s %s\n",
				errorTagStyle.Render("mandatory"),
				dimStyle.Render(humanizeCriterion(id)),
			)
		}
	}
	b.WriteString("\n")
}

func renderFindings(b *strings.Builder, run *domain.ValidationRun) {
	if len(run.Errors) == 0 && len(run.Warnings) == 0 && len(run.ManualActions) == 0 {
		b.WriteString("  " + passStyle.Render("No findings.") + "\n")
		return
	}

	for _, msg := range run.Errors {
		fmt.Fprintf(b, "    %s %s\n", errorTagStyle.Render("error"), dimStyle.Render(msg))
	}
	for _, msg := range run.Warnings {
		fmt.Fprintf(b, "    %s %s\n", warnTagStyle.Render("warn "), dimStyle.Render(msg))
	}
	for _, msg := range run.ManualActions {
		fmt.Fprintf(b, "    %s %s\n", infoTagStyle.Render("todo "), dimStyle.Render(msg))
	}
}

// RenderVersionBatch formats a standalone classification result, used by the
// versions subcommand.
func RenderVersionBatch(batch domain.VersionBatch) string {
	var b strings.Builder
	b.WriteString("\n  " + titleStyle.Render("Version classification") + "\n")
	b.WriteString("  " + faintStyle.Render(strings.Repeat("─", 50)) + "\n\n")

	renderVersionChanges(&b, batch.Changes)

	if len(batch.LookupErrors) > 0 {
		for _, msg := range batch.LookupErrors {
			fmt.Fprintf(&b, "    %s %s\n", warnTagStyle.Render("warn "), dimStyle.Render(msg))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// RenderReconcile formats a standalone reconciliation result, used by the
// components subcommand.
func RenderReconcile(result domain.ReconcileResult) string {
	var b strings.Builder
	b.WriteString("\n  " + titleStyle.Render("Component reconciliation") + "\n")
	b.WriteString("  " + faintStyle.Render(strings.Repeat("─", 50)) + "\n\n")

	for name, match := range result.Found {
		fmt.Fprintf(&b, "    %s %s  %s %s\n",
			passStyle.Render("●"),
			padRight(name, 28),
			dimStyle.Render(match.ElementName),
			faintStyle.Render(string(match.Stereotype)),
		)
	}
	for _, name := range result.Missing {
		fmt.Fprintf(&b, "    %s %s  %s\n",
			failStyle.Render("●"),
			padRight(name, 28),
			dimStyle.Render("not in architecture model"),
		)
	}

	fmt.Fprintf(&b, "\n    %s\n", dimStyle.Render(fmt.Sprintf("match rate %.0f%%", result.SuccessRate*100)))
	return b.String()
}

func changeTypeStyled(t domain.ChangeType) string {
	switch t {
	case domain.ChangeNew:
		return infoTagStyle.Render(string(t))
	case domain.ChangeMajor:
		return warnTagStyle.Render(string(t))
	case domain.ChangeUnknown:
		return failStyle.Render(string(t))
	default:
		return dimStyle.Render(string(t))
	}
}

func coloredBar(pct float64, width int) string {
	filled := max(0, min(int(pct)*width/100, width))
	empty := width - filled

	color := success
	switch {
	case pct < 50:
		color = danger
	case pct < 75:
		color = warning
	case pct < 95:
		color = lipgloss.Color("#A3E635")
	}
	filledStr := lipgloss.NewStyle().Foreground(color).Render(strings.Repeat("█", filled))
	emptyStr := lipgloss.NewStyle().Foreground(faint).Render(strings.Repeat("░", empty))
	return filledStr + emptyStr
}

// humanizeCriterion turns a camelCase criterion id into readable words,
// e.g. "structuredLogging" becomes "structured logging".
func humanizeCriterion(id string) string {
	parts := camelcase.Split(id)
	for i, p := range parts {
		parts[i] = strings.ToLower(p)
	}
	return strings.Join(parts, " ")
}

func statusColor(status domain.Status) lipgloss.Color {
	if c, ok := statusColors[status]; ok {
		return c
	}
	return fg
}

func bandColor(band domain.Band) lipgloss.Color {
	if c, ok := bandColors[band]; ok {
		return c
	}
	return fg
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}
