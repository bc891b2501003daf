package report

import (
	"fmt"
	"strings"

	"github.com/brightops/pulse/internal/domain/project"
)

// SystemPrompt frames the narrative generator as an executive analyst.
const SystemPrompt = "You are an executive project analyst generating C-level status reports. " +
	"Write from the perspective of a Director reporting to senior executives (COO, VP Sales, VP GTM). " +
	"Prioritize business impact, revenue risk, resource bottlenecks, and actionable decisions. " +
	"Use data-driven insights with specific financial figures. Identify critical blockers requiring " +
	"executive intervention and propose concrete solutions with clear ownership."

// BuildPrompt renders the narrative prompt from the portfolio snapshot and
// the computed capacity block.
func BuildPrompt(projects []project.Project, capacity CapacityAnalysis, period Period) string {
	var b strings.Builder

	b.WriteString("Create an executive status report for VP/COO audience. Analyze project data to identify risks, specific asks, and business impacts.\n\n")
	b.WriteString("CRITICAL REQUIREMENTS:\n")
	b.WriteString("For each project, provide exactly three elements:\n")
	b.WriteString("- RISK: Specific threat to delivery, revenue, or operations based on health status and notes\n")
	b.WriteString("- ASK: Concrete action item with named executive owner (COO for resources/infrastructure, VP Sales for adoption/customer issues)\n")
	b.WriteString("- IMPACT: Quantified business consequence (ARR at risk, timeline delays, operational costs)\n\n")

	utilization := fmt.Sprintf("%.1f%%", capacity.UtilizationPercentage)
	tierLines := tierBreakdownLines(capacity.TierBreakdown)

	b.WriteString("REPORT STRUCTURE:\n")
	b.WriteString("1. Project Health Dashboard: traffic-light status per project, each with Risk + Ask + Impact\n")
	b.WriteString("2. Cross-Cutting Risks: systemic issues affecting multiple projects\n")
	fmt.Fprintf(&b, "3. Capacity & Resource Analysis: current utilization %s%s\n", utilization, tierLines)
	b.WriteString("4. Executive Actions Required: immediate decisions needed from COO and VP Sales, 30-day milestones\n\n")

	b.WriteString("ANALYSIS GUIDELINES:\n")
	b.WriteString("- Red projects = high revenue risk, immediate executive intervention needed\n")
	b.WriteString("- Yellow projects = delivery risk, resource/process asks required\n")
	b.WriteString("- Green projects = on track, but identify optimization opportunities\n\n")

	b.WriteString("PROJECT DATA:\n")
	for i, p := range projects {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(formatProject(p))
	}

	b.WriteString("\nCAPACITY DATA:\n")
	fmt.Fprintf(&b, "Team utilization: %s%s\n", utilization, tierLines)
	fmt.Fprintf(&b, "Report period: %s to %s\n", period.StartDate, period.EndDate)

	return b.String()
}

func formatProject(p project.Project) string {
	arr := "0.0"
	if p.ARRValue != nil {
		arr = fmt.Sprintf("%.1f", *p.ARRValue/1000)
	}
	closeDate := "TBD"
	if p.CloseDate != nil {
		closeDate = p.CloseDate.Format("2006-01-02")
	}
	note := p.LatestNote
	if note == "" {
		note = "No recent notes"
	}
	owners := make([]string, 0, 2)
	for _, name := range []string{p.Tier1Name, p.Tier2Name} {
		if name != "" {
			owners = append(owners, name)
		}
	}
	ownerText := strings.Join(owners, ", ")
	if ownerText == "" {
		ownerText = "Unassigned"
	}

	return fmt.Sprintf("Project: %s\nARR: $%sK\nHealth: %s\nClose Date: %s\nStatus: %s\nLatest Note: %s\nOwners: %s\n",
		p.Name, arr, p.Health, closeDate, p.Status, note, ownerText)
}

func tierBreakdownLines(breakdown map[string]TierMetrics) string {
	var lines []string
	for tier := 1; tier <= 3; tier++ {
		m, ok := breakdown[fmt.Sprintf("tier%d", tier)]
		if !ok || m.TotalUsers == 0 {
			continue
		}
		lines = append(lines, fmt.Sprintf("Tier %d: %.1f%% (%d of %d active)",
			tier, m.UtilizationPercentage, m.ActiveUsers, m.TotalUsers))
	}
	if len(lines) == 0 {
		return ""
	}
	return "\n" + strings.Join(lines, "\n")
}
