package report

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/brightops/pulse/internal/domain/project"
)

const (
	// DefaultWeeklyCapacityHours is the expected work week per active user.
	DefaultWeeklyCapacityHours = 40.0
	// DefaultYellowRiskWeight is the fraction of a yellow project's ARR
	// counted as at risk.
	DefaultYellowRiskWeight = 0.5
)

// Engine computes portfolio aggregates. It is pure and stateless: given the
// same snapshots it produces identical output, so instances are safe to share
// across requests.
type Engine struct {
	WeeklyCapacityHours float64
	YellowRiskWeight    float64
}

// NewEngine returns an engine with the standard weights.
func NewEngine() *Engine {
	return &Engine{
		WeeklyCapacityHours: DefaultWeeklyCapacityHours,
		YellowRiskWeight:    DefaultYellowRiskWeight,
	}
}

// ARRAtRisk returns the weighted revenue exposure of one project: full ARR
// when red, half when yellow, zero otherwise. A missing ARR counts as zero.
func (e *Engine) ARRAtRisk(p project.Project) float64 {
	arr := 0.0
	if p.ARRValue != nil {
		arr = *p.ARRValue
	}
	switch p.Health {
	case project.HealthRed:
		return arr
	case project.HealthYellow:
		return arr * e.YellowRiskWeight
	default:
		return 0
	}
}

// SortForDisplay orders projects by health priority (red, yellow, green,
// other) then ARR descending with missing values last. The slice is sorted
// in place.
func SortForDisplay(projects []project.Project) {
	sort.SliceStable(projects, func(i, j int) bool {
		ri, rj := projects[i].Health.Rank(), projects[j].Health.Rank()
		if ri != rj {
			return ri < rj
		}
		return arrLess(projects[j].ARRValue, projects[i].ARRValue)
	})
}

// arrLess orders ARR values ascending with nil sorted first, so descending
// order puts nil last.
func arrLess(a, b *float64) bool {
	if a == nil {
		return b != nil
	}
	if b == nil {
		return false
	}
	return *a < *b
}

// ProjectHealth partitions active projects into health buckets and computes
// the portfolio ARR figures. Projects with an unrecognized health value are
// excluded from every bucket but still counted in the total.
func (e *Engine) ProjectHealth(projects []project.Project) ProjectHealth {
	ordered := make([]project.Project, len(projects))
	copy(ordered, projects)
	SortForDisplay(ordered)

	buckets := HealthBuckets{
		Red:    []project.Project{},
		Yellow: []project.Project{},
		Green:  []project.Project{},
	}
	var arrAtRisk, totalARR float64
	for _, p := range ordered {
		switch p.Health {
		case project.HealthRed:
			buckets.Red = append(buckets.Red, p)
		case project.HealthYellow:
			buckets.Yellow = append(buckets.Yellow, p)
		case project.HealthGreen:
			buckets.Green = append(buckets.Green, p)
		}
		arrAtRisk += e.ARRAtRisk(p)
		if p.ARRValue != nil {
			totalARR += *p.ARRValue
		}
	}

	return ProjectHealth{
		TotalProjects:    len(ordered),
		RedProjects:      len(buckets.Red),
		YellowProjects:   len(buckets.Yellow),
		GreenProjects:    len(buckets.Green),
		ProjectsByHealth: buckets,
		ARRAtRisk:        roundCurrency(arrAtRisk),
		TotalARR:         roundCurrency(totalARR),
	}
}

// Categorize assigns the project's risk category, first match wins: red is
// always High Risk even when overdue. The schema carries no due date column,
// so there is no due-soon rule between Overdue and Low Risk.
func (e *Engine) Categorize(p project.Project, today time.Time) RiskCategory {
	switch {
	case p.Health == project.HealthRed:
		return RiskHigh
	case p.Health == project.HealthYellow:
		return RiskMedium
	case p.CloseDate != nil && p.CloseDate.Before(today) && !p.IsClosed:
		return RiskOverdue
	default:
		return RiskLow
	}
}

// RiskReport annotates each active project with its risk category and
// weighted exposure, grouped by category and sorted by exposure.
func (e *Engine) RiskReport(projects []project.Project, today time.Time) RiskReport {
	annotated := make([]RiskProject, 0, len(projects))
	var total float64
	for _, p := range projects {
		risk := e.ARRAtRisk(p)
		total += risk
		annotated = append(annotated, RiskProject{
			Project:      p,
			RiskCategory: e.Categorize(p, today),
			ARRAtRisk:    risk,
		})
	}

	sort.SliceStable(annotated, func(i, j int) bool {
		if annotated[i].ARRAtRisk != annotated[j].ARRAtRisk {
			return annotated[i].ARRAtRisk > annotated[j].ARRAtRisk
		}
		ri, rj := annotated[i].Health.Rank(), annotated[j].Health.Rank()
		if ri != rj {
			return ri < rj
		}
		return closeDateLess(annotated[i].CloseDate, annotated[j].CloseDate)
	})

	groups := make(map[RiskCategory][]RiskProject)
	for _, p := range annotated {
		groups[p.RiskCategory] = append(groups[p.RiskCategory], p)
	}

	return RiskReport{
		TotalARRAtRisk: roundCurrency(total),
		RiskGroups:     groups,
		Projects:       annotated,
	}
}

func closeDateLess(a, b *time.Time) bool {
	if a == nil {
		return false
	}
	if b == nil {
		return true
	}
	return a.Before(*b)
}

// GroupMetrics computes tier-weighted utilization for one group of users.
// PTO reduces the available denominator; a non-positive denominator yields
// zero utilization rather than an error.
func (e *Engine) GroupMetrics(rows []UserHours) TierMetrics {
	m := TierMetrics{TotalUsers: len(rows)}
	for _, r := range rows {
		m.TotalHours += r.TotalHours
		m.PTOHours += r.PTOHours
		if r.ActiveInPeriod() {
			m.ActiveUsers++
		}
	}

	m.ExpectedHours = float64(m.ActiveUsers) * e.WeeklyCapacityHours
	m.AvailableHours = m.ExpectedHours - m.PTOHours
	if m.AvailableHours > 0 {
		m.UtilizationPercentage = round1(m.TotalHours / m.AvailableHours * 100)
	}

	m.TotalHours = round1(m.TotalHours)
	m.PTOHours = round1(m.PTOHours)
	m.ExpectedHours = round1(m.ExpectedHours)
	m.AvailableHours = round1(m.AvailableHours)
	return m
}

// Capacity computes the team-wide capacity block: global utilization plus a
// breakdown per organizational tier. Tiers with no users still appear, zeroed.
func (e *Engine) Capacity(rows []UserHours) CapacityAnalysis {
	ordered := make([]UserHours, len(rows))
	copy(ordered, rows)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].TotalHours != ordered[j].TotalHours {
			return ordered[i].TotalHours > ordered[j].TotalHours
		}
		return ordered[i].UserName < ordered[j].UserName
	})

	global := e.GroupMetrics(ordered)

	byTier := make(map[int][]UserHours)
	for _, r := range ordered {
		byTier[r.Tier] = append(byTier[r.Tier], r)
	}
	breakdown := make(map[string]TierMetrics, 3)
	for tier := 1; tier <= 3; tier++ {
		breakdown[fmt.Sprintf("tier%d", tier)] = e.GroupMetrics(byTier[tier])
	}

	avg := 0.0
	if global.ActiveUsers > 0 {
		avg = round1(global.TotalHours / float64(global.ActiveUsers))
	}

	return CapacityAnalysis{
		TotalHours:            global.TotalHours,
		PTOHours:              global.PTOHours,
		AvgHoursPerPerson:     avg,
		UtilizationPercentage: global.UtilizationPercentage,
		TeamSize:              len(ordered),
		ActiveTeamSize:        global.ActiveUsers,
		PerPersonHours:        ordered,
		TierBreakdown:         breakdown,
	}
}

// TeamSummary condenses group metrics for the capacity report.
func (e *Engine) TeamSummary(rows []UserHours) TeamSummary {
	m := e.GroupMetrics(rows)
	avg := 0.0
	if m.ActiveUsers > 0 {
		avg = round1(m.TotalHours / float64(m.ActiveUsers))
	}
	return TeamSummary{
		TotalHours:            m.TotalHours,
		PTOHours:              m.PTOHours,
		ActiveUsers:           m.ActiveUsers,
		AvgHoursPerUser:       avg,
		UtilizationPercentage: m.UtilizationPercentage,
	}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func roundCurrency(v float64) int64 {
	return int64(math.Round(v))
}
