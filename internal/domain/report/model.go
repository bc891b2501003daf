package report

import (
	"time"

	"github.com/brightops/pulse/internal/domain/project"
)

// Period is a reporting date range in ISO date form.
type Period struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

// UserHours is one user's aggregated time for a reporting window, as read
// from the store.
type UserHours struct {
	UserID     int64   `json:"id"`
	UserName   string  `json:"user_name"`
	Tier       int     `json:"tier"`
	TotalHours float64 `json:"total_hours"`
	PTOHours   float64 `json:"pto_hours"`
	DaysWorked int     `json:"days_worked"`
}

// ActiveInPeriod reports whether the user logged any time, worked or PTO.
func (u UserHours) ActiveInPeriod() bool {
	return u.TotalHours > 0 || u.PTOHours > 0
}

// HealthBuckets partitions active projects by health for display.
type HealthBuckets struct {
	Red    []project.Project `json:"red"`
	Yellow []project.Project `json:"yellow"`
	Green  []project.Project `json:"green"`
}

// ProjectHealth summarizes the health of the active portfolio.
type ProjectHealth struct {
	TotalProjects    int           `json:"total_projects"`
	RedProjects      int           `json:"red_projects"`
	YellowProjects   int           `json:"yellow_projects"`
	GreenProjects    int           `json:"green_projects"`
	ProjectsByHealth HealthBuckets `json:"projects_by_health"`
	ARRAtRisk        int64         `json:"arr_at_risk"`
	TotalARR         int64         `json:"total_arr"`
}

// TierMetrics is utilization math for one group of users.
type TierMetrics struct {
	TotalUsers            int     `json:"total_users"`
	ActiveUsers           int     `json:"active_users"`
	TotalHours            float64 `json:"total_hours"`
	PTOHours              float64 `json:"pto_hours"`
	ExpectedHours         float64 `json:"expected_hours"`
	AvailableHours        float64 `json:"available_hours"`
	UtilizationPercentage float64 `json:"utilization_percentage"`
}

// CapacityAnalysis is the team-wide capacity block of the executive report.
type CapacityAnalysis struct {
	TotalHours            float64                `json:"total_hours"`
	PTOHours              float64                `json:"pto_hours"`
	AvgHoursPerPerson     float64                `json:"avg_hours_per_person"`
	UtilizationPercentage float64                `json:"utilization_percentage"`
	TeamSize              int                    `json:"team_size"`
	ActiveTeamSize        int                    `json:"active_team_size"`
	PerPersonHours        []UserHours            `json:"per_person_hours"`
	TierBreakdown         map[string]TierMetrics `json:"tier_breakdown"`
}

// ExecutiveReport is the full report document. It is derived per request and
// never persisted.
type ExecutiveReport struct {
	ReportPeriod     Period           `json:"report_period"`
	ProjectHealth    ProjectHealth    `json:"project_health"`
	CapacityAnalysis CapacityAnalysis `json:"capacity_analysis"`
	GeneratedAt      time.Time        `json:"generated_at"`
}

// RiskCategory labels a project's dominant delivery risk.
type RiskCategory string

const (
	RiskHigh    RiskCategory = "High Risk"
	RiskMedium  RiskCategory = "Medium Risk"
	RiskOverdue RiskCategory = "Overdue"
	RiskLow     RiskCategory = "Low Risk"
)

// RiskProject is a project annotated with its risk category and exposure.
type RiskProject struct {
	project.Project
	RiskCategory RiskCategory `json:"risk_category"`
	ARRAtRisk    float64      `json:"arr_at_risk"`
}

// RiskReport groups the active portfolio by risk category.
type RiskReport struct {
	TotalARRAtRisk int64                          `json:"total_arr_at_risk"`
	RiskGroups     map[RiskCategory][]RiskProject `json:"risk_groups"`
	Projects       []RiskProject                  `json:"projects"`
}

// TeamSummary is the compact capacity block of the capacity report.
type TeamSummary struct {
	TotalHours            float64 `json:"total_hours"`
	PTOHours              float64 `json:"pto_hours"`
	ActiveUsers           int     `json:"active_users"`
	AvgHoursPerUser       float64 `json:"avg_hours_per_user"`
	UtilizationPercentage float64 `json:"utilization_percentage"`
}

// CapacityReport is the per-user capacity document for a date range.
type CapacityReport struct {
	Period      Period      `json:"period"`
	TeamSummary TeamSummary `json:"team_summary"`
	UserDetails []UserHours `json:"user_details"`
}

// TimeSummaryRow is one grouped row in the time summary report.
type TimeSummaryRow struct {
	Name       string         `json:"name"`
	Health     project.Health `json:"health,omitempty"`
	ARRValue   *float64       `json:"arr_value,omitempty"`
	TotalHours float64        `json:"total_hours"`
	DaysWorked int            `json:"days_worked"`
}

// TimeSummaryReport groups hours in a date range by user or by project.
type TimeSummaryReport struct {
	Period  Period           `json:"period"`
	GroupBy string           `json:"group_by"`
	Data    []TimeSummaryRow `json:"data"`
}

// HealthTrend is the count of health changes recorded on one day.
type HealthTrend struct {
	Date   string         `json:"date"`
	Health project.Health `json:"health"`
	Count  int            `json:"count"`
}

// NarrativeReport wraps the AI-generated summary of an executive report.
type NarrativeReport struct {
	ReportPeriod Period    `json:"report_period"`
	Narrative    string    `json:"narrative"`
	GeneratedAt  time.Time `json:"generated_at"`
}
