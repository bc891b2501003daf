package report_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/brightops/pulse/internal/domain/project"
	"github.com/brightops/pulse/internal/domain/report"
	"github.com/brightops/pulse/internal/repository/mocks"
)

type stubGenerator struct {
	prompt string
	out    string
	err    error
}

func (g *stubGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	g.prompt = prompt
	return g.out, g.err
}

func arr(v float64) *float64 { return &v }

func TestExecutiveDefaultsToTrailingWeek(t *testing.T) {
	repo := new(mocks.ReportRepository)
	svc := report.NewService(repo, nil, nil)

	projects := []project.Project{
		{ID: 1, Name: "Atlas", Status: project.StatusActive, Health: project.HealthRed, ARRValue: arr(120000)},
		{ID: 2, Name: "Beacon", Status: project.StatusActive, Health: project.HealthGreen, ARRValue: arr(90000)},
	}
	rows := []report.UserHours{
		{UserID: 1, UserName: "Alice Ames", Tier: 1, TotalHours: 40},
	}

	repo.On("ListActiveProjects", mock.Anything).Return(projects, nil)
	repo.On("ListActiveUsersWithHours", mock.Anything, mock.Anything, mock.Anything).Return(rows, nil)

	rep, err := svc.Executive(context.Background(), nil, nil)
	require.NoError(t, err)

	start, err := time.Parse("2006-01-02", rep.ReportPeriod.StartDate)
	require.NoError(t, err)
	end, err := time.Parse("2006-01-02", rep.ReportPeriod.EndDate)
	require.NoError(t, err)
	assert.Equal(t, 7*24*time.Hour, end.Sub(start))

	assert.Equal(t, 2, rep.ProjectHealth.TotalProjects)
	assert.Equal(t, int64(120000), rep.ProjectHealth.ARRAtRisk)
	assert.Equal(t, int64(210000), rep.ProjectHealth.TotalARR)
	assert.Equal(t, 40.0, rep.CapacityAnalysis.TotalHours)
	repo.AssertExpectations(t)
}

func TestExecutiveIsDeterministic(t *testing.T) {
	repo := new(mocks.ReportRepository)
	svc := report.NewService(repo, nil, nil)
	report.SetClock(svc, func() time.Time {
		return time.Date(2025, 6, 8, 12, 0, 0, 0, time.UTC)
	})

	projects := []project.Project{
		{ID: 1, Name: "Atlas", Status: project.StatusActive, Health: project.HealthRed, ARRValue: arr(120000)},
		{ID: 2, Name: "Beacon", Status: project.StatusActive, Health: project.HealthYellow, ARRValue: arr(90000)},
	}
	rows := []report.UserHours{
		{UserID: 1, UserName: "Alice Ames", Tier: 1, TotalHours: 36, PTOHours: 4},
		{UserID: 2, UserName: "Bob Baker", Tier: 2, TotalHours: 36},
	}
	repo.On("ListActiveProjects", mock.Anything).Return(projects, nil)
	repo.On("ListActiveUsersWithHours", mock.Anything, mock.Anything, mock.Anything).Return(rows, nil)

	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 6, 7, 0, 0, 0, 0, time.UTC)

	first, err := svc.Executive(context.Background(), &start, &end)
	require.NoError(t, err)
	second, err := svc.Executive(context.Background(), &start, &end)
	require.NoError(t, err)

	// The same snapshot yields the same document, byte for byte.
	firstJSON, err := json.Marshal(first)
	require.NoError(t, err)
	secondJSON, err := json.Marshal(second)
	require.NoError(t, err)
	assert.Equal(t, string(firstJSON), string(secondJSON))
}

func TestExecutiveWrapsStoreFailure(t *testing.T) {
	repo := new(mocks.ReportRepository)
	svc := report.NewService(repo, nil, nil)

	repo.On("ListActiveProjects", mock.Anything).Return(nil, errors.New("disk gone"))

	_, err := svc.Executive(context.Background(), nil, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, report.ErrNoInputData)
	assert.Contains(t, err.Error(), "disk gone")
}

func TestRisksGroupsPortfolio(t *testing.T) {
	repo := new(mocks.ReportRepository)
	svc := report.NewService(repo, nil, nil)

	projects := []project.Project{
		{ID: 1, Name: "Atlas", Health: project.HealthRed, ARRValue: arr(50000)},
		{ID: 2, Name: "Beacon", Health: project.HealthGreen},
	}
	repo.On("ListActiveProjects", mock.Anything).Return(projects, nil)

	rep, err := svc.Risks(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(50000), rep.TotalARRAtRisk)
	assert.Len(t, rep.RiskGroups[report.RiskHigh], 1)
	assert.Len(t, rep.RiskGroups[report.RiskLow], 1)
}

func TestCapacityReport(t *testing.T) {
	repo := new(mocks.ReportRepository)
	svc := report.NewService(repo, nil, nil)

	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 6, 7, 0, 0, 0, 0, time.UTC)
	rows := []report.UserHours{
		{UserID: 1, UserName: "Alice Ames", Tier: 1, TotalHours: 36, PTOHours: 4},
	}
	repo.On("ListActiveUsersWithHours", mock.Anything, start, end).Return(rows, nil)

	rep, err := svc.Capacity(context.Background(), start, end)
	require.NoError(t, err)
	assert.Equal(t, "2025-06-01", rep.Period.StartDate)
	assert.Equal(t, "2025-06-07", rep.Period.EndDate)
	assert.Equal(t, 36.0, rep.TeamSummary.TotalHours)
	assert.Equal(t, 100.0, rep.TeamSummary.UtilizationPercentage)
	require.Len(t, rep.UserDetails, 1)
}

func TestTimeSummaryByProject(t *testing.T) {
	repo := new(mocks.ReportRepository)
	svc := report.NewService(repo, nil, nil)

	projects := []project.Project{
		{ID: 1, Name: "Beacon", Health: project.HealthGreen, ARRValue: arr(90000)},
		{ID: 2, Name: "Atlas", Health: project.HealthRed, ARRValue: arr(120000)},
	}
	repo.On("ListActiveProjects", mock.Anything).Return(projects, nil)

	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 6, 7, 0, 0, 0, 0, time.UTC)
	rep, err := svc.TimeSummary(context.Background(), start, end, "project")
	require.NoError(t, err)
	assert.Equal(t, "project", rep.GroupBy)
	require.Len(t, rep.Data, 2)
	// Health-ordered, hours always zero in the project grouping.
	assert.Equal(t, "Atlas", rep.Data[0].Name)
	assert.Equal(t, 0.0, rep.Data[0].TotalHours)
}

func TestTimeSummaryRejectsUnknownGrouping(t *testing.T) {
	repo := new(mocks.ReportRepository)
	svc := report.NewService(repo, nil, nil)

	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	_, err := svc.TimeSummary(context.Background(), start, start, "team")
	assert.ErrorIs(t, err, report.ErrInvalidInput)
}

func TestHealthTrendsDefaultsDays(t *testing.T) {
	repo := new(mocks.ReportRepository)
	svc := report.NewService(repo, nil, nil)

	trends := []report.HealthTrend{{Date: "2025-06-01", Health: project.HealthRed, Count: 2}}
	repo.On("HealthTrends", mock.Anything, 30).Return(trends, nil)

	got, err := svc.HealthTrends(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, trends, got)
	repo.AssertExpectations(t)
}

func TestNarrativeWithoutGenerator(t *testing.T) {
	repo := new(mocks.ReportRepository)
	svc := report.NewService(repo, nil, nil)

	_, err := svc.Narrative(context.Background(), nil, nil)
	assert.ErrorIs(t, err, report.ErrNarrativeUnavailable)
}

func TestNarrativeBuildsPromptFromSnapshot(t *testing.T) {
	repo := new(mocks.ReportRepository)
	gen := &stubGenerator{out: "All clear this week."}
	svc := report.NewService(repo, gen, nil)

	projects := []project.Project{
		{ID: 1, Name: "Atlas", Health: project.HealthRed, ARRValue: arr(120000)},
	}
	repo.On("ListActiveProjects", mock.Anything).Return(projects, nil)
	repo.On("ListActiveUsersWithHours", mock.Anything, mock.Anything, mock.Anything).
		Return([]report.UserHours{}, nil)

	rep, err := svc.Narrative(context.Background(), nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "All clear this week.", rep.Narrative)
	assert.Contains(t, gen.prompt, "Atlas")
}

func TestNarrativeGeneratorFailure(t *testing.T) {
	repo := new(mocks.ReportRepository)
	gen := &stubGenerator{err: errors.New("model overloaded")}
	svc := report.NewService(repo, gen, nil)

	repo.On("ListActiveProjects", mock.Anything).Return([]project.Project{}, nil)
	repo.On("ListActiveUsersWithHours", mock.Anything, mock.Anything, mock.Anything).
		Return([]report.UserHours{}, nil)

	_, err := svc.Narrative(context.Background(), nil, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "model overloaded")
}
