package report

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/brightops/pulse/internal/domain/project"
	"github.com/brightops/pulse/internal/domain/timeentry"
)

const (
	dateLayout = "2006-01-02"
	// defaultPeriodDays is the trailing window when the caller gives no range.
	defaultPeriodDays = 7
	// defaultTrendDays is the trailing window for health trends.
	defaultTrendDays = 30
)

// Service assembles report documents from store snapshots and engine math.
type Service struct {
	repo      Repository
	engine    *Engine
	generator Generator
	logger    *slog.Logger
	now       func() time.Time
}

// NewService creates a report service. The generator may be nil, in which
// case narrative requests fail with ErrNarrativeUnavailable.
func NewService(repo Repository, generator Generator, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Service{
		repo:      repo,
		engine:    NewEngine(),
		generator: generator,
		logger:    logger,
		now:       time.Now,
	}
}

// resolvePeriod fills missing bounds: end defaults to today, start to seven
// days before end.
func (s *Service) resolvePeriod(start, end *time.Time) (time.Time, time.Time) {
	e := s.now()
	if end != nil {
		e = *end
	}
	st := e.AddDate(0, 0, -defaultPeriodDays)
	if start != nil {
		st = *start
	}
	return st, e
}

func periodOf(start, end time.Time) Period {
	return Period{
		StartDate: start.Format(dateLayout),
		EndDate:   end.Format(dateLayout),
	}
}

// Executive builds the executive report for the given range, defaulting to
// the trailing week.
func (s *Service) Executive(ctx context.Context, start, end *time.Time) (*ExecutiveReport, error) {
	st, en := s.resolvePeriod(start, end)

	projects, err := s.repo.ListActiveProjects(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: listing active projects: %v", ErrNoInputData, err)
	}
	rows, err := s.repo.ListActiveUsersWithHours(ctx, st, en)
	if err != nil {
		return nil, fmt.Errorf("%w: listing user hours: %v", ErrNoInputData, err)
	}

	return &ExecutiveReport{
		ReportPeriod:     periodOf(st, en),
		ProjectHealth:    s.engine.ProjectHealth(projects),
		CapacityAnalysis: s.engine.Capacity(rows),
		GeneratedAt:      s.now().UTC(),
	}, nil
}

// Risks builds the risk report over the current active portfolio. It takes
// no date range; risk is a function of current project state.
func (s *Service) Risks(ctx context.Context) (*RiskReport, error) {
	projects, err := s.repo.ListActiveProjects(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: listing active projects: %v", ErrNoInputData, err)
	}
	rep := s.engine.RiskReport(projects, s.now())
	return &rep, nil
}

// Capacity builds the per-user capacity report for a required range.
func (s *Service) Capacity(ctx context.Context, start, end time.Time) (*CapacityReport, error) {
	rows, err := s.repo.ListActiveUsersWithHours(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("%w: listing user hours: %v", ErrNoInputData, err)
	}

	ordered := s.engine.Capacity(rows).PerPersonHours
	return &CapacityReport{
		Period:      periodOf(start, end),
		TeamSummary: s.engine.TeamSummary(rows),
		UserDetails: ordered,
	}, nil
}

// TimeSummary groups hours in the range by user or by project. Per-project
// hours are not tracked in the simplified time model, so project rows carry
// zero hours.
func (s *Service) TimeSummary(ctx context.Context, start, end time.Time, groupBy string) (*TimeSummaryReport, error) {
	if groupBy == "" {
		groupBy = "user"
	}

	var rows []TimeSummaryRow
	switch groupBy {
	case "user":
		var err error
		rows, err = s.repo.TimeSummaryByUser(ctx, start, end)
		if err != nil {
			return nil, fmt.Errorf("%w: summarizing user hours: %v", ErrNoInputData, err)
		}
	case "project":
		projects, err := s.repo.ListActiveProjects(ctx)
		if err != nil {
			return nil, fmt.Errorf("%w: listing active projects: %v", ErrNoInputData, err)
		}
		ordered := make([]project.Project, len(projects))
		copy(ordered, projects)
		SortForDisplay(ordered)
		rows = make([]TimeSummaryRow, 0, len(ordered))
		for _, p := range ordered {
			rows = append(rows, TimeSummaryRow{
				Name:     p.Name,
				Health:   p.Health,
				ARRValue: p.ARRValue,
			})
		}
	default:
		return nil, ErrInvalidInput
	}

	return &TimeSummaryReport{
		Period:  periodOf(start, end),
		GroupBy: groupBy,
		Data:    rows,
	}, nil
}

// HealthTrends returns daily health-change counts for the trailing window.
func (s *Service) HealthTrends(ctx context.Context, days int) ([]HealthTrend, error) {
	if days <= 0 {
		days = defaultTrendDays
	}
	trends, err := s.repo.HealthTrends(ctx, days)
	if err != nil {
		return nil, fmt.Errorf("%w: listing health trends: %v", ErrNoInputData, err)
	}
	return trends, nil
}

// Narrative renders the executive snapshot into a prompt and asks the
// generator for a narrative summary. Generator failures surface whole; no
// partial narrative is returned.
func (s *Service) Narrative(ctx context.Context, start, end *time.Time) (*NarrativeReport, error) {
	if s.generator == nil {
		return nil, ErrNarrativeUnavailable
	}

	st, en := s.resolvePeriod(start, end)
	projects, err := s.repo.ListActiveProjects(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: listing active projects: %v", ErrNoInputData, err)
	}
	rows, err := s.repo.ListActiveUsersWithHours(ctx, st, en)
	if err != nil {
		return nil, fmt.Errorf("%w: listing user hours: %v", ErrNoInputData, err)
	}

	ordered := make([]project.Project, len(projects))
	copy(ordered, projects)
	SortForDisplay(ordered)

	period := periodOf(st, en)
	prompt := BuildPrompt(ordered, s.engine.Capacity(rows), period)

	narrative, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		s.logger.Error("narrative generation failed", "error", err)
		return nil, fmt.Errorf("generating narrative: %w", err)
	}

	return &NarrativeReport{
		ReportPeriod: period,
		Narrative:    narrative,
		GeneratedAt:  s.now().UTC(),
	}, nil
}

// ExportProjects returns every project for external reporting tools.
func (s *Service) ExportProjects(ctx context.Context) ([]project.Project, error) {
	projects, err := s.repo.ExportProjects(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: exporting projects: %v", ErrNoInputData, err)
	}
	return projects, nil
}

// ExportTimeEntries returns time entries with user names in an optional range.
func (s *Service) ExportTimeEntries(ctx context.Context, start, end *time.Time) ([]timeentry.Entry, error) {
	entries, err := s.repo.ExportTimeEntries(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("%w: exporting time entries: %v", ErrNoInputData, err)
	}
	return entries, nil
}
