package project_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/brightops/pulse/internal/domain/project"
	"github.com/brightops/pulse/internal/repository"
	"github.com/brightops/pulse/internal/repository/mocks"
)

func int64Ptr(v int64) *int64       { return &v }
func float64Ptr(v float64) *float64 { return &v }
func strPtr(v string) *string       { return &v }

func TestCreateAppliesDefaults(t *testing.T) {
	repo := new(mocks.ProjectRepository)
	svc := project.NewService(repo, nil)

	repo.On("Create", mock.Anything, mock.AnythingOfType("*project.Project")).
		Run(func(args mock.Arguments) {
			proj := args.Get(1).(*project.Project)
			proj.ID = 42
		}).
		Return(nil)
	repo.On("AddHealthChange", mock.Anything, mock.MatchedBy(func(c *project.HealthChange) bool {
		return c.ProjectID == 42 && c.Health == project.HealthGreen && c.ChangeReason == "Project created"
	})).Return(nil)

	proj, err := svc.Create(context.Background(), project.CreateRequest{Name: "Atlas Migration"})
	require.NoError(t, err)
	assert.Equal(t, int64(42), proj.ID)
	assert.Equal(t, project.StatusInProgress, proj.Status)
	assert.Equal(t, project.HealthGreen, proj.Health)
	repo.AssertExpectations(t)
}

func TestCreateRecordsChangerFromOwner(t *testing.T) {
	repo := new(mocks.ProjectRepository)
	svc := project.NewService(repo, nil)

	repo.On("Create", mock.Anything, mock.Anything).Return(nil)
	repo.On("AddHealthChange", mock.Anything, mock.MatchedBy(func(c *project.HealthChange) bool {
		return c.ChangedBy != nil && *c.ChangedBy == 9
	})).Return(nil)

	// Tier 2 owner wins over tier 1 as the recorded changer.
	_, err := svc.Create(context.Background(), project.CreateRequest{
		Name:         "Beacon",
		Tier1OwnerID: int64Ptr(3),
		Tier2OwnerID: int64Ptr(9),
	})
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestCreateValidation(t *testing.T) {
	svc := project.NewService(new(mocks.ProjectRepository), nil)

	_, err := svc.Create(context.Background(), project.CreateRequest{Name: "   "})
	assert.ErrorIs(t, err, project.ErrInvalidInput)

	_, err = svc.Create(context.Background(), project.CreateRequest{Name: "Atlas", Status: "paused-ish"})
	assert.ErrorIs(t, err, project.ErrInvalidInput)

	_, err = svc.Create(context.Background(), project.CreateRequest{Name: "Atlas", ARRValue: float64Ptr(-1)})
	assert.ErrorIs(t, err, project.ErrInvalidInput)
}

func TestCreateSurvivesHealthHistoryFailure(t *testing.T) {
	repo := new(mocks.ProjectRepository)
	svc := project.NewService(repo, nil)

	repo.On("Create", mock.Anything, mock.Anything).Return(nil)
	repo.On("AddHealthChange", mock.Anything, mock.Anything).Return(errors.New("history table locked"))

	proj, err := svc.Create(context.Background(), project.CreateRequest{Name: "Atlas"})
	require.NoError(t, err)
	assert.NotNil(t, proj)
}

func TestGetNotFound(t *testing.T) {
	repo := new(mocks.ProjectRepository)
	svc := project.NewService(repo, nil)

	repo.On("Get", mock.Anything, int64(99)).Return(nil, repository.ErrNotFound)

	_, err := svc.Get(context.Background(), 99)
	assert.ErrorIs(t, err, project.ErrProjectNotFound)
}

func TestGetReturnsDetail(t *testing.T) {
	repo := new(mocks.ProjectRepository)
	svc := project.NewService(repo, nil)

	repo.On("Get", mock.Anything, int64(1)).Return(&project.Project{ID: 1, Name: "Atlas"}, nil)
	repo.On("ListNotes", mock.Anything, int64(1)).Return([]project.Note{{ID: 5, ProjectID: 1, NoteText: "kickoff done"}}, nil)
	repo.On("ListCustomFields", mock.Anything, int64(1)).Return([]project.CustomField{}, nil)

	detail, err := svc.Get(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "Atlas", detail.Name)
	require.Len(t, detail.Notes, 1)
	assert.Equal(t, "kickoff done", detail.Notes[0].NoteText)
}

func TestListRejectsBadFilters(t *testing.T) {
	svc := project.NewService(new(mocks.ProjectRepository), nil)

	badStatus := project.Status("archived")
	_, err := svc.List(context.Background(), project.ListOptions{Status: &badStatus})
	assert.ErrorIs(t, err, project.ErrInvalidInput)
}

func TestUpdateRecordsHealthChange(t *testing.T) {
	repo := new(mocks.ProjectRepository)
	svc := project.NewService(repo, nil)

	newHealth := project.HealthRed
	repo.On("Get", mock.Anything, int64(1)).Return(&project.Project{ID: 1, Health: project.HealthGreen}, nil)
	repo.On("Update", mock.Anything, int64(1), mock.Anything).Return(&project.Project{ID: 1, Health: newHealth}, nil)
	repo.On("AddHealthChange", mock.Anything, mock.MatchedBy(func(c *project.HealthChange) bool {
		return c.ProjectID == 1 && c.Health == project.HealthRed && c.ChangeReason == "Health status updated"
	})).Return(nil)

	updated, err := svc.Update(context.Background(), 1, project.UpdateRequest{
		Patch: project.Patch{Health: &newHealth},
	})
	require.NoError(t, err)
	assert.Equal(t, project.HealthRed, updated.Health)
	repo.AssertExpectations(t)
}

func TestUpdateSameHealthSkipsHistory(t *testing.T) {
	repo := new(mocks.ProjectRepository)
	svc := project.NewService(repo, nil)

	health := project.HealthGreen
	repo.On("Get", mock.Anything, int64(1)).Return(&project.Project{ID: 1, Health: health}, nil)
	repo.On("Update", mock.Anything, int64(1), mock.Anything).Return(&project.Project{ID: 1, Health: health}, nil)

	_, err := svc.Update(context.Background(), 1, project.UpdateRequest{
		Patch: project.Patch{Health: &health},
	})
	require.NoError(t, err)
	repo.AssertNotCalled(t, "AddHealthChange", mock.Anything, mock.Anything)
}

func TestUpdateValidation(t *testing.T) {
	svc := project.NewService(new(mocks.ProjectRepository), nil)

	_, err := svc.Update(context.Background(), 1, project.UpdateRequest{
		Patch: project.Patch{Name: strPtr("  ")},
	})
	assert.ErrorIs(t, err, project.ErrInvalidInput)
}

func TestDeleteNotFound(t *testing.T) {
	repo := new(mocks.ProjectRepository)
	svc := project.NewService(repo, nil)

	repo.On("Delete", mock.Anything, int64(7)).Return(repository.ErrNotFound)

	err := svc.Delete(context.Background(), 7)
	assert.ErrorIs(t, err, project.ErrProjectNotFound)
}

func TestAddNote(t *testing.T) {
	repo := new(mocks.ProjectRepository)
	svc := project.NewService(repo, nil)

	repo.On("AddNote", mock.Anything, mock.MatchedBy(func(n *project.Note) bool {
		return n.ProjectID == 1 && n.NoteText == "scope confirmed"
	})).Return(nil)

	note, err := svc.AddNote(context.Background(), 1, "scope confirmed", nil)
	require.NoError(t, err)
	assert.Equal(t, "scope confirmed", note.NoteText)
}

func TestAddNoteMissingProject(t *testing.T) {
	repo := new(mocks.ProjectRepository)
	svc := project.NewService(repo, nil)

	repo.On("AddNote", mock.Anything, mock.Anything).Return(repository.ErrForeignKeyViolation)

	_, err := svc.AddNote(context.Background(), 99, "orphan note", nil)
	assert.ErrorIs(t, err, project.ErrProjectNotFound)
}

func TestAddNoteRejectsEmptyText(t *testing.T) {
	svc := project.NewService(new(mocks.ProjectRepository), nil)

	_, err := svc.AddNote(context.Background(), 1, "   ", nil)
	assert.ErrorIs(t, err, project.ErrInvalidInput)
}
